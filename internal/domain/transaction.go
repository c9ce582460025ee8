package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Kind says which side of the ledger a transaction lands on. Amounts are
// always stored positive; the kind carries the sign.
type Kind string

const (
	KindIncome  Kind = "income"
	KindExpense Kind = "expense"
)

// ParseKind normalizes a loosely-typed kind value ("Expense", " INCOME ", ...)
// into one of the two allowed kinds.
func ParseKind(s string) (Kind, error) {
	switch Kind(strings.ToLower(strings.TrimSpace(s))) {
	case KindIncome:
		return KindIncome, nil
	case KindExpense:
		return KindExpense, nil
	default:
		return "", fmt.Errorf("invalid transaction type %q, want \"income\" or \"expense\"", s)
	}
}

// Transaction is one row of the ledger.
type Transaction struct {
	ID          string
	Kind        Kind
	Amount      decimal.Decimal // strictly positive
	Category    string
	Description string

	// BalanceAfter is the running balance immediately after this
	// transaction is applied. It is computed by the ledger, never by
	// the normalizer.
	BalanceAfter decimal.Decimal

	RecordedAt time.Time
}

// Signed returns the amount with the sign implied by the kind.
func (t Transaction) Signed() decimal.Decimal {
	if t.Kind == KindExpense {
		return t.Amount.Neg()
	}
	return t.Amount
}

// BalancePoint is one entry of the balance-over-time series, paired with the
// kind and amount that produced it for chart tooltips.
type BalancePoint struct {
	Index   int
	Kind    Kind
	Amount  decimal.Decimal
	Balance decimal.Decimal
}

// Aggregates are the derived totals the sidebar and charts are built from.
type Aggregates struct {
	TotalIncome       decimal.Decimal
	TotalExpense      decimal.Decimal
	ExpenseByCategory map[string]decimal.Decimal
	BalanceSeries     []BalancePoint
}
