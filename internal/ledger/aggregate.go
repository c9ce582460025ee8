package ledger

import (
	"github.com/shopspring/decimal"

	"github.com/pukulo/ledgerchat/internal/domain"
)

// Aggregate derives the sidebar totals and chart series from a row set.
// It works on any ordered log, attached to a ledger or freshly loaded.
func Aggregate(log []domain.Transaction) domain.Aggregates {
	agg := domain.Aggregates{
		TotalIncome:       decimal.Zero,
		TotalExpense:      decimal.Zero,
		ExpenseByCategory: make(map[string]decimal.Decimal),
		BalanceSeries:     make([]domain.BalancePoint, 0, len(log)),
	}

	for i, t := range log {
		switch t.Kind {
		case domain.KindIncome:
			agg.TotalIncome = agg.TotalIncome.Add(t.Amount)
		case domain.KindExpense:
			agg.TotalExpense = agg.TotalExpense.Add(t.Amount)
			prev, ok := agg.ExpenseByCategory[t.Category]
			if !ok {
				prev = decimal.Zero
			}
			agg.ExpenseByCategory[t.Category] = prev.Add(t.Amount)
		}

		agg.BalanceSeries = append(agg.BalanceSeries, domain.BalancePoint{
			Index:   i,
			Kind:    t.Kind,
			Amount:  t.Amount,
			Balance: t.BalanceAfter,
		})
	}

	return agg
}
