// Package report renders the ledger for humans: the downloadable
// spreadsheet and the sidebar summary text.
package report

import (
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/pukulo/ledgerchat/internal/domain"
	"github.com/pukulo/ledgerchat/internal/store"
)

// Export serializes the full transaction log as an xlsx byte stream with
// the Transactions sheet, in the same column order the store persists.
func Export(rows []domain.Transaction) ([]byte, error) {
	f, err := store.Workbook(rows)
	if err != nil {
		return nil, fmt.Errorf("report: build workbook: %w", err)
	}
	defer f.Close()

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("report: serialize workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// Summary formats the three sidebar numbers.
func Summary(balance decimal.Decimal, agg domain.Aggregates) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Current Balance: $%s\n", balance.StringFixed(2))
	fmt.Fprintf(&b, "Total Income:    $%s\n", agg.TotalIncome.StringFixed(2))
	fmt.Fprintf(&b, "Total Expenses:  $%s\n", agg.TotalExpense.StringFixed(2))
	return b.String()
}

// ExpenseBreakdown lists expense categories largest first, one per line.
func ExpenseBreakdown(agg domain.Aggregates) string {
	type entry struct {
		category string
		amount   decimal.Decimal
	}
	entries := make([]entry, 0, len(agg.ExpenseByCategory))
	for category, amount := range agg.ExpenseByCategory {
		entries = append(entries, entry{category, amount})
	}
	sort.Slice(entries, func(i, j int) bool {
		if !entries[i].amount.Equal(entries[j].amount) {
			return entries[i].amount.GreaterThan(entries[j].amount)
		}
		return entries[i].category < entries[j].category
	})

	var b strings.Builder
	for _, e := range entries {
		fmt.Fprintf(&b, "%-12s $%s\n", e.category, e.amount.StringFixed(2))
	}
	return b.String()
}
