package domain

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestParseKind(t *testing.T) {
	tests := []struct {
		input   string
		want    Kind
		wantErr bool
	}{
		{"income", KindIncome, false},
		{"expense", KindExpense, false},
		{"Expense", KindExpense, false},
		{"  INCOME  ", KindIncome, false},
		{"transfer", "", true},
		{"", "", true},
		{"expenses", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseKind(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseKind(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseKind(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestTransaction_Signed(t *testing.T) {
	amount := decimal.NewFromInt(25)

	income := Transaction{Kind: KindIncome, Amount: amount}
	if !income.Signed().Equal(amount) {
		t.Errorf("income Signed() = %s, want %s", income.Signed(), amount)
	}

	expense := Transaction{Kind: KindExpense, Amount: amount}
	if !expense.Signed().Equal(amount.Neg()) {
		t.Errorf("expense Signed() = %s, want %s", expense.Signed(), amount.Neg())
	}
}
