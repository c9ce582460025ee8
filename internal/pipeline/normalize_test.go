package pipeline

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/pukulo/ledgerchat/internal/domain"
)

func payload(data map[string]interface{}) map[string]interface{} {
	return map[string]interface{}{"data": data, "reply": "Got it!"}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name     string
		raw      map[string]interface{}
		userText string
		want     domain.Transaction
		wantErr  bool
	}{
		{
			name: "well formed expense",
			raw: payload(map[string]interface{}{
				"type": "expense", "amount": float64(80), "category": "snacks", "description": "snacks",
			}),
			userText: "I bought snacks for $80",
			want: domain.Transaction{
				Kind: domain.KindExpense, Amount: decimal.NewFromInt(80), Category: "snacks", Description: "snacks",
			},
		},
		{
			name: "kind is case-insensitive and trimmed",
			raw: payload(map[string]interface{}{
				"type": "  Income ", "amount": 2000.0,
			}),
			userText: "salary came in",
			want: domain.Transaction{
				Kind: domain.KindIncome, Amount: decimal.NewFromInt(2000), Category: "other",
			},
		},
		{
			name: "amount as numeric string",
			raw: payload(map[string]interface{}{
				"type": "expense", "amount": "42.50", "category": "food",
			}),
			userText: "lunch",
			want: domain.Transaction{
				Kind: domain.KindExpense, Amount: decimal.RequireFromString("42.50"), Category: "food",
			},
		},
		{
			name: "missing amount recovered from user text",
			raw: payload(map[string]interface{}{
				"type": "expense", "category": "transport",
			}),
			userText: "taxi ride for 300",
			want: domain.Transaction{
				Kind: domain.KindExpense, Amount: decimal.NewFromInt(300), Category: "transport",
			},
		},
		{
			name: "thousands separators stripped in fallback",
			raw: payload(map[string]interface{}{
				"type": "income", "amount": "not-a-number",
			}),
			userText: "bonus of 1,200.50 arrived",
			want: domain.Transaction{
				Kind: domain.KindIncome, Amount: decimal.RequireFromString("1200.50"), Category: "other",
			},
		},
		{
			name: "blank category defaults to other",
			raw: payload(map[string]interface{}{
				"type": "expense", "amount": float64(5), "category": "   ",
			}),
			userText: "coffee",
			want: domain.Transaction{
				Kind: domain.KindExpense, Amount: decimal.NewFromInt(5), Category: "other",
			},
		},
		{
			name: "unknown type rejected",
			raw: payload(map[string]interface{}{
				"type": "transfer", "amount": float64(10),
			}),
			userText: "moved 10 to savings",
			wantErr:  true,
		},
		{
			name:     "missing data object rejected",
			raw:      map[string]interface{}{"reply": "hi"},
			userText: "hello",
			wantErr:  true,
		},
		{
			name: "no amount anywhere rejected",
			raw: payload(map[string]interface{}{
				"type": "expense", "category": "fitness",
			}),
			userText: "gym",
			wantErr:  true,
		},
		{
			name: "zero amount rejected",
			raw: payload(map[string]interface{}{
				"type": "expense", "amount": float64(0),
			}),
			userText: "free sample",
			wantErr:  true,
		},
		{
			name: "negative amount rejected",
			raw: payload(map[string]interface{}{
				"type": "expense", "amount": float64(-20),
			}),
			userText: "refund?",
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Normalize(tt.raw, tt.userText)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("Normalize() = %+v, want error", got)
				}
				var vErr *ValidationError
				if !errors.As(err, &vErr) {
					t.Fatalf("Normalize() error = %v, want *ValidationError", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Normalize() error = %v", err)
			}
			if got.Kind != tt.want.Kind {
				t.Errorf("kind = %q, want %q", got.Kind, tt.want.Kind)
			}
			if !got.Amount.Equal(tt.want.Amount) {
				t.Errorf("amount = %s, want %s", got.Amount, tt.want.Amount)
			}
			if got.Category != tt.want.Category {
				t.Errorf("category = %q, want %q", got.Category, tt.want.Category)
			}
			if got.Description != tt.want.Description {
				t.Errorf("description = %q, want %q", got.Description, tt.want.Description)
			}
			if !got.BalanceAfter.IsZero() {
				t.Errorf("BalanceAfter = %s, the normalizer must leave it for the ledger", got.BalanceAfter)
			}
		})
	}
}

func TestFallbackAmount(t *testing.T) {
	tests := []struct {
		text string
		want string
		ok   bool
	}{
		{"I spent 300 today", "300", true},
		{"paid 42.75 for lunch", "42.75", true},
		{"price was 1,000", "1000", true},
		{"ends with dot 300.", "300", true},
		{"first 10 then 20", "10", true},
		{"no digits here", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			got, ok := fallbackAmount(tt.text)
			if ok != tt.ok {
				t.Fatalf("fallbackAmount(%q) ok = %v, want %v", tt.text, ok, tt.ok)
			}
			if ok && !got.Equal(decimal.RequireFromString(tt.want)) {
				t.Errorf("fallbackAmount(%q) = %s, want %s", tt.text, got, tt.want)
			}
		})
	}
}
