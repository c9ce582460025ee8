// Package pipeline turns one user utterance into one ledger row: prompt,
// model call, extraction, normalization, append.
package pipeline

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/pukulo/ledgerchat/internal/domain"
)

// ValidationError marks extracted data that fails the transaction rules:
// a type outside income/expense, or an amount that is missing or not
// positive after fallback parsing. The ledger stays untouched.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return "invalid transaction: " + e.Reason
}

// amountPattern matches the first unsigned decimal number in free text,
// mirroring how the model is nudged to quote amounts.
var amountPattern = regexp.MustCompile(`\d+\.?\d*`)

// Normalize coerces a raw extracted payload into a canonical transaction.
// The payload is untrusted: every field is read defensively. userText is
// the original message, used to recover an amount the model dropped.
// BalanceAfter is left for the ledger to fill.
func Normalize(raw map[string]interface{}, userText string) (domain.Transaction, error) {
	data := objectField(raw, "data")

	kind, kindErr := domain.ParseKind(stringField(data, "type"))

	amount, ok := coerceAmount(data["amount"])
	if !ok {
		amount, ok = fallbackAmount(userText)
	}

	category := strings.TrimSpace(stringField(data, "category"))
	if category == "" {
		category = "other"
	}
	description := strings.TrimSpace(stringField(data, "description"))

	if kindErr != nil {
		return domain.Transaction{}, &ValidationError{Reason: kindErr.Error()}
	}
	if !ok {
		return domain.Transaction{}, &ValidationError{Reason: "no usable amount in extracted data or user text"}
	}
	if !amount.IsPositive() {
		return domain.Transaction{}, &ValidationError{Reason: "amount must be greater than zero, got " + amount.String()}
	}

	return domain.Transaction{
		Kind:        kind,
		Amount:      amount,
		Category:    category,
		Description: description,
	}, nil
}

// coerceAmount accepts whatever the model produced for "amount": a JSON
// number (always float64 after unmarshalling), a numeric string, or
// garbage.
func coerceAmount(v interface{}) (decimal.Decimal, bool) {
	switch val := v.(type) {
	case float64:
		return decimal.NewFromFloat(val), true
	case string:
		d, err := decimal.NewFromString(strings.TrimSpace(val))
		if err != nil {
			return decimal.Zero, false
		}
		return d, true
	default:
		return decimal.Zero, false
	}
}

// fallbackAmount scans the original user text for the first number,
// thousands separators stripped ("1,200.50" reads as 1200.50).
func fallbackAmount(userText string) (decimal.Decimal, bool) {
	match := amountPattern.FindString(strings.ReplaceAll(userText, ",", ""))
	if match == "" {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(strings.TrimSuffix(match, "."))
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

func objectField(m map[string]interface{}, key string) map[string]interface{} {
	if obj, ok := m[key].(map[string]interface{}); ok {
		return obj
	}
	return map[string]interface{}{}
}

func stringField(m map[string]interface{}, key string) string {
	if s, ok := m[key].(string); ok {
		return s
	}
	return ""
}
