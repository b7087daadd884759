package configurator

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// AmountFromInput parses a user-editable money/percentage field. Malformed
// input normalizes to zero; the engine never throws for bad strings.
func AmountFromInput(s string) decimal.Decimal {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero
	}
	// Accept "1.234,56" style input by dropping thousand separators.
	if strings.Contains(s, ",") {
		s = strings.ReplaceAll(s, ".", "")
		s = strings.ReplaceAll(s, ",", ".")
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// QuantityFromInput parses a quantity field, defaulting to one when the value
// is unparsable or below one.
func QuantityFromInput(s string) int {
	q, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || q < 1 {
		return 1
	}
	return q
}
