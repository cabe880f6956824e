// Package pricing derives purchase totals from an editable collection of line items.
package pricing

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ParseAmount parses a tax-exclusive money string as entered in a form.
// A comma decimal separator is accepted. Empty, unparseable, negative and
// exponent-form values yield zero so a single bad row never blocks a total.
func ParseAmount(s string) decimal.Decimal {
	d, ok := parseAmount(s)
	if !ok {
		return decimal.Zero
	}
	return d
}

// ValidAmount reports whether s is a non-negative amount in plain decimal notation.
func ValidAmount(s string) bool {
	_, ok := parseAmount(s)
	return ok
}

func parseAmount(s string) (decimal.Decimal, bool) {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", "."))
	if !plainDecimal(s) {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

// plainDecimal accepts digits with at most one dot and at least one digit.
// Signs and exponents are rejected.
func plainDecimal(s string) bool {
	digits, dots := 0, 0
	for i := 0; i < len(s); i++ {
		switch c := s[i]; {
		case c >= '0' && c <= '9':
			digits++
		case c == '.':
			dots++
			if dots > 1 {
				return false
			}
		default:
			return false
		}
	}
	return digits > 0
}

// FormatAmount renders d with exactly two decimals.
func FormatAmount(d decimal.Decimal) string {
	return d.StringFixed(2)
}
