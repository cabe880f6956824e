// Package banking holds helpers for supplier bank details.
package banking

import "strings"

const (
	minIBANLength = 15
	bicLength     = 8
)

// NormalizeIBAN removes whitespace and upper-cases iban.
func NormalizeIBAN(iban string) string {
	return strings.ToUpper(strings.Join(strings.Fields(iban), ""))
}

// BICFromIBAN derives the bank identifier from a Dutch or Belgian IBAN by taking
// the eight characters following the country code and check digits.
// It reports false for other countries or IBANs that are too short.
func BICFromIBAN(iban string) (string, bool) {
	iban = NormalizeIBAN(iban)
	if len(iban) < minIBANLength {
		return "", false
	}
	if !strings.HasPrefix(iban, "NL") && !strings.HasPrefix(iban, "BE") {
		return "", false
	}
	return iban[4 : 4+bicLength], true
}
