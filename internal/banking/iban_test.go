package banking_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"backoffice/internal/banking"
)

func TestBICFromIBAN(t *testing.T) {
	tests := []struct {
		name string
		iban string
		want string
		ok   bool
	}{
		{"dutch", "NL91ABNA0417164300", "ABNA0417", true},
		{"belgian", "BE71096123456769", "09612345", true},
		{"spaces and lower case", "nl91 abna 0417 1643 00", "ABNA0417", true},
		{"too short", "NL91ABNA04", "", false},
		{"other country", "DE89370400440532013000", "", false},
		{"empty", "", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := banking.BICFromIBAN(tt.iban)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
