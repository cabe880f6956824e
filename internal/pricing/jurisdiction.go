package pricing

import (
	"math"
	"strings"
)

// DefaultDomesticJurisdictions lists the accepted spellings of the jurisdiction
// in which VAT is charged.
var DefaultDomesticJurisdictions = []string{"NL", "NLD", "Netherlands", "Nederland", "The Netherlands"}

// Resolver decides whether a counterparty's jurisdiction is domestic and
// therefore subject to VAT.
type Resolver struct {
	domestic map[string]struct{}
}

// NewResolver builds a Resolver for the given spellings. With no spellings the
// DefaultDomesticJurisdictions are used.
func NewResolver(spellings ...string) *Resolver {
	if len(spellings) == 0 {
		spellings = DefaultDomesticJurisdictions
	}
	r := &Resolver{domestic: make(map[string]struct{}, len(spellings))}
	for _, s := range spellings {
		if key := normalize(s); key != "" {
			r.domestic[key] = struct{}{}
		}
	}
	return r
}

var defaultResolver = NewResolver()

// IsDomestic reports whether jurisdiction matches one of the domestic spellings.
// Empty and unrecognised values are not domestic. A nil Resolver uses the defaults.
func (r *Resolver) IsDomestic(jurisdiction string) bool {
	if r == nil {
		r = defaultResolver
	}
	key := normalize(jurisdiction)
	if key == "" {
		return false
	}
	_, ok := r.domestic[key]
	return ok
}

// EffectiveRate returns nominal when jurisdiction is domestic and 0 otherwise.
// A NaN, infinite or out-of-range nominal rate is treated as 0.
func (r *Resolver) EffectiveRate(jurisdiction string, nominal float64) float64 {
	if !r.IsDomestic(jurisdiction) {
		return 0
	}
	if math.IsNaN(nominal) || math.IsInf(nominal, 0) || nominal < 0 || nominal > 100 {
		return 0
	}
	return nominal
}

func normalize(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}
