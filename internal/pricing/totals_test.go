package pricing_test

import (
	"math"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"backoffice/internal/pricing"
)

func scenarioItems() []pricing.LineItem {
	return []pricing.LineItem{
		{ID: "a", UnitPrice: "10.00", Quantity: 2, VATRate: 21},
		{ID: "b", UnitPrice: "5,50", Quantity: 1, VATRate: 0},
	}
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"10.00", "10"},
		{"5,50", "5.5"},
		{" 3.2 ", "3.2"},
		{"", "0"},
		{"abc", "0"},
		{"-4", "0"},
		{"1.234,56", "0"},
		{"1e3", "0"},
		{"1e2000000", "0"},
		{"+5", "0"},
		{".5", "0.5"},
		{".", "0"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, pricing.ParseAmount(tt.in).String())
		})
	}
}

func TestValidAmount(t *testing.T) {
	assert.True(t, pricing.ValidAmount("0"))
	assert.True(t, pricing.ValidAmount("12,95"))
	assert.False(t, pricing.ValidAmount(""))
	assert.False(t, pricing.ValidAmount("-1"))
	assert.False(t, pricing.ValidAmount("ten"))
	assert.False(t, pricing.ValidAmount("1e3"))
	assert.False(t, pricing.ValidAmount("1e2000000"))
	assert.False(t, pricing.ValidAmount("1E-2"))
	assert.False(t, pricing.ValidAmount("1.2.3"))
}

func TestComputeTotals_ExponentPriceContributesZero(t *testing.T) {
	items := []pricing.LineItem{
		{ID: "a", UnitPrice: "1e2000000", Quantity: 1, VATRate: 21},
		{ID: "b", UnitPrice: "10", Quantity: 1, VATRate: 21},
	}
	f := pricing.ComputeTotals(items, "NL", pricing.NewResolver()).Formatted()
	assert.Equal(t, "10.00", f.SubtotalExclTax)
	assert.Equal(t, "2.10", f.TaxAmount)
}

func TestComputeTotals_DomesticScenario(t *testing.T) {
	totals := pricing.ComputeTotals(scenarioItems(), "NL", pricing.NewResolver())

	f := totals.Formatted()
	assert.Equal(t, "25.50", f.SubtotalExclTax)
	assert.Equal(t, "4.20", f.TaxAmount)
	assert.Equal(t, "29.70", f.TotalInclTax)
}

func TestComputeTotals_ForeignScenario(t *testing.T) {
	totals := pricing.ComputeTotals(scenarioItems(), "BE", pricing.NewResolver())

	f := totals.Formatted()
	assert.Equal(t, "25.50", f.SubtotalExclTax)
	assert.Equal(t, "0.00", f.TaxAmount)
	assert.Equal(t, "25.50", f.TotalInclTax)
}

func TestComputeTotals_TotalIsSumOfParts(t *testing.T) {
	r := pricing.NewResolver()
	items := []pricing.LineItem{
		{ID: "1", UnitPrice: "0.33", Quantity: 3, VATRate: 21},
		{ID: "2", UnitPrice: "19.99", Quantity: 7, VATRate: 9},
		{ID: "3", UnitPrice: "1,05", Quantity: 11, VATRate: 21},
	}

	totals := pricing.ComputeTotals(items, "nl", r)

	subtotal := decimal.Zero
	tax := decimal.Zero
	for _, it := range items {
		net := pricing.ParseAmount(it.UnitPrice).Mul(decimal.NewFromInt(int64(it.Quantity)))
		subtotal = subtotal.Add(net)
		tax = tax.Add(net.Mul(decimal.NewFromFloat(it.VATRate)).Div(decimal.NewFromInt(100)))
	}
	assert.Equal(t, subtotal.Add(tax).StringFixed(2), totals.Formatted().TotalInclTax)
	assert.True(t, totals.TotalInclTax.Equal(totals.SubtotalExclTax.Add(totals.TaxAmount)))
}

func TestComputeTotals_Idempotent(t *testing.T) {
	r := pricing.NewResolver()
	items := scenarioItems()

	first := pricing.ComputeTotals(items, "NLD", r)
	second := pricing.ComputeTotals(items, "NLD", r)

	assert.Equal(t, first.Formatted(), second.Formatted())
}

func TestComputeTotals_NonDomesticZeroesTax(t *testing.T) {
	r := pricing.NewResolver()
	for _, j := range []string{"DE", "Germany", "", "   ", "N L", "unknown"} {
		t.Run(j, func(t *testing.T) {
			totals := pricing.ComputeTotals(scenarioItems(), j, r)
			assert.True(t, totals.TaxAmount.IsZero())
		})
	}
}

func TestComputeTotals_DomesticPassThrough(t *testing.T) {
	r := pricing.NewResolver()
	items := []pricing.LineItem{
		{ID: "1", UnitPrice: "4.00", Quantity: 5, VATRate: 9},
		{ID: "2", UnitPrice: "100", Quantity: 1, VATRate: 21},
	}
	for _, j := range []string{"NL", "nld", "Netherlands", "NETHERLANDS", " netherlands "} {
		t.Run(j, func(t *testing.T) {
			totals := pricing.ComputeTotals(items, j, r)
			assert.Equal(t, "22.80", totals.Formatted().TaxAmount)
		})
	}
}

func TestComputeTotals_MalformedPriceContributesZero(t *testing.T) {
	items := []pricing.LineItem{{ID: "x", UnitPrice: "abc", Quantity: 3, VATRate: 21}}

	var totals pricing.Totals
	require.NotPanics(t, func() {
		totals = pricing.ComputeTotals(items, "NL", pricing.NewResolver())
	})
	assert.True(t, totals.SubtotalExclTax.IsZero())
	assert.True(t, totals.TaxAmount.IsZero())
}

func TestComputeTotals_Empty(t *testing.T) {
	totals := pricing.ComputeTotals(nil, "NL", pricing.NewResolver())
	assert.Equal(t, pricing.FormattedTotals{SubtotalExclTax: "0.00", TaxAmount: "0.00", TotalInclTax: "0.00"}, totals.Formatted())
}

func TestResolver_EffectiveRate(t *testing.T) {
	r := pricing.NewResolver()

	assert.Equal(t, 21.0, r.EffectiveRate("NL", 21))
	assert.Equal(t, 0.0, r.EffectiveRate("BE", 21))
	assert.Equal(t, 0.0, r.EffectiveRate("NL", math.NaN()))
	assert.Equal(t, 0.0, r.EffectiveRate("NL", 150))
}

func TestResolver_CustomSpellings(t *testing.T) {
	r := pricing.NewResolver("BE", "Belgium")

	assert.True(t, r.IsDomestic("belgium"))
	assert.False(t, r.IsDomestic("NL"))
}

func TestTotals_MarshalJSON(t *testing.T) {
	totals := pricing.ComputeTotals(scenarioItems(), "NL", pricing.NewResolver())

	data, err := totals.MarshalJSON()
	require.NoError(t, err)
	assert.JSONEq(t, `{"total_exc_btw":"25.50","total_vat":"4.20","total_inc_btw":"29.70"}`, string(data))
}
