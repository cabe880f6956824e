package pricing

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// LineItem is one product/quantity/price/VAT entry of a purchase or offer.
type LineItem struct {
	ID        string  `json:"id"`
	ProductID string  `json:"product_id"`
	UnitPrice string  `json:"unit_price"`
	Quantity  int     `json:"quantity"`
	VATRate   float64 `json:"vat_rate"`
}

// Totals are derived from a collection of line items and are never edited directly.
// Values are kept at full precision; rounding happens in Formatted.
type Totals struct {
	SubtotalExclTax decimal.Decimal
	TaxAmount       decimal.Decimal
	TotalInclTax    decimal.Decimal
}

// FormattedTotals holds Totals rendered to two decimals.
type FormattedTotals struct {
	SubtotalExclTax string `json:"total_exc_btw"`
	TaxAmount       string `json:"total_vat"`
	TotalInclTax    string `json:"total_inc_btw"`
}

// Formatted renders each total with exactly two decimals.
func (t Totals) Formatted() FormattedTotals {
	return FormattedTotals{
		SubtotalExclTax: FormatAmount(t.SubtotalExclTax),
		TaxAmount:       FormatAmount(t.TaxAmount),
		TotalInclTax:    FormatAmount(t.TotalInclTax),
	}
}

// MarshalJSON encodes the formatted totals.
func (t Totals) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.Formatted())
}

// Contribution returns the tax-exclusive amount and the tax of a single item.
// Malformed prices and quantities below 1 contribute zero.
func Contribution(item LineItem, jurisdiction string, r *Resolver) (net, tax decimal.Decimal) {
	if item.Quantity < 1 {
		return decimal.Zero, decimal.Zero
	}
	net = ParseAmount(item.UnitPrice).Mul(decimal.NewFromInt(int64(item.Quantity)))
	rate := r.EffectiveRate(jurisdiction, item.VATRate)
	if rate == 0 {
		return net, decimal.Zero
	}
	tax = net.Mul(decimal.NewFromFloat(rate)).Div(hundred)
	return net, tax
}

// ComputeTotals folds items into subtotal, tax and total. Subtotal and tax are
// summed independently and the total is their sum; nothing is rounded here.
func ComputeTotals(items []LineItem, jurisdiction string, r *Resolver) Totals {
	subtotal := decimal.Zero
	tax := decimal.Zero
	for _, item := range items {
		n, t := Contribution(item, jurisdiction, r)
		subtotal = subtotal.Add(n)
		tax = tax.Add(t)
	}
	return Totals{
		SubtotalExclTax: subtotal,
		TaxAmount:       tax,
		TotalInclTax:    subtotal.Add(tax),
	}
}
