package pricing_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"backoffice/internal/pricing"
)

func TestCollection_AddAssignsID(t *testing.T) {
	c := pricing.NewCollection(nil, "NL")

	item, err := c.Add(pricing.LineItem{UnitPrice: "1.00", Quantity: 1, VATRate: 21})

	require.NoError(t, err)
	assert.NotEmpty(t, item.ID)
	assert.Equal(t, 1, c.Len())
}

func TestCollection_AddRejectsDuplicateAndInvalid(t *testing.T) {
	c := pricing.NewCollection(nil, "NL", pricing.LineItem{ID: "a", UnitPrice: "1", Quantity: 1})

	_, err := c.Add(pricing.LineItem{ID: "a", UnitPrice: "1", Quantity: 1})
	assert.ErrorIs(t, err, pricing.ErrDuplicateLineItem)

	_, err = c.Add(pricing.LineItem{UnitPrice: "1", Quantity: 0})
	assert.ErrorIs(t, err, pricing.ErrInvalidQuantity)

	_, err = c.Add(pricing.LineItem{UnitPrice: "1", Quantity: 1, VATRate: 101})
	assert.ErrorIs(t, err, pricing.ErrInvalidVATRate)

	assert.Equal(t, 1, c.Len())
}

func TestCollection_RemoveMatchesFreshComputation(t *testing.T) {
	r := pricing.NewResolver()
	items := []pricing.LineItem{
		{ID: "a", UnitPrice: "10.00", Quantity: 2, VATRate: 21},
		{ID: "b", UnitPrice: "5,50", Quantity: 1, VATRate: 0},
		{ID: "c", UnitPrice: "7.25", Quantity: 4, VATRate: 9},
	}
	c := pricing.NewCollection(r, "NL", items...)

	require.NoError(t, c.Remove("c"))

	fresh := pricing.ComputeTotals(items[:2], "NL", r)
	assert.Equal(t, fresh.Formatted(), c.Totals().Formatted())
	_, ok := c.Get("c")
	assert.False(t, ok)
}

func TestCollection_RemoveDoesNotAliasHydratedSlice(t *testing.T) {
	items := []pricing.LineItem{
		{ID: "a", UnitPrice: "1", Quantity: 1},
		{ID: "b", UnitPrice: "2", Quantity: 1},
	}
	c := pricing.NewCollection(nil, "NL", items...)

	require.NoError(t, c.Remove("a"))

	assert.Equal(t, "a", items[0].ID)
	assert.Equal(t, "b", c.Items()[0].ID)
}

func TestCollection_RemoveUnknown(t *testing.T) {
	c := pricing.NewCollection(nil, "NL")
	assert.ErrorIs(t, c.Remove("nope"), pricing.ErrLineItemNotFound)
}

func TestCollection_MutationsRecompute(t *testing.T) {
	c := pricing.NewCollection(nil, "NL", pricing.LineItem{ID: "a", UnitPrice: "10.00", Quantity: 1, VATRate: 21})
	assert.Equal(t, "12.10", c.Totals().Formatted().TotalInclTax)

	require.NoError(t, c.UpdateQuantity("a", 3))
	assert.Equal(t, "36.30", c.Totals().Formatted().TotalInclTax)

	require.NoError(t, c.UpdateUnitPrice("a", "2,00"))
	assert.Equal(t, "7.26", c.Totals().Formatted().TotalInclTax)

	require.NoError(t, c.UpdateVATRate("a", 9))
	assert.Equal(t, "6.54", c.Totals().Formatted().TotalInclTax)

	c.SetJurisdiction("DE")
	assert.Equal(t, "6.00", c.Totals().Formatted().TotalInclTax)
}

func TestCollection_FailedMutationLeavesItemsUnchanged(t *testing.T) {
	c := pricing.NewCollection(nil, "NL", pricing.LineItem{ID: "a", UnitPrice: "10.00", Quantity: 2, VATRate: 21})
	before := c.Totals().Formatted()

	assert.ErrorIs(t, c.UpdateQuantity("a", 0), pricing.ErrInvalidQuantity)
	assert.ErrorIs(t, c.UpdateVATRate("a", -1), pricing.ErrInvalidVATRate)
	assert.ErrorIs(t, c.UpdateUnitPrice("missing", "1"), pricing.ErrLineItemNotFound)

	assert.Equal(t, before, c.Totals().Formatted())
}

func TestCollection_MalformedPriceIsKept(t *testing.T) {
	c := pricing.NewCollection(nil, "NL", pricing.LineItem{ID: "a", UnitPrice: "10", Quantity: 1, VATRate: 21})

	require.NoError(t, c.UpdateUnitPrice("a", "abc"))

	item, _ := c.Get("a")
	assert.Equal(t, "abc", item.UnitPrice)
	assert.Equal(t, "0.00", c.Totals().Formatted().TotalInclTax)
}
