package pricing

import (
	"errors"

	"github.com/google/uuid"
)

var (
	ErrLineItemNotFound  = errors.New("line item not found")
	ErrDuplicateLineItem = errors.New("line item id already in use")
	ErrInvalidQuantity   = errors.New("quantity must be at least 1")
	ErrInvalidVATRate    = errors.New("vat rate must be between 0 and 100")
)

// Collection is the ordered, editable set of line items of one purchase or offer
// together with the counterparty jurisdiction that decides tax applicability.
// It is not safe for concurrent use.
type Collection struct {
	resolver     *Resolver
	jurisdiction string
	items        []LineItem
}

// NewCollection hydrates a collection. Pass no items for a new purchase.
func NewCollection(r *Resolver, jurisdiction string, items ...LineItem) *Collection {
	if r == nil {
		r = NewResolver()
	}
	c := &Collection{resolver: r, jurisdiction: jurisdiction}
	c.items = append(c.items, items...)
	return c
}

// Add appends item, assigning a fresh id when it has none.
func (c *Collection) Add(item LineItem) (LineItem, error) {
	if item.Quantity < 1 {
		return LineItem{}, ErrInvalidQuantity
	}
	if !validRate(item.VATRate) {
		return LineItem{}, ErrInvalidVATRate
	}
	if item.ID == "" {
		item.ID = uuid.NewString()
	} else if c.indexOf(item.ID) >= 0 {
		return LineItem{}, ErrDuplicateLineItem
	}
	c.items = append(c.items, item)
	return item, nil
}

// Remove deletes the item with the given id.
func (c *Collection) Remove(id string) error {
	i := c.indexOf(id)
	if i < 0 {
		return ErrLineItemNotFound
	}
	c.items = append(c.items[:i:i], c.items[i+1:]...)
	return nil
}

// UpdateQuantity sets the quantity of one item.
func (c *Collection) UpdateQuantity(id string, quantity int) error {
	if quantity < 1 {
		return ErrInvalidQuantity
	}
	return c.update(id, func(item *LineItem) { item.Quantity = quantity })
}

// UpdateUnitPrice sets the tax-exclusive unit price of one item. The price is
// stored as entered; malformed values contribute zero to the totals.
func (c *Collection) UpdateUnitPrice(id, price string) error {
	return c.update(id, func(item *LineItem) { item.UnitPrice = price })
}

// UpdateVATRate overrides the VAT rate copied onto one item.
func (c *Collection) UpdateVATRate(id string, rate float64) error {
	if !validRate(rate) {
		return ErrInvalidVATRate
	}
	return c.update(id, func(item *LineItem) { item.VATRate = rate })
}

// SetJurisdiction changes the counterparty jurisdiction.
func (c *Collection) SetJurisdiction(jurisdiction string) {
	c.jurisdiction = jurisdiction
}

// Jurisdiction returns the current counterparty jurisdiction.
func (c *Collection) Jurisdiction() string {
	return c.jurisdiction
}

// Items returns a copy of the items in order.
func (c *Collection) Items() []LineItem {
	out := make([]LineItem, len(c.items))
	copy(out, c.items)
	return out
}

// Get returns the item with the given id.
func (c *Collection) Get(id string) (LineItem, bool) {
	i := c.indexOf(id)
	if i < 0 {
		return LineItem{}, false
	}
	return c.items[i], true
}

// Len returns the number of items.
func (c *Collection) Len() int {
	return len(c.items)
}

// Totals recomputes the totals from the current items.
func (c *Collection) Totals() Totals {
	return ComputeTotals(c.items, c.jurisdiction, c.resolver)
}

func (c *Collection) update(id string, fn func(*LineItem)) error {
	i := c.indexOf(id)
	if i < 0 {
		return ErrLineItemNotFound
	}
	fn(&c.items[i])
	return nil
}

func (c *Collection) indexOf(id string) int {
	for i := range c.items {
		if c.items[i].ID == id {
			return i
		}
	}
	return -1
}

func validRate(rate float64) bool {
	return rate >= 0 && rate <= 100
}
