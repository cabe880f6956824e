package service

import (
	"errors"

	"github.com/google/uuid"

	"backoffice/internal/domain"
	"backoffice/internal/pricing"
)

// Pricing bundles the tax resolver with the VAT rate copied onto lines whose
// product carries none.
type Pricing struct {
	Resolver       *pricing.Resolver
	DefaultVATRate float64
}

// RateFor returns the VAT rate to copy onto a new line for product.
func (p Pricing) RateFor(product *domain.Product) float64 {
	if product != nil && product.VATRate != nil {
		return *product.VATRate
	}
	return p.DefaultVATRate
}

// Quote is an unsaved set of priced lines for one supplier.
type Quote struct {
	SupplierID uuid.UUID             `json:"supplier"`
	Country    string                `json:"country"`
	Items      []domain.PurchaseItem `json:"items"`
	pricing.FormattedTotals
}

type lineMeta struct {
	title string
	ean   string
}

// itemSet is the editable line list of one purchase. Arithmetic and id
// bookkeeping live in pricing.Collection; itemSet carries the product
// description fields alongside.
type itemSet struct {
	coll *pricing.Collection
	meta map[string]lineMeta
}

func newItemSet(resolver *pricing.Resolver, country string, items []domain.PurchaseItem) (*itemSet, error) {
	s := &itemSet{
		coll: pricing.NewCollection(resolver, country),
		meta: make(map[string]lineMeta, len(items)),
	}
	for i := range items {
		if _, err := s.add(items[i]); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func (s *itemSet) add(item domain.PurchaseItem) (domain.PurchaseItem, error) {
	li := pricing.LineItem{
		ProductID: item.ProductID.String(),
		UnitPrice: item.UnitPrice,
		Quantity:  item.Quantity,
		VATRate:   item.VATRate,
	}
	if item.ID != uuid.Nil {
		li.ID = item.ID.String()
	}
	added, err := s.coll.Add(li)
	if err != nil {
		return domain.PurchaseItem{}, lineItemError(err)
	}
	s.meta[added.ID] = lineMeta{title: item.ProductTitle, ean: item.ProductEAN}
	return s.toPurchaseItem(added), nil
}

func (s *itemSet) remove(itemID uuid.UUID) error {
	if err := s.coll.Remove(itemID.String()); err != nil {
		return lineItemError(err)
	}
	delete(s.meta, itemID.String())
	return nil
}

// findProduct returns the first line holding productID.
func (s *itemSet) findProduct(productID uuid.UUID) (pricing.LineItem, bool) {
	for _, li := range s.coll.Items() {
		if li.ProductID == productID.String() {
			return li, true
		}
	}
	return pricing.LineItem{}, false
}

func (s *itemSet) get(itemID uuid.UUID) (domain.PurchaseItem, bool) {
	li, ok := s.coll.Get(itemID.String())
	if !ok {
		return domain.PurchaseItem{}, false
	}
	return s.toPurchaseItem(li), true
}

func (s *itemSet) items() []domain.PurchaseItem {
	lines := s.coll.Items()
	out := make([]domain.PurchaseItem, 0, len(lines))
	for _, li := range lines {
		out = append(out, s.toPurchaseItem(li))
	}
	return out
}

func (s *itemSet) toPurchaseItem(li pricing.LineItem) domain.PurchaseItem {
	m := s.meta[li.ID]
	id, _ := uuid.Parse(li.ID)
	productID, _ := uuid.Parse(li.ProductID)
	return domain.PurchaseItem{
		ID:           id,
		ProductID:    productID,
		ProductTitle: m.title,
		ProductEAN:   m.ean,
		Quantity:     li.Quantity,
		UnitPrice:    li.UnitPrice,
		VATRate:      li.VATRate,
	}
}

// applyTo writes the lines and freshly computed totals onto p.
func (s *itemSet) applyTo(p *domain.Purchase) {
	p.Items = s.items()
	for i := range p.Items {
		p.Items[i].PurchaseID = p.ID
		p.Items[i].Position = i
	}
	s.applyTotals(p)
}

// applyTotals writes freshly computed totals onto p and leaves its lines alone.
func (s *itemSet) applyTotals(p *domain.Purchase) {
	t := s.coll.Totals().Formatted()
	p.TotalExcBTW = t.SubtotalExclTax
	p.TotalVAT = t.TaxAmount
	p.TotalIncBTW = t.TotalInclTax
}

func lineItemError(err error) error {
	switch {
	case errors.Is(err, pricing.ErrLineItemNotFound):
		return domain.ErrLineItemNotFound
	case errors.Is(err, pricing.ErrDuplicateLineItem):
		return domain.ErrDuplicateLineItem
	case errors.Is(err, pricing.ErrInvalidQuantity):
		return domain.ErrInvalidQuantity
	case errors.Is(err, pricing.ErrInvalidVATRate):
		return domain.ErrInvalidVATRate
	default:
		return err
	}
}
