package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"backoffice/internal/csvexport"
	"backoffice/internal/domain"
	"backoffice/internal/email"
	"backoffice/internal/port"
)

// PurchaseItemInput is one line of a full purchase payload. Title, EAN and VAT
// rate are copied from the product when left empty.
type PurchaseItemInput struct {
	ID           *uuid.UUID `json:"id"`
	ProductID    uuid.UUID  `json:"product" binding:"required"`
	ProductTitle string     `json:"product_title"`
	ProductEAN   string     `json:"product_ean"`
	Quantity     int        `json:"product_quantity" binding:"required,min=1"`
	UnitPrice    string     `json:"product_purchase_price"`
	VATRate      *float64   `json:"vat_rate"`
}

// PurchaseInput is the full payload for creating, replacing or quoting a purchase.
// Client supplied totals are not part of it; totals are always derived.
type PurchaseInput struct {
	SupplierID          uuid.UUID           `json:"supplier_id" binding:"required"`
	Type                domain.PurchaseType `json:"type"`
	PurchaseInvoiceDate *time.Time          `json:"purchase_invoice_date"`
	Items               []PurchaseItemInput `json:"items" binding:"dive"`
}

// AddItemInput adds a product by EAN.
type AddItemInput struct {
	EAN      string `json:"ean" binding:"required"`
	Quantity int    `json:"quantity" binding:"required,min=1"`
}

// UpdateItemInput changes one line. Nil fields are left alone.
type UpdateItemInput struct {
	Quantity  *int     `json:"quantity"`
	UnitPrice *string  `json:"unit_price"`
	VATRate   *float64 `json:"vat_rate"`
}

// PurchaseService defines the purchase and offer contract.
type PurchaseService interface {
	Quote(ctx context.Context, input PurchaseInput) (*Quote, error)
	Create(ctx context.Context, actor domain.Actor, input PurchaseInput) (*domain.Purchase, error)
	GetByID(ctx context.Context, purchaseID uuid.UUID) (*domain.Purchase, error)
	List(ctx context.Context, filter domain.PurchaseFilter, offset, limit int) ([]domain.Purchase, int, error)
	Update(ctx context.Context, actor domain.Actor, purchaseID uuid.UUID, input PurchaseInput) (*domain.Purchase, error)
	AddItem(ctx context.Context, actor domain.Actor, purchaseID uuid.UUID, input AddItemInput) (*domain.Purchase, error)
	UpdateItem(ctx context.Context, actor domain.Actor, purchaseID, itemID uuid.UUID, input UpdateItemInput) (*domain.Purchase, error)
	RemoveItem(ctx context.Context, actor domain.Actor, purchaseID, itemID uuid.UUID) (*domain.Purchase, error)
	UpdateStatus(ctx context.Context, actor domain.Actor, purchaseID uuid.UUID, status domain.PurchaseStatus) (*domain.Purchase, error)
	Convert(ctx context.Context, actor domain.Actor, purchaseID uuid.UUID) (*domain.Purchase, error)
	Send(ctx context.Context, actor domain.Actor, purchaseID uuid.UUID) (*domain.Purchase, error)
	Delete(ctx context.Context, purchaseID uuid.UUID) error
	Export(ctx context.Context, w io.Writer, filter domain.PurchaseFilter) error
}

type purchaseService struct {
	repo         port.PurchaseRepository
	supplierRepo port.SupplierRepository
	productRepo  port.ProductRepository
	products     ProductService
	mailer       port.PurchaseMailer
	pricing      Pricing
	senderName   string
	log          *zap.Logger
}

// NewPurchaseService creates a new PurchaseService implementation.
func NewPurchaseService(
	repo port.PurchaseRepository,
	supplierRepo port.SupplierRepository,
	productRepo port.ProductRepository,
	products ProductService,
	mailer port.PurchaseMailer,
	p Pricing,
	senderName string,
	log *zap.Logger,
) PurchaseService {
	return &purchaseService{
		repo:         repo,
		supplierRepo: supplierRepo,
		productRepo:  productRepo,
		products:     products,
		mailer:       mailer,
		pricing:      p,
		senderName:   senderName,
		log:          log,
	}
}

func (s *purchaseService) supplier(ctx context.Context, supplierID uuid.UUID) (*domain.Supplier, error) {
	supplier, err := s.supplierRepo.GetByID(ctx, supplierID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrSupplierNotFound
		}
		return nil, err
	}
	return supplier, nil
}

// buildItems turns payload lines into purchase items, filling product details
// the client left out. A client line id is kept only when it is in current;
// every other line gets a fresh id.
func (s *purchaseService) buildItems(ctx context.Context, lines []PurchaseItemInput, current map[uuid.UUID]bool) ([]domain.PurchaseItem, error) {
	ids := make([]uuid.UUID, 0, len(lines))
	for i := range lines {
		ids = append(ids, lines[i].ProductID)
	}
	products := map[uuid.UUID]*domain.Product{}
	if len(ids) > 0 {
		found, err := s.productRepo.GetByIDs(ctx, ids)
		if err != nil {
			return nil, err
		}
		for i := range found {
			products[found[i].ID] = &found[i]
		}
	}

	items := make([]domain.PurchaseItem, 0, len(lines))
	for _, line := range lines {
		product, ok := products[line.ProductID]
		if !ok {
			return nil, domain.ErrProductNotFound
		}
		item := lineFromProduct(product, line.Quantity, s.pricing)
		if line.ID != nil && current[*line.ID] {
			item.ID = *line.ID
		}
		if line.ProductTitle != "" {
			item.ProductTitle = line.ProductTitle
		}
		if line.ProductEAN != "" {
			item.ProductEAN = line.ProductEAN
		}
		if line.UnitPrice != "" {
			item.UnitPrice = line.UnitPrice
		}
		if line.VATRate != nil {
			item.VATRate = *line.VATRate
		}
		items = append(items, item)
	}
	return items, nil
}

// Quote prices a candidate purchase without storing it.
func (s *purchaseService) Quote(ctx context.Context, input PurchaseInput) (*Quote, error) {
	supplier, err := s.supplier(ctx, input.SupplierID)
	if err != nil {
		return nil, err
	}
	items, err := s.buildItems(ctx, input.Items, nil)
	if err != nil {
		return nil, err
	}
	set, err := newItemSet(s.pricing.Resolver, supplier.Country, items)
	if err != nil {
		return nil, err
	}
	return &Quote{
		SupplierID:      supplier.ID,
		Country:         supplier.Country,
		Items:           set.items(),
		FormattedTotals: set.coll.Totals().Formatted(),
	}, nil
}

func (s *purchaseService) Create(ctx context.Context, actor domain.Actor, input PurchaseInput) (*domain.Purchase, error) {
	purchaseType := input.Type
	if purchaseType == "" {
		purchaseType = domain.PurchaseTypePurchase
	}
	if !domain.ValidPurchaseTypes[purchaseType] {
		return nil, domain.ErrInvalidPurchaseType
	}
	supplier, err := s.supplier(ctx, input.SupplierID)
	if err != nil {
		return nil, err
	}
	items, err := s.buildItems(ctx, input.Items, nil)
	if err != nil {
		return nil, err
	}
	set, err := newItemSet(s.pricing.Resolver, supplier.Country, items)
	if err != nil {
		return nil, err
	}

	purchase := &domain.Purchase{
		ID:                  uuid.New(),
		Type:                purchaseType,
		Status:              domain.PurchaseStatusPending,
		SupplierID:          supplier.ID,
		PurchaseInvoiceDate: invoiceDate(input.PurchaseInvoiceDate),
		CreatedBy:           actor.UserID,
	}
	set.applyTo(purchase)
	appendHistory(purchase, actor, domain.HistoryActionCreate, map[string]any{
		"type":          purchase.Type,
		"items":         len(purchase.Items),
		"total_inc_btw": purchase.TotalIncBTW,
	})

	if err := s.repo.Create(ctx, purchase); err != nil {
		return nil, err
	}
	s.log.Info("purchase created",
		zap.String("purchase_id", purchase.ID.String()),
		zap.String("type", string(purchase.Type)),
		zap.String("supplier_id", supplier.ID.String()),
		zap.String("total_inc_btw", purchase.TotalIncBTW),
	)
	return purchase, nil
}

// GetByID returns the purchase. Totals of a pending purchase are recomputed
// under the supplier's current country; committed totals are returned as stored.
func (s *purchaseService) GetByID(ctx context.Context, purchaseID uuid.UUID) (*domain.Purchase, error) {
	purchase, err := s.repo.GetByID(ctx, purchaseID)
	if err != nil {
		return nil, err
	}
	if err := s.refreshTotals(ctx, purchase); err != nil {
		return nil, err
	}
	return purchase, nil
}

func (s *purchaseService) List(ctx context.Context, filter domain.PurchaseFilter, offset, limit int) ([]domain.Purchase, int, error) {
	purchases, total, err := s.repo.List(ctx, filter, offset, limit)
	if err != nil {
		return nil, 0, err
	}
	ptrs := make([]*domain.Purchase, len(purchases))
	for i := range purchases {
		ptrs[i] = &purchases[i]
	}
	if err := s.refreshTotals(ctx, ptrs...); err != nil {
		return nil, 0, err
	}
	return purchases, total, nil
}

// refreshTotals recomputes the totals of pending purchases in place. Nothing
// is written back. A purchase whose supplier is gone keeps its stored totals.
func (s *purchaseService) refreshTotals(ctx context.Context, purchases ...*domain.Purchase) error {
	countries := make(map[uuid.UUID]*string)
	for _, p := range purchases {
		if !p.Editable() {
			continue
		}
		country, seen := countries[p.SupplierID]
		if !seen {
			supplier, err := s.supplierRepo.GetByID(ctx, p.SupplierID)
			switch {
			case errors.Is(err, domain.ErrNotFound):
			case err != nil:
				return err
			default:
				country = &supplier.Country
			}
			countries[p.SupplierID] = country
		}
		if country == nil {
			continue
		}
		set, err := newItemSet(s.pricing.Resolver, *country, p.Items)
		if err != nil {
			s.log.Warn("stored purchase lines do not hydrate, returning stored totals",
				zap.String("purchase_id", p.ID.String()),
				zap.Error(err),
			)
			continue
		}
		set.applyTotals(p)
	}
	return nil
}

// Update replaces header and lines of a pending purchase.
func (s *purchaseService) Update(ctx context.Context, actor domain.Actor, purchaseID uuid.UUID, input PurchaseInput) (*domain.Purchase, error) {
	purchase, err := s.editable(ctx, purchaseID)
	if err != nil {
		return nil, err
	}
	if input.Type != "" {
		if !domain.ValidPurchaseTypes[input.Type] {
			return nil, domain.ErrInvalidPurchaseType
		}
		purchase.Type = input.Type
	}
	supplier, err := s.supplier(ctx, input.SupplierID)
	if err != nil {
		return nil, err
	}
	current := make(map[uuid.UUID]bool, len(purchase.Items))
	for i := range purchase.Items {
		current[purchase.Items[i].ID] = true
	}
	items, err := s.buildItems(ctx, input.Items, current)
	if err != nil {
		return nil, err
	}
	set, err := newItemSet(s.pricing.Resolver, supplier.Country, items)
	if err != nil {
		return nil, err
	}

	previousTotal := purchase.TotalIncBTW
	purchase.SupplierID = supplier.ID
	if input.PurchaseInvoiceDate != nil {
		purchase.PurchaseInvoiceDate = *input.PurchaseInvoiceDate
	}
	set.applyTo(purchase)
	appendHistory(purchase, actor, domain.HistoryActionUpdate, map[string]any{
		"items":         len(purchase.Items),
		"total_inc_btw": []string{previousTotal, purchase.TotalIncBTW},
	})
	return s.save(ctx, purchase)
}

// AddItem looks the product up by EAN and adds it with its cost price and VAT
// rate. A product already on the purchase has its quantity increased instead.
func (s *purchaseService) AddItem(ctx context.Context, actor domain.Actor, purchaseID uuid.UUID, input AddItemInput) (*domain.Purchase, error) {
	if input.Quantity < 1 {
		return nil, domain.ErrInvalidQuantity
	}
	purchase, set, err := s.openItems(ctx, purchaseID)
	if err != nil {
		return nil, err
	}
	product, err := s.products.Lookup(ctx, input.EAN)
	if err != nil {
		return nil, err
	}

	changes := map[string]any{"ean": product.EAN, "product": product.ID}
	if existing, ok := set.findProduct(product.ID); ok {
		quantity := existing.Quantity + input.Quantity
		if err := set.coll.UpdateQuantity(existing.ID, quantity); err != nil {
			return nil, lineItemError(err)
		}
		changes["item"] = existing.ID
		changes["quantity"] = []int{existing.Quantity, quantity}
	} else {
		added, err := set.add(lineFromProduct(product, input.Quantity, s.pricing))
		if err != nil {
			return nil, err
		}
		changes["item"] = added.ID
		changes["quantity"] = added.Quantity
		changes["unit_price"] = added.UnitPrice
		changes["vat_rate"] = added.VATRate
	}

	set.applyTo(purchase)
	appendHistory(purchase, actor, domain.HistoryActionAddItem, changes)
	return s.save(ctx, purchase)
}

func (s *purchaseService) UpdateItem(ctx context.Context, actor domain.Actor, purchaseID, itemID uuid.UUID, input UpdateItemInput) (*domain.Purchase, error) {
	if input.Quantity == nil && input.UnitPrice == nil && input.VATRate == nil {
		return nil, domain.ErrEmptyItemUpdate
	}
	purchase, set, err := s.openItems(ctx, purchaseID)
	if err != nil {
		return nil, err
	}
	before, ok := set.get(itemID)
	if !ok {
		return nil, domain.ErrLineItemNotFound
	}

	id := itemID.String()
	changes := map[string]any{"item": itemID}
	if input.Quantity != nil {
		if err := set.coll.UpdateQuantity(id, *input.Quantity); err != nil {
			return nil, lineItemError(err)
		}
		changes["quantity"] = []int{before.Quantity, *input.Quantity}
	}
	if input.VATRate != nil {
		if err := set.coll.UpdateVATRate(id, *input.VATRate); err != nil {
			return nil, lineItemError(err)
		}
		changes["vat_rate"] = []float64{before.VATRate, *input.VATRate}
	}
	if input.UnitPrice != nil {
		if err := set.coll.UpdateUnitPrice(id, *input.UnitPrice); err != nil {
			return nil, lineItemError(err)
		}
		changes["unit_price"] = []string{before.UnitPrice, *input.UnitPrice}
	}

	set.applyTo(purchase)
	appendHistory(purchase, actor, domain.HistoryActionUpdateItem, changes)
	return s.save(ctx, purchase)
}

func (s *purchaseService) RemoveItem(ctx context.Context, actor domain.Actor, purchaseID, itemID uuid.UUID) (*domain.Purchase, error) {
	purchase, set, err := s.openItems(ctx, purchaseID)
	if err != nil {
		return nil, err
	}
	removed, ok := set.get(itemID)
	if !ok {
		return nil, domain.ErrLineItemNotFound
	}
	if err := set.remove(itemID); err != nil {
		return nil, err
	}

	set.applyTo(purchase)
	appendHistory(purchase, actor, domain.HistoryActionRemoveItem, map[string]any{
		"item":    itemID,
		"product": removed.ProductID,
	})
	return s.save(ctx, purchase)
}

// UpdateStatus commits or cancels a pending purchase.
func (s *purchaseService) UpdateStatus(ctx context.Context, actor domain.Actor, purchaseID uuid.UUID, status domain.PurchaseStatus) (*domain.Purchase, error) {
	if !actor.Can(domain.CapCommitPurchases) {
		return nil, domain.ErrForbidden
	}
	purchase, err := s.repo.GetByID(ctx, purchaseID)
	if err != nil {
		return nil, err
	}
	if purchase.Status != domain.PurchaseStatusPending ||
		(status != domain.PurchaseStatusCompleted && status != domain.PurchaseStatusCancelled) {
		return nil, domain.ErrInvalidStatusTransition
	}

	previous := purchase.Status
	purchase.Status = status
	appendHistory(purchase, actor, domain.HistoryActionStatus, map[string]any{
		"status": []domain.PurchaseStatus{previous, status},
	})
	saved, err := s.save(ctx, purchase)
	if err != nil {
		return nil, err
	}
	s.log.Info("purchase status changed",
		zap.String("purchase_id", purchaseID.String()),
		zap.String("status", string(status)),
		zap.String("by", actor.Email),
	)
	return saved, nil
}

// Convert turns a pending offer into a purchase.
func (s *purchaseService) Convert(ctx context.Context, actor domain.Actor, purchaseID uuid.UUID) (*domain.Purchase, error) {
	purchase, err := s.editable(ctx, purchaseID)
	if err != nil {
		return nil, err
	}
	if purchase.Type != domain.PurchaseTypeOffer {
		return nil, domain.ErrNotAnOffer
	}
	purchase.Type = domain.PurchaseTypePurchase
	appendHistory(purchase, actor, domain.HistoryActionConvert, map[string]any{
		"type": []domain.PurchaseType{domain.PurchaseTypeOffer, domain.PurchaseTypePurchase},
	})
	return s.save(ctx, purchase)
}

// Send mails the purchase order to the supplier. Delivery failures are returned
// to the caller and not retried.
func (s *purchaseService) Send(ctx context.Context, actor domain.Actor, purchaseID uuid.UUID) (*domain.Purchase, error) {
	purchase, err := s.repo.GetByID(ctx, purchaseID)
	if err != nil {
		return nil, err
	}
	supplier, err := s.supplier(ctx, purchase.SupplierID)
	if err != nil {
		return nil, err
	}
	if supplier.Email == "" {
		return nil, domain.ErrSupplierEmailMissing
	}

	mail, err := email.RenderPurchaseOrder(s.senderName, purchase, supplier, s.pricing.Resolver)
	if err != nil {
		return nil, fmt.Errorf("purchaseService.Send: %w", err)
	}
	if err := s.mailer.SendPurchaseOrder(ctx, mail); err != nil {
		s.log.Error("purchase order delivery failed",
			zap.String("purchase_id", purchaseID.String()),
			zap.String("to", supplier.Email),
			zap.Error(err),
		)
		return nil, fmt.Errorf("%w: %v", domain.ErrMailDeliveryFailed, err)
	}

	appendHistory(purchase, actor, domain.HistoryActionSend, map[string]any{"to": supplier.Email})
	return s.save(ctx, purchase)
}

func (s *purchaseService) Delete(ctx context.Context, purchaseID uuid.UUID) error {
	if err := s.repo.Delete(ctx, purchaseID); err != nil {
		return err
	}
	s.log.Info("purchase deleted", zap.String("purchase_id", purchaseID.String()))
	return nil
}

// Export writes every purchase matching filter as CSV, BOM first.
func (s *purchaseService) Export(ctx context.Context, w io.Writer, filter domain.PurchaseFilter) error {
	purchases, err := s.repo.ListAll(ctx, filter)
	if err != nil {
		return err
	}

	suppliers := make(map[string]*domain.Supplier)
	looked := make(map[uuid.UUID]bool)
	for i := range purchases {
		id := purchases[i].SupplierID
		if looked[id] {
			continue
		}
		looked[id] = true
		supplier, err := s.supplierRepo.GetByID(ctx, id)
		if errors.Is(err, domain.ErrNotFound) {
			continue
		}
		if err != nil {
			return err
		}
		suppliers[id.String()] = supplier
	}

	if _, err := w.Write(csvexport.BOM); err != nil {
		return fmt.Errorf("writing bom: %w", err)
	}
	cw := csvexport.NewWriter(w)
	if err := cw.WriteHeader(); err != nil {
		return fmt.Errorf("writing csv header: %w", err)
	}
	if err := cw.WritePurchases(purchases, suppliers); err != nil {
		return fmt.Errorf("writing csv rows: %w", err)
	}
	cw.Flush()
	return cw.Error()
}

func (s *purchaseService) editable(ctx context.Context, purchaseID uuid.UUID) (*domain.Purchase, error) {
	purchase, err := s.repo.GetByID(ctx, purchaseID)
	if err != nil {
		return nil, err
	}
	if !purchase.Editable() {
		return nil, domain.ErrPurchaseNotEditable
	}
	return purchase, nil
}

// openItems loads an editable purchase and hydrates its lines under the
// supplier's current country.
func (s *purchaseService) openItems(ctx context.Context, purchaseID uuid.UUID) (*domain.Purchase, *itemSet, error) {
	purchase, err := s.editable(ctx, purchaseID)
	if err != nil {
		return nil, nil, err
	}
	supplier, err := s.supplier(ctx, purchase.SupplierID)
	if err != nil {
		return nil, nil, err
	}
	set, err := newItemSet(s.pricing.Resolver, supplier.Country, purchase.Items)
	if err != nil {
		return nil, nil, err
	}
	return purchase, set, nil
}

func (s *purchaseService) save(ctx context.Context, purchase *domain.Purchase) (*domain.Purchase, error) {
	if err := s.repo.Save(ctx, purchase); err != nil {
		return nil, err
	}
	return purchase, nil
}

func appendHistory(p *domain.Purchase, actor domain.Actor, action domain.HistoryAction, changes map[string]any) {
	p.History = append(p.History, domain.HistoryEntry{
		ID:        uuid.New(),
		Action:    action,
		Changes:   changes,
		User:      actor.Email,
		CreatedAt: time.Now().UTC(),
	})
}

func invoiceDate(d *time.Time) time.Time {
	if d == nil || d.IsZero() {
		return time.Now().UTC().Truncate(24 * time.Hour)
	}
	return *d
}
