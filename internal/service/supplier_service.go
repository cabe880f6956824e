package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"backoffice/internal/banking"
	"backoffice/internal/domain"
	"backoffice/internal/port"
)

// SupplierInput is the DTO for creating or replacing a supplier.
type SupplierInput struct {
	Name                string               `json:"name" binding:"required"`
	SupplierCode        string               `json:"supplier_code"`
	ContactPerson       string               `json:"contact_person"`
	Email               string               `json:"email" binding:"omitempty,email"`
	Phone               string               `json:"phone"`
	Address             string               `json:"address"`
	PostalCode          string               `json:"postal_code"`
	City                string               `json:"city"`
	Country             string               `json:"country"`
	IBAN                string               `json:"iban"`
	BIC                 string               `json:"bic"`
	VATNumber           string               `json:"vat_number"`
	KVKNumber           string               `json:"kvk_number"`
	PaymentMethod       domain.PaymentMethod `json:"payment_method"`
	OrderMethod         domain.OrderMethod   `json:"order_method"`
	PaymentTerms        string               `json:"payment_terms"`
	MinimumOrderAmount  string               `json:"minimum_order_amount" binding:"omitempty,money"`
	PercentageToAdd     int                  `json:"percentage_to_add" binding:"min=0,max=100"`
	IsActive            *bool                `json:"is_active"`
	HasGivenPaymentAuth bool                 `json:"has_given_payment_auth"`
	Memo                string               `json:"memo"`
}

// RecommendedProductInput is the DTO for adding a product to a supplier's offer.
type RecommendedProductInput struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	Quantity  int       `json:"quantity" binding:"required,min=1"`
}

// SupplierService defines the supplier management contract.
type SupplierService interface {
	Create(ctx context.Context, input SupplierInput) (*domain.Supplier, error)
	GetByID(ctx context.Context, supplierID uuid.UUID) (*domain.Supplier, error)
	List(ctx context.Context, search string, offset, limit int) ([]domain.Supplier, int, error)
	Update(ctx context.Context, actor domain.Actor, supplierID uuid.UUID, input SupplierInput) (*domain.Supplier, error)
	Delete(ctx context.Context, supplierID uuid.UUID) error
	AddRecommendedProduct(ctx context.Context, supplierID uuid.UUID, input RecommendedProductInput) (*domain.Supplier, error)
	RemoveRecommendedProduct(ctx context.Context, supplierID, productID uuid.UUID) (*domain.Supplier, error)
	BuildOffer(ctx context.Context, supplierID uuid.UUID) (*Quote, error)
	Purchases(ctx context.Context, supplierID uuid.UUID, offset, limit int) ([]domain.Purchase, int, error)
}

type supplierService struct {
	repo         port.SupplierRepository
	productRepo  port.ProductRepository
	purchaseRepo port.PurchaseRepository
	pricing      Pricing
	log          *zap.Logger
}

// NewSupplierService creates a new SupplierService implementation.
func NewSupplierService(
	repo port.SupplierRepository,
	productRepo port.ProductRepository,
	purchaseRepo port.PurchaseRepository,
	p Pricing,
	log *zap.Logger,
) SupplierService {
	return &supplierService{
		repo:         repo,
		productRepo:  productRepo,
		purchaseRepo: purchaseRepo,
		pricing:      p,
		log:          log,
	}
}

func validateSupplier(input *SupplierInput) error {
	if !domain.ValidPaymentMethods[input.PaymentMethod] {
		return domain.ErrInvalidPaymentMethod
	}
	if !domain.ValidOrderMethods[input.OrderMethod] {
		return domain.ErrInvalidOrderMethod
	}
	if input.PercentageToAdd < 0 || input.PercentageToAdd > 100 {
		return domain.ErrInvalidAmount
	}
	if input.MinimumOrderAmount != "" {
		input.MinimumOrderAmount = canonicalAmount(input.MinimumOrderAmount)
	}
	input.Name = strings.TrimSpace(input.Name)
	input.Country = strings.TrimSpace(input.Country)
	input.IBAN = banking.NormalizeIBAN(input.IBAN)
	input.BIC = strings.ToUpper(strings.TrimSpace(input.BIC))
	if input.BIC == "" {
		if bic, ok := banking.BICFromIBAN(input.IBAN); ok {
			input.BIC = bic
		}
	}
	return nil
}

func applySupplierInput(supplier *domain.Supplier, input SupplierInput) {
	supplier.Name = input.Name
	supplier.SupplierCode = input.SupplierCode
	supplier.ContactPerson = input.ContactPerson
	supplier.Email = strings.TrimSpace(input.Email)
	supplier.Phone = input.Phone
	supplier.Address = input.Address
	supplier.PostalCode = input.PostalCode
	supplier.City = input.City
	supplier.Country = input.Country
	supplier.IBAN = input.IBAN
	supplier.BIC = input.BIC
	supplier.VATNumber = input.VATNumber
	supplier.KVKNumber = input.KVKNumber
	supplier.PaymentMethod = input.PaymentMethod
	supplier.OrderMethod = input.OrderMethod
	supplier.PaymentTerms = input.PaymentTerms
	supplier.MinimumOrderAmount = input.MinimumOrderAmount
	supplier.PercentageToAdd = input.PercentageToAdd
	supplier.HasGivenPaymentAuth = input.HasGivenPaymentAuth
	supplier.Memo = input.Memo
	if input.IsActive != nil {
		supplier.IsActive = *input.IsActive
	}
}

func (s *supplierService) Create(ctx context.Context, input SupplierInput) (*domain.Supplier, error) {
	if err := validateSupplier(&input); err != nil {
		return nil, err
	}
	supplier := &domain.Supplier{IsActive: true}
	applySupplierInput(supplier, input)
	if err := s.repo.Create(ctx, supplier); err != nil {
		return nil, err
	}
	s.log.Info("supplier created", zap.String("supplier_id", supplier.ID.String()), zap.String("country", supplier.Country))
	return supplier, nil
}

func (s *supplierService) GetByID(ctx context.Context, supplierID uuid.UUID) (*domain.Supplier, error) {
	return s.repo.GetByID(ctx, supplierID)
}

func (s *supplierService) List(ctx context.Context, search string, offset, limit int) ([]domain.Supplier, int, error) {
	return s.repo.List(ctx, strings.TrimSpace(search), offset, limit)
}

func (s *supplierService) Update(ctx context.Context, actor domain.Actor, supplierID uuid.UUID, input SupplierInput) (*domain.Supplier, error) {
	if err := validateSupplier(&input); err != nil {
		return nil, err
	}
	supplier, err := s.repo.GetByID(ctx, supplierID)
	if err != nil {
		return nil, err
	}
	if input.IsActive != nil && *input.IsActive != supplier.IsActive && !actor.Can(domain.CapToggleActive) {
		return nil, domain.ErrForbidden
	}
	applySupplierInput(supplier, input)
	if err := s.repo.Update(ctx, supplier); err != nil {
		return nil, err
	}
	return supplier, nil
}

func (s *supplierService) Delete(ctx context.Context, supplierID uuid.UUID) error {
	if err := s.repo.Delete(ctx, supplierID); err != nil {
		return err
	}
	s.log.Info("supplier deleted", zap.String("supplier_id", supplierID.String()))
	return nil
}

// AddRecommendedProduct adds a product to the supplier's recommended offer. A
// product already on the offer gets the new quantity.
func (s *supplierService) AddRecommendedProduct(ctx context.Context, supplierID uuid.UUID, input RecommendedProductInput) (*domain.Supplier, error) {
	if input.Quantity < 1 {
		return nil, domain.ErrInvalidQuantity
	}
	supplier, err := s.repo.GetByID(ctx, supplierID)
	if err != nil {
		return nil, err
	}
	if _, err := s.productRepo.GetByID(ctx, input.ProductID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrProductNotFound
		}
		return nil, err
	}

	offer := make(domain.RecommendedOffer, 0, len(supplier.RecommendedOffer)+1)
	replaced := false
	for _, rp := range supplier.RecommendedOffer {
		if rp.ProductID == input.ProductID {
			rp.Quantity = input.Quantity
			replaced = true
		}
		offer = append(offer, rp)
	}
	if !replaced {
		offer = append(offer, domain.RecommendedProduct{ProductID: input.ProductID, Quantity: input.Quantity})
	}

	if err := s.repo.UpdateRecommendedOffer(ctx, supplierID, offer); err != nil {
		return nil, err
	}
	supplier.RecommendedOffer = offer
	return supplier, nil
}

func (s *supplierService) RemoveRecommendedProduct(ctx context.Context, supplierID, productID uuid.UUID) (*domain.Supplier, error) {
	supplier, err := s.repo.GetByID(ctx, supplierID)
	if err != nil {
		return nil, err
	}

	offer := make(domain.RecommendedOffer, 0, len(supplier.RecommendedOffer))
	for _, rp := range supplier.RecommendedOffer {
		if rp.ProductID != productID {
			offer = append(offer, rp)
		}
	}
	if len(offer) == len(supplier.RecommendedOffer) {
		return nil, domain.ErrNotFound
	}

	if err := s.repo.UpdateRecommendedOffer(ctx, supplierID, offer); err != nil {
		return nil, err
	}
	supplier.RecommendedOffer = offer
	return supplier, nil
}

// BuildOffer prices the supplier's recommended products without saving
// anything. Recommended products that no longer exist are skipped.
func (s *supplierService) BuildOffer(ctx context.Context, supplierID uuid.UUID) (*Quote, error) {
	supplier, err := s.repo.GetByID(ctx, supplierID)
	if err != nil {
		return nil, err
	}

	ids := make([]uuid.UUID, 0, len(supplier.RecommendedOffer))
	for _, rp := range supplier.RecommendedOffer {
		ids = append(ids, rp.ProductID)
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

	set, err := newItemSet(s.pricing.Resolver, supplier.Country, nil)
	if err != nil {
		return nil, err
	}
	for _, rp := range supplier.RecommendedOffer {
		product, ok := products[rp.ProductID]
		if !ok {
			s.log.Warn("recommended product missing", zap.String("supplier_id", supplierID.String()), zap.String("product_id", rp.ProductID.String()))
			continue
		}
		if _, err := set.add(lineFromProduct(product, rp.Quantity, s.pricing)); err != nil {
			return nil, err
		}
	}

	return &Quote{
		SupplierID:      supplier.ID,
		Country:         supplier.Country,
		Items:           set.items(),
		FormattedTotals: set.coll.Totals().Formatted(),
	}, nil
}

func (s *supplierService) Purchases(ctx context.Context, supplierID uuid.UUID, offset, limit int) ([]domain.Purchase, int, error) {
	if _, err := s.repo.GetByID(ctx, supplierID); err != nil {
		return nil, 0, err
	}
	return s.purchaseRepo.List(ctx, domain.PurchaseFilter{SupplierID: &supplierID}, offset, limit)
}

// lineFromProduct copies the product's cost price and VAT rate onto a new line.
func lineFromProduct(product *domain.Product, quantity int, p Pricing) domain.PurchaseItem {
	return domain.PurchaseItem{
		ProductID:    product.ID,
		ProductTitle: product.Title,
		ProductEAN:   product.EAN,
		Quantity:     quantity,
		UnitPrice:    product.PriceCost,
		VATRate:      p.RateFor(product),
	}
}
