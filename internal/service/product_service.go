package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"backoffice/internal/domain"
	"backoffice/internal/port"
	"backoffice/internal/pricing"
)

// ProductInput is the DTO for creating or replacing a product.
type ProductInput struct {
	Title               string     `json:"title" binding:"required"`
	Description         string     `json:"description"`
	EAN                 string     `json:"ean"`
	ArticleCode         string     `json:"article_code"`
	SupplierArticleCode string     `json:"supplier_article_code"`
	PriceCost           string     `json:"price_cost" binding:"omitempty,money"`
	PricePerPiece       string     `json:"price_per_piece" binding:"omitempty,money"`
	VATRate             *float64   `json:"vat" binding:"omitempty,min=0,max=100"`
	SupplierID          *uuid.UUID `json:"supplier_id"`
	BrandID             *uuid.UUID `json:"brand_id"`
	CategoryID          *uuid.UUID `json:"category_id"`
	FreeStock           int        `json:"free_stock"`
	IsActive            *bool      `json:"is_active"`
}

// ProductService defines the product catalog contract. Lookup is the
// product/price lookup used when a line is added to a purchase.
type ProductService interface {
	Create(ctx context.Context, input ProductInput) (*domain.Product, error)
	GetByID(ctx context.Context, productID uuid.UUID) (*domain.Product, error)
	List(ctx context.Context, filter port.ProductFilter, offset, limit int) ([]domain.Product, int, error)
	Lookup(ctx context.Context, ean string) (*domain.Product, error)
	Update(ctx context.Context, actor domain.Actor, productID uuid.UUID, input ProductInput) (*domain.Product, error)
	Delete(ctx context.Context, productID uuid.UUID) error
	Import(ctx context.Context, products []domain.Product) (int, error)
}

type productService struct {
	repo  port.ProductRepository
	cache port.ProductCache
	log   *zap.Logger
}

// NewProductService creates a new ProductService implementation.
func NewProductService(repo port.ProductRepository, cache port.ProductCache, log *zap.Logger) ProductService {
	return &productService{repo: repo, cache: cache, log: log}
}

func normalizeProductInput(input *ProductInput) error {
	input.Title = strings.TrimSpace(input.Title)
	input.EAN = strings.TrimSpace(input.EAN)
	if input.PriceCost != "" && !pricing.ValidAmount(input.PriceCost) {
		return domain.ErrInvalidAmount
	}
	if input.PricePerPiece != "" && !pricing.ValidAmount(input.PricePerPiece) {
		return domain.ErrInvalidAmount
	}
	if input.VATRate != nil && (*input.VATRate < 0 || *input.VATRate > 100) {
		return domain.ErrInvalidVATRate
	}
	return nil
}

// canonicalAmount stores money with a dot separator. Empty stays empty.
func canonicalAmount(s string) string {
	if strings.TrimSpace(s) == "" {
		return ""
	}
	return pricing.ParseAmount(s).String()
}

func (s *productService) Create(ctx context.Context, input ProductInput) (*domain.Product, error) {
	if err := normalizeProductInput(&input); err != nil {
		return nil, err
	}
	product := &domain.Product{IsActive: true}
	applyProductInput(product, input)
	if err := s.repo.Create(ctx, product); err != nil {
		return nil, err
	}
	s.log.Info("product created", zap.String("product_id", product.ID.String()), zap.String("ean", product.EAN))
	return product, nil
}

func applyProductInput(product *domain.Product, input ProductInput) {
	product.Title = input.Title
	product.Description = input.Description
	product.EAN = input.EAN
	product.ArticleCode = input.ArticleCode
	product.SupplierArticleCode = input.SupplierArticleCode
	product.PriceCost = canonicalAmount(input.PriceCost)
	product.PricePerPiece = canonicalAmount(input.PricePerPiece)
	product.VATRate = input.VATRate
	product.SupplierID = input.SupplierID
	product.BrandID = input.BrandID
	product.CategoryID = input.CategoryID
	product.FreeStock = input.FreeStock
	if input.IsActive != nil {
		product.IsActive = *input.IsActive
	}
}

func (s *productService) GetByID(ctx context.Context, productID uuid.UUID) (*domain.Product, error) {
	return s.repo.GetByID(ctx, productID)
}

func (s *productService) List(ctx context.Context, filter port.ProductFilter, offset, limit int) ([]domain.Product, int, error) {
	return s.repo.List(ctx, filter, offset, limit)
}

// Lookup resolves an EAN to a product, reading through the cache. Cache
// failures are logged and fall back to the database.
func (s *productService) Lookup(ctx context.Context, ean string) (*domain.Product, error) {
	ean = strings.TrimSpace(ean)
	if ean == "" {
		return nil, domain.ErrProductNotFound
	}

	if s.cache != nil {
		cached, err := s.cache.Get(ctx, ean)
		if err != nil {
			s.log.Warn("product cache read failed", zap.String("ean", ean), zap.Error(err))
		} else if cached != nil {
			return cached, nil
		}
	}

	product, err := s.repo.GetByEAN(ctx, ean)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrProductNotFound
		}
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, product); err != nil {
			s.log.Warn("product cache write failed", zap.String("ean", ean), zap.Error(err))
		}
	}
	return product, nil
}

func (s *productService) Update(ctx context.Context, actor domain.Actor, productID uuid.UUID, input ProductInput) (*domain.Product, error) {
	if err := normalizeProductInput(&input); err != nil {
		return nil, err
	}
	product, err := s.repo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if input.IsActive != nil && *input.IsActive != product.IsActive && !actor.Can(domain.CapToggleActive) {
		return nil, domain.ErrForbidden
	}

	previousEAN := product.EAN
	applyProductInput(product, input)
	if err := s.repo.Update(ctx, product); err != nil {
		return nil, err
	}

	s.invalidate(ctx, previousEAN)
	if product.EAN != previousEAN {
		s.invalidate(ctx, product.EAN)
	}
	return product, nil
}

func (s *productService) Delete(ctx context.Context, productID uuid.UUID) error {
	product, err := s.repo.GetByID(ctx, productID)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, productID); err != nil {
		return err
	}
	s.invalidate(ctx, product.EAN)
	s.log.Info("product deleted", zap.String("product_id", productID.String()))
	return nil
}

// Import inserts products in bulk. Rows whose EAN already exists are skipped;
// the number of inserted rows is returned.
func (s *productService) Import(ctx context.Context, products []domain.Product) (int, error) {
	for i := range products {
		products[i].PriceCost = canonicalAmount(products[i].PriceCost)
		products[i].PricePerPiece = canonicalAmount(products[i].PricePerPiece)
		products[i].EAN = strings.TrimSpace(products[i].EAN)
	}
	n, err := s.repo.CreateBatch(ctx, products)
	if err != nil {
		return 0, err
	}
	s.log.Info("products imported", zap.Int("rows", len(products)), zap.Int("inserted", n))
	return n, nil
}

func (s *productService) invalidate(ctx context.Context, ean string) {
	if s.cache == nil || ean == "" {
		return
	}
	if err := s.cache.Invalidate(ctx, ean); err != nil {
		s.log.Warn("product cache invalidation failed", zap.String("ean", ean), zap.Error(err))
	}
}
