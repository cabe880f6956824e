package port

import (
	"context"

	"github.com/google/uuid"

	"backoffice/internal/domain"
)

// UserRepository defines the contract for user persistence.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, userID uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	List(ctx context.Context, offset, limit int) ([]domain.User, int, error)
	Update(ctx context.Context, user *domain.User) error
	UpdateLastLogin(ctx context.Context, userID uuid.UUID) error
	Delete(ctx context.Context, userID uuid.UUID) error
}

// BrandRepository defines the contract for brand persistence.
type BrandRepository interface {
	Create(ctx context.Context, brand *domain.Brand) error
	GetByID(ctx context.Context, brandID uuid.UUID) (*domain.Brand, error)
	List(ctx context.Context, offset, limit int) ([]domain.Brand, int, error)
	Update(ctx context.Context, brand *domain.Brand) error
	Delete(ctx context.Context, brandID uuid.UUID) error
}

// CategoryRepository defines the contract for category persistence.
type CategoryRepository interface {
	Create(ctx context.Context, category *domain.Category) error
	GetByID(ctx context.Context, categoryID uuid.UUID) (*domain.Category, error)
	List(ctx context.Context, offset, limit int) ([]domain.Category, int, error)
	ListAll(ctx context.Context) ([]domain.Category, error)
	Update(ctx context.Context, category *domain.Category) error
	Delete(ctx context.Context, categoryID uuid.UUID) error
}

// CampaignRepository defines the contract for campaign persistence.
type CampaignRepository interface {
	Create(ctx context.Context, campaign *domain.Campaign) error
	GetByID(ctx context.Context, campaignID uuid.UUID) (*domain.Campaign, error)
	List(ctx context.Context, offset, limit int) ([]domain.Campaign, int, error)
	Update(ctx context.Context, campaign *domain.Campaign) error
	Delete(ctx context.Context, campaignID uuid.UUID) error
}

// SupplierRepository defines the contract for supplier persistence.
type SupplierRepository interface {
	Create(ctx context.Context, supplier *domain.Supplier) error
	GetByID(ctx context.Context, supplierID uuid.UUID) (*domain.Supplier, error)
	List(ctx context.Context, search string, offset, limit int) ([]domain.Supplier, int, error)
	Update(ctx context.Context, supplier *domain.Supplier) error
	UpdateRecommendedOffer(ctx context.Context, supplierID uuid.UUID, offer domain.RecommendedOffer) error
	Delete(ctx context.Context, supplierID uuid.UUID) error
}

// ProductFilter narrows product listings.
type ProductFilter struct {
	Search     string
	SupplierID *uuid.UUID
	BrandID    *uuid.UUID
	CategoryID *uuid.UUID
}

// ProductRepository defines the contract for product persistence.
type ProductRepository interface {
	Create(ctx context.Context, product *domain.Product) error
	CreateBatch(ctx context.Context, products []domain.Product) (int, error)
	GetByID(ctx context.Context, productID uuid.UUID) (*domain.Product, error)
	GetByEAN(ctx context.Context, ean string) (*domain.Product, error)
	GetByIDs(ctx context.Context, productIDs []uuid.UUID) ([]domain.Product, error)
	List(ctx context.Context, filter ProductFilter, offset, limit int) ([]domain.Product, int, error)
	Update(ctx context.Context, product *domain.Product) error
	Delete(ctx context.Context, productID uuid.UUID) error
}

// ImageRepository defines the contract for image metadata persistence.
type ImageRepository interface {
	Create(ctx context.Context, image *domain.Image) error
	GetByID(ctx context.Context, imageID uuid.UUID) (*domain.Image, error)
	List(ctx context.Context, offset, limit int) ([]domain.Image, int, error)
	UpdateStatus(ctx context.Context, imageID uuid.UUID, status domain.ImageStatus) error
	Delete(ctx context.Context, imageID uuid.UUID) error
}

// PurchaseRepository defines the contract for purchase persistence. Create and Save
// write the header and every line item in one transaction.
type PurchaseRepository interface {
	Create(ctx context.Context, purchase *domain.Purchase) error
	GetByID(ctx context.Context, purchaseID uuid.UUID) (*domain.Purchase, error)
	List(ctx context.Context, filter domain.PurchaseFilter, offset, limit int) ([]domain.Purchase, int, error)
	ListAll(ctx context.Context, filter domain.PurchaseFilter) ([]domain.Purchase, error)
	Save(ctx context.Context, purchase *domain.Purchase) error
	Delete(ctx context.Context, purchaseID uuid.UUID) error
}

// StatsRepository provides aggregate statistics queries.
type StatsRepository interface {
	Get(ctx context.Context) (*domain.Stats, error)
}
