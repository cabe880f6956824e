package domain

import (
	"time"

	"github.com/google/uuid"
)

// User is an operator of the back office.
type User struct {
	ID           uuid.UUID  `db:"id" json:"id"`
	Email        string     `db:"email" json:"email"`
	PasswordHash string     `db:"password_hash" json:"-"`
	FullName     string     `db:"full_name" json:"full_name"`
	Role         UserRole   `db:"role" json:"role"`
	IsActive     bool       `db:"is_active" json:"is_active"`
	LastLoginAt  *time.Time `db:"last_login_at" json:"last_login_at"`
	CreatedAt    time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time  `db:"updated_at" json:"updated_at"`
}

// Brand is a product brand.
type Brand struct {
	ID          uuid.UUID  `db:"id" json:"id"`
	Name        string     `db:"name" json:"name"`
	Description string     `db:"description" json:"description"`
	LogoID      *uuid.UUID `db:"logo_id" json:"logo_id"`
	CreatedAt   time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time  `db:"updated_at" json:"updated_at"`
}

// Category groups products. Categories form a tree through ParentID.
type Category struct {
	ID        uuid.UUID  `db:"id" json:"id"`
	Name      string     `db:"name" json:"name"`
	ParentID  *uuid.UUID `db:"parent_id" json:"parent_id"`
	ImageID   *uuid.UUID `db:"image_id" json:"image_id"`
	IsActive  bool       `db:"is_active" json:"is_active"`
	SortOrder int        `db:"sort_order" json:"sort_order"`
	CreatedAt time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt time.Time  `db:"updated_at" json:"updated_at"`
	Children  []Category `db:"-" json:"children,omitempty"`
}

// Campaign is a time-boxed discount on a set of products.
type Campaign struct {
	ID                 uuid.UUID   `db:"id" json:"id"`
	Name               string      `db:"name" json:"name"`
	Description        string      `db:"description" json:"description"`
	DiscountPercentage string      `db:"discount_percentage" json:"discount_percentage"`
	StartDate          time.Time   `db:"start_date" json:"start_date"`
	EndDate            time.Time   `db:"end_date" json:"end_date"`
	IsActive           bool        `db:"is_active" json:"is_active"`
	ProductIDs         []uuid.UUID `db:"-" json:"product_ids"`
	CreatedAt          time.Time   `db:"created_at" json:"created_at"`
	UpdatedAt          time.Time   `db:"updated_at" json:"updated_at"`
}

// Supplier is a counterparty purchases are made from. Country decides whether
// VAT is charged on its purchases.
type Supplier struct {
	ID                  uuid.UUID        `db:"id" json:"id"`
	Name                string           `db:"name" json:"name"`
	SupplierCode        string           `db:"supplier_code" json:"supplier_code"`
	ContactPerson       string           `db:"contact_person" json:"contact_person"`
	Email               string           `db:"email" json:"email"`
	Phone               string           `db:"phone" json:"phone"`
	Address             string           `db:"address" json:"address"`
	PostalCode          string           `db:"postal_code" json:"postal_code"`
	City                string           `db:"city" json:"city"`
	Country             string           `db:"country" json:"country"`
	IBAN                string           `db:"iban" json:"iban"`
	BIC                 string           `db:"bic" json:"bic"`
	VATNumber           string           `db:"vat_number" json:"vat_number"`
	KVKNumber           string           `db:"kvk_number" json:"kvk_number"`
	PaymentMethod       PaymentMethod    `db:"payment_method" json:"payment_method"`
	OrderMethod         OrderMethod      `db:"order_method" json:"order_method"`
	PaymentTerms        string           `db:"payment_terms" json:"payment_terms"`
	MinimumOrderAmount  string           `db:"minimum_order_amount" json:"minimum_order_amount"`
	PercentageToAdd     int              `db:"percentage_to_add" json:"percentage_to_add"`
	IsActive            bool             `db:"is_active" json:"is_active"`
	HasGivenPaymentAuth bool             `db:"has_given_payment_auth" json:"has_given_payment_auth"`
	Memo                string           `db:"memo" json:"memo"`
	RecommendedOffer    RecommendedOffer `db:"recommended_offer" json:"recommended_product_offer"`
	CreatedAt           time.Time        `db:"created_at" json:"created_at"`
	UpdatedAt           time.Time        `db:"updated_at" json:"updated_at"`
}

// RecommendedProduct is one entry of a supplier's recommended offer.
type RecommendedProduct struct {
	ProductID uuid.UUID `json:"product_id"`
	Quantity  int       `json:"quantity"`
}

// Product is a purchasable article. PriceCost is the tax-exclusive purchase price.
type Product struct {
	ID                  uuid.UUID  `db:"id" json:"id"`
	Title               string     `db:"title" json:"title"`
	Description         string     `db:"description" json:"description"`
	EAN                 string     `db:"ean" json:"ean"`
	ArticleCode         string     `db:"article_code" json:"article_code"`
	SupplierArticleCode string     `db:"supplier_article_code" json:"supplier_article_code"`
	PriceCost           string     `db:"price_cost" json:"price_cost"`
	PricePerPiece       string     `db:"price_per_piece" json:"price_per_piece"`
	VATRate             *float64   `db:"vat_rate" json:"vat"`
	SupplierID          *uuid.UUID `db:"supplier_id" json:"supplier_id"`
	BrandID             *uuid.UUID `db:"brand_id" json:"brand_id"`
	CategoryID          *uuid.UUID `db:"category_id" json:"category_id"`
	FreeStock           int        `db:"free_stock" json:"free_stock"`
	IsActive            bool       `db:"is_active" json:"is_active"`
	CreatedAt           time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt           time.Time  `db:"updated_at" json:"updated_at"`
}

// Image stores metadata about an uploaded image.
type Image struct {
	ID           uuid.UUID   `db:"id" json:"id"`
	UploadedBy   uuid.UUID   `db:"uploaded_by" json:"uploaded_by"`
	FileName     string      `db:"file_name" json:"file_name"`
	OriginalName string      `db:"original_name" json:"original_name"`
	ContentType  string      `db:"content_type" json:"content_type"`
	FileSize     int64       `db:"file_size" json:"file_size"`
	S3Bucket     string      `db:"s3_bucket" json:"-"`
	S3Key        string      `db:"s3_key" json:"-"`
	Status       ImageStatus `db:"status" json:"status"`
	CreatedAt    time.Time   `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time   `db:"updated_at" json:"updated_at"`
}

// Purchase is a purchase order or an offer placed with a supplier.
// The totals are derived from Items and the supplier's country.
type Purchase struct {
	ID                  uuid.UUID       `db:"id" json:"id"`
	Type                PurchaseType    `db:"type" json:"type"`
	Status              PurchaseStatus  `db:"status" json:"status"`
	SupplierID          uuid.UUID       `db:"supplier_id" json:"supplier"`
	PurchaseInvoiceDate time.Time       `db:"purchase_invoice_date" json:"purchase_invoice_date"`
	TotalExcBTW         string          `db:"total_exc_btw" json:"total_exc_btw"`
	TotalVAT            string          `db:"total_vat" json:"total_vat"`
	TotalIncBTW         string          `db:"total_inc_btw" json:"total_inc_btw"`
	Items               []PurchaseItem  `db:"-" json:"items"`
	History             PurchaseHistory `db:"history" json:"history"`
	CreatedBy           uuid.UUID       `db:"created_by" json:"created_by"`
	CreatedAt           time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt           time.Time       `db:"updated_at" json:"updated_at"`
}

// Editable reports whether line items may still be changed.
func (p *Purchase) Editable() bool {
	return p.Status == PurchaseStatusPending
}

// PurchaseItem is one line of a purchase. VATRate is copied from the product
// when the line is added and does not follow later product changes.
type PurchaseItem struct {
	ID           uuid.UUID `db:"id" json:"id"`
	PurchaseID   uuid.UUID `db:"purchase_id" json:"-"`
	ProductID    uuid.UUID `db:"product_id" json:"product"`
	ProductTitle string    `db:"product_title" json:"product_title"`
	ProductEAN   string    `db:"product_ean" json:"product_ean"`
	Quantity     int       `db:"quantity" json:"product_quantity"`
	UnitPrice    string    `db:"unit_price" json:"product_purchase_price"`
	VATRate      float64   `db:"vat_rate" json:"vat_rate"`
	Position     int       `db:"position" json:"-"`
}

// HistoryEntry records one change made to a purchase.
type HistoryEntry struct {
	ID        uuid.UUID      `json:"id"`
	Action    HistoryAction  `json:"action"`
	Changes   map[string]any `json:"changes"`
	User      string         `json:"user"`
	CreatedAt time.Time      `json:"created_at"`
}

// PurchaseFilter narrows purchase listings.
type PurchaseFilter struct {
	Status     PurchaseStatus
	Type       PurchaseType
	SupplierID *uuid.UUID
}

// Stats holds aggregate dashboard counters.
type Stats struct {
	Suppliers          int    `db:"suppliers" json:"suppliers"`
	Products           int    `db:"products" json:"products"`
	PurchasesPending   int    `db:"purchases_pending" json:"purchases_pending"`
	PurchasesCompleted int    `db:"purchases_completed" json:"purchases_completed"`
	PurchasesCancelled int    `db:"purchases_cancelled" json:"purchases_cancelled"`
	Offers             int    `db:"offers" json:"offers"`
	CompletedSpend     string `db:"completed_spend" json:"completed_spend"`
}
