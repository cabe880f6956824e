package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"backoffice/internal/domain"
	"backoffice/internal/port"
)

type productRepo struct {
	db *sqlx.DB
}

// NewProductRepo creates a new PostgreSQL-backed ProductRepository.
func NewProductRepo(db *sqlx.DB) port.ProductRepository {
	return &productRepo{db: db}
}

const insertProductQuery = `INSERT INTO products (id, title, description, ean, article_code,
	supplier_article_code, price_cost, price_per_piece, vat_rate, supplier_id, brand_id,
	category_id, free_stock, is_active, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`

func productArgs(p *domain.Product) []any {
	return []any{
		p.ID, p.Title, p.Description, p.EAN, p.ArticleCode, p.SupplierArticleCode,
		p.PriceCost, p.PricePerPiece, p.VATRate, p.SupplierID, p.BrandID, p.CategoryID,
		p.FreeStock, p.IsActive, p.CreatedAt, p.UpdatedAt,
	}
}

func stampNewProduct(p *domain.Product) {
	p.ID = uuid.New()
	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now
}

func (r *productRepo) Create(ctx context.Context, p *domain.Product) error {
	stampNewProduct(p)
	if _, err := r.db.ExecContext(ctx, insertProductQuery, productArgs(p)...); err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateEAN
		}
		return fmt.Errorf("productRepo.Create: %w", err)
	}
	return nil
}

// CreateBatch inserts all products in one transaction. Rows whose EAN already exists
// are skipped; the number of inserted rows is returned.
func (r *productRepo) CreateBatch(ctx context.Context, products []domain.Product) (int, error) {
	inserted := 0
	err := withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		for i := range products {
			stampNewProduct(&products[i])
			result, err := tx.ExecContext(ctx,
				insertProductQuery+" ON CONFLICT (ean) WHERE ean <> '' DO NOTHING",
				productArgs(&products[i])...)
			if err != nil {
				return fmt.Errorf("productRepo.CreateBatch row %d: %w", i, err)
			}
			n, _ := result.RowsAffected()
			inserted += int(n)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return inserted, nil
}

func (r *productRepo) GetByID(ctx context.Context, productID uuid.UUID) (*domain.Product, error) {
	var p domain.Product
	if err := r.db.GetContext(ctx, &p, "SELECT * FROM products WHERE id = $1", productID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("productRepo.GetByID: %w", err)
	}
	return &p, nil
}

func (r *productRepo) GetByEAN(ctx context.Context, ean string) (*domain.Product, error) {
	var p domain.Product
	if err := r.db.GetContext(ctx, &p, "SELECT * FROM products WHERE ean = $1", ean); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("productRepo.GetByEAN: %w", err)
	}
	return &p, nil
}

func (r *productRepo) GetByIDs(ctx context.Context, productIDs []uuid.UUID) ([]domain.Product, error) {
	if len(productIDs) == 0 {
		return nil, nil
	}
	var products []domain.Product
	err := r.db.SelectContext(ctx, &products,
		"SELECT * FROM products WHERE id = ANY($1::uuid[])", uuidArray(productIDs))
	if err != nil {
		return nil, fmt.Errorf("productRepo.GetByIDs: %w", err)
	}
	return products, nil
}

func (r *productRepo) List(ctx context.Context, filter port.ProductFilter, offset, limit int) ([]domain.Product, int, error) {
	var conds []string
	var args []any
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		conds = append(conds, fmt.Sprintf("(title ILIKE $%d OR ean ILIKE $%d OR article_code ILIKE $%d)",
			len(args), len(args), len(args)))
	}
	if filter.SupplierID != nil {
		args = append(args, *filter.SupplierID)
		conds = append(conds, fmt.Sprintf("supplier_id = $%d", len(args)))
	}
	if filter.BrandID != nil {
		args = append(args, *filter.BrandID)
		conds = append(conds, fmt.Sprintf("brand_id = $%d", len(args)))
	}
	if filter.CategoryID != nil {
		args = append(args, *filter.CategoryID)
		conds = append(conds, fmt.Sprintf("category_id = $%d", len(args)))
	}
	where := ""
	if len(conds) > 0 {
		where = " WHERE " + strings.Join(conds, " AND ")
	}

	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM products"+where, args...); err != nil {
		return nil, 0, fmt.Errorf("productRepo.List count: %w", err)
	}

	var products []domain.Product
	query := fmt.Sprintf("SELECT * FROM products%s ORDER BY title LIMIT $%d OFFSET $%d",
		where, len(args)+1, len(args)+2)
	if err := r.db.SelectContext(ctx, &products, query, append(args, limit, offset)...); err != nil {
		return nil, 0, fmt.Errorf("productRepo.List: %w", err)
	}
	return products, total, nil
}

func (r *productRepo) Update(ctx context.Context, p *domain.Product) error {
	p.UpdatedAt = time.Now().UTC()
	result, err := r.db.ExecContext(ctx,
		`UPDATE products SET title = $1, description = $2, ean = $3, article_code = $4,
		 supplier_article_code = $5, price_cost = $6, price_per_piece = $7, vat_rate = $8,
		 supplier_id = $9, brand_id = $10, category_id = $11, free_stock = $12, is_active = $13,
		 updated_at = $14 WHERE id = $15`,
		p.Title, p.Description, p.EAN, p.ArticleCode, p.SupplierArticleCode, p.PriceCost,
		p.PricePerPiece, p.VATRate, p.SupplierID, p.BrandID, p.CategoryID, p.FreeStock,
		p.IsActive, p.UpdatedAt, p.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateEAN
		}
		return fmt.Errorf("productRepo.Update: %w", err)
	}
	rows, _ := result.RowsAffected()
	return affectedOrNotFound(rows, domain.ErrNotFound)
}

func (r *productRepo) Delete(ctx context.Context, productID uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM products WHERE id = $1", productID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrInUse
		}
		return fmt.Errorf("productRepo.Delete: %w", err)
	}
	rows, _ := result.RowsAffected()
	return affectedOrNotFound(rows, domain.ErrNotFound)
}
