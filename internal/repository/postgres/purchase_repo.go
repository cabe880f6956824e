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

type purchaseRepo struct {
	db *sqlx.DB
}

// NewPurchaseRepo creates a new PostgreSQL-backed PurchaseRepository.
func NewPurchaseRepo(db *sqlx.DB) port.PurchaseRepository {
	return &purchaseRepo{db: db}
}

const purchaseColumns = `id, type, status, supplier_id, purchase_invoice_date, total_exc_btw,
	total_vat, total_inc_btw, history, created_by, created_at, updated_at`

func (r *purchaseRepo) Create(ctx context.Context, p *domain.Purchase) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now

	err := withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO purchases (`+purchaseColumns+`)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
			p.ID, p.Type, p.Status, p.SupplierID, p.PurchaseInvoiceDate, p.TotalExcBTW,
			p.TotalVAT, p.TotalIncBTW, p.History, p.CreatedBy, p.CreatedAt, p.UpdatedAt)
		if err != nil {
			return fmt.Errorf("insert purchase: %w", err)
		}
		return insertItems(ctx, tx, p)
	})
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("purchaseRepo.Create: %w", err)
	}
	return nil
}

func (r *purchaseRepo) GetByID(ctx context.Context, purchaseID uuid.UUID) (*domain.Purchase, error) {
	var p domain.Purchase
	err := r.db.GetContext(ctx, &p,
		"SELECT "+purchaseColumns+" FROM purchases WHERE id = $1", purchaseID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("purchaseRepo.GetByID: %w", err)
	}

	if err := r.db.SelectContext(ctx, &p.Items,
		"SELECT * FROM purchase_items WHERE purchase_id = $1 ORDER BY position", purchaseID); err != nil {
		return nil, fmt.Errorf("purchaseRepo.GetByID items: %w", err)
	}
	if p.Items == nil {
		p.Items = []domain.PurchaseItem{}
	}
	return &p, nil
}

func purchaseWhere(filter domain.PurchaseFilter) (string, []any) {
	var conds []string
	var args []any
	if filter.Status != "" {
		args = append(args, filter.Status)
		conds = append(conds, fmt.Sprintf("status = $%d", len(args)))
	}
	if filter.Type != "" {
		args = append(args, filter.Type)
		conds = append(conds, fmt.Sprintf("type = $%d", len(args)))
	}
	if filter.SupplierID != nil {
		args = append(args, *filter.SupplierID)
		conds = append(conds, fmt.Sprintf("supplier_id = $%d", len(args)))
	}
	if len(conds) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func (r *purchaseRepo) List(ctx context.Context, filter domain.PurchaseFilter, offset, limit int) ([]domain.Purchase, int, error) {
	where, args := purchaseWhere(filter)

	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM purchases"+where, args...); err != nil {
		return nil, 0, fmt.Errorf("purchaseRepo.List count: %w", err)
	}

	var purchases []domain.Purchase
	query := fmt.Sprintf("SELECT %s FROM purchases%s ORDER BY purchase_invoice_date DESC, created_at DESC LIMIT $%d OFFSET $%d",
		purchaseColumns, where, len(args)+1, len(args)+2)
	if err := r.db.SelectContext(ctx, &purchases, query, append(args, limit, offset)...); err != nil {
		return nil, 0, fmt.Errorf("purchaseRepo.List: %w", err)
	}
	if err := r.attachItems(ctx, purchases); err != nil {
		return nil, 0, fmt.Errorf("purchaseRepo.List: %w", err)
	}
	return purchases, total, nil
}

func (r *purchaseRepo) ListAll(ctx context.Context, filter domain.PurchaseFilter) ([]domain.Purchase, error) {
	where, args := purchaseWhere(filter)

	var purchases []domain.Purchase
	query := "SELECT " + purchaseColumns + " FROM purchases" + where +
		" ORDER BY purchase_invoice_date DESC, created_at DESC"
	if err := r.db.SelectContext(ctx, &purchases, query, args...); err != nil {
		return nil, fmt.Errorf("purchaseRepo.ListAll: %w", err)
	}
	if err := r.attachItems(ctx, purchases); err != nil {
		return nil, fmt.Errorf("purchaseRepo.ListAll: %w", err)
	}
	return purchases, nil
}

// attachItems loads the line items of every purchase with a single query.
func (r *purchaseRepo) attachItems(ctx context.Context, purchases []domain.Purchase) error {
	if len(purchases) == 0 {
		return nil
	}
	ids := make([]uuid.UUID, len(purchases))
	index := make(map[uuid.UUID]int, len(purchases))
	for i := range purchases {
		ids[i] = purchases[i].ID
		index[purchases[i].ID] = i
		purchases[i].Items = []domain.PurchaseItem{}
	}

	var items []domain.PurchaseItem
	err := r.db.SelectContext(ctx, &items,
		"SELECT * FROM purchase_items WHERE purchase_id = ANY($1::uuid[]) ORDER BY purchase_id, position",
		uuidArray(ids))
	if err != nil {
		return fmt.Errorf("loading items: %w", err)
	}
	for _, item := range items {
		if i, ok := index[item.PurchaseID]; ok {
			purchases[i].Items = append(purchases[i].Items, item)
		}
	}
	return nil
}

// Save overwrites the header and replaces every line item. Concurrent saves of the
// same purchase resolve as last write wins.
func (r *purchaseRepo) Save(ctx context.Context, p *domain.Purchase) error {
	p.UpdatedAt = time.Now().UTC()

	err := withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		result, err := tx.ExecContext(ctx,
			`UPDATE purchases SET type = $1, status = $2, supplier_id = $3, purchase_invoice_date = $4,
			 total_exc_btw = $5, total_vat = $6, total_inc_btw = $7, history = $8, updated_at = $9
			 WHERE id = $10`,
			p.Type, p.Status, p.SupplierID, p.PurchaseInvoiceDate, p.TotalExcBTW, p.TotalVAT,
			p.TotalIncBTW, p.History, p.UpdatedAt, p.ID)
		if err != nil {
			return fmt.Errorf("update purchase: %w", err)
		}
		rows, _ := result.RowsAffected()
		if err := affectedOrNotFound(rows, domain.ErrNotFound); err != nil {
			return err
		}

		if _, err := tx.ExecContext(ctx, "DELETE FROM purchase_items WHERE purchase_id = $1", p.ID); err != nil {
			return fmt.Errorf("clear items: %w", err)
		}
		return insertItems(ctx, tx, p)
	})
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) || isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("purchaseRepo.Save: %w", err)
	}
	return nil
}

func (r *purchaseRepo) Delete(ctx context.Context, purchaseID uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM purchases WHERE id = $1", purchaseID)
	if err != nil {
		return fmt.Errorf("purchaseRepo.Delete: %w", err)
	}
	rows, _ := result.RowsAffected()
	return affectedOrNotFound(rows, domain.ErrNotFound)
}

func insertItems(ctx context.Context, tx *sqlx.Tx, p *domain.Purchase) error {
	for i := range p.Items {
		item := &p.Items[i]
		if item.ID == uuid.Nil {
			item.ID = uuid.New()
		}
		item.PurchaseID = p.ID
		item.Position = i
		_, err := tx.ExecContext(ctx,
			`INSERT INTO purchase_items (id, purchase_id, product_id, product_title, product_ean,
			 quantity, unit_price, vat_rate, position)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
			item.ID, item.PurchaseID, item.ProductID, item.ProductTitle, item.ProductEAN,
			item.Quantity, item.UnitPrice, item.VATRate, item.Position)
		if err != nil {
			return fmt.Errorf("insert item %d: %w", i, err)
		}
	}
	return nil
}
