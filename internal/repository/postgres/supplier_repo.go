package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"backoffice/internal/domain"
	"backoffice/internal/port"
)

type supplierRepo struct {
	db *sqlx.DB
}

// NewSupplierRepo creates a new PostgreSQL-backed SupplierRepository.
func NewSupplierRepo(db *sqlx.DB) port.SupplierRepository {
	return &supplierRepo{db: db}
}

func (r *supplierRepo) Create(ctx context.Context, s *domain.Supplier) error {
	s.ID = uuid.New()
	now := time.Now().UTC()
	s.CreatedAt = now
	s.UpdatedAt = now

	query := `INSERT INTO suppliers (id, name, supplier_code, contact_person, email, phone, address,
		postal_code, city, country, iban, bic, vat_number, kvk_number, payment_method, order_method,
		payment_terms, minimum_order_amount, percentage_to_add, is_active, has_given_payment_auth,
		memo, recommended_offer, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18,
		$19, $20, $21, $22, $23, $24, $25)`

	_, err := r.db.ExecContext(ctx, query,
		s.ID, s.Name, s.SupplierCode, s.ContactPerson, s.Email, s.Phone, s.Address,
		s.PostalCode, s.City, s.Country, s.IBAN, s.BIC, s.VATNumber, s.KVKNumber,
		s.PaymentMethod, s.OrderMethod, s.PaymentTerms, s.MinimumOrderAmount, s.PercentageToAdd,
		s.IsActive, s.HasGivenPaymentAuth, s.Memo, s.RecommendedOffer, s.CreatedAt, s.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateName
		}
		return fmt.Errorf("supplierRepo.Create: %w", err)
	}
	return nil
}

func (r *supplierRepo) GetByID(ctx context.Context, supplierID uuid.UUID) (*domain.Supplier, error) {
	var s domain.Supplier
	if err := r.db.GetContext(ctx, &s, "SELECT * FROM suppliers WHERE id = $1", supplierID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("supplierRepo.GetByID: %w", err)
	}
	return &s, nil
}

func (r *supplierRepo) List(ctx context.Context, search string, offset, limit int) ([]domain.Supplier, int, error) {
	where := ""
	args := []any{}
	if search != "" {
		where = " WHERE name ILIKE $1 OR supplier_code ILIKE $1 OR city ILIKE $1"
		args = append(args, "%"+search+"%")
	}

	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM suppliers"+where, args...); err != nil {
		return nil, 0, fmt.Errorf("supplierRepo.List count: %w", err)
	}

	var suppliers []domain.Supplier
	query := fmt.Sprintf("SELECT * FROM suppliers%s ORDER BY name LIMIT $%d OFFSET $%d",
		where, len(args)+1, len(args)+2)
	if err := r.db.SelectContext(ctx, &suppliers, query, append(args, limit, offset)...); err != nil {
		return nil, 0, fmt.Errorf("supplierRepo.List: %w", err)
	}
	return suppliers, total, nil
}

func (r *supplierRepo) Update(ctx context.Context, s *domain.Supplier) error {
	s.UpdatedAt = time.Now().UTC()
	query := `UPDATE suppliers SET name = $1, supplier_code = $2, contact_person = $3, email = $4,
		phone = $5, address = $6, postal_code = $7, city = $8, country = $9, iban = $10, bic = $11,
		vat_number = $12, kvk_number = $13, payment_method = $14, order_method = $15,
		payment_terms = $16, minimum_order_amount = $17, percentage_to_add = $18, is_active = $19,
		has_given_payment_auth = $20, memo = $21, recommended_offer = $22, updated_at = $23
		WHERE id = $24`

	result, err := r.db.ExecContext(ctx, query,
		s.Name, s.SupplierCode, s.ContactPerson, s.Email, s.Phone, s.Address, s.PostalCode,
		s.City, s.Country, s.IBAN, s.BIC, s.VATNumber, s.KVKNumber, s.PaymentMethod,
		s.OrderMethod, s.PaymentTerms, s.MinimumOrderAmount, s.PercentageToAdd, s.IsActive,
		s.HasGivenPaymentAuth, s.Memo, s.RecommendedOffer, s.UpdatedAt, s.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateName
		}
		return fmt.Errorf("supplierRepo.Update: %w", err)
	}
	rows, _ := result.RowsAffected()
	return affectedOrNotFound(rows, domain.ErrNotFound)
}

func (r *supplierRepo) UpdateRecommendedOffer(ctx context.Context, supplierID uuid.UUID, offer domain.RecommendedOffer) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE suppliers SET recommended_offer = $1, updated_at = $2 WHERE id = $3",
		offer, time.Now().UTC(), supplierID)
	if err != nil {
		return fmt.Errorf("supplierRepo.UpdateRecommendedOffer: %w", err)
	}
	rows, _ := result.RowsAffected()
	return affectedOrNotFound(rows, domain.ErrNotFound)
}

func (r *supplierRepo) Delete(ctx context.Context, supplierID uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM suppliers WHERE id = $1", supplierID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrInUse
		}
		return fmt.Errorf("supplierRepo.Delete: %w", err)
	}
	rows, _ := result.RowsAffected()
	return affectedOrNotFound(rows, domain.ErrNotFound)
}
