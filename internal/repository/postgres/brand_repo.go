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

type brandRepo struct {
	db *sqlx.DB
}

// NewBrandRepo creates a new PostgreSQL-backed BrandRepository.
func NewBrandRepo(db *sqlx.DB) port.BrandRepository {
	return &brandRepo{db: db}
}

func (r *brandRepo) Create(ctx context.Context, brand *domain.Brand) error {
	brand.ID = uuid.New()
	now := time.Now().UTC()
	brand.CreatedAt = now
	brand.UpdatedAt = now

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO brands (id, name, description, logo_id, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		brand.ID, brand.Name, brand.Description, brand.LogoID, brand.CreatedAt, brand.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateName
		}
		return fmt.Errorf("brandRepo.Create: %w", err)
	}
	return nil
}

func (r *brandRepo) GetByID(ctx context.Context, brandID uuid.UUID) (*domain.Brand, error) {
	var brand domain.Brand
	if err := r.db.GetContext(ctx, &brand, "SELECT * FROM brands WHERE id = $1", brandID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("brandRepo.GetByID: %w", err)
	}
	return &brand, nil
}

func (r *brandRepo) List(ctx context.Context, offset, limit int) ([]domain.Brand, int, error) {
	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM brands"); err != nil {
		return nil, 0, fmt.Errorf("brandRepo.List count: %w", err)
	}

	var brands []domain.Brand
	err := r.db.SelectContext(ctx, &brands,
		"SELECT * FROM brands ORDER BY name LIMIT $1 OFFSET $2", limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("brandRepo.List: %w", err)
	}
	return brands, total, nil
}

func (r *brandRepo) Update(ctx context.Context, brand *domain.Brand) error {
	brand.UpdatedAt = time.Now().UTC()
	result, err := r.db.ExecContext(ctx,
		"UPDATE brands SET name = $1, description = $2, logo_id = $3, updated_at = $4 WHERE id = $5",
		brand.Name, brand.Description, brand.LogoID, brand.UpdatedAt, brand.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateName
		}
		return fmt.Errorf("brandRepo.Update: %w", err)
	}
	rows, _ := result.RowsAffected()
	return affectedOrNotFound(rows, domain.ErrNotFound)
}

func (r *brandRepo) Delete(ctx context.Context, brandID uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM brands WHERE id = $1", brandID)
	if err != nil {
		return fmt.Errorf("brandRepo.Delete: %w", err)
	}
	rows, _ := result.RowsAffected()
	return affectedOrNotFound(rows, domain.ErrNotFound)
}
