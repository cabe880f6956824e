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

type categoryRepo struct {
	db *sqlx.DB
}

// NewCategoryRepo creates a new PostgreSQL-backed CategoryRepository.
func NewCategoryRepo(db *sqlx.DB) port.CategoryRepository {
	return &categoryRepo{db: db}
}

const categoryColumns = "id, name, parent_id, image_id, is_active, sort_order, created_at, updated_at"

func (r *categoryRepo) Create(ctx context.Context, category *domain.Category) error {
	category.ID = uuid.New()
	now := time.Now().UTC()
	category.CreatedAt = now
	category.UpdatedAt = now

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO categories (`+categoryColumns+`)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		category.ID, category.Name, category.ParentID, category.ImageID,
		category.IsActive, category.SortOrder, category.CreatedAt, category.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateName
		}
		return fmt.Errorf("categoryRepo.Create: %w", err)
	}
	return nil
}

func (r *categoryRepo) GetByID(ctx context.Context, categoryID uuid.UUID) (*domain.Category, error) {
	var category domain.Category
	err := r.db.GetContext(ctx, &category,
		"SELECT "+categoryColumns+" FROM categories WHERE id = $1", categoryID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("categoryRepo.GetByID: %w", err)
	}
	return &category, nil
}

func (r *categoryRepo) List(ctx context.Context, offset, limit int) ([]domain.Category, int, error) {
	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM categories"); err != nil {
		return nil, 0, fmt.Errorf("categoryRepo.List count: %w", err)
	}

	var categories []domain.Category
	err := r.db.SelectContext(ctx, &categories,
		"SELECT "+categoryColumns+" FROM categories ORDER BY sort_order, name LIMIT $1 OFFSET $2",
		limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("categoryRepo.List: %w", err)
	}
	return categories, total, nil
}

func (r *categoryRepo) ListAll(ctx context.Context) ([]domain.Category, error) {
	var categories []domain.Category
	err := r.db.SelectContext(ctx, &categories,
		"SELECT "+categoryColumns+" FROM categories ORDER BY sort_order, name")
	if err != nil {
		return nil, fmt.Errorf("categoryRepo.ListAll: %w", err)
	}
	return categories, nil
}

func (r *categoryRepo) Update(ctx context.Context, category *domain.Category) error {
	category.UpdatedAt = time.Now().UTC()
	result, err := r.db.ExecContext(ctx,
		`UPDATE categories SET name = $1, parent_id = $2, image_id = $3, is_active = $4,
		 sort_order = $5, updated_at = $6 WHERE id = $7`,
		category.Name, category.ParentID, category.ImageID, category.IsActive,
		category.SortOrder, category.UpdatedAt, category.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateName
		}
		return fmt.Errorf("categoryRepo.Update: %w", err)
	}
	rows, _ := result.RowsAffected()
	return affectedOrNotFound(rows, domain.ErrNotFound)
}

func (r *categoryRepo) Delete(ctx context.Context, categoryID uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM categories WHERE id = $1", categoryID)
	if err != nil {
		return fmt.Errorf("categoryRepo.Delete: %w", err)
	}
	rows, _ := result.RowsAffected()
	return affectedOrNotFound(rows, domain.ErrNotFound)
}
