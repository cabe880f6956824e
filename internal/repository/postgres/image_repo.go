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

type imageRepo struct {
	db *sqlx.DB
}

// NewImageRepo creates a new PostgreSQL-backed ImageRepository.
func NewImageRepo(db *sqlx.DB) port.ImageRepository {
	return &imageRepo{db: db}
}

func (r *imageRepo) Create(ctx context.Context, image *domain.Image) error {
	now := time.Now().UTC()
	image.CreatedAt = now
	image.UpdatedAt = now

	query := `INSERT INTO images
		(id, uploaded_by, file_name, original_name, content_type, file_size,
		 s3_bucket, s3_key, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	_, err := r.db.ExecContext(ctx, query,
		image.ID, image.UploadedBy, image.FileName, image.OriginalName, image.ContentType,
		image.FileSize, image.S3Bucket, image.S3Key, image.Status, image.CreatedAt, image.UpdatedAt)
	if err != nil {
		return fmt.Errorf("imageRepo.Create: %w", err)
	}
	return nil
}

func (r *imageRepo) GetByID(ctx context.Context, imageID uuid.UUID) (*domain.Image, error) {
	var image domain.Image
	err := r.db.GetContext(ctx, &image, "SELECT * FROM images WHERE id = $1", imageID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("imageRepo.GetByID: %w", err)
	}
	return &image, nil
}

func (r *imageRepo) List(ctx context.Context, offset, limit int) ([]domain.Image, int, error) {
	var total int
	err := r.db.GetContext(ctx, &total,
		"SELECT COUNT(*) FROM images WHERE status = $1", domain.ImageStatusUploaded)
	if err != nil {
		return nil, 0, fmt.Errorf("imageRepo.List count: %w", err)
	}

	var images []domain.Image
	err = r.db.SelectContext(ctx, &images,
		`SELECT * FROM images WHERE status = $1
		 ORDER BY created_at DESC LIMIT $2 OFFSET $3`,
		domain.ImageStatusUploaded, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("imageRepo.List: %w", err)
	}
	return images, total, nil
}

func (r *imageRepo) UpdateStatus(ctx context.Context, imageID uuid.UUID, status domain.ImageStatus) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE images SET status = $1, updated_at = $2 WHERE id = $3",
		status, time.Now().UTC(), imageID)
	if err != nil {
		return fmt.Errorf("imageRepo.UpdateStatus: %w", err)
	}
	rows, _ := result.RowsAffected()
	return affectedOrNotFound(rows, domain.ErrNotFound)
}

func (r *imageRepo) Delete(ctx context.Context, imageID uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM images WHERE id = $1", imageID)
	if err != nil {
		return fmt.Errorf("imageRepo.Delete: %w", err)
	}
	rows, _ := result.RowsAffected()
	return affectedOrNotFound(rows, domain.ErrNotFound)
}
