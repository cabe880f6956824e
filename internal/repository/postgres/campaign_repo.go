package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"backoffice/internal/domain"
	"backoffice/internal/port"
)

type campaignRepo struct {
	db *sqlx.DB
}

// NewCampaignRepo creates a new PostgreSQL-backed CampaignRepository.
func NewCampaignRepo(db *sqlx.DB) port.CampaignRepository {
	return &campaignRepo{db: db}
}

// campaignRow carries the product_ids array column alongside the campaign.
type campaignRow struct {
	domain.Campaign
	ProductIDs pq.StringArray `db:"product_ids"`
}

func (row campaignRow) toDomain() (domain.Campaign, error) {
	c := row.Campaign
	c.ProductIDs = make([]uuid.UUID, 0, len(row.ProductIDs))
	for _, s := range row.ProductIDs {
		id, err := uuid.Parse(s)
		if err != nil {
			return domain.Campaign{}, fmt.Errorf("parsing campaign product id %q: %w", s, err)
		}
		c.ProductIDs = append(c.ProductIDs, id)
	}
	return c, nil
}

// uuidArray renders ids as a text array, cast to uuid[] in queries.
func uuidArray(ids []uuid.UUID) pq.StringArray {
	out := make(pq.StringArray, len(ids))
	for i, id := range ids {
		out[i] = id.String()
	}
	return out
}

func (r *campaignRepo) Create(ctx context.Context, campaign *domain.Campaign) error {
	campaign.ID = uuid.New()
	now := time.Now().UTC()
	campaign.CreatedAt = now
	campaign.UpdatedAt = now

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO campaigns (id, name, description, discount_percentage, start_date, end_date,
		 is_active, product_ids, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8::uuid[], $9, $10)`,
		campaign.ID, campaign.Name, campaign.Description, campaign.DiscountPercentage,
		campaign.StartDate, campaign.EndDate, campaign.IsActive, uuidArray(campaign.ProductIDs),
		campaign.CreatedAt, campaign.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateName
		}
		return fmt.Errorf("campaignRepo.Create: %w", err)
	}
	return nil
}

func (r *campaignRepo) GetByID(ctx context.Context, campaignID uuid.UUID) (*domain.Campaign, error) {
	var row campaignRow
	if err := r.db.GetContext(ctx, &row, "SELECT * FROM campaigns WHERE id = $1", campaignID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("campaignRepo.GetByID: %w", err)
	}
	c, err := row.toDomain()
	if err != nil {
		return nil, fmt.Errorf("campaignRepo.GetByID: %w", err)
	}
	return &c, nil
}

func (r *campaignRepo) List(ctx context.Context, offset, limit int) ([]domain.Campaign, int, error) {
	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM campaigns"); err != nil {
		return nil, 0, fmt.Errorf("campaignRepo.List count: %w", err)
	}

	var rows []campaignRow
	err := r.db.SelectContext(ctx, &rows,
		"SELECT * FROM campaigns ORDER BY start_date DESC, name LIMIT $1 OFFSET $2", limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("campaignRepo.List: %w", err)
	}

	campaigns := make([]domain.Campaign, 0, len(rows))
	for _, row := range rows {
		c, err := row.toDomain()
		if err != nil {
			return nil, 0, fmt.Errorf("campaignRepo.List: %w", err)
		}
		campaigns = append(campaigns, c)
	}
	return campaigns, total, nil
}

func (r *campaignRepo) Update(ctx context.Context, campaign *domain.Campaign) error {
	campaign.UpdatedAt = time.Now().UTC()
	result, err := r.db.ExecContext(ctx,
		`UPDATE campaigns SET name = $1, description = $2, discount_percentage = $3,
		 start_date = $4, end_date = $5, is_active = $6, product_ids = $7::uuid[], updated_at = $8
		 WHERE id = $9`,
		campaign.Name, campaign.Description, campaign.DiscountPercentage, campaign.StartDate,
		campaign.EndDate, campaign.IsActive, uuidArray(campaign.ProductIDs),
		campaign.UpdatedAt, campaign.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateName
		}
		return fmt.Errorf("campaignRepo.Update: %w", err)
	}
	rows, _ := result.RowsAffected()
	return affectedOrNotFound(rows, domain.ErrNotFound)
}

func (r *campaignRepo) Delete(ctx context.Context, campaignID uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM campaigns WHERE id = $1", campaignID)
	if err != nil {
		return fmt.Errorf("campaignRepo.Delete: %w", err)
	}
	rows, _ := result.RowsAffected()
	return affectedOrNotFound(rows, domain.ErrNotFound)
}
