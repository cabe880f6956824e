package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"backoffice/internal/domain"
	"backoffice/internal/port"
)

type statsRepo struct {
	db *sqlx.DB
}

// NewStatsRepo creates a new PostgreSQL-backed StatsRepository.
func NewStatsRepo(db *sqlx.DB) port.StatsRepository {
	return &statsRepo{db: db}
}

const purchaseStatsQuery = `SELECT
	COUNT(CASE WHEN type = 'purchase' AND status = 'pending' THEN 1 END) AS purchases_pending,
	COUNT(CASE WHEN type = 'purchase' AND status = 'completed' THEN 1 END) AS purchases_completed,
	COUNT(CASE WHEN type = 'purchase' AND status = 'cancelled' THEN 1 END) AS purchases_cancelled,
	COUNT(CASE WHEN type = 'offer' THEN 1 END) AS offers,
	COALESCE(SUM(CASE WHEN type = 'purchase' AND status = 'completed' THEN total_inc_btw::numeric END), 0)::text AS completed_spend
FROM purchases`

func (r *statsRepo) Get(ctx context.Context) (*domain.Stats, error) {
	var stats domain.Stats
	if err := r.db.GetContext(ctx, &stats, purchaseStatsQuery); err != nil {
		return nil, fmt.Errorf("statsRepo.Get purchases: %w", err)
	}

	if err := r.db.GetContext(ctx, &stats.Suppliers, "SELECT COUNT(*) FROM suppliers"); err != nil {
		return nil, fmt.Errorf("statsRepo.Get suppliers: %w", err)
	}
	if err := r.db.GetContext(ctx, &stats.Products, "SELECT COUNT(*) FROM products"); err != nil {
		return nil, fmt.Errorf("statsRepo.Get products: %w", err)
	}
	return &stats, nil
}
