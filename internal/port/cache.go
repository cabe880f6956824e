package port

import (
	"context"

	"backoffice/internal/domain"
)

// ProductCache caches product lookups by EAN. Get reports a miss with (nil, nil).
type ProductCache interface {
	Get(ctx context.Context, ean string) (*domain.Product, error)
	Set(ctx context.Context, product *domain.Product) error
	Invalidate(ctx context.Context, ean string) error
}
