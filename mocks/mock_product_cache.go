package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"backoffice/internal/domain"
)

// MockProductCache is a mock implementation of port.ProductCache.
type MockProductCache struct {
	mock.Mock
}

func (m *MockProductCache) Get(ctx context.Context, ean string) (*domain.Product, error) {
	args := m.Called(ctx, ean)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}

func (m *MockProductCache) Set(ctx context.Context, product *domain.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductCache) Invalidate(ctx context.Context, ean string) error {
	args := m.Called(ctx, ean)
	return args.Error(0)
}
