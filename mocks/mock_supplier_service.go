package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"backoffice/internal/domain"
	"backoffice/internal/service"
)

// MockSupplierService is a mock implementation of service.SupplierService.
type MockSupplierService struct {
	mock.Mock
}

func (m *MockSupplierService) Create(ctx context.Context, input service.SupplierInput) (*domain.Supplier, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Supplier), args.Error(1)
}

func (m *MockSupplierService) GetByID(ctx context.Context, supplierID uuid.UUID) (*domain.Supplier, error) {
	args := m.Called(ctx, supplierID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Supplier), args.Error(1)
}

func (m *MockSupplierService) List(ctx context.Context, search string, offset, limit int) ([]domain.Supplier, int, error) {
	args := m.Called(ctx, search, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Supplier), args.Int(1), args.Error(2)
}

func (m *MockSupplierService) Update(ctx context.Context, actor domain.Actor, supplierID uuid.UUID, input service.SupplierInput) (*domain.Supplier, error) {
	args := m.Called(ctx, actor, supplierID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Supplier), args.Error(1)
}

func (m *MockSupplierService) Delete(ctx context.Context, supplierID uuid.UUID) error {
	args := m.Called(ctx, supplierID)
	return args.Error(0)
}

func (m *MockSupplierService) AddRecommendedProduct(ctx context.Context, supplierID uuid.UUID, input service.RecommendedProductInput) (*domain.Supplier, error) {
	args := m.Called(ctx, supplierID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Supplier), args.Error(1)
}

func (m *MockSupplierService) RemoveRecommendedProduct(ctx context.Context, supplierID, productID uuid.UUID) (*domain.Supplier, error) {
	args := m.Called(ctx, supplierID, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Supplier), args.Error(1)
}

func (m *MockSupplierService) BuildOffer(ctx context.Context, supplierID uuid.UUID) (*service.Quote, error) {
	args := m.Called(ctx, supplierID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Quote), args.Error(1)
}

func (m *MockSupplierService) Purchases(ctx context.Context, supplierID uuid.UUID, offset, limit int) ([]domain.Purchase, int, error) {
	args := m.Called(ctx, supplierID, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Purchase), args.Int(1), args.Error(2)
}
