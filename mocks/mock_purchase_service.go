package mocks

import (
	"context"
	"io"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"backoffice/internal/domain"
	"backoffice/internal/service"
)

// MockPurchaseService is a mock implementation of service.PurchaseService.
type MockPurchaseService struct {
	mock.Mock
}

func purchaseResult(args mock.Arguments) (*domain.Purchase, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Purchase), args.Error(1)
}

func (m *MockPurchaseService) Quote(ctx context.Context, input service.PurchaseInput) (*service.Quote, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Quote), args.Error(1)
}

func (m *MockPurchaseService) Create(ctx context.Context, actor domain.Actor, input service.PurchaseInput) (*domain.Purchase, error) {
	return purchaseResult(m.Called(ctx, actor, input))
}

func (m *MockPurchaseService) GetByID(ctx context.Context, purchaseID uuid.UUID) (*domain.Purchase, error) {
	return purchaseResult(m.Called(ctx, purchaseID))
}

func (m *MockPurchaseService) List(ctx context.Context, filter domain.PurchaseFilter, offset, limit int) ([]domain.Purchase, int, error) {
	args := m.Called(ctx, filter, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Purchase), args.Int(1), args.Error(2)
}

func (m *MockPurchaseService) Update(ctx context.Context, actor domain.Actor, purchaseID uuid.UUID, input service.PurchaseInput) (*domain.Purchase, error) {
	return purchaseResult(m.Called(ctx, actor, purchaseID, input))
}

func (m *MockPurchaseService) AddItem(ctx context.Context, actor domain.Actor, purchaseID uuid.UUID, input service.AddItemInput) (*domain.Purchase, error) {
	return purchaseResult(m.Called(ctx, actor, purchaseID, input))
}

func (m *MockPurchaseService) UpdateItem(ctx context.Context, actor domain.Actor, purchaseID, itemID uuid.UUID, input service.UpdateItemInput) (*domain.Purchase, error) {
	return purchaseResult(m.Called(ctx, actor, purchaseID, itemID, input))
}

func (m *MockPurchaseService) RemoveItem(ctx context.Context, actor domain.Actor, purchaseID, itemID uuid.UUID) (*domain.Purchase, error) {
	return purchaseResult(m.Called(ctx, actor, purchaseID, itemID))
}

func (m *MockPurchaseService) UpdateStatus(ctx context.Context, actor domain.Actor, purchaseID uuid.UUID, status domain.PurchaseStatus) (*domain.Purchase, error) {
	return purchaseResult(m.Called(ctx, actor, purchaseID, status))
}

func (m *MockPurchaseService) Convert(ctx context.Context, actor domain.Actor, purchaseID uuid.UUID) (*domain.Purchase, error) {
	return purchaseResult(m.Called(ctx, actor, purchaseID))
}

func (m *MockPurchaseService) Send(ctx context.Context, actor domain.Actor, purchaseID uuid.UUID) (*domain.Purchase, error) {
	return purchaseResult(m.Called(ctx, actor, purchaseID))
}

func (m *MockPurchaseService) Delete(ctx context.Context, purchaseID uuid.UUID) error {
	args := m.Called(ctx, purchaseID)
	return args.Error(0)
}

func (m *MockPurchaseService) Export(ctx context.Context, w io.Writer, filter domain.PurchaseFilter) error {
	args := m.Called(ctx, w, filter)
	return args.Error(0)
}
