package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"backoffice/internal/domain"
)

// MockImageRepo is a mock implementation of port.ImageRepository.
type MockImageRepo struct {
	mock.Mock
}

func (m *MockImageRepo) Create(ctx context.Context, image *domain.Image) error {
	args := m.Called(ctx, image)
	return args.Error(0)
}

func (m *MockImageRepo) GetByID(ctx context.Context, imageID uuid.UUID) (*domain.Image, error) {
	args := m.Called(ctx, imageID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Image), args.Error(1)
}

func (m *MockImageRepo) List(ctx context.Context, offset, limit int) ([]domain.Image, int, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Image), args.Int(1), args.Error(2)
}

func (m *MockImageRepo) UpdateStatus(ctx context.Context, imageID uuid.UUID, status domain.ImageStatus) error {
	args := m.Called(ctx, imageID, status)
	return args.Error(0)
}

func (m *MockImageRepo) Delete(ctx context.Context, imageID uuid.UUID) error {
	args := m.Called(ctx, imageID)
	return args.Error(0)
}
