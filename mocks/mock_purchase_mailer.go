package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"backoffice/internal/port"
)

// MockPurchaseMailer is a mock implementation of port.PurchaseMailer.
type MockPurchaseMailer struct {
	mock.Mock
}

func (m *MockPurchaseMailer) SendPurchaseOrder(ctx context.Context, mail port.PurchaseOrderMail) error {
	args := m.Called(ctx, mail)
	return args.Error(0)
}
