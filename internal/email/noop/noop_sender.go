package noop

import (
	"context"

	"go.uber.org/zap"

	"backoffice/internal/port"
)

type noopMailer struct {
	log *zap.Logger
}

// NewNoopMailer creates a PurchaseMailer that only logs the order it would send.
func NewNoopMailer(log *zap.Logger) port.PurchaseMailer {
	return &noopMailer{log: log}
}

func (m *noopMailer) SendPurchaseOrder(_ context.Context, mail port.PurchaseOrderMail) error {
	m.log.Info("purchase order mail not sent (noop provider)",
		zap.String("to", mail.ToEmail),
		zap.String("subject", mail.Subject),
		zap.Int("body_bytes", len(mail.TextBody)),
	)
	return nil
}
