package noop_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"backoffice/internal/email/noop"
	"backoffice/internal/port"
)

func TestNoopMailer_LogsInsteadOfSending(t *testing.T) {
	core, recorded := observer.New(zapcore.InfoLevel)
	m := noop.NewNoopMailer(zap.New(core))

	err := m.SendPurchaseOrder(context.Background(), port.PurchaseOrderMail{ToEmail: "a@b.nl", Subject: "Bestelling"})
	require.NoError(t, err)

	entries := recorded.All()
	require.Len(t, entries, 1)
	assert.Equal(t, "a@b.nl", entries[0].ContextMap()["to"])
}
