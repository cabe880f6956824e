package email_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"backoffice/internal/domain"
	"backoffice/internal/email"
	"backoffice/internal/pricing"
)

func orderFixture(country string) (*domain.Purchase, *domain.Supplier) {
	p := &domain.Purchase{
		ID:                  uuid.MustParse("0a1b2c3d-0000-4000-8000-000000000000"),
		PurchaseInvoiceDate: time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC),
		Items: []domain.PurchaseItem{
			{ID: uuid.New(), ProductTitle: "Koffie", ProductEAN: "8712345678906", Quantity: 2, UnitPrice: "10,00", VATRate: 21},
			{ID: uuid.New(), ProductTitle: "Thee <groen>", Quantity: 1, UnitPrice: "5.50", VATRate: 0},
		},
	}
	s := &domain.Supplier{Name: "Groothandel", ContactPerson: "Jan", Email: "orders@gh.nl", Country: country}
	return p, s
}

func TestRenderPurchaseOrder_Domestic(t *testing.T) {
	p, s := orderFixture("NL")

	mail, err := email.RenderPurchaseOrder("Inkoop", p, s, pricing.NewResolver())
	require.NoError(t, err)

	assert.Equal(t, "orders@gh.nl", mail.ToEmail)
	assert.Equal(t, "Jan", mail.ToName)
	assert.Equal(t, "Bestelling 0A1B2C3D - Inkoop", mail.Subject)
	assert.Contains(t, mail.TextBody, "2 x Koffie (8712345678906) a 10.00 = 20.00")
	assert.Contains(t, mail.TextBody, "Totaal excl. BTW: 25.50")
	assert.Contains(t, mail.TextBody, "BTW:              4.20")
	assert.Contains(t, mail.TextBody, "Totaal incl. BTW: 29.70")
	assert.Contains(t, mail.TextBody, "14-03-2026")
	assert.Contains(t, mail.HTMLBody, "Thee &lt;groen&gt;")
}

func TestRenderPurchaseOrder_ForeignSupplierHasNoVAT(t *testing.T) {
	p, s := orderFixture("BE")
	s.ContactPerson = ""

	mail, err := email.RenderPurchaseOrder("Inkoop", p, s, pricing.NewResolver())
	require.NoError(t, err)

	assert.Equal(t, "Groothandel", mail.ToName)
	assert.Contains(t, mail.TextBody, "BTW:              0.00")
	assert.Contains(t, mail.TextBody, "Totaal incl. BTW: 25.50")
}
