package port

import "context"

// PurchaseOrderMail is a rendered purchase order addressed to a supplier.
type PurchaseOrderMail struct {
	ToEmail  string
	ToName   string
	Subject  string
	TextBody string
	HTMLBody string
}

// PurchaseMailer delivers purchase orders to suppliers.
type PurchaseMailer interface {
	SendPurchaseOrder(ctx context.Context, mail PurchaseOrderMail) error
}

