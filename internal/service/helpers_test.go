package service_test

import (
	"github.com/google/uuid"

	"backoffice/internal/domain"
	"backoffice/internal/pricing"
	"backoffice/internal/service"
)

func testPricing() service.Pricing {
	return service.Pricing{Resolver: pricing.NewResolver(), DefaultVATRate: 21}
}

func adminActor() domain.Actor {
	return domain.NewActor(uuid.New(), "admin@winkel.nl", domain.RoleAdmin)
}

func employeeActor() domain.Actor {
	return domain.NewActor(uuid.New(), "medewerker@winkel.nl", domain.RoleEmployee)
}

func ptr[T any](v T) *T {
	return &v
}

func testSupplier(country string) *domain.Supplier {
	return &domain.Supplier{
		ID:       uuid.New(),
		Name:     "Groothandel Jansen",
		Email:    "inkoop@jansen.nl",
		Country:  country,
		IsActive: true,
	}
}

// widget and sticker make up the 25.50 subtotal scenario.
func widgetProduct() domain.Product {
	return domain.Product{
		ID:        uuid.New(),
		Title:     "Widget",
		EAN:       "8710000000011",
		PriceCost: "10.00",
		VATRate:   ptr(21.0),
		IsActive:  true,
	}
}

func stickerProduct() domain.Product {
	return domain.Product{
		ID:        uuid.New(),
		Title:     "Sticker",
		EAN:       "8710000000028",
		PriceCost: "5,50",
		VATRate:   ptr(0.0),
		IsActive:  true,
	}
}

func pendingPurchase(supplierID uuid.UUID, items ...domain.PurchaseItem) *domain.Purchase {
	for i := range items {
		if items[i].ID == uuid.Nil {
			items[i].ID = uuid.New()
		}
	}
	return &domain.Purchase{
		ID:         uuid.New(),
		Type:       domain.PurchaseTypePurchase,
		Status:     domain.PurchaseStatusPending,
		SupplierID: supplierID,
		Items:      items,
	}
}
