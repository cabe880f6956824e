package handler_test

import (
	"fmt"
	"io"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"backoffice/internal/domain"
	"backoffice/internal/handler"
	"backoffice/internal/pricing"
	"backoffice/internal/service"
	"backoffice/mocks"
)

func newPurchaseHandler() (*handler.PurchaseHandler, *mocks.MockPurchaseService) {
	mockSvc := new(mocks.MockPurchaseService)
	return handler.NewPurchaseHandler(mockSvc), mockSvc
}

func TestPurchaseHandler_Quote_ReturnsFormattedTotals(t *testing.T) {
	h, mockSvc := newPurchaseHandler()
	supplierID := uuid.New()
	productID := uuid.New()

	mockSvc.On("Quote", anyCtx, mock.MatchedBy(func(in service.PurchaseInput) bool {
		return in.SupplierID == supplierID && len(in.Items) == 1 && in.Items[0].UnitPrice == "12,75"
	})).Return(&service.Quote{
		SupplierID: supplierID,
		Country:    "NL",
		FormattedTotals: pricing.FormattedTotals{
			SubtotalExclTax: "25.50",
			TaxAmount:       "4.20",
			TotalInclTax:    "29.70",
		},
	}, nil)

	c, w := newTestContext(http.MethodPost, "/api/v1/purchases/quote", map[string]interface{}{
		"supplier_id": supplierID,
		"items": []map[string]interface{}{
			{"product": productID, "product_quantity": 2, "product_purchase_price": "12,75"},
		},
	})
	setActor(c, employeeActor())

	h.Quote(c)

	assert.Equal(t, http.StatusOK, w.Code)
	data := dataMap(t, decode(t, w))
	assert.Equal(t, "25.50", data["total_exc_btw"])
	assert.Equal(t, "4.20", data["total_vat"])
	assert.Equal(t, "29.70", data["total_inc_btw"])
	mockSvc.AssertExpectations(t)
}

func TestPurchaseHandler_Create(t *testing.T) {
	h, mockSvc := newPurchaseHandler()
	actor := employeeActor()
	supplierID := uuid.New()

	mockSvc.On("Create", anyCtx, actor, mock.AnythingOfType("service.PurchaseInput")).
		Return(&domain.Purchase{ID: uuid.New(), SupplierID: supplierID, Status: domain.PurchaseStatusPending}, nil)

	c, w := newTestContext(http.MethodPost, "/api/v1/purchases", map[string]interface{}{
		"supplier_id": supplierID,
		"type":        "offer",
	})
	setActor(c, actor)

	h.Create(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	mockSvc.AssertExpectations(t)
}

func TestPurchaseHandler_Create_ZeroQuantityRejected(t *testing.T) {
	h, _ := newPurchaseHandler()

	c, w := newTestContext(http.MethodPost, "/api/v1/purchases", map[string]interface{}{
		"supplier_id": uuid.New(),
		"items": []map[string]interface{}{
			{"product": uuid.New(), "product_quantity": 0},
		},
	})
	setActor(c, employeeActor())

	h.Create(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "VALIDATION_ERROR", decode(t, w).Error.Code)
}

func TestPurchaseHandler_Create_NoAuth(t *testing.T) {
	h, _ := newPurchaseHandler()

	c, w := newTestContext(http.MethodPost, "/api/v1/purchases", map[string]interface{}{"supplier_id": uuid.New()})

	h.Create(c)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestPurchaseHandler_AddItem_UnknownEAN(t *testing.T) {
	h, mockSvc := newPurchaseHandler()
	actor := employeeActor()
	purchaseID := uuid.New()

	mockSvc.On("AddItem", anyCtx, actor, purchaseID, service.AddItemInput{EAN: "0000", Quantity: 1}).
		Return(nil, domain.ErrProductNotFound)

	c, w := newTestContext(http.MethodPost, "/api/v1/purchases/x/items", map[string]interface{}{"ean": "0000", "quantity": 1})
	withParams(c, "id", purchaseID.String())
	setActor(c, actor)

	h.AddItem(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "PRODUCT_NOT_FOUND", decode(t, w).Error.Code)
	mockSvc.AssertExpectations(t)
}

func TestPurchaseHandler_UpdateItem_Committed(t *testing.T) {
	h, mockSvc := newPurchaseHandler()
	actor := employeeActor()
	purchaseID, itemID := uuid.New(), uuid.New()

	mockSvc.On("UpdateItem", anyCtx, actor, purchaseID, itemID, mock.MatchedBy(func(in service.UpdateItemInput) bool {
		return in.Quantity != nil && *in.Quantity == 3 && in.UnitPrice == nil
	})).Return(nil, domain.ErrPurchaseNotEditable)

	c, w := newTestContext(http.MethodPatch, "/api/v1/purchases/x/items/y", map[string]interface{}{"quantity": 3})
	withParams(c, "id", purchaseID.String(), "itemId", itemID.String())
	setActor(c, actor)

	h.UpdateItem(c)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "PURCHASE_NOT_EDITABLE", decode(t, w).Error.Code)
	mockSvc.AssertExpectations(t)
}

func TestPurchaseHandler_UpdateItem_InvalidItemID(t *testing.T) {
	h, _ := newPurchaseHandler()

	c, w := newTestContext(http.MethodPatch, "/api/v1/purchases/x/items/y", map[string]interface{}{"quantity": 3})
	withParams(c, "id", uuid.NewString(), "itemId", "not-a-uuid")
	setActor(c, employeeActor())

	h.UpdateItem(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INVALID_ID", decode(t, w).Error.Code)
}

func TestPurchaseHandler_RemoveItem(t *testing.T) {
	h, mockSvc := newPurchaseHandler()
	actor := employeeActor()
	purchaseID, itemID := uuid.New(), uuid.New()

	mockSvc.On("RemoveItem", anyCtx, actor, purchaseID, itemID).
		Return(&domain.Purchase{ID: purchaseID, TotalExcBTW: "0.00", TotalVAT: "0.00", TotalIncBTW: "0.00"}, nil)

	c, w := newTestContext(http.MethodDelete, "/api/v1/purchases/x/items/y", nil)
	withParams(c, "id", purchaseID.String(), "itemId", itemID.String())
	setActor(c, actor)

	h.RemoveItem(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "0.00", dataMap(t, decode(t, w))["total_inc_btw"])
	mockSvc.AssertExpectations(t)
}

func TestPurchaseHandler_UpdateStatus(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"completed", nil, http.StatusOK},
		{"already committed", domain.ErrInvalidStatusTransition, http.StatusConflict},
		{"missing capability", domain.ErrForbidden, http.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, mockSvc := newPurchaseHandler()
			actor := adminActor()
			purchaseID := uuid.New()

			var result *domain.Purchase
			if tt.err == nil {
				result = &domain.Purchase{ID: purchaseID, Status: domain.PurchaseStatusCompleted}
			}
			mockSvc.On("UpdateStatus", anyCtx, actor, purchaseID, domain.PurchaseStatusCompleted).Return(result, tt.err)

			c, w := newTestContext(http.MethodPut, "/api/v1/purchases/x/status", map[string]string{"status": "completed"})
			withParams(c, "id", purchaseID.String())
			setActor(c, actor)

			h.UpdateStatus(c)

			assert.Equal(t, tt.status, w.Code)
			mockSvc.AssertExpectations(t)
		})
	}
}

func TestPurchaseHandler_Send_DeliveryFailure(t *testing.T) {
	h, mockSvc := newPurchaseHandler()
	actor := employeeActor()
	purchaseID := uuid.New()

	mockSvc.On("Send", anyCtx, actor, purchaseID).
		Return(nil, fmt.Errorf("%w: throttled", domain.ErrMailDeliveryFailed))

	c, w := newTestContext(http.MethodPost, "/api/v1/purchases/x/send", nil)
	withParams(c, "id", purchaseID.String())
	setActor(c, actor)

	h.Send(c)

	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Equal(t, "MAIL_DELIVERY_FAILED", decode(t, w).Error.Code)
}

func TestPurchaseHandler_List_Filters(t *testing.T) {
	h, mockSvc := newPurchaseHandler()
	supplierID := uuid.New()

	mockSvc.On("List", anyCtx, domain.PurchaseFilter{
		Status:     domain.PurchaseStatusPending,
		Type:       domain.PurchaseTypeOffer,
		SupplierID: &supplierID,
	}, 0, 20).Return([]domain.Purchase{{ID: uuid.New()}}, 1, nil)

	c, w := newTestContext(http.MethodGet, "/api/v1/purchases?status=pending&type=offer&supplier_id="+supplierID.String(), nil)
	setActor(c, employeeActor())

	h.List(c)

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decode(t, w)
	require.NotNil(t, resp.Meta)
	assert.Equal(t, 1, resp.Meta.Total)
	mockSvc.AssertExpectations(t)
}

func TestPurchaseHandler_List_InvalidFilter(t *testing.T) {
	tests := []struct {
		query string
		code  string
	}{
		{"status=shipped", "INVALID_STATUS"},
		{"type=invoice", "INVALID_PURCHASE_TYPE"},
		{"supplier_id=abc", "INVALID_ID"},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			h, _ := newPurchaseHandler()

			c, w := newTestContext(http.MethodGet, "/api/v1/purchases?"+tt.query, nil)
			setActor(c, employeeActor())

			h.List(c)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, tt.code, decode(t, w).Error.Code)
		})
	}
}

func TestPurchaseHandler_Export(t *testing.T) {
	h, mockSvc := newPurchaseHandler()

	mockSvc.On("Export", anyCtx, mock.Anything, domain.PurchaseFilter{Status: domain.PurchaseStatusCompleted}).
		Run(func(args mock.Arguments) {
			_, _ = io.WriteString(args.Get(1).(io.Writer), "\ufeffid;supplier\n")
		}).
		Return(nil)

	c, w := newTestContext(http.MethodGet, "/api/v1/purchases/export?status=completed", nil)
	setActor(c, employeeActor())

	h.Export(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/csv; charset=utf-8", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "attachment; filename=")
	assert.Equal(t, "\ufeffid;supplier\n", w.Body.String())
	mockSvc.AssertExpectations(t)
}

func TestPurchaseHandler_Export_Failure(t *testing.T) {
	h, mockSvc := newPurchaseHandler()

	mockSvc.On("Export", anyCtx, mock.Anything, domain.PurchaseFilter{}).Return(assert.AnError)

	c, w := newTestContext(http.MethodGet, "/api/v1/purchases/export", nil)
	setActor(c, employeeActor())

	h.Export(c)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Empty(t, w.Header().Get("Content-Disposition"))
}
