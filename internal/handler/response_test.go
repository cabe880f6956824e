package handler_test

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"backoffice/internal/domain"
	"backoffice/internal/handler"
)

func TestMapDomainError(t *testing.T) {
	tests := []struct {
		err    error
		status int
		code   string
	}{
		{domain.ErrProductNotFound, http.StatusNotFound, "PRODUCT_NOT_FOUND"},
		{fmt.Errorf("lookup: %w", domain.ErrProductNotFound), http.StatusNotFound, "PRODUCT_NOT_FOUND"},
		{domain.ErrSupplierNotFound, http.StatusNotFound, "SUPPLIER_NOT_FOUND"},
		{domain.ErrLineItemNotFound, http.StatusNotFound, "LINE_ITEM_NOT_FOUND"},
		{domain.ErrNotFound, http.StatusNotFound, "NOT_FOUND"},
		{domain.ErrForbidden, http.StatusForbidden, "FORBIDDEN"},
		{domain.ErrInvalidCredentials, http.StatusUnauthorized, "INVALID_CREDENTIALS"},
		{domain.ErrDuplicateEAN, http.StatusConflict, "DUPLICATE_EAN"},
		{domain.ErrInUse, http.StatusConflict, "IN_USE"},
		{domain.ErrInvalidQuantity, http.StatusBadRequest, "INVALID_QUANTITY"},
		{domain.ErrEmptyItemUpdate, http.StatusBadRequest, "VALIDATION_ERROR"},
		{domain.ErrInvalidVATRate, http.StatusBadRequest, "INVALID_VAT_RATE"},
		{domain.ErrPurchaseNotEditable, http.StatusConflict, "PURCHASE_NOT_EDITABLE"},
		{domain.ErrInvalidStatusTransition, http.StatusConflict, "INVALID_STATUS_TRANSITION"},
		{domain.ErrSupplierEmailMissing, http.StatusUnprocessableEntity, "SUPPLIER_EMAIL_MISSING"},
		{fmt.Errorf("%w: smtp timeout", domain.ErrMailDeliveryFailed), http.StatusBadGateway, "MAIL_DELIVERY_FAILED"},
		{errors.New("boom"), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}
	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			status, code, msg := handler.MapDomainError(tt.err)
			assert.Equal(t, tt.status, status)
			assert.Equal(t, tt.code, code)
			assert.NotEmpty(t, msg)
		})
	}
}

func TestHandleError_HidesInternalCause(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	handler.HandleError(c, errors.New("pq: connection refused"))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	resp := decode(t, w)
	assert.False(t, resp.Success)
	assert.Equal(t, "INTERNAL_ERROR", resp.Error.Code)
	assert.NotContains(t, w.Body.String(), "connection refused")
}

func TestPagination_CapsLimit(t *testing.T) {
	h, mockSvc := newBrandHandler()
	mockSvc.On("List", anyCtx, 40, 100).Return([]domain.Brand{}, 0, nil)

	c, w := newTestContext(http.MethodGet, "/api/v1/brands?offset=40&limit=500", nil)
	h.List(c)

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decode(t, w)
	assert.Equal(t, 100, resp.Meta.Limit)
	assert.Equal(t, 40, resp.Meta.Offset)
	mockSvc.AssertExpectations(t)
}
