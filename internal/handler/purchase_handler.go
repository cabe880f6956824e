package handler

import (
	"bytes"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"backoffice/internal/csvexport"
	"backoffice/internal/domain"
	"backoffice/internal/service"
)

// PurchaseHandler handles purchases, offers and their line items.
type PurchaseHandler struct {
	purchaseService service.PurchaseService
}

// NewPurchaseHandler creates a new PurchaseHandler.
func NewPurchaseHandler(purchaseService service.PurchaseService) *PurchaseHandler {
	return &PurchaseHandler{purchaseService: purchaseService}
}

// StatusInput is the body of PUT /purchases/:id/status.
type StatusInput struct {
	Status domain.PurchaseStatus `json:"status" binding:"required"`
}

// Quote handles POST /api/v1/purchases/quote
// @Summary Quote totals
// @Description Computes totals for a candidate item list under the supplier's country without saving
// @Tags purchases
// @Accept json
// @Produce json
// @Param request body service.PurchaseInput true "Candidate purchase"
// @Success 200 {object} APIResponse{data=service.Quote}
// @Failure 404 {object} APIResponse
// @Security BearerAuth
// @Router /purchases/quote [post]
func (h *PurchaseHandler) Quote(c *gin.Context) {
	var input service.PurchaseInput
	if !bindJSON(c, &input) {
		return
	}

	quote, err := h.purchaseService.Quote(c.Request.Context(), input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, quote)
}

// Create handles POST /api/v1/purchases
// @Summary Create purchase or offer
// @Description Totals are always recomputed from the items; client supplied totals are ignored
// @Tags purchases
// @Accept json
// @Produce json
// @Param request body service.PurchaseInput true "Purchase"
// @Success 201 {object} APIResponse{data=domain.Purchase}
// @Failure 400 {object} APIResponse
// @Failure 404 {object} APIResponse
// @Security BearerAuth
// @Router /purchases [post]
func (h *PurchaseHandler) Create(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}
	var input service.PurchaseInput
	if !bindJSON(c, &input) {
		return
	}

	purchase, err := h.purchaseService.Create(c.Request.Context(), actor, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, purchase)
}

// List handles GET /api/v1/purchases
// @Summary List purchases
// @Tags purchases
// @Produce json
// @Param status query string false "pending, completed or cancelled"
// @Param type query string false "purchase or offer"
// @Param supplier_id query string false "Supplier ID"
// @Param offset query int false "Offset" default(0)
// @Param limit query int false "Limit (max 100)" default(20)
// @Success 200 {object} APIResponse{data=[]domain.Purchase,meta=PagMeta}
// @Security BearerAuth
// @Router /purchases [get]
func (h *PurchaseHandler) List(c *gin.Context) {
	filter, ok := purchaseFilter(c)
	if !ok {
		return
	}
	offset, limit := pagination(c)

	purchases, total, err := h.purchaseService.List(c.Request.Context(), filter, offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, purchases, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// Export handles GET /api/v1/purchases/export
// @Summary Export purchases as CSV
// @Description Semicolon separated, UTF-8 with BOM; accepts the same filters as the list
// @Tags purchases
// @Produce text/csv
// @Param status query string false "pending, completed or cancelled"
// @Param type query string false "purchase or offer"
// @Param supplier_id query string false "Supplier ID"
// @Success 200 {file} file
// @Security BearerAuth
// @Router /purchases/export [get]
func (h *PurchaseHandler) Export(c *gin.Context) {
	filter, ok := purchaseFilter(c)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := h.purchaseService.Export(c.Request.Context(), &buf, filter); err != nil {
		HandleError(c, err)
		return
	}

	filename := csvexport.BuildFilename(time.Now())
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}

// GetByID handles GET /api/v1/purchases/:id
// @Summary Get purchase
// @Tags purchases
// @Produce json
// @Param id path string true "Purchase ID"
// @Success 200 {object} APIResponse{data=domain.Purchase}
// @Failure 404 {object} APIResponse
// @Security BearerAuth
// @Router /purchases/{id} [get]
func (h *PurchaseHandler) GetByID(c *gin.Context) {
	purchaseID, ok := parseID(c, "id", "purchase")
	if !ok {
		return
	}

	purchase, err := h.purchaseService.GetByID(c.Request.Context(), purchaseID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, purchase)
}

// Update handles PUT /api/v1/purchases/:id
// @Summary Replace purchase
// @Tags purchases
// @Accept json
// @Produce json
// @Param id path string true "Purchase ID"
// @Param request body service.PurchaseInput true "Purchase"
// @Success 200 {object} APIResponse{data=domain.Purchase}
// @Failure 409 {object} APIResponse "Purchase is no longer pending"
// @Security BearerAuth
// @Router /purchases/{id} [put]
func (h *PurchaseHandler) Update(c *gin.Context) {
	actor, purchaseID, ok := h.target(c)
	if !ok {
		return
	}
	var input service.PurchaseInput
	if !bindJSON(c, &input) {
		return
	}

	purchase, err := h.purchaseService.Update(c.Request.Context(), actor, purchaseID, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, purchase)
}

// AddItem handles POST /api/v1/purchases/:id/items
// @Summary Add a line by EAN
// @Description Looks up the product; an existing line for the same product has its quantity increased
// @Tags purchases
// @Accept json
// @Produce json
// @Param id path string true "Purchase ID"
// @Param request body service.AddItemInput true "EAN and quantity"
// @Success 200 {object} APIResponse{data=domain.Purchase}
// @Failure 404 {object} APIResponse "Unknown EAN"
// @Failure 409 {object} APIResponse "Purchase is no longer pending"
// @Security BearerAuth
// @Router /purchases/{id}/items [post]
func (h *PurchaseHandler) AddItem(c *gin.Context) {
	actor, purchaseID, ok := h.target(c)
	if !ok {
		return
	}
	var input service.AddItemInput
	if !bindJSON(c, &input) {
		return
	}

	purchase, err := h.purchaseService.AddItem(c.Request.Context(), actor, purchaseID, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, purchase)
}

// UpdateItem handles PATCH /api/v1/purchases/:id/items/:itemId
// @Summary Edit a line
// @Tags purchases
// @Accept json
// @Produce json
// @Param id path string true "Purchase ID"
// @Param itemId path string true "Line item ID"
// @Param request body service.UpdateItemInput true "Fields to change"
// @Success 200 {object} APIResponse{data=domain.Purchase}
// @Failure 400 {object} APIResponse "Quantity below 1 or VAT rate out of range"
// @Failure 404 {object} APIResponse
// @Security BearerAuth
// @Router /purchases/{id}/items/{itemId} [patch]
func (h *PurchaseHandler) UpdateItem(c *gin.Context) {
	actor, purchaseID, ok := h.target(c)
	if !ok {
		return
	}
	itemID, ok := parseID(c, "itemId", "line item")
	if !ok {
		return
	}
	var input service.UpdateItemInput
	if !bindJSON(c, &input) {
		return
	}

	purchase, err := h.purchaseService.UpdateItem(c.Request.Context(), actor, purchaseID, itemID, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, purchase)
}

// RemoveItem handles DELETE /api/v1/purchases/:id/items/:itemId
// @Summary Remove a line
// @Tags purchases
// @Produce json
// @Param id path string true "Purchase ID"
// @Param itemId path string true "Line item ID"
// @Success 200 {object} APIResponse{data=domain.Purchase}
// @Failure 404 {object} APIResponse
// @Security BearerAuth
// @Router /purchases/{id}/items/{itemId} [delete]
func (h *PurchaseHandler) RemoveItem(c *gin.Context) {
	actor, purchaseID, ok := h.target(c)
	if !ok {
		return
	}
	itemID, ok := parseID(c, "itemId", "line item")
	if !ok {
		return
	}

	purchase, err := h.purchaseService.RemoveItem(c.Request.Context(), actor, purchaseID, itemID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, purchase)
}

// UpdateStatus handles PUT /api/v1/purchases/:id/status
// @Summary Complete or cancel a purchase
// @Tags purchases
// @Accept json
// @Produce json
// @Param id path string true "Purchase ID"
// @Param request body StatusInput true "Target status"
// @Success 200 {object} APIResponse{data=domain.Purchase}
// @Failure 403 {object} APIResponse
// @Failure 409 {object} APIResponse
// @Security BearerAuth
// @Router /purchases/{id}/status [put]
func (h *PurchaseHandler) UpdateStatus(c *gin.Context) {
	actor, purchaseID, ok := h.target(c)
	if !ok {
		return
	}
	var input StatusInput
	if !bindJSON(c, &input) {
		return
	}

	purchase, err := h.purchaseService.UpdateStatus(c.Request.Context(), actor, purchaseID, input.Status)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, purchase)
}

// Convert handles POST /api/v1/purchases/:id/convert
// @Summary Convert an offer into a purchase
// @Tags purchases
// @Produce json
// @Param id path string true "Purchase ID"
// @Success 200 {object} APIResponse{data=domain.Purchase}
// @Failure 409 {object} APIResponse
// @Security BearerAuth
// @Router /purchases/{id}/convert [post]
func (h *PurchaseHandler) Convert(c *gin.Context) {
	actor, purchaseID, ok := h.target(c)
	if !ok {
		return
	}

	purchase, err := h.purchaseService.Convert(c.Request.Context(), actor, purchaseID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, purchase)
}

// Send handles POST /api/v1/purchases/:id/send
// @Summary Mail the purchase order to the supplier
// @Tags purchases
// @Produce json
// @Param id path string true "Purchase ID"
// @Success 200 {object} APIResponse{data=domain.Purchase}
// @Failure 422 {object} APIResponse "Supplier has no email"
// @Failure 502 {object} APIResponse "Mail delivery failed"
// @Security BearerAuth
// @Router /purchases/{id}/send [post]
func (h *PurchaseHandler) Send(c *gin.Context) {
	actor, purchaseID, ok := h.target(c)
	if !ok {
		return
	}

	purchase, err := h.purchaseService.Send(c.Request.Context(), actor, purchaseID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, purchase)
}

// Delete handles DELETE /api/v1/purchases/:id
// @Summary Delete purchase
// @Tags purchases
// @Produce json
// @Param id path string true "Purchase ID"
// @Success 200 {object} APIResponse
// @Security BearerAuth
// @Router /purchases/{id} [delete]
func (h *PurchaseHandler) Delete(c *gin.Context) {
	purchaseID, ok := parseID(c, "id", "purchase")
	if !ok {
		return
	}

	if err := h.purchaseService.Delete(c.Request.Context(), purchaseID); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"message": "purchase deleted"})
}

func (h *PurchaseHandler) target(c *gin.Context) (domain.Actor, uuid.UUID, bool) {
	actor, ok := actorFrom(c)
	if !ok {
		return domain.Actor{}, uuid.Nil, false
	}
	purchaseID, ok := parseID(c, "id", "purchase")
	if !ok {
		return domain.Actor{}, uuid.Nil, false
	}
	return actor, purchaseID, true
}

func purchaseFilter(c *gin.Context) (domain.PurchaseFilter, bool) {
	filter := domain.PurchaseFilter{
		Status: domain.PurchaseStatus(c.Query("status")),
		Type:   domain.PurchaseType(c.Query("type")),
	}
	if filter.Status != "" && !domain.ValidPurchaseStatuses[filter.Status] {
		RespondError(c, http.StatusBadRequest, "INVALID_STATUS", "invalid status; allowed: pending, completed, cancelled")
		return filter, false
	}
	if filter.Type != "" && !domain.ValidPurchaseTypes[filter.Type] {
		HandleError(c, domain.ErrInvalidPurchaseType)
		return filter, false
	}
	var ok bool
	filter.SupplierID, ok = queryID(c, "supplier_id")
	return filter, ok
}
