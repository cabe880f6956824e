package handler

import (
	"github.com/gin-gonic/gin"

	"backoffice/internal/service"
)

// SupplierHandler handles supplier endpoints and the supplier's recommended
// product offer.
type SupplierHandler struct {
	supplierService service.SupplierService
}

// NewSupplierHandler creates a new SupplierHandler.
func NewSupplierHandler(supplierService service.SupplierService) *SupplierHandler {
	return &SupplierHandler{supplierService: supplierService}
}

// Create handles POST /api/v1/suppliers
// @Summary Create supplier
// @Description A missing BIC is derived from a Dutch or Belgian IBAN
// @Tags suppliers
// @Accept json
// @Produce json
// @Param request body service.SupplierInput true "Supplier"
// @Success 201 {object} APIResponse{data=domain.Supplier}
// @Failure 400 {object} APIResponse
// @Failure 409 {object} APIResponse
// @Security BearerAuth
// @Router /suppliers [post]
func (h *SupplierHandler) Create(c *gin.Context) {
	var input service.SupplierInput
	if !bindJSON(c, &input) {
		return
	}

	supplier, err := h.supplierService.Create(c.Request.Context(), input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, supplier)
}

// List handles GET /api/v1/suppliers
// @Summary List suppliers
// @Tags suppliers
// @Produce json
// @Param search query string false "Matches name or supplier code"
// @Param offset query int false "Offset" default(0)
// @Param limit query int false "Limit (max 100)" default(20)
// @Success 200 {object} APIResponse{data=[]domain.Supplier,meta=PagMeta}
// @Security BearerAuth
// @Router /suppliers [get]
func (h *SupplierHandler) List(c *gin.Context) {
	offset, limit := pagination(c)

	suppliers, total, err := h.supplierService.List(c.Request.Context(), c.Query("search"), offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, suppliers, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// GetByID handles GET /api/v1/suppliers/:id
// @Summary Get supplier
// @Tags suppliers
// @Produce json
// @Param id path string true "Supplier ID"
// @Success 200 {object} APIResponse{data=domain.Supplier}
// @Failure 404 {object} APIResponse
// @Security BearerAuth
// @Router /suppliers/{id} [get]
func (h *SupplierHandler) GetByID(c *gin.Context) {
	supplierID, ok := parseID(c, "id", "supplier")
	if !ok {
		return
	}

	supplier, err := h.supplierService.GetByID(c.Request.Context(), supplierID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, supplier)
}

// Update handles PUT /api/v1/suppliers/:id
// @Summary Update supplier
// @Tags suppliers
// @Accept json
// @Produce json
// @Param id path string true "Supplier ID"
// @Param request body service.SupplierInput true "Supplier"
// @Success 200 {object} APIResponse{data=domain.Supplier}
// @Security BearerAuth
// @Router /suppliers/{id} [put]
func (h *SupplierHandler) Update(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}
	supplierID, ok := parseID(c, "id", "supplier")
	if !ok {
		return
	}
	var input service.SupplierInput
	if !bindJSON(c, &input) {
		return
	}

	supplier, err := h.supplierService.Update(c.Request.Context(), actor, supplierID, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, supplier)
}

// Delete handles DELETE /api/v1/suppliers/:id
// @Summary Delete supplier
// @Tags suppliers
// @Produce json
// @Param id path string true "Supplier ID"
// @Success 200 {object} APIResponse
// @Failure 409 {object} APIResponse "Supplier still has purchases"
// @Security BearerAuth
// @Router /suppliers/{id} [delete]
func (h *SupplierHandler) Delete(c *gin.Context) {
	supplierID, ok := parseID(c, "id", "supplier")
	if !ok {
		return
	}

	if err := h.supplierService.Delete(c.Request.Context(), supplierID); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"message": "supplier deleted"})
}

// AddRecommendedProduct handles POST /api/v1/suppliers/:id/recommended-products
// @Summary Add a product to the recommended offer
// @Description Adding a product that is already recommended replaces its quantity
// @Tags suppliers
// @Accept json
// @Produce json
// @Param id path string true "Supplier ID"
// @Param request body service.RecommendedProductInput true "Product and quantity"
// @Success 200 {object} APIResponse{data=domain.Supplier}
// @Failure 404 {object} APIResponse
// @Security BearerAuth
// @Router /suppliers/{id}/recommended-products [post]
func (h *SupplierHandler) AddRecommendedProduct(c *gin.Context) {
	supplierID, ok := parseID(c, "id", "supplier")
	if !ok {
		return
	}
	var input service.RecommendedProductInput
	if !bindJSON(c, &input) {
		return
	}

	supplier, err := h.supplierService.AddRecommendedProduct(c.Request.Context(), supplierID, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, supplier)
}

// RemoveRecommendedProduct handles DELETE /api/v1/suppliers/:id/recommended-products/:productId
// @Summary Remove a product from the recommended offer
// @Tags suppliers
// @Produce json
// @Param id path string true "Supplier ID"
// @Param productId path string true "Product ID"
// @Success 200 {object} APIResponse{data=domain.Supplier}
// @Failure 404 {object} APIResponse
// @Security BearerAuth
// @Router /suppliers/{id}/recommended-products/{productId} [delete]
func (h *SupplierHandler) RemoveRecommendedProduct(c *gin.Context) {
	supplierID, ok := parseID(c, "id", "supplier")
	if !ok {
		return
	}
	productID, ok := parseID(c, "productId", "product")
	if !ok {
		return
	}

	supplier, err := h.supplierService.RemoveRecommendedProduct(c.Request.Context(), supplierID, productID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, supplier)
}

// Offer handles GET /api/v1/suppliers/:id/offer
// @Summary Build an offer from the recommended products
// @Description Unsaved; totals follow the supplier's country
// @Tags suppliers
// @Produce json
// @Param id path string true "Supplier ID"
// @Success 200 {object} APIResponse{data=service.Quote}
// @Failure 404 {object} APIResponse
// @Security BearerAuth
// @Router /suppliers/{id}/offer [get]
func (h *SupplierHandler) Offer(c *gin.Context) {
	supplierID, ok := parseID(c, "id", "supplier")
	if !ok {
		return
	}

	quote, err := h.supplierService.BuildOffer(c.Request.Context(), supplierID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, quote)
}

// Purchases handles GET /api/v1/suppliers/:id/purchases
// @Summary Supplier purchase history
// @Tags suppliers
// @Produce json
// @Param id path string true "Supplier ID"
// @Param offset query int false "Offset" default(0)
// @Param limit query int false "Limit (max 100)" default(20)
// @Success 200 {object} APIResponse{data=[]domain.Purchase,meta=PagMeta}
// @Security BearerAuth
// @Router /suppliers/{id}/purchases [get]
func (h *SupplierHandler) Purchases(c *gin.Context) {
	supplierID, ok := parseID(c, "id", "supplier")
	if !ok {
		return
	}
	offset, limit := pagination(c)

	purchases, total, err := h.supplierService.Purchases(c.Request.Context(), supplierID, offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, purchases, PagMeta{Total: total, Offset: offset, Limit: limit})
}
