package handler

import (
	"github.com/gin-gonic/gin"

	"backoffice/internal/port"
	"backoffice/internal/service"
)

// ProductHandler handles product endpoints, including the EAN lookup used
// when adding lines to a purchase.
type ProductHandler struct {
	productService service.ProductService
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(productService service.ProductService) *ProductHandler {
	return &ProductHandler{productService: productService}
}

// Create handles POST /api/v1/products
// @Summary Create product
// @Tags products
// @Accept json
// @Produce json
// @Param request body service.ProductInput true "Product"
// @Success 201 {object} APIResponse{data=domain.Product}
// @Failure 400 {object} APIResponse
// @Failure 409 {object} APIResponse "EAN already in use"
// @Security BearerAuth
// @Router /products [post]
func (h *ProductHandler) Create(c *gin.Context) {
	var input service.ProductInput
	if !bindJSON(c, &input) {
		return
	}

	product, err := h.productService.Create(c.Request.Context(), input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, product)
}

// List handles GET /api/v1/products
// @Summary List products
// @Tags products
// @Produce json
// @Param search query string false "Matches title, EAN or article code"
// @Param supplier_id query string false "Supplier ID"
// @Param brand_id query string false "Brand ID"
// @Param category_id query string false "Category ID"
// @Param offset query int false "Offset" default(0)
// @Param limit query int false "Limit (max 100)" default(20)
// @Success 200 {object} APIResponse{data=[]domain.Product,meta=PagMeta}
// @Security BearerAuth
// @Router /products [get]
func (h *ProductHandler) List(c *gin.Context) {
	filter := port.ProductFilter{Search: c.Query("search")}
	var ok bool
	if filter.SupplierID, ok = queryID(c, "supplier_id"); !ok {
		return
	}
	if filter.BrandID, ok = queryID(c, "brand_id"); !ok {
		return
	}
	if filter.CategoryID, ok = queryID(c, "category_id"); !ok {
		return
	}
	offset, limit := pagination(c)

	products, total, err := h.productService.List(c.Request.Context(), filter, offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, products, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// Lookup handles GET /api/v1/products/lookup?ean=
// @Summary Look up a product by EAN
// @Description Returns the product with its cost price and VAT rate
// @Tags products
// @Produce json
// @Param ean query string true "EAN barcode"
// @Success 200 {object} APIResponse{data=domain.Product}
// @Failure 404 {object} APIResponse "No product matches the EAN"
// @Security BearerAuth
// @Router /products/lookup [get]
func (h *ProductHandler) Lookup(c *gin.Context) {
	product, err := h.productService.Lookup(c.Request.Context(), c.Query("ean"))
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, product)
}

// GetByID handles GET /api/v1/products/:id
// @Summary Get product
// @Tags products
// @Produce json
// @Param id path string true "Product ID"
// @Success 200 {object} APIResponse{data=domain.Product}
// @Failure 404 {object} APIResponse
// @Security BearerAuth
// @Router /products/{id} [get]
func (h *ProductHandler) GetByID(c *gin.Context) {
	productID, ok := parseID(c, "id", "product")
	if !ok {
		return
	}

	product, err := h.productService.GetByID(c.Request.Context(), productID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, product)
}

// Update handles PUT /api/v1/products/:id
// @Summary Update product
// @Tags products
// @Accept json
// @Produce json
// @Param id path string true "Product ID"
// @Param request body service.ProductInput true "Product"
// @Success 200 {object} APIResponse{data=domain.Product}
// @Security BearerAuth
// @Router /products/{id} [put]
func (h *ProductHandler) Update(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}
	productID, ok := parseID(c, "id", "product")
	if !ok {
		return
	}
	var input service.ProductInput
	if !bindJSON(c, &input) {
		return
	}

	product, err := h.productService.Update(c.Request.Context(), actor, productID, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, product)
}

// Delete handles DELETE /api/v1/products/:id
// @Summary Delete product
// @Tags products
// @Produce json
// @Param id path string true "Product ID"
// @Success 200 {object} APIResponse
// @Security BearerAuth
// @Router /products/{id} [delete]
func (h *ProductHandler) Delete(c *gin.Context) {
	productID, ok := parseID(c, "id", "product")
	if !ok {
		return
	}

	if err := h.productService.Delete(c.Request.Context(), productID); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"message": "product deleted"})
}
