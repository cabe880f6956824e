package handler

import (
	"github.com/gin-gonic/gin"

	"backoffice/internal/service"
)

// BrandHandler handles brand endpoints.
type BrandHandler struct {
	brandService service.BrandService
}

// NewBrandHandler creates a new BrandHandler.
func NewBrandHandler(brandService service.BrandService) *BrandHandler {
	return &BrandHandler{brandService: brandService}
}

// Create handles POST /api/v1/brands
// @Summary Create brand
// @Tags brands
// @Accept json
// @Produce json
// @Param request body service.BrandInput true "Brand"
// @Success 201 {object} APIResponse{data=domain.Brand}
// @Failure 409 {object} APIResponse
// @Security BearerAuth
// @Router /brands [post]
func (h *BrandHandler) Create(c *gin.Context) {
	var input service.BrandInput
	if !bindJSON(c, &input) {
		return
	}

	brand, err := h.brandService.Create(c.Request.Context(), input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, brand)
}

// List handles GET /api/v1/brands
// @Summary List brands
// @Tags brands
// @Produce json
// @Param offset query int false "Offset" default(0)
// @Param limit query int false "Limit (max 100)" default(20)
// @Success 200 {object} APIResponse{data=[]domain.Brand,meta=PagMeta}
// @Security BearerAuth
// @Router /brands [get]
func (h *BrandHandler) List(c *gin.Context) {
	offset, limit := pagination(c)

	brands, total, err := h.brandService.List(c.Request.Context(), offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, brands, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// GetByID handles GET /api/v1/brands/:id
// @Summary Get brand
// @Tags brands
// @Produce json
// @Param id path string true "Brand ID"
// @Success 200 {object} APIResponse{data=domain.Brand}
// @Failure 404 {object} APIResponse
// @Security BearerAuth
// @Router /brands/{id} [get]
func (h *BrandHandler) GetByID(c *gin.Context) {
	brandID, ok := parseID(c, "id", "brand")
	if !ok {
		return
	}

	brand, err := h.brandService.GetByID(c.Request.Context(), brandID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, brand)
}

// Update handles PUT /api/v1/brands/:id
// @Summary Update brand
// @Tags brands
// @Accept json
// @Produce json
// @Param id path string true "Brand ID"
// @Param request body service.BrandInput true "Brand"
// @Success 200 {object} APIResponse{data=domain.Brand}
// @Security BearerAuth
// @Router /brands/{id} [put]
func (h *BrandHandler) Update(c *gin.Context) {
	brandID, ok := parseID(c, "id", "brand")
	if !ok {
		return
	}
	var input service.BrandInput
	if !bindJSON(c, &input) {
		return
	}

	brand, err := h.brandService.Update(c.Request.Context(), brandID, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, brand)
}

// Delete handles DELETE /api/v1/brands/:id
// @Summary Delete brand
// @Tags brands
// @Produce json
// @Param id path string true "Brand ID"
// @Success 200 {object} APIResponse
// @Failure 409 {object} APIResponse "Brand still referenced by products"
// @Security BearerAuth
// @Router /brands/{id} [delete]
func (h *BrandHandler) Delete(c *gin.Context) {
	brandID, ok := parseID(c, "id", "brand")
	if !ok {
		return
	}

	if err := h.brandService.Delete(c.Request.Context(), brandID); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"message": "brand deleted"})
}
