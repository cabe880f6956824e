package handler

import (
	"github.com/gin-gonic/gin"

	"backoffice/internal/service"
)

// CategoryHandler handles category endpoints.
type CategoryHandler struct {
	categoryService service.CategoryService
}

// NewCategoryHandler creates a new CategoryHandler.
func NewCategoryHandler(categoryService service.CategoryService) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

// Create handles POST /api/v1/categories
// @Summary Create category
// @Tags categories
// @Accept json
// @Produce json
// @Param request body service.CategoryInput true "Category"
// @Success 201 {object} APIResponse{data=domain.Category}
// @Failure 409 {object} APIResponse
// @Security BearerAuth
// @Router /categories [post]
func (h *CategoryHandler) Create(c *gin.Context) {
	var input service.CategoryInput
	if !bindJSON(c, &input) {
		return
	}

	category, err := h.categoryService.Create(c.Request.Context(), input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, category)
}

// List handles GET /api/v1/categories
// @Summary List categories
// @Tags categories
// @Produce json
// @Param offset query int false "Offset" default(0)
// @Param limit query int false "Limit (max 100)" default(20)
// @Success 200 {object} APIResponse{data=[]domain.Category,meta=PagMeta}
// @Security BearerAuth
// @Router /categories [get]
func (h *CategoryHandler) List(c *gin.Context) {
	offset, limit := pagination(c)

	categories, total, err := h.categoryService.List(c.Request.Context(), offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, categories, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// Tree handles GET /api/v1/categories/tree
// @Summary Category tree
// @Description All categories nested under their parents, ordered by sort order then name
// @Tags categories
// @Produce json
// @Success 200 {object} APIResponse{data=[]domain.Category}
// @Security BearerAuth
// @Router /categories/tree [get]
func (h *CategoryHandler) Tree(c *gin.Context) {
	tree, err := h.categoryService.Tree(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, tree)
}

// GetByID handles GET /api/v1/categories/:id
// @Summary Get category
// @Tags categories
// @Produce json
// @Param id path string true "Category ID"
// @Success 200 {object} APIResponse{data=domain.Category}
// @Failure 404 {object} APIResponse
// @Security BearerAuth
// @Router /categories/{id} [get]
func (h *CategoryHandler) GetByID(c *gin.Context) {
	categoryID, ok := parseID(c, "id", "category")
	if !ok {
		return
	}

	category, err := h.categoryService.GetByID(c.Request.Context(), categoryID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, category)
}

// Update handles PUT /api/v1/categories/:id
// @Summary Update category
// @Tags categories
// @Accept json
// @Produce json
// @Param id path string true "Category ID"
// @Param request body service.CategoryInput true "Category"
// @Success 200 {object} APIResponse{data=domain.Category}
// @Failure 400 {object} APIResponse "Parent would create a cycle"
// @Failure 403 {object} APIResponse "Toggling is_active needs the toggle_active capability"
// @Security BearerAuth
// @Router /categories/{id} [put]
func (h *CategoryHandler) Update(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}
	categoryID, ok := parseID(c, "id", "category")
	if !ok {
		return
	}
	var input service.CategoryInput
	if !bindJSON(c, &input) {
		return
	}

	category, err := h.categoryService.Update(c.Request.Context(), actor, categoryID, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, category)
}

// Delete handles DELETE /api/v1/categories/:id
// @Summary Delete category
// @Tags categories
// @Produce json
// @Param id path string true "Category ID"
// @Success 200 {object} APIResponse
// @Failure 409 {object} APIResponse
// @Security BearerAuth
// @Router /categories/{id} [delete]
func (h *CategoryHandler) Delete(c *gin.Context) {
	categoryID, ok := parseID(c, "id", "category")
	if !ok {
		return
	}

	if err := h.categoryService.Delete(c.Request.Context(), categoryID); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"message": "category deleted"})
}
