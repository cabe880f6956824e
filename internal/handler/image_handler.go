package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"backoffice/internal/service"
)

// ImageHandler handles image upload and management endpoints.
type ImageHandler struct {
	imageService service.ImageService
}

// NewImageHandler creates a new ImageHandler.
func NewImageHandler(imageService service.ImageService) *ImageHandler {
	return &ImageHandler{imageService: imageService}
}

// Upload handles POST /api/v1/images/upload
// @Summary Upload an image
// @Description Upload a product, brand or category image (JPG, PNG, WEBP)
// @Tags images
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Image to upload"
// @Success 201 {object} APIResponse{data=domain.Image}
// @Failure 400 {object} APIResponse "Missing file or unsupported type"
// @Failure 413 {object} APIResponse "File too large"
// @Failure 500 {object} APIResponse "Upload failed"
// @Security BearerAuth
// @Router /images/upload [post]
func (h *ImageHandler) Upload(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "MISSING_FILE", "file field is required")
		return
	}
	defer func() { _ = file.Close() }()

	image, err := h.imageService.Upload(c.Request.Context(), service.ImageUploadInput{
		UploadedBy: actor.UserID,
		File:       file,
		Header:     header,
	})
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, image)
}

// List handles GET /api/v1/images
// @Summary List images
// @Tags images
// @Produce json
// @Param offset query int false "Offset" default(0)
// @Param limit query int false "Limit (max 100)" default(20)
// @Success 200 {object} APIResponse{data=[]domain.Image,meta=PagMeta}
// @Security BearerAuth
// @Router /images [get]
func (h *ImageHandler) List(c *gin.Context) {
	offset, limit := pagination(c)

	images, total, err := h.imageService.List(c.Request.Context(), offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, images, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// GetByID handles GET /api/v1/images/:id
// @Summary Get image with download URL
// @Tags images
// @Produce json
// @Param id path string true "Image ID"
// @Success 200 {object} APIResponse
// @Failure 404 {object} APIResponse
// @Security BearerAuth
// @Router /images/{id} [get]
func (h *ImageHandler) GetByID(c *gin.Context) {
	imageID, ok := parseID(c, "id", "image")
	if !ok {
		return
	}

	image, err := h.imageService.GetByID(c.Request.Context(), imageID)
	if err != nil {
		HandleError(c, err)
		return
	}

	url, err := h.imageService.GetDownloadURL(c.Request.Context(), imageID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{
		"image":        image,
		"download_url": url,
	})
}

// Delete handles DELETE /api/v1/images/:id
// @Summary Delete image
// @Tags images
// @Produce json
// @Param id path string true "Image ID"
// @Success 200 {object} APIResponse
// @Security BearerAuth
// @Router /images/{id} [delete]
func (h *ImageHandler) Delete(c *gin.Context) {
	imageID, ok := parseID(c, "id", "image")
	if !ok {
		return
	}

	if err := h.imageService.Delete(c.Request.Context(), imageID); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"message": "image deleted"})
}
