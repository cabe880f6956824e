package handler

import (
	"github.com/gin-gonic/gin"

	"backoffice/internal/service"
)

// CampaignHandler handles discount campaign endpoints.
type CampaignHandler struct {
	campaignService service.CampaignService
}

// NewCampaignHandler creates a new CampaignHandler.
func NewCampaignHandler(campaignService service.CampaignService) *CampaignHandler {
	return &CampaignHandler{campaignService: campaignService}
}

// Create handles POST /api/v1/campaigns
// @Summary Create campaign
// @Tags campaigns
// @Accept json
// @Produce json
// @Param request body service.CampaignInput true "Campaign"
// @Success 201 {object} APIResponse{data=domain.Campaign}
// @Failure 400 {object} APIResponse
// @Security BearerAuth
// @Router /campaigns [post]
func (h *CampaignHandler) Create(c *gin.Context) {
	var input service.CampaignInput
	if !bindJSON(c, &input) {
		return
	}

	campaign, err := h.campaignService.Create(c.Request.Context(), input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, campaign)
}

// List handles GET /api/v1/campaigns
// @Summary List campaigns
// @Tags campaigns
// @Produce json
// @Param offset query int false "Offset" default(0)
// @Param limit query int false "Limit (max 100)" default(20)
// @Success 200 {object} APIResponse{data=[]domain.Campaign,meta=PagMeta}
// @Security BearerAuth
// @Router /campaigns [get]
func (h *CampaignHandler) List(c *gin.Context) {
	offset, limit := pagination(c)

	campaigns, total, err := h.campaignService.List(c.Request.Context(), offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, campaigns, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// GetByID handles GET /api/v1/campaigns/:id
// @Summary Get campaign
// @Tags campaigns
// @Produce json
// @Param id path string true "Campaign ID"
// @Success 200 {object} APIResponse{data=domain.Campaign}
// @Failure 404 {object} APIResponse
// @Security BearerAuth
// @Router /campaigns/{id} [get]
func (h *CampaignHandler) GetByID(c *gin.Context) {
	campaignID, ok := parseID(c, "id", "campaign")
	if !ok {
		return
	}

	campaign, err := h.campaignService.GetByID(c.Request.Context(), campaignID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, campaign)
}

// Update handles PUT /api/v1/campaigns/:id
// @Summary Update campaign
// @Tags campaigns
// @Accept json
// @Produce json
// @Param id path string true "Campaign ID"
// @Param request body service.CampaignInput true "Campaign"
// @Success 200 {object} APIResponse{data=domain.Campaign}
// @Security BearerAuth
// @Router /campaigns/{id} [put]
func (h *CampaignHandler) Update(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}
	campaignID, ok := parseID(c, "id", "campaign")
	if !ok {
		return
	}
	var input service.CampaignInput
	if !bindJSON(c, &input) {
		return
	}

	campaign, err := h.campaignService.Update(c.Request.Context(), actor, campaignID, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, campaign)
}

// Delete handles DELETE /api/v1/campaigns/:id
// @Summary Delete campaign
// @Tags campaigns
// @Produce json
// @Param id path string true "Campaign ID"
// @Success 200 {object} APIResponse
// @Security BearerAuth
// @Router /campaigns/{id} [delete]
func (h *CampaignHandler) Delete(c *gin.Context) {
	campaignID, ok := parseID(c, "id", "campaign")
	if !ok {
		return
	}

	if err := h.campaignService.Delete(c.Request.Context(), campaignID); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"message": "campaign deleted"})
}
