package handler

import (
	"github.com/gin-gonic/gin"

	"backoffice/internal/service"
)

// StatsHandler handles the dashboard statistics endpoint.
type StatsHandler struct {
	statsService service.StatsService
}

// NewStatsHandler creates a new StatsHandler.
func NewStatsHandler(statsService service.StatsService) *StatsHandler {
	return &StatsHandler{statsService: statsService}
}

// GetStats handles GET /api/v1/stats
// @Summary Dashboard statistics
// @Description Counts of suppliers, products, purchases by status, offers, and completed spend
// @Tags stats
// @Produce json
// @Success 200 {object} APIResponse{data=domain.Stats}
// @Security BearerAuth
// @Router /stats [get]
func (h *StatsHandler) GetStats(c *gin.Context) {
	stats, err := h.statsService.GetStats(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, stats)
}
