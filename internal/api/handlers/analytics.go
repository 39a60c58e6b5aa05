package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/stitts-dev/efootball-stats/internal/services"
	"github.com/stitts-dev/efootball-stats/pkg/utils"
)

type AnalyticsHandler struct {
	leaderboards *services.LeaderboardService
}

func NewAnalyticsHandler(leaderboards *services.LeaderboardService) *AnalyticsHandler {
	return &AnalyticsHandler{leaderboards: leaderboards}
}

// GetAnalytics returns dataset-wide aggregates.
func (h *AnalyticsHandler) GetAnalytics(c *gin.Context) {
	summary, err := h.leaderboards.Analytics(c.Request.Context())
	if err != nil {
		c.Error(err)
		utils.SendInternalError(c, "Failed to compute analytics")
		return
	}
	utils.SendSuccess(c, summary)
}
