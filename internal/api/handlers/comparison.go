package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/stitts-dev/efootball-stats/internal/models"
	"github.com/stitts-dev/efootball-stats/internal/ranking"
	"github.com/stitts-dev/efootball-stats/internal/rating"
	"github.com/stitts-dev/efootball-stats/internal/services"
	"github.com/stitts-dev/efootball-stats/pkg/utils"
)

// comparedMetrics are the columns of the comparison table.
var comparedMetrics = []ranking.Metric{
	ranking.MetricGoals,
	ranking.MetricAssists,
	ranking.MetricGPm,
	ranking.MetricAPm,
	ranking.MetricGAPm,
	ranking.MetricApps,
	ranking.MetricRating,
	ranking.MetricPositionRating,
}

type ComparisonHandler struct {
	store *services.PlayerStore
}

func NewComparisonHandler(store *services.PlayerStore) *ComparisonHandler {
	return &ComparisonHandler{store: store}
}

type createComparisonRequest struct {
	Name      string `json:"name"`
	PlayerIDs []uint `json:"player_ids" binding:"required"`
}

// ComparedPlayer is one column of a saved comparison.
type ComparedPlayer struct {
	Player     models.PlayerCard            `json:"player"`
	Efficiency rating.EfficiencyRating      `json:"efficiency"`
	Categories rating.PerformanceCategories `json:"categories"`
}

type ComparisonResponse struct {
	Comparison *models.ComparisonSet                 `json:"comparison"`
	Players    []ComparedPlayer                      `json:"players"`
	Winners    map[ranking.Metric]*models.PlayerCard `json:"winners,omitempty"`
}

func compared(cards []models.PlayerCard) []ComparedPlayer {
	out := make([]ComparedPlayer, 0, len(cards))
	for _, p := range cards {
		out = append(out, ComparedPlayer{
			Player:     p,
			Efficiency: rating.Efficiency(p),
			Categories: rating.Categories(p),
		})
	}
	return out
}

// CreateComparison saves a set of two to four cards.
func (h *ComparisonHandler) CreateComparison(c *gin.Context) {
	var req createComparisonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, "Invalid request body", err.Error())
		return
	}

	set, cards, err := h.store.SaveComparison(c.Request.Context(), req.Name, req.PlayerIDs)
	if err != nil {
		utils.SendServiceError(c, "Failed to save comparison", err)
		return
	}
	utils.SendCreated(c, ComparisonResponse{Comparison: set, Players: compared(cards)})
}

// GetComparison loads a saved set with the current stats and the leader of
// each compared metric.
func (h *ComparisonHandler) GetComparison(c *gin.Context) {
	set, cards, err := h.store.GetComparison(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.SendServiceError(c, "Comparison not found", err)
		return
	}

	winners := make(map[ranking.Metric]*models.PlayerCard, len(comparedMetrics))
	for _, m := range comparedMetrics {
		winners[m] = ranking.HeadToHeadWinner(cards, m)
	}
	utils.SendSuccess(c, ComparisonResponse{
		Comparison: set,
		Players:    compared(cards),
		Winners:    winners,
	})
}
