package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/stitts-dev/efootball-stats/internal/analytics"
	"github.com/stitts-dev/efootball-stats/internal/archetype"
	"github.com/stitts-dev/efootball-stats/internal/models"
	"github.com/stitts-dev/efootball-stats/internal/ranking"
	"github.com/stitts-dev/efootball-stats/internal/rating"
	"github.com/stitts-dev/efootball-stats/internal/services"
	"github.com/stitts-dev/efootball-stats/internal/similarity"
	"github.com/stitts-dev/efootball-stats/pkg/utils"
)

type PlayerHandler struct {
	store        *services.PlayerStore
	leaderboards *services.LeaderboardService
}

func NewPlayerHandler(store *services.PlayerStore, leaderboards *services.LeaderboardService) *PlayerHandler {
	return &PlayerHandler{
		store:        store,
		leaderboards: leaderboards,
	}
}

// PlayerDetail is a card with everything the stats page shows next to it.
type PlayerDetail struct {
	Player    models.PlayerCard   `json:"player"`
	Ratings   rating.Report       `json:"ratings"`
	Badges    []ranking.Badge     `json:"badges"`
	BestBadge *ranking.Badge      `json:"best_badge,omitempty"`
	Archetype archetype.Archetype `json:"archetype"`
}

func (h *PlayerHandler) detail(c *gin.Context, card models.PlayerCard) (PlayerDetail, error) {
	badges, err := h.leaderboards.Badges(c.Request.Context(), 0)
	if err != nil {
		return PlayerDetail{}, err
	}
	assigned, err := h.leaderboards.Archetypes(c.Request.Context())
	if err != nil {
		return PlayerDetail{}, err
	}
	own := badges[card.ID]
	if own == nil {
		own = []ranking.Badge{}
	}
	return PlayerDetail{
		Player:    card,
		Ratings:   rating.Build(card),
		Badges:    own,
		BestBadge: ranking.SelectBestBadge(own),
		Archetype: assigned.Of(card.ID),
	}, nil
}

// ListPlayers returns cards ordered by id, optionally filtered.
func (h *PlayerHandler) ListPlayers(c *gin.Context) {
	filters, err := filtersFromQuery(c, func() (archetype.Assignments, error) {
		return h.leaderboards.Archetypes(c.Request.Context())
	})
	if err != nil {
		utils.SendValidationError(c, "Invalid filter", err.Error())
		return
	}

	players, err := h.store.Snapshot(c.Request.Context())
	if err != nil {
		c.Error(err)
		utils.SendInternalError(c, "Failed to load players")
		return
	}

	out := ranking.Apply(players, filters...)
	utils.SendSuccessWithMeta(c, out, &utils.Meta{Total: int64(len(out))})
}

// GetPlayer returns a card with its rating report, badges and archetype.
func (h *PlayerHandler) GetPlayer(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	card, err := h.store.Get(c.Request.Context(), id)
	if err != nil {
		utils.SendServiceError(c, "Player not found", err)
		return
	}

	detail, err := h.detail(c, card)
	if err != nil {
		c.Error(err)
		utils.SendInternalError(c, "Failed to build player detail")
		return
	}
	utils.SendSuccess(c, detail)
}

// UpdateStats stores a stat override for the card.
func (h *PlayerHandler) UpdateStats(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var patch services.StatPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		utils.SendValidationError(c, "Invalid request body", err.Error())
		return
	}

	card, err := h.store.UpdatePlayer(c.Request.Context(), id, patch)
	if err != nil {
		utils.SendServiceError(c, "Failed to update player stats", err)
		return
	}
	utils.SendSuccess(c, card)
}

// ResetStats drops the override and returns the base card.
func (h *PlayerHandler) ResetStats(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	card, err := h.store.ResetOverride(c.Request.Context(), id)
	if err != nil {
		utils.SendServiceError(c, "Failed to reset player stats", err)
		return
	}
	utils.SendSuccess(c, card)
}

// CreatePlayer adds one manual card.
func (h *PlayerHandler) CreatePlayer(c *gin.Context) {
	var row services.ImportRow
	if err := c.ShouldBindJSON(&row); err != nil {
		utils.SendValidationError(c, "Invalid request body", err.Error())
		return
	}

	card, err := h.store.AddPlayer(c.Request.Context(), row)
	if err != nil {
		utils.SendServiceError(c, "Failed to add player", err)
		return
	}
	utils.SendCreated(c, card)
}

type importRequest struct {
	Players []services.ImportRow `json:"players" binding:"required,min=1,dive"`
}

// ImportPlayers appends a batch of cards.
func (h *PlayerHandler) ImportPlayers(c *gin.Context) {
	var req importRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, "Invalid request body", err.Error())
		return
	}

	cards, err := h.store.Import(c.Request.Context(), req.Players)
	if err != nil {
		utils.SendServiceError(c, "Failed to import players", err)
		return
	}
	utils.SendCreated(c, cards)
}

// GetSimilar returns the closest cards by weighted distance.
func (h *PlayerHandler) GetSimilar(c *gin.Context) {
	h.similar(c, similarity.DefaultLimit, func(target models.PlayerCard, pool []models.PlayerCard, limit int, exclude []uint) []similarity.Match {
		return similarity.FindSimilar(target, pool, limit, exclude...)
	})
}

// GetSimilarScored returns the most similar cards by agreement score.
func (h *PlayerHandler) GetSimilarScored(c *gin.Context) {
	h.similar(c, similarity.DefaultScoreLimit, func(target models.PlayerCard, pool []models.PlayerCard, limit int, exclude []uint) []similarity.Match {
		if len(exclude) > 0 {
			skip := make(map[uint]bool, len(exclude))
			for _, id := range exclude {
				skip[id] = true
			}
			kept := pool[:0:0]
			for _, p := range pool {
				if !skip[p.ID] {
					kept = append(kept, p)
				}
			}
			pool = kept
		}
		return similarity.FindSimilarByScore(target, pool, limit)
	})
}

func (h *PlayerHandler) similar(c *gin.Context, defaultLimit int, find func(models.PlayerCard, []models.PlayerCard, int, []uint) []similarity.Match) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	limit, err := intQuery(c, "limit", defaultLimit)
	if err != nil {
		utils.SendValidationError(c, "Invalid limit", err.Error())
		return
	}
	exclude, err := idListQuery(c, "exclude")
	if err != nil {
		utils.SendValidationError(c, "Invalid exclude list", err.Error())
		return
	}

	players, err := h.store.Snapshot(c.Request.Context())
	if err != nil {
		c.Error(err)
		utils.SendInternalError(c, "Failed to load players")
		return
	}

	var target *models.PlayerCard
	for i := range players {
		if players[i].ID == id {
			target = &players[i]
			break
		}
	}
	if target == nil {
		utils.SendNotFound(c, "Player not found")
		return
	}

	utils.SendSuccessWithMeta(c, find(*target, players, limit, exclude), &utils.Meta{Limit: limit})
}

// CareerResponse aggregates every card of one player.
type CareerResponse struct {
	Summary  analytics.CareerSummary `json:"summary"`
	BestCard models.PlayerCard       `json:"best_card"`
	Cards    []models.PlayerCard     `json:"cards"`
}

// GetCareer sums all cards that share a name.
func (h *PlayerHandler) GetCareer(c *gin.Context) {
	cards, err := h.store.FindByName(c.Request.Context(), c.Param("name"))
	if err != nil {
		utils.SendServiceError(c, "Player not found", err)
		return
	}
	best, _ := analytics.BestCard(cards)
	utils.SendSuccess(c, CareerResponse{
		Summary:  analytics.Career(cards),
		BestCard: best,
		Cards:    cards,
	})
}
