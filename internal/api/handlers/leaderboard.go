package handlers

import (
	"bytes"
	"fmt"
	"net/http"
	"sort"

	"github.com/gin-gonic/gin"

	"github.com/stitts-dev/efootball-stats/internal/archetype"
	"github.com/stitts-dev/efootball-stats/internal/models"
	"github.com/stitts-dev/efootball-stats/internal/ranking"
	"github.com/stitts-dev/efootball-stats/internal/services"
	"github.com/stitts-dev/efootball-stats/pkg/utils"
)

type LeaderboardHandler struct {
	store        *services.PlayerStore
	leaderboards *services.LeaderboardService
}

func NewLeaderboardHandler(store *services.PlayerStore, leaderboards *services.LeaderboardService) *LeaderboardHandler {
	return &LeaderboardHandler{
		store:        store,
		leaderboards: leaderboards,
	}
}

func (h *LeaderboardHandler) assigned(c *gin.Context) func() (archetype.Assignments, error) {
	return func() (archetype.Assignments, error) {
		return h.leaderboards.Archetypes(c.Request.Context())
	}
}

// GetLeaderboard ranks cards by one metric. format=csv streams the table.
func (h *LeaderboardHandler) GetLeaderboard(c *gin.Context) {
	metric, err := ranking.ParseMetric(c.Param("metric"))
	if err != nil {
		utils.SendValidationError(c, "Unknown metric", err.Error())
		return
	}
	limit, err := intQuery(c, "limit", h.leaderboards.TopN())
	if err != nil {
		utils.SendValidationError(c, "Invalid limit", err.Error())
		return
	}
	filters, err := filtersFromQuery(c, h.assigned(c))
	if err != nil {
		utils.SendValidationError(c, "Invalid filter", err.Error())
		return
	}

	filterKey := c.Request.URL.Query()
	filterKey.Del("limit")
	filterKey.Del("format")

	entries, err := h.leaderboards.Leaderboard(c.Request.Context(), metric, limit, filterKey.Encode(), filters...)
	if err != nil {
		c.Error(err)
		utils.SendInternalError(c, "Failed to load players")
		return
	}

	if c.Query("format") == "csv" {
		var buf bytes.Buffer
		if err := ranking.ExportCSV(&buf, entries, metric); err != nil {
			c.Error(err)
			utils.SendInternalError(c, "Failed to export leaderboard")
			return
		}
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=leaderboard-%s.csv", metric))
		c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
		return
	}

	utils.SendSuccessWithMeta(c, entries, &utils.Meta{
		Total:  int64(len(entries)),
		Limit:  limit,
		Metric: string(metric),
	})
}

// HeadToHeadResponse lists the selected cards best-first with the winner.
type HeadToHeadResponse struct {
	Metric  ranking.Metric      `json:"metric"`
	Players []models.PlayerCard `json:"players"`
	Winner  *models.PlayerCard  `json:"winner"`
}

// GetHeadToHead orders the cards in ?ids= by the path metric. Without ids it
// takes the leading two of the filtered pool.
func (h *LeaderboardHandler) GetHeadToHead(c *gin.Context) {
	metric, err := ranking.ParseMetric(c.Param("metric"))
	if err != nil {
		utils.SendValidationError(c, "Unknown metric", err.Error())
		return
	}
	ids, err := idListQuery(c, "ids")
	if err != nil || len(ids) == 1 {
		utils.SendValidationError(c, "Invalid ids", "at least two player ids are required")
		return
	}
	filters, err := filtersFromQuery(c, h.assigned(c))
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

	pool := ranking.Apply(players, filters...)
	if len(ids) > 0 {
		want := make(map[uint]bool, len(ids))
		for _, id := range ids {
			want[id] = true
		}
		pool = make([]models.PlayerCard, 0, len(ids))
		for _, p := range players {
			if want[p.ID] {
				pool = append(pool, p)
			}
		}
		if len(pool) != len(want) {
			utils.SendNotFound(c, "One or more players not found")
			return
		}
	}

	utils.SendSuccess(c, HeadToHeadResponse{
		Metric:  metric,
		Players: ranking.HeadToHead(pool, metric),
		Winner:  ranking.HeadToHeadWinner(pool, metric),
	})
}

// BadgeHolder is a card's badge list and the one shown on its tile.
type BadgeHolder struct {
	PlayerID  uint            `json:"player_id"`
	Name      string          `json:"name"`
	Badges    []ranking.Badge `json:"badges"`
	BestBadge *ranking.Badge  `json:"best_badge"`
}

// GetBadges lists every card holding at least one badge, by id.
func (h *LeaderboardHandler) GetBadges(c *gin.Context) {
	topN, err := intQuery(c, "top", h.leaderboards.TopN())
	if err != nil {
		utils.SendValidationError(c, "Invalid top", err.Error())
		return
	}

	badges, err := h.leaderboards.Badges(c.Request.Context(), topN)
	if err != nil {
		c.Error(err)
		utils.SendInternalError(c, "Failed to build badges")
		return
	}
	players, err := h.store.Snapshot(c.Request.Context())
	if err != nil {
		c.Error(err)
		utils.SendInternalError(c, "Failed to load players")
		return
	}

	holders := make([]BadgeHolder, 0, len(badges))
	for _, p := range players {
		own := badges[p.ID]
		if len(own) == 0 {
			continue
		}
		holders = append(holders, BadgeHolder{
			PlayerID:  p.ID,
			Name:      p.Name,
			Badges:    own,
			BestBadge: ranking.SelectBestBadge(own),
		})
	}
	utils.SendSuccessWithMeta(c, holders, &utils.Meta{Total: int64(len(holders)), Limit: topN})
}

// GetCombinations returns the strongest pairs by summed player rating.
func (h *LeaderboardHandler) GetCombinations(c *gin.Context) {
	size, err := intQuery(c, "team_size", 2)
	if err != nil || size != 2 {
		utils.SendValidationError(c, "Invalid team_size", "only team_size=2 is supported")
		return
	}
	filters, err := filtersFromQuery(c, h.assigned(c))
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
	utils.SendSuccess(c, ranking.BestCombinations(ranking.Apply(players, filters...), size))
}

// ArchetypeHolder pairs an archetype with the card that holds it.
type ArchetypeHolder struct {
	Archetype archetype.Archetype `json:"archetype"`
	Player    *models.PlayerCard  `json:"player"`
}

// GetArchetypes lists each archetype in slot order with its holder, plus
// elite performers.
func (h *LeaderboardHandler) GetArchetypes(c *gin.Context) {
	assigned, err := h.leaderboards.Archetypes(c.Request.Context())
	if err != nil {
		c.Error(err)
		utils.SendInternalError(c, "Failed to assign archetypes")
		return
	}
	players, err := h.store.Snapshot(c.Request.Context())
	if err != nil {
		c.Error(err)
		utils.SendInternalError(c, "Failed to load players")
		return
	}

	byID := make(map[uint]models.PlayerCard, len(players))
	for _, p := range players {
		byID[p.ID] = p
	}

	holders := make([]ArchetypeHolder, 0, len(assigned))
	for _, arch := range archetype.All {
		var ids []uint
		for id, a := range assigned {
			if a.Key == arch.Key {
				ids = append(ids, id)
			}
		}
		sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
		for _, id := range ids {
			p, ok := byID[id]
			if !ok {
				continue
			}
			holders = append(holders, ArchetypeHolder{Archetype: arch, Player: &p})
		}
	}
	utils.SendSuccess(c, holders)
}
