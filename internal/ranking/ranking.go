// Package ranking orders cards by a metric and builds leaderboard views on top.
package ranking

import (
	"sort"

	"github.com/stitts-dev/efootball-stats/internal/models"
	"github.com/stitts-dev/efootball-stats/internal/rating"
)

// Entry is one row of a ranked list. Rank is 1-based.
type Entry struct {
	Rank   int               `json:"rank"`
	Player models.PlayerCard `json:"player"`
	Value  float64           `json:"value"`
}

// sortDesc orders a copy of players by metric, descending. Equal keys keep input order.
func sortDesc(players []models.PlayerCard, metric Metric) []models.PlayerCard {
	sorted := make([]models.PlayerCard, len(players))
	copy(sorted, players)
	sort.SliceStable(sorted, func(i, j int) bool {
		return metric.Value(sorted[i]) > metric.Value(sorted[j])
	})
	return sorted
}

// Rank filters, sorts descending by metric and truncates to limit (limit <= 0
// keeps everything). Ties are not broken: equal values keep input order.
func Rank(players []models.PlayerCard, metric Metric, limit int, filters ...Filter) []Entry {
	sorted := sortDesc(Apply(players, filters...), metric)
	if limit > 0 && len(sorted) > limit {
		sorted = sorted[:limit]
	}
	entries := make([]Entry, len(sorted))
	for i, p := range sorted {
		entries[i] = Entry{Rank: i + 1, Player: p, Value: metric.Value(p)}
	}
	return entries
}

// HeadToHead returns the top two cards for metric (fewer if the pool is smaller).
func HeadToHead(players []models.PlayerCard, metric Metric) []models.PlayerCard {
	sorted := sortDesc(players, metric)
	if len(sorted) > 2 {
		sorted = sorted[:2]
	}
	return sorted
}

// HeadToHeadWinner is the first card holding the maximum value, or nil when
// fewer than two cards are compared.
func HeadToHeadWinner(players []models.PlayerCard, metric Metric) *models.PlayerCard {
	if len(players) < 2 {
		return nil
	}
	best := 0
	for i := 1; i < len(players); i++ {
		if metric.Value(players[i]) > metric.Value(players[best]) {
			best = i
		}
	}
	winner := players[best]
	return &winner
}

// Combination is a group of cards scored by summed player rating.
type Combination struct {
	Players []models.PlayerCard `json:"players"`
	Score   int                 `json:"score"`
}

const maxCombinations = 5

// BestCombinations enumerates every unordered pair and returns the five with
// the highest summed PlayerRating. Only teamSize 2 is supported; other sizes
// return nil. The enumeration is O(n²) and meant for pools of at most a few
// hundred cards.
func BestCombinations(players []models.PlayerCard, teamSize int) []Combination {
	if teamSize != 2 {
		return nil
	}
	ratings := make([]int, len(players))
	for i, p := range players {
		ratings[i] = rating.PlayerRating(p)
	}

	var combos []Combination
	for i := 0; i < len(players); i++ {
		for j := i + 1; j < len(players); j++ {
			combos = append(combos, Combination{
				Players: []models.PlayerCard{players[i], players[j]},
				Score:   ratings[i] + ratings[j],
			})
		}
	}
	sort.SliceStable(combos, func(i, j int) bool {
		return combos[i].Score > combos[j].Score
	})
	if len(combos) > maxCombinations {
		combos = combos[:maxCombinations]
	}
	return combos
}
