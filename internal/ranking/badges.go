package ranking

import (
	"sort"

	"github.com/stitts-dev/efootball-stats/internal/models"
)

// BadgeDef is one leaderboard category. Priority breaks rank ties when picking
// a card's best badge (lower wins).
type BadgeDef struct {
	Key      string `json:"key"`
	Label    string `json:"label"`
	StatKey  Metric `json:"stat_key"`
	Priority int    `json:"priority"`
}

var BadgeDefs = []BadgeDef{
	{Key: "goals", Label: "Goals", StatKey: MetricGoals, Priority: 1},
	{Key: "assists", Label: "Assists", StatKey: MetricAssists, Priority: 2},
	{Key: "contribution", Label: "G+A", StatKey: MetricContribution, Priority: 3},
	{Key: "efficiency", Label: "G+A/Match", StatKey: MetricGAPm, Priority: 4},
	{Key: "goals_per_match", Label: "Goals/Match", StatKey: MetricGPm, Priority: 5},
	{Key: "apps", Label: "Appearances", StatKey: MetricApps, Priority: 6},
	{Key: "assists_per_match", Label: "Assists/Match", StatKey: MetricAPm, Priority: 7},
}

const DefaultBadgeTopN = 10

type Badge struct {
	Key      string `json:"key"`
	Label    string `json:"label"`
	Rank     int    `json:"rank"`
	StatKey  Metric `json:"stat_key"`
	priority int
}

// BuildBadges ranks every card in each badge category and records a badge for
// each top-N placement. Each card's badges are ordered by rank.
func BuildBadges(players []models.PlayerCard, topN int) map[uint][]Badge {
	if topN <= 0 {
		topN = DefaultBadgeTopN
	}
	badges := make(map[uint][]Badge)
	for _, def := range BadgeDefs {
		for _, e := range Rank(players, def.StatKey, topN) {
			badges[e.Player.ID] = append(badges[e.Player.ID], Badge{
				Key:      def.Key,
				Label:    def.Label,
				Rank:     e.Rank,
				StatKey:  def.StatKey,
				priority: def.Priority,
			})
		}
	}
	for id := range badges {
		list := badges[id]
		sort.SliceStable(list, func(i, j int) bool { return list[i].Rank < list[j].Rank })
	}
	return badges
}

// SelectBestBadge returns the lowest-rank badge, breaking ties by category
// priority. It returns nil for an empty list.
func SelectBestBadge(badges []Badge) *Badge {
	if len(badges) == 0 {
		return nil
	}
	best := badges[0]
	for _, b := range badges[1:] {
		if b.Rank < best.Rank || (b.Rank == best.Rank && priorityOf(b) < priorityOf(best)) {
			best = b
		}
	}
	return &best
}

func priorityOf(b Badge) int {
	if b.priority > 0 {
		return b.priority
	}
	for _, def := range BadgeDefs {
		if def.Key == b.Key {
			return def.Priority
		}
	}
	return len(BadgeDefs) + 1
}
