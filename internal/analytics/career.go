package analytics

import (
	"sort"
	"strings"

	"github.com/stitts-dev/efootball-stats/internal/metrics"
	"github.com/stitts-dev/efootball-stats/internal/models"
	"github.com/stitts-dev/efootball-stats/internal/rating"
)

// CareerSummary aggregates every card of one player. Rates are recomputed
// from the summed counters, not averaged across cards.
type CareerSummary struct {
	Name         string  `json:"name"`
	TotalApps    int     `json:"total_apps"`
	TotalGoals   int     `json:"total_goals"`
	TotalAssists int     `json:"total_assists"`
	GPm          float64 `json:"gPm"`
	APm          float64 `json:"aPm"`
	GAPm         float64 `json:"gAPm"`
	CardsCount   int     `json:"cards_count"`
	Reliability  float64 `json:"reliability"`
}

// Career sums cards; the name comes from the first card. An empty slice
// yields a zero summary.
func Career(cards []models.PlayerCard) CareerSummary {
	if len(cards) == 0 {
		return CareerSummary{}
	}
	s := CareerSummary{Name: cards[0].Name, CardsCount: len(cards)}
	for _, c := range cards {
		s.TotalApps += c.Apps
		s.TotalGoals += c.Goal
		s.TotalAssists += c.Assists
	}
	d := metrics.Compute(s.TotalApps, s.TotalGoals, s.TotalAssists)
	s.GPm, s.APm, s.GAPm = d.GPm, d.APm, d.GAPm
	s.Reliability = rating.Reliability(s.TotalApps)
	return s
}

// BestCard picks the card with the highest gAPm, preferring more appearances
// on a tie. ok is false for an empty slice.
func BestCard(cards []models.PlayerCard) (best models.PlayerCard, ok bool) {
	if len(cards) == 0 {
		return models.PlayerCard{}, false
	}
	best = cards[0]
	for _, c := range cards[1:] {
		if c.GAPm > best.GAPm || (c.GAPm == best.GAPm && c.Apps > best.Apps) {
			best = c
		}
	}
	return best, true
}

// GroupByName buckets cards by exact player name, keeping first-seen order.
func GroupByName(players []models.PlayerCard) (names []string, groups map[string][]models.PlayerCard) {
	groups = make(map[string][]models.PlayerCard)
	for _, p := range players {
		if _, ok := groups[p.Name]; !ok {
			names = append(names, p.Name)
		}
		groups[p.Name] = append(groups[p.Name], p)
	}
	return names, groups
}

// CardsNamed returns all cards whose name matches case-insensitively.
func CardsNamed(players []models.PlayerCard, name string) []models.PlayerCard {
	var out []models.PlayerCard
	for _, p := range players {
		if strings.EqualFold(p.Name, name) {
			out = append(out, p)
		}
	}
	return out
}

// Careers builds one summary per player name, best gAPm first.
func Careers(players []models.PlayerCard) []CareerSummary {
	names, groups := GroupByName(players)
	out := make([]CareerSummary, 0, len(names))
	for _, n := range names {
		out = append(out, Career(groups[n]))
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].GAPm > out[j].GAPm })
	return out
}
