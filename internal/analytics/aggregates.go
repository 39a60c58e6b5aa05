// Package analytics produces dataset-level summaries over a card snapshot.
package analytics

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/stitts-dev/efootball-stats/internal/models"
	"github.com/stitts-dev/efootball-stats/internal/rating"
)

const freeAgent = "Free Agent"

type Overall struct {
	TotalPlayers int     `json:"total_players"`
	TotalGoals   int     `json:"total_goals"`
	TotalAssists int     `json:"total_assists"`
	TotalApps    int     `json:"total_apps"`
	AvgAge       float64 `json:"avg_age"`
	AvgGPm       float64 `json:"avg_gPm"`
	AvgAPm       float64 `json:"avg_aPm"`
	StdDevGAPm   float64 `json:"stddev_gAPm"`
}

type PositionStats struct {
	Position    string            `json:"position"`
	PlayerCount int               `json:"player_count"`
	AvgGoals    float64           `json:"avg_goals"`
	AvgAssists  float64           `json:"avg_assists"`
	AvgGPm      float64           `json:"avg_gPm"`
	AvgAPm      float64           `json:"avg_aPm"`
	TopPlayer   models.PlayerCard `json:"top_player"`
}

type CardTypeStats struct {
	CardType   string  `json:"card_type"`
	Count      int     `json:"count"`
	AvgGoals   float64 `json:"avg_goals"`
	AvgAssists float64 `json:"avg_assists"`
}

type TeamStats struct {
	Team                string  `json:"team"`
	Goals               int     `json:"goals"`
	Assists             int     `json:"assists"`
	Players             int     `json:"players"`
	AvgGoalsPerPlayer   float64 `json:"avg_goals_per_player"`
	AvgAssistsPerPlayer float64 `json:"avg_assists_per_player"`
}

type AgeGroupStats struct {
	Group        string `json:"group"`
	Count        int    `json:"count"`
	TotalGoals   int    `json:"total_goals"`
	TotalAssists int    `json:"total_assists"`
	AvgRating    int    `json:"avg_rating"`
}

// Summary is everything the analytics endpoint returns.
type Summary struct {
	Overall   Overall         `json:"overall"`
	Positions []PositionStats `json:"positions"`
	CardTypes []CardTypeStats `json:"card_types"`
	Teams     []TeamStats     `json:"teams"`
	AgeGroups []AgeGroupStats `json:"age_groups"`
}

func Summarize(players []models.PlayerCard) Summary {
	return Summary{
		Overall:   ComputeOverall(players),
		Positions: ByPosition(players),
		CardTypes: ByCardType(players),
		Teams:     ByTeam(players),
		AgeGroups: ByAgeGroup(players),
	}
}

func column(players []models.PlayerCard, f func(models.PlayerCard) float64) []float64 {
	col := make([]float64, len(players))
	for i, p := range players {
		col[i] = f(p)
	}
	return col
}

// mean is stat.Mean guarded for empty input.
func mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	return stat.Mean(xs, nil)
}

func ComputeOverall(players []models.PlayerCard) Overall {
	o := Overall{TotalPlayers: len(players)}
	for _, p := range players {
		o.TotalGoals += p.Goal
		o.TotalAssists += p.Assists
		o.TotalApps += p.Apps
	}
	o.AvgAge = mean(column(players, func(p models.PlayerCard) float64 { return float64(p.Age) }))
	o.AvgGPm = mean(column(players, func(p models.PlayerCard) float64 { return p.GPm }))
	o.AvgAPm = mean(column(players, func(p models.PlayerCard) float64 { return p.APm }))
	if len(players) > 1 {
		o.StdDevGAPm = stat.StdDev(column(players, func(p models.PlayerCard) float64 { return p.GAPm }), nil)
	}
	return o
}

// ByPosition reports per-position averages, positions sorted alphabetically.
// The top player is the first card with the highest gAPm.
func ByPosition(players []models.PlayerCard) []PositionStats {
	groups := map[string][]models.PlayerCard{}
	for _, p := range players {
		groups[p.Position] = append(groups[p.Position], p)
	}
	out := make([]PositionStats, 0, len(groups))
	for pos, ps := range groups {
		top := ps[0]
		for _, p := range ps[1:] {
			if p.GAPm > top.GAPm {
				top = p
			}
		}
		out = append(out, PositionStats{
			Position:    pos,
			PlayerCount: len(ps),
			AvgGoals:    mean(column(ps, func(p models.PlayerCard) float64 { return float64(p.Goal) })),
			AvgAssists:  mean(column(ps, func(p models.PlayerCard) float64 { return float64(p.Assists) })),
			AvgGPm:      mean(column(ps, func(p models.PlayerCard) float64 { return p.GPm })),
			AvgAPm:      mean(column(ps, func(p models.PlayerCard) float64 { return p.APm })),
			TopPlayer:   top,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Position < out[j].Position })
	return out
}

func ByCardType(players []models.PlayerCard) []CardTypeStats {
	groups := map[string][]models.PlayerCard{}
	for _, p := range players {
		groups[p.CardType] = append(groups[p.CardType], p)
	}
	out := make([]CardTypeStats, 0, len(groups))
	for ct, ps := range groups {
		out = append(out, CardTypeStats{
			CardType:   ct,
			Count:      len(ps),
			AvgGoals:   mean(column(ps, func(p models.PlayerCard) float64 { return float64(p.Goal) })),
			AvgAssists: mean(column(ps, func(p models.PlayerCard) float64 { return float64(p.Assists) })),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CardType < out[j].CardType })
	return out
}

// ByTeam totals goals and assists per club, highest combined output first.
// The "NAN" placeholder team is reported as Free Agent.
func ByTeam(players []models.PlayerCard) []TeamStats {
	index := map[string]int{}
	var out []TeamStats
	for _, p := range players {
		team := p.Team
		if team == "NAN" {
			team = freeAgent
		}
		i, ok := index[team]
		if !ok {
			i = len(out)
			index[team] = i
			out = append(out, TeamStats{Team: team})
		}
		out[i].Goals += p.Goal
		out[i].Assists += p.Assists
		out[i].Players++
	}
	for i := range out {
		out[i].AvgGoalsPerPlayer = float64(out[i].Goals) / float64(out[i].Players)
		out[i].AvgAssistsPerPlayer = float64(out[i].Assists) / float64(out[i].Players)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Goals+out[i].Assists > out[j].Goals+out[j].Assists
	})
	return out
}

var ageGroups = []struct {
	name   string
	lo, hi int
}{
	{"Under 21", math.MinInt, 20},
	{"21-25", 21, 25},
	{"26-30", 26, 30},
	{"31+", 31, math.MaxInt},
}

// ByAgeGroup buckets cards into fixed age bands with their average PlayerRating.
// Empty bands report a zero average.
func ByAgeGroup(players []models.PlayerCard) []AgeGroupStats {
	out := make([]AgeGroupStats, len(ageGroups))
	ratings := make([][]float64, len(ageGroups))
	for i, g := range ageGroups {
		out[i].Group = g.name
	}
	for _, p := range players {
		for i, g := range ageGroups {
			if p.Age >= g.lo && p.Age <= g.hi {
				out[i].Count++
				out[i].TotalGoals += p.Goal
				out[i].TotalAssists += p.Assists
				ratings[i] = append(ratings[i], float64(rating.PlayerRating(p)))
				break
			}
		}
	}
	for i := range out {
		out[i].AvgRating = int(math.Round(mean(ratings[i])))
	}
	return out
}
