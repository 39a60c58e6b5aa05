// Package similarity finds cards with a comparable statistical profile.
//
// Two measures coexist: Distance (weighted L1, lower is closer) backs the
// comparison view and chat, Score (normalized agreement, higher is closer)
// backs the stats view. They weigh different inputs and are not interchangeable.
package similarity

import (
	"math"
	"sort"
	"strings"

	"github.com/stitts-dev/efootball-stats/internal/models"
)

const (
	DefaultLimit      = 3
	DefaultScoreLimit = 6

	weightGPm  = 0.3
	weightAPm  = 0.3
	weightGAPm = 0.2
	weightAge  = 0.1
	weightApps = 0.1
)

// Match pairs a candidate with its distance (or score) to the target.
type Match struct {
	Player models.PlayerCard `json:"player"`
	Value  float64           `json:"value"`
}

// Distance is the weighted L1 distance over {gPm, aPm, gAPm, age, apps/1000}.
func Distance(a, b models.PlayerCard) float64 {
	return math.Abs(a.GPm-b.GPm)*weightGPm +
		math.Abs(a.APm-b.APm)*weightAPm +
		math.Abs(a.GAPm-b.GAPm)*weightGAPm +
		math.Abs(float64(a.Age-b.Age))*weightAge +
		math.Abs(float64(a.Apps-b.Apps)/1000)*weightApps
}

// FindSimilar returns up to limit cards closest to target, excluding the
// target and any ids in exclude. Equal distances keep pool order.
func FindSimilar(target models.PlayerCard, pool []models.PlayerCard, limit int, exclude ...uint) []Match {
	if limit <= 0 {
		limit = DefaultLimit
	}
	skip := make(map[uint]struct{}, len(exclude)+1)
	skip[target.ID] = struct{}{}
	for _, id := range exclude {
		skip[id] = struct{}{}
	}

	matches := make([]Match, 0, len(pool))
	for _, p := range pool {
		if _, ok := skip[p.ID]; ok {
			continue
		}
		matches = append(matches, Match{Player: p, Value: Distance(target, p)})
	}
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Value < matches[j].Value
	})
	if len(matches) > limit {
		matches = matches[:limit]
	}
	return matches
}

// agreement is 1 minus the relative difference, floored at 0. The denominator
// never drops below 0.1 so tiny rates do not explode.
func agreement(a, b float64) float64 {
	denom := math.Max(0.1, math.Max(a, b))
	return 1 - math.Min(math.Abs(a-b)/denom, 1)
}

// Score rates similarity in [0,1] from per-match rates, with a flat bonus for
// sharing a position.
func Score(a, b models.PlayerCard) float64 {
	s := agreement(a.GPm, b.GPm)*0.4 +
		agreement(a.APm, b.APm)*0.4 +
		agreement(a.GAPm, b.GAPm)*0.2
	if strings.EqualFold(a.Position, b.Position) {
		s += 0.05
	}
	return math.Min(s, 1)
}

// FindSimilarByScore returns up to limit cards with the highest Score against
// target, excluding the target itself.
func FindSimilarByScore(target models.PlayerCard, pool []models.PlayerCard, limit int) []Match {
	if limit <= 0 {
		limit = DefaultScoreLimit
	}
	matches := make([]Match, 0, len(pool))
	for _, p := range pool {
		if p.ID == target.ID {
			continue
		}
		matches = append(matches, Match{Player: p, Value: Score(target, p)})
	}
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Value > matches[j].Value
	})
	if len(matches) > limit {
		matches = matches[:limit]
	}
	return matches
}
