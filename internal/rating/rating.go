// Package rating scores player cards. The generic 0-100 player rating and the
// position-weighted rating live on different scales and are not comparable.
package rating

import (
	"math"
	"strings"

	"github.com/stitts-dev/efootball-stats/internal/models"
)

// PlayerRating averages four capped sub-scores and rounds to an integer in [0,100].
func PlayerRating(p models.PlayerCard) int {
	goalScore := math.Min(p.GPm*100, 100)
	assistScore := math.Min(p.APm*100, 100)
	experienceScore := math.Min(float64(p.Apps)/1500*100, 100)
	efficiencyScore := math.Min(p.GAPm*50, 100)

	avg := (goalScore + assistScore + experienceScore + efficiencyScore) / 4
	return int(clamp(math.Round(avg), 0, 100))
}

// ConsistencyRating rewards cards that both score and assist.
func ConsistencyRating(p models.PlayerCard) int {
	hi := math.Max(p.GPm, p.APm)
	balance := 0.0
	if hi > 0 {
		balance = math.Min(p.GPm, p.APm) / hi
	}
	efficiency := (p.GPm + p.APm) / 2
	return int(math.Round((balance*50 + efficiency*50) * 100))
}

// Weights is the {goal, assist, efficiency, experience} vector for a position.
type Weights struct {
	Goal       float64 `json:"goal"`
	Assist     float64 `json:"assist"`
	Efficiency float64 `json:"efficiency"`
	Experience float64 `json:"experience"`
}

var positionWeights = map[string]Weights{
	"CF":  {Goal: 0.45, Assist: 0.15, Efficiency: 0.30, Experience: 0.10},
	"SS":  {Goal: 0.35, Assist: 0.25, Efficiency: 0.30, Experience: 0.10},
	"AMF": {Goal: 0.20, Assist: 0.40, Efficiency: 0.30, Experience: 0.10},
	"CMF": {Goal: 0.15, Assist: 0.35, Efficiency: 0.30, Experience: 0.20},
	"DMF": {Goal: 0.10, Assist: 0.20, Efficiency: 0.30, Experience: 0.40},
	"LWF": {Goal: 0.30, Assist: 0.25, Efficiency: 0.30, Experience: 0.15},
	"RWF": {Goal: 0.30, Assist: 0.25, Efficiency: 0.30, Experience: 0.15},
}

// WeightsFor returns the weight vector for position, CF for anything unknown.
func WeightsFor(position string) Weights {
	if w, ok := positionWeights[strings.ToUpper(strings.TrimSpace(position))]; ok {
		return w
	}
	return positionWeights["CF"]
}

// PositionRating is the attacker-biased rating used by chat answers.
func PositionRating(p models.PlayerCard) float64 {
	w := WeightsFor(p.Position)
	return p.GPm*100*w.Goal +
		p.APm*100*w.Assist +
		p.GAPm*100*w.Efficiency +
		math.Min(float64(p.Apps)/15, 100)*w.Experience
}

// ConsistencyScore is gAPm scaled by sample size, saturating at 200 apps.
func ConsistencyScore(p models.PlayerCard) float64 {
	return p.GAPm * 100 * math.Min(float64(p.Apps)/200, 1)
}

type Assessment string

const (
	Overrated   Assessment = "Overrated"
	Underrated  Assessment = "Underrated"
	FairlyRated Assessment = "Fairly rated"
)

// OverUnder classifies a card from its position rating and consistency score.
func OverUnder(p models.PlayerCard) Assessment {
	r := PositionRating(p)
	c := ConsistencyScore(p)
	switch {
	case r > 120 && c < 60:
		return Overrated
	case r < 90 && c > 80:
		return Underrated
	default:
		return FairlyRated
	}
}

// Confidence labels how much the sample size can be trusted.
func Confidence(apps int) string {
	switch {
	case apps > 700:
		return "Very high"
	case apps > 300:
		return "High"
	case apps > 100:
		return "Medium"
	default:
		return "Low"
	}
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
