package rating

import (
	"math"

	"github.com/stitts-dev/efootball-stats/internal/models"
)

// EfficiencyRating is the comparison-view breakdown. Every field is capped at 100.
type EfficiencyRating struct {
	Attacking   float64 `json:"attacking"`
	Playmaking  float64 `json:"playmaking"`
	Consistency float64 `json:"consistency"`
	Efficiency  float64 `json:"efficiency"`
	Overall     float64 `json:"overall"`
}

func Efficiency(p models.PlayerCard) EfficiencyRating {
	r := EfficiencyRating{
		Attacking:  math.Min(p.GPm*150, 100),
		Playmaking: math.Min(p.APm*200, 100),
		Efficiency: math.Min(p.GAPm*100/1.5, 100),
	}
	if p.Apps > 0 {
		r.Consistency = math.Min(float64(p.Goal+p.Assists)/float64(p.Apps)*10, 100)
	}
	r.Overall = math.Min(
		r.Attacking*0.35+r.Playmaking*0.30+r.Consistency*0.15+r.Efficiency*0.20,
		100,
	)
	return r
}

// PerformanceCategories is the radar-style breakdown shown next to a comparison.
type PerformanceCategories struct {
	Attacking   float64 `json:"attacking"`
	Playmaking  float64 `json:"playmaking"`
	Efficiency  float64 `json:"efficiency"`
	Experience  float64 `json:"experience"`
	Consistency float64 `json:"consistency"`
}

func Categories(p models.PlayerCard) PerformanceCategories {
	c := PerformanceCategories{
		Playmaking:  p.APm * 200,
		Efficiency:  p.GAPm * 100,
		Experience:  math.Min(math.Log(float64(p.Apps)+1)*20, 100),
		Consistency: math.Min(p.GAPm*100, 100),
	}
	if p.Apps > 0 {
		conversion := float64(p.Goal) / float64(p.Apps)
		c.Attacking = p.GPm*150*0.7 + conversion*100*0.3
	}
	return c
}

type Trend string

const (
	TrendUp     Trend = "up"
	TrendDown   Trend = "down"
	TrendStable Trend = "stable"
)

// StatTrend buckets a card by its combined per-match output.
func StatTrend(p models.PlayerCard) Trend {
	switch {
	case p.GAPm > 0.8:
		return TrendUp
	case p.GAPm < 0.3:
		return TrendDown
	default:
		return TrendStable
	}
}
