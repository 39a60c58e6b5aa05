package rating

import "github.com/stitts-dev/efootball-stats/internal/models"

// Report bundles every rating for a single card.
type Report struct {
	PlayerRating      int                   `json:"player_rating"`
	ConsistencyRating int                   `json:"consistency_rating"`
	PositionRating    float64               `json:"position_rating"`
	ConsistencyScore  float64               `json:"consistency_score"`
	Assessment        Assessment            `json:"assessment"`
	Confidence        string                `json:"confidence"`
	Efficiency        EfficiencyRating      `json:"efficiency"`
	Categories        PerformanceCategories `json:"categories"`
	EIS               *float64              `json:"eis,omitempty"`
	Trend             Trend                 `json:"trend"`
}

func Build(p models.PlayerCard) Report {
	r := Report{
		PlayerRating:      PlayerRating(p),
		ConsistencyRating: ConsistencyRating(p),
		PositionRating:    PositionRating(p),
		ConsistencyScore:  ConsistencyScore(p),
		Assessment:        OverUnder(p),
		Confidence:        Confidence(p.Apps),
		Efficiency:        Efficiency(p),
		Categories:        Categories(p),
		Trend:             StatTrend(p),
	}
	if eis, ok := EIS(p); ok {
		r.EIS = &eis
	}
	return r
}
