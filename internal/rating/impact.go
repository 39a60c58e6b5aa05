package rating

import (
	"math"
	"strings"

	"github.com/stitts-dev/efootball-stats/internal/models"
)

type impactWeights struct {
	goal, assist float64
}

var eisWeights = map[string]impactWeights{
	"CF":  {0.70, 0.30},
	"SS":  {0.60, 0.40},
	"AMF": {0.45, 0.55},
	"CMF": {0.35, 0.65},
	"LWF": {0.55, 0.45},
	"RWF": {0.55, 0.45},
	"LMF": {0.40, 0.60},
	"RMF": {0.40, 0.60},
	"LB":  {0.25, 0.75},
}

// Reliability discounts small samples; it reaches 1 at 500 appearances.
func Reliability(apps int) float64 {
	if apps <= 0 {
		return 0
	}
	return math.Min(1, math.Sqrt(float64(apps)/500))
}

// EIS returns the eFootball Impact Score. ok is false for positions without
// an impact weighting (goalkeepers, centre backs and so on).
func EIS(p models.PlayerCard) (score float64, ok bool) {
	w, ok := eisWeights[strings.ToUpper(strings.TrimSpace(p.Position))]
	if !ok {
		return 0, false
	}
	return (p.GPm*w.goal + p.APm*w.assist) * Reliability(p.Apps) * 100, true
}
