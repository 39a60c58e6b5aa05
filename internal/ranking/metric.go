package ranking

import (
	"fmt"
	"strings"

	"github.com/stitts-dev/efootball-stats/internal/models"
	"github.com/stitts-dev/efootball-stats/internal/rating"
)

// Metric names a numeric statistic a card can be ranked by.
type Metric string

const (
	MetricGoals          Metric = "goal"
	MetricAssists        Metric = "assists"
	MetricContribution   Metric = "gPlusA"
	MetricGAPm           Metric = "gAPm"
	MetricGPm            Metric = "gPm"
	MetricAPm            Metric = "aPm"
	MetricApps           Metric = "apps"
	MetricAge            Metric = "age"
	MetricRating         Metric = "rating"
	MetricConsistency    Metric = "consistency"
	MetricPositionRating Metric = "positionRating"
	MetricEfficiency     Metric = "efficiency"
	MetricEIS            Metric = "eis"
)

var metricAliases = map[string]Metric{
	"goal": MetricGoals, "goals": MetricGoals,
	"assist": MetricAssists, "assists": MetricAssists,
	"gplusa": MetricContribution, "contribution": MetricContribution, "g+a": MetricContribution,
	"gapm": MetricGAPm, "efficiency_per_match": MetricGAPm,
	"gpm": MetricGPm, "goals_per_match": MetricGPm,
	"apm": MetricAPm, "assists_per_match": MetricAPm,
	"apps": MetricApps, "appearances": MetricApps,
	"age":            MetricAge,
	"rating":         MetricRating,
	"consistency":    MetricConsistency,
	"positionrating": MetricPositionRating, "position_rating": MetricPositionRating,
	"efficiency": MetricEfficiency,
	"eis":        MetricEIS,
}

// ParseMetric accepts the canonical key or a common alias, case-insensitively.
func ParseMetric(s string) (Metric, error) {
	if m, ok := metricAliases[strings.ToLower(strings.TrimSpace(s))]; ok {
		return m, nil
	}
	return "", fmt.Errorf("unknown metric %q", s)
}

// Value reads metric from p. Unknown metrics read as 0.
func (m Metric) Value(p models.PlayerCard) float64 {
	switch m {
	case MetricGoals:
		return float64(p.Goal)
	case MetricAssists:
		return float64(p.Assists)
	case MetricContribution:
		return float64(p.GPlusA)
	case MetricGAPm:
		return p.GAPm
	case MetricGPm:
		return p.GPm
	case MetricAPm:
		return p.APm
	case MetricApps:
		return float64(p.Apps)
	case MetricAge:
		return float64(p.Age)
	case MetricRating:
		return float64(rating.PlayerRating(p))
	case MetricConsistency:
		return float64(rating.ConsistencyRating(p))
	case MetricPositionRating:
		return rating.PositionRating(p)
	case MetricEfficiency:
		return rating.Efficiency(p).Overall
	case MetricEIS:
		v, _ := rating.EIS(p)
		return v
	}
	return 0
}

// IsRate reports whether the metric is fractional and should print with decimals.
func (m Metric) IsRate() bool {
	switch m {
	case MetricGAPm, MetricGPm, MetricAPm, MetricPositionRating, MetricEfficiency, MetricEIS:
		return true
	}
	return false
}

// Format renders v the way leaderboards show it.
func (m Metric) Format(v float64) string {
	if m.IsRate() {
		return fmt.Sprintf("%.2f", v)
	}
	return fmt.Sprintf("%d", int64(v))
}
