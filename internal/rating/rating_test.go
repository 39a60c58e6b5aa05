package rating

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stitts-dev/efootball-stats/internal/models"
)

func card(position string, apps, goal, assists int) models.PlayerCard {
	return models.NewPlayerCard(1, "Test Player", "Test FC", position, "epic", 27, apps, goal, assists)
}

func TestPlayerRating(t *testing.T) {
	assert.Equal(t, 47, PlayerRating(card("RWF", 100, 80, 40)))
	assert.Equal(t, 0, PlayerRating(card("CF", 0, 0, 0)))
	// every sub-score saturates
	assert.Equal(t, 100, PlayerRating(card("CF", 3000, 6000, 6000)))
}

func TestPlayerRatingBounded(t *testing.T) {
	for apps := 0; apps <= 3000; apps += 250 {
		for goal := 0; goal <= 4000; goal += 500 {
			for assists := 0; assists <= 4000; assists += 500 {
				r := PlayerRating(card("CF", apps, goal, assists))
				assert.GreaterOrEqual(t, r, 0)
				assert.LessOrEqual(t, r, 100)
			}
		}
	}
}

func TestConsistencyRating(t *testing.T) {
	assert.Equal(t, 5500, ConsistencyRating(card("RWF", 100, 80, 40)))
	assert.Equal(t, 0, ConsistencyRating(card("CF", 10, 0, 0)))
	// one-dimensional players get no balance credit
	assert.Equal(t, 2500, ConsistencyRating(card("CF", 10, 10, 0)))
}

func TestPositionRating(t *testing.T) {
	assert.InDelta(t, 71.0, PositionRating(card("RWF", 100, 80, 40)), 1e-9)

	unknown := card("GK", 100, 80, 40)
	cf := card("CF", 100, 80, 40)
	assert.InDelta(t, PositionRating(cf), PositionRating(unknown), 1e-9)
	assert.Equal(t, WeightsFor("CF"), WeightsFor("gk"))
	assert.Equal(t, WeightsFor("AMF"), WeightsFor(" amf "))
}

func TestPositionWeightsSumToOne(t *testing.T) {
	for pos, w := range positionWeights {
		assert.InDelta(t, 1.0, w.Goal+w.Assist+w.Efficiency+w.Experience, 1e-9, pos)
	}
}

func TestOverUnder(t *testing.T) {
	tests := []struct {
		name string
		card models.PlayerCard
		want Assessment
	}{
		{"fair", card("RWF", 100, 80, 40), FairlyRated},
		{"underrated holding midfielder", card("DMF", 400, 100, 300), Underrated},
		{"overrated small sample striker", card("CF", 40, 80, 16), Overrated},
		{"no data", card("CF", 0, 0, 0), FairlyRated},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, OverUnder(tt.card))
		})
	}
}

func TestConfidence(t *testing.T) {
	assert.Equal(t, "Very high", Confidence(701))
	assert.Equal(t, "High", Confidence(700))
	assert.Equal(t, "High", Confidence(301))
	assert.Equal(t, "Medium", Confidence(300))
	assert.Equal(t, "Medium", Confidence(101))
	assert.Equal(t, "Low", Confidence(100))
	assert.Equal(t, "Low", Confidence(0))
}

func TestEfficiency(t *testing.T) {
	r := Efficiency(card("RWF", 100, 80, 40))
	assert.InDelta(t, 100, r.Attacking, 1e-9)
	assert.InDelta(t, 80, r.Playmaking, 1e-9)
	assert.InDelta(t, 12, r.Consistency, 1e-9)
	assert.InDelta(t, 80, r.Efficiency, 1e-9)
	assert.InDelta(t, 76.8, r.Overall, 1e-9)

	zero := Efficiency(card("CF", 0, 5, 5))
	assert.Zero(t, zero.Consistency)
	assert.Zero(t, zero.Overall)
}

func TestCategories(t *testing.T) {
	c := Categories(card("RWF", 100, 80, 40))
	assert.InDelta(t, 108, c.Attacking, 1e-9)
	assert.InDelta(t, 80, c.Playmaking, 1e-9)
	assert.InDelta(t, 120, c.Efficiency, 1e-9)
	assert.InDelta(t, math.Log(101)*20, c.Experience, 1e-9)
	assert.InDelta(t, 100, c.Consistency, 1e-9)

	assert.Zero(t, Categories(card("CF", 0, 0, 0)).Attacking)
}

func TestEIS(t *testing.T) {
	score, ok := EIS(card("CF", 125, 50, 25))
	require.True(t, ok)
	assert.InDelta(t, 17, score, 1e-9)

	_, ok = EIS(card("GK", 500, 0, 3))
	assert.False(t, ok)

	assert.Zero(t, Reliability(0))
	assert.InDelta(t, 1, Reliability(900), 1e-9)
}

func TestStatTrend(t *testing.T) {
	assert.Equal(t, TrendUp, StatTrend(card("CF", 10, 9, 0)))
	assert.Equal(t, TrendDown, StatTrend(card("CF", 10, 2, 0)))
	assert.Equal(t, TrendStable, StatTrend(card("CF", 10, 3, 0)))
}

func TestBuild(t *testing.T) {
	r := Build(card("CF", 125, 50, 25))
	require.NotNil(t, r.EIS)
	assert.InDelta(t, 17, *r.EIS, 1e-9)
	assert.Equal(t, "Medium", r.Confidence)

	assert.Nil(t, Build(card("CB", 125, 5, 2)).EIS)
}
