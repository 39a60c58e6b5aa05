package chat

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/stitts-dev/efootball-stats/internal/models"
)

func TestLookupQuestion(t *testing.T) {
	key, ok := LookupQuestion("  WHO HAS THE MOST ASSISTS?")
	assert.True(t, ok)
	assert.Equal(t, FactMostAssists, key)

	_, ok = LookupQuestion("who has the most assists")
	assert.False(t, ok)
}

func TestResolveFact(t *testing.T) {
	players := chatFixture()

	tests := []struct {
		key  FactKey
		want string
	}{
		{FactTopScorer, "The top scorer is Cristiano Ronaldo with 850 goals."},
		{FactMostAssists, "The most assists were provided by Lionel Messi (350)."},
		{FactBestGPm, "Lionel Messi has the best goals per match ratio (1.067)."},
		{FactBestAPm, "Lionel Messi has the best assists per match ratio (0.500)."},
		{FactMostEfficient, "Lionel Messi is the most efficient player (1.567 G+A per match)."},
		{FactMostAppearances, "Cristiano Ronaldo has the most appearances (1000)."},
		{FactBiggestGap, "Cristiano Ronaldo has the biggest gap between goals and assists (620)."},
	}

	for _, tt := range tests {
		t.Run(string(tt.key), func(t *testing.T) {
			assert.Equal(t, tt.want, ResolveFact(tt.key, players))
		})
	}
}

func TestResolveFactFirstMaximumWins(t *testing.T) {
	players := []models.PlayerCard{
		models.NewPlayerCard(1, "First", "A", "CF", "epic", 25, 100, 50, 10),
		models.NewPlayerCard(2, "Second", "B", "CF", "epic", 25, 100, 50, 10),
	}
	assert.Equal(t, "The top scorer is First with 50 goals.", ResolveFact(FactTopScorer, players))
}

func TestResolveFactEmpty(t *testing.T) {
	assert.Equal(t, NoDataText, ResolveFact(FactTopScorer, nil))
}
