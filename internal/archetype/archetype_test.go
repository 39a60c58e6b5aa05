package archetype

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stitts-dev/efootball-stats/internal/models"
)

func p(id uint, age, apps, goal, assists int) models.PlayerCard {
	return models.NewPlayerCard(id, "Player", "Team", "CF", "epic", age, apps, goal, assists)
}

func fixture() []models.PlayerCard {
	players := []models.PlayerCard{
		p(1, 30, 500, 400, 200),
		p(2, 28, 200, 200, 50),
		p(3, 35, 900, 300, 150),
		p(4, 27, 300, 100, 250),
		p(5, 26, 100, 60, 80),
		p(6, 22, 150, 90, 30),
		p(7, 29, 400, 150, 160),
		p(8, 31, 250, 120, 40),
	}
	for i := 9; i <= 18; i++ {
		players = append(players, p(uint(i), 30, 100, i, 5))
	}
	return players
}

func TestAssignDistinct(t *testing.T) {
	got := AssignDistinct(fixture())

	assert.Equal(t, GOAT, got[1])
	assert.Equal(t, GoalMachine, got[2])
	assert.Equal(t, TopScorer, got[3])
	assert.Equal(t, VeteranLegend, got[7])
	assert.Equal(t, Playmaker, got[4])
	assert.Equal(t, ClutchPlayer, got[5])
	assert.Equal(t, RisingStar, got[6])
	assert.Equal(t, ElitePerformer, got[8])

	for id := uint(12); id <= 18; id++ {
		assert.Equal(t, ElitePerformer, got[id], "player %d", id)
	}
	assert.Len(t, got, PoolSize)

	for _, id := range []uint{9, 10, 11} {
		_, ok := got[id]
		assert.False(t, ok)
		assert.Equal(t, None, got.Of(id))
	}
}

func TestAssignDistinctIsExclusive(t *testing.T) {
	got := AssignDistinct(fixture())
	seen := map[string]uint{}
	for id, arch := range got {
		if arch == ElitePerformer {
			continue
		}
		prev, dup := seen[arch.Key]
		assert.False(t, dup, "%s assigned to %d and %d", arch.Key, prev, id)
		seen[arch.Key] = id
	}
	// no eligible card for the 100/100 slot
	_, ok := seen[CompleteLegend.Key]
	assert.False(t, ok)
}

func TestCompleteLegendWhenEligible(t *testing.T) {
	players := append(fixture(), p(19, 33, 700, 180, 170))
	got := AssignDistinct(players)
	// 19 has the most appearances and is consumed by Veteran Legend before
	// the 100/100 slot runs, so the next eligible card (7) gets it.
	assert.Equal(t, VeteranLegend, got[19])
	assert.Equal(t, CompleteLegend, got[7])
}

func TestGOATTieKeepsFirst(t *testing.T) {
	got := AssignDistinct([]models.PlayerCard{p(1, 30, 10, 5, 5), p(2, 30, 10, 6, 4)})
	assert.Equal(t, GOAT, got[1])
	assert.Equal(t, GoalMachine, got[2])
}

func TestAssignDistinctEmpty(t *testing.T) {
	assert.Empty(t, AssignDistinct(nil))
}

func TestNames(t *testing.T) {
	names := AssignDistinct(fixture()).Names()
	require.Contains(t, names, uint(1))
	assert.Equal(t, "GOAT", names[1])
}
