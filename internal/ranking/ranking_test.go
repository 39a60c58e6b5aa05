package ranking

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stitts-dev/efootball-stats/internal/models"
)

func fixture() []models.PlayerCard {
	return []models.PlayerCard{
		models.NewPlayerCard(1, "Alpha", "Reds", "CF", "epic", 24, 300, 250, 60),
		models.NewPlayerCard(2, "Bravo", "Blues", "AMF", "epic", 29, 400, 90, 210),
		models.NewPlayerCard(3, "Charlie", "Reds", "RWF", "big time", 31, 150, 120, 70),
		models.NewPlayerCard(4, "Delta", "Greens", "CB", "epic", 34, 500, 20, 10),
		models.NewPlayerCard(5, "Echo", "Blues", "CMF", "epic", 22, 220, 40, 130),
		models.NewPlayerCard(6, "Foxtrot", "Greens", "LWF", "show time", 27, 180, 160, 50),
		models.NewPlayerCard(7, "Golf", "Reds", "SS", "epic", 26, 90, 75, 45),
		models.NewPlayerCard(8, "Hotel", "Blues", "DMF", "epic", 33, 350, 15, 60),
		models.NewPlayerCard(9, "India", "Greens", "CF", "epic", 21, 60, 55, 5),
		models.NewPlayerCard(10, "Juliet", "Reds", "GK", "epic", 30, 600, 0, 1),
	}
}

func ids(entries []Entry) []uint {
	out := make([]uint, len(entries))
	for i, e := range entries {
		out[i] = e.Player.ID
	}
	return out
}

func TestRankTopFiveGoals(t *testing.T) {
	got := Rank(fixture(), MetricGoals, 5)
	require.Len(t, got, 5)
	assert.Equal(t, []uint{1, 6, 3, 2, 7}, ids(got))
	for i, e := range got {
		assert.Equal(t, i+1, e.Rank)
		if i > 0 {
			assert.GreaterOrEqual(t, got[i-1].Value, e.Value)
		}
	}
}

func TestRankWithFilters(t *testing.T) {
	got := Rank(fixture(), MetricAssists, 0, ByTeam("reds"))
	assert.Equal(t, []uint{3, 1, 7, 10}, ids(got))

	got = Rank(fixture(), MetricGoals, 10, InGroup("attackers"))
	assert.Equal(t, []uint{1, 6, 3, 7, 9}, ids(got))

	got = Rank(fixture(), MetricApps, 3, ByAgeBand("veteran"))
	assert.Equal(t, []uint{4, 8}, ids(got))

	assigned := map[uint]string{2: "Playmaker", 5: "Rising Star"}
	got = Rank(fixture(), MetricGoals, 5, ByArchetype(assigned, "playmaker"))
	assert.Equal(t, []uint{2}, ids(got))

	assert.Empty(t, Rank(fixture(), MetricGoals, 5, ByPosition("LB")))
}

func TestRankKeepsInputOrderOnTies(t *testing.T) {
	players := []models.PlayerCard{
		models.NewPlayerCard(1, "A", "", "CF", "", 20, 10, 5, 0),
		models.NewPlayerCard(2, "B", "", "CF", "", 20, 10, 9, 0),
		models.NewPlayerCard(3, "C", "", "CF", "", 20, 10, 5, 0),
	}
	assert.Equal(t, []uint{2, 1, 3}, ids(Rank(players, MetricGoals, 0)))
}

func TestRankDoesNotMutateInput(t *testing.T) {
	players := fixture()
	Rank(players, MetricApps, 3)
	assert.Equal(t, uint(1), players[0].ID)
}

func TestHeadToHead(t *testing.T) {
	top := HeadToHead(fixture(), MetricAssists)
	require.Len(t, top, 2)
	assert.Equal(t, uint(2), top[0].ID)
	assert.Equal(t, uint(5), top[1].ID)

	assert.Len(t, HeadToHead(fixture()[:1], MetricGoals), 1)
}

func TestHeadToHeadWinner(t *testing.T) {
	assert.Nil(t, HeadToHeadWinner(fixture()[:1], MetricGoals))

	players := fixture()[:3]
	w := HeadToHeadWinner(players, MetricAssists)
	require.NotNil(t, w)
	assert.Equal(t, uint(2), w.ID)

	tied := []models.PlayerCard{
		models.NewPlayerCard(1, "A", "", "CF", "", 20, 10, 5, 0),
		models.NewPlayerCard(2, "B", "", "CF", "", 20, 10, 5, 0),
	}
	assert.Equal(t, uint(1), HeadToHeadWinner(tied, MetricGoals).ID)
}

func TestBestCombinations(t *testing.T) {
	combos := BestCombinations(fixture(), 2)
	require.Len(t, combos, 5)
	for i := 1; i < len(combos); i++ {
		assert.GreaterOrEqual(t, combos[i-1].Score, combos[i].Score)
	}
	for _, c := range combos {
		require.Len(t, c.Players, 2)
		assert.NotEqual(t, c.Players[0].ID, c.Players[1].ID)
	}

	assert.Nil(t, BestCombinations(fixture(), 3))
	assert.Len(t, BestCombinations(fixture()[:3], 2), 3)
	assert.Empty(t, BestCombinations(fixture()[:1], 2))
}

func TestParseMetric(t *testing.T) {
	m, err := ParseMetric("Goals")
	require.NoError(t, err)
	assert.Equal(t, MetricGoals, m)

	m, err = ParseMetric("assists_per_match")
	require.NoError(t, err)
	assert.Equal(t, MetricAPm, m)

	_, err = ParseMetric("tackles")
	assert.Error(t, err)
}

func TestMetricFormat(t *testing.T) {
	assert.Equal(t, "250", MetricGoals.Format(250))
	assert.Equal(t, "1.03", MetricGAPm.Format(1.0333))
}

func TestExportCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, ExportCSV(&buf, Rank(fixture(), MetricGAPm, 2), MetricGAPm))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Rank,Name,Team,Position,Age,Card Type,Value", lines[0])
	assert.Equal(t, "1,Golf,Reds,SS,26,epic,1.33", lines[1])
}
