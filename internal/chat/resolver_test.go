package chat

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/stitts-dev/efootball-stats/internal/models"
)

type mockCompleter struct {
	mock.Mock
}

func (m *mockCompleter) Complete(ctx context.Context, system string, messages []Message, cfg ModelConfig) (string, error) {
	args := m.Called(ctx, system, messages, cfg)
	return args.String(0), args.Error(1)
}

func chatFixture() []models.PlayerCard {
	return []models.PlayerCard{
		models.NewPlayerCard(1, "Lionel Messi", "Inter Miami", "RWF", "epic", 36, 800, 700, 350),
		models.NewPlayerCard(2, "Cristiano Ronaldo", "Al Nassr", "CF", "epic", 39, 1000, 850, 230),
		models.NewPlayerCard(3, "Lionel Messi", "Barcelona", "RWF", "show time", 28, 300, 320, 150),
		models.NewPlayerCard(4, "Kevin De Bruyne", "Man City", "AMF", "big time", 32, 500, 100, 200),
		models.NewPlayerCard(5, "Kylian Mbappé", "Real Madrid", "CF", "epic", 25, 300, 250, 80),
		models.NewPlayerCard(6, "Virgil van Dijk", "Liverpool", "CB", "epic", 32, 400, 30, 10),
	}
}

func newTestResolver(c Completer) *Resolver {
	return NewResolver(c, DefaultModelConfig())
}

func TestResolvePredefinedTopScorer(t *testing.T) {
	m := &mockCompleter{}
	reply := newTestResolver(m).Resolve(context.Background(), "  who is the TOP scorer? ", chatFixture())

	assert.Equal(t, SourcePredefined, reply.Source)
	assert.Equal(t, "The top scorer is Cristiano Ronaldo with 850 goals.", reply.Text)
	m.AssertNotCalled(t, "Complete", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestResolveCompareDoesNotCallLLM(t *testing.T) {
	m := &mockCompleter{}
	reply := newTestResolver(m).Resolve(context.Background(), "compare Lionel Messi and Cristiano Ronaldo", chatFixture())

	assert.Equal(t, IntentCompare, reply.Intent)
	assert.Equal(t, SourceLocal, reply.Source)
	assert.Contains(t, reply.Text, "Lionel Messi vs Cristiano Ronaldo")
	// Messi resolves to his best card by gAPm, the Barcelona one.
	assert.Contains(t, reply.Text, "Goals: 320 vs 850")
	assert.Contains(t, reply.Text, "Assists: 150 vs 230")
	assert.Contains(t, reply.Text, "Appearances: 300 vs 1000")
	assert.Equal(t, []uint{3, 2}, reply.PlayerIDs)
	m.AssertNotCalled(t, "Complete", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestResolveCompareByFirstName(t *testing.T) {
	players := append(chatFixture(), models.NewPlayerCard(7, "Neymar Jr", "Al Hilal", "LWF", "epic", 32, 497, 281, 198))
	reply := newTestResolver(nil).Resolve(context.Background(), "compare neymar and messi", players)

	assert.Equal(t, IntentCompare, reply.Intent)
	assert.Equal(t, SourceLocal, reply.Source)
	assert.Contains(t, reply.Text, "Neymar Jr vs Lionel Messi")
	assert.Equal(t, []uint{7, 3}, reply.PlayerIDs)
}

func TestResolveUnmatchedReturnsHelp(t *testing.T) {
	m := &mockCompleter{}
	reply := newTestResolver(m).Resolve(context.Background(), "hello there", chatFixture())

	assert.Equal(t, HelpText, reply.Text)
	assert.Equal(t, SourceFallback, reply.Source)
	assert.Equal(t, IntentFact, reply.Intent)
	m.AssertNotCalled(t, "Complete", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestResolveExplainWithTwoNamesStaysLocal(t *testing.T) {
	m := &mockCompleter{}
	reply := newTestResolver(m).Resolve(context.Background(), "why is Messi better than Ronaldo", chatFixture())

	assert.Equal(t, IntentExplain, reply.Intent)
	assert.Equal(t, SourceLocal, reply.Source)
	assert.Contains(t, reply.Text, "Winner:")
	assert.Contains(t, reply.Text, "Rating:")
	m.AssertNotCalled(t, "Complete", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestResolveExplainDelegatesToLLM(t *testing.T) {
	const question = "Why is Haaland so good"
	m := &mockCompleter{}
	m.On("Complete",
		mock.Anything,
		mock.MatchedBy(func(system string) bool {
			return strings.Contains(system, "TOP 20 CARDS BY GOALS") && strings.Contains(system, "Cristiano Ronaldo")
		}),
		[]Message{{Role: "user", Content: question}},
		DefaultModelConfig(),
	).Return("Because he scores a lot.", nil).Once()

	reply := newTestResolver(m).Resolve(context.Background(), question, chatFixture())

	assert.Equal(t, SourceLLM, reply.Source)
	assert.Equal(t, "Because he scores a lot.", reply.Text)
	m.AssertExpectations(t)
}

func TestResolveLLMFailures(t *testing.T) {
	tests := []struct {
		name  string
		reply string
		err   error
		want  string
	}{
		{"transport error", "", errors.New("connection reset"), ApologyText},
		{"empty reply", "   ", nil, ApologyText},
		{"not configured", "", ErrNotConfigured, NotConfiguredText},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := &mockCompleter{}
			m.On("Complete", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(tt.reply, tt.err).Once()

			reply := newTestResolver(m).Resolve(context.Background(), "why do wingers matter", chatFixture())

			assert.Equal(t, tt.want, reply.Text)
			assert.Equal(t, SourceFallback, reply.Source)
			m.AssertExpectations(t)
		})
	}
}

func TestResolveNilCompleter(t *testing.T) {
	reply := newTestResolver(nil).Resolve(context.Background(), "why do wingers matter", chatFixture())
	assert.Equal(t, NotConfiguredText, reply.Text)
}

func TestResolvePlayerLookup(t *testing.T) {
	r := newTestResolver(nil)

	reply := r.Resolve(context.Background(), "kylian mbappe", chatFixture())
	require.Equal(t, SourceLocal, reply.Source)
	assert.True(t, strings.HasPrefix(reply.Text, "Kylian Mbappé (CF, Real Madrid)"))
	assert.Contains(t, reply.Text, "Goals: 250")
	assert.Contains(t, reply.Text, "Confidence:")

	reply = r.Resolve(context.Background(), "messi", chatFixture())
	assert.True(t, strings.HasPrefix(reply.Text, "Lionel Messi (RWF, Barcelona)"))
}

func TestResolveFactKeyword(t *testing.T) {
	reply := newTestResolver(nil).Resolve(context.Background(), "who has the most assists", chatFixture())
	assert.Equal(t, "The most assists were provided by Lionel Messi (350).", reply.Text)
}

func TestResolveRank(t *testing.T) {
	r := newTestResolver(nil)

	reply := r.Resolve(context.Background(), "top 3 strikers by assists", chatFixture())
	assert.Equal(t, IntentRank, reply.Intent)
	assert.Equal(t, "Top 5 CF by assists:\n1. Cristiano Ronaldo (230)\n2. Kylian Mbappé (80)", reply.Text)

	reply = r.Resolve(context.Background(), "rank the attackers", chatFixture())
	lines := strings.Split(reply.Text, "\n")
	require.Len(t, lines, 5)
	assert.Equal(t, "Top 5 attackers by goal:", lines[0])
	assert.Equal(t, "1. Cristiano Ronaldo (850)", lines[1])

	reply = r.Resolve(context.Background(), "top 10 most efficient players", chatFixture())
	assert.True(t, strings.HasPrefix(reply.Text, "Top 5 players by gAPm:"))

	reply = r.Resolve(context.Background(), "Who ranks highest for assists?", chatFixture())
	assert.Equal(t, IntentRank, reply.Intent)
	assert.True(t, strings.HasPrefix(reply.Text, "Top 5 players by assists:\n1. Lionel Messi (350)"), reply.Text)

	reply = r.Resolve(context.Background(), "Which strikers are ranked best by goals?", chatFixture())
	assert.Equal(t, IntentRank, reply.Intent)
	assert.Equal(t, "Top 5 CF by goal:\n1. Cristiano Ronaldo (850)\n2. Kylian Mbappé (250)", reply.Text)
}

func TestResolveRankNoCandidates(t *testing.T) {
	reply := newTestResolver(nil).Resolve(context.Background(), "top 5 goalkeepers", chatFixture())
	assert.Equal(t, NoRankingText, reply.Text)
}

func TestResolveCareer(t *testing.T) {
	r := newTestResolver(nil)

	reply := r.Resolve(context.Background(), "Lionel Messi career", chatFixture())
	assert.Contains(t, reply.Text, "Lionel Messi career (2 cards)")
	assert.Contains(t, reply.Text, "Goals: 1020")

	reply = r.Resolve(context.Background(), "compare Messi vs Ronaldo career", chatFixture())
	assert.Contains(t, reply.Text, "(careers)")
	assert.Contains(t, reply.Text, "Cards: 2 vs 1")
}

func TestResolveSimilar(t *testing.T) {
	reply := newTestResolver(nil).Resolve(context.Background(), "players similar to Kylian Mbappé", chatFixture())

	assert.Equal(t, IntentSimilar, reply.Intent)
	lines := strings.Split(reply.Text, "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "Players similar to Kylian Mbappé:", lines[0])
	assert.NotContains(t, strings.Join(lines[1:], "\n"), "Kylian Mbappé")
}

func TestResolveAggregates(t *testing.T) {
	r := newTestResolver(nil)

	reply := r.Resolve(context.Background(), "CF position statistics", chatFixture())
	assert.True(t, strings.HasPrefix(reply.Text, "CF position has 2 players with 1100 total goals"))

	reply = r.Resolve(context.Background(), "team stats for liverpool", chatFixture())
	assert.True(t, strings.HasPrefix(reply.Text, "Liverpool has 1 players"))
}

func TestResolveAssessment(t *testing.T) {
	reply := newTestResolver(nil).Resolve(context.Background(), "who is underrated?", chatFixture())
	assert.Equal(t, SourceLocal, reply.Source)
	assert.Contains(t, reply.Text, "underrated players")
}

func TestResolveEmptyDataset(t *testing.T) {
	reply := newTestResolver(nil).Resolve(context.Background(), "Who is the top scorer?", nil)
	assert.Equal(t, NoDataText, reply.Text)
}
