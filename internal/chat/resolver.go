// Package chat answers free-text questions about the card dataset with a
// small rule-based pipeline, delegating open-ended "why" questions to an LLM.
package chat

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/stitts-dev/efootball-stats/internal/analytics"
	"github.com/stitts-dev/efootball-stats/internal/models"
	"github.com/stitts-dev/efootball-stats/internal/ranking"
	"github.com/stitts-dev/efootball-stats/internal/rating"
	"github.com/stitts-dev/efootball-stats/internal/similarity"
)

const (
	rankLimit    = 5
	similarLimit = 3
)

// Source records which stage produced a reply.
type Source string

const (
	SourcePredefined Source = "predefined"
	SourceLocal      Source = "local"
	SourceLLM        Source = "llm"
	SourceFallback   Source = "fallback"
)

type Reply struct {
	Text      string `json:"text"`
	Intent    Intent `json:"intent"`
	Source    Source `json:"source"`
	PlayerIDs []uint `json:"player_ids,omitempty"`
}

type query struct {
	raw        string
	normalized string
	intent     Intent
	players    []models.PlayerCard
	names      *nameIndex
}

// stage returns ok=false to pass the query to the next stage.
type stage func(ctx context.Context, q *query) (Reply, bool)

type Resolver struct {
	completer Completer
	config    ModelConfig
	timeout   time.Duration
	logger    *logrus.Logger
}

type ResolverOption func(*Resolver)

// WithTimeout bounds the LLM call. Zero leaves it to the completer.
func WithTimeout(d time.Duration) ResolverOption {
	return func(r *Resolver) { r.timeout = d }
}

func WithLogger(l *logrus.Logger) ResolverOption {
	return func(r *Resolver) { r.logger = l }
}

// NewResolver builds a resolver. completer may be nil, in which case explain
// queries that need the LLM answer with NotConfiguredText.
func NewResolver(completer Completer, cfg ModelConfig, opts ...ResolverOption) *Resolver {
	r := &Resolver{completer: completer, config: cfg, logger: logrus.StandardLogger()}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve never fails: every path ends in a textual reply.
func (r *Resolver) Resolve(ctx context.Context, input string, players []models.PlayerCard) Reply {
	q := &query{
		raw:        input,
		normalized: Normalize(input),
		players:    players,
		names:      newNameIndex(players),
	}
	q.intent = Classify(q.normalized)

	stages := []stage{
		r.predefined,
		r.career,
		r.playerLookup,
		r.factKeyword,
		r.aggregate,
		r.assessment,
		r.rank,
		r.compare,
		r.explain,
		r.similar,
		r.llm,
	}
	for _, s := range stages {
		if reply, ok := s(ctx, q); ok {
			reply.Intent = q.intent
			r.logger.WithFields(logrus.Fields{
				"intent": reply.Intent,
				"source": reply.Source,
			}).Debug("Chat query resolved")
			return reply
		}
	}
	return Reply{Text: HelpText, Intent: q.intent, Source: SourceFallback}
}

func local(text string, players ...models.PlayerCard) Reply {
	ids := make([]uint, 0, len(players))
	for _, p := range players {
		ids = append(ids, p.ID)
	}
	return Reply{Text: text, Source: SourceLocal, PlayerIDs: ids}
}

func (r *Resolver) predefined(_ context.Context, q *query) (Reply, bool) {
	key, ok := LookupQuestion(q.normalized)
	if !ok {
		return Reply{}, false
	}
	return Reply{Text: ResolveFact(key, q.players), Source: SourcePredefined}, true
}

// career answers "<name> career summary", and compares careers when the
// query is a comparison naming two players.
func (r *Resolver) career(_ context.Context, q *query) (Reply, bool) {
	if !strings.Contains(q.normalized, "career") {
		return Reply{}, false
	}
	mentions := q.names.Mentions(q.raw)
	switch {
	case q.intent == IntentCompare && len(mentions) == 2:
		a := analytics.Career(q.names.Cards(mentions[0]))
		b := analytics.Career(q.names.Cards(mentions[1]))
		return local(CareerCompareBlock(a, b)), true
	case q.intent == IntentFact && len(mentions) > 0:
		name, _ := q.names.Find(q.raw)
		return local(CareerBlock(analytics.Career(q.names.Cards(name)))), true
	}
	return Reply{}, false
}

func (r *Resolver) playerLookup(_ context.Context, q *query) (Reply, bool) {
	if q.intent != IntentFact {
		return Reply{}, false
	}
	name, ok := q.names.Find(q.raw)
	if !ok {
		return Reply{}, false
	}
	card, ok := q.names.Best(name)
	if !ok {
		return Reply{}, false
	}
	return local(StatBlock(card), card), true
}

func (r *Resolver) factKeyword(_ context.Context, q *query) (Reply, bool) {
	if q.intent != IntentFact {
		return Reply{}, false
	}
	key, ok := matchFactKeyword(q.normalized)
	if !ok {
		return Reply{}, false
	}
	return local(ResolveFact(key, q.players)), true
}

// aggregate answers "<position> position statistics" and "team statistics for <team>".
func (r *Resolver) aggregate(_ context.Context, q *query) (Reply, bool) {
	if q.intent != IntentFact || !(strings.Contains(q.normalized, "statistics") || strings.Contains(q.normalized, "stats")) {
		return Reply{}, false
	}
	if strings.Contains(q.normalized, "position") {
		if pos, ok := ExtractPosition(q.normalized); ok {
			return local(PositionSummary(pos, q.players)), true
		}
	}
	if strings.Contains(q.normalized, "team") {
		in := words(Fold(q.raw))
		seen := map[string]bool{}
		for _, p := range q.players {
			if seen[p.Team] || p.Team == "" {
				continue
			}
			seen[p.Team] = true
			if indexOf(in, words(Fold(p.Team))) >= 0 {
				return local(TeamSummary(p.Team, q.players)), true
			}
		}
	}
	return Reply{}, false
}

func (r *Resolver) assessment(_ context.Context, q *query) (Reply, bool) {
	switch {
	case strings.Contains(q.normalized, "underrated"):
		return local(AssessmentList(q.players, rating.Underrated)), true
	case strings.Contains(q.normalized, "overrated"):
		return local(AssessmentList(q.players, rating.Overrated)), true
	}
	return Reply{}, false
}

func (r *Resolver) rank(_ context.Context, q *query) (Reply, bool) {
	if q.intent != IntentRank {
		return Reply{}, false
	}
	metric := ExtractMetric(q.normalized)
	label := "players"
	var filter ranking.Filter
	if pos, ok := ExtractPosition(q.normalized); ok {
		label, filter = pos, ranking.ByPosition(pos)
	} else if group, ok := ExtractGroup(q.normalized); ok {
		label, filter = group+"s", ranking.InGroup(group)
	}
	entries := ranking.Rank(q.players, metric, rankLimit, filter)
	cards := make([]models.PlayerCard, len(entries))
	for i, e := range entries {
		cards[i] = e.Player
	}
	return local(RankBlock(label, metric, entries), cards...), true
}

// pair resolves exactly two distinct mentioned names to their best cards.
func pair(q *query) (models.PlayerCard, models.PlayerCard, bool) {
	mentions := q.names.Mentions(q.raw)
	if len(mentions) != 2 {
		return models.PlayerCard{}, models.PlayerCard{}, false
	}
	a, okA := q.names.Best(mentions[0])
	b, okB := q.names.Best(mentions[1])
	return a, b, okA && okB
}

func (r *Resolver) compare(_ context.Context, q *query) (Reply, bool) {
	if q.intent != IntentCompare {
		return Reply{}, false
	}
	a, b, ok := pair(q)
	if !ok {
		return Reply{}, false
	}
	return local(CompareBlock(a, b), a, b), true
}

func (r *Resolver) explain(_ context.Context, q *query) (Reply, bool) {
	if q.intent != IntentExplain {
		return Reply{}, false
	}
	a, b, ok := pair(q)
	if !ok {
		return Reply{}, false
	}
	return local(ExplainBlock(a, b), a, b), true
}

func (r *Resolver) similar(_ context.Context, q *query) (Reply, bool) {
	if q.intent != IntentSimilar {
		return Reply{}, false
	}
	name, ok := q.names.Find(q.raw)
	if !ok {
		return Reply{}, false
	}
	target, _ := q.names.Best(name)
	matches := similarity.FindSimilar(target, q.players, similarLimit)
	cards := []models.PlayerCard{target}
	for _, m := range matches {
		cards = append(cards, m.Player)
	}
	return local(SimilarBlock(target, matches), cards...), true
}

// llm delegates unresolved explain queries. One attempt, no retry; any
// failure becomes a fixed reply.
func (r *Resolver) llm(ctx context.Context, q *query) (Reply, bool) {
	if q.intent != IntentExplain {
		return Reply{}, false
	}
	if r.completer == nil {
		return Reply{Text: NotConfiguredText, Source: SourceFallback}, true
	}
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	text, err := r.completer.Complete(ctx, SystemPrompt(q.players), []Message{{Role: "user", Content: q.raw}}, r.config)
	switch {
	case errors.Is(err, ErrNotConfigured):
		return Reply{Text: NotConfiguredText, Source: SourceFallback}, true
	case err != nil:
		r.logger.WithError(err).Warn("LLM completion failed, using fallback reply")
		return Reply{Text: ApologyText, Source: SourceFallback}, true
	case strings.TrimSpace(text) == "":
		return Reply{Text: ApologyText, Source: SourceFallback}, true
	}
	return Reply{Text: text, Source: SourceLLM}, true
}
