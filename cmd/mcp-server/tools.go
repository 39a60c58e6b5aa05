package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/stitts-dev/efootball-stats/internal/analytics"
	"github.com/stitts-dev/efootball-stats/internal/archetype"
	"github.com/stitts-dev/efootball-stats/internal/chat"
	"github.com/stitts-dev/efootball-stats/internal/models"
	"github.com/stitts-dev/efootball-stats/internal/ranking"
	"github.com/stitts-dev/efootball-stats/internal/rating"
	"github.com/stitts-dev/efootball-stats/internal/services"
	"github.com/stitts-dev/efootball-stats/internal/similarity"
)

type RankPlayersArgs struct {
	Metric   string `json:"metric" jsonschema:"Metric key: goal, assists, gPlusA, gAPm, gPm, aPm, apps, rating, consistency, positionRating, efficiency, eis"`
	Position string `json:"position,omitempty" jsonschema:"Only this position, e.g. CF or AMF"`
	Group    string `json:"group,omitempty" jsonschema:"Only this position group: attacker, midfielder or defender"`
	Limit    int    `json:"limit,omitempty" jsonschema:"Number of rows (default 10)"`
}

type PlayerLookupArgs struct {
	ID   uint   `json:"id,omitempty" jsonschema:"Card id"`
	Name string `json:"name,omitempty" jsonschema:"Player name; returns every card plus a career summary"`
}

type ComparePlayersArgs struct {
	IDs []uint `json:"ids" jsonschema:"Two to four card ids"`
}

type SimilarPlayersArgs struct {
	ID     uint `json:"id" jsonschema:"Card id to match against (required)"`
	Limit  int  `json:"limit,omitempty" jsonschema:"Number of matches"`
	Scored bool `json:"scored,omitempty" jsonschema:"Rank by agreement score instead of weighted distance"`
}

type ArchetypesArgs struct{}

type AskArgs struct {
	Question string `json:"question" jsonschema:"Natural-language question about the cards"`
}

type toolInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// toolset answers every tool from a fresh card snapshot.
type toolset struct {
	players  func(context.Context) ([]models.PlayerCard, error)
	resolver *chat.Resolver
	topN     int
}

type cardView struct {
	Player    models.PlayerCard   `json:"player"`
	Ratings   rating.Report       `json:"ratings"`
	Archetype archetype.Archetype `json:"archetype"`
}

func (t *toolset) rankPlayers(ctx context.Context, args RankPlayersArgs) (any, error) {
	metric, err := ranking.ParseMetric(args.Metric)
	if err != nil {
		return nil, err
	}
	players, err := t.players(ctx)
	if err != nil {
		return nil, err
	}
	limit := args.Limit
	if limit <= 0 {
		limit = t.topN
	}
	var filters []ranking.Filter
	if args.Position != "" {
		filters = append(filters, ranking.ByPosition(args.Position))
	}
	if args.Group != "" {
		if len(ranking.PositionsIn(args.Group)) == 0 {
			return nil, fmt.Errorf("unknown position group %q", args.Group)
		}
		filters = append(filters, ranking.InGroup(args.Group))
	}
	return map[string]any{
		"metric":  metric,
		"entries": ranking.Rank(players, metric, limit, filters...),
	}, nil
}

func (t *toolset) playerLookup(ctx context.Context, args PlayerLookupArgs) (any, error) {
	if args.ID == 0 && args.Name == "" {
		return nil, fmt.Errorf("id or name is required")
	}
	players, err := t.players(ctx)
	if err != nil {
		return nil, err
	}
	assigned := archetype.AssignDistinct(players)
	view := func(p models.PlayerCard) cardView {
		return cardView{Player: p, Ratings: rating.Build(p), Archetype: assigned.Of(p.ID)}
	}

	if args.ID != 0 {
		for _, p := range players {
			if p.ID == args.ID {
				return view(p), nil
			}
		}
		return nil, fmt.Errorf("player not found: %d", args.ID)
	}

	cards := analytics.CardsNamed(players, args.Name)
	if len(cards) == 0 {
		return nil, fmt.Errorf("player not found: %s", args.Name)
	}
	views := make([]cardView, 0, len(cards))
	for _, c := range cards {
		views = append(views, view(c))
	}
	return map[string]any{
		"career": analytics.Career(cards),
		"cards":  views,
	}, nil
}

var comparedMetrics = []ranking.Metric{
	ranking.MetricGoals, ranking.MetricAssists, ranking.MetricGAPm, ranking.MetricApps, ranking.MetricRating,
}

func (t *toolset) comparePlayers(ctx context.Context, args ComparePlayersArgs) (any, error) {
	if len(args.IDs) < 2 || len(args.IDs) > services.MaxComparisonPlayers {
		return nil, fmt.Errorf("ids must list 2 to %d cards", services.MaxComparisonPlayers)
	}
	players, err := t.players(ctx)
	if err != nil {
		return nil, err
	}
	byID := make(map[uint]models.PlayerCard, len(players))
	for _, p := range players {
		byID[p.ID] = p
	}

	selected := make([]models.PlayerCard, 0, len(args.IDs))
	columns := make([]map[string]any, 0, len(args.IDs))
	for _, id := range args.IDs {
		p, ok := byID[id]
		if !ok {
			return nil, fmt.Errorf("player not found: %d", id)
		}
		selected = append(selected, p)
		columns = append(columns, map[string]any{
			"player":     p,
			"efficiency": rating.Efficiency(p),
		})
	}

	winners := make(map[ranking.Metric]string, len(comparedMetrics))
	for _, m := range comparedMetrics {
		if w := ranking.HeadToHeadWinner(selected, m); w != nil {
			winners[m] = fmt.Sprintf("%s (%s)", w.Name, m.Format(m.Value(*w)))
		}
	}
	return map[string]any{"players": columns, "winners": winners}, nil
}

func (t *toolset) similarPlayers(ctx context.Context, args SimilarPlayersArgs) (any, error) {
	players, err := t.players(ctx)
	if err != nil {
		return nil, err
	}
	for _, p := range players {
		if p.ID != args.ID {
			continue
		}
		if args.Scored {
			return similarity.FindSimilarByScore(p, players, args.Limit), nil
		}
		return similarity.FindSimilar(p, players, args.Limit), nil
	}
	return nil, fmt.Errorf("player not found: %d", args.ID)
}

func (t *toolset) archetypes(ctx context.Context, _ ArchetypesArgs) (any, error) {
	players, err := t.players(ctx)
	if err != nil {
		return nil, err
	}
	assigned := archetype.AssignDistinct(players)
	out := make([]map[string]any, 0, len(assigned))
	for _, arch := range archetype.All {
		for _, p := range players {
			if assigned.Of(p.ID).Key == arch.Key {
				out = append(out, map[string]any{"archetype": arch, "player": p.Name, "id": p.ID})
			}
		}
	}
	return out, nil
}

func (t *toolset) ask(ctx context.Context, args AskArgs) (any, error) {
	if args.Question == "" {
		return nil, fmt.Errorf("question is required")
	}
	players, err := t.players(ctx)
	if err != nil {
		return nil, err
	}
	return t.resolver.Resolve(ctx, args.Question, players), nil
}

// register adds every tool to server and returns the registry served on /tools.
func (t *toolset) register(server *mcp.Server) []toolInfo {
	registry := make([]toolInfo, 0, 6)
	addTool(server, &registry, &mcp.Tool{
		Name:        "rank_players",
		Description: "Rank eFootball cards by a metric, optionally filtered by position or group",
	}, t.rankPlayers)
	addTool(server, &registry, &mcp.Tool{
		Name:        "player_lookup",
		Description: "Card details with ratings and archetype, by id or by name",
	}, t.playerLookup)
	addTool(server, &registry, &mcp.Tool{
		Name:        "compare_players",
		Description: "Compare two to four cards: efficiency ratings and the leader per metric",
	}, t.comparePlayers)
	addTool(server, &registry, &mcp.Tool{
		Name:        "similar_players",
		Description: "Cards statistically closest to a card",
	}, t.similarPlayers)
	addTool(server, &registry, &mcp.Tool{
		Name:        "archetypes",
		Description: "Which card holds each archetype",
	}, t.archetypes)
	addTool(server, &registry, &mcp.Tool{
		Name:        "ask",
		Description: "Ask the stats assistant a natural-language question",
	}, t.ask)
	return registry
}

func addTool[T any](server *mcp.Server, registry *[]toolInfo, tool *mcp.Tool, run func(context.Context, T) (any, error)) {
	*registry = append(*registry, toolInfo{Name: tool.Name, Description: tool.Description})
	mcp.AddTool(server, tool, func(ctx context.Context, _ *mcp.CallToolRequest, args T) (*mcp.CallToolResult, any, error) {
		out, err := run(ctx, args)
		if err != nil {
			return toolError(err), nil, nil
		}
		b, err := json.MarshalIndent(out, "", "  ")
		if err != nil {
			return toolError(err), nil, nil
		}
		return toolJSONBytes(b), nil, nil
	})
}

func toolJSONBytes(res []byte) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: string(res)},
		},
	}
}

func toolError(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{
			&mcp.TextContent{Text: fmt.Sprintf("error: %v", err)},
		},
	}
}
