package chat

import (
	"fmt"
	"sort"
	"strings"

	"github.com/stitts-dev/efootball-stats/internal/analytics"
	"github.com/stitts-dev/efootball-stats/internal/models"
	"github.com/stitts-dev/efootball-stats/internal/ranking"
	"github.com/stitts-dev/efootball-stats/internal/rating"
	"github.com/stitts-dev/efootball-stats/internal/similarity"
)

const (
	HelpText          = "I can help with player stats, rankings, comparisons, and explanations. Try: 'Top 5 CFs by goals' or 'Compare Messi and Ronaldo'."
	ApologyText       = "I'm temporarily unable to analyze advanced queries. Try asking something like 'Who has the best assists per match?'"
	NotConfiguredText = "Gemini API key not configured."
	NoDataText        = "No player data available."
	NoRankingText     = "No players found for this ranking."
)

// StatBlock renders a single card with its ratings.
func StatBlock(p models.PlayerCard) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s (%s, %s)\n\n", p.Name, p.Position, p.Team)
	fmt.Fprintf(&b, "Goals: %d\nAssists: %d\nAppearances: %d\n\n", p.Goal, p.Assists, p.Apps)
	fmt.Fprintf(&b, "Goals per match: %.2f\nAssists per match: %.2f\nG+A per match: %.2f\n\n", p.GPm, p.APm, p.GAPm)
	fmt.Fprintf(&b, "Rating: %.1f\nConsistency: %.1f\nAssessment: %s\nConfidence: %s",
		rating.PositionRating(p), rating.ConsistencyScore(p), rating.OverUnder(p), rating.Confidence(p.Apps))
	return b.String()
}

// CompareBlock renders two cards side by side.
func CompareBlock(a, b models.PlayerCard) string {
	return fmt.Sprintf("%s vs %s\n\nGoals: %d vs %d\nAssists: %d vs %d\nG+A per match: %.2f vs %.2f\nAppearances: %d vs %d",
		a.Name, b.Name,
		a.Goal, b.Goal,
		a.Assists, b.Assists,
		a.GAPm, b.GAPm,
		a.Apps, b.Apps)
}

// ExplainBlock declares a winner by position-weighted rating. The second card
// wins ties.
func ExplainBlock(a, b models.PlayerCard) string {
	ra, rb := rating.PositionRating(a), rating.PositionRating(b)
	winner := b
	if ra > rb {
		winner = a
	}
	diff := ra - rb
	if diff < 0 {
		diff = -diff
	}
	return fmt.Sprintf("%s vs %s\n\nRating: %.1f vs %.1f\nWinner: %s (by %.1f)\n\nGoals: %d vs %d\nAssists: %d vs %d\nG+A per match: %.2f vs %.2f",
		a.Name, b.Name,
		ra, rb,
		winner.Name, diff,
		a.Goal, b.Goal,
		a.Assists, b.Assists,
		a.GAPm, b.GAPm)
}

// RankBlock renders a numbered ranking under a "Top 5 <label> by <metric>" header.
func RankBlock(label string, metric ranking.Metric, entries []ranking.Entry) string {
	if len(entries) == 0 {
		return NoRankingText
	}
	lines := make([]string, 0, len(entries)+1)
	lines = append(lines, fmt.Sprintf("Top %d %s by %s:", rankLimit, label, metric))
	for _, e := range entries {
		lines = append(lines, fmt.Sprintf("%d. %s (%s)", e.Rank, e.Player.Name, metric.Format(e.Value)))
	}
	return strings.Join(lines, "\n")
}

// CareerBlock renders the aggregate of all of a player's cards.
func CareerBlock(c analytics.CareerSummary) string {
	return fmt.Sprintf("%s career (%d cards)\n\nGoals: %d\nAssists: %d\nAppearances: %d\n\nGoals per match: %.2f\nAssists per match: %.2f\nG+A per match: %.2f\nReliability: %.2f",
		c.Name, c.CardsCount,
		c.TotalGoals, c.TotalAssists, c.TotalApps,
		c.GPm, c.APm, c.GAPm,
		c.Reliability)
}

// CareerCompareBlock renders two career summaries side by side.
func CareerCompareBlock(a, b analytics.CareerSummary) string {
	return fmt.Sprintf("%s vs %s (careers)\n\nGoals: %d vs %d\nAssists: %d vs %d\nG+A per match: %.2f vs %.2f\nAppearances: %d vs %d\nCards: %d vs %d",
		a.Name, b.Name,
		a.TotalGoals, b.TotalGoals,
		a.TotalAssists, b.TotalAssists,
		a.GAPm, b.GAPm,
		a.TotalApps, b.TotalApps,
		a.CardsCount, b.CardsCount)
}

// SimilarBlock lists the closest cards to target.
func SimilarBlock(target models.PlayerCard, matches []similarity.Match) string {
	if len(matches) == 0 {
		return fmt.Sprintf("No players similar to %s were found.", target.Name)
	}
	lines := []string{fmt.Sprintf("Players similar to %s:", target.Name)}
	for i, m := range matches {
		lines = append(lines, fmt.Sprintf("%d. %s (%s, %s) distance %.3f", i+1, m.Player.Name, m.Player.Position, m.Player.Team, m.Value))
	}
	return strings.Join(lines, "\n")
}

// AssessmentList renders the top three cards carrying the given assessment.
// Underrated cards are ordered by consistency score, overrated ones by rating.
func AssessmentList(players []models.PlayerCard, want rating.Assessment) string {
	var picked []models.PlayerCard
	for _, p := range players {
		if rating.OverUnder(p) == want {
			picked = append(picked, p)
		}
	}
	key := rating.PositionRating
	if want == rating.Underrated {
		key = rating.ConsistencyScore
	}
	sort.SliceStable(picked, func(i, j int) bool { return key(picked[i]) > key(picked[j]) })
	if len(picked) > 3 {
		picked = picked[:3]
	}

	label := strings.ToLower(string(want))
	if len(picked) == 0 {
		return fmt.Sprintf("No %s players found.", label)
	}
	lines := []string{fmt.Sprintf("Most %s players:", label)}
	for _, p := range picked {
		lines = append(lines, fmt.Sprintf("• %s (%s)", p.Name, p.Position))
	}
	return strings.Join(lines, "\n")
}

// PositionSummary describes all cards at one position.
func PositionSummary(position string, players []models.PlayerCard) string {
	cards := ranking.Apply(players, ranking.ByPosition(position))
	if len(cards) == 0 {
		return fmt.Sprintf("No players found for position %q.", position)
	}
	goals, assists := 0, 0
	top := cards[0]
	for _, p := range cards {
		goals += p.Goal
		assists += p.Assists
		if p.Goal > top.Goal {
			top = p
		}
	}
	return fmt.Sprintf("%s position has %d players with %d total goals and %d total assists. Best %s: %s (%d goals, %d assists).",
		position, len(cards), goals, assists, position, top.Name, top.Goal, top.Assists)
}

// TeamSummary describes all cards of one club.
func TeamSummary(team string, players []models.PlayerCard) string {
	cards := ranking.Apply(players, ranking.ByTeam(team))
	if len(cards) == 0 {
		return fmt.Sprintf("No players found for team %q.", team)
	}
	goals, assists, ages := 0, 0, 0
	top := cards[0]
	for _, p := range cards {
		goals += p.Goal
		assists += p.Assists
		ages += p.Age
		if p.Goal > top.Goal {
			top = p
		}
	}
	return fmt.Sprintf("%s has %d players with %d total goals and %d total assists. Top scorer: %s (%d goals). Average age: %d years.",
		cards[0].Team, len(cards), goals, assists, top.Name, top.Goal, (ages+len(cards)/2)/len(cards))
}

// SystemPrompt builds the LLM preamble: ground rules plus the top 20 cards by goals.
func SystemPrompt(players []models.PlayerCard) string {
	var b strings.Builder
	b.WriteString("You are an expert eFootball statistics and analytics assistant.\n\n")
	b.WriteString("RULES:\n")
	b.WriteString("- Each row = PLAYER CARD\n")
	b.WriteString("- Multiple cards per player possible\n")
	b.WriteString("- Default to BEST CARD (highest gAPm)\n")
	b.WriteString("- Never invent stats\n\n")
	b.WriteString("AVAILABLE DATA:\n")
	b.WriteString("goal, assists, apps, gPm, aPm, gAPm, position, team, age, cardType\n\n")
	b.WriteString("TOP 20 CARDS BY GOALS:\n")
	for _, e := range ranking.Rank(players, ranking.MetricGoals, 20) {
		p := e.Player
		fmt.Fprintf(&b, "%s (%s, %s, %s): %d goals, %d assists, %.3f G/M, %.3f A/M, %.3f G+A/M, %d apps\n",
			p.Name, p.Position, p.Team, p.CardType, p.Goal, p.Assists, p.GPm, p.APm, p.GAPm, p.Apps)
	}
	b.WriteString("\nAlways include numbers. Explain WHY.")
	return b.String()
}
