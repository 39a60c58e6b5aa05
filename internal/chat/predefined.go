package chat

import (
	"fmt"
	"math"
	"strings"

	"github.com/stitts-dev/efootball-stats/internal/models"
)

// FactKey identifies a canned single-answer question.
type FactKey string

const (
	FactTopScorer       FactKey = "top_scorer"
	FactMostAssists     FactKey = "most_assists"
	FactBestGPm         FactKey = "best_gpm"
	FactBestAPm         FactKey = "best_apm"
	FactMostEfficient   FactKey = "most_efficient"
	FactMostAppearances FactKey = "most_appearances"
	FactBiggestGap      FactKey = "biggest_goal_assist_gap"
)

type Question struct {
	Category string  `json:"category"`
	Text     string  `json:"text"`
	Key      FactKey `json:"key"`
}

// Questions are offered to clients as one-tap prompts.
var Questions = []Question{
	{Category: "Player Rankings", Text: "Who is the top scorer?", Key: FactTopScorer},
	{Category: "Player Rankings", Text: "Who has the most assists?", Key: FactMostAssists},
	{Category: "Player Rankings", Text: "Who has the best goals per match ratio?", Key: FactBestGPm},
	{Category: "Player Rankings", Text: "Who has the best assists per match ratio?", Key: FactBestAPm},
	{Category: "Player Rankings", Text: "Who is the most efficient player?", Key: FactMostEfficient},
	{Category: "Player Rankings", Text: "Who has the most appearances?", Key: FactMostAppearances},
	{Category: "Player Intelligence", Text: "Who has the biggest gap between goals and assists?", Key: FactBiggestGap},
}

var questionLookup = func() map[string]FactKey {
	m := make(map[string]FactKey, len(Questions))
	for _, q := range Questions {
		m[strings.ToLower(q.Text)] = q.Key
	}
	return m
}()

// LookupQuestion matches a predefined question exactly, ignoring case and
// surrounding whitespace.
func LookupQuestion(input string) (FactKey, bool) {
	key, ok := questionLookup[strings.ToLower(strings.TrimSpace(input))]
	return key, ok
}

func factValue(p models.PlayerCard, key FactKey) float64 {
	switch key {
	case FactTopScorer:
		return float64(p.Goal)
	case FactMostAssists:
		return float64(p.Assists)
	case FactBestGPm:
		return p.GPm
	case FactBestAPm:
		return p.APm
	case FactMostEfficient:
		return p.GAPm
	case FactMostAppearances:
		return float64(p.Apps)
	case FactBiggestGap:
		return math.Abs(float64(p.Goal - p.Assists))
	}
	return 0
}

// ResolveFact answers key over players. The first card holding the maximum wins.
func ResolveFact(key FactKey, players []models.PlayerCard) string {
	if len(players) == 0 {
		return NoDataText
	}
	best := players[0]
	for _, p := range players[1:] {
		if factValue(p, key) > factValue(best, key) {
			best = p
		}
	}

	switch key {
	case FactTopScorer:
		return fmt.Sprintf("The top scorer is %s with %d goals.", best.Name, best.Goal)
	case FactMostAssists:
		return fmt.Sprintf("The most assists were provided by %s (%d).", best.Name, best.Assists)
	case FactBestGPm:
		return fmt.Sprintf("%s has the best goals per match ratio (%.3f).", best.Name, best.GPm)
	case FactBestAPm:
		return fmt.Sprintf("%s has the best assists per match ratio (%.3f).", best.Name, best.APm)
	case FactMostEfficient:
		return fmt.Sprintf("%s is the most efficient player (%.3f G+A per match).", best.Name, best.GAPm)
	case FactMostAppearances:
		return fmt.Sprintf("%s has the most appearances (%d).", best.Name, best.Apps)
	case FactBiggestGap:
		return fmt.Sprintf("%s has the biggest gap between goals and assists (%d).", best.Name, abs(best.Goal-best.Assists))
	}
	return "Unhandled predefined question."
}

// factKeywords map loose phrasings onto canned facts, checked in order.
var factKeywords = []struct {
	phrases []string
	key     FactKey
}{
	{[]string{"top scorer", "most goals"}, FactTopScorer},
	{[]string{"most assists", "top assist"}, FactMostAssists},
	{[]string{"most efficient"}, FactMostEfficient},
	{[]string{"goals per match"}, FactBestGPm},
	{[]string{"assists per match"}, FactBestAPm},
	{[]string{"most appearances"}, FactMostAppearances},
}

func matchFactKeyword(normalized string) (FactKey, bool) {
	for _, fk := range factKeywords {
		for _, phrase := range fk.phrases {
			if strings.Contains(normalized, phrase) {
				return fk.key, true
			}
		}
	}
	return "", false
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
