package chat

import (
	"strings"

	"github.com/stitts-dev/efootball-stats/internal/ranking"
)

var positionSynonyms = []struct {
	position string
	synonyms []string
}{
	{"CF", []string{"cf", "striker", "center forward"}},
	{"SS", []string{"ss", "second striker"}},
	{"AMF", []string{"amf", "attacking midfielder", "creator", "playmaker"}},
	{"CMF", []string{"cmf", "central midfielder"}},
	{"DMF", []string{"dmf", "defensive midfielder"}},
	{"LWF", []string{"lwf", "left winger", "winger"}},
	{"RWF", []string{"rwf", "right winger", "winger"}},
	{"CB", []string{"cb", "center back", "centre back"}},
	{"LB", []string{"lb", "left back"}},
	{"RB", []string{"rb", "right back"}},
	{"GK", []string{"gk", "goalkeeper", "keeper"}},
}

var groupWords = []string{"attacker", "midfielder", "defender"}

// containsTerm matches a phrase on word boundaries, allowing a plural "s" on
// its last word ("strikers", "cfs").
func containsTerm(in []string, phrase string) bool {
	want := strings.Fields(phrase)
	if indexOf(in, want) >= 0 {
		return true
	}
	plural := append(append([]string{}, want[:len(want)-1]...), want[len(want)-1]+"s")
	return indexOf(in, plural) >= 0
}

// ExtractPosition returns the first position whose synonym appears in input.
// Synonyms are tried in table order, so "winger" resolves to LWF.
func ExtractPosition(input string) (string, bool) {
	in := words(Fold(input))
	for _, ps := range positionSynonyms {
		for _, syn := range ps.synonyms {
			if containsTerm(in, syn) {
				return ps.position, true
			}
		}
	}
	return "", false
}

// ExtractGroup detects "attacker", "midfielder" or "defender".
func ExtractGroup(input string) (string, bool) {
	in := words(Fold(input))
	for _, g := range groupWords {
		if containsTerm(in, g) {
			return g, true
		}
	}
	return "", false
}

// ExtractMetric maps keywords onto a ranking metric, defaulting to goals.
func ExtractMetric(normalized string) ranking.Metric {
	switch {
	case strings.Contains(normalized, "assist"):
		return ranking.MetricAssists
	case strings.Contains(normalized, "efficient"):
		return ranking.MetricGAPm
	default:
		return ranking.MetricGoals
	}
}
