package chat

import (
	"regexp"
	"strings"
)

type Intent string

const (
	IntentFact    Intent = "fact"
	IntentRank    Intent = "rank"
	IntentCompare Intent = "compare"
	IntentExplain Intent = "explain"
	IntentSimilar Intent = "similar"
)

type intentRule struct {
	intent Intent
	match  func(normalized string) bool
}

var (
	topNPattern    = regexp.MustCompile(`\btop\s+\d+\b`)
	rankPattern    = regexp.MustCompile(`\brank\w*`)
	similarPattern = regexp.MustCompile(`\b(similar to|players like|plays like)\b`)
)

// intentRules are evaluated top to bottom; the first match wins and anything
// unmatched is a fact query.
var intentRules = []intentRule{
	{IntentCompare, func(s string) bool {
		return strings.Contains(s, "compare") || strings.Contains(s, " vs ")
	}},
	{IntentRank, func(s string) bool {
		return topNPattern.MatchString(s) || rankPattern.MatchString(s)
	}},
	{IntentExplain, func(s string) bool {
		return strings.HasPrefix(s, "why") || strings.Contains(s, "better")
	}},
	{IntentSimilar, func(s string) bool {
		return similarPattern.MatchString(s)
	}},
}

// Classify expects lower-cased, trimmed input.
func Classify(normalized string) Intent {
	for _, r := range intentRules {
		if r.match(normalized) {
			return r.intent
		}
	}
	return IntentFact
}

// Normalize lower-cases and trims a raw chat input.
func Normalize(input string) string {
	return strings.ToLower(strings.TrimSpace(input))
}
