package ranking

import (
	"strings"

	"github.com/stitts-dev/efootball-stats/internal/models"
)

// Filter keeps a card when it returns true.
type Filter func(models.PlayerCard) bool

var positionGroups = map[string][]string{
	"attacker":   {"CF", "SS", "LWF", "RWF"},
	"midfielder": {"AMF", "CMF", "DMF"},
	"defender":   {"CB", "LB", "RB"},
}

// PositionsIn returns the positions of a group ("attacker", "midfielder", "defender").
func PositionsIn(group string) []string {
	return positionGroups[strings.ToLower(strings.TrimSuffix(strings.TrimSpace(group), "s"))]
}

func ByPosition(position string) Filter {
	return func(p models.PlayerCard) bool {
		return strings.EqualFold(p.Position, position)
	}
}

func InGroup(group string) Filter {
	positions := PositionsIn(group)
	return func(p models.PlayerCard) bool {
		for _, pos := range positions {
			if strings.EqualFold(p.Position, pos) {
				return true
			}
		}
		return false
	}
}

func ByTeam(team string) Filter {
	return func(p models.PlayerCard) bool {
		return strings.EqualFold(p.Team, team)
	}
}

func ByCardType(cardType string) Filter {
	return func(p models.PlayerCard) bool {
		return strings.EqualFold(p.CardType, cardType)
	}
}

// AgeBand classifies an age as young (<=25), prime (26-32) or veteran.
func AgeBand(age int) string {
	switch {
	case age <= 25:
		return "young"
	case age <= 32:
		return "prime"
	default:
		return "veteran"
	}
}

func ByAgeBand(band string) Filter {
	band = strings.ToLower(band)
	return func(p models.PlayerCard) bool {
		return AgeBand(p.Age) == band
	}
}

// ByArchetype keeps cards whose id maps to label in assigned.
func ByArchetype(assigned map[uint]string, label string) Filter {
	return func(p models.PlayerCard) bool {
		return strings.EqualFold(assigned[p.ID], label)
	}
}

// NameContains is a plain case-insensitive substring search.
func NameContains(q string) Filter {
	q = strings.ToLower(q)
	return func(p models.PlayerCard) bool {
		return strings.Contains(strings.ToLower(p.Name), q)
	}
}

// Apply returns the cards that pass every filter, preserving order.
func Apply(players []models.PlayerCard, filters ...Filter) []models.PlayerCard {
	out := make([]models.PlayerCard, 0, len(players))
outer:
	for _, p := range players {
		for _, f := range filters {
			if f != nil && !f(p) {
				continue outer
			}
		}
		out = append(out, p)
	}
	return out
}
