// Package archetype hands out one descriptive label per top performer.
package archetype

import (
	"sort"

	"github.com/stitts-dev/efootball-stats/internal/models"
)

type Archetype struct {
	Key         string `json:"key"`
	Name        string `json:"name"`
	Emoji       string `json:"emoji"`
	Description string `json:"description"`
}

var (
	None           = Archetype{Key: "NONE"}
	GOAT           = Archetype{Key: "GOAT", Name: "GOAT", Emoji: "🐐", Description: "Highest goal contributions in the pool"}
	GoalMachine    = Archetype{Key: "GOAL_MACHINE", Name: "Goal Machine", Emoji: "🥇", Description: "Best goals per match"}
	TopScorer      = Archetype{Key: "TOP_SCORER", Name: "Top Scorer", Emoji: "⚽", Description: "Most total goals"}
	VeteranLegend  = Archetype{Key: "VETERAN_LEGEND", Name: "Veteran Legend", Emoji: "🏆", Description: "Most appearances"}
	Playmaker      = Archetype{Key: "PLAYMAKER", Name: "Playmaker", Emoji: "🎯", Description: "Most assists"}
	ClutchPlayer   = Archetype{Key: "CLUTCH_PLAYER", Name: "Clutch Player", Emoji: "🔥", Description: "Best G+A per match"}
	RisingStar     = Archetype{Key: "RISING_STAR", Name: "Rising Star", Emoji: "⭐", Description: "Best young player (under 25) by contributions"}
	CompleteLegend = Archetype{Key: "COMPLETE_LEGEND", Name: "Complete Legend", Emoji: "👑", Description: "100+ goals and 100+ assists"}
	ElitePerformer = Archetype{Key: "ELITE_PERFORMER", Name: "Elite Performer", Emoji: "💎", Description: "Top-15 contributor"}
)

// All lists the assignable archetypes in slot order.
var All = []Archetype{GOAT, GoalMachine, TopScorer, VeteranLegend, Playmaker, ClutchPlayer, RisingStar, CompleteLegend, ElitePerformer}

// PoolSize bounds the candidate pool to the top contributors.
const PoolSize = 15

// Assignments maps card ids to their archetype.
type Assignments map[uint]Archetype

// Of returns the archetype for id, or None when the card was outside the pool.
func (a Assignments) Of(id uint) Archetype {
	if arch, ok := a[id]; ok {
		return arch
	}
	return None
}

// Names flattens the assignments to id -> display name.
func (a Assignments) Names() map[uint]string {
	out := make(map[uint]string, len(a))
	for id, arch := range a {
		out[id] = arch.Name
	}
	return out
}

type slot struct {
	arch     Archetype
	eligible func(models.PlayerCard) bool
	score    func(models.PlayerCard) float64
}

func contribution(p models.PlayerCard) float64 { return float64(p.Goal + p.Assists) }

var slots = []slot{
	{arch: GOAT, score: contribution},
	{arch: GoalMachine, score: func(p models.PlayerCard) float64 { return p.GPm }},
	{arch: TopScorer, score: func(p models.PlayerCard) float64 { return float64(p.Goal) }},
	{arch: VeteranLegend, score: func(p models.PlayerCard) float64 { return float64(p.Apps) }},
	{arch: Playmaker, score: func(p models.PlayerCard) float64 { return float64(p.Assists) }},
	{arch: ClutchPlayer, score: func(p models.PlayerCard) float64 { return p.GAPm }},
	{
		arch:     RisingStar,
		eligible: func(p models.PlayerCard) bool { return p.Age < 25 },
		score:    contribution,
	},
	{
		arch:     CompleteLegend,
		eligible: func(p models.PlayerCard) bool { return p.Goal >= 100 && p.Assists >= 100 },
		score:    contribution,
	},
}

// AssignDistinct gives each of the top PoolSize contributors exactly one
// archetype. Slots are filled greedily in a fixed order; each winner leaves the
// pool before the next slot is scored, so results depend on slot order.
// Cards outside the pool are absent from the result.
func AssignDistinct(players []models.PlayerCard) Assignments {
	pool := make([]models.PlayerCard, len(players))
	copy(pool, players)
	sort.SliceStable(pool, func(i, j int) bool {
		return contribution(pool[i]) > contribution(pool[j])
	})
	if len(pool) > PoolSize {
		pool = pool[:PoolSize]
	}

	assigned := make(Assignments, len(pool))
	for _, s := range slots {
		best := -1
		for i, p := range pool {
			if _, taken := assigned[p.ID]; taken {
				continue
			}
			if s.eligible != nil && !s.eligible(p) {
				continue
			}
			if best < 0 || s.score(p) > s.score(pool[best]) {
				best = i
			}
		}
		if best >= 0 {
			assigned[pool[best].ID] = s.arch
		}
	}

	for _, p := range pool {
		if _, taken := assigned[p.ID]; !taken {
			assigned[p.ID] = ElitePerformer
		}
	}
	return assigned
}
