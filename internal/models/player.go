package models

import (
	"time"

	"gorm.io/gorm"

	"github.com/stitts-dev/efootball-stats/internal/metrics"
)

// PlayerCard is one card of a player. The same person may own many cards.
// Derived fields are never persisted; they are rebuilt from the raw counters.
type PlayerCard struct {
	ID       uint   `gorm:"primaryKey;autoIncrement:false" json:"id" yaml:"id"`
	Name     string `gorm:"not null;index" json:"name" yaml:"name"`
	Team     string `json:"team" yaml:"team"`
	Position string `gorm:"index" json:"position" yaml:"position"`
	CardType string `json:"cardType" yaml:"cardType"`
	Age      int    `json:"age" yaml:"age"`

	Apps    int `gorm:"not null;default:0" json:"apps" yaml:"apps"`
	Goal    int `gorm:"not null;default:0" json:"goal" yaml:"goal"`
	Assists int `gorm:"not null;default:0" json:"assists" yaml:"assists"`

	GPlusA int     `gorm:"-" json:"gPlusA" yaml:"-"`
	GPm    float64 `gorm:"-" json:"gPm" yaml:"-"`
	APm    float64 `gorm:"-" json:"aPm" yaml:"-"`
	GAPm   float64 `gorm:"-" json:"gAPm" yaml:"-"`

	Source    string    `gorm:"default:seed" json:"source,omitempty" yaml:"-"` // "seed", "import", "manual"
	CreatedAt time.Time `json:"-" yaml:"-"`
	UpdatedAt time.Time `json:"-" yaml:"-"`
}

func (PlayerCard) TableName() string {
	return "player_cards"
}

// Recompute refreshes the derived fields from Apps, Goal and Assists.
func (p *PlayerCard) Recompute() {
	d := metrics.Compute(p.Apps, p.Goal, p.Assists)
	p.GPlusA = d.GPlusA
	p.GPm = d.GPm
	p.APm = d.APm
	p.GAPm = d.GAPm
}

// ApplyStats replaces the raw counters and recomputes in one step.
func (p *PlayerCard) ApplyStats(apps, goal, assists int) {
	p.Apps = apps
	p.Goal = goal
	p.Assists = assists
	p.Recompute()
}

func (p *PlayerCard) AfterFind(tx *gorm.DB) error {
	p.Recompute()
	return nil
}

// NewPlayerCard builds a card with derived fields already populated.
func NewPlayerCard(id uint, name, team, position, cardType string, age, apps, goal, assists int) PlayerCard {
	p := PlayerCard{
		ID:       id,
		Name:     name,
		Team:     team,
		Position: position,
		CardType: cardType,
		Age:      age,
	}
	p.ApplyStats(apps, goal, assists)
	return p
}

// RecomputeAll refreshes every card in place.
func RecomputeAll(cards []PlayerCard) {
	for i := range cards {
		cards[i].Recompute()
	}
}

// StatOverride is a sparse patch over a card's raw counters.
type StatOverride struct {
	PlayerID  uint      `gorm:"primaryKey;autoIncrement:false" json:"player_id"`
	Apps      int       `json:"apps"`
	Goal      int       `json:"goal"`
	Assists   int       `json:"assists"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (StatOverride) TableName() string {
	return "stat_overrides"
}

// Apply merges the override into card and recomputes derived metrics.
func (o StatOverride) Apply(card *PlayerCard) {
	card.ApplyStats(o.Apps, o.Goal, o.Assists)
}
