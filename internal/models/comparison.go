package models

import (
	"time"

	"gorm.io/datatypes"
)

// ComparisonSet is a saved side-by-side selection of cards.
type ComparisonSet struct {
	ID        string         `gorm:"primaryKey;size:36" json:"id"`
	Name      string         `json:"name"`
	PlayerIDs datatypes.JSON `json:"player_ids"`
	CreatedAt time.Time      `json:"created_at"`
}

func (ComparisonSet) TableName() string {
	return "comparison_sets"
}

// ChatLog records one resolved chat query.
type ChatLog struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Query     string         `gorm:"not null" json:"query"`
	Intent    string         `gorm:"index" json:"intent"`
	Source    string         `json:"source"` // "predefined", "local", "llm", "fallback"
	Response  string         `json:"response"`
	ClientIP  string         `json:"client_ip,omitempty"`
	Metadata  datatypes.JSON `json:"metadata,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
}

func (ChatLog) TableName() string {
	return "chat_logs"
}

// AllModels lists every table for migrations.
func AllModels() []interface{} {
	return []interface{}{
		&PlayerCard{},
		&StatOverride{},
		&ComparisonSet{},
		&ChatLog{},
	}
}
