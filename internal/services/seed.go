package services

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/stitts-dev/efootball-stats/data"
	"github.com/stitts-dev/efootball-stats/internal/models"
)

// ParseSeed decodes a YAML card list. Ids must be positive and unique and
// counters non-negative; derived metrics are always recomputed.
func ParseSeed(raw []byte) ([]models.PlayerCard, error) {
	var cards []models.PlayerCard
	if err := yaml.Unmarshal(raw, &cards); err != nil {
		return nil, fmt.Errorf("failed to parse seed data: %w", err)
	}

	seen := make(map[uint]bool, len(cards))
	for i := range cards {
		c := &cards[i]
		switch {
		case c.ID == 0:
			return nil, fmt.Errorf("seed row %d: missing id", i+1)
		case seen[c.ID]:
			return nil, fmt.Errorf("seed row %d: duplicate id %d", i+1, c.ID)
		case c.Name == "":
			return nil, fmt.Errorf("seed row %d: missing name", i+1)
		case c.Apps < 0 || c.Goal < 0 || c.Assists < 0:
			return nil, fmt.Errorf("seed row %d: negative counters", i+1)
		}
		seen[c.ID] = true
		c.Source = "seed"
	}
	models.RecomputeAll(cards)
	return cards, nil
}

// LoadSeed reads the dataset at path, or the embedded one when path is empty.
func LoadSeed(path string) ([]models.PlayerCard, error) {
	raw := data.Players
	if path != "" {
		var err error
		if raw, err = os.ReadFile(path); err != nil {
			return nil, fmt.Errorf("failed to read seed file: %w", err)
		}
	}
	return ParseSeed(raw)
}
