package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/stitts-dev/efootball-stats/internal/models"
	"github.com/stitts-dev/efootball-stats/internal/services"
	"github.com/stitts-dev/efootball-stats/pkg/config"
	"github.com/stitts-dev/efootball-stats/pkg/database"
)

func main() {
	if len(os.Args) < 2 {
		log.Fatal("Usage: migrate [up|down|seed]")
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}

	db, err := database.NewConnection(cfg.DatabaseDriver, cfg.DatabaseURL, cfg.IsDevelopment())
	if err != nil {
		logrus.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	switch command := os.Args[1]; command {
	case "up":
		if err := runMigrations(db); err != nil {
			logrus.Fatalf("Failed to run migrations: %v", err)
		}
		logrus.Info("Migrations completed successfully")

	case "down":
		if err := dropTables(db); err != nil {
			logrus.Fatalf("Failed to drop tables: %v", err)
		}
		logrus.Info("Tables dropped successfully")

	case "seed":
		if err := runMigrations(db); err != nil {
			logrus.Fatalf("Failed to run migrations: %v", err)
		}
		n, err := seedData(db, cfg.SeedFile)
		if err != nil {
			logrus.Fatalf("Failed to seed data: %v", err)
		}
		logrus.WithField("count", n).Info("Data seeded successfully")

	default:
		log.Fatalf("Unknown command: %s", command)
	}
}

func runMigrations(db *database.DB) error {
	if err := db.AutoMigrate(models.AllModels()...); err != nil {
		return fmt.Errorf("failed to migrate models: %w", err)
	}

	indexes := []string{
		"CREATE INDEX IF NOT EXISTS idx_player_cards_team ON player_cards(team)",
		"CREATE INDEX IF NOT EXISTS idx_player_cards_card_type ON player_cards(card_type)",
		"CREATE INDEX IF NOT EXISTS idx_chat_logs_created_at ON chat_logs(created_at)",
	}
	for _, index := range indexes {
		if err := db.Exec(index).Error; err != nil {
			return fmt.Errorf("failed to create index: %w", err)
		}
	}
	return nil
}

func dropTables(db *database.DB) error {
	// Reverse dependency order: overrides reference cards.
	tables := []string{
		"chat_logs",
		"comparison_sets",
		"stat_overrides",
		"player_cards",
	}
	for _, table := range tables {
		if err := db.Exec(fmt.Sprintf("DROP TABLE IF EXISTS %s", table)).Error; err != nil {
			return fmt.Errorf("failed to drop table %s: %w", table, err)
		}
	}
	return nil
}

// seedData loads the seed file (or the embedded dataset) into an empty table.
func seedData(db *database.DB, path string) (int, error) {
	cards, err := services.LoadSeed(path)
	if err != nil {
		return 0, err
	}
	store := services.NewPlayerStore(db, nil, nil)
	return store.Seed(context.Background(), cards)
}
