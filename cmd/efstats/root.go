package main

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/stitts-dev/efootball-stats/internal/models"
	"github.com/stitts-dev/efootball-stats/internal/services"
	"github.com/stitts-dev/efootball-stats/pkg/config"
	"github.com/stitts-dev/efootball-stats/pkg/database"
	"github.com/stitts-dev/efootball-stats/pkg/logger"
)

// app carries what every subcommand needs once flags are parsed.
type app struct {
	v      *viper.Viper
	cfg    *config.Config
	logger *logrus.Logger
	useDB  bool
}

func newRootCmd() *cobra.Command {
	a := &app{v: viper.New()}

	root := &cobra.Command{
		Use:   "efstats",
		Short: "eFootball player card stats from the terminal",
		Long: `efstats ranks, compares and explains eFootball player cards.

By default it reads the embedded dataset. Use --seed for another YAML file or
--database-url to read the cards (with stat overrides) from the API database.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init(cmd)
		},
	}

	flags := root.PersistentFlags()
	flags.String("config", "", "Config file in .env format")
	flags.String("seed", "", "Seed YAML file (defaults to the embedded dataset)")
	flags.String("database-url", "", "Read cards from this database instead of a seed")
	flags.String("database-driver", "", "Database driver (postgres|sqlite)")
	flags.String("log-level", "warn", "Log level for diagnostics on stderr")

	_ = a.v.BindPFlag("SEED_FILE", flags.Lookup("seed"))
	_ = a.v.BindPFlag("DATABASE_URL", flags.Lookup("database-url"))
	_ = a.v.BindPFlag("DATABASE_DRIVER", flags.Lookup("database-driver"))

	root.AddCommand(
		newLeaderboardCmd(a),
		newAskCmd(a),
		newSimilarCmd(a),
		newArchetypesCmd(a),
		newBadgesCmd(a),
		newCareerCmd(a),
	)
	return root
}

func (a *app) init(cmd *cobra.Command) error {
	if path, _ := cmd.Flags().GetString("config"); path != "" {
		a.v.SetConfigFile(path)
	}
	cfg, err := config.Load(a.v)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.useDB = cmd.Flags().Changed("database-url")

	level, _ := cmd.Flags().GetString("log-level")
	a.logger = logger.InitLogger(level, true)
	a.logger.SetOutput(cmd.ErrOrStderr())
	return nil
}

// players loads the card snapshot from the database or the seed.
func (a *app) players(ctx context.Context) ([]models.PlayerCard, error) {
	if !a.useDB {
		return services.LoadSeed(a.cfg.SeedFile)
	}
	db, err := database.NewConnection(a.cfg.DatabaseDriver, a.cfg.DatabaseURL, false)
	if err != nil {
		return nil, err
	}
	defer db.Close()
	return services.NewPlayerStore(db, nil, nil).Snapshot(ctx)
}

func findCard(players []models.PlayerCard, id uint) (models.PlayerCard, error) {
	for _, p := range players {
		if p.ID == id {
			return p, nil
		}
	}
	return models.PlayerCard{}, fmt.Errorf("no player with id %d", id)
}
