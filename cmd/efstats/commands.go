package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/stitts-dev/efootball-stats/internal/analytics"
	"github.com/stitts-dev/efootball-stats/internal/archetype"
	"github.com/stitts-dev/efootball-stats/internal/chat"
	"github.com/stitts-dev/efootball-stats/internal/ranking"
	"github.com/stitts-dev/efootball-stats/internal/services"
	"github.com/stitts-dev/efootball-stats/internal/similarity"
)

func newLeaderboardCmd(a *app) *cobra.Command {
	var (
		position string
		group    string
		limit    int
		asCSV    bool
	)
	cmd := &cobra.Command{
		Use:   "leaderboard <metric>",
		Short: "Rank cards by a metric (goal, assists, gAPm, rating, eis, ...)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			metric, err := ranking.ParseMetric(args[0])
			if err != nil {
				return err
			}
			players, err := a.players(cmd.Context())
			if err != nil {
				return err
			}
			if limit <= 0 {
				limit = a.cfg.LeaderboardTopN
			}

			var filters []ranking.Filter
			if position != "" {
				filters = append(filters, ranking.ByPosition(position))
			}
			if group != "" {
				if len(ranking.PositionsIn(group)) == 0 {
					return fmt.Errorf("unknown position group %q", group)
				}
				filters = append(filters, ranking.InGroup(group))
			}
			entries := ranking.Rank(players, metric, limit, filters...)

			out := cmd.OutOrStdout()
			if asCSV {
				return ranking.ExportCSV(out, entries, metric)
			}

			rows := make([][]string, 0, len(entries))
			for _, e := range entries {
				rows = append(rows, []string{
					strconv.Itoa(e.Rank),
					e.Player.Name,
					e.Player.Team,
					e.Player.Position,
					e.Player.CardType,
					metric.Format(e.Value),
				})
			}
			fmt.Fprintln(out, titleStyle.Render(fmt.Sprintf("Top %d by %s", len(entries), metric)))
			fmt.Fprintln(out, renderTable([]string{"#", "Name", "Team", "Pos", "Card", string(metric)}, rows))
			return nil
		},
	}
	cmd.Flags().StringVarP(&position, "position", "p", "", "Only this position (CF, AMF, ...)")
	cmd.Flags().StringVarP(&group, "group", "g", "", "Only this position group (attacker|midfielder|defender)")
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "Number of rows (defaults to LEADERBOARD_TOP_N)")
	cmd.Flags().BoolVar(&asCSV, "csv", false, "Write CSV instead of a table")
	return cmd
}

func newAskCmd(a *app) *cobra.Command {
	var verbose bool
	cmd := &cobra.Command{
		Use:   "ask <question...>",
		Short: "Ask the stats assistant a question",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			players, err := a.players(cmd.Context())
			if err != nil {
				return err
			}

			modelCfg := chat.DefaultModelConfig()
			if a.cfg.LLMTemperature > 0 {
				modelCfg.Temperature = a.cfg.LLMTemperature
			}
			if a.cfg.LLMMaxTokens > 0 {
				modelCfg.MaxTokens = a.cfg.LLMMaxTokens
			}
			resolver := chat.NewResolver(
				services.NewGeminiClient(a.cfg, a.logger),
				modelCfg,
				chat.WithTimeout(a.cfg.ExternalAPITimeout),
				chat.WithLogger(a.logger),
			)

			reply := resolver.Resolve(cmd.Context(), strings.Join(args, " "), players)
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, reply.Text)
			if verbose {
				fmt.Fprintln(out, dimStyle.Render(fmt.Sprintf("intent=%s source=%s", reply.Intent, reply.Source)))
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Show how the answer was produced")
	return cmd
}

func newSimilarCmd(a *app) *cobra.Command {
	var (
		limit  int
		scored bool
	)
	cmd := &cobra.Command{
		Use:   "similar <id>",
		Short: "Find the cards closest to a card",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseUint(args[0], 10, 32)
			if err != nil {
				return fmt.Errorf("invalid player id %q", args[0])
			}
			players, err := a.players(cmd.Context())
			if err != nil {
				return err
			}
			target, err := findCard(players, uint(id))
			if err != nil {
				return err
			}

			var matches []similarity.Match
			valueHeader := "Distance"
			if scored {
				matches = similarity.FindSimilarByScore(target, players, limit)
				valueHeader = "Score"
			} else {
				matches = similarity.FindSimilar(target, players, limit)
			}

			rows := make([][]string, 0, len(matches))
			for _, m := range matches {
				rows = append(rows, []string{
					strconv.FormatUint(uint64(m.Player.ID), 10),
					m.Player.Name,
					m.Player.Position,
					fmt.Sprintf("%.3f", m.Player.GAPm),
					fmt.Sprintf("%.3f", m.Value),
				})
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, titleStyle.Render("Similar to "+target.Name))
			fmt.Fprintln(out, renderTable([]string{"ID", "Name", "Pos", "gAPm", valueHeader}, rows))
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "Number of matches")
	cmd.Flags().BoolVar(&scored, "scored", false, "Rank by agreement score instead of distance")
	return cmd
}

func newArchetypesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "archetypes",
		Short: "Show which card holds each archetype",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			players, err := a.players(cmd.Context())
			if err != nil {
				return err
			}
			assigned := archetype.AssignDistinct(players)

			var rows [][]string
			for _, arch := range archetype.All {
				for _, p := range players {
					if assigned.Of(p.ID).Key != arch.Key {
						continue
					}
					rows = append(rows, []string{arch.Emoji + " " + arch.Name, p.Name, p.Team, strconv.Itoa(p.Goal + p.Assists)})
				}
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"Archetype", "Player", "Team", "G+A"}, rows))
			return nil
		},
	}
}

func newBadgesCmd(a *app) *cobra.Command {
	var top int
	cmd := &cobra.Command{
		Use:   "badges",
		Short: "List leaderboard badges and each card's best badge",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			players, err := a.players(cmd.Context())
			if err != nil {
				return err
			}
			if top <= 0 {
				top = a.cfg.LeaderboardTopN
			}
			badges := ranking.BuildBadges(players, top)

			var rows [][]string
			for _, p := range players {
				own := badges[p.ID]
				best := ranking.SelectBestBadge(own)
				if best == nil {
					continue
				}
				rows = append(rows, []string{
					p.Name,
					accentStyle.Render(fmt.Sprintf("#%d %s", best.Rank, best.Label)),
					strconv.Itoa(len(own)),
				})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"Player", "Best badge", "Badges"}, rows))
			return nil
		},
	}
	cmd.Flags().IntVar(&top, "top", 0, "Badge cut-off rank (defaults to LEADERBOARD_TOP_N)")
	return cmd
}

func newCareerCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "career [name...]",
		Short: "Sum every card of one player, or list all careers",
		RunE: func(cmd *cobra.Command, args []string) error {
			players, err := a.players(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			if len(args) == 0 {
				rows := [][]string{}
				for _, s := range analytics.Careers(players) {
					rows = append(rows, []string{
						s.Name,
						strconv.Itoa(s.CardsCount),
						strconv.Itoa(s.TotalGoals),
						strconv.Itoa(s.TotalAssists),
						fmt.Sprintf("%.3f", s.GAPm),
					})
				}
				fmt.Fprintln(out, renderTable([]string{"Player", "Cards", "Goals", "Assists", "gAPm"}, rows))
				return nil
			}

			name := strings.Join(args, " ")
			cards := analytics.CardsNamed(players, name)
			if len(cards) == 0 {
				return fmt.Errorf("no cards named %q", name)
			}
			summary := analytics.Career(cards)
			best, _ := analytics.BestCard(cards)

			fmt.Fprintln(out, titleStyle.Render(summary.Name))
			fmt.Fprintln(out, renderTable(
				[]string{"Cards", "Apps", "Goals", "Assists", "gPm", "aPm", "gAPm", "Reliability"},
				[][]string{{
					strconv.Itoa(summary.CardsCount),
					strconv.Itoa(summary.TotalApps),
					strconv.Itoa(summary.TotalGoals),
					strconv.Itoa(summary.TotalAssists),
					fmt.Sprintf("%.3f", summary.GPm),
					fmt.Sprintf("%.3f", summary.APm),
					fmt.Sprintf("%.3f", summary.GAPm),
					fmt.Sprintf("%.2f", summary.Reliability),
				}},
			))
			fmt.Fprintln(out, dimStyle.Render(fmt.Sprintf("Best card: %s %s (%.3f G+A per match)", best.Team, best.CardType, best.GAPm)))
			return nil
		},
	}
}
