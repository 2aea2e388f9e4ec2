// Package cli implements the nbagame command line interface.
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/minac/nba-most-engaging-game-of-the-week/internal/app/recommender"
)

const commandTimeout = 2 * time.Minute

var (
	configPath string
	daysFlag   int
	teamFlag   string
	explain    bool
)

var rootCmd = &cobra.Command{
	Use:   "nbagame",
	Short: "Find the most engaging recent NBA game",
	Long: `nbagame scores recently completed NBA games by how entertaining they
likely were (close finishes, star power, high scoring, top-tier matchups)
and tells you which one is worth watching, without spoiling the result
beyond the final score.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(configPath)
		if err != nil {
			return err
		}
		defer a.close()

		ctx, cancel := context.WithTimeout(cmd.Context(), commandTimeout)
		defer cancel()

		best, err := a.svc.BestGame(ctx, daysFlag, a.favoriteTeam(teamFlag))
		if err != nil {
			return friendlyError(err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), renderBestGame(best, explain))
		return nil
	},
}

// Execute runs the CLI and exits non-zero on failure.
func Execute() {
	rootCmd.SetContext(context.Background())
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to config file (default config.yaml)")
	rootCmd.PersistentFlags().IntVarP(&daysFlag, "days", "d", 0, "days to look back, 1-30 (default 7)")
	rootCmd.PersistentFlags().StringVarP(&teamFlag, "team", "t", "", "favorite team abbreviation, e.g. LAL")
	rootCmd.PersistentFlags().BoolVarP(&explain, "explain", "e", false, "show the score breakdown")

	rootCmd.AddCommand(rankCmd, teamsCmd, starsCmd, cacheCmd, syncCmd)
}

// friendlyError rewrites service errors for terminal output.
func friendlyError(err error) error {
	var appErr *recommender.Error
	if errors.As(err, &appErr) {
		switch appErr.Code {
		case recommender.CodeNoGames:
			return errors.New("no completed games found in that window; try --days with a larger value")
		case recommender.CodeValidation:
			return errors.New(appErr.Message)
		case recommender.CodeUpstream:
			return fmt.Errorf("the NBA data service is unavailable right now: %v", appErr.Unwrap())
		}
	}
	return err
}

var rankCmd = &cobra.Command{
	Use:   "rank",
	Short: "Rank every completed game in the window by engagement",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(configPath)
		if err != nil {
			return err
		}
		defer a.close()

		ctx, cancel := context.WithTimeout(cmd.Context(), commandTimeout)
		defer cancel()

		ranked, err := a.svc.RankedGames(ctx, daysFlag, a.favoriteTeam(teamFlag))
		if err != nil {
			return friendlyError(err)
		}
		fmt.Fprint(cmd.OutOrStdout(), renderRanking(ranked, explain))
		return nil
	},
}

var teamsCmd = &cobra.Command{
	Use:   "teams",
	Short: "Show the top-tier teams used by the scoring formula",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(configPath)
		if err != nil {
			return err
		}
		defer a.close()

		ctx, cancel := context.WithTimeout(cmd.Context(), commandTimeout)
		defer cancel()

		teams := a.catalog.TopTierTeams(ctx)
		fmt.Fprint(cmd.OutOrStdout(), renderList("Top teams by record", teams))
		return nil
	},
}

var starsCmd = &cobra.Command{
	Use:   "stars",
	Short: "Show the star players used by the scoring formula",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(configPath)
		if err != nil {
			return err
		}
		defer a.close()

		ctx, cancel := context.WithTimeout(cmd.Context(), commandTimeout)
		defer cancel()

		stars := a.catalog.StarPlayers(ctx)
		fmt.Fprint(cmd.OutOrStdout(), renderList("Current star players", stars))
		return nil
	},
}
