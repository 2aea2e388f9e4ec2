package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/minac/nba-most-engaging-game-of-the-week/internal/syncer"
)

var syncStatusOnly bool

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Pull standings, star players, and recent games into the local database",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(configPath)
		if err != nil {
			return err
		}
		defer a.close()

		if a.syncer == nil {
			return errors.New("the database is disabled in the configuration")
		}

		if syncStatusOnly {
			printSyncStatus(cmd, a.syncer.Status())
			return nil
		}
		if daysFlag > 0 {
			a.syncer = syncer.New(a.source, a.store, daysFlag, a.logger, nil)
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), commandTimeout)
		defer cancel()

		result, err := a.syncer.Run(ctx)
		if err != nil {
			return fmt.Errorf("sync failed: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\ngames:        %d\nstandings:    %d\nstar players: %d\ntook:         %s\n",
			titleStyle.Render("Sync complete"),
			result.Games, result.Standings, result.StarPlayers,
			result.Duration.Round(time.Millisecond),
		)
		return nil
	},
}

func printSyncStatus(cmd *cobra.Command, status syncer.Status) {
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, titleStyle.Render("Sync status"))
	fmt.Fprintf(out, "games:        %d\nteams:        %d\nstandings:    %d\nplayer rows:  %d\n",
		status.Stats.Games, status.Stats.Teams, status.Stats.Standings, status.Stats.Players)

	if len(status.LastSync) == 0 {
		fmt.Fprintln(out, dimStyle.Render("never synced"))
		return
	}
	for _, syncType := range []string{syncer.SyncGames, syncer.SyncStandings, syncer.SyncPlayers} {
		if at, ok := status.LastSync[syncType]; ok {
			fmt.Fprintf(out, "%-13s %s\n", syncType+":", at.Local().Format(time.RFC1123))
		}
	}
	if status.DataAge > 0 {
		fmt.Fprintln(out, dimStyle.Render(fmt.Sprintf("data age: %s", status.DataAge.Round(time.Minute))))
	}
	if status.LastError != "" {
		fmt.Fprintln(out, dimStyle.Render("last error: "+status.LastError))
	}
}

func init() {
	syncCmd.Flags().BoolVarP(&syncStatusOnly, "status", "s", false, "show sync status without syncing")
}
