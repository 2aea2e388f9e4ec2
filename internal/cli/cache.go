package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var clearExpiredOnly bool

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Inspect or clear the scoreboard cache",
}

var cacheStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show cache entry count and size",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(configPath)
		if err != nil {
			return err
		}
		defer a.close()

		if a.cache == nil {
			return errors.New("file cache is disabled in the configuration")
		}
		stats, err := a.cache.Stats()
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\nentries: %d\nsize:    %.1f KiB\ndir:     %s\n",
			titleStyle.Render("Scoreboard cache"),
			stats.Entries, float64(stats.SizeBytes)/1024, stats.Dir,
		)
		return nil
	},
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove cached scoreboards",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(configPath)
		if err != nil {
			return err
		}
		defer a.close()

		if a.cache == nil {
			return errors.New("file cache is disabled in the configuration")
		}

		var removed int
		if clearExpiredOnly {
			removed, err = a.cache.ClearExpired()
		} else {
			removed, err = a.cache.ClearAll()
		}
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "removed %d cached scoreboard(s)\n", removed)
		return nil
	},
}

func init() {
	cacheClearCmd.Flags().BoolVar(&clearExpiredOnly, "expired", false, "only remove entries past their TTL")
	cacheCmd.AddCommand(cacheStatsCmd, cacheClearCmd)
}
