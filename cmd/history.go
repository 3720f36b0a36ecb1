package cmd

import (
	"fmt"
	"os"
	"time"

	"stash-recipes/core/database"
	"stash-recipes/core/storage"
	"stash-recipes/feature/recipes"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	historyLimit int
	historyPrune time.Duration
)

// historyCmd represents the history command
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show or prune recorded match runs",
	Long: `Lists the runs recorded by 'match --save' and the HTTP service, newest first.
With --prune, runs older than the given age are deleted together with the stored
reports no newer run references.`,
	Example: `  stash-recipes history --limit 5
  stash-recipes history --prune 720h`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		cfg, logg, err := setup()
		if err != nil {
			return err
		}
		defer logg.Sync()

		// History is the whole point here, so the database is required
		db, err := database.Connect(cfg.Database)
		if err != nil {
			return fmt.Errorf("database connection required: %w", err)
		}
		if err := recipes.Migrate(db); err != nil {
			return fmt.Errorf("failed to migrate history table: %w", err)
		}

		var client storage.Client
		if historyPrune > 0 {
			client, err = storage.NewClient(cfg.Storage)
			if err != nil {
				return fmt.Errorf("failed to create storage client: %w", err)
			}
		}
		svc := recipes.NewService(client, cfg.Storage, db, cfg.Match, logg)

		if historyPrune > 0 {
			n, err := svc.Prune(ctx, time.Now().UTC().Add(-historyPrune))
			if err != nil {
				return err
			}
			logg.Info("History pruned", zap.Int("runs", n), zap.Duration("older_than", historyPrune))
			return nil
		}

		runs, err := svc.History(ctx, historyLimit)
		if err != nil {
			return err
		}
		renderHistory(os.Stdout, runs)
		return nil
	},
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "Maximum number of runs to show")
	historyCmd.Flags().DurationVar(&historyPrune, "prune", 0, "Delete runs older than this age (e.g. 720h)")
	RootCmd.AddCommand(historyCmd)
}
