package cmd

import (
	"fmt"
	"os"
	"strings"

	"stash-recipes/core/report"
	"stash-recipes/core/serializer"
	"stash-recipes/core/storage"
	"stash-recipes/feature/recipes"
	"stash-recipes/feature/stash"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	matchFormat   string
	matchSnapshot string
	matchSave     bool
)

// matchCmd represents the match command
var matchCmd = &cobra.Command{
	Use:   "match [stash-tab.json ...]",
	Short: "Match stash tabs against the vendor recipes",
	Long: `Reads stash-tab API documents and partitions their items into complete vendor
recipe sets. Every file is one tab, in argument order. With --snapshot the pages of a
stored snapshot are read from the bucket instead.

The report is printed as tables by default, or as json/yaml with --format.`,
	Example: `  stash-recipes match tab0.json tab1.json
  stash-recipes match --snapshot 2026-10-01 --format yaml
  stash-recipes match tab0.json --save`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		// 1. Validate flags before touching anything
		format := serializer.FormatTable
		if matchFormat != "" {
			f, err := serializer.ParseFormat(matchFormat)
			if err != nil {
				return err
			}
			format = f
		}
		if matchSnapshot == "" && len(args) == 0 {
			return fmt.Errorf("no stash files given (pass files or --snapshot)")
		}
		if matchSnapshot != "" && len(args) > 0 {
			return fmt.Errorf("--snapshot cannot be combined with files")
		}

		// 2. Load configuration and logger
		cfg, logg, err := setup()
		if err != nil {
			return err
		}
		defer logg.Sync()

		// 3. Storage and history are only needed for stored snapshots and saved runs
		save := matchSave || cfg.Match.Persist
		var client storage.Client
		if matchSnapshot != "" || save {
			client, err = storage.NewClient(cfg.Storage)
			if err != nil {
				return fmt.Errorf("failed to create storage client: %w", err)
			}
		}
		var db *gorm.DB
		if save {
			db = connectHistory(cfg, logg)
		}

		matchCfg := cfg.Match
		matchCfg.Persist = save
		svc := recipes.NewService(client, cfg.Storage, db, matchCfg, logg)

		// 4. Match
		var rep *report.Report
		if matchSnapshot != "" {
			logg.Info("Matching stored snapshot", zap.String("snapshot", matchSnapshot))
			rep, err = svc.MatchSnapshot(ctx, matchSnapshot)
		} else {
			rep, err = svc.Evaluate(ctx, stash.NewFileSource(args...), strings.Join(args, ","))
		}
		if err != nil {
			return err
		}

		// 5. Output
		if format == serializer.FormatTable {
			renderReport(os.Stdout, rep)
			return nil
		}
		w, err := serializer.NewWriter(format, os.Stdout)
		if err != nil {
			return err
		}
		return w.Serialize(rep)
	},
}

func init() {
	matchCmd.Flags().StringVarP(&matchFormat, "format", "f", "", fmt.Sprintf("Output format (%s)", strings.Join(serializer.SupportedFormats(), ", ")))
	matchCmd.Flags().StringVarP(&matchSnapshot, "snapshot", "s", "", "Match a stored snapshot folder instead of local files")
	matchCmd.Flags().BoolVar(&matchSave, "save", false, "Store the report in the bucket and record the run")
	RootCmd.AddCommand(matchCmd)
}
