package cmd

import (
	"fmt"

	"github.com/dugoutlab/trackstat/core"
	"github.com/dugoutlab/trackstat/internal/contract"
	"github.com/spf13/cobra"
)

// uploadCmd processes a directory of TrackMan CSV exports into the
// season tables.
var uploadCmd = &cobra.Command{
	Use:   "upload",
	Short: "Process TrackMan CSV exports into the season tables",
	Long: `Read every CSV export in the data directory, aggregate batting,
pitching and strike-zone statistics per player, and merge them into the
persisted season tables. Files whose game date was already processed
merge as a no-op, so re-running over the same directory is safe.

Examples:
  # Process a directory of game exports
  trackstat upload --data-dir ./exports

  # Process with an expected-stats grid
  trackstat upload --data-dir ./exports --xba-grid xba.csv`,
	PreRunE: sharedSetupWrapper,
	PostRun: closeStore,
	RunE: func(cmd *cobra.Command, _ []string) error {
		if cfg.DataDir == "" {
			return fmt.Errorf("--data-dir is required")
		}

		models := core.LoadModels(cfg.GridPath, cfg.XSLGModel, cfg.XWOBAModel)
		result, err := core.Upload(rootCtx, statStore, cfg, models)
		if err != nil {
			return err
		}

		contract.Log().Infof("Processed %d files (%d skipped): %d batting, %d pitching, %d zone rows",
			result.Files, result.SkippedFiles, result.BattingRows, result.PitchingRows, result.ZoneRows)
		cmd.Printf("⚾ Upload complete: %d files processed, %d skipped\n", result.Files, result.SkippedFiles)
		return nil
	},
}
