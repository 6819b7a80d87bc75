package cmd

import (
	"fmt"

	"github.com/dugoutlab/trackstat/core"
	"github.com/dugoutlab/trackstat/internal/contract"
	"github.com/dugoutlab/trackstat/internal/parquet"
	"github.com/dugoutlab/trackstat/schema"
	"github.com/spf13/cobra"
)

// exportCmd writes the persisted season tables to Parquet files.
var exportCmd = &cobra.Command{
	Use:   "export <directory>",
	Short: "Export season tables to Parquet files",
	Long: `Export the batting, pitching and zone-bin tables for one season to
Parquet files in the given directory, for analysis in DuckDB, Spark or
pandas.

Examples:
  # Export the 2024 season
  trackstat export ./out --season 2024`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	PostRun: closeStore,
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg.Season <= 0 {
			return fmt.Errorf("--season is required")
		}
		dir := args[0]

		exports := []struct {
			profile *schema.StatProfile
			write   func([]*schema.StatLine, string) error
		}{
			{schema.BattingProfile, parquet.WriteBattingParquet},
			{schema.PitchingProfile, parquet.WritePitchingParquet},
			{schema.ZoneProfile, parquet.WriteZoneBinsParquet},
		}

		for _, e := range exports {
			lines, err := core.SeasonLines(rootCtx, statStore, e.profile, cfg)
			if err != nil {
				return fmt.Errorf("failed to load %s rows: %w", e.profile.Name, err)
			}
			outputPath := fmt.Sprintf("%s/%s_%d.parquet", dir, e.profile.Table, cfg.Season)
			if err := e.write(lines, outputPath); err != nil {
				return fmt.Errorf("failed to export %s: %w", e.profile.Name, err)
			}
			contract.Log().Infof("exported %d %s rows to %s", len(lines), e.profile.Name, outputPath)
		}
		cmd.Printf("💾 Exported season %d tables to %s\n", cfg.Season, dir)
		return nil
	},
}
