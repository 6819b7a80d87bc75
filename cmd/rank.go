package cmd

import (
	"fmt"

	"github.com/dugoutlab/trackstat/core"
	"github.com/dugoutlab/trackstat/schema"
	"github.com/spf13/cobra"
)

// rankCmd recomputes percentile ranks over a season's population.
var rankCmd = &cobra.Command{
	Use:   "rank",
	Short: "Recompute percentile ranks for a season",
	Long: `Rank every batter and pitcher in a season against the full persisted
population and write percentile scores back to the rank columns.

Tied values share the better rank. Stats where a lower raw value is
better (strikeout rate for batters, WHIP for pitchers) are ranked in
inverted order.

Examples:
  # Rank the 2024 season on the default 1-100 scale
  trackstat rank --season 2024

  # Rank on the legacy 1-99 scale
  trackstat rank --season 2024 --rank-scale 1-99`,
	PreRunE: sharedSetupWrapper,
	PostRun: closeStore,
	RunE: func(cmd *cobra.Command, _ []string) error {
		if cfg.Season <= 0 {
			return fmt.Errorf("--season is required")
		}

		for _, profile := range []*schema.StatProfile{schema.BattingProfile, schema.PitchingProfile} {
			if err := core.RankSeason(rootCtx, statStore, profile, cfg); err != nil {
				return fmt.Errorf("ranking %s failed: %w", profile.Name, err)
			}
		}
		cmd.Printf("🏆 Ranked %d season on the %s scale\n", cfg.Season, cfg.RankScale)
		return nil
	},
}
