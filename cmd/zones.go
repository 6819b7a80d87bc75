package cmd

import (
	"fmt"

	"github.com/dugoutlab/trackstat/core"
	"github.com/dugoutlab/trackstat/internal/outwriter"
	"github.com/spf13/cobra"
)

// zonesCmd shows a pitcher's 13-zone location profile.
var zonesCmd = &cobra.Command{
	Use:   "zones <pitcher>",
	Short: "Show a pitcher's 13-zone location profile",
	Long: `Display where a pitcher located their pitches across the 13 strike-zone
regions: zones 1-9 form the 3x3 in-zone grid (1 is bottom-left from the
catcher's view), zones 10-13 the out-of-zone quadrants.

Examples:
  trackstat zones "Cole, Gerrit" --season 2024
  trackstat zones "Cole, Gerrit" --season 2024 --output csv`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	PostRun: closeStore,
	RunE: func(_ *cobra.Command, args []string) error {
		if cfg.Season <= 0 {
			return fmt.Errorf("--season is required")
		}

		bins, err := core.ZoneBinsFor(rootCtx, statStore, cfg, args[0])
		if err != nil {
			return err
		}
		return outwriter.WriteZoneBins(bins, cfg)
	},
}
