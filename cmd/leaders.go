package cmd

import (
	"fmt"

	"github.com/dugoutlab/trackstat/core"
	"github.com/dugoutlab/trackstat/internal/outwriter"
	"github.com/dugoutlab/trackstat/schema"
	"github.com/spf13/cobra"
)

// leadersCmd is the parent for the per-table leaderboard commands.
var leadersCmd = &cobra.Command{
	Use:   "leaders",
	Short: "Show season leaderboards for one stat",
	Long:  `Display the top players for a single stat, ranked against the full season population.`,
	Run: func(cmd *cobra.Command, _ []string) {
		_ = cmd.Help()
	},
}

// runLeaders fetches and renders the board for one profile.
func runLeaders(profile *schema.StatProfile, stat string) error {
	if cfg.Season <= 0 {
		return fmt.Errorf("--season is required")
	}
	cfg.Stat = stat

	rows, err := core.Leaders(rootCtx, statStore, profile, cfg)
	if err != nil {
		return err
	}
	return outwriter.WriteLeaders(rows, cfg)
}

// leadersBattingCmd shows the batting leaderboard for one stat.
var leadersBattingCmd = &cobra.Command{
	Use:   "batting <stat>",
	Short: "Show the batting leaderboard for one stat",
	Long: `Display the top batters for a single stat column.

Examples:
  # Top 25 by batting average
  trackstat leaders batting batting_avg --season 2024

  # Top 10 by expected wOBA as JSON
  trackstat leaders batting xwoba_per --season 2024 --limit 10 --output json`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	PostRun: closeStore,
	RunE: func(_ *cobra.Command, args []string) error {
		return runLeaders(schema.BattingProfile, args[0])
	},
}

// leadersPitchingCmd shows the pitching leaderboard for one stat.
var leadersPitchingCmd = &cobra.Command{
	Use:   "pitching <stat>",
	Short: "Show the pitching leaderboard for one stat",
	Long: `Display the top pitchers for a single stat column.

Examples:
  # Top 25 by WHIP (lower is better, so lowest first)
  trackstat leaders pitching whip --season 2024

  # Top fastball velocity
  trackstat leaders pitching avg_fb_velo --season 2024`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	PostRun: closeStore,
	RunE: func(_ *cobra.Command, args []string) error {
		return runLeaders(schema.PitchingProfile, args[0])
	},
}
