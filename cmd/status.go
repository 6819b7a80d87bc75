package cmd

import (
	"github.com/dugoutlab/trackstat/internal/outwriter"
	"github.com/spf13/cobra"
)

// statusCmd reports the storage backend state and table sizes.
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show storage backend status and table sizes",
	Long: `Check the configured storage backend and report the row count of each
season table. Useful for verifying connectivity before an upload.

Examples:
  trackstat status
  trackstat status --backend postgresql --db-connect $TRACKSTAT_DB_CONNECT`,
	PreRunE: sharedSetupWrapper,
	PostRun: closeStore,
	RunE: func(_ *cobra.Command, _ []string) error {
		status, err := statStore.GetStatus(rootCtx)
		if err != nil {
			return err
		}
		return outwriter.WriteStatus(status, cfg)
	},
}
