package cmd

import (
	"runtime"

	"github.com/spf13/cobra"
)

// versionCmd reports the build stamp injected at link time.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show trackstat version and build details.",
	Run: func(cmd *cobra.Command, _ []string) {
		cmd.Printf("trackstat %s\n", version)
		cmd.Printf("commit %s, built %s, %s/%s, %s\n",
			commit, date, runtime.GOOS, runtime.GOARCH, runtime.Version())
	},
}
