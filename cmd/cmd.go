// Package cmd defines the command-line interface for trackstat.
package cmd

import (
	"github.com/dugoutlab/trackstat/internal/contract"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(uploadCmd)
	rootCmd.AddCommand(rankCmd)
	rootCmd.AddCommand(leadersCmd)
	rootCmd.AddCommand(zonesCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(versionCmd)

	// Add the leaders subcommands to the parent leaders command
	leadersCmd.AddCommand(leadersBattingCmd)
	leadersCmd.AddCommand(leadersPitchingCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().String("config", "", "Path to config file (defaults to .trackstat.yaml)")
	rootCmd.PersistentFlags().String("backend", "sqlite", "Storage backend: sqlite or mysql or postgresql or none")
	rootCmd.PersistentFlags().String("db-connect", "", "Database connection string for mysql/postgresql (e.g., user:pass@tcp(host:port)/dbname)")
	rootCmd.PersistentFlags().IntP("season", "s", 0, "Season year to operate on")
	rootCmd.PersistentFlags().String("rank-scale", "1-100", "Percentile scale: 1-100 or 1-99")
	rootCmd.PersistentFlags().IntP("limit", "l", contract.DefaultResultLimit, "Number of results to display")
	rootCmd.PersistentFlags().String("output", "text", "Output format: text or csv or json")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write output to")
	rootCmd.PersistentFlags().Int("workers", contract.DefaultWorkers, "Number of concurrent file workers")
	rootCmd.PersistentFlags().Int("batch-size", contract.DefaultBatchSize, "Row batch size for storage reads and writes")
	rootCmd.PersistentFlags().Int("max-fetch-pages", contract.DefaultMaxFetchPages, "Cap on paginated season reads")
	rootCmd.PersistentFlags().String("xba-grid", "", "Path to the expected batting average grid CSV")
	rootCmd.PersistentFlags().String("xslg-model", "", "Path to the expected slugging model JSON")
	rootCmd.PersistentFlags().String("xwoba-model", "", "Path to the expected wOBA model JSON")
	rootCmd.PersistentFlags().String("color", "auto", "Colorize output: yes, no, or auto")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().Int("width", 0, "Terminal width override (0 = auto-detect)")

	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Failed to bind root flags", err)
	}

	// Command-specific flags
	uploadCmd.Flags().StringP("data-dir", "d", "", "Directory of TrackMan CSV exports to process")
	if err := viper.BindPFlags(uploadCmd.Flags()); err != nil {
		contract.LogFatal("Failed to bind upload flags", err)
	}

	migrateCmd.Flags().Int("target-version", -1, "Target schema version (-1 latest, 0 rollback all)")
	if err := viper.BindPFlags(migrateCmd.Flags()); err != nil {
		contract.LogFatal("Failed to bind migrate flags", err)
	}
}
