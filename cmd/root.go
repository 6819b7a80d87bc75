package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/dugoutlab/trackstat/internal/contract"
	"github.com/dugoutlab/trackstat/internal/iostore"
	"github.com/dugoutlab/trackstat/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// All linker flags will be set by goreleaser infra at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// rootCtx is the root context for all operations.
var rootCtx = context.Background()

// cfg will hold the validated, final configuration.
var cfg = &contract.Config{}

// input holds the raw, unvalidated configuration from all sources (file, env, flags).
// Viper will unmarshal into this struct.
var input = &contract.ConfigRawInput{}

// statStore is the shared persistence handle opened by sharedSetup.
var statStore contract.StatStore

// rootCmd is the command-line entrypoint for all other commands.
var rootCmd = &cobra.Command{
	Use:                "trackstat",
	Short:              "Aggregate TrackMan pitch-tracking exports into season statistics.",
	Long:               `Trackstat ingests per-game TrackMan CSV exports and maintains season batting, pitching and strike-zone tables with percentile ranks.`,
	Version:            version,
	SilenceErrors:      true,
	SilenceUsage:       true,
	DisableSuggestions: true,
	Run: func(cmd *cobra.Command, _ []string) {
		_ = cmd.Help()
	},
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	// Check if a specific config file is provided
	if configFile := viper.GetString("config"); configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		viper.SetConfigName(".trackstat") // Name of config file (without extension)
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")     // Look in the current directory
		viper.AddConfigPath("$HOME") // Look in the home directory
	}

	// Set environment variable prefix
	viper.SetEnvPrefix("TRACKSTAT")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv() // Read in environment variables that match

	// Set defaults in Viper
	viper.SetDefault("backend", "sqlite")
	viper.SetDefault("db-connect", "")
	viper.SetDefault("rank-scale", "1-100")
	viper.SetDefault("limit", contract.DefaultResultLimit)
	viper.SetDefault("workers", contract.DefaultWorkers)
	viper.SetDefault("batch-size", contract.DefaultBatchSize)
	viper.SetDefault("max-fetch-pages", contract.DefaultMaxFetchPages)
	viper.SetDefault("output", "text")
	viper.SetDefault("color", "auto")
}

// loadConfigFile handles config file loading logic common to all setup functions.
func loadConfigFile() error {
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			// Config file was found but another error was produced
			return fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found, which is fine; we'll use defaults/env/flags.
	}
	return nil
}

// sharedSetup unmarshals config, runs validation and opens the stat
// store.
func sharedSetup(_ context.Context, _ *cobra.Command, _ []string) error {
	// 1. Read config file. This merges defaults, file, env, and flags.
	if err := loadConfigFile(); err != nil {
		return err
	}

	// 2. Unmarshal all resolved values from Viper into our raw input struct.
	if err := viper.Unmarshal(input); err != nil {
		return fmt.Errorf("unable to unmarshal config: %w", err)
	}

	// 3. Run all validation and complex parsing.
	if err := contract.ProcessAndValidate(cfg, input); err != nil {
		return err
	}

	// 4. Open the persistence layer with the validated config.
	connStr := cfg.DBConnect
	if cfg.Backend == schema.SQLiteBackend && connStr == "" {
		connStr = iostore.GetSQLiteFilePath()
	}
	store, err := iostore.NewStatStore(cfg.Backend, connStr)
	if err != nil {
		return fmt.Errorf("failed to initialize persistence: %w", err)
	}
	statStore = store
	return nil
}

// sharedSetupWrapper wraps sharedSetup to provide context for Cobra's PreRunE.
func sharedSetupWrapper(cmd *cobra.Command, args []string) error {
	return sharedSetup(rootCtx, cmd, args)
}

// closeStore releases the stat store after a command finishes.
func closeStore(_ *cobra.Command, _ []string) {
	if statStore != nil {
		if err := statStore.Close(); err != nil {
			contract.LogWarn("Failed to close stat store", err)
		}
		statStore = nil
	}
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
