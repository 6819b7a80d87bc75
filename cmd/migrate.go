package cmd

import (
	"fmt"

	"github.com/dugoutlab/trackstat/internal/contract"
	"github.com/dugoutlab/trackstat/internal/iostore"
	"github.com/dugoutlab/trackstat/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// migrateSetup loads minimal configuration needed for migrate
// operations. It does NOT open the stat store, so migrations can run on
// a fresh database.
func migrateSetup(_ *cobra.Command, _ []string) error {
	if err := loadConfigFile(); err != nil {
		return err
	}
	if err := viper.Unmarshal(input); err != nil {
		return fmt.Errorf("unable to unmarshal config: %w", err)
	}
	return contract.ProcessAndValidate(cfg, input)
}

// migrateCmd runs database migrations for the season tables.
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database schema migrations (upgrades/downgrades)",
	Long: `Manage database schema versions for the season stat tables.

By default, migrates to the latest version. Use --target-version for specific versions.

Examples:
  # Migrate to latest version (default)
  trackstat migrate

  # Migrate to specific version
  trackstat migrate --target-version 2

  # Rollback all migrations
  trackstat migrate --target-version 0`,
	PreRunE: migrateSetup,
	RunE: func(cmd *cobra.Command, _ []string) error {
		targetVersion := viper.GetInt("target-version")

		connStr := cfg.DBConnect
		if cfg.Backend == schema.SQLiteBackend && connStr == "" {
			connStr = iostore.GetSQLiteFilePath()
		}
		if err := iostore.Migrate(cfg.Backend, connStr, targetVersion); err != nil {
			return fmt.Errorf("failed to run migrations: %w", err)
		}
		cmd.Printf("🗄️  Migrations complete for %s backend\n", cfg.Backend)
		return nil
	},
}
