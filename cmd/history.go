package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/valuewise/marketval/internal/contract"
	"github.com/valuewise/marketval/internal/iocache"
	"github.com/valuewise/marketval/internal/outwriter"
	"github.com/valuewise/marketval/schema"
)

// historySetup loads minimal configuration needed for history operations.
// This is used by commands that need history access without full shared setup.
func historySetup(_ *cobra.Command, _ []string) error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	// Get history-related config values
	backendStr := viper.GetString("history-backend")
	connStr := viper.GetString("history-db-connect")

	// Handle empty backend as NoneBackend
	var backend schema.DatabaseBackend
	if backendStr == "" {
		backend = schema.NoneBackend
	} else {
		backend = schema.DatabaseBackend(backendStr)
	}

	// Basic validation for database backends
	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return err
	}

	// Get output-related config values (used by export command)
	outputFile := viper.GetString("output-file")

	// Initialize stores with the loaded config (no result cache for history commands)
	if err := iocache.InitStores(schema.NoneBackend, "", backend, connStr); err != nil {
		return fmt.Errorf("failed to initialize history store: %w", err)
	}

	cfg.HistoryBackend = backend
	cfg.HistoryDBConnect = connStr
	cfg.OutputFile = outputFile

	return nil
}

// historyMigrateSetup loads minimal configuration needed for migrate operations.
// This is a specialized setup that does NOT initialize stores or create tables,
// allowing migrations to run on a fresh database.
func historyMigrateSetup(_ *cobra.Command, _ []string) error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	backendStr := viper.GetString("history-backend")
	connStr := viper.GetString("history-db-connect")

	var backend schema.DatabaseBackend
	if backendStr == "" {
		backend = schema.NoneBackend
	} else {
		backend = schema.DatabaseBackend(backendStr)
	}

	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return err
	}

	// For SQLite backend with empty connection string, use default path
	if backend == schema.SQLiteBackend && connStr == "" {
		connStr = iocache.GetHistoryDBFilePath()
	}

	cfg.HistoryBackend = backend
	cfg.HistoryDBConnect = connStr

	return nil
}

// historyCmd focused on appraisal history management.
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Manage stored appraisal analyses and exports",
	Long: `Manage historical appraisal data used for review and reporting.

When enabled, marketval records every completed analysis, storing:
- Analysis metadata (appraisal ID, timestamp, confidence)
- The calculated market value versus the insurance valuation
- Per-comparable contributions (adjusted price, quality score, weight)

This supports audit trails, longitudinal review of an appraisal, and data
export for BI tools.

Supported backends: SQLite, MySQL, PostgreSQL, or None (disabled, default)

Subcommands:
  list    - Show recent stored analyses
  status  - Show history tracking statistics
  export  - Export data to Parquet for analytics
  clear   - Remove all tracking data
  migrate - Run database schema migrations

Examples:
  # Review recent analyses
  marketval history list --history-backend sqlite

  # Export for analysis in pandas/DuckDB
  marketval history export --history-backend sqlite --output-file appraisals.parquet`,
}

// historyListCmd lists recent stored analyses.
var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "Show recent stored analyses",
	Long: `List the most recent stored analyses, newest first.

Each row shows the appraisal ID, calculation time, market value, insurance
valuation, confidence level and comparable count. Use --appraisal-id to
follow a single appraisal over time and --history-limit to control how
many rows are returned.

Examples:
  # Show the latest analyses
  marketval history list --history-backend sqlite

  # Follow one appraisal
  marketval history list --history-backend sqlite --appraisal-id APP-2024-001`,
	PreRunE: sharedSetup,
	Run: func(_ *cobra.Command, _ []string) {
		store := cacheManager.GetHistoryStore()
		if store == nil {
			contract.LogFatal("History tracking is disabled", fmt.Errorf("set --history-backend to enable it"))
		}
		records, err := store.ListAnalyses(viper.GetString("appraisal-id"), cfg.HistoryLimit)
		if err != nil {
			contract.LogFatal("Failed to list analyses", err)
		}
		if err := outwriter.NewOutWriter().WriteHistory(records, cfg); err != nil {
			contract.LogFatal("Failed to write history", err)
		}
	},
}

// historyStatusCmd shows history status.
var historyStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display history tracking statistics and connection details",
	Long: `Show detailed information about appraisal history tracking.

Displays:
- Backend type and connection status
- Total number of stored analyses
- Last and oldest analysis timestamps
- Total comparable contributions recorded
- Database table sizes

Examples:
  # Check history tracking status
  marketval history status --history-backend sqlite`,
	PreRunE: historySetup,
	Run: func(_ *cobra.Command, _ []string) {
		store := iocache.Manager.GetHistoryStore()
		if store == nil {
			contract.LogFatal("History tracking is disabled", fmt.Errorf("set --history-backend to enable it"))
		}
		status, err := store.GetStatus()
		if err != nil {
			contract.LogFatal("Failed to get history status", err)
		}
		iocache.PrintHistoryStatus(status)
	},
}

// historyClearCmd clears the history data.
var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all stored appraisal history",
	Long: `Delete all stored analyses and comparable contributions.

WARNING: This action cannot be undone. Consider exporting data first.

Examples:
  # Export before clearing
  marketval history export --history-backend sqlite --output-file backup.parquet
  marketval history clear --history-backend sqlite`,
	PreRunE: historySetup,
	Run: func(_ *cobra.Command, _ []string) {
		if err := iocache.ClearHistory(cfg.HistoryBackend, iocache.GetHistoryDBFilePath(), cfg.HistoryDBConnect); err != nil {
			contract.LogFatal("Failed to clear history data", err)
		}
		fmt.Println("History data cleared successfully.")
	},
}

// historyExportCmd exports history data to Parquet files.
var historyExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export stored appraisals to Parquet for BI tools and analytics",
	Long: `Export all stored appraisal history to Parquet format.

Exports two datasets:
- Analyses - one row per completed market value calculation
- Contributions - one row per comparable within each analysis

Parquet format enables fast querying with DuckDB, Apache Spark and pandas,
and direct import into BI tools.

Requires: --output-file parameter

Examples:
  # Export all data
  marketval history export --history-backend sqlite --output-file appraisals.parquet

  # Use with DuckDB for analysis
  duckdb -c "SELECT * FROM read_parquet('appraisals.parquet.analyses.parquet') LIMIT 10"`,
	PreRunE: historySetup,
	Run: func(_ *cobra.Command, _ []string) {
		if err := iocache.ExecuteHistoryExport(cfg.OutputFile); err != nil {
			contract.LogFatal("Failed to export history data", err)
		}
	},
}

// historyMigrateCmd runs database migrations for the history store.
var historyMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database schema migrations (upgrades/downgrades)",
	Long: `Manage database schema versions for the appraisal history store.

By default, migrates to the latest version. Use --target-version for specific versions.

Examples:
  # Migrate to latest version (default)
  marketval history migrate --history-backend sqlite

  # Migrate to specific version
  marketval history migrate --history-backend sqlite --target-version 1

  # Rollback to initial state
  marketval history migrate --history-backend sqlite --target-version 0`,
	PreRunE: historyMigrateSetup,
	Run: func(_ *cobra.Command, _ []string) {
		targetVersion := viper.GetInt("target-version")
		if err := iocache.MigrateHistory(cfg.HistoryBackend, cfg.HistoryDBConnect, targetVersion); err != nil {
			contract.LogFatal("Failed to run migrations", err)
		}
	},
}
