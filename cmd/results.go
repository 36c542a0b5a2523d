package cmd

import (
	"fmt"

	"github.com/AgitatedBuddha/protein-analyser/internal/contract"
	"github.com/AgitatedBuddha/protein-analyser/internal/resultstore"
	"github.com/AgitatedBuddha/protein-analyser/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// resultsSetup loads minimal configuration needed for results-store operations.
// This is used by commands that need store access without full shared setup.
func resultsSetup() error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	// Get store-related config values
	backendStr := viper.GetString("store-backend")
	connStr := viper.GetString("store-conn")

	// Handle empty backend as the SQLite default: store admin commands
	// operate on the store even when scoring runs leave tracking off.
	var backend schema.DatabaseBackend
	if backendStr == "" || backendStr == string(schema.NoneBackend) {
		backend = schema.SQLiteBackend
	} else {
		backend = schema.DatabaseBackend(backendStr)
	}

	// Basic validation for database backends
	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return err
	}

	// Get output-related config values (used by export command)
	outputFile := viper.GetString("output-file")

	// Initialize the store with the loaded config
	if err := resultstore.InitStores(backend, storeConnString(backend, connStr)); err != nil {
		return fmt.Errorf("failed to initialize results store: %w", err)
	}

	cfg.StoreBackend = backend
	cfg.StoreConnect = connStr
	cfg.OutputFile = outputFile

	return nil
}

// resultsSetupWrapper wraps resultsSetup to provide PreRunE for results commands.
func resultsSetupWrapper(_ *cobra.Command, _ []string) error {
	return resultsSetup()
}

// resultsMigrateSetup loads minimal configuration needed for migrate operations.
// This is a specialized setup that does NOT initialize stores or create tables,
// allowing migrations to run on a fresh database.
func resultsMigrateSetup() error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	backendStr := viper.GetString("store-backend")
	connStr := viper.GetString("store-conn")

	var backend schema.DatabaseBackend
	if backendStr == "" || backendStr == string(schema.NoneBackend) {
		backend = schema.SQLiteBackend
	} else {
		backend = schema.DatabaseBackend(backendStr)
	}

	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return err
	}

	cfg.StoreBackend = backend
	cfg.StoreConnect = storeConnString(backend, connStr)

	return nil
}

// resultsMigrateSetupWrapper wraps resultsMigrateSetup to provide PreRunE for migrate command.
func resultsMigrateSetupWrapper(_ *cobra.Command, _ []string) error {
	return resultsMigrateSetup()
}

// resultsCmd focused on scoring-run data management.
//
// Note: Results subcommands use minimal initialization (resultsSetup) instead
// of the full sharedSetup used by scoring commands. This avoids record-path
// resolution and scoring-config processing for simple store operations.
var resultsCmd = &cobra.Command{
	Use:   "results",
	Short: "Manage recorded scoring runs and exports",
	Long: `Manage the scoring-run history recorded with --record.

When enabled, protein-analyser tracks every scoring run, storing:
- Run metadata (timestamp, configuration, duration)
- Per-product scores across all modes (cut, bulk, clean)
- Spiking flags, key metrics, and warnings

This enables longitudinal comparison across catalog refreshes and data export
for BI tools.

Supported backends: SQLite (default), MySQL, PostgreSQL

Subcommands:
  status  - Show run tracking statistics
  export  - Export data to Parquet for analytics
  clear   - Remove all recorded runs
  migrate - Run database schema migrations

Examples:
  # Check tracking status
  protein-analyser results status

  # Export for analysis in pandas/DuckDB
  protein-analyser results export --output-file score-data`,
}

// resultsClearCmd clears the recorded runs.
var resultsClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all recorded scoring runs",
	Long: `Delete all stored scoring runs and per-product score history.

This removes:
- All run metadata
- Historical product scores across all modes

WARNING: This action cannot be undone. Consider exporting data first.

For SQLite: Deletes the database file
For MySQL/PostgreSQL: Drops the result tables

Examples:
  # Export before clearing
  protein-analyser results export --output-file backup
  protein-analyser results clear

  # Clear a server-backed store
  PROTEIN_ANALYSER_STORE_BACKEND=mysql PROTEIN_ANALYSER_STORE_CONN="..." protein-analyser results clear`,
	PreRunE: resultsSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := resultstore.ClearResults(cfg.StoreBackend, resultstore.GetResultsDBFilePath(), cfg.StoreConnect); err != nil {
			contract.LogFatal("Failed to clear results", err)
		}
		fmt.Println("Results cleared successfully.")
	},
}

// resultsStatusCmd shows results-store status.
var resultsStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display run tracking statistics and connection details",
	Long: `Show detailed information about recorded scoring runs.

Displays:
- Backend type and connection status
- Total number of runs stored
- Last and oldest run timestamps
- Total products scored across all runs
- Database table sizes

Examples:
  # Check run tracking status
  protein-analyser results status`,
	PreRunE: resultsSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		status, err := resultstore.Manager.GetScoreStore().GetStatus()
		if err != nil {
			contract.LogFatal("Failed to get results status", err)
		}
		resultstore.PrintStoreStatus(status)
	},
}

// resultsExportCmd exports recorded runs to Parquet files.
var resultsExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export recorded runs to Parquet for BI tools and analytics",
	Long: `Export all recorded scoring data to Parquet format.

Exports two datasets:
- Score runs - metadata about each scoring run
- Product scores - per-product mode results, spiking flags, and key metrics

Parquet format enables:
- Fast querying with DuckDB, Apache Spark, pandas
- Efficient storage with columnar compression
- Direct import into BI tools (Tableau, Metabase, etc.)

Requires: --output-file parameter (used as the file prefix)

Examples:
  # Export all data
  protein-analyser results export --output-file score-data

  # Use with DuckDB for analysis
  duckdb -c "SELECT * FROM read_parquet('score-data.product_scores.parquet') LIMIT 10"`,
	PreRunE: resultsSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := resultstore.ExecuteResultsExport(cfg.OutputFile); err != nil {
			contract.LogFatal("Failed to export results", err)
		}
	},
}

// resultsMigrateCmd runs database migrations for the results store.
var resultsMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database schema migrations (upgrades/downgrades)",
	Long: `Manage database schema versions for the results store.

Migrations allow:
- Upgrading to new schema versions when protein-analyser is updated
- Safely modifying database structure without data loss
- Rolling back schema changes if needed

By default, migrates to the latest version. Use --target-version for specific versions.

Examples:
  # Migrate to latest version (default)
  protein-analyser results migrate

  # Migrate to specific version
  protein-analyser results migrate --target-version 1

  # Rollback to initial state
  protein-analyser results migrate --target-version 0`,
	PreRunE: resultsMigrateSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		targetVersion := viper.GetInt("target-version")
		if err := resultstore.MigrateResults(cfg.StoreBackend, cfg.StoreConnect, targetVersion); err != nil {
			contract.LogFatal("Failed to run migrations", err)
		}
	},
}
