// Package cmd defines the command-line interface for protein-analyser.
package cmd

import (
	"github.com/AgitatedBuddha/protein-analyser/internal/contract"
	"github.com/AgitatedBuddha/protein-analyser/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(scoreCmd)
	rootCmd.AddCommand(leaderboardCmd)
	rootCmd.AddCommand(spikingCmd)
	rootCmd.AddCommand(modesCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(resultsCmd)

	// Add the results subcommands to the parent results command
	resultsCmd.AddCommand(resultsClearCmd)
	resultsCmd.AddCommand(resultsStatusCmd)
	resultsCmd.AddCommand(resultsExportCmd)
	resultsCmd.AddCommand(resultsMigrateCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().Bool("detail", false, "Print per-product derived metrics alongside scores")
	rootCmd.PersistentFlags().IntP("limit", "l", contract.DefaultResultLimit, "Number of results to display")
	rootCmd.PersistentFlags().String("mode", string(schema.CutMode), "Scoring mode: cut or bulk or clean")
	rootCmd.PersistentFlags().String("output", string(schema.TableOut), "Output format: table or csv or json")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write output to")
	rootCmd.PersistentFlags().Int("precision", contract.DefaultPrecision, "Decimal precision for numeric columns")
	rootCmd.PersistentFlags().String("profile", "", "Enable profiling and write profiles to files with this prefix")
	rootCmd.PersistentFlags().Int("workers", contract.DefaultWorkers, "Number of concurrent workers")
	rootCmd.PersistentFlags().Int("width", 0, "Terminal width override (0 = auto-detect)")
	rootCmd.PersistentFlags().String("scoring", "", "Path to a scoring configuration YAML (empty = embedded defaults)")
	rootCmd.PersistentFlags().String("weights", "", "Weight override for the selected mode (format: 'metric:0.4,metric:0.6')")
	rootCmd.PersistentFlags().String("grade-thresholds", "", "Grade label cutoffs (format: 'excellent:0.8,good:0.6,fair:0.4')")
	rootCmd.PersistentFlags().Bool("record", false, "Record the scoring run to the results store")
	rootCmd.PersistentFlags().String("store-backend", string(schema.NoneBackend), "Results store backend: sqlite or mysql or postgres or none")
	rootCmd.PersistentFlags().String("store-conn", "", "Database connection string for mysql/postgres (e.g., user:pass@tcp(host:port)/dbname)")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored labels in output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Bind all flags of scoreCmd to Viper
	scoreCmd.Flags().Bool("explain", false, "Print the top sub-score contributions for the selected mode")
	if err := viper.BindPFlags(scoreCmd.Flags()); err != nil {
		contract.LogFatal("Error binding score flags", err)
	}

	// Bind all flags of serveCmd to Viper
	serveCmd.Flags().String("addr", contract.DefaultServeAddr, "Listen address for the HTTP API")
	if err := viper.BindPFlags(serveCmd.Flags()); err != nil {
		contract.LogFatal("Error binding serve flags", err)
	}

	// Bind all flags of checkCmd to Viper
	checkCmd.Flags().Float64("min-score", contract.DefaultMinScore, "Lowest acceptable composite score for the selected mode")
	checkCmd.Flags().Bool("allow-rejected", false, "Tolerate hard-rejected products in the policy gate")
	if err := viper.BindPFlags(checkCmd.Flags()); err != nil {
		contract.LogFatal("Error binding check flags", err)
	}

	// Bind all flags of resultsMigrateCmd to Viper
	resultsMigrateCmd.Flags().Int("target-version", -1, "Target migration version (-1 means latest, 0 means rollback to initial state)")
	if err := viper.BindPFlags(resultsMigrateCmd.Flags()); err != nil {
		contract.LogFatal("Error binding results migrate flags", err)
	}
}
