package cmd

import (
	"github.com/AgitatedBuddha/protein-analyser/internal/contract"
	"github.com/AgitatedBuddha/protein-analyser/internal/httpapi"
	"github.com/spf13/cobra"
)

// serveCmd exposes scored results over a read-only HTTP JSON API.
var serveCmd = &cobra.Command{
	Use:   "serve [records-path]",
	Short: "Serve scored results over a read-only HTTP JSON API.",
	Long: `Score the batch once at startup and serve the reports over HTTP.

Scoring is a pure function of the records and the scoring configuration, so
the reports are computed once, held in memory, and served read-only.

Endpoints:
  GET /healthz                        - liveness
  GET /api/modes                      - active scoring configuration
  GET /api/products                   - report summaries
  GET /api/products/{brand}           - full score report for one product
  GET /api/leaderboard?mode=cut&limit=N - ranked entries

The server shuts down gracefully on SIGINT/SIGTERM.

Examples:
  # Serve the default records directory on :8080
  protein-analyser serve

  # Custom records path and address
  protein-analyser serve ./labels --addr :9090`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := httpapi.Serve(rootCtx, cfg, storeManager); err != nil {
			contract.LogFatal("HTTP API stopped", err)
		}
	},
}
