package cmd

import (
	"github.com/AgitatedBuddha/protein-analyser/core"
	"github.com/AgitatedBuddha/protein-analyser/internal/contract"
	"github.com/spf13/cobra"
)

// leaderboardCmd ranks products for one fitness goal.
var leaderboardCmd = &cobra.Command{
	Use:   "leaderboard [records-path]",
	Short: "Show the top products ranked for one fitness goal.",
	Long: `Score the batch and rank products for the selected mode.

The ordering is a deterministic total order:
1. Scored products, best composite first
2. Indeterminate products (too little label data to score)
3. Rejected products
Ties inside any group break by brand name.

Examples:
  # Best products for a caloric deficit
  protein-analyser leaderboard --mode cut

  # Top 10 bulking products with price per serving
  protein-analyser leaderboard --mode bulk --limit 10 --detail

  # Machine-readable ranking
  protein-analyser leaderboard --mode clean --output json`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteLeaderboard(rootCtx, cfg, storeManager); err != nil {
			contract.LogFatal("Cannot rank products", err)
		}
	},
}
