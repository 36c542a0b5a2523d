package cmd

import (
	"github.com/AgitatedBuddha/protein-analyser/core"
	"github.com/AgitatedBuddha/protein-analyser/internal/contract"
	"github.com/spf13/cobra"
)

// scoreCmd scores every product record across all three modes.
var scoreCmd = &cobra.Command{
	Use:   "score [records-path]",
	Short: "Score products across the cut, bulk, and clean goals.",
	Long: `Score every extracted product record against all three fitness goals.

Each product gets, per goal:
- Hard-reject evaluation (cut and clean have disqualification rules)
- A weighted composite score over normalized sub-scores
- A grade label (Excellent/Good/Fair/Poor) for quick comparison

Amino-spiking heuristics run on every product and are shown as a flag.
Missing label fields never fail a product: they propagate as unknown and the
remaining sub-scores are reweighted.

Examples:
  # Score all records under ./output
  protein-analyser score

  # Score one record file with full metric detail
  protein-analyser score output/acme_iso.json --detail

  # Explain what drives the cut score
  protein-analyser score --mode cut --explain

  # Export findings to CSV for tracking
  protein-analyser score --output csv --output-file scores.csv

  # Persist the run to the results store
  protein-analyser score --record --store-backend sqlite`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteScore(rootCtx, cfg, storeManager); err != nil {
			contract.LogFatal("Cannot score products", err)
		}
	},
}
