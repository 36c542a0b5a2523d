package cmd

import (
	"github.com/AgitatedBuddha/protein-analyser/core"
	"github.com/AgitatedBuddha/protein-analyser/internal/contract"
	"github.com/spf13/cobra"
)

// modesCmd displays the active scoring configuration per mode.
var modesCmd = &cobra.Command{
	Use:   "modes",
	Short: "Display reject rules, weights, and bounds for all scoring modes",
	Long: `Show the active scoring configuration: per-mode hard-reject predicates,
sub-score weights, the composite formula, and the shared normalization bounds.

No records are scored - this is purely informational.

Use this to:
- Understand what each fitness goal rewards and disqualifies
- Validate a custom scoring document before a run
- Document the scoring methodology for your team

Examples:
  # Show the embedded default configuration
  protein-analyser modes

  # Inspect a tuned configuration
  protein-analyser modes --scoring custom_scoring.yml

  # Check a weight override
  protein-analyser modes --mode bulk --weights "protein_pct:0.5,eaas_pct:0.3,leucine_g_per_serving:0.2"`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteModes(rootCtx, cfg); err != nil {
			contract.LogFatal("Cannot display modes", err)
		}
	},
}
