package cmd

import (
	"github.com/AgitatedBuddha/protein-analyser/core"
	"github.com/AgitatedBuddha/protein-analyser/internal/contract"
	"github.com/spf13/cobra"
)

// checkCmd focused on CI/CD policy enforcement.
var checkCmd = &cobra.Command{
	Use:   "check [records-path]",
	Short: "Enforce score thresholds for CI/CD pipelines (fails build on violations)",
	Long: `Score the batch and enforce a minimum-score policy for the selected mode.

Designed for CI/CD integration - exits non-zero when any product violates the
policy. A product violates when it is hard-rejected (unless --allow-rejected)
or when its composite score falls under --min-score. Indeterminate products
pass: missing label data never fails the gate.

Use cases:
- Catalog gates - block a product refresh that scores below the bar
- Supplier validation - ensure a new batch of labels meets standards
- Regression detection - catch scoring drops after a config change

Examples:
  # Gate on the default minimum score
  protein-analyser check ./output

  # Stricter bar for cut products
  protein-analyser check --mode cut --min-score 0.6

  # Tolerate rejected products, gate only on scores
  protein-analyser check --allow-rejected --min-score 0.5`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		// Gate evaluation and exit code handling live in ExecuteCheck
		if err := core.ExecuteCheck(rootCtx, cfg, storeManager); err != nil {
			contract.LogFatal("Policy check failed", err)
		}
	},
}
