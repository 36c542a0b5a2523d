package cmd

import (
	"github.com/AgitatedBuddha/protein-analyser/core"
	"github.com/AgitatedBuddha/protein-analyser/internal/contract"
	"github.com/spf13/cobra"
)

// spikingCmd shows the amino-spiking assessment rule by rule.
var spikingCmd = &cobra.Command{
	Use:   "spiking [records-path]",
	Short: "Assess products for suspected amino spiking.",
	Long: `Evaluate the amino-spiking heuristics for every product, rule by rule.

Four independent rules are checked:
- glycine_disproportion: glycine mass exceeds 5% of protein mass
- low_eaas: EAA fraction of protein below 40%
- bcaas_dominant: BCAA fraction of EAAs above 60%
- eaas_exceed_protein: EAA mass above protein mass (label inconsistency)

A product is flagged when at least two rules trigger. Rules whose inputs are
missing cannot trigger — absence of evidence is not evidence of spiking. This
is a heuristic screen, not a lab diagnosis.

Examples:
  # Flag suspicious products
  protein-analyser spiking

  # Show each rule's observed value against its threshold
  protein-analyser spiking --detail

  # Export assessments for review
  protein-analyser spiking --output csv --output-file spiking.csv`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteSpiking(rootCtx, cfg); err != nil {
			contract.LogFatal("Cannot assess spiking", err)
		}
	},
}
