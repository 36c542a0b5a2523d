package core

import (
	"fmt"

	"github.com/AgitatedBuddha/protein-analyser/internal/contract"
)

// logScoreHeader prints a concise, 2-line header for each scoring batch.
func logScoreHeader(cfg *contract.Config, recordCount int) {
	// Line 1: The batch summary (input and mode)
	fmt.Printf("🔍 Scoring %d product(s) from %s (Mode: %s)\n", recordCount, cfg.InputPath, cfg.Mode)

	// Line 2: The scoring configuration in effect
	fmt.Printf("📊 Scoring config: %s (version %s)\n", scoringSource(cfg), cfg.Scoring.Version)
}

// logSpikingHeader prints the header for a spiking assessment pass.
func logSpikingHeader(cfg *contract.Config, recordCount int) {
	fmt.Printf("🔍 Assessing amino spiking for %d product(s) from %s\n", recordCount, cfg.InputPath)
	fmt.Printf("📊 Scoring config: %s (version %s)\n", scoringSource(cfg), cfg.Scoring.Version)
}

// scoringSource names where the active scoring parameters came from.
func scoringSource(cfg *contract.Config) string {
	if cfg.ScoringFile == "" {
		return "embedded defaults"
	}
	return cfg.ScoringFile
}
