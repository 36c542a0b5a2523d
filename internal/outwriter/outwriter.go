// Package outwriter renders scoring results as tables, CSV, or JSON.
package outwriter

import (
	"os"

	"github.com/AgitatedBuddha/protein-analyser/internal/contract"
	"golang.org/x/term"
)

// getMaxTableBrandWidth calculates the maximum width for brand names in table
// output based on terminal width and table configuration.
func getMaxTableBrandWidth(cfg *contract.Config) int {
	var termWidth int

	// Check for absolute width override from flag/env
	if cfg.Width > 0 {
		termWidth = cfg.Width
	}

	if termWidth == 0 { // Not set by override
		// Get terminal width
		detectedWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
		if err != nil || detectedWidth <= 0 {
			// Fallback to conservative default if terminal size can't be detected
			termWidth = 80 // Conservative default for narrow terminals and CI
		} else {
			termWidth = detectedWidth
		}
	}

	// Reserve space for the three per-mode score/label column pairs
	baseWidth := 45

	// Add detail columns with formatting
	if cfg.Detail {
		baseWidth += 40 // Protein%, Per100kcal, EAAs%, Leucine with formatting
	}

	// Add explain column
	if cfg.Explain {
		baseWidth += 35 // Top contributions column with formatting
	}

	// Reserve generous space for table borders, separators, and padding
	baseWidth += 20

	// Calculate available space for brand
	available := termWidth - baseWidth
	if available < 15 {
		// Minimum reasonable brand width
		return 15
	}
	if available > 50 {
		// Maximum brand width to prevent overly long names
		return 50
	}
	return available
}
