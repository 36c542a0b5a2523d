package contract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/AgitatedBuddha/protein-analyser/schema"
	"github.com/fatih/color"
)

// Color variables for console output.
var (
	ExcellentColor = color.New(color.FgGreen, color.Bold) // excellentColor marks top-grade products.
	GoodColor      = color.New(color.FgCyan)              // goodColor marks solid, unremarkable products.
	FairColor      = color.New(color.FgYellow)            // fairColor marks borderline products.
	PoorColor      = color.New(color.FgMagenta)           // poorColor marks weak but scoreable products.
	RejectedColor  = color.New(color.FgRed, color.Bold)   // rejectedColor marks hard-rejected products.
)

// GetColorLabel returns a colored text label for console output (table).
// It relies on schema.GetPlainLabel to determine the string, and then applies
// the appropriate color.
func GetColorLabel(ms schema.ModeScore, th schema.GradeThresholds) string {
	text := schema.GetPlainLabel(ms, th)

	switch text {
	case schema.ExcellentLabel:
		return ExcellentColor.Sprint(text)
	case schema.GoodLabel:
		return GoodColor.Sprint(text)
	case schema.FairLabel:
		return FairColor.Sprint(text)
	case schema.PoorLabel:
		return PoorColor.Sprint(text)
	case schema.RejectedLabel:
		return RejectedColor.Sprint(text)
	default: // "Indeterminate"
		return text
	}
}

// SelectOutputFile returns the appropriate file handle for output, based on the
// provided file path. It falls back to os.Stdout when the path is empty.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}

// LogFatal logs an error and exits the program.
func LogFatal(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Fatal %s: %v\n", msg, err)
	os.Exit(1)
}

// LogWarn logs a warning message to stderr.
func LogWarn(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Warn %s: %v\n", msg, err)
}

// GetResultsDBFilePath returns the path to the SQLite DB file for the results store.
func GetResultsDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".protein_analyser_results.db"
	}
	return filepath.Join(homeDir, ".protein_analyser_results.db")
}

// TruncateBrand truncates a brand name to a maximum width with ellipsis prefix.
// Requires maxWidth > 3 to ensure there's space for both the "..." prefix and at
// least one character of content. Without this check, small maxWidth values
// could cause slice bounds errors in the truncation calculation.
func TruncateBrand(brand string, maxWidth int) string {
	runes := []rune(brand)
	if len(runes) > maxWidth && maxWidth > 3 {
		return "..." + string(runes[len(runes)-maxWidth+3:])
	}
	return brand
}

// ParseBoolString parses a string value into a boolean.
// Accepts "yes", "no", "true", "false", "1", "0" (case-insensitive).
// Returns an error for invalid values.
func ParseBoolString(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "yes", "true", "1":
		return true, nil
	case "no", "false", "0":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean string: %s (expected yes/no/true/false/1/0)", s)
	}
}
