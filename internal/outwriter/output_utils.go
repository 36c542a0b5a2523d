package outwriter

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/AgitatedBuddha/protein-analyser/internal/contract"
	"github.com/AgitatedBuddha/protein-analyser/schema"
)

// writeWithFile handles the common pattern of opening a file, writing to it, and cleaning up.
// It accepts a writer function that takes an io.Writer and returns an error.
func writeWithFile(outputFile string, writer func(io.Writer) error, successMsg string) error {
	file, err := contract.SelectOutputFile(outputFile)
	if err != nil {
		return err
	}
	// Only close if it's not stdout
	if file != os.Stdout {
		defer func() { _ = file.Close() }()
	}

	if err := writer(file); err != nil {
		return err
	}

	if file != os.Stdout {
		fmt.Fprintf(os.Stderr, "💾 %s to %s\n", successMsg, outputFile)
	}
	return nil
}

// writeJSON is a generic JSON encoder that handles indentation consistently.
func writeJSON(w io.Writer, data any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(data); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}

// createFormatters creates the common formatter closures used across multiple output types.
// fmtFloat renders a float at the configured precision; fmtOptFloat renders
// nil metric pointers as "-".
func createFormatters(precision int) (fmtFloat func(float64) string, fmtOptFloat func(*float64) string) {
	fmtFloat = func(v float64) string {
		return fmt.Sprintf("%.*f", precision, v)
	}
	fmtOptFloat = func(v *float64) string {
		if v == nil {
			return "-"
		}
		return fmtFloat(*v)
	}
	return fmtFloat, fmtOptFloat
}

// formatOptString renders nil strings as an empty CSV cell.
func formatOptString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// formatYesNo renders a bool as "yes" or "no" for table cells.
func formatYesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

// formatWarnings joins report warnings for a single display cell.
func formatWarnings(warnings []schema.Warning) string {
	if len(warnings) == 0 {
		return ""
	}
	parts := make([]string, len(warnings))
	for i, w := range warnings {
		parts[i] = string(w)
	}
	return strings.Join(parts, ",")
}

// contributionMinimum is the smallest composite contribution worth naming in
// an explanation; topNContributions caps how many are shown.
const (
	contributionMinimum = 0.005
	topNContributions   = 3
)

// formatTopContributions names the top composite contributors for one mode,
// largest first, e.g. "protein_per_100_kcal (0.25) > leucine_g_per_serving (0.12)".
func formatTopContributions(ms schema.ModeScore) string {
	if ms.Status != schema.StatusScored || len(ms.Breakdown) == 0 {
		return "-"
	}

	type contribution struct {
		key   schema.MetricKey
		value float64
	}
	var contributions []contribution
	for key, component := range ms.Breakdown {
		if component.Contribution >= contributionMinimum {
			contributions = append(contributions, contribution{key: key, value: component.Contribution})
		}
	}

	if len(contributions) == 0 {
		return "-"
	}

	sort.Slice(contributions, func(i, j int) bool {
		if contributions[i].value != contributions[j].value {
			return contributions[i].value > contributions[j].value
		}
		return contributions[i].key < contributions[j].key
	})

	limit := min(len(contributions), topNContributions)
	parts := make([]string, limit)
	for i := range limit {
		parts[i] = fmt.Sprintf("%s (%.2f)", contributions[i].key, contributions[i].value)
	}
	return strings.Join(parts, " > ")
}
