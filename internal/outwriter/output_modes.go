package outwriter

import (
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"

	"github.com/AgitatedBuddha/protein-analyser/internal/contract"
	"github.com/AgitatedBuddha/protein-analyser/schema"
)

// PrintModes displays the active scoring configuration per mode.
// This is a static display that does not require record input.
func PrintModes(model schema.ModesRenderModel, cfg *contract.Config) error {
	if cfg.Output == schema.JSONOut {
		writer := func(w io.Writer) error {
			return writeJSON(w, model)
		}
		if err := writeWithFile(cfg.OutputFile, writer, "Wrote JSON"); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
		return nil
	}

	fmt.Printf("🥤 %s (version %s)\n", model.Title, model.Version)
	fmt.Println(strings.Repeat("=", len(model.Title)+14))
	fmt.Println()
	fmt.Println(model.Description)
	fmt.Println()

	for _, mode := range model.Modes {
		fmt.Printf("%s: %s\n", strings.ToUpper(mode.Name), mode.Purpose)
		if len(mode.Rejects) > 0 {
			fmt.Printf("   Hard rejects: %s\n", strings.Join(mode.Rejects, ", "))
		} else {
			fmt.Printf("   Hard rejects: none\n")
		}
		fmt.Printf("   Formula: Score = %s\n", mode.Formula)
		fmt.Println()
	}

	fmt.Println("Normalization bounds (values clip to [floor, ceiling], linear in between):")
	for _, key := range slices.Sorted(maps.Keys(model.Bounds)) {
		b := model.Bounds[key]
		direction := ""
		if b.Invert {
			direction = " (inverted: lower is better)"
		}
		fmt.Printf("  %-24s floor=%g ceiling=%g%s\n", key, b.Floor, b.Ceiling, direction)
	}

	return nil
}
