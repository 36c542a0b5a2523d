package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/AgitatedBuddha/protein-analyser/internal/contract"
	"github.com/AgitatedBuddha/protein-analyser/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// PrintScoreReports outputs the per-product score reports in a formatted
// table or exports them as CSV/JSON.
func PrintScoreReports(reports []schema.ScoreReport, cfg *contract.Config, duration time.Duration) error {
	fmtFloat, fmtOptFloat := createFormatters(cfg.Precision)

	// Dispatcher: Handle different output formats
	switch cfg.Output {
	case schema.JSONOut:
		writer := func(w io.Writer) error {
			return writeJSONScoreReports(w, reports)
		}
		if err := writeWithFile(cfg.OutputFile, writer, "Wrote JSON"); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		writer := func(w io.Writer) error {
			cw := csv.NewWriter(w)
			if err := writeCSVScoreReports(cw, reports, cfg, fmtOptFloat); err != nil {
				return err
			}
			cw.Flush()
			return cw.Error()
		}
		if err := writeWithFile(cfg.OutputFile, writer, "Wrote CSV"); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	default:
		// Default to human-readable table
		if err := printScoreTable(reports, cfg, fmtFloat, fmtOptFloat, duration); err != nil {
			return fmt.Errorf("error writing table output: %w", err)
		}
	}
	return nil
}

// printScoreTable generates and prints the human-readable score table.
func printScoreTable(reports []schema.ScoreReport, cfg *contract.Config, fmtFloat func(float64) string, fmtOptFloat func(*float64) string, duration time.Duration) error {
	table := tablewriter.NewWriter(os.Stdout)

	// 1. Define Headers
	headers := []string{"Brand", "Cut", "Bulk", "Clean", "Spiking"}
	if cfg.Detail {
		headers = append(headers, "Protein%", "Per100kcal", "EAAs%", "Leucine", "Warnings")
	}
	if cfg.Explain {
		headers = append(headers, "Explain ("+string(cfg.Mode)+")")
	}
	table.Header(headers)

	// 2. Configure Alignment
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	// 3. Populate Rows
	maxBrandWidth := getMaxTableBrandWidth(cfg)
	var data [][]string
	for i := range reports {
		r := &reports[i]
		row := []string{
			contract.TruncateBrand(schema.DisplayBrand(r.Brand), maxBrandWidth),
			formatModeCell(r.Cut, cfg, fmtFloat),
			formatModeCell(r.Bulk, cfg, fmtFloat),
			formatModeCell(r.Clean, cfg, fmtFloat),
			formatYesNo(r.Spiking.Suspected),
		}
		if cfg.Detail {
			row = append(
				row,
				fmtOptFloat(r.Metrics.ProteinPct),
				fmtOptFloat(r.Metrics.ProteinPer100Kcal),
				fmtOptFloat(r.Metrics.EAAsPct),
				fmtOptFloat(r.Metrics.LeucineG),
				formatWarnings(r.Warnings),
			)
		}
		if cfg.Explain {
			row = append(row, formatTopContributions(r.ModeScoreFor(cfg.Mode)))
		}
		data = append(data, row)
	}

	// 4. Render the table
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	// Compute summary stats
	suspected := 0
	for i := range reports {
		if reports[i].Spiking.Suspected {
			suspected++
		}
	}
	fmt.Printf("Scored %d product(s) (%d with suspected spiking)\n", len(reports), suspected)
	fmt.Printf("Scoring completed in %v using %d workers.\n", duration, cfg.Workers)
	return nil
}

// formatModeCell renders one mode pipeline as "score Label", or just the
// status label when the pipeline did not produce a score.
func formatModeCell(ms schema.ModeScore, cfg *contract.Config, fmtFloat func(float64) string) string {
	label := labelFor(ms, cfg)
	if ms.Status != schema.StatusScored || ms.Score == nil {
		return label
	}
	return fmtFloat(*ms.Score) + " " + label
}

// labelFor picks the colored or plain grade label per --color.
func labelFor(ms schema.ModeScore, cfg *contract.Config) string {
	if cfg.UseColors {
		return contract.GetColorLabel(ms, cfg.GradeThresholds)
	}
	return schema.GetPlainLabel(ms, cfg.GradeThresholds)
}
