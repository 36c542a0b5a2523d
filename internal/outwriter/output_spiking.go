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

// PrintSpikingReport outputs the per-product spiking assessment, dispatching
// based on the output format configured.
func PrintSpikingReport(rows []schema.SpikingReportRow, cfg *contract.Config, duration time.Duration) error {
	_, fmtOptFloat := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		writer := func(w io.Writer) error {
			return writeJSON(w, rows)
		}
		if err := writeWithFile(cfg.OutputFile, writer, "Wrote JSON"); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		writer := func(w io.Writer) error {
			cw := csv.NewWriter(w)
			if err := writeCSVSpikingReport(cw, rows, fmtOptFloat); err != nil {
				return err
			}
			cw.Flush()
			return cw.Error()
		}
		if err := writeWithFile(cfg.OutputFile, writer, "Wrote CSV"); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	default:
		if err := printSpikingTable(rows, cfg, fmtOptFloat, duration); err != nil {
			return fmt.Errorf("error writing table output: %w", err)
		}
	}
	return nil
}

// printSpikingTable prints the spiking assessment as a table. The default
// view is one row per product; --detail expands to one row per rule with the
// observed value against its threshold.
func printSpikingTable(rows []schema.SpikingReportRow, cfg *contract.Config, fmtOptFloat func(*float64) string, duration time.Duration) error {
	table := tablewriter.NewWriter(os.Stdout)

	if cfg.Detail {
		table.Header([]string{"Brand", "Rule", "Observed", "Threshold", "Triggered"})
	} else {
		table.Header([]string{"Brand", "Suspected", "Triggered Rules"})
	}

	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	maxBrandWidth := getMaxTableBrandWidth(cfg)
	var data [][]string
	suspected := 0
	for _, row := range rows {
		if row.Suspected {
			suspected++
		}
		brand := contract.TruncateBrand(schema.DisplayBrand(row.Brand), maxBrandWidth)
		if cfg.Detail {
			for _, d := range row.Rules {
				data = append(data, []string{
					brand,
					string(d.Rule),
					fmtOptFloat(d.Observed),
					fmt.Sprintf("%.*f", cfg.Precision, d.Threshold),
					formatYesNo(d.Triggered),
				})
			}
		} else {
			data = append(data, []string{
				brand,
				formatYesNo(row.Suspected),
				formatTriggeredRuleNames(row.Rules),
			})
		}
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	fmt.Printf("Assessed %d product(s): %d with suspected amino spiking\n", len(rows), suspected)
	fmt.Printf("Assessment completed in %v.\n", duration)
	fmt.Println("Note: spiking detection is a heuristic screen, not a lab diagnosis.")
	return nil
}

// formatTriggeredRuleNames joins the names of the rules that fired.
func formatTriggeredRuleNames(details []schema.SpikingRuleDetail) string {
	var triggered []schema.SpikingRule
	for _, d := range details {
		if d.Triggered {
			triggered = append(triggered, d.Rule)
		}
	}
	if len(triggered) == 0 {
		return "-"
	}
	return schema.FormatTriggeredRules(triggered)
}
