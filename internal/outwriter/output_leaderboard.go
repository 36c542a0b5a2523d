package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/AgitatedBuddha/protein-analyser/internal/contract"
	"github.com/AgitatedBuddha/protein-analyser/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// PrintLeaderboard outputs the ranked per-mode comparison, dispatching based
// on the output format configured.
func PrintLeaderboard(entries []schema.LeaderboardEntry, cfg *contract.Config, duration time.Duration) error {
	fmtFloat, fmtOptFloat := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		writer := func(w io.Writer) error {
			return writeJSONLeaderboard(w, entries, cfg)
		}
		if err := writeWithFile(cfg.OutputFile, writer, "Wrote JSON"); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		writer := func(w io.Writer) error {
			cw := csv.NewWriter(w)
			if err := writeCSVLeaderboard(cw, entries, cfg, fmtOptFloat); err != nil {
				return err
			}
			cw.Flush()
			return cw.Error()
		}
		if err := writeWithFile(cfg.OutputFile, writer, "Wrote CSV"); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	default:
		if err := printLeaderboardTable(entries, cfg, fmtFloat, fmtOptFloat, duration); err != nil {
			return fmt.Errorf("error writing table output: %w", err)
		}
	}
	return nil
}

// printLeaderboardTable prints the ranked comparison as a table. Scored
// products lead, then indeterminate, then rejected, matching the rank order.
func printLeaderboardTable(entries []schema.LeaderboardEntry, cfg *contract.Config, fmtFloat func(float64) string, fmtOptFloat func(*float64) string, duration time.Duration) error {
	table := tablewriter.NewWriter(os.Stdout)

	headers := []string{"Rank", "Brand", "Score", "Label"}
	if cfg.Detail {
		headers = append(headers, "Price/Serving", "Reason")
	}
	table.Header(headers)

	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	maxBrandWidth := getMaxTableBrandWidth(cfg)
	var data [][]string
	for _, e := range entries {
		ms := schema.ModeScore{Status: e.Status, Score: e.Score}
		row := []string{
			strconv.Itoa(e.Rank),
			contract.TruncateBrand(schema.DisplayBrand(e.Brand), maxBrandWidth),
			fmtOptFloat(e.Score),
			labelFor(ms, cfg),
		}
		if cfg.Detail {
			row = append(row, fmtOptFloat(e.PricePerServing), formatOptString(e.RejectionReason))
		}
		data = append(data, row)
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	fmt.Printf("Showing top %d product(s) for mode %s\n", len(entries), cfg.Mode)
	fmt.Printf("Ranking completed in %v using %d workers.\n", duration, cfg.Workers)
	return nil
}
