package outwriter

import (
	"encoding/csv"
	"strconv"

	"github.com/AgitatedBuddha/protein-analyser/schema"
)

// writeCSVSpikingReport writes the spiking assessment in CSV format, one row
// per product per rule.
func writeCSVSpikingReport(w *csv.Writer, rows []schema.SpikingReportRow, fmtOptFloat func(*float64) string) error {
	header := []string{
		"brand",
		"suspected",
		"rule",
		"observed",
		"threshold",
		"triggered",
	}
	if err := w.Write(header); err != nil {
		return err
	}
	for _, row := range rows {
		for _, d := range row.Rules {
			rec := []string{
				row.Brand,
				formatYesNo(row.Suspected),
				string(d.Rule),
				fmtOptFloat(d.Observed),
				strconv.FormatFloat(d.Threshold, 'f', -1, 64),
				formatYesNo(d.Triggered),
			}
			if err := w.Write(rec); err != nil {
				return err
			}
		}
	}
	return nil
}
