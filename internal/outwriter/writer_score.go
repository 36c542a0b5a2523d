package outwriter

import (
	"encoding/csv"
	"io"

	"github.com/AgitatedBuddha/protein-analyser/internal/contract"
	"github.com/AgitatedBuddha/protein-analyser/schema"
)

// writeCSVScoreReports writes the score reports in CSV format, one flat row
// per product.
func writeCSVScoreReports(w *csv.Writer, reports []schema.ScoreReport, cfg *contract.Config, fmtOptFloat func(*float64) string) error {
	header := []string{
		"brand",
		"cut_status",
		"cut_score",
		"cut_reason",
		"bulk_status",
		"bulk_score",
		"bulk_reason",
		"clean_status",
		"clean_score",
		"clean_reason",
		"spiking_suspected",
		"triggered_rules",
		"protein_pct",
		"protein_per_100_kcal",
		"eaas_pct",
		"leucine_g_per_serving",
		"warnings",
		"scoring_version",
	}
	if err := w.Write(header); err != nil {
		return err
	}
	for i := range reports {
		r := &reports[i]
		rec := []string{
			r.Brand,
			string(r.Cut.Status),
			fmtOptFloat(r.Cut.Score),
			formatOptString(r.Cut.RejectionReason),
			string(r.Bulk.Status),
			fmtOptFloat(r.Bulk.Score),
			formatOptString(r.Bulk.RejectionReason),
			string(r.Clean.Status),
			fmtOptFloat(r.Clean.Score),
			formatOptString(r.Clean.RejectionReason),
			formatYesNo(r.Spiking.Suspected),
			schema.FormatTriggeredRules(r.Spiking.TriggeredRules),
			fmtOptFloat(r.Metrics.ProteinPct),
			fmtOptFloat(r.Metrics.ProteinPer100Kcal),
			fmtOptFloat(r.Metrics.EAAsPct),
			fmtOptFloat(r.Metrics.LeucineG),
			formatWarnings(r.Warnings),
			r.ScoringVersion,
		}
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	return nil
}

// writeJSONScoreReports writes the full report documents in JSON format.
// Reports marshal with a fixed field order, so identical inputs produce
// byte-identical output.
func writeJSONScoreReports(w io.Writer, reports []schema.ScoreReport) error {
	return writeJSON(w, reports)
}
