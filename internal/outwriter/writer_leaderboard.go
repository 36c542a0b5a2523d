package outwriter

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/AgitatedBuddha/protein-analyser/internal/contract"
	"github.com/AgitatedBuddha/protein-analyser/schema"
)

// writeCSVLeaderboard writes the ranked entries in CSV format.
func writeCSVLeaderboard(w *csv.Writer, entries []schema.LeaderboardEntry, cfg *contract.Config, fmtOptFloat func(*float64) string) error {
	header := []string{
		"rank",
		"brand",
		"mode",
		"status",
		"score",
		"label",
		"rejection_reason",
		"price_per_serving",
	}
	if err := w.Write(header); err != nil {
		return err
	}
	for _, e := range entries {
		ms := schema.ModeScore{Status: e.Status, Score: e.Score}
		rec := []string{
			strconv.Itoa(e.Rank),
			e.Brand,
			string(e.Mode),
			string(e.Status),
			fmtOptFloat(e.Score),
			schema.GetPlainLabel(ms, cfg.GradeThresholds),
			formatOptString(e.RejectionReason),
			fmtOptFloat(e.PricePerServing),
		}
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	return nil
}

// writeJSONLeaderboard writes the ranked entries in JSON format, enriched
// with grade labels.
func writeJSONLeaderboard(w io.Writer, entries []schema.LeaderboardEntry, cfg *contract.Config) error {
	return writeJSON(w, schema.EnrichLeaderboard(entries, cfg.GradeThresholds))
}
