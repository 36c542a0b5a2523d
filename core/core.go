// Package core has core logic for metric derivation, spiking detection,
// scoring and ranking of protein-powder products.
package core

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/AgitatedBuddha/protein-analyser/internal/contract"
	"github.com/AgitatedBuddha/protein-analyser/internal/ingest"
	"github.com/AgitatedBuddha/protein-analyser/internal/outwriter"
	"github.com/AgitatedBuddha/protein-analyser/schema"
)

// ExecuteScore scores every record under the input path across all three
// modes and prints the reports. It serves as the main entry point for the
// 'score' command.
func ExecuteScore(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager) error {
	start := time.Now()
	reports, err := ScoreBatch(ctx, cfg, mgr)
	if err != nil {
		return err
	}
	duration := time.Since(start)
	return outwriter.PrintScoreReports(reports, cfg, duration)
}

// ExecuteLeaderboard scores the batch and prints the ranked comparison for
// the selected mode. It serves as the main entry point for the 'leaderboard'
// command.
func ExecuteLeaderboard(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager) error {
	start := time.Now()
	reports, err := ScoreBatch(ctx, cfg, mgr)
	if err != nil {
		return err
	}
	ranked := RankReports(reports, cfg.Mode, cfg.ResultLimit)
	duration := time.Since(start)
	return outwriter.PrintLeaderboard(ranked, cfg, duration)
}

// ExecuteSpiking prints the per-product spiking rule detail for the batch.
// It serves as the main entry point for the 'spiking' command.
func ExecuteSpiking(ctx context.Context, cfg *contract.Config) error {
	start := time.Now()
	records, err := loadBatch(cfg)
	if err != nil {
		return err
	}
	if !shouldSuppressHeader(ctx) {
		logSpikingHeader(cfg, len(records))
	}
	rows := AssessSpiking(cfg, records)
	duration := time.Since(start)
	return outwriter.PrintSpikingReport(rows, cfg, duration)
}

// ExecuteModes displays the active scoring configuration per mode.
// This is a static display that does not require record input.
func ExecuteModes(_ context.Context, cfg *contract.Config) error {
	model := BuildModesModel(cfg.Scoring)
	return outwriter.PrintModes(model, cfg)
}

// ScoreBatch loads the records under cfg.InputPath and scores all of them.
// Surfaces that render results themselves (MCP, HTTP) call this directly.
func ScoreBatch(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager) ([]schema.ScoreReport, error) {
	records, err := loadBatch(cfg)
	if err != nil {
		return nil, err
	}
	return scoreRecords(ctx, cfg, mgr, records), nil
}

// AssessSpiking evaluates the spiking heuristics for each record, in brand
// order, without running the mode pipelines.
func AssessSpiking(cfg *contract.Config, records []schema.ProductRecord) []schema.SpikingReportRow {
	rows := make([]schema.SpikingReportRow, 0, len(records))
	for i := range records {
		rec := &records[i]
		metrics, _ := deriveMetrics(rec)
		outcomes := evaluateSpikingRules(rec, &metrics, &cfg.Scoring.Spiking)

		triggered := 0
		for _, o := range outcomes {
			if o.triggered {
				triggered++
			}
		}
		rows = append(rows, schema.SpikingReportRow{
			Brand:     rec.Brand,
			Suspected: triggered >= cfg.Scoring.Spiking.MinRulesRequired,
			Rules:     spikingRuleDetails(outcomes),
		})
	}
	return rows
}

// BuildModesModel renders the active scoring configuration into its display
// model: per-mode purpose, reject predicates, weights, and the composite
// formula, plus the shared normalization bounds.
func BuildModesModel(params *schema.ScoringParams) schema.ModesRenderModel {
	modes := make([]schema.ModeDefinition, 0, len(schema.AllScoringModes))
	for _, mode := range schema.AllScoringModes {
		mp := params.Modes[mode]
		modes = append(modes, schema.ModeDefinition{
			Name:    string(mode),
			Purpose: modePurpose(mode),
			Rejects: renderRejects(mp.Reject),
			Weights: renderWeights(mp.Weights),
			Formula: renderFormula(mp.Weights),
		})
	}

	bounds := make(map[string]schema.NormBounds, len(params.Bounds))
	for key, b := range params.Bounds {
		bounds[string(key)] = b
	}

	return schema.ModesRenderModel{
		Title:       "Protein Scoring Modes",
		Description: "Hard-reject predicates run first; surviving products get a weighted composite over normalized sub-scores.",
		Version:     params.Version,
		Modes:       modes,
		Bounds:      bounds,
	}
}

// loadBatch loads and validates the record batch for one command run.
func loadBatch(cfg *contract.Config) ([]schema.ProductRecord, error) {
	records, err := ingest.LoadRecords(cfg.InputPath)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, errors.New("no records found")
	}
	return records, nil
}

// modePurpose is the one-line description of each fitness goal.
func modePurpose(mode schema.ScoringMode) string {
	switch mode {
	case schema.BulkMode:
		return "Maximize anabolic stimulus per serving for muscle gain"
	case schema.CleanMode:
		return "Minimize sodium, sugar, and label risk for everyday use"
	default: // CutMode
		return "Maximize protein per calorie for a caloric deficit"
	}
}

// renderRejects lists a mode's reject predicates as display strings, in
// their evaluation order.
func renderRejects(reject schema.RejectParams) []string {
	rejects := []string{}
	if reject.MinProteinPer100Kcal != nil {
		rejects = append(rejects, *rejectReason(schema.MetricProteinPer100Kcal, "<", *reject.MinProteinPer100Kcal))
	}
	if reject.MinLeucineG != nil {
		rejects = append(rejects, *rejectReason(schema.MetricLeucineG, "<", *reject.MinLeucineG))
	}
	if reject.MaxSodiumMg != nil {
		rejects = append(rejects, *rejectReason(schema.MetricSodiumMg, ">", *reject.MaxSodiumMg))
	}
	if reject.MaxAddedSugarG != nil {
		rejects = append(rejects, *rejectReason("added_sugar_g", ">", *reject.MaxAddedSugarG))
	}
	if reject.RejectOnSpiking {
		rejects = append(rejects, "amino_spiking_suspected")
	}
	return rejects
}

// renderWeights widens metric keys to strings for the display model.
func renderWeights(weights map[schema.MetricKey]float64) map[string]float64 {
	out := make(map[string]float64, len(weights))
	for key, w := range weights {
		out[string(key)] = w
	}
	return out
}

// renderFormula writes the composite as "0.40*protein_per_100_kcal + ...",
// heaviest term first, ties broken by metric name.
func renderFormula(weights map[schema.MetricKey]float64) string {
	type term struct {
		key    schema.MetricKey
		weight float64
	}
	terms := make([]term, 0, len(weights))
	for key, w := range weights {
		terms = append(terms, term{key: key, weight: w})
	}
	sort.Slice(terms, func(i, j int) bool {
		if terms[i].weight != terms[j].weight {
			return terms[i].weight > terms[j].weight
		}
		return terms[i].key < terms[j].key
	})

	parts := make([]string, len(terms))
	for i, t := range terms {
		parts[i] = fmt.Sprintf("%.2f*%s", t.weight, t.key)
	}
	return strings.Join(parts, " + ")
}
