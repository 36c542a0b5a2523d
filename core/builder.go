package core

import (
	"github.com/AgitatedBuddha/protein-analyser/schema"
)

// ScoreReportBuilder assembles the final report for one product record.
// It is the only component aware of the report's external shape; every step
// is pure, so building the same record against the same params twice yields
// reports that marshal byte-for-byte identically.
type ScoreReportBuilder struct {
	params *schema.ScoringParams
	rec    *schema.ProductRecord
	report *schema.ScoreReport
}

// NewScoreReportBuilder is the starting point for building a score report.
func NewScoreReportBuilder(params *schema.ScoringParams, rec *schema.ProductRecord) *ScoreReportBuilder {
	return &ScoreReportBuilder{
		params: params,
		rec:    rec,
		report: &schema.ScoreReport{
			Brand:          rec.Brand,
			ScoringVersion: params.Version,
			Warnings:       []schema.Warning{},
		},
	}
}

// DeriveMetrics computes the comparable metrics and their warnings.
func (b *ScoreReportBuilder) DeriveMetrics() *ScoreReportBuilder {
	metrics, warnings := deriveMetrics(b.rec)
	b.report.Metrics = metrics
	b.report.Warnings = warnings
	return b
}

// DetectSpiking evaluates the amino-spiking heuristics.
func (b *ScoreReportBuilder) DetectSpiking() *ScoreReportBuilder {
	b.report.Spiking = detectSpiking(b.rec, &b.report.Metrics, &b.params.Spiking)
	return b
}

// ScoreModes runs the three fitness-goal pipelines.
func (b *ScoreReportBuilder) ScoreModes() *ScoreReportBuilder {
	b.report.Cut = scoreMode(&b.report.Metrics, &b.report.Spiking, schema.CutMode, b.params)
	b.report.Bulk = scoreMode(&b.report.Metrics, &b.report.Spiking, schema.BulkMode, b.params)
	b.report.Clean = scoreMode(&b.report.Metrics, &b.report.Spiking, schema.CleanMode, b.params)
	return b
}

// ComputeEconomics derives pack economics when the listing stated them.
func (b *ScoreReportBuilder) ComputeEconomics() *ScoreReportBuilder {
	b.report.Economics = deriveEconomics(b.rec)
	return b
}

// Build finalizes the construction and returns the completed report.
func (b *ScoreReportBuilder) Build() schema.ScoreReport {
	return *b.report
}

// buildScoreReport runs the full assembly chain for one record.
func buildScoreReport(params *schema.ScoringParams, rec *schema.ProductRecord) schema.ScoreReport {
	return NewScoreReportBuilder(params, rec).
		DeriveMetrics().
		DetectSpiking().
		ScoreModes().
		ComputeEconomics().
		Build()
}

// deriveEconomics computes price-per-kg, servings-per-pack, and price-per
// serving from the product listing. Unknown inputs and zero divisors
// propagate as nil; nothing is rounded here.
func deriveEconomics(rec *schema.ProductRecord) *schema.Economics {
	info := rec.ProductInfo
	if info == nil {
		return nil
	}

	servingsPerPack := servingsPerPack(info.WeightKg, rec.Nutrients.ExtractedFields.ServingSizeG)
	return &schema.Economics{
		PricePerKg:      ratio(info.Price, info.WeightKg),
		ServingsPerPack: servingsPerPack,
		PricePerServing: ratio(info.Price, servingsPerPack),
	}
}

// servingsPerPack converts pack weight to serving count: weight_kg * 1000 /
// serving_size_g.
func servingsPerPack(weightKg, servingSizeG *float64) *float64 {
	if weightKg == nil || servingSizeG == nil || *servingSizeG == 0 {
		return nil
	}
	return schema.F64(*weightKg * 1000.0 / *servingSizeG)
}
