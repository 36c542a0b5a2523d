package core

import (
	"testing"

	"github.com/AgitatedBuddha/protein-analyser/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scoreRecordMode derives metrics and spiking for rec, then scores one mode.
func scoreRecordMode(t *testing.T, rec schema.ProductRecord, mode schema.ScoringMode, params *schema.ScoringParams) schema.ModeScore {
	t.Helper()
	metrics, _ := deriveMetrics(&rec)
	spiking := detectSpiking(&rec, &metrics, &params.Spiking)
	return scoreMode(&metrics, &spiking, mode, params)
}

func TestScoreModeReferenceProduct(t *testing.T) {
	params := schema.DefaultScoringParams()

	tests := []struct {
		mode  schema.ScoringMode
		score float64
	}{
		{schema.CutMode, 0.5195},
		{schema.BulkMode, 0.5599},
		{schema.CleanMode, 0.4623},
	}
	for _, tt := range tests {
		t.Run(string(tt.mode), func(t *testing.T) {
			got := scoreRecordMode(t, baseRecord(), tt.mode, params)

			assert.Equal(t, schema.StatusScored, got.Status)
			assert.False(t, got.Rejected)
			assert.Nil(t, got.RejectionReason)
			require.NotNil(t, got.Score)
			assert.InDelta(t, tt.score, *got.Score, 0.001)
		})
	}
}

func TestScoreModeCutRejectsLowDensity(t *testing.T) {
	// 20 g protein at 150 kcal is 13.33 g per 100 kcal, under the cut floor.
	rec := baseRecord()
	rec.Nutrients.ExtractedFields.ProteinG = schema.F64(20.0)
	rec.Nutrients.ExtractedFields.EnergyKcal = schema.F64(150.0)

	got := scoreRecordMode(t, rec, schema.CutMode, schema.DefaultScoringParams())

	assert.Equal(t, schema.StatusRejected, got.Status)
	assert.True(t, got.Rejected)
	require.NotNil(t, got.RejectionReason)
	assert.Equal(t, "protein_per_100_kcal < 18", *got.RejectionReason)
	assert.Nil(t, got.Score)
	assert.Nil(t, got.Breakdown)
}

func TestScoreModeRejectBoundariesAreStrict(t *testing.T) {
	params := schema.DefaultScoringParams()

	t.Run("Exactly at threshold passes", func(t *testing.T) {
		rec := baseRecord()
		// 18 g protein at 100 kcal: exactly 18.0 per 100 kcal.
		rec.Nutrients.ExtractedFields.ProteinG = schema.F64(18.0)
		rec.Nutrients.ExtractedFields.EnergyKcal = schema.F64(100.0)

		got := scoreRecordMode(t, rec, schema.CutMode, params)
		assert.Equal(t, schema.StatusScored, got.Status)
	})

	t.Run("Just under threshold rejects", func(t *testing.T) {
		rec := baseRecord()
		rec.Nutrients.ExtractedFields.ProteinG = schema.F64(17.999)
		rec.Nutrients.ExtractedFields.EnergyKcal = schema.F64(100.0)

		got := scoreRecordMode(t, rec, schema.CutMode, params)
		assert.Equal(t, schema.StatusRejected, got.Status)
		require.NotNil(t, got.RejectionReason)
		assert.Equal(t, "protein_per_100_kcal < 18", *got.RejectionReason)
	})
}

func TestScoreModeRejectPrecedence(t *testing.T) {
	// Fails both the density and leucine predicates: the reason reports the
	// first predicate in evaluation order.
	rec := baseRecord()
	rec.Nutrients.ExtractedFields.ProteinG = schema.F64(20.0)
	rec.Nutrients.ExtractedFields.EnergyKcal = schema.F64(150.0)
	rec.AminoAcids.ExtractedFields.EAAs.BCAAs.LeucineG = schema.F64(1.0)

	got := scoreRecordMode(t, rec, schema.CutMode, schema.DefaultScoringParams())

	require.NotNil(t, got.RejectionReason)
	assert.Equal(t, "protein_per_100_kcal < 18", *got.RejectionReason)
}

func TestScoreModeCutRejectsLowLeucine(t *testing.T) {
	rec := baseRecord()
	rec.AminoAcids.ExtractedFields.EAAs.BCAAs.LeucineG = schema.F64(2.0)

	got := scoreRecordMode(t, rec, schema.CutMode, schema.DefaultScoringParams())

	assert.Equal(t, schema.StatusRejected, got.Status)
	require.NotNil(t, got.RejectionReason)
	assert.Equal(t, "leucine_g_per_serving < 2.2", *got.RejectionReason)
}

func TestScoreModeCleanRejects(t *testing.T) {
	params := schema.DefaultScoringParams()

	tests := []struct {
		name   string
		mutate func(*schema.ProductRecord)
		reason string
	}{
		{
			name: "Sodium over limit",
			mutate: func(r *schema.ProductRecord) {
				r.Nutrients.ExtractedFields.SodiumMg = schema.F64(300.0)
			},
			reason: "sodium_mg > 250",
		},
		{
			name: "Any added sugar",
			mutate: func(r *schema.ProductRecord) {
				r.Nutrients.ExtractedFields.AddedSugarG = schema.F64(1.5)
			},
			reason: "added_sugar_g > 0",
		},
		{
			name: "Suspected spiking",
			mutate: func(r *schema.ProductRecord) {
				r.AminoAcids.ExtractedFields.SEAAs.GlycineG = schema.F64(2.0)
				r.AminoAcids.ExtractedFields.EAAs.TotalG = schema.F64(7.0)
				r.AminoAcids.ExtractedFields.EAAs.BCAAs.TotalG = schema.F64(4.0)
			},
			reason: "amino_spiking_suspected",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := baseRecord()
			tt.mutate(&rec)

			got := scoreRecordMode(t, rec, schema.CleanMode, params)

			assert.Equal(t, schema.StatusRejected, got.Status)
			require.NotNil(t, got.RejectionReason)
			assert.Equal(t, tt.reason, *got.RejectionReason)
		})
	}
}

func TestScoreModeSodiumExactlyAtLimitPasses(t *testing.T) {
	rec := baseRecord()
	rec.Nutrients.ExtractedFields.SodiumMg = schema.F64(250.0)

	got := scoreRecordMode(t, rec, schema.CleanMode, schema.DefaultScoringParams())
	assert.Equal(t, schema.StatusScored, got.Status)
}

func TestScoreModeBulkNeverRejects(t *testing.T) {
	// Terrible on every axis that cut and clean reject for.
	rec := baseRecord()
	rec.Nutrients.ExtractedFields.EnergyKcal = schema.F64(400.0)
	rec.Nutrients.ExtractedFields.SodiumMg = schema.F64(900.0)
	rec.Nutrients.ExtractedFields.AddedSugarG = schema.F64(12.0)
	rec.AminoAcids.ExtractedFields.EAAs.BCAAs.LeucineG = schema.F64(0.5)

	got := scoreRecordMode(t, rec, schema.BulkMode, schema.DefaultScoringParams())

	assert.Equal(t, schema.StatusScored, got.Status)
	assert.False(t, got.Rejected)
}

func TestScoreModeUnknownMetricNeverRejects(t *testing.T) {
	// Energy unknown: the density predicate cannot fire.
	rec := baseRecord()
	rec.Nutrients.ExtractedFields.EnergyKcal = nil

	got := scoreRecordMode(t, rec, schema.CutMode, schema.DefaultScoringParams())
	assert.Equal(t, schema.StatusScored, got.Status)
}

func TestScoreModeIndeterminate(t *testing.T) {
	rec := schema.ProductRecord{Brand: "label_only"}
	params := schema.DefaultScoringParams()

	for _, mode := range schema.AllScoringModes {
		t.Run(string(mode), func(t *testing.T) {
			got := scoreRecordMode(t, rec, mode, params)

			assert.Equal(t, schema.StatusIndeterminate, got.Status)
			assert.False(t, got.Rejected)
			assert.Nil(t, got.RejectionReason)
			assert.Nil(t, got.Score)
			assert.Nil(t, got.Breakdown)
		})
	}
}

func TestScoreModeCustomThresholdInReason(t *testing.T) {
	params := schema.DefaultScoringParams()
	cut := params.Modes[schema.CutMode]
	cut.Reject.MinProteinPer100Kcal = schema.F64(20.75)
	params.Modes[schema.CutMode] = cut

	rec := baseRecord() // 20.59 g per 100 kcal
	got := scoreRecordMode(t, rec, schema.CutMode, params)

	assert.Equal(t, schema.StatusRejected, got.Status)
	require.NotNil(t, got.RejectionReason)
	assert.Equal(t, "protein_per_100_kcal < 20.75", *got.RejectionReason)
}

func TestComputeCompositeRenormalizes(t *testing.T) {
	// Leucine unknown: its 0.30 cut weight redistributes over the rest.
	rec := baseRecord()
	rec.AminoAcids.ExtractedFields.EAAs.BCAAs.LeucineG = nil
	metrics, _ := deriveMetrics(&rec)

	params := schema.DefaultScoringParams()
	weights := params.Modes[schema.CutMode].Weights
	score, breakdown := computeComposite(&metrics, weights, params.Bounds)

	require.NotNil(t, score)
	require.Len(t, breakdown, 3)
	assert.NotContains(t, breakdown, schema.MetricLeucineG)

	var effectiveSum, contributionSum float64
	for _, component := range breakdown {
		effectiveSum += component.EffectiveWeight
		contributionSum += component.Contribution
	}
	assert.InDelta(t, 1.0, effectiveSum, 1e-9)
	assert.InDelta(t, *score, contributionSum, 1e-9)

	// protein_per_100_kcal keeps its configured weight but gains share.
	density := breakdown[schema.MetricProteinPer100Kcal]
	assert.InDelta(t, 0.40, density.Weight, 1e-9)
	assert.InDelta(t, 0.40/0.70, density.EffectiveWeight, 1e-9)
}

func TestComputeCompositeBreakdownFields(t *testing.T) {
	rec := baseRecord()
	metrics, _ := deriveMetrics(&rec)

	params := schema.DefaultScoringParams()
	weights := params.Modes[schema.CutMode].Weights
	score, breakdown := computeComposite(&metrics, weights, params.Bounds)

	require.NotNil(t, score)
	require.Len(t, breakdown, 4)

	leucine := breakdown[schema.MetricLeucineG]
	assert.InDelta(t, 2.269, leucine.RawValue, 1e-9)
	assert.InDelta(t, (2.269-1.8)/(3.0-1.8), leucine.Normalized, 1e-9)
	assert.InDelta(t, 0.30, leucine.Weight, 1e-9)
	assert.InDelta(t, 0.30, leucine.EffectiveWeight, 1e-9)
	assert.InDelta(t, leucine.Normalized*0.30, leucine.Contribution, 1e-9)
}

func TestNormalizeMetric(t *testing.T) {
	tests := []struct {
		name     string
		value    float64
		bounds   schema.NormBounds
		expected float64
	}{
		{"Below floor clips to zero", 10.0, schema.NormBounds{Floor: 15, Ceiling: 25}, 0.0},
		{"At floor clips to zero", 15.0, schema.NormBounds{Floor: 15, Ceiling: 25}, 0.0},
		{"Midpoint", 20.0, schema.NormBounds{Floor: 15, Ceiling: 25}, 0.5},
		{"At ceiling clips to one", 25.0, schema.NormBounds{Floor: 15, Ceiling: 25}, 1.0},
		{"Above ceiling clips to one", 40.0, schema.NormBounds{Floor: 15, Ceiling: 25}, 1.0},
		{"Inverted below floor scores one", 40.0, schema.NormBounds{Floor: 50, Ceiling: 250, Invert: true}, 1.0},
		{"Inverted midpoint", 150.0, schema.NormBounds{Floor: 50, Ceiling: 250, Invert: true}, 0.5},
		{"Inverted above ceiling scores zero", 300.0, schema.NormBounds{Floor: 50, Ceiling: 250, Invert: true}, 0.0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, normalizeMetric(tt.value, tt.bounds), 1e-9)
		})
	}
}

func TestScoreModeLeucineMonotonicity(t *testing.T) {
	// More leucine never lowers a non-rejected cut score.
	params := schema.DefaultScoringParams()
	var prev float64
	for i, leucine := range []float64{2.2, 2.4, 2.6, 2.8, 3.0, 3.5} {
		rec := baseRecord()
		rec.AminoAcids.ExtractedFields.EAAs.BCAAs.LeucineG = schema.F64(leucine)

		got := scoreRecordMode(t, rec, schema.CutMode, params)
		require.Equal(t, schema.StatusScored, got.Status)
		require.NotNil(t, got.Score)
		if i > 0 {
			assert.GreaterOrEqual(t, *got.Score, prev, "leucine %.1f", leucine)
		}
		prev = *got.Score
	}
}
