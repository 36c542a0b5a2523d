package core

import (
	"testing"

	"github.com/AgitatedBuddha/protein-analyser/internal/contract"
	"github.com/AgitatedBuddha/protein-analyser/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func checkConfig(minScore float64, allowRejected bool) *contract.Config {
	return &contract.Config{
		Mode:          schema.CutMode,
		MinScore:      minScore,
		AllowRejected: allowRejected,
		Scoring:       schema.DefaultScoringParams(),
	}
}

func TestEvaluateCheckAllPass(t *testing.T) {
	reports := []schema.ScoreReport{
		reportWith("strong", schema.StatusScored, schema.F64(0.72)),
		reportWith("stronger", schema.StatusScored, schema.F64(0.81)),
	}

	result := evaluateCheck(reports, checkConfig(0.40, false))

	assert.True(t, result.Passed())
	assert.Equal(t, 2, result.TotalProducts)
	assert.Empty(t, result.Violations)
	assert.Equal(t, "stronger", result.BestBrand)
	require.NotNil(t, result.BestScore)
	assert.InDelta(t, 0.81, *result.BestScore, 1e-9)
	require.NotNil(t, result.AvgScore)
	assert.InDelta(t, 0.765, *result.AvgScore, 1e-9)
}

func TestEvaluateCheckRejectedViolates(t *testing.T) {
	reason := "sodium_mg > 250"
	report := reportWith("salty", schema.StatusRejected, nil)
	report.Cut.RejectionReason = &reason

	result := evaluateCheck([]schema.ScoreReport{report}, checkConfig(0.40, false))

	assert.False(t, result.Passed())
	require.Len(t, result.Violations, 1)
	assert.Equal(t, "salty", result.Violations[0].Brand)
	assert.Equal(t, "rejected: sodium_mg > 250", result.Violations[0].Reason)
}

func TestEvaluateCheckAllowRejected(t *testing.T) {
	report := reportWith("salty", schema.StatusRejected, nil)

	result := evaluateCheck([]schema.ScoreReport{report}, checkConfig(0.40, true))

	assert.True(t, result.Passed())
	assert.Empty(t, result.Violations)
}

func TestEvaluateCheckMinScoreViolation(t *testing.T) {
	reports := []schema.ScoreReport{
		reportWith("weak", schema.StatusScored, schema.F64(0.35)),
		reportWith("fine", schema.StatusScored, schema.F64(0.55)),
	}

	result := evaluateCheck(reports, checkConfig(0.40, false))

	assert.False(t, result.Passed())
	require.Len(t, result.Violations, 1)
	assert.Equal(t, "weak", result.Violations[0].Brand)
	assert.Equal(t, "score 0.350 < min 0.400", result.Violations[0].Reason)
	require.NotNil(t, result.Violations[0].Score)
}

func TestEvaluateCheckScoreAtMinPasses(t *testing.T) {
	reports := []schema.ScoreReport{
		reportWith("borderline", schema.StatusScored, schema.F64(0.40)),
	}

	result := evaluateCheck(reports, checkConfig(0.40, false))
	assert.True(t, result.Passed())
}

func TestEvaluateCheckIndeterminatePassesButCounts(t *testing.T) {
	reports := []schema.ScoreReport{
		reportWith("label_only", schema.StatusIndeterminate, nil),
		reportWith("fine", schema.StatusScored, schema.F64(0.55)),
	}

	result := evaluateCheck(reports, checkConfig(0.40, false))

	assert.True(t, result.Passed(), "missing label data must never fail the gate")
	assert.Equal(t, 1, result.Indeterminate)
	assert.Equal(t, 2, result.TotalProducts)
	require.NotNil(t, result.AvgScore)
	assert.InDelta(t, 0.55, *result.AvgScore, 1e-9, "indeterminate products stay out of the average")
}

func TestEvaluateCheckEmptyBatch(t *testing.T) {
	result := evaluateCheck(nil, checkConfig(0.40, false))

	assert.True(t, result.Passed())
	assert.Equal(t, 0, result.TotalProducts)
	assert.Nil(t, result.BestScore)
	assert.Nil(t, result.AvgScore)
}
