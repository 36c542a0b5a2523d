package core

import (
	"maps"
	"slices"
	"strconv"

	"github.com/AgitatedBuddha/protein-analyser/schema"
)

// scoreMode runs one fitness-goal pipeline for one product: the mode's hard
// reject predicates in their fixed order, then the weighted composite over
// whatever sub-scores are available. Dispatch is fully enumerated; thresholds
// and weights come from params, never from package state.
func scoreMode(metrics *schema.DerivedMetrics, spiking *schema.SpikingAssessment, mode schema.ScoringMode, params *schema.ScoringParams) schema.ModeScore {
	result := schema.ModeScore{
		Mode:   mode,
		Status: schema.StatusPending,
	}

	modeParams := params.Modes[mode]

	if reason := evaluateRejects(metrics, spiking, modeParams.Reject); reason != nil {
		result.Status = schema.StatusRejected
		result.Rejected = true
		result.RejectionReason = reason
		return result
	}

	score, breakdown := computeComposite(metrics, modeParams.Weights, params.Bounds)
	if score == nil {
		// Every sub-score was unknown: nothing to grade, nothing to reject.
		result.Status = schema.StatusIndeterminate
		return result
	}

	result.Status = schema.StatusScored
	result.Score = score
	result.Breakdown = breakdown
	return result
}

// evaluateRejects walks the hard-reject predicates in their fixed order and
// returns the reason for the first one that fires, or nil. A predicate whose
// metric is unknown cannot fire: missing data never rejects. Comparisons are
// strict, so a value exactly at its threshold passes.
func evaluateRejects(metrics *schema.DerivedMetrics, spiking *schema.SpikingAssessment, reject schema.RejectParams) *string {
	if reject.MinProteinPer100Kcal != nil && below(metrics.ProteinPer100Kcal, *reject.MinProteinPer100Kcal) {
		return rejectReason(schema.MetricProteinPer100Kcal, "<", *reject.MinProteinPer100Kcal)
	}
	if reject.MinLeucineG != nil && below(metrics.LeucineG, *reject.MinLeucineG) {
		return rejectReason(schema.MetricLeucineG, "<", *reject.MinLeucineG)
	}
	if reject.MaxSodiumMg != nil && exceeds(metrics.SodiumMg, *reject.MaxSodiumMg) {
		return rejectReason(schema.MetricSodiumMg, ">", *reject.MaxSodiumMg)
	}
	if reject.MaxAddedSugarG != nil && exceeds(metrics.AddedSugarG, *reject.MaxAddedSugarG) {
		return rejectReason("added_sugar_g", ">", *reject.MaxAddedSugarG)
	}
	if reject.RejectOnSpiking && spiking.Suspected {
		reason := "amino_spiking_suspected"
		return &reason
	}
	return nil
}

// rejectReason renders a reason like "protein_per_100_kcal < 18" with the
// configured threshold, so a tuned configuration reports its own numbers.
func rejectReason(metric schema.MetricKey, op string, threshold float64) *string {
	reason := string(metric) + " " + op + " " + strconv.FormatFloat(threshold, 'f', -1, 64)
	return &reason
}

// computeComposite builds the weighted composite score over the available
// sub-scores. Unknown metrics are excluded and the remaining weights
// renormalized to sum to 1, never treated as zero. Metrics accumulate in
// sorted-name order so the floating-point sum is reproducible. Returns nil
// when no sub-score is available.
func computeComposite(metrics *schema.DerivedMetrics, weights map[schema.MetricKey]float64, bounds map[schema.MetricKey]schema.NormBounds) (*float64, map[schema.MetricKey]schema.ComponentScore) {
	keys := slices.Sorted(maps.Keys(weights))

	var availableWeight float64
	for _, key := range keys {
		if metrics.Metric(key) != nil {
			availableWeight += weights[key]
		}
	}
	if availableWeight == 0 {
		return nil, nil
	}

	breakdown := make(map[schema.MetricKey]schema.ComponentScore, len(keys))
	var composite float64
	for _, key := range keys {
		value := metrics.Metric(key)
		if value == nil {
			continue
		}
		normalized := normalizeMetric(*value, bounds[key])
		effectiveWeight := weights[key] / availableWeight
		contribution := normalized * effectiveWeight
		composite += contribution

		breakdown[key] = schema.ComponentScore{
			RawValue:        *value,
			Normalized:      normalized,
			Weight:          weights[key],
			EffectiveWeight: effectiveWeight,
			Contribution:    contribution,
		}
	}

	return &composite, breakdown
}

// normalizeMetric maps a raw value linearly onto [0,1] between the configured
// floor and ceiling, clipping outside them. Inverted bounds score in the
// opposite direction for lower-is-better metrics.
func normalizeMetric(value float64, b schema.NormBounds) float64 {
	var normalized float64
	switch {
	case value <= b.Floor:
		normalized = 0
	case value >= b.Ceiling:
		normalized = 1
	default:
		normalized = (value - b.Floor) / (b.Ceiling - b.Floor)
	}
	if b.Invert {
		return 1 - normalized
	}
	return normalized
}
