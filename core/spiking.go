package core

import (
	"github.com/AgitatedBuddha/protein-analyser/schema"
)

// spikingRuleOutcome is one heuristic evaluated against a product: the value
// it observed (nil when inputs were unknown), the threshold it compared
// against, and whether it triggered.
type spikingRuleOutcome struct {
	rule      schema.SpikingRule
	observed  *float64
	threshold float64
	triggered bool
}

// detectSpiking evaluates the four amino-spiking heuristics for one product.
// Each rule reads only values known at evaluation time; a rule whose inputs
// are unknown is false, never suspicious. Suspicion requires at least
// min_rules_required triggered rules, so a single anomaly is noted but not
// flagged. This is a heuristic screen, not a diagnostic.
func detectSpiking(rec *schema.ProductRecord, metrics *schema.DerivedMetrics, params *schema.SpikingParams) schema.SpikingAssessment {
	outcomes := evaluateSpikingRules(rec, metrics, params)

	assessment := schema.SpikingAssessment{
		TriggeredRules: []schema.SpikingRule{},
	}
	for _, o := range outcomes {
		if o.rule == schema.RuleGlycineDisproportion {
			assessment.GlycineRatio = o.observed
		}
		if o.triggered {
			assessment.TriggeredRules = append(assessment.TriggeredRules, o.rule)
		}
	}
	assessment.Suspected = len(assessment.TriggeredRules) >= params.MinRulesRequired

	return assessment
}

// evaluateSpikingRules runs every heuristic in its fixed order and returns
// the per-rule outcomes. Both the assessment and the per-rule display views
// are built from this single evaluation so they can never disagree.
func evaluateSpikingRules(rec *schema.ProductRecord, metrics *schema.DerivedMetrics, params *schema.SpikingParams) []spikingRuleOutcome {
	nut := rec.Nutrients.ExtractedFields
	amino := normalizeAminoProfile(rec.AminoAcids.ExtractedFields, nut.ServingSizeG)
	glycineRatio := ratio(amino.SEAAs.GlycineG, nut.ProteinG)

	return []spikingRuleOutcome{
		{
			rule:      schema.RuleGlycineDisproportion,
			observed:  glycineRatio,
			threshold: params.GlycineMaxRatio,
			triggered: exceeds(glycineRatio, params.GlycineMaxRatio),
		},
		{
			rule:      schema.RuleLowEAAs,
			observed:  metrics.EAAsPct,
			threshold: params.EAAMinFraction,
			triggered: below(metrics.EAAsPct, params.EAAMinFraction),
		},
		{
			rule:      schema.RuleBCAAsDominant,
			observed:  metrics.BCAAsPctOfEAAs,
			threshold: params.BCAAMaxFractionOfEAAs,
			triggered: exceeds(metrics.BCAAsPctOfEAAs, params.BCAAMaxFractionOfEAAs),
		},
		{
			// EAA mass above protein mass is physically impossible; it flags
			// a labeling or extraction inconsistency via the unclamped ratio.
			rule:      schema.RuleEAAsExceedProtein,
			observed:  metrics.EAAsPctRaw,
			threshold: 1.0,
			triggered: exceeds(metrics.EAAsPctRaw, 1.0),
		},
	}
}

// spikingRuleDetails converts rule outcomes into their display form.
func spikingRuleDetails(outcomes []spikingRuleOutcome) []schema.SpikingRuleDetail {
	details := make([]schema.SpikingRuleDetail, len(outcomes))
	for i, o := range outcomes {
		details[i] = schema.SpikingRuleDetail{
			Rule:      o.rule,
			Observed:  o.observed,
			Threshold: o.threshold,
			Triggered: o.triggered,
		}
	}
	return details
}

// exceeds reports whether a known value is strictly above the threshold.
func exceeds(value *float64, threshold float64) bool {
	return value != nil && *value > threshold
}

// below reports whether a known value is strictly under the threshold.
func below(value *float64, threshold float64) bool {
	return value != nil && *value < threshold
}
