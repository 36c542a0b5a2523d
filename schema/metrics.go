package schema

// DerivedMetrics represents the comparable metrics computed for one product.
// Each pointer field is nil when a required input was absent or a divisor was
// zero; unknown values propagate and are never replaced with defaults. No
// rounding happens here; presentation layers format values.
type DerivedMetrics struct {
	ProteinPct        *float64 `json:"protein_pct"`           // protein_g / serving_size_g, a fraction
	ProteinPer100Kcal *float64 `json:"protein_per_100_kcal"`  // protein_g * 100 / energy_kcal
	EAAsPctRaw        *float64 `json:"eaas_pct_raw"`          // eaas_total_g / protein_g, unclamped
	EAAsPct           *float64 `json:"eaas_pct"`              // min(eaas_pct_raw, 1.0)
	BCAAsPctOfEAAs    *float64 `json:"bcaas_pct_of_eaas"`     // bcaas_total_g / eaas_total_g
	NonProteinMacrosG *float64 `json:"non_protein_macros_g"`  // carbohydrate_g + fat_g
	LeucineG          *float64 `json:"leucine_g_per_serving"` // basis-normalized leucine pass-through
	ProteinG          *float64 `json:"protein_g_per_serving"`
	SodiumMg          *float64 `json:"sodium_mg"`
	AddedSugarG       *float64 `json:"added_sugar_g"`
	TaurineG          *float64 `json:"taurine_g,omitempty"`
	HeavyMetalsTested *bool    `json:"heavy_metals_tested"`
}

// Metric returns the value backing a scoring metric key. The mapping is a
// fixed enumeration; keys outside it resolve to nil.
func (m *DerivedMetrics) Metric(key MetricKey) *float64 {
	switch key {
	case MetricProteinPct:
		return m.ProteinPct
	case MetricProteinPer100Kcal:
		return m.ProteinPer100Kcal
	case MetricEAAsPct:
		return m.EAAsPct
	case MetricLeucineG:
		return m.LeucineG
	case MetricProteinG:
		return m.ProteinG
	case MetricSodiumMg:
		return m.SodiumMg
	case MetricNonProteinMacrosG:
		return m.NonProteinMacrosG
	default:
		return nil
	}
}

// SpikingAssessment is the outcome of the amino-spiking heuristics for one
// product. It is a suspicion flag, not a diagnosis: rules whose inputs are
// unknown simply cannot trigger.
type SpikingAssessment struct {
	Suspected      bool          `json:"suspected"`
	TriggeredRules []SpikingRule `json:"triggered_rules"`
	GlycineRatio   *float64      `json:"glycine_ratio,omitempty"` // glycine_g / protein_g when computable
}

// SpikingRuleDetail is one heuristic's evaluation for display: the observed
// value (nil when its inputs were unknown), the configured threshold, and
// whether the rule triggered.
type SpikingRuleDetail struct {
	Rule      SpikingRule `json:"rule"`
	Observed  *float64    `json:"observed"`
	Threshold float64     `json:"threshold"`
	Triggered bool        `json:"triggered"`
}

// SpikingReportRow pairs one product's spiking assessment with the per-rule
// detail behind it.
type SpikingReportRow struct {
	Brand     string              `json:"brand"`
	Suspected bool                `json:"suspected"`
	Rules     []SpikingRuleDetail `json:"rules"`
}
