package schema

// DefaultScoringVersion identifies the embedded scoring configuration.
const DefaultScoringVersion = "2026-08"

// ScoringParams is the versioned scoring configuration document. It is loaded
// once per run, validated, and treated as read-only for the duration of
// scoring; every scoring call receives it explicitly.
type ScoringParams struct {
	Version string                     `yaml:"version" json:"version"`
	Spiking SpikingParams              `yaml:"spiking" json:"spiking"`
	Modes   map[ScoringMode]ModeParams `yaml:"modes" json:"modes"`
	Bounds  map[MetricKey]NormBounds   `yaml:"bounds" json:"bounds"`
}

// SpikingParams holds the thresholds for the amino-spiking heuristics.
type SpikingParams struct {
	MinRulesRequired      int     `yaml:"min_rules_required" json:"min_rules_required"`
	GlycineMaxRatio       float64 `yaml:"glycine_max_ratio" json:"glycine_max_ratio"`
	EAAMinFraction        float64 `yaml:"eaa_min_fraction" json:"eaa_min_fraction"`
	BCAAMaxFractionOfEAAs float64 `yaml:"bcaa_max_fraction_of_eaas" json:"bcaa_max_fraction_of_eaas"`
}

// ModeParams holds one mode's hard-reject thresholds and sub-score weights.
type ModeParams struct {
	Reject  RejectParams          `yaml:"reject,omitempty" json:"reject,omitempty"`
	Weights map[MetricKey]float64 `yaml:"weights" json:"weights"`
}

// RejectParams holds hard-reject thresholds. A nil threshold disables its
// predicate, so bulk carries an empty struct and never rejects.
type RejectParams struct {
	MinProteinPer100Kcal *float64 `yaml:"min_protein_per_100_kcal,omitempty" json:"min_protein_per_100_kcal,omitempty"`
	MinLeucineG          *float64 `yaml:"min_leucine_g,omitempty" json:"min_leucine_g,omitempty"`
	MaxSodiumMg          *float64 `yaml:"max_sodium_mg,omitempty" json:"max_sodium_mg,omitempty"`
	MaxAddedSugarG       *float64 `yaml:"max_added_sugar_g,omitempty" json:"max_added_sugar_g,omitempty"`
	RejectOnSpiking      bool     `yaml:"reject_on_spiking,omitempty" json:"reject_on_spiking,omitempty"`
}

// NormBounds maps a raw metric linearly onto [0,1]: values at or below the
// floor clip to 0, at or above the ceiling clip to 1. Invert reverses the
// direction for lower-is-better metrics such as sodium. Floor must stay
// strictly below ceiling either way.
type NormBounds struct {
	Floor   float64 `yaml:"floor" json:"floor"`
	Ceiling float64 `yaml:"ceiling" json:"ceiling"`
	Invert  bool    `yaml:"invert,omitempty" json:"invert,omitempty"`
}

// GetDefaultBounds returns the default normalization bounds per metric.
func GetDefaultBounds() map[MetricKey]NormBounds {
	return map[MetricKey]NormBounds{
		MetricProteinPer100Kcal: {Floor: 15.0, Ceiling: 25.0},
		MetricLeucineG:          {Floor: 1.8, Ceiling: 3.0},
		MetricProteinPct:        {Floor: 0.60, Ceiling: 0.90},
		MetricEAAsPct:           {Floor: 0.35, Ceiling: 0.50},
		MetricProteinG:          {Floor: 15.0, Ceiling: 30.0},
		MetricSodiumMg:          {Floor: 50.0, Ceiling: 250.0, Invert: true},
		MetricNonProteinMacrosG: {Floor: 1.0, Ceiling: 8.0, Invert: true},
	}
}

// GetDefaultRejects returns the default hard-reject thresholds for a mode.
func GetDefaultRejects(mode ScoringMode) RejectParams {
	switch mode {
	case CutMode:
		return RejectParams{
			MinProteinPer100Kcal: F64(18.0),
			MinLeucineG:          F64(2.2),
		}
	case CleanMode:
		return RejectParams{
			MaxSodiumMg:     F64(250.0),
			MaxAddedSugarG:  F64(0.0),
			RejectOnSpiking: true,
		}
	default: // BulkMode never hard-rejects
		return RejectParams{}
	}
}

// GetDefaultSpikingParams returns the default amino-spiking thresholds.
func GetDefaultSpikingParams() SpikingParams {
	return SpikingParams{
		MinRulesRequired:      2,
		GlycineMaxRatio:       0.05,
		EAAMinFraction:        0.40,
		BCAAMaxFractionOfEAAs: 0.60,
	}
}

// DefaultScoringParams assembles the embedded scoring configuration. Callers
// that need a tuned configuration load a YAML document instead.
func DefaultScoringParams() *ScoringParams {
	modes := make(map[ScoringMode]ModeParams, len(AllScoringModes))
	for _, mode := range AllScoringModes {
		modes[mode] = ModeParams{
			Reject:  GetDefaultRejects(mode),
			Weights: GetDefaultWeights(mode),
		}
	}
	return &ScoringParams{
		Version: DefaultScoringVersion,
		Spiking: GetDefaultSpikingParams(),
		Modes:   modes,
		Bounds:  GetDefaultBounds(),
	}
}

// F64 returns a pointer to v. Convenience for optional numeric fields.
func F64(v float64) *float64 { return &v }
