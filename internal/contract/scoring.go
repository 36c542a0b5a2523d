package contract

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/AgitatedBuddha/protein-analyser/schema"
	"gopkg.in/yaml.v3"
)

// WeightSumTolerance bounds how far a mode's weight sum may drift from 1.0
// before the configuration is rejected.
const WeightSumTolerance = 0.001

// LoadScoringParams returns the scoring configuration from a YAML file, or the
// embedded defaults when path is empty. The document is validated before it is
// returned; an invalid configuration is never silently corrected.
func LoadScoringParams(path string) (*schema.ScoringParams, error) {
	if path == "" {
		return schema.DefaultScoringParams(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scoring config %q: %w", path, err)
	}

	params := &schema.ScoringParams{}
	if err := yaml.Unmarshal(data, params); err != nil {
		return nil, fmt.Errorf("failed to parse scoring config %q: %w", path, err)
	}

	if err := ValidateScoringParams(params); err != nil {
		return nil, fmt.Errorf("invalid scoring config %q: %w", path, err)
	}

	return params, nil
}

// ValidateScoringParams checks a scoring configuration document. All checks
// run at load time so scoring never sees a bad weight table or bound.
func ValidateScoringParams(params *schema.ScoringParams) error {
	if strings.TrimSpace(params.Version) == "" {
		return errors.New("scoring version must not be empty")
	}

	if err := validateSpikingParams(params.Spiking); err != nil {
		return err
	}

	for _, mode := range schema.AllScoringModes {
		mp, ok := params.Modes[mode]
		if !ok {
			return fmt.Errorf("missing configuration for mode %s", mode)
		}
		if err := validateModeParams(mode, mp, params.Bounds); err != nil {
			return err
		}
	}

	for _, key := range sortedBoundKeys(params.Bounds) {
		if _, ok := schema.ValidMetricKeys[key]; !ok {
			return fmt.Errorf("unknown metric '%s' in bounds", key)
		}
		bounds := params.Bounds[key]
		if bounds.Floor >= bounds.Ceiling {
			return fmt.Errorf("bounds for %s must have floor < ceiling (received %.3f >= %.3f)", key, bounds.Floor, bounds.Ceiling)
		}
	}

	return nil
}

// validateSpikingParams checks the amino-spiking thresholds.
func validateSpikingParams(sp schema.SpikingParams) error {
	if sp.MinRulesRequired < 1 {
		return fmt.Errorf("spiking min_rules_required must be at least 1 (received %d)", sp.MinRulesRequired)
	}
	if sp.GlycineMaxRatio <= 0 {
		return fmt.Errorf("spiking glycine_max_ratio must be positive (received %.3f)", sp.GlycineMaxRatio)
	}
	if sp.EAAMinFraction <= 0 {
		return fmt.Errorf("spiking eaa_min_fraction must be positive (received %.3f)", sp.EAAMinFraction)
	}
	if sp.BCAAMaxFractionOfEAAs <= 0 {
		return fmt.Errorf("spiking bcaa_max_fraction_of_eaas must be positive (received %.3f)", sp.BCAAMaxFractionOfEAAs)
	}
	return nil
}

// validateModeParams checks one mode's weight table and reject thresholds.
func validateModeParams(mode schema.ScoringMode, mp schema.ModeParams, bounds map[schema.MetricKey]schema.NormBounds) error {
	if len(mp.Weights) == 0 {
		return fmt.Errorf("mode %s must define at least one weight", mode)
	}

	sum := 0.0
	for _, key := range sortedWeightKeys(mp.Weights) {
		weight := mp.Weights[key]
		if _, ok := schema.ValidMetricKeys[key]; !ok {
			return fmt.Errorf("unknown metric '%s' in %s weights", key, mode)
		}
		if weight < 0 {
			return fmt.Errorf("weight for %s.%s must be non-negative (received %.3f)", mode, key, weight)
		}
		if _, ok := bounds[key]; !ok {
			return fmt.Errorf("metric %s in %s weights has no normalization bounds", key, mode)
		}
		sum += weight
	}
	if sum < 1.0-WeightSumTolerance || sum > 1.0+WeightSumTolerance {
		return fmt.Errorf("weights for mode %s must sum to 1.0, got %.3f", mode, sum)
	}

	return validateRejectParams(mode, mp.Reject)
}

// validateRejectParams checks that configured hard-reject thresholds carry
// physically sensible values.
func validateRejectParams(mode schema.ScoringMode, rp schema.RejectParams) error {
	check := func(name string, v *float64) error {
		if v != nil && *v < 0 {
			return fmt.Errorf("reject threshold %s for mode %s must be non-negative (received %.3f)", name, mode, *v)
		}
		return nil
	}
	if err := check("min_protein_per_100_kcal", rp.MinProteinPer100Kcal); err != nil {
		return err
	}
	if err := check("min_leucine_g", rp.MinLeucineG); err != nil {
		return err
	}
	if err := check("max_sodium_mg", rp.MaxSodiumMg); err != nil {
		return err
	}
	return check("max_added_sugar_g", rp.MaxAddedSugarG)
}

// ApplyWeightOverride replaces the weight table for one mode and re-validates
// the whole document, so an override can never smuggle in a bad table.
func ApplyWeightOverride(params *schema.ScoringParams, mode schema.ScoringMode, weights map[schema.MetricKey]float64) error {
	if len(weights) == 0 {
		return fmt.Errorf("weight override for mode %s must define at least one weight", mode)
	}
	mp := params.Modes[mode]
	mp.Weights = weights
	params.Modes[mode] = mp
	return ValidateScoringParams(params)
}

// sortedWeightKeys returns weight-table keys in sorted order so validation
// errors and sums are reproducible.
func sortedWeightKeys(weights map[schema.MetricKey]float64) []schema.MetricKey {
	keys := make([]schema.MetricKey, 0, len(weights))
	for key := range weights {
		keys = append(keys, key)
	}
	slices.Sort(keys)
	return keys
}

// sortedBoundKeys returns bounds keys in sorted order.
func sortedBoundKeys(bounds map[schema.MetricKey]schema.NormBounds) []schema.MetricKey {
	keys := make([]schema.MetricKey, 0, len(bounds))
	for key := range bounds {
		keys = append(keys, key)
	}
	slices.Sort(keys)
	return keys
}
