package schema

// ComponentScore records how one sub-score contributed to a composite.
type ComponentScore struct {
	RawValue        float64 `json:"raw_value"`
	Normalized      float64 `json:"normalized"`
	Weight          float64 `json:"weight"`           // configured weight
	EffectiveWeight float64 `json:"effective_weight"` // weight after renormalization over available metrics
	Contribution    float64 `json:"contribution"`     // normalized * effective_weight
}

// ModeScore is the terminal result of one mode pipeline for one product.
// Score is nil unless the status is scored; RejectionReason is nil unless the
// status is rejected.
type ModeScore struct {
	Mode            ScoringMode                  `json:"mode"`
	Status          ModeStatus                   `json:"status"`
	Rejected        bool                         `json:"rejected"`
	RejectionReason *string                      `json:"rejection_reason"`
	Score           *float64                     `json:"score"`
	Breakdown       map[MetricKey]ComponentScore `json:"breakdown,omitempty"`
}

// Economics is the derived pack economics for one product. Fields stay nil
// when weight, price, or serving size is unknown.
type Economics struct {
	PricePerKg      *float64 `json:"price_per_kg,omitempty"`
	ServingsPerPack *float64 `json:"servings_per_pack,omitempty"`
	PricePerServing *float64 `json:"price_per_serving,omitempty"`
}

// ScoreReport is the immutable aggregate scoring result for one product.
// Regenerating it from the same ProductRecord and ScoringParams marshals to a
// byte-identical document.
type ScoreReport struct {
	Brand          string            `json:"brand"`
	ScoringVersion string            `json:"scoring_version"`
	Metrics        DerivedMetrics    `json:"metrics"`
	Spiking        SpikingAssessment `json:"amino_spiking"`
	Cut            ModeScore         `json:"cut"`
	Bulk           ModeScore         `json:"bulk"`
	Clean          ModeScore         `json:"clean"`
	Economics      *Economics        `json:"economics,omitempty"`
	Warnings       []Warning         `json:"warnings"`
}

// ModeScoreFor returns the result of the named mode pipeline.
func (r *ScoreReport) ModeScoreFor(mode ScoringMode) ModeScore {
	switch mode {
	case BulkMode:
		return r.Bulk
	case CleanMode:
		return r.Clean
	default:
		return r.Cut
	}
}

// LeaderboardEntry is one ranked row of a per-mode comparison.
type LeaderboardEntry struct {
	Rank            int         `json:"rank"`
	Brand           string      `json:"brand"`
	Mode            ScoringMode `json:"mode"`
	Status          ModeStatus  `json:"status"`
	Score           *float64    `json:"score"`
	RejectionReason *string     `json:"rejection_reason,omitempty"`
	PricePerServing *float64    `json:"price_per_serving,omitempty"`
}

// RunCounts summarizes one scoring run for the results store. The scored,
// rejected, and indeterminate tallies classify each product by the pipeline
// of the run's selected mode.
type RunCounts struct {
	Records       int
	Scored        int
	Rejected      int
	Indeterminate int
}
