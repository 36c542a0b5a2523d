package schema

// Custom string types for type safety.
type (
	// MetricKey identifies a derived metric used in scoring and breakdowns.
	MetricKey string

	// OutputMode represents the format of the output.
	OutputMode string

	// ModeStatus represents the terminal state of one mode pipeline.
	ModeStatus string

	// ScoringMode represents the fitness goal being scored.
	ScoringMode string

	// DatabaseBackend represents the database backend for the results store.
	DatabaseBackend string

	// ServingBasis states which mass the amino-profile values refer to.
	ServingBasis string

	// SpikingRule names one amino-spiking heuristic.
	SpikingRule string

	// Warning flags a label-credibility or physical-range anomaly on a report.
	Warning string
)

// Metric keys used in the scoring logic.
const (
	MetricProteinPct        MetricKey = "protein_pct"           // protein fraction of serving mass
	MetricProteinPer100Kcal MetricKey = "protein_per_100_kcal"  // grams of protein per 100 kcal
	MetricEAAsPct           MetricKey = "eaas_pct"              // EAA fraction of protein, clamped to 1
	MetricLeucineG          MetricKey = "leucine_g_per_serving" // leucine grams per serving
	MetricProteinG          MetricKey = "protein_g_per_serving" // protein grams per serving
	MetricSodiumMg          MetricKey = "sodium_mg"             // sodium milligrams per serving
	MetricNonProteinMacrosG MetricKey = "non_protein_macros_g"  // carbohydrate + fat grams
)

// All output modes supported.
const (
	CSVOut   OutputMode = "csv"
	TableOut OutputMode = "table" // default
	JSONOut  OutputMode = "json"
)

// All mode pipeline states supported. Pending is never terminal: every
// pipeline ends scored, rejected, or indeterminate.
const (
	StatusPending       ModeStatus = "pending"
	StatusScored        ModeStatus = "scored"
	StatusRejected      ModeStatus = "rejected"
	StatusIndeterminate ModeStatus = "indeterminate"
)

// All scoring modes supported.
const (
	CutMode   ScoringMode = "cut" // default
	BulkMode  ScoringMode = "bulk"
	CleanMode ScoringMode = "clean"
)

// All database backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite" // default
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgres"
	NoneBackend       DatabaseBackend = "none"
)

// Serving bases stated by amino-profile labels.
const (
	PerServing ServingBasis = "per_serving" // default when absent
	Per100G    ServingBasis = "per_100g"
)

// Amino-spiking rules, in evaluation order.
const (
	RuleGlycineDisproportion SpikingRule = "glycine_disproportion"
	RuleLowEAAs              SpikingRule = "low_eaas"
	RuleBCAAsDominant        SpikingRule = "bcaas_dominant"
	RuleEAAsExceedProtein    SpikingRule = "eaas_exceed_protein"
)

// Report warnings. Warnings are informational and never change a score.
const (
	WarnMissingMacros         Warning = "missing_macros"
	WarnSodiumReportedZero    Warning = "sodium_reported_zero"
	WarnHeavyMetalsUntested   Warning = "heavy_metals_untested"
	WarnProteinExceedsServing Warning = "protein_exceeds_serving"
)

// NegativeValueWarning builds the warning for a field carrying a negative mass
// or energy value.
func NegativeValueWarning(field string) Warning {
	return Warning("negative_value: " + field)
}

// AllScoringModes returns a list of all supported scoring modes.
var AllScoringModes = []ScoringMode{CutMode, BulkMode, CleanMode}

// AllSpikingRules lists the detection rules in evaluation order.
var AllSpikingRules = []SpikingRule{
	RuleGlycineDisproportion,
	RuleLowEAAs,
	RuleBCAAsDominant,
	RuleEAAsExceedProtein,
}

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	CSVOut:   {},
	TableOut: {},
	JSONOut:  {},
}

// ValidScoringModes lists all valid scoring modes.
var ValidScoringModes = map[ScoringMode]struct{}{
	CutMode:   {},
	BulkMode:  {},
	CleanMode: {},
}

// ValidDatabaseBackends lists all valid results-store backends.
var ValidDatabaseBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}

// ValidMetricKeys lists the metric keys usable in weight tables and
// normalization bounds.
var ValidMetricKeys = map[MetricKey]struct{}{
	MetricProteinPct:        {},
	MetricProteinPer100Kcal: {},
	MetricEAAsPct:           {},
	MetricLeucineG:          {},
	MetricProteinG:          {},
	MetricSodiumMg:          {},
	MetricNonProteinMacrosG: {},
}

// GetDefaultWeights returns the default weight map for a given scoring mode.
func GetDefaultWeights(mode ScoringMode) map[MetricKey]float64 {
	switch mode {
	case BulkMode:
		return map[MetricKey]float64{
			MetricEAAsPct:    0.30,
			MetricLeucineG:   0.25,
			MetricProteinG:   0.10,
			MetricProteinPct: 0.35,
		}
	case CleanMode:
		return map[MetricKey]float64{
			MetricEAAsPct:           0.15,
			MetricLeucineG:          0.10,
			MetricNonProteinMacrosG: 0.30,
			MetricProteinPct:        0.10,
			MetricSodiumMg:          0.35,
		}
	default: // CutMode
		return map[MetricKey]float64{
			MetricEAAsPct:           0.10,
			MetricLeucineG:          0.30,
			MetricProteinPct:        0.20,
			MetricProteinPer100Kcal: 0.40,
		}
	}
}
