package contract

import (
	"fmt"
	"maps"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"github.com/AgitatedBuddha/protein-analyser/schema"
)

// Default values for configuration.
const (
	DefaultResultLimit = 25
	MaxResultLimit     = 1000
	DefaultPrecision   = 3
	MaxPrecision       = 6
	DefaultInputPath   = "./output"
	DefaultServeAddr   = ":8080"
	DefaultMinScore    = 0.40
)

// DefaultWorkers is the default number of concurrent workers to use.
var DefaultWorkers = runtime.GOMAXPROCS(0)

// ProfileConfig holds profiling settings.
type ProfileConfig struct {
	Enabled bool
	Prefix  string
}

// Config holds the runtime configuration for a scoring run.
// This struct remains the "final, validated" config.
type Config struct {
	InputPath   string // Record file or directory, resolved to an absolute path
	ResultLimit int
	Workers     int
	Mode        schema.ScoringMode
	Detail      bool
	Explain     bool
	Precision   int
	Output      schema.OutputMode
	OutputFile  string
	Width       int // Terminal width override (0 = auto-detect)

	// Scoring is the validated scoring configuration for this run. Immutable
	// once set; every scoring call receives it explicitly.
	Scoring     *schema.ScoringParams
	ScoringFile string // Source path, empty when the embedded defaults are in use

	GradeThresholds schema.GradeThresholds

	RecordRuns   bool
	StoreBackend schema.DatabaseBackend
	StoreConnect string // Please use env var as this is plaintext

	ServeAddr string

	MinScore      float64 // check command: lowest acceptable composite score
	AllowRejected bool    // check command: tolerate rejected products

	UseColors bool // Enable colored labels in table output
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	// This is set manually from positional args, so no tag
	InputPathStr string

	// --- Fields from rootCmd.PersistentFlags() ---
	Limit        int    `mapstructure:"limit"`
	Workers      int    `mapstructure:"workers"`
	Mode         string `mapstructure:"mode"`
	Precision    int    `mapstructure:"precision"`
	Output       string `mapstructure:"output"`
	OutputFile   string `mapstructure:"output-file"`
	Detail       bool   `mapstructure:"detail"`
	Explain      bool   `mapstructure:"explain"`
	Width        int    `mapstructure:"width"`
	Color        string `mapstructure:"color"`
	Scoring      string `mapstructure:"scoring"`
	WeightsStr   string `mapstructure:"weights"`
	GradesStr    string `mapstructure:"grade-thresholds"`
	Record       bool   `mapstructure:"record"`
	StoreBackend string `mapstructure:"store-backend"`
	StoreConnect string `mapstructure:"store-conn"`

	// --- Fields from serveCmd.Flags() ---
	Addr string `mapstructure:"addr"`

	// --- Fields from checkCmd.Flags() ---
	MinScore      float64 `mapstructure:"min-score"`
	AllowRejected bool    `mapstructure:"allow-rejected"`
}

// Clone returns a deep copy of the Config struct. The scoring parameters are
// copied too, so per-request overrides never leak into the base config.
func (c *Config) Clone() *Config {
	clone := *c
	if c.Scoring != nil {
		clone.Scoring = cloneScoringParams(c.Scoring)
	}
	return &clone
}

// cloneScoringParams deep-copies a scoring configuration document.
func cloneScoringParams(p *schema.ScoringParams) *schema.ScoringParams {
	clone := *p
	clone.Modes = make(map[schema.ScoringMode]schema.ModeParams, len(p.Modes))
	for mode, mp := range p.Modes {
		cp := mp
		cp.Weights = make(map[schema.MetricKey]float64, len(mp.Weights))
		maps.Copy(cp.Weights, mp.Weights)
		clone.Modes[mode] = cp
	}
	clone.Bounds = make(map[schema.MetricKey]schema.NormBounds, len(p.Bounds))
	maps.Copy(clone.Bounds, p.Bounds)
	return &clone
}

// ProcessAndValidate performs all complex parsing and validation on the raw inputs
// and updates the final Config struct.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	// All validation functions read from 'input' and populate 'cfg'.
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	if err := validateStoreInputs(cfg, input); err != nil {
		return err
	}
	if err := processScoringParams(cfg, input); err != nil {
		return err
	}
	if err := processGradeThresholds(cfg, input); err != nil {
		return err
	}
	if err := resolveInputPath(cfg, input); err != nil {
		return err
	}
	return nil
}

// ValidateDatabaseConnectionString validates the format of database connection strings
// for MySQL and PostgreSQL backends.
func ValidateDatabaseConnectionString(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.SQLiteBackend, schema.NoneBackend:
		return nil
	case schema.MySQLBackend:
		if connStr == "" {
			return fmt.Errorf("store-conn is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "@tcp(") {
			return fmt.Errorf("MySQL connection string must contain '@tcp(' for host:port specification")
		}
		if !strings.Contains(connStr, "/") {
			return fmt.Errorf("MySQL connection string must contain '/' followed by database name")
		}
	case schema.PostgreSQLBackend:
		if connStr == "" {
			return fmt.Errorf("store-conn is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "host=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'host=' parameter")
		}
		if !strings.Contains(connStr, "dbname=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'dbname=' parameter")
		}
	}
	return nil
}

// validateSimpleInputs processes and validates all non-store, non-scoring fields.
func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	// --- 0. Transfer simple non-validated fields from input -> cfg ---
	cfg.OutputFile = input.OutputFile
	cfg.Detail = input.Detail
	cfg.Explain = input.Explain
	cfg.Width = input.Width
	cfg.RecordRuns = input.Record
	cfg.AllowRejected = input.AllowRejected

	// Parse color flag
	colors, err := ParseBoolString(input.Color)
	if err != nil {
		return fmt.Errorf("invalid --color value: %w", err)
	}
	cfg.UseColors = colors

	// --- 1. ResultLimit Validation ---
	if input.Limit <= 0 || input.Limit > MaxResultLimit {
		return fmt.Errorf("limit must be greater than 0 and cannot exceed %d (received %d)", MaxResultLimit, input.Limit)
	}
	cfg.ResultLimit = input.Limit

	// --- 2. Workers Validation ---
	if input.Workers <= 0 {
		return fmt.Errorf("workers must be greater than 0 (received %d)", input.Workers)
	}
	cfg.Workers = input.Workers

	// --- 3. Mode Validation ---
	cfg.Mode = schema.ScoringMode(strings.ToLower(input.Mode))
	if _, ok := schema.ValidScoringModes[cfg.Mode]; !ok {
		return fmt.Errorf("invalid mode '%s'. must be cut, bulk, clean", input.Mode)
	}

	// --- 4. Precision and Output Validation ---
	if input.Precision < 0 || input.Precision > MaxPrecision {
		return fmt.Errorf("precision must be between 0 and %d (received %d)", MaxPrecision, input.Precision)
	}
	cfg.Precision = input.Precision

	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be table, csv, json", cfg.Output)
	}

	// --- 5. Serve Address ---
	cfg.ServeAddr = input.Addr
	if cfg.ServeAddr == "" {
		cfg.ServeAddr = DefaultServeAddr
	}

	// --- 6. Check Gate ---
	if input.MinScore < 0.0 || input.MinScore > 1.0 {
		return fmt.Errorf("min-score must be between 0.0 and 1.0 (received %.3f)", input.MinScore)
	}
	cfg.MinScore = input.MinScore

	return nil
}

// validateStoreInputs validates the results-store backend configuration.
func validateStoreInputs(cfg *Config, input *ConfigRawInput) error {
	cfg.StoreBackend = schema.DatabaseBackend(strings.ToLower(input.StoreBackend))
	if _, ok := schema.ValidDatabaseBackends[cfg.StoreBackend]; !ok {
		return fmt.Errorf("invalid store backend '%s'. must be sqlite, mysql, postgres, none", input.StoreBackend)
	}
	cfg.StoreConnect = input.StoreConnect
	if err := ValidateDatabaseConnectionString(cfg.StoreBackend, cfg.StoreConnect); err != nil {
		return err
	}
	if cfg.RecordRuns && cfg.StoreBackend == schema.NoneBackend {
		return fmt.Errorf("--record requires a store backend other than none")
	}
	return nil
}

// processScoringParams loads the scoring configuration, applies any CLI weight
// override for the selected mode, and re-validates.
func processScoringParams(cfg *Config, input *ConfigRawInput) error {
	params, err := LoadScoringParams(input.Scoring)
	if err != nil {
		return err
	}

	if input.WeightsStr != "" {
		weights, err := ParseWeightsString(input.WeightsStr)
		if err != nil {
			return fmt.Errorf("invalid --weights format: %w", err)
		}
		if err := ApplyWeightOverride(params, cfg.Mode, weights); err != nil {
			return err
		}
	}

	cfg.Scoring = params
	cfg.ScoringFile = input.Scoring
	return nil
}

// processGradeThresholds parses the grade-label cutoffs.
func processGradeThresholds(cfg *Config, input *ConfigRawInput) error {
	thresholds, err := ParseGradeThresholdsString(input.GradesStr)
	if err != nil {
		return fmt.Errorf("invalid --grade-thresholds format: %w", err)
	}
	cfg.GradeThresholds = thresholds
	return nil
}

// resolveInputPath makes the record path absolute. Existence is checked at
// ingest time, so commands that never read records accept a missing default.
func resolveInputPath(cfg *Config, input *ConfigRawInput) error {
	searchPath := input.InputPathStr
	if searchPath == "" {
		searchPath = DefaultInputPath
	}
	absSearchPath, err := filepath.Abs(searchPath)
	if err != nil {
		return err
	}
	cfg.InputPath = filepath.Clean(absSearchPath)
	return nil
}

// ParseWeightsString parses a string like "protein_pct:0.35,eaas_pct:0.30"
// into a map of MetricKey to float64.
func ParseWeightsString(s string) (map[schema.MetricKey]float64, error) {
	weights := make(map[schema.MetricKey]float64)

	if s == "" {
		return weights, nil
	}

	parts := strings.SplitSeq(s, ",")
	for part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		keyValue := strings.Split(part, ":")
		if len(keyValue) != 2 {
			return nil, fmt.Errorf("invalid weight format '%s', expected 'metric:value'", part)
		}

		key := schema.MetricKey(strings.TrimSpace(keyValue[0]))
		valueStr := strings.TrimSpace(keyValue[1])

		if _, ok := schema.ValidMetricKeys[key]; !ok {
			return nil, fmt.Errorf("unknown metric '%s'", key)
		}

		value, err := strconv.ParseFloat(valueStr, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid weight value '%s' for metric %s: %w", valueStr, key, err)
		}

		weights[key] = value
	}

	return weights, nil
}

// ParseGradeThresholdsString parses a string like "excellent:0.8,good:0.6,fair:0.4"
// into GradeThresholds, starting from the defaults.
func ParseGradeThresholdsString(s string) (schema.GradeThresholds, error) {
	thresholds := schema.DefaultGradeThresholds()

	if s == "" {
		return thresholds, nil
	}

	parts := strings.SplitSeq(s, ",")
	for part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		keyValue := strings.Split(part, ":")
		if len(keyValue) != 2 {
			return thresholds, fmt.Errorf("invalid threshold format '%s', expected 'grade:value'", part)
		}

		gradeStr := strings.TrimSpace(keyValue[0])
		valueStr := strings.TrimSpace(keyValue[1])

		value, err := strconv.ParseFloat(valueStr, 64)
		if err != nil {
			return thresholds, fmt.Errorf("invalid threshold value '%s' for grade %s: %w", valueStr, gradeStr, err)
		}
		if value < 0.0 || value > 1.0 {
			return thresholds, fmt.Errorf("threshold for grade %s must be between 0.0 and 1.0 (received %.3f)", gradeStr, value)
		}

		switch strings.ToLower(gradeStr) {
		case "excellent":
			thresholds.Excellent = value
		case "good":
			thresholds.Good = value
		case "fair":
			thresholds.Fair = value
		default:
			return thresholds, fmt.Errorf("invalid grade '%s', must be excellent, good, or fair", gradeStr)
		}
	}

	if thresholds.Excellent <= thresholds.Good || thresholds.Good <= thresholds.Fair {
		return thresholds, fmt.Errorf("grade thresholds must descend: excellent (%.3f) > good (%.3f) > fair (%.3f)",
			thresholds.Excellent, thresholds.Good, thresholds.Fair)
	}

	return thresholds, nil
}

// ProcessProfilingConfig handles the profiling flag and sets up profiling configuration.
func ProcessProfilingConfig(profile *ProfileConfig, profilePrefix string) error {
	if profilePrefix != "" {
		profile.Enabled = true
		profile.Prefix = profilePrefix
	}
	return nil
}
