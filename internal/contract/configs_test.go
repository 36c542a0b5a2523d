package contract

import (
	"path/filepath"
	"testing"

	"github.com/AgitatedBuddha/protein-analyser/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// validInput returns a minimal raw input that passes validation.
func validInput() *ConfigRawInput {
	return &ConfigRawInput{
		Limit:        10,
		Workers:      4,
		Mode:         string(schema.CutMode),
		Precision:    3,
		Output:       "table",
		Color:        "yes",
		StoreBackend: string(schema.SQLiteBackend),
		InputPathStr: ".",
	}
}

func TestProcessAndValidate(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(*ConfigRawInput)
		expectError bool
	}{
		{
			name:        "valid minimal config",
			mutate:      func(_ *ConfigRawInput) {},
			expectError: false,
		},
		{
			name:        "invalid mode",
			mutate:      func(in *ConfigRawInput) { in.Mode = "invalid_mode" },
			expectError: true,
		},
		{
			name:        "mode is case insensitive",
			mutate:      func(in *ConfigRawInput) { in.Mode = "BULK" },
			expectError: false,
		},
		{
			name:        "invalid limit (zero)",
			mutate:      func(in *ConfigRawInput) { in.Limit = 0 },
			expectError: true,
		},
		{
			name:        "invalid limit (negative)",
			mutate:      func(in *ConfigRawInput) { in.Limit = -1 },
			expectError: true,
		},
		{
			name:        "invalid limit (too large)",
			mutate:      func(in *ConfigRawInput) { in.Limit = MaxResultLimit + 1 },
			expectError: true,
		},
		{
			name:        "invalid workers (zero)",
			mutate:      func(in *ConfigRawInput) { in.Workers = 0 },
			expectError: true,
		},
		{
			name:        "invalid workers (negative)",
			mutate:      func(in *ConfigRawInput) { in.Workers = -1 },
			expectError: true,
		},
		{
			name:        "invalid precision (negative)",
			mutate:      func(in *ConfigRawInput) { in.Precision = -1 },
			expectError: true,
		},
		{
			name:        "invalid precision (too high)",
			mutate:      func(in *ConfigRawInput) { in.Precision = MaxPrecision + 1 },
			expectError: true,
		},
		{
			name:        "invalid output format",
			mutate:      func(in *ConfigRawInput) { in.Output = "invalid_format" },
			expectError: true,
		},
		{
			name:        "invalid color value",
			mutate:      func(in *ConfigRawInput) { in.Color = "maybe" },
			expectError: true,
		},
		{
			name:        "invalid store backend",
			mutate:      func(in *ConfigRawInput) { in.StoreBackend = "invalid_backend" },
			expectError: true,
		},
		{
			name:        "mysql backend without connection string",
			mutate:      func(in *ConfigRawInput) { in.StoreBackend = string(schema.MySQLBackend) },
			expectError: true,
		},
		{
			name: "mysql backend with connection string",
			mutate: func(in *ConfigRawInput) {
				in.StoreBackend = string(schema.MySQLBackend)
				in.StoreConnect = "user:pass@tcp(localhost:3306)/protein"
			},
			expectError: false,
		},
		{
			name:        "postgres backend without connection string",
			mutate:      func(in *ConfigRawInput) { in.StoreBackend = string(schema.PostgreSQLBackend) },
			expectError: true,
		},
		{
			name: "postgres backend with malformed connection string",
			mutate: func(in *ConfigRawInput) {
				in.StoreBackend = string(schema.PostgreSQLBackend)
				in.StoreConnect = "localhost:5432"
			},
			expectError: true,
		},
		{
			name: "postgres backend with connection string",
			mutate: func(in *ConfigRawInput) {
				in.StoreBackend = string(schema.PostgreSQLBackend)
				in.StoreConnect = "host=localhost port=5432 user=postgres dbname=protein"
			},
			expectError: false,
		},
		{
			name:        "none backend",
			mutate:      func(in *ConfigRawInput) { in.StoreBackend = string(schema.NoneBackend) },
			expectError: false,
		},
		{
			name: "record with none backend",
			mutate: func(in *ConfigRawInput) {
				in.Record = true
				in.StoreBackend = string(schema.NoneBackend)
			},
			expectError: true,
		},
		{
			name: "weight override replaces selected mode table",
			mutate: func(in *ConfigRawInput) {
				in.WeightsStr = "protein_pct:0.50,leucine_g_per_serving:0.50"
			},
			expectError: false,
		},
		{
			name:        "weight override with bad sum",
			mutate:      func(in *ConfigRawInput) { in.WeightsStr = "protein_pct:0.50" },
			expectError: true,
		},
		{
			name:        "weight override with unknown metric",
			mutate:      func(in *ConfigRawInput) { in.WeightsStr = "creatine_g:1.0" },
			expectError: true,
		},
		{
			name:        "grade thresholds override",
			mutate:      func(in *ConfigRawInput) { in.GradesStr = "excellent:0.9,good:0.7,fair:0.5" },
			expectError: false,
		},
		{
			name:        "grade thresholds out of order",
			mutate:      func(in *ConfigRawInput) { in.GradesStr = "excellent:0.5,good:0.7" },
			expectError: true,
		},
		{
			name:        "invalid min-score",
			mutate:      func(in *ConfigRawInput) { in.MinScore = 1.5 },
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := validInput()
			tt.mutate(input)

			cfg := &Config{}
			err := ProcessAndValidate(cfg, input)

			if tt.expectError {
				assert.Error(t, err, "contract.ProcessAndValidate should return an error for %s", tt.name)
			} else {
				assert.NoError(t, err, "contract.ProcessAndValidate should not return an error for %s", tt.name)
				// Basic validation that config was populated
				assert.Equal(t, input.Limit, cfg.ResultLimit)
				assert.NotNil(t, cfg.Scoring)
				assert.True(t, filepath.IsAbs(cfg.InputPath))
			}
		})
	}
}

func TestProcessAndValidateWeightOverrideScopedToMode(t *testing.T) {
	input := validInput()
	input.Mode = string(schema.BulkMode)
	input.WeightsStr = "leucine_g_per_serving:0.60,protein_g_per_serving:0.40"

	cfg := &Config{}
	require.NoError(t, ProcessAndValidate(cfg, input))

	bulk := cfg.Scoring.Modes[schema.BulkMode].Weights
	assert.Equal(t, map[schema.MetricKey]float64{
		schema.MetricLeucineG: 0.60,
		schema.MetricProteinG: 0.40,
	}, bulk)

	// Other modes keep their default tables.
	assert.Equal(t, schema.GetDefaultWeights(schema.CutMode), cfg.Scoring.Modes[schema.CutMode].Weights)
	assert.Equal(t, schema.GetDefaultWeights(schema.CleanMode), cfg.Scoring.Modes[schema.CleanMode].Weights)
}

func TestConfigClone(t *testing.T) {
	cfg := &Config{
		InputPath:   "/tmp/records",
		ResultLimit: 10,
		Mode:        schema.CutMode,
		Scoring:     schema.DefaultScoringParams(),
	}

	clone := cfg.Clone()
	clone.Mode = schema.BulkMode
	clone.Scoring.Modes[schema.CutMode] = schema.ModeParams{
		Weights: map[schema.MetricKey]float64{schema.MetricProteinPct: 1.0},
	}

	assert.Equal(t, schema.CutMode, cfg.Mode)
	assert.Equal(t, schema.GetDefaultWeights(schema.CutMode), cfg.Scoring.Modes[schema.CutMode].Weights)
}

func TestParseWeightsString(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		expected    map[schema.MetricKey]float64
		expectError bool
	}{
		{
			name:     "empty string",
			input:    "",
			expected: map[schema.MetricKey]float64{},
		},
		{
			name:  "single weight",
			input: "protein_pct:0.35",
			expected: map[schema.MetricKey]float64{
				schema.MetricProteinPct: 0.35,
			},
		},
		{
			name:  "multiple weights with spaces",
			input: " eaas_pct:0.30 , leucine_g_per_serving : 0.70 ",
			expected: map[schema.MetricKey]float64{
				schema.MetricEAAsPct:  0.30,
				schema.MetricLeucineG: 0.70,
			},
		},
		{
			name:        "missing value",
			input:       "protein_pct",
			expectError: true,
		},
		{
			name:        "unknown metric",
			input:       "creatine_g:0.5",
			expectError: true,
		},
		{
			name:        "non-numeric value",
			input:       "protein_pct:high",
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseWeightsString(tt.input)
			if tt.expectError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestParseGradeThresholdsString(t *testing.T) {
	t.Run("empty keeps defaults", func(t *testing.T) {
		got, err := ParseGradeThresholdsString("")
		require.NoError(t, err)
		assert.Equal(t, schema.DefaultGradeThresholds(), got)
	})

	t.Run("partial override", func(t *testing.T) {
		got, err := ParseGradeThresholdsString("excellent:0.9")
		require.NoError(t, err)
		assert.InDelta(t, 0.9, got.Excellent, 1e-9)
		assert.InDelta(t, 0.6, got.Good, 1e-9)
	})

	t.Run("unknown grade", func(t *testing.T) {
		_, err := ParseGradeThresholdsString("legendary:0.95")
		assert.Error(t, err)
	})

	t.Run("value out of range", func(t *testing.T) {
		_, err := ParseGradeThresholdsString("good:1.5")
		assert.Error(t, err)
	})

	t.Run("non-descending order", func(t *testing.T) {
		_, err := ParseGradeThresholdsString("excellent:0.4,good:0.6")
		assert.Error(t, err)
	})
}
