// Package parquet provides data structures and functions for exporting
// scoring results to Parquet files using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"os"
	"time"

	"github.com/AgitatedBuddha/protein-analyser/schema"
	"github.com/parquet-go/parquet-go"
)

// ScoreRun represents a single scoring run with metadata.
// This struct maps to the score_runs database table.
type ScoreRun struct {
	// RunID is the unique identifier for this scoring run
	RunID int64 `parquet:"run_id,snappy"`

	// RunUUID is the globally unique identifier assigned at run start
	RunUUID string `parquet:"run_uuid,snappy"`

	// StartTime is when the run began (stored as TIMESTAMP with nanosecond precision)
	StartTime time.Time `parquet:"start_time,snappy"`

	// EndTime is when the run completed (nullable, stored as TIMESTAMP with nanosecond precision)
	EndTime *time.Time `parquet:"end_time,optional,snappy"`

	// RunDurationMs is the duration of the run in milliseconds (nullable)
	RunDurationMs *int32 `parquet:"run_duration_ms,optional,snappy"`

	// TotalRecords is the number of product records scored in this run
	TotalRecords int32 `parquet:"total_records,snappy"`

	// TotalScored is the number of products that produced a composite in the run's mode
	TotalScored int32 `parquet:"total_scored,snappy"`

	// TotalRejected is the number of products hard-rejected in the run's mode
	TotalRejected int32 `parquet:"total_rejected,snappy"`

	// TotalIndeterminate is the number of products with too little data to score
	TotalIndeterminate int32 `parquet:"total_indeterminate,snappy"`

	// ScoringVersion is the scoring configuration version used for the run
	ScoringVersion string `parquet:"scoring_version,snappy"`

	// ConfigParams contains the JSON-encoded configuration parameters (nullable)
	ConfigParams *string `parquet:"config_params,optional,snappy"`
}

// ProductScore represents one product's flattened score report within a run.
// This struct maps to the product_scores database table.
type ProductScore struct {
	// RunID references the parent scoring run
	RunID int64 `parquet:"run_id,snappy"`

	// Brand is the product's brand identifier
	Brand string `parquet:"brand,snappy"`

	// ScoreTime is when this product was scored (stored as TIMESTAMP with nanosecond precision)
	ScoreTime time.Time `parquet:"score_time,snappy"`

	// CutStatus is the cut-mode pipeline outcome (scored, rejected, indeterminate)
	CutStatus string `parquet:"cut_status,snappy"`

	// CutScore is the cut-mode composite in [0,1] (nullable)
	CutScore *float64 `parquet:"cut_score,optional,snappy"`

	// CutReason is the cut-mode rejection reason (nullable)
	CutReason *string `parquet:"cut_reason,optional,snappy"`

	// BulkStatus is the bulk-mode pipeline outcome
	BulkStatus string `parquet:"bulk_status,snappy"`

	// BulkScore is the bulk-mode composite in [0,1] (nullable)
	BulkScore *float64 `parquet:"bulk_score,optional,snappy"`

	// BulkReason is the bulk-mode rejection reason (nullable)
	BulkReason *string `parquet:"bulk_reason,optional,snappy"`

	// CleanStatus is the clean-mode pipeline outcome
	CleanStatus string `parquet:"clean_status,snappy"`

	// CleanScore is the clean-mode composite in [0,1] (nullable)
	CleanScore *float64 `parquet:"clean_score,optional,snappy"`

	// CleanReason is the clean-mode rejection reason (nullable)
	CleanReason *string `parquet:"clean_reason,optional,snappy"`

	// SpikingSuspected indicates whether the amino-spiking heuristics flagged the product
	SpikingSuspected bool `parquet:"spiking_suspected,snappy"`

	// TriggeredRules is the comma-joined list of triggered spiking rules (nullable)
	TriggeredRules *string `parquet:"triggered_rules,optional,snappy"`

	// ProteinPct is protein as a fraction of serving mass (nullable)
	ProteinPct *float64 `parquet:"protein_pct,optional,snappy"`

	// ProteinPer100Kcal is grams of protein per 100 kcal (nullable)
	ProteinPer100Kcal *float64 `parquet:"protein_per_100_kcal,optional,snappy"`

	// EAAsPct is essential amino acids as a fraction of protein, clamped to 1.0 (nullable)
	EAAsPct *float64 `parquet:"eaas_pct,optional,snappy"`

	// LeucineG is grams of leucine per serving (nullable)
	LeucineG *float64 `parquet:"leucine_g,optional,snappy"`

	// Warnings is the comma-joined list of label-credibility warnings (nullable)
	Warnings *string `parquet:"warnings,optional,snappy"`
}

// WriteScoreRunsParquet writes a slice of ScoreRun structs to a Parquet file.
func WriteScoreRunsParquet(data []ScoreRun, outputPath string) error {
	// Create the output file
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	// Create a Parquet writer using struct schema inference
	// The schema is automatically derived from the ScoreRun struct tags
	writer := parquet.NewGenericWriter[ScoreRun](file)
	defer func() { _ = writer.Close() }()

	// Write all records to the file
	// The Write method accepts a variadic slice
	if _, err := writer.Write(data); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}

	return nil
}

// WriteProductScoresParquet writes a slice of ProductScore structs to a Parquet file.
func WriteProductScoresParquet(data []ProductScore, outputPath string) error {
	// Create the output file
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	// Create a Parquet writer using struct schema inference
	// The schema is automatically derived from the ProductScore struct tags
	writer := parquet.NewGenericWriter[ProductScore](file)
	defer func() { _ = writer.Close() }()

	// Write all records to the file
	// The Write method accepts a variadic slice
	if _, err := writer.Write(data); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}

	return nil
}

// MockFetchScoreRuns generates sample ScoreRun data for demonstration.
func MockFetchScoreRuns() []ScoreRun {
	now := time.Now()
	startTime1 := now.Add(-2 * time.Hour)
	endTime1 := now.Add(-1*time.Hour - 30*time.Minute)
	durationMs1 := int32(endTime1.Sub(startTime1).Milliseconds())
	configParams1 := `{"mode":"cut","limit":20,"workers":4}`

	startTime2 := now.Add(-24 * time.Hour)
	endTime2 := now.Add(-23 * time.Hour)
	durationMs2 := int32(endTime2.Sub(startTime2).Milliseconds())
	configParams2 := `{"mode":"clean","limit":10,"workers":2}`

	startTime3 := now.Add(-10 * time.Minute)
	// Note: endTime3, durationMs3, configParams3 are nil to demonstrate nullable fields

	return []ScoreRun{
		{
			RunID:              1,
			RunUUID:            "3f1d9a30-94a8-4f4e-9a61-6c0f4bb1a001",
			StartTime:          startTime1,
			EndTime:            &endTime1,
			RunDurationMs:      &durationMs1,
			TotalRecords:       42,
			TotalScored:        35,
			TotalRejected:      5,
			TotalIndeterminate: 2,
			ScoringVersion:     schema.DefaultScoringVersion,
			ConfigParams:       &configParams1,
		},
		{
			RunID:              2,
			RunUUID:            "7c2e5b18-1d23-4db0-8f02-9ab35cd2b002",
			StartTime:          startTime2,
			EndTime:            &endTime2,
			RunDurationMs:      &durationMs2,
			TotalRecords:       18,
			TotalScored:        12,
			TotalRejected:      6,
			TotalIndeterminate: 0,
			ScoringVersion:     schema.DefaultScoringVersion,
			ConfigParams:       &configParams2,
		},
		{
			RunID:          3,
			RunUUID:        "b8a07e44-5f6c-4a11-bd58-20de61f3c003",
			StartTime:      startTime3,
			EndTime:        nil, // Still running - nullable field
			RunDurationMs:  nil, // Not yet calculated - nullable field
			TotalRecords:   0,
			ScoringVersion: schema.DefaultScoringVersion,
			ConfigParams:   nil, // No config stored - nullable field
		},
	}
}

// MockFetchProductScores generates sample ProductScore data for demonstration.
func MockFetchProductScores() []ProductScore {
	now := time.Now()
	cutScore1 := 0.74
	bulkScore1 := 0.68
	cleanScore1 := 0.61
	proteinPct1 := 0.77
	per100Kcal1 := 20.6
	eaasPct1 := 0.45
	leucine1 := 2.3

	cutReason2 := "protein_per_100_kcal < 18"
	bulkScore2 := 0.52
	cleanReason2 := "amino_spiking_suspected"
	rules2 := "glycine_disproportion,low_eaas"
	proteinPct2 := 0.58
	per100Kcal2 := 15.2
	warnings2 := "heavy_metals_untested"

	return []ProductScore{
		{
			RunID:             1,
			Brand:             "acme_iso",
			ScoreTime:         now.Add(-1 * time.Hour),
			CutStatus:         "scored",
			CutScore:          &cutScore1,
			BulkStatus:        "scored",
			BulkScore:         &bulkScore1,
			CleanStatus:       "scored",
			CleanScore:        &cleanScore1,
			SpikingSuspected:  false,
			ProteinPct:        &proteinPct1,
			ProteinPer100Kcal: &per100Kcal1,
			EAAsPct:           &eaasPct1,
			LeucineG:          &leucine1,
		},
		{
			RunID:             1,
			Brand:             "budget_blend",
			ScoreTime:         now.Add(-1 * time.Hour),
			CutStatus:         "rejected",
			CutReason:         &cutReason2,
			BulkStatus:        "scored",
			BulkScore:         &bulkScore2,
			CleanStatus:       "rejected",
			CleanReason:       &cleanReason2,
			SpikingSuspected:  true,
			TriggeredRules:    &rules2,
			ProteinPct:        &proteinPct2,
			ProteinPer100Kcal: &per100Kcal2,
			Warnings:          &warnings2,
		},
		{
			RunID:            2,
			Brand:            "mystery_powder",
			ScoreTime:        now.Add(-23 * time.Hour),
			CutStatus:        "indeterminate",
			BulkStatus:       "indeterminate",
			CleanStatus:      "indeterminate",
			SpikingSuspected: false,
			// All metric fields nil - nothing could be derived
		},
	}
}

// ConvertScoreRunRecords converts schema.ScoreRunRecord to ScoreRun for Parquet export.
func ConvertScoreRunRecords(records []schema.ScoreRunRecord) []ScoreRun {
	result := make([]ScoreRun, len(records))
	for i, record := range records {
		result[i] = ScoreRun{
			RunID:              record.RunID,
			RunUUID:            record.RunUUID,
			StartTime:          record.StartTime,
			EndTime:            record.EndTime,
			RunDurationMs:      record.RunDurationMs,
			TotalRecords:       record.TotalRecords,
			TotalScored:        record.TotalScored,
			TotalRejected:      record.TotalRejected,
			TotalIndeterminate: record.TotalIndeterminate,
			ScoringVersion:     record.ScoringVersion,
			ConfigParams:       record.ConfigParams,
		}
	}
	return result
}

// ConvertProductScoreRecords converts schema.ProductScoreRecord to ProductScore for Parquet export.
func ConvertProductScoreRecords(records []schema.ProductScoreRecord) []ProductScore {
	result := make([]ProductScore, len(records))
	for i, record := range records {
		result[i] = ProductScore{
			RunID:             record.RunID,
			Brand:             record.Brand,
			ScoreTime:         record.ScoreTime,
			CutStatus:         record.CutStatus,
			CutScore:          record.CutScore,
			CutReason:         record.CutReason,
			BulkStatus:        record.BulkStatus,
			BulkScore:         record.BulkScore,
			BulkReason:        record.BulkReason,
			CleanStatus:       record.CleanStatus,
			CleanScore:        record.CleanScore,
			CleanReason:       record.CleanReason,
			SpikingSuspected:  record.SpikingSuspected,
			TriggeredRules:    record.TriggeredRules,
			ProteinPct:        record.ProteinPct,
			ProteinPer100Kcal: record.ProteinPer100Kcal,
			EAAsPct:           record.EAAsPct,
			LeucineG:          record.LeucineG,
			Warnings:          record.Warnings,
		}
	}
	return result
}
