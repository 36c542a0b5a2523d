package schema

import "time"

// ScoreRunRecord represents a row from the score_runs table.
type ScoreRunRecord struct {
	RunID              int64
	RunUUID            string
	StartTime          time.Time
	EndTime            *time.Time
	RunDurationMs      *int32
	TotalRecords       int32
	TotalScored        int32
	TotalRejected      int32
	TotalIndeterminate int32
	ScoringVersion     string
	ConfigParams       *string
}

// ProductScoreRecord represents a row from the product_scores table. One row
// per product per run, with the three mode pipelines as column groups.
type ProductScoreRecord struct {
	RunID     int64
	Brand     string
	ScoreTime time.Time

	CutStatus   string
	CutScore    *float64
	CutReason   *string
	BulkStatus  string
	BulkScore   *float64
	BulkReason  *string
	CleanStatus string
	CleanScore  *float64
	CleanReason *string

	SpikingSuspected  bool
	TriggeredRules    *string // comma-joined rule names
	ProteinPct        *float64
	ProteinPer100Kcal *float64
	EAAsPct           *float64
	LeucineG          *float64
	Warnings          *string // comma-joined warning names
}
