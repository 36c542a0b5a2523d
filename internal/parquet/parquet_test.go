package parquet

import (
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/parquet-go/parquet-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScoreRunStructTags(t *testing.T) {
	// Verify struct tags are properly defined for parquet schema inference
	schema := parquet.SchemaOf(new(ScoreRun))
	require.NotNil(t, schema)

	// Check that all expected columns exist
	expectedColumns := []string{
		"run_id",
		"run_uuid",
		"start_time",
		"end_time",
		"run_duration_ms",
		"total_records",
		"total_scored",
		"total_rejected",
		"total_indeterminate",
		"scoring_version",
		"config_params",
	}

	for _, colName := range expectedColumns {
		col, ok := schema.Lookup(colName)
		require.True(t, ok, "Column %s should exist in schema", colName)
		require.NotNil(t, col, "Column %s should not be nil", colName)
	}
}

func TestProductScoreStructTags(t *testing.T) {
	// Verify struct tags are properly defined for parquet schema inference
	schema := parquet.SchemaOf(new(ProductScore))
	require.NotNil(t, schema)

	// Check that all expected columns exist
	expectedColumns := []string{
		"run_id",
		"brand",
		"score_time",
		"cut_status",
		"cut_score",
		"cut_reason",
		"bulk_status",
		"bulk_score",
		"bulk_reason",
		"clean_status",
		"clean_score",
		"clean_reason",
		"spiking_suspected",
		"triggered_rules",
		"protein_pct",
		"protein_per_100_kcal",
		"eaas_pct",
		"leucine_g",
		"warnings",
	}

	for _, colName := range expectedColumns {
		col, ok := schema.Lookup(colName)
		require.True(t, ok, "Column %s should exist in schema", colName)
		require.NotNil(t, col, "Column %s should not be nil", colName)
	}
}

func TestWriteScoreRunsParquet(t *testing.T) {
	// Create temporary directory for test output
	tmpDir := t.TempDir()
	outputPath := filepath.Join(tmpDir, "score_runs.parquet")

	// Get mock data
	data := MockFetchScoreRuns()
	require.NotEmpty(t, data, "Mock data should not be empty")

	// Write data to Parquet file
	err := WriteScoreRunsParquet(data, outputPath)
	require.NoError(t, err, "Writing Parquet file should not produce error")

	// Verify file was created
	info, err := os.Stat(outputPath)
	require.NoError(t, err, "Output file should exist")
	assert.Greater(t, info.Size(), int64(0), "Output file should not be empty")

	// Read back and verify data
	file, err := os.Open(outputPath)
	require.NoError(t, err, "Should be able to open output file")
	defer file.Close()

	reader := parquet.NewGenericReader[ScoreRun](file)
	defer reader.Close()

	// Read all rows
	readData := make([]ScoreRun, reader.NumRows())
	n, err := reader.Read(readData)
	if err != nil && err != io.EOF {
		require.NoError(t, err, "Should be able to read data")
	}
	assert.Equal(t, len(data), n, "Should read all records")

	// Verify data integrity
	for i := 0; i < len(data); i++ {
		assert.Equal(t, data[i].RunID, readData[i].RunID, "RunID should match")
		assert.Equal(t, data[i].RunUUID, readData[i].RunUUID, "RunUUID should match")
		assert.Equal(t, data[i].TotalRecords, readData[i].TotalRecords, "TotalRecords should match")
		assert.Equal(t, data[i].TotalScored, readData[i].TotalScored, "TotalScored should match")
		assert.Equal(t, data[i].ScoringVersion, readData[i].ScoringVersion, "ScoringVersion should match")

		// Check nullable fields
		if data[i].EndTime == nil {
			assert.Nil(t, readData[i].EndTime, "EndTime should be nil")
		} else {
			require.NotNil(t, readData[i].EndTime, "EndTime should not be nil")
			assert.WithinDuration(t, *data[i].EndTime, *readData[i].EndTime, time.Nanosecond, "EndTime should match within nanosecond precision")
		}

		if data[i].RunDurationMs == nil {
			assert.Nil(t, readData[i].RunDurationMs, "RunDurationMs should be nil")
		} else {
			require.NotNil(t, readData[i].RunDurationMs, "RunDurationMs should not be nil")
			assert.Equal(t, *data[i].RunDurationMs, *readData[i].RunDurationMs, "RunDurationMs should match")
		}

		if data[i].ConfigParams == nil {
			assert.Nil(t, readData[i].ConfigParams, "ConfigParams should be nil")
		} else {
			require.NotNil(t, readData[i].ConfigParams, "ConfigParams should not be nil")
			assert.Equal(t, *data[i].ConfigParams, *readData[i].ConfigParams, "ConfigParams should match")
		}
	}
}

func TestWriteProductScoresParquet(t *testing.T) {
	// Create temporary directory for test output
	tmpDir := t.TempDir()
	outputPath := filepath.Join(tmpDir, "product_scores.parquet")

	// Get mock data
	data := MockFetchProductScores()
	require.NotEmpty(t, data, "Mock data should not be empty")

	// Write data to Parquet file
	err := WriteProductScoresParquet(data, outputPath)
	require.NoError(t, err, "Writing Parquet file should not produce error")

	// Verify file was created
	info, err := os.Stat(outputPath)
	require.NoError(t, err, "Output file should exist")
	assert.Greater(t, info.Size(), int64(0), "Output file should not be empty")

	// Read back and verify data
	file, err := os.Open(outputPath)
	require.NoError(t, err, "Should be able to open output file")
	defer file.Close()

	reader := parquet.NewGenericReader[ProductScore](file)
	defer reader.Close()

	// Read all rows
	readData := make([]ProductScore, reader.NumRows())
	n, err := reader.Read(readData)
	if err != nil && err != io.EOF {
		require.NoError(t, err, "Should be able to read data")
	}
	assert.Equal(t, len(data), n, "Should read all records")

	// Verify data integrity
	for i := 0; i < len(data); i++ {
		assert.Equal(t, data[i].RunID, readData[i].RunID, "RunID should match")
		assert.Equal(t, data[i].Brand, readData[i].Brand, "Brand should match")
		assert.Equal(t, data[i].CutStatus, readData[i].CutStatus, "CutStatus should match")
		assert.Equal(t, data[i].BulkStatus, readData[i].BulkStatus, "BulkStatus should match")
		assert.Equal(t, data[i].CleanStatus, readData[i].CleanStatus, "CleanStatus should match")
		assert.Equal(t, data[i].SpikingSuspected, readData[i].SpikingSuspected, "SpikingSuspected should match")

		// Check nullable score fields
		if data[i].CutScore == nil {
			assert.Nil(t, readData[i].CutScore, "CutScore should be nil")
		} else {
			require.NotNil(t, readData[i].CutScore, "CutScore should not be nil")
			assert.InDelta(t, *data[i].CutScore, *readData[i].CutScore, 1e-9, "CutScore should match")
		}

		if data[i].CutReason == nil {
			assert.Nil(t, readData[i].CutReason, "CutReason should be nil")
		} else {
			require.NotNil(t, readData[i].CutReason, "CutReason should not be nil")
			assert.Equal(t, *data[i].CutReason, *readData[i].CutReason, "CutReason should match")
		}

		if data[i].TriggeredRules == nil {
			assert.Nil(t, readData[i].TriggeredRules, "TriggeredRules should be nil")
		} else {
			require.NotNil(t, readData[i].TriggeredRules, "TriggeredRules should not be nil")
			assert.Equal(t, *data[i].TriggeredRules, *readData[i].TriggeredRules, "TriggeredRules should match")
		}

		if data[i].ProteinPct == nil {
			assert.Nil(t, readData[i].ProteinPct, "ProteinPct should be nil")
		} else {
			require.NotNil(t, readData[i].ProteinPct, "ProteinPct should not be nil")
			assert.InDelta(t, *data[i].ProteinPct, *readData[i].ProteinPct, 1e-9, "ProteinPct should match")
		}
	}
}

func TestWriteScoreRunsParquet_EmptyData(t *testing.T) {
	// Create temporary directory for test output
	tmpDir := t.TempDir()
	outputPath := filepath.Join(tmpDir, "empty_score_runs.parquet")

	// Write empty data
	err := WriteScoreRunsParquet([]ScoreRun{}, outputPath)
	require.NoError(t, err, "Writing empty data should not produce error")

	// Verify file was created
	info, err := os.Stat(outputPath)
	require.NoError(t, err, "Output file should exist")
	assert.Greater(t, info.Size(), int64(0), "Output file should contain schema even if empty")
}

func TestWriteProductScoresParquet_EmptyData(t *testing.T) {
	// Create temporary directory for test output
	tmpDir := t.TempDir()
	outputPath := filepath.Join(tmpDir, "empty_product_scores.parquet")

	// Write empty data
	err := WriteProductScoresParquet([]ProductScore{}, outputPath)
	require.NoError(t, err, "Writing empty data should not produce error")

	// Verify file was created
	info, err := os.Stat(outputPath)
	require.NoError(t, err, "Output file should exist")
	assert.Greater(t, info.Size(), int64(0), "Output file should contain schema even if empty")
}

func TestWriteScoreRunsParquet_InvalidPath(t *testing.T) {
	// Try to write to invalid path
	data := MockFetchScoreRuns()
	err := WriteScoreRunsParquet(data, "/nonexistent/directory/output.parquet")
	require.Error(t, err, "Writing to invalid path should produce error")
}

func TestWriteProductScoresParquet_InvalidPath(t *testing.T) {
	// Try to write to invalid path
	data := MockFetchProductScores()
	err := WriteProductScoresParquet(data, "/nonexistent/directory/output.parquet")
	require.Error(t, err, "Writing to invalid path should produce error")
}

func TestMockFetchScoreRuns(t *testing.T) {
	data := MockFetchScoreRuns()
	require.NotEmpty(t, data, "Mock data should not be empty")
	assert.Len(t, data, 3, "Should return 3 mock records")

	// Verify the structure of mock data
	assert.Equal(t, int64(1), data[0].RunID)
	assert.NotEmpty(t, data[0].ScoringVersion, "First record should carry a scoring version")
	assert.NotNil(t, data[0].EndTime, "First record should have EndTime")
	assert.NotNil(t, data[0].RunDurationMs, "First record should have RunDurationMs")
	assert.NotNil(t, data[0].ConfigParams, "First record should have ConfigParams")

	// Third record should have nil nullable fields
	assert.Equal(t, int64(3), data[2].RunID)
	assert.Nil(t, data[2].EndTime, "Third record should have nil EndTime")
	assert.Nil(t, data[2].RunDurationMs, "Third record should have nil RunDurationMs")
	assert.Nil(t, data[2].ConfigParams, "Third record should have nil ConfigParams")
}

func TestMockFetchProductScores(t *testing.T) {
	data := MockFetchProductScores()
	require.NotEmpty(t, data, "Mock data should not be empty")
	assert.Len(t, data, 3, "Should return 3 mock records")

	// Verify the structure of mock data
	assert.Equal(t, int64(1), data[0].RunID)
	assert.Equal(t, "acme_iso", data[0].Brand)
	assert.NotNil(t, data[0].CutScore, "First record should have CutScore")
	assert.False(t, data[0].SpikingSuspected)

	// Second record is rejected with a triggered spiking rule set
	assert.NotNil(t, data[1].CutReason, "Second record should have CutReason")
	assert.True(t, data[1].SpikingSuspected)
	assert.NotNil(t, data[1].TriggeredRules, "Second record should have TriggeredRules")

	// Third record is indeterminate with all metric fields nil
	assert.Equal(t, "indeterminate", data[2].CutStatus)
	assert.Nil(t, data[2].CutScore, "Third record should have nil CutScore")
	assert.Nil(t, data[2].ProteinPct, "Third record should have nil ProteinPct")
}

func TestNullableFieldHandling(t *testing.T) {
	// Test that we can create structs with various combinations of null fields
	tmpDir := t.TempDir()
	outputPath := filepath.Join(tmpDir, "nullable_test.parquet")

	now := time.Now()
	endTime := now.Add(1 * time.Hour)
	durationMs := int32(3600000)
	config := `{"test":"config"}`

	testData := []ScoreRun{
		// All fields populated
		{
			RunID:          1,
			RunUUID:        "11111111-1111-1111-1111-111111111111",
			StartTime:      now,
			EndTime:        &endTime,
			RunDurationMs:  &durationMs,
			TotalRecords:   100,
			TotalScored:    90,
			ScoringVersion: "2026-08",
			ConfigParams:   &config,
		},
		// All nullable fields are nil
		{
			RunID:          2,
			RunUUID:        "22222222-2222-2222-2222-222222222222",
			StartTime:      now,
			EndTime:        nil,
			RunDurationMs:  nil,
			TotalRecords:   0,
			ScoringVersion: "2026-08",
			ConfigParams:   nil,
		},
	}

	// Write and read back
	err := WriteScoreRunsParquet(testData, outputPath)
	require.NoError(t, err)

	// Read back and verify
	file, err := os.Open(outputPath)
	require.NoError(t, err)
	defer file.Close()

	reader := parquet.NewGenericReader[ScoreRun](file)
	defer reader.Close()

	readData := make([]ScoreRun, reader.NumRows())
	n, err := reader.Read(readData)
	if err != nil && err != io.EOF {
		require.NoError(t, err)
	}
	assert.Equal(t, len(testData), n)

	// Verify first record has all fields
	assert.NotNil(t, readData[0].EndTime)
	assert.NotNil(t, readData[0].RunDurationMs)
	assert.NotNil(t, readData[0].ConfigParams)

	// Verify second record has nil nullable fields
	assert.Nil(t, readData[1].EndTime)
	assert.Nil(t, readData[1].RunDurationMs)
	assert.Nil(t, readData[1].ConfigParams)
}

func TestTimestampPrecision(t *testing.T) {
	// Test that timestamps are stored with nanosecond precision
	tmpDir := t.TempDir()
	outputPath := filepath.Join(tmpDir, "timestamp_test.parquet")

	now := time.Now()

	testData := []ScoreRun{
		{
			RunID:          1,
			RunUUID:        "33333333-3333-3333-3333-333333333333",
			StartTime:      now,
			EndTime:        &now,
			ScoringVersion: "2026-08",
		},
	}

	// Write and read back
	err := WriteScoreRunsParquet(testData, outputPath)
	require.NoError(t, err)

	file, err := os.Open(outputPath)
	require.NoError(t, err)
	defer file.Close()

	reader := parquet.NewGenericReader[ScoreRun](file)
	defer reader.Close()

	readData := make([]ScoreRun, reader.NumRows())
	_, err = reader.Read(readData)
	if err != nil && err != io.EOF {
		require.NoError(t, err)
	}

	// Verify timestamp precision (should be within nanosecond)
	assert.WithinDuration(t, testData[0].StartTime, readData[0].StartTime, time.Nanosecond)
	assert.WithinDuration(t, *testData[0].EndTime, *readData[0].EndTime, time.Nanosecond)
}
