package resultstore

import (
	"errors"
	"fmt"

	"github.com/AgitatedBuddha/protein-analyser/internal/parquet"
)

// ExecuteResultsExport performs the actual export of scoring results to Parquet files.
func ExecuteResultsExport(outputFile string) error {
	// Validate that output file is specified
	if outputFile == "" {
		return errors.New("--output-file is required for export command")
	}

	// Get the results store
	store := Manager.GetScoreStore()

	// Check if there's any data to export
	status, err := store.GetStatus()
	if err != nil {
		return fmt.Errorf("failed to get results status: %w", err)
	}

	if status.TotalRuns == 0 {
		return errors.New("no scoring results found to export")
	}

	fmt.Printf("Exporting data from %s backend...\n", status.Backend)
	fmt.Printf("Total scoring runs: %d\n", status.TotalRuns)
	fmt.Printf("Total product rows: %d\n", status.TableSizes[productScoresTable])

	// Retrieve all scoring runs
	scoreRuns, err := store.GetAllScoreRuns()
	if err != nil {
		return fmt.Errorf("failed to retrieve scoring runs: %w", err)
	}

	// Retrieve all product scores
	productScores, err := store.GetAllProductScores()
	if err != nil {
		return fmt.Errorf("failed to retrieve product scores: %w", err)
	}

	// Convert to Parquet format
	parquetScoreRuns := parquet.ConvertScoreRunRecords(scoreRuns)
	parquetProductScores := parquet.ConvertProductScoreRecords(productScores)

	// Write scoring runs to Parquet
	scoreRunsFile := outputFile + ".score_runs.parquet"
	if err := parquet.WriteScoreRunsParquet(parquetScoreRuns, scoreRunsFile); err != nil {
		return fmt.Errorf("failed to write scoring runs: %w", err)
	}
	fmt.Printf("Exported %d scoring runs to: %s\n", len(parquetScoreRuns), scoreRunsFile)

	// Write product scores to Parquet
	productScoresFile := outputFile + ".product_scores.parquet"
	if err := parquet.WriteProductScoresParquet(parquetProductScores, productScoresFile); err != nil {
		return fmt.Errorf("failed to write product scores: %w", err)
	}
	fmt.Printf("Exported %d product score rows to: %s\n", len(parquetProductScores), productScoresFile)

	fmt.Println("\nExport complete! The Parquet files can be used with:")
	fmt.Println("  - Apache Spark")
	fmt.Println("  - Apache Arrow")
	fmt.Println("  - Pandas (via pyarrow)")
	fmt.Println("  - DuckDB")
	fmt.Println("  - Any other Parquet-compatible tool")

	return nil
}
