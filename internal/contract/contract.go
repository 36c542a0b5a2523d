// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import (
	"time"

	"github.com/AgitatedBuddha/protein-analyser/schema"
)

// StoreManager defines the interface for managing the results store.
// This allows the persistence layer to be mocked for testing.
type StoreManager interface {
	GetScoreStore() ScoreStore
}

// ScoreStore defines the interface for recording scoring runs and their
// per-product results.
type ScoreStore interface {
	// BeginRun creates a new scoring run and returns its unique ID
	BeginRun(startTime time.Time, scoringVersion string, configParams map[string]any) (int64, error)

	// EndRun updates the scoring run with completion data
	EndRun(runID int64, endTime time.Time, counts schema.RunCounts) error

	// RecordProductScore stores one product's score report for a run
	RecordProductScore(runID int64, report *schema.ScoreReport) error

	// GetAllScoreRuns retrieves all recorded runs, oldest first
	GetAllScoreRuns() ([]schema.ScoreRunRecord, error)

	// GetAllProductScores retrieves all recorded product rows, ordered by run and brand
	GetAllProductScores() ([]schema.ProductScoreRecord, error)

	// GetStatus returns status information about the results store
	GetStatus() (schema.StoreStatus, error)

	// Close closes the underlying connection
	Close() error
}
