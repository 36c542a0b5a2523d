package resultstore

import (
	"time"

	"github.com/AgitatedBuddha/protein-analyser/internal/contract"
	"github.com/AgitatedBuddha/protein-analyser/schema"
	"github.com/stretchr/testify/mock"
)

// MockStoreManager is a mock implementation of StoreManager for testing.
type MockStoreManager struct {
	mock.Mock
}

var _ contract.StoreManager = &MockStoreManager{} // Compile-time check

// GetScoreStore implements the StoreManager interface.
func (m *MockStoreManager) GetScoreStore() contract.ScoreStore {
	ret := m.Called()
	store, _ := ret.Get(0).(contract.ScoreStore)
	return store
}

// MockScoreStore is a mock implementation of ScoreStore for testing.
type MockScoreStore struct {
	mock.Mock
}

var _ contract.ScoreStore = &MockScoreStore{} // Compile-time check

// BeginRun implements the ScoreStore interface.
func (m *MockScoreStore) BeginRun(startTime time.Time, scoringVersion string, configParams map[string]any) (int64, error) {
	args := m.Called(startTime, scoringVersion, configParams)
	return args.Get(0).(int64), args.Error(1)
}

// EndRun implements the ScoreStore interface.
func (m *MockScoreStore) EndRun(runID int64, endTime time.Time, counts schema.RunCounts) error {
	args := m.Called(runID, endTime, counts)
	return args.Error(0)
}

// RecordProductScore implements the ScoreStore interface.
func (m *MockScoreStore) RecordProductScore(runID int64, report *schema.ScoreReport) error {
	args := m.Called(runID, report)
	return args.Error(0)
}

// GetAllScoreRuns implements the ScoreStore interface.
func (m *MockScoreStore) GetAllScoreRuns() ([]schema.ScoreRunRecord, error) {
	args := m.Called()
	runs, _ := args.Get(0).([]schema.ScoreRunRecord)
	return runs, args.Error(1)
}

// GetAllProductScores implements the ScoreStore interface.
func (m *MockScoreStore) GetAllProductScores() ([]schema.ProductScoreRecord, error) {
	args := m.Called()
	rows, _ := args.Get(0).([]schema.ProductScoreRecord)
	return rows, args.Error(1)
}

// GetStatus implements the ScoreStore interface.
func (m *MockScoreStore) GetStatus() (schema.StoreStatus, error) {
	args := m.Called()
	return args.Get(0).(schema.StoreStatus), args.Error(1)
}

// Close implements the ScoreStore interface.
func (m *MockScoreStore) Close() error {
	args := m.Called()
	return args.Error(0)
}
