package resultstore

import (
	"database/sql"
	"fmt"
	"os"
	"sync"

	"github.com/AgitatedBuddha/protein-analyser/internal/contract"
	"github.com/AgitatedBuddha/protein-analyser/schema"
)

// Global Manager instance for main logic.
var (
	Manager   = &ScoreStoreManager{}
	initOnce  sync.Once
	closeOnce sync.Once
)

// GetResultsDBFilePath returns the path to the SQLite DB file for results storage.
func GetResultsDBFilePath() string {
	return contract.GetResultsDBFilePath()
}

// InitStores initializes the global store manager with the results store.
// backend can be empty to leave run tracking disabled.
func InitStores(backend schema.DatabaseBackend, connStr string) error {
	var initErr error

	initOnce.Do(func() {
		// This function body runs exactly once, even with concurrent calls.
		var results contract.ScoreStore
		if backend != "" {
			var err error
			results, err = NewScoreStore(backend, connStr)
			if err != nil {
				initErr = fmt.Errorf("failed to initialize results store: %w", err)
				return
			}
		}

		Manager.Lock()
		defer Manager.Unlock()
		Manager.results = results
	})

	// After once.Do, initErr will contain any error from the initialization block.
	return initErr
}

// CloseStores should be called on application shutdown.
func CloseStores() { // called in main defer
	closeOnce.Do(func() {
		Manager.Lock()
		defer Manager.Unlock()
		if Manager.results != nil {
			_ = Manager.results.Close()
		}
	})
}

// ClearResults drops all stored results for the specified backend.
// For SQLite, it deletes the database file.
// For SQL backends (MySQL/PostgreSQL), it drops the result tables.
// For NoneBackend, it does nothing.
func ClearResults(backend schema.DatabaseBackend, dbFilePath, connStr string) error {
	switch backend {
	case schema.SQLiteBackend:
		if dbFilePath == "" {
			return fmt.Errorf("dbFilePath cannot be empty for SQLite backend")
		}
		// Remove the file; ignore if it doesn't exist
		if err := os.Remove(dbFilePath); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to remove SQLite database file %s: %w", dbFilePath, err)
		}
		return nil

	case schema.MySQLBackend:
		return dropResultTables("mysql", connStr)

	case schema.PostgreSQLBackend:
		return dropResultTables("pgx", connStr)

	case schema.NoneBackend:
		return nil

	default:
		return fmt.Errorf("unsupported results backend for clearing: %s", backend)
	}
}

// dropResultTables connects to the SQL database and drops the result tables.
// product_scores goes first so no orphaned rows reference score_runs.
func dropResultTables(driverName, connStr string) error {
	db, err := sql.Open(driverName, connStr)
	if err != nil {
		return fmt.Errorf("failed to connect to %s database: %w", driverName, err)
	}
	defer func() { _ = db.Close() }()

	if err := db.Ping(); err != nil {
		return fmt.Errorf("failed to ping %s database: %w", driverName, err)
	}

	for _, table := range []string{productScoresTable, scoreRunsTable} {
		query := fmt.Sprintf("DROP TABLE IF EXISTS %s", table)
		if _, err := db.Exec(query); err != nil {
			return fmt.Errorf("failed to drop table %s: %w", table, err)
		}
	}

	return nil
}
