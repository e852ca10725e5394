package storage

import (
	"database/sql"
	"fmt"

	_ "github.com/go-sql-driver/mysql"

	"gosweep/internal/domain"
)

// HistoryStorage keeps the JSON file as the source of truth for the
// failures viewer and additionally appends every sweep to a MySQL run
// history, so long-lived projects can chart pass rates over time.
type HistoryStorage struct {
	file *JSONStorage
	dsn  string
}

// NewHistoryStorage wraps the file store with MySQL history at dsn.
func NewHistoryStorage(file *JSONStorage, dsn string) *HistoryStorage {
	return &HistoryStorage{file: file, dsn: dsn}
}

// Save persists to the JSON file first, then records the run in MySQL.
// A database error fails the save; the file has already been written so
// the failures viewer keeps working either way.
func (s *HistoryStorage) Save(output *domain.RunOutput) error {
	if err := s.file.Save(output); err != nil {
		return err
	}
	return s.record(output)
}

// Load reads from the JSON file; history is write-only from the CLI.
func (s *HistoryStorage) Load() (*domain.RunOutput, error) {
	return s.file.Load()
}

func (s *HistoryStorage) record(output *domain.RunOutput) error {
	db, err := sql.Open("mysql", s.dsn)
	if err != nil {
		return fmt.Errorf("open history database: %w", err)
	}
	defer db.Close()

	if err := ensureSchema(db); err != nil {
		return err
	}

	meta := output.Meta
	_, err = db.Exec(`INSERT INTO sweep_runs
		(run_id, total_tests, passed, failed, skipped, errored, leaks, duration_seconds, interrupted, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		meta.RunID, meta.TotalTests, meta.Passed, meta.Failed, meta.Skipped,
		meta.Errored, meta.Leaks, meta.DurationSecs, meta.Interrupted, meta.Timestamp)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}

	for _, f := range output.Failures {
		_, err = db.Exec(`INSERT INTO sweep_failures
			(run_id, test_id, status, output) VALUES (?, ?, ?, ?)`,
			meta.RunID, f.TestID, f.Status, f.Output)
		if err != nil {
			return fmt.Errorf("insert failure %s: %w", f.TestID, err)
		}
	}
	return nil
}

func ensureSchema(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS sweep_runs (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			run_id VARCHAR(36) NOT NULL,
			total_tests INT NOT NULL,
			passed INT NOT NULL,
			failed INT NOT NULL,
			skipped INT NOT NULL,
			errored INT NOT NULL,
			leaks INT NOT NULL,
			duration_seconds DOUBLE NOT NULL,
			interrupted BOOL NOT NULL,
			created_at VARCHAR(35) NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS sweep_failures (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			run_id VARCHAR(36) NOT NULL,
			test_id VARCHAR(512) NOT NULL,
			status VARCHAR(16) NOT NULL,
			output MEDIUMTEXT NOT NULL
		)`,
	}
	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("ensure history schema: %w", err)
		}
	}
	return nil
}
