// Package history persists per-run scan summaries to a SQLite database so
// past campaigns can be reviewed with `arkscan history`.
package history

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/marcus/arkscan/internal/models"
)

//go:embed schema.sql
var schemaSQL string

// Store manages the run-history database.
type Store struct {
	db     *sql.DB
	dbPath string
}

// Open creates (or opens) the history database at dbPath and initializes
// the schema. ":memory:" is supported for tests.
func Open(dbPath string) (*Store, error) {
	if dbPath != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// busy_timeout first so the remaining pragmas wait on locks held by
	// a concurrent reader (e.g. `arkscan history` during a scan).
	pragmas := []string{
		"PRAGMA busy_timeout=5000",
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("set %s: %w", pragma, err)
		}
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}

	return &Store{db: db, dbPath: dbPath}, nil
}

// RecordRun inserts one completed run summary.
func (s *Store) RecordRun(ctx context.Context, summary models.RunSummary) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO runs (run_id, keyword, started_at, finished_at,
		                  processed, matched, skipped, missing, failed)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		summary.RunID,
		summary.Keyword,
		summary.StartedAt.UTC(),
		summary.FinishedAt.UTC(),
		summary.Processed,
		summary.Matched,
		summary.Skipped,
		summary.Missing,
		summary.Failed,
	)
	if err != nil {
		return fmt.Errorf("insert run %s: %w", summary.RunID, err)
	}
	return nil
}

// RecentRuns returns up to limit runs, most recent first.
func (s *Store) RecentRuns(ctx context.Context, limit int) ([]models.RunSummary, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT run_id, keyword, started_at, finished_at,
		       processed, matched, skipped, missing, failed
		FROM runs
		ORDER BY started_at DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []models.RunSummary
	for rows.Next() {
		var run models.RunSummary
		var started, finished time.Time
		if err := rows.Scan(&run.RunID, &run.Keyword, &started, &finished,
			&run.Processed, &run.Matched, &run.Skipped, &run.Missing, &run.Failed); err != nil {
			return nil, fmt.Errorf("scan run row: %w", err)
		}
		run.StartedAt = started
		run.FinishedAt = finished
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}

	return runs, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}
