// Package history records gate verdicts in a local SQLite database.
//
// The journal is strictly write-behind: entries are recorded after a verdict
// has been rendered and nothing on the decision path ever reads them back.
// Disabling history changes no observable gate behavior.
package history

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

//go:embed schema.sql
var schemaSQL string

// Entry is one recorded gate verdict.
type Entry struct {
	ID              int64
	RunID           string
	Verb            string
	Target          string
	Passed          bool
	FailureCategory string
	Errors          int
	Warnings        int
	Notes           int
	Deprecations    int
	ExitCode        int
	Duration        time.Duration
	Timestamp       time.Time
}

// Store manages the SQLite verdict database.
type Store struct {
	db     *sql.DB
	dbPath string
}

// NewStore opens (creating if necessary) the verdict database at dbPath.
func NewStore(dbPath string) (*Store, error) {
	if dbPath != ":memory:" {
		dir := filepath.Dir(dbPath)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

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
		return nil, fmt.Errorf("initialize schema: %w", err)
	}

	return &Store{db: db, dbPath: dbPath}, nil
}

// Record appends one verdict entry. A fresh run ID is assigned when the
// entry has none.
func (s *Store) Record(ctx context.Context, e Entry) error {
	if e.RunID == "" {
		e.RunID = uuid.NewString()
	}
	if e.Timestamp.IsZero() {
		e.Timestamp = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO verdicts (
			run_id, verb, target, passed, failure_category,
			error_count, warning_count, note_count, deprecation_count,
			exit_code, duration_ms, timestamp
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.RunID, e.Verb, e.Target, e.Passed, e.FailureCategory,
		e.Errors, e.Warnings, e.Notes, e.Deprecations,
		e.ExitCode, e.Duration.Milliseconds(), e.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("record verdict: %w", err)
	}
	return nil
}

// Recent returns the most recent entries, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, run_id, verb, target, passed, failure_category,
			error_count, warning_count, note_count, deprecation_count,
			exit_code, duration_ms, timestamp
		FROM verdicts
		ORDER BY id DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query verdicts: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var durationMS int64
		if err := rows.Scan(
			&e.ID, &e.RunID, &e.Verb, &e.Target, &e.Passed, &e.FailureCategory,
			&e.Errors, &e.Warnings, &e.Notes, &e.Deprecations,
			&e.ExitCode, &durationMS, &e.Timestamp,
		); err != nil {
			return nil, fmt.Errorf("scan verdict: %w", err)
		}
		e.Duration = time.Duration(durationMS) * time.Millisecond
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate verdicts: %w", err)
	}
	return entries, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}
