// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package history persists conversion runs in a SQLite ledger and answers
// queries about them: past runs, failures, and the last recorded content
// hash per source file for change detection.
// Implements: prd002-run-history (R1-R4);
//
//	docs/ARCHITECTURE § Run History.
package history

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/ruler/internal/logging"
	"github.com/pdiddy/ruler/pkg/types"
)

const dbFile = "history.db"

// Store manages the run-history SQLite database.
type Store struct {
	db         *sql.DB
	maxResults int
}

// Open opens or creates the history database at cfg.Dir/history.db,
// creating the schema if it does not exist (R1.3).
func Open(cfg types.HistoryConfig) (*Store, error) {
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating history directory: %w", err)
	}

	dbPath := filepath.Join(cfg.Dir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening history database: %w", err)
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = 20
	}

	s := &Store{db: db, maxResults: maxResults}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			direction TEXT NOT NULL,
			from_dir TEXT NOT NULL,
			to_dir TEXT NOT NULL,
			started_at TEXT NOT NULL,
			converted INTEGER NOT NULL,
			skipped INTEGER NOT NULL,
			failed INTEGER NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS conversions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id INTEGER NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
			source_path TEXT NOT NULL,
			target_path TEXT,
			source_hash TEXT,
			status TEXT NOT NULL,
			reason TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_conversions_run_id ON conversions(run_id)`,
		`CREATE INDEX IF NOT EXISTS idx_conversions_source ON conversions(source_path, status)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// RecordRun stores one run and its per-file records in a single
// transaction, returning the new run's id (R1.1, R1.2).
func (s *Store) RecordRun(ctx context.Context, rec types.RunRecord) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO runs (direction, from_dir, to_dir, started_at, converted, skipped, failed)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		string(rec.Direction), rec.FromDir, rec.ToDir,
		rec.StartedAt.UTC().Format(time.RFC3339Nano),
		rec.Converted, rec.Skipped, rec.Failed,
	)
	if err != nil {
		return 0, fmt.Errorf("inserting run: %w", err)
	}
	runID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading run id: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO conversions (run_id, source_path, target_path, source_hash, status, reason)
		 VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for _, f := range rec.Files {
		if _, err := stmt.ExecContext(ctx,
			runID, f.SourcePath, f.TargetPath, f.SourceHash, string(f.Status), f.Reason,
		); err != nil {
			return 0, fmt.Errorf("inserting record for %s: %w", f.SourcePath, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing run: %w", err)
	}
	logger := logging.GetLogger("history")
	logger.Debug().
		Int64("run", runID).
		Int("files", len(rec.Files)).
		Msg("recorded conversion run")
	return runID, nil
}

// LastConvertedHash returns the source hash stored by the most recent
// successful conversion of sourcePath in the given direction (R2.2).
// It returns "" when the file has never been converted.
func (s *Store) LastConvertedHash(ctx context.Context, d types.Direction, sourcePath string) (string, error) {
	var hash sql.NullString
	err := s.db.QueryRowContext(ctx,
		`SELECT c.source_hash FROM conversions c
		 JOIN runs r ON c.run_id = r.id
		 WHERE r.direction = ? AND c.source_path = ? AND c.status = ?
		 ORDER BY c.run_id DESC, c.id DESC LIMIT 1`,
		string(d), sourcePath, string(types.FileConverted),
	).Scan(&hash)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("looking up %s: %w", sourcePath, err)
	}
	return hash.String, nil
}

// QueryOptions filters history queries (R3.3).
type QueryOptions struct {
	// Direction restricts results to one conversion direction.
	// Empty matches both.
	Direction types.Direction

	// Limit caps the number of rows returned. Zero uses the store default.
	Limit int
}

// Run is a stored run summary with its database id. Files is not populated
// by Runs; per-file records are reached through Failures.
type Run struct {
	ID int64 `json:"id"`
	types.RunRecord
}

// Runs lists recorded runs, newest first (R3.1).
func (s *Store) Runs(ctx context.Context, opts QueryOptions) ([]Run, error) {
	var (
		qb   strings.Builder
		args []any
	)
	qb.WriteString(
		`SELECT id, direction, from_dir, to_dir, started_at, converted, skipped, failed
		 FROM runs WHERE 1=1`)
	if opts.Direction != "" {
		qb.WriteString(` AND direction = ?`)
		args = append(args, string(opts.Direction))
	}
	qb.WriteString(` ORDER BY id DESC LIMIT ?`)
	args = append(args, s.limit(opts))

	rows, err := s.db.QueryContext(ctx, qb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var (
			r         Run
			direction string
			startedAt string
		)
		if err := rows.Scan(
			&r.ID, &direction, &r.FromDir, &r.ToDir, &startedAt,
			&r.Converted, &r.Skipped, &r.Failed,
		); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		r.Direction = types.Direction(direction)
		if ts, err := time.Parse(time.RFC3339Nano, startedAt); err == nil {
			r.StartedAt = ts
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// Failure is one failed file conversion with its originating run (R3.2).
type Failure struct {
	RunID      int64           `json:"run_id"`
	StartedAt  time.Time       `json:"started_at"`
	Direction  types.Direction `json:"direction"`
	SourcePath string          `json:"source_path"`
	Reason     string          `json:"reason"`
}

// Failures lists failed file conversions, newest first (R3.2).
func (s *Store) Failures(ctx context.Context, opts QueryOptions) ([]Failure, error) {
	var (
		qb   strings.Builder
		args []any
	)
	qb.WriteString(
		`SELECT c.run_id, r.started_at, r.direction, c.source_path, c.reason
		 FROM conversions c
		 JOIN runs r ON c.run_id = r.id
		 WHERE c.status = ?`)
	args = append(args, string(types.FileFailed))
	if opts.Direction != "" {
		qb.WriteString(` AND r.direction = ?`)
		args = append(args, string(opts.Direction))
	}
	qb.WriteString(` ORDER BY c.run_id DESC, c.id DESC LIMIT ?`)
	args = append(args, s.limit(opts))

	rows, err := s.db.QueryContext(ctx, qb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("querying failures: %w", err)
	}
	defer rows.Close()

	var failures []Failure
	for rows.Next() {
		var (
			f         Failure
			startedAt string
			direction string
			reason    sql.NullString
		)
		if err := rows.Scan(&f.RunID, &startedAt, &direction, &f.SourcePath, &reason); err != nil {
			return nil, fmt.Errorf("scanning failure: %w", err)
		}
		f.Direction = types.Direction(direction)
		if ts, err := time.Parse(time.RFC3339Nano, startedAt); err == nil {
			f.StartedAt = ts
		}
		if reason.Valid {
			f.Reason = reason.String
		}
		failures = append(failures, f)
	}
	return failures, rows.Err()
}

// Prune deletes all but the newest keep runs; per-file records follow their
// run via the foreign key cascade (R4). It returns the number of runs
// removed.
func (s *Store) Prune(ctx context.Context, keep int) (int64, error) {
	if keep < 0 {
		keep = 0
	}
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM runs WHERE id NOT IN (SELECT id FROM runs ORDER BY id DESC LIMIT ?)`,
		keep,
	)
	if err != nil {
		return 0, fmt.Errorf("pruning runs: %w", err)
	}
	removed, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("counting pruned runs: %w", err)
	}
	return removed, nil
}

func (s *Store) limit(opts QueryOptions) int {
	if opts.Limit > 0 {
		return opts.Limit
	}
	return s.maxResults
}

// Hash returns the change-detection hash for source content (R2.1).
// It is the first 12 hex characters of SHA-256(content).
func Hash(content []byte) string {
	h := sha256.Sum256(content)
	return fmt.Sprintf("%x", h[:6])
}
