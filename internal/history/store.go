// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package history records each generation run in a SQLite database so code
// ratios can be tracked across runs.
package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/example-docs/internal/harvest"
	"github.com/pdiddy/example-docs/pkg/types"
)

const defaultLimit = 20

// Store manages the run history database.
type Store struct {
	db *sql.DB
}

// Open opens or creates the history database at path and creates the
// schema if it does not exist.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating history directory: %w", err)
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db}
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
			id TEXT PRIMARY KEY,
			started_at TEXT NOT NULL,
			elapsed_ms INTEGER NOT NULL,
			records INTEGER NOT NULL,
			complete INTEGER NOT NULL,
			incomplete INTEGER NOT NULL,
			skipped INTEGER NOT NULL,
			warnings INTEGER NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS examples (
			rowid INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
			category TEXT NOT NULL,
			title TEXT NOT NULL,
			status TEXT NOT NULL,
			code_ratio REAL,
			source TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_examples_run_id ON examples(run_id)`,
		`CREATE INDEX IF NOT EXISTS idx_examples_title ON examples(title)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Run is one recorded generation run.
type Run struct {
	ID         string        `json:"id" yaml:"id"`
	StartedAt  time.Time     `json:"started_at" yaml:"started_at"`
	Elapsed    time.Duration `json:"elapsed" yaml:"elapsed"`
	Records    int           `json:"records" yaml:"records"`
	Complete   int           `json:"complete" yaml:"complete"`
	Incomplete int           `json:"incomplete" yaml:"incomplete"`
	Skipped    int           `json:"skipped" yaml:"skipped"`
	Warnings   int           `json:"warnings" yaml:"warnings"`
}

// Entry is one example as recorded in a run.
type Entry struct {
	RunID     string       `json:"run_id" yaml:"run_id"`
	StartedAt time.Time    `json:"started_at" yaml:"started_at"`
	Category  string       `json:"category" yaml:"category"`
	Title     string       `json:"title" yaml:"title"`
	Status    types.Status `json:"status" yaml:"status"`
	CodeRatio float64      `json:"code_ratio,omitempty" yaml:"code_ratio,omitempty"`
	Source    string       `json:"source,omitempty" yaml:"source,omitempty"`
}

// Save records res as a new run and returns its ID.
func (s *Store) Save(ctx context.Context, res *harvest.Result) (string, error) {
	id := uuid.NewString()
	entries := entriesFor(res)

	rep := res.Report
	complete := rep.Comparisons.Complete + rep.Standalone.Complete + rep.RealWorld.Complete
	incomplete := rep.Comparisons.Incomplete + rep.Standalone.Incomplete + rep.RealWorld.Incomplete
	skipped := rep.Comparisons.Skipped + rep.Standalone.Skipped + rep.RealWorld.Skipped

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO runs (id, started_at, elapsed_ms, records, complete, incomplete, skipped, warnings)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		id, res.StartedAt.UTC().Format(time.RFC3339Nano), res.Elapsed.Milliseconds(),
		len(entries), complete, incomplete, skipped, len(rep.Warnings),
	)
	if err != nil {
		return "", fmt.Errorf("inserting run: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO examples (run_id, category, title, status, code_ratio, source)
		 VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return "", fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for _, e := range entries {
		var ratio sql.NullFloat64
		if e.CodeRatio > 0 {
			ratio = sql.NullFloat64{Float64: e.CodeRatio, Valid: true}
		}
		if _, err := stmt.ExecContext(ctx, id, e.Category, e.Title, string(e.Status), ratio, e.Source); err != nil {
			return "", fmt.Errorf("inserting example %s: %w", e.Title, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("committing run: %w", err)
	}
	return id, nil
}

func entriesFor(res *harvest.Result) []Entry {
	var entries []Entry
	for _, e := range res.Comparisons {
		entries = append(entries, Entry{
			Category: harvest.CategoryComparison, Title: e.Title, Status: e.Status,
			CodeRatio: e.CodeRatio, Source: e.ComparisonFilename,
		})
	}
	for _, e := range res.Standalone {
		entries = append(entries, Entry{
			Category: harvest.CategoryStandalone, Title: e.Title, Status: types.StatusComplete,
			Source: e.Filename,
		})
	}
	for _, e := range res.RealWorld {
		entries = append(entries, Entry{
			Category: harvest.CategoryRealWorld, Title: e.Title, Status: e.Status,
			CodeRatio: e.CodeRatio, Source: e.SourceURL,
		})
	}
	return entries
}

// Runs returns the most recent runs, newest first. A limit of zero or less
// selects the default.
func (s *Store) Runs(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = defaultLimit
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, started_at, elapsed_ms, records, complete, incomplete, skipped, warnings
		 FROM runs ORDER BY started_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var (
			r         Run
			startedAt string
			elapsedMS int64
		)
		if err := rows.Scan(&r.ID, &startedAt, &elapsedMS, &r.Records,
			&r.Complete, &r.Incomplete, &r.Skipped, &r.Warnings); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		r.StartedAt, _ = time.Parse(time.RFC3339Nano, startedAt)
		r.Elapsed = time.Duration(elapsedMS) * time.Millisecond
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// Trend returns the recorded entries for title across runs, newest first.
func (s *Store) Trend(ctx context.Context, title string, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = defaultLimit
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT e.run_id, r.started_at, e.category, e.title, e.status, e.code_ratio, e.source
		 FROM examples e JOIN runs r ON r.id = e.run_id
		 WHERE e.title = ?
		 ORDER BY r.started_at DESC, e.rowid
		 LIMIT ?`, title, limit)
	if err != nil {
		return nil, fmt.Errorf("querying trend for %s: %w", title, err)
	}
	defer rows.Close()
	return scanEntries(rows)
}

// Entries returns every entry recorded for a run.
func (s *Store) Entries(ctx context.Context, runID string) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT e.run_id, r.started_at, e.category, e.title, e.status, e.code_ratio, e.source
		 FROM examples e JOIN runs r ON r.id = e.run_id
		 WHERE e.run_id = ?
		 ORDER BY e.rowid`, runID)
	if err != nil {
		return nil, fmt.Errorf("querying entries for run %s: %w", runID, err)
	}
	defer rows.Close()
	return scanEntries(rows)
}

func scanEntries(rows *sql.Rows) ([]Entry, error) {
	var entries []Entry
	for rows.Next() {
		var (
			e         Entry
			startedAt string
			status    string
			ratio     sql.NullFloat64
			source    sql.NullString
		)
		if err := rows.Scan(&e.RunID, &startedAt, &e.Category, &e.Title, &status, &ratio, &source); err != nil {
			return nil, fmt.Errorf("scanning entry: %w", err)
		}
		e.StartedAt, _ = time.Parse(time.RFC3339Nano, startedAt)
		e.Status = types.Status(status)
		e.CodeRatio = ratio.Float64
		e.Source = source.String
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// ExportYAML writes the most recent runs and their entries to w.
func (s *Store) ExportYAML(ctx context.Context, w io.Writer, limit int) error {
	export, err := s.export(ctx, limit)
	if err != nil {
		return err
	}
	data, err := yaml.Marshal(export)
	if err != nil {
		return fmt.Errorf("marshaling YAML: %w", err)
	}
	_, err = w.Write(data)
	return err
}

// ExportJSON writes the most recent runs and their entries to w.
func (s *Store) ExportJSON(ctx context.Context, w io.Writer, limit int) error {
	export, err := s.export(ctx, limit)
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(export, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling JSON: %w", err)
	}
	_, err = w.Write(append(data, '\n'))
	return err
}

// exportRun is a run with its entries, as written by the exporters.
type exportRun struct {
	Run     `yaml:",inline"`
	Entries []Entry `json:"entries" yaml:"entries"`
}

func (s *Store) export(ctx context.Context, limit int) ([]exportRun, error) {
	runs, err := s.Runs(ctx, limit)
	if err != nil {
		return nil, err
	}
	out := make([]exportRun, len(runs))
	for i, r := range runs {
		entries, err := s.Entries(ctx, r.ID)
		if err != nil {
			return nil, err
		}
		out[i] = exportRun{Run: r, Entries: entries}
	}
	return out, nil
}
