// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package store persists parsed student records in a SQLite roster
// index with full-text search over names.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/classlist/pkg/types"
)

const (
	recordsDir = "records"
	indexDir   = "index"
	dbFile     = "roster.db"

	// recordsSuffix names the parse stage's hand-off files.
	recordsSuffix = "-records.yaml"
)

// Store manages the roster index SQLite database.
type Store struct {
	db         *sql.DB
	rosterDir  string
	maxResults int
}

// NewStore opens or creates the roster index at
// rosterDir/index/roster.db, creating the schema if needed.
func NewStore(cfg types.StoreConfig) (*Store, error) {
	dbDir := filepath.Join(cfg.RosterDir, indexDir)
	if err := os.MkdirAll(dbDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating index directory: %w", err)
	}

	dbPath := filepath.Join(dbDir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = 20
	}

	s := &Store{
		db:         db,
		rosterDir:  cfg.RosterDir,
		maxResults: maxResults,
	}

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
		`CREATE TABLE IF NOT EXISTS rosters (
			source TEXT PRIMARY KEY,
			term TEXT,
			parsed_at TEXT,
			file_mod_time TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS students (
			rowid INTEGER PRIMARY KEY AUTOINCREMENT,
			g_number TEXT NOT NULL,
			first_name TEXT,
			last_name TEXT,
			email TEXT,
			class TEXT NOT NULL,
			crn TEXT NOT NULL,
			term TEXT,
			source TEXT NOT NULL REFERENCES rosters(source)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_students_class_crn ON students(class, crn)`,
		`CREATE INDEX IF NOT EXISTS idx_students_g_number ON students(g_number)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}

	// FTS5 virtual table over names, with triggers for sync.
	var ftsExists int
	if err := s.db.QueryRow(
		`SELECT count(*) FROM sqlite_master WHERE type='table' AND name='students_fts'`,
	).Scan(&ftsExists); err != nil {
		return fmt.Errorf("checking FTS table: %w", err)
	}

	if ftsExists == 0 {
		ftsStatements := []string{
			`CREATE VIRTUAL TABLE students_fts USING fts5(first_name, last_name, content=students, content_rowid=rowid)`,
			`CREATE TRIGGER students_ai AFTER INSERT ON students BEGIN
				INSERT INTO students_fts(rowid, first_name, last_name) VALUES (new.rowid, new.first_name, new.last_name);
			END`,
			`CREATE TRIGGER students_ad AFTER DELETE ON students BEGIN
				INSERT INTO students_fts(students_fts, rowid, first_name, last_name) VALUES('delete', old.rowid, old.first_name, old.last_name);
			END`,
			`CREATE TRIGGER students_au AFTER UPDATE ON students BEGIN
				INSERT INTO students_fts(students_fts, rowid, first_name, last_name) VALUES('delete', old.rowid, old.first_name, old.last_name);
				INSERT INTO students_fts(rowid, first_name, last_name) VALUES (new.rowid, new.first_name, new.last_name);
			END`,
		}
		for _, stmt := range ftsStatements {
			if _, err := s.db.Exec(stmt); err != nil {
				return fmt.Errorf("creating FTS infrastructure: %w", err)
			}
		}
	}

	return nil
}

// IngestSummary holds counts from a roster index ingest run.
type IngestSummary struct {
	Indexed int
	Updated int
	Skipped int
	Failed  int
}

// Total returns the number of roster files processed.
func (s IngestSummary) Total() int {
	return s.Indexed + s.Updated + s.Skipped + s.Failed
}

// Ingest reads records YAML files from rosterDir/records/ and populates
// the index. Files unchanged since the last ingest are skipped; changed
// rosters are re-ingested wholesale.
func (s *Store) Ingest(ctx context.Context, w io.Writer) (IngestSummary, error) {
	recDir := filepath.Join(s.rosterDir, recordsDir)

	entries, err := os.ReadDir(recDir)
	if err != nil {
		return IngestSummary{}, fmt.Errorf("reading records directory %s: %w", recDir, err)
	}

	var summary IngestSummary

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), recordsSuffix) {
			continue
		}

		select {
		case <-ctx.Done():
			return summary, ctx.Err()
		default:
		}

		name := strings.TrimSuffix(entry.Name(), recordsSuffix)
		filePath := filepath.Join(recDir, entry.Name())

		info, err := entry.Info()
		if err != nil {
			fmt.Fprintf(w, "failed  %s: %v\n", name, err)
			summary.Failed++
			continue
		}
		modTime := info.ModTime().UTC().Format(time.RFC3339Nano)

		var storedModTime string
		err = s.db.QueryRowContext(ctx,
			`SELECT file_mod_time FROM rosters WHERE source = ?`, name,
		).Scan(&storedModTime)

		if err == nil && storedModTime == modTime {
			fmt.Fprintf(w, "skipped %s\n", name)
			summary.Skipped++
			continue
		}

		isUpdate := err == nil

		data, err := os.ReadFile(filePath)
		if err != nil {
			fmt.Fprintf(w, "failed  %s: %v\n", name, err)
			summary.Failed++
			continue
		}

		var r types.Roster
		if err := yaml.Unmarshal(data, &r); err != nil {
			fmt.Fprintf(w, "failed  %s: parse error: %v\n", name, err)
			summary.Failed++
			continue
		}

		if err := s.ingestRoster(ctx, name, &r, modTime, isUpdate); err != nil {
			fmt.Fprintf(w, "failed  %s: %v\n", name, err)
			summary.Failed++
			continue
		}

		if isUpdate {
			fmt.Fprintf(w, "updated %s (%d records)\n", name, len(r.Records))
			summary.Updated++
		} else {
			fmt.Fprintf(w, "indexed %s (%d records)\n", name, len(r.Records))
			summary.Indexed++
		}
	}

	fmt.Fprintf(w, "\nindexed: %d, updated: %d, skipped: %d, failed: %d\n",
		summary.Indexed, summary.Updated, summary.Skipped, summary.Failed)

	return summary, nil
}

func (s *Store) ingestRoster(ctx context.Context, name string, r *types.Roster, modTime string, isUpdate bool) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if isUpdate {
		if _, err := tx.ExecContext(ctx, `DELETE FROM students WHERE source = ?`, name); err != nil {
			return fmt.Errorf("deleting old records: %w", err)
		}
	}

	parsedAt := ""
	if !r.ParsedAt.IsZero() {
		parsedAt = r.ParsedAt.UTC().Format(time.RFC3339)
	}
	_, err = tx.ExecContext(ctx,
		`INSERT INTO rosters (source, term, parsed_at, file_mod_time)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT(source) DO UPDATE SET
			term=excluded.term, parsed_at=excluded.parsed_at,
			file_mod_time=excluded.file_mod_time`,
		name, r.Term, parsedAt, modTime,
	)
	if err != nil {
		return fmt.Errorf("upserting roster: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO students (g_number, first_name, last_name, email, class, crn, term, source)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for _, rec := range r.Records {
		_, err := stmt.ExecContext(ctx,
			rec.GNumber, rec.FirstName, rec.LastName, rec.Email,
			rec.Class, rec.CRN, r.Term, name,
		)
		if err != nil {
			return fmt.Errorf("inserting record %s: %w", rec.GNumber, err)
		}
	}

	return tx.Commit()
}
