// Package catalog records per-document build outcomes in a SQLite
// database so rejected documents and build statistics can be inspected
// after the fact. The catalog is diagnostic only: the sealed index never
// reads from it.
package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

// DocumentRecord is one corpus file's outcome within a build.
type DocumentRecord struct {
	ID          int64  `json:"id"`
	BuildID     int64  `json:"build_id"`
	Path        string `json:"path"`
	URL         string `json:"url,omitempty"`
	DocID       int    `json:"doc_id,omitempty"` // 0 for rejected documents
	Status      string `json:"status"`
	TokenCount  int    `json:"token_count"`
	Checksum    int64  `json:"checksum,omitempty"`
	Fingerprint string `json:"fingerprint,omitempty"`
	SizeBytes   int64  `json:"size_bytes"`
}

// Document statuses recorded by the builder.
const (
	StatusIndexed        = "indexed"
	StatusNonHTML        = "non_html"
	StatusTooShort       = "too_short"
	StatusExactDuplicate = "exact_duplicate"
	StatusNearDuplicate  = "near_duplicate"
)

// BuildRun is one build invocation's statistics row.
type BuildRun struct {
	ID            int64  `json:"id"`
	CorpusDir     string `json:"corpus_dir"`
	Status        string `json:"status"`
	StartedAt     string `json:"started_at"`
	FinishedAt    string `json:"finished_at,omitempty"`
	DocsProcessed int    `json:"docs_processed"`
	DocsIndexed   int    `json:"docs_indexed"`
	UniqueTokens  int    `json:"unique_tokens"`
	Spills        int    `json:"spills"`
}

// StatusCount pairs a document status with its occurrence count.
type StatusCount struct {
	Status string `json:"status"`
	Count  int    `json:"count"`
}

// Store wraps the catalog database.
type Store struct {
	db   *sql.DB
	path string
}

// New opens (creating if needed) the catalog at path and applies the
// schema and any pending migrations.
func New(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating catalog directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening catalog: %w", err)
	}

	s := &Store{db: db, path: path}
	ctx := context.Background()
	if _, err := db.ExecContext(ctx, schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("applying catalog schema: %w", err)
	}
	if err := s.migrate(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the underlying database.
func (s *Store) Close() error { return s.db.Close() }

// DB exposes the raw handle for diagnostic queries.
func (s *Store) DB() *sql.DB { return s.db }

// StartBuild inserts a running build row and returns its id.
func (s *Store) StartBuild(ctx context.Context, corpusDir string) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO build_runs (corpus_dir, status) VALUES (?, 'running')`, corpusDir)
	if err != nil {
		return 0, fmt.Errorf("starting build run: %w", err)
	}
	return res.LastInsertId()
}

// FinishBuild marks a build row complete and records its statistics.
func (s *Store) FinishBuild(ctx context.Context, id int64, processed, indexed, uniqueTokens, spills int) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE build_runs
		 SET status = 'complete', finished_at = CURRENT_TIMESTAMP,
		     docs_processed = ?, docs_indexed = ?, unique_tokens = ?, spills = ?
		 WHERE id = ?`,
		processed, indexed, uniqueTokens, spills, id)
	if err != nil {
		return fmt.Errorf("finishing build run %d: %w", id, err)
	}
	return nil
}

// RecordDocument inserts one document outcome.
func (s *Store) RecordDocument(ctx context.Context, rec DocumentRecord) error {
	var docID any
	if rec.DocID > 0 {
		docID = rec.DocID
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO documents
		 (build_id, path, url, doc_id, status, token_count, checksum, fingerprint, size_bytes)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.BuildID, rec.Path, rec.URL, docID, rec.Status,
		rec.TokenCount, rec.Checksum, rec.Fingerprint, rec.SizeBytes)
	if err != nil {
		return fmt.Errorf("recording document %s: %w", rec.Path, err)
	}
	return nil
}

// LatestBuild returns the most recent build row.
func (s *Store) LatestBuild(ctx context.Context) (BuildRun, error) {
	var b BuildRun
	var finished sql.NullString
	row := s.db.QueryRowContext(ctx,
		`SELECT id, corpus_dir, status, started_at, finished_at,
		        docs_processed, docs_indexed, unique_tokens, spills
		 FROM build_runs ORDER BY id DESC LIMIT 1`)
	err := row.Scan(&b.ID, &b.CorpusDir, &b.Status, &b.StartedAt, &finished,
		&b.DocsProcessed, &b.DocsIndexed, &b.UniqueTokens, &b.Spills)
	if err != nil {
		return BuildRun{}, fmt.Errorf("reading latest build: %w", err)
	}
	b.FinishedAt = finished.String
	return b, nil
}

// Summary returns per-status document counts for a build.
func (s *Store) Summary(ctx context.Context, buildID int64) ([]StatusCount, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT status, COUNT(*) FROM documents WHERE build_id = ?
		 GROUP BY status ORDER BY COUNT(*) DESC`, buildID)
	if err != nil {
		return nil, fmt.Errorf("summarizing build %d: %w", buildID, err)
	}
	defer rows.Close()

	var out []StatusCount
	for rows.Next() {
		var sc StatusCount
		if err := rows.Scan(&sc.Status, &sc.Count); err != nil {
			return nil, err
		}
		out = append(out, sc)
	}
	return out, rows.Err()
}

// ListByStatus returns up to limit document records with the given status.
func (s *Store) ListByStatus(ctx context.Context, buildID int64, status string, limit int) ([]DocumentRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, build_id, path, url, COALESCE(doc_id, 0), status,
		        token_count, COALESCE(checksum, 0), COALESCE(fingerprint, ''), size_bytes
		 FROM documents WHERE build_id = ? AND status = ?
		 ORDER BY id LIMIT ?`, buildID, status, limit)
	if err != nil {
		return nil, fmt.Errorf("listing %s documents: %w", status, err)
	}
	defer rows.Close()

	var out []DocumentRecord
	for rows.Next() {
		var r DocumentRecord
		if err := rows.Scan(&r.ID, &r.BuildID, &r.Path, &r.URL, &r.DocID, &r.Status,
			&r.TokenCount, &r.Checksum, &r.Fingerprint, &r.SizeBytes); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
