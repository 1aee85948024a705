// Package store persists fetched documents and extracted records in SQLite
// so pages can be re-extracted offline after a mapping changes.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/agentic-research/playmap/internal/scriptdata"
	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// ErrNotFound is returned when no document matches a lookup.
var ErrNotFound = errors.New("document not found")

const schema = `
CREATE TABLE IF NOT EXISTS documents (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	url TEXT NOT NULL,
	fetched_at INTEGER NOT NULL,
	tree JSON NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_documents_url ON documents(url, fetched_at);

CREATE TABLE IF NOT EXISTS records (
	id TEXT PRIMARY KEY,
	run_id TEXT NOT NULL,
	entity TEXT NOT NULL,
	key TEXT NOT NULL,
	record JSON NOT NULL,
	created_at INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_records_run ON records(run_id, entity);
`

// DB is an open store. Every DB gets its own run id, stamped on the records
// it saves.
type DB struct {
	db    *sql.DB
	runID string
}

// Open opens or creates the store at path.
func Open(path string) (*DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}
	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		_ = db.Close()
		return nil, err
	}
	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		_ = db.Close()
		return nil, err
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &DB{db: db, runID: uuid.NewString()}, nil
}

// RunID identifies the records saved through this handle.
func (d *DB) RunID() string { return d.runID }

// Close closes the database.
func (d *DB) Close() error { return d.db.Close() }

// SaveDocument stores a parsed page under url.
func (d *DB) SaveDocument(ctx context.Context, url string, doc *scriptdata.Document) error {
	_, err := d.db.ExecContext(ctx,
		`INSERT INTO documents (url, fetched_at, tree) VALUES (?, ?, ?)`,
		url, time.Now().UnixNano(), doc.Encode())
	if err != nil {
		return fmt.Errorf("insert document %s: %w", url, err)
	}
	return nil
}

// SaveRecord stores one extracted record (or list) for entity under key.
func (d *DB) SaveRecord(ctx context.Context, entity, key string, rec any) error {
	raw, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encode %s %s: %w", entity, key, err)
	}
	_, err = d.db.ExecContext(ctx,
		`INSERT INTO records (id, run_id, entity, key, record, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		uuid.NewString(), d.runID, entity, key, string(raw), time.Now().UnixNano())
	if err != nil {
		return fmt.Errorf("insert %s %s: %w", entity, key, err)
	}
	return nil
}

// Document is a stored page.
type Document struct {
	ID        int64
	URL       string
	FetchedAt time.Time
	Doc       *scriptdata.Document
}

// StreamDocuments calls fn for every stored document in insertion order.
// Only one decoded document is alive at a time.
func (d *DB) StreamDocuments(ctx context.Context, fn func(Document) error) error {
	rows, err := d.db.QueryContext(ctx, `SELECT id, url, fetched_at, tree FROM documents ORDER BY id`)
	if err != nil {
		return fmt.Errorf("query documents: %w", err)
	}
	defer func() { _ = rows.Close() }() // safe to ignore

	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return err
		}
		if err := fn(doc); err != nil {
			return err
		}
	}
	return rows.Err()
}

// LatestDocument returns the most recently stored document for url.
func (d *DB) LatestDocument(ctx context.Context, url string) (Document, error) {
	row := d.db.QueryRowContext(ctx,
		`SELECT id, url, fetched_at, tree FROM documents WHERE url = ? ORDER BY fetched_at DESC, id DESC LIMIT 1`, url)
	doc, err := scanDocument(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Document{}, fmt.Errorf("%w: %s", ErrNotFound, url)
	}
	return doc, err
}

// Record is one saved extraction result.
type Record struct {
	ID        string
	Key       string
	Record    string
	CreatedAt time.Time
}

// Records returns every record saved for entity in run, oldest first. Saving
// the same key twice yields two entries.
func (d *DB) Records(ctx context.Context, run, entity string) ([]Record, error) {
	rows, err := d.db.QueryContext(ctx,
		`SELECT id, key, record, created_at FROM records WHERE run_id = ? AND entity = ? ORDER BY created_at, rowid`,
		run, entity)
	if err != nil {
		return nil, fmt.Errorf("query records: %w", err)
	}
	defer func() { _ = rows.Close() }() // safe to ignore

	var out []Record
	for rows.Next() {
		var (
			r       Record
			created int64
		)
		if err := rows.Scan(&r.ID, &r.Key, &r.Record, &created); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		r.CreatedAt = time.Unix(0, created)
		out = append(out, r)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanDocument(s scanner) (Document, error) {
	var (
		doc     Document
		fetched int64
		tree    string
	)
	if err := s.Scan(&doc.ID, &doc.URL, &fetched, &tree); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Document{}, err
		}
		return Document{}, fmt.Errorf("scan row: %w", err)
	}
	parsed, err := scriptdata.Decode(tree)
	if err != nil {
		return Document{}, fmt.Errorf("document %d: %w", doc.ID, err)
	}
	doc.FetchedAt = time.Unix(0, fetched)
	doc.Doc = parsed
	return doc, nil
}
