package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/katalvlaran/routeboard/snapshot"
)

// SQLite is a single-file Store: zero-setup persistence for local sessions.
// The file is created and migrated on open; WAL mode keeps readers and the
// single writer out of each other's way.
type SQLite struct {
	mu     sync.RWMutex
	closed bool
	db     *sql.DB
}

// NewSQLite opens (creating if needed) the database at path and ensures the
// schema. Use ":memory:" for a database that dies with the process.
func NewSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("store: open sqlite: %w", err)
	}

	// SQLite supports one writer at a time; a wider pool only buys lock
	// contention.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	ctx := context.Background()
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
	} {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("store: %s: %w", pragma, err)
		}
	}

	s := &SQLite{db: db}
	if err := s.migrate(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	return s, nil
}

func (s *SQLite) migrate(ctx context.Context) error {
	const table = `
		CREATE TABLE IF NOT EXISTS snapshots (
			seq      INTEGER PRIMARY KEY AUTOINCREMENT,
			id       TEXT NOT NULL UNIQUE,
			label    TEXT NOT NULL DEFAULT '',
			body     TEXT NOT NULL,
			saved_at TEXT NOT NULL
		)
	`
	if _, err := s.db.ExecContext(ctx, table); err != nil {
		return fmt.Errorf("store: create snapshots table: %w", err)
	}
	if _, err := s.db.ExecContext(ctx, "CREATE INDEX IF NOT EXISTS idx_snapshots_label ON snapshots(label)"); err != nil {
		return fmt.Errorf("store: create label index: %w", err)
	}

	return nil
}

func (s *SQLite) guard() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return ErrClosed
	}

	return nil
}

// Save validates and persists the document under a fresh uuid.
func (s *SQLite) Save(ctx context.Context, label string, doc *snapshot.Document) (string, error) {
	if err := s.guard(); err != nil {
		return "", err
	}
	data, err := encodeDocument(doc)
	if err != nil {
		return "", err
	}

	id := uuid.NewString()
	savedAt := time.Now().UTC().Format(time.RFC3339Nano)
	if _, err := s.db.ExecContext(ctx,
		`INSERT INTO snapshots (id, label, body, saved_at) VALUES (?, ?, ?, ?)`,
		id, label, string(data), savedAt,
	); err != nil {
		return "", fmt.Errorf("store: save snapshot: %w", err)
	}

	return id, nil
}

// Load retrieves and re-validates one snapshot by id.
func (s *SQLite) Load(ctx context.Context, id string) (*snapshot.Document, error) {
	if err := s.guard(); err != nil {
		return nil, err
	}

	var body string
	err := s.db.QueryRowContext(ctx, `SELECT body FROM snapshots WHERE id = ?`, id).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("load snapshot %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("store: load snapshot %s: %w", id, err)
	}

	return snapshot.Decode([]byte(body))
}

// Latest retrieves the most recently saved snapshot.
func (s *SQLite) Latest(ctx context.Context) (*snapshot.Document, error) {
	if err := s.guard(); err != nil {
		return nil, err
	}

	var body string
	err := s.db.QueryRowContext(ctx, `SELECT body FROM snapshots ORDER BY seq DESC LIMIT 1`).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("store: latest snapshot: %w", err)
	}

	return snapshot.Decode([]byte(body))
}

// List returns the catalogue, newest first.
func (s *SQLite) List(ctx context.Context) ([]Record, error) {
	if err := s.guard(); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `SELECT id, label, saved_at FROM snapshots ORDER BY seq DESC`)
	if err != nil {
		return nil, fmt.Errorf("store: list snapshots: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []Record
	for rows.Next() {
		var (
			rec     Record
			savedAt string
		)
		if err := rows.Scan(&rec.ID, &rec.Label, &savedAt); err != nil {
			return nil, fmt.Errorf("store: scan snapshot row: %w", err)
		}
		if rec.SavedAt, err = time.Parse(time.RFC3339Nano, savedAt); err != nil {
			return nil, fmt.Errorf("store: parse saved_at: %w", err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("store: iterate snapshots: %w", err)
	}

	return out, nil
}

// Delete removes one snapshot by id.
func (s *SQLite) Delete(ctx context.Context, id string) error {
	if err := s.guard(); err != nil {
		return err
	}

	res, err := s.db.ExecContext(ctx, `DELETE FROM snapshots WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("store: delete snapshot %s: %w", id, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("delete snapshot %s: %w", id, ErrNotFound)
	}

	return nil
}

// Close closes the database file. A second Close is a no-op.
func (s *SQLite) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true

	return s.db.Close()
}
