package store

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/katalvlaran/routeboard/snapshot"
)

// pgSchema bootstraps the snapshot table. Bodies are TEXT rather than JSONB
// so the stored bytes stay the canonical encoding, byte for byte.
const pgSchema = `
CREATE TABLE IF NOT EXISTS routeboard_snapshots (
    seq      BIGSERIAL PRIMARY KEY,
    id       TEXT NOT NULL UNIQUE,
    label    TEXT NOT NULL DEFAULT '',
    body     TEXT NOT NULL,
    saved_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_routeboard_snapshots_label ON routeboard_snapshots(label);
`

// Postgres is a Store backed by a pgx connection pool, for deployments where
// several hosts share one session catalogue.
type Postgres struct {
	mu     sync.RWMutex
	closed bool
	pool   *pgxpool.Pool
}

// NewPostgres wraps an existing pool and ensures the schema. The store takes
// ownership of the pool: Close closes it.
func NewPostgres(ctx context.Context, pool *pgxpool.Pool) (*Postgres, error) {
	if _, err := pool.Exec(ctx, pgSchema); err != nil {
		return nil, fmt.Errorf("store: create schema: %w", err)
	}

	return &Postgres{pool: pool}, nil
}

// OpenPostgres connects to dsn, ensures the schema, and returns the store.
func OpenPostgres(ctx context.Context, dsn string) (*Postgres, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("store: connect postgres: %w", err)
	}

	s, err := NewPostgres(ctx, pool)
	if err != nil {
		pool.Close()
		return nil, err
	}

	return s, nil
}

func (s *Postgres) guard() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return ErrClosed
	}

	return nil
}

// Save validates and persists the document under a fresh uuid.
func (s *Postgres) Save(ctx context.Context, label string, doc *snapshot.Document) (string, error) {
	if err := s.guard(); err != nil {
		return "", err
	}
	data, err := encodeDocument(doc)
	if err != nil {
		return "", err
	}

	id := uuid.NewString()
	if _, err := s.pool.Exec(ctx,
		`INSERT INTO routeboard_snapshots (id, label, body) VALUES ($1, $2, $3)`,
		id, label, string(data),
	); err != nil {
		return "", fmt.Errorf("store: save snapshot: %w", err)
	}

	return id, nil
}

// Load retrieves and re-validates one snapshot by id.
func (s *Postgres) Load(ctx context.Context, id string) (*snapshot.Document, error) {
	if err := s.guard(); err != nil {
		return nil, err
	}

	var body string
	err := s.pool.QueryRow(ctx,
		`SELECT body FROM routeboard_snapshots WHERE id = $1`, id,
	).Scan(&body)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("load snapshot %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("store: load snapshot %s: %w", id, err)
	}

	return snapshot.Decode([]byte(body))
}

// Latest retrieves the most recently saved snapshot.
func (s *Postgres) Latest(ctx context.Context) (*snapshot.Document, error) {
	if err := s.guard(); err != nil {
		return nil, err
	}

	var body string
	err := s.pool.QueryRow(ctx,
		`SELECT body FROM routeboard_snapshots ORDER BY seq DESC LIMIT 1`,
	).Scan(&body)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("store: latest snapshot: %w", err)
	}

	return snapshot.Decode([]byte(body))
}

// List returns the catalogue, newest first.
func (s *Postgres) List(ctx context.Context) ([]Record, error) {
	if err := s.guard(); err != nil {
		return nil, err
	}

	rows, err := s.pool.Query(ctx,
		`SELECT id, label, saved_at FROM routeboard_snapshots ORDER BY seq DESC`)
	if err != nil {
		return nil, fmt.Errorf("store: list snapshots: %w", err)
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		var rec Record
		if err := rows.Scan(&rec.ID, &rec.Label, &rec.SavedAt); err != nil {
			return nil, fmt.Errorf("store: scan snapshot row: %w", err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("store: iterate snapshots: %w", err)
	}

	return out, nil
}

// Delete removes one snapshot by id.
func (s *Postgres) Delete(ctx context.Context, id string) error {
	if err := s.guard(); err != nil {
		return err
	}

	ct, err := s.pool.Exec(ctx, `DELETE FROM routeboard_snapshots WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("store: delete snapshot %s: %w", id, err)
	}
	if ct.RowsAffected() == 0 {
		return fmt.Errorf("delete snapshot %s: %w", id, ErrNotFound)
	}

	return nil
}

// Close releases the pool. A second Close is a no-op.
func (s *Postgres) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true
	s.pool.Close()

	return nil
}
