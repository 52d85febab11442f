package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/katalvlaran/routeboard/snapshot"
)

// Sentinel errors for store operations.
var (
	// ErrNotFound indicates the requested snapshot id does not exist, or
	// that Latest was asked of an empty store.
	ErrNotFound = errors.New("store: snapshot not found")

	// ErrClosed indicates an operation on a store after Close.
	ErrClosed = errors.New("store: closed")
)

// Record describes one saved snapshot without its document body.
type Record struct {
	// ID is the uuid assigned by Save.
	ID string

	// Label is the caller-supplied display name. May be empty.
	Label string

	// SavedAt is when the snapshot was persisted.
	SavedAt time.Time
}

// Store persists snapshot documents under generated uuids.
//
// Every backend stores the canonical JSON produced by snapshot.Encode, so a
// raw dump of any backend's body column is itself a loadable snapshot file.
// Save validates before persisting and Load validates after retrieval;
// neither direction ever hands over a document that would fail Apply.
type Store interface {
	// Save validates and persists the document, returning its fresh id.
	Save(ctx context.Context, label string, doc *snapshot.Document) (string, error)

	// Load retrieves one snapshot by id. Fails with ErrNotFound.
	Load(ctx context.Context, id string) (*snapshot.Document, error)

	// Latest retrieves the most recently saved snapshot.
	// Fails with ErrNotFound on an empty store.
	Latest(ctx context.Context) (*snapshot.Document, error)

	// List returns the catalogue of saved snapshots, newest first.
	List(ctx context.Context) ([]Record, error)

	// Delete removes one snapshot by id. Fails with ErrNotFound.
	Delete(ctx context.Context, id string) error

	// Close releases backend resources. Further operations fail with
	// ErrClosed; a second Close is a no-op.
	Close() error
}

// encodeDocument validates and renders a document for persistence. Shared by
// every backend so they refuse exactly the same inputs.
func encodeDocument(doc *snapshot.Document) ([]byte, error) {
	if doc == nil {
		return nil, fmt.Errorf("save snapshot: nil document: %w", snapshot.ErrInvalidDocument)
	}
	if err := doc.Validate(); err != nil {
		return nil, fmt.Errorf("save snapshot: %w", err)
	}

	return snapshot.Encode(doc)
}
