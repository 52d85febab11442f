package store

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/katalvlaran/routeboard/snapshot"
)

// Memory is a process-local Store for tests and throwaway sessions.
//
// It keeps the same encoded-bytes representation as the database backends,
// so validation and round-trip behavior are identical; only durability
// differs. Safe for concurrent use.
type Memory struct {
	mu     sync.RWMutex
	closed bool

	// order holds ids oldest first; the tail is what Latest returns.
	order  []string
	bodies map[string][]byte
	meta   map[string]Record
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{
		bodies: make(map[string][]byte),
		meta:   make(map[string]Record),
	}
}

// Save validates and retains the document under a fresh uuid.
func (m *Memory) Save(_ context.Context, label string, doc *snapshot.Document) (string, error) {
	data, err := encodeDocument(doc)
	if err != nil {
		return "", err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return "", ErrClosed
	}

	id := uuid.NewString()
	m.order = append(m.order, id)
	m.bodies[id] = data
	m.meta[id] = Record{ID: id, Label: label, SavedAt: time.Now().UTC()}

	return id, nil
}

// Load retrieves and re-validates one snapshot by id.
func (m *Memory) Load(_ context.Context, id string) (*snapshot.Document, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.closed {
		return nil, ErrClosed
	}

	data, ok := m.bodies[id]
	if !ok {
		return nil, fmt.Errorf("load snapshot %s: %w", id, ErrNotFound)
	}

	return snapshot.Decode(data)
}

// Latest retrieves the most recently saved snapshot.
func (m *Memory) Latest(_ context.Context) (*snapshot.Document, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.closed {
		return nil, ErrClosed
	}
	if len(m.order) == 0 {
		return nil, ErrNotFound
	}

	return snapshot.Decode(m.bodies[m.order[len(m.order)-1]])
}

// List returns the catalogue, newest first.
func (m *Memory) List(_ context.Context) ([]Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.closed {
		return nil, ErrClosed
	}

	var out []Record
	for i := len(m.order) - 1; i >= 0; i-- {
		out = append(out, m.meta[m.order[i]])
	}

	return out, nil
}

// Delete removes one snapshot by id.
func (m *Memory) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrClosed
	}

	if _, ok := m.bodies[id]; !ok {
		return fmt.Errorf("delete snapshot %s: %w", id, ErrNotFound)
	}
	delete(m.bodies, id)
	delete(m.meta, id)
	for i, v := range m.order {
		if v == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}

	return nil
}

// Close marks the store closed. A second Close is a no-op.
func (m *Memory) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.closed = true

	return nil
}
