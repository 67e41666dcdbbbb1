package store

import (
	"context"
	"sync"

	"deckgen/internal/outline"
)

// Memory is the default in-process store: a mutex-guarded map that lives
// for the lifetime of the process. It has no eviction and no size bound;
// callers must not assume durability across restarts.
type Memory struct {
	mu            sync.RWMutex
	presentations map[string]*outline.Presentation
}

var _ outline.Store = (*Memory)(nil)

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{presentations: make(map[string]*outline.Presentation)}
}

// Put stores a presentation under its ID.
func (m *Memory) Put(_ context.Context, p *outline.Presentation) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.presentations[p.ID] = p
	return nil
}

// Get returns the presentation stored under id, or ErrNotFound.
func (m *Memory) Get(_ context.Context, id string) (*outline.Presentation, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	p, ok := m.presentations[id]
	if !ok {
		return nil, ErrNotFound
	}
	return p, nil
}

// Len returns the number of stored presentations.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.presentations)
}
