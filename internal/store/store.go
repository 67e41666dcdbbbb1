// Package store provides keyed storage for generated presentation
// outlines. The default backend is an in-process map; a Redis/Valkey
// backend is available for deployments that want bounded retention.
package store

import (
	"context"
	"errors"

	"deckgen/internal/outline"
)

// ErrNotFound is returned by Get for ids the store has never seen (or,
// for the redis backend, ids whose entries have expired).
var ErrNotFound = errors.New("store: presentation not found")

// Store is the keyed outline store. Records are written exactly once by
// the generator and never mutated, so implementations only need to make
// Put and Get individually safe for concurrent use. Every Store also
// satisfies outline.Store, the write-only view the generator depends on.
type Store interface {
	// Put inserts a presentation under its ID, overwriting unconditionally.
	Put(ctx context.Context, p *outline.Presentation) error

	// Get returns the presentation stored under id, or ErrNotFound.
	Get(ctx context.Context, id string) (*outline.Presentation, error)
}
