// Package docstore declares the document-store collaborator the lifecycle
// manager persists listings through. Implementations live under
// infrastructure; tests use an in-memory fake.
package docstore

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Get and Update when no document with the given
// id exists in the collection.
var ErrNotFound = errors.New("document not found")

// ServerTimestamp is a sentinel update value the store resolves to its own
// clock at write time. Timestamps on listings are never client-authored.
var ServerTimestamp = serverTimestamp{}

type serverTimestamp struct{}

// IsServerTimestamp reports whether an update value is the sentinel.
func IsServerTimestamp(v any) bool {
	_, ok := v.(serverTimestamp)
	return ok
}

// Store is the persistence contract. Create assigns the document id and the
// createdAt/updatedAt timestamps at write time and returns the id; any extra
// stamp fields named by the caller are set to the store's clock in the same
// write. Update applies a partial field set; values equal to ServerTimestamp
// are resolved by the store. Increment adds delta to a numeric field
// atomically, so concurrent bumps never lose counts. Errors are surfaced
// verbatim and never retried here.
type Store interface {
	Create(ctx context.Context, collection string, doc any, stamps ...string) (string, error)
	Get(ctx context.Context, collection, id string, out any) error
	Find(ctx context.Context, collection string, filter map[string]any, out any) error
	Update(ctx context.Context, collection, id string, fields map[string]any) error
	Increment(ctx context.Context, collection, id, field string, delta int64) error
}
