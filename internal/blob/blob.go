package blob

import (
	"context"
	"errors"
)

// ErrNotFound reports that no object exists under the requested key.
// Callers decide whether absence is an error (catalog) or an empty
// starting state (help-request log).
var ErrNotFound = errors.New("blob: not found")

// Store is whole-object keyed storage. Writes replace the entire object;
// there are no partial updates, versions or transactions. Every call
// round-trips to the backend.
type Store interface {
	Exists(ctx context.Context, key string) (bool, error)
	// Read returns the object's bytes, or ErrNotFound when absent.
	Read(ctx context.Context, key string) ([]byte, error)
	// Write stores data under key, replacing any previous object.
	Write(ctx context.Context, key string, data []byte) error
}
