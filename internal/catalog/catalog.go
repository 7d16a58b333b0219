// Package catalog reads the lifesaver catalog: a read-only JSON array of
// rescue-equipment locations maintained by an external data-entry process.
package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/kcg-rescue/lifesavermap/internal/blob"
	"github.com/kcg-rescue/lifesavermap/internal/model"
)

// ErrCorrupt reports that the stored catalog is not valid JSON.
var ErrCorrupt = errors.New("catalog: stored catalog is corrupt")

// Reader reads the catalog blob. A missing catalog is a deployment error and
// is surfaced as blob.ErrNotFound, never flattened into an empty list.
type Reader struct {
	store blob.Store
	key   string
}

// NewReader returns a Reader for the catalog under key in store.
func NewReader(store blob.Store, key string) *Reader {
	return &Reader{store: store, key: key}
}

// Catalog returns every lifesaver record. Records are normalized on every
// read (legacy "lon" renamed to "lng", see model.Lifesaver.Normalize); the
// stored blob is never rewritten.
func (r *Reader) Catalog(ctx context.Context) ([]model.Lifesaver, error) {
	raw, err := r.store.Read(ctx, r.key)
	if err != nil {
		return nil, err
	}
	var records []model.Lifesaver
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	return model.NormalizeAll(records), nil
}
