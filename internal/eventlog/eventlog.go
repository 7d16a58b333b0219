// Package eventlog owns the durable log of help requests. The backing blob
// holds one JSON array; every append rewrites the whole array, so a mutex
// serializes writers to keep concurrent submissions from overwriting each
// other.
package eventlog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/kcg-rescue/lifesavermap/internal/blob"
	"github.com/kcg-rescue/lifesavermap/internal/model"
)

// RetentionMillis is how long a help request stays in the log: 24 hours.
// Eviction is lazy: it runs as part of the next Append, never on a timer,
// so List can return older records between writes.
const RetentionMillis = 24 * 60 * 60 * 1000

// ErrCorrupt reports that the stored log is not valid JSON. The log is never
// silently reset; a corrupt blob has to be repaired out of band.
var ErrCorrupt = errors.New("eventlog: stored log is corrupt")

// Log is the append-only help-request log.
type Log struct {
	store blob.Store
	key   string

	mu  sync.Mutex
	now func() time.Time
}

// New returns a Log stored under key in store.
func New(store blob.Store, key string) *Log {
	return &Log{store: store, key: key, now: time.Now}
}

// WithClock overrides the clock; tests use it to pin retention boundaries.
func (l *Log) WithClock(now func() time.Time) *Log {
	l.now = now
	return l
}

func (l *Log) load(ctx context.Context) ([]model.HelpRequest, error) {
	raw, err := l.store.Read(ctx, l.key)
	if err != nil {
		if errors.Is(err, blob.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	var records []model.HelpRequest
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	return records, nil
}

// Append stores rec and returns the size of the retained log. The whole
// cycle (read, drop records older than RetentionMillis, append, write) runs
// under the log mutex, so concurrent appends cannot lose each other's
// records. A missing blob is an empty log, not an error.
func (l *Log) Append(ctx context.Context, rec model.HelpRequest) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	records, err := l.load(ctx)
	if err != nil {
		return 0, err
	}

	nowMillis := float64(l.now().UnixMilli())
	recent := make([]model.HelpRequest, 0, len(records)+1)
	for _, r := range records {
		if r.AgeMillis(nowMillis) < RetentionMillis {
			recent = append(recent, r)
		}
	}
	recent = append(recent, rec)

	data, err := json.Marshal(recent)
	if err != nil {
		return 0, fmt.Errorf("encode log: %w", err)
	}
	if err := l.store.Write(ctx, l.key, data); err != nil {
		return 0, err
	}
	return len(recent), nil
}

// List returns every stored record in insertion order. It does not apply
// the retention filter, since eviction happens only on Append, so records older
// than 24 hours can show up here until the next write. A missing blob yields
// an empty slice.
func (l *Log) List(ctx context.Context) ([]model.HelpRequest, error) {
	records, err := l.load(ctx)
	if err != nil {
		return nil, err
	}
	if records == nil {
		records = []model.HelpRequest{}
	}
	return records, nil
}
