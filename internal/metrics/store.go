package metrics

import (
	"context"
	"time"

	"github.com/kcg-rescue/lifesavermap/internal/blob"
)

// InstrumentedStore wraps a blob.Store and times every round-trip.
type InstrumentedStore struct {
	Inner blob.Store
}

func observe(op string, start time.Time) {
	BlobOperationDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
}

func (s *InstrumentedStore) Exists(ctx context.Context, key string) (bool, error) {
	defer observe("exists", time.Now())
	return s.Inner.Exists(ctx, key)
}

func (s *InstrumentedStore) Read(ctx context.Context, key string) ([]byte, error) {
	defer observe("read", time.Now())
	return s.Inner.Read(ctx, key)
}

func (s *InstrumentedStore) Write(ctx context.Context, key string, data []byte) error {
	defer observe("write", time.Now())
	return s.Inner.Write(ctx, key, data)
}
