package blob

import (
	"context"
	"fmt"
	"sync"
)

// MemStore is an in-process Store used by tests and as the fallback when no
// durable backend is configured.
type MemStore struct {
	mu      sync.RWMutex
	objects map[string][]byte

	// FailWrites makes every Write return an error; tests use it to
	// exercise backend-failure paths.
	FailWrites bool
}

// NewMemStore returns an empty MemStore.
func NewMemStore() *MemStore {
	return &MemStore{objects: make(map[string][]byte)}
}

func (s *MemStore) Exists(_ context.Context, key string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.objects[key]
	return ok, nil
}

func (s *MemStore) Read(_ context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	data, ok := s.objects[key]
	if !ok {
		return nil, fmt.Errorf("get %s: %w", key, ErrNotFound)
	}
	cp := make([]byte, len(data))
	copy(cp, data)
	return cp, nil
}

func (s *MemStore) Write(_ context.Context, key string, data []byte) error {
	if s.FailWrites {
		return fmt.Errorf("put %s: backend unavailable", key)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := make([]byte, len(data))
	copy(cp, data)
	s.objects[key] = cp
	return nil
}
