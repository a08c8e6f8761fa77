// internal/kv/memory.go
//
// In-memory implementation of KV.
//   - Concurrency-safe via RWMutex (concurrent reads allowed, writes exclusive).
//   - Values are copied on the way in and out so callers cannot alias them.
//   - State is lost when the process restarts.

package kv

import (
	"context"
	"sync"
)

type memory struct {
	mu     sync.RWMutex      // guards values
	values map[string][]byte // keyed by record key
}

// NewMemory constructs an empty in-memory KV.
func NewMemory() KV {
	return &memory{values: make(map[string][]byte)}
}

func (m *memory) Get(ctx context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[key]
	if !ok {
		return nil, ErrNotFound
	}
	return append([]byte(nil), v...), nil
}

func (m *memory) Set(ctx context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = append([]byte(nil), value...)
	return nil
}

func (m *memory) Close() error { return nil }
