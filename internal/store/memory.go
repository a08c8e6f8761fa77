// internal/store/memory.go
//
// In-memory registry of active phase runs.
// Runs are transient: a page reload or process restart starts the phase
// again from the learn step, which matches how the game treats an
// abandoned phase.
//
// Characteristics:
//   - Stores *game.Run objects keyed by run ID in a map.
//   - Concurrency-safe via RWMutex (concurrent reads allowed, writes exclusive).
//   - Prune drops runs idle for longer than a TTL.

package store

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/robalobadob/magicnumbers/internal/game"
)

// ErrNotFound is returned by Get for unknown or pruned run IDs.
var ErrNotFound = errors.New("run not found")

// Store defines the registry interface for phase runs.
type Store interface {
	// Save adds or replaces a run.
	Save(ctx context.Context, r *game.Run) error

	// Get retrieves a run by ID, or ErrNotFound.
	Get(ctx context.Context, id string) (*game.Run, error)

	// Delete forgets a run. Deleting a missing run is not an error.
	Delete(ctx context.Context, id string) error

	// Prune removes runs whose last update is older than ttl and reports
	// how many were dropped.
	Prune(now time.Time, ttl time.Duration) int
}

// memory is an in-memory map-based Store implementation.
type memory struct {
	mu   sync.RWMutex         // guards runs map
	runs map[string]*game.Run // keyed by Run.ID()
}

// NewMemoryStore constructs a new in-memory Store.
func NewMemoryStore() Store {
	return &memory{runs: make(map[string]*game.Run)}
}

func (m *memory) Save(ctx context.Context, r *game.Run) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.runs[r.ID()] = r
	return nil
}

func (m *memory) Get(ctx context.Context, id string) (*game.Run, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if r, ok := m.runs[id]; ok {
		return r, nil
	}
	return nil, ErrNotFound
}

func (m *memory) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.runs, id)
	return nil
}

func (m *memory) Prune(now time.Time, ttl time.Duration) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	dropped := 0
	for id, r := range m.runs {
		if now.Sub(r.UpdatedAt()) > ttl {
			delete(m.runs, id)
			dropped++
		}
	}
	return dropped
}
