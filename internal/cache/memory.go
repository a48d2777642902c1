// internal/cache/memory.go
//
// In-memory implementation of the cache.Store interface.
// Used when no database is configured, and in tests.
//
// Characteristics:
//   - Ranked lists keyed by (length, fingerprint) in a map.
//   - Concurrency-safe via RWMutex (concurrent reads allowed, writes exclusive).
//   - Entries are copied in and out so callers cannot alias stored slices.
//   - State is lost when the process restarts.

package cache

import (
	"context"
	"slices"
	"sync"

	"github.com/robalobadob/wordle/apps/solver/internal/solver"
)

// memory is an in-memory map-based Store implementation.
type memory struct {
	mu   sync.RWMutex            // guards sets map
	sets map[Key][]solver.Entry
}

// NewMemoryStore constructs a new in-memory Store.
func NewMemoryStore() Store {
	return &memory{sets: make(map[Key][]solver.Entry)}
}

// Get looks up a ranked list by key.
func (m *memory) Get(ctx context.Context, key Key) ([]solver.Entry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if e, ok := m.sets[key]; ok {
		return slices.Clone(e), nil
	}
	return nil, ErrNotFound
}

// Put adds or replaces the ranked list for key.
func (m *memory) Put(ctx context.Context, key Key, entries []solver.Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sets[key] = slices.Clone(entries)
	return nil
}
