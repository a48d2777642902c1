// internal/cache/cache.go
//
// Score cache for ranked entropy lists.
// A pass over N candidates costs O(N²·L), so ranked lists are kept and reused
// whenever the same candidate set comes up again (typically the full
// vocabulary for a word length at session start).
//
// Keys carry a content fingerprint of the candidate set, not just the word
// length: editing the word list can never return stale scores.

package cache

import (
	"context"
	"errors"

	"github.com/robalobadob/wordle/apps/solver/internal/solver"
)

// ErrNotFound is returned by Get on a cache miss.
var ErrNotFound = errors.New("cache: not found")

// Key identifies a candidate set.
type Key struct {
	Length      int
	Fingerprint string
}

// KeyFor returns the cache key for a candidate snapshot.
func KeyFor(c *solver.Candidates) Key {
	return Key{Length: c.Length(), Fingerprint: c.Fingerprint()}
}

// Store defines the persistence interface for ranked score lists.
// Implementations are backed by memory (memory.go) or SQLite (sqlite.go).
type Store interface {
	// Get returns the ranked entries saved for key, or ErrNotFound.
	Get(ctx context.Context, key Key) ([]solver.Entry, error)

	// Put saves or replaces the ranked entries for key.
	Put(ctx context.Context, key Key, entries []solver.Entry) error
}
