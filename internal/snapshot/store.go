// Package snapshot owns the single current analysis result. The store is
// written only by the refresh orchestrator and read-shared by everything else.
package snapshot

import (
	"sync"

	"NiftyPulse/internal/model"
)

// Store holds exactly one Snapshot behind a read/write lock. Reads return a
// value copy, so a reader can never observe a partially written snapshot.
type Store struct {
	mu      sync.RWMutex
	current model.Snapshot
}

// NewStore creates a store seeded with the "not yet updated" sentinel.
func NewStore() *Store {
	return &Store{current: model.SentinelSnapshot()}
}

// Read returns the current snapshot. It never blocks for long and never
// fails; before the first refresh it returns the sentinel.
func (s *Store) Read() model.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Replace swaps in a new snapshot wholesale, visible atomically to
// subsequent reads.
func (s *Store) Replace(snap model.Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = snap
}
