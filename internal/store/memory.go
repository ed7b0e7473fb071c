package store

import (
	"sync"
	"time"

	"github.com/i474232898/weather-prediction/internal/forecast"
)

// MemoryStore is a concurrency-safe in-memory store of prediction snapshots.
// Nothing is persisted; a restart clears all display state.
type MemoryStore struct {
	mu sync.RWMutex

	snapshots []forecast.Snapshot

	// retention configuration
	maxHistory int           // max number of snapshots kept
	maxAge     time.Duration // max age of snapshots
}

// NewMemoryStore creates a new MemoryStore with optional limits.
// Limits of zero or less are treated as unlimited.
func NewMemoryStore(maxHistory int, maxAge time.Duration) *MemoryStore {
	return &MemoryStore{
		maxHistory: maxHistory,
		maxAge:     maxAge,
	}
}

// Save appends a snapshot and enforces retention.
func (s *MemoryStore) Save(snapshot forecast.Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.snapshots = append(s.snapshots, snapshot)

	// Enforce retention by count.
	if s.maxHistory > 0 && len(s.snapshots) > s.maxHistory {
		over := len(s.snapshots) - s.maxHistory
		s.snapshots = s.snapshots[over:]
	}

	// Enforce retention by age.
	if s.maxAge > 0 {
		cutoff := time.Now().Add(-s.maxAge)
		i := 0
		for ; i < len(s.snapshots); i++ {
			if !s.snapshots[i].RequestedAt.Before(cutoff) {
				break
			}
		}
		if i > 0 {
			s.snapshots = s.snapshots[i:]
		}
	}
}

// Latest returns the most recently recorded snapshot.
func (s *MemoryStore) Latest() (forecast.Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.snapshots) == 0 {
		return forecast.Snapshot{}, forecast.ErrNoSnapshot
	}
	return s.snapshots[len(s.snapshots)-1], nil
}

// Recent returns up to limit snapshots, newest first. A limit of zero or
// less returns everything.
func (s *MemoryStore) Recent(limit int) []forecast.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := len(s.snapshots)
	if limit <= 0 || limit > n {
		limit = n
	}

	out := make([]forecast.Snapshot, 0, limit)
	for i := n - 1; i >= n-limit; i-- {
		out = append(out, s.snapshots[i])
	}
	return out
}

// Clear drops all snapshots, returning the display state to no-result.
func (s *MemoryStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshots = nil
}
