package core

import (
	"sync"

	"uptimebar/internal/domain"
)

// SnapshotStore holds the latest sampled payload for replay to fresh
// websocket subscribers. The read endpoint never serves from it; every HTTP
// request computes a fresh payload.
type SnapshotStore struct {
	mu       sync.RWMutex
	snapshot *domain.StatusResponse
}

func NewSnapshotStore() *SnapshotStore {
	return &SnapshotStore{}
}

func (s *SnapshotStore) Set(resp *domain.StatusResponse) {
	s.mu.Lock()
	s.snapshot = resp
	s.mu.Unlock()
}

func (s *SnapshotStore) Get() *domain.StatusResponse {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot
}
