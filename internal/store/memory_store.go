package store

import (
	"sync"

	"rewardtrack/internal/domain"
)

// MemoryStore keeps the snapshot in memory. SaveErr, when set, makes every
// save fail with it.
type MemoryStore struct {
	mu      sync.Mutex
	blob    []byte
	saves   int
	SaveErr error
}

// NewMemoryStore returns a MemoryStore seeded with blob (nil for empty).
func NewMemoryStore(blob []byte) *MemoryStore {
	return &MemoryStore{blob: append([]byte(nil), blob...)}
}

func (s *MemoryStore) LoadSnapshot() ([]byte, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.blob == nil {
		return nil, false, nil
	}
	return append([]byte(nil), s.blob...), true, nil
}

func (s *MemoryStore) SaveSnapshot(blob []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.SaveErr != nil {
		return s.SaveErr
	}
	s.blob = append([]byte(nil), blob...)
	s.saves++
	return nil
}

// Saves counts successful saves.
func (s *MemoryStore) Saves() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saves
}

// Close is a no-op.
func (s *MemoryStore) Close() error { return nil }

// Compile-time assertion that MemoryStore implements domain.SnapshotStore.
var _ domain.SnapshotStore = (*MemoryStore)(nil)
