package store

import (
	"path/filepath"
	"sync"

	"rewardtrack/internal/domain"
	"rewardtrack/internal/domain/interfaces"
)

const snapshotFile = interfaces.SnapshotKey + ".json"

// FileStore keeps the ledger snapshot as a plain JSON file under dir.
type FileStore struct {
	dir string
	mu  sync.Mutex
}

// NewFileStore returns a FileStore rooted at dir.
func NewFileStore(dir string) *FileStore {
	return &FileStore{dir: dir}
}

// Path is the snapshot file location.
func (s *FileStore) Path() string { return filepath.Join(s.dir, snapshotFile) }

// LoadSnapshot reads the snapshot file; a missing file is not an error.
func (s *FileStore) LoadSnapshot() ([]byte, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, err := readFile(s.Path())
	if err != nil {
		return nil, false, err
	}
	return b, b != nil, nil
}

// SaveSnapshot atomically replaces the snapshot file.
func (s *FileStore) SaveSnapshot(blob []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return writeFile(s.Path(), blob, 0o600)
}

// Close is a no-op.
func (s *FileStore) Close() error { return nil }

// Compile-time assertion that FileStore implements domain.SnapshotStore.
var _ domain.SnapshotStore = (*FileStore)(nil)
