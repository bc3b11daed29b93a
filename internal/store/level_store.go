package store

import (
	"errors"

	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/opt"

	"rewardtrack/internal/domain"
	"rewardtrack/internal/domain/interfaces"
)

// LevelStore keeps the ledger snapshot in a LevelDB database.
type LevelStore struct {
	db *leveldb.DB
}

// OpenLevelStore creates or opens a LevelDB database at path.
func OpenLevelStore(path string) (*LevelStore, error) {
	db, err := leveldb.OpenFile(path, nil)
	if err != nil {
		return nil, err
	}
	return &LevelStore{db: db}, nil
}

// LoadSnapshot returns the snapshot value, if any.
func (s *LevelStore) LoadSnapshot() ([]byte, bool, error) {
	b, err := s.db.Get([]byte(interfaces.SnapshotKey), nil)
	if errors.Is(err, leveldb.ErrNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return b, true, nil
}

// SaveSnapshot writes the snapshot with a synced write.
func (s *LevelStore) SaveSnapshot(blob []byte) error {
	return s.db.Put([]byte(interfaces.SnapshotKey), blob, &opt.WriteOptions{Sync: true})
}

// Close closes the database.
func (s *LevelStore) Close() error {
	return s.db.Close()
}

// Compile-time assertion that LevelStore implements domain.SnapshotStore.
var _ domain.SnapshotStore = (*LevelStore)(nil)
