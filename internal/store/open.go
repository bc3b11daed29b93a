package store

import (
	"fmt"
	"os"
	"path/filepath"

	"rewardtrack/internal/domain"
)

// Backend names a snapshot storage implementation.
type Backend string

const (
	BackendFile      Backend = "file"
	BackendEncrypted Backend = "encrypted"
	BackendLevelDB   Backend = "leveldb"
	BackendSQLite    Backend = "sqlite"
	BackendMemory    Backend = "memory"
)

// Store is a SnapshotStore that holds resources until closed.
type Store interface {
	domain.SnapshotStore
	Close() error
}

// Open builds the backend rooted at home, creating the directory if needed.
func Open(backend Backend, home, passphrase string) (Store, error) {
	if backend != BackendMemory {
		if err := os.MkdirAll(home, 0o700); err != nil {
			return nil, err
		}
	}
	switch backend {
	case "", BackendFile:
		return NewFileStore(home), nil
	case BackendEncrypted:
		return NewEncryptedFileStore(home, passphrase)
	case BackendLevelDB:
		return OpenLevelStore(filepath.Join(home, "ledger.ldb"))
	case BackendSQLite:
		return OpenSQLiteStore(filepath.Join(home, "ledger.db"))
	case BackendMemory:
		return NewMemoryStore(nil), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", backend)
	}
}
