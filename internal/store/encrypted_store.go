package store

import (
	"errors"
	"path/filepath"
	"sync"

	"rewardtrack/internal/domain"
	"rewardtrack/internal/domain/interfaces"
)

const encryptedSnapshotFile = interfaces.SnapshotKey + ".json.enc"

// ErrPassphraseRequired is returned when an encrypted store has no passphrase.
var ErrPassphraseRequired = errors.New("store: passphrase required for encrypted ledger")

// EncryptedFileStore keeps the ledger snapshot sealed with a passphrase.
type EncryptedFileStore struct {
	dir        string
	passphrase string
	mu         sync.Mutex

	// scrypt cost parameters; tests lower them.
	n, r, p int
}

// NewEncryptedFileStore returns an EncryptedFileStore rooted at dir.
func NewEncryptedFileStore(dir, passphrase string) (*EncryptedFileStore, error) {
	if passphrase == "" {
		return nil, ErrPassphraseRequired
	}
	n, r, p := scryptParamsDefault()
	return &EncryptedFileStore{dir: dir, passphrase: passphrase, n: n, r: r, p: p}, nil
}

// LoadSnapshot reads and decrypts the snapshot.
func (s *EncryptedFileStore) LoadSnapshot() ([]byte, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, err := readFile(filepath.Join(s.dir, encryptedSnapshotFile))
	if err != nil || b == nil {
		return nil, false, err
	}
	pt, err := open(s.passphrase, b)
	if err != nil {
		return nil, false, err
	}
	return pt, true, nil
}

// SaveSnapshot encrypts and atomically writes the snapshot.
func (s *EncryptedFileStore) SaveSnapshot(blob []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ct, err := seal(s.passphrase, blob, s.n, s.r, s.p)
	if err != nil {
		return err
	}
	return writeFile(filepath.Join(s.dir, encryptedSnapshotFile), ct, 0o600)
}

// Close is a no-op.
func (s *EncryptedFileStore) Close() error { return nil }

// Compile-time assertion that EncryptedFileStore implements domain.SnapshotStore.
var _ domain.SnapshotStore = (*EncryptedFileStore)(nil)
