package store_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rewardtrack/internal/domain"
	"rewardtrack/internal/store"
)

const blob = `{"rise":{"points":1700,"history":[]}}`

func openBackend(t *testing.T, backend store.Backend) store.Store {
	t.Helper()
	s, err := store.Open(backend, t.TempDir(), "Correct-Horse-9!")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	if enc, ok := s.(*store.EncryptedFileStore); ok {
		store.SetScryptCost(enc, 1<<10, 8, 1)
	}
	return s
}

func TestBackends_RoundTrip(t *testing.T) {
	for _, backend := range []store.Backend{
		store.BackendFile,
		store.BackendEncrypted,
		store.BackendLevelDB,
		store.BackendSQLite,
		store.BackendMemory,
	} {
		t.Run(string(backend), func(t *testing.T) {
			var s domain.SnapshotStore = openBackend(t, backend)

			got, ok, err := s.LoadSnapshot()
			require.NoError(t, err)
			assert.False(t, ok, "fresh store has no snapshot")
			assert.Nil(t, got)

			require.NoError(t, s.SaveSnapshot([]byte(blob)))
			got, ok, err = s.LoadSnapshot()
			require.NoError(t, err)
			require.True(t, ok)
			assert.JSONEq(t, blob, string(got))

			next := `{"rise":{"points":1,"history":[]}}`
			require.NoError(t, s.SaveSnapshot([]byte(next)))
			got, _, err = s.LoadSnapshot()
			require.NoError(t, err)
			assert.JSONEq(t, next, string(got))
		})
	}
}

func TestOpen_UnknownBackend(t *testing.T) {
	_, err := store.Open("tape", t.TempDir(), "")
	require.Error(t, err)
}

func TestFileStore_WritesFixedKeyFile(t *testing.T) {
	home := t.TempDir()
	s := store.NewFileStore(home)
	require.NoError(t, s.SaveSnapshot([]byte(blob)))

	b, err := os.ReadFile(filepath.Join(home, "rewards-tracker-state-v1.json"))
	require.NoError(t, err)
	assert.JSONEq(t, blob, string(b))

	leftovers, err := filepath.Glob(filepath.Join(home, "*.tmp-*"))
	require.NoError(t, err)
	assert.Empty(t, leftovers)
}

func TestEncryptedFileStore_WrongPassphrase_Fails(t *testing.T) {
	home := t.TempDir()

	s, err := store.NewEncryptedFileStore(home, "correct")
	require.NoError(t, err)
	store.SetScryptCost(s, 1<<10, 8, 1)
	require.NoError(t, s.SaveSnapshot([]byte(blob)))

	other, err := store.NewEncryptedFileStore(home, "wrong")
	require.NoError(t, err)
	_, _, err = other.LoadSnapshot()
	require.ErrorIs(t, err, store.ErrWrongPassphrase)
}

func TestEncryptedFileStore_RequiresPassphrase(t *testing.T) {
	_, err := store.NewEncryptedFileStore(t.TempDir(), "")
	require.ErrorIs(t, err, store.ErrPassphraseRequired)
}

func TestMemoryStore_SaveErr(t *testing.T) {
	s := store.NewMemoryStore([]byte(blob))
	s.SaveErr = errors.New("disk full")

	require.Error(t, s.SaveSnapshot([]byte("{}")))
	got, ok, err := s.LoadSnapshot()
	require.NoError(t, err)
	require.True(t, ok)
	assert.JSONEq(t, blob, string(got))
	assert.Zero(t, s.Saves())
}
