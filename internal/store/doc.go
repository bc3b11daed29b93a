// Package store provides the persistence backends for the rewards ledger.
//
// Every backend implements domain.SnapshotStore: it keeps one opaque blob, the
// serialised ledger, under the fixed key interfaces.SnapshotKey. All methods
// are concurrency-safe via internal locking or the backing database.
//
// The package includes:
//   - JSON file on disk, replaced atomically (FileStore)
//   - Passphrase-encrypted file (EncryptedFileStore)
//   - LevelDB database (LevelStore)
//   - SQLite database (SQLiteStore)
//   - In-memory blob for tests (MemoryStore)
package store
