package interfaces

// SnapshotKey is the fixed key every backend stores the ledger snapshot under.
const SnapshotKey = "rewards-tracker-state-v1"

// SnapshotStore persists the serialised ledger as one opaque blob.
type SnapshotStore interface {
	// LoadSnapshot returns the stored blob; ok is false when nothing was saved yet.
	LoadSnapshot() (blob []byte, ok bool, err error)
	// SaveSnapshot replaces the stored blob.
	SaveSnapshot(blob []byte) error
}
