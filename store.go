package krpcdocs

import "context"

// SnapshotStore persists index snapshots to durable storage.
type SnapshotStore interface {
	// Load reads the most recently saved snapshot.
	// Returns ENOTFOUND if no usable snapshot exists; a corrupt or partially
	// written snapshot is reported the same way, never as a fatal error.
	Load(ctx context.Context) (*Snapshot, error)

	// Save durably replaces the stored snapshot.
	Save(ctx context.Context, snap *Snapshot) error
}
