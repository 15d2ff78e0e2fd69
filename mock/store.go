package mock

import (
	"context"

	"github.com/fwojciec/krpcdocs"
)

var _ krpcdocs.SnapshotStore = (*SnapshotStore)(nil)

// SnapshotStore is a mock implementation of krpcdocs.SnapshotStore.
type SnapshotStore struct {
	LoadFn func(ctx context.Context) (*krpcdocs.Snapshot, error)
	SaveFn func(ctx context.Context, snap *krpcdocs.Snapshot) error
}

func (s *SnapshotStore) Load(ctx context.Context) (*krpcdocs.Snapshot, error) {
	return s.LoadFn(ctx)
}

func (s *SnapshotStore) Save(ctx context.Context, snap *krpcdocs.Snapshot) error {
	return s.SaveFn(ctx, snap)
}
