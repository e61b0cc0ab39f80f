package mock

import (
	"context"

	"github.com/fwojciec/baysearch"
)

var _ baysearch.SnapshotService = (*SnapshotService)(nil)

// SnapshotService is a mock implementation of baysearch.SnapshotService.
type SnapshotService struct {
	CreateSnapshotFn   func(ctx context.Context, snapshot *baysearch.Snapshot) error
	FindSnapshotByIDFn func(ctx context.Context, id string) (*baysearch.Snapshot, error)
	FindSnapshotsFn    func(ctx context.Context, filter baysearch.SnapshotFilter) ([]*baysearch.Snapshot, error)
	DeleteSnapshotFn   func(ctx context.Context, id string) error
}

func (s *SnapshotService) CreateSnapshot(ctx context.Context, snapshot *baysearch.Snapshot) error {
	return s.CreateSnapshotFn(ctx, snapshot)
}

func (s *SnapshotService) FindSnapshotByID(ctx context.Context, id string) (*baysearch.Snapshot, error) {
	return s.FindSnapshotByIDFn(ctx, id)
}

func (s *SnapshotService) FindSnapshots(ctx context.Context, filter baysearch.SnapshotFilter) ([]*baysearch.Snapshot, error) {
	return s.FindSnapshotsFn(ctx, filter)
}

func (s *SnapshotService) DeleteSnapshot(ctx context.Context, id string) error {
	return s.DeleteSnapshotFn(ctx, id)
}
