package main_test

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/fwojciec/baysearch"
	main "github.com/fwojciec/baysearch/cmd/baysearch"
	"github.com/fwojciec/baysearch/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHistoryCmd(t *testing.T) {
	t.Parallel()

	t.Run("lists stored snapshots", func(t *testing.T) {
		t.Parallel()

		var out bytes.Buffer
		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: &out,
			Stderr: &bytes.Buffer{},
			Snapshots: &mock.SnapshotService{
				FindSnapshotsFn: func(_ context.Context, filter baysearch.SnapshotFilter) ([]*baysearch.Snapshot, error) {
					assert.Equal(t, 20, filter.Limit)
					return []*baysearch.Snapshot{{
						ID:        "snap-1",
						Query:     "lego",
						FetchedAt: time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC),
						Result:    &baysearch.SearchResult{Total: 57},
					}}, nil
				},
			},
		}

		require.NoError(t, (&main.HistoryCmd{Limit: 20}).Run(deps))

		assert.Contains(t, out.String(), "snap-1")
		assert.Contains(t, out.String(), `"lego"`)
		assert.Contains(t, out.String(), "57 results")
	})

	t.Run("reports an empty history", func(t *testing.T) {
		t.Parallel()

		var out bytes.Buffer
		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: &out,
			Stderr: &bytes.Buffer{},
			Snapshots: &mock.SnapshotService{
				FindSnapshotsFn: func(_ context.Context, _ baysearch.SnapshotFilter) ([]*baysearch.Snapshot, error) {
					return []*baysearch.Snapshot{}, nil
				},
			},
		}

		require.NoError(t, (&main.HistoryCmd{Limit: 20}).Run(deps))

		assert.Contains(t, out.String(), "No snapshots found")
	})
}

func TestShowCmd(t *testing.T) {
	t.Parallel()

	t.Run("prints the snapshot as JSON", func(t *testing.T) {
		t.Parallel()

		var out bytes.Buffer
		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: &out,
			Stderr: &bytes.Buffer{},
			Snapshots: &mock.SnapshotService{
				FindSnapshotByIDFn: func(_ context.Context, id string) (*baysearch.Snapshot, error) {
					return &baysearch.Snapshot{ID: id, Query: "lego", Result: &baysearch.SearchResult{}}, nil
				},
			},
		}

		require.NoError(t, (&main.ShowCmd{ID: "snap-1"}).Run(deps))

		var snapshot baysearch.Snapshot
		require.NoError(t, json.Unmarshal(out.Bytes(), &snapshot))
		assert.Equal(t, "snap-1", snapshot.ID)
	})

	t.Run("propagates not-found errors", func(t *testing.T) {
		t.Parallel()

		var errOut bytes.Buffer
		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: &bytes.Buffer{},
			Stderr: &errOut,
			Snapshots: &mock.SnapshotService{
				FindSnapshotByIDFn: func(_ context.Context, _ string) (*baysearch.Snapshot, error) {
					return nil, baysearch.Errorf(baysearch.ENOTFOUND, "snapshot not found")
				},
			},
		}

		err := (&main.ShowCmd{ID: "missing"}).Run(deps)

		require.Error(t, err)
		assert.Contains(t, errOut.String(), "snapshot not found")
	})
}

func TestDeleteCmd(t *testing.T) {
	t.Parallel()

	t.Run("deletes and confirms", func(t *testing.T) {
		t.Parallel()

		var out bytes.Buffer
		var deleted string
		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: &out,
			Stderr: &bytes.Buffer{},
			Snapshots: &mock.SnapshotService{
				DeleteSnapshotFn: func(_ context.Context, id string) error {
					deleted = id
					return nil
				},
			},
		}

		require.NoError(t, (&main.DeleteCmd{ID: "snap-1"}).Run(deps))

		assert.Equal(t, "snap-1", deleted)
		assert.Contains(t, out.String(), "Deleted snapshot snap-1")
	})
}
