package baysearch

import (
	"context"
	"time"
)

// Snapshot is a persisted search result: what one query returned at one
// point in time.
type Snapshot struct {
	ID        string    `json:"id"`
	Query     string    `json:"query"`
	SourceURL string    `json:"sourceUrl"`
	FetchedAt time.Time `json:"fetchedAt"`

	// ResultHash is a hash of the canonical encoding of Result, set by the
	// storage layer. Equal hashes across snapshots mean the marketplace
	// returned an identical result set.
	ResultHash string `json:"resultHash"`

	Result *SearchResult `json:"result"`
}

// Validate returns an error if the snapshot contains invalid fields.
func (s *Snapshot) Validate() error {
	if s.Query == "" {
		return Errorf(EINVALID, "snapshot query required")
	}
	if s.Result == nil {
		return Errorf(EINVALID, "snapshot result required")
	}
	return nil
}

// SnapshotService represents a service for persisting search snapshots.
type SnapshotService interface {
	// CreateSnapshot stores a new snapshot and assigns its ID and hash.
	CreateSnapshot(ctx context.Context, snapshot *Snapshot) error

	// FindSnapshotByID retrieves a snapshot by ID, including its result.
	// Returns ENOTFOUND if the snapshot does not exist.
	FindSnapshotByID(ctx context.Context, id string) (*Snapshot, error)

	// FindSnapshots retrieves snapshots matching the filter, most recent
	// first. Results omit listings; use FindSnapshotByID for the full
	// result.
	FindSnapshots(ctx context.Context, filter SnapshotFilter) ([]*Snapshot, error)

	// DeleteSnapshot permanently removes a snapshot and its listings.
	// Returns ENOTFOUND if the snapshot does not exist.
	DeleteSnapshot(ctx context.Context, id string) error
}

// SnapshotFilter represents a filter for FindSnapshots.
type SnapshotFilter struct {
	ID    *string `json:"id"`
	Query *string `json:"query"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}
