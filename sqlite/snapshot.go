package sqlite

import (
	"context"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/baysearch"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ baysearch.SnapshotService = (*SnapshotService)(nil)

// SnapshotService implements baysearch.SnapshotService using SQLite.
type SnapshotService struct {
	db *DB
}

// NewSnapshotService creates a new SnapshotService.
func NewSnapshotService(db *DB) *SnapshotService {
	return &SnapshotService{db: db}
}

// hashResult computes xxHash of the result's canonical JSON encoding and
// returns it as a hex string. Equal hashes mean identical result sets.
func hashResult(result *baysearch.SearchResult) (string, error) {
	encoded, err := json.Marshal(result)
	if err != nil {
		return "", err
	}
	h := xxhash.Sum64(encoded)
	b := make([]byte, 8)
	for i := range b {
		b[i] = byte(h >> (56 - 8*i))
	}
	return hex.EncodeToString(b), nil
}

// CreateSnapshot stores a new snapshot with its listings.
func (s *SnapshotService) CreateSnapshot(ctx context.Context, snapshot *baysearch.Snapshot) error {
	if err := snapshot.Validate(); err != nil {
		return err
	}

	snapshot.ID = uuid.New().String()
	if snapshot.FetchedAt.IsZero() {
		snapshot.FetchedAt = time.Now().UTC()
	}

	hash, err := hashResult(snapshot.Result)
	if err != nil {
		return fmt.Errorf("failed to hash result: %w", err)
	}
	snapshot.ResultHash = hash

	counts, err := json.Marshal(snapshot.Result.ConditionCounts)
	if err != nil {
		return fmt.Errorf("failed to encode condition counts: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO searches (id, query, source_url, result_hash, total, zip, condition_counts, fetched_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, snapshot.ID, snapshot.Query, snapshot.SourceURL, snapshot.ResultHash,
		snapshot.Result.Total, snapshot.Result.Zip, string(counts),
		snapshot.FetchedAt.Format(time.RFC3339))
	if err != nil {
		return err
	}

	if err := insertListings(ctx, tx, snapshot.ID, snapshot.Result.Items, false); err != nil {
		return err
	}
	if err := insertListings(ctx, tx, snapshot.ID, snapshot.Result.Ads, true); err != nil {
		return err
	}

	return tx.Commit()
}

// insertListings stores one partition of a snapshot's listings, keyed by
// position to preserve document order.
func insertListings(ctx context.Context, tx *sql.Tx, searchID string, listings []baysearch.Listing, isAd bool) error {
	for i, l := range listings {
		var imageID, imageVariant string
		if len(l.Images) > 0 {
			imageID = l.Images[0].ID
			imageVariant = l.Images[0].Variant
		}
		_, err := tx.ExecContext(ctx, `
			INSERT INTO listings (search_id, position, is_ad, listing_id, title, newly, condition,
				auction, buy_now, allows_offer, price_range, plus, price, shipping, currency,
				image_id, image_variant)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, searchID, i, isAd, l.ID, l.Title, l.Newly, string(l.Condition),
			l.Auction, l.BuyNow, l.AllowsOffer, l.PriceRange, l.Plus,
			l.Price, l.Shipping, l.Currency, imageID, imageVariant)
		if err != nil {
			return err
		}
	}
	return nil
}

// FindSnapshotByID retrieves a snapshot by ID, including its full result.
func (s *SnapshotService) FindSnapshotByID(ctx context.Context, id string) (*baysearch.Snapshot, error) {
	var snapshot baysearch.Snapshot
	var result baysearch.SearchResult
	var counts, fetchedAt string

	err := s.db.QueryRowContext(ctx, `
		SELECT id, query, source_url, result_hash, total, zip, condition_counts, fetched_at
		FROM searches
		WHERE id = ?
	`, id).Scan(&snapshot.ID, &snapshot.Query, &snapshot.SourceURL, &snapshot.ResultHash,
		&result.Total, &result.Zip, &counts, &fetchedAt)

	if err == sql.ErrNoRows {
		return nil, baysearch.Errorf(baysearch.ENOTFOUND, "snapshot not found")
	}
	if err != nil {
		return nil, err
	}

	snapshot.FetchedAt, err = parseRFC3339(fetchedAt, "fetched_at")
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(counts), &result.ConditionCounts); err != nil {
		return nil, fmt.Errorf("failed to decode condition counts: %w", err)
	}

	result.URL = snapshot.SourceURL
	result.Items, result.Ads, err = s.findListings(ctx, snapshot.ID)
	if err != nil {
		return nil, err
	}

	snapshot.Result = &result
	return &snapshot, nil
}

// findListings loads both listing partitions of a snapshot in stored order.
func (s *SnapshotService) findListings(ctx context.Context, searchID string) (items, ads []baysearch.Listing, err error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT is_ad, listing_id, title, newly, condition, auction, buy_now, allows_offer,
			price_range, plus, price, shipping, currency, image_id, image_variant
		FROM listings
		WHERE search_id = ?
		ORDER BY is_ad ASC, position ASC
	`, searchID)
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	items = []baysearch.Listing{}
	ads = []baysearch.Listing{}

	for rows.Next() {
		var l baysearch.Listing
		var isAd bool
		var condition, imageID, imageVariant string

		if err := rows.Scan(&isAd, &l.ID, &l.Title, &l.Newly, &condition, &l.Auction,
			&l.BuyNow, &l.AllowsOffer, &l.PriceRange, &l.Plus, &l.Price, &l.Shipping,
			&l.Currency, &imageID, &imageVariant); err != nil {
			return nil, nil, err
		}

		l.Condition = baysearch.ItemCondition(condition)
		if imageID != "" || imageVariant != "" {
			l.Images = []baysearch.ItemImage{{ID: imageID, Variant: imageVariant}}
		}

		if isAd {
			ads = append(ads, l)
		} else {
			items = append(items, l)
		}
	}

	return items, ads, rows.Err()
}

// FindSnapshots retrieves snapshots matching the filter, most recent
// first. The returned snapshots carry summary fields only; Result holds
// the total and zip but no listings.
func (s *SnapshotService) FindSnapshots(ctx context.Context, filter baysearch.SnapshotFilter) ([]*baysearch.Snapshot, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT id, query, source_url, result_hash, total, zip, fetched_at FROM searches WHERE 1=1")

	if filter.ID != nil {
		query.WriteString(" AND id = ?")
		args = append(args, *filter.ID)
	}
	if filter.Query != nil {
		query.WriteString(" AND query = ?")
		args = append(args, *filter.Query)
	}

	query.WriteString(" ORDER BY fetched_at DESC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	snapshots := []*baysearch.Snapshot{}
	for rows.Next() {
		var snapshot baysearch.Snapshot
		var result baysearch.SearchResult
		var fetchedAt string

		if err := rows.Scan(&snapshot.ID, &snapshot.Query, &snapshot.SourceURL,
			&snapshot.ResultHash, &result.Total, &result.Zip, &fetchedAt); err != nil {
			return nil, err
		}

		snapshot.FetchedAt, err = parseRFC3339(fetchedAt, "fetched_at")
		if err != nil {
			return nil, err
		}

		result.URL = snapshot.SourceURL
		snapshot.Result = &result
		snapshots = append(snapshots, &snapshot)
	}

	return snapshots, rows.Err()
}

// DeleteSnapshot permanently removes a snapshot and its listings.
func (s *SnapshotService) DeleteSnapshot(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM searches WHERE id = ?", id)
	if err != nil {
		return err
	}

	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return baysearch.Errorf(baysearch.ENOTFOUND, "snapshot not found")
	}

	return nil
}
