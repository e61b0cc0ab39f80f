package baysearch

import (
	"context"
	"net/url"
	"strconv"
	"time"
)

// SortOrder selects the result ordering of a search.
type SortOrder string

// SortOrder values understood by the marketplace.
const (
	SortBestMatch     SortOrder = ""
	SortEndingSoonest SortOrder = "ending"
	SortNewlyListed   SortOrder = "newly"
	SortPriceAsc      SortOrder = "price_asc"
	SortPriceDesc     SortOrder = "price_desc"
)

// sortCodes maps sort orders to the marketplace's _sop query codes.
var sortCodes = map[SortOrder]string{
	SortEndingSoonest: "1",
	SortNewlyListed:   "10",
	SortPriceAsc:      "15",
	SortPriceDesc:     "16",
}

// conditionCodes maps condition filters to the marketplace's
// LH_ItemCondition query codes.
var conditionCodes = map[ItemCondition]string{
	ConditionNew:         "1000",
	ConditionRefurbished: "2500",
	ConditionUsed:        "3000",
	ConditionDefective:   "7000",
}

// SearchRequest describes one search-results page to fetch.
type SearchRequest struct {
	// Query is the search term. Required.
	Query string `json:"query"`

	// Page is the 1-based result page. Zero means the first page.
	Page int `json:"page"`

	// Sort selects the result ordering. Defaults to best match.
	Sort SortOrder `json:"sort"`

	// Condition restricts results to one item condition. Empty or
	// ConditionUnknown means no restriction.
	Condition ItemCondition `json:"condition"`
}

// Validate returns an error if the request contains invalid fields.
func (r SearchRequest) Validate() error {
	if r.Query == "" {
		return Errorf(EINVALID, "search query required")
	}
	if r.Sort != SortBestMatch {
		if _, ok := sortCodes[r.Sort]; !ok {
			return Errorf(EINVALID, "unknown sort order %q", r.Sort)
		}
	}
	if r.Condition != "" && r.Condition != ConditionUnknown {
		if _, ok := conditionCodes[r.Condition]; !ok {
			return Errorf(EINVALID, "unknown condition filter %q", r.Condition)
		}
	}
	return nil
}

// URL builds the marketplace search URL for this request against the given
// base URL (scheme and host).
func (r SearchRequest) URL(base string) (string, error) {
	if err := r.Validate(); err != nil {
		return "", err
	}
	u, err := url.Parse(base)
	if err != nil {
		return "", Errorf(EINVALID, "invalid base URL: %v", err)
	}
	u.Path = "/sch/i.html"

	q := url.Values{}
	q.Set("_nkw", r.Query)
	if r.Page > 1 {
		q.Set("_pgn", strconv.Itoa(r.Page))
	}
	if code, ok := sortCodes[r.Sort]; ok {
		q.Set("_sop", code)
	}
	if code, ok := conditionCodes[r.Condition]; ok {
		q.Set("LH_ItemCondition", code)
	}
	u.RawQuery = q.Encode()

	return u.String(), nil
}

// Document is a fetched search-results page.
type Document struct {
	// HTML is the raw markup.
	HTML string

	// URL is the final URL the markup was retrieved from, after any
	// redirects. Used for result provenance.
	URL string

	// FetchedAt records when the document was retrieved.
	FetchedAt time.Time
}

// DocumentSource retrieves raw search-results documents. Fetching is the
// only blocking operation in the system; cancellation and timeouts apply
// here, never to parsing.
type DocumentSource interface {
	// Fetch retrieves the results page for the request.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, req SearchRequest) (*Document, error)

	// Close releases any resources held by the source.
	// Must be called when the source is no longer needed.
	Close() error
}

// RateLimiter throttles outbound requests to the marketplace.
type RateLimiter interface {
	// Wait blocks until the limiter allows another request or the context
	// is canceled.
	Wait(ctx context.Context) error
}
