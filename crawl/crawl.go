// Package crawl provides multi-page search orchestration. It coordinates
// fetching, rate limiting, retries, and parsing of a range of result
// pages.
package crawl

import (
	"context"
	"time"

	"github.com/fwojciec/baysearch"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency is the fetch parallelism used when the Crawler's
// Concurrency field is zero.
const DefaultConcurrency = 4

// DefaultRetryDelays returns the backoff delays for fetch retries: 1s, 2s, 4s.
func DefaultRetryDelays() []time.Duration {
	return []time.Duration{1 * time.Second, 2 * time.Second, 4 * time.Second}
}

// Crawler fetches and parses a range of search-results pages.
type Crawler struct {
	Source      baysearch.DocumentSource
	Parser      baysearch.SearchParser
	Limiter     baysearch.RateLimiter
	Concurrency int
	RetryDelays []time.Duration
}

// PageResult holds the outcome of one result page.
type PageResult struct {
	// Page is the 1-based page number.
	Page int

	// Document is the raw fetched page.
	Document *baysearch.Document

	// Result is the extracted search result.
	Result *baysearch.SearchResult
}

// ProgressEvent reports progress during a multi-page search.
type ProgressEvent struct {
	Type  ProgressType
	Page  int
	Error error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressFetched ProgressType = iota
	ProgressRetried
)

// ProgressFunc is a callback for reporting search progress.
type ProgressFunc func(event ProgressEvent)

// SearchPages fetches and parses result pages 1..pages for the request,
// returning results in page order. Fetches run concurrently up to the
// configured limit and are rate limited when a limiter is set. The first
// fetch or parse failure cancels outstanding pages and is returned.
func (c *Crawler) SearchPages(ctx context.Context, req baysearch.SearchRequest, pages int, progress ProgressFunc) ([]*PageResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if pages < 1 {
		return nil, baysearch.Errorf(baysearch.EINVALID, "page count must be positive, got %d", pages)
	}

	concurrency := c.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	results := make([]*PageResult, pages)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for page := 1; page <= pages; page++ {
		g.Go(func() error {
			pageReq := req
			pageReq.Page = page

			doc, err := c.fetch(ctx, pageReq, progress)
			if err != nil {
				return err
			}

			result, err := c.Parser.ParseSearch(doc.HTML, doc.URL)
			if err != nil {
				return err
			}

			results[page-1] = &PageResult{Page: page, Document: doc, Result: result}
			if progress != nil {
				progress(ProgressEvent{Type: ProgressFetched, Page: page})
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}

// fetch retrieves one page, waiting on the rate limiter before every
// attempt and retrying with the configured backoff delays on failure.
func (c *Crawler) fetch(ctx context.Context, req baysearch.SearchRequest, progress ProgressFunc) (*baysearch.Document, error) {
	maxAttempts := len(c.RetryDelays) + 1

	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		if c.Limiter != nil {
			if err := c.Limiter.Wait(ctx); err != nil {
				return nil, err
			}
		}

		doc, err := c.Source.Fetch(ctx, req)
		if err == nil {
			return doc, nil
		}
		lastErr = err

		// Don't retry after the last attempt
		if attempt >= maxAttempts-1 {
			break
		}

		if progress != nil {
			progress(ProgressEvent{Type: ProgressRetried, Page: req.Page, Error: err})
		}

		// Wait before next attempt
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(c.RetryDelays[attempt]):
		}
	}

	return nil, lastErr
}
