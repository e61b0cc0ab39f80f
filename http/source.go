// Package http provides an HTTP-based implementation of
// baysearch.DocumentSource for fetching search-results pages directly,
// without browser rendering.
package http

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/fwojciec/baysearch"
)

// DefaultBaseURL is the marketplace host searched by default.
const DefaultBaseURL = "https://www.ebay.de"

// DefaultFetchTimeout is the default timeout for HTTP requests.
// Kept consistent with rod.DefaultFetchTimeout (10s).
const DefaultFetchTimeout = 10 * time.Second

// defaultUserAgent is sent with every request. The marketplace serves the
// legacy list view to conventional browser agents.
const defaultUserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// Ensure Source implements baysearch.DocumentSource at compile time.
var _ baysearch.DocumentSource = (*Source)(nil)

// Source retrieves search-results documents over plain HTTP. Unlike
// rod.Source, this does not execute JavaScript; the marketplace's list
// view is server-rendered, so this is the default source.
type Source struct {
	client    *http.Client
	baseURL   string
	userAgent string
	timeout   time.Duration
	limiter   baysearch.RateLimiter
}

// Option configures a Source.
type Option func(*Source)

// WithBaseURL sets the marketplace base URL.
// Defaults to DefaultBaseURL if not specified.
func WithBaseURL(base string) Option {
	return func(s *Source) {
		s.baseURL = base
	}
}

// WithTimeout sets the timeout for HTTP requests.
// Defaults to DefaultFetchTimeout (10s) if not specified.
func WithTimeout(d time.Duration) Option {
	return func(s *Source) {
		s.timeout = d
	}
}

// WithUserAgent sets the User-Agent header sent with requests.
func WithUserAgent(ua string) Option {
	return func(s *Source) {
		s.userAgent = ua
	}
}

// WithRateLimiter throttles outbound requests. No throttling by default.
func WithRateLimiter(l baysearch.RateLimiter) Option {
	return func(s *Source) {
		s.limiter = l
	}
}

// NewSource creates a new HTTP-based Source.
func NewSource(opts ...Option) *Source {
	s := &Source{
		baseURL:   DefaultBaseURL,
		userAgent: defaultUserAgent,
		timeout:   DefaultFetchTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}

	s.client = &http.Client{
		Timeout: s.timeout,
	}

	return s
}

// Fetch retrieves the search-results page for the request. The returned
// document records the final URL after redirects.
func (s *Source) Fetch(ctx context.Context, req baysearch.SearchRequest) (*baysearch.Document, error) {
	url, err := req.URL(s.baseURL)
	if err != nil {
		return nil, err
	}

	if s.limiter != nil {
		if err := s.limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("User-Agent", s.userAgent)

	resp, err := s.client.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d for %s", resp.StatusCode, url)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	return &baysearch.Document{
		HTML:      string(body),
		URL:       resp.Request.URL.String(),
		FetchedAt: time.Now().UTC(),
	}, nil
}

// Close releases resources. For the HTTP source this is a no-op since
// http.Client doesn't require explicit cleanup.
func (s *Source) Close() error {
	return nil
}
