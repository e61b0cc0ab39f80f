// Package rod provides a browser-based implementation of
// baysearch.DocumentSource. It renders pages in headless Chrome, which
// gets through bot checks that reject plain HTTP clients.
package rod

import (
	"context"
	"fmt"
	"time"

	"github.com/fwojciec/baysearch"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

// Ensure Source implements baysearch.DocumentSource at compile time.
var _ baysearch.DocumentSource = (*Source)(nil)

// Source retrieves rendered search-results pages using Chrome browser
// automation. Source is safe for concurrent use by multiple goroutines.
type Source struct {
	browser *rod.Browser
	baseURL string
}

// Option configures a Source.
type Option func(*Source)

// WithBaseURL sets the marketplace base URL.
func WithBaseURL(base string) Option {
	return func(s *Source) {
		s.baseURL = base
	}
}

// NewSource creates a new Source that launches a headless Chrome browser.
// Close must be called when the Source is no longer needed.
//
// Returns an error if Chrome/Chromium cannot be found or launched.
func NewSource(opts ...Option) (*Source, error) {
	s := &Source{baseURL: "https://www.ebay.de"}
	for _, opt := range opts {
		opt(s)
	}

	// Launch browser using rod's launcher (finds or downloads Chrome)
	l := launcher.New().Headless(true)
	u, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("launching browser: %w", err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		l.Kill() // Clean up launched process on connection failure
		return nil, fmt.Errorf("connecting to browser: %w", err)
	}

	s.browser = browser
	return s, nil
}

// Fetch navigates to the request's search URL and returns the rendered
// page. The returned document records the page's final URL, which captures
// any redirects the site performed.
func (s *Source) Fetch(ctx context.Context, req baysearch.SearchRequest) (*baysearch.Document, error) {
	url, err := req.URL(s.baseURL)
	if err != nil {
		return nil, err
	}

	// Check context before starting
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Create a new page
	page, err := s.browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return nil, err
	}
	defer page.Close()

	// Set context for all subsequent operations
	page = page.Context(ctx)

	// Navigate to URL
	if err := page.Navigate(url); err != nil {
		return nil, err
	}

	// Wait for page to load
	if err := page.WaitLoad(); err != nil {
		return nil, err
	}

	// Get rendered HTML
	html, err := page.HTML()
	if err != nil {
		return nil, err
	}

	info, err := page.Info()
	if err != nil {
		return nil, err
	}

	return &baysearch.Document{
		HTML:      html,
		URL:       info.URL,
		FetchedAt: time.Now().UTC(),
	}, nil
}

// Close releases browser resources.
func (s *Source) Close() error {
	return s.browser.Close()
}
