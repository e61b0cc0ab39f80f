package mock

import "github.com/fwojciec/baysearch"

var _ baysearch.SearchParser = (*SearchParser)(nil)

// SearchParser is a mock implementation of baysearch.SearchParser.
type SearchParser struct {
	ParseSearchFn func(html string, sourceURL string) (*baysearch.SearchResult, error)
}

func (p *SearchParser) ParseSearch(html string, sourceURL string) (*baysearch.SearchResult, error) {
	return p.ParseSearchFn(html, sourceURL)
}
