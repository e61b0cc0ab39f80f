package baysearch

// SearchResult is the structured extraction of one search-results page.
// It is constructed once per parse and never mutated afterwards; the
// caller owns it exclusively.
type SearchResult struct {
	// URL is the source URL the document was retrieved from, when known.
	URL string `json:"url"`

	// Items holds the organic listings in document order.
	Items []Listing `json:"items"`

	// Ads holds the promoted listings in document order. Items and Ads
	// are disjoint: every listing node lands in exactly one of the two.
	Ads []Listing `json:"ads"`

	// Total is the page-wide result count from the results header.
	Total int `json:"total"`

	// Zip is the buyer location label, empty if the page shows none.
	Zip string `json:"zip"`

	// ConditionCounts maps item conditions to their facet counts from the
	// condition filter sidebar.
	ConditionCounts map[ItemCondition]int `json:"conditionCounts"`
}

// SearchParser extracts a SearchResult from raw search-results markup.
//
// Parsing is pure and stateless: the same document always yields the same
// result, and concurrent calls on different documents are safe. Individual
// field failures degrade to documented defaults; only a document without a
// listing container fails, with an EINVALID application error, since such
// a document is not a recognizable search-results page at all.
type SearchParser interface {
	// ParseSearch extracts the search result from html. sourceURL is
	// recorded on the result for provenance and may be empty.
	ParseSearch(html string, sourceURL string) (*SearchResult, error)
}
