// Package goquery implements search-results extraction on top of
// PuerkitoBio/goquery. It is the only package that touches the page's
// markup; everything it produces is expressed in baysearch domain types.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/baysearch"
)

// Compile-time interface verification.
var _ baysearch.SearchParser = (*Parser)(nil)

// Parser extracts search results from marketplace list-view markup.
// Parser is stateless and safe for concurrent use.
type Parser struct{}

// NewParser creates a new Parser.
func NewParser() *Parser {
	return &Parser{}
}

// ParseSearch extracts the search result from html. The listing container
// is the only required structural anchor: without it the document is not a
// recognizable search-results page and an EINVALID error is returned. A
// present but empty container is a valid zero-results page.
func (p *Parser) ParseSearch(html string, sourceURL string) (*baysearch.SearchResult, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, baysearch.Errorf(baysearch.EINVALID, "failed to parse HTML: %v", err)
	}

	container := doc.Find("#ListViewInner").First()
	if container.Length() == 0 {
		return nil, baysearch.Errorf(baysearch.EINVALID, "no listing container in document")
	}

	items, ads := segmentListings(container)

	return &baysearch.SearchResult{
		URL:             sourceURL,
		Items:           items,
		Ads:             ads,
		Total:           parseTotal(doc),
		Zip:             parseZip(doc),
		ConditionCounts: parseConditionCounts(doc),
	}, nil
}

// segmentListings partitions the container's listing nodes into organic
// items and promoted ads. Nodes carrying r="1" occupy the page's top
// promoted slot, which can also appear as the regular first result.
//
// The observed top-slot quirk is preserved exactly: the first node in
// document order is always an organic item regardless of its promoted
// flag, and among promoted nodes the first one is dropped from the ads to
// avoid counting that slot twice. Do not change this without checking
// against real documents.
func segmentListings(container *goquery.Selection) (items, ads []baysearch.Listing) {
	items = []baysearch.Listing{}
	ads = []baysearch.Listing{}

	promotedSeen := false
	container.Find("li[listingid]").Each(func(i int, sel *goquery.Selection) {
		promoted := sel.AttrOr("r", "") == "1"

		if i == 0 {
			items = append(items, parseListing(sel))
		} else if !promoted {
			items = append(items, parseListing(sel))
		}

		if promoted {
			if promotedSeen {
				ads = append(ads, parseListing(sel))
			}
			promotedSeen = true
		}
	})

	return items, ads
}

// parseTotal returns the page-wide result count from the results header,
// zero if the header is missing or unparsable.
func parseTotal(doc *goquery.Document) int {
	n, err := baysearch.StripGrouping(doc.Find(".rsHdr .rcnt").First().Text())
	if err != nil {
		return 0
	}
	return n
}

// parseZip returns the buyer location label, empty if the page shows none.
func parseZip(doc *goquery.Document) string {
	return strings.TrimSpace(doc.Find(`a[aria-describedby="loczip"]`).Text())
}

// parseConditionCounts pairs each condition filter input with its two
// following siblings: the condition label and the facet count. Facets
// whose count does not parse are skipped; a later facet for the same
// condition overwrites an earlier one.
func parseConditionCounts(doc *goquery.Document) map[baysearch.ItemCondition]int {
	counts := make(map[baysearch.ItemCondition]int)

	doc.Find(`input[name="LH_ItemCondition"]`).Each(func(_ int, input *goquery.Selection) {
		label := input.Next()
		value := label.Next()
		if label.Length() == 0 || value.Length() == 0 {
			return
		}

		n, err := baysearch.StripGrouping(value.Text())
		if err != nil {
			return
		}
		counts[baysearch.ParseItemCondition(label.Text())] = n
	})

	return counts
}
