package goquery

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/baysearch"
	"golang.org/x/net/html"
)

// imagePathPattern matches the CDN path segment "/<variant>/<id>/" that
// encodes the image variant and identifier.
var imagePathPattern = regexp.MustCompile(`/(\w)/(.*)/`)

// parseListing assembles one listing from its node. Field extractors are
// independent and side-effect-free; each degrades to a documented default
// when its markup is missing, so assembly never fails.
func parseListing(sel *goquery.Selection) baysearch.Listing {
	format := strings.ToLower(sel.Find(".lvformat").Text())
	images := parseImages(sel)

	return baysearch.Listing{
		ID:          parseID(sel),
		Title:       parseTitle(sel),
		Newly:       sel.Find("span.newly").Length() > 0,
		Condition:   parseCondition(sel),
		Auction:     strings.Contains(format, "gebot"),
		BuyNow:      strings.Contains(format, "sofort-kauf") || strings.Contains(format, "preisvorschlag"),
		AllowsOffer: strings.Contains(format, "preisvorschlag"),
		PriceRange:  len(images) > 0 && images[0].Variant == baysearch.ImageVariantRange,
		Plus:        sel.Find(".eplus-icon").Length() > 0,
		Price:       parsePrice(sel),
		Shipping:    parseShipping(sel),
		Currency:    strings.TrimSpace(sel.Find("li.lvprice > span b").First().Text()),
		Images:      images,
	}
}

// parseID returns the value of the first iid attribute under the node,
// empty if none exists.
func parseID(sel *goquery.Selection) string {
	return sel.Find("[iid]").First().AttrOr("iid", "")
}

// parseTitle returns the text of the title anchor. Nested child elements
// (badges, icons) are skipped so only the anchor's own text survives.
func parseTitle(sel *goquery.Selection) string {
	return ownText(sel.Find(".lvtitle > a").First())
}

// parseCondition maps the last subtitle element's text to an item
// condition. Listings without a subtitle get ConditionUnknown.
func parseCondition(sel *goquery.Selection) baysearch.ItemCondition {
	return baysearch.ParseItemCondition(sel.Find(".lvsubtitle").Last().Text())
}

// parsePrice extracts the first decimal from the listing's price elements.
// Returns the PriceNotFound sentinel when no decimal is present.
func parsePrice(sel *goquery.Selection) float64 {
	v, ok := baysearch.ExtractDecimal(joinedText(sel.Find(".lvprice")))
	if !ok {
		return baysearch.PriceNotFound
	}
	return v
}

// parseShipping extracts the first decimal from the listing's fee
// elements. Returns the ShippingNotFound sentinel when no decimal is
// present; that means "no separate fee found", not necessarily free
// shipping.
func parseShipping(sel *goquery.Selection) float64 {
	v, ok := baysearch.ExtractDecimal(joinedText(sel.Find(".fee")))
	if !ok {
		return baysearch.ShippingNotFound
	}
	return v
}

// parseImages returns the listing's representative thumbnail, preferring
// the src attribute over the deferred imgurl attribute. The slice has zero
// or one element: zero when no thumbnail exists or its URL does not carry
// the expected "/<variant>/<id>/" path segment.
func parseImages(sel *goquery.Selection) []baysearch.ItemImage {
	img := sel.Find(`img[src*="thumbs"]`).First()
	if img.Length() == 0 {
		img = sel.Find(`img[imgurl*="thumbs"]`).First()
	}
	if img.Length() == 0 {
		return nil
	}

	url := img.AttrOr("imgurl", "")
	if url == "" {
		url = img.AttrOr("src", "")
	}

	m := imagePathPattern.FindStringSubmatch(url)
	if m == nil {
		return nil
	}
	return []baysearch.ItemImage{{ID: m[2], Variant: m[1]}}
}

// ownText returns the whitespace-normalized text of the selection's first
// node, skipping child elements.
func ownText(sel *goquery.Selection) string {
	if len(sel.Nodes) == 0 {
		return ""
	}
	var b strings.Builder
	for n := sel.Nodes[0].FirstChild; n != nil; n = n.NextSibling {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// joinedText returns the text of all matched elements joined with single
// spaces, so numbers from adjacent elements never run together.
func joinedText(sel *goquery.Selection) string {
	parts := make([]string, 0, sel.Length())
	sel.Each(func(_ int, s *goquery.Selection) {
		parts = append(parts, s.Text())
	})
	return strings.Join(parts, " ")
}
