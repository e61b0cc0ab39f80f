package baysearch

// Field sentinels for values that could not be extracted. They are
// deliberate out-of-band markers, not real prices: a listing with
// Price == PriceNotFound had no parsable price text, and Shipping ==
// ShippingNotFound means no separate fee was found (which may or may not
// mean free shipping).
const (
	PriceNotFound    = -1.0
	ShippingNotFound = 0.0
)

// ImageVariantRange is the single-character image variant code the CDN
// uses for listings whose thumbnail represents a price range rather than
// one fixed price.
const ImageVariantRange = "m"

// ItemImage identifies a listing thumbnail on the image CDN.
type ItemImage struct {
	// ID is the CDN path segment identifying the image.
	ID string `json:"id"`

	// Variant is the single-character size/type class parsed out of the
	// CDN path (e.g. "g" for a single image, "m" for a range image).
	Variant string `json:"variant"`
}

// Listing represents one search result, organic or promoted. All fields
// degrade to documented defaults when the source markup lacks them;
// assembling a listing never fails.
type Listing struct {
	ID        string        `json:"id"`
	Title     string        `json:"title"`
	Newly     bool          `json:"newly"`
	Condition ItemCondition `json:"condition"`

	// Sale format flags derived from the listing's format text. They are
	// independent signals, not mutually exclusive: an offer-enabled
	// buy-now listing has both BuyNow and AllowsOffer set.
	Auction     bool `json:"auction"`
	BuyNow      bool `json:"buyNow"`
	AllowsOffer bool `json:"allowsOffer"`

	// PriceRange reports that the listing's thumbnail carries the
	// multi/range variant code, i.e. the price is a range.
	PriceRange bool `json:"priceRange"`

	// Plus reports membership in the marketplace's premium program.
	Plus bool `json:"plus"`

	Price    float64 `json:"price"`
	Shipping float64 `json:"shipping"`
	Currency string  `json:"currency"`

	// Images holds the representative thumbnail. The source format only
	// ever surfaces one, so the slice has zero or one element.
	Images []ItemImage `json:"images"`
}
