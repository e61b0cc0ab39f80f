package main

import (
	"encoding/json"
	"fmt"

	"github.com/fwojciec/baysearch"
	"github.com/fwojciec/baysearch/crawl"
)

// Run executes the search command.
func (c *SearchCmd) Run(deps *Dependencies) error {
	req := baysearch.SearchRequest{
		Query:     c.Query,
		Sort:      baysearch.SortOrder(c.Sort),
		Condition: baysearch.ItemCondition(c.Condition),
	}
	if err := req.Validate(); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", baysearch.ErrorMessage(err))
		return err
	}

	progress := func(event crawl.ProgressEvent) {
		if event.Type == crawl.ProgressRetried {
			fmt.Fprintf(deps.Stderr, "  retry page %d: %v\n", event.Page, event.Error)
		}
	}

	pages, err := deps.Crawler.SearchPages(deps.Ctx, req, c.Pages, progress)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", baysearch.ErrorMessage(err))
		return err
	}

	for _, page := range pages {
		if c.Save {
			snapshot := &baysearch.Snapshot{
				Query:     c.Query,
				SourceURL: page.Document.URL,
				FetchedAt: page.Document.FetchedAt,
				Result:    page.Result,
			}
			if err := deps.Snapshots.CreateSnapshot(deps.Ctx, snapshot); err != nil {
				fmt.Fprintf(deps.Stderr, "error: %s\n", baysearch.ErrorMessage(err))
				return err
			}
			fmt.Fprintf(deps.Stdout, "Saved snapshot %s (page %d)\n", snapshot.ID, page.Page)
		}
	}

	if c.JSON {
		results := make([]*baysearch.SearchResult, 0, len(pages))
		for _, page := range pages {
			results = append(results, page.Result)
		}
		enc := json.NewEncoder(deps.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}

	for _, page := range pages {
		printResult(deps, page.Page, page.Result)
	}

	return nil
}

// printResult writes a human-readable result summary.
func printResult(deps *Dependencies, page int, result *baysearch.SearchResult) {
	fmt.Fprintf(deps.Stdout, "Page %d: %d results total", page, result.Total)
	if result.Zip != "" {
		fmt.Fprintf(deps.Stdout, " near %s", result.Zip)
	}
	fmt.Fprintln(deps.Stdout)

	for _, listing := range result.Items {
		printListing(deps, "", listing)
	}
	for _, listing := range result.Ads {
		printListing(deps, "[ad] ", listing)
	}
}

func printListing(deps *Dependencies, prefix string, l baysearch.Listing) {
	price := "-"
	if l.Price != baysearch.PriceNotFound {
		price = fmt.Sprintf("%.2f %s", l.Price, l.Currency)
	}
	fmt.Fprintf(deps.Stdout, "  %s%-14s %-12s %s\n", prefix, l.ID, price, l.Title)
}
