package main

import (
	"context"
	"io"

	"github.com/fwojciec/baysearch"
	"github.com/fwojciec/baysearch/crawl"
	"github.com/fwojciec/baysearch/sqlite"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx       context.Context
	Stdout    io.Writer
	Stderr    io.Writer
	DB        *sqlite.DB
	Snapshots baysearch.SnapshotService
	Parser    baysearch.SearchParser
	Crawler   *crawl.Crawler
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Verbose bool `short:"v" help:"Log fetch and extraction details to stderr"`

	Search  SearchCmd  `cmd:"" help:"Search the marketplace and extract listings"`
	Parse   ParseCmd   `cmd:"" help:"Extract listings from a saved results page"`
	History HistoryCmd `cmd:"" help:"List stored search snapshots"`
	Show    ShowCmd    `cmd:"" help:"Print one stored snapshot as JSON"`
	Delete  DeleteCmd  `cmd:"" help:"Delete a stored snapshot"`
}

// SearchCmd is the "search" subcommand.
type SearchCmd struct {
	Query     string  `arg:"" help:"Search term"`
	Pages     int     `short:"p" default:"1" help:"Number of result pages to fetch"`
	Sort      string  `short:"s" default:"" help:"Sort order (ending, newly, price_asc, price_desc)"`
	Condition string  `short:"c" default:"" help:"Condition filter (brandneu, refurbished, gebraucht, defekt)"`
	Browser   bool    `short:"b" help:"Fetch with a headless browser instead of plain HTTP"`
	JSON      bool    `short:"j" help:"Print full results as JSON"`
	Save      bool    `help:"Store the results as snapshots"`
	RPS       float64 `default:"1.0" help:"Max marketplace requests per second"`
	BaseURL   string  `help:"Marketplace host to search (defaults to ebay.de)"`
}

// ParseCmd is the "parse" subcommand.
type ParseCmd struct {
	File string `arg:"" type:"existingfile" help:"Saved results page"`
	URL  string `help:"Source URL to record on the result"`
}

// HistoryCmd is the "history" subcommand.
type HistoryCmd struct {
	Query string `short:"q" help:"Only snapshots for this query"`
	Limit int    `short:"n" default:"20" help:"Max snapshots to list"`
}

// ShowCmd is the "show" subcommand.
type ShowCmd struct {
	ID string `arg:"" help:"Snapshot ID"`
}

// DeleteCmd is the "delete" subcommand.
type DeleteCmd struct {
	ID string `arg:"" help:"Snapshot ID"`
}
