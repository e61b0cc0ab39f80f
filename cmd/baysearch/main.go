package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/baysearch"
	"github.com/fwojciec/baysearch/crawl"
	"github.com/fwojciec/baysearch/goquery"
	bayhttp "github.com/fwojciec/baysearch/http"
	"github.com/fwojciec/baysearch/rod"
	bayslog "github.com/fwojciec/baysearch/slog"
	"github.com/fwojciec/baysearch/sqlite"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path. Set before calling Run().
	DBPath string

	// SQLite database used by the snapshot service.
	DB *sqlite.DB

	// Snapshot service for end-to-end testing.
	SnapshotService baysearch.SnapshotService
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath: defaultDBPath(),
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	// Initialize dependencies struct for Kong binding
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	// Create Kong parser with dependency binding
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("baysearch"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	// Handle help flags using Kong
	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'baysearch --help' to see available commands")
	}

	if cmd := args[0]; cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	// Parse arguments first to know which command and its flags
	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	// Open database
	m.DB = sqlite.NewDB(m.DBPath)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set BAYSEARCH_DB to use a different database path\n")
		return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
	}
	defer m.Close()

	// Wire core services into dependencies
	m.SnapshotService = sqlite.NewSnapshotService(m.DB)
	deps.DB = m.DB
	deps.Snapshots = m.SnapshotService

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	if cli.Verbose {
		logger = slog.New(slog.NewTextHandler(stderr, nil))
	}

	deps.Parser = bayslog.NewLoggingParser(goquery.NewParser(), logger)

	// Wire the document source and crawler for the search command. Global
	// flags may precede the command, so dispatch on what kong resolved
	// rather than on the raw arguments.
	if strings.HasPrefix(kongCtx.Command(), "search") {
		var source baysearch.DocumentSource
		if cli.Search.Browser {
			var rodOpts []rod.Option
			if cli.Search.BaseURL != "" {
				rodOpts = append(rodOpts, rod.WithBaseURL(cli.Search.BaseURL))
			}
			rodSource, err := rod.NewSource(rodOpts...)
			if err != nil {
				fmt.Fprintln(stderr, "Hint: Chrome or Chromium must be installed")
				return fmt.Errorf("failed to start browser: %w", err)
			}
			source = rodSource
		} else {
			var httpOpts []bayhttp.Option
			if cli.Search.BaseURL != "" {
				httpOpts = append(httpOpts, bayhttp.WithBaseURL(cli.Search.BaseURL))
			}
			source = bayhttp.NewSource(httpOpts...)
		}
		loggingSource := bayslog.NewLoggingSource(source, logger)
		defer loggingSource.Close()

		deps.Crawler = &crawl.Crawler{
			Source:      loggingSource,
			Parser:      deps.Parser,
			Limiter:     crawl.NewLimiter(cli.Search.RPS),
			RetryDelays: crawl.DefaultRetryDelays(),
		}
	}

	return kongCtx.Run(deps)
}

func defaultDBPath() string {
	if path := os.Getenv("BAYSEARCH_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "baysearch.db"
	}
	dir := filepath.Join(home, ".baysearch")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "baysearch.db")
}
