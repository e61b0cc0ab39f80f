// Package slog provides logging decorators for baysearch services.
package slog

import (
	"log/slog"
	"time"

	"github.com/fwojciec/baysearch"
)

// Ensure LoggingParser implements baysearch.SearchParser.
var _ baysearch.SearchParser = (*LoggingParser)(nil)

// LoggingParser wraps a SearchParser with debug logging for extraction.
type LoggingParser struct {
	next   baysearch.SearchParser
	logger *slog.Logger
}

// NewLoggingParser creates a new LoggingParser.
func NewLoggingParser(next baysearch.SearchParser, logger *slog.Logger) *LoggingParser {
	return &LoggingParser{next: next, logger: logger}
}

// ParseSearch delegates to the wrapped parser and logs the outcome.
func (p *LoggingParser) ParseSearch(html string, sourceURL string) (*baysearch.SearchResult, error) {
	begin := time.Now()
	result, err := p.next.ParseSearch(html, sourceURL)
	if err != nil {
		p.logger.Error("search extraction failed",
			"url", sourceURL,
			"error", baysearch.ErrorMessage(err),
			"duration", time.Since(begin),
		)
		return nil, err
	}
	p.logger.Info("search extracted",
		"url", sourceURL,
		"items", len(result.Items),
		"ads", len(result.Ads),
		"total", result.Total,
		"duration", time.Since(begin),
	)
	return result, nil
}
