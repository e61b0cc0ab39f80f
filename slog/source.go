package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/baysearch"
)

// Ensure LoggingSource implements baysearch.DocumentSource.
var _ baysearch.DocumentSource = (*LoggingSource)(nil)

// LoggingSource wraps a DocumentSource with debug logging for fetches.
type LoggingSource struct {
	next   baysearch.DocumentSource
	logger *slog.Logger
}

// NewLoggingSource creates a new LoggingSource.
func NewLoggingSource(next baysearch.DocumentSource, logger *slog.Logger) *LoggingSource {
	return &LoggingSource{next: next, logger: logger}
}

// Fetch delegates to the wrapped source and logs the outcome.
func (s *LoggingSource) Fetch(ctx context.Context, req baysearch.SearchRequest) (*baysearch.Document, error) {
	begin := time.Now()
	doc, err := s.next.Fetch(ctx, req)
	if err != nil {
		s.logger.Error("document fetch failed",
			"query", req.Query,
			"page", req.Page,
			"error", err,
			"duration", time.Since(begin),
		)
		return nil, err
	}
	s.logger.Info("document fetched",
		"query", req.Query,
		"page", req.Page,
		"url", doc.URL,
		"bytes", len(doc.HTML),
		"duration", time.Since(begin),
	)
	return doc, nil
}

// Close delegates to the wrapped source.
func (s *LoggingSource) Close() error {
	return s.next.Close()
}
