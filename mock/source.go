// Package mock provides function-field mock implementations of the
// baysearch service interfaces for use in tests.
package mock

import (
	"context"

	"github.com/fwojciec/baysearch"
)

var _ baysearch.DocumentSource = (*DocumentSource)(nil)

// DocumentSource is a mock implementation of baysearch.DocumentSource.
type DocumentSource struct {
	FetchFn func(ctx context.Context, req baysearch.SearchRequest) (*baysearch.Document, error)
	CloseFn func() error
}

func (s *DocumentSource) Fetch(ctx context.Context, req baysearch.SearchRequest) (*baysearch.Document, error) {
	return s.FetchFn(ctx, req)
}

func (s *DocumentSource) Close() error {
	if s.CloseFn == nil {
		return nil
	}
	return s.CloseFn()
}
