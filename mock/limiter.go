package mock

import (
	"context"

	"github.com/fwojciec/baysearch"
)

var _ baysearch.RateLimiter = (*RateLimiter)(nil)

// RateLimiter is a mock implementation of baysearch.RateLimiter.
type RateLimiter struct {
	WaitFn func(ctx context.Context) error
}

func (l *RateLimiter) Wait(ctx context.Context) error {
	if l.WaitFn == nil {
		return nil
	}
	return l.WaitFn(ctx)
}
