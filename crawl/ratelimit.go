package crawl

import (
	"context"

	"github.com/fwojciec/baysearch"
	"golang.org/x/time/rate"
)

var _ baysearch.RateLimiter = (*Limiter)(nil)

// Limiter throttles marketplace requests using a token bucket. All
// requests go to a single host, so one bucket with a burst of 1 (no
// bursting allowed) is enough.
type Limiter struct {
	limiter *rate.Limiter
}

// NewLimiter creates a new Limiter with the specified requests per second limit.
func NewLimiter(rps float64) *Limiter {
	return &Limiter{
		limiter: rate.NewLimiter(rate.Limit(rps), 1),
	}
}

// Wait blocks until the rate limit allows a request.
// Returns an error if the context is canceled before the wait completes.
func (l *Limiter) Wait(ctx context.Context) error {
	return l.limiter.Wait(ctx)
}
