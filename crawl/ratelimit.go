package crawl

import (
	"context"

	"golang.org/x/time/rate"
)

// Limiter paces requests to the documentation host using a token bucket.
// The crawl targets a single fixed origin, so one bucket is enough; burst is
// 1 so requests are evenly spaced.
type Limiter struct {
	limiter *rate.Limiter
}

// NewLimiter creates a Limiter allowing rps requests per second.
func NewLimiter(rps float64) *Limiter {
	return &Limiter{
		limiter: rate.NewLimiter(rate.Limit(rps), 1),
	}
}

// Wait blocks until the rate limit allows the next request.
// Returns an error if the context is canceled before the wait completes.
func (l *Limiter) Wait(ctx context.Context) error {
	return l.limiter.Wait(ctx)
}
