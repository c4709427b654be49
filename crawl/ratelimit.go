package crawl

import (
	"context"

	"github.com/fwojciec/wikidoc"
	"golang.org/x/time/rate"
)

var _ wikidoc.Limiter = (*Limiter)(nil)

// Limiter paces requests to the wiki using a token bucket with a burst of 1.
type Limiter struct {
	limiter *rate.Limiter
}

// NewLimiter creates a Limiter allowing rps requests per second.
// A non-positive rps disables limiting.
func NewLimiter(rps float64) *Limiter {
	limit := rate.Limit(rps)
	if rps <= 0 {
		limit = rate.Inf
	}
	return &Limiter{limiter: rate.NewLimiter(limit, 1)}
}

// Wait blocks until the rate limit allows the next request.
// Returns an error if the context is canceled before the wait completes.
func (l *Limiter) Wait(ctx context.Context) error {
	return l.limiter.Wait(ctx)
}
