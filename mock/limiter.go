package mock

import (
	"context"

	"github.com/fwojciec/wikidoc"
)

var _ wikidoc.Limiter = (*Limiter)(nil)

// Limiter is a mock implementation of wikidoc.Limiter.
type Limiter struct {
	WaitFn func(ctx context.Context) error
}

func (l *Limiter) Wait(ctx context.Context) error {
	return l.WaitFn(ctx)
}
