package mock

import (
	"context"

	"github.com/fwojciec/wikidoc"
)

var _ wikidoc.Session = (*Session)(nil)

// Session is a mock implementation of wikidoc.Session.
type Session struct {
	LoginFn func(ctx context.Context, password string) error
	FetchFn func(ctx context.Context, id string) (string, error)
}

func (s *Session) Login(ctx context.Context, password string) error {
	return s.LoginFn(ctx, password)
}

func (s *Session) Fetch(ctx context.Context, id string) (string, error) {
	return s.FetchFn(ctx, id)
}
