package mock

import (
	"context"
	"io"

	"github.com/fwojciec/wikidoc"
)

var _ wikidoc.Asker = (*Asker)(nil)

// Asker is a mock implementation of wikidoc.Asker.
type Asker struct {
	AskFn       func(ctx context.Context, question string) (string, error)
	AskStreamFn func(ctx context.Context, question string, w io.Writer) error
}

func (a *Asker) Ask(ctx context.Context, question string) (string, error) {
	return a.AskFn(ctx, question)
}

func (a *Asker) AskStream(ctx context.Context, question string, w io.Writer) error {
	return a.AskStreamFn(ctx, question, w)
}
