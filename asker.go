package wikidoc

import (
	"context"
	"io"
)

// DefaultQuestion is asked when the caller supplies none.
const DefaultQuestion = "Kann ich meine Diplomarbeit in Word schreiben?"

// Asker answers natural language questions from the indexed corpus.
type Asker interface {
	Ask(ctx context.Context, question string) (string, error)

	// AskStream writes the answer to w as it is generated.
	AskStream(ctx context.Context, question string, w io.Writer) error
}
