package mock

import (
	"context"

	"github.com/fwojciec/wikidoc"
)

var _ wikidoc.CorpusWriter = (*CorpusWriter)(nil)

// CorpusWriter is a mock implementation of wikidoc.CorpusWriter.
type CorpusWriter struct {
	WriteDocumentFn  func(ctx context.Context, doc *wikidoc.Document) error
	WriteSummariesFn func(ctx context.Context) error
}

func (w *CorpusWriter) WriteDocument(ctx context.Context, doc *wikidoc.Document) error {
	return w.WriteDocumentFn(ctx, doc)
}

func (w *CorpusWriter) WriteSummaries(ctx context.Context) error {
	return w.WriteSummariesFn(ctx)
}

var _ wikidoc.CorpusReader = (*CorpusReader)(nil)

// CorpusReader is a mock implementation of wikidoc.CorpusReader.
type CorpusReader struct {
	ReadDocumentsFn func(ctx context.Context) ([]*wikidoc.Document, error)
}

func (r *CorpusReader) ReadDocuments(ctx context.Context) ([]*wikidoc.Document, error) {
	return r.ReadDocumentsFn(ctx)
}
