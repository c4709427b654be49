package mock

import (
	"context"

	"github.com/fwojciec/wikidoc"
)

var _ wikidoc.IndexService = (*IndexService)(nil)

// IndexService is a mock implementation of wikidoc.IndexService.
type IndexService struct {
	UpsertDocumentFn   func(ctx context.Context, doc *wikidoc.IndexedDocument) error
	FindDocumentByIDFn func(ctx context.Context, id string) (*wikidoc.IndexedDocument, error)
	FindDocumentsFn    func(ctx context.Context, filter wikidoc.IndexFilter) ([]*wikidoc.IndexedDocument, error)
	DeleteDocumentFn   func(ctx context.Context, id string) error
	DeleteAllFn        func(ctx context.Context) error
	SearchFn           func(ctx context.Context, vector []float32, opts wikidoc.SearchOptions) ([]*wikidoc.SearchResult, error)
}

func (s *IndexService) UpsertDocument(ctx context.Context, doc *wikidoc.IndexedDocument) error {
	return s.UpsertDocumentFn(ctx, doc)
}

func (s *IndexService) FindDocumentByID(ctx context.Context, id string) (*wikidoc.IndexedDocument, error) {
	return s.FindDocumentByIDFn(ctx, id)
}

func (s *IndexService) FindDocuments(ctx context.Context, filter wikidoc.IndexFilter) ([]*wikidoc.IndexedDocument, error) {
	return s.FindDocumentsFn(ctx, filter)
}

func (s *IndexService) DeleteDocument(ctx context.Context, id string) error {
	return s.DeleteDocumentFn(ctx, id)
}

func (s *IndexService) DeleteAll(ctx context.Context) error {
	return s.DeleteAllFn(ctx)
}

func (s *IndexService) Search(ctx context.Context, vector []float32, opts wikidoc.SearchOptions) ([]*wikidoc.SearchResult, error) {
	return s.SearchFn(ctx, vector, opts)
}

var _ wikidoc.Embedder = (*Embedder)(nil)

// Embedder is a mock implementation of wikidoc.Embedder.
type Embedder struct {
	EmbedFn func(ctx context.Context, text string) ([]float32, error)
}

func (e *Embedder) Embed(ctx context.Context, text string) ([]float32, error) {
	return e.EmbedFn(ctx, text)
}

var _ wikidoc.IndexRunService = (*IndexRunService)(nil)

// IndexRunService is a mock implementation of wikidoc.IndexRunService.
type IndexRunService struct {
	CreateRunFn     func(ctx context.Context, run *wikidoc.IndexRun) error
	FinishRunFn     func(ctx context.Context, run *wikidoc.IndexRun) error
	FindLatestRunFn func(ctx context.Context) (*wikidoc.IndexRun, error)
}

func (s *IndexRunService) CreateRun(ctx context.Context, run *wikidoc.IndexRun) error {
	return s.CreateRunFn(ctx, run)
}

func (s *IndexRunService) FinishRun(ctx context.Context, run *wikidoc.IndexRun) error {
	return s.FinishRunFn(ctx, run)
}

func (s *IndexRunService) FindLatestRun(ctx context.Context) (*wikidoc.IndexRun, error) {
	return s.FindLatestRunFn(ctx)
}
