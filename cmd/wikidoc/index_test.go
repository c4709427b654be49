package main_test

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/fwojciec/wikidoc"
	main "github.com/fwojciec/wikidoc/cmd/wikidoc"
	"github.com/fwojciec/wikidoc/index"
	"github.com/fwojciec/wikidoc/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIndexCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("prints indexing summary", func(t *testing.T) {
		t.Parallel()

		var upserted []string
		idx := &mock.IndexService{
			FindDocumentsFn: func(context.Context, wikidoc.IndexFilter) ([]*wikidoc.IndexedDocument, error) {
				return nil, nil
			},
			UpsertDocumentFn: func(_ context.Context, doc *wikidoc.IndexedDocument) error {
				upserted = append(upserted, doc.ID)
				return nil
			},
		}

		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: stdout,
			Stderr: &bytes.Buffer{},
			Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
			Indexer: &index.Indexer{
				Corpus: &mock.CorpusReader{
					ReadDocumentsFn: func(context.Context) ([]*wikidoc.Document, error) {
						return []*wikidoc.Document{wikidoc.NewDocument("da_word", "# Word", nil)}, nil
					},
				},
				Index: idx,
				Embedder: &mock.Embedder{
					EmbedFn: func(context.Context, string) ([]float32, error) { return []float32{1}, nil },
				},
			},
		}

		err := (&main.IndexCmd{Data: "data", Concurrency: 2}).Run(deps)

		require.NoError(t, err)
		assert.Equal(t, []string{"da_word"}, upserted)
		assert.Contains(t, stdout.String(), "Indexing 1 documents from data")
		assert.Contains(t, stdout.String(), "Indexed 1 documents (0 unchanged, 0 removed, 0 failed)")
	})

	t.Run("reports missing corpus", func(t *testing.T) {
		t.Parallel()

		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: &bytes.Buffer{},
			Stderr: stderr,
			Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
			Indexer: &index.Indexer{
				Corpus: &mock.CorpusReader{
					ReadDocumentsFn: func(context.Context) ([]*wikidoc.Document, error) {
						return nil, wikidoc.Errorf(wikidoc.ENOTFOUND, "corpus directory %q not found", "data")
					},
				},
			},
		}

		err := (&main.IndexCmd{Data: "data"}).Run(deps)

		assert.Equal(t, wikidoc.ENOTFOUND, wikidoc.ErrorCode(err))
		assert.Contains(t, stderr.String(), `corpus directory "data" not found`)
	})
}
