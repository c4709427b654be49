package main_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/fwojciec/wikidoc"
	main "github.com/fwojciec/wikidoc/cmd/wikidoc"
	"github.com/fwojciec/wikidoc/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func corpusReader() *mock.CorpusReader {
	return &mock.CorpusReader{
		ReadDocumentsFn: func(context.Context) ([]*wikidoc.Document, error) {
			return []*wikidoc.Document{
				wikidoc.NewDocument("da_latex", "# LaTeX\n\nAuch erlaubt.", nil),
				wikidoc.NewDocument("da_word", "# Word\n\nJa.", nil),
			}, nil
		},
	}
}

func TestCorpusCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("renders a table of documents", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{Ctx: context.Background(), Stdout: stdout, Stderr: &bytes.Buffer{}, Corpus: corpusReader()}

		err := (&main.CorpusCmd{Data: "data"}).Run(deps)

		require.NoError(t, err)
		output := stdout.String()
		assert.Contains(t, output, "## Corpus data")
		assert.Contains(t, output, "da_latex")
		assert.Contains(t, output, "Word")
		assert.Contains(t, output, "2 documents")
		assert.NotContains(t, output, "Tokens")
	})

	t.Run("adds token counts", func(t *testing.T) {
		t.Parallel()

		tokens := &mock.TokenCounter{
			CountTokensFn: func(context.Context, string) (int, error) { return 1500, nil },
		}

		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{Ctx: context.Background(), Stdout: stdout, Stderr: &bytes.Buffer{}, Corpus: corpusReader(), Tokens: tokens}

		err := (&main.CorpusCmd{Data: "data", Tokens: true}).Run(deps)

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "Tokens")
		assert.Contains(t, stdout.String(), "1500")
	})

	t.Run("shows the latest index run", func(t *testing.T) {
		t.Parallel()

		runs := &mock.IndexRunService{
			FindLatestRunFn: func(context.Context) (*wikidoc.IndexRun, error) {
				return &wikidoc.IndexRun{
					StartedAt: time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC),
					Indexed:   2,
				}, nil
			},
		}

		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{Ctx: context.Background(), Stdout: stdout, Stderr: &bytes.Buffer{}, Corpus: corpusReader(), Runs: runs}

		err := (&main.CorpusCmd{Data: "data"}).Run(deps)

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "Last indexed 2026-03-01 08:00:00: 2 indexed")
	})

	t.Run("reports a never indexed corpus", func(t *testing.T) {
		t.Parallel()

		runs := &mock.IndexRunService{
			FindLatestRunFn: func(context.Context) (*wikidoc.IndexRun, error) {
				return nil, wikidoc.Errorf(wikidoc.ENOTFOUND, "no index run recorded")
			},
		}

		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{Ctx: context.Background(), Stdout: stdout, Stderr: &bytes.Buffer{}, Corpus: corpusReader(), Runs: runs}

		require.NoError(t, (&main.CorpusCmd{Data: "data"}).Run(deps))
		assert.Contains(t, stdout.String(), "Never indexed.")
	})
}
