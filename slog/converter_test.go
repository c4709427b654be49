package slog_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/fwojciec/wikidoc/mock"
	wdslog "github.com/fwojciec/wikidoc/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingConverter_Convert(t *testing.T) {
	t.Parallel()

	t.Run("logs input and output sizes", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		inner := &mock.Converter{
			ConvertFn: func(string) (string, error) { return "# Titel", nil },
		}

		md, err := wdslog.NewLoggingConverter(inner, debugLogger(&buf)).Convert("<h1>Titel</h1>")

		require.NoError(t, err)
		assert.Equal(t, "# Titel", md)
		output := buf.String()
		assert.Contains(t, output, "msg=convert")
		assert.Contains(t, output, "in=14")
		assert.Contains(t, output, "out=7")
	})

	t.Run("logs error on failure", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		inner := &mock.Converter{
			ConvertFn: func(string) (string, error) { return "", errors.New("bad html") },
		}

		_, err := wdslog.NewLoggingConverter(inner, debugLogger(&buf)).Convert("<")

		require.Error(t, err)
		assert.Contains(t, buf.String(), "err=\"bad html\"")
	})
}

func TestLoggingEmbedder_Embed(t *testing.T) {
	t.Parallel()

	t.Run("logs vector dimensions", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		inner := &mock.Embedder{
			EmbedFn: func(context.Context, string) ([]float32, error) {
				return []float32{1, 2, 3}, nil
			},
		}

		vector, err := wdslog.NewLoggingEmbedder(inner, debugLogger(&buf)).Embed(context.Background(), "Frage")

		require.NoError(t, err)
		assert.Len(t, vector, 3)
		output := buf.String()
		assert.Contains(t, output, "msg=embed")
		assert.Contains(t, output, "bytes=5")
		assert.Contains(t, output, "dims=3")
	})
}
