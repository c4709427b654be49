package fs_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/fwojciec/wikidoc"
	"github.com/fwojciec/wikidoc/fs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCorpusReader_ReadDocuments(t *testing.T) {
	t.Parallel()

	t.Run("reads page files sorted by name", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		files := map[string]string{
			"x_y.md":       "# Y\n\nwhy",
			"a_b.md":       "# B\n\nbee",
			"summary_a.md": "# B\n\nbee",
			"archive_z.md": "old",
			"notes.txt":    "ignored",
		}
		for name, content := range files {
			require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
		}
		require.NoError(t, os.Mkdir(filepath.Join(dir, "sub.md"), 0755))

		docs, err := fs.NewCorpusReader(dir).ReadDocuments(context.Background())

		require.NoError(t, err)
		require.Len(t, docs, 2)
		assert.Equal(t, "a_b", docs[0].ID)
		assert.Equal(t, "B", docs[0].Title)
		assert.Equal(t, "# B\n\nbee", docs[0].Content)
		assert.Equal(t, "x_y", docs[1].ID)
		assert.Equal(t, "Y", docs[1].Title)
	})

	t.Run("returns ENOTFOUND for missing directory", func(t *testing.T) {
		t.Parallel()

		_, err := fs.NewCorpusReader(filepath.Join(t.TempDir(), "missing")).ReadDocuments(context.Background())

		assert.Equal(t, wikidoc.ENOTFOUND, wikidoc.ErrorCode(err))
	})

	t.Run("reads what the writer wrote", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		ctx := context.Background()
		w := fs.NewCorpusWriter(dir)
		require.NoError(t, w.WriteDocument(ctx, wikidoc.NewDocument("a:b", "# Bee\ntext", nil)))
		require.NoError(t, w.WriteSummaries(ctx))

		docs, err := fs.NewCorpusReader(dir).ReadDocuments(ctx)

		require.NoError(t, err)
		require.Len(t, docs, 1)
		assert.Equal(t, "a_b", docs[0].ID)
		assert.Equal(t, "Bee", docs[0].Title)
	})
}
