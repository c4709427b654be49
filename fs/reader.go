package fs

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/fwojciec/wikidoc"
)

// SkippedPrefixes start the names of corpus files that are not pages.
var SkippedPrefixes = []string{wikidoc.SummaryPrefix, "archive"}

// Ensure CorpusReader implements wikidoc.CorpusReader at compile time.
var _ wikidoc.CorpusReader = (*CorpusReader)(nil)

// CorpusReader loads Markdown page files from a corpus directory.
type CorpusReader struct {
	baseDir string
}

// NewCorpusReader creates a CorpusReader for baseDir.
func NewCorpusReader(baseDir string) *CorpusReader {
	return &CorpusReader{baseDir: baseDir}
}

// ReadDocuments returns one document per page file ordered by file name.
// The ID is the file name without extension and the title is derived from
// the first line. Returns ENOTFOUND if the directory does not exist.
func (r *CorpusReader) ReadDocuments(ctx context.Context) ([]*wikidoc.Document, error) {
	entries, err := os.ReadDir(r.baseDir)
	if os.IsNotExist(err) {
		return nil, wikidoc.Errorf(wikidoc.ENOTFOUND, "corpus directory %q not found", r.baseDir)
	} else if err != nil {
		return nil, err
	}

	var docs []*wikidoc.Document
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		name := entry.Name()
		if entry.IsDir() || filepath.Ext(name) != ".md" || isSkipped(name) {
			continue
		}

		content, err := os.ReadFile(filepath.Join(r.baseDir, name))
		if err != nil {
			return nil, err
		}

		docs = append(docs, wikidoc.NewDocument(strings.TrimSuffix(name, ".md"), string(content), nil))
	}
	return docs, nil
}

func isSkipped(name string) bool {
	for _, prefix := range SkippedPrefixes {
		if strings.HasPrefix(name, prefix) {
			return true
		}
	}
	return false
}
