// Package fs provides file-based storage for the Markdown corpus.
package fs

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/fwojciec/wikidoc"
)

// Ensure CorpusWriter implements wikidoc.CorpusWriter at compile time.
var _ wikidoc.CorpusWriter = (*CorpusWriter)(nil)

// CorpusWriter writes documents as Markdown files to a directory and keeps
// them grouped by category until the summaries are written.
type CorpusWriter struct {
	baseDir string

	mu         sync.Mutex
	categories map[string][]*wikidoc.Document
	order      []string
}

// NewCorpusWriter creates a CorpusWriter that writes to baseDir.
// The directory is created on first write.
func NewCorpusWriter(baseDir string) *CorpusWriter {
	return &CorpusWriter{
		baseDir:    baseDir,
		categories: make(map[string][]*wikidoc.Document),
	}
}

// WriteDocument writes the document content unchanged to its file and
// appends it to its category.
func (w *CorpusWriter) WriteDocument(ctx context.Context, doc *wikidoc.Document) error {
	if err := doc.Validate(); err != nil {
		return err
	}
	if err := os.MkdirAll(w.baseDir, 0755); err != nil {
		return err
	}

	path := filepath.Join(w.baseDir, wikidoc.FileName(doc.ID))
	if err := os.WriteFile(path, []byte(doc.Content), 0644); err != nil {
		return err
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	category := wikidoc.Category(doc.ID)
	if _, ok := w.categories[category]; !ok {
		w.order = append(w.order, category)
	}
	w.categories[category] = append(w.categories[category], doc)
	return nil
}

// WriteSummaries writes summary_<category>.md for every category that is
// not excluded. Each summary holds the category's documents in the order
// they were written, separated by a blank line.
func (w *CorpusWriter) WriteSummaries(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := os.MkdirAll(w.baseDir, 0755); err != nil {
		return err
	}

	for _, category := range w.sortedCategories() {
		if wikidoc.IsExcludedCategory(category) {
			continue
		}

		docs := w.categories[category]
		parts := make([]string, 0, len(docs))
		for _, doc := range docs {
			parts = append(parts, doc.Content)
		}

		path := filepath.Join(w.baseDir, wikidoc.SummaryFileName(category))
		if err := os.WriteFile(path, []byte(strings.Join(parts, "\n\n")), 0644); err != nil {
			return err
		}
	}
	return nil
}

// sortedCategories returns the categories seen so far. Callers hold w.mu.
func (w *CorpusWriter) sortedCategories() []string {
	out := append([]string(nil), w.order...)
	sort.Strings(out)
	return out
}
