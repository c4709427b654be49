package wikidoc

import "context"

// ExcludedCategories are never aggregated into summary files.
var ExcludedCategories = []string{"archive", "werkstaette", "tutorial"}

// IsExcludedCategory reports whether category is left out of summaries.
func IsExcludedCategory(category string) bool {
	for _, c := range ExcludedCategories {
		if c == category {
			return true
		}
	}
	return false
}

// CorpusWriter persists converted documents grouped by category.
type CorpusWriter interface {
	// WriteDocument stores a document and records it under its category.
	WriteDocument(ctx context.Context, doc *Document) error

	// WriteSummaries writes one aggregate file per non-excluded category
	// with the contents of its documents in insertion order.
	WriteSummaries(ctx context.Context) error
}

// CorpusReader loads a previously written corpus.
type CorpusReader interface {
	// ReadDocuments returns every page document in the corpus, ordered by
	// file name. Summary and archive files are skipped.
	ReadDocuments(ctx context.Context) ([]*Document, error)
}
