package wikidoc

import (
	"context"
	"time"
)

// IndexedDocument is a corpus document together with its embeddings.
type IndexedDocument struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Content       string    `json:"content"`
	ContentHash   string    `json:"contentHash"`
	TitleVector   []float32 `json:"titleVector,omitempty"`
	ContentVector []float32 `json:"contentVector,omitempty"`
	IndexedAt     time.Time `json:"indexedAt"`
}

// Validate returns an error if the document contains invalid fields.
func (d *IndexedDocument) Validate() error {
	if d.ID == "" {
		return Errorf(EINVALID, "indexed document ID required")
	}
	if len(d.ContentVector) == 0 {
		return Errorf(EINVALID, "indexed document content vector required")
	}
	return nil
}

// IndexFilter represents a filter for FindDocuments.
type IndexFilter struct {
	ID *string

	// Restricts results to a subset of the total range.
	// Can be used for pagination.
	Offset int
	Limit  int
}

// DefaultSearchLimit is the number of neighbours returned when none is requested.
const DefaultSearchLimit = 3

// SearchOptions configures a similarity search.
type SearchOptions struct {
	// Limit is the maximum number of results. Zero means DefaultSearchLimit.
	Limit int

	// MinScore drops results whose cosine similarity is below it.
	MinScore float64
}

// SearchResult is a document matched by a similarity search.
type SearchResult struct {
	Document *IndexedDocument
	Score    float64
}

// IndexService stores embedded documents and answers similarity queries.
type IndexService interface {
	// UpsertDocument inserts a document or replaces the one with the same ID.
	UpsertDocument(ctx context.Context, doc *IndexedDocument) error

	// FindDocumentByID retrieves a document by ID.
	// Returns ENOTFOUND if document does not exist.
	FindDocumentByID(ctx context.Context, id string) (*IndexedDocument, error)

	// FindDocuments retrieves documents matching the filter, ordered by ID.
	FindDocuments(ctx context.Context, filter IndexFilter) ([]*IndexedDocument, error)

	// DeleteDocument permanently removes a document.
	// Returns ENOTFOUND if document does not exist.
	DeleteDocument(ctx context.Context, id string) error

	// DeleteAll removes every document from the index.
	DeleteAll(ctx context.Context) error

	// Search returns the documents whose content vectors are most similar
	// to vector, best first.
	Search(ctx context.Context, vector []float32, opts SearchOptions) ([]*SearchResult, error)
}

// Embedder turns text into an embedding vector.
type Embedder interface {
	// Embed returns the embedding of text. Returns EINVALID for empty text.
	Embed(ctx context.Context, text string) ([]float32, error)
}

// IndexRun records one execution of the indexer.
type IndexRun struct {
	ID         string    `json:"id"`
	StartedAt  time.Time `json:"startedAt"`
	FinishedAt time.Time `json:"finishedAt"`
	Indexed    int       `json:"indexed"`
	Unchanged  int       `json:"unchanged"`
	Removed    int       `json:"removed"`
	Failed     int       `json:"failed"`
}

// IndexRunService records indexer runs.
type IndexRunService interface {
	// CreateRun stores a new run, assigning its ID and start time.
	CreateRun(ctx context.Context, run *IndexRun) error

	// FinishRun stores the counts of a run and marks it finished.
	// Returns ENOTFOUND if the run does not exist.
	FinishRun(ctx context.Context, run *IndexRun) error

	// FindLatestRun returns the most recently started run.
	// Returns ENOTFOUND if no run was recorded.
	FindLatestRun(ctx context.Context) (*IndexRun, error)
}
