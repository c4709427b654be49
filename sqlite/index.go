package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/fwojciec/wikidoc"
)

// Compile-time interface verification.
var _ wikidoc.IndexService = (*IndexService)(nil)

// IndexService implements wikidoc.IndexService using SQLite.
type IndexService struct {
	db *DB
}

// NewIndexService creates a new IndexService.
func NewIndexService(db *DB) *IndexService {
	return &IndexService{db: db}
}

const documentColumns = "id, title, content, content_hash, title_vector, content_vector, indexed_at"

// UpsertDocument inserts a document or replaces the one with the same ID.
// IndexedAt is set to the current time.
func (s *IndexService) UpsertDocument(ctx context.Context, doc *wikidoc.IndexedDocument) error {
	if err := doc.Validate(); err != nil {
		return err
	}

	doc.IndexedAt = time.Now().UTC()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO documents (`+documentColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			title = excluded.title,
			content = excluded.content,
			content_hash = excluded.content_hash,
			title_vector = excluded.title_vector,
			content_vector = excluded.content_vector,
			indexed_at = excluded.indexed_at
	`, doc.ID, doc.Title, doc.Content, doc.ContentHash,
		encodeVector(doc.TitleVector), encodeVector(doc.ContentVector),
		doc.IndexedAt.Format(timeFormat))

	return err
}

// FindDocumentByID retrieves a document by ID.
func (s *IndexService) FindDocumentByID(ctx context.Context, id string) (*wikidoc.IndexedDocument, error) {
	doc, err := scanDocument(s.db.QueryRowContext(ctx, `
		SELECT `+documentColumns+`
		FROM documents
		WHERE id = ?
	`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, wikidoc.Errorf(wikidoc.ENOTFOUND, "document not found")
	}
	if err != nil {
		return nil, err
	}
	return doc, nil
}

// FindDocuments retrieves documents matching the filter, ordered by ID.
func (s *IndexService) FindDocuments(ctx context.Context, filter wikidoc.IndexFilter) ([]*wikidoc.IndexedDocument, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT " + documentColumns + " FROM documents WHERE 1=1")

	if filter.ID != nil {
		query.WriteString(" AND id = ?")
		args = append(args, *filter.ID)
	}

	query.WriteString(" ORDER BY id ASC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	return s.queryDocuments(ctx, query.String(), args...)
}

// DeleteDocument permanently removes a document.
func (s *IndexService) DeleteDocument(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM documents WHERE id = ?", id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return wikidoc.Errorf(wikidoc.ENOTFOUND, "document not found")
	}

	return nil
}

// DeleteAll removes every document from the index.
func (s *IndexService) DeleteAll(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM documents")
	return err
}

// Search scores every stored document by cosine similarity between vector
// and its content vector and returns the best matches, highest score first.
// Ties are broken by ID. Documents whose vectors have a different dimension
// are ignored.
func (s *IndexService) Search(ctx context.Context, vector []float32, opts wikidoc.SearchOptions) ([]*wikidoc.SearchResult, error) {
	if len(vector) == 0 {
		return nil, wikidoc.Errorf(wikidoc.EINVALID, "search vector required")
	}
	limit := opts.Limit
	if limit <= 0 {
		limit = wikidoc.DefaultSearchLimit
	}

	docs, err := s.queryDocuments(ctx, "SELECT "+documentColumns+" FROM documents")
	if err != nil {
		return nil, err
	}

	results := make([]*wikidoc.SearchResult, 0, len(docs))
	for _, doc := range docs {
		score, ok := cosine(vector, doc.ContentVector)
		if !ok || score < opts.MinScore {
			continue
		}
		results = append(results, &wikidoc.SearchResult{Document: doc, Score: score})
	}

	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].Document.ID < results[j].Document.ID
	})

	if len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}

func (s *IndexService) queryDocuments(ctx context.Context, query string, args ...any) ([]*wikidoc.IndexedDocument, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var docs []*wikidoc.IndexedDocument
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}

	return docs, rows.Err()
}

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanDocument(row scanner) (*wikidoc.IndexedDocument, error) {
	var doc wikidoc.IndexedDocument
	var titleVector, contentVector []byte
	var indexedAt string

	if err := row.Scan(&doc.ID, &doc.Title, &doc.Content, &doc.ContentHash,
		&titleVector, &contentVector, &indexedAt); err != nil {
		return nil, err
	}

	var err error
	if doc.TitleVector, err = decodeVector(titleVector); err != nil {
		return nil, err
	}
	if doc.ContentVector, err = decodeVector(contentVector); err != nil {
		return nil, err
	}
	if doc.IndexedAt, err = parseTime(indexedAt, "indexed_at"); err != nil {
		return nil, err
	}

	return &doc, nil
}
