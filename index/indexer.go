// Package index builds the similarity index from a written corpus.
// Documents are embedded concurrently and stored through an IndexService;
// unchanged documents are detected by content hash and skipped.
package index

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/fwojciec/wikidoc"
	"github.com/fwojciec/wikidoc/crawl"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency is the number of documents embedded at once.
const DefaultConcurrency = 4

// Indexer embeds corpus documents into an index.
type Indexer struct {
	Corpus   wikidoc.CorpusReader
	Index    wikidoc.IndexService
	Embedder wikidoc.Embedder

	// Runs, if set, records every run with its counts.
	Runs wikidoc.IndexRunService
}

// Options configures a single run.
type Options struct {
	// Rebuild clears the index before indexing.
	Rebuild bool

	// Concurrency bounds parallel embedding. Zero means DefaultConcurrency.
	Concurrency int
}

// Result holds the outcome of a run.
type Result struct {
	RunID     string
	Documents int
	Indexed   int
	Unchanged int
	Removed   int
	Failed    int
}

// ProgressEvent reports progress during a run.
type ProgressEvent struct {
	Type      ProgressType
	ID        string
	Completed int
	Total     int
	Error     error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressIndexed
	ProgressUnchanged
	ProgressFailed
	ProgressRemoved
	ProgressFinished
)

// ProgressFunc is called to report progress during a run.
type ProgressFunc func(ProgressEvent)

type embedResult struct {
	id  string
	doc *wikidoc.IndexedDocument
	err error
}

// Run indexes every document of the corpus.
// Embedding failures skip the document; storage failures abort the run.
func (ix *Indexer) Run(ctx context.Context, opts Options, progress ProgressFunc) (*Result, error) {
	if progress == nil {
		progress = func(ProgressEvent) {}
	}

	docs, err := ix.Corpus.ReadDocuments(ctx)
	if err != nil {
		return nil, err
	}

	if opts.Rebuild {
		if err := ix.Index.DeleteAll(ctx); err != nil {
			return nil, fmt.Errorf("clear index: %w", err)
		}
	}

	run := &wikidoc.IndexRun{}
	if ix.Runs != nil {
		if err := ix.Runs.CreateRun(ctx, run); err != nil {
			return nil, fmt.Errorf("create run: %w", err)
		}
	}

	existing, err := ix.Index.FindDocuments(ctx, wikidoc.IndexFilter{})
	if err != nil {
		return nil, fmt.Errorf("list indexed documents: %w", err)
	}
	hashes := make(map[string]string, len(existing))
	for _, d := range existing {
		hashes[d.ID] = d.ContentHash
	}

	result := &Result{RunID: run.ID, Documents: len(docs)}
	total := len(docs)
	var completed atomic.Int64

	progress(ProgressEvent{Type: ProgressStarted, Total: total})

	inCorpus := make(map[string]struct{}, len(docs))
	var pending []*wikidoc.Document
	for _, doc := range docs {
		inCorpus[doc.ID] = struct{}{}
		if hash, ok := hashes[doc.ID]; ok && hash == crawl.ComputeHash(doc.Content) {
			result.Unchanged++
			progress(ProgressEvent{
				Type:      ProgressUnchanged,
				ID:        doc.ID,
				Completed: int(completed.Add(1)),
				Total:     total,
			})
			continue
		}
		pending = append(pending, doc)
	}

	concurrency := opts.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	resultCh := make(chan embedResult, len(pending))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	go func() {
		for _, doc := range pending {
			doc := doc
			g.Go(func() error {
				indexed, err := ix.embed(gctx, doc)
				resultCh <- embedResult{id: doc.ID, doc: indexed, err: err}
				return nil
			})
		}
		_ = g.Wait()
		close(resultCh)
	}()

	for r := range resultCh {
		if r.err != nil {
			result.Failed++
			progress(ProgressEvent{
				Type:      ProgressFailed,
				ID:        r.id,
				Completed: int(completed.Add(1)),
				Total:     total,
				Error:     r.err,
			})
			continue
		}

		if err := ix.Index.UpsertDocument(ctx, r.doc); err != nil {
			return nil, fmt.Errorf("store %q: %w", r.id, err)
		}
		result.Indexed++
		progress(ProgressEvent{
			Type:      ProgressIndexed,
			ID:        r.id,
			Completed: int(completed.Add(1)),
			Total:     total,
		})
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	for _, d := range existing {
		if _, ok := inCorpus[d.ID]; ok {
			continue
		}
		if err := ix.Index.DeleteDocument(ctx, d.ID); err != nil && wikidoc.ErrorCode(err) != wikidoc.ENOTFOUND {
			return nil, fmt.Errorf("remove %q: %w", d.ID, err)
		}
		result.Removed++
		progress(ProgressEvent{Type: ProgressRemoved, ID: d.ID})
	}

	if ix.Runs != nil {
		run.Indexed = result.Indexed
		run.Unchanged = result.Unchanged
		run.Removed = result.Removed
		run.Failed = result.Failed
		if err := ix.Runs.FinishRun(ctx, run); err != nil {
			return nil, fmt.Errorf("finish run: %w", err)
		}
	}

	progress(ProgressEvent{Type: ProgressFinished, Completed: int(completed.Load()), Total: total})

	return result, nil
}

// embed computes the title and content vectors of doc.
func (ix *Indexer) embed(ctx context.Context, doc *wikidoc.Document) (*wikidoc.IndexedDocument, error) {
	content, err := ix.Embedder.Embed(ctx, doc.Content)
	if err != nil {
		return nil, fmt.Errorf("embed content: %w", err)
	}

	var title []float32
	if doc.Title != "" {
		title, err = ix.Embedder.Embed(ctx, doc.Title)
		if err != nil {
			return nil, fmt.Errorf("embed title: %w", err)
		}
	}

	return &wikidoc.IndexedDocument{
		ID:            doc.ID,
		Title:         doc.Title,
		Content:       doc.Content,
		ContentHash:   crawl.ComputeHash(doc.Content),
		TitleVector:   title,
		ContentVector: content,
	}, nil
}
