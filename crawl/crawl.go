// Package crawl provides wiki crawling orchestration.
// It walks the wiki breadth-first from an entry page, sanitizes and converts
// every page and hands the documents to a corpus writer.
package crawl

import (
	"context"
	"fmt"
	"time"

	"github.com/fwojciec/wikidoc"
)

// Crawler orchestrates a crawl of an authenticated wiki session.
// Pages are processed one at a time.
type Crawler struct {
	Session   wikidoc.Session
	Sanitizer wikidoc.Sanitizer
	Converter wikidoc.Converter
	Corpus    wikidoc.CorpusWriter

	// Frontier queues discovered identifiers. Nil means a fresh NewFrontier.
	// Identifiers already visited in a supplied frontier are not fetched again.
	Frontier wikidoc.Frontier

	// Limiter, if set, is waited on before every fetch.
	Limiter wikidoc.Limiter

	// Metrics, if set, records page outcomes and fetch timings.
	Metrics *Metrics

	// Entry is the first page fetched. Defaults to wikidoc.EntryPageID.
	Entry string

	// MaxPages stops the crawl after that many fetches. Zero means no limit.
	MaxPages int

	// RetryDelays are the waits between fetch attempts. Nil means
	// DefaultRetryDelays.
	RetryDelays []time.Duration
}

// Result holds the outcome of a crawl.
type Result struct {
	Visited    int
	Saved      int
	NotFound   int
	Skipped    int
	Duplicates int // saved pages whose content matches an earlier page
	Bytes      int
	Categories int
}

// ProgressEvent reports progress during a crawl.
type ProgressEvent struct {
	Type    ProgressType
	ID      string
	Visited int
	Pending int
	Bytes   int
	Hash    string
	Attempt int
	Error   error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressCompleted
	ProgressEntry
	ProgressNotFound
	ProgressSkipped
	ProgressRetrying
	ProgressFinished
)

// ProgressFunc is a callback for reporting crawl progress.
type ProgressFunc func(event ProgressEvent)

// Crawl visits every page reachable from the entry page. The session must
// already be logged in. Missing pages are skipped silently and pages that
// fail to sanitize or convert are reported and skipped. Fetch and write
// failures abort the crawl; documents written before the failure remain.
func (c *Crawler) Crawl(ctx context.Context, progress ProgressFunc) (*Result, error) {
	if progress == nil {
		progress = func(ProgressEvent) {}
	}

	entry := c.Entry
	if entry == "" {
		entry = wikidoc.EntryPageID
	}
	delays := c.RetryDelays
	if delays == nil {
		delays = DefaultRetryDelays()
	}
	onRetry := func(id string, attempt int, err error) {
		c.Metrics.retry()
		progress(ProgressEvent{Type: ProgressRetrying, ID: id, Attempt: attempt, Error: err})
	}

	frontier := c.Frontier
	if frontier == nil {
		frontier = NewFrontier()
	}
	frontier.Push(entry)

	var result Result
	hashes := make(map[string]struct{})
	categories := make(map[string]struct{})

	progress(ProgressEvent{Type: ProgressStarted, ID: entry, Pending: frontier.Len()})

	for {
		if c.MaxPages > 0 && result.Visited >= c.MaxPages {
			break
		}
		if err := ctx.Err(); err != nil {
			return &result, err
		}

		id, ok := frontier.Next()
		if !ok {
			break
		}
		result.Visited++

		if c.Limiter != nil {
			if err := c.Limiter.Wait(ctx); err != nil {
				return &result, err
			}
		}

		start := time.Now()
		raw, err := FetchWithRetryDelays(ctx, id, c.Session.Fetch, onRetry, delays)
		c.Metrics.fetched(time.Since(start).Seconds())
		if wikidoc.ErrorCode(err) == wikidoc.ENOTFOUND {
			result.NotFound++
			c.Metrics.page(OutcomeNotFound)
			progress(ProgressEvent{Type: ProgressNotFound, ID: id, Visited: result.Visited, Pending: frontier.Len()})
			continue
		} else if err != nil {
			return &result, fmt.Errorf("fetch %q: %w", id, err)
		}

		doc, err := c.process(id, raw)
		if err != nil {
			result.Skipped++
			c.Metrics.page(OutcomeSkipped)
			progress(ProgressEvent{Type: ProgressSkipped, ID: id, Visited: result.Visited, Pending: frontier.Len(), Error: err})
			continue
		}

		for _, link := range doc.Links {
			frontier.Push(link)
		}
		c.Metrics.pending(frontier.Len())

		if id == entry {
			c.Metrics.page(OutcomeEntry)
			progress(ProgressEvent{Type: ProgressEntry, ID: id, Visited: result.Visited, Pending: frontier.Len()})
			continue
		}

		if err := c.Corpus.WriteDocument(ctx, doc); err != nil {
			return &result, fmt.Errorf("write %q: %w", id, err)
		}

		hash := ComputeHash(doc.Content)
		if _, dup := hashes[hash]; dup {
			result.Duplicates++
		}
		hashes[hash] = struct{}{}
		categories[wikidoc.Category(id)] = struct{}{}

		result.Saved++
		result.Bytes += len(doc.Content)
		c.Metrics.page(OutcomeSaved)
		c.Metrics.written(len(doc.Content))
		progress(ProgressEvent{
			Type:    ProgressCompleted,
			ID:      id,
			Visited: result.Visited,
			Pending: frontier.Len(),
			Bytes:   len(doc.Content),
			Hash:    hash,
		})
	}

	if err := c.Corpus.WriteSummaries(ctx); err != nil {
		return &result, fmt.Errorf("write summaries: %w", err)
	}
	result.Categories = len(categories)

	progress(ProgressEvent{Type: ProgressFinished, Visited: result.Visited, Pending: frontier.Len()})

	return &result, nil
}

// process sanitizes and converts a raw page export into a document.
func (c *Crawler) process(id, raw string) (*wikidoc.Document, error) {
	sanitized, err := c.Sanitizer.Sanitize(raw)
	if err != nil {
		return nil, fmt.Errorf("sanitize: %w", err)
	}

	markdown, err := c.Converter.Convert(sanitized.HTML)
	if err != nil {
		return nil, fmt.Errorf("convert: %w", err)
	}

	return wikidoc.NewDocument(id, markdown, sanitized.Links), nil
}
