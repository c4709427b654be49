package main

import (
	"fmt"
	"time"

	"github.com/fwojciec/wikidoc"
	"github.com/fwojciec/wikidoc/crawl"
)

// RetryDelays returns n backoff delays doubling from one second.
func RetryDelays(n int) []time.Duration {
	delays := make([]time.Duration, 0, max(n, 0))
	d := time.Second
	for i := 0; i < n; i++ {
		delays = append(delays, d)
		d *= 2
	}
	return delays
}

// Run executes the crawl command.
func (c *CrawlCmd) Run(deps *Dependencies) error {
	if err := deps.Session.Login(deps.Ctx, c.Password); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", wikidoc.ErrorMessage(err))
		return err
	}

	progress := func(event crawl.ProgressEvent) {
		switch event.Type {
		case crawl.ProgressStarted:
			fmt.Fprintf(deps.Stdout, "Crawling from %q into %s\n", event.ID, c.Out)
		case crawl.ProgressCompleted:
			fmt.Fprintf(deps.Stdout, "  %s (%s)\n", crawl.TruncateID(event.ID, 60), crawl.FormatBytes(event.Bytes))
		case crawl.ProgressEntry:
			fmt.Fprintf(deps.Stdout, "  %s (entry, %d pending)\n", crawl.TruncateID(event.ID, 60), event.Pending)
		case crawl.ProgressNotFound:
			fmt.Fprintf(deps.Stdout, "  %s (not found)\n", crawl.TruncateID(event.ID, 60))
			deps.Logger.Debug("page not found", "id", event.ID)
		case crawl.ProgressSkipped:
			fmt.Fprintf(deps.Stderr, "  skip %s: %v\n", event.ID, event.Error)
		case crawl.ProgressRetrying:
			fmt.Fprintf(deps.Stderr, "  retry %s (attempt %d): %v\n", event.ID, event.Attempt, event.Error)
		}
	}

	result, err := deps.Crawler.Crawl(deps.Ctx, progress)
	if result != nil {
		fmt.Fprintf(deps.Stdout, "Visited %d pages: saved %d (%s), %d not found, %d skipped, %d duplicates, %d categories\n",
			result.Visited, result.Saved, crawl.FormatBytes(result.Bytes),
			result.NotFound, result.Skipped, result.Duplicates, result.Categories)
	}

	if c.MetricsFile != "" && deps.Crawler.Metrics != nil {
		if merr := deps.Crawler.Metrics.WriteTextfile(c.MetricsFile); merr != nil {
			fmt.Fprintf(deps.Stderr, "error writing metrics: %v\n", merr)
		}
	}

	if err != nil {
		fmt.Fprintf(deps.Stderr, "error crawling: %v\n", err)
		return err
	}
	return nil
}
