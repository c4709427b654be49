package main

import (
	"fmt"

	"github.com/fwojciec/wikidoc"
	"github.com/fwojciec/wikidoc/index"
)

// Run executes the index command.
func (c *IndexCmd) Run(deps *Dependencies) error {
	progress := func(event index.ProgressEvent) {
		switch event.Type {
		case index.ProgressStarted:
			fmt.Fprintf(deps.Stdout, "Indexing %d documents from %s\n", event.Total, c.Data)
		case index.ProgressIndexed:
			deps.Logger.Debug("indexed", "id", event.ID, "completed", event.Completed, "total", event.Total)
		case index.ProgressFailed:
			fmt.Fprintf(deps.Stderr, "  skip %s: %v\n", event.ID, event.Error)
		case index.ProgressRemoved:
			fmt.Fprintf(deps.Stdout, "  removed %s\n", event.ID)
		}
	}

	result, err := deps.Indexer.Run(deps.Ctx, index.Options{
		Rebuild:     c.Rebuild,
		Concurrency: c.Concurrency,
	}, progress)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", wikidoc.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Indexed %d documents (%d unchanged, %d removed, %d failed)\n",
		result.Indexed, result.Unchanged, result.Removed, result.Failed)
	return nil
}
