package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/fwojciec/wikidoc"
	"github.com/fwojciec/wikidoc/crawl"
	"github.com/nao1215/markdown"
)

// Run executes the corpus command.
func (c *CorpusCmd) Run(deps *Dependencies) error {
	docs, err := deps.Corpus.ReadDocuments(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", wikidoc.ErrorMessage(err))
		return err
	}

	header := []string{"Document", "Title", "Size"}
	if deps.Tokens != nil {
		header = append(header, "Tokens")
	}

	var rows [][]string
	var totalBytes, totalTokens int
	for _, doc := range docs {
		row := []string{doc.ID, doc.Title, crawl.FormatBytes(len(doc.Content))}
		totalBytes += len(doc.Content)
		if deps.Tokens != nil {
			n, err := deps.Tokens.CountTokens(deps.Ctx, doc.Content)
			if err != nil {
				return fmt.Errorf("count tokens of %q: %w", doc.ID, err)
			}
			totalTokens += n
			row = append(row, strconv.Itoa(n))
		}
		rows = append(rows, row)
	}

	md := markdown.NewMarkdown(deps.Stdout)
	md.H2(fmt.Sprintf("Corpus %s", c.Data))
	md.PlainText("")
	md.Table(markdown.TableSet{Header: header, Rows: rows})
	md.PlainText("")

	summary := fmt.Sprintf("%d documents, %s", len(docs), crawl.FormatBytes(totalBytes))
	if deps.Tokens != nil {
		summary += ", " + crawl.FormatTokens(totalTokens)
	}
	md.PlainText(summary)

	if deps.Runs != nil {
		run, err := deps.Runs.FindLatestRun(deps.Ctx)
		switch {
		case wikidoc.ErrorCode(err) == wikidoc.ENOTFOUND:
			md.PlainText("")
			md.PlainText("Never indexed.")
		case err != nil:
			return err
		default:
			md.PlainText("")
			md.PlainTextf("Last indexed %s: %d indexed, %d unchanged, %d removed, %d failed.",
				run.StartedAt.Format(time.DateTime), run.Indexed, run.Unchanged, run.Removed, run.Failed)
		}
	}

	return md.Build()
}
