package main

import (
	"fmt"

	"github.com/fwojciec/wikidoc"
)

// Run executes the ask command.
func (c *AskCmd) Run(deps *Dependencies) error {
	question := c.Question
	if question == "" {
		question = wikidoc.DefaultQuestion
		fmt.Fprintf(deps.Stdout, "%s\n\n", question)
	}

	err := deps.Asker.AskStream(deps.Ctx, question, deps.Stdout)
	if wikidoc.ErrorCode(err) == wikidoc.ENOTFOUND {
		fmt.Fprintln(deps.Stderr, "error: the index is empty. Run 'wikidoc index' first.")
		return err
	} else if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", wikidoc.ErrorMessage(err))
		return err
	}

	fmt.Fprintln(deps.Stdout)
	return nil
}
