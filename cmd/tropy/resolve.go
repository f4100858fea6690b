package main

import (
	"fmt"

	"github.com/fwojciec/tropy"
	"github.com/fwojciec/tropy/crawl"
)

// Run executes the resolve command.
func (c *ResolveCmd) Run(deps *Dependencies) error {
	if c.Concurrency > 0 {
		deps.Crawler.Concurrency = c.Concurrency
	}

	progress := func(event crawl.ProgressEvent) {
		switch event.Type {
		case crawl.ProgressStarted:
			fmt.Fprintf(deps.Stdout, "  Found %d tropes without content\n", event.Total)
		case crawl.ProgressFailed:
			fmt.Fprintf(deps.Stderr, "  skip %s: %s\n", event.URL, tropy.ErrorMessage(event.Error))
		}
	}

	result, err := deps.Crawler.Resolve(deps.Ctx, progress)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error resolving: %v\n", err)
		return err
	}

	fmt.Fprintf(deps.Stdout, "  Resolved %d tropes", result.Resolved)
	if result.Failed > 0 {
		fmt.Fprintf(deps.Stdout, " (%d failed)", result.Failed)
	}
	fmt.Fprintln(deps.Stdout)
	return nil
}
