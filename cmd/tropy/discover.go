package main

import (
	"fmt"

	"github.com/fwojciec/tropy"
	"github.com/fwojciec/tropy/crawl"
)

// seedPaths are the list pages crawled when discover is given no URLs.
var seedPaths = []string{
	"/pmwiki/pmwiki.php/Literature/TheMartian",
	"/pmwiki/pmwiki.php/Film/TheMartian",
	"/pmwiki/pmwiki.php/Film/WonderWoman2017",
}

// DefaultSeeds returns the built-in seed pages on site.
func DefaultSeeds(site tropy.Site) []string {
	seeds := make([]string, len(seedPaths))
	for i, p := range seedPaths {
		seeds[i] = site.BaseURL + p
	}
	return seeds
}

// Run executes the discover command.
func (c *DiscoverCmd) Run(deps *Dependencies) error {
	seeds := c.URLs
	if len(seeds) == 0 {
		seeds = DefaultSeeds(deps.Site)
	}

	deps.Crawler.MaxDepth = c.Depth
	deps.Crawler.MaxPages = c.MaxPages

	progress := func(event crawl.ProgressEvent) {
		switch event.Type {
		case crawl.ProgressStarted:
			fmt.Fprintf(deps.Stdout, "  Visiting %d pages\n", event.Total)
		case crawl.ProgressCompleted:
			fmt.Fprintf(deps.Stdout, "  [%d/%d] %s: %d tropes\n",
				event.Completed, event.Total, crawl.TruncateURL(event.URL, 60), event.Count)
		case crawl.ProgressFailed:
			fmt.Fprintf(deps.Stderr, "  skip %s: %s\n", event.URL, tropy.ErrorMessage(event.Error))
		}
	}

	result, err := deps.Crawler.Discover(deps.Ctx, seeds, progress)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error discovering: %v\n", err)
		return err
	}

	fmt.Fprintf(deps.Stdout, "Stored %d trope references from %d pages", result.Tropes, result.Pages)
	if result.Failed > 0 {
		fmt.Fprintf(deps.Stdout, " (%d failed)", result.Failed)
	}
	fmt.Fprintln(deps.Stdout)
	return nil
}
