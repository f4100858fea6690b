package main

import (
	"fmt"

	"github.com/fwojciec/tropy"
	"github.com/fwojciec/tropy/crawl"
)

// Run executes the show command.
func (c *ShowCmd) Run(deps *Dependencies) error {
	trope, err := deps.Tropes.FindTropeByURL(deps.Ctx, c.URL)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", tropy.ErrorMessage(err))
		return err
	}

	if trope.IsZero() {
		fmt.Fprintf(deps.Stderr, "error: no trope stored for %q. Use 'tropy discover' to find tropes.\n", c.URL)
		return tropy.Errorf(tropy.ENOTFOUND, "no trope stored for %q", c.URL)
	}

	if c.Markdown {
		if !trope.IsResolved() {
			fmt.Fprintf(deps.Stderr, "error: trope %q has no content yet. Use 'tropy resolve' to fetch it.\n", trope.ID)
			return tropy.Errorf(tropy.EINVALID, "trope %q has no content", trope.ID)
		}
		md, err := c.markdown(deps, trope)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", tropy.ErrorMessage(err))
			return err
		}
		fmt.Fprintln(deps.Stdout, md)
		return nil
	}

	fmt.Fprintf(deps.Stdout, "ID:      %s\n", trope.ID)
	fmt.Fprintf(deps.Stdout, "Type:    %s\n", trope.Type)
	fmt.Fprintf(deps.Stdout, "Name:    %s\n", trope.Name)
	fmt.Fprintf(deps.Stdout, "URL:     %s\n", trope.URL)
	if trope.IsResolved() {
		fmt.Fprintf(deps.Stdout, "Content: %s (%s)\n", crawl.FormatBytes(len(trope.Content)), crawl.ComputeHash(trope.Content))
	} else {
		fmt.Fprintln(deps.Stdout, "Content: (not resolved)")
	}
	return nil
}

func (c *ShowCmd) markdown(deps *Dependencies, trope *tropy.Trope) (string, error) {
	doc, err := deps.Parser.Parse(trope.URL, trope.Content)
	if err != nil {
		return "", err
	}
	html, ok := tropy.ContentRegion(doc)
	if !ok {
		html = trope.Content
	}
	return deps.Converter.Convert(html)
}
