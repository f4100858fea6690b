package main

import (
	"fmt"

	"github.com/fwojciec/tropy"
)

// Run executes the ids command.
func (c *IDsCmd) Run(deps *Dependencies) error {
	ids, err := deps.Tropes.FindTropeIDs(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", tropy.ErrorMessage(err))
		return err
	}

	if len(ids) == 0 {
		fmt.Fprintln(deps.Stderr, "No tropes found. Use 'tropy discover' to find some.")
		return nil
	}

	for _, id := range ids {
		fmt.Fprintln(deps.Stdout, id)
	}
	return nil
}

// Run executes the missing command.
func (c *MissingCmd) Run(deps *Dependencies) error {
	urls, err := deps.Tropes.FindURLsMissingContent(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", tropy.ErrorMessage(err))
		return err
	}

	for _, url := range urls {
		fmt.Fprintln(deps.Stdout, url)
	}
	return nil
}
