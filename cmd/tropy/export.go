package main

import (
	"fmt"
	"path/filepath"

	"github.com/fwojciec/tropy"
	"github.com/fwojciec/tropy/fs"
)

// exportBatchSize is how many tropes are loaded from the store at a time.
const exportBatchSize = 100

// Run executes the export command.
func (c *ExportCmd) Run(deps *Dependencies) error {
	dir, err := filepath.Abs(c.Dir)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: invalid directory %q: %v\n", c.Dir, err)
		return err
	}

	store := fs.NewFileStore(filepath.Dir(dir), filepath.Base(dir), deps.Parser, deps.Converter)

	n, err := c.export(deps, store)
	if err != nil {
		_ = store.Abort()
		fmt.Fprintf(deps.Stderr, "error: %s\n", tropy.ErrorMessage(err))
		return err
	}

	if err := store.Commit(); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %v\n", err)
		return err
	}

	fmt.Fprintf(deps.Stdout, "Exported %d tropes to %s\n", n, dir)
	return nil
}

func (c *ExportCmd) export(deps *Dependencies, w tropy.TropeWriter) (int, error) {
	resolved := true
	filter := tropy.TropeFilter{Resolved: &resolved, Limit: exportBatchSize}
	if c.Type != "" {
		filter.Type = &c.Type
	}

	n := 0
	for {
		tropes, err := deps.Tropes.FindTropes(deps.Ctx, filter)
		if err != nil {
			return n, err
		}
		for _, trope := range tropes {
			if err := w.WriteTrope(deps.Ctx, trope); err != nil {
				return n, err
			}
			n++
		}
		if len(tropes) < exportBatchSize {
			return n, nil
		}
		filter.Offset += exportBatchSize
	}
}
