package main

import (
	"fmt"
	"path/filepath"
	"sort"
	"sync"

	"github.com/fwojciec/commpost"
	"github.com/fwojciec/commpost/batch"
	"github.com/fwojciec/commpost/fs"
	"golang.org/x/sync/errgroup"
)

// Output files of the check command.
const (
	InvalidFile    = "invalid.json"
	InvalidIDsFile = "invalid_ids.json"
)

// Run executes the check command.
func (c *CheckCmd) Run(deps *Dependencies) error {
	archive := deps.Archive(c.Dir)
	sources, err := archive.Sources(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %v\n", err)
		return err
	}

	var order []string
	if c.IDs != "" {
		if order, err = fs.ReadPostIDs(c.IDs); err != nil {
			fmt.Fprintf(deps.Stderr, "error: %v\n", err)
			return err
		}
	}

	concurrency := c.Concurrency
	if concurrency <= 0 {
		concurrency = batch.DefaultConcurrency
	}

	var mu sync.Mutex
	invalid := make(map[string][]string)

	g, ctx := errgroup.WithContext(deps.Ctx)
	g.SetLimit(concurrency)
	for _, src := range sources {
		g.Go(func() error {
			content, err := archive.ReadSource(ctx, src)
			if err != nil {
				return err
			}
			if flags := deps.Checker.Check(content); len(flags) > 0 {
				mu.Lock()
				invalid[src.ID] = flags
				mu.Unlock()
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %v\n", err)
		return err
	}

	ids := make([]string, 0, len(invalid))
	for id := range invalid {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	commpost.SortByIDOrder(ids, order)

	for _, id := range ids {
		fmt.Fprintf(deps.Stdout, "%s is not valid: %v\n", id, invalid[id])
	}

	if err := fs.WriteJSON(filepath.Join(c.Out, InvalidFile), invalid); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %v\n", err)
		return err
	}
	if err := fs.WriteJSON(filepath.Join(c.Out, InvalidIDsFile), ids); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %v\n", err)
		return err
	}

	var pct float64
	if len(sources) > 0 {
		pct = float64(len(ids)) / float64(len(sources)) * 100
	}
	fmt.Fprintf(deps.Stdout, "%d/%d invalid (%.2f%%)\n", len(ids), len(sources), pct)

	if len(ids) > 0 {
		return fmt.Errorf("%d pages look incomplete", len(ids))
	}
	return nil
}
