package main

import (
	"fmt"

	"github.com/fwojciec/commpost"
	"github.com/fwojciec/commpost/fs"
)

// Run executes the ids command.
func (c *IDsCmd) Run(deps *Dependencies) error {
	expected, err := fs.ReadPostIDs(c.IDs)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %v\n", err)
		return err
	}

	sources, err := deps.Archive(c.Dir).Sources(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %v\n", err)
		return err
	}
	actual := make([]string, len(sources))
	for i, src := range sources {
		actual[i] = src.ID
	}

	extra, missing := commpost.CompareIDs(expected, actual)

	fmt.Fprintf(deps.Stdout, "Extra (%d):\n", len(extra))
	for _, id := range extra {
		fmt.Fprintf(deps.Stdout, "  %s\n", id)
	}
	fmt.Fprintf(deps.Stdout, "Missing (%d):\n", len(missing))
	for _, id := range missing {
		fmt.Fprintf(deps.Stdout, "  %s\n", id)
	}
	return nil
}
