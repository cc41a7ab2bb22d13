package main

import (
	"fmt"

	"github.com/fwojciec/commpost"
	"github.com/fwojciec/commpost/fs"
)

// Run executes the show command.
func (c *ShowCmd) Run(deps *Dependencies) error {
	rec, err := deps.Posts.FindPostByID(deps.Ctx, c.ID)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", commpost.ErrorMessage(err))
		return err
	}
	return fs.Encode(deps.Stdout, rec)
}
