package main

import (
	"fmt"

	"github.com/fwojciec/commpost"
)

// Run executes the emote command.
func (c *EmoteCmd) Run(deps *Dependencies) error {
	token, ok := deps.Emotes.Resolve(c.Src, c.Alt)
	if !ok {
		err := commpost.Errorf(commpost.ENOTFOUND, "no token for emote %s (asset id %q)", c.Src, commpost.EmoteAssetID(c.Src))
		fmt.Fprintf(deps.Stderr, "error: %s\n", commpost.ErrorMessage(err))
		return err
	}
	fmt.Fprintln(deps.Stdout, token)
	return nil
}
