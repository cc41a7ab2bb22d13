package main

import (
	"fmt"
	"time"

	"github.com/fwojciec/commpost"
	"github.com/fwojciec/commpost/batch"
)

// Run executes the runs command.
func (c *RunsCmd) Run(deps *Dependencies) error {
	runs, err := deps.Runs.FindRuns(deps.Ctx, commpost.RunFilter{Limit: c.Limit})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", commpost.ErrorMessage(err))
		return err
	}

	if len(runs) == 0 {
		fmt.Fprintln(deps.Stdout, "No runs found. Use 'commpost extract --save' to record one.")
		return nil
	}

	for _, r := range runs {
		status := "running"
		if r.FinishedAt != nil {
			status = fmt.Sprintf("%d ok, %d failed, %d warnings, %s",
				r.Processed, r.Failed, r.Warnings, batch.FormatBytes(r.Bytes))
		}
		fmt.Fprintf(deps.Stdout, "%s  %s  %s  %s\n",
			r.ID, r.StartedAt.Local().Format(time.DateTime), r.SourceDir, status)
	}
	return nil
}
