package main

import (
	"fmt"
	"time"

	"github.com/fwojciec/commpost"
	"github.com/fwojciec/commpost/batch"
	"github.com/fwojciec/commpost/fs"
)

// Run executes the extract command.
func (c *ExtractCmd) Run(deps *Dependencies) error {
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

	var run *commpost.Run
	if c.Save {
		run = &commpost.Run{SourceDir: c.Dir}
		if err := deps.Runs.CreateRun(deps.Ctx, run); err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", commpost.ErrorMessage(err))
			return err
		}
	}

	p := &batch.Processor{
		Archive:     archive,
		Extractor:   deps.Extractor,
		Concurrency: c.Concurrency,
		KeepGoing:   c.KeepGoing,
		Order:       order,
	}
	if c.Markdown {
		p.Converter = deps.Converter
	}
	if run != nil {
		p.Posts = deps.Posts
		p.RunID = run.ID
	}

	result, err := p.Process(deps.Ctx, sources, func(e batch.ProgressEvent) {
		switch e.Type {
		case batch.ProgressStarted:
			fmt.Fprintf(deps.Stdout, "Extracting %d pages from %s\n", e.Total, c.Dir)
		case batch.ProgressFailed:
			if c.KeepGoing {
				fmt.Fprintf(deps.Stderr, "skip: %v\n", e.Error)
			}
		}
	})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %v\n", err)
		return err
	}

	for _, w := range result.Warnings {
		fmt.Fprintf(deps.Stderr, "warning: post %s: %s %s\n", w.PostID, w.Kind, w.Detail)
	}

	records := result.Records
	if records == nil {
		records = []*commpost.Record{}
	}
	if err := fs.WriteJSON(c.Out, records); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %v\n", err)
		return err
	}

	if run != nil {
		if _, err := deps.Runs.FinishRun(deps.Ctx, run.ID, commpost.RunUpdate{
			Processed: result.Processed,
			Failed:    result.Failed,
			Warnings:  len(result.Warnings),
			Bytes:     result.Bytes,
		}); err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", commpost.ErrorMessage(err))
			return err
		}
	}

	fmt.Fprintf(deps.Stdout, "Extracted %d posts (%s) in %s, %s\n",
		result.Processed,
		batch.FormatBytes(result.Bytes),
		result.Elapsed.Round(time.Millisecond),
		batch.FormatRate(result.Processed, result.Elapsed),
	)
	if n := len(result.Warnings); n > 0 {
		fmt.Fprintf(deps.Stdout, "%d warnings\n", n)
	}
	fmt.Fprintf(deps.Stdout, "Wrote %s\n", c.Out)
	if run != nil {
		fmt.Fprintf(deps.Stdout, "Run %s\n", run.ID)
	}

	if result.Failed > 0 {
		return fmt.Errorf("%d of %d posts failed", result.Failed, len(sources))
	}
	return nil
}
