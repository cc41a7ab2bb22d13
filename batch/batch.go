// Package batch provides batch extraction of archived posts.
// It coordinates reading, extraction, optional markdown conversion and
// storage of every page of an archive.
package batch

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync/atomic"
	"time"

	"github.com/fwojciec/commpost"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency is the number of pages processed at once when
// Processor.Concurrency is unset.
const DefaultConcurrency = 8

// Processor extracts posts from the pages of an archive.
type Processor struct {
	Archive   commpost.Archive
	Extractor commpost.PostExtractor

	// Converter, if set, converts comment and reply content to Markdown.
	Converter commpost.Converter

	// Posts, if set, receives every extracted record.
	Posts commpost.PostService

	// RunID is stamped on every record.
	RunID string

	Concurrency int

	// KeepGoing collects failed posts instead of aborting on the first one.
	KeepGoing bool

	// Order ranks records by post ID. IDs it does not list sort last.
	Order []string

	// Now returns the processing time. Defaults to time.Now.
	Now func() time.Time
}

// Result holds the outcome of a batch.
type Result struct {
	// Records are the extracted posts, ordered by Processor.Order.
	Records   []*commpost.Record
	Failures  []*commpost.PostError
	Warnings  []commpost.Warning
	Processed int
	Failed    int
	Bytes     int64
	Elapsed   time.Duration
}

// ProgressEvent reports progress during a batch.
type ProgressEvent struct {
	Type      ProgressType
	Completed int
	Total     int
	PostID    string
	Error     error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressCompleted
	ProgressFailed
	ProgressFinished
)

// ProgressFunc is a callback for reporting batch progress.
type ProgressFunc func(event ProgressEvent)

// sourceResult holds the outcome of processing a single page.
type sourceResult struct {
	position int
	source   *commpost.Source
	record   *commpost.Record
	warnings []commpost.Warning
	err      *commpost.PostError
}

// Process extracts every source. Unless KeepGoing is set, the first failed
// post cancels the batch and its *commpost.PostError is returned.
// The progress callback, if provided, is called from a single goroutine.
func (p *Processor) Process(ctx context.Context, sources []*commpost.Source, progress ProgressFunc) (*Result, error) {
	start := time.Now()

	concurrency := p.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	total := len(sources)
	notify := func(e ProgressEvent) {
		if progress != nil {
			e.Total = total
			progress(e)
		}
	}
	notify(ProgressEvent{Type: ProgressStarted})

	resultCh := make(chan sourceResult, total)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	var waitErr error
	go func() {
		for i, src := range sources {
			g.Go(func() error {
				r := p.processSource(gctx, i, src)
				resultCh <- r
				if r.err != nil && !p.KeepGoing {
					return r.err
				}
				return nil
			})
		}
		waitErr = g.Wait()
		close(resultCh)
	}()

	results := make([]sourceResult, total)
	var completed atomic.Int64
	for r := range resultCh {
		n := int(completed.Add(1))
		results[r.position] = r
		if r.err != nil {
			notify(ProgressEvent{Type: ProgressFailed, Completed: n, PostID: r.source.ID, Error: r.err})
		} else {
			notify(ProgressEvent{Type: ProgressCompleted, Completed: n, PostID: r.source.ID})
		}
	}
	if waitErr != nil {
		return nil, waitErr
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	res := &Result{}
	for _, r := range results {
		if r.err != nil {
			res.Failed++
			res.Failures = append(res.Failures, r.err)
			continue
		}
		res.Processed++
		res.Bytes += r.source.Size
		res.Records = append(res.Records, r.record)
		res.Warnings = append(res.Warnings, r.warnings...)
	}

	less := commpost.IDOrder(p.Order)
	sort.SliceStable(res.Records, func(i, j int) bool {
		return less(res.Records[i].ID, res.Records[j].ID)
	})
	sort.SliceStable(res.Warnings, func(i, j int) bool {
		return less(res.Warnings[i].PostID, res.Warnings[j].PostID)
	})
	sort.SliceStable(res.Failures, func(i, j int) bool {
		return less(res.Failures[i].PostID, res.Failures[j].PostID)
	})

	if p.Posts != nil {
		for _, rec := range res.Records {
			if err := p.Posts.SavePost(ctx, rec); err != nil {
				return nil, fmt.Errorf("save post %s: %w", rec.ID, err)
			}
		}
	}

	res.Elapsed = time.Since(start)
	notify(ProgressEvent{Type: ProgressFinished, Completed: total})
	return res, nil
}

// processSource reads, extracts and converts a single page.
func (p *Processor) processSource(ctx context.Context, position int, src *commpost.Source) sourceResult {
	result := sourceResult{
		position: position,
		source:   src,
	}

	if err := ctx.Err(); err != nil {
		result.err = &commpost.PostError{PostID: src.ID, Err: err}
		return result
	}

	html, err := p.Archive.ReadSource(ctx, src)
	if err != nil {
		result.err = &commpost.PostError{PostID: src.ID, Err: err}
		return result
	}

	post, warnings, err := p.Extractor.ExtractPost(src.ID, html)
	if err != nil {
		result.err = postError(src.ID, err)
		return result
	}

	if p.Converter != nil {
		if err := p.convert(post); err != nil {
			result.err = &commpost.PostError{PostID: src.ID, Err: err}
			return result
		}
	}

	meta := commpost.Meta{
		RunID:       p.RunID,
		SourceHash:  ComputeHash(html),
		ProcessedAt: p.now(),
	}
	if !src.ModifiedAt.IsZero() {
		modified := src.ModifiedAt
		meta.SourceModifiedAt = &modified
	}

	result.record = &commpost.Record{Meta: meta, Post: post}
	result.warnings = warnings
	return result
}

// convert rewrites the content of every comment and reply as Markdown.
func (p *Processor) convert(post *commpost.Post) error {
	for i := range post.Comments {
		c := &post.Comments[i]
		if err := p.convertComment(&c.Comment); err != nil {
			return fmt.Errorf("thread %d: %w", i+1, err)
		}
		for j := range c.Replies {
			if err := p.convertComment(&c.Replies[j]); err != nil {
				return fmt.Errorf("thread %d: reply %d: %w", i+1, j+1, err)
			}
		}
	}
	return nil
}

func (p *Processor) convertComment(c *commpost.Comment) error {
	if c.Content == "" {
		return nil
	}
	md, err := p.Converter.Convert(c.Content)
	if err != nil {
		return fmt.Errorf("convert content: %w", err)
	}
	c.Content = md
	return nil
}

func (p *Processor) now() time.Time {
	if p.Now != nil {
		return p.Now()
	}
	return time.Now()
}

// postError returns err as a *commpost.PostError for id.
func postError(id string, err error) *commpost.PostError {
	var pe *commpost.PostError
	if errors.As(err, &pe) {
		return pe
	}
	return &commpost.PostError{PostID: id, Err: err}
}
