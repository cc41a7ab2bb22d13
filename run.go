package commpost

import (
	"context"
	"time"
)

// Run records one batch extraction over an archive directory.
type Run struct {
	ID         string     `json:"id"`
	SourceDir  string     `json:"sourceDir"`
	Processed  int        `json:"processed"`
	Failed     int        `json:"failed"`
	Warnings   int        `json:"warnings"`
	Bytes      int64      `json:"bytes"`
	StartedAt  time.Time  `json:"startedAt"`
	FinishedAt *time.Time `json:"finishedAt"`
}

// Validate returns an error if the run contains invalid fields.
func (r *Run) Validate() error {
	if r.SourceDir == "" {
		return Errorf(EINVALID, "run source directory required")
	}
	return nil
}

// RunService represents a service for tracking batch runs.
type RunService interface {
	// CreateRun creates a new run and assigns its ID and start time.
	CreateRun(ctx context.Context, run *Run) error

	// FinishRun stores the final counters of a run and marks it finished.
	// Returns ENOTFOUND if the run does not exist.
	FinishRun(ctx context.Context, id string, upd RunUpdate) (*Run, error)

	// FindRuns retrieves runs, most recent first.
	FindRuns(ctx context.Context, filter RunFilter) ([]*Run, error)
}

// RunUpdate represents the counters stored when a run finishes.
type RunUpdate struct {
	Processed int   `json:"processed"`
	Failed    int   `json:"failed"`
	Warnings  int   `json:"warnings"`
	Bytes     int64 `json:"bytes"`
}

// RunFilter represents a filter for FindRuns.
type RunFilter struct {
	ID *string `json:"id"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}
