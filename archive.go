package commpost

import (
	"context"
	"time"
)

// Source is one archived post page.
type Source struct {
	// ID is the post ID, taken from the archive file name.
	ID         string
	Path       string
	Size       int64
	ModifiedAt time.Time
}

// Archive lists and reads archived post pages.
type Archive interface {
	// Sources returns every archived page, ordered by ID.
	Sources(ctx context.Context) ([]*Source, error)

	// ReadSource returns the raw markup of a page.
	ReadSource(ctx context.Context, src *Source) (string, error)
}
