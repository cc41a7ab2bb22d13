package mock

import (
	"context"

	"github.com/fwojciec/commpost"
)

var _ commpost.Archive = (*Archive)(nil)

// Archive is a mock implementation of commpost.Archive.
type Archive struct {
	SourcesFn    func(ctx context.Context) ([]*commpost.Source, error)
	ReadSourceFn func(ctx context.Context, src *commpost.Source) (string, error)
}

func (a *Archive) Sources(ctx context.Context) ([]*commpost.Source, error) {
	return a.SourcesFn(ctx)
}

func (a *Archive) ReadSource(ctx context.Context, src *commpost.Source) (string, error) {
	return a.ReadSourceFn(ctx, src)
}
