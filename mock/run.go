package mock

import (
	"context"

	"github.com/fwojciec/commpost"
)

var _ commpost.RunService = (*RunService)(nil)

// RunService is a mock implementation of commpost.RunService.
type RunService struct {
	CreateRunFn func(ctx context.Context, run *commpost.Run) error
	FinishRunFn func(ctx context.Context, id string, upd commpost.RunUpdate) (*commpost.Run, error)
	FindRunsFn  func(ctx context.Context, filter commpost.RunFilter) ([]*commpost.Run, error)
}

func (s *RunService) CreateRun(ctx context.Context, run *commpost.Run) error {
	return s.CreateRunFn(ctx, run)
}

func (s *RunService) FinishRun(ctx context.Context, id string, upd commpost.RunUpdate) (*commpost.Run, error) {
	return s.FinishRunFn(ctx, id, upd)
}

func (s *RunService) FindRuns(ctx context.Context, filter commpost.RunFilter) ([]*commpost.Run, error) {
	return s.FindRunsFn(ctx, filter)
}
