package mock

import (
	"context"

	"github.com/fwojciec/commpost"
)

var _ commpost.PostService = (*PostService)(nil)

// PostService is a mock implementation of commpost.PostService.
type PostService struct {
	SavePostFn     func(ctx context.Context, rec *commpost.Record) error
	FindPostByIDFn func(ctx context.Context, id string) (*commpost.Record, error)
	FindPostsFn    func(ctx context.Context, filter commpost.PostFilter) ([]*commpost.Record, error)
	DeletePostFn   func(ctx context.Context, id string) error
}

func (s *PostService) SavePost(ctx context.Context, rec *commpost.Record) error {
	return s.SavePostFn(ctx, rec)
}

func (s *PostService) FindPostByID(ctx context.Context, id string) (*commpost.Record, error) {
	return s.FindPostByIDFn(ctx, id)
}

func (s *PostService) FindPosts(ctx context.Context, filter commpost.PostFilter) ([]*commpost.Record, error) {
	return s.FindPostsFn(ctx, filter)
}

func (s *PostService) DeletePost(ctx context.Context, id string) error {
	return s.DeletePostFn(ctx, id)
}
