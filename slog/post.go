package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/commpost"
)

// Ensure LoggingPostService implements commpost.PostService.
var _ commpost.PostService = (*LoggingPostService)(nil)

// LoggingPostService wraps a PostService with debug logging.
type LoggingPostService struct {
	next   commpost.PostService
	logger *slog.Logger
}

// NewLoggingPostService creates a new LoggingPostService.
func NewLoggingPostService(next commpost.PostService, logger *slog.Logger) *LoggingPostService {
	return &LoggingPostService{next: next, logger: logger}
}

// SavePost delegates to the wrapped service and logs the operation.
func (s *LoggingPostService) SavePost(ctx context.Context, rec *commpost.Record) (err error) {
	defer func(begin time.Time) {
		s.logger.DebugContext(ctx, "save post",
			"post", postID(rec),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.SavePost(ctx, rec)
}

// FindPostByID delegates to the wrapped service and logs the operation.
func (s *LoggingPostService) FindPostByID(ctx context.Context, id string) (rec *commpost.Record, err error) {
	defer func(begin time.Time) {
		s.logger.DebugContext(ctx, "find post",
			"post", id,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.FindPostByID(ctx, id)
}

// FindPosts delegates to the wrapped service and logs the operation.
func (s *LoggingPostService) FindPosts(ctx context.Context, filter commpost.PostFilter) (recs []*commpost.Record, err error) {
	defer func(begin time.Time) {
		s.logger.DebugContext(ctx, "find posts",
			"count", len(recs),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.FindPosts(ctx, filter)
}

// DeletePost delegates to the wrapped service and logs the operation.
func (s *LoggingPostService) DeletePost(ctx context.Context, id string) (err error) {
	defer func(begin time.Time) {
		s.logger.DebugContext(ctx, "delete post",
			"post", id,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.DeletePost(ctx, id)
}

func postID(rec *commpost.Record) string {
	if rec == nil || rec.Post == nil {
		return ""
	}
	return rec.ID
}
