// Package slog provides log/slog decorators for commpost services.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/commpost"
)

// Ensure LoggingExtractor implements commpost.PostExtractor.
var _ commpost.PostExtractor = (*LoggingExtractor)(nil)

// LoggingExtractor wraps a PostExtractor with logging.
type LoggingExtractor struct {
	next   commpost.PostExtractor
	logger *slog.Logger
}

// NewLoggingExtractor creates a new LoggingExtractor.
func NewLoggingExtractor(next commpost.PostExtractor, logger *slog.Logger) *LoggingExtractor {
	return &LoggingExtractor{next: next, logger: logger}
}

// ExtractPost delegates to the wrapped extractor and logs the operation.
// Every warning is also logged on its own at WARN level.
func (e *LoggingExtractor) ExtractPost(id string, html string) (post *commpost.Post, warnings []commpost.Warning, err error) {
	defer func(begin time.Time) {
		for _, w := range warnings {
			e.logger.Warn("extract warning",
				"post", w.PostID,
				"kind", w.Kind,
				"detail", w.Detail,
			)
		}
		level := slog.LevelDebug
		if err != nil {
			level = slog.LevelError
		}
		e.logger.Log(context.Background(), level, "extract post",
			"post", id,
			"bytes", len(html),
			"threads", threads(post),
			"warnings", len(warnings),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return e.next.ExtractPost(id, html)
}

func threads(p *commpost.Post) int {
	if p == nil {
		return 0
	}
	return p.Threads()
}
