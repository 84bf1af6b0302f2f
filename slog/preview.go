// Package slog provides log/slog decorators for docsjson services.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/docsjson"
	"github.com/google/uuid"
)

// Ensure LoggingPreviewService implements docsjson.PreviewService.
var _ docsjson.PreviewService = (*LoggingPreviewService)(nil)

// LoggingPreviewService wraps a PreviewService with logging. Each session is
// tagged with a random ID so its open, discover and close records line up.
type LoggingPreviewService struct {
	next   docsjson.PreviewService
	logger *slog.Logger
}

// NewLoggingPreviewService creates a new LoggingPreviewService.
func NewLoggingPreviewService(next docsjson.PreviewService, logger *slog.Logger) *LoggingPreviewService {
	return &LoggingPreviewService{next: next, logger: logger}
}

// Open delegates to the wrapped service and logs the operation.
func (s *LoggingPreviewService) Open(ctx context.Context) (_ docsjson.PreviewSession, err error) {
	logger := s.logger.With("session", uuid.NewString())
	defer func(begin time.Time) {
		logger.Log(ctx, level(err), "preview open",
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())

	sess, err := s.next.Open(ctx)
	if err != nil {
		return nil, err
	}
	return &loggingSession{next: sess, logger: logger}, nil
}

type loggingSession struct {
	next   docsjson.PreviewSession
	logger *slog.Logger
}

func (s *loggingSession) Discover(ctx context.Context) (preview *docsjson.Preview, err error) {
	defer func(begin time.Time) {
		attrs := []any{"duration", time.Since(begin), "err", err}
		if preview != nil {
			attrs = append(attrs,
				"package", preview.Package.Name,
				"version", preview.Package.Version,
				"bind", preview.Bind,
			)
		}
		s.logger.Log(ctx, level(err), "preview discover", attrs...)
	}(time.Now())
	return s.next.Discover(ctx)
}

func (s *loggingSession) Close() (err error) {
	defer func(begin time.Time) {
		s.logger.Log(context.Background(), level(err), "preview close",
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Close()
}

func level(err error) slog.Level {
	if err != nil {
		return slog.LevelError
	}
	return slog.LevelInfo
}
