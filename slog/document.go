package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/docsjson"
)

// Ensure the decorators implement their interfaces.
var (
	_ docsjson.Downloader    = (*LoggingDownloader)(nil)
	_ docsjson.DocumentStore = (*LoggingDocumentStore)(nil)
)

// LoggingDownloader wraps a Downloader with logging.
type LoggingDownloader struct {
	next   docsjson.Downloader
	logger *slog.Logger
}

// NewLoggingDownloader creates a new LoggingDownloader.
func NewLoggingDownloader(next docsjson.Downloader, logger *slog.Logger) *LoggingDownloader {
	return &LoggingDownloader{next: next, logger: logger}
}

// Download delegates to the wrapped downloader and logs the operation.
func (d *LoggingDownloader) Download(ctx context.Context, url string) (body []byte, err error) {
	defer func(begin time.Time) {
		d.logger.Log(ctx, level(err), "download",
			"url", url,
			"bytes", len(body),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return d.next.Download(ctx, url)
}

// LoggingDocumentStore wraps a DocumentStore with logging.
type LoggingDocumentStore struct {
	next   docsjson.DocumentStore
	path   string
	logger *slog.Logger
}

// NewLoggingDocumentStore creates a new LoggingDocumentStore. path is only
// used in log records.
func NewLoggingDocumentStore(next docsjson.DocumentStore, path string, logger *slog.Logger) *LoggingDocumentStore {
	return &LoggingDocumentStore{next: next, path: path, logger: logger}
}

// Save delegates to the wrapped store and logs the operation.
func (s *LoggingDocumentStore) Save(ctx context.Context, body []byte) (err error) {
	defer func(begin time.Time) {
		s.logger.Log(ctx, level(err), "save",
			"path", s.path,
			"bytes", len(body),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Save(ctx, body)
}
