package mock

import (
	"context"

	"github.com/fwojciec/docsjson"
)

// Compile-time interface verification.
var (
	_ docsjson.PreviewService = (*PreviewService)(nil)
	_ docsjson.PreviewSession = (*PreviewSession)(nil)
	_ docsjson.LineParser     = (*LineParser)(nil)
)

// PreviewService is a mock implementation of docsjson.PreviewService.
type PreviewService struct {
	OpenFn func(ctx context.Context) (docsjson.PreviewSession, error)
}

func (s *PreviewService) Open(ctx context.Context) (docsjson.PreviewSession, error) {
	return s.OpenFn(ctx)
}

// PreviewSession is a mock implementation of docsjson.PreviewSession.
type PreviewSession struct {
	DiscoverFn func(ctx context.Context) (*docsjson.Preview, error)
	CloseFn    func() error
}

func (s *PreviewSession) Discover(ctx context.Context) (*docsjson.Preview, error) {
	return s.DiscoverFn(ctx)
}

func (s *PreviewSession) Close() error {
	return s.CloseFn()
}

// LineParser is a mock implementation of docsjson.LineParser.
type LineParser struct {
	ParseLineFn func(line string) (docsjson.Announcement, error)
}

func (p *LineParser) ParseLine(line string) (docsjson.Announcement, error) {
	return p.ParseLineFn(line)
}
