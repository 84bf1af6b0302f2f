package docsjson

import (
	"context"
	"strings"
)

// PackageRef identifies the documentation set being previewed.
type PackageRef struct {
	Name    string
	Version string
}

// String returns the reference in name@version form.
func (r PackageRef) String() string {
	return r.Name + "@" + r.Version
}

// Preview describes what a preview server announced on its console.
type Preview struct {
	Package PackageRef
	Bind    string
}

// Validate returns EINCOMPLETE if the preview is missing a field needed to
// build the docs URL.
func (p *Preview) Validate() error {
	if p.Package.Name == "" || p.Package.Version == "" {
		return Errorf(EINCOMPLETE, "preview package reference required")
	}
	if p.Bind == "" {
		return Errorf(EINCOMPLETE, "preview bind address required")
	}
	return nil
}

// DocsURL returns the location of the package's docs.json on the preview server.
// Example: http://localhost:8000/packages/elm/core/1.0.5/docs.json
func (p *Preview) DocsURL() string {
	return strings.TrimRight(p.Bind, "/") +
		"/packages/" + p.Package.Name +
		"/" + p.Package.Version +
		"/docs.json"
}

// PreviewService starts documentation preview servers.
type PreviewService interface {
	// Open launches the preview tool. The returned session must be closed
	// to terminate the tool, whatever happens afterwards.
	Open(ctx context.Context) (PreviewSession, error)
}

// PreviewSession is a running preview server.
type PreviewSession interface {
	// Discover blocks until the server has announced both the package it
	// serves and its bind address. Returns EINCOMPLETE if the announcement
	// never completes.
	Discover(ctx context.Context) (*Preview, error)

	// Close terminates the preview server. Close is safe to call multiple times.
	Close() error
}
