// Package http provides an HTTP-based implementation of docsjson.Downloader
// for fetching docs.json from a preview server.
package http

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/fwojciec/docsjson"
)

// DefaultTimeout is the default timeout for a single HTTP request.
const DefaultTimeout = 10 * time.Second

// Ensure Downloader implements docsjson.Downloader at compile time.
var _ docsjson.Downloader = (*Downloader)(nil)

// Downloader retrieves documents with plain GET requests. No headers,
// authentication or query parameters are sent.
type Downloader struct {
	client      *http.Client
	timeout     time.Duration
	retryDelays []time.Duration
}

// Option configures a Downloader.
type Option func(*Downloader)

// WithTimeout sets the timeout for each HTTP request.
// Defaults to DefaultTimeout (10s) if not specified.
func WithTimeout(d time.Duration) Option {
	return func(dl *Downloader) {
		dl.timeout = d
	}
}

// WithRetryDelays sets the backoff between attempts. One retry is made per
// delay. Defaults to no retries.
func WithRetryDelays(delays []time.Duration) Option {
	return func(dl *Downloader) {
		dl.retryDelays = delays
	}
}

// NewDownloader creates a new HTTP-based Downloader.
func NewDownloader(opts ...Option) *Downloader {
	dl := &Downloader{
		timeout: DefaultTimeout,
	}
	for _, opt := range opts {
		opt(dl)
	}

	dl.client = &http.Client{
		Timeout: dl.timeout,
	}

	return dl
}

// Download retrieves the body at url.
func (dl *Downloader) Download(ctx context.Context, url string) ([]byte, error) {
	return withRetry(ctx, dl.retryDelays, func() ([]byte, error) {
		return dl.get(ctx, url)
	})
}

func (dl *Downloader) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, docsjson.Errorf(docsjson.EINVALID, "invalid docs URL %q: %v", url, err)
	}

	resp, err := dl.client.Do(req)
	if err != nil {
		return nil, &transientError{err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, statusError(url, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &transientError{err: fmt.Errorf("reading %s: %w", url, err)}
	}

	return body, nil
}

// statusError maps a non-2xx response to an application error.
// Server errors are marked transient so they can be retried.
func statusError(url string, code int) error {
	if code == http.StatusNotFound {
		return docsjson.Errorf(docsjson.ENOTFOUND, "docs not found at %s (HTTP 404)", url)
	}
	err := docsjson.Errorf(docsjson.EUPSTREAM, "GET %s: HTTP %d %s", url, code, http.StatusText(code))
	if code >= 500 {
		return &transientError{err: err}
	}
	return err
}
