package docsjson

import "context"

// Downloader retrieves a documentation document from a URL.
type Downloader interface {
	// Download returns the raw response body. A non-2xx response returns
	// ENOTFOUND (404) or EUPSTREAM (anything else) and no body.
	Download(ctx context.Context, url string) ([]byte, error)
}

// DocumentStore persists a downloaded docs.json.
type DocumentStore interface {
	// Save replaces the stored document with body.
	Save(ctx context.Context, body []byte) error
}
