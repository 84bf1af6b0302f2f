package mock

import (
	"context"

	"github.com/fwojciec/docsjson"
)

// Compile-time interface verification.
var (
	_ docsjson.Downloader    = (*Downloader)(nil)
	_ docsjson.DocumentStore = (*DocumentStore)(nil)
)

// Downloader is a mock implementation of docsjson.Downloader.
type Downloader struct {
	DownloadFn func(ctx context.Context, url string) ([]byte, error)
}

func (d *Downloader) Download(ctx context.Context, url string) ([]byte, error) {
	return d.DownloadFn(ctx, url)
}

// DocumentStore is a mock implementation of docsjson.DocumentStore.
type DocumentStore struct {
	SaveFn func(ctx context.Context, body []byte) error
}

func (s *DocumentStore) Save(ctx context.Context, body []byte) error {
	return s.SaveFn(ctx, body)
}
