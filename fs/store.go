// Package fs provides file-based storage for downloaded documentation.
package fs

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fwojciec/docsjson"
)

// DefaultPath is where docs.json is written relative to the working directory.
const DefaultPath = "data/docs.json"

// Ensure DocumentStore implements docsjson.DocumentStore at compile time.
var _ docsjson.DocumentStore = (*DocumentStore)(nil)

// DocumentStore writes a docs.json to a fixed path with atomic replace
// semantics. The body is written to a temporary file next to the target and
// renamed over it, so readers never see a partial document and a failed run
// leaves the previous file in place.
//
// The parent directory must already exist; it is never created.
type DocumentStore struct {
	path string
}

// NewDocumentStore creates a new DocumentStore writing to path.
func NewDocumentStore(path string) *DocumentStore {
	return &DocumentStore{path: path}
}

// Path returns the destination path.
func (s *DocumentStore) Path() string {
	return s.path
}

// Save replaces the document at Path with body. Bodies that are not valid
// JSON are rejected with EINVALID and nothing is written, so an empty or
// HTML response from a misbehaving server never replaces good docs.
//
// An existing file keeps its permissions; a new file is created 0644.
func (s *DocumentStore) Save(ctx context.Context, body []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if !json.Valid(body) {
		return docsjson.Errorf(docsjson.EINVALID,
			"refusing to write %s: response (%d bytes) is not valid JSON; non-JSON bodies are rejected and the previous file is kept",
			s.path, len(body))
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file in %s: %w", dir, err)
	}
	// Removing after a successful rename is a no-op.
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(body); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("writing %s: %w", tmp.Name(), err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", tmp.Name(), err)
	}
	mode := os.FileMode(0644)
	if fi, err := os.Stat(s.path); err == nil {
		mode = fi.Mode().Perm()
	}
	if err := os.Chmod(tmp.Name(), mode); err != nil {
		return fmt.Errorf("setting mode of %s: %w", tmp.Name(), err)
	}

	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("replacing %s: %w", s.path, err)
	}
	return nil
}
