package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
)

// Run executes the fetch command. The preview tool is terminated on every
// return path.
func (c *FetchCmd) Run(deps *Dependencies) (err error) {
	session, err := deps.Previews.Open(deps.Ctx)
	if err != nil {
		if errors.Is(err, exec.ErrNotFound) || errors.Is(err, os.ErrNotExist) {
			fmt.Fprintln(deps.Stderr, "Hint: install the preview tool with `npm install elm-doc-preview`")
		}
		return err
	}
	defer func() {
		if cerr := session.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	ctx := deps.Ctx
	if c.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(deps.Ctx, c.Timeout)
		defer cancel()
	}

	preview, err := session.Discover(ctx)
	if err != nil {
		return err
	}
	if err := preview.Validate(); err != nil {
		return err
	}

	url := preview.DocsURL()
	fmt.Fprintf(deps.Stdout, "navigating %s\n", url)

	body, err := deps.Downloader.Download(deps.Ctx, url)
	if err != nil {
		return err
	}

	if err := deps.Store.Save(deps.Ctx, body); err != nil {
		return err
	}

	fmt.Fprintf(deps.Stdout, "Saved %s docs (%d bytes) to %s\n", preview.Package, len(body), c.Output)
	return nil
}
