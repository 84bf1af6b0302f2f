package main

import (
	"context"
	"io"
	"time"

	"github.com/fwojciec/docsjson"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer

	Previews   docsjson.PreviewService
	Downloader docsjson.Downloader
	Store      docsjson.DocumentStore
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Command     string        `short:"C" env:"DOCSJSON_COMMAND" default:"${command}" help:"Documentation preview tool to run (relative paths resolve against --dir)"`
	Dir         string        `short:"d" env:"DOCSJSON_DIR" help:"Directory to run the preview tool in (default: current directory)"`
	Output      string        `short:"o" env:"DOCSJSON_OUTPUT" default:"${output}" help:"Where to write docs.json (directory must exist)"`
	MaxLines    int           `short:"m" default:"${max_lines}" help:"Console lines to read while waiting for the preview banner"`
	Timeout     time.Duration `short:"t" default:"30s" help:"How long to wait for the preview banner"`
	HTTPTimeout time.Duration `default:"10s" help:"Timeout for the docs.json request"`
	Retries     int           `short:"r" default:"0" help:"Retries for failed docs.json requests (1s, 2s, 4s... backoff, capped at 30s)"`
	Verbose     bool          `short:"v" help:"Log each step to stderr"`
	Quiet       bool          `short:"q" help:"Do not echo the preview tool's output"`
	Args        []string      `arg:"" optional:"" passthrough:"" help:"Extra arguments for the preview tool"`
}

// FetchCmd downloads docs.json from a preview server.
type FetchCmd struct {
	Output  string
	Timeout time.Duration
}
