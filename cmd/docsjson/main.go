package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/docsjson"
	"github.com/fwojciec/docsjson/exec"
	"github.com/fwojciec/docsjson/fs"
	docshttp "github.com/fwojciec/docsjson/http"
	docsslog "github.com/fwojciec/docsjson/slog"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	m := NewMain()

	err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %s\n", errorText(err))
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct{}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("docsjson"),
		kong.Description("Run elm-doc-preview and save the previewed package's docs.json"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
		kong.Vars{
			"command":   exec.DefaultCommand,
			"output":    fs.DefaultPath,
			"max_lines": strconv.Itoa(docsjson.DefaultMaxLines),
		},
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	// Handle help flags
	if len(args) == 1 && (args[0] == "--help" || args[0] == "-h" || args[0] == "help") {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	if _, err := parser.Parse(args); err != nil {
		return err
	}

	if cli.MaxLines <= 0 {
		return docsjson.Errorf(docsjson.EINVALID, "max-lines must be positive")
	}
	if cli.Retries < 0 {
		return docsjson.Errorf(docsjson.EINVALID, "retries must not be negative")
	}

	logger := newLogger(stderr, cli.Verbose)

	var echo io.Writer = stdout
	if cli.Quiet {
		echo = nil
	}

	// Wire dependencies
	previews := exec.NewPreviewService(cli.Command,
		exec.WithArgs(cli.Args...),
		exec.WithDir(cli.Dir),
		exec.WithMaxLines(cli.MaxLines),
		exec.WithEcho(echo),
		exec.WithStderr(stderr),
	)
	downloader := docshttp.NewDownloader(
		docshttp.WithTimeout(cli.HTTPTimeout),
		docshttp.WithRetryDelays(docshttp.RetryDelays(cli.Retries)),
	)
	store := fs.NewDocumentStore(cli.Output)

	deps := &Dependencies{
		Ctx:        ctx,
		Stdout:     stdout,
		Stderr:     stderr,
		Previews:   docsslog.NewLoggingPreviewService(previews, logger),
		Downloader: docsslog.NewLoggingDownloader(downloader, logger),
		Store:      docsslog.NewLoggingDocumentStore(store, store.Path(), logger),
	}

	cmd := &FetchCmd{
		Output:  cli.Output,
		Timeout: cli.Timeout,
	}

	return cmd.Run(deps)
}

// newLogger logs every step to w when verbose. Otherwise logs are dropped
// and the returned error is the only report.
func newLogger(w io.Writer, verbose bool) *slog.Logger {
	if !verbose {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo}))
}

// errorText returns the message for application errors and the full error
// chain for anything else.
func errorText(err error) string {
	if docsjson.ErrorCode(err) == docsjson.EINTERNAL {
		return err.Error()
	}
	return docsjson.ErrorMessage(err)
}
