// Package exec runs the documentation preview tool as a child process and
// reads its console banner.
package exec

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"sync/atomic"
	"time"

	"github.com/fwojciec/docsjson"
	"golang.org/x/sync/errgroup"
)

// DefaultCommand is the elm-doc-preview binary installed by npm.
const DefaultCommand = "node_modules/.bin/edp"

// NoBrowserFlag stops the preview tool from opening a browser window.
const NoBrowserFlag = "-n"

// DefaultWaitDelay is how long Close waits for the tool to exit after
// asking it to terminate before killing it.
const DefaultWaitDelay = 5 * time.Second

// maxLineSize bounds a single console line.
const maxLineSize = 1024 * 1024

// Compile-time interface verification.
var (
	_ docsjson.PreviewService = (*PreviewService)(nil)
	_ docsjson.PreviewSession = (*Session)(nil)
)

// PreviewService launches the preview tool as a child process.
type PreviewService struct {
	command   string
	args      []string
	dir       string
	parser    docsjson.LineParser
	maxLines  int
	waitDelay time.Duration
	echo      io.Writer
	stderr    io.Writer
}

// Option configures a PreviewService.
type Option func(*PreviewService)

// WithArgs appends extra arguments after the no-browser flag.
func WithArgs(args ...string) Option {
	return func(s *PreviewService) {
		s.args = args
	}
}

// WithDir sets the working directory of the preview tool.
func WithDir(dir string) Option {
	return func(s *PreviewService) {
		s.dir = dir
	}
}

// WithParser sets the console line parser.
// Defaults to docsjson.ConsoleParser if not specified.
func WithParser(p docsjson.LineParser) Option {
	return func(s *PreviewService) {
		s.parser = p
	}
}

// WithMaxLines caps the console lines read while waiting for the banner.
// Defaults to docsjson.DefaultMaxLines if not specified.
func WithMaxLines(n int) Option {
	return func(s *PreviewService) {
		s.maxLines = n
	}
}

// WithWaitDelay sets how long Close waits before killing the tool.
// Defaults to DefaultWaitDelay if not specified.
func WithWaitDelay(d time.Duration) Option {
	return func(s *PreviewService) {
		s.waitDelay = d
	}
}

// WithEcho copies every banner line read to w.
func WithEcho(w io.Writer) Option {
	return func(s *PreviewService) {
		s.echo = w
	}
}

// WithStderr forwards the tool's stderr to w.
func WithStderr(w io.Writer) Option {
	return func(s *PreviewService) {
		s.stderr = w
	}
}

// NewPreviewService creates a PreviewService that runs command.
func NewPreviewService(command string, opts ...Option) *PreviewService {
	s := &PreviewService{
		command:   command,
		parser:    docsjson.ConsoleParser{},
		maxLines:  docsjson.DefaultMaxLines,
		waitDelay: DefaultWaitDelay,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Open starts the preview tool and begins reading its output.
// The context only bounds process start; the session lives until Close.
func (s *PreviewService) Open(ctx context.Context) (docsjson.PreviewSession, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	args := append([]string{NoBrowserFlag}, s.args...)
	cmd := exec.Command(s.command, args...)
	cmd.Dir = s.dir
	cmd.Stderr = s.stderr
	cmd.WaitDelay = s.waitDelay
	setProcessGroup(cmd)

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("creating stdout pipe: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("starting %s: %w", s.command, err)
	}

	sess := &Session{
		cmd:       cmd,
		waitDelay: s.waitDelay,
		done:      make(chan struct{}),
	}
	sess.read(stdout, s.parser, s.maxLines, s.echo)
	return sess, nil
}

// Session is a running preview tool.
type Session struct {
	cmd       *exec.Cmd
	waitDelay time.Duration
	g         errgroup.Group

	// Set once by the reader before done is closed.
	preview *docsjson.Preview
	err     error
	done    chan struct{}

	closed atomic.Bool
}

// read scans the banner in the background, then drains the remaining
// output so the tool never blocks writing to a full pipe.
func (s *Session) read(stdout io.Reader, parser docsjson.LineParser, maxLines int, echo io.Writer) {
	s.g.Go(func() error {
		sc := bufio.NewScanner(stdout)
		sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)

		var echoFn func(string)
		if echo != nil {
			echoFn = func(line string) { fmt.Fprintln(echo, line) }
		}

		s.preview, s.err = docsjson.ScanPreview(sc, parser, maxLines, echoFn)
		close(s.done)

		for sc.Scan() {
		}
		return nil
	})
}

// Discover waits for the banner to be read. It returns the context's error
// if ctx ends first; the session stays open either way.
func (s *Session) Discover(ctx context.Context) (*docsjson.Preview, error) {
	select {
	case <-s.done:
		return s.preview, s.err
	case <-ctx.Done():
		return nil, fmt.Errorf("waiting for preview banner: %w", ctx.Err())
	}
}

// Close terminates the preview tool, along with any helpers it started, and
// waits for it to exit, killing it if it outlives the wait delay. Close is
// safe to call multiple times.
func (s *Session) Close() error {
	if !s.closed.CompareAndSwap(false, true) {
		return nil
	}

	if err := terminate(s.cmd.Process); err != nil && !errors.Is(err, os.ErrProcessDone) {
		_ = kill(s.cmd.Process)
	}

	// The reader ends once the tool's end of the pipe closes.
	drained := make(chan struct{})
	go func() {
		_ = s.g.Wait()
		close(drained)
	}()
	select {
	case <-drained:
	case <-time.After(s.waitDelay):
		_ = kill(s.cmd.Process)
	}

	err := s.cmd.Wait()
	<-drained

	// A non-zero exit after being told to stop says nothing about this run.
	var exitErr *exec.ExitError
	if err != nil && !errors.As(err, &exitErr) && !errors.Is(err, exec.ErrWaitDelay) {
		return fmt.Errorf("waiting for preview tool: %w", err)
	}
	return nil
}

// PID returns the process ID of the preview tool.
// This method exists for testing purposes to verify proper cleanup.
func (s *Session) PID() int {
	return s.cmd.Process.Pid
}
