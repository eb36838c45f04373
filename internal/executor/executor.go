// Package executor runs a single compiler invocation and captures its
// standard output.
package executor

import (
	"context"
	"errors"
	"io"
	"time"
)

var ErrNotExecutable = errors.New("not an executable file")

// Invocation is one subprocess run: executable, arguments and the input
// file they refer to. Stderr receives the tool's diagnostics; nil discards
// them.
type Invocation struct {
	Path      string
	Args      []string
	InputFile string
	Stderr    io.Writer
	Timeout   time.Duration
}

type Output struct {
	Stdout   []byte
	ExitCode int
	TimedOut bool
	Duration time.Duration
}

// Executor runs invocations. Execute returns an error only when the
// subprocess could not be started or waited on; exit status and timeouts
// are reported through Output.
type Executor interface {
	Execute(ctx context.Context, inv *Invocation) (*Output, error)
	// Check reports whether path can be executed at all.
	Check(ctx context.Context, path string) error
}

func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}
