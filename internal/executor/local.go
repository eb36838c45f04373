package executor

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"time"
)

// Local runs tools as direct child processes.
type Local struct{}

func (Local) Execute(ctx context.Context, inv *Invocation) (*Output, error) {
	runCtx, cancel := withTimeout(ctx, inv.Timeout)
	defer cancel()

	cmd := exec.CommandContext(runCtx, inv.Path, inv.Args...)
	var stdout bytes.Buffer
	cmd.Stdout = &stdout
	if inv.Stderr != nil {
		cmd.Stderr = inv.Stderr
	}

	start := time.Now()
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("starting %s: %w", inv.Path, err)
	}
	err := cmd.Wait()
	out := &Output{
		Stdout:   stdout.Bytes(),
		Duration: time.Since(start),
	}
	if err == nil {
		return out, nil
	}

	if errors.Is(runCtx.Err(), context.DeadlineExceeded) && ctx.Err() == nil {
		out.TimedOut = true
		out.ExitCode = -1
		return out, nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("running %s: %w", inv.Path, ctx.Err())
		}
		out.ExitCode = exitErr.ExitCode()
		return out, nil
	}
	return nil, fmt.Errorf("waiting for %s: %w", inv.Path, err)
}

func (Local) Check(_ context.Context, path string) error {
	if _, err := exec.LookPath(path); err != nil {
		return fmt.Errorf("%s: %w: %v", path, ErrNotExecutable, err)
	}
	return nil
}
