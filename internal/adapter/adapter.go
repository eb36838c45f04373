// Package adapter drives one external compiler per Adapter: it decides
// whether a strategy applies, builds the subprocess invocation, and decodes
// the tool's JSON log.
//
// Failure handling is declared per adapter through Criticality. A failing
// mandatory tool is returned as an error; a failing optional tool yields an
// Attempt with no log and the reason is logged only in debug mode.
package adapter

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/neuppl/are-we-sdd-yet/internal/executor"
	"github.com/neuppl/are-we-sdd-yet/internal/result"
	"github.com/neuppl/are-we-sdd-yet/internal/strategy"
)

type Criticality int

const (
	Mandatory Criticality = iota
	Optional
)

func (c Criticality) String() string {
	if c == Optional {
		return "optional"
	}
	return "mandatory"
}

// ParseCriticality accepts "mandatory" or "optional".
func ParseCriticality(s string) (Criticality, error) {
	switch s {
	case "mandatory":
		return Mandatory, nil
	case "optional":
		return Optional, nil
	default:
		return Mandatory, fmt.Errorf("unknown criticality %q", s)
	}
}

type Outcome int

const (
	Completed Outcome = iota
	NotApplicable
	Failed
)

func (o Outcome) String() string {
	switch o {
	case Completed:
		return "completed"
	case NotApplicable:
		return "not applicable"
	default:
		return "failed"
	}
}

// Adapter binds a Family to a concrete executable.
type Adapter struct {
	Name        string
	Family      *Family
	Path        string
	Criticality Criticality
	Timeout     time.Duration
	// Strategies overrides Family.Strategies when non-nil.
	Strategies strategy.Table
	Exec       executor.Executor
	Logger     *slog.Logger
}

// Request carries the per-invocation parameters, including whether the
// tool's diagnostics are surfaced.
type Request struct {
	File     string
	Strategy strategy.Strategy
	Debug    bool
	// Stderr receives tool diagnostics in debug mode. Defaults to os.Stderr.
	Stderr io.Writer
}

// Attempt is the outcome of running one adapter on one file.
type Attempt struct {
	Tool     string
	Outcome  Outcome
	Log      *result.ToolLog
	Duration time.Duration
	Err      error
}

func (a *Adapter) table() strategy.Table {
	if a.Strategies != nil {
		return a.Strategies
	}
	return a.Family.Strategies
}

// Token returns the native strategy token for s. ok is false when the
// strategy is unsupported.
func (a *Adapter) Token(s strategy.Strategy) (token string, ok bool) {
	return a.table().Token(s)
}

// Supports reports whether the adapter can run s.
func (a *Adapter) Supports(s strategy.Strategy) bool {
	return a.table().Supports(s)
}

// Invocation builds the subprocess invocation for req. ok is false when the
// strategy is unsupported, in which case nothing must be run.
func (a *Adapter) Invocation(req Request) (inv *executor.Invocation, ok bool) {
	args, ok := a.Family.BuildArgs(a.table(), req.File, req.Strategy)
	if !ok {
		return nil, false
	}
	inv = &executor.Invocation{
		Path:      a.Path,
		Args:      args,
		InputFile: req.File,
		Timeout:   a.Timeout,
	}
	if req.Debug {
		inv.Stderr = req.Stderr
		if inv.Stderr == nil {
			inv.Stderr = os.Stderr
		}
	}
	return inv, true
}

// Run invokes the tool on req.File. The returned error is non-nil only for
// failures of a mandatory adapter.
func (a *Adapter) Run(ctx context.Context, req Request) (*Attempt, error) {
	inv, ok := a.Invocation(req)
	if !ok {
		return &Attempt{Tool: a.Name, Outcome: NotApplicable}, nil
	}

	out, err := a.Exec.Execute(ctx, inv)
	if err != nil {
		return a.fail(req, &ToolError{Tool: a.Name, File: req.File, Kind: FailSpawn, Err: err})
	}
	if out.TimedOut {
		return a.fail(req, &ToolError{Tool: a.Name, File: req.File, Kind: FailTimeout, ExitCode: out.ExitCode})
	}
	if out.ExitCode != 0 {
		return a.fail(req, &ToolError{Tool: a.Name, File: req.File, Kind: FailExit, ExitCode: out.ExitCode})
	}
	raw, err := a.Family.Decode(out.Stdout)
	if err != nil {
		return a.fail(req, &ToolError{Tool: a.Name, File: req.File, Kind: FailDecode, Err: err})
	}

	return &Attempt{
		Tool:     a.Name,
		Outcome:  Completed,
		Duration: out.Duration,
		Log:      &result.ToolLog{Tool: a.Name, Family: a.Family.Name, Log: raw},
	}, nil
}

func (a *Adapter) fail(req Request, err *ToolError) (*Attempt, error) {
	attempt := &Attempt{Tool: a.Name, Outcome: Failed, Err: err}
	if a.Criticality == Mandatory {
		return attempt, err
	}
	if req.Debug && a.Logger != nil {
		a.Logger.Warn("comparison tool produced no log",
			"tool", a.Name, "file", req.File, "kind", err.Kind.String(), "error", err)
	}
	return attempt, nil
}
