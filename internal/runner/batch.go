// Package runner drives the adapters over a batch of input files and
// assembles one record per file.
package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/neuppl/are-we-sdd-yet/internal/adapter"
	"github.com/neuppl/are-we-sdd-yet/internal/cnf"
	"github.com/neuppl/are-we-sdd-yet/internal/logging"
	"github.com/neuppl/are-we-sdd-yet/internal/result"
	"github.com/neuppl/are-we-sdd-yet/internal/strategy"
)

// Omission reasons recorded for comparison tools without a log.
const (
	ReasonNotApplicable = "not applicable"
	ReasonFailed        = "failed"
)

// Observer receives every attempt as it finishes.
type Observer interface {
	Observe(file string, s strategy.Strategy, a *adapter.Attempt)
}

type Options struct {
	Files       []string
	Strategy    strategy.Strategy
	Baseline    *adapter.Adapter
	Comparisons []*adapter.Adapter
	Debug       bool
	Parallel    int
	Stderr      io.Writer
	Logger      *slog.Logger
	Observer    Observer
	// Emit is called once per record, in input order, as soon as the record
	// and all records before it are complete.
	Emit func(*result.Record) error
}

func (o *Options) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return logging.Discard()
}

// Preflight checks that every mandatory adapter's executable is available.
func Preflight(ctx context.Context, adapters []*adapter.Adapter) error {
	var errs []error
	for _, a := range adapters {
		if a.Criticality != adapter.Mandatory {
			continue
		}
		if err := a.Exec.Check(ctx, a.Path); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", a.Name, err))
		}
	}
	return errors.Join(errs...)
}

// RunFile runs the baseline and every comparison adapter on one file. An
// error means a mandatory adapter failed and the record is unusable.
func RunFile(ctx context.Context, opts *Options, file string) (*result.Record, error) {
	log := opts.logger()
	req := adapter.Request{File: file, Strategy: opts.Strategy, Debug: opts.Debug, Stderr: opts.Stderr}

	rec := &result.Record{
		File:        file,
		Strategy:    opts.Strategy,
		Comparisons: make(map[string]*result.ToolLog, len(opts.Comparisons)),
	}
	if f, err := cnf.Stat(file); err != nil {
		log.Debug("no formula header", "file", file, "error", err)
	} else {
		rec.Formula = f
	}

	base, err := opts.Baseline.Run(ctx, req)
	if err != nil {
		return nil, err
	}
	opts.observe(file, base)
	if base.Log == nil {
		return nil, fmt.Errorf("%s on %s: baseline does not support strategy %q", opts.Baseline.Name, file, opts.Strategy)
	}
	rec.Baseline = base.Log

	for _, a := range opts.Comparisons {
		attempt, err := a.Run(ctx, req)
		if err != nil {
			return nil, err
		}
		opts.observe(file, attempt)
		switch attempt.Outcome {
		case adapter.Completed:
			rec.Comparisons[a.Name] = attempt.Log
		case adapter.NotApplicable:
			rec.Omit(a.Name, ReasonNotApplicable)
		default:
			rec.Omit(a.Name, ReasonFailed)
		}
	}

	log.Debug("benchmarked file", "file", file, "strategy", opts.Strategy.ID())
	return rec, nil
}

func (o *Options) observe(file string, a *adapter.Attempt) {
	if o.Observer != nil {
		o.Observer.Observe(file, o.Strategy, a)
	}
}

// RunBatch benchmarks every file in opts.Files. On a fatal error the
// in-order prefix of completed records is returned along with the error.
func RunBatch(ctx context.Context, opts *Options) (result.Batch, error) {
	if opts.Baseline == nil {
		return nil, errors.New("no baseline tool configured")
	}
	if !opts.Baseline.Supports(opts.Strategy) {
		return nil, fmt.Errorf("baseline %s does not support strategy %q", opts.Baseline.Name, opts.Strategy)
	}
	all := append([]*adapter.Adapter{opts.Baseline}, opts.Comparisons...)
	if err := Preflight(ctx, all); err != nil {
		return nil, fmt.Errorf("preflight: %w", err)
	}

	var (
		mu      sync.Mutex
		records = make([]*result.Record, len(opts.Files))
		next    int
		emitErr error
	)
	// flush emits the completed prefix. Caller holds mu.
	flush := func() {
		for next < len(records) && records[next] != nil {
			if opts.Emit != nil && emitErr == nil {
				emitErr = opts.Emit(records[next])
			}
			next++
		}
	}

	jobs := make([]Job, len(opts.Files))
	for i, file := range opts.Files {
		jobs[i] = func(ctx context.Context) error {
			rec, err := RunFile(ctx, opts, file)
			if err != nil {
				return err
			}
			mu.Lock()
			defer mu.Unlock()
			records[i] = rec
			flush()
			return emitErr
		}
	}

	err := RunPool(ctx, opts.Parallel, jobs)

	mu.Lock()
	defer mu.Unlock()
	batch := result.Batch(records[:next])
	if err != nil {
		return batch, err
	}
	return batch, emitErr
}
