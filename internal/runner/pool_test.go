package runner_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/neuppl/are-we-sdd-yet/internal/runner"
)

func TestPool(t *testing.T) {
	var count atomic.Int32
	jobs := make([]runner.Job, 10)
	for i := range jobs {
		jobs[i] = func(context.Context) error {
			count.Add(1)
			return nil
		}
	}
	if err := runner.RunPool(context.Background(), 3, jobs); err != nil {
		t.Errorf("expected no error, got %v", err)
	}
	if count.Load() != 10 {
		t.Errorf("expected 10 jobs, got %d", count.Load())
	}
}

func TestPoolWithErrors(t *testing.T) {
	fail := errors.New("fail")
	jobs := []runner.Job{
		func(context.Context) error { return nil },
		func(context.Context) error { return fail },
		func(context.Context) error { return nil },
	}
	err := runner.RunPool(context.Background(), 2, jobs)
	if !errors.Is(err, fail) {
		t.Errorf("expected %v, got %v", fail, err)
	}
}

func TestPoolStopsAfterError(t *testing.T) {
	fail := errors.New("fail")
	var ran atomic.Int32
	jobs := []runner.Job{func(context.Context) error { return fail }}
	for range 5 {
		jobs = append(jobs, func(context.Context) error {
			ran.Add(1)
			return nil
		})
	}
	err := runner.RunPool(context.Background(), 1, jobs)
	if !errors.Is(err, fail) {
		t.Fatalf("expected %v, got %v", fail, err)
	}
	if ran.Load() != 0 {
		t.Errorf("expected no jobs after the failure, %d ran", ran.Load())
	}
}

func TestPoolCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	var ran atomic.Int32
	err := runner.RunPool(ctx, 2, []runner.Job{func(context.Context) error {
		ran.Add(1)
		return nil
	}})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
	if ran.Load() != 0 {
		t.Errorf("expected no jobs to run, %d ran", ran.Load())
	}
}
