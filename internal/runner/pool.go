package runner

import (
	"context"

	"github.com/sourcegraph/conc/pool"
)

type Job func(ctx context.Context) error

// RunPool executes jobs with at most maxWorkers concurrently. The first
// error cancels the context passed to the remaining jobs, and jobs that
// have not started by then are skipped. Returns the first error.
func RunPool(ctx context.Context, maxWorkers int, jobs []Job) error {
	if maxWorkers < 1 {
		maxWorkers = 1
	}

	p := pool.New().
		WithMaxGoroutines(maxWorkers).
		WithContext(ctx).
		WithCancelOnError().
		WithFirstError()

	for _, job := range jobs {
		p.Go(func(ctx context.Context) error {
			if err := ctx.Err(); err != nil {
				return err
			}
			return job(ctx)
		})
	}
	return p.Wait()
}
