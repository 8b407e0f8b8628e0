package pipeline

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Job is one independently runnable file pipeline instance. Per spec.md
// §5, each file's pipeline shares no mutable state with any other, so
// RunMany can run them concurrently without any locking beyond whatever
// the caller's own Run closure needs (e.g. writing to a shared Emitter
// channel, which is already safe for concurrent sends).
type Job struct {
	Name string
	Run  func() error
}

// RunMany runs jobs with at most concurrency workers in flight at once.
// Every job runs to completion regardless of a sibling's outcome — spec.md
// §5 never says one file's failure should cancel another's pipeline — and
// RunMany returns one error per job, aligned by index, nil for jobs that
// succeeded.
func RunMany(ctx context.Context, jobs []Job, concurrency int) []error {
	if concurrency <= 0 {
		concurrency = 1
	}
	errs := make([]error, len(jobs))
	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for i, job := range jobs {
		i, job := i, job
		g.Go(func() error {
			errs[i] = job.Run()
			return nil
		})
	}
	_ = g.Wait()
	return errs
}
