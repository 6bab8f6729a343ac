package geom

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Job is the geometry of one shape to compile.
type Job struct {
	Sections []Section
	Box      Box
	Cursor   Cursor
}

// Result is the outcome of one Job.
type Result struct {
	Path   Path
	Cursor Cursor
	Err    error
}

// CompileAll compiles independent shapes concurrently, at most workers at a
// time. Results are returned in job order; a failing job records its error in
// its Result and does not stop the others. Only cancellation of ctx fails the
// whole batch.
func (c *Compiler) CompileAll(ctx context.Context, jobs []Job, workers int) ([]Result, error) {
	if workers < 1 {
		workers = 1
	}

	results := make([]Result, len(jobs))
	g, groupCtx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i := range jobs {
		if groupCtx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := groupCtx.Err(); err != nil {
				return err
			}
			job := jobs[i]
			path, cur, err := c.Compile(job.Sections, job.Box, job.Cursor)
			results[i] = Result{Path: path, Cursor: cur, Err: err}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}
