package workers

import (
	"context"

	"golang.org/x/sync/errgroup"
)

type Workers struct {
	workers []Worker
	limit   int
}

// NewWorkers returns an aggregate running at most limit workers at a time.
// A limit below one means no limit.
func NewWorkers(limit int, workers ...Worker) *Workers {
	return &Workers{workers: workers, limit: limit}
}

// Add appends w to the aggregate.
func (w *Workers) Add(worker Worker) {
	w.workers = append(w.workers, worker)
}

// Run starts every worker and waits for all of them. It returns the first
// error; the context seen by the remaining workers is cancelled at that
// point and workers not yet started are skipped.
func (w *Workers) Run(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)
	if w.limit > 0 {
		g.SetLimit(w.limit)
	}

	for _, worker := range w.workers {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			return worker.Run(gctx)
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}
	return ctx.Err()
}
