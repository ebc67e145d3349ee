// Package workers runs bounded concurrent jobs. It defines the Worker
// interface, a Workers aggregate that runs many of them with a concurrency
// limit, and DecodePool which decodes many CXF documents at once.
package workers

import "context"

// Worker is the interface that must be implemented by any job run by
// [Workers].
//
// Run blocks until the job is done. A returned error cancels the context
// handed to the workers that are still running.
//
// Example implementation:
//
//	type MyWorker struct{}
//
//	func (w *MyWorker) Run(ctx context.Context) error {
//	    // do the job, honour ctx
//	    return nil
//	}
type Worker interface {
	Run(ctx context.Context) error
}

// WorkerFunc adapts a function to the Worker interface.
type WorkerFunc func(ctx context.Context) error

func (f WorkerFunc) Run(ctx context.Context) error {
	return f(ctx)
}
