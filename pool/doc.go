// Package pool provides a small, generic worker pool with a bounded queue.
//
// The primary type is Pool[T], a fixed set of workers that drain a
// fixed-capacity FIFO queue of tasks of type T. Submitting to a full queue
// blocks the caller until a worker frees a slot; Shutdown lets the workers
// finish everything already queued and then joins them.
//
// # Basic Usage
//
//	p := pool.NewPool[string](pool.WithWorkerCount(4), pool.WithQueueCapacity(100))
//	if err := p.Start(ctx, func(ctx context.Context, name string) error {
//	    return handle(name)
//	}); err != nil {
//	    return err
//	}
//	for _, name := range names {
//	    if err := p.Submit(ctx, name); err != nil {
//	        break // pool shut down or ctx done
//	    }
//	}
//	_ = p.Shutdown()
//
// # Failure Semantics
//
// A task that returns an error or panics is counted as failed and reported
// through the OnTaskEnd hook. The worker moves on to the next task; nothing
// is retried. The only way a worker exits is the end of work signalled by
// Shutdown on an empty queue.
//
// # Ordering
//
// Tasks leave the queue in submission order. Tasks run by different workers
// may complete in any order, so anything collected by the tasks themselves is
// in completion order.
//
// # Configuration Options
//
//   - WithWorkerCount(n): number of workers (default 4)
//   - WithQueueCapacity(n): queue capacity (default 100)
//   - WithRateLimit(perSecond, burst): token-bucket throttle on task starts
//   - WithLockedThreads(): one OS thread per worker, pinned where supported
//   - WithBeforeTaskStart(fn), WithOnTaskEnd(fn): per-task hooks
//   - WithLogger(l): slog logger for lifecycle events
package pool
