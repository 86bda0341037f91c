package pool

import "context"

// ProcessFunc defines how a single task is handled by a worker.
// The returned error is reported through the OnTaskEnd hook and the pool
// statistics; it never stops the worker or the pool.
//
// Type parameters:
//   - T: The type of task submitted to the pool
type ProcessFunc[T any] func(ctx context.Context, task T) error

// Stats is a point-in-time snapshot of pool activity.
//
// Fields:
//   - Submitted: Tasks accepted by Submit
//   - Completed: Tasks whose ProcessFunc returned nil
//   - Failed: Tasks whose ProcessFunc returned an error or panicked
//   - Queued: Tasks waiting in the queue at the time of the snapshot
type Stats struct {
	Submitted int64
	Completed int64
	Failed    int64
	Queued    int
}
