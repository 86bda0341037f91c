package pool

import (
	"fmt"
	"log/slog"

	"golang.org/x/time/rate"
)

const (
	// DefaultWorkerCount is the number of workers when none is configured.
	DefaultWorkerCount = 4
	// DefaultQueueCapacity is the queue size when none is configured.
	DefaultQueueCapacity = 100
)

// WorkerPoolOption is a functional option for configuring the pool.
type WorkerPoolOption func(*workerPoolConfig)

type workerPoolConfig struct {
	workerCount   int
	queueCapacity int
	rateLimiter   *rate.Limiter
	lockThreads   bool
	logger        *slog.Logger

	beforeTaskStart     func(any)
	beforeTaskStartType string
	onTaskEnd           func(any, error)
	onTaskEndType       string
}

// WithWorkerCount sets the number of concurrent workers.
// If not specified, defaults to DefaultWorkerCount.
func WithWorkerCount(count int) WorkerPoolOption {
	return func(cfg *workerPoolConfig) {
		if count > 0 {
			cfg.workerCount = count
		}
	}
}

// WithQueueCapacity sets how many submitted tasks may wait for a worker.
// Submit blocks once the queue holds this many tasks.
// If not specified, defaults to DefaultQueueCapacity.
func WithQueueCapacity(capacity int) WorkerPoolOption {
	return func(cfg *workerPoolConfig) {
		if capacity > 0 {
			cfg.queueCapacity = capacity
		}
	}
}

// WithRateLimit caps how many tasks per second the workers start, with the
// given burst. Useful when the inputs live on a slow or shared filesystem.
// If not specified, no rate limiting is applied.
//
// Example:
//
//	WithRateLimit(50, 10) // start at most 50 tasks/sec, bursts of 10
func WithRateLimit(tasksPerSecond float64, burst int) WorkerPoolOption {
	return func(cfg *workerPoolConfig) {
		if tasksPerSecond > 0 && burst > 0 {
			cfg.rateLimiter = rate.NewLimiter(rate.Limit(tasksPerSecond), burst)
		}
	}
}

// WithLockedThreads runs every worker on its own OS thread, pinned to a CPU
// where the platform allows it.
func WithLockedThreads() WorkerPoolOption {
	return func(cfg *workerPoolConfig) {
		cfg.lockThreads = true
	}
}

// WithLogger sets the logger used for worker lifecycle events.
// If not specified, slog.Default() is used.
func WithLogger(logger *slog.Logger) WorkerPoolOption {
	return func(cfg *workerPoolConfig) {
		if logger != nil {
			cfg.logger = logger
		}
	}
}

// WithBeforeTaskStart registers a hook called by the worker right before a
// task is processed. The task type must match the pool's type parameter;
// NewPool panics otherwise.
func WithBeforeTaskStart[T any](fn func(T)) WorkerPoolOption {
	return func(cfg *workerPoolConfig) {
		if fn == nil {
			return
		}
		cfg.beforeTaskStartType = typeName[T]()
		cfg.beforeTaskStart = func(task any) {
			fn(task.(T))
		}
	}
}

// WithOnTaskEnd registers a hook called after every task with the error the
// task finished with (nil on success). It runs on the worker goroutine, so it
// must be safe for concurrent use.
func WithOnTaskEnd[T any](fn func(T, error)) WorkerPoolOption {
	return func(cfg *workerPoolConfig) {
		if fn == nil {
			return
		}
		cfg.onTaskEndType = typeName[T]()
		cfg.onTaskEnd = func(task any, err error) {
			fn(task.(T), err)
		}
	}
}

func typeName[T any]() string {
	var zero T
	return fmt.Sprintf("%T", &zero)
}
