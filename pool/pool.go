package pool

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/utkarsh5026/budgetwc/internal/queue"
	"golang.org/x/sync/errgroup"
)

// Pool is a fixed-size set of workers draining a bounded FIFO queue.
//
// Workers are created eagerly by Start and live until Shutdown. Submit blocks
// while the queue is full, which gives the submitter natural backpressure.
// Within one worker tasks run strictly one after another; across workers the
// completion order is unspecified.
//
// Type parameters:
//   - T: The task type
type Pool[T any] struct {
	conf  *workerPoolConfig
	mu    sync.Mutex
	state *poolState[T]
}

// poolState holds everything created by Start.
type poolState[T any] struct {
	queue     *queue.Bounded[T]
	done      chan struct{} // closed once every worker has returned
	closeOnce sync.Once

	submitted atomic.Int64
	completed atomic.Int64
	failed    atomic.Int64
}

// NewPool creates a pool with the given options. No workers run until Start.
//
// Default configuration:
//   - workerCount: DefaultWorkerCount (4)
//   - queueCapacity: DefaultQueueCapacity (100)
//   - no rate limit, no hooks, workers not locked to threads
//
// Example:
//
//	p := NewPool[string](WithWorkerCount(8), WithQueueCapacity(32))
//	_ = p.Start(ctx, countFile)
//	for _, name := range files {
//	    if err := p.Submit(ctx, name); err != nil {
//	        break
//	    }
//	}
//	_ = p.Shutdown()
func NewPool[T any](opts ...WorkerPoolOption) *Pool[T] {
	return &Pool[T]{
		conf: createConfig[T](opts...),
	}
}

// Start spawns the workers. ctx is handed to processFn and to the rate
// limiter; cancelling it does not stop the workers, only Shutdown does.
//
// Returns:
//   - error: ErrPoolAlreadyStarted on a second call
func (p *Pool[T]) Start(ctx context.Context, processFn ProcessFunc[T]) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.state != nil {
		return ErrPoolAlreadyStarted
	}

	state := &poolState[T]{
		queue: queue.New[T](p.conf.queueCapacity),
		done:  make(chan struct{}),
	}
	p.state = state

	var g errgroup.Group
	for i := range p.conf.workerCount {
		g.Go(func() error {
			p.worker(ctx, i, state, processFn)
			return nil
		})
	}

	go func() {
		_ = g.Wait()
		close(state.done)
	}()

	p.conf.logger.Debug("pool started",
		"workers", p.conf.workerCount,
		"queue_capacity", p.conf.queueCapacity)
	return nil
}

// Submit enqueues task, blocking while the queue is full.
//
// Returns:
//   - ErrPoolNotStarted if Start has not been called
//   - ErrPoolClosed if Shutdown was called before or during the wait
//   - ctx.Err() if ctx ends while waiting for a free slot
func (p *Pool[T]) Submit(ctx context.Context, task T) error {
	state, err := p.current()
	if err != nil {
		return err
	}

	if err := state.queue.Put(ctx, task); err != nil {
		if errors.Is(err, queue.ErrClosed) {
			return ErrPoolClosed
		}
		return err
	}

	state.submitted.Add(1)
	return nil
}

// TrySubmit enqueues task only if a slot is free right now. It reports
// false with a nil error when the queue is full.
//
// Returns:
//   - ErrPoolNotStarted if Start has not been called
//   - ErrPoolClosed if Shutdown was called
func (p *Pool[T]) TrySubmit(task T) (bool, error) {
	state, err := p.current()
	if err != nil {
		return false, err
	}

	if !state.queue.TryPut(task) {
		if state.queue.Closed() {
			return false, ErrPoolClosed
		}
		return false, nil
	}

	state.submitted.Add(1)
	return true, nil
}

// Shutdown stops accepting tasks, lets the workers drain whatever is still
// queued and waits for all of them to exit. Calling it again, or from
// several goroutines, is safe; every call returns once the workers are gone.
func (p *Pool[T]) Shutdown() error {
	return p.ShutdownTimeout(0)
}

// ShutdownTimeout is Shutdown with an upper bound on the wait.
// A non-positive timeout waits forever. On ErrShutdownTimeout the workers
// keep draining in the background.
func (p *Pool[T]) ShutdownTimeout(timeout time.Duration) error {
	state, err := p.current()
	if err != nil {
		return err
	}

	state.closeOnce.Do(func() {
		state.queue.Close()
		p.conf.logger.Debug("pool shutting down", "queued", state.queue.Len())
	})

	return waitUntil(state.done, timeout)
}

// Stats returns a snapshot of the pool counters.
func (p *Pool[T]) Stats() Stats {
	state, err := p.current()
	if err != nil {
		return Stats{}
	}

	return Stats{
		Submitted: state.submitted.Load(),
		Completed: state.completed.Load(),
		Failed:    state.failed.Load(),
		Queued:    state.queue.Len(),
	}
}

// WorkerCount returns the configured number of workers.
func (p *Pool[T]) WorkerCount() int {
	return p.conf.workerCount
}

// QueueCapacity returns the configured queue capacity.
func (p *Pool[T]) QueueCapacity() int {
	return p.conf.queueCapacity
}

func (p *Pool[T]) current() (*poolState[T], error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.state == nil {
		return nil, ErrPoolNotStarted
	}
	return p.state, nil
}
