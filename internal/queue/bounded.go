// Package queue implements the bounded FIFO the worker pool drains.
package queue

import (
	"context"
	"errors"
	"sync"

	"golang.org/x/sync/semaphore"
)

var (
	ErrClosed = errors.New("queue is closed")
)

// DefaultCapacity is used when a non-positive capacity is requested.
const DefaultCapacity = 100

// Bounded is a fixed-capacity FIFO ring buffer shared by one or more
// producers and a set of consumers.
//
// Flow control uses two counting semaphores: slots (initially capacity) and
// items (initially zero). Producers acquire a slot before touching the ring,
// consumers acquire an item. The mutex only guards the ring indices and the
// closed flag; nothing blocks while it is held.
//
// Close is a broadcast: every consumer blocked in Take wakes up, drains what
// is left in the ring and then receives the end-of-work indication.
type Bounded[T any] struct {
	mu     sync.Mutex
	ring   []T
	head   int
	tail   int
	size   int
	closed bool

	slots *semaphore.Weighted
	items *semaphore.Weighted

	done   context.Context
	cancel context.CancelFunc
}

// New creates a Bounded queue holding at most capacity items.
func New[T any](capacity int) *Bounded[T] {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}

	items := semaphore.NewWeighted(int64(capacity))
	// Hold every item permit up front so the queue starts empty.
	_ = items.TryAcquire(int64(capacity))

	done, cancel := context.WithCancel(context.Background())
	return &Bounded[T]{
		ring:   make([]T, capacity),
		slots:  semaphore.NewWeighted(int64(capacity)),
		items:  items,
		done:   done,
		cancel: cancel,
	}
}

// Put appends v to the tail of the queue, blocking while the queue is full.
//
// Returns ErrClosed if the queue was closed before or while waiting for a
// slot, or ctx.Err() if ctx ends first. In both cases nothing is enqueued and
// the slot reservation, if any, is given back.
func (q *Bounded[T]) Put(ctx context.Context, v T) error {
	waitCtx, stopWait := context.WithCancel(ctx)
	defer stopWait()
	stop := context.AfterFunc(q.done, stopWait)
	defer stop()

	if err := q.slots.Acquire(waitCtx, 1); err != nil {
		if q.done.Err() != nil {
			return ErrClosed
		}
		return err
	}

	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		q.slots.Release(1)
		return ErrClosed
	}
	q.ring[q.tail] = v
	q.tail = (q.tail + 1) % len(q.ring)
	q.size++
	q.mu.Unlock()

	q.items.Release(1)
	return nil
}

// TryPut is the non-blocking form of Put. It reports false when the queue is
// full or closed.
func (q *Bounded[T]) TryPut(v T) bool {
	if !q.slots.TryAcquire(1) {
		return false
	}

	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		q.slots.Release(1)
		return false
	}
	q.ring[q.tail] = v
	q.tail = (q.tail + 1) % len(q.ring)
	q.size++
	q.mu.Unlock()

	q.items.Release(1)
	return true
}

// Take removes and returns the head of the queue, blocking while the queue
// is empty and open. The boolean is false once the queue is closed and fully
// drained; that is the end-of-work indication for consumers.
func (q *Bounded[T]) Take() (T, bool) {
	var zero T

	// Acquire only fails after Close. From then on items are drained without
	// permits, which is safe because no further Put can succeed.
	_ = q.items.Acquire(q.done, 1)

	q.mu.Lock()
	if q.size == 0 {
		// Only reachable once closed.
		q.mu.Unlock()
		return zero, false
	}
	v := q.ring[q.head]
	q.ring[q.head] = zero
	q.head = (q.head + 1) % len(q.ring)
	q.size--
	q.mu.Unlock()

	q.slots.Release(1)
	return v, true
}

// Close marks the queue closed and wakes every blocked consumer and
// producer. It reports whether this call performed the close; later calls
// are no-ops.
func (q *Bounded[T]) Close() bool {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return false
	}
	q.closed = true
	q.mu.Unlock()

	q.cancel()
	return true
}

// Closed reports whether Close has been called.
func (q *Bounded[T]) Closed() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.closed
}

// Len returns the number of queued items.
func (q *Bounded[T]) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.size
}

// Cap returns the fixed capacity of the queue.
func (q *Bounded[T]) Cap() int {
	return len(q.ring)
}
