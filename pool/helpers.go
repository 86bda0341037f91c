package pool

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"time"
)

var (
	ErrPoolNotStarted     = errors.New("pool not started")
	ErrPoolAlreadyStarted = errors.New("pool already started")
	ErrPoolClosed         = errors.New("pool shut down")
	ErrShutdownTimeout    = errors.New("error in shutting down: timeout reached")
)

// createConfig applies opts over the defaults and checks that any hooks were
// registered for the pool's task type.
//
// Panics:
//
//	If a hook's task type does not match T. The message names both types.
func createConfig[T any](opts ...WorkerPoolOption) *workerPoolConfig {
	cfg := &workerPoolConfig{
		workerCount:   DefaultWorkerCount,
		queueCapacity: DefaultQueueCapacity,
	}

	for _, opt := range opts {
		opt(cfg)
	}

	if cfg.logger == nil {
		cfg.logger = slog.Default()
	}

	expected := typeName[T]()
	if cfg.beforeTaskStart != nil && cfg.beforeTaskStartType != expected {
		panic(fmt.Sprintf("WithBeforeTaskStart hook expects task type %s, but pool processes type %s",
			cfg.beforeTaskStartType, expected))
	}
	if cfg.onTaskEnd != nil && cfg.onTaskEndType != expected {
		panic(fmt.Sprintf("WithOnTaskEnd hook expects task type %s, but pool processes type %s",
			cfg.onTaskEndType, expected))
	}

	return cfg
}

// waitUntil blocks until either the done channel is closed or the timeout is reached.
// A non-positive timeout waits forever.
func waitUntil(d <-chan struct{}, timeout time.Duration) error {
	if timeout <= 0 {
		<-d
		return nil
	}

	select {
	case <-d:
		return nil
	case <-time.After(timeout):
		return ErrShutdownTimeout
	}
}

// processWithRecovery runs processFn and converts a panic into an error
// carrying the stack trace, so a single bad task cannot take a worker down.
func processWithRecovery[T any](
	ctx context.Context,
	task T,
	processFn ProcessFunc[T],
) (err error) {
	defer func() {
		if r := recover(); r != nil {
			buf := make([]byte, 4096)
			n := runtime.Stack(buf, false)
			err = fmt.Errorf("worker panic: %v\nstack trace:\n%s", r, buf[:n])
		}
	}()

	return processFn(ctx, task)
}
