package pool

import (
	"context"

	"github.com/utkarsh5026/budgetwc/internal/cpu"
)

// worker takes tasks until the queue reports end of work, which only happens
// after Shutdown once the queue is empty. Task failures are counted and
// passed to the hooks; they never end the loop.
func (p *Pool[T]) worker(
	ctx context.Context,
	workerID int,
	state *poolState[T],
	processFn ProcessFunc[T],
) {
	log := p.conf.logger.With("worker", workerID)

	if p.conf.lockThreads {
		core, release := cpu.LockWorker(workerID)
		defer release()
		log = log.With("core", core)
	}

	log.Debug("worker started")
	defer log.Debug("worker exited")

	for {
		task, ok := state.queue.Take()
		if !ok {
			return
		}

		if err := p.execute(ctx, task, processFn); err != nil {
			state.failed.Add(1)
			log.Debug("task failed", "err", err)
			continue
		}
		state.completed.Add(1)
	}
}

// execute runs one task with rate limiting, hooks and panic recovery.
func (p *Pool[T]) execute(ctx context.Context, task T, processFn ProcessFunc[T]) error {
	err := p.wait(ctx)
	if err == nil {
		if p.conf.beforeTaskStart != nil {
			p.conf.beforeTaskStart(task)
		}
		err = processWithRecovery(ctx, task, processFn)
	}

	if p.conf.onTaskEnd != nil {
		p.conf.onTaskEnd(task, err)
	}
	return err
}

func (p *Pool[T]) wait(ctx context.Context) error {
	if p.conf.rateLimiter == nil {
		return nil
	}
	if err := p.conf.rateLimiter.Wait(ctx); err != nil {
		// The limiter's error does not wrap context errors.
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return err
	}
	return nil
}
