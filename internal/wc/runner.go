package wc

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"sync"

	"github.com/schollz/progressbar/v3"

	"github.com/utkarsh5026/budgetwc/internal/config"
	"github.com/utkarsh5026/budgetwc/internal/count"
	"github.com/utkarsh5026/budgetwc/internal/display"
	"github.com/utkarsh5026/budgetwc/pool"
)

// Summary describes a finished run.
type Summary struct {
	// Entries are in completion order.
	Entries []count.Entry
	Total   count.Tally
	// Skipped counts files that could not be opened or read.
	Skipped int
	// Rejected counts files never handed to the pool.
	Rejected int
	Stats    pool.Stats
}

// Runner counts the files of one invocation through a worker pool.
type Runner struct {
	cfg    config.Config
	out    io.Writer
	errOut io.Writer
	errs   *display.ErrorPrinter
	logger *slog.Logger
}

// NewRunner creates a Runner writing results to out and diagnostics to
// errOut. A nil logger means slog.Default().
func NewRunner(cfg config.Config, out, errOut io.Writer, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{
		cfg:    cfg,
		out:    out,
		errOut: errOut,
		errs:   display.NewErrorPrinter(errOut),
		logger: logger,
	}
}

// Run submits one job per configured file, waits for the pool to drain and
// prints the total line when more than one file was counted.
func (r *Runner) Run(ctx context.Context) (Summary, error) {
	results := count.NewCollection()
	var mu sync.Mutex
	var skipped int

	bar := r.progressBar(len(r.cfg.Files))

	onEnd := func(job Job, err error) {
		mu.Lock()
		defer mu.Unlock()
		if err != nil {
			skipped++
			r.report(job.Name, err)
		}
		if bar != nil {
			_ = bar.Add(1)
		}
	}

	p := pool.NewPool[Job](r.poolOptions(onEnd)...)
	if err := p.Start(ctx, Process); err != nil {
		return Summary{}, fmt.Errorf("start pool: %w", err)
	}

	rejected := 0
	for i, name := range r.cfg.Files {
		job := Job{
			Name:    name,
			Results: results,
			Mu:      &mu,
			Fields:  r.cfg.Fields,
			Out:     r.out,
			Quiet:   r.cfg.Table,
		}
		if err := r.submit(ctx, p, job); err != nil {
			rejected = len(r.cfg.Files) - i
			mu.Lock()
			r.errs.Printf("failed to add work to thread pool")
			mu.Unlock()
			r.logger.Warn("submit failed", "file", name, "err", err)
			break
		}
	}

	if err := p.Shutdown(); err != nil {
		return Summary{}, fmt.Errorf("shutdown pool: %w", err)
	}
	if bar != nil {
		_ = bar.Finish()
	}

	summary := Summary{
		Entries:  results.Entries(),
		Total:    results.Aggregate(),
		Skipped:  skipped,
		Rejected: rejected,
		Stats:    p.Stats(),
	}

	if r.cfg.Table {
		if err := display.RenderTable(r.out, summary.Entries, r.cfg.Fields); err != nil {
			return summary, fmt.Errorf("render table: %w", err)
		}
		return summary, nil
	}

	if results.Len() > 1 {
		if err := display.WriteLine(r.out, summary.Total, r.cfg.Fields, "total"); err != nil {
			return summary, err
		}
	}
	return summary, nil
}

// submit hands job to the pool, waiting for a free slot when the queue is
// full.
func (r *Runner) submit(ctx context.Context, p *pool.Pool[Job], job Job) error {
	ok, err := p.TrySubmit(job)
	if err != nil || ok {
		return err
	}
	r.logger.Debug("queue full, waiting for a worker", "file", job.Name)
	return p.Submit(ctx, job)
}

func (r *Runner) poolOptions(onEnd func(Job, error)) []pool.WorkerPoolOption {
	opts := []pool.WorkerPoolOption{
		pool.WithWorkerCount(r.cfg.Workers),
		pool.WithQueueCapacity(r.cfg.QueueCapacity),
		pool.WithLogger(r.logger),
		pool.WithOnTaskEnd(onEnd),
	}
	if r.cfg.RateLimit > 0 {
		opts = append(opts, pool.WithRateLimit(r.cfg.RateLimit, r.cfg.Burst))
	}
	if r.cfg.LockThreads {
		opts = append(opts, pool.WithLockedThreads())
	}
	return opts
}

func (r *Runner) progressBar(total int) *progressbar.ProgressBar {
	if !r.cfg.Progress || total == 0 {
		return nil
	}
	return progressbar.NewOptions(total,
		progressbar.OptionSetWriter(r.errOut),
		progressbar.OptionSetDescription("counting"),
		progressbar.OptionSetWidth(30),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	)
}

// report prints a skipped file on the error stream. Caller holds the
// run's mutex.
func (r *Runner) report(name string, err error) {
	r.logger.Debug("file skipped", "file", name, "err", err)

	var pathErr *fs.PathError
	switch {
	case errors.Is(err, fs.ErrNotExist):
		r.errs.Missing(name)
	case errors.As(err, &pathErr):
		r.errs.Printf("%s: %v", name, pathErr.Err)
	default:
		r.errs.Printf("%s: %v", name, err)
	}
}

// CountStdin counts in and prints its result without a file name, or as a
// single-row table when table is set.
func CountStdin(in io.Reader, out io.Writer, fields display.Fields, table bool) (count.Entry, error) {
	tally, err := count.Count(in)
	entry := count.Entry{Tally: tally, Stdin: true}
	if err != nil {
		return entry, fmt.Errorf("read standard input: %w", err)
	}

	if table {
		if err := display.RenderTable(out, []count.Entry{entry}, fields); err != nil {
			return entry, fmt.Errorf("render table: %w", err)
		}
		return entry, nil
	}
	return entry, display.WriteLine(out, tally, fields, entry.Label())
}
