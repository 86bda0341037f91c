// Package wc runs a counting job over a list of files on the worker pool.
package wc

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/utkarsh5026/budgetwc/internal/count"
	"github.com/utkarsh5026/budgetwc/internal/cpu"
	"github.com/utkarsh5026/budgetwc/internal/display"
)

var (
	ErrUnavailable = errors.New("file unavailable")
)

// Job is one file to count. Every job of a run shares the same Results,
// Mu and Out; Mu guards the append to Results together with the line
// written to Out, so per-file output is never interleaved.
type Job struct {
	Name    string
	Results *count.Collection
	Mu      *sync.Mutex
	Fields  display.Fields
	Out     io.Writer
	// Quiet suppresses the per-file line, for table output.
	Quiet bool
}

// Process opens and counts the job's file, then records and prints the
// result. It is the pool's ProcessFunc for a run.
//
// A file that cannot be opened yields an error wrapping ErrUnavailable and
// no entry. The file is read without holding Mu.
func Process(_ context.Context, job Job) error {
	f, err := os.Open(job.Name)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrUnavailable, job.Name, err)
	}
	defer f.Close()

	cpu.AdviseSequential(f)

	tally, err := count.Count(f)
	if err != nil {
		return fmt.Errorf("read %s: %w", job.Name, err)
	}

	job.Mu.Lock()
	defer job.Mu.Unlock()

	job.Results.Append(count.Entry{Tally: tally, Name: job.Name})
	if job.Quiet {
		return nil
	}
	return display.WriteLine(job.Out, tally, job.Fields, job.Name)
}
