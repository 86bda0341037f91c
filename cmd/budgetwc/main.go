// Command budgetwc counts lines, words, bytes and ASCII characters in files,
// counting several files at once on a fixed pool of workers.
package main

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/utkarsh5026/budgetwc/internal/config"
	"github.com/utkarsh5026/budgetwc/internal/display"
	"github.com/utkarsh5026/budgetwc/internal/wc"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run executes one invocation and returns the exit status.
func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	errs := display.NewErrorPrinter(stderr)

	cfg, err := config.Parse(args)
	if err != nil {
		var usage *config.UsageError
		if errors.As(err, &usage) {
			errs.Printf("%s", usage.Msg)
			errs.UsageHint()
			return 1
		}
		errs.Printf("%v", err)
		return 1
	}

	if cfg.ShowHelp {
		display.Help(stdout)
		return 0
	}

	display.SetColorMode(cfg.Color)
	logger := newLogger(stderr, cfg.Verbose)

	if len(cfg.Files) == 0 {
		if _, err := wc.CountStdin(stdin, stdout, cfg.Fields, cfg.Table); err != nil {
			errs.Printf("%v", err)
			return 1
		}
		return 0
	}

	summary, err := wc.NewRunner(cfg, stdout, stderr, logger).Run(ctx)
	if err != nil {
		errs.Printf("%v", err)
		return 1
	}

	logger.Debug("run finished",
		"counted", len(summary.Entries),
		"skipped", summary.Skipped,
		"rejected", summary.Rejected,
		"submitted", summary.Stats.Submitted,
	)
	// Skipped files are reported but do not change the exit status.
	return 0
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
