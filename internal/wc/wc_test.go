package wc

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"testing"

	"github.com/fatih/color"

	"github.com/utkarsh5026/budgetwc/internal/config"
	"github.com/utkarsh5026/budgetwc/internal/count"
	"github.com/utkarsh5026/budgetwc/internal/display"
)

const sample = "Hello World\nThis is a test\nThird line\n"

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestRunner(cfg config.Config) (*Runner, *bytes.Buffer, *bytes.Buffer) {
	var out, errOut bytes.Buffer
	return NewRunner(cfg, &out, &errOut, quietLogger()), &out, &errOut
}

func TestMain(m *testing.M) {
	color.NoColor = true
	os.Exit(m.Run())
}

func TestProcess(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "a.txt", sample)

	t.Run("counts and prints under the lock", func(t *testing.T) {
		var out bytes.Buffer
		job := Job{Name: path, Results: count.NewCollection(), Mu: &sync.Mutex{}, Out: &out}

		if err := Process(context.Background(), job); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		entries := job.Results.Entries()
		if len(entries) != 1 {
			t.Fatalf("expected 1 entry, got %d", len(entries))
		}
		expected := count.Tally{Lines: 3, Words: 8, Bytes: 38, Chars: 38}
		if entries[0].Tally != expected || entries[0].Name != path {
			t.Errorf("unexpected entry %+v", entries[0])
		}
		if want := "3  8  38 " + path + "\n"; out.String() != want {
			t.Errorf("expected %q, got %q", want, out.String())
		}
	})

	t.Run("quiet job records without printing", func(t *testing.T) {
		var out bytes.Buffer
		job := Job{Name: path, Results: count.NewCollection(), Mu: &sync.Mutex{}, Out: &out, Quiet: true}
		if err := Process(context.Background(), job); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.Len() != 0 || job.Results.Len() != 1 {
			t.Errorf("expected silent append, got output %q and %d entries", out.String(), job.Results.Len())
		}
	})

	t.Run("missing file is skipped", func(t *testing.T) {
		var out bytes.Buffer
		job := Job{Name: filepath.Join(dir, "missing.txt"), Results: count.NewCollection(), Mu: &sync.Mutex{}, Out: &out}

		err := Process(context.Background(), job)
		if !errors.Is(err, ErrUnavailable) || !errors.Is(err, os.ErrNotExist) {
			t.Fatalf("expected ErrUnavailable wrapping os.ErrNotExist, got %v", err)
		}
		if job.Results.Len() != 0 || out.Len() != 0 {
			t.Error("a skipped job must not produce an entry or output")
		}
	})
}

func TestRunner_TwoFiles(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.txt", sample)
	b := writeFile(t, dir, "b.txt", "one two\nthree\n")

	cfg := config.Default()
	cfg.Files = []string{a, b}
	r, out, errOut := newTestRunner(cfg)

	summary, err := r.Run(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(summary.Entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(summary.Entries))
	}
	names := []string{summary.Entries[0].Name, summary.Entries[1].Name}
	sort.Strings(names)
	if names[0] != a || names[1] != b {
		t.Errorf("unexpected entry names %v", names)
	}

	expectedTotal := count.Tally{Lines: 5, Words: 11, Bytes: 52, Chars: 52}
	if summary.Total != expectedTotal {
		t.Errorf("expected total %+v, got %+v", expectedTotal, summary.Total)
	}

	lines := strings.Split(strings.TrimSuffix(out.String(), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 output lines, got %d: %q", len(lines), out.String())
	}
	perFile := []string{lines[0], lines[1]}
	sort.Strings(perFile)
	want := []string{"3  8  38 " + a, "2  3  14 " + b}
	sort.Strings(want)
	if perFile[0] != want[0] || perFile[1] != want[1] {
		t.Errorf("expected per-file lines %q in any order, got %q", want, perFile)
	}
	if lines[2] != "5  11  52 total" {
		t.Errorf("expected total line last, got %q", lines[2])
	}
	if errOut.Len() != 0 {
		t.Errorf("unexpected error output %q", errOut.String())
	}
}

func TestRunner_SingleFileHasNoTotal(t *testing.T) {
	dir := t.TempDir()
	cfg := config.Default()
	cfg.Files = []string{writeFile(t, dir, "only.txt", sample)}
	cfg.Fields = display.Fields{Chars: true}
	r, out, _ := newTestRunner(cfg)

	if _, err := r.Run(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(out.String(), "total") {
		t.Errorf("total printed for a single file: %q", out.String())
	}
	if want := " 38 " + cfg.Files[0] + "\n"; out.String() != want {
		t.Errorf("expected %q, got %q", want, out.String())
	}
}

func TestRunner_SkipsUnopenableFiles(t *testing.T) {
	dir := t.TempDir()
	var files []string
	for i := range 6 {
		files = append(files, writeFile(t, dir, fmt.Sprintf("f%d.txt", i), "x y\n"))
	}
	missing := []string{filepath.Join(dir, "gone1"), filepath.Join(dir, "gone2")}
	files = append(files, missing...)

	cfg := config.Default()
	cfg.Files = files
	cfg.Workers = 3
	cfg.QueueCapacity = 2
	r, out, errOut := newTestRunner(cfg)

	summary, err := r.Run(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(summary.Entries) != 6 {
		t.Errorf("expected 6 entries, got %d", len(summary.Entries))
	}
	if summary.Skipped != 2 {
		t.Errorf("expected 2 skipped, got %d", summary.Skipped)
	}
	if summary.Stats.Failed != 2 || summary.Stats.Completed != 6 {
		t.Errorf("unexpected pool stats %+v", summary.Stats)
	}
	for _, m := range missing {
		want := "budgetWC: " + m + ": No such file or directory\n"
		if !strings.Contains(errOut.String(), want) {
			t.Errorf("missing error line %q in %q", want, errOut.String())
		}
	}
	if !strings.HasSuffix(out.String(), "6  12  24 total\n") {
		t.Errorf("unexpected total in %q", out.String())
	}
}

func TestRunner_DirectoryIsReported(t *testing.T) {
	dir := t.TempDir()
	cfg := config.Default()
	cfg.Files = []string{dir, writeFile(t, dir, "a.txt", sample)}
	r, _, errOut := newTestRunner(cfg)

	summary, err := r.Run(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if summary.Skipped != 1 || len(summary.Entries) != 1 {
		t.Errorf("expected one entry and one skip, got %+v", summary)
	}
	if !strings.Contains(errOut.String(), "budgetWC: "+dir+": ") {
		t.Errorf("expected an error line for the directory, got %q", errOut.String())
	}
}

func TestRunner_Table(t *testing.T) {
	dir := t.TempDir()
	cfg := config.Default()
	cfg.Table = true
	cfg.Files = []string{writeFile(t, dir, "a.txt", sample), writeFile(t, dir, "b.txt", "z\n")}
	r, out, _ := newTestRunner(cfg)

	if _, err := r.Run(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	s := out.String()
	if strings.Contains(s, "3  8  38 ") {
		t.Errorf("plain lines should not be printed in table mode:\n%s", s)
	}
	for _, want := range []string{"a.txt", "b.txt", "total", "40"} {
		if !strings.Contains(s, want) {
			t.Errorf("table missing %q:\n%s", want, s)
		}
	}
}

func TestRunner_ProgressAndRateLimit(t *testing.T) {
	dir := t.TempDir()
	cfg := config.Default()
	cfg.Progress = true
	cfg.RateLimit = 1000
	cfg.Burst = 5
	cfg.LockThreads = true
	for i := range 5 {
		cfg.Files = append(cfg.Files, writeFile(t, dir, fmt.Sprintf("p%d.txt", i), sample))
	}
	r, out, _ := newTestRunner(cfg)

	summary, err := r.Run(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(summary.Entries) != 5 {
		t.Errorf("expected 5 entries, got %d", len(summary.Entries))
	}
	if !strings.HasSuffix(out.String(), "15  40  190 total\n") {
		t.Errorf("unexpected output %q", out.String())
	}
}

func TestRunner_ManyFilesThroughSmallQueue(t *testing.T) {
	dir := t.TempDir()
	cfg := config.Default()
	cfg.Workers = 4
	cfg.QueueCapacity = 1
	const n = 120
	for i := range n {
		cfg.Files = append(cfg.Files, writeFile(t, dir, fmt.Sprintf("m%03d.txt", i), "a\n"))
	}
	r, out, _ := newTestRunner(cfg)

	summary, err := r.Run(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(summary.Entries) != n {
		t.Fatalf("expected %d entries, got %d", n, len(summary.Entries))
	}

	lines := strings.Split(strings.TrimSuffix(out.String(), "\n"), "\n")
	if len(lines) != n+1 {
		t.Fatalf("expected %d lines, got %d", n+1, len(lines))
	}
	for _, l := range lines[:n] {
		if !strings.HasPrefix(l, "1  1  2 ") {
			t.Errorf("garbled per-file line %q", l)
		}
	}
	if lines[n] != fmt.Sprintf("%d  %d  %d total", n, n, 2*n) {
		t.Errorf("unexpected total line %q", lines[n])
	}
}

func TestCountStdin(t *testing.T) {
	t.Run("plain line without a name", func(t *testing.T) {
		var out bytes.Buffer
		entry, err := CountStdin(strings.NewReader(sample), &out, display.Fields{}, false)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if entry.Tally != (count.Tally{Lines: 3, Words: 8, Bytes: 38, Chars: 38}) {
			t.Errorf("unexpected tally %+v", entry.Tally)
		}
		if !entry.Stdin || entry.Name != "" {
			t.Errorf("expected an unnamed stdin entry, got %+v", entry)
		}
		if out.String() != "3  8  38 \n" {
			t.Errorf("unexpected output %q", out.String())
		}
	})

	t.Run("table", func(t *testing.T) {
		var out bytes.Buffer
		entry, err := CountStdin(strings.NewReader("a b\nc\n"), &out, display.Fields{}, true)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !entry.Stdin {
			t.Errorf("expected a stdin entry, got %+v", entry)
		}

		s := out.String()
		if s == "2  3  6 \n" {
			t.Fatal("expected a table, got the plain line")
		}
		for _, want := range []string{"-", "2", "3", "6"} {
			if !strings.Contains(s, want) {
				t.Errorf("table missing %q:\n%s", want, s)
			}
		}
		if strings.Contains(s, "total") {
			t.Errorf("single stdin row must not have a total:\n%s", s)
		}
		if !strings.Contains(strings.ToUpper(s), "LINES") {
			t.Errorf("expected a header row:\n%s", s)
		}
	})
}
