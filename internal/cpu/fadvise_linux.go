//go:build linux

package cpu

import (
	"os"

	"golang.org/x/sys/unix"
)

// AdviseSequential tells the kernel f will be read front to back once, so
// readahead can be more aggressive. Errors are ignored: the hint is optional
// and some files (pipes, procfs) reject it.
func AdviseSequential(f *os.File) {
	_ = unix.Fadvise(int(f.Fd()), 0, 0, unix.FADV_SEQUENTIAL)
}
