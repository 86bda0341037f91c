//go:build !linux

package cpu

import "os"

// AdviseSequential is a no-op outside linux.
func AdviseSequential(f *os.File) {}
