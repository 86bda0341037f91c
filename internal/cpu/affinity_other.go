//go:build !linux

package cpu

import "runtime"

// LockWorker binds the calling goroutine to its own OS thread. CPU pinning
// is only implemented on linux, so core is always -1 here.
func LockWorker(workerID int) (core int, release func()) {
	runtime.LockOSThread()
	return -1, runtime.UnlockOSThread
}
