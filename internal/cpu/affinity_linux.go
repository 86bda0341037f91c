//go:build linux

package cpu

import (
	"runtime"

	"golang.org/x/sys/unix"
)

// pinToCore restricts the calling OS thread to a single CPU.
// The goroutine must already be locked to its thread.
func pinToCore(workerID int) (int, error) {
	cpuID := workerID % runtime.NumCPU()

	var mask unix.CPUSet
	mask.Zero()
	mask.Set(cpuID)

	// pid 0 is the calling thread.
	if err := unix.SchedSetaffinity(0, &mask); err != nil {
		return -1, err
	}
	return cpuID, nil
}

// LockWorker binds the calling goroutine to its own OS thread and pins that
// thread to a CPU chosen from workerID. Pinning is best effort; the returned
// core is -1 when the kernel refused it. The release func must be deferred.
//
// release restores the thread's previous CPU mask before unlocking it. If
// the mask cannot be restored the goroutine stays locked, so the runtime
// discards the pinned thread when the goroutine exits.
func LockWorker(workerID int) (core int, release func()) {
	runtime.LockOSThread()

	var original unix.CPUSet
	if err := unix.SchedGetaffinity(0, &original); err != nil {
		// Without the old mask there is nothing to restore; keep the
		// thread unpinned.
		return -1, runtime.UnlockOSThread
	}

	core, err := pinToCore(workerID)
	if err != nil {
		return -1, runtime.UnlockOSThread
	}

	return core, func() {
		if err := unix.SchedSetaffinity(0, &original); err != nil {
			return
		}
		runtime.UnlockOSThread()
	}
}
