// Package cpu holds the small amount of OS-specific code the worker pool
// needs: locking workers to OS threads with optional CPU pinning, and
// sequential read-ahead hints for files being counted.
package cpu
