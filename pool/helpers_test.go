package pool

import (
	"testing"
	"time"
)

// poolConfig names a set of options a test should run under.
type poolConfig struct {
	name string
	opts []WorkerPoolOption
}

// getAllConfigs returns the worker layouts every lifecycle test runs against.
func getAllConfigs(workerCount int) []poolConfig {
	return []poolConfig{
		{
			name: "Default",
			opts: []WorkerPoolOption{WithWorkerCount(workerCount)},
		},
		{
			name: "TinyQueue",
			opts: []WorkerPoolOption{WithWorkerCount(workerCount), WithQueueCapacity(1)},
		},
		{
			name: "LockedThreads",
			opts: []WorkerPoolOption{WithWorkerCount(workerCount), WithLockedThreads()},
		},
	}
}

func runConfigTest(t *testing.T, testFunc func(t *testing.T, c poolConfig), workerCount int, additionalOpts ...WorkerPoolOption) {
	for _, c := range getAllConfigs(workerCount) {
		c.opts = append(c.opts, additionalOpts...)
		t.Run(c.name, func(t *testing.T) {
			testFunc(t, c)
		})
	}
}

// waitOrFail fails the test if done is not closed within d.
func waitOrFail(t *testing.T, done <-chan struct{}, d time.Duration, what string) {
	t.Helper()
	select {
	case <-done:
	case <-time.After(d):
		t.Fatalf("timed out waiting for %s", what)
	}
}
