package pool

import (
	"context"
	"fmt"
	"testing"
	"time"
)

// =============================================================================
// Workload Generators
// =============================================================================

// cpuBoundWork simulates a CPU-intensive task
func cpuBoundWork(iterations int) ProcessFunc[int] {
	return func(_ context.Context, task int) error {
		result := 0
		for i := 0; i < iterations; i++ {
			result += i * task
		}
		_ = result
		return nil
	}
}

// ioBoundWork simulates a blocking read with a fixed delay
func ioBoundWork(delay time.Duration) ProcessFunc[int] {
	return func(ctx context.Context, task int) error {
		select {
		case <-time.After(delay):
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func runBatch(b *testing.B, taskCount int, processFn ProcessFunc[int], opts ...WorkerPoolOption) {
	b.Helper()
	p := NewPool[int](opts...)
	if err := p.Start(context.Background(), processFn); err != nil {
		b.Fatal(err)
	}
	for j := range taskCount {
		if err := p.Submit(context.Background(), j); err != nil {
			b.Fatal(err)
		}
	}
	if err := p.Shutdown(); err != nil {
		b.Fatal(err)
	}
}

func reportThroughput(b *testing.B, taskCount int) {
	nsPerOp := float64(b.Elapsed().Nanoseconds()) / float64(b.N)
	b.ReportMetric(float64(taskCount)/nsPerOp*1e9, "tasks/sec")
}

// =============================================================================
// Throughput Benchmarks
// =============================================================================

func BenchmarkPool_WorkerScaling(b *testing.B) {
	const taskCount = 10000

	for _, workers := range []int{1, 2, 4, 8, 16} {
		b.Run(fmt.Sprintf("workers_%d", workers), func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				runBatch(b, taskCount, cpuBoundWork(100), WithWorkerCount(workers))
			}
			b.StopTimer()
			reportThroughput(b, taskCount)
		})
	}
}

func BenchmarkPool_QueueCapacity(b *testing.B) {
	const taskCount = 10000

	for _, capacity := range []int{1, 4, 16, 100, 1000} {
		b.Run(fmt.Sprintf("capacity_%d", capacity), func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				runBatch(b, taskCount, cpuBoundWork(100),
					WithWorkerCount(4),
					WithQueueCapacity(capacity),
				)
			}
			b.StopTimer()
			reportThroughput(b, taskCount)
		})
	}
}

func BenchmarkPool_IOBound(b *testing.B) {
	const taskCount = 200

	for _, workers := range []int{1, 4, 16} {
		b.Run(fmt.Sprintf("workers_%d", workers), func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				runBatch(b, taskCount, ioBoundWork(100*time.Microsecond), WithWorkerCount(workers))
			}
			b.StopTimer()
			reportThroughput(b, taskCount)
		})
	}
}

func BenchmarkPool_LockedThreads(b *testing.B) {
	const taskCount = 10000

	b.Run("unlocked", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			runBatch(b, taskCount, cpuBoundWork(1000), WithWorkerCount(4))
		}
	})
	b.Run("locked", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			runBatch(b, taskCount, cpuBoundWork(1000), WithWorkerCount(4), WithLockedThreads())
		}
	})
}
