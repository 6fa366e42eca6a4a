package utils

import (
	"sync/atomic"
	"testing"
)

func TestWorkerPoolRunsAllJobs(t *testing.T) {
	pool := NewWorkerPool(4, 0)

	var count atomic.Int64
	for i := 0; i < 20; i++ {
		pool.Submit(func() { count.Add(1) })
	}
	pool.Wait()

	if count.Load() != 20 {
		t.Errorf("expected 20 jobs to run, got %d", count.Load())
	}
}

func TestWorkerPoolBoundsConcurrency(t *testing.T) {
	pool := NewWorkerPool(2, 0)

	var active, peak atomic.Int64
	for i := 0; i < 10; i++ {
		pool.Submit(func() {
			n := active.Add(1)
			for {
				p := peak.Load()
				if n <= p || peak.CompareAndSwap(p, n) {
					break
				}
			}
			active.Add(-1)
		})
	}
	pool.Wait()

	if peak.Load() > 2 {
		t.Errorf("expected at most 2 concurrent jobs, saw %d", peak.Load())
	}
}

func TestSeenSetAddAndContains(t *testing.T) {
	set := NewSeenSet()

	if !set.Add("https://example.com/apt/1") {
		t.Error("first Add should return true")
	}
	if set.Add("https://example.com/apt/1") {
		t.Error("second Add of same key should return false")
	}
	if !set.Contains("https://example.com/apt/1") {
		t.Error("Contains should report the added key")
	}
	if set.Size() != 1 {
		t.Errorf("Size: got %d, want 1", set.Size())
	}
}
