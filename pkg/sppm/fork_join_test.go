package sppm

import (
	"sync"
	"testing"
)

func TestForkJoin_CoversEveryItemOnce(t *testing.T) {
	tests := []struct {
		total, workers int
	}{
		{100, 4},
		{101, 4},
		{3, 8},
		{0, 4},
		{17, 1},
		{10, 0},
	}

	for _, tt := range tests {
		counts := make([]int, tt.total)
		var mu sync.Mutex
		reporters := 0

		forkJoin(tt.total, tt.workers, func(c chunk) {
			mu.Lock()
			defer mu.Unlock()
			if c.reporter {
				reporters++
			}
			for i := c.start; i < c.end; i++ {
				counts[i]++
			}
		})

		for i, n := range counts {
			if n != 1 {
				t.Fatalf("total=%d workers=%d: item %d processed %d times", tt.total, tt.workers, i, n)
			}
		}
		if reporters != 1 {
			t.Errorf("total=%d workers=%d: expected exactly one reporting chunk, got %d", tt.total, tt.workers, reporters)
		}
	}
}

func TestForkJoin_CallerRunsRemainder(t *testing.T) {
	var mu sync.Mutex
	chunks := make(map[int]chunk)

	forkJoin(10, 3, func(c chunk) {
		mu.Lock()
		chunks[c.worker] = c
		mu.Unlock()
	})

	last := chunks[2]
	if !last.reporter || last.start != 6 || last.end != 10 {
		t.Errorf("Expected reporting chunk [6,10), got %+v", last)
	}
	if first := chunks[0]; first.start != 0 || first.end != 3 {
		t.Errorf("Expected first chunk [0,3), got %+v", first)
	}
}

func TestWorkerSeed_Distinct(t *testing.T) {
	seen := make(map[int64]bool)
	for pass := -2; pass < 5; pass++ {
		for worker := 0; worker < 16; worker++ {
			seed := workerSeed(1, pass, worker)
			if seen[seed] {
				t.Fatalf("Seed collision at pass %d worker %d", pass, worker)
			}
			seen[seed] = true
		}
	}
}
