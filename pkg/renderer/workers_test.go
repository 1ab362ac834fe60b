package renderer

import "testing"

func TestWorkersForMemory(t *testing.T) {
	const gb = 1 << 30
	tests := []struct {
		name      string
		workers   int
		hitPoints int
		available uint64
		expected  int
	}{
		{"plenty of memory", 8, 100000, 16 * gb, 8},
		{"single worker", 1, 1 << 30, 1, 1},
		{"no hit points", 8, 0, 1, 8},
		{"limited", 8, 1000000, 4 * 28 * 1000000, 2},
		{"never below one", 8, 1000000, 1000, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := workersForMemory(tt.workers, tt.hitPoints, tt.available); got != tt.expected {
				t.Errorf("Expected %d workers, got %d", tt.expected, got)
			}
		})
	}
}

func TestDetectWorkers(t *testing.T) {
	if n := DetectWorkers(); n < 1 {
		t.Errorf("Expected at least one worker, got %d", n)
	}
}
