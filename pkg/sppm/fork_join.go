package sppm

import (
	"sync"
)

// chunk is a contiguous range of work items handled by one goroutine
type chunk struct {
	worker     int
	start, end int
	reporter   bool // Set for the chunk run by the calling goroutine
}

// forkJoin splits [0, total) into one contiguous chunk per worker. Chunks
// 0..workers-2 run on new goroutines, the calling goroutine runs the final chunk
// (which also absorbs the remainder) and the call returns once all are done.
func forkJoin(total, workers int, run func(c chunk)) {
	if workers < 1 {
		workers = 1
	}
	size := total / workers

	var wg sync.WaitGroup
	for w := 0; w < workers-1; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			run(chunk{worker: w, start: w * size, end: (w + 1) * size})
		}(w)
	}

	run(chunk{worker: workers - 1, start: (workers - 1) * size, end: total, reporter: true})
	wg.Wait()
}

// workerSeed derives an independent sampler seed for one worker of one pass
func workerSeed(base int64, pass, worker int) int64 {
	z := uint64(base) ^ uint64(pass)*0x9e3779b97f4a7c15 ^ uint64(worker+1)*0xbf58476d1ce4e5b9
	// splitmix64 finalizer
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	return int64(z ^ (z >> 31))
}
