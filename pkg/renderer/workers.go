package renderer

import (
	"runtime"

	"github.com/shirou/gopsutil/cpu"
	"github.com/shirou/gopsutil/mem"
)

// bufferBytesPerHitPoint is the per-worker photon buffer cost of one hit point:
// a flux vector and a deposit count
const bufferBytesPerHitPoint = 3*8 + 4

// DetectWorkers returns the number of logical CPUs
func DetectWorkers() int {
	if n, err := cpu.Counts(true); err == nil && n > 0 {
		return n
	}
	return runtime.NumCPU()
}

// LimitWorkers caps workers so that every worker's photon buffers for hitPoints
// hit points fit in half of the available memory
func LimitWorkers(workers, hitPoints int) int {
	vm, err := mem.VirtualMemory()
	if err != nil {
		logger.Debugf("memory check skipped: %v", err)
		return workers
	}
	return workersForMemory(workers, hitPoints, vm.Available)
}

func workersForMemory(workers, hitPoints int, available uint64) int {
	if workers <= 1 || hitPoints <= 0 {
		return workers
	}

	perWorker := uint64(hitPoints) * bufferBytesPerHitPoint
	limit := int(available / 2 / perWorker)
	if limit < 1 {
		limit = 1
	}
	if limit < workers {
		logger.Warningf("limiting workers from %d to %d to fit photon buffers for %d hit points in memory",
			workers, limit, hitPoints)
		return limit
	}
	return workers
}
