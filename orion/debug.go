package orion

import (
	"log/slog"
	"runtime"
	"strconv"
	"time"
)

// MemoryStats is a snapshot of the runtime memory statistics relevant for a
// frame loop: allocations per frame show up as heap objects and gc cycles.
type MemoryStats struct {
	HeapObjects uint64
	HeapInUse   uint64
	StackInUse  uint64

	GCCycles    uint32
	GCFraction  float64
	LastGCPause time.Duration
}

func ReadMemoryStats() MemoryStats {
	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)

	return memoryStatsOf(&mem)
}

func memoryStatsOf(mem *runtime.MemStats) MemoryStats {
	lastCycle := (mem.NumGC + 255) % 256

	return MemoryStats{
		HeapObjects: mem.HeapObjects,
		HeapInUse:   mem.HeapInuse,
		StackInUse:  mem.StackInuse,
		GCCycles:    mem.NumGC,
		GCFraction:  mem.GCCPUFraction,
		LastGCPause: time.Duration(mem.PauseNs[lastCycle]),
	}
}

func (m MemoryStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Uint64("heapObjects", m.HeapObjects),
		slog.String("heapInUse", formatMegabytes(m.HeapInUse)),
		slog.String("stackInUse", formatMegabytes(m.StackInUse)),
		slog.Uint64("gcCycles", uint64(m.GCCycles)),
		slog.String("gcFraction", formatFloat(m.GCFraction*100)+"%"),
		slog.Duration("gcPause", m.LastGCPause),
	)
}

func formatMegabytes(bytes uint64) string {
	return formatFloat(float64(bytes)/(1024.0*1024.0)) + "mb"
}

func formatFloat(value float64) string {
	return strconv.FormatFloat(value, 'f', 2, 64)
}
