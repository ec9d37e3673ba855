// Package metrics reads Go runtime statistics so a run can report the
// allocation pressure its workloads generated.
package metrics

import "runtime"

// MemorySnapshot holds a point-in-time memory reading.
type MemorySnapshot struct {
	HeapAlloc    uint64 // bytes in use by the application
	TotalAlloc   uint64 // cumulative bytes allocated
	NumGC        uint32 // number of completed GC cycles
	PauseTotalNs uint64 // cumulative GC pause time
}

// MemoryCollector reads runtime memory statistics.
type MemoryCollector struct{}

// NewMemoryCollector creates a new memory collector.
func NewMemoryCollector() *MemoryCollector {
	return &MemoryCollector{}
}

// Snapshot reads current memory statistics.
func (mc *MemoryCollector) Snapshot() MemorySnapshot {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return MemorySnapshot{
		HeapAlloc:    m.HeapAlloc,
		TotalAlloc:   m.TotalAlloc,
		NumGC:        m.NumGC,
		PauseTotalNs: m.PauseTotalNs,
	}
}

// Delta describes what the runtime did between two snapshots.
type Delta struct {
	AllocatedBytes uint64
	GCCycles       uint32
	GCPauseNs      uint64
}

// Since computes the delta from an earlier snapshot to this one.
func (s MemorySnapshot) Since(prev MemorySnapshot) Delta {
	return Delta{
		AllocatedBytes: s.TotalAlloc - prev.TotalAlloc,
		GCCycles:       s.NumGC - prev.NumGC,
		GCPauseNs:      s.PauseTotalNs - prev.PauseTotalNs,
	}
}
