package tui

import (
	"time"

	"github.com/mlebl/timekit/internal/bench"
)

// ProgressMsg carries one measurement progress update into the dashboard.
type ProgressMsg struct {
	WorkloadIndex int
	Value         float64
	// Average is the mean completion fraction across all workloads.
	Average float64
	// LastSample is the latest iteration latency in nanoseconds.
	LastSample int64
}

// ProgressDoneMsg signals that the progress channel was closed.
type ProgressDoneMsg struct{}

// RunCompleteMsg carries the final results of a benchmark run.
type RunCompleteMsg struct {
	Results    []bench.Result
	ExitCode   int
	Generation uint64
}

// TickMsg drives periodic refresh of the elapsed time and system panels.
type TickMsg time.Time

// MemStatsMsg carries a runtime memory sample.
type MemStatsMsg struct {
	Alloc        uint64
	NumGC        uint32
	NumGoroutine int
}

// SysStatsMsg carries a system-wide CPU and memory sample.
type SysStatsMsg struct {
	CPUPercent float64
	MemPercent float64
}

// ContextCancelledMsg signals that the run context ended.
type ContextCancelledMsg struct {
	Err        error
	Generation uint64
}
