// Package sysmon samples system-wide resource usage and describes the host,
// so benchmark output can record the conditions it was measured under.
package sysmon

import (
	"runtime"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/mem"
)

// Stats holds a single snapshot of system-wide resource usage.
type Stats struct {
	CPUPercent float64 // 0.0 .. 100.0
	MemPercent float64 // 0.0 .. 100.0
}

// Sample collects a single system-wide CPU and memory snapshot.
// CPU uses interval=0 (delta since last call). Returns zero values on error.
func Sample() Stats {
	var s Stats
	cpuPcts, err := cpu.Percent(0, false)
	if err == nil && len(cpuPcts) > 0 {
		s.CPUPercent = cpuPcts[0]
	}
	if vm, err := mem.VirtualMemory(); err == nil {
		s.MemPercent = vm.UsedPercent
	}
	return s
}

// Host describes the machine a benchmark runs on.
type Host struct {
	// CPUModel is the CPU model name, or empty when unavailable.
	CPUModel string
	// LogicalCores is the number of logical processors.
	LogicalCores int
}

// DescribeHost returns a best-effort description of the current machine.
// Fields that cannot be determined are left at their zero values, except
// LogicalCores which falls back to runtime.NumCPU.
func DescribeHost() Host {
	h := Host{LogicalCores: runtime.NumCPU()}
	if infos, err := cpu.Info(); err == nil && len(infos) > 0 {
		h.CPUModel = infos[0].ModelName
	}
	if n, err := cpu.Counts(true); err == nil && n > 0 {
		h.LogicalCores = n
	}
	return h
}
