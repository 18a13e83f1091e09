package main

import (
	"os"
	"runtime"

	"github.com/shirou/gopsutil/v3/process"
)

// MemorySnapshot is a point-in-time view of the process's memory counters,
// in bytes. Valid is false when the host exposed no usable counters; a delta
// involving an invalid snapshot is itself invalid rather than zero.
type MemorySnapshot struct {
	Valid     bool  `json:"valid"`
	HeapUsed  int64 `json:"heapUsed"`
	HeapTotal int64 `json:"heapTotal"`
	External  int64 `json:"external"`
	RSS       int64 `json:"rss"`
}

// MemoryDelta is the field-by-field difference between two snapshots
// (after minus before). Negative values are possible when the runtime
// returns memory between snapshots.
type MemoryDelta struct {
	Valid     bool  `json:"valid"`
	HeapUsed  int64 `json:"heapUsed"`
	HeapTotal int64 `json:"heapTotal"`
	External  int64 `json:"external"`
	RSS       int64 `json:"rss"`
}

// selfProc is resolved once; gopsutil process lookups are not free and the
// PID never changes.
var selfProc, selfProcErr = process.NewProcess(int32(os.Getpid()))

// CaptureSnapshot reads the current memory counters. Heap figures come from
// the runtime, resident set size from the OS via gopsutil. If the OS probe
// fails (restricted /proc, unsupported platform) the RSS field is taken from
// the runtime's Sys counter so the snapshot stays usable.
func CaptureSnapshot() MemorySnapshot {
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)

	snap := MemorySnapshot{
		Valid:     true,
		HeapUsed:  int64(ms.HeapAlloc),
		HeapTotal: int64(ms.HeapSys),
		External:  int64(ms.Sys - ms.HeapSys),
		RSS:       int64(ms.Sys),
	}

	if selfProcErr == nil {
		if info, err := selfProc.MemoryInfo(); err == nil {
			snap.RSS = int64(info.RSS)
		}
	}

	return snap
}

// UnavailableSnapshot returns the sentinel snapshot for hosts without
// memory introspection.
func UnavailableSnapshot() MemorySnapshot {
	return MemorySnapshot{}
}

// Diff subtracts before from after. Invalidity propagates: if either side
// is the unavailable sentinel, so is the result.
func Diff(before, after MemorySnapshot) MemoryDelta {
	if !before.Valid || !after.Valid {
		return MemoryDelta{}
	}
	return MemoryDelta{
		Valid:     true,
		HeapUsed:  after.HeapUsed - before.HeapUsed,
		HeapTotal: after.HeapTotal - before.HeapTotal,
		External:  after.External - before.External,
		RSS:       after.RSS - before.RSS,
	}
}

// heapUsedSeries projects the heap-used field out of a delta series for
// statistical summary. Invalid deltas contribute zero; they are rare enough
// that skewing the summary beats failing the whole configuration.
func heapUsedSeries(deltas []MemoryDelta) []float64 {
	series := make([]float64, len(deltas))
	for i, d := range deltas {
		if d.Valid {
			series[i] = float64(d.HeapUsed)
		}
	}
	return series
}
