package main

import (
	"runtime"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/mem"
)

// CPUInfo describes one logical CPU of the benchmark host.
type CPUInfo struct {
	Model string  `json:"model"`
	Cores int32   `json:"cores"`
	Mhz   float64 `json:"mhz"`
}

// Environment is the host metadata attached once per run. Captured before
// the first trial and immutable afterwards.
type Environment struct {
	Platform    string    `json:"platform"`
	Arch        string    `json:"arch"`
	GoVersion   string    `json:"version"`
	Hostname    string    `json:"hostname,omitempty"`
	CPUs        []CPUInfo `json:"cpus"`
	TotalMemory uint64    `json:"totalMemory"`
	FreeMemory  uint64    `json:"freeMemory"`
}

// CaptureEnvironment reads host metadata. Probe failures degrade to partial
// metadata rather than failing the run; the environment is informational.
func CaptureEnvironment() Environment {
	env := Environment{
		Platform:  runtime.GOOS,
		Arch:      runtime.GOARCH,
		GoVersion: runtime.Version(),
	}

	if info, err := host.Info(); err == nil {
		env.Hostname = info.Hostname
		env.Platform = info.Platform
		if env.Platform == "" {
			env.Platform = runtime.GOOS
		}
	}

	if infos, err := cpu.Info(); err == nil {
		for _, ci := range infos {
			env.CPUs = append(env.CPUs, CPUInfo{
				Model: ci.ModelName,
				Cores: ci.Cores,
				Mhz:   ci.Mhz,
			})
		}
	}

	if vm, err := mem.VirtualMemory(); err == nil {
		env.TotalMemory = vm.Total
		env.FreeMemory = vm.Available
	}

	return env
}

// Run is the top-level container for one harness invocation: one environment
// record plus every configuration result, in completion order.
type Run struct {
	Timestamp   time.Time   `json:"timestamp"`
	Environment Environment `json:"environment"`
	Results     []*Result   `json:"results"`
}

// Aggregator collects results across configurations. Append-only; insertion
// order is the canonical (chronological) iteration order, and re-running the
// same configuration appends a second independent result.
type Aggregator struct {
	run Run

	// OnRunComplete, when set, is invoked once by Finish.
	OnRunComplete func(*Run) error
}

// NewAggregator creates an aggregator with the environment captured now.
func NewAggregator(env Environment) *Aggregator {
	return &Aggregator{
		run: Run{
			Timestamp:   time.Now(),
			Environment: env,
		},
	}
}

// Append records a completed configuration result.
func (a *Aggregator) Append(r *Result) {
	a.run.Results = append(a.run.Results, r)
}

// All returns the accumulated results in append order. The returned slice is
// the aggregator's own; callers must not mutate it.
func (a *Aggregator) All() []*Result {
	return a.run.Results
}

// Run returns the full run record for export.
func (a *Aggregator) Run() *Run {
	return &a.run
}

// Finish fires the run-complete hook, if any.
func (a *Aggregator) Finish() error {
	if a.OnRunComplete == nil {
		return nil
	}
	return a.OnRunComplete(&a.run)
}
