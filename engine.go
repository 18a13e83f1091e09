package main

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
)

// Runner executes one implementation of an algorithm. Input and output are
// opaque to the engine; only the per-algorithm validator inspects them.
type Runner func(ctx context.Context, input any) (any, error)

// Kind is a coarse grouping of the algorithms under test.
type Kind string

const (
	KindMath   Kind = "math"
	KindString Kind = "string"
)

// RunConfig describes one (algorithm, size) configuration to benchmark.
type RunConfig struct {
	Algorithm string
	Kind      Kind
	SizeLabel string
	Input     any
	Trials    int
	Native    Runner
	Managed   Runner
	Validator Validator
}

// Result is the finished record for one configuration: both timing series,
// both memory-delta series, their summaries, the speedup ratio and the
// validation outcome. Immutable once built.
type Result struct {
	Algorithm  string            `json:"algorithm"`
	Kind       Kind              `json:"kind"`
	SizeLabel  string            `json:"size"`
	StartedAt  time.Time         `json:"startedAt"`
	Trials     int               `json:"trials"`
	Failed     bool              `json:"failed"`
	Error      string            `json:"error,omitempty"`
	Native     ImplMeasurements  `json:"native"`
	Managed    ImplMeasurements  `json:"managed"`
	Speedup    float64           `json:"speedup"`
	Validation ValidationOutcome `json:"validation"`
}

// ImplMeasurements groups one implementation's series and summaries.
type ImplMeasurements struct {
	Times       []float64     `json:"times"` // milliseconds, one per trial
	Memory      []MemoryDelta `json:"memory"`
	Stats       Summary       `json:"stats"`
	MemoryStats Summary       `json:"memoryStats"` // heap-used projection, bytes
}

// Engine orchestrates the trial loop for a configuration. Trials run
// strictly sequentially; the native and managed implementations would
// contend for the same core if overlapped, invalidating the wall-clock
// comparison.
type Engine struct {
	// OnResult is invoked once per completed configuration. A failing hook
	// is logged but never discards the in-memory result.
	OnResult func(*Result) error

	logger *log.Logger
}

// NewEngine creates an engine with the given export hook (may be nil).
func NewEngine(onResult func(*Result) error, logger *log.Logger) *Engine {
	if logger == nil {
		logger = log.Default()
	}
	return &Engine{OnResult: onResult, logger: logger}
}

// RunConfiguration executes cfg.Trials paired trials and returns the
// finished result. It is fail-fast: an implementation error during any trial
// aborts the whole configuration with no partial result. Only the first
// trial's outputs are retained, for validation; later outputs are discarded
// as soon as they are timed.
func (e *Engine) RunConfiguration(ctx context.Context, cfg RunConfig) (*Result, error) {
	if cfg.Trials < 1 {
		return nil, ErrInvalidConfiguration(ErrNoTrials)
	}
	if cfg.Native == nil || cfg.Managed == nil {
		return nil, ErrInvalidConfiguration(fmt.Errorf("algorithm %q is missing an implementation", cfg.Algorithm))
	}

	result := &Result{
		Algorithm: cfg.Algorithm,
		Kind:      cfg.Kind,
		SizeLabel: cfg.SizeLabel,
		StartedAt: time.Now(),
		Trials:    cfg.Trials,
	}
	result.Native.Times = make([]float64, 0, cfg.Trials)
	result.Managed.Times = make([]float64, 0, cfg.Trials)

	for i := 0; i < cfg.Trials; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		nativeMs, nativeDelta, nativeOut, err := e.runTrial(ctx, cfg.Native, cfg.Input)
		if err != nil {
			return nil, ErrTrialFailed("native", i, err)
		}
		result.Native.Times = append(result.Native.Times, nativeMs)
		result.Native.Memory = append(result.Native.Memory, nativeDelta)

		managedMs, managedDelta, managedOut, err := e.runTrial(ctx, cfg.Managed, cfg.Input)
		if err != nil {
			return nil, ErrTrialFailed("managed", i, err)
		}
		result.Managed.Times = append(result.Managed.Times, managedMs)
		result.Managed.Memory = append(result.Managed.Memory, managedDelta)

		// Validate on the first trial only. Validation cost can dominate
		// large-input trials, and one comparison establishes correctness.
		if i == 0 {
			if cfg.Validator != nil {
				result.Validation = safeValidate(cfg.Validator, nativeOut, managedOut)
			} else {
				result.Validation = okOutcome()
			}
		}
	}

	result.Native.Stats = Summarize(result.Native.Times)
	result.Managed.Stats = Summarize(result.Managed.Times)
	result.Native.MemoryStats = Summarize(heapUsedSeries(result.Native.Memory))
	result.Managed.MemoryStats = Summarize(heapUsedSeries(result.Managed.Memory))

	// Ratio of managed mean to native mean: > 1 means the native path won.
	result.Speedup = result.Managed.Stats.Mean / result.Native.Stats.Mean

	e.export(result)
	return result, nil
}

// FailedResult builds a tagged failure record so downstream consumers can
// tell "the benchmark did not run" apart from "it ran but outputs differ".
// The engine never produces these itself; the driver records them when it
// chooses to continue a sweep past a failed configuration.
func FailedResult(cfg RunConfig, cause error) *Result {
	return &Result{
		Algorithm:  cfg.Algorithm,
		Kind:       cfg.Kind,
		SizeLabel:  cfg.SizeLabel,
		StartedAt:  time.Now(),
		Trials:     cfg.Trials,
		Failed:     true,
		Error:      cause.Error(),
		Validation: failOutcome("configuration failed before completion"),
	}
}

func (e *Engine) runTrial(ctx context.Context, run Runner, input any) (float64, MemoryDelta, any, error) {
	before := CaptureSnapshot()
	start := time.Now()
	out, err := run(ctx, input)
	elapsed := time.Since(start)
	after := CaptureSnapshot()
	if err != nil {
		return 0, MemoryDelta{}, nil, err
	}
	return float64(elapsed.Nanoseconds()) / 1e6, Diff(before, after), out, nil
}

func (e *Engine) export(result *Result) {
	if e.OnResult == nil {
		return
	}
	if err := e.OnResult(result); err != nil {
		e.logger.Error("export hook failed; result kept in memory",
			"algorithm", result.Algorithm, "size", result.SizeLabel, "err", err)
	}
}
