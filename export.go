package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// JSONExporter writes one result file per algorithm in the shape downstream
// tooling already consumes: timings in milliseconds, memory in megabytes.
// The file for an algorithm is rewritten after every completed size so
// partial progress survives a crash; writes go through a temp file and
// rename so a reader never sees a half-written document.
type JSONExporter struct {
	dir     string
	env     Environment
	started time.Time
	results map[string][]*Result
}

// NewJSONExporter creates an exporter rooted at dir, creating it if needed.
func NewJSONExporter(dir string, env Environment) (*JSONExporter, error) {
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}
	return &JSONExporter{
		dir:     dir,
		env:     env,
		started: time.Now(),
		results: make(map[string][]*Result),
	}, nil
}

// exportDocument is the on-disk top-level shape.
type exportDocument struct {
	Timestamp   string            `json:"timestamp"`
	Algorithm   string            `json:"algorithm"`
	Environment exportEnvironment `json:"environment"`
	Results     []exportResult    `json:"results"`
}

type exportEnvironment struct {
	Platform string      `json:"platform"`
	Specs    exportSpecs `json:"specs"`
}

type exportSpecs struct {
	Version     string    `json:"version"`
	Platform    string    `json:"platform"`
	Arch        string    `json:"arch"`
	CPUs        []CPUInfo `json:"cpus"`
	TotalMemory uint64    `json:"totalMemory"`
	FreeMemory  uint64    `json:"freeMemory"`
}

type exportResult struct {
	Size              string            `json:"size"`
	Failed            bool              `json:"failed,omitempty"`
	Error             string            `json:"error,omitempty"`
	NativeTimes       []float64         `json:"nativeTimes"`
	ManagedTimes      []float64         `json:"managedTimes"`
	NativeStats       Summary           `json:"nativeStats"`
	ManagedStats      Summary           `json:"managedStats"`
	Speedup           float64           `json:"speedup"`
	ValidationResults ValidationOutcome `json:"validationResults"`
	MemoryDetails     exportMemory      `json:"memoryDetails"`
}

type exportMemory struct {
	Native  exportMemoryStats `json:"native"`
	Managed exportMemoryStats `json:"managed"`
}

// exportMemoryStats carries the heap-used summary normalized to megabytes.
type exportMemoryStats struct {
	MinMB    float64 `json:"minMB"`
	MaxMB    float64 `json:"maxMB"`
	MeanMB   float64 `json:"meanMB"`
	MedianMB float64 `json:"medianMB"`
}

// OnResult appends the result and rewrites the algorithm's file.
func (e *JSONExporter) OnResult(r *Result) error {
	e.results[r.Algorithm] = append(e.results[r.Algorithm], r)
	return e.writeAlgorithm(r.Algorithm)
}

// OnRunComplete rewrites every algorithm file once more. Useful after a
// driver appended failure records directly to the aggregator.
func (e *JSONExporter) OnRunComplete(run *Run) error {
	e.results = make(map[string][]*Result)
	for _, r := range run.Results {
		e.results[r.Algorithm] = append(e.results[r.Algorithm], r)
	}
	for name := range e.results {
		if err := e.writeAlgorithm(name); err != nil {
			return err
		}
	}
	return nil
}

func (e *JSONExporter) writeAlgorithm(name string) error {
	doc := exportDocument{
		Timestamp: e.started.UTC().Format(time.RFC3339),
		Algorithm: name,
		Environment: exportEnvironment{
			Platform: e.env.Platform,
			Specs: exportSpecs{
				Version:     e.env.GoVersion,
				Platform:    e.env.Platform,
				Arch:        e.env.Arch,
				CPUs:        e.env.CPUs,
				TotalMemory: e.env.TotalMemory,
				FreeMemory:  e.env.FreeMemory,
			},
		},
	}

	for _, r := range e.results[name] {
		doc.Results = append(doc.Results, exportResult{
			Size:              r.SizeLabel,
			Failed:            r.Failed,
			Error:             r.Error,
			NativeTimes:       r.Native.Times,
			ManagedTimes:      r.Managed.Times,
			NativeStats:       r.Native.Stats,
			ManagedStats:      r.Managed.Stats,
			Speedup:           r.Speedup,
			ValidationResults: r.Validation,
			MemoryDetails: exportMemory{
				Native:  toMB(r.Native.MemoryStats),
				Managed: toMB(r.Managed.MemoryStats),
			},
		})
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}

	path := filepath.Join(e.dir, e.fileName(name))
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write results: %w", err)
	}
	return os.Rename(tmpPath, path)
}

func (e *JSONExporter) fileName(algorithm string) string {
	return fmt.Sprintf("%s-%s.json", algorithm, e.started.UTC().Format("20060102-150405"))
}

const bytesPerMB = 1024 * 1024

func toMB(s Summary) exportMemoryStats {
	return exportMemoryStats{
		MinMB:    s.Min / bytesPerMB,
		MaxMB:    s.Max / bytesPerMB,
		MeanMB:   s.Mean / bytesPerMB,
		MedianMB: s.Median / bytesPerMB,
	}
}
