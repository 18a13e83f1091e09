package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func sampleResult(algorithm, size string) *Result {
	r := &Result{
		Algorithm: algorithm,
		Kind:      KindMath,
		SizeLabel: size,
		StartedAt: time.Now(),
		Trials:    2,
		Native: ImplMeasurements{
			Times:  []float64{5.0, 5.2},
			Memory: []MemoryDelta{{Valid: true, HeapUsed: 1024}, {Valid: true, HeapUsed: 2048}},
		},
		Managed: ImplMeasurements{
			Times:  []float64{15.0, 15.6},
			Memory: []MemoryDelta{{Valid: true, HeapUsed: 4096}, {Valid: true, HeapUsed: 8192}},
		},
		Validation: okOutcome(),
	}
	r.Native.Stats = Summarize(r.Native.Times)
	r.Managed.Stats = Summarize(r.Managed.Times)
	r.Native.MemoryStats = Summarize(heapUsedSeries(r.Native.Memory))
	r.Managed.MemoryStats = Summarize(heapUsedSeries(r.Managed.Memory))
	r.Speedup = r.Managed.Stats.Mean / r.Native.Stats.Mean
	return r
}

func TestJSONExporter(t *testing.T) {
	env := Environment{Platform: "linux", Arch: "amd64", GoVersion: "go1.24.0"}

	t.Run("creates the output directory", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "nested", "results")
		if _, err := NewJSONExporter(dir, env); err != nil {
			t.Fatalf("NewJSONExporter failed: %v", err)
		}
		if _, err := os.Stat(dir); err != nil {
			t.Errorf("output directory not created: %v", err)
		}
	})

	t.Run("writes one document per algorithm", func(t *testing.T) {
		dir := t.TempDir()
		exp, err := NewJSONExporter(dir, env)
		if err != nil {
			t.Fatalf("NewJSONExporter failed: %v", err)
		}

		if err := exp.OnResult(sampleResult("matrix", "64")); err != nil {
			t.Fatalf("OnResult failed: %v", err)
		}
		if err := exp.OnResult(sampleResult("matrix", "128")); err != nil {
			t.Fatalf("OnResult failed: %v", err)
		}

		entries, err := os.ReadDir(dir)
		if err != nil {
			t.Fatal(err)
		}
		if len(entries) != 1 {
			t.Fatalf("got %d files, want 1", len(entries))
		}
		name := entries[0].Name()
		if !strings.HasPrefix(name, "matrix-") || !strings.HasSuffix(name, ".json") {
			t.Errorf("file name = %q, want matrix-<timestamp>.json", name)
		}

		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			t.Fatal(err)
		}
		var doc exportDocument
		if err := json.Unmarshal(data, &doc); err != nil {
			t.Fatalf("document is not valid JSON: %v", err)
		}

		if doc.Algorithm != "matrix" {
			t.Errorf("Algorithm = %q, want matrix", doc.Algorithm)
		}
		if doc.Environment.Specs.Arch != "amd64" {
			t.Errorf("Specs.Arch = %q, want amd64", doc.Environment.Specs.Arch)
		}
		if _, err := time.Parse(time.RFC3339, doc.Timestamp); err != nil {
			t.Errorf("Timestamp %q is not RFC3339: %v", doc.Timestamp, err)
		}
		if len(doc.Results) != 2 {
			t.Fatalf("got %d results, want 2", len(doc.Results))
		}
		if doc.Results[0].Size != "64" || doc.Results[1].Size != "128" {
			t.Errorf("result sizes = %q/%q, want 64/128", doc.Results[0].Size, doc.Results[1].Size)
		}
		if doc.Results[0].Speedup <= 1 {
			t.Errorf("Speedup = %v, want > 1 for the sample fixture", doc.Results[0].Speedup)
		}
		if len(doc.Results[0].NativeTimes) != 2 {
			t.Errorf("NativeTimes = %v, want 2 samples", doc.Results[0].NativeTimes)
		}
	})

	t.Run("memory details are reported in megabytes", func(t *testing.T) {
		dir := t.TempDir()
		exp, err := NewJSONExporter(dir, env)
		if err != nil {
			t.Fatal(err)
		}

		r := sampleResult("fft", "1024")
		r.Native.MemoryStats = Summary{Min: bytesPerMB, Max: 4 * bytesPerMB, Mean: 2 * bytesPerMB, Median: 2 * bytesPerMB}
		if err := exp.OnResult(r); err != nil {
			t.Fatal(err)
		}

		entries, _ := os.ReadDir(dir)
		data, err := os.ReadFile(filepath.Join(dir, entries[0].Name()))
		if err != nil {
			t.Fatal(err)
		}
		var doc exportDocument
		if err := json.Unmarshal(data, &doc); err != nil {
			t.Fatal(err)
		}

		native := doc.Results[0].MemoryDetails.Native
		if native.MinMB != 1 || native.MaxMB != 4 || native.MeanMB != 2 {
			t.Errorf("native memory MB = %+v, want min 1, max 4, mean 2", native)
		}
	})

	t.Run("failed results carry the error", func(t *testing.T) {
		dir := t.TempDir()
		exp, err := NewJSONExporter(dir, env)
		if err != nil {
			t.Fatal(err)
		}

		failed := FailedResult(RunConfig{Algorithm: "gradient", SizeLabel: "large"}, os.ErrDeadlineExceeded)
		if err := exp.OnResult(failed); err != nil {
			t.Fatal(err)
		}

		entries, _ := os.ReadDir(dir)
		data, _ := os.ReadFile(filepath.Join(dir, entries[0].Name()))
		var doc exportDocument
		if err := json.Unmarshal(data, &doc); err != nil {
			t.Fatal(err)
		}
		if !doc.Results[0].Failed || doc.Results[0].Error == "" {
			t.Errorf("failed result = %+v, want failed flag and error text", doc.Results[0])
		}
	})

	t.Run("run-complete rebuild covers every algorithm", func(t *testing.T) {
		dir := t.TempDir()
		exp, err := NewJSONExporter(dir, env)
		if err != nil {
			t.Fatal(err)
		}

		run := &Run{
			Timestamp:   time.Now(),
			Environment: env,
			Results: []*Result{
				sampleResult("matrix", "64"),
				sampleResult("fft", "1024"),
			},
		}
		if err := exp.OnRunComplete(run); err != nil {
			t.Fatalf("OnRunComplete failed: %v", err)
		}

		entries, err := os.ReadDir(dir)
		if err != nil {
			t.Fatal(err)
		}
		if len(entries) != 2 {
			t.Errorf("got %d files, want one per algorithm", len(entries))
		}
	})

	t.Run("no temp files left behind", func(t *testing.T) {
		dir := t.TempDir()
		exp, err := NewJSONExporter(dir, env)
		if err != nil {
			t.Fatal(err)
		}
		if err := exp.OnResult(sampleResult("csv", "1")); err != nil {
			t.Fatal(err)
		}

		entries, _ := os.ReadDir(dir)
		for _, e := range entries {
			if strings.HasSuffix(e.Name(), ".tmp") {
				t.Errorf("temp file %q left behind", e.Name())
			}
		}
	})
}
