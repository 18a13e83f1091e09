package main

import (
	"math"
	"sort"
)

// Summary holds the statistical summary of a series of samples
type Summary struct {
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	StdDev float64 `json:"stdDev"`
	P95    float64 `json:"p95"`
	P99    float64 `json:"p99"`
}

// Summarize computes summary statistics over samples. The input is never
// mutated; percentiles are taken from a sorted copy using nearest-rank
// indexing (floor(N*p)), the same estimator downstream consumers of the
// results database expect. Callers must guarantee len(samples) >= 1.
func Summarize(samples []float64) Summary {
	sorted := make([]float64, len(samples))
	copy(sorted, samples)
	sort.Float64s(sorted)

	sum := 0.0
	for _, s := range samples {
		sum += s
	}
	mean := sum / float64(len(samples))

	variance := 0.0
	for _, s := range samples {
		d := s - mean
		variance += d * d
	}
	// Population standard deviation (divide by N, not N-1)
	variance /= float64(len(samples))

	return Summary{
		Min:    sorted[0],
		Max:    sorted[len(sorted)-1],
		Mean:   mean,
		Median: nearestRank(sorted, 0.5),
		StdDev: math.Sqrt(variance),
		P95:    nearestRank(sorted, 0.95),
		P99:    nearestRank(sorted, 0.99),
	}
}

// nearestRank returns the element at index floor(N*p) of a sorted slice.
// Note: for p=0.5 and even N this is the upper-middle element, not the
// average of the two middle elements. That tie-break is load-bearing for
// comparability with previously recorded runs.
func nearestRank(sorted []float64, p float64) float64 {
	idx := int(math.Floor(float64(len(sorted)) * p))
	if idx >= len(sorted) {
		idx = len(sorted) - 1
	}
	return sorted[idx]
}
