package main

import (
	"math"
	"testing"
)

func TestSummarize(t *testing.T) {
	t.Run("basic invariants", func(t *testing.T) {
		s := Summarize([]float64{4, 1, 3, 2, 5})

		if s.Min != 1 {
			t.Errorf("Min = %v, want 1", s.Min)
		}
		if s.Max != 5 {
			t.Errorf("Max = %v, want 5", s.Max)
		}
		if s.Mean != 3 {
			t.Errorf("Mean = %v, want 3", s.Mean)
		}
		if s.Min > s.Mean || s.Mean > s.Max {
			t.Errorf("expected Min <= Mean <= Max, got %v <= %v <= %v", s.Min, s.Mean, s.Max)
		}
		if s.Min > s.Median || s.Median > s.Max {
			t.Errorf("expected Min <= Median <= Max, got %v <= %v <= %v", s.Min, s.Median, s.Max)
		}
	})

	t.Run("median is upper-middle for even length", func(t *testing.T) {
		// floor(4/2) = index 2 of the sorted sequence, not the average of
		// the two middle elements
		s := Summarize([]float64{1, 2, 3, 4})
		if s.Median != 3 {
			t.Errorf("Median = %v, want 3", s.Median)
		}
	})

	t.Run("median for odd length", func(t *testing.T) {
		s := Summarize([]float64{5, 1, 3})
		if s.Median != 3 {
			t.Errorf("Median = %v, want 3", s.Median)
		}
	})

	t.Run("identical values", func(t *testing.T) {
		s := Summarize([]float64{7, 7, 7, 7})
		if s.StdDev != 0 {
			t.Errorf("StdDev = %v, want 0", s.StdDev)
		}
		if s.Mean != 7 || s.Median != 7 || s.Min != 7 || s.Max != 7 {
			t.Errorf("expected all summary values 7, got %+v", s)
		}
	})

	t.Run("population standard deviation", func(t *testing.T) {
		// Variance of [2,4,4,4,5,5,7,9] with divisor N is exactly 4
		s := Summarize([]float64{2, 4, 4, 4, 5, 5, 7, 9})
		if math.Abs(s.StdDev-2) > 1e-12 {
			t.Errorf("StdDev = %v, want 2", s.StdDev)
		}
	})

	t.Run("percentiles use floor nearest-rank indexing", func(t *testing.T) {
		samples := make([]float64, 100)
		for i := range samples {
			samples[i] = float64(i + 1) // 1..100 already sorted
		}
		s := Summarize(samples)

		// floor(100*0.95) = index 95 -> value 96
		if s.P95 != 96 {
			t.Errorf("P95 = %v, want 96", s.P95)
		}
		// floor(100*0.99) = index 99 -> value 100
		if s.P99 != 100 {
			t.Errorf("P99 = %v, want 100", s.P99)
		}
	})

	t.Run("single sample", func(t *testing.T) {
		s := Summarize([]float64{42})
		if s.Min != 42 || s.Max != 42 || s.Mean != 42 || s.Median != 42 || s.P95 != 42 || s.P99 != 42 {
			t.Errorf("expected all summary values 42, got %+v", s)
		}
		if s.StdDev != 0 {
			t.Errorf("StdDev = %v, want 0", s.StdDev)
		}
	})

	t.Run("input is not mutated", func(t *testing.T) {
		samples := []float64{3, 1, 2}
		Summarize(samples)
		if samples[0] != 3 || samples[1] != 1 || samples[2] != 2 {
			t.Errorf("input mutated: %v", samples)
		}
	})
}
