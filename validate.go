package main

import (
	"fmt"
	"math"
)

// maxDiscrepancies caps the discrepancy list so a badly diverged output
// cannot bloat the stored result.
const maxDiscrepancies = 5

// relEpsilon guards the relative-error denominator against division by zero.
const relEpsilon = 1e-10

// ValidationOutcome reports whether the two implementations produced
// equivalent output for the same input, with up to maxDiscrepancies
// human-readable mismatch descriptions.
type ValidationOutcome struct {
	Success       bool     `json:"success"`
	Discrepancies []string `json:"discrepancies"`
}

// Validator compares the native and managed outputs of one algorithm.
// Implementations must be pure and synchronous; equivalence criteria differ
// per algorithm (tight tolerance for deterministic numerics, loose for
// stochastic optimization, count-based for parsers).
type Validator interface {
	Validate(native, managed any) ValidationOutcome
}

// ValidatorFunc adapts a plain function to the Validator interface.
type ValidatorFunc func(native, managed any) ValidationOutcome

func (f ValidatorFunc) Validate(native, managed any) ValidationOutcome {
	return f(native, managed)
}

// safeValidate runs a validator, converting a panic or an absent validator
// result into a validation failure instead of crashing the run.
func safeValidate(v Validator, native, managed any) (outcome ValidationOutcome) {
	defer func() {
		if r := recover(); r != nil {
			outcome = failOutcome(fmt.Sprintf("validator panicked: %v", r))
		}
	}()
	if v == nil {
		return failOutcome("no validator supplied")
	}
	return v.Validate(native, managed)
}

func failOutcome(discrepancies ...string) ValidationOutcome {
	return ValidationOutcome{Success: false, Discrepancies: discrepancies}
}

func okOutcome() ValidationOutcome {
	return ValidationOutcome{Success: true, Discrepancies: []string{}}
}

// relativeError computes |a-b| / max(|a|, |b|, relEpsilon).
func relativeError(a, b float64) float64 {
	denom := math.Max(math.Abs(a), math.Abs(b))
	if denom < relEpsilon {
		denom = relEpsilon
	}
	return math.Abs(a-b) / denom
}

// VectorValidator compares two []float64 outputs element-wise with a single
// relative tolerance. Most algorithm outputs are small summary vectors, so
// this covers the common case; algorithms with mixed per-field tolerances
// wrap it or supply their own ValidatorFunc.
type VectorValidator struct {
	Tolerance float64
	// WantLen, when non-zero, additionally enforces the output length.
	WantLen int
}

func (v VectorValidator) Validate(native, managed any) ValidationOutcome {
	nVec, ok := native.([]float64)
	if !ok || nVec == nil {
		return failOutcome("native output is missing or not a numeric vector")
	}
	mVec, ok := managed.([]float64)
	if !ok || mVec == nil {
		return failOutcome("managed output is missing or not a numeric vector")
	}

	var discrepancies []string
	if len(nVec) != len(mVec) {
		discrepancies = append(discrepancies,
			fmt.Sprintf("length mismatch: native %d vs managed %d", len(nVec), len(mVec)))
	}
	if v.WantLen > 0 && len(nVec) != v.WantLen {
		discrepancies = append(discrepancies,
			fmt.Sprintf("unexpected output length %d, want %d", len(nVec), v.WantLen))
	}

	n := len(nVec)
	if len(mVec) < n {
		n = len(mVec)
	}
	for i := 0; i < n && len(discrepancies) < maxDiscrepancies; i++ {
		if err := relativeError(nVec[i], mVec[i]); err > v.Tolerance {
			discrepancies = append(discrepancies,
				fmt.Sprintf("index %d: native %g vs managed %g (relative error %.3g > %.3g)",
					i, nVec[i], mVec[i], err, v.Tolerance))
		}
	}

	if len(discrepancies) > maxDiscrepancies {
		discrepancies = discrepancies[:maxDiscrepancies]
	}
	if len(discrepancies) > 0 {
		return ValidationOutcome{Success: false, Discrepancies: discrepancies}
	}
	return okOutcome()
}
