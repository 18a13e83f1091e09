package main

import (
	"context"
	"fmt"
	"math"
)

// Numeric integration benchmark: trapezoidal and Simpson's rule over
// f(x) = (x+1)^2 on [0,1], whose analytic integral is 7/3.
//
// Output vector: [trapezoid, simpson, analytic, trapezoidError].

func integrand(x float64) float64 {
	return x*x + 2.0*x + 1.0
}

// analyticIntegral is the closed form of the test integrand over [a,b].
func analyticIntegral(a, b float64) float64 {
	upper := (b + 1.0) * (b + 1.0) * (b + 1.0)
	lower := (a + 1.0) * (a + 1.0) * (a + 1.0)
	return (upper - lower) / 3.0
}

// runIntegrationNative evaluates both quadrature rules with inlined loops.
func runIntegrationNative(_ context.Context, input any) (any, error) {
	n, ok := input.(int)
	if !ok || n <= 0 {
		return nil, fmt.Errorf("integration step count must be a positive int, got %v", input)
	}

	a, b := 0.0, 1.0
	h := (b - a) / float64(n)

	trap := 0.5 * (integrand(a) + integrand(b))
	for i := 1; i < n; i++ {
		trap += integrand(a + float64(i)*h)
	}
	trap *= h

	// Simpson's rule needs an even interval count
	sn := n
	if sn%2 != 0 {
		sn--
	}
	sh := (b - a) / float64(sn)
	simpson := integrand(a) + integrand(b)
	for i := 1; i < sn; i += 2 {
		simpson += 4.0 * integrand(a+float64(i)*sh)
	}
	for i := 2; i < sn; i += 2 {
		simpson += 2.0 * integrand(a+float64(i)*sh)
	}
	simpson *= sh / 3.0

	analytic := analyticIntegral(a, b)
	return []float64{trap, simpson, analytic, math.Abs(trap - analytic)}, nil
}

// runIntegrationManaged expresses the same rules through a weighted
// quadrature helper taking the integrand as a closure.
func runIntegrationManaged(_ context.Context, input any) (any, error) {
	n, ok := input.(int)
	if !ok || n <= 0 {
		return nil, fmt.Errorf("integration step count must be a positive int, got %v", input)
	}

	a, b := 0.0, 1.0
	trap := quadrature(integrand, a, b, n, trapezoidWeight, 1.0)
	sn := n
	if sn%2 != 0 {
		sn--
	}
	simpson := quadrature(integrand, a, b, sn, simpsonWeight, 1.0/3.0)

	analytic := analyticIntegral(a, b)
	return []float64{trap, simpson, analytic, math.Abs(trap - analytic)}, nil
}

// quadrature sums weight(i,n)*f(x_i) over n uniform steps and scales the
// total by h*scale.
func quadrature(f func(float64) float64, a, b float64, n int, weight func(i, n int) float64, scale float64) float64 {
	h := (b - a) / float64(n)
	sum := 0.0
	for i := 0; i <= n; i++ {
		sum += weight(i, n) * f(a+float64(i)*h)
	}
	return sum * h * scale
}

func trapezoidWeight(i, n int) float64 {
	if i == 0 || i == n {
		return 0.5
	}
	return 1.0
}

func simpsonWeight(i, n int) float64 {
	switch {
	case i == 0 || i == n:
		return 1.0
	case i%2 == 1:
		return 4.0
	default:
		return 2.0
	}
}

// integrationValidator holds the quadrature values to a tight relative
// tolerance. The trailing truncation-error field is compared absolutely:
// both sides sit within float rounding of the same tiny difference, so a
// relative comparison there would amplify noise into false mismatches.
var integrationValidator Validator = ValidatorFunc(func(native, managed any) ValidationOutcome {
	outcome := (VectorValidator{Tolerance: 1e-10, WantLen: 4}).Validate(
		truncateVector(native, 3), truncateVector(managed, 3))
	if !outcome.Success {
		return outcome
	}

	nVec := native.([]float64)
	mVec := managed.([]float64)
	if len(nVec) >= 4 && len(mVec) >= 4 && math.Abs(nVec[3]-mVec[3]) > 1e-9 {
		return failOutcome(fmt.Sprintf("index 3: truncation error native %g vs managed %g differs by more than 1e-9",
			nVec[3], mVec[3]))
	}
	return outcome
})

// truncateVector returns the first k elements when the value is a []float64
// of at least that length, otherwise the value unchanged so the inner
// validator reports the shape problem.
func truncateVector(v any, k int) any {
	vec, ok := v.([]float64)
	if !ok || len(vec) < k {
		return v
	}
	return vec[:k]
}
