package main

import (
	"context"
	"fmt"
	"math/rand"
	"time"
)

// Matrix multiply benchmark: C = A x B for random n x n matrices. Both
// implementations generate their own random inputs, so the validator checks
// output shape and checksum magnitude rather than exact element equality.
//
// Output vector: [avgElement, n] where avgElement is the checksum of C
// divided by n*n.

// runMatrixNative multiplies flat row-major matrices with the classic
// i/j/k loop, accumulating into a preallocated result slice.
func runMatrixNative(_ context.Context, input any) (any, error) {
	n, ok := input.(int)
	if !ok || n <= 0 {
		return nil, fmt.Errorf("matrix size must be a positive int, got %v", input)
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	a := randomFlatMatrix(rng, n)
	b := randomFlatMatrix(rng, n)
	c := make([]float64, n*n)

	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			sum := 0.0
			for k := 0; k < n; k++ {
				sum += a[i*n+k] * b[k*n+j]
			}
			c[i*n+j] = sum
		}
	}

	checksum := 0.0
	for _, v := range c {
		checksum += v
	}

	return []float64{checksum / float64(n*n), float64(n)}, nil
}

// runMatrixManaged is the high-level counterpart: nested [][]float64 rows
// and a row-oriented inner loop, the way a first-pass implementation looks
// before anyone flattens it for cache locality.
func runMatrixManaged(_ context.Context, input any) (any, error) {
	n, ok := input.(int)
	if !ok || n <= 0 {
		return nil, fmt.Errorf("matrix size must be a positive int, got %v", input)
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	a := randomNestedMatrix(rng, n)
	b := randomNestedMatrix(rng, n)

	c := make([][]float64, n)
	for i := range c {
		row := make([]float64, n)
		for j := 0; j < n; j++ {
			sum := 0.0
			for k := 0; k < n; k++ {
				sum += a[i][k] * b[k][j]
			}
			row[j] = sum
		}
		c[i] = row
	}

	checksum := 0.0
	for _, row := range c {
		for _, v := range row {
			checksum += v
		}
	}

	return []float64{checksum / float64(n*n), float64(n)}, nil
}

func randomFlatMatrix(rng *rand.Rand, n int) []float64 {
	m := make([]float64, n*n)
	for i := range m {
		m[i] = rng.Float64() * 100.0
	}
	return m
}

func randomNestedMatrix(rng *rand.Rand, n int) [][]float64 {
	m := make([][]float64, n)
	for i := range m {
		row := make([]float64, n)
		for j := range row {
			row[j] = rng.Float64() * 100.0
		}
		m[i] = row
	}
	return m
}

// matrixValidator accepts random-input divergence: for n x n matrices of
// uniform [0,100) values the average product element concentrates tightly
// around 2500*n, so a 0.1 relative tolerance on the checksum catches a
// broken kernel without requiring shared inputs.
var matrixValidator Validator = VectorValidator{Tolerance: 0.1, WantLen: 2}
