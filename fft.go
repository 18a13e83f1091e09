package main

import (
	"context"
	"fmt"
	"math"
	"math/cmplx"
)

// FFT benchmark: radix-2 transform of a deterministic synthetic signal
// (5, 10 and 20 Hz sine components). The size must be a power of two.
//
// Output vector: [maxMagnitude, totalEnergy, avgEnergy, peakFrequency].

// runFFTNative works on an interleaved real/imag []float64 buffer with
// bit-reversal and iterative butterflies, accumulating twiddle factors by
// repeated multiplication.
func runFFTNative(_ context.Context, input any) (any, error) {
	n, err := fftSize(input)
	if err != nil {
		return nil, err
	}

	data := make([]float64, 2*n)
	for i := 0; i < n; i++ {
		data[2*i] = syntheticSample(i, n)
	}

	bitReverseInterleaved(data, n)

	for length := 2; length <= n; length *= 2 {
		angle := -2.0 * math.Pi / float64(length)
		wlenRe, wlenIm := math.Cos(angle), math.Sin(angle)

		for i := 0; i < n; i += length {
			wRe, wIm := 1.0, 0.0
			for j := 0; j < length/2; j++ {
				u := i + j
				v := i + j + length/2

				uRe, uIm := data[2*u], data[2*u+1]
				vRe, vIm := data[2*v], data[2*v+1]

				tRe := vRe*wRe - vIm*wIm
				tIm := vRe*wIm + vIm*wRe

				data[2*u], data[2*u+1] = uRe+tRe, uIm+tIm
				data[2*v], data[2*v+1] = uRe-tRe, uIm-tIm

				wRe, wIm = wRe*wlenRe-wIm*wlenIm, wRe*wlenIm+wIm*wlenRe
			}
		}
	}

	return fftSummaryInterleaved(data, n), nil
}

// runFFTManaged uses []complex128 and cmplx, recomputing each twiddle
// factor exactly instead of accumulating it.
func runFFTManaged(_ context.Context, input any) (any, error) {
	n, err := fftSize(input)
	if err != nil {
		return nil, err
	}

	data := make([]complex128, n)
	for i := 0; i < n; i++ {
		data[i] = complex(syntheticSample(i, n), 0)
	}

	// Bit-reverse permutation
	for i, j := 0, 0; i < n; i++ {
		if i < j {
			data[i], data[j] = data[j], data[i]
		}
		k := n / 2
		for k > 0 && k <= j {
			j -= k
			k /= 2
		}
		j += k
	}

	for length := 2; length <= n; length *= 2 {
		angle := -2.0 * math.Pi / float64(length)
		for i := 0; i < n; i += length {
			for j := 0; j < length/2; j++ {
				w := cmplx.Exp(complex(0, angle*float64(j)))
				u := data[i+j]
				t := data[i+j+length/2] * w
				data[i+j] = u + t
				data[i+j+length/2] = u - t
			}
		}
	}

	maxMagnitude := 0.0
	totalEnergy := 0.0
	peakFrequency := 0
	for i, v := range data {
		magnitude := cmplx.Abs(v)
		totalEnergy += magnitude * magnitude
		// Real input mirrors the upper half; only search the lower bins so
		// rounding cannot flip the peak to a conjugate image
		if i < n/2 && magnitude > maxMagnitude {
			maxMagnitude = magnitude
			peakFrequency = i
		}
	}

	return []float64{maxMagnitude, totalEnergy, totalEnergy / float64(n), float64(peakFrequency)}, nil
}

func fftSize(input any) (int, error) {
	n, ok := input.(int)
	if !ok || n <= 0 || n&(n-1) != 0 {
		return 0, fmt.Errorf("fft size must be a positive power of two, got %v", input)
	}
	return n, nil
}

// syntheticSample is the i-th sample of the shared test signal: a mix of
// 5, 10 and 20 Hz sines over one second of samples.
func syntheticSample(i, n int) float64 {
	t := float64(i) / float64(n)
	return math.Sin(2.0*math.Pi*5.0*t) +
		0.5*math.Sin(2.0*math.Pi*10.0*t) +
		0.3*math.Sin(2.0*math.Pi*20.0*t)
}

func bitReverseInterleaved(data []float64, n int) {
	j := 0
	for i := 0; i < n; i++ {
		if i < j {
			data[2*i], data[2*j] = data[2*j], data[2*i]
			data[2*i+1], data[2*j+1] = data[2*j+1], data[2*i+1]
		}
		k := n / 2
		for k > 0 && k <= j {
			j -= k
			k /= 2
		}
		j += k
	}
}

func fftSummaryInterleaved(data []float64, n int) []float64 {
	maxMagnitude := 0.0
	totalEnergy := 0.0
	peakFrequency := 0
	for i := 0; i < n; i++ {
		re, im := data[2*i], data[2*i+1]
		magnitude := math.Sqrt(re*re + im*im)
		totalEnergy += magnitude * magnitude
		if i < n/2 && magnitude > maxMagnitude {
			maxMagnitude = magnitude
			peakFrequency = i
		}
	}
	return []float64{maxMagnitude, totalEnergy, totalEnergy / float64(n), float64(peakFrequency)}
}

// Both paths are deterministic over the same signal; only float rounding
// from the differing twiddle computation separates them.
var fftValidator Validator = VectorValidator{Tolerance: 1e-10, WantLen: 4}
