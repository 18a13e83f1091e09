package main

import "fmt"

// SizePreset pairs a human-readable size label with the opaque input handed
// to both runners.
type SizePreset struct {
	Label string
	Input any
}

// Algorithm bundles the paired implementations, the validator and the size
// sweep for one benchmark.
type Algorithm struct {
	Name        string
	Kind        Kind
	Description string
	Native      Runner
	Managed     Runner
	Validator   Validator
	Sizes       []SizePreset
}

// Algorithms returns the benchmark suite in presentation order.
func Algorithms() []Algorithm {
	return []Algorithm{
		{
			Name:        "matrix",
			Kind:        KindMath,
			Description: "Dense n x n matrix multiplication",
			Native:      runMatrixNative,
			Managed:     runMatrixManaged,
			Validator:   matrixValidator,
			Sizes: []SizePreset{
				{Label: "small", Input: 64},
				{Label: "medium", Input: 128},
				{Label: "large", Input: 256},
			},
		},
		{
			Name:        "fft",
			Kind:        KindMath,
			Description: "Radix-2 FFT of a synthetic signal",
			Native:      runFFTNative,
			Managed:     runFFTManaged,
			Validator:   fftValidator,
			Sizes: []SizePreset{
				{Label: "small", Input: 1024},
				{Label: "medium", Input: 4096},
				{Label: "large", Input: 16384},
			},
		},
		{
			Name:        "integration",
			Kind:        KindMath,
			Description: "Trapezoidal and Simpson quadrature of (x+1)^2",
			Native:      runIntegrationNative,
			Managed:     runIntegrationManaged,
			Validator:   integrationValidator,
			Sizes: []SizePreset{
				{Label: "small", Input: 100_000},
				{Label: "medium", Input: 1_000_000},
				{Label: "large", Input: 10_000_000},
			},
		},
		{
			Name:        "gradient",
			Kind:        KindMath,
			Description: "Gradient descent on the Rosenbrock function",
			Native:      runGradientNative,
			Managed:     runGradientManaged,
			Validator:   gradientValidator,
			Sizes: []SizePreset{
				{Label: "small", Input: GradientInput{Params: 10, Iterations: 1000}},
				{Label: "medium", Input: GradientInput{Params: 50, Iterations: 5000}},
				{Label: "large", Input: GradientInput{Params: 100, Iterations: 10000}},
			},
		},
		{
			Name:        "jsonparse",
			Kind:        KindString,
			Description: "Synthetic JSON record array parsing",
			Native:      runJSONNative,
			Managed:     runJSONManaged,
			Validator:   jsonValidator,
			Sizes: []SizePreset{
				{Label: "small", Input: 1},
				{Label: "medium", Input: 5},
				{Label: "large", Input: 10},
			},
		},
		{
			Name:        "csvparse",
			Kind:        KindString,
			Description: "20-column synthetic CSV parsing",
			Native:      runCSVNative,
			Managed:     runCSVManaged,
			Validator:   csvValidator,
			Sizes: []SizePreset{
				{Label: "small", Input: 1},
				{Label: "medium", Input: 5},
				{Label: "large", Input: 10},
			},
		},
	}
}

// FindAlgorithm looks an algorithm up by name.
func FindAlgorithm(name string) (Algorithm, error) {
	for _, alg := range Algorithms() {
		if alg.Name == name {
			return alg, nil
		}
	}
	return Algorithm{}, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, name)
}

// FindSize resolves a size label for an algorithm.
func (a Algorithm) FindSize(label string) (SizePreset, error) {
	for _, s := range a.Sizes {
		if s.Label == label {
			return s, nil
		}
	}
	return SizePreset{}, fmt.Errorf("%w: %q for algorithm %q", ErrUnknownSize, label, a.Name)
}

// Configuration builds the engine RunConfig for one (algorithm, size) pair.
func (a Algorithm) Configuration(size SizePreset, trials int) RunConfig {
	return RunConfig{
		Algorithm: a.Name,
		Kind:      a.Kind,
		SizeLabel: size.Label,
		Input:     size.Input,
		Trials:    trials,
		Native:    a.Native,
		Managed:   a.Managed,
		Validator: a.Validator,
	}
}
