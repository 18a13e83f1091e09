package main

import (
	"fmt"
	"os"
)

// Version information (set via ldflags during build)
var (
	Version   = "dev"
	BuildDate = "unknown"
)

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "-v":
			fmt.Printf("pairbench %s (built %s)\n", Version, BuildDate)
			fmt.Println("Paired native/managed algorithm benchmarking with cross-validation")
			os.Exit(0)
		case "--help", "-h":
			printHelp()
			os.Exit(0)
		case "--list", "-l":
			printAlgorithms()
			os.Exit(0)
		case "--batch", "-b":
			if err := RunBatch(LoadConfig(), os.Args[2:]); err != nil {
				fmt.Fprint(os.Stderr, FormatUserError(err))
				os.Exit(1)
			}
			os.Exit(0)
		}
	}

	// Default: the interactive TUI
	if err := RunTUI(LoadConfig()); err != nil {
		fmt.Fprint(os.Stderr, FormatUserError(err))
		os.Exit(1)
	}
}

func printAlgorithms() {
	fmt.Println("Available algorithms:")
	for _, alg := range Algorithms() {
		sizes := ""
		for i, s := range alg.Sizes {
			if i > 0 {
				sizes += ", "
			}
			sizes += s.Label
		}
		fmt.Printf("  %-12s %s (%s) [%s]\n", alg.Name, alg.Description, alg.Kind, sizes)
	}
}

func printHelp() {
	fmt.Println(`pairbench - paired native/managed algorithm benchmarking

Runs each algorithm through two implementations (an optimized "native"
kernel and a high-level "managed" one), times repeated trials, validates
that both produce equivalent output, and persists the results.

Usage:
  pairbench [flags]

Flags:
  -h, --help               Show this help message
  -v, --version            Show version information
  -l, --list               List available algorithms and sizes
  -b, --batch [name ...]   Run headless; optional algorithm names limit the sweep

Interactive mode (default):
  Arrow keys select an algorithm and size, enter runs it, q quits.

Environment Variables:
  PAIRBENCH_TRIALS       Trials per configuration (default: 10)
  PAIRBENCH_OUT          JSON output directory (default: ~/.pairbench/results, "" disables)
  PAIRBENCH_DB           SQLite database path (default: ~/.pairbench/results.db, "" disables)
  PAIRBENCH_ALGORITHMS   Comma-separated algorithm filter for batch mode

Example:
  $ PAIRBENCH_TRIALS=20 pairbench --batch fft matrix
  12:04PM INFO pairbench: starting benchmark run platform=linux arch=amd64 cpus=1 trials=20
  12:04PM INFO pairbench: configuration done algorithm=fft size=small speedup=2.41x validated=true

For more information: https://github.com/3rg0n/pairbench`)
}
