package main

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Config holds runtime configuration
type Config struct {
	// Trial settings
	Trials int // Trials per (algorithm, size) configuration (default: 10)

	// Output settings
	OutputDir string // Directory for JSON result files ("" disables JSON export)
	DBPath    string // SQLite database path ("" disables the database exporter)

	// Algorithm selection
	Algorithms []string // Algorithm names to run in batch mode (empty = all)
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	homeDir, _ := os.UserHomeDir()
	pairbenchDir := filepath.Join(homeDir, ".pairbench")

	return &Config{
		Trials:    10,
		OutputDir: filepath.Join(pairbenchDir, "results"),
		DBPath:    filepath.Join(pairbenchDir, "results.db"),
	}
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	cfg := DefaultConfig()

	if val := os.Getenv("PAIRBENCH_TRIALS"); val != "" {
		if n, err := strconv.Atoi(val); err == nil && n > 0 {
			cfg.Trials = n
		}
	}

	// Empty value is meaningful for the output settings: it disables the
	// corresponding exporter, so only unset falls back to the default.
	if val, ok := os.LookupEnv("PAIRBENCH_OUT"); ok {
		cfg.OutputDir = val
	}

	if val, ok := os.LookupEnv("PAIRBENCH_DB"); ok {
		cfg.DBPath = val
	}

	if val := os.Getenv("PAIRBENCH_ALGORITHMS"); val != "" {
		for _, name := range strings.Split(val, ",") {
			name = strings.TrimSpace(name)
			if name != "" {
				cfg.Algorithms = append(cfg.Algorithms, name)
			}
		}
	}

	return cfg
}
