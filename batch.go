package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/charmbracelet/log"
)

// RunBatch executes the configured sweep headlessly. The engine stays
// fail-fast per configuration; the sweep itself is fail-soft, recording a
// tagged failure result and moving on so one crashing kernel cannot sink a
// long run.
func RunBatch(cfg *Config, names []string) error {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.Kitchen,
		Prefix:          "pairbench",
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	suite, err := selectAlgorithms(cfg, names)
	if err != nil {
		return err
	}

	env := CaptureEnvironment()
	logger.Info("starting benchmark run",
		"platform", env.Platform, "arch", env.Arch, "cpus", len(env.CPUs), "trials", cfg.Trials)

	agg := NewAggregator(env)
	hooks, closeFn, err := buildExporters(cfg, env, logger)
	if err != nil {
		return err
	}
	defer closeFn()

	engine := NewEngine(hooks.onResult, logger)
	agg.OnRunComplete = hooks.onRunComplete

	for _, alg := range suite {
		for _, size := range alg.Sizes {
			logger.Info("running configuration", "algorithm", alg.Name, "size", size.Label)
			runCfg := alg.Configuration(size, cfg.Trials)

			result, err := engine.RunConfiguration(ctx, runCfg)
			if err != nil {
				if ctx.Err() != nil {
					logger.Warn("run interrupted; completed results are already exported")
					return agg.Finish()
				}
				logger.Error("configuration failed", "algorithm", alg.Name, "size", size.Label, "err", err)
				failed := FailedResult(runCfg, err)
				agg.Append(failed)
				if hooks.onResult != nil {
					if expErr := hooks.onResult(failed); expErr != nil {
						logger.Error("failed to export failure record", "err", expErr)
					}
				}
				continue
			}

			agg.Append(result)
			logger.Info("configuration done",
				"algorithm", alg.Name, "size", size.Label,
				"nativeMeanMs", fmt.Sprintf("%.3f", result.Native.Stats.Mean),
				"managedMeanMs", fmt.Sprintf("%.3f", result.Managed.Stats.Mean),
				"speedup", fmt.Sprintf("%.2fx", result.Speedup),
				"validated", result.Validation.Success)
			if !result.Validation.Success {
				for _, d := range result.Validation.Discrepancies {
					logger.Warn("validation discrepancy", "algorithm", alg.Name, "size", size.Label, "detail", d)
				}
			}
		}
	}

	if err := agg.Finish(); err != nil {
		logger.Error("run-complete export failed", "err", err)
	}

	logger.Info("benchmark run complete", "configurations", len(agg.All()))
	return nil
}

// selectAlgorithms resolves the sweep: explicit CLI names win over the
// PAIRBENCH_ALGORITHMS filter, and no filter means the whole suite.
func selectAlgorithms(cfg *Config, names []string) ([]Algorithm, error) {
	if len(names) == 0 {
		names = cfg.Algorithms
	}
	if len(names) == 0 {
		return Algorithms(), nil
	}

	suite := make([]Algorithm, 0, len(names))
	for _, name := range names {
		alg, err := FindAlgorithm(name)
		if err != nil {
			return nil, ErrInvalidConfiguration(err)
		}
		suite = append(suite, alg)
	}
	return suite, nil
}

// exportHooks bundles the per-result and run-complete callbacks over
// whichever exporters the config enables.
type exportHooks struct {
	onResult      func(*Result) error
	onRunComplete func(*Run) error
}

func buildExporters(cfg *Config, env Environment, logger *log.Logger) (exportHooks, func(), error) {
	var jsonExp *JSONExporter
	var store *ResultStore
	var err error

	if cfg.OutputDir != "" {
		jsonExp, err = NewJSONExporter(cfg.OutputDir, env)
		if err != nil {
			return exportHooks{}, nil, err
		}
	}

	if cfg.DBPath != "" {
		store, err = NewResultStore(cfg.DBPath, env)
		if err != nil {
			// The JSON file is the durable fallback; a missing database is
			// not worth losing a run over.
			logger.Warn("database exporter disabled", "err", err)
			store = nil
		}
	}

	hooks := exportHooks{
		onResult: func(r *Result) error {
			var firstErr error
			if jsonExp != nil {
				if err := jsonExp.OnResult(r); err != nil {
					firstErr = err
				}
			}
			if store != nil {
				if err := store.OnResult(r); err != nil && firstErr == nil {
					firstErr = err
				}
			}
			return firstErr
		},
		onRunComplete: func(run *Run) error {
			if jsonExp != nil {
				return jsonExp.OnRunComplete(run)
			}
			return nil
		},
	}

	closeFn := func() {
		if store != nil {
			_ = store.Close()
		}
	}

	return hooks, closeFn, nil
}
