package main

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/mattn/go-sqlite3" // SQLite driver with CGO
)

// ResultStore persists benchmark results to a normalized SQLite schema.
// One environment row per harness invocation, one run row per
// (algorithm, size) configuration, and child rows for per-implementation
// stats, per-trial timings, per-trial memory deltas and the validation
// outcome. Each result is written inside a single transaction so a crash
// never leaves a half-inserted configuration.
type ResultStore struct {
	db    *sql.DB
	envID int64
}

// NewResultStore opens (creating if needed) the database at path and
// records the environment for this run.
func NewResultStore(path string, env Environment) (*ResultStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return nil, ErrDatabaseOpen(path, err)
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL")
	if err != nil {
		return nil, ErrDatabaseOpen(path, err)
	}

	if err := initResultSchema(db); err != nil {
		_ = db.Close()
		return nil, ErrDatabaseOpen(path, err)
	}

	store := &ResultStore{db: db}
	if err := store.insertEnvironment(env); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to record environment: %w", err)
	}

	return store, nil
}

func initResultSchema(db *sql.DB) error {
	schema := `
	-- One row per harness invocation
	CREATE TABLE IF NOT EXISTS environments (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		captured_at INTEGER NOT NULL,
		platform TEXT NOT NULL,
		arch TEXT NOT NULL,
		go_version TEXT NOT NULL,
		hostname TEXT,
		total_memory INTEGER NOT NULL,
		free_memory INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS cpus (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		environment_id INTEGER NOT NULL,
		model TEXT NOT NULL,
		cores INTEGER NOT NULL,
		mhz REAL NOT NULL,
		FOREIGN KEY (environment_id) REFERENCES environments(id) ON DELETE CASCADE
	);

	-- One row per (algorithm, size) configuration
	CREATE TABLE IF NOT EXISTS runs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		environment_id INTEGER NOT NULL,
		started_at INTEGER NOT NULL,
		algorithm TEXT NOT NULL,
		kind TEXT NOT NULL,
		size_label TEXT NOT NULL,
		trials INTEGER NOT NULL,
		speedup REAL NOT NULL,
		failed INTEGER NOT NULL DEFAULT 0,
		error TEXT,
		FOREIGN KEY (environment_id) REFERENCES environments(id) ON DELETE CASCADE
	);

	-- One row per implementation per run
	CREATE TABLE IF NOT EXISTS perf_stats (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id INTEGER NOT NULL,
		impl TEXT NOT NULL CHECK (impl IN ('native', 'managed')),
		min REAL NOT NULL, max REAL NOT NULL,
		mean REAL NOT NULL, median REAL NOT NULL,
		std_dev REAL NOT NULL, p95 REAL NOT NULL, p99 REAL NOT NULL,
		FOREIGN KEY (run_id) REFERENCES runs(id) ON DELETE CASCADE
	);

	-- One row per timing sample
	CREATE TABLE IF NOT EXISTS trials (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id INTEGER NOT NULL,
		impl TEXT NOT NULL,
		trial INTEGER NOT NULL,
		duration_ms REAL NOT NULL,
		FOREIGN KEY (run_id) REFERENCES runs(id) ON DELETE CASCADE
	);

	-- One row per memory delta sample
	CREATE TABLE IF NOT EXISTS memory_samples (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id INTEGER NOT NULL,
		impl TEXT NOT NULL,
		trial INTEGER NOT NULL,
		valid INTEGER NOT NULL,
		heap_used INTEGER NOT NULL,
		heap_total INTEGER NOT NULL,
		external INTEGER NOT NULL,
		rss INTEGER NOT NULL,
		FOREIGN KEY (run_id) REFERENCES runs(id) ON DELETE CASCADE
	);

	-- One row per validation outcome
	CREATE TABLE IF NOT EXISTS validations (
		run_id INTEGER PRIMARY KEY,
		success INTEGER NOT NULL,
		discrepancies TEXT NOT NULL,
		FOREIGN KEY (run_id) REFERENCES runs(id) ON DELETE CASCADE
	);

	CREATE INDEX IF NOT EXISTS idx_runs_algorithm ON runs(algorithm, size_label);
	CREATE INDEX IF NOT EXISTS idx_trials_run ON trials(run_id);
	CREATE INDEX IF NOT EXISTS idx_memory_run ON memory_samples(run_id);
	`

	_, err := db.Exec(schema)
	return err
}

func (s *ResultStore) insertEnvironment(env Environment) error {
	res, err := s.db.Exec(
		"INSERT INTO environments (captured_at, platform, arch, go_version, hostname, total_memory, free_memory) VALUES (strftime('%s','now'), ?, ?, ?, ?, ?, ?)",
		env.Platform, env.Arch, env.GoVersion, env.Hostname, env.TotalMemory, env.FreeMemory)
	if err != nil {
		return err
	}

	s.envID, err = res.LastInsertId()
	if err != nil {
		return err
	}

	for _, c := range env.CPUs {
		if _, err := s.db.Exec(
			"INSERT INTO cpus (environment_id, model, cores, mhz) VALUES (?, ?, ?, ?)",
			s.envID, c.Model, c.Cores, c.Mhz); err != nil {
			return err
		}
	}

	return nil
}

// OnResult stores one configuration result transactionally.
func (s *ResultStore) OnResult(r *Result) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.Exec(
		"INSERT INTO runs (environment_id, started_at, algorithm, kind, size_label, trials, speedup, failed, error) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)",
		s.envID, r.StartedAt.Unix(), r.Algorithm, string(r.Kind), r.SizeLabel, r.Trials, r.Speedup, boolToInt(r.Failed), r.Error)
	if err != nil {
		return fmt.Errorf("failed to insert run: %w", err)
	}
	runID, err := res.LastInsertId()
	if err != nil {
		return err
	}

	if !r.Failed {
		if err := insertImpl(tx, runID, "native", r.Native); err != nil {
			return err
		}
		if err := insertImpl(tx, runID, "managed", r.Managed); err != nil {
			return err
		}
	}

	if _, err := tx.Exec(
		"INSERT INTO validations (run_id, success, discrepancies) VALUES (?, ?, ?)",
		runID, boolToInt(r.Validation.Success), strings.Join(r.Validation.Discrepancies, "\n")); err != nil {
		return fmt.Errorf("failed to insert validation: %w", err)
	}

	return tx.Commit()
}

func insertImpl(tx *sql.Tx, runID int64, impl string, m ImplMeasurements) error {
	if _, err := tx.Exec(
		"INSERT INTO perf_stats (run_id, impl, min, max, mean, median, std_dev, p95, p99) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)",
		runID, impl, m.Stats.Min, m.Stats.Max, m.Stats.Mean, m.Stats.Median, m.Stats.StdDev, m.Stats.P95, m.Stats.P99); err != nil {
		return fmt.Errorf("failed to insert %s stats: %w", impl, err)
	}

	trialStmt, err := tx.Prepare("INSERT INTO trials (run_id, impl, trial, duration_ms) VALUES (?, ?, ?, ?)")
	if err != nil {
		return err
	}
	defer func() { _ = trialStmt.Close() }()

	for i, ms := range m.Times {
		if _, err := trialStmt.Exec(runID, impl, i, ms); err != nil {
			return fmt.Errorf("failed to insert %s trial %d: %w", impl, i, err)
		}
	}

	memStmt, err := tx.Prepare("INSERT INTO memory_samples (run_id, impl, trial, valid, heap_used, heap_total, external, rss) VALUES (?, ?, ?, ?, ?, ?, ?, ?)")
	if err != nil {
		return err
	}
	defer func() { _ = memStmt.Close() }()

	for i, d := range m.Memory {
		if _, err := memStmt.Exec(runID, impl, i, boolToInt(d.Valid), d.HeapUsed, d.HeapTotal, d.External, d.RSS); err != nil {
			return fmt.Errorf("failed to insert %s memory sample %d: %w", impl, i, err)
		}
	}

	return nil
}

// CountRuns reports how many configuration rows the store holds.
func (s *ResultStore) CountRuns() (int, error) {
	var n int
	err := s.db.QueryRow("SELECT COUNT(*) FROM runs").Scan(&n)
	return n, err
}

// Close closes the underlying database.
func (s *ResultStore) Close() error {
	return s.db.Close()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
