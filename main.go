package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/profile"

	"github.com/pthm-cable/skirmish/config"
	"github.com/pthm-cable/skirmish/game"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	scenario := flag.String("scenario", "crab_pair", "Embedded scenario name or path to a scenario YAML ("+strings.Join(game.ScenarioNames(), ", ")+")")
	logStats := flag.Bool("log-stats", false, "Output stats via slog")
	statsWindow := flag.Float64("stats-window", 0, "Stats window size in seconds (0 = use config)")
	snapshotDir := flag.String("snapshot-dir", "", "Directory for snapshot files")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot (a run id subdirectory is created)")
	seed := flag.Int64("seed", 0, "RNG seed (0 = use config, negative = time-based)")
	maxTicks := flag.Uint64("max-ticks", 0, "Stop after N ticks (0 = run until the room is resolved)")
	cpuProfile := flag.Bool("profile", false, "Write a CPU profile to the working directory")

	flag.Parse()

	// Set up slog (JSON to stdout for structured logging)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if err := run(*configPath, *scenario, *logStats, *statsWindow, *snapshotDir, *outputDir, *seed, *maxTicks, *cpuProfile); err != nil {
		slog.Error("run failed", "error", err)
		os.Exit(1)
	}
}

func run(configPath, scenario string, logStats bool, statsWindow float64, snapshotDir, outputDir string, seed int64, maxTicks uint64, cpuProfile bool) error {
	if cpuProfile {
		defer profile.Start(profile.CPUProfile, profile.ProfilePath("."), profile.Quiet).Stop()
	}

	if err := config.Init(configPath); err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	cfg := config.Cfg()

	rngSeed := seed
	if rngSeed < 0 {
		rngSeed = time.Now().UnixNano()
	}

	runID := uuid.NewString()
	if outputDir != "" {
		outputDir = filepath.Join(outputDir, runID)
	}

	sim, err := game.New(cfg, game.Options{
		Seed:           rngSeed,
		RunID:          runID,
		Scenario:       scenario,
		LogStats:       logStats,
		StatsWindowSec: statsWindow,
		SnapshotDir:    snapshotDir,
		OutputDir:      outputDir,
	})
	if err != nil {
		return err
	}
	defer sim.Close()

	slog.Info("starting headless simulation",
		"run_id", runID,
		"scenario", scenario,
		"seed", rngSeed,
		"max_ticks", maxTicks,
		"output_dir", outputDir,
	)

	start := time.Now()
	sim.Run(maxTicks)

	st := sim.State()
	slog.Info("simulation finished",
		"tick", sim.Tick(),
		"resolved", sim.Resolved(),
		"baddies", st.Baddies.Count(),
		"projectiles", st.Projectiles.Count(),
		"ship_shield", st.Ship.Shield,
		"elapsed", time.Since(start).String(),
	)
	return nil
}
