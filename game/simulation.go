// Package game drives a room of the simulation core at a fixed timestep:
// baddies, then projectiles, then decorative particles, then telemetry.
package game

import (
	"fmt"
	"log/slog"

	"github.com/pthm-cable/skirmish/config"
	"github.com/pthm-cable/skirmish/space"
	"github.com/pthm-cable/skirmish/systems"
	"github.com/pthm-cable/skirmish/telemetry"
)

// Options configures a Simulation.
type Options struct {
	Seed           int64  // 0 = use config seed
	RunID          string // recorded in snapshots
	Scenario       string // embedded fixture name or path to a scenario YAML; empty = empty room
	LogStats       bool
	StatsWindowSec float64 // 0 = use config
	SnapshotDir    string  // empty = no snapshots
	OutputDir      string  // empty = no CSV output

	// StatsCallback, when set, receives every flushed window.
	StatsCallback func(telemetry.WindowStats)
}

// Simulation owns a room and advances it one tick at a time.
type Simulation struct {
	cfg      *config.Config
	state    *space.State
	registry *systems.SystemRegistry
	steps    []systems.SystemInfo

	rngSeed  int64
	runID    string
	scenario string

	collector        *telemetry.Collector
	perfCollector    *telemetry.PerfCollector
	outputManager    *telemetry.OutputManager
	bookmarkDetector *telemetry.BookmarkDetector
	snapshotDir      string
	logStats         bool
	statsCallback    func(telemetry.WindowStats)
}

// New builds a simulation from a config and options. The scenario, if any, is
// loaded and placed before the first tick.
func New(cfg *config.Config, opts Options) (*Simulation, error) {
	catalog, err := space.NewCatalog(cfg)
	if err != nil {
		return nil, fmt.Errorf("building catalog: %w", err)
	}

	seed := opts.Seed
	if seed == 0 {
		seed = cfg.Simulation.Seed
	}
	state := space.NewState(cfg, catalog, seed)

	if opts.Scenario != "" {
		sc, err := LoadScenario(opts.Scenario)
		if err != nil {
			return nil, err
		}
		if err := sc.Apply(state); err != nil {
			return nil, fmt.Errorf("scenario %q: %w", sc.Name, err)
		}
	}

	statsWindow := opts.StatsWindowSec
	if statsWindow <= 0 {
		statsWindow = cfg.Telemetry.StatsWindow
	}

	om, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		return nil, err
	}

	sim := &Simulation{
		cfg:              cfg,
		state:            state,
		registry:         systems.NewSystemRegistry(),
		rngSeed:          seed,
		runID:            opts.RunID,
		scenario:         opts.Scenario,
		collector:        telemetry.NewCollector(statsWindow, cfg.Simulation.DT),
		perfCollector:    telemetry.NewPerfCollector(cfg.Telemetry.PerfCollectorWindow, cfg.Simulation.DT),
		outputManager:    om,
		bookmarkDetector: telemetry.NewBookmarkDetector(6),
		snapshotDir:      opts.SnapshotDir,
		logStats:         opts.LogStats,
		statsCallback:    opts.StatsCallback,
	}

	if err := sim.buildSteps(); err != nil {
		om.Close()
		return nil, err
	}

	if err := om.WriteConfig(cfg); err != nil {
		om.Close()
		return nil, fmt.Errorf("writing config snapshot: %w", err)
	}

	slog.Debug("simulation ready",
		"seed", seed,
		"scenario", opts.Scenario,
		"baddies", state.Baddies.Count(),
		"projectiles", state.Projectiles.Count(),
	)
	return sim, nil
}

// buildSteps binds the telemetry phase and takes the registry's schedule.
func (s *Simulation) buildSteps() error {
	err := s.registry.Bind(telemetry.PhaseTelemetry, func(*space.State, float64) {
		s.recordTelemetry()
	})
	if err != nil {
		return err
	}
	s.steps, err = s.registry.Steps()
	return err
}

// Step advances the room by one tick. The clock moves first so that anything
// spawned during this tick is skipped until the next one.
func (s *Simulation) Step() {
	dt := s.cfg.Simulation.DT
	s.state.Clock++

	s.perfCollector.StartTick()
	for _, st := range s.steps {
		s.perfCollector.StartPhase(st.ID)
		st.Run(s.state, dt)
	}
	s.perfCollector.EndTick()
}

// Run steps until maxTicks is reached or the room is resolved. maxTicks 0
// means no limit.
func (s *Simulation) Run(maxTicks uint64) {
	for maxTicks == 0 || s.state.Clock < maxTicks {
		s.Step()
		if s.Resolved() {
			return
		}
	}
}

// Resolved reports whether the fight is over: the ship's shield is gone, or no
// baddies and no projectiles remain.
func (s *Simulation) Resolved() bool {
	if s.state.Ship.Present && s.state.Ship.Shield <= 0 {
		return true
	}
	return s.state.Baddies.Count() == 0 && s.state.Projectiles.Count() == 0
}

// Tick returns the current tick.
func (s *Simulation) Tick() uint64 {
	return s.state.Clock
}

// State returns the room. Callers may install their own Rules and Effects.
func (s *Simulation) State() *space.State {
	return s.state
}

// Systems returns the ids of the per-tick schedule, in run order.
func (s *Simulation) Systems() []string {
	ids := make([]string, len(s.steps))
	for i, st := range s.steps {
		ids[i] = st.ID
	}
	return ids
}

// Close flushes and closes output files.
func (s *Simulation) Close() error {
	return s.outputManager.Close()
}
