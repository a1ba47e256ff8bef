package main

import (
	"math"
	"sync"

	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/skirmish/config"
	"github.com/pthm-cable/skirmish/game"
	"github.com/pthm-cable/skirmish/telemetry"
)

// FitnessEvaluator runs headless scenario replays and scores how long the
// parked ship lasts against a target.
type FitnessEvaluator struct {
	params      *ParamVector
	configPath  string
	scenario    string
	maxTicks    uint64
	targetSec   float64
	seeds       []int64
	statsWindow float64

	mu          sync.Mutex
	lastQuality float64 // quality from most recent Evaluate call
}

// NewFitnessEvaluator creates a new evaluator. Each run reloads the base
// config from configPath so parameter writes never leak between runs.
func NewFitnessEvaluator(params *ParamVector, configPath, scenario string, maxTicks uint64, targetSec float64, seeds []int64) *FitnessEvaluator {
	return &FitnessEvaluator{
		params:      params,
		configPath:  configPath,
		scenario:    scenario,
		maxTicks:    maxTicks,
		targetSec:   targetSec,
		seeds:       seeds,
		statsWindow: 5.0,
	}
}

// LastQuality returns the quality score from the most recent evaluation.
func (fe *FitnessEvaluator) LastQuality() float64 {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.lastQuality
}

// runResult holds the results from a single simulation run.
type runResult struct {
	survivalTicks uint64 // ticks until the shield ran out (or maxTicks)
	dt            float64
	windowStats   []telemetry.WindowStats // collected via StatsCallback each window
	err           error
}

// Evaluate computes fitness for a parameter vector (lower = better).
func (fe *FitnessEvaluator) Evaluate(x []float64) float64 {
	results := make([]*runResult, len(fe.seeds))
	var wg sync.WaitGroup

	for i, seed := range fe.seeds {
		wg.Add(1)
		go func(idx int, s int64) {
			defer wg.Done()
			results[idx] = fe.runSimulation(x, s)
		}(i, seed)
	}
	wg.Wait()

	var totalFitness, totalQuality float64
	for _, r := range results {
		if r.err != nil {
			return math.Inf(1)
		}
		totalFitness += fe.computeFitness(r)
		totalQuality += computeQuality(r.windowStats)
	}

	n := float64(len(fe.seeds))
	fe.mu.Lock()
	fe.lastQuality = totalQuality / n
	fe.mu.Unlock()

	return totalFitness / n
}

// runSimulation executes a single headless replay. It runs until the ship's
// shield is gone, the room resolves, or maxTicks.
func (fe *FitnessEvaluator) runSimulation(x []float64, seed int64) *runResult {
	result := &runResult{}

	cfg, err := config.Load(fe.configPath)
	if err != nil {
		result.err = err
		return result
	}
	if err := fe.params.ApplyToConfig(cfg, x); err != nil {
		result.err = err
		return result
	}
	result.dt = cfg.Simulation.DT

	sim, err := game.New(cfg, game.Options{
		Seed:           seed,
		Scenario:       fe.scenario,
		StatsWindowSec: fe.statsWindow,
		StatsCallback: func(stats telemetry.WindowStats) {
			result.windowStats = append(result.windowStats, stats)
		},
	})
	if err != nil {
		result.err = err
		return result
	}
	defer sim.Close()

	sim.Run(fe.maxTicks)
	result.survivalTicks = sim.Tick()
	return result
}

// computeFitness calculates the scalar fitness (lower = better).
// Formula: ln(survival/target)^2 - 0.2 × quality
// Hitting the target survival time dominates; steady pressure breaks ties.
func (fe *FitnessEvaluator) computeFitness(r *runResult) float64 {
	survivalSec := float64(r.survivalTicks) * r.dt
	if survivalSec <= 0 {
		return math.Inf(1)
	}
	logErr := math.Log(survivalSec / fe.targetSec)
	return logErr*logErr - 0.2*computeQuality(r.windowStats)
}

// qualityWarmupWindows are skipped while baddies get into position.
const qualityWarmupWindows = 1

// computeQuality scores how evenly damage reaches the ship across windows,
// in [0, 1]. Long silences followed by bursts score low.
func computeQuality(windows []telemetry.WindowStats) float64 {
	if len(windows) <= qualityWarmupWindows+1 {
		return 0
	}

	damage := make([]float64, 0, len(windows))
	for _, w := range windows[qualityWarmupWindows:] {
		damage = append(damage, w.ShipDamage)
	}

	mean, std := stat.MeanStdDev(damage, nil)
	if mean == 0 {
		return 0
	}
	cv := std / mean
	return clamp01(math.Exp(-cv * cv))
}

// clamp01 clamps x to [0, 1].
func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
