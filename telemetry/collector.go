// Package telemetry turns per-tick world counters into windowed stats,
// bookmarks, snapshots and CSV output for headless runs.
package telemetry

import "github.com/pthm-cable/skirmish/space"

// Collector accumulates per-tick world counters within time windows and
// produces WindowStats.
type Collector struct {
	windowDurationSec   float64
	windowDurationTicks uint64
	dt                  float64

	// Current window tracking
	windowStartTick uint64

	// Event counters for current window
	projectilesSpawned int
	baddiesSpawned     int
	spawnFailures      int
	impacts            [space.NumImpactTypes]int
	baddiesKilled      int
	doorsOpened        int
	wallsBroken        int
	shipDamage         float64
	impactAges         []float64
}

// NewCollector creates a new stats collector.
// windowDurationSec: how long each stats window lasts in simulation seconds
// dt: seconds per tick (used for tick-to-time conversion)
func NewCollector(windowDurationSec, dt float64) *Collector {
	ticksPerWindow := uint64(windowDurationSec / dt)
	if ticksPerWindow < 1 {
		ticksPerWindow = 1
	}

	return &Collector{
		windowDurationSec:   windowDurationSec,
		windowDurationTicks: ticksPerWindow,
		dt:                  dt,
	}
}

// Add folds one tick's counters into the current window. The caller resets
// the counters afterwards.
func (c *Collector) Add(counters *space.Counters) {
	c.projectilesSpawned += counters.ProjectilesSpawned
	c.baddiesSpawned += counters.BaddiesSpawned
	c.spawnFailures += counters.SpawnFailures
	for i, n := range counters.Impacts {
		c.impacts[i] += n
	}
	c.baddiesKilled += counters.BaddiesKilled
	c.doorsOpened += counters.DoorsOpened
	c.wallsBroken += counters.WallsBroken
	c.shipDamage += counters.ShipDamage
	c.impactAges = append(c.impactAges, counters.ImpactAges...)
}

// ShouldFlush returns true if enough ticks have passed to flush the window.
func (c *Collector) ShouldFlush(currentTick uint64) bool {
	return currentTick-c.windowStartTick >= c.windowDurationTicks
}

// WorldSample is the room state sampled at the end of a window.
type WorldSample struct {
	LiveProjectiles int
	LiveBaddies     int
	ShipShield      float64
	Particles       int
	Specks          int
}

// Flush produces a WindowStats and resets counters for the next window.
func (c *Collector) Flush(currentTick uint64, sample WorldSample) WindowStats {
	ageMean, ageStd, ageP50, ageP90 := ComputeAgeStats(c.impactAges)

	var totalImpacts int
	for _, n := range c.impacts[space.ImpactWall:] {
		totalImpacts += n
	}
	var hitRate float64
	if c.projectilesSpawned > 0 {
		hitRate = float64(c.impacts[space.ImpactShip]+c.impacts[space.ImpactBaddie]) / float64(c.projectilesSpawned)
	}

	stats := WindowStats{
		WindowStartTick: c.windowStartTick,
		WindowEndTick:   currentTick,
		SimTimeSec:      float64(currentTick) * c.dt,

		LiveProjectiles: sample.LiveProjectiles,
		LiveBaddies:     sample.LiveBaddies,
		ShipShield:      sample.ShipShield,
		Particles:       sample.Particles,
		Specks:          sample.Specks,

		ProjectilesSpawned: c.projectilesSpawned,
		BaddiesSpawned:     c.baddiesSpawned,
		SpawnFailures:      c.spawnFailures,

		Impacts:       totalImpacts,
		ImpactsWall:   c.impacts[space.ImpactWall],
		ImpactsDoor:   c.impacts[space.ImpactDoorOutside] + c.impacts[space.ImpactDoorInside],
		ImpactsShip:   c.impacts[space.ImpactShip],
		ImpactsBaddie: c.impacts[space.ImpactBaddie],
		TargetHitRate: hitRate,
		BaddiesKilled: c.baddiesKilled,
		DoorsOpened:   c.doorsOpened,
		WallsBroken:   c.wallsBroken,
		ShipDamage:    c.shipDamage,
		ImpactAgeMean: ageMean,
		ImpactAgeStd:  ageStd,
		ImpactAgeP50:  ageP50,
		ImpactAgeP90:  ageP90,
	}

	// Reset for next window
	c.windowStartTick = currentTick
	c.projectilesSpawned = 0
	c.baddiesSpawned = 0
	c.spawnFailures = 0
	c.impacts = [space.NumImpactTypes]int{}
	c.baddiesKilled = 0
	c.doorsOpened = 0
	c.wallsBroken = 0
	c.shipDamage = 0
	c.impactAges = c.impactAges[:0]

	return stats
}

// WindowDurationTicks returns the number of ticks per window.
func (c *Collector) WindowDurationTicks() uint64 {
	return c.windowDurationTicks
}
