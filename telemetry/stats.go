package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated statistics for a time window.
type WindowStats struct {
	WindowStartTick uint64  `csv:"-"`
	WindowEndTick   uint64  `csv:"window_end"`
	SimTimeSec      float64 `csv:"sim_time"`

	// Room state at window end
	LiveProjectiles int     `csv:"projectiles"`
	LiveBaddies     int     `csv:"baddies"`
	ShipShield      float64 `csv:"ship_shield"`
	Particles       int     `csv:"particles"`
	Specks          int     `csv:"specks"`

	// Spawns during window
	ProjectilesSpawned int `csv:"projectiles_spawned"`
	BaddiesSpawned     int `csv:"baddies_spawned"`
	SpawnFailures      int `csv:"spawn_failures"`

	// Impacts
	Impacts       int     `csv:"impacts"`
	ImpactsWall   int     `csv:"impacts_wall"`
	ImpactsDoor   int     `csv:"impacts_door"`
	ImpactsShip   int     `csv:"impacts_ship"`
	ImpactsBaddie int     `csv:"impacts_baddie"`
	TargetHitRate float64 `csv:"target_hit_rate"` // target impacts per projectile spawned

	// Outcomes
	BaddiesKilled int     `csv:"baddies_killed"`
	DoorsOpened   int     `csv:"doors_opened"`
	WallsBroken   int     `csv:"walls_broken"`
	ShipDamage    float64 `csv:"ship_damage"`

	// Projectile age at impact
	ImpactAgeMean float64 `csv:"impact_age_mean"`
	ImpactAgeStd  float64 `csv:"impact_age_std"`
	ImpactAgeP50  float64 `csv:"impact_age_p50"`
	ImpactAgeP90  float64 `csv:"impact_age_p90"`
}

// ComputeAgeStats calculates mean, standard deviation and empirical
// quantiles of projectile ages. Fewer than two values have zero deviation.
func ComputeAgeStats(values []float64) (mean, std, p50, p90 float64) {
	n := len(values)
	if n == 0 {
		return 0, 0, 0, 0
	}

	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)

	if n == 1 {
		mean = sorted[0]
	} else {
		mean, std = stat.MeanStdDev(sorted, nil)
	}
	p50 = stat.Quantile(0.5, stat.Empirical, sorted, nil)
	p90 = stat.Quantile(0.9, stat.Empirical, sorted, nil)

	return mean, std, p50, p90
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Uint64("window_start", s.WindowStartTick),
		slog.Uint64("window_end", s.WindowEndTick),
		slog.Float64("sim_time", s.SimTimeSec),
		slog.Int("projectiles", s.LiveProjectiles),
		slog.Int("baddies", s.LiveBaddies),
		slog.Float64("ship_shield", s.ShipShield),
		slog.Int("particles", s.Particles),
		slog.Int("specks", s.Specks),
		slog.Int("projectiles_spawned", s.ProjectilesSpawned),
		slog.Int("baddies_spawned", s.BaddiesSpawned),
		slog.Int("spawn_failures", s.SpawnFailures),
		slog.Int("impacts", s.Impacts),
		slog.Int("impacts_wall", s.ImpactsWall),
		slog.Int("impacts_door", s.ImpactsDoor),
		slog.Int("impacts_ship", s.ImpactsShip),
		slog.Int("impacts_baddie", s.ImpactsBaddie),
		slog.Float64("target_hit_rate", s.TargetHitRate),
		slog.Int("baddies_killed", s.BaddiesKilled),
		slog.Int("doors_opened", s.DoorsOpened),
		slog.Int("walls_broken", s.WallsBroken),
		slog.Float64("ship_damage", s.ShipDamage),
		slog.Float64("impact_age_mean", s.ImpactAgeMean),
		slog.Float64("impact_age_std", s.ImpactAgeStd),
		slog.Float64("impact_age_p50", s.ImpactAgeP50),
		slog.Float64("impact_age_p90", s.ImpactAgeP90),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats", "window", s)
}
