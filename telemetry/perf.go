package telemetry

import (
	"log/slog"
	"time"
)

// Phase names for the simulation step.
// They match the system IDs in the systems registry.
const (
	PhaseBaddies     = "baddies"
	PhaseProjectiles = "projectiles"
	PhaseParticles   = "particles"
	PhaseTelemetry   = "telemetry"
)

// Phases lists the step phases in execution order.
var Phases = []string{PhaseBaddies, PhaseProjectiles, PhaseParticles, PhaseTelemetry}

// PerfCollector keeps wall-clock timings for the last windowSize ticks.
// Totals are maintained incrementally as ticks enter and leave the ring.
type PerfCollector struct {
	windowSize int
	dt         float64

	ticks     []time.Duration
	phases    map[string][]time.Duration
	tickTotal time.Duration
	phaseSum  map[string]time.Duration
	next      int
	filled    int

	tickStart  time.Time
	phaseStart time.Time
	current    string
	pending    map[string]time.Duration
}

// NewPerfCollector returns a collector averaging over windowSize ticks of dt
// simulated seconds each.
func NewPerfCollector(windowSize int, dt float64) *PerfCollector {
	if windowSize < 1 {
		windowSize = 600
	}
	return &PerfCollector{
		windowSize: windowSize,
		dt:         dt,
		ticks:      make([]time.Duration, windowSize),
		phases:     make(map[string][]time.Duration),
		phaseSum:   make(map[string]time.Duration),
		pending:    make(map[string]time.Duration),
	}
}

// StartTick begins timing a tick.
func (p *PerfCollector) StartTick() {
	p.tickStart = time.Now()
	p.current = ""
	clear(p.pending)
}

// StartPhase closes the running phase, if any, and opens the next one.
func (p *PerfCollector) StartPhase(phase string) {
	now := time.Now()
	p.closePhase(now)
	p.phaseStart = now
	p.current = phase
}

func (p *PerfCollector) closePhase(now time.Time) {
	if p.current != "" {
		p.pending[p.current] += now.Sub(p.phaseStart)
	}
}

// EndTick closes the tick and pushes it into the ring, evicting the oldest.
func (p *PerfCollector) EndTick() {
	now := time.Now()
	p.closePhase(now)
	p.current = ""

	slot := p.next
	p.tickTotal += now.Sub(p.tickStart) - p.ticks[slot]
	p.ticks[slot] = now.Sub(p.tickStart)

	for name, ring := range p.phases {
		p.phaseSum[name] -= ring[slot]
		ring[slot] = 0
	}
	for name, d := range p.pending {
		ring, ok := p.phases[name]
		if !ok {
			ring = make([]time.Duration, p.windowSize)
			p.phases[name] = ring
		}
		ring[slot] = d
		p.phaseSum[name] += d
	}

	p.next = (p.next + 1) % p.windowSize
	p.filled = min(p.filled+1, p.windowSize)
}

// PerfStats summarises the collector's window.
type PerfStats struct {
	AvgTick time.Duration
	MinTick time.Duration
	MaxTick time.Duration

	// Share of the average tick spent in each phase, in percent.
	PhasePct map[string]float64

	TicksPerSecond float64
	// Simulated seconds per wall second; above 1 is faster than real time.
	RealTimeFactor float64
}

// Stats aggregates the ticks currently in the window.
func (p *PerfCollector) Stats() PerfStats {
	stats := PerfStats{PhasePct: make(map[string]float64, len(p.phaseSum))}
	if p.filled == 0 {
		return stats
	}

	n := time.Duration(p.filled)
	stats.AvgTick = p.tickTotal / n
	for i, d := range p.ticks[:p.filled] {
		if i == 0 || d < stats.MinTick {
			stats.MinTick = d
		}
		stats.MaxTick = max(stats.MaxTick, d)
	}
	if p.tickTotal > 0 {
		for name, sum := range p.phaseSum {
			stats.PhasePct[name] = 100 * float64(sum) / float64(p.tickTotal)
		}
	}
	if stats.AvgTick > 0 {
		stats.TicksPerSecond = float64(time.Second) / float64(stats.AvgTick)
		stats.RealTimeFactor = stats.TicksPerSecond * p.dt
	}
	return stats
}

// LogStats logs the window at info level.
func (s PerfStats) LogStats() {
	slog.Info("perf", "window", s)
}

// LogValue implements slog.LogValuer.
func (s PerfStats) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.Int64("avg_tick_us", s.AvgTick.Microseconds()),
		slog.Int64("max_tick_us", s.MaxTick.Microseconds()),
		slog.Float64("realtime_x", s.RealTimeFactor),
	}
	for _, phase := range Phases {
		if pct := s.PhasePct[phase]; pct > 0 {
			attrs = append(attrs, slog.Float64(phase+"_pct", pct))
		}
	}
	return slog.GroupValue(attrs...)
}

// PerfRow is one perf.csv line.
type PerfRow struct {
	WindowEnd      uint64  `csv:"window_end"`
	AvgTickUS      int64   `csv:"avg_tick_us"`
	MinTickUS      int64   `csv:"min_tick_us"`
	MaxTickUS      int64   `csv:"max_tick_us"`
	TicksPerSec    float64 `csv:"ticks_per_sec"`
	RealTimeFactor float64 `csv:"realtime_factor"`
	BaddiesPct     float64 `csv:"baddies_pct"`
	ProjectilesPct float64 `csv:"projectiles_pct"`
	ParticlesPct   float64 `csv:"particles_pct"`
	TelemetryPct   float64 `csv:"telemetry_pct"`
}

// Row flattens the stats for the window ending at windowEnd.
func (s PerfStats) Row(windowEnd uint64) PerfRow {
	return PerfRow{
		WindowEnd:      windowEnd,
		AvgTickUS:      s.AvgTick.Microseconds(),
		MinTickUS:      s.MinTick.Microseconds(),
		MaxTickUS:      s.MaxTick.Microseconds(),
		TicksPerSec:    s.TicksPerSecond,
		RealTimeFactor: s.RealTimeFactor,
		BaddiesPct:     s.PhasePct[PhaseBaddies],
		ProjectilesPct: s.PhasePct[PhaseProjectiles],
		ParticlesPct:   s.PhasePct[PhaseParticles],
		TelemetryPct:   s.PhasePct[PhaseTelemetry],
	}
}
