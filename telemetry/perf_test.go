package telemetry

import (
	"testing"
	"time"
)

// timedTick runs one tick with the given phases, sleeping d in each.
func timedTick(pc *PerfCollector, phases []string, d []time.Duration) {
	pc.StartTick()
	for i, name := range phases {
		pc.StartPhase(name)
		time.Sleep(d[i])
	}
	pc.EndTick()
}

func TestPerfCollectorEmpty(t *testing.T) {
	stats := NewPerfCollector(10, 1.0/60).Stats()
	if stats.AvgTick != 0 || stats.TicksPerSecond != 0 || stats.RealTimeFactor != 0 {
		t.Errorf("empty collector should report zeros, got %+v", stats)
	}
	if stats.PhasePct == nil {
		t.Error("PhasePct should be non-nil")
	}
}

func TestPerfCollectorPhaseShare(t *testing.T) {
	pc := NewPerfCollector(10, 1.0/60)
	phases := []string{PhaseBaddies, PhaseProjectiles}
	for range 5 {
		timedTick(pc, phases, []time.Duration{20 * time.Microsecond, 300 * time.Microsecond})
	}

	stats := pc.Stats()
	if stats.AvgTick <= 0 {
		t.Fatal("expected a positive average tick")
	}
	if stats.MinTick > stats.AvgTick || stats.AvgTick > stats.MaxTick {
		t.Errorf("want min <= avg <= max, got %v %v %v", stats.MinTick, stats.AvgTick, stats.MaxTick)
	}
	if stats.PhasePct[PhaseProjectiles] <= stats.PhasePct[PhaseBaddies] {
		t.Errorf("projectiles %.1f%% should exceed baddies %.1f%%",
			stats.PhasePct[PhaseProjectiles], stats.PhasePct[PhaseBaddies])
	}
	if total := stats.PhasePct[PhaseBaddies] + stats.PhasePct[PhaseProjectiles]; total > 100.0001 {
		t.Errorf("phase shares sum to %.2f%%", total)
	}
}

func TestPerfCollectorEvictsOldTicks(t *testing.T) {
	pc := NewPerfCollector(3, 1.0/60)
	for range 3 {
		timedTick(pc, []string{PhaseParticles}, []time.Duration{200 * time.Microsecond})
	}
	if pc.Stats().PhasePct[PhaseParticles] == 0 {
		t.Fatal("particles phase should be timed")
	}

	// A full window without the particles phase pushes it out entirely.
	for range 3 {
		timedTick(pc, []string{PhaseBaddies}, []time.Duration{10 * time.Microsecond})
	}
	stats := pc.Stats()
	if pct := stats.PhasePct[PhaseParticles]; pct != 0 {
		t.Errorf("evicted phase still reports %.2f%%", pct)
	}
	if stats.PhasePct[PhaseBaddies] <= 0 {
		t.Error("baddies phase should be timed")
	}
}

func TestPerfRealTimeFactor(t *testing.T) {
	dt := 1.0 / 60
	pc := NewPerfCollector(4, dt)
	for range 4 {
		timedTick(pc, []string{PhaseBaddies}, []time.Duration{100 * time.Microsecond})
	}
	stats := pc.Stats()
	want := stats.TicksPerSecond * dt
	if stats.RealTimeFactor != want {
		t.Errorf("RealTimeFactor = %f, want %f", stats.RealTimeFactor, want)
	}
}

func TestPerfStatsRow(t *testing.T) {
	pc := NewPerfCollector(4, 1.0/60)
	for range 4 {
		timedTick(pc, []string{PhaseBaddies, PhaseProjectiles},
			[]time.Duration{50 * time.Microsecond, 50 * time.Microsecond})
	}

	row := pc.Stats().Row(600)
	if row.WindowEnd != 600 {
		t.Errorf("window end = %d, want 600", row.WindowEnd)
	}
	if row.BaddiesPct <= 0 || row.ProjectilesPct <= 0 {
		t.Errorf("expected positive phase percentages, got %+v", row)
	}
	if row.TelemetryPct != 0 {
		t.Errorf("untimed phase should be zero, got %v", row.TelemetryPct)
	}
	if row.RealTimeFactor <= 0 {
		t.Errorf("realtime factor = %v", row.RealTimeFactor)
	}
}
