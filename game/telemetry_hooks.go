package game

import (
	"log/slog"

	"github.com/pthm-cable/skirmish/telemetry"
)

// recordTelemetry folds this tick's counters into the window and flushes it
// when the window is complete.
func (s *Simulation) recordTelemetry() {
	s.collector.Add(&s.state.Counters)
	s.state.Counters.Reset()
	s.flushTelemetry()
}

// flushTelemetry checks if the stats window should be flushed and handles bookmarks.
func (s *Simulation) flushTelemetry() {
	tick := s.state.Clock
	if !s.collector.ShouldFlush(tick) {
		return
	}

	stats := s.collector.Flush(tick, s.sampleWorld())
	perfStats := s.perfCollector.Stats()

	if s.statsCallback != nil {
		s.statsCallback(stats)
	}

	if s.logStats {
		stats.LogStats()
		perfStats.LogStats()
	}

	if s.outputManager != nil {
		if err := s.outputManager.WriteTelemetry(stats); err != nil {
			slog.Error("failed to write telemetry", "error", err)
		}
		if err := s.outputManager.WritePerf(perfStats, stats.WindowEndTick); err != nil {
			slog.Error("failed to write perf", "error", err)
		}
	}

	for _, bm := range s.bookmarkDetector.Check(stats) {
		if s.logStats {
			bm.LogBookmark()
		}
		if s.outputManager != nil {
			if err := s.outputManager.WriteBookmark(bm); err != nil {
				slog.Error("failed to write bookmark", "error", err)
			}
		}
		if s.snapshotDir != "" {
			s.saveSnapshot(&bm)
		}
	}
}

// sampleWorld reads the instantaneous population of the room.
func (s *Simulation) sampleWorld() telemetry.WorldSample {
	particles, specks := s.state.Particles.Counts()
	sample := telemetry.WorldSample{
		LiveProjectiles: s.state.Projectiles.Count(),
		LiveBaddies:     s.state.Baddies.Count(),
		Particles:       particles,
		Specks:          specks,
	}
	if s.state.Ship.Present {
		sample.ShipShield = s.state.Ship.Shield
	}
	return sample
}

// saveSnapshot creates and saves a snapshot to disk.
func (s *Simulation) saveSnapshot(bookmark *telemetry.Bookmark) {
	snapshot := s.createSnapshot(bookmark)

	path, err := telemetry.SaveSnapshot(snapshot, s.snapshotDir)
	if err != nil {
		slog.Error("failed to save snapshot", "error", err)
		return
	}

	slog.Info("snapshot saved", "path", path, "tick", s.state.Clock)
}

// createSnapshot builds a snapshot from the current state.
func (s *Simulation) createSnapshot(bookmark *telemetry.Bookmark) *telemetry.Snapshot {
	st := s.state
	snapshot := &telemetry.Snapshot{
		Version:  telemetry.SnapshotVersion,
		RunID:    s.runID,
		RNGSeed:  s.rngSeed,
		Scenario: s.scenario,
		Tick:     st.Clock,
		Ship: telemetry.ShipState{
			Present: st.Ship.Present,
			X:       st.Ship.Position.X,
			Y:       st.Ship.Position.Y,
			VelX:    st.Ship.Velocity.X,
			VelY:    st.Ship.Velocity.Y,
			Angle:   st.Ship.Angle,
			Shield:  st.Ship.Shield,
		},
		Bookmark: bookmark,
	}

	for i := 0; i < st.Baddies.Cap(); i++ {
		b := st.Baddies.At(i)
		if !b.Present() {
			continue
		}
		snapshot.Baddies = append(snapshot.Baddies, telemetry.BaddieState{
			Slot:     i,
			Kind:     b.Kind.String(),
			X:        b.Position.X,
			Y:        b.Position.Y,
			VelX:     b.Velocity.X,
			VelY:     b.Velocity.Y,
			Angle:    b.Angle,
			Health:   b.Health,
			Cooldown: b.Cooldown,
			Frozen:   b.Frozen,
		})
	}

	for i := 0; i < st.Projectiles.Cap(); i++ {
		p := st.Projectiles.At(i)
		if !p.Present() {
			continue
		}
		snapshot.Projectiles = append(snapshot.Projectiles, telemetry.ProjectileState{
			Slot:  i,
			Kind:  p.Kind.String(),
			Enemy: p.FiredByEnemy,
			X:     p.Position.X,
			Y:     p.Position.Y,
			VelX:  p.Velocity.X,
			VelY:  p.Velocity.Y,
			Age:   p.Age,
			Power: p.Power,
		})
	}

	return snapshot
}
