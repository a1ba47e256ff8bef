// Package space holds the world state of the current room: the ship, the
// fixed-capacity projectile and baddie arenas, doors, walls and marker nodes,
// the world impact query, and the spawn calls used by behaviours.
package space

import (
	"log/slog"
	"math/rand"

	"github.com/pthm-cable/skirmish/components"
	"github.com/pthm-cable/skirmish/config"
	"github.com/pthm-cable/skirmish/geometry"
	"gonum.org/v1/gonum/spatial/r2"
)

// Counters accumulate world events between telemetry flushes.
type Counters struct {
	ProjectilesSpawned int
	BaddiesSpawned     int
	SpawnFailures      int
	Impacts            [NumImpactTypes]int
	BaddiesKilled      int
	DoorsOpened        int
	WallsBroken        int
	ShipDamage         float64
	// Age of each projectile at the moment it struck something.
	ImpactAges []float64
}

// Reset clears the counters, keeping the ImpactAges buffer.
func (c *Counters) Reset() {
	ages := c.ImpactAges[:0]
	*c = Counters{ImpactAges: ages}
}

// State is the simulation state of one room.
type State struct {
	Ship        components.Ship
	Projectiles *components.Arena[components.Projectile]
	Baddies     *components.Arena[components.Baddie]
	Doors       []components.Door
	Walls       []components.Wall
	Nodes       []components.Node
	Particles   *ParticleStore

	Catalog *Catalog
	Rules   Rules
	Effects Effects

	// Clock counts completed ticks. Entities record it at spawn.
	Clock    uint64
	Counters Counters

	rng *rand.Rand
}

// NewState creates an empty room sized by the capacity config. Rules default
// to DefaultRules and effects to NopEffects.
func NewState(cfg *config.Config, catalog *Catalog, seed int64) *State {
	s := &State{
		Ship: components.Ship{
			Present:   true,
			Radius:    cfg.Ship.Radius,
			Shield:    cfg.Ship.MaxShield,
			MaxShield: cfg.Ship.MaxShield,
		},
		Projectiles: components.NewArena(cfg.Capacity.Projectiles, (*components.Projectile).Present),
		Baddies:     components.NewArena(cfg.Capacity.Baddies, (*components.Baddie).Present),
		Particles:   NewParticleStore(cfg.Capacity.Particles, cfg.Capacity.Specks),
		Catalog:     catalog,
		Rules:       DefaultRules{KnockbackScale: cfg.Ship.KnockbackScale},
		Effects:     NopEffects{},
		rng:         rand.New(rand.NewSource(seed)),
	}
	return s
}

// Random returns a uniform value in [min, max).
func (s *State) Random(min, max float64) float64 {
	return min + s.rng.Float64()*(max-min)
}

// RandInt returns a uniform integer in [min, max].
func (s *State) RandInt(min, max int) int {
	if max <= min {
		return min
	}
	return min + s.rng.Intn(max-min+1)
}

// AddProjectile spawns a projectile in the first free slot, moving at its
// kind's speed along angle. It returns ok=false when the pool is full.
func (s *State) AddProjectile(kind components.ProjectileKind, firedByEnemy bool, pos r2.Vec, angle, power float64) (*components.Projectile, bool) {
	slot, _, ok := s.Projectiles.Insert()
	if !ok {
		s.Counters.SpawnFailures++
		slog.Debug("projectile pool full", "kind", kind.String(), "tick", s.Clock)
		return nil, false
	}
	data := s.Catalog.Projectile(kind)
	*slot = components.Projectile{
		Kind:         kind,
		Data:         data,
		FiredByEnemy: firedByEnemy,
		Position:     pos,
		Velocity:     geometry.Polar(data.Speed, angle),
		Angle:        geometry.Mod2Pi(angle),
		Power:        power,
		BornTick:     s.Clock,
	}
	s.Counters.ProjectilesSpawned++
	return slot, true
}

// BaddieSpawn describes a baddie to add. A nil State gets the kind's zero state.
type BaddieSpawn struct {
	Kind     components.BaddieKind
	Position r2.Vec
	Angle    float64
	State    components.BaddieState
}

// AddBaddie spawns a baddie in the first free slot at full health. It returns
// ok=false when the pool is full.
func (s *State) AddBaddie(spawn BaddieSpawn) (*components.Baddie, bool) {
	slot, uid, ok := s.Baddies.Insert()
	if !ok {
		s.Counters.SpawnFailures++
		slog.Debug("baddie pool full", "kind", spawn.Kind.String(), "tick", s.Clock)
		return nil, false
	}
	data := s.Catalog.Baddie(spawn.Kind)
	state := spawn.State
	if state == nil {
		state = components.NewBaddieState(spawn.Kind)
	}
	*slot = components.Baddie{
		Kind:     spawn.Kind,
		UID:      uid,
		Data:     data,
		Position: spawn.Position,
		Angle:    geometry.Mod2Pi(spawn.Angle),
		Health:   data.MaxHealth,
		State:    state,
		BornTick: s.Clock,
	}
	s.Counters.BaddiesSpawned++
	return slot, true
}

// BornThisTick reports whether an entity spawned during the current tick.
// Such entities are first simulated on the next tick.
func (s *State) BornThisTick(bornTick uint64) bool {
	return bornTick == s.Clock
}

// InsertParticle adds a decorative particle. Failure is not an error.
func (s *State) InsertParticle(p components.Particle) bool {
	return s.Particles.Insert(p)
}

// AddSpeck adds a small drifting speck.
func (s *State) AddSpeck(color components.Color, lifetime float64, pos, vel r2.Vec) bool {
	return s.Particles.Insert(components.Particle{
		Kind:     components.ParticleSpeck,
		Color:    color,
		Position: pos,
		Velocity: vel,
		Lifetime: lifetime,
	})
}

// AddBeam adds a beam particle from start along delta.
func (s *State) AddBeam(color components.Color, start, delta r2.Vec, lifetime, semiWidth float64) bool {
	return s.Particles.Insert(components.Particle{
		Kind:     components.ParticleBeam,
		Color:    color,
		Position: start,
		Angle:    geometry.Theta(delta),
		Lifetime: lifetime,
		Param1:   r2.Norm(delta),
		Param2:   semiWidth,
	})
}

// PlaySound forwards a sound cue to the effects collaborator.
func (s *State) PlaySound(id components.SoundID) {
	s.Effects.PlaySound(id)
}

// ShakeCamera forwards a camera shake to the effects collaborator.
func (s *State) ShakeCamera(horizontal, vertical float64) {
	s.Effects.ShakeCamera(horizontal, vertical)
}
