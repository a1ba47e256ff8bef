package space

import (
	"math"

	"github.com/pthm-cable/skirmish/components"
	"github.com/pthm-cable/skirmish/geometry"
	"gonum.org/v1/gonum/spatial/r2"
)

// BaddieDamage asks the rules to damage one component of a baddie.
type BaddieDamage struct {
	Baddie    *components.Baddie
	Component int
	Kind      components.DamageFlags
	Amount    float64
	// Freeze freezes the baddie unless its struck component is freeze-immune,
	// even when the damage itself is resisted.
	Freeze bool
}

// ShipDamage asks the rules to damage the ship. Impulse is added to the ship's
// velocity.
type ShipDamage struct {
	Amount    float64
	Collision bool
	Impulse   r2.Vec
}

// Rules resolves cross-entity effects. Behaviours and the projectile lifecycle
// never mutate doors, walls, the ship or other baddies directly; they send a
// request through Rules instead.
type Rules interface {
	TryOpenDoor(s *State, door *components.Door, kind components.DamageFlags) bool
	TryBreakWall(s *State, wall *components.Wall, kind components.DamageFlags, impact r2.Vec)
	DamageBaddie(s *State, req BaddieDamage) bool
	DamageShip(s *State, req ShipDamage)
}

// Effects receives presentation cues.
type Effects interface {
	PlaySound(id components.SoundID)
	ShakeCamera(horizontal, vertical float64)
}

// NopEffects discards every cue.
type NopEffects struct{}

func (NopEffects) PlaySound(components.SoundID) {}
func (NopEffects) ShakeCamera(float64, float64) {}

// FreezeDuration is how long a freeze hit stops a baddie, in seconds.
const FreezeDuration = 1.0

// DefaultRules is the in-core rule set used by headless runs.
type DefaultRules struct {
	KnockbackScale float64
}

// TryOpenDoor opens a closed door if the damage kind matches its kind.
func (DefaultRules) TryOpenDoor(s *State, door *components.Door, kind components.DamageFlags) bool {
	if !door.Present() || door.IsOpen || !components.CanOpenDoor(door.Kind, kind) {
		return false
	}
	door.IsOpen = true
	s.Counters.DoorsOpened++
	s.PlaySound(components.SoundDoorOpen)
	return true
}

// TryBreakWall removes a destructible wall the damage can break. A wall that
// resists flares instead.
func (DefaultRules) TryBreakWall(s *State, wall *components.Wall, kind components.DamageFlags, impact r2.Vec) {
	if !wall.Destructible() {
		return
	}
	if !components.CanBreakWall(wall.Kind, kind) {
		wall.Flare = 1
		return
	}
	s.InsertParticle(components.Particle{
		Kind:     components.ParticleBoom,
		Color:    components.White,
		Position: wall.Position,
		Lifetime: 0.5,
		Param1:   wall.BoundingRadius,
	})
	for i := 0; i < 20; i++ {
		s.AddSpeck(components.White, s.Random(0.5, 1.5), impact,
			geometry.Polar(s.Random(10, 70), s.Random(-math.Pi, math.Pi)))
	}
	wall.Kind = components.WallNothing
	s.Counters.WallsBroken++
	s.PlaySound(components.SoundWallBreak)
}

// DamageBaddie applies damage unless the struck component is immune to every
// damage kind involved. Freeze damage freezes a surviving baddie; a baddie
// whose health drops to zero is removed.
func (DefaultRules) DamageBaddie(s *State, req BaddieDamage) bool {
	b := req.Baddie
	if !b.Present() {
		return false
	}
	comp := &b.Data.Components[req.Component]
	freezable := comp.Immunities&components.DamageFreeze == 0
	if req.Freeze && freezable {
		b.Frozen = FreezeDuration
	}
	if req.Amount <= 0 || req.Kind&^comp.Immunities == 0 {
		return false
	}
	b.Health -= req.Amount
	if b.Health <= 0 {
		killBaddie(s, b)
		return true
	}
	if req.Kind&components.DamageFreeze != 0 && freezable {
		b.Frozen = FreezeDuration
	}
	return true
}

func killBaddie(s *State, b *components.Baddie) {
	s.InsertParticle(components.Particle{
		Kind:     components.ParticleBoom,
		Color:    components.White,
		Position: b.Position,
		Lifetime: 0.5,
		Param1:   b.Data.OverallBoundingRadius * 2,
	})
	for i := 0; i < 6; i++ {
		s.InsertParticle(components.Particle{
			Kind:     components.ParticleOthFragment,
			Color:    components.Magenta,
			Position: b.Position,
			Velocity: geometry.Polar(s.Random(50, 150), s.Random(-math.Pi, math.Pi)),
			Angle:    s.Random(-math.Pi, math.Pi),
			Lifetime: s.Random(0.5, 1.5),
			Param1:   8,
			Param2:   s.Random(-2*math.Pi, 2*math.Pi),
		})
	}
	b.Kind = components.BaddieNothing
	s.Counters.BaddiesKilled++
	s.PlaySound(components.SoundKillBaddie)
}

// DamageShip drains the shield and applies the knockback impulse.
func (r DefaultRules) DamageShip(s *State, req ShipDamage) {
	if !s.Ship.Present {
		return
	}
	scale := r.KnockbackScale
	if scale == 0 {
		scale = 1
	}
	s.Ship.Velocity = r2.Add(s.Ship.Velocity, r2.Scale(scale, req.Impulse))
	if req.Amount <= 0 {
		return
	}
	s.Ship.Shield = math.Max(0, s.Ship.Shield-req.Amount)
	s.Counters.ShipDamage += req.Amount
	s.PlaySound(components.SoundShipHurt)
}
