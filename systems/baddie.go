package systems

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/skirmish/components"
	"github.com/pthm-cable/skirmish/space"
)

// Behavior drives one baddie kind for one tick.
type Behavior func(s *space.State, b *components.Baddie, dt float64)

var behaviors [components.NumBaddieKinds]Behavior

// RegisterBehavior installs the behaviour for a kind, replacing any existing
// one.
func RegisterBehavior(kind components.BaddieKind, fn Behavior) {
	behaviors[kind] = fn
}

func init() {
	RegisterBehavior(components.BaddieOthCrab1, tickOthCrab1)
	RegisterBehavior(components.BaddieOthCrab2, tickOthCrab2)
	RegisterBehavior(components.BaddieOthCrawler, tickOthCrawler)
	RegisterBehavior(components.BaddieOthOrb1, tickOthOrb1)
	RegisterBehavior(components.BaddieOthOrb2, tickOthOrb2)
	RegisterBehavior(components.BaddieOthRazor, tickOthRazor)
	RegisterBehavior(components.BaddieOthSnapdragon, tickOthSnapdragon)
	RegisterBehavior(components.BaddieOthGunship, tickOthGunship)
}

// TickBaddies runs every live baddie for dt, in slot order. Baddies spawned
// during this tick wait for the next one.
func TickBaddies(s *space.State, dt float64) {
	for i := 0; i < s.Baddies.Cap(); i++ {
		b := s.Baddies.At(i)
		if !b.Present() || s.BornThisTick(b.BornTick) {
			continue
		}
		tickBaddie(s, b, dt)
	}
}

func tickBaddie(s *space.State, b *components.Baddie, dt float64) {
	b.Cooldown = math.Max(0, b.Cooldown-dt)
	if b.Frozen > 0 {
		b.Frozen = math.Max(0, b.Frozen-dt)
		return
	}
	if fn := behaviors[b.Kind]; fn != nil {
		fn(s, b, dt)
	}
	if b.Present() {
		moveBaddie(s, b, dt)
	}
}

// moveBaddie sweeps the main body along its velocity and bounces it off walls
// and closed doors.
func moveBaddie(s *space.State, b *components.Baddie, dt float64) {
	delta := r2.Scale(dt, b.Velocity)
	if delta == (r2.Vec{}) {
		return
	}
	radius := b.Data.MainBody().BoundingRadius
	impact := s.CircleImpact(radius, b.Position, delta,
		space.SkipShip|space.SkipBaddies|space.SkipDoorInside, b.UID)
	b.Position = impact.Position
	if impact.Type != space.ImpactNothing {
		n := impact.Normal
		if d := r2.Dot(b.Velocity, n); d < 0 {
			b.Velocity = r2.Sub(b.Velocity, r2.Scale(2*d, n))
		}
	}
}
