package systems

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/skirmish/components"
	"github.com/pthm-cable/skirmish/geometry"
	"github.com/pthm-cable/skirmish/space"
)

// homingTurnCost weighs angular deviation against distance when a
// ship-fired homing projectile picks its target.
const homingTurnCost = 100.0

// homeIn turns a homing projectile towards its target by at most
// HomingRate*dt and resets its speed. Enemy projectiles chase the ship;
// ship projectiles chase the cheapest eligible baddie, never the one they
// last hit. With no eligible target the projectile is left unchanged.
func homeIn(s *space.State, p *components.Projectile, dt float64) {
	heading := geometry.Theta(p.Velocity)
	goal, ok := homingGoal(s, p, heading)
	if !ok {
		return
	}
	angle := geometry.AngleTowards(heading, dt*p.Data.HomingRate, geometry.Theta(r2.Sub(goal, p.Position)))
	p.Velocity = geometry.Polar(p.Data.Speed, angle)
	p.Angle = angle
}

func homingGoal(s *space.State, p *components.Projectile, heading float64) (r2.Vec, bool) {
	if p.FiredByEnemy {
		return s.Ship.Position, s.Ship.Present
	}
	best := math.Inf(1)
	var goal r2.Vec
	found := false
	for i := 0; i < s.Baddies.Cap(); i++ {
		b := s.Baddies.At(i)
		if !b.Present() || b.Data.Properties&components.BaddieNoHomingProjectile != 0 || b.UID == p.LastHit {
			continue
		}
		rel := r2.Sub(b.Position, p.Position)
		cost := r2.Norm(rel) + math.Abs(geometry.Mod2Pi(geometry.Theta(rel)-heading))*homingTurnCost
		if cost < best {
			best = cost
			goal = b.Position
			found = true
		}
	}
	return goal, found
}
