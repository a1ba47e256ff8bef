package systems

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/skirmish/components"
	"github.com/pthm-cable/skirmish/geometry"
	"github.com/pthm-cable/skirmish/space"
)

func deg(d float64) float64 {
	return d * math.Pi / 180
}

// flyTowardsPosition steers a baddie like a ship: it turns towards goal at
// turnRate, thrusts forward up to maxSpeed while farther than minDistance
// and brakes otherwise, and bleeds off sideways drift at lateralDecel.
func flyTowardsPosition(b *components.Baddie, dt float64, goal r2.Vec,
	turnRate, maxSpeed, forwardAccel, lateralDecel, minDistance float64) {
	rel := r2.Sub(goal, b.Position)
	b.Angle = geometry.AngleTowards(b.Angle, turnRate*dt, geometry.Theta(rel))

	unit := geometry.Polar(1, b.Angle)
	forward := r2.Dot(b.Velocity, unit)
	lateral := r2.Sub(b.Velocity, r2.Scale(forward, unit))

	if r2.Norm(rel) > minDistance {
		forward = math.Min(maxSpeed, forward+forwardAccel*dt)
	} else {
		forward = approach(forward, 0, forwardAccel*dt)
	}
	lateralSpeed := approach(r2.Norm(lateral), 0, lateralDecel*dt)
	lateral = geometry.WithLen(lateral, lateralSpeed)

	b.Velocity = r2.Add(r2.Scale(forward, unit), lateral)
}

// flyTowardsShip flies at the ship. Inside attackRange the baddie turns twice
// as fast to bring its guns to bear. With no ship present it coasts to a stop.
func flyTowardsShip(s *space.State, b *components.Baddie, dt float64,
	turnRate, maxSpeed, forwardAccel, lateralDecel, attackRange, minDistance float64) {
	if !s.Ship.Present {
		b.Velocity = geometry.WithLen(b.Velocity, approach(r2.Norm(b.Velocity), 0, forwardAccel*dt))
		return
	}
	if geometry.Within(b.Position, s.Ship.Position, attackRange) {
		turnRate *= 2
	}
	flyTowardsPosition(b, dt, s.Ship.Position, turnRate, maxSpeed, forwardAccel, lateralDecel, minDistance)
}

// driftTowardsShip accelerates straight at the ship without turning, keeping
// under maxSpeed, and slows down once within minDistance.
func driftTowardsShip(s *space.State, b *components.Baddie, dt float64, maxSpeed, accel, minDistance float64) {
	if s.Ship.Present && !geometry.Within(b.Position, s.Ship.Position, minDistance) {
		b.Velocity = r2.Add(b.Velocity, geometry.WithLen(r2.Sub(s.Ship.Position, b.Position), accel*dt))
	} else {
		b.Velocity = geometry.WithLen(b.Velocity, approach(r2.Norm(b.Velocity), 0, accel*dt))
	}
	if r2.Norm(b.Velocity) > maxSpeed {
		b.Velocity = geometry.WithLen(b.Velocity, maxSpeed)
	}
}

// crawlAround keeps a baddie on the nearest surface below it, standing on
// the surface and crawling along it. Off any surface it turns in place and
// slows down.
func crawlAround(s *space.State, b *components.Baddie, dt float64, rightwards bool, turnRate, maxSpeed, accel float64) {
	radius := b.Data.MainBody().BoundingRadius
	down := geometry.Polar(radius*3, b.Angle+math.Pi)
	under := s.RayImpact(b.Position, down, space.SkipShip|space.SkipBaddies|space.SkipDoorInside, b.UID)

	dir := 1.0
	if rightwards {
		dir = -1.0
	}
	if under.Type == space.ImpactNothing {
		b.Angle = geometry.Mod2Pi(b.Angle + dir*turnRate*dt)
		b.Velocity = geometry.WithLen(b.Velocity, approach(r2.Norm(b.Velocity), 0, accel*dt))
		return
	}

	b.Angle = geometry.AngleTowards(b.Angle, turnRate*dt, geometry.Theta(under.Normal))
	tangent := r2.Scale(dir, geometry.Perp(under.Normal))
	speed := math.Min(maxSpeed, r2.Dot(b.Velocity, tangent)+accel*dt)
	// Close the gap to the surface so the crawler stays attached.
	gap := under.Distance - radius
	b.Velocity = r2.Add(r2.Scale(speed, tangent), r2.Scale(-gap, under.Normal))
}

func approach(v, goal, step float64) float64 {
	if v > goal {
		return math.Max(goal, v-step)
	}
	return math.Min(goal, v+step)
}

// shipWithinAngle reports whether the ship lies within maxAngle of the
// baddie's heading rotated by offset.
func shipWithinAngle(s *space.State, b *components.Baddie, offset, maxAngle float64) bool {
	if !s.Ship.Present {
		return false
	}
	bearing := geometry.Theta(r2.Sub(s.Ship.Position, b.Position))
	return math.Abs(geometry.Mod2Pi(bearing-(b.Angle+offset))) <= maxAngle
}

func shipInRange(s *space.State, b *components.Baddie, dist float64) bool {
	return s.Ship.Present && geometry.Within(b.Position, s.Ship.Position, dist)
}

// canSeeShip reports whether a ray from the baddie reaches the ship before
// any wall or door. Other baddies do not block the view.
func canSeeShip(s *space.State, b *components.Baddie) bool {
	if !s.Ship.Present {
		return false
	}
	impact := s.RayImpact(b.Position, r2.Sub(s.Ship.Position, b.Position), space.SkipBaddies, b.UID)
	return impact.Type == space.ImpactShip
}

// hasClearPath reports whether the baddie's main body could travel straight
// to pos without touching a wall or door.
func hasClearPath(s *space.State, b *components.Baddie, pos r2.Vec) bool {
	radius := b.Data.MainBody().BoundingRadius
	impact := s.CircleImpact(radius, b.Position, r2.Sub(pos, b.Position), space.SkipShip|space.SkipBaddies, b.UID)
	return impact.Type == space.ImpactNothing
}

// fireBaddieProjectile fires an enemy projectile from a point forward units
// out along the baddie's heading rotated by firingAngle, travelling at that
// angle plus relAngle.
func fireBaddieProjectile(s *space.State, b *components.Baddie, kind components.ProjectileKind,
	forward, firingAngle, relAngle float64) (*components.Projectile, bool) {
	theta := b.Angle + firingAngle
	pos := r2.Add(b.Position, geometry.Polar(forward, theta))
	return s.AddProjectile(kind, true, pos, theta+relAngle, 1)
}
