package systems

import (
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/skirmish/components"
	"github.com/pthm-cable/skirmish/geometry"
	"github.com/pthm-cable/skirmish/space"
)

// TickProjectiles advances every live projectile by dt, in slot order.
// Projectiles spawned during this tick wait for the next one.
func TickProjectiles(s *space.State, dt float64) {
	for i := 0; i < s.Projectiles.Cap(); i++ {
		p := s.Projectiles.At(i)
		if !p.Present() || s.BornThisTick(p.BornTick) {
			continue
		}
		tickProjectile(s, p, dt)
	}
}

func tickProjectile(s *space.State, p *components.Projectile, dt float64) {
	p.Age += dt
	runSpecialLogic(s, p, dt)
	if !p.Present() {
		return
	}
	if p.Age > p.Data.Lifetime {
		p.Kind = components.ProjNothing
		return
	}

	var impact space.Impact
	delta := r2.Scale(dt, p.Velocity)
	if p.Data.Has(components.ProjNoHit) {
		impact = space.Impact{Type: space.ImpactNothing, Position: r2.Add(p.Position, delta)}
	} else {
		skip := space.SkipShip
		if p.FiredByEnemy {
			skip = space.SkipBaddies
		}
		phased := p.Data.Has(components.ProjPhased)
		if phased {
			skip |= space.SkipWalls | space.SkipDoors
		}
		impact = s.RayImpact(p.Position, delta, skip, p.LastHit)

		// Ship-fired phased projectiles pass through doors but still open them.
		if phased && !p.FiredByEnemy {
			for i := range s.Doors {
				d := &s.Doors[i]
				if _, _, ok := geometry.RayHitsDoorOutside(d, p.Position, delta); ok {
					s.Rules.TryOpenDoor(s, d, p.Data.DamageKind)
				}
			}
		}
	}

	p.Position = impact.Position
	if impact.Type != space.ImpactNothing {
		s.Counters.Impacts[impact.Type]++
		s.Counters.ImpactAges = append(s.Counters.ImpactAges, p.Age)
	}

	switch impact.Type {
	case space.ImpactNothing:
		if p.Data.HomingRate != 0 {
			homeIn(s, p, dt)
		}
	case space.ImpactBaddie:
		onHitBaddie(s, p, impact.Baddie, impact.Component, impact.Normal)
	case space.ImpactShip:
		onHitShip(s, p, impact.Normal)
	case space.ImpactDoorOutside:
		if !p.FiredByEnemy {
			s.Rules.TryOpenDoor(s, impact.Door, p.Data.DamageKind)
		}
		onHitWall(s, p, impact.Normal)
	case space.ImpactDoorInside, space.ImpactWall:
		if impact.Wall != nil {
			s.Rules.TryBreakWall(s, impact.Wall, p.Data.DamageKind, p.Position)
		}
		onHitWall(s, p, impact.Normal)
	}
}
