package systems

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/skirmish/components"
	"github.com/pthm-cable/skirmish/geometry"
	"github.com/pthm-cable/skirmish/space"
)

func tickOthCrab1(s *space.State, b *components.Baddie, dt float64) {
	flyTowardsShip(s, b, dt, 2, 40, 100, 20, 100, 100)
	if b.Cooldown <= 0 && shipWithinAngle(s, b, 0, deg(6)) && canSeeShip(s, b) {
		if _, ok := fireBaddieProjectile(s, b, components.ProjOthRocket, 15, 0, 0); ok {
			s.PlaySound(components.SoundFireOthRocket)
			b.Cooldown = 2.0
		}
	}
}

// tickOthCrab2 runs two independent weapons: rockets on the shared cooldown
// and a twin spray on its own timer.
func tickOthCrab2(s *space.State, b *components.Baddie, dt float64) {
	st := b.State.(*components.Crab2State)
	flyTowardsShip(s, b, dt, 2, 100, 200, 50, 100, 100)
	st.SprayCooldown = math.Max(0, st.SprayCooldown-dt)
	if b.Cooldown <= 0 && shipWithinAngle(s, b, 0, deg(6)) {
		if _, ok := fireBaddieProjectile(s, b, components.ProjOthRocket, 15, 0, 0); ok {
			s.PlaySound(components.SoundFireOthRocket)
			b.Cooldown = 1.5
		}
	}
	if st.SprayCooldown <= 0 && shipWithinAngle(s, b, 0, deg(8)) && canSeeShip(s, b) {
		fired := false
		for i := -1; i <= 1; i += 2 {
			if _, ok := fireBaddieProjectile(s, b, components.ProjOthSpray, 15, deg(14*float64(i)), 0); ok {
				fired = true
			}
		}
		if fired {
			s.PlaySound(components.SoundFireOthSpray)
			st.SprayCooldown = 0.9
		}
	}
}

// tickOthCrawler leads its shots so they meet the ship where it is going.
func tickOthCrawler(s *space.State, b *components.Baddie, dt float64) {
	crawlAround(s, b, dt, true, 3, 40, 100)
	if b.Cooldown > 0 || !canSeeShip(s, b) {
		return
	}
	speed := s.Catalog.Projectile(components.ProjOthMinirocket).Speed
	rel, ok := geometry.LeadTarget(r2.Sub(s.Ship.Position, b.Position), s.Ship.Velocity, speed)
	if !ok {
		return
	}
	if _, ok := fireBaddieProjectile(s, b, components.ProjOthMinirocket, 0, geometry.Theta(rel)-b.Angle, 0); ok {
		s.PlaySound(components.SoundFireOthRocket)
		b.Cooldown = s.Random(1, 2)
	}
}

func tickOthOrb1(s *space.State, b *components.Baddie, dt float64) {
	driftTowardsShip(s, b, dt, 80, 20, 100)
	if b.Cooldown > 0 || !shipInRange(s, b, 500) {
		return
	}
	radius := b.Data.MainBody().BoundingRadius
	fired := false
	for d := 0; d < 360; d += 20 {
		if _, ok := fireBaddieProjectile(s, b, components.ProjOthSpray, radius, deg(float64(d)), 0); ok {
			fired = true
		}
	}
	if fired {
		s.PlaySound(components.SoundFireOthSpray)
		b.Cooldown = 2.0
	}
}

func tickOthOrb2(s *space.State, b *components.Baddie, dt float64) {
	driftTowardsShip(s, b, dt, 80, 20, 100)
	if b.Cooldown <= 0 && shipInRange(s, b, 500) && canSeeShip(s, b) {
		radius := b.Data.MainBody().BoundingRadius
		if _, ok := fireBaddieProjectile(s, b, components.ProjOthHoming, radius, s.Random(-math.Pi, math.Pi), 0); ok {
			b.Cooldown = 0.1
		}
	}
}

// tickOthRazor launches either homing or bouncing, then spins.
func tickOthRazor(s *space.State, b *components.Baddie, dt float64) {
	st := b.State.(*components.RazorState)
	switch st.Mode {
	case components.RazorLaunchHoming:
		b.Velocity = geometry.Polar(s.Random(300, 500), b.Angle)
		st.Mode = components.RazorHoming
	case components.RazorLaunchBounce:
		b.Velocity = geometry.Polar(300, b.Angle)
		st.Mode = components.RazorBouncing
	}
	switch st.Mode {
	case components.RazorHoming:
		driftTowardsShip(s, b, dt, 400, 500, 100)
		b.Angle = geometry.Mod2Pi(b.Angle + math.Pi*dt)
	case components.RazorBouncing:
		b.Velocity = geometry.WithLen(b.Velocity, 300)
		b.Angle = geometry.Mod2Pi(b.Angle - math.Pi*dt)
	default:
		st.Mode = components.RazorLaunchHoming
	}
}

// tickOthSnapdragon runs a nine-step attack cycle. Below 15% health it goes
// crazy: every action restarts the cycle at a fast, weak rocket.
func tickOthSnapdragon(s *space.State, b *components.Baddie, dt float64) {
	st := b.State.(*components.SnapdragonState)
	flyTowardsShip(s, b, dt, 5, 300, 300, 200, 0, 100)
	if b.Cooldown > 0 {
		return
	}
	crazy := b.Health <= 0.15*b.Data.MaxHealth
	if crazy {
		st.Step = 0
	}
	switch st.Step {
	case 0, 1, 2, 4, 6:
		if !crazy && !shipWithinAngle(s, b, 0, deg(6)) {
			return
		}
		p, ok := fireBaddieProjectile(s, b, components.ProjOthRocket, 30, 0, 0)
		if !ok {
			return
		}
		p.Power = 0.5
		b.Cooldown = 2.0
		if crazy {
			p.Power = 0.3
			b.Cooldown = 0.75
		}
		s.PlaySound(components.SoundFireOthRocket)
		st.Step++
	case 3, 7:
		radius := b.Data.MainBody().BoundingRadius
		for d := 0; d < 360; d += 15 {
			fireBaddieProjectile(s, b, components.ProjOthSpray, radius, deg(float64(d)), 0)
		}
		s.PlaySound(components.SoundFireOthSpray)
		b.Cooldown = 2.0
		st.Step++
	case 5:
		launched := 0
		for i := -1; i <= 1; i++ {
			if _, ok := s.AddBaddie(space.BaddieSpawn{
				Kind:     components.BaddieOthRazor,
				Position: b.Position,
				Angle:    b.Angle + math.Pi + float64(i)*deg(45),
			}); !ok {
				break
			}
			launched++
		}
		if launched == 0 {
			return
		}
		s.PlaySound(components.SoundLaunchOthRazors)
		b.Cooldown = s.Random(2, 4)
		st.Step++
	case 8:
		launched := 0
		for i := 0; i < 4; i++ {
			if _, ok := s.AddBaddie(space.BaddieSpawn{
				Kind:     components.BaddieOthRazor,
				Position: b.Position,
				Angle:    b.Angle + deg(45) + float64(i)*deg(90),
				State:    &components.RazorState{Mode: components.RazorLaunchBounce},
			}); !ok {
				break
			}
			launched++
		}
		if launched == 0 {
			return
		}
		s.PlaySound(components.SoundLaunchOthRazors)
		b.Cooldown = s.Random(2, 4)
		st.Step = (st.Step + 1) % components.SnapdragonCycleLength
	default:
		st.Step = 0
	}
}
