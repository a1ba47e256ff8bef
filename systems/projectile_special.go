package systems

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/skirmish/components"
	"github.com/pthm-cable/skirmish/geometry"
	"github.com/pthm-cable/skirmish/space"
)

// specialFunc is the per-kind hook run after aging and before the expiry
// check. It may remove the projectile.
type specialFunc func(s *space.State, p *components.Projectile, dt float64)

var specialLogic [components.NumProjectileKinds]specialFunc

func registerSpecial(fn specialFunc, kinds ...components.ProjectileKind) {
	for _, k := range kinds {
		specialLogic[k] = fn
	}
}

func runSpecialLogic(s *space.State, p *components.Projectile, dt float64) {
	if fn := specialLogic[p.Kind]; fn != nil {
		fn(s, p, dt)
	}
}

const missileTrailRate = 20.0 // booms per second

var (
	cyanSpeck     = components.Color{R: 0, G: 255, B: 255, A: 255}
	rocketExhaust = components.Color{R: 255, G: 255, B: 0, A: 255}
	beamColor     = components.Color{R: 255, G: 64, B: 0, A: 192}
)

func init() {
	registerSpecial(emberTrail(components.Color{R: 255, G: 255, B: 255, A: 128}, 0.1, 6), components.ProjGunChargedNormal)
	registerSpecial(freezeSpecks, components.ProjGunChargedFreeze, components.ProjGunFreeze,
		components.ProjGunFreezeHoming, components.ProjGunFreezeBurst,
		components.ProjGunFreezeShrapnel, components.ProjGunFreezePierce)
	registerSpecial(staticSpeck(components.Color{R: 0, G: 128, B: 255, A: 255}, 0.2), components.ProjGunHoming)
	registerSpecial(emberTrail(components.Color{R: 0, G: 96, B: 255, A: 128}, 0.2, 8), components.ProjGunChargedHoming)
	registerSpecial(emberTrail(components.Color{R: 255, G: 0, B: 255, A: 128}, 0.5, 8), components.ProjGunChargedPierce)
	registerSpecial(staticSpeck(components.Color{R: 255, G: 0, B: 255, A: 255}, 0.3), components.ProjGunHomingPierce)
	registerSpecial(chargedBeam, components.ProjGunChargedBeam)
	registerSpecial(rocketTrail, components.ProjRocket)
	registerSpecial(hyperRocketTrail, components.ProjHyperRocket)
	registerSpecial(missileTrail(components.Color{R: 0, G: 192, B: 255, A: 255}), components.ProjMissileFreeze)
	registerSpecial(missileBarrage, components.ProjMissileBarrage)
	registerSpecial(missileTrail(components.Color{R: 0, G: 255, B: 0, A: 255}), components.ProjMissileTriple)
	registerSpecial(missileHoming, components.ProjMissileHoming)
	registerSpecial(missilePhase, components.ProjMissilePhase)
	registerSpecial(missileBurst, components.ProjMissileBurst)
	registerSpecial(missileTrail(components.Color{R: 255, G: 0, B: 255, A: 255}), components.ProjMissilePierce)
	registerSpecial(missileBeam, components.ProjMissileBeam)
	registerSpecial(bomb, components.ProjBomb, components.ProjMegaBomb)
	registerSpecial(emberTrail(components.Color{R: 255, G: 128, B: 0, A: 128}, 0.1, 5),
		components.ProjFireballFast, components.ProjFireballSlow)
	registerSpecial(othTrail(0.2, 4, 4*math.Pi), components.ProjOthHoming)
	registerSpecial(othTrail(0.5, 9, 4*math.Pi), components.ProjOthRocket)
	registerSpecial(othSpray, components.ProjOthSpray)
}

func emberTrail(color components.Color, lifetime, radius float64) specialFunc {
	return func(s *space.State, p *components.Projectile, _ float64) {
		s.InsertParticle(components.Particle{
			Kind:     components.ParticleEmber,
			Color:    color,
			Position: p.Position,
			Angle:    p.Angle,
			Lifetime: lifetime,
			Param1:   radius,
		})
	}
}

func staticSpeck(color components.Color, lifetime float64) specialFunc {
	return func(s *space.State, p *components.Projectile, _ float64) {
		s.AddSpeck(color, lifetime, p.Position, geometry.Zero)
	}
}

func othTrail(lifetime, radius, spin float64) specialFunc {
	return func(s *space.State, p *components.Projectile, _ float64) {
		s.InsertParticle(components.Particle{
			Kind:     components.ParticleOthFragment,
			Color:    components.Magenta,
			Position: p.Position,
			Angle:    p.Angle,
			Lifetime: lifetime,
			Param1:   radius,
			Param2:   spin,
		})
	}
}

func othSpray(s *space.State, p *components.Projectile, dt float64) {
	if s.Clock%2 == 1 {
		othTrail(0.1, 5, 2*math.Pi)(s, p, dt)
	}
}

func freezeSpecks(s *space.State, p *components.Projectile, dt float64) {
	n, lifetime := 1, 0.3
	switch p.Kind {
	case components.ProjGunChargedFreeze:
		emberTrail(components.Color{R: 0, G: 255, B: 255, A: 128}, 0.2, 6)(s, p, dt)
		n, lifetime = 2, 1.0
	case components.ProjGunFreezeShrapnel:
		lifetime = 0.2
	}
	for i := 0; i < n; i++ {
		s.AddSpeck(cyanSpeck, lifetime, p.Position, geometry.Polar(30, s.Random(0, 2*math.Pi)))
	}
}

// chargedBeam grows over its lifetime. It destroys enemy projectiles inside
// its radius and damages baddies at a rate that sums to one splash over the
// whole lifetime.
func chargedBeam(s *space.State, p *components.Projectile, dt float64) {
	radius := p.Data.SplashRadius * (p.Age / p.Data.Lifetime)
	for i := 0; i < s.Projectiles.Cap(); i++ {
		other := s.Projectiles.At(i)
		if !other.Present() || !other.FiredByEnemy || other.Data.Has(components.ProjNoHit) {
			continue
		}
		if geometry.Within(other.Position, p.Position, radius) {
			s.AddSpeck(components.White, 1.0, other.Position, other.Velocity)
			other.Kind = components.ProjNothing
		}
	}
	for i := 0; i < s.Baddies.Cap(); i++ {
		b := s.Baddies.At(i)
		if !b.Present() || b.Data.Properties&components.BaddieIncorporeal != 0 {
			continue
		}
		if geometry.Within(b.Position, p.Position, radius+b.Data.OverallBoundingRadius) {
			s.Rules.DamageBaddie(s, space.BaddieDamage{
				Baddie: b,
				Kind:   p.Data.DamageKind,
				Amount: p.Data.SplashDamage * p.Power * (dt / p.Data.Lifetime),
			})
		}
	}
}

// exhaust returns a speck velocity trailing behind the projectile.
func exhaust(s *space.State, p *components.Projectile, spread float64) r2.Vec {
	back := r2.Scale(-s.Random(0, 0.3), p.Velocity)
	return r2.Rotate(back, s.Random(-spread, spread), geometry.Zero)
}

func rocketTrail(s *space.State, p *components.Projectile, _ float64) {
	s.AddSpeck(rocketExhaust, 1.0, p.Position, exhaust(s, p, math.Pi/6))
}

func hyperRocketTrail(s *space.State, p *components.Projectile, _ float64) {
	for i := 0; i < 6; i++ {
		s.AddSpeck(rocketExhaust, s.Random(1, 2), p.Position, exhaust(s, p, math.Pi/36))
	}
}

// crossed reports whether rate*age passed an integer boundary during the last
// dt, so periodic emission never repeats within one tick.
func crossed(rate, age, dt float64) bool {
	return math.Ceil(rate*age) > math.Ceil(rate*(age-dt))
}

func leaveMissileTrail(s *space.State, p *components.Projectile, dt float64, color components.Color) {
	if !crossed(missileTrailRate, p.Age, dt) {
		return
	}
	s.InsertParticle(components.Particle{
		Kind:     components.ParticleBoom,
		Color:    color,
		Position: p.Position,
		Lifetime: 0.5,
		Param1:   10,
	})
}

func missileTrail(color components.Color) specialFunc {
	return func(s *space.State, p *components.Projectile, dt float64) {
		leaveMissileTrail(s, p, dt, color)
	}
}

// missileBarrage releases triple missiles at four age thresholds: one at
// launch, then pairs offset further sideways each time.
func missileBarrage(s *space.State, p *components.Projectile, dt float64) {
	for i := 0; i < 4; i++ {
		threshold := 0.33 * p.Data.Lifetime * float64(i)
		if !(p.Age > threshold && p.Age-dt <= threshold) {
			continue
		}
		offset := 24 * float64(i)
		first := 0
		if i == 0 {
			first = 1
		}
		for j := first; j <= 1; j++ {
			side := -offset
			if j == 1 {
				side = offset
			}
			s.AddProjectile(components.ProjMissileTriple, p.FiredByEnemy,
				r2.Add(p.Position, geometry.Polar(side, p.Angle+math.Pi/2)), p.Angle, p.Power)
		}
	}
}

func missileHoming(s *space.State, p *components.Projectile, dt float64) {
	leaveMissileTrail(s, p, dt, components.Color{R: 0, G: 64, B: 255, A: 255})
	missilePhase(s, p, dt)
}

// missilePhase wobbles sideways with amplitude Param.
func missilePhase(s *space.State, p *components.Projectile, dt float64) {
	leaveMissileTrail(s, p, dt, components.Color{R: 192, G: 192, B: 64, A: 255})
	speed := p.Data.Speed
	local := r2.Vec{X: speed, Y: p.Param * speed * math.Cos(30*p.Age)}
	p.Velocity = r2.Rotate(local, p.Angle, geometry.Zero)
}

// missileBurst splits into a ring of rockets when something is close ahead
// or when it expires.
func missileBurst(s *space.State, p *components.Projectile, dt float64) {
	leaveMissileTrail(s, p, dt, components.Color{R: 192, G: 96, B: 0, A: 255})
	ahead := s.RayImpact(p.Position, geometry.WithLen(p.Velocity, 100), space.SkipShip|space.SkipBaddies, components.ShipUID)
	if ahead.Type == space.ImpactNothing && p.Age < p.Data.Lifetime {
		return
	}
	for a := 0.0; a < 360; a += 40 {
		angle := geometry.Mod2Pi(p.Angle + deg(a))
		s.AddProjectile(components.ProjRocket, p.FiredByEnemy, p.Position, angle, p.Power)
	}
	p.Kind = components.ProjNothing
	s.PlaySound(components.SoundFireRocket)
}

// missileBeam rides the ship's nose while charging, then fires a beam from
// the ship and detonates where it lands.
func missileBeam(s *space.State, p *components.Projectile, dt float64) {
	start := r2.Add(s.Ship.Position, geometry.Polar(20, s.Ship.Angle))
	if p.Age < p.Data.Lifetime {
		p.Position = start
		p.Angle = geometry.Mod2Pi(p.Angle + 5*dt)
		return
	}
	impact := s.RayImpact(start, geometry.Polar(1000, s.Ship.Angle), space.SkipShip, components.ShipUID)
	p.Position = impact.Position
	if impact.Type == space.ImpactBaddie {
		onHitBaddie(s, p, impact.Baddie, impact.Component, impact.Normal)
	} else {
		onHitWall(s, p, impact.Normal)
	}
	s.AddBeam(beamColor, start, r2.Sub(impact.Position, start), 0.3, 5)
	s.PlaySound(components.SoundFireMissileBeam)
}

// bomb spins until it expires, then explodes in place. Live mega bombs blink
// twice a second, speeding up to six times a second after two seconds.
func bomb(s *space.State, p *components.Projectile, dt float64) {
	age := p.Age
	if age >= p.Data.Lifetime {
		onHitWall(s, p, geometry.Zero)
	} else {
		p.Angle = geometry.Mod2Pi(p.Angle + 1.5*dt)
	}
	// A bomb that just exploded has no kind left and stops blinking.
	if p.Kind != components.ProjMegaBomb {
		return
	}
	rate := 2.0
	if age >= 2.0 {
		rate = 6.0
	}
	if crossed(rate, age, dt) {
		s.PlaySound(components.SoundBlinkMegaBomb)
	}
}
