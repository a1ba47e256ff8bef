package systems

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/skirmish/components"
	"github.com/pthm-cable/skirmish/geometry"
	"github.com/pthm-cable/skirmish/space"
)

var explosionColor = components.Color{R: 255, G: 240, B: 224, A: 192}

// onImpact runs the effects shared by every projectile impact: splash,
// shrapnel, particles and sound, in that order.
func onImpact(s *space.State, p *components.Projectile, normal r2.Vec) {
	data := p.Data
	radius := data.SplashRadius

	if radius > 0 && data.SplashDamage > 0 {
		splash(s, p, radius)
	}

	// Shrapnel is always ship-owned, whoever fired the parent.
	if data.Shrapnel != components.ProjNothing {
		midTheta := geometry.Theta(normal)
		for i := -2; i <= 2; i++ {
			theta := midTheta + 0.2*math.Pi*(float64(i)+s.Random(-0.5, 0.5))
			shard, ok := s.AddProjectile(data.Shrapnel, false,
				r2.Add(p.Position, geometry.Polar(0.1, theta)), theta, p.Power)
			if ok && shard.Data.HomingRate == 0 {
				shard.Velocity = r2.Scale(s.Random(0.5, 1.0), shard.Velocity)
			}
		}
	}

	switch p.Kind {
	case components.ProjGunPhase, components.ProjGunFreezePhase, components.ProjGunHomingPhase,
		components.ProjGunPhaseBurst, components.ProjGunPhasePierce:
		s.AddSpeck(components.White, 1.0, p.Position, randomSpeckVelocity(s))
	default:
		if radius > 0 {
			s.InsertParticle(components.Particle{
				Kind:     components.ParticleExplosion,
				Color:    explosionColor,
				Position: p.Position,
				Lifetime: 0.15 * math.Cbrt(radius),
				Param1:   radius,
			})
		} else {
			s.InsertParticle(components.Particle{
				Kind:     components.ParticleBoom,
				Color:    components.White,
				Position: p.Position,
				Lifetime: 0.3,
				Param1:   10,
			})
		}
		for i := 0; i < 5; i++ {
			s.AddSpeck(components.White, 1.0, p.Position, randomSpeckVelocity(s))
		}
	}

	if snd := impactSound(p.Kind); snd != components.SoundNone {
		s.PlaySound(snd)
	}
}

func splash(s *space.State, p *components.Projectile, radius float64) {
	data := p.Data
	amount := data.SplashDamage * p.Power

	if s.Ship.Present && geometry.Within(s.Ship.Position, p.Position, radius) {
		s.Rules.DamageShip(s, space.ShipDamage{Amount: amount})
	}

	freeze := p.Kind == components.ProjMissileFreeze
	for i := 0; i < s.Baddies.Cap(); i++ {
		b := s.Baddies.At(i)
		if !b.Present() || b.Data.Properties&components.BaddieIncorporeal != 0 {
			continue
		}
		if geometry.Within(b.Position, p.Position, radius+b.Data.OverallBoundingRadius) {
			s.Rules.DamageBaddie(s, space.BaddieDamage{
				Baddie: b,
				Kind:   data.DamageKind,
				Amount: amount,
				Freeze: freeze,
			})
		}
	}

	if !p.FiredByEnemy {
		for i := range s.Doors {
			d := &s.Doors[i]
			if geometry.CircleTouchesDoorOutside(d, radius, p.Position) {
				s.Rules.TryOpenDoor(s, d, data.DamageKind)
			}
		}
	}

	if data.DamageKind&components.DamageWallFlare != 0 {
		for i := range s.Walls {
			w := &s.Walls[i]
			if !w.Destructible() {
				continue
			}
			if geometry.CircleTouchesWall(w, radius, p.Position) {
				s.Rules.TryBreakWall(s, w, data.DamageKind, p.Position)
			}
		}
	}
}

func impactSound(kind components.ProjectileKind) components.SoundID {
	switch kind {
	case components.ProjRocket, components.ProjMissileTriple, components.ProjMissileHoming:
		return components.SoundExplodeRocket
	case components.ProjHyperRocket, components.ProjMissileFreeze, components.ProjMissilePhase,
		components.ProjMissilePierce, components.ProjMissileBeam, components.ProjOthRocket:
		return components.SoundExplodeHyperRocket
	case components.ProjBomb:
		return components.SoundExplodeBomb
	case components.ProjMegaBomb:
		return components.SoundExplodeMegaBomb
	default:
		return components.SoundNone
	}
}

func randomSpeckVelocity(s *space.State) r2.Vec {
	return geometry.Polar(s.Random(20, 70), s.Random(0, 2*math.Pi))
}

// onHitWall resolves a wall or door impact. The projectile is always removed.
func onHitWall(s *space.State, p *components.Projectile, normal r2.Vec) {
	onImpact(s, p, normal)
	if shake := p.Data.ImpactShake; shake > 0 {
		s.ShakeCamera(shake, shake*0.75)
	}
	p.Kind = components.ProjNothing
}

// onHitTarget finishes a baddie or ship impact. Piercing projectiles survive.
func onHitTarget(s *space.State, p *components.Projectile, normal r2.Vec) {
	onImpact(s, p, normal)
	if shake := p.Data.ImpactShake; shake > 0 {
		s.ShakeCamera(shake*0.75, shake*0.25)
	}
	if !p.Data.Has(components.ProjPiercing) {
		p.Kind = components.ProjNothing
	}
}

func onHitBaddie(s *space.State, p *components.Projectile, b *components.Baddie, component int, normal r2.Vec) {
	p.LastHit = b.UID
	s.Rules.DamageBaddie(s, space.BaddieDamage{
		Baddie:    b,
		Component: component,
		Kind:      p.Data.DamageKind,
		Amount:    p.Data.ImpactDamage * p.Power,
	})
	// The baddie may have been removed; only the projectile is touched below.
	onHitTarget(s, p, normal)
}

func onHitShip(s *space.State, p *components.Projectile, normal r2.Vec) {
	p.LastHit = components.ShipUID
	data := p.Data
	push := 10*p.Power*(data.ImpactDamage+data.SplashDamage) + 8*data.ImpactShake
	s.Rules.DamageShip(s, space.ShipDamage{
		Amount:  data.ImpactDamage * p.Power,
		Impulse: geometry.WithLen(r2.Sub(s.Ship.Position, p.Position), push),
	})
	onHitTarget(s, p, normal)
}
