package systems

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/skirmish/components"
	"github.com/pthm-cable/skirmish/geometry"
	"github.com/pthm-cable/skirmish/space"
)

var cplusEmberColor = components.Color{R: 64, G: 255, B: 64, A: 255}

const cplusSpeed = 1000.0

// tickOthGunship runs the gunship's phase machine. It dogfights until a random
// roll picks a special attack (more of them unlock as it gets hurt), then
// flees to a marker and lines up a C-plus dash at the ship.
func tickOthGunship(s *space.State, b *components.Baddie, dt float64) {
	st := b.State.(*components.GunshipState)
	hurt := 1 - b.HealthFraction()

	switch st.Phase {
	case components.GunshipIntro:
		b.Cooldown = 10.0
		st.Phase = components.GunshipLineUp

	case components.GunshipFlee:
		target := fleeTarget(s, b)
		if b.Cooldown <= 0 || geometry.Within(b.Position, target, 50) {
			if !shipInRange(s, b, 800) {
				b.Cooldown = 3.0
				st.Phase = components.GunshipLineUp
			} else {
				st.Phase = components.GunshipPursue
			}
		} else {
			flyTowardsPosition(b, dt, target, 5, 300, 300, 200, 100)
		}

	case components.GunshipPursue:
		flyTowardsShip(s, b, dt, 5, 300, 300, 200, 200, 100)
		if shipInRange(s, b, 300) {
			st.Phase = components.GunshipDogfight
		}

	case components.GunshipLineUp:
		b.Velocity = geometry.Zero
		if s.Ship.Present {
			rel, ok := geometry.LeadTarget(r2.Sub(s.Ship.Position, b.Position), s.Ship.Velocity, cplusSpeed)
			if ok {
				goal := geometry.Theta(rel)
				b.Angle = geometry.AngleTowards(b.Angle, deg(360)*dt, goal)
				if math.Abs(geometry.Mod2Pi(b.Angle-goal)) <= deg(1) &&
					hasClearPath(s, b, r2.Add(b.Position, rel)) {
					b.Velocity = geometry.Polar(cplusSpeed, b.Angle)
					st.Phase = components.GunshipCPlusDrive
					return
				}
			}
		}
		if b.Cooldown <= 0 {
			st.Phase = components.GunshipPursue
		}

	case components.GunshipCPlusDrive:
		// A bounce off a wall knocks the velocity off the heading and ends the dash.
		if math.Abs(geometry.Mod2Pi(geometry.Theta(b.Velocity)-b.Angle)) > deg(5) {
			st.Phase = components.GunshipFlee
			return
		}
		s.InsertParticle(components.Particle{
			Kind:     components.ParticleEmber,
			Color:    cplusEmberColor,
			Position: r2.Add(b.Position, geometry.Polar(-15, b.Angle)),
			Lifetime: 0.3,
			Param1:   20,
		})

	case components.GunshipDogfight:
		flyTowardsShip(s, b, dt, 5, 300, 300, 200, 200, 100)
		if b.Cooldown <= 0 && shipWithinAngle(s, b, 0, deg(3)) && canSeeShip(s, b) {
			if _, ok := fireBaddieProjectile(s, b, components.ProjGunNormal, 20, 0, 0); !ok {
				return
			}
			s.PlaySound(components.SoundFireGunNormal)
			b.Cooldown = 0.1
			if s.Random(0, 1) < 0.1 {
				unlocked := min(3, int(4*hurt))
				st.Phase = components.GunshipTripleShot + components.GunshipPhase(s.RandInt(0, unlocked))
			}
		}

	case components.GunshipTripleShot:
		flyTowardsShip(s, b, dt, 5, 300, 300, 200, 200, 100)
		if b.Cooldown <= 0 && shipWithinAngle(s, b, 0, deg(8)) && canSeeShip(s, b) {
			fired := false
			for i := -1; i <= 1; i++ {
				if _, ok := fireBaddieProjectile(s, b, components.ProjGunChargedTriple, 20, 0, float64(i)*deg(10)); ok {
					fired = true
				}
			}
			if fired {
				s.PlaySound(components.SoundFireGunNormal)
				b.Cooldown = 6.0
				st.Phase = components.GunshipFlee
			}
		}

	case components.GunshipHyperRocket:
		flyTowardsShip(s, b, dt, 5, 300, 300, 200, 200, 100)
		if b.Cooldown <= 0 && shipWithinAngle(s, b, 0, deg(3)) && canSeeShip(s, b) {
			if _, ok := fireBaddieProjectile(s, b, components.ProjHyperRocket, 20, 0, 0); ok {
				s.PlaySound(components.SoundFireHyperRocket)
				b.Cooldown = 6.0
				st.Phase = components.GunshipFlee
			}
		}

	case components.GunshipHomingShots:
		flyTowardsShip(s, b, dt, 5, 300, 300, 200, 200, 100)
		if b.Cooldown <= 0 && canSeeShip(s, b) {
			fired := false
			for i := 0; i < 4; i++ {
				if _, ok := fireBaddieProjectile(s, b, components.ProjGunChargedHoming, 20, 0, deg(45)+float64(i)*deg(90)); ok {
					fired = true
				}
			}
			if fired {
				s.PlaySound(components.SoundFireGunNormal)
				b.Cooldown = 6.0
				st.Phase = components.GunshipFlee
			}
		}

	case components.GunshipBarrage:
		flyTowardsShip(s, b, dt, 5, 300, 300, 200, 200, 100)
		if b.Cooldown <= 0 && shipWithinAngle(s, b, 0, deg(8)) && canSeeShip(s, b) {
			if _, ok := fireBaddieProjectile(s, b, components.ProjMissileBarrage, 20, 0, 0); ok {
				b.Cooldown = 6.0
				st.Phase = components.GunshipFlee
			}
		}

	default:
		st.Phase = components.GunshipIntro
	}
}

// fleeTarget picks, out of the markers the gunship has a clear path to, the
// one farthest from the ship. With none reachable it stays put.
func fleeTarget(s *space.State, b *components.Baddie) r2.Vec {
	target := b.Position
	best := 0.0
	for _, node := range s.Nodes {
		if node.Kind != components.NodeMarker || !hasClearPath(s, b, node.Position) {
			continue
		}
		if d := geometry.Dist(node.Position, s.Ship.Position); d > best {
			best = d
			target = node.Position
		}
	}
	return target
}
