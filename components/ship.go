package components

import "gonum.org/v1/gonum/spatial/r2"

// Ship is the player ship as seen by the simulation core. Steering and weapon
// fire are driven by the input layer.
type Ship struct {
	Present   bool
	Position  r2.Vec
	Velocity  r2.Vec
	Angle     float64
	Radius    float64
	Shield    float64
	MaxShield float64
}

// ParticleKind selects how a decorative particle is drawn.
type ParticleKind uint8

const (
	ParticleNothing ParticleKind = iota
	ParticleBoom
	ParticleExplosion
	ParticleEmber
	ParticleBeam
	ParticleOthFragment
	ParticleSpeck
)

// Color is an RGBA color.
type Color struct {
	R, G, B, A uint8
}

// Common colors.
var (
	White   = Color{255, 255, 255, 255}
	Cyan    = Color{0, 255, 255, 255}
	Magenta = Color{255, 0, 255, 255}
	Yellow  = Color{255, 255, 0, 255}
)

// Particle is a decorative effect. It never affects the simulation.
type Particle struct {
	Kind     ParticleKind
	Color    Color
	Position r2.Vec
	Velocity r2.Vec
	Angle    float64
	Age      float64
	Lifetime float64
	Param1   float64 // radius for booms/embers, length for beams
	Param2   float64 // spin for fragments, semi-width for beams
}
