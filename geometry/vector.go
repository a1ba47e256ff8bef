// Package geometry provides the pure collision primitives used by the world
// impact query: ray and swept-circle tests against circles, convex polygons,
// doors and walls. Nothing here mutates its inputs.
package geometry

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Zero is the zero vector.
var Zero = r2.Vec{}

// Polar returns the vector with the given length and direction.
func Polar(length, theta float64) r2.Vec {
	return r2.Vec{X: length * math.Cos(theta), Y: length * math.Sin(theta)}
}

// Theta returns the direction of v in (-Pi, Pi].
func Theta(v r2.Vec) float64 {
	return math.Atan2(v.Y, v.X)
}

// Mod2Pi wraps an angle to (-Pi, Pi].
func Mod2Pi(theta float64) float64 {
	theta = math.Mod(theta, 2*math.Pi)
	if theta > math.Pi {
		theta -= 2 * math.Pi
	} else if theta <= -math.Pi {
		theta += 2 * math.Pi
	}
	return theta
}

// AngleTowards turns current towards goal by at most maxDelta radians, taking
// the short way round. It never overshoots.
func AngleTowards(current, maxDelta, goal float64) float64 {
	diff := Mod2Pi(goal - current)
	if math.Abs(diff) <= maxDelta {
		return Mod2Pi(goal)
	}
	if diff > 0 {
		return Mod2Pi(current + maxDelta)
	}
	return Mod2Pi(current - maxDelta)
}

// WithLen returns v scaled to the given length. The zero vector stays zero.
func WithLen(v r2.Vec, length float64) r2.Vec {
	n := r2.Norm(v)
	if n == 0 {
		return Zero
	}
	return r2.Scale(length/n, v)
}

// Within reports whether a and b are no more than dist apart.
func Within(a, b r2.Vec, dist float64) bool {
	return r2.Norm2(r2.Sub(a, b)) <= dist*dist
}

// Dist returns the distance between a and b.
func Dist(a, b r2.Vec) float64 {
	return r2.Norm(r2.Sub(a, b))
}

// Perp returns v rotated a quarter turn counter-clockwise.
func Perp(v r2.Vec) r2.Vec {
	return r2.Vec{X: -v.Y, Y: v.X}
}

// Frame is a rigid transform: a local frame rotated by Angle and translated
// to Position.
type Frame struct {
	Position r2.Vec
	Angle    float64
}

// ToLocal maps a world point into the frame.
func (f Frame) ToLocal(p r2.Vec) r2.Vec {
	return r2.Rotate(r2.Sub(p, f.Position), -f.Angle, Zero)
}

// DirToLocal maps a world direction into the frame.
func (f Frame) DirToLocal(v r2.Vec) r2.Vec {
	return r2.Rotate(v, -f.Angle, Zero)
}

// ToWorld maps a local point out of the frame.
func (f Frame) ToWorld(p r2.Vec) r2.Vec {
	return r2.Add(r2.Rotate(p, f.Angle, Zero), f.Position)
}

// DirToWorld maps a local direction out of the frame.
func (f Frame) DirToWorld(v r2.Vec) r2.Vec {
	return r2.Rotate(v, f.Angle, Zero)
}
