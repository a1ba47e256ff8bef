package geometry

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// rayCircleT returns the earliest t in [0,1] at which start+t*delta lies on the
// circle. A start point already inside the circle hits at t=0.
func rayCircleT(center r2.Vec, radius float64, start, delta r2.Vec) (float64, bool) {
	f := r2.Sub(start, center)
	c := r2.Dot(f, f) - radius*radius
	if c <= 0 {
		return 0, true
	}
	a := r2.Dot(delta, delta)
	if a == 0 {
		return 0, false
	}
	b := 2 * r2.Dot(f, delta)
	disc := b*b - 4*a*c
	if disc < 0 {
		return 0, false
	}
	t := (-b - math.Sqrt(disc)) / (2 * a)
	if t < 0 || t > 1 {
		return 0, false
	}
	return t, true
}

// RayHitsCircle tests a ray travelling delta from start against a circle. On a
// hit it returns the intersection point and the circle's outward normal there.
func RayHitsCircle(center r2.Vec, radius float64, start, delta r2.Vec) (point, normal r2.Vec, ok bool) {
	t, ok := rayCircleT(center, radius, start, delta)
	if !ok {
		return Zero, Zero, false
	}
	point = r2.Add(start, r2.Scale(t, delta))
	normal = WithLen(r2.Sub(point, center), 1)
	if normal == Zero {
		normal = WithLen(r2.Scale(-1, delta), 1)
	}
	return point, normal, true
}

// CircleHitsCircle tests a circle of the given radius, travelling delta from
// start, against a stationary circle. On a hit it returns the moving circle's
// centre at first contact and the contact point.
func CircleHitsCircle(radius float64, start, delta r2.Vec, center r2.Vec, otherRadius float64) (pos, impact r2.Vec, ok bool) {
	pos, normal, ok := RayHitsCircle(center, radius+otherRadius, start, delta)
	if !ok {
		return Zero, Zero, false
	}
	return pos, r2.Add(center, r2.Scale(otherRadius, normal)), true
}

// LeadTarget solves for where a projectile fired now at the given speed meets
// a target moving at constant velocity. relPos is the target relative to the
// shooter. It returns the intercept relative to the shooter.
func LeadTarget(relPos, targetVel r2.Vec, speed float64) (r2.Vec, bool) {
	a := r2.Dot(targetVel, targetVel) - speed*speed
	b := 2 * r2.Dot(relPos, targetVel)
	c := r2.Dot(relPos, relPos)
	var t float64
	if math.Abs(a) < 1e-9 {
		if b >= 0 {
			return Zero, false
		}
		t = -c / b
	} else {
		disc := b*b - 4*a*c
		if disc < 0 {
			return Zero, false
		}
		sq := math.Sqrt(disc)
		t1 := (-b - sq) / (2 * a)
		t2 := (-b + sq) / (2 * a)
		t = math.Inf(1)
		if t1 >= 0 {
			t = t1
		}
		if t2 >= 0 && t2 < t {
			t = t2
		}
		if math.IsInf(t, 1) {
			return Zero, false
		}
	}
	return r2.Add(relPos, r2.Scale(t, targetVel)), true
}
