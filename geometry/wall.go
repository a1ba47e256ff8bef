package geometry

import (
	"github.com/pthm-cable/skirmish/components"
	"gonum.org/v1/gonum/spatial/r2"
)

func wallFrame(w *components.Wall) Frame {
	return Frame{Position: w.Position, Angle: w.Angle}
}

// RayHitsWall tests a ray against a wall. Absent walls never report a hit.
func RayHitsWall(w *components.Wall, start, delta r2.Vec) (point, normal r2.Vec, ok bool) {
	if !w.Present() {
		return Zero, Zero, false
	}
	f := wallFrame(w)
	p, n, ok := RayHitsPolygon(w.Polygon, f.ToLocal(start), f.DirToLocal(delta))
	if !ok {
		return Zero, Zero, false
	}
	return f.ToWorld(p), f.DirToWorld(n), true
}

// CircleHitsWall tests a swept circle against a wall, returning the circle
// centre at first contact and the contact point.
func CircleHitsWall(w *components.Wall, radius float64, start, delta r2.Vec) (pos, impact r2.Vec, ok bool) {
	if !w.Present() {
		return Zero, Zero, false
	}
	f := wallFrame(w)
	p, i, ok := CircleHitsPolygon(w.Polygon, radius, f.ToLocal(start), f.DirToLocal(delta))
	if !ok {
		return Zero, Zero, false
	}
	return f.ToWorld(p), f.ToWorld(i), true
}

// CircleTouchesWall reports whether a stationary circle overlaps a wall.
func CircleTouchesWall(w *components.Wall, radius float64, center r2.Vec) bool {
	if !w.Present() || !Within(w.Position, center, radius+w.BoundingRadius) {
		return false
	}
	return CircleTouchesPolygon(w.Polygon, radius, wallFrame(w).ToLocal(center))
}
