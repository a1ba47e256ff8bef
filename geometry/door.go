package geometry

import (
	"math"

	"github.com/pthm-cable/skirmish/components"
	"gonum.org/v1/gonum/spatial/r2"
)

// doorShape is the door footprint in door-local coordinates. The door faces
// local +X; the frame reaches back into the wall behind it.
var doorShape = Polygon{{X: 6, Y: 50}, {X: -30, Y: 50}, {X: -30, Y: -50}, {X: 6, Y: -50}}

// DoorBoundingRadius bounds the door footprint around the door position.
var DoorBoundingRadius = math.Hypot(30, 50)

func doorFrame(d *components.Door) Frame {
	return Frame{Position: d.Position, Angle: d.Angle}
}

func rayHitsDoor(d *components.Door, start, delta r2.Vec) (point, normal r2.Vec, ok bool) {
	f := doorFrame(d)
	p, n, ok := RayHitsPolygon(doorShape, f.ToLocal(start), f.DirToLocal(delta))
	if !ok {
		return Zero, Zero, false
	}
	return f.ToWorld(p), f.DirToWorld(n), true
}

func circleHitsDoor(d *components.Door, radius float64, start, delta r2.Vec) (pos, impact r2.Vec, ok bool) {
	f := doorFrame(d)
	p, i, ok := CircleHitsPolygon(doorShape, radius, f.ToLocal(start), f.DirToLocal(delta))
	if !ok {
		return Zero, Zero, false
	}
	return f.ToWorld(p), f.ToWorld(i), true
}

func closedDoor(d *components.Door) bool {
	return d.Present() && !d.IsOpen
}

func openDoor(d *components.Door) bool {
	return d.Present() && d.IsOpen
}

// RayHitsDoorOutside tests a ray against the exterior of a closed door. Open
// doors never report a hit.
func RayHitsDoorOutside(d *components.Door, start, delta r2.Vec) (point, normal r2.Vec, ok bool) {
	if !closedDoor(d) {
		return Zero, Zero, false
	}
	return rayHitsDoor(d, start, delta)
}

// CircleHitsDoorOutside tests a swept circle against the exterior of a closed
// door. It returns the circle centre at first contact and the contact point.
func CircleHitsDoorOutside(d *components.Door, radius float64, start, delta r2.Vec) (pos, impact r2.Vec, ok bool) {
	if !closedDoor(d) {
		return Zero, Zero, false
	}
	return circleHitsDoor(d, radius, start, delta)
}

// RayHitsDoorInside tests a ray against the interior of an open door. Closed
// doors never report a hit.
func RayHitsDoorInside(d *components.Door, start, delta r2.Vec) (point, normal r2.Vec, ok bool) {
	if !openDoor(d) {
		return Zero, Zero, false
	}
	return rayHitsDoor(d, start, delta)
}

// CircleHitsDoorInside tests a swept circle against the interior of an open
// door.
func CircleHitsDoorInside(d *components.Door, radius float64, start, delta r2.Vec) (pos, impact r2.Vec, ok bool) {
	if !openDoor(d) {
		return Zero, Zero, false
	}
	return circleHitsDoor(d, radius, start, delta)
}

// CircleTouchesDoorOutside reports whether a stationary circle overlaps a
// closed door.
func CircleTouchesDoorOutside(d *components.Door, radius float64, center r2.Vec) bool {
	if !closedDoor(d) || !Within(d.Position, center, radius+DoorBoundingRadius) {
		return false
	}
	return CircleTouchesPolygon(doorShape, radius, doorFrame(d).ToLocal(center))
}
