package space

import (
	"github.com/pthm-cable/skirmish/components"
	"github.com/pthm-cable/skirmish/geometry"
	"gonum.org/v1/gonum/spatial/r2"
)

// ImpactType classifies what a query struck. The order is also the tie-break
// priority for obstructions at exactly the same distance.
type ImpactType uint8

const (
	ImpactNothing ImpactType = iota
	ImpactWall
	ImpactDoorOutside
	ImpactDoorInside
	ImpactShip
	ImpactBaddie

	NumImpactTypes
)

var impactNames = [NumImpactTypes]string{"nothing", "wall", "door_outside", "door_inside", "ship", "baddie"}

func (t ImpactType) String() string {
	if t < NumImpactTypes {
		return impactNames[t]
	}
	return "unknown"
}

// ImpactFlags select obstruction classes a query ignores.
type ImpactFlags uint8

const (
	SkipShip ImpactFlags = 1 << iota
	SkipBaddies
	SkipWalls
	SkipDoorInside
	SkipDoorOutside

	SkipDoors = SkipDoorInside | SkipDoorOutside
)

// Impact is the result of a world query.
type Impact struct {
	Type     ImpactType
	Position r2.Vec // ray: hit point; circle: centre at first contact
	Normal   r2.Vec // unit, facing back along the motion
	Distance float64

	Baddie    *components.Baddie
	BaddieUID components.UID
	Component int
	Door      *components.Door
	Wall      *components.Wall

	slot int
}

// better reports whether the candidate beats the current best: nearer wins,
// then impact type priority, then lower slot.
func (i *Impact) better(c *Impact) bool {
	if i.Type == ImpactNothing {
		return true
	}
	if c.Distance != i.Distance {
		return c.Distance < i.Distance
	}
	if c.Type != i.Type {
		return c.Type < i.Type
	}
	return c.slot < i.slot
}

// hitTest is a shape test for a ray (radius 0) or swept circle. It returns the
// stop position and the surface normal.
type hitTest struct {
	start, delta r2.Vec
	radius       float64
}

func (h hitTest) circle(center r2.Vec, r float64) (r2.Vec, r2.Vec, bool) {
	if h.radius == 0 {
		return geometry.RayHitsCircle(center, r, h.start, h.delta)
	}
	pos, impact, ok := geometry.CircleHitsCircle(h.radius, h.start, h.delta, center, r)
	return pos, contactNormal(pos, impact, h.delta), ok
}

func (h hitTest) wall(w *components.Wall) (r2.Vec, r2.Vec, bool) {
	if h.radius == 0 {
		return geometry.RayHitsWall(w, h.start, h.delta)
	}
	pos, impact, ok := geometry.CircleHitsWall(w, h.radius, h.start, h.delta)
	return pos, contactNormal(pos, impact, h.delta), ok
}

func (h hitTest) doorOutside(d *components.Door) (r2.Vec, r2.Vec, bool) {
	if h.radius == 0 {
		return geometry.RayHitsDoorOutside(d, h.start, h.delta)
	}
	pos, impact, ok := geometry.CircleHitsDoorOutside(d, h.radius, h.start, h.delta)
	return pos, contactNormal(pos, impact, h.delta), ok
}

func (h hitTest) doorInside(d *components.Door) (r2.Vec, r2.Vec, bool) {
	if h.radius == 0 {
		return geometry.RayHitsDoorInside(d, h.start, h.delta)
	}
	pos, impact, ok := geometry.CircleHitsDoorInside(d, h.radius, h.start, h.delta)
	return pos, contactNormal(pos, impact, h.delta), ok
}

// mayReach is a cheap bounding test: could anything within r of center be
// touched along the path.
func (h hitTest) mayReach(center r2.Vec, r float64) bool {
	_, _, ok := geometry.RayHitsCircle(center, r+h.radius, h.start, h.delta)
	return ok
}

func contactNormal(pos, impact, delta r2.Vec) r2.Vec {
	n := geometry.WithLen(r2.Sub(pos, impact), 1)
	if n == geometry.Zero {
		n = geometry.WithLen(r2.Scale(-1, delta), 1)
	}
	return n
}

// RayImpact finds the nearest obstruction along a ray from start travelling
// delta. skipUID is never hit; pass components.ShipUID to skip the ship.
func (s *State) RayImpact(start, delta r2.Vec, skip ImpactFlags, skipUID components.UID) Impact {
	return s.query(hitTest{start: start, delta: delta}, skip, skipUID)
}

// CircleImpact finds the nearest obstruction for a circle of the given radius
// moving from start by delta. Position in the result is the circle's centre at
// first contact.
func (s *State) CircleImpact(radius float64, start, delta r2.Vec, skip ImpactFlags, skipUID components.UID) Impact {
	return s.query(hitTest{start: start, delta: delta, radius: radius}, skip, skipUID)
}

func (s *State) query(h hitTest, skip ImpactFlags, skipUID components.UID) Impact {
	best := Impact{Type: ImpactNothing}
	consider := func(c Impact, pos, normal r2.Vec) {
		c.Position = pos
		c.Normal = normal
		c.Distance = geometry.Dist(h.start, pos)
		if best.better(&c) {
			best = c
		}
	}

	if skip&SkipWalls == 0 {
		for i := range s.Walls {
			w := &s.Walls[i]
			if !w.Present() || !h.mayReach(w.Position, w.BoundingRadius) {
				continue
			}
			if pos, n, ok := h.wall(w); ok {
				consider(Impact{Type: ImpactWall, Wall: w, slot: i}, pos, n)
			}
		}
	}

	if skip&SkipDoors != SkipDoors {
		for i := range s.Doors {
			d := &s.Doors[i]
			if !d.Present() || !h.mayReach(d.Position, geometry.DoorBoundingRadius) {
				continue
			}
			if skip&SkipDoorOutside == 0 {
				if pos, n, ok := h.doorOutside(d); ok {
					consider(Impact{Type: ImpactDoorOutside, Door: d, slot: i}, pos, n)
				}
			}
			if skip&SkipDoorInside == 0 {
				if pos, n, ok := h.doorInside(d); ok {
					consider(Impact{Type: ImpactDoorInside, Door: d, slot: i}, pos, n)
				}
			}
		}
	}

	if skip&SkipShip == 0 && skipUID != components.ShipUID && s.Ship.Present {
		if pos, n, ok := h.circle(s.Ship.Position, s.Ship.Radius); ok {
			consider(Impact{Type: ImpactShip}, pos, n)
		}
	}

	if skip&SkipBaddies == 0 {
		for i := 0; i < s.Baddies.Cap(); i++ {
			b := s.Baddies.At(i)
			if !b.Present() || b.UID == skipUID ||
				b.Data.Properties&components.BaddieIncorporeal != 0 ||
				!h.mayReach(b.Position, b.Data.OverallBoundingRadius) {
				continue
			}
			for ci := range b.Data.Components {
				center := BaddieComponentCenter(b, ci)
				if pos, n, ok := h.circle(center, b.Data.Components[ci].BoundingRadius); ok {
					consider(Impact{Type: ImpactBaddie, Baddie: b, BaddieUID: b.UID, Component: ci, slot: i}, pos, n)
				}
			}
		}
	}

	if best.Type == ImpactNothing {
		best.Position = r2.Add(h.start, h.delta)
		best.Distance = r2.Norm(h.delta)
	}
	return best
}

// BaddieComponentCenter returns the world position of a baddie component.
func BaddieComponentCenter(b *components.Baddie, component int) r2.Vec {
	f := geometry.Frame{Position: b.Position, Angle: b.Angle}
	return f.ToWorld(b.Data.Components[component].Offset)
}
