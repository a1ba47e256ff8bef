package components

import "gonum.org/v1/gonum/spatial/r2"

// WallKind determines whether, and by what, a wall can be broken.
type WallKind uint8

const (
	WallNothing WallKind = iota
	WallIndestructible
	WallNormal // broken by any damage
	WallDestructibleCharged
	WallDestructibleRocket
	WallDestructibleHyperRocket
	WallDestructibleBomb
	WallDestructibleMegaBomb
	WallDestructibleCPlus
)

// Wall is a convex polygonal obstacle. Polygon is in local coordinates and is
// rotated by Angle around Position.
type Wall struct {
	Kind           WallKind
	Position       r2.Vec
	Angle          float64
	Polygon        []r2.Vec
	BoundingRadius float64
	Flare          float64 // decays after a failed break attempt; drawn by the renderer
}

// NewWall builds a wall and computes its bounding radius.
func NewWall(kind WallKind, position r2.Vec, angle float64, polygon []r2.Vec) Wall {
	return Wall{
		Kind:           kind,
		Position:       position,
		Angle:          angle,
		Polygon:        polygon,
		BoundingRadius: PolygonRadius(polygon),
	}
}

// Present reports whether the wall takes part in the room.
func (w *Wall) Present() bool {
	return w.Kind != WallNothing
}

// Destructible reports whether some weapon can break the wall.
func (w *Wall) Destructible() bool {
	return w.Kind != WallNothing && w.Kind != WallIndestructible
}

// CanBreakWall reports whether damage of the given kinds breaks a wall of the
// given kind.
func CanBreakWall(kind WallKind, damage DamageFlags) bool {
	switch kind {
	case WallNormal:
		return damage != 0
	case WallDestructibleCharged:
		return damage&(DamageCharged|DamageRocket|DamageHyperRocket|DamageBomb|DamageMegaBomb) != 0
	case WallDestructibleRocket:
		return damage&(DamageRocket|DamageHyperRocket) != 0
	case WallDestructibleHyperRocket:
		return damage&DamageHyperRocket != 0
	case WallDestructibleBomb:
		return damage&(DamageBomb|DamageMegaBomb) != 0
	case WallDestructibleMegaBomb:
		return damage&DamageMegaBomb != 0
	case WallDestructibleCPlus:
		return damage&DamageCPlus != 0
	default:
		return false
	}
}

// PolygonRadius returns the distance from the local origin to the farthest vertex.
func PolygonRadius(polygon []r2.Vec) float64 {
	var r float64
	for _, v := range polygon {
		if n := r2.Norm(v); n > r {
			r = n
		}
	}
	return r
}

// NodeKind classifies a map node.
type NodeKind uint8

const (
	NodeNothing NodeKind = iota
	NodeMarker
)

// Node is a non-colliding map point used by AI as a navigation marker.
type Node struct {
	Kind     NodeKind
	Position r2.Vec
}

var wallNames = map[string]WallKind{
	"indestructible": WallIndestructible,
	"normal":         WallNormal,
	"charged":        WallDestructibleCharged,
	"rocket":         WallDestructibleRocket,
	"hyper_rocket":   WallDestructibleHyperRocket,
	"bomb":           WallDestructibleBomb,
	"mega_bomb":      WallDestructibleMegaBomb,
	"cplus":          WallDestructibleCPlus,
}

// ParseWallKind looks a wall kind up by its scenario name.
func ParseWallKind(name string) (WallKind, bool) {
	k, ok := wallNames[name]
	return k, ok
}
