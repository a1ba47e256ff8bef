package components

import "gonum.org/v1/gonum/spatial/r2"

// DoorKind determines which weapons open a door.
type DoorKind uint8

const (
	DoorNothing     DoorKind = iota // door slot not present
	DoorNormal                      // opened by any weapon
	DoorLocked                      // never opened by weapons
	DoorRocket                      // opened by any rocket
	DoorHyperRocket                 // opened only by hyper rockets
	DoorBomb                        // opened by any bomb
	DoorMegaBomb                    // opened only by mega bombs
	DoorPassage                     // no panel, just a passage to another room
)

// RoomKey names a room a door leads to.
type RoomKey int

// Door is a door in the current room.
type Door struct {
	Kind        DoorKind
	Position    r2.Vec
	Angle       float64 // facing; local +X points into the room
	Destination RoomKey
	IsOpen      bool    // open or opening
	Openness    float64 // 0 = fully closed, 1 = fully open
}

// Present reports whether the door takes part in the room.
func (d *Door) Present() bool {
	return d.Kind != DoorNothing
}

// CanOpenDoor reports whether damage of the given kinds opens a door of the
// given kind. Passages are always open and locked doors never open.
func CanOpenDoor(kind DoorKind, damage DamageFlags) bool {
	switch kind {
	case DoorNormal:
		return damage != 0
	case DoorRocket:
		return damage&(DamageRocket|DamageHyperRocket) != 0
	case DoorHyperRocket:
		return damage&DamageHyperRocket != 0
	case DoorBomb:
		return damage&(DamageBomb|DamageMegaBomb) != 0
	case DoorMegaBomb:
		return damage&DamageMegaBomb != 0
	default:
		return false
	}
}

var doorNames = map[string]DoorKind{
	"normal":       DoorNormal,
	"locked":       DoorLocked,
	"rocket":       DoorRocket,
	"hyper_rocket": DoorHyperRocket,
	"bomb":         DoorBomb,
	"mega_bomb":    DoorMegaBomb,
	"passage":      DoorPassage,
}

// ParseDoorKind looks a door kind up by its scenario name.
func ParseDoorKind(name string) (DoorKind, bool) {
	k, ok := doorNames[name]
	return k, ok
}
