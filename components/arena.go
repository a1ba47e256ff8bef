// Package components defines the entity data shared by the simulation packages.
package components

import "math"

// UID identifies an arena slot together with the generation it was written in.
// A UID stays comparable after its entity is removed; once the slot is reused the
// generation no longer matches and the UID stops resolving.
type UID struct {
	Index      uint32
	Generation uint32
}

// NoUID is the zero UID. It never refers to a live entity.
var NoUID = UID{}

// ShipUID is the reserved UID of the player ship.
var ShipUID = UID{Index: math.MaxUint32, Generation: math.MaxUint32}

// IsZero reports whether the UID is NoUID.
func (u UID) IsZero() bool {
	return u == NoUID
}

// Arena is a fixed-capacity slot array. Slots are scanned in index order and
// Insert always takes the first free slot, so iteration order is reproducible.
// Whether a slot is occupied is decided by the present func, which lets each
// entity type keep its own "kind == nothing" convention.
type Arena[T any] struct {
	slots   []T
	gens    []uint32
	present func(*T) bool
}

// NewArena creates an arena with the given capacity.
func NewArena[T any](capacity int, present func(*T) bool) *Arena[T] {
	return &Arena[T]{
		slots:   make([]T, capacity),
		gens:    make([]uint32, capacity),
		present: present,
	}
}

// Cap returns the number of slots.
func (a *Arena[T]) Cap() int {
	return len(a.slots)
}

// At returns the slot at index i, occupied or not.
func (a *Arena[T]) At(i int) *T {
	return &a.slots[i]
}

// UIDAt returns the UID of the current generation of slot i.
func (a *Arena[T]) UIDAt(i int) UID {
	return UID{Index: uint32(i), Generation: a.gens[i]}
}

// Insert claims the first free slot, zeroes it, and returns it with its new UID.
// The caller must mark the slot present (set its kind) before the next Insert.
// Returns ok=false when every slot is occupied.
func (a *Arena[T]) Insert() (slot *T, uid UID, ok bool) {
	for i := range a.slots {
		if a.present(&a.slots[i]) {
			continue
		}
		var zero T
		a.slots[i] = zero
		a.gens[i]++
		if a.gens[i] == 0 {
			a.gens[i] = 1
		}
		return &a.slots[i], UID{Index: uint32(i), Generation: a.gens[i]}, true
	}
	return nil, NoUID, false
}

// Resolve returns the entity a UID refers to, if it is still alive.
func (a *Arena[T]) Resolve(uid UID) (*T, bool) {
	if uid.IsZero() || int(uid.Index) >= len(a.slots) {
		return nil, false
	}
	if a.gens[uid.Index] != uid.Generation {
		return nil, false
	}
	slot := &a.slots[uid.Index]
	if !a.present(slot) {
		return nil, false
	}
	return slot, true
}

// Count returns the number of occupied slots.
func (a *Arena[T]) Count() int {
	n := 0
	for i := range a.slots {
		if a.present(&a.slots[i]) {
			n++
		}
	}
	return n
}
