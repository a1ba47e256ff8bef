package components

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r2"
)

// BaddieKind identifies an enemy variant. BaddieNothing marks a free slot.
type BaddieKind uint8

const (
	BaddieNothing BaddieKind = iota
	BaddieOthCrab1
	BaddieOthCrab2
	BaddieOthCrawler
	BaddieOthOrb1
	BaddieOthOrb2
	BaddieOthRazor
	BaddieOthSnapdragon
	BaddieOthGunship

	NumBaddieKinds
)

var baddieNames = [NumBaddieKinds]string{
	BaddieNothing:       "nothing",
	BaddieOthCrab1:      "oth_crab_1",
	BaddieOthCrab2:      "oth_crab_2",
	BaddieOthCrawler:    "oth_crawler",
	BaddieOthOrb1:       "oth_orb_1",
	BaddieOthOrb2:       "oth_orb_2",
	BaddieOthRazor:      "oth_razor",
	BaddieOthSnapdragon: "oth_snapdragon",
	BaddieOthGunship:    "oth_gunship",
}

// String returns the config name of the kind.
func (k BaddieKind) String() string {
	if k < NumBaddieKinds {
		return baddieNames[k]
	}
	return fmt.Sprintf("baddie(%d)", uint8(k))
}

// ParseBaddieKind looks a kind up by its config name.
func ParseBaddieKind(name string) (BaddieKind, bool) {
	for k, n := range baddieNames {
		if n == name {
			return BaddieKind(k), true
		}
	}
	return BaddieNothing, false
}

// BaddieFlags are per-kind properties.
type BaddieFlags uint8

const (
	BaddieIncorporeal        BaddieFlags = 1 << iota // not hit by projectiles or splash
	BaddieNoHomingProjectile                         // never chosen as a homing target
)

// ComponentData is one collision circle of a baddie. Offset is in the baddie's
// local frame.
type ComponentData struct {
	Offset         r2.Vec
	BoundingRadius float64
	Immunities     DamageFlags
}

// BaddieData is the static, per-kind description of a baddie.
type BaddieData struct {
	MaxHealth             float64
	OverallBoundingRadius float64
	Properties            BaddieFlags
	// Components[0] is the main body.
	Components []ComponentData
}

// MainBody returns the main body component.
func (d *BaddieData) MainBody() *ComponentData {
	return &d.Components[0]
}

// Baddie is a live enemy slot.
type Baddie struct {
	Kind     BaddieKind
	UID      UID
	Data     *BaddieData
	Position r2.Vec
	Velocity r2.Vec
	Angle    float64
	Health   float64
	Cooldown float64 // actions may be taken only when <= 0
	Frozen   float64 // seconds of freeze left
	State    BaddieState
	BornTick uint64
}

// Present reports whether the slot holds a baddie.
func (b *Baddie) Present() bool {
	return b.Kind != BaddieNothing
}

// HealthFraction returns health as a fraction of max health.
func (b *Baddie) HealthFraction() float64 {
	if b.Data == nil || b.Data.MaxHealth <= 0 {
		return 0
	}
	return b.Health / b.Data.MaxHealth
}
