package components

import (
	"fmt"
	"strings"
)

// DamageFlags is a bitmask of weapon damage categories. Doors and walls test it
// to decide whether they open or break; baddie components test it for immunity.
type DamageFlags uint16

const (
	DamageNormal DamageFlags = 1 << iota
	DamageCharged
	DamageFreeze
	DamagePierce
	DamageBeam
	DamageRocket
	DamageHyperRocket
	DamageBomb
	DamageMegaBomb
	DamageCPlus
	DamageReactive
)

// DamageWallFlare is the set of damage kinds whose splash can break walls.
const DamageWallFlare = DamageRocket | DamageHyperRocket | DamageBomb | DamageMegaBomb

var damageNames = []struct {
	name string
	flag DamageFlags
}{
	{"normal", DamageNormal},
	{"charged", DamageCharged},
	{"freeze", DamageFreeze},
	{"pierce", DamagePierce},
	{"beam", DamageBeam},
	{"rocket", DamageRocket},
	{"hyper_rocket", DamageHyperRocket},
	{"bomb", DamageBomb},
	{"mega_bomb", DamageMegaBomb},
	{"cplus", DamageCPlus},
	{"reactive", DamageReactive},
}

// ParseDamageFlags combines damage names (as used in the config files) into a mask.
func ParseDamageFlags(names []string) (DamageFlags, error) {
	var flags DamageFlags
	for _, n := range names {
		found := false
		for _, d := range damageNames {
			if d.name == n {
				flags |= d.flag
				found = true
				break
			}
		}
		if !found {
			return 0, fmt.Errorf("unknown damage kind %q", n)
		}
	}
	return flags, nil
}

// String returns the damage names joined with '|'.
func (f DamageFlags) String() string {
	if f == 0 {
		return "none"
	}
	var parts []string
	for _, d := range damageNames {
		if f&d.flag != 0 {
			parts = append(parts, d.name)
		}
	}
	return strings.Join(parts, "|")
}

// SoundID names a sound effect cue. Playback is owned by the audio layer.
type SoundID uint8

const (
	SoundNone SoundID = iota
	SoundFireGunNormal
	SoundFireRocket
	SoundFireHyperRocket
	SoundFireMissileBeam
	SoundFireOthRocket
	SoundFireOthSpray
	SoundLaunchOthRazors
	SoundExplodeRocket
	SoundExplodeHyperRocket
	SoundExplodeBomb
	SoundExplodeMegaBomb
	SoundBlinkMegaBomb
	SoundDoorOpen
	SoundWallBreak
	SoundKillBaddie
	SoundShipHurt
)
