package components

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r2"
)

// ProjectileKind identifies a projectile variant. ProjNothing marks a free slot.
type ProjectileKind uint8

const (
	ProjNothing ProjectileKind = iota
	ProjGunNormal
	ProjGunChargedNormal
	ProjGunFreeze
	ProjGunChargedFreeze
	ProjGunTriple
	ProjGunChargedTriple
	ProjGunHoming
	ProjGunChargedHoming
	ProjGunPhase
	ProjGunChargedPhase
	ProjGunBurst
	ProjGunBurstlet
	ProjGunPierce
	ProjGunChargedPierce
	ProjGunChargedBeam
	ProjGunFreezeHoming
	ProjGunFreezePhase
	ProjGunFreezeBurst
	ProjGunFreezeShrapnel
	ProjGunFreezePierce
	ProjGunHomingPhase
	ProjGunHomingPierce
	ProjGunPhaseBurst
	ProjGunPhasePierce
	ProjGunShrapnel
	ProjRocket
	ProjHyperRocket
	ProjMissileFreeze
	ProjMissileBarrage
	ProjMissileTriple
	ProjMissileHoming
	ProjMissilePhase
	ProjMissileBurst
	ProjMissilePierce
	ProjMissileBeam
	ProjBomb
	ProjMegaBomb
	ProjFireballFast
	ProjFireballSlow
	ProjOthHoming
	ProjOthRocket
	ProjOthMinirocket
	ProjOthSpray

	NumProjectileKinds
)

var projectileNames = [NumProjectileKinds]string{
	ProjNothing:           "nothing",
	ProjGunNormal:         "gun_normal",
	ProjGunChargedNormal:  "gun_charged_normal",
	ProjGunFreeze:         "gun_freeze",
	ProjGunChargedFreeze:  "gun_charged_freeze",
	ProjGunTriple:         "gun_triple",
	ProjGunChargedTriple:  "gun_charged_triple",
	ProjGunHoming:         "gun_homing",
	ProjGunChargedHoming:  "gun_charged_homing",
	ProjGunPhase:          "gun_phase",
	ProjGunChargedPhase:   "gun_charged_phase",
	ProjGunBurst:          "gun_burst",
	ProjGunBurstlet:       "gun_burstlet",
	ProjGunPierce:         "gun_pierce",
	ProjGunChargedPierce:  "gun_charged_pierce",
	ProjGunChargedBeam:    "gun_charged_beam",
	ProjGunFreezeHoming:   "gun_freeze_homing",
	ProjGunFreezePhase:    "gun_freeze_phase",
	ProjGunFreezeBurst:    "gun_freeze_burst",
	ProjGunFreezeShrapnel: "gun_freeze_shrapnel",
	ProjGunFreezePierce:   "gun_freeze_pierce",
	ProjGunHomingPhase:    "gun_homing_phase",
	ProjGunHomingPierce:   "gun_homing_pierce",
	ProjGunPhaseBurst:     "gun_phase_burst",
	ProjGunPhasePierce:    "gun_phase_pierce",
	ProjGunShrapnel:       "gun_shrapnel",
	ProjRocket:            "rocket",
	ProjHyperRocket:       "hyper_rocket",
	ProjMissileFreeze:     "missile_freeze",
	ProjMissileBarrage:    "missile_barrage",
	ProjMissileTriple:     "missile_triple",
	ProjMissileHoming:     "missile_homing",
	ProjMissilePhase:      "missile_phase",
	ProjMissileBurst:      "missile_burst",
	ProjMissilePierce:     "missile_pierce",
	ProjMissileBeam:       "missile_beam",
	ProjBomb:              "bomb",
	ProjMegaBomb:          "mega_bomb",
	ProjFireballFast:      "fireball_fast",
	ProjFireballSlow:      "fireball_slow",
	ProjOthHoming:         "oth_homing",
	ProjOthRocket:         "oth_rocket",
	ProjOthMinirocket:     "oth_minirocket",
	ProjOthSpray:          "oth_spray",
}

// String returns the config name of the kind.
func (k ProjectileKind) String() string {
	if k < NumProjectileKinds {
		return projectileNames[k]
	}
	return fmt.Sprintf("projectile(%d)", uint8(k))
}

// ParseProjectileKind looks a kind up by its config name.
func ParseProjectileKind(name string) (ProjectileKind, bool) {
	for k, n := range projectileNames {
		if n == name {
			return ProjectileKind(k), true
		}
	}
	return ProjNothing, false
}

// ProjectileFlags are per-kind behaviour properties.
type ProjectileFlags uint8

const (
	ProjPhased   ProjectileFlags = 1 << iota // passes through walls and doors
	ProjPiercing                             // continues after hitting a target
	ProjNoHit                                // decorative; never collides
)

// ProjectileData is the static, per-kind description of a projectile.
type ProjectileData struct {
	Lifetime     float64
	Speed        float64
	ImpactDamage float64
	SplashDamage float64
	SplashRadius float64
	ImpactShake  float64
	HomingRate   float64 // radians per second; 0 = no homing
	Shrapnel     ProjectileKind
	DamageKind   DamageFlags
	Properties   ProjectileFlags
}

// Has reports whether the kind has all the given properties.
func (d *ProjectileData) Has(f ProjectileFlags) bool {
	return d.Properties&f == f
}

// Projectile is a live projectile slot.
type Projectile struct {
	Kind         ProjectileKind
	Data         *ProjectileData
	FiredByEnemy bool
	Position     r2.Vec
	Velocity     r2.Vec
	Angle        float64
	Age          float64
	Power        float64 // damage multiplier
	Param        float64 // per-kind auxiliary value
	LastHit      UID     // last entity struck; never struck twice in a row, never homed on
	BornTick     uint64
}

// Present reports whether the slot holds a projectile.
func (p *Projectile) Present() bool {
	return p.Kind != ProjNothing
}
