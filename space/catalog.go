package space

import (
	"errors"
	"fmt"

	"github.com/pthm-cable/skirmish/components"
	"github.com/pthm-cable/skirmish/config"
	"gonum.org/v1/gonum/spatial/r2"
)

// ErrUnknownKind is returned when a name does not match any projectile or
// baddie kind.
var ErrUnknownKind = errors.New("unknown kind")

// Catalog holds the static per-kind data referenced by live entities.
type Catalog struct {
	Projectiles [components.NumProjectileKinds]components.ProjectileData
	Baddies     [components.NumBaddieKinds]components.BaddieData
}

// Projectile returns the data for a projectile kind.
func (c *Catalog) Projectile(kind components.ProjectileKind) *components.ProjectileData {
	return &c.Projectiles[kind]
}

// Baddie returns the data for a baddie kind.
func (c *Catalog) Baddie(kind components.BaddieKind) *components.BaddieData {
	return &c.Baddies[kind]
}

// NewCatalog builds a catalog from the configuration. Every name in the
// config must resolve to a known kind.
func NewCatalog(cfg *config.Config) (*Catalog, error) {
	c := &Catalog{}
	for _, pc := range cfg.Projectiles {
		kind, ok := components.ParseProjectileKind(pc.Name)
		if !ok || kind == components.ProjNothing {
			return nil, fmt.Errorf("projectile %q: %w", pc.Name, ErrUnknownKind)
		}
		data, err := projectileData(pc)
		if err != nil {
			return nil, fmt.Errorf("projectile %q: %w", pc.Name, err)
		}
		c.Projectiles[kind] = data
	}
	for _, bc := range cfg.Baddies {
		kind, ok := components.ParseBaddieKind(bc.Name)
		if !ok || kind == components.BaddieNothing {
			return nil, fmt.Errorf("baddie %q: %w", bc.Name, ErrUnknownKind)
		}
		data, err := baddieData(bc)
		if err != nil {
			return nil, fmt.Errorf("baddie %q: %w", bc.Name, err)
		}
		c.Baddies[kind] = data
	}
	return c, nil
}

func projectileData(pc config.ProjectileConfig) (components.ProjectileData, error) {
	dmg, err := components.ParseDamageFlags(pc.Damage)
	if err != nil {
		return components.ProjectileData{}, err
	}
	var props components.ProjectileFlags
	for _, p := range pc.Properties {
		switch p {
		case "phased":
			props |= components.ProjPhased
		case "piercing":
			props |= components.ProjPiercing
		case "no_hit":
			props |= components.ProjNoHit
		default:
			return components.ProjectileData{}, fmt.Errorf("unknown property %q", p)
		}
	}
	shrapnel := components.ProjNothing
	if pc.Shrapnel != "" {
		k, ok := components.ParseProjectileKind(pc.Shrapnel)
		if !ok {
			return components.ProjectileData{}, fmt.Errorf("shrapnel %q: %w", pc.Shrapnel, ErrUnknownKind)
		}
		shrapnel = k
	}
	return components.ProjectileData{
		Lifetime:     pc.Lifetime,
		Speed:        pc.Speed,
		ImpactDamage: pc.ImpactDamage,
		SplashDamage: pc.SplashDamage,
		SplashRadius: pc.SplashRadius,
		ImpactShake:  pc.ImpactShake,
		HomingRate:   pc.HomingRate,
		Shrapnel:     shrapnel,
		DamageKind:   dmg,
		Properties:   props,
	}, nil
}

func baddieData(bc config.BaddieConfig) (components.BaddieData, error) {
	var props components.BaddieFlags
	for _, p := range bc.Properties {
		switch p {
		case "incorporeal":
			props |= components.BaddieIncorporeal
		case "no_homing_projectiles":
			props |= components.BaddieNoHomingProjectile
		default:
			return components.BaddieData{}, fmt.Errorf("unknown property %q", p)
		}
	}
	comps := make([]components.ComponentData, 0, len(bc.Components))
	for _, cc := range bc.Components {
		imm, err := components.ParseDamageFlags(cc.Immunities)
		if err != nil {
			return components.BaddieData{}, err
		}
		comps = append(comps, components.ComponentData{
			Offset:         r2.Vec{X: cc.Offset[0], Y: cc.Offset[1]},
			BoundingRadius: cc.Radius,
			Immunities:     imm,
		})
	}
	return components.BaddieData{
		MaxHealth:             bc.MaxHealth,
		OverallBoundingRadius: bc.BoundingRadius,
		Properties:            props,
		Components:            comps,
	}, nil
}
