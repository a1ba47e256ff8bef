// Package main provides CMA-ES tuning of enemy weapon parameters.
package main

import (
	"fmt"
	"strings"

	"github.com/pthm-cable/skirmish/config"
)

// ParamSpec defines a single optimizable parameter.
type ParamSpec struct {
	Name    string  // Human-readable name
	Path    string  // <section>.<entry>.<field>, e.g. projectiles.oth_rocket.speed
	Min     float64 // Lower bound
	Max     float64 // Upper bound
	Default float64 // Default value
}

// ParamVector holds the set of all optimizable parameters.
type ParamVector struct {
	Specs []ParamSpec
}

// NewParamVector creates the standard set of optimizable parameters.
func NewParamVector() *ParamVector {
	return &ParamVector{
		Specs: []ParamSpec{
			// Homing shots (orb 2, gunship)
			{Name: "homing_damage", Path: "projectiles.oth_homing.impact_damage", Min: 2, Max: 20, Default: 8},
			{Name: "homing_speed", Path: "projectiles.oth_homing.speed", Min: 150, Max: 500, Default: 300},
			{Name: "homing_rate", Path: "projectiles.oth_homing.homing_rate", Min: 0.5, Max: 4, Default: 2},
			// Rockets (crabs, snapdragon, gunship)
			{Name: "rocket_damage", Path: "projectiles.oth_rocket.impact_damage", Min: 5, Max: 30, Default: 15},
			{Name: "rocket_speed", Path: "projectiles.oth_rocket.speed", Min: 200, Max: 800, Default: 400},
			// Minirockets (crawler)
			{Name: "minirocket_damage", Path: "projectiles.oth_minirocket.impact_damage", Min: 2, Max: 15, Default: 6},
			// Spray (crab 2, orb 1, snapdragon)
			{Name: "spray_damage", Path: "projectiles.oth_spray.impact_damage", Min: 1, Max: 12, Default: 5},
			{Name: "spray_speed", Path: "projectiles.oth_spray.speed", Min: 150, Max: 600, Default: 300},
		},
	}
}

// Dim returns the number of parameters.
func (pv *ParamVector) Dim() int {
	return len(pv.Specs)
}

// DefaultVector returns the default parameter values as a slice.
func (pv *ParamVector) DefaultVector() []float64 {
	v := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		v[i] = spec.Default
	}
	return v
}

// Normalize converts raw parameter values to [0,1] range.
func (pv *ParamVector) Normalize(raw []float64) []float64 {
	normalized := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		normalized[i] = (raw[i] - spec.Min) / (spec.Max - spec.Min)
	}
	return normalized
}

// Denormalize converts [0,1] values back to raw parameter values.
func (pv *ParamVector) Denormalize(normalized []float64) []float64 {
	raw := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		raw[i] = spec.Min + normalized[i]*(spec.Max-spec.Min)
	}
	return raw
}

// Clamp ensures all values are within bounds.
func (pv *ParamVector) Clamp(v []float64) []float64 {
	clamped := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		clamped[i] = min(max(v[i], spec.Min), spec.Max)
	}
	return clamped
}

// ApplyToConfig writes clamped parameter values into cfg.
func (pv *ParamVector) ApplyToConfig(cfg *config.Config, values []float64) error {
	clamped := pv.Clamp(values)
	for i, spec := range pv.Specs {
		f, err := field(cfg, spec.Path)
		if err != nil {
			return err
		}
		*f = clamped[i]
	}
	return nil
}

// ExtractFromConfig reads the current parameter values from cfg.
func (pv *ParamVector) ExtractFromConfig(cfg *config.Config) ([]float64, error) {
	v := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		f, err := field(cfg, spec.Path)
		if err != nil {
			return nil, err
		}
		v[i] = *f
	}
	return v, nil
}

// field resolves a parameter path to the config value it names.
func field(cfg *config.Config, path string) (*float64, error) {
	parts := strings.Split(path, ".")
	if len(parts) != 3 {
		return nil, fmt.Errorf("param path %q: want section.entry.field", path)
	}
	section, entry, name := parts[0], parts[1], parts[2]

	switch section {
	case "projectiles":
		i, ok := cfg.Derived.ProjectileIndex[entry]
		if !ok {
			return nil, fmt.Errorf("param path %q: no projectile %q", path, entry)
		}
		p := &cfg.Projectiles[i]
		switch name {
		case "impact_damage":
			return &p.ImpactDamage, nil
		case "splash_damage":
			return &p.SplashDamage, nil
		case "speed":
			return &p.Speed, nil
		case "homing_rate":
			return &p.HomingRate, nil
		case "lifetime":
			return &p.Lifetime, nil
		}
	case "baddies":
		i, ok := cfg.Derived.BaddieIndex[entry]
		if !ok {
			return nil, fmt.Errorf("param path %q: no baddie %q", path, entry)
		}
		if name == "max_health" {
			return &cfg.Baddies[i].MaxHealth, nil
		}
	default:
		return nil, fmt.Errorf("param path %q: unknown section %q", path, section)
	}
	return nil, fmt.Errorf("param path %q: unknown field %q", path, name)
}
