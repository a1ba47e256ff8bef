// Package config provides configuration loading and access for the simulation.
package config

import (
	_ "embed"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all simulation configuration parameters.
type Config struct {
	Simulation  SimulationConfig   `yaml:"simulation"`
	Capacity    CapacityConfig     `yaml:"capacity"`
	Ship        ShipConfig         `yaml:"ship"`
	Telemetry   TelemetryConfig    `yaml:"telemetry"`
	Projectiles []ProjectileConfig `yaml:"projectiles"`
	Baddies     []BaddieConfig     `yaml:"baddies"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// SimulationConfig holds the fixed timestep and random seed.
type SimulationConfig struct {
	DT   float64 `yaml:"dt"`   // Seconds per tick
	Seed int64   `yaml:"seed"` // 0 = seed from the clock
}

// CapacityConfig holds the fixed sizes of the entity collections.
type CapacityConfig struct {
	Projectiles int `yaml:"projectiles"`
	Baddies     int `yaml:"baddies"`
	Particles   int `yaml:"particles"`
	Specks      int `yaml:"specks"`
}

// ShipConfig holds player ship parameters.
type ShipConfig struct {
	Radius    float64 `yaml:"radius"`
	MaxShield float64 `yaml:"max_shield"`
	// Multiplier applied to knockback impulses from projectile hits.
	KnockbackScale float64 `yaml:"knockback_scale"`
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow         float64 `yaml:"stats_window"`          // Seconds per stats window
	PerfCollectorWindow int     `yaml:"perf_collector_window"` // Ticks averaged per perf sample
}

// ProjectileConfig is the catalog entry for one projectile kind.
type ProjectileConfig struct {
	Name         string   `yaml:"name"`
	Lifetime     float64  `yaml:"lifetime"`
	Speed        float64  `yaml:"speed"`
	ImpactDamage float64  `yaml:"impact_damage"`
	SplashDamage float64  `yaml:"splash_damage"`
	SplashRadius float64  `yaml:"splash_radius"`
	ImpactShake  float64  `yaml:"impact_shake"`
	HomingRate   float64  `yaml:"homing_rate"` // Radians per second
	Shrapnel     string   `yaml:"shrapnel,omitempty"`
	Damage       []string `yaml:"damage"`
	Properties   []string `yaml:"properties,omitempty"` // phased, piercing, no_hit
}

// ComponentConfig is one collision circle of a baddie.
type ComponentConfig struct {
	Offset     [2]float64 `yaml:"offset"`
	Radius     float64    `yaml:"radius"`
	Immunities []string   `yaml:"immunities,omitempty"`
}

// BaddieConfig is the catalog entry for one baddie kind.
type BaddieConfig struct {
	Name           string            `yaml:"name"`
	MaxHealth      float64           `yaml:"max_health"`
	BoundingRadius float64           `yaml:"bounding_radius"`      // Overall radius; 0 = derived from components
	Properties     []string          `yaml:"properties,omitempty"` // incorporeal, no_homing_projectiles
	Components     []ComponentConfig `yaml:"components"`
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	ProjectileIndex map[string]int // name -> index into Projectiles
	BaddieIndex     map[string]int // name -> index into Baddies
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	// Start with embedded defaults
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	// Load user config if provided
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file.
		// Catalog lists are replaced wholesale and re-merged by name below.
		defaults := *cfg
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
		cfg.Projectiles = mergeProjectiles(defaults.Projectiles, cfg.Projectiles)
		cfg.Baddies = mergeBaddies(defaults.Baddies, cfg.Baddies)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	// Compute derived values
	cfg.computeDerived()

	return cfg, nil
}

// mergeProjectiles overlays user entries onto the defaults by name. Unknown
// names are appended so validation can report them.
func mergeProjectiles(defaults, user []ProjectileConfig) []ProjectileConfig {
	if sameSlice(defaults, user) {
		return defaults
	}
	out := append([]ProjectileConfig(nil), defaults...)
	for _, u := range user {
		found := false
		for i := range out {
			if out[i].Name == u.Name {
				out[i] = u
				found = true
				break
			}
		}
		if !found {
			out = append(out, u)
		}
	}
	return out
}

func mergeBaddies(defaults, user []BaddieConfig) []BaddieConfig {
	if sameSlice(defaults, user) {
		return defaults
	}
	out := append([]BaddieConfig(nil), defaults...)
	for _, u := range user {
		found := false
		for i := range out {
			if out[i].Name == u.Name {
				out[i] = u
				found = true
				break
			}
		}
		if !found {
			out = append(out, u)
		}
	}
	return out
}

// sameSlice reports whether the user file left the list untouched.
func sameSlice[T any](a, b []T) bool {
	return len(a) == len(b) && (len(a) == 0 || &a[0] == &b[0])
}

func (c *Config) validate() error {
	if c.Simulation.DT <= 0 {
		return fmt.Errorf("simulation.dt must be positive, got %v", c.Simulation.DT)
	}
	if c.Capacity.Projectiles <= 0 || c.Capacity.Baddies <= 0 {
		return fmt.Errorf("capacity: projectiles and baddies must be positive")
	}
	for _, p := range c.Projectiles {
		if p.Lifetime <= 0 {
			return fmt.Errorf("projectile %q: lifetime must be positive", p.Name)
		}
	}
	for _, b := range c.Baddies {
		if len(b.Components) == 0 {
			return fmt.Errorf("baddie %q: needs at least one component", b.Name)
		}
	}
	return nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	for i := range c.Baddies {
		b := &c.Baddies[i]
		if b.BoundingRadius == 0 {
			for _, comp := range b.Components {
				r := comp.Radius + math.Hypot(comp.Offset[0], comp.Offset[1])
				if r > b.BoundingRadius {
					b.BoundingRadius = r
				}
			}
		}
	}

	c.Derived.ProjectileIndex = make(map[string]int, len(c.Projectiles))
	for i, p := range c.Projectiles {
		c.Derived.ProjectileIndex[p.Name] = i
	}
	c.Derived.BaddieIndex = make(map[string]int, len(c.Baddies))
	for i, b := range c.Baddies {
		c.Derived.BaddieIndex[b.Name] = i
	}
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
