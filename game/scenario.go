package game

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"

	"gonum.org/v1/gonum/spatial/r2"
	"gopkg.in/yaml.v3"

	"github.com/pthm-cable/skirmish/components"
	"github.com/pthm-cable/skirmish/space"
)

//go:embed scenarios/*.yaml
var scenarioFS embed.FS

// ErrUnknownScenario is returned when a scenario name matches neither an
// embedded fixture nor a file.
var ErrUnknownScenario = errors.New("unknown scenario")

// Scenario is a room layout with its starting entities.
type Scenario struct {
	Name        string           `yaml:"name"`
	Description string           `yaml:"description"`
	Ship        ShipSpec         `yaml:"ship"`
	Doors       []DoorSpec       `yaml:"doors"`
	Walls       []WallSpec       `yaml:"walls"`
	Markers     [][2]float64     `yaml:"markers"`
	Baddies     []BaddieSpec     `yaml:"baddies"`
	Projectiles []ProjectileSpec `yaml:"projectiles"`
}

// ShipSpec places the ship. Shield 0 means full shield.
type ShipSpec struct {
	Absent   bool       `yaml:"absent"`
	Position [2]float64 `yaml:"position"`
	Angle    float64    `yaml:"angle"`
	Shield   float64    `yaml:"shield"`
}

// DoorSpec places a door.
type DoorSpec struct {
	Kind     string     `yaml:"kind"`
	Position [2]float64 `yaml:"position"`
	Angle    float64    `yaml:"angle"`
	Open     bool       `yaml:"open"`
}

// WallSpec places a wall. Polygon is in local coordinates.
type WallSpec struct {
	Kind     string       `yaml:"kind"`
	Position [2]float64   `yaml:"position"`
	Angle    float64      `yaml:"angle"`
	Polygon  [][2]float64 `yaml:"polygon"`
}

// BaddieSpec places a baddie.
type BaddieSpec struct {
	Kind     string     `yaml:"kind"`
	Position [2]float64 `yaml:"position"`
	Angle    float64    `yaml:"angle"`
}

// ProjectileSpec places a projectile in flight.
type ProjectileSpec struct {
	Kind     string     `yaml:"kind"`
	Position [2]float64 `yaml:"position"`
	Angle    float64    `yaml:"angle"`
	Enemy    bool       `yaml:"enemy"`
	Power    float64    `yaml:"power"` // 0 = 1
	Param    float64    `yaml:"param"` // phase missile wobble, -1 or 1
}

func vec(p [2]float64) r2.Vec {
	return r2.Vec{X: p[0], Y: p[1]}
}

// ScenarioNames lists the embedded fixtures.
func ScenarioNames() []string {
	entries, err := fs.ReadDir(scenarioFS, "scenarios")
	if err != nil {
		return nil
	}
	var names []string
	for _, e := range entries {
		if name, ok := strings.CutSuffix(e.Name(), ".yaml"); ok {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// LoadScenario reads an embedded fixture by name, or a YAML file when name
// ends in .yaml or .yml.
func LoadScenario(name string) (*Scenario, error) {
	var data []byte
	var err error
	switch path.Ext(name) {
	case ".yaml", ".yml":
		data, err = os.ReadFile(name)
		if err != nil {
			return nil, fmt.Errorf("reading scenario: %w", err)
		}
	default:
		data, err = scenarioFS.ReadFile("scenarios/" + name + ".yaml")
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrUnknownScenario, name)
		}
	}
	return ParseScenario(data)
}

// ParseScenario decodes a scenario from YAML.
func ParseScenario(data []byte) (*Scenario, error) {
	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, fmt.Errorf("parsing scenario: %w", err)
	}
	return &sc, nil
}

// Apply places the scenario into an empty room. Entities are born at the
// current clock. Unknown kind names wrap space.ErrUnknownKind; running out of
// capacity is an error.
func (sc *Scenario) Apply(s *space.State) error {
	s.Ship.Present = !sc.Ship.Absent
	s.Ship.Position = vec(sc.Ship.Position)
	s.Ship.Angle = sc.Ship.Angle
	if sc.Ship.Shield > 0 {
		s.Ship.Shield = min(sc.Ship.Shield, s.Ship.MaxShield)
	}

	for i, d := range sc.Doors {
		kind, ok := components.ParseDoorKind(d.Kind)
		if !ok {
			return fmt.Errorf("door %d %q: %w", i, d.Kind, space.ErrUnknownKind)
		}
		door := components.Door{
			Kind:     kind,
			Position: vec(d.Position),
			Angle:    d.Angle,
			IsOpen:   d.Open || kind == components.DoorPassage,
		}
		if door.IsOpen {
			door.Openness = 1
		}
		s.Doors = append(s.Doors, door)
	}

	for i, w := range sc.Walls {
		kind, ok := components.ParseWallKind(w.Kind)
		if !ok {
			return fmt.Errorf("wall %d %q: %w", i, w.Kind, space.ErrUnknownKind)
		}
		if len(w.Polygon) < 3 {
			return fmt.Errorf("wall %d: polygon needs at least 3 vertices", i)
		}
		poly := make([]r2.Vec, len(w.Polygon))
		for j, p := range w.Polygon {
			poly[j] = vec(p)
		}
		s.Walls = append(s.Walls, components.NewWall(kind, vec(w.Position), w.Angle, poly))
	}

	for _, m := range sc.Markers {
		s.Nodes = append(s.Nodes, components.Node{Kind: components.NodeMarker, Position: vec(m)})
	}

	for i, b := range sc.Baddies {
		kind, ok := components.ParseBaddieKind(b.Kind)
		if !ok {
			return fmt.Errorf("baddie %d %q: %w", i, b.Kind, space.ErrUnknownKind)
		}
		if _, ok := s.AddBaddie(space.BaddieSpawn{Kind: kind, Position: vec(b.Position), Angle: b.Angle}); !ok {
			return fmt.Errorf("baddie %d: capacity %d exceeded", i, s.Baddies.Cap())
		}
	}

	for i, p := range sc.Projectiles {
		kind, ok := components.ParseProjectileKind(p.Kind)
		if !ok {
			return fmt.Errorf("projectile %d %q: %w", i, p.Kind, space.ErrUnknownKind)
		}
		power := p.Power
		if power == 0 {
			power = 1
		}
		proj, ok := s.AddProjectile(kind, p.Enemy, vec(p.Position), p.Angle, power)
		if !ok {
			return fmt.Errorf("projectile %d: capacity %d exceeded", i, s.Projectiles.Cap())
		}
		proj.Param = p.Param
	}

	return nil
}
