package game

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/pthm-cable/skirmish/components"
	"github.com/pthm-cable/skirmish/config"
	"github.com/pthm-cable/skirmish/space"
)

func emptyState(t *testing.T, cfg *config.Config) *space.State {
	t.Helper()
	catalog, err := space.NewCatalog(cfg)
	if err != nil {
		t.Fatalf("NewCatalog: %v", err)
	}
	return space.NewState(cfg, catalog, 1)
}

func TestEmbeddedScenariosApply(t *testing.T) {
	names := ScenarioNames()
	if len(names) == 0 {
		t.Fatal("no embedded scenarios")
	}
	for _, name := range names {
		t.Run(name, func(t *testing.T) {
			sc, err := LoadScenario(name)
			if err != nil {
				t.Fatalf("LoadScenario: %v", err)
			}
			if sc.Name != name {
				t.Errorf("fixture name = %q, want %q", sc.Name, name)
			}
			s := emptyState(t, config.Cfg())
			if err := sc.Apply(s); err != nil {
				t.Fatalf("Apply: %v", err)
			}
			if got := s.Baddies.Count(); got != len(sc.Baddies) {
				t.Errorf("baddies placed = %d, want %d", got, len(sc.Baddies))
			}
			if got := s.Projectiles.Count(); got != len(sc.Projectiles) {
				t.Errorf("projectiles placed = %d, want %d", got, len(sc.Projectiles))
			}
			if len(s.Walls) != len(sc.Walls) || len(s.Doors) != len(sc.Doors) {
				t.Errorf("placed %d walls / %d doors, want %d / %d",
					len(s.Walls), len(s.Doors), len(sc.Walls), len(sc.Doors))
			}
		})
	}
}

func TestLoadScenarioUnknownName(t *testing.T) {
	_, err := LoadScenario("no_such_room")
	if !errors.Is(err, ErrUnknownScenario) {
		t.Errorf("err = %v, want ErrUnknownScenario", err)
	}
}

func TestLoadScenarioFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "duel.yaml")
	data := []byte(`
name: duel
ship: {position: [10, 20], shield: 40}
markers: [[1, 2]]
doors:
  - {kind: passage, position: [100, 0], angle: 3.14}
baddies:
  - {kind: oth_orb_1, position: [200, 0]}
projectiles:
  - {kind: missile_phase, position: [0, 0], param: -1}
`)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	sc, err := LoadScenario(path)
	if err != nil {
		t.Fatalf("LoadScenario: %v", err)
	}
	s := emptyState(t, config.Cfg())
	if err := sc.Apply(s); err != nil {
		t.Fatalf("Apply: %v", err)
	}

	if s.Ship.Position.X != 10 || s.Ship.Position.Y != 20 || s.Ship.Shield != 40 {
		t.Errorf("ship = %+v", s.Ship)
	}
	if len(s.Nodes) != 1 || s.Nodes[0].Kind != components.NodeMarker {
		t.Errorf("nodes = %+v, want one marker", s.Nodes)
	}
	if !s.Doors[0].IsOpen {
		t.Error("passages should start open")
	}
	if b := s.Baddies.At(0); b.Kind != components.BaddieOthOrb1 || b.BornTick != 0 {
		t.Errorf("slot 0 = %v born %d", b.Kind, b.BornTick)
	}
	if p := s.Projectiles.At(0); p.Kind != components.ProjMissilePhase || p.Param != -1 || p.Power != 1 {
		t.Errorf("projectile = %v param %v power %v", p.Kind, p.Param, p.Power)
	}
}

func TestScenarioUnknownKind(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"baddie", "baddies: [{kind: oth_kraken}]"},
		{"projectile", "projectiles: [{kind: laser}]"},
		{"door", "doors: [{kind: revolving}]"},
		{"wall", "walls: [{kind: glass, polygon: [[0, 0], [1, 0], [0, 1]]}]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sc, err := ParseScenario([]byte(tt.yaml))
			if err != nil {
				t.Fatalf("ParseScenario: %v", err)
			}
			err = sc.Apply(emptyState(t, config.Cfg()))
			if !errors.Is(err, space.ErrUnknownKind) {
				t.Errorf("err = %v, want ErrUnknownKind", err)
			}
		})
	}
}

func TestScenarioDegenerateWall(t *testing.T) {
	sc, err := ParseScenario([]byte("walls: [{kind: normal, polygon: [[0, 0], [1, 0]]}]"))
	if err != nil {
		t.Fatal(err)
	}
	if err := sc.Apply(emptyState(t, config.Cfg())); err == nil {
		t.Error("expected an error for a two-vertex wall")
	}
}

func TestScenarioExceedsCapacity(t *testing.T) {
	cfg := *config.Cfg()
	cfg.Capacity.Baddies = 1

	sc, err := ParseScenario([]byte("baddies: [{kind: oth_orb_1}, {kind: oth_orb_2}]"))
	if err != nil {
		t.Fatal(err)
	}
	if err := sc.Apply(emptyState(t, &cfg)); err == nil {
		t.Error("expected a capacity error")
	}
}

func TestParseScenarioBadYAML(t *testing.T) {
	if _, err := ParseScenario([]byte("baddies: {")); err == nil {
		t.Error("expected a parse error")
	}
}
