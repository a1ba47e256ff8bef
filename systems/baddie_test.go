package systems

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/skirmish/components"
	"github.com/pthm-cable/skirmish/config"
	"github.com/pthm-cable/skirmish/space"
)

func countProjectiles(s *space.State, kind components.ProjectileKind) []*components.Projectile {
	var out []*components.Projectile
	for i := 0; i < s.Projectiles.Cap(); i++ {
		if p := s.Projectiles.At(i); p.Kind == kind {
			out = append(out, p)
		}
	}
	return out
}

func countBaddies(s *space.State, kind components.BaddieKind) int {
	n := 0
	for i := 0; i < s.Baddies.Cap(); i++ {
		if s.Baddies.At(i).Kind == kind {
			n++
		}
	}
	return n
}

func TestSnapdragonSprayStep(t *testing.T) {
	s := newState(t)
	s.Ship.Position = r2.Vec{X: 1000}
	b := spawnBaddie(t, s, components.BaddieOthSnapdragon, r2.Vec{})
	st := b.State.(*components.SnapdragonState)
	st.Step = 3

	TickBaddies(s, dt)

	if got := len(countProjectiles(s, components.ProjOthSpray)); got != 24 {
		t.Errorf("spray projectiles = %d, want 24", got)
	}
	if b.Cooldown != 2.0 {
		t.Errorf("cooldown = %v, want 2.0", b.Cooldown)
	}
	if st.Step != 4 {
		t.Errorf("step = %d, want 4", st.Step)
	}
}

func TestSnapdragonRocketStep(t *testing.T) {
	tests := []struct {
		name     string
		health   float64
		shipX    float64
		wantStep int
		power    float64
		cooldown float64
	}{
		{"ship ahead", 120, 1000, 1, 0.5, 2.0},
		{"ship behind", 120, -1000, 0, 0, 0},
		{"crazy fires regardless", 10, -1000, 1, 0.3, 0.75},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newState(t)
			s.Ship.Position = r2.Vec{X: tt.shipX}
			b := spawnBaddie(t, s, components.BaddieOthSnapdragon, r2.Vec{})
			b.Health = tt.health
			st := b.State.(*components.SnapdragonState)
			st.Step = 3
			if tt.health == 120 {
				st.Step = 0
			}

			TickBaddies(s, dt)

			if st.Step != tt.wantStep {
				t.Errorf("step = %d, want %d", st.Step, tt.wantStep)
			}
			if b.Cooldown != tt.cooldown {
				t.Errorf("cooldown = %v, want %v", b.Cooldown, tt.cooldown)
			}
			rockets := countProjectiles(s, components.ProjOthRocket)
			if tt.power == 0 {
				if len(rockets) != 0 {
					t.Errorf("fired %d rockets, want none", len(rockets))
				}
				return
			}
			if len(rockets) != 1 || rockets[0].Power != tt.power {
				t.Errorf("rockets = %d, want one with power %v", len(rockets), tt.power)
			}
		})
	}
}

func TestSnapdragonRazorLaunch(t *testing.T) {
	s := newState(t)
	b := spawnBaddie(t, s, components.BaddieOthSnapdragon, r2.Vec{})
	st := b.State.(*components.SnapdragonState)
	st.Step = 5

	TickBaddies(s, dt)
	if got := countBaddies(s, components.BaddieOthRazor); got != 3 {
		t.Errorf("razors = %d, want 3", got)
	}
	if st.Step != 6 {
		t.Errorf("step = %d, want 6", st.Step)
	}
	if b.Cooldown < 2 || b.Cooldown > 4 {
		t.Errorf("cooldown = %v, want in [2, 4]", b.Cooldown)
	}
}

func TestSpawnFailureKeepsState(t *testing.T) {
	for _, step := range []int{5, 8} {
		cfg := *config.Cfg()
		cfg.Capacity.Baddies = 1
		s := newStateWith(t, &cfg)
		b := spawnBaddie(t, s, components.BaddieOthSnapdragon, r2.Vec{})
		st := b.State.(*components.SnapdragonState)
		st.Step = step

		TickBaddies(s, dt)
		if st.Step != step {
			t.Errorf("step %d: advanced to %d with a full pool", step, st.Step)
		}
		if b.Cooldown != 0 {
			t.Errorf("step %d: cooldown = %v, want 0", step, b.Cooldown)
		}
		if s.Counters.SpawnFailures == 0 {
			t.Errorf("step %d: spawn failure not counted", step)
		}
	}
}

func TestCrabCooldown(t *testing.T) {
	tests := []struct {
		name         string
		projectiles  int
		wantCooldown float64
	}{
		{"fires", 250, 2.0},
		{"pool full retries", 1, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := *config.Cfg()
			cfg.Capacity.Projectiles = tt.projectiles
			s := newStateWith(t, &cfg)
			s.Ship.Position = r2.Vec{X: 300}
			if tt.projectiles == 1 {
				spawnProjectile(t, s, components.ProjGunNormal, false, r2.Vec{X: -500}, math.Pi)
			}
			b := spawnBaddie(t, s, components.BaddieOthCrab1, r2.Vec{})

			TickBaddies(s, dt)
			if b.Cooldown != tt.wantCooldown {
				t.Errorf("cooldown = %v, want %v", b.Cooldown, tt.wantCooldown)
			}
		})
	}
}

func TestCrabNeedsLineOfSight(t *testing.T) {
	s := newState(t)
	s.Ship.Position = r2.Vec{X: 300}
	s.Walls = []components.Wall{components.NewWall(components.WallIndestructible, r2.Vec{X: 150}, 0,
		[]r2.Vec{{X: 5, Y: 50}, {X: -5, Y: 50}, {X: -5, Y: -50}, {X: 5, Y: -50}})}
	b := spawnBaddie(t, s, components.BaddieOthCrab1, r2.Vec{})

	TickBaddies(s, dt)
	if b.Cooldown != 0 || len(countProjectiles(s, components.ProjOthRocket)) != 0 {
		t.Error("crab fired through a wall")
	}
}

func TestOrbSprayRing(t *testing.T) {
	s := newState(t)
	s.Ship.Position = r2.Vec{X: 300}
	b := spawnBaddie(t, s, components.BaddieOthOrb1, r2.Vec{})

	TickBaddies(s, dt)
	if got := len(countProjectiles(s, components.ProjOthSpray)); got != 18 {
		t.Errorf("sprays = %d, want 18", got)
	}
	if b.Cooldown != 2.0 {
		t.Errorf("cooldown = %v, want 2.0", b.Cooldown)
	}
}

func TestCrawlerLeadsTarget(t *testing.T) {
	s := newState(t)
	s.Ship.Position = r2.Vec{X: 300}
	s.Ship.Velocity = r2.Vec{Y: 100}
	b := spawnBaddie(t, s, components.BaddieOthCrawler, r2.Vec{})

	TickBaddies(s, dt)
	shots := countProjectiles(s, components.ProjOthMinirocket)
	if len(shots) != 1 {
		t.Fatalf("minirockets = %d, want 1", len(shots))
	}
	if shots[0].Velocity.Y <= 0 {
		t.Errorf("shot velocity %v does not lead the moving ship", shots[0].Velocity)
	}
	if b.Cooldown < 1 || b.Cooldown > 2 {
		t.Errorf("cooldown = %v, want in [1, 2]", b.Cooldown)
	}
}

func TestRazorLaunchModes(t *testing.T) {
	tests := []struct {
		launch components.RazorMode
		want   components.RazorMode
	}{
		{components.RazorLaunchHoming, components.RazorHoming},
		{components.RazorLaunchBounce, components.RazorBouncing},
	}
	for _, tt := range tests {
		s := newState(t)
		s.Clock--
		b, _ := s.AddBaddie(space.BaddieSpawn{
			Kind:  components.BaddieOthRazor,
			State: &components.RazorState{Mode: tt.launch},
		})
		s.Clock++

		TickBaddies(s, dt)
		st := b.State.(*components.RazorState)
		if st.Mode != tt.want {
			t.Errorf("mode = %v, want %v", st.Mode, tt.want)
		}
		if speed := r2.Norm(b.Velocity); speed < 290 || speed > 500 {
			t.Errorf("speed = %v, want a launch speed", speed)
		}
	}
}

func TestFrozenBaddieIdles(t *testing.T) {
	s := newState(t)
	s.Ship.Position = r2.Vec{X: 300}
	b := spawnBaddie(t, s, components.BaddieOthCrab1, r2.Vec{})
	b.Frozen = 0.5
	b.Cooldown = 1
	b.Velocity = r2.Vec{X: 50}

	TickBaddies(s, dt)
	if b.Position != (r2.Vec{}) {
		t.Errorf("frozen baddie moved to %v", b.Position)
	}
	if !approxEqual(b.Frozen, 0.5-dt) || !approxEqual(b.Cooldown, 1-dt) {
		t.Errorf("frozen = %v cooldown = %v, want both decayed by dt", b.Frozen, b.Cooldown)
	}
}

func TestBaddieBouncesOffWall(t *testing.T) {
	s := newState(t)
	s.Walls = []components.Wall{components.NewWall(components.WallIndestructible, r2.Vec{X: 20}, 0,
		[]r2.Vec{{X: 5, Y: 50}, {X: -5, Y: 50}, {X: -5, Y: -50}, {X: 5, Y: -50}})}
	s.Clock--
	b, _ := s.AddBaddie(space.BaddieSpawn{
		Kind:     components.BaddieOthRazor,
		Position: r2.Vec{X: 2},
		State:    &components.RazorState{Mode: components.RazorBouncing},
	})
	s.Clock++
	b.Velocity = r2.Vec{X: 300}

	TickBaddies(s, dt)
	if b.Velocity.X >= 0 {
		t.Errorf("velocity = %v, want reflected off the wall", b.Velocity)
	}
	if b.Position.X > 5+1e-6 {
		t.Errorf("position = %v, razor overlaps the wall", b.Position)
	}
}

func TestGunshipIntro(t *testing.T) {
	s := newState(t)
	b := spawnBaddie(t, s, components.BaddieOthGunship, r2.Vec{})

	TickBaddies(s, dt)
	st := b.State.(*components.GunshipState)
	if st.Phase != components.GunshipLineUp || b.Cooldown != 10 {
		t.Errorf("phase = %v cooldown = %v, want line-up with cooldown 10", st.Phase, b.Cooldown)
	}
}

func TestGunshipCPlusDash(t *testing.T) {
	s := newState(t)
	s.Ship.Position = r2.Vec{X: 500}
	b := spawnBaddie(t, s, components.BaddieOthGunship, r2.Vec{})
	st := b.State.(*components.GunshipState)
	st.Phase = components.GunshipLineUp
	b.Cooldown = 5

	TickBaddies(s, dt)
	if st.Phase != components.GunshipCPlusDrive {
		t.Fatalf("phase = %v, want C-plus drive", st.Phase)
	}
	if !approxEqual(b.Velocity.X, 1000) {
		t.Errorf("velocity = %v, want 1000 towards the ship", b.Velocity)
	}

	// Knocked off course, the dash ends in a flight to cover.
	b.Velocity = r2.Vec{Y: 1000}
	TickBaddies(s, dt)
	if st.Phase != components.GunshipFlee {
		t.Errorf("phase = %v, want flee", st.Phase)
	}
}

func TestGunshipFleeTarget(t *testing.T) {
	s := newState(t)
	s.Ship.Position = r2.Vec{X: 200}
	s.Nodes = []components.Node{
		{Kind: components.NodeMarker, Position: r2.Vec{X: 100}},
		{Kind: components.NodeMarker, Position: r2.Vec{X: -400}},
		{Kind: components.NodeNothing, Position: r2.Vec{X: -900}},
	}
	b := spawnBaddie(t, s, components.BaddieOthGunship, r2.Vec{})

	if got := fleeTarget(s, b); got != (r2.Vec{X: -400}) {
		t.Errorf("flee target = %v, want (-400, 0)", got)
	}

	s.Walls = []components.Wall{components.NewWall(components.WallIndestructible, r2.Vec{X: -200}, 0,
		[]r2.Vec{{X: 5, Y: 50}, {X: -5, Y: 50}, {X: -5, Y: -50}, {X: 5, Y: -50}})}
	if got := fleeTarget(s, b); got != (r2.Vec{X: 100}) {
		t.Errorf("flee target behind wall: got %v, want (100, 0)", got)
	}
}

func TestBaddieLeavesWallAfterBounce(t *testing.T) {
	s := newState(t)
	s.Walls = []components.Wall{components.NewWall(components.WallIndestructible, r2.Vec{X: 20}, 0,
		[]r2.Vec{{X: 5, Y: 50}, {X: -5, Y: 50}, {X: -5, Y: -50}, {X: 5, Y: -50}})}
	s.Clock--
	b, _ := s.AddBaddie(space.BaddieSpawn{
		Kind:     components.BaddieOthRazor,
		Position: r2.Vec{X: -40},
		State:    &components.RazorState{Mode: components.RazorBouncing},
	})
	s.Clock++
	b.Velocity = r2.Vec{X: 300}

	bounced := false
	for i := 0; i < 60; i++ {
		TickBaddies(s, dt)
		s.Clock++
		if b.Velocity.X < 0 {
			bounced = true
		}
	}
	if !bounced {
		t.Fatal("razor never reached the wall")
	}
	// Contact happens after 0.15s; the rest of the second is spent flying back.
	if b.Position.X > -150 {
		t.Errorf("position = %v, razor stayed on the wall", b.Position)
	}
	if b.Velocity.X >= 0 {
		t.Errorf("velocity = %v, want heading away from the wall", b.Velocity)
	}
}

func TestCrab2Timers(t *testing.T) {
	tests := []struct {
		name          string
		cooldown      float64
		spray         float64
		wantRockets   int
		wantSprays    int
		wantCooldown  float64
		wantSprayWait float64
	}{
		{"both weapons in one tick", 0, 0, 1, 2, 1.5, 0.9},
		{"spray while rockets cool", 1, 0, 0, 2, 1 - dt, 0.9},
		{"rocket while spray cools", 0, 0.5, 1, 0, 1.5, 0.5 - dt},
		{"both cooling", 1, 0.5, 0, 0, 1 - dt, 0.5 - dt},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newState(t)
			s.Ship.Position = r2.Vec{X: 300}
			b := spawnBaddie(t, s, components.BaddieOthCrab2, r2.Vec{})
			st := b.State.(*components.Crab2State)
			b.Cooldown = tt.cooldown
			st.SprayCooldown = tt.spray

			TickBaddies(s, dt)
			if got := len(countProjectiles(s, components.ProjOthRocket)); got != tt.wantRockets {
				t.Errorf("rockets = %d, want %d", got, tt.wantRockets)
			}
			if got := len(countProjectiles(s, components.ProjOthSpray)); got != tt.wantSprays {
				t.Errorf("sprays = %d, want %d", got, tt.wantSprays)
			}
			if !approxEqual(b.Cooldown, tt.wantCooldown) {
				t.Errorf("cooldown = %v, want %v", b.Cooldown, tt.wantCooldown)
			}
			if !approxEqual(st.SprayCooldown, tt.wantSprayWait) {
				t.Errorf("spray cooldown = %v, want %v", st.SprayCooldown, tt.wantSprayWait)
			}
		})
	}
}

func TestSnapdragonCycleWraps(t *testing.T) {
	s := newState(t)
	b := spawnBaddie(t, s, components.BaddieOthSnapdragon, r2.Vec{})
	st := b.State.(*components.SnapdragonState)
	st.Step = components.SnapdragonCycleLength - 1

	TickBaddies(s, dt)
	if got := countBaddies(s, components.BaddieOthRazor); got != 4 {
		t.Errorf("bouncing razors = %d, want 4", got)
	}
	if st.Step != 0 {
		t.Errorf("step = %d, want the cycle to restart at 0", st.Step)
	}
}

func TestGunshipTransitions(t *testing.T) {
	tests := []struct {
		name     string
		phase    components.GunshipPhase
		cooldown float64
		shipX    float64
		marker   bool
		want     components.GunshipPhase
		wantCD   float64
	}{
		{"flee done, ship far", components.GunshipFlee, 0, 2000, false, components.GunshipLineUp, 3},
		{"flee done, ship near", components.GunshipFlee, 0, 500, false, components.GunshipPursue, 0},
		{"still fleeing to marker", components.GunshipFlee, 5, 500, true, components.GunshipFlee, 5 - dt},
		{"at cover before cooldown", components.GunshipFlee, 5, 500, false, components.GunshipPursue, 5 - dt},
		{"pursue into range", components.GunshipPursue, 0, 250, false, components.GunshipDogfight, 0},
		{"pursue out of range", components.GunshipPursue, 0, 600, false, components.GunshipPursue, 0},
		{"line-up times out", components.GunshipLineUp, 0, 500, false, components.GunshipPursue, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newState(t)
			s.Ship.Position = r2.Vec{X: tt.shipX}
			if tt.marker {
				s.Nodes = []components.Node{{Kind: components.NodeMarker, Position: r2.Vec{X: -1000}}}
			}
			if tt.phase == components.GunshipLineUp {
				// Facing away, so the dash cannot start this tick.
				s.Ship.Position = r2.Vec{X: -tt.shipX}
			}
			b := spawnBaddie(t, s, components.BaddieOthGunship, r2.Vec{})
			st := b.State.(*components.GunshipState)
			st.Phase = tt.phase
			b.Cooldown = tt.cooldown
			if tt.marker {
				b.Angle = math.Pi
			}

			TickBaddies(s, dt)
			if st.Phase != tt.want {
				t.Errorf("phase = %v, want %v", st.Phase, tt.want)
			}
			if !approxEqual(b.Cooldown, tt.wantCD) {
				t.Errorf("cooldown = %v, want %v", b.Cooldown, tt.wantCD)
			}
			if tt.marker && b.Velocity.X >= 0 {
				t.Errorf("velocity = %v, want heading for the marker", b.Velocity)
			}
		})
	}
}

func TestGunshipAttackSelection(t *testing.T) {
	tests := []struct {
		name   string
		health float64 // fraction of max
		want   []components.GunshipPhase
	}{
		{"unhurt", 1, []components.GunshipPhase{components.GunshipTripleShot}},
		{"lightly hurt", 0.6, []components.GunshipPhase{components.GunshipTripleShot, components.GunshipHyperRocket}},
		{"badly hurt", 0.1, []components.GunshipPhase{components.GunshipTripleShot, components.GunshipHyperRocket,
			components.GunshipHomingShots, components.GunshipBarrage}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newState(t)
			s.Ship.Position = r2.Vec{X: 100}
			b := spawnBaddie(t, s, components.BaddieOthGunship, r2.Vec{})
			b.Health = tt.health * b.Data.MaxHealth
			st := b.State.(*components.GunshipState)

			seen := map[components.GunshipPhase]int{}
			for i := 0; i < 1000; i++ {
				st.Phase = components.GunshipDogfight
				b.Position, b.Velocity, b.Angle, b.Cooldown = r2.Vec{}, r2.Vec{}, 0, 0
				TickBaddies(s, dt)
				if st.Phase != components.GunshipDogfight {
					seen[st.Phase]++
				}
				for j := 0; j < s.Projectiles.Cap(); j++ {
					s.Projectiles.At(j).Kind = components.ProjNothing
				}
			}
			if len(seen) != len(tt.want) {
				t.Errorf("attacks chosen = %v, want exactly %v", seen, tt.want)
			}
			for _, phase := range tt.want {
				if seen[phase] == 0 {
					t.Errorf("attack %v never chosen (seen %v)", phase, seen)
				}
			}
		})
	}
}
