package geometry

import (
	"math"
	"testing"

	"github.com/pthm-cable/skirmish/components"
	"gonum.org/v1/gonum/spatial/r2"
)

const eps = 1e-9

func near(a, b r2.Vec) bool {
	return math.Abs(a.X-b.X) < 1e-6 && math.Abs(a.Y-b.Y) < 1e-6
}

func TestMod2Pi(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0, 0},
		{math.Pi, math.Pi},
		{-math.Pi, math.Pi},
		{3 * math.Pi / 2, -math.Pi / 2},
	}
	for _, tt := range tests {
		if got := Mod2Pi(tt.in); math.Abs(got-tt.want) > eps {
			t.Errorf("Mod2Pi(%f) = %f, want %f", tt.in, got, tt.want)
		}
	}
}

func TestAngleTowards(t *testing.T) {
	tests := []struct {
		name                 string
		current, delta, goal float64
		want                 float64
	}{
		{"reaches goal", 0, 1, 0.5, 0.5},
		{"limited ccw", 0, 0.1, 1, 0.1},
		{"limited cw", 0, 0.1, -1, -0.1},
		{"short way across pi", 3, 0.2, -3, 3.2 - 2*math.Pi},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AngleTowards(tt.current, tt.delta, tt.goal)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("got %f, want %f", got, tt.want)
			}
		})
	}
}

func TestRayHitsCircle(t *testing.T) {
	center := r2.Vec{X: 10, Y: 0}
	p, n, ok := RayHitsCircle(center, 2, r2.Vec{}, r2.Vec{X: 20})
	if !ok {
		t.Fatal("expected hit")
	}
	if !near(p, r2.Vec{X: 8}) {
		t.Errorf("point = %v, want (8,0)", p)
	}
	if !near(n, r2.Vec{X: -1}) {
		t.Errorf("normal = %v, want (-1,0)", n)
	}

	if _, _, ok := RayHitsCircle(center, 2, r2.Vec{}, r2.Vec{X: 5}); ok {
		t.Error("short ray should miss")
	}
	if _, _, ok := RayHitsCircle(center, 2, r2.Vec{Y: 5}, r2.Vec{X: 20}); ok {
		t.Error("offset ray should miss")
	}
}

func TestCircleHitsCircle(t *testing.T) {
	pos, impact, ok := CircleHitsCircle(3, r2.Vec{}, r2.Vec{X: 20}, r2.Vec{X: 10}, 2)
	if !ok {
		t.Fatal("expected hit")
	}
	if !near(pos, r2.Vec{X: 5}) {
		t.Errorf("pos = %v, want (5,0)", pos)
	}
	if !near(impact, r2.Vec{X: 8}) {
		t.Errorf("impact = %v, want (8,0)", impact)
	}
}

func TestLeadTarget(t *testing.T) {
	t.Run("stationary target", func(t *testing.T) {
		got, ok := LeadTarget(r2.Vec{X: 100}, r2.Vec{}, 50)
		if !ok || !near(got, r2.Vec{X: 100}) {
			t.Errorf("got %v ok=%v", got, ok)
		}
	})
	t.Run("crossing target", func(t *testing.T) {
		rel := r2.Vec{X: 100}
		vel := r2.Vec{Y: 30}
		got, ok := LeadTarget(rel, vel, 50)
		if !ok {
			t.Fatal("expected solution")
		}
		// The intercept is reached by the projectile and the target at the same time.
		tt := r2.Norm(got) / 50
		want := r2.Add(rel, r2.Scale(tt, vel))
		if !near(got, want) {
			t.Errorf("got %v, want %v", got, want)
		}
	})
	t.Run("unreachable target", func(t *testing.T) {
		if _, ok := LeadTarget(r2.Vec{X: 100}, r2.Vec{X: 80}, 50); ok {
			t.Error("target outrunning projectile should have no solution")
		}
	})
}

func square(half float64) Polygon {
	return Polygon{{X: half, Y: half}, {X: -half, Y: half}, {X: -half, Y: -half}, {X: half, Y: -half}}
}

func TestRayHitsPolygon(t *testing.T) {
	poly := square(5)
	p, n, ok := RayHitsPolygon(poly, r2.Vec{X: -20}, r2.Vec{X: 40})
	if !ok {
		t.Fatal("expected hit")
	}
	if !near(p, r2.Vec{X: -5}) {
		t.Errorf("point = %v, want (-5,0)", p)
	}
	if !near(n, r2.Vec{X: -1}) {
		t.Errorf("normal = %v, want (-1,0)", n)
	}

	p, _, ok = RayHitsPolygon(poly, r2.Vec{}, r2.Vec{X: 40})
	if !ok || !near(p, r2.Vec{}) {
		t.Errorf("ray from inside should hit at start, got %v ok=%v", p, ok)
	}
}

func TestCircleHitsPolygon(t *testing.T) {
	poly := square(5)
	pos, impact, ok := CircleHitsPolygon(poly, 2, r2.Vec{X: -20}, r2.Vec{X: 40})
	if !ok {
		t.Fatal("expected hit")
	}
	if !near(pos, r2.Vec{X: -7}) {
		t.Errorf("pos = %v, want (-7,0)", pos)
	}
	if !near(impact, r2.Vec{X: -5}) {
		t.Errorf("impact = %v, want (-5,0)", impact)
	}

	// Grazing the corner.
	pos, impact, ok = CircleHitsPolygon(poly, 2, r2.Vec{X: -20, Y: 6}, r2.Vec{X: 40})
	if !ok {
		t.Fatal("expected corner hit")
	}
	if !near(impact, r2.Vec{X: -5, Y: 5}) {
		t.Errorf("impact = %v, want corner (-5,5)", impact)
	}
	if math.Abs(Dist(pos, impact)-2) > 1e-6 {
		t.Errorf("centre should be one radius from corner, got %f", Dist(pos, impact))
	}

	if _, _, ok := CircleHitsPolygon(poly, 2, r2.Vec{X: -20, Y: 8}, r2.Vec{X: 40}); ok {
		t.Error("passing circle should miss")
	}
}

func TestCircleHitsPolygonFromContact(t *testing.T) {
	poly := square(5)
	corner := r2.Vec{X: -6.4, Y: 6.4} // 1.98 from the corner
	tests := []struct {
		name   string
		start  r2.Vec
		delta  r2.Vec
		hit    bool
		impact r2.Vec
	}{
		{"face, moving in", r2.Vec{X: -7}, r2.Vec{X: 5}, true, r2.Vec{X: -5}},
		{"face, moving away", r2.Vec{X: -7}, r2.Vec{X: -5}, false, Zero},
		{"face, sliding along", r2.Vec{X: -7}, r2.Vec{Y: 2}, false, Zero},
		{"corner, moving in", corner, r2.Vec{X: 3, Y: -3}, true, r2.Vec{X: -5, Y: 5}},
		{"corner, moving away", corner, r2.Vec{X: -3, Y: 3}, false, Zero},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pos, impact, ok := CircleHitsPolygon(poly, 2, tt.start, tt.delta)
			if ok != tt.hit {
				t.Fatalf("hit = %v, want %v", ok, tt.hit)
			}
			if !ok {
				return
			}
			if !near(pos, tt.start) {
				t.Errorf("pos = %v, want start %v", pos, tt.start)
			}
			if !near(impact, tt.impact) {
				t.Errorf("impact = %v, want %v", impact, tt.impact)
			}
		})
	}
}

func TestPointInPolygon(t *testing.T) {
	poly := square(5)
	if !PointInPolygon(poly, r2.Vec{X: 1, Y: -2}) {
		t.Error("interior point reported outside")
	}
	if PointInPolygon(poly, r2.Vec{X: 6}) {
		t.Error("exterior point reported inside")
	}
}

func testDoors() []components.Door {
	var doors []components.Door
	kinds := []components.DoorKind{components.DoorNormal, components.DoorLocked, components.DoorRocket, components.DoorPassage}
	for i, k := range kinds {
		for _, open := range []bool{false, true} {
			doors = append(doors, components.Door{
				Kind:     k,
				Position: r2.Vec{X: float64(i * 10), Y: 3},
				Angle:    float64(i) * 0.7,
				IsOpen:   open,
			})
		}
	}
	return doors
}

func TestDoorSidesExclusive(t *testing.T) {
	starts := []r2.Vec{{X: -200}, {X: 200, Y: 10}, {Y: -200}, {X: 0, Y: 0}}
	for _, d := range testDoors() {
		for _, s := range starts {
			delta := r2.Scale(2, r2.Sub(d.Position, s))
			if delta == Zero {
				delta = r2.Vec{X: 1}
			}
			_, _, outRay := RayHitsDoorOutside(&d, s, delta)
			_, _, inRay := RayHitsDoorInside(&d, s, delta)
			_, _, outCircle := CircleHitsDoorOutside(&d, 4, s, delta)
			_, _, inCircle := CircleHitsDoorInside(&d, 4, s, delta)
			if d.IsOpen && (outRay || outCircle) {
				t.Errorf("open door %v hit on outside from %v", d.Kind, s)
			}
			if !d.IsOpen && (inRay || inCircle) {
				t.Errorf("closed door %v hit on inside from %v", d.Kind, s)
			}
			if d.IsOpen && !inRay {
				t.Errorf("ray aimed through open door %v should hit inside", d.Kind)
			}
			if !d.IsOpen && !outRay {
				t.Errorf("ray aimed through closed door %v should hit outside", d.Kind)
			}
		}
	}
}

func TestAbsentDoorNeverHits(t *testing.T) {
	d := components.Door{Kind: components.DoorNothing}
	if _, _, ok := RayHitsDoorOutside(&d, r2.Vec{X: -100}, r2.Vec{X: 200}); ok {
		t.Error("absent door hit")
	}
	if CircleTouchesDoorOutside(&d, 10, r2.Vec{}) {
		t.Error("absent door touched")
	}
}

func TestRayHitsDoorOutsideNormal(t *testing.T) {
	d := components.Door{Kind: components.DoorNormal, Position: r2.Vec{X: 100}, Angle: math.Pi}
	// Door faces -X; its front face is at x = 100 - 6.
	p, n, ok := RayHitsDoorOutside(&d, r2.Vec{}, r2.Vec{X: 200})
	if !ok {
		t.Fatal("expected hit")
	}
	if !near(p, r2.Vec{X: 94}) {
		t.Errorf("point = %v, want (94,0)", p)
	}
	if !near(n, r2.Vec{X: -1}) {
		t.Errorf("normal = %v, want (-1,0)", n)
	}
}

func TestWallHits(t *testing.T) {
	w := components.NewWall(components.WallNormal, r2.Vec{X: 50}, math.Pi/2, square(5))
	p, n, ok := RayHitsWall(&w, r2.Vec{}, r2.Vec{X: 100})
	if !ok || !near(p, r2.Vec{X: 45}) || !near(n, r2.Vec{X: -1}) {
		t.Errorf("ray hit = %v %v %v", p, n, ok)
	}
	pos, impact, ok := CircleHitsWall(&w, 3, r2.Vec{}, r2.Vec{X: 100})
	if !ok || !near(pos, r2.Vec{X: 42}) || !near(impact, r2.Vec{X: 45}) {
		t.Errorf("circle hit = %v %v %v", pos, impact, ok)
	}
	if !CircleTouchesWall(&w, 3, r2.Vec{X: 43}) {
		t.Error("touching circle not reported")
	}
	if CircleTouchesWall(&w, 3, r2.Vec{X: 41}) {
		t.Error("separate circle reported touching")
	}

	w.Kind = components.WallNothing
	if _, _, ok := RayHitsWall(&w, r2.Vec{}, r2.Vec{X: 100}); ok {
		t.Error("absent wall hit")
	}
}

func TestGeometryIdempotent(t *testing.T) {
	w := components.NewWall(components.WallIndestructible, r2.Vec{X: 30, Y: 5}, 0.3, square(8))
	d := components.Door{Kind: components.DoorNormal, Position: r2.Vec{X: -40}, Angle: 1}
	start, delta := r2.Vec{X: -5, Y: -5}, r2.Vec{X: 60, Y: 12}

	p1, n1, ok1 := RayHitsWall(&w, start, delta)
	c1, i1, cok1 := CircleHitsDoorOutside(&d, 3, start, r2.Vec{X: -60})
	for i := 0; i < 5; i++ {
		p2, n2, ok2 := RayHitsWall(&w, start, delta)
		c2, i2, cok2 := CircleHitsDoorOutside(&d, 3, start, r2.Vec{X: -60})
		if p1 != p2 || n1 != n2 || ok1 != ok2 || c1 != c2 || i1 != i2 || cok1 != cok2 {
			t.Fatal("repeated query returned a different result")
		}
	}
}
