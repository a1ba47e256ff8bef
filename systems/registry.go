package systems

import (
	"errors"
	"fmt"

	"github.com/pthm-cable/skirmish/space"
)

// ErrNoRunner is returned by Steps when a registered system was never given a
// runner.
var ErrNoRunner = errors.New("system has no runner")

// RunFunc advances one system by dt seconds.
type RunFunc func(s *space.State, dt float64)

// SystemInfo describes one phase of a tick.
type SystemInfo struct {
	ID          string // perf phase name
	Name        string
	Description string
	Run         RunFunc // nil until bound
}

// SystemRegistry is the ordered per-tick schedule. Registration order is run
// order, and the IDs double as perf phase names.
type SystemRegistry struct {
	systems []SystemInfo
	byID    map[string]int
}

// NewSystemRegistry returns the default schedule. The telemetry phase lives
// outside this package and must be bound by the caller.
func NewSystemRegistry() *SystemRegistry {
	r := &SystemRegistry{byID: make(map[string]int)}
	r.mustRegister(SystemInfo{ID: "baddies", Name: "Baddies", Description: "Runs enemy behaviours and motion", Run: TickBaddies})
	r.mustRegister(SystemInfo{ID: "projectiles", Name: "Projectiles", Description: "Moves projectiles and resolves impacts", Run: TickProjectiles})
	r.mustRegister(SystemInfo{ID: "particles", Name: "Particles", Description: "Ages decorative effects", Run: func(s *space.State, dt float64) {
		s.Particles.Tick(dt)
	}})
	r.mustRegister(SystemInfo{ID: "telemetry", Name: "Telemetry", Description: "Folds tick counters into window stats"})
	return r
}

func (r *SystemRegistry) mustRegister(info SystemInfo) {
	if err := r.Register(info); err != nil {
		panic(err)
	}
}

// Register appends a system to the end of the schedule.
func (r *SystemRegistry) Register(info SystemInfo) error {
	if info.ID == "" {
		return errors.New("system id is empty")
	}
	if _, dup := r.byID[info.ID]; dup {
		return fmt.Errorf("system %q already registered", info.ID)
	}
	r.byID[info.ID] = len(r.systems)
	r.systems = append(r.systems, info)
	return nil
}

// Bind sets or replaces the runner of a registered system.
func (r *SystemRegistry) Bind(id string, run RunFunc) error {
	i, ok := r.byID[id]
	if !ok {
		return fmt.Errorf("bind %q: unknown system", id)
	}
	r.systems[i].Run = run
	return nil
}

// Get returns system info by ID.
func (r *SystemRegistry) Get(id string) (SystemInfo, bool) {
	i, ok := r.byID[id]
	if !ok {
		return SystemInfo{}, false
	}
	return r.systems[i], true
}

// IDs returns all system IDs in run order.
func (r *SystemRegistry) IDs() []string {
	ids := make([]string, len(r.systems))
	for i, info := range r.systems {
		ids[i] = info.ID
	}
	return ids
}

// Steps returns the schedule in run order, failing if any system is unbound.
func (r *SystemRegistry) Steps() ([]SystemInfo, error) {
	for _, info := range r.systems {
		if info.Run == nil {
			return nil, fmt.Errorf("%w: %q", ErrNoRunner, info.ID)
		}
	}
	return append([]SystemInfo(nil), r.systems...), nil
}
