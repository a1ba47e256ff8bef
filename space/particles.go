package space

import (
	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/skirmish/components"
)

// ParticleStore keeps decorative particles as ECS entities. Specks and other
// particles have separate caps; inserting past a cap is silently dropped.
type ParticleStore struct {
	world  *ecs.World
	mapper *ecs.Map1[components.Particle]
	filter *ecs.Filter1[components.Particle]

	maxParticles int
	maxSpecks    int
	particles    int
	specks       int

	toRemove []ecs.Entity
}

// NewParticleStore creates a store with the given caps.
func NewParticleStore(maxParticles, maxSpecks int) *ParticleStore {
	world := ecs.NewWorld()
	return &ParticleStore{
		world:        world,
		mapper:       ecs.NewMap1[components.Particle](world),
		filter:       ecs.NewFilter1[components.Particle](world),
		maxParticles: maxParticles,
		maxSpecks:    maxSpecks,
	}
}

// Insert adds a particle. It returns false if the matching cap is reached.
func (ps *ParticleStore) Insert(p components.Particle) bool {
	if p.Kind == components.ParticleNothing {
		return false
	}
	if p.Kind == components.ParticleSpeck {
		if ps.specks >= ps.maxSpecks {
			return false
		}
		ps.specks++
	} else {
		if ps.particles >= ps.maxParticles {
			return false
		}
		ps.particles++
	}
	ps.mapper.NewEntity(&p)
	return true
}

// Tick ages and moves every particle, removing those past their lifetime.
func (ps *ParticleStore) Tick(dt float64) {
	// First pass: update and collect expired (must complete before modifying)
	ps.toRemove = ps.toRemove[:0]
	query := ps.filter.Query()
	for query.Next() {
		p := query.Get()
		p.Age += dt
		if p.Age >= p.Lifetime {
			if p.Kind == components.ParticleSpeck {
				ps.specks--
			} else {
				ps.particles--
			}
			ps.toRemove = append(ps.toRemove, query.Entity())
			continue
		}
		p.Position = r2.Add(p.Position, r2.Scale(dt, p.Velocity))
		if p.Kind == components.ParticleOthFragment {
			p.Angle += p.Param2 * dt
		}
	}

	// Second pass: remove entities (query iteration complete)
	for _, e := range ps.toRemove {
		ps.world.RemoveEntity(e)
	}
}

// Each calls fn for every live particle.
func (ps *ParticleStore) Each(fn func(p *components.Particle)) {
	query := ps.filter.Query()
	for query.Next() {
		fn(query.Get())
	}
}

// Counts returns the number of live non-speck particles and specks.
func (ps *ParticleStore) Counts() (particles, specks int) {
	return ps.particles, ps.specks
}
