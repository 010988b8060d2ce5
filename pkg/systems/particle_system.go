package systems

import (
	"math"

	"github.com/decker502/inferno/pkg/components"
	"github.com/decker502/inferno/pkg/ecs"
)

// ParticleSystem advances every ambient particle: velocity, drag and life.
//
// A particle is destroyed as soon as its life reaches zero. The external
// timeout (LifetimeComponent) is handled by LifetimeSystem; whichever comes
// first wins.
//
// Follows ECS zero-coupling principle: communicates only through EntityManager.
type ParticleSystem struct {
	EntityManager *ecs.EntityManager
}

// NewParticleSystem creates a new ParticleSystem instance.
func NewParticleSystem(em *ecs.EntityManager) *ParticleSystem {
	return &ParticleSystem{EntityManager: em}
}

// Update moves all particles forward by dt seconds.
func (ps *ParticleSystem) Update(dt float64) {
	ids := ecs.GetEntitiesWith2[
		*components.PositionComponent,
		*components.AmbientParticleComponent,
	](ps.EntityManager)

	for _, id := range ids {
		if ps.EntityManager.IsMarkedForDestroy(id) {
			continue
		}
		pos, _ := ecs.GetComponent[*components.PositionComponent](ps.EntityManager, id)
		p, _ := ecs.GetComponent[*components.AmbientParticleComponent](ps.EntityManager, id)

		pos.X += p.VelocityX * dt
		pos.Y += p.VelocityY * dt

		// Drag is a per-second retention factor; 1 means no drag.
		if p.Drag > 0 && p.Drag < 1 {
			k := math.Pow(p.Drag, dt)
			p.VelocityX *= k
			p.VelocityY *= k
		}

		p.Life -= p.Decay * dt
		if p.Life <= 0 {
			p.Life = 0
			ps.EntityManager.DestroyEntity(id)
		}
	}
}

// Count returns the number of live particles of the given owner (0 = any).
func (ps *ParticleSystem) Count(owner ecs.EntityID) int {
	n := 0
	for _, id := range ecs.GetEntitiesWith1[*components.AmbientParticleComponent](ps.EntityManager) {
		if ps.EntityManager.IsMarkedForDestroy(id) {
			continue
		}
		if owner == 0 {
			n++
			continue
		}
		if p, ok := ecs.GetComponent[*components.AmbientParticleComponent](ps.EntityManager, id); ok && p.Owner == owner {
			n++
		}
	}
	return n
}
