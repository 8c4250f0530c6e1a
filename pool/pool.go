// Package pool owns the live balloon and particle entities.
//
// The pool is an arena over an ark ECS world. Balloons are addressed by a
// stable BalloonID rather than by entity or index. Spawns and removals
// requested during a tick are queued and only take effect in Apply, so the
// simulation can pop balloons and emit particles while iterating.
package pool

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/balloonwar/components"
)

// BalloonID identifies a balloon across ticks.
type BalloonID = components.BalloonID

// BalloonSpec describes a balloon to spawn.
type BalloonSpec struct {
	X, Y   float32
	VX, VY float32
	Radius float32
	Color  uint8
	Golden bool
}

// BalloonRef is a transient view of a live balloon's components.
// It must not be retained past the current tick.
type BalloonRef struct {
	Pos     *components.Position
	Vel     *components.Velocity
	Body    *components.Body
	Balloon *components.Balloon
}

// ID returns the balloon's stable id.
func (r BalloonRef) ID() BalloonID {
	return r.Balloon.ID
}

type pendingBalloon struct {
	id   BalloonID
	spec BalloonSpec
}

type pendingParticle struct {
	pos  components.Position
	vel  components.Velocity
	part components.Particle
}

// Pool holds the entity world and the pending mutation queues.
type Pool struct {
	world *ecs.World

	balloonMapper  *ecs.Map4[components.Position, components.Velocity, components.Body, components.Balloon]
	particleMapper *ecs.Map3[components.Position, components.Velocity, components.Particle]
	particleFilter *ecs.Filter3[components.Position, components.Velocity, components.Particle]

	index  map[BalloonID]ecs.Entity
	order  []BalloonID // Live balloons, ascending spawn order
	nextID BalloonID

	pendingBalloons  []pendingBalloon
	pendingRemove    map[BalloonID]struct{}
	pendingParticles []pendingParticle

	particleCount int
	maxParticles  int
}

// New creates an empty pool. maxParticles caps live plus pending particles
// (0 means unlimited).
func New(maxParticles int) *Pool {
	world := ecs.NewWorld()
	return &Pool{
		world:          world,
		balloonMapper:  ecs.NewMap4[components.Position, components.Velocity, components.Body, components.Balloon](world),
		particleMapper: ecs.NewMap3[components.Position, components.Velocity, components.Particle](world),
		particleFilter: ecs.NewFilter3[components.Position, components.Velocity, components.Particle](world),
		index:          make(map[BalloonID]ecs.Entity),
		pendingRemove:  make(map[BalloonID]struct{}),
		nextID:         1,
		maxParticles:   maxParticles,
	}
}

// SpawnBalloon queues a balloon and returns the id it will carry.
// The balloon becomes visible to iteration after the next Apply.
func (p *Pool) SpawnBalloon(spec BalloonSpec) BalloonID {
	id := p.nextID
	p.nextID++
	p.pendingBalloons = append(p.pendingBalloons, pendingBalloon{id: id, spec: spec})
	return id
}

// RemoveBalloon queues a balloon for removal. Removing an unknown or already
// removed balloon is a no-op. A pending balloon is dropped before it spawns.
func (p *Pool) RemoveBalloon(id BalloonID) {
	if _, ok := p.index[id]; ok {
		p.pendingRemove[id] = struct{}{}
		return
	}
	for i := range p.pendingBalloons {
		if p.pendingBalloons[i].id == id {
			p.pendingBalloons = append(p.pendingBalloons[:i], p.pendingBalloons[i+1:]...)
			return
		}
	}
}

// Balloon looks up a live balloon by id. Balloons queued for removal are
// reported as gone.
func (p *Pool) Balloon(id BalloonID) (BalloonRef, bool) {
	if _, removed := p.pendingRemove[id]; removed {
		return BalloonRef{}, false
	}
	entity, ok := p.index[id]
	if !ok || !p.world.Alive(entity) {
		return BalloonRef{}, false
	}
	pos, vel, body, balloon := p.balloonMapper.Get(entity)
	return BalloonRef{Pos: pos, Vel: vel, Body: body, Balloon: balloon}, true
}

// ForEachBalloon calls fn for every live balloon in spawn order (bottom to
// top). Iteration stops when fn returns false. fn may spawn or remove
// balloons; those changes apply at the next Apply.
func (p *Pool) ForEachBalloon(fn func(BalloonRef) bool) {
	for _, id := range p.order {
		ref, ok := p.Balloon(id)
		if !ok {
			continue
		}
		if !fn(ref) {
			return
		}
	}
}

// BalloonsTopDown calls fn for every live balloon, most recently spawned
// first. This is the hit-testing order.
func (p *Pool) BalloonsTopDown(fn func(BalloonRef) bool) {
	for i := len(p.order) - 1; i >= 0; i-- {
		ref, ok := p.Balloon(p.order[i])
		if !ok {
			continue
		}
		if !fn(ref) {
			return
		}
	}
}

// BalloonCount returns the number of balloons alive after the next Apply.
func (p *Pool) BalloonCount() int {
	return len(p.index) + len(p.pendingBalloons) - len(p.pendingRemove)
}

// SpawnParticle queues a particle. It is dropped when the particle cap is reached.
func (p *Pool) SpawnParticle(x, y, vx, vy float32, part components.Particle) bool {
	if p.maxParticles > 0 && p.particleCount+len(p.pendingParticles) >= p.maxParticles {
		return false
	}
	p.pendingParticles = append(p.pendingParticles, pendingParticle{
		pos:  components.Position{X: x, Y: y},
		vel:  components.Velocity{X: vx, Y: vy},
		part: part,
	})
	return true
}

// ForEachParticle calls fn for every live particle. Particles whose alpha
// drops to zero are removed at the next Apply.
func (p *Pool) ForEachParticle(fn func(pos *components.Position, vel *components.Velocity, part *components.Particle)) {
	query := p.particleFilter.Query()
	for query.Next() {
		pos, vel, part := query.Get()
		fn(pos, vel, part)
	}
}

// ParticleCount returns the number of live particles.
func (p *Pool) ParticleCount() int {
	return p.particleCount
}

// Clear queues removal of every balloon and particle and drops pending spawns.
func (p *Pool) Clear() {
	for id := range p.index {
		p.pendingRemove[id] = struct{}{}
	}
	p.pendingBalloons = p.pendingBalloons[:0]
	p.pendingParticles = p.pendingParticles[:0]
	p.ForEachParticle(func(_ *components.Position, _ *components.Velocity, part *components.Particle) {
		part.Alpha = 0
	})
}

// Apply is the per-tick mutation phase: removals first, then spawns, then
// expired particles are collected.
func (p *Pool) Apply() {
	if len(p.pendingRemove) > 0 {
		for id := range p.pendingRemove {
			if entity, ok := p.index[id]; ok {
				p.world.RemoveEntity(entity)
				delete(p.index, id)
			}
		}
		live := p.order[:0]
		for _, id := range p.order {
			if _, removed := p.pendingRemove[id]; !removed {
				live = append(live, id)
			}
		}
		p.order = live
		clear(p.pendingRemove)
	}

	if len(p.pendingBalloons) > 0 {
		for _, pb := range p.pendingBalloons {
			pos := components.Position{X: pb.spec.X, Y: pb.spec.Y}
			vel := components.Velocity{X: pb.spec.VX, Y: pb.spec.VY}
			body := components.Body{Radius: pb.spec.Radius}
			balloon := components.Balloon{
				ID:      pb.id,
				Mode:    components.ModeIdle,
				Pointer: components.NoPointer,
				Color:   pb.spec.Color,
				Golden:  pb.spec.Golden,
			}
			p.index[pb.id] = p.balloonMapper.NewEntity(&pos, &vel, &body, &balloon)
			p.order = append(p.order, pb.id)
		}
		p.pendingBalloons = p.pendingBalloons[:0]
	}

	p.collectParticles()

	for i := range p.pendingParticles {
		pp := &p.pendingParticles[i]
		p.particleMapper.NewEntity(&pp.pos, &pp.vel, &pp.part)
		p.particleCount++
	}
	p.pendingParticles = p.pendingParticles[:0]
}

// collectParticles removes expired particles.
func (p *Pool) collectParticles() {
	// First pass: collect (the world is locked while a query is open)
	var dead []ecs.Entity
	query := p.particleFilter.Query()
	for query.Next() {
		_, _, part := query.Get()
		if part.Alpha <= 0 {
			dead = append(dead, query.Entity())
		}
	}

	// Second pass: remove
	for _, e := range dead {
		p.world.RemoveEntity(e)
		p.particleCount--
	}
}
