package systems

import (
	"image/color"
	"math"
	"math/rand"

	"github.com/pthm-cable/balloonwar/components"
	"github.com/pthm-cable/balloonwar/config"
	"github.com/pthm-cable/balloonwar/pool"
)

// Per-tick laws for each particle kind.
const (
	sparkFade = 4

	stinkFade  = 2
	stinkLift  = 0.05 // Upward acceleration
	stinkDrag  = 0.97
	stinkSize  = 45
	sparkSize  = 10
	rocketSize = 12

	confettiGravity = 0.3
	confettiFade    = 3
	confettiSize    = 8

	rocketThrust = 0.4
	rocketFade   = 5
)

// UpdateParticles integrates every particle and applies its kind's decay law.
// Particles that reach zero alpha are collected by the pool's Apply.
func UpdateParticles(p *pool.Pool) {
	p.ForEachParticle(func(pos *components.Position, vel *components.Velocity, part *components.Particle) {
		switch part.Kind {
		case components.ParticleStink:
			vel.Y -= stinkLift
			vel.X *= stinkDrag
			vel.Y *= stinkDrag
			part.Alpha -= stinkFade
		case components.ParticleConfetti:
			vel.Y += confettiGravity
			part.Alpha -= confettiFade
		case components.ParticleRocket:
			vel.Y -= rocketThrust
			part.Alpha -= rocketFade
		default:
			part.Alpha -= sparkFade
		}

		pos.X += vel.X
		pos.Y += vel.Y
	})
}

// Emitter spawns particle bursts into the pool.
type Emitter struct {
	pool *pool.Pool
	rng  *rand.Rand
	cfg  config.ParticlesConfig

	stinkColor  color.RGBA
	goldenColor color.RGBA
	palette     []color.RGBA
}

// NewEmitter creates an emitter for a pool.
func NewEmitter(p *pool.Pool, rng *rand.Rand, cfg *config.Config) *Emitter {
	return &Emitter{
		pool:        p,
		rng:         rng,
		cfg:         cfg.Particles,
		stinkColor:  cfg.Derived.StinkColor,
		goldenColor: cfg.Derived.GoldenColor,
		palette:     cfg.Derived.Palette,
	}
}

// Pop emits the debris of a popped balloon. Rainbow debris cycles hue when drawn.
func (e *Emitter) Pop(x, y float32, col color.RGBA, rainbow bool) {
	kind := components.ParticleSpark
	if rainbow {
		kind = components.ParticleRainbow
	}
	s := float32(e.cfg.PopSpeed)
	for i := 0; i < e.cfg.PopBurst; i++ {
		e.pool.SpawnParticle(x, y, e.spread(s), e.spread(s), components.Particle{
			Kind:  kind,
			Color: col,
			Alpha: 255,
			Size:  sparkSize,
		})
	}
}

// Stink emits one taunt cloud.
func (e *Emitter) Stink(x, y float32) {
	s := float32(e.cfg.StinkSpeed)
	for i := 0; i < e.cfg.StinkBurst; i++ {
		e.pool.SpawnParticle(x, y, e.spread(s), e.spread(s), components.Particle{
			Kind:  components.ParticleStink,
			Color: e.stinkColor,
			Alpha: float32(e.cfg.StinkAlpha),
			Size:  stinkSize,
		})
	}
}

// StinkTriple emits three overlapping taunt clouds around a point.
func (e *Emitter) StinkTriple(x, y float32) {
	const offset = 80
	for i := 0; i < 3; i++ {
		a := float64(i) * 2 * math.Pi / 3
		e.Stink(ringPoint(x, y, offset, a))
	}
}

// Golden emits the confetti shower and rockets of a golden pop.
func (e *Emitter) Golden(x, y float32) {
	for i := 0; i < e.cfg.ConfettiBurst; i++ {
		col := e.goldenColor
		if len(e.palette) > 0 && i%2 == 1 {
			col = e.palette[e.rng.Intn(len(e.palette))]
		}
		e.pool.SpawnParticle(x, y, e.spread(8), -4-e.rng.Float32()*8, components.Particle{
			Kind:  components.ParticleConfetti,
			Color: col,
			Alpha: 255,
			Size:  confettiSize,
		})
	}
	for i := 0; i < e.cfg.RocketBurst; i++ {
		e.pool.SpawnParticle(x, y, e.spread(3), -2-e.rng.Float32()*4, components.Particle{
			Kind:  components.ParticleRocket,
			Color: e.goldenColor,
			Alpha: 255,
			Size:  rocketSize,
		})
	}
}

// spread returns a uniform value in [-s, s).
func (e *Emitter) spread(s float32) float32 {
	return spread(e.rng, s)
}
