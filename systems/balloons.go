// Package systems contains the per-tick simulation steps.
package systems

import (
	"math/rand"

	"github.com/pthm-cable/balloonwar/components"
	"github.com/pthm-cable/balloonwar/config"
	"github.com/pthm-cable/balloonwar/pool"
)

// Bounds represents the playfield size. A zero size means layout has not happened yet.
type Bounds struct {
	Width, Height float32
}

// Known reports whether the viewport has been laid out.
func (b Bounds) Known() bool {
	return b.Width > 0 && b.Height > 0
}

// EffectKind identifies a side effect produced by the balloon step.
type EffectKind uint8

const (
	// EffectPop: a held balloon passed the pop limit and must be popped.
	EffectPop EffectKind = iota
	// EffectFartDone: a farting balloon finished deflating and must be popped.
	EffectFartDone
	// EffectEscape: a held balloon passed the pop limit and escaped as a ghost.
	EffectEscape
	// EffectFartPulse: haptic pulse during a fart.
	EffectFartPulse
)

var effectNames = [...]string{"pop", "fart_done", "escape", "fart_pulse"}

func (k EffectKind) String() string {
	if int(k) < len(effectNames) {
		return effectNames[k]
	}
	return "unknown"
}

// Effect is one thing the game must act on after a balloon step.
type Effect struct {
	Kind    EffectKind
	Balloon pool.BalloonID
	Pointer int32 // Pointer that was holding the balloon, if any
}

// BalloonStep advances balloon state machines and movement.
type BalloonStep struct {
	balloon config.BalloonConfig
	fart    config.FartConfig
	rng     *rand.Rand
	wind    *Wind

	effects []Effect
}

// NewBalloonStep creates the balloon step. wind may be nil.
func NewBalloonStep(cfg *config.Config, rng *rand.Rand, wind *Wind) *BalloonStep {
	return &BalloonStep{
		balloon: cfg.Balloon,
		fart:    cfg.Fart,
		rng:     rng,
		wind:    wind,
		effects: make([]Effect, 0, 16),
	}
}

// Update advances every balloon by one tick. The returned slice is reused
// on the next call.
func (s *BalloonStep) Update(p *pool.Pool, v config.Variant, bounds Bounds, tick uint64) []Effect {
	s.effects = s.effects[:0]

	var windX, windY float32
	if s.wind != nil {
		windX, windY = s.wind.At(tick)
	}
	speed := float32(v.SpeedMultiplier)

	p.ForEachBalloon(func(ref pool.BalloonRef) bool {
		b := ref.Balloon

		switch b.Mode {
		case components.ModeInflating:
			ref.Body.Radius += float32(s.balloon.InflateRate)
			if float64(ref.Body.Radius) > v.PopLimit {
				s.overInflated(ref)
			}
			// Held balloons stay under the finger
			return true

		case components.ModeFarting:
			b.FartTicks++
			ref.Body.Radius = clampFloat(ref.Body.Radius-float32(s.fart.DeflateRate), 0, ref.Body.Radius)
			j := float32(s.fart.Jitter)
			ref.Vel.X = spread(s.rng, j)
			ref.Vel.Y = spread(s.rng, j)
			if s.fart.HapticEvery > 0 && b.FartTicks%int32(s.fart.HapticEvery) == 0 {
				s.effects = append(s.effects, Effect{Kind: EffectFartPulse, Balloon: b.ID})
			}
			if b.FartTicks > int32(s.fart.MaxTicks) || float64(ref.Body.Radius) < s.fart.MinRadius {
				s.effects = append(s.effects, Effect{Kind: EffectFartDone, Balloon: b.ID})
				return true
			}
		}

		ref.Pos.X += ref.Vel.X*speed + windX
		ref.Pos.Y += ref.Vel.Y*speed + windY
		bounce(ref.Pos, ref.Vel, ref.Body.Radius, bounds)
		return true
	})

	return s.effects
}

func (s *BalloonStep) overInflated(ref pool.BalloonRef) {
	b := ref.Balloon
	pointer := b.Pointer
	if !s.balloon.Ghosts {
		s.effects = append(s.effects, Effect{Kind: EffectPop, Balloon: b.ID, Pointer: pointer})
		return
	}
	b.Mode = components.ModeGhost
	b.Pointer = components.NoPointer
	gs := float32(s.balloon.GhostSpeed)
	ref.Vel.X = spread(s.rng, gs)
	ref.Vel.Y = spread(s.rng, gs)
	s.effects = append(s.effects, Effect{Kind: EffectEscape, Balloon: b.ID, Pointer: pointer})
}

// bounce reflects velocity on any axis where the circle crosses an edge.
// Only velocity pointing outward is flipped so a balloon straddling an
// edge cannot oscillate in place.
func bounce(pos *components.Position, vel *components.Velocity, r float32, bounds Bounds) {
	if !bounds.Known() {
		return
	}
	if (pos.X-r < 0 && vel.X < 0) || (pos.X+r > bounds.Width && vel.X > 0) {
		vel.X = -vel.X
	}
	if (pos.Y-r < 0 && vel.Y < 0) || (pos.Y+r > bounds.Height && vel.Y > 0) {
		vel.Y = -vel.Y
	}
}
