// Package camera tracks the playfield viewport and screen shake.
package camera

import "math/rand"

// Viewport is the drawable area in screen pixels. It is zero until the
// window reports its first layout.
type Viewport struct {
	W, H float32
}

// Resize updates the dimensions and reports whether they changed.
func (v *Viewport) Resize(w, h float32) bool {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	if w == v.W && h == v.H {
		return false
	}
	v.W, v.H = w, h
	return true
}

// Known reports whether both dimensions are positive.
func (v Viewport) Known() bool {
	return v.W > 0 && v.H > 0
}

// Center returns the middle of the viewport.
func (v Viewport) Center() (x, y float32) {
	return v.W / 2, v.H / 2
}

// Contains reports whether a screen point lies inside the viewport.
func (v Viewport) Contains(x, y float32) bool {
	return x >= 0 && y >= 0 && x < v.W && y < v.H
}

// Shake is a decaying random screen offset.
type Shake struct {
	Magnitude float32

	decay float32
	rng   *rand.Rand
}

// shakeFloor is where a decaying shake snaps to rest.
const shakeFloor = 0.5

// NewShake creates a shake that multiplies its magnitude by decay each tick.
func NewShake(decay float64, rng *rand.Rand) *Shake {
	if decay <= 0 || decay >= 1 {
		decay = 0.9
	}
	return &Shake{decay: float32(decay), rng: rng}
}

// Set replaces the magnitude. Negative values stop the shake.
func (s *Shake) Set(m float32) {
	if m < 0 {
		m = 0
	}
	s.Magnitude = m
}

// Tick decays the magnitude.
func (s *Shake) Tick() {
	s.Magnitude *= s.decay
	if s.Magnitude < shakeFloor {
		s.Magnitude = 0
	}
}

// Active reports whether the screen is shaking.
func (s *Shake) Active() bool {
	return s.Magnitude > 0
}

// Offset returns a translation uniform in ±Magnitude/2 on each axis.
func (s *Shake) Offset() (dx, dy float32) {
	if s.Magnitude == 0 {
		return 0, 0
	}
	dx = (s.rng.Float32() - 0.5) * s.Magnitude
	dy = (s.rng.Float32() - 0.5) * s.Magnitude
	return dx, dy
}
