package components

import "image/color"

// ParticleKind selects the decay and motion law of a particle.
type ParticleKind uint8

const (
	ParticleSpark    ParticleKind = iota // Pop debris in the balloon's color
	ParticleRainbow                      // Pop debris during a big combo, hue cycles when drawn
	ParticleStink                        // Opponent taunt cloud, slow fade and upward drift
	ParticleConfetti                     // Golden pop shower, falls under gravity
	ParticleRocket                       // Golden pop streaks, accelerate upward
)

// String returns the display name for a ParticleKind.
func (k ParticleKind) String() string {
	switch k {
	case ParticleSpark:
		return "Spark"
	case ParticleRainbow:
		return "Rainbow"
	case ParticleStink:
		return "Stink"
	case ParticleConfetti:
		return "Confetti"
	case ParticleRocket:
		return "Rocket"
	}
	return "Unknown"
}

// Particle is a transient visual effect. It is removed once Alpha reaches zero.
type Particle struct {
	Kind  ParticleKind
	Color color.RGBA
	Alpha float32 // 0..255
	Size  float32
}
