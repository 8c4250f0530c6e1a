package renderer

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/balloonwar/components"
	"github.com/pthm-cable/balloonwar/pool"
)

// ParticleRenderer renders effect particles.
type ParticleRenderer struct{}

// NewParticleRenderer creates a new particle renderer.
func NewParticleRenderer() *ParticleRenderer {
	return &ParticleRenderer{}
}

// Draw renders all particles shifted by (dx, dy). Rainbow debris takes
// its hue from hue (degrees) offset per particle.
func (r *ParticleRenderer) Draw(p *pool.Pool, hue, dx, dy float32) {
	i := 0
	p.ForEachParticle(func(pos *components.Position, vel *components.Velocity, part *components.Particle) {
		i++
		alpha := part.Alpha
		if alpha <= 0 {
			return
		}
		if alpha > 255 {
			alpha = 255
		}

		var color rl.Color
		if part.Kind == components.ParticleRainbow {
			h := float32(math.Mod(float64(hue+float32(i)*12), 360))
			color = rl.ColorFromHSV(h, 0.8, 1)
		} else {
			color = rl.Color{R: part.Color.R, G: part.Color.G, B: part.Color.B}
		}
		color.A = uint8(alpha)

		size := part.Size
		if size < 0.5 {
			size = 0.5
		}
		center := rl.Vector2{X: pos.X + dx, Y: pos.Y + dy}

		switch part.Kind {
		case components.ParticleRocket:
			// Streak trailing behind the direction of travel
			tail := rl.Vector2{X: center.X - vel.X*2, Y: center.Y - vel.Y*2}
			rl.DrawLineEx(tail, center, size, color)
		case components.ParticleConfetti:
			rl.DrawRectangleV(rl.Vector2{X: center.X - size, Y: center.Y - size/2}, rl.Vector2{X: size * 2, Y: size}, color)
		default:
			rl.DrawCircleV(center, size, color)
		}
	})
}
