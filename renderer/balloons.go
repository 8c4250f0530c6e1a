package renderer

import (
	"image/color"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/balloonwar/components"
	"github.com/pthm-cable/balloonwar/pool"
)

const ghostAlpha = 110

// BalloonRenderer draws balloons with a knot and a swaying string.
type BalloonRenderer struct{}

// NewBalloonRenderer creates a new balloon renderer.
func NewBalloonRenderer() *BalloonRenderer {
	return &BalloonRenderer{}
}

// Draw renders every live balloon shifted by (dx, dy). colorOf picks the
// fill; t (seconds) drives the string sway.
func (r *BalloonRenderer) Draw(p *pool.Pool, colorOf func(components.Balloon) color.RGBA, t, dx, dy float32) {
	p.ForEachBalloon(func(ref pool.BalloonRef) bool {
		b := ref.Balloon
		c := colorOf(*b)
		fill := rl.Color{R: c.R, G: c.G, B: c.B, A: 255}
		line := rl.Fade(rl.DarkGray, 0.8)
		if b.Mode == components.ModeGhost {
			fill.A = ghostAlpha
			line = rl.Fade(rl.DarkGray, 0.3)
		}

		x, y, rad := ref.Pos.X+dx, ref.Pos.Y+dy, ref.Body.Radius
		sway := float32(math.Sin(float64(t)*2+float64(b.ID))) * rad * 0.15

		// String, then knot, then body so the body covers the joins
		knot := rl.Vector2{X: x, Y: y + rad}
		rl.DrawLineEx(knot, rl.Vector2{X: x + sway, Y: y + rad*2}, 2, line)
		k := rad * 0.12
		rl.DrawTriangle(
			rl.Vector2{X: x, Y: y + rad - k},
			rl.Vector2{X: x - k, Y: y + rad + k},
			rl.Vector2{X: x + k, Y: y + rad + k},
			fill,
		)
		rl.DrawCircleV(rl.Vector2{X: x, Y: y}, rad, fill)
		rl.DrawCircleV(rl.Vector2{X: x - rad*0.35, Y: y - rad*0.35}, rad*0.22, rl.Fade(rl.White, 0.35))

		if b.Mode == components.ModeFarting {
			rl.DrawCircleLines(int32(x), int32(y), rad+4, rl.Fade(rl.Brown, 0.5))
		}
		return true
	})
}
