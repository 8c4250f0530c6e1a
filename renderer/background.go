package renderer

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/ojrac/opensimplex-go"
)

const cloudCount = 5

// BackgroundRenderer draws a sky gradient with slowly drifting clouds.
type BackgroundRenderer struct {
	noise       opensimplex.Noise
	top, bottom rl.Color
}

// NewBackgroundRenderer creates a background whose cloud wobble is seeded.
func NewBackgroundRenderer(seed int64) *BackgroundRenderer {
	return &BackgroundRenderer{
		noise:  opensimplex.New(seed),
		top:    rl.Color{R: 120, G: 190, B: 255, A: 255},
		bottom: rl.Color{R: 225, G: 240, B: 255, A: 255},
	}
}

// Draw renders the sky at time t seconds.
func (b *BackgroundRenderer) Draw(t float32, w, h int32) {
	rl.DrawRectangleGradientV(0, 0, w, h, b.top, b.bottom)

	for i := 0; i < cloudCount; i++ {
		n := float32(b.noise.Eval2(float64(i)*1.7, float64(t)*0.05))

		// Each cloud crosses the screen at its own pace and wraps
		speed := 0.008 * float64(1+i%3)
		frac := math.Mod(float64(i)*0.23+float64(t)*speed, 1.3) - 0.15
		x := float32(frac) * float32(w)
		y := (0.08 + 0.11*float32(i) + 0.03*n) * float32(h)

		drawCloud(x, y, 50+15*n+8*float32(i%2))
	}
}

func drawCloud(x, y, size float32) {
	c := rl.Fade(rl.White, 0.55)
	rl.DrawCircleV(rl.Vector2{X: x, Y: y}, size, c)
	rl.DrawCircleV(rl.Vector2{X: x - size*0.9, Y: y + size*0.25}, size*0.7, c)
	rl.DrawCircleV(rl.Vector2{X: x + size*0.9, Y: y + size*0.2}, size*0.75, c)
}
