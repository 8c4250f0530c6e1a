package ui

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/balloonwar/menu"
)

// Renderer handles all UI drawing with consistent styling.
type Renderer struct {
	Theme Theme
}

// NewRenderer creates a renderer with the default theme.
func NewRenderer() *Renderer {
	return &Renderer{Theme: DefaultTheme()}
}

// DrawPanel draws a panel background with border.
func (r *Renderer) DrawPanel(x, y, width, height int32) {
	rl.DrawRectangle(x, y, width, height, r.Theme.PanelBg)
	rl.DrawRectangleLines(x, y, width, height, r.Theme.PanelBorder)
}

// DrawShade dims the whole screen.
func (r *Renderer) DrawShade(w, h int32) {
	rl.DrawRectangle(0, 0, w, h, r.Theme.Shade)
}

// DrawCentered draws text horizontally centered on cx.
func (r *Renderer) DrawCentered(text string, cx, y, size int32, color rl.Color) {
	width := rl.MeasureText(text, size)
	rl.DrawText(text, cx-width/2, y, size, color)
}

// DrawOutlined draws centered text with a dark drop shadow so it reads on
// any background.
func (r *Renderer) DrawOutlined(text string, cx, y, size int32, color rl.Color) {
	shadow := rl.Color{R: 0, G: 0, B: 0, A: color.A / 2}
	off := max(size/16, 2)
	r.DrawCentered(text, cx+off, y+off, size, shadow)
	r.DrawCentered(text, cx, y, size, color)
}

// DrawRainbow draws centered text with each letter a step further round
// the hue wheel, starting at hue degrees.
func (r *Renderer) DrawRainbow(text string, cx, y, size int32, hue float32, alpha uint8) {
	x := cx - rl.MeasureText(text, size)/2
	for i, ch := range text {
		s := string(ch)
		h := float32(math.Mod(float64(hue+float32(i)*25), 360))
		c := rl.ColorFromHSV(h, 0.75, 1)
		c.A = alpha
		rl.DrawText(s, x, y, size, c)
		x += rl.MeasureText(s, size) + size/10
	}
}

func rect(m menu.Rect) rl.Rectangle {
	return rl.Rectangle{X: m.L, Y: m.T, Width: m.Width(), Height: m.Height()}
}
