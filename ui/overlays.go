package ui

import (
	"strings"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/balloonwar/input"
	"github.com/pthm-cable/balloonwar/session"
)

// Overlays draws the popups that block play: battle results and the manual.
type Overlays struct {
	renderer *Renderer
}

// NewOverlays creates the popup renderer.
func NewOverlays() *Overlays {
	return &Overlays{renderer: NewRenderer()}
}

// DrawResults renders the end-of-battle popup.
func (o *Overlays) DrawResults(res session.Results, w, h int32) {
	r := o.renderer
	th := r.Theme
	r.DrawShade(w, h)

	pw, ph := w*6/10, h*45/100
	px, py := (w-pw)/2, h*3/10
	r.DrawPanel(px, py, pw, ph)

	cx := w / 2
	y := py + th.Padding
	r.DrawCentered("TIME'S UP!", cx, y, th.TitleSize, th.Golden)
	y += th.TitleSize + th.Padding
	r.DrawCentered(res.Summary(), cx, y, th.LabelSize, th.Text)
	if res.Rhythm != "" {
		y += th.LabelSize + th.Padding/2
		r.DrawCentered(res.Rhythm, cx, y, th.FontSize, th.Muted)
	}

	gui.Lock()
	gui.Button(rect(input.DismissRect(float32(w), float32(h))), "OK")
	gui.Unlock()
}

// DrawManual renders the instructions with a tap-anywhere hint.
func (o *Overlays) DrawManual(text string, w, h int32) {
	r := o.renderer
	th := r.Theme
	r.DrawShade(w, h)

	lines := strings.Split(text, "\n")
	lineH := th.FontSize + 6
	pw := w * 8 / 10
	ph := int32(len(lines))*lineH + th.Padding*4 + th.FontSize
	px, py := (w-pw)/2, max((h-ph)/2, th.Padding)
	r.DrawPanel(px, py, pw, ph)

	y := py + th.Padding
	for i, line := range lines {
		col := th.Text
		if i == 0 || (line != "" && strings.ToUpper(line) == line) {
			col = th.Golden
		}
		rl.DrawText(line, px+th.Padding, y, th.FontSize, col)
		y += lineH
	}
	r.DrawCentered("Tap anywhere to close", w/2, py+ph-th.Padding-th.FontSize, th.FontSize, th.Muted)
}
