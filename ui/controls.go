package ui

import (
	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/balloonwar/menu"
	"github.com/pthm-cable/balloonwar/session"
)

// MenuPanel draws the tactical menu. Taps are routed by the game, so the
// raygui controls are drawn locked and never act on their own.
type MenuPanel struct {
	renderer *Renderer
}

// NewMenuPanel creates a new menu panel.
func NewMenuPanel() *MenuPanel {
	return &MenuPanel{renderer: NewRenderer()}
}

// Draw renders the menu if it is open.
func (p *MenuPanel) Draw(m *menu.Menu, s session.Settings, w, h int32) {
	if !m.IsOpen() {
		return
	}
	r := p.renderer
	th := r.Theme

	r.DrawShade(w, h)

	gui.Lock()
	defer gui.Unlock()

	gui.Panel(rect(m.Panel()), "TACTICAL MENU")

	selected := m.Selected()
	for _, b := range m.Buttons() {
		bounds := rect(b.Rect)
		gui.Button(bounds, menu.Label(b.Action, s.Camera, s.Pro))
		if b.Action == selected {
			rl.DrawRectangleLinesEx(bounds, 4, th.Selected)
		}
	}

	if selected != menu.ActionNone {
		gui.Button(rect(m.Confirm()), "CONFIRM: "+menu.Label(selected, s.Camera, s.Pro))
	}

	cx, cy, radius := m.CloseButton()
	rl.DrawCircleV(rl.Vector2{X: cx, Y: cy}, radius/2, rl.Red)
	r.DrawCentered("X", int32(cx), int32(cy)-th.LabelSize/2, th.LabelSize, th.Text)
}
