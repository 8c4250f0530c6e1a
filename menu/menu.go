// Package menu implements the two-stage tactical menu: a tap selects an
// action, a second tap on the confirm button runs it.
package menu

import "math"

// Action is a menu command. The set is closed; handlers switch over it.
type Action uint8

const (
	ActionNone Action = iota
	ActionToggleCamera
	ActionTogglePro
	ActionHost
	ActionPickPop
	ActionShowHowTo
	ActionSetTimer
	ActionJoin
	ActionPickFart
	ActionChildLock
)

var actionNames = [...]string{
	"none", "toggle_camera", "toggle_pro", "host", "pick_pop",
	"show_how_to", "set_timer", "join", "pick_fart", "child_lock",
}

func (a Action) String() string {
	if int(a) < len(actionNames) {
		return actionNames[a]
	}
	return "unknown"
}

// Rect is an axis-aligned region in screen pixels.
type Rect struct {
	L, T, R, B float32
}

// Contains reports whether a point lies strictly inside the rect.
func (r Rect) Contains(x, y float32) bool {
	return x > r.L && x < r.R && y > r.T && y < r.B
}

// Width returns the rect width.
func (r Rect) Width() float32 { return r.R - r.L }

// Height returns the rect height.
func (r Rect) Height() float32 { return r.B - r.T }

// Button is one selectable action and its region.
type Button struct {
	Action Action
	Rect   Rect
}

// Layout fractions of the viewport, as (left, top, right, bottom).
var buttonLayout = []struct {
	action     Action
	l, t, r, b float32
}{
	{ActionToggleCamera, 0.15, 0.25, 0.50, 0.33},
	{ActionTogglePro, 0.15, 0.35, 0.50, 0.43},
	{ActionHost, 0.15, 0.45, 0.50, 0.53},
	{ActionPickPop, 0.15, 0.55, 0.50, 0.63},
	{ActionShowHowTo, 0.52, 0.25, 0.85, 0.33},
	{ActionSetTimer, 0.52, 0.35, 0.85, 0.43},
	{ActionJoin, 0.52, 0.45, 0.85, 0.53},
	{ActionPickFart, 0.52, 0.55, 0.85, 0.63},
	{ActionChildLock, 0.15, 0.65, 0.85, 0.73},
}

const (
	closeCX     = 0.87
	closeCY     = 0.13
	closeRadius = 60
)

var (
	panelFrac   = Rect{L: 0.1, T: 0.1, R: 0.9, B: 0.9}
	confirmFrac = Rect{L: 0.3, T: 0.78, R: 0.7, B: 0.88}
)

// Menu holds open/selection state and the laid-out regions.
type Menu struct {
	open     bool
	selected Action

	width, height float32
	buttons       []Button
}

// New creates a closed menu with an empty layout.
func New() *Menu {
	return &Menu{buttons: make([]Button, 0, len(buttonLayout))}
}

// Layout recomputes every region for a viewport size.
func (m *Menu) Layout(width, height float32) {
	if width == m.width && height == m.height && len(m.buttons) > 0 {
		return
	}
	m.width, m.height = width, height
	m.buttons = m.buttons[:0]
	for _, bl := range buttonLayout {
		m.buttons = append(m.buttons, Button{
			Action: bl.action,
			Rect:   Rect{L: bl.l * width, T: bl.t * height, R: bl.r * width, B: bl.b * height},
		})
	}
}

func (m *Menu) scale(f Rect) Rect {
	return Rect{L: f.L * m.width, T: f.T * m.height, R: f.R * m.width, B: f.B * m.height}
}

// Open shows the menu with nothing selected.
func (m *Menu) Open() {
	m.open = true
	m.selected = ActionNone
}

// Close hides the menu and clears the selection.
func (m *Menu) Close() {
	m.open = false
	m.selected = ActionNone
}

// IsOpen reports whether the menu is shown.
func (m *Menu) IsOpen() bool { return m.open }

// Selected returns the pending action, ActionNone when nothing is selected.
func (m *Menu) Selected() Action { return m.selected }

// Buttons returns the laid-out buttons. The slice must not be modified.
func (m *Menu) Buttons() []Button { return m.buttons }

// Panel returns the menu background region.
func (m *Menu) Panel() Rect { return m.scale(panelFrac) }

// Confirm returns the confirm button region. It is only live with a selection.
func (m *Menu) Confirm() Rect { return m.scale(confirmFrac) }

// CloseButton returns the close control's centre and hit radius.
func (m *Menu) CloseButton() (cx, cy, r float32) {
	return closeCX * m.width, closeCY * m.height, closeRadius
}

// Tap handles a touch-down while the menu is open. It returns the action
// to run, or ActionNone. A tap can only ever select; the action fires on
// a later tap inside the confirm region, exactly once.
func (m *Menu) Tap(x, y float32) Action {
	if !m.open {
		return ActionNone
	}

	cx, cy, r := m.CloseButton()
	if math.Hypot(float64(x-cx), float64(y-cy)) < float64(r) {
		m.Close()
		return ActionNone
	}

	if m.selected != ActionNone && m.Confirm().Contains(x, y) {
		fired := m.selected
		m.Close()
		return fired
	}

	for _, b := range m.buttons {
		if b.Rect.Contains(x, y) {
			m.selected = b.Action
			return ActionNone
		}
	}
	return ActionNone
}

// Label returns the button caption for an action given the current toggles.
func Label(a Action, cameraOn, proOn bool) string {
	switch a {
	case ActionToggleCamera:
		if cameraOn {
			return "AR: ON"
		}
		return "AR: OFF"
	case ActionTogglePro:
		if proOn {
			return "PRO: ON"
		}
		return "PRO: OFF"
	case ActionHost:
		return "HOST"
	case ActionPickPop:
		return "POP FX"
	case ActionShowHowTo:
		return "MANUAL"
	case ActionSetTimer:
		return "TIMER"
	case ActionJoin:
		return "JOIN"
	case ActionPickFart:
		return "FART FX"
	case ActionChildLock:
		return "CHILD LOCK (PIN)"
	}
	return ""
}
