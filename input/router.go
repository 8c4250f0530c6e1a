package input

import (
	"time"

	"github.com/pthm-cable/balloonwar/components"
	"github.com/pthm-cable/balloonwar/config"
	"github.com/pthm-cable/balloonwar/menu"
	"github.com/pthm-cable/balloonwar/pool"
)

// IntentType discriminates what a pointer event means to the game.
type IntentType uint8

const (
	IntentNone IntentType = iota

	// Playfield
	IntentInflate  // Down on an idle balloon
	IntentRelease  // Pointer lifted
	IntentTapGhost // Down on an escaped balloon
	IntentMiss     // Down on empty space

	// Overlays
	IntentOpenMenu       // Corner held past the dwell
	IntentMenuAction     // Confirmed menu selection
	IntentDismissResults // Results popup button
	IntentCloseManual    // Any tap on the manual
)

var intentNames = [...]string{
	"none", "inflate", "release", "tap_ghost", "miss",
	"open_menu", "menu_action", "dismiss_results", "close_manual",
}

func (t IntentType) String() string {
	if int(t) < len(intentNames) {
		return intentNames[t]
	}
	return "unknown"
}

// Intent is a semantic action produced from pointer input.
type Intent struct {
	Type    IntentType
	Pointer int32
	Balloon pool.BalloonID
	Action  menu.Action
}

// Scene is the state the router reads to decide what a tap means.
type Scene struct {
	Width, Height float32
	ResultsOpen   bool
	ManualOpen    bool
	Menu          *menu.Menu
	Pool          *pool.Pool
}

// Results popup dismiss button, as viewport fractions.
var dismissFrac = menu.Rect{L: 0.4, T: 0.65, R: 0.6, B: 0.75}

// DismissRect returns the results popup button for a viewport.
func DismissRect(w, h float32) menu.Rect {
	return menu.Rect{L: dismissFrac.L * w, T: dismissFrac.T * h, R: dismissFrac.R * w, B: dismissFrac.B * h}
}

// Router maps pointer events to intents. It owns the corner long-press.
type Router struct {
	cornerSize float32
	longPress  time.Duration
	hitMargin  float32

	cornerPointer int32
	cornerStart   time.Time

	intents []Intent
}

// NewRouter creates a router.
func NewRouter(cfg *config.Config) *Router {
	return &Router{
		cornerSize:    float32(cfg.Input.CornerSize),
		longPress:     cfg.Derived.LongPress,
		hitMargin:     float32(cfg.Balloon.HitMargin),
		cornerPointer: components.NoPointer,
		intents:       make([]Intent, 0, 4),
	}
}

// Handle interprets one pointer event. The returned slice is reused by the
// next call to Handle or Tick.
func (r *Router) Handle(ev PointerEvent, scene Scene) []Intent {
	r.intents = r.intents[:0]

	switch ev.Phase {
	case PhaseDown:
		r.down(ev, scene)
	case PhaseMove:
		if ev.Pointer == r.cornerPointer {
			if !r.inCorner(ev.X, ev.Y) {
				r.cancelCorner()
			} else {
				r.checkDwell(ev.At)
			}
		}
	case PhaseUp:
		if ev.Pointer == r.cornerPointer {
			r.cancelCorner()
		}
		// Overlays never swallow lifts, so held balloons are always released
		r.emit(Intent{Type: IntentRelease, Pointer: ev.Pointer})
	}
	return r.intents
}

// Tick checks the corner dwell for a finger that has not moved.
func (r *Router) Tick(now time.Time) []Intent {
	r.intents = r.intents[:0]
	r.checkDwell(now)
	return r.intents
}

// CornerHeld reports whether a corner press is in progress.
func (r *Router) CornerHeld() bool {
	return r.cornerPointer != components.NoPointer
}

func (r *Router) down(ev PointerEvent, scene Scene) {
	// Overlay precedence: results, then manual, then menu
	if scene.ResultsOpen {
		if DismissRect(scene.Width, scene.Height).Contains(ev.X, ev.Y) {
			r.emit(Intent{Type: IntentDismissResults, Pointer: ev.Pointer})
		}
		return
	}
	if scene.ManualOpen {
		r.emit(Intent{Type: IntentCloseManual, Pointer: ev.Pointer})
		return
	}
	if scene.Menu != nil && scene.Menu.IsOpen() {
		if a := scene.Menu.Tap(ev.X, ev.Y); a != menu.ActionNone {
			r.emit(Intent{Type: IntentMenuAction, Pointer: ev.Pointer, Action: a})
		}
		return
	}

	if r.inCorner(ev.X, ev.Y) {
		r.cornerPointer = ev.Pointer
		r.cornerStart = ev.At
		return
	}

	if scene.Pool == nil {
		return
	}
	hit := false
	scene.Pool.BalloonsTopDown(func(ref pool.BalloonRef) bool {
		switch ref.Balloon.Mode {
		case components.ModeIdle:
			if ref.Body.Contains(*ref.Pos, ev.X, ev.Y, r.hitMargin) {
				r.emit(Intent{Type: IntentInflate, Pointer: ev.Pointer, Balloon: ref.ID()})
				hit = true
			}
		case components.ModeGhost:
			if ref.Body.Contains(*ref.Pos, ev.X, ev.Y, r.hitMargin) {
				r.emit(Intent{Type: IntentTapGhost, Pointer: ev.Pointer, Balloon: ref.ID()})
				hit = true
			}
		}
		return !hit
	})
	if !hit && !r.midGesture(scene.Pool) {
		r.emit(Intent{Type: IntentMiss, Pointer: ev.Pointer})
	}
}

// midGesture reports whether another finger is busy holding the menu
// corner or inflating a balloon. Stray taps then do not count as misses.
func (r *Router) midGesture(p *pool.Pool) bool {
	if r.CornerHeld() {
		return true
	}
	busy := false
	p.ForEachBalloon(func(ref pool.BalloonRef) bool {
		busy = ref.Balloon.Mode == components.ModeInflating
		return !busy
	})
	return busy
}

func (r *Router) inCorner(x, y float32) bool {
	return x < r.cornerSize && y < r.cornerSize
}

func (r *Router) checkDwell(now time.Time) {
	if r.cornerPointer == components.NoPointer {
		return
	}
	if now.Sub(r.cornerStart) > r.longPress {
		r.emit(Intent{Type: IntentOpenMenu, Pointer: r.cornerPointer})
		r.cancelCorner()
	}
}

func (r *Router) cancelCorner() {
	r.cornerPointer = components.NoPointer
	r.cornerStart = time.Time{}
}

func (r *Router) emit(in Intent) {
	r.intents = append(r.intents, in)
}
