package input

import (
	"testing"
	"time"

	"github.com/pthm-cable/balloonwar/components"
	"github.com/pthm-cable/balloonwar/config"
	"github.com/pthm-cable/balloonwar/menu"
	"github.com/pthm-cable/balloonwar/pool"
)

var t0 = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func after(ms int) time.Time {
	return t0.Add(time.Duration(ms) * time.Millisecond)
}

func TestTrackerDiff(t *testing.T) {
	tr := NewTracker()

	evs := tr.Update([]Contact{{ID: 2, X: 10, Y: 10}, {ID: 1, X: 5, Y: 5}}, t0)
	if len(evs) != 2 || evs[0].Phase != PhaseDown || evs[0].Pointer != 1 || evs[1].Pointer != 2 {
		t.Fatalf("expected two downs ordered by id, got %+v", evs)
	}

	evs = tr.Update([]Contact{{ID: 1, X: 5, Y: 5}, {ID: 2, X: 12, Y: 10}}, t0)
	if len(evs) != 1 || evs[0].Phase != PhaseMove || evs[0].Pointer != 2 || evs[0].X != 12 {
		t.Fatalf("expected one move for pointer 2, got %+v", evs)
	}

	evs = tr.Update([]Contact{{ID: 2, X: 12, Y: 10}, {ID: 3, X: 0, Y: 0}}, t0)
	if len(evs) != 2 {
		t.Fatalf("expected up then down, got %+v", evs)
	}
	if evs[0].Phase != PhaseUp || evs[0].Pointer != 1 || evs[0].X != 5 {
		t.Errorf("expected up for pointer 1 at its last position, got %+v", evs[0])
	}
	if evs[1].Phase != PhaseDown || evs[1].Pointer != 3 {
		t.Errorf("expected down for pointer 3, got %+v", evs[1])
	}

	evs = tr.Reset(t0)
	if len(evs) != 2 || tr.Active() != 0 {
		t.Errorf("expected reset to lift both contacts, got %+v", evs)
	}
}

type routerFixture struct {
	router *Router
	pool   *pool.Pool
	menu   *menu.Menu
	scene  Scene
}

func newFixture() *routerFixture {
	cfg := config.Default()
	p := pool.New(0)
	m := menu.New()
	m.Layout(1000, 1000)
	return &routerFixture{
		router: NewRouter(cfg),
		pool:   p,
		menu:   m,
		scene:  Scene{Width: 1000, Height: 1000, Menu: m, Pool: p},
	}
}

func (f *routerFixture) down(id int32, x, y float32, ms int) []Intent {
	return f.router.Handle(PointerEvent{Phase: PhaseDown, Pointer: id, X: x, Y: y, At: after(ms)}, f.scene)
}

func (f *routerFixture) move(id int32, x, y float32, ms int) []Intent {
	return f.router.Handle(PointerEvent{Phase: PhaseMove, Pointer: id, X: x, Y: y, At: after(ms)}, f.scene)
}

func (f *routerFixture) up(id int32, ms int) []Intent {
	return f.router.Handle(PointerEvent{Phase: PhaseUp, Pointer: id, At: after(ms)}, f.scene)
}

func only(t *testing.T, got []Intent, want IntentType) Intent {
	t.Helper()
	if len(got) != 1 || got[0].Type != want {
		t.Fatalf("expected single %v intent, got %+v", want, got)
	}
	return got[0]
}

func TestHitTestTopDownWithMargin(t *testing.T) {
	f := newFixture()
	bottom := f.pool.SpawnBalloon(pool.BalloonSpec{X: 500, Y: 500, Radius: 100})
	top := f.pool.SpawnBalloon(pool.BalloonSpec{X: 550, Y: 500, Radius: 100})
	f.pool.Apply()

	// Overlap: the later balloon wins
	in := only(t, f.down(1, 520, 500, 0), IntentInflate)
	if in.Balloon != top || in.Pointer != 1 {
		t.Errorf("expected top balloon %d for pointer 1, got %+v", top, in)
	}

	// Only the bottom balloon is within radius + 65
	in = only(t, f.down(2, 340, 500, 0), IntentInflate)
	if in.Balloon != bottom {
		t.Errorf("expected bottom balloon %d, got %+v", bottom, in)
	}

	// 500 - 100 - 65 = 335 is the edge and does not count
	only(t, f.down(3, 335, 500, 0), IntentMiss)
}

func TestHitTestSkipsHeldBalloons(t *testing.T) {
	f := newFixture()
	id := f.pool.SpawnBalloon(pool.BalloonSpec{X: 500, Y: 500, Radius: 100})
	f.pool.Apply()
	ref, _ := f.pool.Balloon(id)
	ref.Balloon.Mode = components.ModeInflating

	if got := f.down(1, 500, 500, 0); len(got) != 0 {
		t.Errorf("expected no intent on a held balloon, got %+v", got)
	}

	ref.Balloon.Mode = components.ModeGhost
	in := only(t, f.down(2, 500, 500, 0), IntentTapGhost)
	if in.Balloon != id {
		t.Errorf("expected ghost %d, got %+v", id, in)
	}
}

func TestMissIgnoredMidGesture(t *testing.T) {
	f := newFixture()
	id := f.pool.SpawnBalloon(pool.BalloonSpec{X: 500, Y: 500, Radius: 100})
	f.pool.Apply()
	ref, _ := f.pool.Balloon(id)

	tests := []struct {
		name     string
		setup    func()
		teardown func()
		wantMiss bool
	}{
		{"idle", func() {}, func() {}, true},
		{
			"balloon inflating",
			func() { ref.Balloon.Mode = components.ModeInflating },
			func() { ref.Balloon.Mode = components.ModeIdle },
			false,
		},
		{
			"corner held",
			func() { f.down(1, 100, 100, 0) },
			func() { f.up(1, 10) },
			false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()
			defer tt.teardown()
			got := f.down(2, 900, 900, 5)
			if tt.wantMiss {
				only(t, got, IntentMiss)
			} else if len(got) != 0 {
				t.Errorf("expected no intent, got %+v", got)
			}
		})
	}
}

func TestReleaseAlwaysPassesThrough(t *testing.T) {
	f := newFixture()
	f.menu.Open()
	f.scene.ResultsOpen = true
	in := only(t, f.up(4, 0), IntentRelease)
	if in.Pointer != 4 {
		t.Errorf("expected pointer 4, got %d", in.Pointer)
	}
}

func TestCornerDwellOpensMenuOnce(t *testing.T) {
	f := newFixture()

	if got := f.down(1, 100, 100, 0); len(got) != 0 {
		t.Fatalf("expected corner down to be silent, got %+v", got)
	}
	if !f.router.CornerHeld() {
		t.Fatal("expected corner press in progress")
	}
	if got := f.move(1, 110, 100, 1500); len(got) != 0 {
		t.Fatalf("expected no menu before dwell, got %+v", got)
	}

	only(t, f.move(1, 110, 105, 2100), IntentOpenMenu)

	if got := f.move(1, 110, 110, 3000); len(got) != 0 {
		t.Errorf("expected menu to open once per press, got %+v", got)
	}
}

func TestCornerDwellStillFinger(t *testing.T) {
	f := newFixture()
	f.down(1, 100, 100, 0)

	if got := f.router.Tick(after(1999)); len(got) != 0 {
		t.Fatalf("expected nothing before dwell, got %+v", got)
	}
	only(t, f.router.Tick(after(2001)), IntentOpenMenu)
	if got := f.router.Tick(after(2500)); len(got) != 0 {
		t.Errorf("expected no repeat, got %+v", got)
	}
}

func TestCornerCancelledByLeavingOrLifting(t *testing.T) {
	f := newFixture()
	f.down(1, 100, 100, 0)
	f.move(1, 300, 100, 500)
	if f.router.CornerHeld() {
		t.Error("expected leaving the zone to cancel")
	}
	if got := f.router.Tick(after(3000)); len(got) != 0 {
		t.Errorf("expected no menu after leaving, got %+v", got)
	}

	f.down(2, 100, 100, 4000)
	f.up(2, 4500)
	if got := f.router.Tick(after(7000)); len(got) != 0 {
		t.Errorf("expected no menu after lifting, got %+v", got)
	}
}

func TestMenuTapsRoutedToMenu(t *testing.T) {
	f := newFixture()
	f.pool.SpawnBalloon(pool.BalloonSpec{X: 600, Y: 400, Radius: 100})
	f.pool.Apply()
	f.menu.Open()

	// Selecting over a balloon never inflates it
	if got := f.down(1, 600, 400, 0); len(got) != 0 {
		t.Fatalf("expected selection to be silent, got %+v", got)
	}
	in := only(t, f.down(1, 500, 830, 100), IntentMenuAction)
	if in.Action != menu.ActionSetTimer {
		t.Errorf("expected timer action, got %v", in.Action)
	}
}

func TestResultsPopupPrecedence(t *testing.T) {
	f := newFixture()
	f.scene.ResultsOpen = true
	f.scene.ManualOpen = true
	f.menu.Open()

	if got := f.down(1, 100, 100, 0); len(got) != 0 {
		t.Errorf("expected taps outside the button to be swallowed, got %+v", got)
	}
	if f.router.CornerHeld() {
		t.Error("expected corner to be ignored under the popup")
	}
	only(t, f.down(1, 500, 700, 0), IntentDismissResults)
}

func TestManualClosesOnAnyTap(t *testing.T) {
	f := newFixture()
	f.scene.ManualOpen = true
	only(t, f.down(1, 900, 900, 0), IntentCloseManual)
}
