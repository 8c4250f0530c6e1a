package game

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/pthm-cable/balloonwar/components"
	"github.com/pthm-cable/balloonwar/config"
	"github.com/pthm-cable/balloonwar/duel"
	"github.com/pthm-cable/balloonwar/event"
	"github.com/pthm-cable/balloonwar/input"
	"github.com/pthm-cable/balloonwar/menu"
	"github.com/pthm-cable/balloonwar/pool"
	"github.com/pthm-cable/balloonwar/session"
)

var t0 = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func at(ms int) time.Time {
	return t0.Add(time.Duration(ms) * time.Millisecond)
}

type play struct {
	id     EffectID
	volume float32
	loop   bool
}

type fakeAudio struct {
	next    EffectID
	byName  map[string]EffectID
	plays   []play
	stopped []StreamHandle
	handle  StreamHandle
}

func (a *fakeAudio) PlayEffect(id EffectID, volume float32, loop bool) StreamHandle {
	a.plays = append(a.plays, play{id, volume, loop})
	a.handle++
	return a.handle
}

func (a *fakeAudio) StopStream(h StreamHandle) { a.stopped = append(a.stopped, h) }

func (a *fakeAudio) LoadBuiltin(name string) (EffectID, error) {
	if a.byName == nil {
		a.byName = make(map[string]EffectID)
	}
	a.next++
	a.byName[name] = a.next
	return a.next, nil
}

func (a *fakeAudio) LoadFile(path string) (EffectID, error) {
	a.next++
	a.byName[path] = a.next
	return a.next, nil
}

func (a *fakeAudio) count(id EffectID) int {
	n := 0
	for _, p := range a.plays {
		if p.id == id {
			n++
		}
	}
	return n
}

type buzz struct {
	d         time.Duration
	intensity uint8
}

type fakeHaptics struct{ buzzes []buzz }

func (h *fakeHaptics) Vibrate(d time.Duration, intensity uint8) {
	h.buzzes = append(h.buzzes, buzz{d, intensity})
}

type fakeDuel struct {
	hosted int
	joined []string
	sent   []duel.Message
}

func (d *fakeDuel) Host(context.Context, duel.Message) { d.hosted++ }

func (d *fakeDuel) Join(_ context.Context, hint string, _ duel.Message) {
	d.joined = append(d.joined, hint)
}

func (d *fakeDuel) Send(m duel.Message) bool {
	d.sent = append(d.sent, m)
	return true
}

func (d *fakeDuel) Connected() bool { return true }
func (d *fakeDuel) Close()          {}

func (d *fakeDuel) count(cmd duel.Command) int {
	n := 0
	for _, m := range d.sent {
		if m.Cmd == cmd {
			n++
		}
	}
	return n
}

type fakePlatform struct {
	camErr error
	pinErr error
	path   string
}

func (p *fakePlatform) ToggleCamera(bool) error { return p.camErr }
func (p *fakePlatform) PinApp() error           { return p.pinErr }

func (p *fakePlatform) PickSound(SoundSlot) (string, error) {
	if p.path == "" {
		return "", ErrUnavailable
	}
	return p.path, nil
}

type fixture struct {
	g        *Game
	cfg      *config.Config
	audio    *fakeAudio
	haptics  *fakeHaptics
	duel     *fakeDuel
	platform *fakePlatform
	store    *session.MemoryStore
	events   *event.Queue
}

// newFixture builds a laid-out game with no automatic spawning and no wind.
func newFixture(t *testing.T, tweak func(*config.Config)) *fixture {
	t.Helper()
	cfg := config.Default()
	cfg.Balloon.TargetCount = 0
	cfg.Balloon.BonusTargetCount = 0
	cfg.Balloon.GoldenChance = 0
	cfg.Wind.Strength = 0
	if tweak != nil {
		tweak(cfg)
	}

	f := &fixture{
		cfg:      cfg,
		audio:    &fakeAudio{},
		haptics:  &fakeHaptics{},
		duel:     &fakeDuel{},
		platform: &fakePlatform{camErr: ErrUnavailable, pinErr: ErrUnavailable},
		store:    session.NewMemoryStore(session.DefaultProfile()),
		events:   event.NewQueue(),
	}
	f.g = New(context.Background(), Options{
		Config:   cfg,
		Store:    f.store,
		Audio:    f.audio,
		Haptics:  f.haptics,
		Platform: f.platform,
		Duel:     f.duel,
		Events:   f.events,
		Logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		Seed:     1,
		JoinHint: "10.0.0.2:7777",
	})
	f.g.Resize(1000, 1000)
	return f
}

func (f *fixture) balloon(x, y, r float32) pool.BalloonID {
	id := f.g.pool.SpawnBalloon(pool.BalloonSpec{X: x, Y: y, Radius: r})
	f.g.pool.Apply()
	return id
}

func (f *fixture) down(ptr int32, x, y float32, now time.Time) {
	f.g.HandlePointer(input.PointerEvent{Phase: input.PhaseDown, Pointer: ptr, X: x, Y: y, At: now})
}

func (f *fixture) up(ptr int32, now time.Time) {
	f.g.HandlePointer(input.PointerEvent{Phase: input.PhaseUp, Pointer: ptr, At: now})
}

func (f *fixture) ticks(n int, now time.Time) {
	for i := 0; i < n; i++ {
		f.g.Tick(now)
	}
}

func TestInflateWhileHeld(t *testing.T) {
	f := newFixture(t, nil)
	id := f.balloon(500, 500, 180)

	f.down(1, 500, 500, t0)
	ref, ok := f.g.pool.Balloon(id)
	if !ok || ref.Balloon.Mode != components.ModeInflating || ref.Balloon.Pointer != 1 {
		t.Fatalf("expected balloon held by pointer 1, got %+v", ref.Balloon)
	}
	if len(f.audio.plays) != 1 || !f.audio.plays[0].loop || f.audio.plays[0].id != f.audio.byName["inflate"] {
		t.Fatalf("expected looping inflate sound, got %+v", f.audio.plays)
	}

	prev := ref.Body.Radius
	for i := 0; i < 50; i++ {
		f.g.Tick(t0)
		ref, _ = f.g.pool.Balloon(id)
		if ref.Body.Radius <= prev {
			t.Fatalf("tick %d: expected radius to grow past %f, got %f", i, prev, ref.Body.Radius)
		}
		prev = ref.Body.Radius
	}
	if ref.Pos.X != 500 || ref.Pos.Y != 500 {
		t.Errorf("expected held balloon to stay put, got (%f, %f)", ref.Pos.X, ref.Pos.Y)
	}
}

func TestReleaseSmallBalloonPops(t *testing.T) {
	f := newFixture(t, nil)
	id := f.balloon(500, 500, 180)

	f.down(1, 500, 500, t0)
	f.up(1, at(100))
	f.g.Tick(at(100))

	if _, ok := f.g.pool.Balloon(id); ok {
		t.Error("expected balloon removed")
	}
	if len(f.audio.stopped) != 1 {
		t.Errorf("expected inflate loop stopped, got %v", f.audio.stopped)
	}
	if f.audio.count(f.audio.byName["pop"]) != 1 {
		t.Error("expected pop sound")
	}
	if f.duel.count(duel.CmdPop) != 1 {
		t.Errorf("expected one POP sent, got %+v", f.duel.sent)
	}
	if got := f.g.pool.ParticleCount(); got != f.cfg.Particles.PopBurst {
		t.Errorf("expected %d particles, got %d", f.cfg.Particles.PopBurst, got)
	}
	if len(f.haptics.buzzes) != 1 || f.haptics.buzzes[0] != (buzz{30 * time.Millisecond, 150}) {
		t.Errorf("expected pop haptic 30ms/150, got %+v", f.haptics.buzzes)
	}
	if h := f.g.HUD(at(100)); h.Streak != 1 || h.BPM != 1 {
		t.Errorf("expected streak 1 and BPM 1, got %+v", h)
	}
}

func TestReleaseBigBalloonFartsThenStinks(t *testing.T) {
	f := newFixture(t, nil)
	id := f.balloon(500, 500, 300)

	f.down(1, 500, 500, t0)
	f.up(1, t0)

	ref, _ := f.g.pool.Balloon(id)
	if ref.Balloon.Mode != components.ModeFarting {
		t.Fatalf("expected farting, got %v", ref.Balloon.Mode)
	}
	if f.audio.count(f.audio.byName["fart"]) != 1 {
		t.Error("expected fart sound")
	}

	removedAt := -1
	for i := 1; i <= 101; i++ {
		f.g.Tick(t0)
		if _, ok := f.g.pool.Balloon(id); !ok {
			removedAt = i
			break
		}
	}
	if removedAt < 0 {
		t.Fatal("expected fart to finish within 101 ticks")
	}
	if f.duel.count(duel.CmdStink) != 1 || f.duel.count(duel.CmdPop) != 1 {
		t.Errorf("expected one STINK and one POP, got %+v", f.duel.sent)
	}
	if f.g.HUD(t0).Streak != 1 {
		t.Error("expected the finished fart to count as a pop")
	}
}

func TestFartDuringBonusSendsTripleStink(t *testing.T) {
	f := newFixture(t, nil)
	golden := f.g.pool.SpawnBalloon(pool.BalloonSpec{X: 400, Y: 200, Radius: 150, Golden: true})
	big := f.g.pool.SpawnBalloon(pool.BalloonSpec{X: 700, Y: 700, Radius: 300})
	f.g.pool.Apply()

	f.down(1, 400, 200, t0)
	f.up(1, t0)
	if _, ok := f.g.pool.Balloon(golden); ok {
		t.Fatal("expected golden balloon popped")
	}

	f.down(2, 700, 700, at(10))
	f.up(2, at(10))
	for i := 0; i < 101; i++ {
		f.g.Tick(at(20))
		if _, ok := f.g.pool.Balloon(big); !ok {
			break
		}
	}
	if f.duel.count(duel.CmdStinkTriple) != 1 || f.duel.count(duel.CmdStink) != 0 {
		t.Errorf("expected STINK_TRIPLE during the bonus, got %+v", f.duel.sent)
	}
}

func TestOverInflationPops(t *testing.T) {
	f := newFixture(t, nil)
	id := f.balloon(500, 500, 540)
	f.down(1, 500, 500, t0)

	// 543, 546, 549 stay; 552 passes the 550 limit
	f.ticks(3, t0)
	if _, ok := f.g.pool.Balloon(id); !ok {
		t.Fatal("expected balloon alive below the limit")
	}
	f.g.Tick(t0)
	if _, ok := f.g.pool.Balloon(id); ok {
		t.Fatal("expected balloon popped above the limit")
	}
	if len(f.audio.stopped) != 1 {
		t.Errorf("expected inflate loop stopped, got %v", f.audio.stopped)
	}

	// Lifting the finger afterwards does nothing more
	f.up(1, t0)
	if f.duel.count(duel.CmdPop) != 1 {
		t.Errorf("expected one POP, got %+v", f.duel.sent)
	}
}

func TestGhostVariant(t *testing.T) {
	f := newFixture(t, func(c *config.Config) { c.Balloon.Ghosts = true })

	f.balloon(500, 500, 150)
	f.down(1, 500, 500, t0)
	f.up(1, t0)
	f.g.Tick(t0)
	if f.g.HUD(t0).Streak != 1 {
		t.Fatal("expected streak 1 after warm-up pop")
	}

	id := f.balloon(500, 500, 549)
	f.down(2, 500, 500, t0)
	f.g.Tick(t0)
	ref, ok := f.g.pool.Balloon(id)
	if !ok || ref.Balloon.Mode != components.ModeGhost {
		t.Fatalf("expected balloon escaped as ghost, got %+v", ref.Balloon)
	}
	if f.duel.count(duel.CmdPop) != 1 {
		t.Errorf("expected escape not to score, got %+v", f.duel.sent)
	}
	f.up(2, t0)

	f.down(3, ref.Pos.X, ref.Pos.Y, t0)
	if _, ok := f.g.pool.Balloon(id); ok {
		t.Error("expected tapped ghost removed")
	}
	if f.g.HUD(t0).Streak != 0 {
		t.Error("expected ghost tap to reset the streak")
	}
}

func TestMaxStreakSavedOnlyOnChange(t *testing.T) {
	f := newFixture(t, nil)
	store := session.NewMemoryStore(session.Profile{Username: "Bella", MaxStreak: 2})
	f.g = New(context.Background(), Options{
		Config: f.cfg,
		Store:  store,
		Audio:  f.audio,
		Duel:   f.duel,
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	f.g.Resize(1000, 1000)

	for i := 0; i < 4; i++ {
		f.balloon(500, 500, 150)
		f.down(1, 500, 500, at(i*1000))
		f.up(1, at(i*1000))
		f.g.Tick(at(i * 1000))
		if want := max(0, i-1); store.Saves() != want {
			t.Errorf("after pop %d: expected %d saves, got %d", i+1, want, store.Saves())
		}
	}

	p, _ := store.Load()
	if p.MaxStreak != 4 || p.Username != "Bella" {
		t.Errorf("expected Bella with best 4, got %+v", p)
	}
}

func TestMissKeepsStreakByDefault(t *testing.T) {
	for _, reset := range []bool{false, true} {
		f := newFixture(t, func(c *config.Config) { c.Scoring.MissResetsStreak = reset })
		f.balloon(500, 500, 150)
		f.down(1, 500, 500, t0)
		f.up(1, t0)
		f.g.Tick(t0)

		f.down(2, 900, 900, at(10))
		want := 1
		if reset {
			want = 0
		}
		if got := f.g.HUD(at(10)).Streak; got != want {
			t.Errorf("miss_resets_streak=%v: expected streak %d, got %d", reset, want, got)
		}
	}
}

func TestStrayTapWhileInflatingKeepsStreak(t *testing.T) {
	f := newFixture(t, func(c *config.Config) { c.Scoring.MissResetsStreak = true })
	f.balloon(300, 300, 150)
	f.balloon(700, 700, 150)

	f.down(1, 300, 300, t0)
	f.up(1, t0)
	f.g.Tick(t0)

	f.down(2, 700, 700, at(50))
	f.down(3, 300, 900, at(60))
	if got := f.g.HUD(at(60)).Streak; got != 1 {
		t.Errorf("expected streak 1 while a balloon is held, got %d", got)
	}

	f.up(2, at(100))
	f.g.Tick(at(100))
	if got := f.g.HUD(at(100)).Streak; got != 2 {
		t.Errorf("expected streak 2 after the second pop, got %d", got)
	}
}

func TestFartLastsMaxTicks(t *testing.T) {
	f := newFixture(t, nil)
	id := f.balloon(500, 500, 549)

	f.down(1, 500, 500, t0)
	f.up(1, t0)
	ref, _ := f.g.pool.Balloon(id)
	if ref.Balloon.Mode != components.ModeFarting {
		t.Fatalf("expected farting, got %v", ref.Balloon.Mode)
	}

	f.ticks(f.g.cfg.Fart.MaxTicks, t0)
	if _, ok := f.g.pool.Balloon(id); !ok {
		t.Fatalf("expected balloon alive after %d ticks", f.g.cfg.Fart.MaxTicks)
	}
	if f.duel.count(duel.CmdStink) != 0 {
		t.Error("expected no STINK before the fart ends")
	}

	f.g.Tick(t0)
	if _, ok := f.g.pool.Balloon(id); ok {
		t.Error("expected balloon removed on the tick after max_ticks")
	}
	if f.duel.count(duel.CmdStink) != 1 {
		t.Errorf("expected one STINK, got %+v", f.duel.sent)
	}
}

func TestTimerCountsFromReceipt(t *testing.T) {
	f := newFixture(t, nil)
	f.events.Push(event.Event{Kind: event.KindTimer, At: t0, Seconds: 90})

	f.g.Tick(at(50))
	if h := f.g.HUD(t0); !h.BattleActive || h.SecondsLeft != 90 {
		t.Fatalf("expected 90s battle from receipt, got %+v", h)
	}
	if got := f.g.HUD(at(30500)).SecondsLeft; got != 59 {
		t.Errorf("expected 59s left, got %d", got)
	}

	f.g.Tick(at(90000))
	res, open := f.g.Results()
	if !open {
		t.Fatal("expected results popup after the countdown")
	}
	if res.Summary() != "Streak: 0 | BPM: 0" {
		t.Errorf("unexpected summary %q", res.Summary())
	}

	// Dismiss button sits at 40-60% width, 65-75% height
	f.down(1, 500, 700, at(91000))
	if _, open := f.g.Results(); open {
		t.Error("expected dismiss to close the popup")
	}
}

func TestMenuSelectThenConfirm(t *testing.T) {
	f := newFixture(t, nil)

	f.down(1, 50, 50, t0)
	f.g.Tick(at(2001))
	if !f.g.Menu().IsOpen() {
		t.Fatal("expected corner dwell to open the menu")
	}
	if len(f.haptics.buzzes) != 1 || f.haptics.buzzes[0] != (buzz{100 * time.Millisecond, 255}) {
		t.Errorf("expected menu haptic, got %+v", f.haptics.buzzes)
	}
	f.up(1, at(2100))

	var timer menu.Rect
	for _, b := range f.g.Menu().Buttons() {
		if b.Action == menu.ActionSetTimer {
			timer = b.Rect
		}
	}
	f.down(2, (timer.L+timer.R)/2, (timer.T+timer.B)/2, at(3000))
	f.g.Tick(at(3000))
	if f.g.HUD(at(3000)).BattleActive {
		t.Fatal("expected selection alone to do nothing")
	}

	c := f.g.Menu().Confirm()
	f.down(3, (c.L+c.R)/2, (c.T+c.B)/2, at(3500))
	f.g.Tick(at(3500))

	if h := f.g.HUD(at(3500)); !h.BattleActive || h.SecondsLeft != 60 {
		t.Errorf("expected 60s battle, got %+v", h)
	}
	if len(f.duel.sent) != 1 || f.duel.sent[0] != duel.Timer(60) {
		t.Errorf("expected TIMER:60 sent once, got %+v", f.duel.sent)
	}
	if f.g.Menu().IsOpen() || f.g.Menu().Selected() != menu.ActionNone {
		t.Error("expected menu closed with selection cleared")
	}
}

func TestActionsDegradeWithNotices(t *testing.T) {
	f := newFixture(t, nil)

	f.g.execute(menu.ActionToggleCamera, t0)
	if f.g.Settings().Camera || f.g.HUD(t0).Notice != "Camera unavailable" {
		t.Errorf("expected camera to stay off with a notice, got %+v", f.g.HUD(t0))
	}

	f.g.execute(menu.ActionChildLock, t0)
	if f.g.Settings().Pinned || f.g.HUD(t0).Notice != "Child lock unavailable" {
		t.Errorf("expected pinning to fail with a notice, got %+v", f.g.HUD(t0))
	}

	f.g.execute(menu.ActionPickPop, t0)
	if f.g.HUD(t0).Notice != "No sound selected" {
		t.Errorf("expected pick notice, got %q", f.g.HUD(t0).Notice)
	}
	if f.g.HUD(t0.Add(noticeDuration)).Notice != "" {
		t.Error("expected notice to expire")
	}

	f.platform.path = "/tmp/boing.wav"
	f.g.execute(menu.ActionPickPop, t0)
	if f.g.sounds.pop != f.audio.byName["/tmp/boing.wav"] {
		t.Error("expected custom pop sound to replace the builtin")
	}
}

func TestHostAndJoin(t *testing.T) {
	f := newFixture(t, nil)
	f.g.execute(menu.ActionHost, t0)
	f.g.execute(menu.ActionJoin, t0)
	if f.duel.hosted != 1 || len(f.duel.joined) != 1 || f.duel.joined[0] != "10.0.0.2:7777" {
		t.Errorf("expected one host and one join, got %+v", f.duel)
	}
}

func TestProToggleClearsBalloons(t *testing.T) {
	f := newFixture(t, nil)
	f.balloon(300, 300, 180)
	f.balloon(600, 600, 180)

	f.g.execute(menu.ActionTogglePro, t0)
	f.g.Tick(t0)
	if !f.g.Settings().Pro {
		t.Error("expected pro on")
	}
	if n := f.g.pool.BalloonCount(); n != 0 {
		t.Errorf("expected balloons cleared, got %d", n)
	}
}

func TestLinkNotices(t *testing.T) {
	f := newFixture(t, nil)

	f.events.Push(event.Event{Kind: event.KindLinkDown, At: t0})
	f.g.Tick(t0)
	if got := f.g.HUD(t0).Notice; got != "Connection Failed" {
		t.Errorf("expected handshake failure notice, got %q", got)
	}

	f.events.Push(event.Event{Kind: event.KindLinkUp, At: t0})
	f.events.Push(event.Event{Kind: event.KindProfile, At: t0, Name: "Bob", Best: "12"})
	f.g.Tick(t0)
	h := f.g.HUD(t0)
	if !h.Linked || h.Opponent.Name != "Bob" || h.Opponent.Best != "12" {
		t.Errorf("expected linked to Bob, got %+v", h)
	}

	f.events.Push(event.Event{Kind: event.KindLinkDown, At: t0})
	f.g.Tick(t0)
	if got := f.g.HUD(t0).Notice; got != "Link lost" {
		t.Errorf("expected link lost notice, got %q", got)
	}
}

func TestOpponentEvents(t *testing.T) {
	f := newFixture(t, nil)

	f.events.Push(event.Event{Kind: event.KindPop, At: t0})
	f.g.Tick(t0)
	// Flash set during the tick and counted down once in the same tick
	if got := f.g.HUD(t0).Opponent.FlashTicks; got != f.cfg.Battle.FlashTicks-1 {
		t.Errorf("expected flash %d, got %d", f.cfg.Battle.FlashTicks-1, got)
	}

	f.events.Push(event.Event{Kind: event.KindStink, At: t0})
	f.g.Tick(t0)
	if got := f.g.pool.ParticleCount(); got != f.cfg.Particles.StinkBurst {
		t.Errorf("expected %d stink particles, got %d", f.cfg.Particles.StinkBurst, got)
	}
	f.g.pool.ForEachParticle(func(pos *components.Position, _ *components.Velocity, part *components.Particle) {
		if part.Kind != components.ParticleStink {
			t.Errorf("expected stink particle, got %v", part.Kind)
		}
	})
}

func TestNoSpawnBeforeLayout(t *testing.T) {
	cfg := config.Default()
	cfg.Wind.Strength = 0
	g := New(context.Background(), Options{Config: cfg, Logger: slog.New(slog.NewTextHandler(io.Discard, nil))})

	for i := 0; i < 10; i++ {
		g.Tick(t0)
	}
	if n := g.pool.BalloonCount(); n != 0 {
		t.Fatalf("expected no balloons before layout, got %d", n)
	}

	g.Resize(1080, 1920)
	for i := 0; i < 10; i++ {
		g.Tick(t0)
	}
	if n := g.pool.BalloonCount(); n != cfg.Balloon.TargetCount {
		t.Errorf("expected %d balloons, got %d", cfg.Balloon.TargetCount, n)
	}
}

func TestAdvanceFixedStep(t *testing.T) {
	f := newFixture(t, nil)

	if n := f.g.Advance(50*time.Millisecond, t0); n != 3 {
		t.Errorf("expected 3 ticks for 50ms, got %d", n)
	}
	if n := f.g.Advance(5*time.Millisecond, t0); n != 0 {
		t.Errorf("expected no tick for 5ms, got %d", n)
	}
	if n := f.g.Advance(time.Second, t0); n != f.cfg.Sim.MaxStepsPerFrame {
		t.Errorf("expected catch-up capped at %d, got %d", f.cfg.Sim.MaxStepsPerFrame, n)
	}
	if n := f.g.Advance(0, t0); n != 0 {
		t.Errorf("expected backlog dropped, got %d ticks", n)
	}
	if f.g.TickCount() != uint64(3+f.cfg.Sim.MaxStepsPerFrame) {
		t.Errorf("unexpected tick count %d", f.g.TickCount())
	}
}

func TestIntroFades(t *testing.T) {
	f := newFixture(t, nil)
	if f.g.HUD(t0).Intro != 255 {
		t.Fatal("expected banner fully visible")
	}
	f.ticks(10, t0)
	if got := f.g.HUD(t0).Intro; got != 215 {
		t.Errorf("expected alpha 215 after 10 ticks, got %d", got)
	}
	f.ticks(100, t0)
	if f.g.HUD(t0).Intro != 0 {
		t.Error("expected banner gone")
	}
}

func TestQueuedActionRunsNextTick(t *testing.T) {
	f := newFixture(t, nil)

	f.g.Queue(menu.ActionHost)
	if f.duel.hosted != 0 {
		t.Fatal("expected queued action to wait for the tick")
	}
	f.g.Tick(t0)
	if f.duel.hosted != 1 {
		t.Errorf("expected one host call, got %d", f.duel.hosted)
	}
	if f.g.HUD(t0).Notice != "Waiting for opponent..." {
		t.Errorf("expected waiting notice, got %q", f.g.HUD(t0).Notice)
	}
}
