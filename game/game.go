// Package game ties the simulation, scoring, input and duel link together
// and runs them on a fixed tick.
package game

import (
	"context"
	"log/slog"
	"math/rand"
	"time"

	"github.com/pthm-cable/balloonwar/audio"
	"github.com/pthm-cable/balloonwar/camera"
	"github.com/pthm-cable/balloonwar/config"
	"github.com/pthm-cable/balloonwar/event"
	"github.com/pthm-cable/balloonwar/input"
	"github.com/pthm-cable/balloonwar/menu"
	"github.com/pthm-cable/balloonwar/pool"
	"github.com/pthm-cable/balloonwar/scoring"
	"github.com/pthm-cable/balloonwar/session"
	"github.com/pthm-cable/balloonwar/systems"
	"github.com/pthm-cable/balloonwar/telemetry"
)

// Intro banner fade.
const (
	introAlpha     = 255
	introFadeSpeed = 4
)

// noticeDuration is how long a transient notice stays on screen.
const noticeDuration = 3 * time.Second

// Options holds the collaborators a Game needs. Nil ports fall back to
// no-op implementations.
type Options struct {
	Config   *config.Config
	Store    session.Store
	Settings session.Settings
	Audio    Audio
	Haptics  Haptics
	Platform Platform
	Duel     Duel
	Events   *event.Queue
	Output   *telemetry.OutputManager
	Logger   *slog.Logger
	Seed     int64

	// JoinHint is the address handed to Duel.Join.
	JoinHint string
}

// sounds holds the loaded effect ids.
type sounds struct {
	pop, inflate, fart EffectID
}

// Game holds the complete game state. It is owned by a single goroutine.
type Game struct {
	cfg    *config.Config
	rng    *rand.Rand
	logger *slog.Logger
	ctx    context.Context

	// Ports
	store    session.Store
	audio    Audio
	haptics  Haptics
	platform Platform
	duel     Duel
	joinHint string

	// Simulation
	pool     *pool.Pool
	balloons *systems.BalloonStep
	spawner  *systems.SpawnPolicy
	emitter  *systems.Emitter

	// Interaction
	tracker  *input.Tracker
	router   *input.Router
	menu     *menu.Menu
	commands []menu.Action

	// State
	scoring  *scoring.Engine
	settings session.Settings
	username string
	battle   session.Battle
	opponent session.Opponent
	viewport camera.Viewport
	shake    *camera.Shake
	streams  map[int32]StreamHandle // Inflate loop per pointer
	sounds   sounds

	linkUp      bool
	manualOpen  bool
	notice      string
	noticeUntil time.Time
	intro       float32

	// Background events
	events    *event.Queue
	eventsBuf []event.Event

	// Telemetry
	output       *telemetry.OutputManager
	rhythm       *telemetry.Rhythm
	perf         *telemetry.PerfCollector
	lastPerfLog  time.Time
	tick         uint64
	accumulator  time.Duration
	lastAdvanced time.Time
}

// New creates a game. It loads the persisted profile and the builtin sounds.
func New(ctx context.Context, opts Options) *Game {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	store := opts.Store
	if store == nil {
		store = session.NewMemoryStore(session.DefaultProfile())
	}

	profile, err := store.Load()
	if err != nil {
		logger.Warn("profile_load_failed", "err", err)
		profile = session.DefaultProfile()
	}

	rng := rand.New(rand.NewSource(opts.Seed))
	p := pool.New(cfg.Particles.Max)

	g := &Game{
		cfg:      cfg,
		rng:      rng,
		logger:   logger,
		ctx:      ctx,
		store:    store,
		audio:    opts.Audio,
		haptics:  opts.Haptics,
		platform: opts.Platform,
		duel:     opts.Duel,
		joinHint: opts.JoinHint,
		pool:     p,
		balloons: systems.NewBalloonStep(cfg, rng, systems.NewWind(cfg.Wind, opts.Seed)),
		spawner:  systems.NewSpawnPolicy(cfg, rng),
		emitter:  systems.NewEmitter(p, rng, cfg),
		tracker:  input.NewTracker(),
		router:   input.NewRouter(cfg),
		menu:     menu.New(),
		scoring:  scoring.NewEngine(cfg, profile.MaxStreak, profile.TotalPops),
		settings: opts.Settings,
		username: profile.Username,
		opponent: session.NewOpponent(),
		shake:    camera.NewShake(cfg.Scoring.ShakeDecay, rng),
		streams:  make(map[int32]StreamHandle),
		intro:    introAlpha,
		events:   opts.Events,
		output:   opts.Output,
		rhythm:   telemetry.NewRhythm(64),
		perf:     telemetry.NewPerfCollector(cfg.Telemetry.PerfWindow),
	}
	if g.audio == nil {
		g.audio = Silent{}
	}
	if g.haptics == nil {
		g.haptics = NoHaptics{}
	}
	if g.events == nil {
		g.events = event.NewQueue()
	}

	g.sounds = sounds{
		pop:     g.loadBuiltin(audio.Pop),
		inflate: g.loadBuiltin(audio.Inflate),
		fart:    g.loadBuiltin(audio.Fart),
	}

	logger.Info("game_created",
		"username", profile.Username,
		"max_streak", profile.MaxStreak,
		"pro", opts.Settings.Pro,
		"seed", opts.Seed,
	)
	return g
}

func (g *Game) loadBuiltin(name string) EffectID {
	id, err := g.audio.LoadBuiltin(name)
	if err != nil {
		g.logger.Warn("sound_load_failed", "sound", name, "err", err)
		return NoEffect
	}
	return id
}

// Resize updates the viewport and menu layout.
func (g *Game) Resize(w, h float32) {
	if g.viewport.Resize(w, h) {
		g.menu.Layout(g.viewport.W, g.viewport.H)
		g.logger.Debug("viewport_resized", "width", w, "height", h)
	}
}

// HandleContacts feeds one poll of touch contacts through the tracker and
// router and applies the resulting intents.
func (g *Game) HandleContacts(contacts []input.Contact, now time.Time) {
	for _, ev := range g.tracker.Update(contacts, now) {
		g.handlePointer(ev, now)
	}
}

// HandlePointer applies a single pointer event.
func (g *Game) HandlePointer(ev input.PointerEvent) {
	g.handlePointer(ev, ev.At)
}

func (g *Game) handlePointer(ev input.PointerEvent, now time.Time) {
	for _, in := range g.router.Handle(ev, g.scene()) {
		g.handleIntent(in, now)
	}
}

func (g *Game) scene() input.Scene {
	return input.Scene{
		Width:       g.viewport.W,
		Height:      g.viewport.H,
		ResultsOpen: g.battle.ResultsOpen(),
		ManualOpen:  g.manualOpen,
		Menu:        g.menu,
		Pool:        g.pool,
	}
}

// Advance runs as many fixed ticks as dt covers, capped so a long stall
// does not spiral. It returns the number of ticks run.
func (g *Game) Advance(dt time.Duration, now time.Time) int {
	step := g.cfg.Derived.TickDuration
	g.accumulator += dt
	maxSteps := g.cfg.Sim.MaxStepsPerFrame
	if maxSteps < 1 {
		maxSteps = 1
	}

	n := 0
	for g.accumulator >= step && n < maxSteps {
		g.accumulator -= step
		g.Tick(now)
		n++
	}
	if n == maxSteps && g.accumulator >= step {
		// Drop the backlog rather than fast-forwarding
		g.accumulator = 0
	}
	g.perf.RecordFrame()
	return n
}

// Tick advances the game by exactly one tick.
func (g *Game) Tick(now time.Time) {
	g.perf.StartTick()
	g.tick++

	g.perf.StartPhase(telemetry.PhaseEvents)
	g.eventsBuf = g.events.Drain(g.eventsBuf[:0])
	for _, ev := range g.eventsBuf {
		g.handleEvent(ev)
	}

	g.perf.StartPhase(telemetry.PhaseInput)
	for _, in := range g.router.Tick(now) {
		g.handleIntent(in, now)
	}
	g.runCommands(now)

	g.perf.StartPhase(telemetry.PhaseBalloons)
	for _, eff := range g.balloons.Update(g.pool, g.variant(), g.bounds(), g.tick) {
		g.handleEffect(eff, now)
	}

	g.perf.StartPhase(telemetry.PhaseParticles)
	systems.UpdateParticles(g.pool)
	g.shake.Tick()
	g.opponent.Tick()
	if g.intro > 0 {
		g.intro = max(0, g.intro-introFadeSpeed)
	}
	if g.battle.Tick(now) {
		g.roundOver(now)
	}

	g.perf.StartPhase(telemetry.PhaseSpawn)
	g.spawner.Update(g.pool, g.variant(), g.bounds(), g.scoring.BonusActive(now))

	g.perf.StartPhase(telemetry.PhaseApply)
	g.pool.Apply()

	g.perf.EndTick()
	g.maybeLogPerf(now)
}

func (g *Game) variant() config.Variant {
	return g.cfg.Variant(g.settings.Pro)
}

func (g *Game) bounds() systems.Bounds {
	return systems.Bounds{Width: g.viewport.W, Height: g.viewport.H}
}

func (g *Game) maybeLogPerf(now time.Time) {
	interval := g.cfg.Derived.PerfLogInterval
	if interval <= 0 {
		return
	}
	if g.lastPerfLog.IsZero() {
		g.lastPerfLog = now
		return
	}
	if now.Sub(g.lastPerfLog) < interval {
		return
	}
	g.lastPerfLog = now

	stats := g.perf.Stats()
	stats.LogStats(g.logger)
	if err := g.output.WritePerf(stats.ToCSV(g.tick, g.pool.BalloonCount(), g.pool.ParticleCount())); err != nil {
		g.logger.Warn("perf_write_failed", "err", err)
	}
}

// showNotice displays a transient message.
func (g *Game) showNotice(now time.Time, msg string) {
	g.notice = msg
	g.noticeUntil = now.Add(noticeDuration)
	g.logger.Info("notice", "text", msg)
}

// Close shuts the duel link and saves the profile.
func (g *Game) Close() {
	if g.duel != nil {
		g.duel.Close()
	}
	for ptr, h := range g.streams {
		g.audio.StopStream(h)
		delete(g.streams, ptr)
	}
	if err := g.store.Save(g.profile()); err != nil {
		g.logger.Warn("profile_save_failed", "err", err)
	}
}

func (g *Game) profile() session.Profile {
	return session.Profile{
		Username:  g.username,
		MaxStreak: g.scoring.MaxStreak(),
		TotalPops: g.scoring.TotalPops(),
	}
}
