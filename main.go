package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/balloonwar/config"
	"github.com/pthm-cable/balloonwar/duel"
	"github.com/pthm-cable/balloonwar/event"
	"github.com/pthm-cable/balloonwar/game"
	"github.com/pthm-cable/balloonwar/input"
	"github.com/pthm-cable/balloonwar/menu"
	"github.com/pthm-cable/balloonwar/platform"
	"github.com/pthm-cable/balloonwar/session"
	"github.com/pthm-cable/balloonwar/telemetry"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	profilePath := flag.String("profile", "balloonwar_profile.yaml", "Path to the persisted player profile")
	name := flag.String("name", "", "Set the player name shown to opponents")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	logLevel := flag.String("log-level", "info", "Log level (debug, info, warn, error)")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	pro := flag.Bool("pro", false, "Start in the pro variant")
	host := flag.Bool("host", false, "Host a duel on startup")
	join := flag.String("join", "", "Join a duel at host:port on startup")
	headless := flag.Bool("headless", false, "Run the simulation without a window or audio")
	maxTicks := flag.Int("max-ticks", 0, "Stop after N ticks (0 = unlimited)")

	flag.Parse()

	// Set up slog (JSON to stdout for structured logging)
	var level slog.Level
	if err := level.UnmarshalText([]byte(*logLevel)); err != nil {
		level = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	store := session.NewFileStore(*profilePath)
	if *name != "" {
		if err := rename(store, *name); err != nil {
			slog.Warn("failed to set name", "error", err)
		}
	}

	output, err := telemetry.NewOutputManager(*outputDir)
	if err != nil {
		slog.Error("failed to create output dir", "error", err)
		os.Exit(1)
	}
	defer output.Close()
	if err := output.WriteConfig(cfg); err != nil {
		slog.Warn("failed to write config snapshot", "error", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	queue := event.NewQueue()
	joinHint := *join
	if joinHint == "" {
		joinHint = cfg.Duel.Address
	}
	dialer := duel.NewDialer(
		&duel.TCPTransport{Address: cfg.Duel.Address, ConnectTimeout: cfg.Derived.ConnectTimeout},
		queue, duel.LinkConfigFrom(cfg), logger,
	)

	opts := game.Options{
		Config:   cfg,
		Store:    store,
		Settings: session.Settings{Pro: *pro},
		Haptics:  platform.LogHaptics{Logger: logger},
		Platform: platform.NewDesktop(cfg, logger),
		Duel:     dialer,
		Events:   queue,
		Output:   output,
		Logger:   logger,
		Seed:     rngSeed,
		JoinHint: joinHint,
	}

	slog.Info("starting",
		"seed", rngSeed,
		"headless", *headless,
		"pro", *pro,
		"output_dir", output.Dir(),
	)

	if *headless {
		runHeadless(ctx, opts, *maxTicks)
		return
	}
	runWindow(ctx, opts, *host, *join != "", *maxTicks)
}

func rename(store *session.FileStore, name string) error {
	p, err := store.Load()
	if err != nil {
		return err
	}
	p.Username = duel.SanitizeName(name)
	return store.Save(p)
}

// runHeadless steps the simulation at the fixed tick with no window. Touch
// and audio are absent, so only spawning, drift and the duel link run.
func runHeadless(ctx context.Context, opts game.Options, maxTicks int) {
	cfg := opts.Config
	g := game.New(ctx, opts)
	defer g.Close()
	g.Resize(float32(cfg.Screen.Width), float32(cfg.Screen.Height))

	step := cfg.Derived.TickDuration
	now := time.Now()
	for ctx.Err() == nil {
		now = now.Add(step)
		g.Advance(step, now)
		if maxTicks > 0 && int(g.TickCount()) >= maxTicks {
			slog.Info("max ticks reached", "tick", g.TickCount())
			return
		}
	}
}

func runWindow(ctx context.Context, opts game.Options, host, join bool, maxTicks int) {
	cfg := opts.Config
	logger := opts.Logger

	rl.SetConfigFlags(rl.FlagWindowResizable)
	rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), cfg.Screen.Title)
	defer rl.CloseWindow()
	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

	var bank *platform.SoundBank
	if cfg.Audio.Enabled {
		rl.InitAudioDevice()
		if rl.IsAudioDeviceReady() {
			bank = platform.NewSoundBank(cfg.Audio.MaxStreams, opts.Seed, logger)
			opts.Audio = bank
			defer rl.CloseAudioDevice()
			defer bank.Close()
		} else {
			slog.Warn("audio device unavailable, running silent")
		}
	}

	g := game.New(ctx, opts)
	defer g.Close()

	switch {
	case host:
		g.Queue(menu.ActionHost)
	case join:
		g.Queue(menu.ActionJoin)
	}

	v := newView(cfg, opts.Seed)
	contacts := make([]input.Contact, 0, 10)
	start := time.Now()
	focused := true

	for !rl.WindowShouldClose() && ctx.Err() == nil {
		now := time.Now()
		g.Resize(float32(rl.GetScreenWidth()), float32(rl.GetScreenHeight()))

		if f := rl.IsWindowFocused(); f != focused {
			focused = f
			if bank != nil {
				if focused {
					bank.Resume()
				} else {
					bank.Pause()
				}
			}
		}

		contacts = platform.PollContacts(contacts)
		g.HandleContacts(contacts, now)
		g.Advance(time.Duration(rl.GetFrameTime()*float32(time.Second)), now)
		if bank != nil {
			bank.Update()
		}

		rl.BeginDrawing()
		v.draw(g, now, float32(now.Sub(start).Seconds()))
		rl.EndDrawing()

		if maxTicks > 0 && int(g.TickCount()) >= maxTicks {
			break
		}
	}
}
