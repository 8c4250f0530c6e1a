package game

import (
	"image/color"
	"time"

	"github.com/pthm-cable/balloonwar/components"
	"github.com/pthm-cable/balloonwar/duel"
	"github.com/pthm-cable/balloonwar/input"
	"github.com/pthm-cable/balloonwar/pool"
	"github.com/pthm-cable/balloonwar/systems"
	"github.com/pthm-cable/balloonwar/telemetry"
)

// Pop causes, as recorded in pops.csv.
const (
	causeRelease     = "release"
	causeOverInflate = "over_inflate"
	causeFart        = "fart"
)

func (g *Game) handleIntent(in input.Intent, now time.Time) {
	switch in.Type {
	case input.IntentInflate:
		g.grab(in.Balloon, in.Pointer)

	case input.IntentRelease:
		g.release(in.Pointer, now)

	case input.IntentTapGhost:
		g.tapGhost(in.Balloon)

	case input.IntentMiss:
		g.scoring.Miss(g.cfg.Scoring.MissResetsStreak)

	case input.IntentOpenMenu:
		g.menu.Open()
		g.vibrate(g.cfg.Input.MenuHapticMs, g.cfg.Input.MenuHapticIntensity)
		g.logger.Debug("menu_opened")

	case input.IntentMenuAction:
		g.commands = append(g.commands, in.Action)

	case input.IntentDismissResults:
		g.battle.Dismiss()
		g.scoring.ResetStreak()

	case input.IntentCloseManual:
		g.manualOpen = false
	}
}

// grab starts inflating an idle balloon under a pointer.
func (g *Game) grab(id pool.BalloonID, pointer int32) {
	ref, ok := g.pool.Balloon(id)
	if !ok || ref.Balloon.Mode != components.ModeIdle {
		return
	}
	ref.Balloon.Mode = components.ModeInflating
	ref.Balloon.Pointer = pointer

	g.stopStream(pointer)
	if h := g.play(g.sounds.inflate, g.cfg.Audio.InflateVolume, true); h != NoStream {
		g.streams[pointer] = h
	}
}

// release lets go of every balloon held by a pointer. Big balloons fart,
// the rest pop.
func (g *Game) release(pointer int32, now time.Time) {
	g.stopStream(pointer)

	var held []pool.BalloonID
	g.pool.ForEachBalloon(func(ref pool.BalloonRef) bool {
		if ref.Balloon.Mode == components.ModeInflating && ref.Balloon.Pointer == pointer {
			held = append(held, ref.ID())
		}
		return true
	})

	for _, id := range held {
		ref, ok := g.pool.Balloon(id)
		if !ok {
			continue
		}
		if float64(ref.Body.Radius) > g.cfg.Balloon.FartThreshold {
			ref.Balloon.Mode = components.ModeFarting
			ref.Balloon.Pointer = components.NoPointer
			ref.Balloon.FartTicks = 0
			g.play(g.sounds.fart, g.cfg.Audio.FartVolume, false)
			continue
		}
		g.popBalloon(ref, causeRelease, now)
	}
}

// tapGhost removes an escaped balloon. Touching one costs the streak.
func (g *Game) tapGhost(id pool.BalloonID) {
	ref, ok := g.pool.Balloon(id)
	if !ok || ref.Balloon.Mode != components.ModeGhost {
		return
	}
	g.emitter.Pop(ref.Pos.X, ref.Pos.Y, g.cfg.Derived.GhostColor, false)
	g.pool.RemoveBalloon(id)
	g.scoring.ResetStreak()
	g.logger.Debug("ghost_tapped", "balloon", uint64(id))
}

func (g *Game) handleEffect(eff systems.Effect, now time.Time) {
	switch eff.Kind {
	case systems.EffectPop:
		g.stopStream(eff.Pointer)
		if ref, ok := g.pool.Balloon(eff.Balloon); ok {
			g.popBalloon(ref, causeOverInflate, now)
		}

	case systems.EffectEscape:
		g.stopStream(eff.Pointer)
		g.logger.Debug("balloon_escaped", "balloon", uint64(eff.Balloon))

	case systems.EffectFartPulse:
		g.vibrate(g.cfg.Fart.HapticMs, g.cfg.Fart.HapticIntensity)

	case systems.EffectFartDone:
		ref, ok := g.pool.Balloon(eff.Balloon)
		if !ok {
			return
		}
		taunt := duel.Message{Cmd: duel.CmdStink}
		if g.scoring.BonusActive(now) {
			taunt.Cmd = duel.CmdStinkTriple
		}
		g.popBalloon(ref, causeFart, now)
		g.send(taunt)
	}
}

// popBalloon is the single scored pop path: release, over-inflation and
// the end of a fart all come through here.
func (g *Game) popBalloon(ref pool.BalloonRef, cause string, now time.Time) {
	b := ref.Balloon
	x, y := ref.Pos.X, ref.Pos.Y
	res := g.scoring.Pop(now, b.Golden)

	if res.NewMax {
		if err := g.store.Save(g.profile()); err != nil {
			g.logger.Warn("profile_save_failed", "err", err)
		}
	}
	if res.Shake > 0 {
		g.shake.Set(res.Shake)
	}
	g.vibrate(g.cfg.Scoring.PopHapticMs, g.cfg.Scoring.PopHapticIntensity)

	g.emitter.Pop(x, y, g.BalloonColor(*b), res.Rainbow)
	if b.Golden {
		g.emitter.Golden(x, y)
	}
	g.play(g.sounds.pop, g.cfg.Audio.PopVolume, false)
	g.send(duel.Message{Cmd: duel.CmdPop})
	g.rhythm.Add(now)

	rec := telemetry.PopRecord{
		Tick:    g.tick,
		AtMS:    now.UnixMilli(),
		Cause:   cause,
		Radius:  ref.Body.Radius,
		Combo:   res.Combo,
		Streak:  res.Streak,
		BPM:     res.BPM,
		Golden:  b.Golden,
		Bonus:   g.scoring.BonusActive(now),
		Variant: g.variantName(),
	}
	if err := g.output.WritePop(rec); err != nil {
		g.logger.Warn("pop_write_failed", "err", err)
	}
	g.logger.Debug("balloon_popped", "pop", rec)

	g.pool.RemoveBalloon(b.ID)
}

// BalloonColor returns the fill color of a balloon.
func (g *Game) BalloonColor(b components.Balloon) color.RGBA {
	switch {
	case b.Mode == components.ModeGhost:
		return g.cfg.Derived.GhostColor
	case b.Golden:
		return g.cfg.Derived.GoldenColor
	case len(g.cfg.Derived.Palette) == 0:
		return color.RGBA{255, 255, 255, 255}
	}
	return g.cfg.Derived.Palette[int(b.Color)%len(g.cfg.Derived.Palette)]
}

func (g *Game) variantName() string {
	if g.settings.Pro {
		return "pro"
	}
	return "standard"
}

func (g *Game) play(id EffectID, volume float32, loop bool) StreamHandle {
	if id == NoEffect {
		return NoStream
	}
	return g.audio.PlayEffect(id, volume, loop)
}

func (g *Game) stopStream(pointer int32) {
	if h, ok := g.streams[pointer]; ok {
		g.audio.StopStream(h)
		delete(g.streams, pointer)
	}
}

func (g *Game) stopAllStreams() {
	for ptr := range g.streams {
		g.stopStream(ptr)
	}
}

func (g *Game) vibrate(ms, intensity int) {
	if ms <= 0 {
		return
	}
	g.haptics.Vibrate(time.Duration(ms)*time.Millisecond, uint8(min(max(intensity, 0), 255)))
}

func (g *Game) send(m duel.Message) {
	if g.duel == nil {
		return
	}
	g.duel.Send(m)
}
