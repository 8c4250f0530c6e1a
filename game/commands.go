package game

import (
	"errors"
	"time"

	"github.com/pthm-cable/balloonwar/duel"
	"github.com/pthm-cable/balloonwar/event"
	"github.com/pthm-cable/balloonwar/menu"
	"github.com/pthm-cable/balloonwar/session"
)

// runCommands executes confirmed menu actions in the order they were chosen.
func (g *Game) runCommands(now time.Time) {
	for _, a := range g.commands {
		g.execute(a, now)
	}
	g.commands = g.commands[:0]
}

// Queue schedules an action as if it had been confirmed in the menu. It
// runs on the next tick.
func (g *Game) Queue(a menu.Action) {
	g.commands = append(g.commands, a)
}

func (g *Game) execute(a menu.Action, now time.Time) {
	g.logger.Info("menu_action", "action", a.String())

	switch a {
	case menu.ActionNone:

	case menu.ActionToggleCamera:
		if g.platform == nil {
			g.showNotice(now, "Camera unavailable")
			return
		}
		if err := g.platform.ToggleCamera(!g.settings.Camera); err != nil {
			g.logger.Warn("camera_toggle_failed", "err", err)
			g.showNotice(now, "Camera unavailable")
			return
		}
		g.settings.Camera = !g.settings.Camera

	case menu.ActionTogglePro:
		g.settings.Pro = !g.settings.Pro
		g.stopAllStreams()
		g.pool.Clear()

	case menu.ActionHost:
		if g.duel == nil {
			g.showNotice(now, "Duel unavailable")
			return
		}
		g.linkUp = false
		g.opponent = session.NewOpponent()
		g.duel.Host(g.ctx, g.profileMessage())
		g.showNotice(now, "Waiting for opponent...")

	case menu.ActionJoin:
		if g.duel == nil {
			g.showNotice(now, "Duel unavailable")
			return
		}
		g.linkUp = false
		g.opponent = session.NewOpponent()
		g.duel.Join(g.ctx, g.joinHint, g.profileMessage())
		g.showNotice(now, "Searching for host...")

	case menu.ActionPickPop:
		g.pickSound(SlotPop, now)

	case menu.ActionPickFart:
		g.pickSound(SlotFart, now)

	case menu.ActionShowHowTo:
		g.manualOpen = true

	case menu.ActionSetTimer:
		seconds := g.cfg.Battle.DefaultSeconds
		g.startBattle(now, seconds)
		g.send(duel.Timer(seconds))

	case menu.ActionChildLock:
		if g.platform == nil {
			g.showNotice(now, "Child lock unavailable")
			return
		}
		if err := g.platform.PinApp(); err != nil {
			g.logger.Warn("pin_failed", "err", err)
			g.showNotice(now, "Child lock unavailable")
			return
		}
		g.settings.Pinned = true

	default:
		g.logger.Warn("menu_action_unhandled", "action", a.String())
	}
}

func (g *Game) profileMessage() duel.Message {
	return duel.Profile(g.username, g.scoring.MaxStreak())
}

func (g *Game) pickSound(slot SoundSlot, now time.Time) {
	if g.platform == nil {
		return
	}
	path, err := g.platform.PickSound(slot)
	if err != nil {
		if !errors.Is(err, ErrUnavailable) {
			g.logger.Warn("sound_pick_failed", "slot", slot.String(), "err", err)
		}
		g.showNotice(now, "No sound selected")
		return
	}
	id, err := g.audio.LoadFile(path)
	if err != nil {
		g.logger.Warn("sound_load_failed", "slot", slot.String(), "path", path, "err", err)
		g.showNotice(now, "Could not load sound")
		return
	}
	switch slot {
	case SlotPop:
		g.sounds.pop = id
	case SlotFart:
		g.sounds.fart = id
	}
	g.logger.Info("sound_replaced", "slot", slot.String(), "path", path)
}

// startBattle begins a countdown of seconds from now. The current streak
// starts over.
func (g *Game) startBattle(now time.Time, seconds int) {
	if limit := g.cfg.Battle.MaxSeconds; limit > 0 && seconds > limit {
		seconds = limit
	}
	g.battle.Start(now, time.Duration(seconds)*time.Second)
	g.scoring.ResetStreak()
	g.rhythm.Reset()
	g.logger.Info("battle_started", "seconds", seconds)
}

func (g *Game) roundOver(now time.Time) {
	stats := g.rhythm.Stats()
	res := session.Results{
		Streak: g.scoring.Streak(),
		BPM:    g.scoring.BPM(),
		Rhythm: stats.String(),
	}
	g.battle.ShowResults(res)

	rec := g.rhythm.Record(now, int(g.battle.Length()/time.Second), g.opponent.Name,
		res.Streak, res.BPM, g.scoring.MaxStreak())
	if err := g.output.WriteBattle(rec); err != nil {
		g.logger.Warn("battle_write_failed", "err", err)
	}
	g.logger.Info("battle_over", "streak", res.Streak, "bpm", res.BPM, "opponent", g.opponent.Name)
}

func (g *Game) handleEvent(ev event.Event) {
	switch ev.Kind {
	case event.KindLinkUp:
		g.linkUp = true
		g.showNotice(ev.At, "Connected")

	case event.KindLinkDown:
		if g.linkUp {
			g.showNotice(ev.At, "Link lost")
		} else {
			g.showNotice(ev.At, "Connection Failed")
		}
		g.linkUp = false

	case event.KindProfile:
		g.opponent.Set(ev.Name, ev.Best)

	case event.KindTimer:
		// Countdown runs from receipt, not from when the peer sent it
		g.startBattle(ev.At, ev.Seconds)

	case event.KindPop:
		g.opponent.Flash(g.cfg.Battle.FlashTicks)

	case event.KindStink:
		x, y := g.viewport.Center()
		g.emitter.Stink(x, y)

	case event.KindStinkTriple:
		x, y := g.viewport.Center()
		g.emitter.StinkTriple(x, y)
	}
}
