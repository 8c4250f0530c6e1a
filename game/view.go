package game

import (
	"time"

	"github.com/pthm-cable/balloonwar/camera"
	"github.com/pthm-cable/balloonwar/menu"
	"github.com/pthm-cable/balloonwar/pool"
	"github.com/pthm-cable/balloonwar/session"
)

// HUD is the heads-up state drawn over the playfield.
type HUD struct {
	Streak    int
	MaxStreak int
	BPM       int
	Combo     string // Celebration label, empty when hidden
	Bonus     bool

	BattleActive bool
	SecondsLeft  int

	Linked   bool
	Opponent session.Opponent

	Notice string
	Intro  uint8 // Banner alpha, 0 once faded
}

// HUD returns the heads-up state as of now.
func (g *Game) HUD(now time.Time) HUD {
	h := HUD{
		Streak:       g.scoring.Streak(),
		MaxStreak:    g.scoring.MaxStreak(),
		BPM:          g.scoring.BPM(),
		Bonus:        g.scoring.BonusActive(now),
		BattleActive: g.battle.Active(),
		SecondsLeft:  g.battle.RemainingSeconds(now),
		Linked:       g.linkUp,
		Opponent:     g.opponent,
		Intro:        uint8(g.intro),
	}
	if label, ok := g.scoring.ComboText(now); ok {
		h.Combo = label
	}
	if now.Before(g.noticeUntil) {
		h.Notice = g.notice
	}
	return h
}

// Pool returns the entity pool for drawing. Callers must not mutate it.
func (g *Game) Pool() *pool.Pool { return g.pool }

// Menu returns the tactical menu.
func (g *Game) Menu() *menu.Menu { return g.menu }

// Shake returns the screen shake.
func (g *Game) Shake() *camera.Shake { return g.shake }

// Viewport returns the current playfield size.
func (g *Game) Viewport() camera.Viewport { return g.viewport }

// Settings returns the runtime toggles.
func (g *Game) Settings() session.Settings { return g.settings }

// Results returns the results popup contents and whether it is shown.
func (g *Game) Results() (session.Results, bool) {
	return g.battle.Results(), g.battle.ResultsOpen()
}

// ManualOpen reports whether the instructions overlay is shown.
func (g *Game) ManualOpen() bool { return g.manualOpen }

// Username returns the local player's name.
func (g *Game) Username() string { return g.username }

// TickCount returns the number of ticks run.
func (g *Game) TickCount() uint64 { return g.tick }

// Manual is the text of the instructions overlay.
const Manual = `HOW TO PLAY

Hold a balloon to inflate it. Let go to pop it.
Let go of a big balloon and it deflates noisily.
Pops less than 0.3 s apart build a combo.
Golden balloons start a bonus round.

DUEL
One player picks HOST, the other JOIN.
TIMER starts a battle on both devices.
Every pop flashes your opponent's panel.
A finished fart sends a stink cloud their way.

Hold the top-left corner for 2 s to open this menu.`
