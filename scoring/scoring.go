// Package scoring tracks combos, streaks, pops per minute and the golden bonus.
package scoring

import (
	"time"

	"github.com/pthm-cable/balloonwar/config"
)

// PopResult describes what a single pop changed.
type PopResult struct {
	Combo        int
	Label        string  // Celebration text, empty when none
	Shake        float32 // Screen shake to apply, 0 for none
	Rainbow      bool    // Debris should cycle hue
	Streak       int
	NewMax       bool // MaxStreak grew and must be persisted
	BPM          int
	BonusStarted bool
}

// Engine is the combo and scoring state machine. It is not safe for
// concurrent use; the game loop owns it.
type Engine struct {
	cfg     config.ScoringConfig
	window  time.Duration
	display time.Duration
	bpmSpan time.Duration
	bonus   time.Duration

	combo   int
	lastPop time.Time

	label   string
	labelAt time.Time

	streak    int
	maxStreak int
	totalPops int

	pops       []time.Time // Ascending, trimmed to the BPM window
	bonusUntil time.Time
}

// NewEngine creates an engine seeded with the persisted best streak.
func NewEngine(cfg *config.Config, maxStreak, totalPops int) *Engine {
	return &Engine{
		cfg:       cfg.Scoring,
		window:    cfg.Derived.ComboWindow,
		display:   cfg.Derived.ComboDisplay,
		bpmSpan:   cfg.Derived.BPMWindow,
		bonus:     cfg.Derived.BonusDuration,
		maxStreak: maxStreak,
		totalPops: totalPops,
		pops:      make([]time.Time, 0, 64),
	}
}

// Pop registers a popped balloon at now.
func (e *Engine) Pop(now time.Time, golden bool) PopResult {
	if !e.lastPop.IsZero() && now.Sub(e.lastPop) < e.window {
		e.combo++
	} else {
		e.combo = 1
	}
	e.lastPop = now

	res := PopResult{Combo: e.combo, Rainbow: e.combo >= 3}
	if e.combo >= 2 {
		res.Shake = float32(e.combo) * float32(e.cfg.ShakePerCombo)
		res.Label = e.tierLabel(e.combo)
	}
	if golden {
		e.bonusUntil = now.Add(e.bonus)
		res.BonusStarted = true
		res.Label = e.cfg.Labels.Golden
	}
	if res.Label != "" {
		e.label = res.Label
		e.labelAt = now
	}

	e.streak++
	e.totalPops++
	if e.streak > e.maxStreak {
		e.maxStreak = e.streak
		res.NewMax = true
	}
	res.Streak = e.streak

	e.pops = append(e.pops, now)
	e.evict(now)
	res.BPM = len(e.pops)

	return res
}

func (e *Engine) tierLabel(combo int) string {
	switch combo {
	case 2:
		return e.cfg.Labels.Double
	case 3:
		return e.cfg.Labels.Triple
	default:
		return e.cfg.Labels.Mega
	}
}

// evict drops pop timestamps older than the BPM window.
func (e *Engine) evict(now time.Time) {
	cutoff := now.Add(-e.bpmSpan)
	n := 0
	for n < len(e.pops) && e.pops[n].Before(cutoff) {
		n++
	}
	if n > 0 {
		e.pops = append(e.pops[:0], e.pops[n:]...)
	}
}

// Miss registers a tap that hit nothing. It breaks the combo and, when
// resetStreak is set, the streak.
func (e *Engine) Miss(resetStreak bool) {
	e.combo = 0
	e.lastPop = time.Time{}
	if resetStreak {
		e.streak = 0
	}
}

// ResetStreak zeroes the current streak. The best streak is kept.
func (e *Engine) ResetStreak() {
	e.streak = 0
}

// BonusActive reports whether the golden bonus window is open.
func (e *Engine) BonusActive(now time.Time) bool {
	return now.Before(e.bonusUntil)
}

// ComboText returns the celebration label while it is on screen.
func (e *Engine) ComboText(now time.Time) (string, bool) {
	if e.label == "" || now.Sub(e.labelAt) >= e.display {
		return "", false
	}
	return e.label, true
}

// Streak returns the current streak.
func (e *Engine) Streak() int { return e.streak }

// MaxStreak returns the best streak ever reached.
func (e *Engine) MaxStreak() int { return e.maxStreak }

// TotalPops returns the lifetime pop count.
func (e *Engine) TotalPops() int { return e.totalPops }

// Combo returns the current combo count.
func (e *Engine) Combo() int { return e.combo }

// BPM returns the number of pops in the trailing window as of the last pop.
func (e *Engine) BPM() int { return len(e.pops) }
