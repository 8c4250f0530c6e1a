package session

import (
	"fmt"
	"time"
)

// Settings are the runtime toggles chosen from the menu.
type Settings struct {
	Pro    bool // Smaller, faster balloons with a lower pop limit
	Camera bool // Camera overlay behind the playfield
	Pinned bool // App pinned by the child lock
}

// Results is the summary shown when a battle ends.
type Results struct {
	Streak int
	BPM    int
	Rhythm string // Optional extra line, empty when unknown
}

// Summary returns the results line.
func (r Results) Summary() string {
	return fmt.Sprintf("Streak: %d | BPM: %d", r.Streak, r.BPM)
}

// Battle is the duel countdown.
type Battle struct {
	end         time.Time
	length      time.Duration
	active      bool
	resultsOpen bool
	results     Results
}

// Start begins a battle ending d after now. A running battle is restarted.
func (b *Battle) Start(now time.Time, d time.Duration) {
	b.end = now.Add(d)
	b.length = d
	b.active = true
}

// Active reports whether the countdown is running.
func (b *Battle) Active() bool { return b.active }

// Length returns the duration the current or last battle was started with.
func (b *Battle) Length() time.Duration { return b.length }

// Remaining returns the time left, never negative.
func (b *Battle) Remaining(now time.Time) time.Duration {
	if !b.active {
		return 0
	}
	if r := b.end.Sub(now); r > 0 {
		return r
	}
	return 0
}

// RemainingSeconds returns whole seconds left, rounded down.
func (b *Battle) RemainingSeconds(now time.Time) int {
	return int(b.Remaining(now) / time.Second)
}

// Tick reports true exactly once, on the first call after the countdown ends.
func (b *Battle) Tick(now time.Time) bool {
	if !b.active || now.Before(b.end) {
		return false
	}
	b.active = false
	return true
}

// ShowResults opens the results popup.
func (b *Battle) ShowResults(r Results) {
	b.results = r
	b.resultsOpen = true
}

// ResultsOpen reports whether the results popup is shown.
func (b *Battle) ResultsOpen() bool { return b.resultsOpen }

// Results returns the last battle's results.
func (b *Battle) Results() Results { return b.results }

// Dismiss closes the results popup.
func (b *Battle) Dismiss() {
	b.resultsOpen = false
}

// Opponent mirrors what the peer told us about themselves.
type Opponent struct {
	Name       string
	Best       string
	FlashTicks int
}

// NewOpponent returns the placeholder shown before any PROFILE arrives.
func NewOpponent() Opponent {
	return Opponent{Name: "Unknown", Best: "0"}
}

// Set records the peer's profile.
func (o *Opponent) Set(name, best string) {
	o.Name = name
	o.Best = best
}

// Flash lights the opponent panel for n ticks.
func (o *Opponent) Flash(n int) {
	o.FlashTicks = n
}

// Tick counts the flash down.
func (o *Opponent) Tick() {
	if o.FlashTicks > 0 {
		o.FlashTicks--
	}
}
