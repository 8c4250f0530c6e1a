// Package input turns raw touch contacts into pointer events, and pointer
// events into game intents.
package input

import (
	"slices"
	"time"
)

// Contact is one touch point as polled from the platform.
type Contact struct {
	ID   int32
	X, Y float32
}

// Phase is the stage of a pointer's life.
type Phase uint8

const (
	PhaseDown Phase = iota
	PhaseMove
	PhaseUp
)

func (p Phase) String() string {
	switch p {
	case PhaseDown:
		return "down"
	case PhaseMove:
		return "move"
	case PhaseUp:
		return "up"
	}
	return "unknown"
}

// PointerEvent is a change in one contact.
type PointerEvent struct {
	Phase   Phase
	Pointer int32
	X, Y    float32
	At      time.Time
}

// Tracker diffs successive contact sets. Pointer ids stay stable while a
// contact is held.
type Tracker struct {
	active map[int32]Contact
	seen   map[int32]bool
	ids    []int32
	events []PointerEvent
}

// NewTracker creates a tracker with no contacts.
func NewTracker() *Tracker {
	return &Tracker{
		active: make(map[int32]Contact),
		seen:   make(map[int32]bool),
	}
}

// Update compares the polled contacts with the previous poll and returns
// Up events first, then Down and Move events, each ordered by pointer id.
// The returned slice is reused by the next call.
func (t *Tracker) Update(contacts []Contact, now time.Time) []PointerEvent {
	t.events = t.events[:0]
	clear(t.seen)
	for _, c := range contacts {
		t.seen[c.ID] = true
	}

	// Lifted contacts
	t.ids = t.ids[:0]
	for id := range t.active {
		if !t.seen[id] {
			t.ids = append(t.ids, id)
		}
	}
	slices.Sort(t.ids)
	for _, id := range t.ids {
		c := t.active[id]
		t.events = append(t.events, PointerEvent{Phase: PhaseUp, Pointer: id, X: c.X, Y: c.Y, At: now})
		delete(t.active, id)
	}

	// New and moved contacts
	sorted := slices.Clone(contacts)
	slices.SortFunc(sorted, func(a, b Contact) int { return int(a.ID) - int(b.ID) })
	for _, c := range sorted {
		prev, held := t.active[c.ID]
		switch {
		case !held:
			t.events = append(t.events, PointerEvent{Phase: PhaseDown, Pointer: c.ID, X: c.X, Y: c.Y, At: now})
		case prev.X != c.X || prev.Y != c.Y:
			t.events = append(t.events, PointerEvent{Phase: PhaseMove, Pointer: c.ID, X: c.X, Y: c.Y, At: now})
		}
		t.active[c.ID] = c
	}

	return t.events
}

// Active returns the number of held contacts.
func (t *Tracker) Active() int {
	return len(t.active)
}

// Reset lifts every contact, returning the Up events.
func (t *Tracker) Reset(now time.Time) []PointerEvent {
	return t.Update(nil, now)
}
