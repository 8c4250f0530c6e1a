// Package components defines ECS components for balloons and particles.
package components

// BalloonID identifies a balloon for its whole life. IDs are never reused,
// and a larger ID means the balloon was spawned later (drawn on top).
type BalloonID uint64

// NoPointer marks a balloon that no touch contact is holding.
const NoPointer int32 = -1

// Mode is the mutually exclusive state of a balloon.
type Mode uint8

const (
	ModeIdle      Mode = iota // Free floating, bouncing off the edges
	ModeInflating             // Held by a pointer, growing
	ModeFarting               // Released while big, deflating erratically
	ModeGhost                 // Escaped after over-inflation, penalises taps
)

// String returns the display name for a Mode.
func (m Mode) String() string {
	names := ModeNames()
	if int(m) < len(names) {
		return names[m]
	}
	return "Unknown"
}

// ModeNames returns the display names for all modes.
// The order matches the Mode constants.
func ModeNames() []string {
	return []string{"Idle", "Inflating", "Farting", "Ghost"}
}

// Balloon holds balloon identity and lifecycle state.
type Balloon struct {
	ID        BalloonID
	Mode      Mode
	Pointer   int32 // Pointer inflating this balloon, NoPointer when released
	FartTicks int32 // Ticks spent farting
	Color     uint8 // Palette index
	Golden    bool  // Popping it starts the bonus window
}
