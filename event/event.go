// Package event carries notifications from background goroutines to the
// game loop.
package event

import "time"

// Kind identifies an event.
type Kind uint8

const (
	KindNone Kind = iota
	// KindLinkUp: the duel handshake finished. Role is "host" or "join".
	KindLinkUp
	// KindLinkDown: the handshake or link failed. Err holds the cause.
	KindLinkDown
	// KindProfile: the opponent introduced themselves.
	KindProfile
	// KindTimer: the opponent started a battle of Seconds.
	KindTimer
	// KindPop: the opponent popped a balloon.
	KindPop
	// KindStink: the opponent completed a fart.
	KindStink
	// KindStinkTriple: the opponent completed a fart during their bonus.
	KindStinkTriple
)

var kindNames = [...]string{
	"none", "link_up", "link_down", "profile", "timer", "pop", "stink", "stink_triple",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// Event is a value posted to the Queue. Only the fields relevant to Kind are set.
type Event struct {
	Kind Kind
	At   time.Time // When the event was received

	Role    string
	Name    string
	Best    string
	Seconds int
	Err     error
}
