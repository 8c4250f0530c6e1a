package game

import (
	"context"
	"errors"
	"time"

	"github.com/pthm-cable/balloonwar/duel"
)

// EffectID names a loaded sound.
type EffectID int

// StreamHandle names one playing instance of a sound.
type StreamHandle int

const (
	// NoEffect is returned when a sound could not be loaded.
	NoEffect EffectID = -1
	// NoStream is returned when nothing started playing.
	NoStream StreamHandle = -1
)

// Audio plays sound effects. Implementations must not block.
type Audio interface {
	PlayEffect(id EffectID, volume float32, loop bool) StreamHandle
	StopStream(h StreamHandle)
	LoadBuiltin(name string) (EffectID, error)
	LoadFile(path string) (EffectID, error)
}

// Haptics drives the vibration motor.
type Haptics interface {
	Vibrate(d time.Duration, intensity uint8)
}

// SoundSlot selects which effect a picked sound replaces.
type SoundSlot uint8

const (
	SlotPop SoundSlot = iota
	SlotFart
)

func (s SoundSlot) String() string {
	if s == SlotFart {
		return "fart"
	}
	return "pop"
}

// ErrUnavailable is returned by platform features the device lacks.
var ErrUnavailable = errors.New("feature unavailable")

// Platform reaches device features outside the game loop.
type Platform interface {
	ToggleCamera(on bool) error
	PinApp() error
	PickSound(slot SoundSlot) (path string, err error)
}

// Duel is the link to the opponent. duel.Dialer implements it.
type Duel interface {
	Host(ctx context.Context, profile duel.Message)
	Join(ctx context.Context, hint string, profile duel.Message)
	Send(m duel.Message) bool
	Connected() bool
	Close()
}

// Silent is an Audio that plays nothing.
type Silent struct{}

func (Silent) PlayEffect(EffectID, float32, bool) StreamHandle { return NoStream }
func (Silent) StopStream(StreamHandle)                         {}
func (Silent) LoadBuiltin(string) (EffectID, error)            { return NoEffect, nil }
func (Silent) LoadFile(string) (EffectID, error)               { return NoEffect, nil }

// NoHaptics is a Haptics that does nothing.
type NoHaptics struct{}

func (NoHaptics) Vibrate(time.Duration, uint8) {}
