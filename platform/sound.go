package platform

import (
	"fmt"
	"log/slog"
	"math/rand"
	"os"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/balloonwar/audio"
	"github.com/pthm-cable/balloonwar/game"
)

type stream struct {
	alias rl.Sound
	loop  bool
}

// SoundBank plays effects through the raylib audio device. Each playing
// instance is a sound alias so the same effect can overlap itself.
// Update must be called once per frame to restart loops and reap finished
// instances.
type SoundBank struct {
	logger     *slog.Logger
	rng        *rand.Rand
	maxStreams int

	sounds  []rl.Sound
	streams map[game.StreamHandle]*stream
	next    game.StreamHandle
	paused  bool
}

// NewSoundBank creates a bank. The audio device must already be initialised.
func NewSoundBank(maxStreams int, seed int64, logger *slog.Logger) *SoundBank {
	if maxStreams < 1 {
		maxStreams = 16
	}
	return &SoundBank{
		logger:     logger,
		rng:        rand.New(rand.NewSource(seed)),
		maxStreams: maxStreams,
		streams:    make(map[game.StreamHandle]*stream),
	}
}

// LoadBuiltin synthesizes a named effect and uploads it.
func (b *SoundBank) LoadBuiltin(name string) (game.EffectID, error) {
	pcm, err := audio.Synthesize(name, b.rng)
	if err != nil {
		return game.NoEffect, err
	}
	wave := rl.NewWave(uint32(len(pcm)), audio.SampleRate, 16, 1, audio.Bytes(pcm))
	return b.add(rl.LoadSoundFromWave(wave), name)
}

// LoadFile loads an effect from a WAV, OGG, MP3 or FLAC file.
func (b *SoundBank) LoadFile(path string) (game.EffectID, error) {
	if _, err := os.Stat(path); err != nil {
		return game.NoEffect, fmt.Errorf("opening sound file: %w", err)
	}
	return b.add(rl.LoadSound(path), path)
}

func (b *SoundBank) add(s rl.Sound, name string) (game.EffectID, error) {
	if s.FrameCount == 0 {
		return game.NoEffect, fmt.Errorf("decoding sound %q: no frames", name)
	}
	b.sounds = append(b.sounds, s)
	id := game.EffectID(len(b.sounds) - 1)
	b.logger.Debug("sound_loaded", "name", name, "id", int(id), "frames", s.FrameCount)
	return id, nil
}

// PlayEffect starts an instance of a loaded effect. It returns NoStream
// when the id is unknown or the stream cap is reached.
func (b *SoundBank) PlayEffect(id game.EffectID, volume float32, loop bool) game.StreamHandle {
	if id < 0 || int(id) >= len(b.sounds) {
		return game.NoStream
	}
	if len(b.streams) >= b.maxStreams {
		b.reap()
		if len(b.streams) >= b.maxStreams {
			return game.NoStream
		}
	}

	alias := rl.LoadSoundAlias(b.sounds[id])
	rl.SetSoundVolume(alias, volume)
	rl.PlaySound(alias)

	b.next++
	b.streams[b.next] = &stream{alias: alias, loop: loop}
	return b.next
}

// StopStream stops and releases an instance. Unknown handles are ignored.
func (b *SoundBank) StopStream(h game.StreamHandle) {
	s, ok := b.streams[h]
	if !ok {
		return
	}
	rl.StopSound(s.alias)
	rl.UnloadSoundAlias(s.alias)
	delete(b.streams, h)
}

// Update restarts finished loops and releases finished one-shots.
func (b *SoundBank) Update() {
	if b.paused {
		return
	}
	for _, s := range b.streams {
		if s.loop && !rl.IsSoundPlaying(s.alias) {
			rl.PlaySound(s.alias)
		}
	}
	b.reap()
}

func (b *SoundBank) reap() {
	for h, s := range b.streams {
		if !s.loop && !rl.IsSoundPlaying(s.alias) {
			rl.UnloadSoundAlias(s.alias)
			delete(b.streams, h)
		}
	}
}

// Pause suspends every playing instance, for when the window loses focus.
func (b *SoundBank) Pause() {
	if b.paused {
		return
	}
	b.paused = true
	for _, s := range b.streams {
		rl.PauseSound(s.alias)
	}
}

// Resume continues what Pause suspended.
func (b *SoundBank) Resume() {
	if !b.paused {
		return
	}
	b.paused = false
	for _, s := range b.streams {
		rl.ResumeSound(s.alias)
	}
}

// Close releases every instance and loaded effect.
func (b *SoundBank) Close() {
	for h := range b.streams {
		b.StopStream(h)
	}
	for _, s := range b.sounds {
		rl.UnloadSound(s)
	}
	b.sounds = nil
}
