// Package audio synthesizes the builtin sound effects as mono 16-bit PCM.
// Playback lives in the platform layer.
package audio

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
)

// SampleRate of every synthesized effect.
const SampleRate = 22050

// Builtin effect names.
const (
	Pop     = "pop"
	Inflate = "inflate"
	Fart    = "fart"
)

// Builtins lists the effects Synthesize knows.
var Builtins = []string{Pop, Inflate, Fart}

// ErrUnknownSound is returned for a name that is not a builtin.
var ErrUnknownSound = errors.New("unknown builtin sound")

type waveform uint8

const (
	waveSine waveform = iota
	waveSquare
	waveSaw
	waveNoise
)

// buffer is mono float64 samples at unity gain.
type buffer []float64

// sweep generates a waveform whose frequency moves linearly from f0 to f1.
func sweep(w waveform, f0, f1 float64, samples int, rng *rand.Rand) buffer {
	buf := make(buffer, samples)
	phase := 0.0
	for i := range buf {
		switch w {
		case waveSine:
			buf[i] = math.Sin(2 * math.Pi * phase)
		case waveSquare:
			if phase < 0.5 {
				buf[i] = 1
			} else {
				buf[i] = -1
			}
		case waveSaw:
			buf[i] = 2 * (phase - 0.5)
		case waveNoise:
			buf[i] = rng.Float64()*2 - 1
		}

		t := float64(i) / float64(samples)
		phase += (f0 + (f1-f0)*t) / SampleRate
		phase -= math.Floor(phase)
	}
	return buf
}

// envelope applies a linear attack and release in place.
func envelope(buf buffer, attack, release float64) {
	total := len(buf)
	a := int(attack * SampleRate)
	r := int(release * SampleRate)
	releaseStart := total - r
	if releaseStart < a {
		releaseStart = a
	}
	for i := range buf {
		vol := 1.0
		if i < a && a > 0 {
			vol = float64(i) / float64(a)
		} else if i >= releaseStart && r > 0 {
			vol = float64(total-i) / float64(r)
		}
		buf[i] *= vol
	}
}

// decay applies an exponential fade with the given time constant.
func decay(buf buffer, tau float64) {
	for i := range buf {
		buf[i] *= math.Exp(-float64(i) / (tau * SampleRate))
	}
}

// mix adds b scaled into a. b must not be longer than a.
func mix(a, b buffer, scale float64) {
	for i := range b {
		a[i] += b[i] * scale
	}
}

func samplesFor(seconds float64) int {
	return int(seconds * SampleRate)
}

func popSound(rng *rand.Rand) buffer {
	n := samplesFor(0.12)
	buf := sweep(waveNoise, 0, 0, n, rng)
	decay(buf, 0.025)
	thump := sweep(waveSine, 180, 60, n, rng)
	decay(thump, 0.04)
	mix(buf, thump, 0.8)
	return buf
}

// inflateSound is a rubbery rising squeak. Its ends are silent so it loops
// without clicks.
func inflateSound(rng *rand.Rand) buffer {
	n := samplesFor(0.45)
	buf := sweep(waveSaw, 320, 520, n, rng)
	wobble := sweep(waveSine, 14, 14, n, rng)
	for i := range buf {
		buf[i] *= 0.6 + 0.4*wobble[i]
	}
	envelope(buf, 0.03, 0.05)
	return buf
}

func fartSound(rng *rand.Rand) buffer {
	n := samplesFor(0.7)
	buf := sweep(waveSquare, 95, 55, n, rng)
	// Amplitude flutter gives the characteristic rasp
	flutter := sweep(waveSine, 28, 18, n, rng)
	noise := sweep(waveNoise, 0, 0, n, rng)
	for i := range buf {
		buf[i] *= 0.55 + 0.45*flutter[i]
	}
	mix(buf, noise, 0.15)
	envelope(buf, 0.02, 0.2)
	return buf
}

// Synthesize renders a builtin effect. The same rng seed yields the same
// samples.
func Synthesize(name string, rng *rand.Rand) ([]int16, error) {
	var buf buffer
	switch name {
	case Pop:
		buf = popSound(rng)
	case Inflate:
		buf = inflateSound(rng)
	case Fart:
		buf = fartSound(rng)
	default:
		return nil, fmt.Errorf("synthesizing %q: %w", name, ErrUnknownSound)
	}
	return toPCM16(buf, 0.8), nil
}

// toPCM16 normalizes the peak to gain and converts to signed 16-bit.
func toPCM16(buf buffer, gain float64) []int16 {
	peak := 0.0
	for _, v := range buf {
		peak = math.Max(peak, math.Abs(v))
	}
	scale := gain
	if peak > 0 {
		scale = gain / peak
	}
	out := make([]int16, len(buf))
	for i, v := range buf {
		s := v * scale
		s = math.Max(-1, math.Min(1, s))
		out[i] = int16(s * math.MaxInt16)
	}
	return out
}

// Bytes returns the samples in little-endian order, as audio devices take them.
func Bytes(pcm []int16) []byte {
	out := make([]byte, 2*len(pcm))
	for i, s := range pcm {
		out[2*i] = byte(uint16(s))
		out[2*i+1] = byte(uint16(s) >> 8)
	}
	return out
}
