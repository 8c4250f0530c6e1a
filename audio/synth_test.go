package audio

import (
	"errors"
	"math"
	"math/rand"
	"slices"
	"testing"
)

func TestSynthesizeBuiltins(t *testing.T) {
	tests := []struct {
		name    string
		seconds float64
	}{
		{Pop, 0.12},
		{Inflate, 0.45},
		{Fart, 0.7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pcm, err := Synthesize(tt.name, rand.New(rand.NewSource(1)))
			if err != nil {
				t.Fatalf("Synthesize error: %v", err)
			}
			if want := samplesFor(tt.seconds); len(pcm) != want {
				t.Errorf("expected %d samples, got %d", want, len(pcm))
			}

			var peak int
			for _, s := range pcm {
				if a := int(math.Abs(float64(s))); a > peak {
					peak = a
				}
			}
			// Normalized to 0.8 of full scale
			if peak < 26000 || peak > 26300 {
				t.Errorf("expected peak near 26213, got %d", peak)
			}
		})
	}
}

func TestInflateLoopsSilently(t *testing.T) {
	pcm, err := Synthesize(Inflate, rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatal(err)
	}
	if pcm[0] != 0 {
		t.Errorf("expected silent first sample, got %d", pcm[0])
	}
	if last := pcm[len(pcm)-1]; math.Abs(float64(last)) > 1000 {
		t.Errorf("expected near-silent tail, got %d", last)
	}
}

func TestSynthesizeDeterministic(t *testing.T) {
	a, _ := Synthesize(Fart, rand.New(rand.NewSource(42)))
	b, _ := Synthesize(Fart, rand.New(rand.NewSource(42)))
	if !slices.Equal(a, b) {
		t.Error("expected identical samples for the same seed")
	}
}

func TestSynthesizeUnknown(t *testing.T) {
	_, err := Synthesize("kazoo", rand.New(rand.NewSource(1)))
	if !errors.Is(err, ErrUnknownSound) {
		t.Errorf("expected ErrUnknownSound, got %v", err)
	}
}

func TestBytesLittleEndian(t *testing.T) {
	got := Bytes([]int16{1, -1, 0x1234})
	want := []byte{0x01, 0x00, 0xff, 0xff, 0x34, 0x12}
	if !slices.Equal(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}
