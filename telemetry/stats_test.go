package telemetry

import (
	"math"
	"strings"
	"testing"
	"time"
)

var t0 = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func popsAt(r *Rhythm, ms ...int) {
	for _, m := range ms {
		r.Add(t0.Add(time.Duration(m) * time.Millisecond))
	}
}

func TestRhythmUnknownWithFewPops(t *testing.T) {
	r := NewRhythm(8)
	popsAt(r, 0, 400)

	s := r.Stats()
	if s.Known() {
		t.Errorf("expected unknown rhythm with one interval, got %+v", s)
	}
	if s.String() != "" {
		t.Errorf("expected empty line, got %q", s.String())
	}
}

func TestRhythmSteadyTapping(t *testing.T) {
	r := NewRhythm(8)
	popsAt(r, 0, 500, 1000, 1500, 2000)

	s := r.Stats()
	if s.Intervals != 4 {
		t.Fatalf("expected 4 intervals, got %d", s.Intervals)
	}
	if math.Abs(s.MeanMS-500) > 1e-9 || s.StdDevMS > 1e-9 {
		t.Errorf("expected 500ms with no spread, got mean %v std %v", s.MeanMS, s.StdDevMS)
	}
	if s.MedianMS != 500 {
		t.Errorf("expected median 500, got %v", s.MedianMS)
	}
	if s.Steadiness != 1 {
		t.Errorf("expected steadiness 1, got %v", s.Steadiness)
	}
	if !strings.HasPrefix(s.String(), "Rhythm: 500 ms") {
		t.Errorf("unexpected line %q", s.String())
	}
}

func TestRhythmMedianAndSpread(t *testing.T) {
	r := NewRhythm(8)
	// Intervals 100, 300, 200
	popsAt(r, 0, 100, 400, 600)

	s := r.Stats()
	if s.MedianMS != 200 {
		t.Errorf("expected median 200, got %v", s.MedianMS)
	}
	if math.Abs(s.MeanMS-200) > 1e-9 {
		t.Errorf("expected mean 200, got %v", s.MeanMS)
	}
	// Sample standard deviation of {100, 200, 300}
	if math.Abs(s.StdDevMS-100) > 1e-9 {
		t.Errorf("expected stddev 100, got %v", s.StdDevMS)
	}
	if s.P90MS != 300 {
		t.Errorf("expected p90 300, got %v", s.P90MS)
	}
	if math.Abs(s.Steadiness-0.5) > 1e-9 {
		t.Errorf("expected steadiness 0.5, got %v", s.Steadiness)
	}
}

func TestRhythmWindowDropsOldest(t *testing.T) {
	r := NewRhythm(3)
	popsAt(r, 0, 5000, 5100, 5200, 5300)

	if r.Len() != 3 {
		t.Fatalf("expected 3 intervals kept, got %d", r.Len())
	}
	if s := r.Stats(); s.MeanMS != 100 {
		t.Errorf("expected the 5000ms gap to be evicted, got mean %v", s.MeanMS)
	}
}

func TestRhythmReset(t *testing.T) {
	r := NewRhythm(8)
	popsAt(r, 0, 100, 200)
	r.Reset()
	popsAt(r, 10000)
	if r.Len() != 0 {
		t.Errorf("expected no interval across a reset, got %d", r.Len())
	}
}

func TestRhythmRecord(t *testing.T) {
	r := NewRhythm(8)
	popsAt(r, 0, 250, 500, 750)

	rec := r.Record(t0.Add(time.Minute), 60, "Bob", 12, 40, 30)
	if rec.EndedAt != "2024-06-01T12:01:00Z" {
		t.Errorf("unexpected timestamp %q", rec.EndedAt)
	}
	if rec.Opponent != "Bob" || rec.Streak != 12 || rec.BPM != 40 || rec.MaxStreak != 30 || rec.Seconds != 60 {
		t.Errorf("unexpected outcome fields %+v", rec)
	}
	if rec.Intervals != 3 || rec.MedianMS != 250 {
		t.Errorf("unexpected rhythm fields %+v", rec)
	}
}
