package telemetry

import (
	"fmt"
	"log/slog"
	"math"
	"slices"
	"time"

	"gonum.org/v1/gonum/stat"
)

// PopRecord is one row of pops.csv.
type PopRecord struct {
	Tick    uint64  `csv:"tick"`
	AtMS    int64   `csv:"at_ms"`
	Cause   string  `csv:"cause"`
	Radius  float32 `csv:"radius"`
	Combo   int     `csv:"combo"`
	Streak  int     `csv:"streak"`
	BPM     int     `csv:"bpm"`
	Golden  bool    `csv:"golden"`
	Bonus   bool    `csv:"bonus"`
	Variant string  `csv:"variant"`
}

// LogValue implements slog.LogValuer.
func (r PopRecord) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Uint64("tick", r.Tick),
		slog.String("cause", r.Cause),
		slog.Int("combo", r.Combo),
		slog.Int("streak", r.Streak),
		slog.Int("bpm", r.BPM),
		slog.Bool("golden", r.Golden),
	)
}

// BattleRecord is one row of battles.csv, written when a round ends.
type BattleRecord struct {
	EndedAt    string  `csv:"ended_at"`
	Seconds    int     `csv:"seconds"`
	Opponent   string  `csv:"opponent"`
	Streak     int     `csv:"streak"`
	BPM        int     `csv:"bpm"`
	MaxStreak  int     `csv:"max_streak"`
	Intervals  int     `csv:"intervals"`
	MeanMS     float64 `csv:"mean_interval_ms"`
	StdDevMS   float64 `csv:"stddev_interval_ms"`
	MedianMS   float64 `csv:"median_interval_ms"`
	P90MS      float64 `csv:"p90_interval_ms"`
	Steadiness float64 `csv:"steadiness"`
}

// RhythmStats summarizes the gaps between consecutive pops.
type RhythmStats struct {
	Intervals  int
	MeanMS     float64
	StdDevMS   float64
	MedianMS   float64
	P90MS      float64
	Steadiness float64 // 1 - coefficient of variation, clamped to [0, 1]
}

// Known reports whether there were enough pops to say anything.
func (s RhythmStats) Known() bool { return s.Intervals >= 2 }

// String returns the results popup line, or "" when unknown.
func (s RhythmStats) String() string {
	if !s.Known() {
		return ""
	}
	return fmt.Sprintf("Rhythm: %.0f ms ±%.0f (%d%% steady)", s.MedianMS, s.StdDevMS, int(math.Round(s.Steadiness*100)))
}

// Rhythm records pop timestamps and reports interval statistics over the
// most recent window of intervals.
type Rhythm struct {
	window    int
	intervals []float64
	last      time.Time
	sorted    []float64
}

// NewRhythm creates a tracker keeping at most window intervals.
func NewRhythm(window int) *Rhythm {
	if window < 2 {
		window = 64
	}
	return &Rhythm{window: window, intervals: make([]float64, 0, window)}
}

// Add records a pop at t.
func (r *Rhythm) Add(t time.Time) {
	if !r.last.IsZero() {
		gap := float64(t.Sub(r.last)) / float64(time.Millisecond)
		if gap >= 0 {
			if len(r.intervals) == r.window {
				r.intervals = append(r.intervals[:0], r.intervals[1:]...)
			}
			r.intervals = append(r.intervals, gap)
		}
	}
	r.last = t
}

// Reset forgets all pops.
func (r *Rhythm) Reset() {
	r.intervals = r.intervals[:0]
	r.last = time.Time{}
}

// Len returns the number of recorded intervals.
func (r *Rhythm) Len() int { return len(r.intervals) }

// Stats computes the summary. Fewer than two intervals yields a zero value
// with only Intervals set.
func (r *Rhythm) Stats() RhythmStats {
	s := RhythmStats{Intervals: len(r.intervals)}
	if !s.Known() {
		return s
	}

	s.MeanMS, s.StdDevMS = stat.MeanStdDev(r.intervals, nil)

	r.sorted = append(r.sorted[:0], r.intervals...)
	slices.Sort(r.sorted)
	s.MedianMS = stat.Quantile(0.5, stat.Empirical, r.sorted, nil)
	s.P90MS = stat.Quantile(0.9, stat.Empirical, r.sorted, nil)

	if s.MeanMS > 0 {
		s.Steadiness = clamp01(1 - s.StdDevMS/s.MeanMS)
	}
	return s
}

// Record builds a battles.csv row from the round outcome and current rhythm.
func (r *Rhythm) Record(ended time.Time, seconds int, opponent string, streak, bpm, maxStreak int) BattleRecord {
	s := r.Stats()
	return BattleRecord{
		EndedAt:    ended.UTC().Format(time.RFC3339),
		Seconds:    seconds,
		Opponent:   opponent,
		Streak:     streak,
		BPM:        bpm,
		MaxStreak:  maxStreak,
		Intervals:  s.Intervals,
		MeanMS:     s.MeanMS,
		StdDevMS:   s.StdDevMS,
		MedianMS:   s.MedianMS,
		P90MS:      s.P90MS,
		Steadiness: s.Steadiness,
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
