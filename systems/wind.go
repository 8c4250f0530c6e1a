package systems

import (
	"github.com/ojrac/opensimplex-go"

	"github.com/pthm-cable/balloonwar/config"
)

// Wind is a slowly varying ambient drift sampled from OpenSimplex noise.
type Wind struct {
	noise     opensimplex.Noise
	strength  float64
	frequency float64
}

// NewWind creates a wind field. It returns nil when wind is disabled.
func NewWind(cfg config.WindConfig, seed int64) *Wind {
	if cfg.Strength == 0 {
		return nil
	}
	return &Wind{
		noise:     opensimplex.New(seed),
		strength:  cfg.Strength,
		frequency: cfg.Frequency,
	}
}

// At returns the wind displacement for a tick.
func (w *Wind) At(tick uint64) (float32, float32) {
	if w == nil {
		return 0, 0
	}
	t := float64(tick) * w.frequency
	// Two decorrelated rows of the same field
	dx := w.noise.Eval2(t, 0)
	dy := w.noise.Eval2(t, 97.3)
	return float32(dx * w.strength), float32(dy * w.strength)
}
