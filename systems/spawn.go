package systems

import (
	"math/rand"

	"github.com/pthm-cable/balloonwar/config"
	"github.com/pthm-cable/balloonwar/pool"
)

// SpawnPolicy keeps the live balloon count at its target.
type SpawnPolicy struct {
	cfg config.BalloonConfig
	rng *rand.Rand
}

// NewSpawnPolicy creates a spawn policy.
func NewSpawnPolicy(cfg *config.Config, rng *rand.Rand) *SpawnPolicy {
	return &SpawnPolicy{cfg: cfg.Balloon, rng: rng}
}

// Target returns the balloon count to maintain.
func (s *SpawnPolicy) Target(bonus bool) int {
	if bonus {
		return s.cfg.BonusTargetCount
	}
	return s.cfg.TargetCount
}

// Update spawns at most one balloon per tick while the pool is below target.
// Nothing spawns until the viewport has a size.
func (s *SpawnPolicy) Update(p *pool.Pool, v config.Variant, bounds Bounds, bonus bool) (pool.BalloonID, bool) {
	if !bounds.Known() || p.BalloonCount() >= s.Target(bonus) {
		return 0, false
	}

	speed := float32(s.cfg.SpawnSpeed)
	spec := pool.BalloonSpec{
		X:      s.coord(bounds.Width),
		Y:      s.coord(bounds.Height),
		VX:     spread(s.rng, speed),
		VY:     spread(s.rng, speed),
		Radius: float32(v.SpawnRadius),
		Color:  uint8(s.rng.Intn(len(s.cfg.Palette))),
		Golden: s.rng.Float64() < s.cfg.GoldenChance,
	}
	return p.SpawnBalloon(spec), true
}

// coord picks a position inside the spawn margin, or the centre when the
// extent is too small to honour the margin.
func (s *SpawnPolicy) coord(extent float32) float32 {
	m := float32(s.cfg.SpawnMargin)
	if extent <= 2*m {
		return extent / 2
	}
	return m + s.rng.Float32()*(extent-2*m)
}
