package systems

import (
	"math"
	"math/rand"
)

// spread returns a uniform value in [-s, s).
func spread(rng *rand.Rand, s float32) float32 {
	return rng.Float32()*2*s - s
}

// ringPoint returns the point at distance r from (x, y) along angle a (radians).
func ringPoint(x, y, r float32, a float64) (float32, float32) {
	return x + r*float32(math.Cos(a)), y + r*float32(math.Sin(a))
}

// clampFloat clamps a float32 value between min and max.
func clampFloat(v, minVal, maxVal float32) float32 {
	if v < minVal {
		return minVal
	}
	if v > maxVal {
		return maxVal
	}
	return v
}
