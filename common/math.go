package common

import "math"

const (
	TileSize   = 32
	BaseWidth  = 1280
	BaseHeight = 720

	// FixedDelta is the simulation step in seconds (ebiten's default 60 TPS).
	FixedDelta = 1.0 / 60.0
)

func Lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

// Sign returns -1, 0 or 1. NaN maps to 0.
func Sign(v float64) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}

func Clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// Finite reports whether v is neither NaN nor infinite.
func Finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
