package blend

import (
	"math"

	"github.com/gogpu/composite/internal/pixel"
)

// RoundToUnity clamps v to [0,1] and snaps values within Epsilon of 1 to
// exactly 1, so fully opaque composites never divide by 0.9999….
func RoundToUnity(v float64) float64 {
	switch {
	case v <= 0:
		return 0
	case v >= 1-pixel.Epsilon:
		return 1
	default:
		return v
	}
}

// Reciprocal returns 1/x, treating a denominator within Epsilon of zero
// as 1.
func Reciprocal(x float64) float64 {
	if math.Abs(x) <= pixel.Epsilon {
		return 1
	}
	return 1 / x
}

// nearZero reports whether |x| is below Epsilon.
func nearZero(x float64) bool {
	return math.Abs(x) < pixel.Epsilon
}

// divide returns n/d, or n when d is within Epsilon of zero.
func divide(n, d float64) float64 {
	return n * Reciprocal(d)
}
