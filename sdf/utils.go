package sdf

import "math"

var sqrtHalf = math.Sqrt(0.5)

// Clamp limits x to [a, b]. It assumes a <= b.
func Clamp(x, a, b float64) float64 {
	return math.Max(a, math.Min(x, b))
}

// Mix interpolates linearly from x to y as a goes from 0 to 1.
func Mix(x, y, a float64) float64 {
	return x + a*(y-x)
}

// Sign returns -1, 0 or 1 following the sign of x.
func Sign(x float64) float64 {
	switch {
	case x < 0:
		return -1
	case x > 0:
		return 1
	}
	return 0
}
