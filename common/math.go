package common

import "math"

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Sign returns -1, 0 or 1.
func Sign(v int) int {
	switch {
	case v < 0:
		return -1
	case v > 0:
		return 1
	}
	return 0
}

// SignF is Sign for floats. Values within eps of zero count as zero.
func SignF(v, eps float64) int {
	if math.Abs(v) <= eps {
		return 0
	}
	if v < 0 {
		return -1
	}
	return 1
}
