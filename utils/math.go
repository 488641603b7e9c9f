// Package utils contains shared scalar math helpers.
package utils

import "math"

// DegToRad converts degrees to radians.
func DegToRad(degrees float64) float64 {
	return degrees * math.Pi / 180
}

// RadToDeg converts radians to degrees.
func RadToDeg(radians float64) float64 {
	return radians * 180 / math.Pi
}

// Float64AlmostEqual compares two float64s and returns whether their
// difference is within the given epsilon.
func Float64AlmostEqual(v, other, epsilon float64) bool {
	return math.Abs(v-other) <= epsilon
}

// Math.pow( x, 2 ) is slow, this is faster
func Square(n float64) float64 {
	return n * n
}
