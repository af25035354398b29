// Package util provides common utility functions for strike and price math.
package util

import "math"

// RoundToTick rounds x to the nearest tick increment, ties away from zero.
// For example, with tick=0.01, 100.004 becomes 100 and 100.005 becomes
// 100.01. A non-positive tick returns x unchanged.
func RoundToTick(x, tick float64) float64 {
	if tick <= 0 || math.IsNaN(x) || math.IsInf(x, 0) {
		return x
	}
	return math.Round(x/tick) * tick
}
