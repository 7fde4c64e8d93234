package models

import "math"

// Round2 rounds a monetary amount to cents. All balance arithmetic goes
// through this so repeated increments stay stable.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
