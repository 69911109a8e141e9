// Package mathutil provides common mathematical utility functions.
package mathutil

import (
	"math"

	"github.com/iwvelando/stepup-sip/pkg/constants"
)

// RoundUnit rounds a value to the nearest whole currency unit. Halves round
// toward positive infinity, so 2.5 becomes 3 and -2.5 becomes -2. Used at
// reporting boundaries only.
func RoundUnit(val float64) float64 {
	rounded := math.Round(val)
	if rounded-val == -0.5 {
		return rounded + 1
	}
	return rounded
}

// IsFinite reports whether val is neither NaN nor an infinity.
func IsFinite(val float64) bool {
	return !math.IsNaN(val) && !math.IsInf(val, 0)
}

// Clamp limits val to the closed interval [lo, hi].
func Clamp(val, lo, hi float64) float64 {
	return math.Min(math.Max(val, lo), hi)
}

// CalculatePercentage calculates what percentage value is of total
func CalculatePercentage(value, total float64) float64 {
	if total == 0 {
		return 0
	}
	return (value / total) * constants.PercentageMultiplier
}

// ApplyPercentage applies a percentage to a value
func ApplyPercentage(value, percentage float64) float64 {
	return value * percentage / constants.PercentageMultiplier
}
