package util

import (
	"math"
	"strconv"
)

// Clamp bounds x to [lo, hi].
func Clamp(x, lo, hi float64) float64 {
	return math.Min(math.Max(x, lo), hi)
}

// RoundHalfUp rounds to the nearest integer, halves toward +Inf.
func RoundHalfUp(x float64) float64 {
	return math.Floor(x + 0.5)
}

// Finite returns x, or 0 when x is NaN or infinite.
func Finite(x float64) float64 {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return 0
	}
	return x
}

// SafeDiv divides a by b and returns 0 when b is zero or the result is not finite.
func SafeDiv(a, b float64) float64 {
	if b == 0 {
		return 0
	}
	return Finite(a / b)
}

// Fixed formats x with the given number of decimals.
func Fixed(x float64, decimals int) string {
	return strconv.FormatFloat(x, 'f', decimals, 64)
}

// Plain formats x with the fewest digits needed, without exponent.
func Plain(x float64) string {
	return strconv.FormatFloat(x, 'f', -1, 64)
}
