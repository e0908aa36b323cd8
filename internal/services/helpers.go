package services

import (
	"math"
	"time"
)

// DateOnly truncates t to midnight in its own location.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// RoundMoney rounds to 2 decimal places.
func RoundMoney(v float64) float64 {
	return math.Round(v*100) / 100
}

// diminishing maps a fraction in [0,1] onto a concave curve: early gains
// count more than late ones, and 1.0 still reaches the full weight.
func diminishing(frac float64) float64 {
	if frac < 0 {
		frac = 0
	}
	if frac > 1 {
		frac = 1
	}
	return 2*frac - frac*frac
}
