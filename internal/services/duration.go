package services

import (
	"math"
	"time"
)

// minutesBetween returns the elapsed whole minutes between two instants,
// using arithmetic rounding.
func minutesBetween(start, end time.Time) int {
	return int(math.Round(end.Sub(start).Minutes()))
}

// round2 rounds to two decimal places, applied only at response boundaries
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
