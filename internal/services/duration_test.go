package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMinutesBetween(t *testing.T) {
	start := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	assert.Equal(t, 0, minutesBetween(start, start))
	assert.Equal(t, 25, minutesBetween(start, start.Add(25*time.Minute)))

	// 29.5 seconds rounds down, 30 seconds rounds up
	assert.Equal(t, 0, minutesBetween(start, start.Add(29*time.Second)))
	assert.Equal(t, 1, minutesBetween(start, start.Add(30*time.Second)))
	assert.Equal(t, 5, minutesBetween(start, start.Add(5*time.Minute+20*time.Second)))
	assert.Equal(t, 6, minutesBetween(start, start.Add(5*time.Minute+40*time.Second)))
}

func TestRound2(t *testing.T) {
	assert.Equal(t, 1.5, round2(1.5))
	assert.Equal(t, 0.67, round2(2.0/3.0))
	assert.Equal(t, 10.33, round2(31.0/3.0))
	assert.Equal(t, float64(0), round2(0))
	assert.Equal(t, 2.25, round2(2.25))
}
