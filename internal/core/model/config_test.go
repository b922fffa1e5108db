package model

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTimerInputTotal(t *testing.T) {
	assert.Equal(t, time.Hour+2*time.Minute+3*time.Second, TimerInput{Hours: 1, Minutes: 2, Seconds: 3}.Total())
	assert.Equal(t, 90*time.Second, TimerInput{Minutes: 1, Seconds: 30}.Total())
}

func TestTimerInputTotalClampsFields(t *testing.T) {
	huge := TimerInput{Hours: math.MaxInt, Minutes: math.MaxInt, Seconds: math.MaxInt}.Total()
	want := time.Duration(MaxField)*time.Hour + time.Duration(MaxField)*time.Minute + time.Duration(MaxField)*time.Second
	assert.Equal(t, want, huge)
	assert.Positive(t, huge)

	assert.Equal(t, 5*time.Second, TimerInput{Hours: -3, Seconds: 5}.Total())
}
