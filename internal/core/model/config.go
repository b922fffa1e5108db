package model

import "time"

// AlarmConfig defines the tone played when a countdown completes.
type AlarmConfig struct {
	Enabled   bool
	Frequency float64
	Volume    float64
}

// TimerInput holds the raw hour/minute/second fields of the countdown.
type TimerInput struct {
	Hours   int
	Minutes int
	Seconds int
}

// MaxField is the largest value a single timer field holds. Larger
// values are clamped so Total cannot overflow.
const MaxField = 999999

// Total returns the input as a whole-second duration. Each field is
// clamped to [0, MaxField] first.
func (input TimerInput) Total() time.Duration {
	seconds := clampField(input.Hours)*3600 +
		clampField(input.Minutes)*60 +
		clampField(input.Seconds)
	return time.Duration(seconds) * time.Second
}

func clampField(value int) int64 {
	switch {
	case value < 0:
		return 0
	case value > MaxField:
		return MaxField
	}
	return int64(value)
}

// Backend names a durable slot implementation.
type Backend string

const (
	BackendFile   Backend = "file"
	BackendSQLite Backend = "sqlite"
)

// Valid reports whether backend is a known implementation.
func (backend Backend) Valid() bool {
	return backend == BackendFile || backend == BackendSQLite
}
