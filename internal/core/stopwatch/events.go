package stopwatch

import (
	"time"

	"tempo/internal/core/model"
)

// State represents the current stopwatch mode.
type State string

const (
	StateIdle    State = "idle"
	StateRunning State = "running"
	StatePaused  State = "paused"
)

// EventType defines the type of stopwatch event.
type EventType string

const (
	EventStateChange EventType = "state_change"
	EventProgress    EventType = "progress"
	EventLap         EventType = "lap"
)

// Event represents a stopwatch update for observers.
// Elapsed is in hundredths of a second.
type Event struct {
	Type    EventType
	State   State
	Elapsed int64
	Lap     model.Lap
	At      time.Time
}
