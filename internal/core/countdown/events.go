package countdown

import "time"

// State represents the current countdown mode.
type State string

const (
	StateIdle      State = "idle"
	StateRunning   State = "running"
	StatePaused    State = "paused"
	StateCompleted State = "completed"
)

// EventType defines the type of countdown event.
type EventType string

const (
	EventStateChange EventType = "state_change"
	EventProgress    EventType = "progress"
	EventCompleted   EventType = "completed"
)

// Event represents a countdown update for observers.
type Event struct {
	Type      EventType
	State     State
	Remaining time.Duration
	At        time.Time
}
