// Package stopwatch implements the count-up stopwatch with laps.
package stopwatch

import (
	"sync"
	"time"

	"go.uber.org/zap"

	"tempo/internal/core/model"
	"tempo/internal/core/tick"
)

// Resolution is the stopwatch tick period, one hundredth of a second.
const Resolution = 10 * time.Millisecond

// Config contains runtime options for Stopwatch.
type Config struct {
	Ticker tick.Factory
	Logger *zap.Logger
}

// Stopwatch counts elapsed centiseconds while running and records laps.
type Stopwatch struct {
	mu      sync.Mutex
	slot    *tick.Slot
	logger  *zap.Logger
	state   State
	elapsed int64
	laps    []model.Lap
	events  []chan Event
}

// New creates an idle Stopwatch.
func New(options Config) *Stopwatch {
	if options.Logger == nil {
		options.Logger = zap.NewNop()
	}
	return &Stopwatch{
		slot:   tick.NewSlot(Resolution, options.Ticker),
		logger: options.Logger,
		state:  StateIdle,
	}
}

// Subscribe registers a new observer channel.
func (watch *Stopwatch) Subscribe(buffer int) <-chan Event {
	if buffer <= 0 {
		buffer = 1
	}
	ch := make(chan Event, buffer)
	watch.mu.Lock()
	watch.events = append(watch.events, ch)
	watch.mu.Unlock()
	return ch
}

// State returns the current state.
func (watch *Stopwatch) State() State {
	watch.mu.Lock()
	defer watch.mu.Unlock()
	return watch.state
}

// Elapsed returns the elapsed time in hundredths of a second.
func (watch *Stopwatch) Elapsed() int64 {
	watch.mu.Lock()
	defer watch.mu.Unlock()
	return watch.elapsed
}

// Laps returns recorded laps, most recent first.
func (watch *Stopwatch) Laps() []model.Lap {
	watch.mu.Lock()
	defer watch.mu.Unlock()
	return append([]model.Lap(nil), watch.laps...)
}

// Start resumes counting. It is a no-op while running.
func (watch *Stopwatch) Start() bool {
	watch.mu.Lock()
	defer watch.mu.Unlock()
	if watch.state == StateRunning {
		return false
	}
	watch.state = StateRunning
	watch.slot.Arm(watch.tick)
	watch.emitLocked(Event{
		Type:    EventStateChange,
		State:   StateRunning,
		Elapsed: watch.elapsed,
		At:      time.Now(),
	})
	return true
}

// Pause stops counting and keeps the elapsed time.
func (watch *Stopwatch) Pause() {
	watch.mu.Lock()
	defer watch.mu.Unlock()
	watch.pauseLocked()
}

// Lap records the elapsed time. Laps are only taken while running.
func (watch *Stopwatch) Lap() (model.Lap, bool) {
	watch.mu.Lock()
	defer watch.mu.Unlock()
	if watch.state != StateRunning {
		return model.Lap{}, false
	}
	lap := model.Lap{Number: len(watch.laps) + 1, Elapsed: watch.elapsed}
	watch.laps = append([]model.Lap{lap}, watch.laps...)
	watch.emitLocked(Event{
		Type:    EventLap,
		State:   watch.state,
		Elapsed: watch.elapsed,
		Lap:     lap,
		At:      time.Now(),
	})
	return lap, true
}

// Reset pauses the stopwatch, then clears elapsed time and laps.
func (watch *Stopwatch) Reset() {
	watch.mu.Lock()
	defer watch.mu.Unlock()
	watch.pauseLocked()
	watch.elapsed = 0
	watch.laps = nil
	watch.state = StateIdle
	watch.emitLocked(Event{
		Type:  EventStateChange,
		State: StateIdle,
		At:    time.Now(),
	})
}

// Close cancels the tick loop and closes observers.
func (watch *Stopwatch) Close() {
	watch.mu.Lock()
	watch.slot.Cancel()
	if watch.state == StateRunning {
		watch.state = StatePaused
	}
	events := watch.events
	watch.events = nil
	watch.mu.Unlock()

	for _, ch := range events {
		close(ch)
	}
}

func (watch *Stopwatch) pauseLocked() {
	if watch.state != StateRunning {
		return
	}
	watch.slot.Cancel()
	watch.state = StatePaused
	watch.logger.Debug("stopwatch paused", zap.Int64("elapsed_centis", watch.elapsed))
	watch.emitLocked(Event{
		Type:    EventStateChange,
		State:   StatePaused,
		Elapsed: watch.elapsed,
		At:      time.Now(),
	})
}

func (watch *Stopwatch) tick(received tick.Tick) {
	watch.mu.Lock()
	defer watch.mu.Unlock()
	if watch.state != StateRunning || !watch.slot.Owns(received) {
		return
	}
	watch.elapsed++
	watch.emitLocked(Event{
		Type:    EventProgress,
		State:   StateRunning,
		Elapsed: watch.elapsed,
		At:      received.At,
	})
}

func (watch *Stopwatch) emitLocked(event Event) {
	for _, ch := range watch.events {
		select {
		case ch <- event:
		default:
		}
	}
}
