// Package countdown implements the timer panel state machine.
package countdown

import (
	"errors"
	"strconv"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"tempo/internal/core/model"
	"tempo/internal/core/tick"
)

// Alarm is fired once when a countdown reaches zero.
type Alarm interface {
	Fire()
}

// Config contains runtime options for Timer.
type Config struct {
	TickInterval time.Duration
	Ticker       tick.Factory
	Logger       *zap.Logger
}

// Timer is a countdown state machine: Idle -> Running -> (Paused | Completed).
type Timer struct {
	mu        sync.Mutex
	slot      *tick.Slot
	logger    *zap.Logger
	state     State
	input     model.TimerInput
	remaining time.Duration
	alarm     Alarm
	events    []chan Event
}

// New creates an idle Timer.
func New(options Config) *Timer {
	if options.TickInterval <= 0 {
		options.TickInterval = time.Second
	}
	if options.Logger == nil {
		options.Logger = zap.NewNop()
	}
	return &Timer{
		slot:   tick.NewSlot(options.TickInterval, options.Ticker),
		logger: options.Logger,
		state:  StateIdle,
	}
}

// SetAlarm injects the completion alarm.
func (timer *Timer) SetAlarm(alarm Alarm) {
	timer.mu.Lock()
	defer timer.mu.Unlock()
	timer.alarm = alarm
}

// Subscribe registers a new observer channel.
func (timer *Timer) Subscribe(buffer int) <-chan Event {
	if buffer <= 0 {
		buffer = 1
	}
	ch := make(chan Event, buffer)
	timer.mu.Lock()
	timer.events = append(timer.events, ch)
	timer.mu.Unlock()
	return ch
}

// SetInput replaces the hour/minute/second fields.
func (timer *Timer) SetInput(input model.TimerInput) {
	timer.mu.Lock()
	defer timer.mu.Unlock()
	timer.input = input
}

// SetFields parses raw field text. Anything that is not a non-negative
// integer counts as zero.
func (timer *Timer) SetFields(hours, minutes, seconds string) {
	timer.SetInput(model.TimerInput{
		Hours:   ParseField(hours),
		Minutes: ParseField(minutes),
		Seconds: ParseField(seconds),
	})
}

// Input returns the current fields.
func (timer *Timer) Input() model.TimerInput {
	timer.mu.Lock()
	defer timer.mu.Unlock()
	return timer.input
}

// State returns the current state.
func (timer *Timer) State() State {
	timer.mu.Lock()
	defer timer.mu.Unlock()
	return timer.state
}

// Remaining returns the time left on the countdown.
func (timer *Timer) Remaining() time.Duration {
	timer.mu.Lock()
	defer timer.mu.Unlock()
	return timer.remaining
}

// Start begins or resumes the countdown. The fields are only read when no
// time remains. It reports whether the timer is now running because of this call.
func (timer *Timer) Start() bool {
	timer.mu.Lock()
	if timer.state == StateRunning || timer.state == StateCompleted {
		timer.mu.Unlock()
		return false
	}
	if timer.remaining == 0 {
		timer.remaining = timer.input.Total()
	}
	if timer.remaining <= 0 {
		timer.remaining = 0
		timer.mu.Unlock()
		return false
	}
	timer.state = StateRunning
	timer.slot.Arm(timer.tick)
	timer.logger.Debug("countdown started", zap.Duration("remaining", timer.remaining))
	timer.emitLocked(Event{
		Type:      EventStateChange,
		State:     StateRunning,
		Remaining: timer.remaining,
		At:        time.Now(),
	})
	timer.mu.Unlock()
	return true
}

// Pause freezes a running countdown.
func (timer *Timer) Pause() {
	timer.mu.Lock()
	defer timer.mu.Unlock()
	if timer.state != StateRunning {
		return
	}
	timer.slot.Cancel()
	timer.state = StatePaused
	timer.emitLocked(Event{
		Type:      EventStateChange,
		State:     StatePaused,
		Remaining: timer.remaining,
		At:        time.Now(),
	})
}

// Reset stops the countdown, clears the remaining time and the fields.
func (timer *Timer) Reset() {
	timer.mu.Lock()
	defer timer.mu.Unlock()
	timer.slot.Cancel()
	timer.state = StateIdle
	timer.remaining = 0
	timer.input = model.TimerInput{}
	timer.emitLocked(Event{
		Type:  EventStateChange,
		State: StateIdle,
		At:    time.Now(),
	})
}

// Close cancels the tick loop and closes observers.
func (timer *Timer) Close() {
	timer.mu.Lock()
	timer.slot.Cancel()
	if timer.state == StateRunning {
		timer.state = StatePaused
	}
	events := timer.events
	timer.events = nil
	timer.mu.Unlock()

	for _, ch := range events {
		close(ch)
	}
}

func (timer *Timer) tick(received tick.Tick) {
	timer.mu.Lock()
	if timer.state != StateRunning || !timer.slot.Owns(received) {
		timer.mu.Unlock()
		return
	}

	timer.remaining -= timer.slot.Period()
	if timer.remaining > 0 {
		timer.emitLocked(Event{
			Type:      EventProgress,
			State:     StateRunning,
			Remaining: timer.remaining,
			At:        received.At,
		})
		timer.mu.Unlock()
		return
	}

	timer.remaining = 0
	timer.state = StateCompleted
	timer.slot.Cancel()
	alarm := timer.alarm
	timer.logger.Info("countdown completed")
	timer.emitLocked(Event{
		Type:  EventStateChange,
		State: StateCompleted,
		At:    received.At,
	})
	timer.emitLocked(Event{
		Type:  EventCompleted,
		State: StateCompleted,
		At:    received.At,
	})
	timer.mu.Unlock()

	if alarm != nil {
		alarm.Fire()
	}
}

func (timer *Timer) emitLocked(event Event) {
	for _, ch := range timer.events {
		select {
		case ch <- event:
		default:
		}
	}
}

// ParseField converts a timer field to an integer in [0, model.MaxField],
// defaulting to zero.
func ParseField(value string) int {
	parsed, err := strconv.Atoi(strings.TrimSpace(value))
	switch {
	case errors.Is(err, strconv.ErrRange) && parsed > 0:
		return model.MaxField
	case err != nil || parsed < 0:
		return 0
	case parsed > model.MaxField:
		return model.MaxField
	}
	return parsed
}
