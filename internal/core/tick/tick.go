// Package tick provides the single-slot periodic callback used by the timer
// and the stopwatch.
package tick

import (
	"sync"
	"time"
)

// Ticker delivers periodic ticks until stopped.
type Ticker interface {
	C() <-chan time.Time
	Stop()
}

// Factory creates a ticker for the given period.
type Factory func(period time.Duration) Ticker

// Tick is a single delivery from an armed slot.
type Tick struct {
	Epoch uint64
	At    time.Time
}

type realTicker struct {
	ticker *time.Ticker
}

// Real is the Factory backed by time.Ticker.
func Real(period time.Duration) Ticker {
	return &realTicker{ticker: time.NewTicker(period)}
}

func (ticker *realTicker) C() <-chan time.Time {
	return ticker.ticker.C
}

func (ticker *realTicker) Stop() {
	ticker.ticker.Stop()
}

// Slot owns at most one running tick loop. A callback can ask Owns whether
// the tick it received still belongs to the armed loop, which filters ticks
// that raced with Cancel.
type Slot struct {
	mu      sync.Mutex
	period  time.Duration
	factory Factory
	stopCh  chan struct{}
	epoch   uint64
}

// NewSlot creates an unarmed slot. A nil factory selects Real.
func NewSlot(period time.Duration, factory Factory) *Slot {
	if period <= 0 {
		period = time.Second
	}
	if factory == nil {
		factory = Real
	}
	return &Slot{period: period, factory: factory}
}

// Period returns the tick period.
func (slot *Slot) Period() time.Duration {
	return slot.period
}

// Arm starts a tick loop calling fn on every tick.
// It reports false and does nothing when the slot is already armed.
func (slot *Slot) Arm(fn func(Tick)) bool {
	slot.mu.Lock()
	defer slot.mu.Unlock()
	if slot.stopCh != nil {
		return false
	}
	slot.epoch++
	stopCh := make(chan struct{})
	slot.stopCh = stopCh
	go slot.run(slot.factory(slot.period), stopCh, slot.epoch, fn)
	return true
}

// Cancel stops the armed loop, if any. It is safe to call from inside fn.
func (slot *Slot) Cancel() {
	slot.mu.Lock()
	defer slot.mu.Unlock()
	if slot.stopCh == nil {
		return
	}
	close(slot.stopCh)
	slot.stopCh = nil
}

// Owns reports whether tick was produced by the currently armed loop.
func (slot *Slot) Owns(tick Tick) bool {
	slot.mu.Lock()
	defer slot.mu.Unlock()
	return slot.stopCh != nil && slot.epoch == tick.Epoch
}

func (slot *Slot) run(ticker Ticker, stopCh chan struct{}, epoch uint64, fn func(Tick)) {
	defer ticker.Stop()
	for {
		select {
		case <-stopCh:
			return
		case at := <-ticker.C():
			select {
			case <-stopCh:
				return
			default:
			}
			fn(Tick{Epoch: epoch, At: at})
		}
	}
}
