// Package testutil holds fakes shared by package tests.
package testutil

import (
	"sync"
	"time"

	"tempo/internal/core/tick"
)

// ManualClock hands out tickers that only fire when the test says so.
type ManualClock struct {
	mu      sync.Mutex
	now     time.Time
	current *manualTicker
	created int
}

type manualTicker struct {
	period  time.Duration
	ch      chan time.Time
	stopped chan struct{}
	once    sync.Once
}

// NewManualClock creates a clock starting at now.
func NewManualClock(now time.Time) *ManualClock {
	return &ManualClock{now: now}
}

// Factory returns a tick.Factory bound to this clock.
func (clock *ManualClock) Factory() tick.Factory {
	return func(period time.Duration) tick.Ticker {
		ticker := &manualTicker{
			period:  period,
			ch:      make(chan time.Time),
			stopped: make(chan struct{}),
		}
		clock.mu.Lock()
		clock.current = ticker
		clock.created++
		clock.mu.Unlock()
		return ticker
	}
}

// Created returns how many tickers were handed out.
func (clock *ManualClock) Created() int {
	clock.mu.Lock()
	defer clock.mu.Unlock()
	return clock.created
}

// Fire delivers n ticks to the most recent ticker. It returns the number
// actually delivered, which is lower than n if the ticker was stopped.
// Each send blocks until the tick loop has taken the previous tick.
func (clock *ManualClock) Fire(n int) int {
	clock.mu.Lock()
	ticker := clock.current
	clock.mu.Unlock()
	if ticker == nil {
		return 0
	}

	delivered := 0
	for i := 0; i < n; i++ {
		clock.mu.Lock()
		clock.now = clock.now.Add(ticker.period)
		now := clock.now
		clock.mu.Unlock()

		select {
		case ticker.ch <- now:
			delivered++
		case <-ticker.stopped:
			return delivered
		}
	}
	return delivered
}

// Now returns the simulated time.
func (clock *ManualClock) Now() time.Time {
	clock.mu.Lock()
	defer clock.mu.Unlock()
	return clock.now
}

func (ticker *manualTicker) C() <-chan time.Time {
	return ticker.ch
}

func (ticker *manualTicker) Stop() {
	ticker.once.Do(func() {
		close(ticker.stopped)
	})
}
