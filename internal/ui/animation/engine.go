// Package animation runs small cancellable UI animations off the UI goroutine.
package animation

import (
	"context"
	"sync"
	"time"
)

// Config contains blink timing values.
type Config struct {
	On  time.Duration
	Off time.Duration
}

// DefaultConfig returns the blink used by the completion notice.
func DefaultConfig() Config {
	return Config{On: 600 * time.Millisecond, Off: 400 * time.Millisecond}
}

// Engine toggles a visibility callback until stopped. Only one animation
// runs at a time.
type Engine struct {
	mu     sync.Mutex
	config Config
	show   func(visible bool)
	cancel context.CancelFunc
	done   chan struct{}
}

// New creates a new animation engine. show is called from the animation
// goroutine; callers marshal to the UI thread themselves.
func New(config Config, show func(visible bool)) *Engine {
	if config.On <= 0 || config.Off <= 0 {
		config = DefaultConfig()
	}
	return &Engine{config: config, show: show}
}

// StartBlink starts blinking until ctx ends or Stop is called. The callback
// is left visible when the blink ends.
func (engine *Engine) StartBlink(ctx context.Context) {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	if engine.cancel != nil {
		engine.cancel()
	}
	runCtx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	engine.cancel = cancel
	engine.done = done

	go func() {
		defer close(done)
		defer engine.show(true)
		for {
			engine.show(true)
			if !sleepWithContext(runCtx, engine.config.On) {
				return
			}
			engine.show(false)
			if !sleepWithContext(runCtx, engine.config.Off) {
				return
			}
		}
	}()
}

// Stop terminates the active animation and waits for it to finish.
func (engine *Engine) Stop() {
	engine.mu.Lock()
	cancel, done := engine.cancel, engine.done
	engine.cancel, engine.done = nil, nil
	engine.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
}

func sleepWithContext(ctx context.Context, duration time.Duration) bool {
	timer := time.NewTimer(duration)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
