package audio

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"tempo/internal/core/model"
)

// SampleRate is the rate the alarm is rendered at.
const SampleRate = 44100

// ErrPlayerUnavailable indicates no audio player exists on this system.
var ErrPlayerUnavailable = errors.New("audio player unavailable")

// Player plays a mono 16-bit PCM clip at SampleRate, blocking until done
// or ctx is cancelled.
type Player interface {
	Play(ctx context.Context, pcm []byte) error
}

// Alarm plays the alarm pattern. At most one playback is active; firing
// again cancels the previous one first.
type Alarm struct {
	mu     sync.Mutex
	config model.AlarmConfig
	player Player
	logger *zap.Logger
	clip   []byte
	cancel context.CancelFunc
	done   chan struct{}
}

// NewAlarm creates an alarm. A nil logger discards logs.
func NewAlarm(config model.AlarmConfig, player Player, logger *zap.Logger) *Alarm {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Alarm{
		config: config,
		player: player,
		logger: logger,
	}
}

// UpdateConfig replaces the alarm settings.
func (alarm *Alarm) UpdateConfig(config model.AlarmConfig) {
	alarm.mu.Lock()
	defer alarm.mu.Unlock()
	if config != alarm.config {
		alarm.clip = nil
	}
	alarm.config = config
}

// Fire starts playback and returns immediately.
func (alarm *Alarm) Fire() {
	alarm.mu.Lock()
	defer alarm.mu.Unlock()
	if !alarm.config.Enabled || alarm.player == nil {
		alarm.logger.Debug("alarm muted")
		return
	}
	if alarm.cancel != nil {
		alarm.cancel()
	}
	if alarm.clip == nil {
		alarm.clip = EncodePCM(Render(Pattern(alarm.config), SampleRate))
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	alarm.cancel = cancel
	alarm.done = done
	clip := alarm.clip
	go func() {
		defer close(done)
		defer cancel()
		err := alarm.player.Play(ctx, clip)
		switch {
		case err == nil, errors.Is(err, context.Canceled):
		case errors.Is(err, ErrPlayerUnavailable):
			alarm.logger.Warn("alarm not played", zap.Error(err))
		default:
			alarm.logger.Error("alarm playback failed", zap.Error(err))
		}
	}()
}

// Stop cancels the current playback and waits for it to end. A playback
// started by a concurrent Fire after Stop took the lock is left running.
func (alarm *Alarm) Stop() {
	alarm.mu.Lock()
	cancel, done := alarm.cancel, alarm.done
	alarm.cancel, alarm.done = nil, nil
	alarm.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
}
