package audio

import (
	"bytes"
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"
)

const pollInterval = 20 * time.Millisecond

// The audio device can be opened once per process, so every player
// shares it.
var device struct {
	once    sync.Once
	context *oto.Context
	ready   chan struct{}
	err     error
}

func openDevice() (*oto.Context, chan struct{}, error) {
	device.once.Do(func() {
		device.context, device.ready, device.err = oto.NewContext(&oto.NewContextOptions{
			SampleRate:   SampleRate,
			ChannelCount: 1,
			Format:       oto.FormatSignedInt16LE,
		})
		if device.err != nil {
			device.err = fmt.Errorf("%w: %v", ErrPlayerUnavailable, device.err)
		}
	})
	return device.context, device.ready, device.err
}

// DevicePlayer plays PCM clips on the default output device. The device
// is opened on first use.
type DevicePlayer struct{}

// NewPlayer returns a player for the default output device.
func NewPlayer() *DevicePlayer {
	return &DevicePlayer{}
}

// Play blocks until the clip has played or ctx is cancelled.
func (*DevicePlayer) Play(ctx context.Context, pcm []byte) error {
	output, ready, err := openDevice()
	if err != nil {
		return err
	}
	select {
	case <-ready:
	case <-ctx.Done():
		return ctx.Err()
	}
	if err := output.Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrPlayerUnavailable, err)
	}
	return playStream(ctx, output.NewPlayer(bytes.NewReader(pcm)), pollInterval)
}

// stream is the part of *oto.Player playback relies on.
type stream interface {
	Play()
	Pause()
	IsPlaying() bool
	Err() error
	Close() error
}

func playStream(ctx context.Context, playback stream, interval time.Duration) error {
	defer playback.Close()

	playback.Play()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for playback.IsPlaying() {
		select {
		case <-ctx.Done():
			playback.Pause()
			return ctx.Err()
		case <-ticker.C:
		}
	}
	if err := playback.Err(); err != nil {
		return fmt.Errorf("play alarm: %w", err)
	}
	return nil
}
