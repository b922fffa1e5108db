// Package audio synthesizes and plays the countdown alarm.
package audio

import (
	"math"
	"time"

	"tempo/internal/core/model"
)

const (
	groupCount     = 3
	burstsPerGroup = 3
	groupSpacing   = 800 * time.Millisecond
	burstSpacing   = 150 * time.Millisecond
	burstLength    = 120 * time.Millisecond

	// DefaultFrequency is the tone pitch in Hz.
	DefaultFrequency = 880.0
	// DefaultVolume is the starting gain of every burst.
	DefaultVolume = 0.5
	// floorGain is where the exponential decay of a burst ends.
	floorGain = 0.001
)

// DefaultConfig returns the stock alarm.
func DefaultConfig() model.AlarmConfig {
	return model.AlarmConfig{
		Enabled:   true,
		Frequency: DefaultFrequency,
		Volume:    DefaultVolume,
	}
}

// Burst is one scheduled sine tone.
type Burst struct {
	Offset    time.Duration
	Duration  time.Duration
	Frequency float64
	Gain      float64
}

// Pattern schedules three groups of three short bursts.
func Pattern(config model.AlarmConfig) []Burst {
	frequency := config.Frequency
	if frequency <= 0 {
		frequency = DefaultFrequency
	}
	gain := config.Volume
	if gain <= floorGain || gain > 1 {
		gain = DefaultVolume
	}

	bursts := make([]Burst, 0, groupCount*burstsPerGroup)
	for group := 0; group < groupCount; group++ {
		for i := 0; i < burstsPerGroup; i++ {
			bursts = append(bursts, Burst{
				Offset:    time.Duration(group)*groupSpacing + time.Duration(i)*burstSpacing,
				Duration:  burstLength,
				Frequency: frequency,
				Gain:      gain,
			})
		}
	}
	return bursts
}

// Length returns the end time of the last burst.
func Length(bursts []Burst) time.Duration {
	var end time.Duration
	for _, burst := range bursts {
		if burstEnd := burst.Offset + burst.Duration; burstEnd > end {
			end = burstEnd
		}
	}
	return end
}

// Render mixes bursts into mono float samples in [-1, 1].
// Each burst decays exponentially from its gain to floorGain.
func Render(bursts []Burst, sampleRate int) []float64 {
	if sampleRate <= 0 {
		return nil
	}
	total := int(Length(bursts).Seconds() * float64(sampleRate))
	samples := make([]float64, total)

	for _, burst := range bursts {
		start := int(burst.Offset.Seconds() * float64(sampleRate))
		count := int(burst.Duration.Seconds() * float64(sampleRate))
		if count <= 0 {
			continue
		}
		ratio := floorGain / burst.Gain
		for n := 0; n < count && start+n < total; n++ {
			progress := float64(n) / float64(count)
			envelope := burst.Gain * math.Pow(ratio, progress)
			phase := 2 * math.Pi * burst.Frequency * float64(n) / float64(sampleRate)
			samples[start+n] += envelope * math.Sin(phase)
		}
	}

	for i, value := range samples {
		samples[i] = math.Max(-1, math.Min(1, value))
	}
	return samples
}
