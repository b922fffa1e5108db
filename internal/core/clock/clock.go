// Package clock formats countdown and stopwatch readings.
package clock

import (
	"fmt"
	"time"
)

// HMS formats whole seconds as HH:MM:SS. Hours are not capped at 99.
func HMS(seconds int64) string {
	if seconds < 0 {
		seconds = 0
	}
	hours := seconds / 3600
	minutes := (seconds % 3600) / 60
	seconds = seconds % 60
	return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, seconds)
}

// Duration formats a duration as HH:MM:SS, truncating sub-second precision.
func Duration(value time.Duration) string {
	return HMS(int64(value / time.Second))
}

// Centis formats hundredths of a second as MM:SS.CC.
func Centis(centis int64) string {
	if centis < 0 {
		centis = 0
	}
	minutes := centis / 6000
	seconds := (centis % 6000) / 100
	centis = centis % 100
	return fmt.Sprintf("%02d:%02d.%02d", minutes, seconds, centis)
}
