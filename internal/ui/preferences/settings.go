package preferences

import (
	"tempo/internal/audio"
	"tempo/internal/core/model"
)

// Tab names used by the tab controller and remembered across runs.
const (
	TabTimer     = "timer"
	TabStopwatch = "stopwatch"
	TabCalendar  = "calendar"
)

// Settings defines editable user preferences.
type Settings struct {
	Timer model.TimerInput

	AlarmEnabled   bool
	AlarmFrequency float64
	AlarmVolume    float64

	Backend       model.Backend
	LaunchAtLogin bool
	LastTab       string
}

// DefaultSettings returns default settings for Tempo.
func DefaultSettings() Settings {
	alarm := audio.DefaultConfig()
	return Settings{
		Timer:          model.TimerInput{Minutes: 5},
		AlarmEnabled:   alarm.Enabled,
		AlarmFrequency: alarm.Frequency,
		AlarmVolume:    alarm.Volume,
		Backend:        model.BackendFile,
		LaunchAtLogin:  false,
		LastTab:        TabTimer,
	}
}

// AlarmConfig converts settings to the alarm configuration.
func (settings Settings) AlarmConfig() model.AlarmConfig {
	return model.AlarmConfig{
		Enabled:   settings.AlarmEnabled,
		Frequency: settings.AlarmFrequency,
		Volume:    settings.AlarmVolume,
	}
}

// ValidTab reports whether name is one of the three panels.
func ValidTab(name string) bool {
	return name == TabTimer || name == TabStopwatch || name == TabCalendar
}
