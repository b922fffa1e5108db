package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"tempo/internal/core/model"
	"tempo/internal/ui/preferences"
)

// SettingsFileName is the settings document inside the config directory.
const SettingsFileName = "settings.yaml"

type yamlSettings struct {
	TimerHours     int     `yaml:"timer_hours"`
	TimerMinutes   int     `yaml:"timer_minutes"`
	TimerSeconds   int     `yaml:"timer_seconds"`
	AlarmEnabled   *bool   `yaml:"alarm_enabled"`
	AlarmFrequency float64 `yaml:"alarm_frequency"`
	AlarmVolume    float64 `yaml:"alarm_volume"`
	Backend        string  `yaml:"backend"`
	LaunchAtLogin  bool    `yaml:"launch_at_login"`
	LastTab        string  `yaml:"last_tab"`
}

// SettingsPath returns the settings file inside configDir.
func SettingsPath(configDir string) string {
	return filepath.Join(configDir, SettingsFileName)
}

// LoadSettings reads user preferences from YAML.
// If the settings file does not exist, default settings are returned.
func LoadSettings(configDir string) (preferences.Settings, error) {
	settings := preferences.DefaultSettings()

	rawData, err := os.ReadFile(SettingsPath(configDir))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return settings, nil
		}
		return settings, fmt.Errorf("read settings file: %w", err)
	}

	var fileData yamlSettings
	if err := yaml.Unmarshal(rawData, &fileData); err != nil {
		return settings, fmt.Errorf("parse settings yaml: %w", err)
	}

	applyYamlSettings(&settings, fileData)
	return settings, nil
}

// SaveSettings writes user preferences to YAML.
func SaveSettings(configDir string, settings preferences.Settings) error {
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	alarmEnabled := settings.AlarmEnabled
	fileData := yamlSettings{
		TimerHours:     settings.Timer.Hours,
		TimerMinutes:   settings.Timer.Minutes,
		TimerSeconds:   settings.Timer.Seconds,
		AlarmEnabled:   &alarmEnabled,
		AlarmFrequency: settings.AlarmFrequency,
		AlarmVolume:    settings.AlarmVolume,
		Backend:        string(settings.Backend),
		LaunchAtLogin:  settings.LaunchAtLogin,
		LastTab:        settings.LastTab,
	}

	serialized, err := yaml.Marshal(fileData)
	if err != nil {
		return fmt.Errorf("marshal settings yaml: %w", err)
	}

	if err := writeFileAtomic(SettingsPath(configDir), serialized, 0o644); err != nil {
		return fmt.Errorf("write settings file: %w", err)
	}

	return nil
}

func applyYamlSettings(settings *preferences.Settings, fileData yamlSettings) {
	timer := model.TimerInput{
		Hours:   fileData.TimerHours,
		Minutes: fileData.TimerMinutes,
		Seconds: fileData.TimerSeconds,
	}
	if timer.Hours >= 0 && timer.Minutes >= 0 && timer.Seconds >= 0 && timer.Total() > 0 {
		settings.Timer = timer
	}

	if fileData.AlarmEnabled != nil {
		settings.AlarmEnabled = *fileData.AlarmEnabled
	}
	if fileData.AlarmFrequency >= 20 && fileData.AlarmFrequency <= 20000 {
		settings.AlarmFrequency = fileData.AlarmFrequency
	}
	if fileData.AlarmVolume > 0 && fileData.AlarmVolume <= 1 {
		settings.AlarmVolume = fileData.AlarmVolume
	}

	if backend := model.Backend(fileData.Backend); backend.Valid() {
		settings.Backend = backend
	}
	if preferences.ValidTab(fileData.LastTab) {
		settings.LastTab = fileData.LastTab
	}

	settings.LaunchAtLogin = fileData.LaunchAtLogin
}
