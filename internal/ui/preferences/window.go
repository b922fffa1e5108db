package preferences

import (
	"fmt"
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"

	"tempo/internal/core/model"
)

// Window handles the preferences UI.
type Window struct {
	window      fyne.Window
	settings    Settings
	onSave      func(Settings)
	onTestAlarm func(model.AlarmConfig)

	hours     *widget.Entry
	minutes   *widget.Entry
	seconds   *widget.Entry
	alarm     *widget.Check
	frequency *widget.Entry
	volume    *widget.Slider
	backend   *widget.Select
	autostart *widget.Check
}

// New creates a preferences window. onTestAlarm plays the alarm with the
// values currently in the form and may be nil.
func New(app fyne.App, settings Settings, onSave func(Settings), onTestAlarm func(model.AlarmConfig)) *Window {
	window := app.NewWindow("Tempo Settings")

	prefs := &Window{
		window:      window,
		onSave:      onSave,
		onTestAlarm: onTestAlarm,
		hours:       widget.NewEntry(),
		minutes:     widget.NewEntry(),
		seconds:     widget.NewEntry(),
		alarm:       widget.NewCheck("Play alarm when the timer ends", nil),
		frequency:   widget.NewEntry(),
		volume:      widget.NewSlider(0.05, 1),
		backend:     widget.NewSelect([]string{string(model.BackendFile), string(model.BackendSQLite)}, nil),
		autostart:   widget.NewCheck("Launch at login", nil),
	}
	prefs.volume.Step = 0.05
	prefs.UpdateSettings(settings)

	testButton := widget.NewButton("Test alarm", prefs.handleTestAlarm)

	form := container.NewVBox(
		widget.NewLabelWithStyle("Timer", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		container.NewHBox(widget.NewLabel("Default"), prefs.hours, widget.NewLabel("h"),
			prefs.minutes, widget.NewLabel("m"), prefs.seconds, widget.NewLabel("s")),
		widget.NewLabelWithStyle("Alarm", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		prefs.alarm,
		container.NewHBox(widget.NewLabel("Frequency"), prefs.frequency, widget.NewLabel("Hz")),
		widget.NewLabel("Volume"),
		prefs.volume,
		testButton,
		widget.NewLabelWithStyle("General", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		container.NewHBox(widget.NewLabel("Notes storage"), prefs.backend),
		widget.NewLabel("Storage changes apply after restart."),
		prefs.autostart,
	)

	saveButton := widget.NewButton("Save", prefs.handleSave)
	cancelButton := widget.NewButton("Cancel", func() {
		prefs.UpdateSettings(prefs.settings)
		window.Hide()
	})
	buttons := container.NewHBox(saveButton, layout.NewSpacer(), cancelButton)

	window.SetContent(container.NewBorder(nil, buttons, nil, nil, form))
	window.Resize(fyne.NewSize(420, 460))
	window.SetCloseIntercept(window.Hide)

	return prefs
}

// Show displays the preferences window.
func (prefs *Window) Show() {
	prefs.window.Show()
	prefs.window.RequestFocus()
}

// UpdateSettings replaces window values.
func (prefs *Window) UpdateSettings(settings Settings) {
	prefs.settings = settings
	prefs.hours.SetText(strconv.Itoa(settings.Timer.Hours))
	prefs.minutes.SetText(strconv.Itoa(settings.Timer.Minutes))
	prefs.seconds.SetText(strconv.Itoa(settings.Timer.Seconds))
	prefs.alarm.SetChecked(settings.AlarmEnabled)
	prefs.frequency.SetText(fmt.Sprintf("%g", settings.AlarmFrequency))
	prefs.volume.SetValue(settings.AlarmVolume)
	prefs.backend.SetSelected(string(settings.Backend))
	prefs.autostart.SetChecked(settings.LaunchAtLogin)
}

// Collect reads the form into a copy of the current settings. Fields that
// do not parse keep their previous value.
func (prefs *Window) Collect() Settings {
	settings := prefs.settings

	timer := model.TimerInput{
		Hours:   parseNonNegative(prefs.hours.Text),
		Minutes: parseNonNegative(prefs.minutes.Text),
		Seconds: parseNonNegative(prefs.seconds.Text),
	}
	if timer.Total() > 0 {
		settings.Timer = timer
	}

	settings.AlarmEnabled = prefs.alarm.Checked
	if frequency, err := strconv.ParseFloat(prefs.frequency.Text, 64); err == nil && frequency >= 20 && frequency <= 20000 {
		settings.AlarmFrequency = frequency
	}
	settings.AlarmVolume = prefs.volume.Value

	if backend := model.Backend(prefs.backend.Selected); backend.Valid() {
		settings.Backend = backend
	}
	settings.LaunchAtLogin = prefs.autostart.Checked
	return settings
}

func (prefs *Window) handleSave() {
	settings := prefs.Collect()
	prefs.settings = settings
	if prefs.onSave != nil {
		prefs.onSave(settings)
	}
	prefs.window.Hide()
}

func (prefs *Window) handleTestAlarm() {
	if prefs.onTestAlarm == nil {
		return
	}
	config := prefs.Collect().AlarmConfig()
	config.Enabled = true
	prefs.onTestAlarm(config)
}

func parseNonNegative(value string) int {
	parsed, err := strconv.Atoi(value)
	if err != nil || parsed < 0 {
		return 0
	}
	return parsed
}
