// Package panels builds the three tab contents and keeps them in sync with
// the core components they display.
package panels

import (
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"tempo/internal/core/clock"
	"tempo/internal/core/countdown"
	"tempo/internal/core/model"
)

const displaySize = 48

// TimerPanel is the countdown tab.
type TimerPanel struct {
	timer  *countdown.Timer
	parent fyne.Window

	hours   *widget.Entry
	minutes *widget.Entry
	seconds *widget.Entry
	display *canvas.Text
	start   *widget.Button
	pause   *widget.Button
	reset   *widget.Button
	content fyne.CanvasObject

	onCompleted func()
}

// NewTimerPanel creates the panel. Completion shows a dialog on parent
// unless SetOnCompleted replaces it.
func NewTimerPanel(timer *countdown.Timer, parent fyne.Window) *TimerPanel {
	panel := &TimerPanel{
		timer:   timer,
		parent:  parent,
		hours:   newFieldEntry("HH"),
		minutes: newFieldEntry("MM"),
		seconds: newFieldEntry("SS"),
		display: newDisplay(clock.HMS(0)),
	}
	panel.start = widget.NewButtonWithIcon("Start", theme.MediaPlayIcon(), panel.Start)
	panel.start.Importance = widget.HighImportance
	panel.pause = widget.NewButtonWithIcon("Pause", theme.MediaPauseIcon(), timer.Pause)
	panel.reset = widget.NewButtonWithIcon("Reset", theme.MediaReplayIcon(), panel.Reset)

	fields := container.NewGridWithColumns(5,
		panel.hours, widget.NewLabel(":"), panel.minutes, widget.NewLabel(":"), panel.seconds)
	buttons := container.NewGridWithColumns(3, panel.start, panel.pause, panel.reset)
	panel.content = container.NewVBox(
		container.NewCenter(panel.display),
		fields,
		buttons,
	)

	panel.SetInput(timer.Input())
	panel.apply(countdown.Event{State: timer.State(), Remaining: timer.Remaining()})
	return panel
}

// Content returns the tab body.
func (panel *TimerPanel) Content() fyne.CanvasObject {
	return panel.content
}

// SetOnCompleted replaces the completion notice.
func (panel *TimerPanel) SetOnCompleted(handler func()) {
	panel.onCompleted = handler
}

// SetInput fills the entry fields.
func (panel *TimerPanel) SetInput(input model.TimerInput) {
	panel.hours.SetText(formatField(input.Hours))
	panel.minutes.SetText(formatField(input.Minutes))
	panel.seconds.SetText(formatField(input.Seconds))
}

// Input returns the entry fields as parsed by the timer.
func (panel *TimerPanel) Input() model.TimerInput {
	return model.TimerInput{
		Hours:   countdown.ParseField(panel.hours.Text),
		Minutes: countdown.ParseField(panel.minutes.Text),
		Seconds: countdown.ParseField(panel.seconds.Text),
	}
}

// Start hands the current fields to the timer and starts it.
func (panel *TimerPanel) Start() {
	panel.timer.SetFields(panel.hours.Text, panel.minutes.Text, panel.seconds.Text)
	panel.timer.Start()
}

// Toggle starts a stopped timer and pauses a running one.
func (panel *TimerPanel) Toggle() {
	if panel.timer.State() == countdown.StateRunning {
		panel.timer.Pause()
		return
	}
	panel.Start()
}

// Reset returns the timer to idle and clears the fields.
func (panel *TimerPanel) Reset() {
	panel.timer.Reset()
	panel.hours.SetText("")
	panel.minutes.SetText("")
	panel.seconds.SetText("")
}

// Watch applies timer events on the UI goroutine until events is closed.
func (panel *TimerPanel) Watch(events <-chan countdown.Event) {
	go func() {
		for event := range events {
			fyne.Do(func() {
				panel.apply(event)
			})
		}
	}()
}

// DisplayText returns the HH:MM:SS readout.
func (panel *TimerPanel) DisplayText() string {
	return panel.display.Text
}

func (panel *TimerPanel) apply(event countdown.Event) {
	panel.display.Text = clock.Duration(event.Remaining)
	panel.display.Refresh()

	running := event.State == countdown.StateRunning
	setEnabled(panel.start, !running && event.State != countdown.StateCompleted)
	setEnabled(panel.pause, running)
	setEnabled(panel.hours, !running)
	setEnabled(panel.minutes, !running)
	setEnabled(panel.seconds, !running)

	if event.Type == countdown.EventCompleted {
		panel.notifyCompleted()
	}
}

func (panel *TimerPanel) notifyCompleted() {
	if panel.onCompleted != nil {
		panel.onCompleted()
		return
	}
	if panel.parent != nil {
		dialog.ShowInformation("Time's up", "The countdown has finished.", panel.parent)
	}
}

func newFieldEntry(placeholder string) *widget.Entry {
	entry := widget.NewEntry()
	entry.SetPlaceHolder(placeholder)
	return entry
}

func newDisplay(text string) *canvas.Text {
	display := canvas.NewText(text, theme.Color(theme.ColorNameForeground))
	display.TextSize = displaySize
	display.TextStyle = fyne.TextStyle{Monospace: true, Bold: true}
	display.Alignment = fyne.TextAlignCenter
	return display
}

func formatField(value int) string {
	if value <= 0 {
		return ""
	}
	return strconv.Itoa(value)
}

type disableable interface {
	Enable()
	Disable()
}

func setEnabled(target disableable, enabled bool) {
	if enabled {
		target.Enable()
		return
	}
	target.Disable()
}
