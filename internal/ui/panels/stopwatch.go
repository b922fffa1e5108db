package panels

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"tempo/internal/core/clock"
	"tempo/internal/core/model"
	"tempo/internal/core/stopwatch"
)

// StopwatchPanel is the count-up tab.
type StopwatchPanel struct {
	watch *stopwatch.Stopwatch

	display *canvas.Text
	toggle  *widget.Button
	lap     *widget.Button
	reset   *widget.Button
	lapList *widget.List
	laps    []model.Lap
	content fyne.CanvasObject
}

// NewStopwatchPanel creates the panel.
func NewStopwatchPanel(watch *stopwatch.Stopwatch) *StopwatchPanel {
	panel := &StopwatchPanel{
		watch:   watch,
		display: newDisplay(clock.Centis(0)),
	}
	panel.toggle = widget.NewButtonWithIcon("Start", theme.MediaPlayIcon(), panel.Toggle)
	panel.toggle.Importance = widget.HighImportance
	panel.lap = widget.NewButtonWithIcon("Lap", theme.ContentAddIcon(), func() {
		watch.Lap()
	})
	panel.reset = widget.NewButtonWithIcon("Reset", theme.MediaReplayIcon(), watch.Reset)

	panel.lapList = widget.NewList(
		func() int { return len(panel.laps) },
		func() fyne.CanvasObject {
			return widget.NewLabelWithStyle("", fyne.TextAlignLeading, fyne.TextStyle{Monospace: true})
		},
		func(id widget.ListItemID, item fyne.CanvasObject) {
			if id < 0 || id >= len(panel.laps) {
				return
			}
			item.(*widget.Label).SetText(LapLine(panel.laps[id]))
		},
	)

	buttons := container.NewGridWithColumns(3, panel.toggle, panel.lap, panel.reset)
	header := container.NewVBox(container.NewCenter(panel.display), buttons)
	panel.content = container.NewBorder(header, nil, nil, nil, panel.lapList)

	panel.apply(stopwatch.Event{State: watch.State(), Elapsed: watch.Elapsed()})
	return panel
}

// Content returns the tab body.
func (panel *StopwatchPanel) Content() fyne.CanvasObject {
	return panel.content
}

// Toggle starts a stopped stopwatch and pauses a running one.
func (panel *StopwatchPanel) Toggle() {
	if panel.watch.State() == stopwatch.StateRunning {
		panel.watch.Pause()
		return
	}
	panel.watch.Start()
}

// Watch applies stopwatch events on the UI goroutine until events is closed.
func (panel *StopwatchPanel) Watch(events <-chan stopwatch.Event) {
	go func() {
		for event := range events {
			fyne.Do(func() {
				panel.apply(event)
			})
		}
	}()
}

// DisplayText returns the MM:SS.CC readout.
func (panel *StopwatchPanel) DisplayText() string {
	return panel.display.Text
}

// LapCount returns the number of laps shown.
func (panel *StopwatchPanel) LapCount() int {
	return len(panel.laps)
}

func (panel *StopwatchPanel) apply(event stopwatch.Event) {
	panel.display.Text = clock.Centis(event.Elapsed)
	panel.display.Refresh()

	running := event.State == stopwatch.StateRunning
	if running {
		panel.toggle.SetText("Pause")
		panel.toggle.SetIcon(theme.MediaPauseIcon())
	} else {
		panel.toggle.SetText("Start")
		panel.toggle.SetIcon(theme.MediaPlayIcon())
	}
	setEnabled(panel.lap, running)

	if event.Type != stopwatch.EventProgress {
		panel.laps = panel.watch.Laps()
		panel.lapList.Refresh()
	}
}

// LapLine formats one row of the lap list.
func LapLine(lap model.Lap) string {
	return fmt.Sprintf("Lap %-3d %s", lap.Number, clock.Centis(lap.Elapsed))
}
