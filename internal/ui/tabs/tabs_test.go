package tabs

import (
	"testing"

	"fyne.io/fyne/v2/test"
	"fyne.io/fyne/v2/widget"
	"github.com/stretchr/testify/assert"

	"tempo/internal/ui/preferences"
)

func newController(initial string) *Controller {
	return New(Panels{
		Timer:     widget.NewLabel("timer"),
		Stopwatch: widget.NewLabel("stopwatch"),
		Calendar:  widget.NewLabel("calendar"),
	}, initial)
}

func TestInitialTab(t *testing.T) {
	app := test.NewApp()
	defer app.Quit()

	assert.Equal(t, preferences.TabCalendar, newController(preferences.TabCalendar).Active())
	assert.Equal(t, preferences.TabTimer, newController("weather").Active())
}

func TestSelectIsExclusiveAndReported(t *testing.T) {
	app := test.NewApp()
	defer app.Quit()

	controller := newController(preferences.TabTimer)
	var selected []string
	controller.OnSelect(func(name string) { selected = append(selected, name) })

	controller.Select(preferences.TabStopwatch)
	controller.Select(preferences.TabCalendar)

	assert.Equal(t, preferences.TabCalendar, controller.Active())
	assert.Equal(t, []string{preferences.TabStopwatch, preferences.TabCalendar}, selected)
	assert.Equal(t, 2, controller.tabs.SelectedIndex())
}
