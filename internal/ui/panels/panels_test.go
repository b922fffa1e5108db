package panels

import (
	"context"
	"testing"
	"time"

	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tempo/internal/core/calendar"
	"tempo/internal/core/countdown"
	"tempo/internal/core/model"
	"tempo/internal/core/notes"
	"tempo/internal/core/stopwatch"
	"tempo/internal/testutil"
)

var fixedNow = time.Date(2026, 10, 18, 9, 30, 0, 0, time.Local)

func drain[E any](events <-chan E, apply func(E)) {
	for {
		select {
		case event := <-events:
			apply(event)
		default:
			return
		}
	}
}

func TestTimerPanelRunsToCompletion(t *testing.T) {
	app := test.NewApp()
	defer app.Quit()

	manual := testutil.NewManualClock(fixedNow)
	timer := countdown.New(countdown.Config{Ticker: manual.Factory()})
	defer timer.Close()
	events := timer.Subscribe(32)

	panel := NewTimerPanel(timer, test.NewWindow(nil))
	completed := 0
	panel.SetOnCompleted(func() { completed++ })

	panel.SetInput(model.TimerInput{Seconds: 2})
	test.Tap(panel.start)
	require.Equal(t, countdown.StateRunning, timer.State())
	drain(events, panel.apply)
	assert.Equal(t, "00:00:02", panel.DisplayText())
	assert.True(t, panel.hours.Disabled())

	manual.Fire(2)
	require.Eventually(t, func() bool { return timer.State() == countdown.StateCompleted }, time.Second, time.Millisecond)
	require.Eventually(t, func() bool {
		drain(events, panel.apply)
		return completed == 1
	}, time.Second, time.Millisecond)
	assert.Equal(t, "00:00:00", panel.DisplayText())
	assert.True(t, panel.start.Disabled())

	test.Tap(panel.reset)
	drain(events, panel.apply)
	assert.Equal(t, countdown.StateIdle, timer.State())
	assert.Empty(t, panel.minutes.Text)
	assert.False(t, panel.start.Disabled())
}

func TestTimerPanelInvalidFieldsDoNotStart(t *testing.T) {
	app := test.NewApp()
	defer app.Quit()

	manual := testutil.NewManualClock(fixedNow)
	timer := countdown.New(countdown.Config{Ticker: manual.Factory()})
	defer timer.Close()

	panel := NewTimerPanel(timer, nil)
	panel.hours.SetText("abc")
	panel.minutes.SetText("-2")
	panel.Toggle()

	assert.Equal(t, countdown.StateIdle, timer.State())
	assert.Equal(t, model.TimerInput{}, panel.Input())
}

func TestStopwatchPanelLaps(t *testing.T) {
	app := test.NewApp()
	defer app.Quit()

	manual := testutil.NewManualClock(fixedNow)
	watch := stopwatch.New(stopwatch.Config{Ticker: manual.Factory()})
	defer watch.Close()
	events := watch.Subscribe(512)

	panel := NewStopwatchPanel(watch)
	assert.True(t, panel.lap.Disabled())

	test.Tap(panel.toggle)
	manual.Fire(250)
	require.Eventually(t, func() bool { return watch.Elapsed() == 250 }, time.Second, time.Millisecond)
	test.Tap(panel.lap)
	drain(events, panel.apply)

	assert.Equal(t, "00:02.50", panel.DisplayText())
	assert.Equal(t, "Pause", panel.toggle.Text)
	assert.Equal(t, 1, panel.LapCount())
	assert.Equal(t, "Lap 1   00:02.50", LapLine(watch.Laps()[0]))

	test.Tap(panel.reset)
	drain(events, panel.apply)
	assert.Equal(t, "00:00.00", panel.DisplayText())
	assert.Equal(t, "Start", panel.toggle.Text)
	assert.Zero(t, panel.LapCount())
}

func TestCalendarPanelAddAndDeleteNotes(t *testing.T) {
	app := test.NewApp()
	defer app.Quit()

	slot := testutil.NewMemorySlot()
	store := notes.Open(context.Background(), slot, notes.Options{Now: func() time.Time { return fixedNow }})
	cal := calendar.New(store, func() time.Time { return fixedNow })
	panel := NewCalendarPanel(cal, store, test.NewWindow(nil), nil)

	assert.Equal(t, "October 2026", panel.Title())
	// October 2026 starts on a Thursday, so the 18th sits at index 4+17.
	const day18 = 21
	assert.Equal(t, "18", panel.DayLabel(day18))

	test.Tap(panel.days[day18-1])
	assert.Equal(t, "2026-10-17", cal.Selected())

	panel.entry.SetText("dentist")
	test.Tap(panel.days[day18-1])
	assert.Empty(t, cal.Selected(), "tapping the selected day clears it")
	test.Tap(panel.days[day18-1])
	panel.AddNote()

	require.Equal(t, 1, store.Len())
	assert.Equal(t, "2026-10-17", store.List()[0].Date)
	assert.Empty(t, cal.Selected())
	assert.Empty(t, panel.entry.Text)
	assert.Equal(t, "17 •", panel.DayLabel(day18-1))
	assert.Equal(t, 1, panel.NoteRows())

	panel.entry.SetText("   ")
	panel.AddNote()
	assert.Equal(t, 1, store.Len())

	panel.entry.SetText("standup")
	panel.AddNote()
	require.Equal(t, 2, store.Len())
	assert.Equal(t, "2026-10-18", store.List()[0].Date)

	panel.DeleteNote(store.List()[1].ID)
	assert.Equal(t, 1, store.Len())
	assert.Equal(t, "17", panel.DayLabel(day18-1))
	assert.Equal(t, 1, panel.NoteRows())
}

func TestCalendarPanelNavigation(t *testing.T) {
	app := test.NewApp()
	defer app.Quit()

	store := notes.Open(context.Background(), testutil.NewMemorySlot(), notes.Options{})
	cal := calendar.New(store, func() time.Time { return fixedNow })
	panel := NewCalendarPanel(cal, store, nil, nil)

	cal.ChangeMonth(3)
	assert.Equal(t, "January 2027", panel.Title())
	cal.GoToToday()
	assert.Equal(t, "October 2026", panel.Title())
}

func TestDayLabelMarksNotes(t *testing.T) {
	assert.Equal(t, "5", DayLabel(calendar.Cell{Day: 5}))
	assert.Equal(t, "5 •", DayLabel(calendar.Cell{Day: 5, HasNotes: true}))
}
