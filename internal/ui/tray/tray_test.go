package tray

import (
	"testing"

	"fyne.io/fyne/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeDesktop struct {
	menus []*fyne.Menu
	icons []fyne.Resource
}

func (app *fakeDesktop) SetSystemTrayMenu(menu *fyne.Menu) { app.menus = append(app.menus, menu) }
func (app *fakeDesktop) SetSystemTrayIcon(icon fyne.Resource) { app.icons = append(app.icons, icon) }
func (app *fakeDesktop) SetSystemTrayWindow(fyne.Window) {}

func (app *fakeDesktop) last() *fyne.Menu {
	return app.menus[len(app.menus)-1]
}

func TestMenuReflectsState(t *testing.T) {
	desktopApp := &fakeDesktop{}
	manager := New(desktopApp, Icons{}, Callbacks{})
	assert.Equal(t, []string{"Timer: idle", "Start timer", "Start stopwatch"}, manager.Labels())

	manager.SetTimerStatus("00:04:59", true)
	manager.SetStopwatchRunning(true)
	assert.Equal(t, []string{"Timer: 00:04:59", "Pause timer", "Pause stopwatch"}, manager.Labels())
	assert.Len(t, desktopApp.menus, 3)

	manager.SetStopwatchRunning(true)
	assert.Len(t, desktopApp.menus, 3, "unchanged state does not rebuild the menu")
}

func TestMenuItemsInvokeCallbacks(t *testing.T) {
	desktopApp := &fakeDesktop{}
	var calls []string
	New(desktopApp, Icons{}, Callbacks{
		OnShow:            func() { calls = append(calls, "show") },
		OnToggleTimer:     func() { calls = append(calls, "timer") },
		OnToggleStopwatch: func() { calls = append(calls, "stopwatch") },
		OnQuit:            func() { calls = append(calls, "quit") },
	})

	menu := desktopApp.last()
	require.Equal(t, "Tempo", menu.Label)
	for _, item := range menu.Items {
		if item.Action != nil {
			item.Action()
		}
	}
	assert.Equal(t, []string{"show", "timer", "stopwatch", "quit"}, calls)
}

func TestNilDesktopIsAllowed(t *testing.T) {
	manager := New(nil, Icons{}, Callbacks{})
	manager.SetTimerStatus("00:00:10", true)
	assert.Equal(t, "Pause timer", manager.Labels()[1])
}

func TestIconFollowsTimer(t *testing.T) {
	desktopApp := &fakeDesktop{}
	idle := fyne.NewStaticResource("idle.svg", []byte("<svg/>"))
	running := fyne.NewStaticResource("running.svg", []byte("<svg/>"))
	manager := New(desktopApp, Icons{Idle: idle, Running: running}, Callbacks{})

	manager.SetTimerStatus("00:00:09", true)
	manager.SetTimerStatus("00:00:08", true)
	manager.SetTimerStatus("paused", false)

	assert.Equal(t, []fyne.Resource{idle, running, idle}, desktopApp.icons)
}
