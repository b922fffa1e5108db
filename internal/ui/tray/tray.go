package tray

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
)

// Callbacks defines tray action handlers.
type Callbacks struct {
	OnShow            func()
	OnToggleTimer     func()
	OnToggleStopwatch func()
	OnPreferences     func()
	OnQuit            func()
}

// Icons are the tray icons for an idle and a running timer. Either may be nil.
type Icons struct {
	Idle    fyne.Resource
	Running fyne.Resource
}

// Manager handles system tray state.
type Manager struct {
	app           desktop.App
	callbacks     Callbacks
	icons         Icons
	statusItem    *fyne.MenuItem
	timerItem     *fyne.MenuItem
	stopwatchItem *fyne.MenuItem
	timerStatus   string
	timerRunning  bool
	watchRunning  bool
}

// New creates a tray manager with the provided callbacks. app may be nil on
// drivers without a system tray; the manager then only tracks labels.
func New(app desktop.App, icons Icons, callbacks Callbacks) *Manager {
	manager := &Manager{
		app:         app,
		callbacks:   callbacks,
		icons:       icons,
		timerStatus: "idle",
	}

	manager.statusItem = fyne.NewMenuItem("", nil)
	manager.statusItem.Disabled = true
	manager.timerItem = fyne.NewMenuItem("", func() { call(manager.callbacks.OnToggleTimer) })
	manager.stopwatchItem = fyne.NewMenuItem("", func() { call(manager.callbacks.OnToggleStopwatch) })

	manager.refreshLabels()
	manager.refreshMenu()
	manager.refreshIcon()
	return manager
}

// SetTimerStatus updates the timer line, e.g. the remaining time.
func (manager *Manager) SetTimerStatus(status string, running bool) {
	if status == manager.timerStatus && running == manager.timerRunning {
		return
	}
	iconChanged := running != manager.timerRunning
	manager.timerStatus = status
	manager.timerRunning = running
	manager.refreshLabels()
	manager.refreshMenu()
	if iconChanged {
		manager.refreshIcon()
	}
}

// SetStopwatchRunning toggles the stopwatch item label.
func (manager *Manager) SetStopwatchRunning(running bool) {
	if running == manager.watchRunning {
		return
	}
	manager.watchRunning = running
	manager.refreshLabels()
	manager.refreshMenu()
}

// Labels returns the current menu item labels, top to bottom.
func (manager *Manager) Labels() []string {
	return []string{manager.statusItem.Label, manager.timerItem.Label, manager.stopwatchItem.Label}
}

func (manager *Manager) refreshLabels() {
	manager.statusItem.Label = "Timer: " + manager.timerStatus
	if manager.timerRunning {
		manager.timerItem.Label = "Pause timer"
	} else {
		manager.timerItem.Label = "Start timer"
	}
	if manager.watchRunning {
		manager.stopwatchItem.Label = "Pause stopwatch"
	} else {
		manager.stopwatchItem.Label = "Start stopwatch"
	}
}

func (manager *Manager) refreshMenu() {
	if manager.app == nil {
		return
	}
	manager.app.SetSystemTrayMenu(fyne.NewMenu("Tempo",
		fyne.NewMenuItem("Show Tempo", func() { call(manager.callbacks.OnShow) }),
		fyne.NewMenuItemSeparator(),
		manager.statusItem,
		manager.timerItem,
		manager.stopwatchItem,
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Preferences", func() { call(manager.callbacks.OnPreferences) }),
		fyne.NewMenuItem("Quit", func() { call(manager.callbacks.OnQuit) }),
	))
}

func (manager *Manager) refreshIcon() {
	if manager.app == nil {
		return
	}
	icon := manager.icons.Idle
	if manager.timerRunning && manager.icons.Running != nil {
		icon = manager.icons.Running
	}
	if icon != nil {
		manager.app.SetSystemTrayIcon(icon)
	}
}

func call(callback func()) {
	if callback != nil {
		callback()
	}
}
