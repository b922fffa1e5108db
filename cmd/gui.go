package main

import (
	"context"
	"errors"
	"path/filepath"
	"time"

	"fyne.io/fyne/v2"
	fyneapp "fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/driver/desktop"
	"go.uber.org/zap"

	"tempo/internal/audio"
	"tempo/internal/core/calendar"
	"tempo/internal/core/clock"
	"tempo/internal/core/countdown"
	"tempo/internal/core/model"
	"tempo/internal/core/stopwatch"
	"tempo/internal/logging"
	"tempo/internal/platform"
	"tempo/internal/storage"
	"tempo/internal/ui/overlay"
	"tempo/internal/ui/panels"
	"tempo/internal/ui/preferences"
	"tempo/internal/ui/tabs"
	"tempo/internal/ui/tray"
	"tempo/resources"
)

func logPath(configDir string) string {
	return filepath.Join(configDir, logging.FileName)
}

func (app *cli) runGUI(ctx context.Context) error {
	logger := app.logger
	guard, err := platform.AcquireSingleInstance(platform.AppName)
	if errors.Is(err, platform.ErrAlreadyRunning) {
		if err := platform.ActivateRunning(platform.AppName); err != nil {
			logger.Warn("another instance holds the lock but did not answer", zap.Error(err))
		}
		logger.Info("already running, raised the existing window")
		return nil
	}
	defer func() {
		_ = guard.Release()
	}()

	store, slots, err := app.openStore(ctx)
	if err != nil {
		return err
	}
	defer slots.Close()

	settings := app.settings

	fyneApp := fyneapp.NewWithID("com.tempo.app")
	fyneApp.SetIcon(resources.MustIcon(resources.IconIdle))
	window := fyneApp.NewWindow("Tempo")
	window.Resize(fyne.NewSize(380, 520))

	alarm := audio.NewAlarm(settings.AlarmConfig(), audio.NewPlayer(), logger.Named("alarm"))
	preview := audio.NewAlarm(settings.AlarmConfig(), audio.NewPlayer(), logger.Named("alarm"))

	timer := countdown.New(countdown.Config{TickInterval: time.Second, Logger: logger.Named("timer")})
	timer.SetAlarm(alarm)
	timer.SetInput(settings.Timer)
	watch := stopwatch.New(stopwatch.Config{Logger: logger.Named("stopwatch")})
	cal := calendar.New(store, time.Now)

	timerPanel := panels.NewTimerPanel(timer, window)
	timerPanel.Watch(timer.Subscribe(16))
	stopwatchPanel := panels.NewStopwatchPanel(watch)
	stopwatchPanel.Watch(watch.Subscribe(64))
	calendarPanel := panels.NewCalendarPanel(cal, store, window, logger)

	tabController := tabs.New(tabs.Panels{
		Timer:     timerPanel.Content(),
		Stopwatch: stopwatchPanel.Content(),
		Calendar:  calendarPanel.Content(),
	}, settings.LastTab)
	window.SetContent(tabController.Content())

	var watcher *storage.SettingsWatcher
	persist := func(updated preferences.Settings) {
		if watcher != nil {
			watcher.Remember(updated)
		}
		if err := storage.SaveSettings(app.configDir, updated); err != nil {
			logger.Error("save settings failed", zap.Error(err))
		}
	}

	mainVisible := true
	showMain := func() {
		mainVisible = true
		window.Show()
		window.RequestFocus()
	}

	notice := overlay.New(fyneApp)
	notice.SetOnDismiss(alarm.Stop)
	notice.SetOnOpenMain(func() {
		showMain()
		tabController.Select(preferences.TabTimer)
	})
	timerPanel.SetOnCompleted(func() {
		if mainVisible {
			dialog.ShowInformation("Time's up", "The countdown has finished.", window)
			return
		}
		notice.Show()
	})

	applySettings := func(updated preferences.Settings) {
		previous := settings
		settings = updated
		alarm.UpdateConfig(updated.AlarmConfig())
		if updated.Timer != previous.Timer && timer.State() == countdown.StateIdle {
			timer.SetInput(updated.Timer)
			timerPanel.SetInput(updated.Timer)
		}
		if updated.LaunchAtLogin != previous.LaunchAtLogin {
			if err := platform.SyncAutostart(app.platform, updated.LaunchAtLogin); err != nil {
				logger.Warn("update launch at login failed", zap.Error(err))
			}
		}
		if updated.Backend != previous.Backend {
			logger.Info("storage backend changes on next start", zap.String("backend", string(updated.Backend)))
		}
	}

	prefsWindow := preferences.New(fyneApp, settings, func(updated preferences.Settings) {
		updated.LastTab = tabController.Active()
		applySettings(updated)
		persist(settings)
	}, func(config model.AlarmConfig) {
		preview.UpdateConfig(config)
		preview.Fire()
	})

	tabController.OnSelect(func(name string) {
		settings.LastTab = name
		persist(settings)
	})

	watcher, err = storage.WatchSettings(app.configDir, settings, logger.Named("settings"), func(updated preferences.Settings) {
		fyne.Do(func() {
			applySettings(updated)
			prefsWindow.UpdateSettings(updated)
			tabController.Select(updated.LastTab)
		})
	})
	if err != nil {
		logger.Warn("settings hot reload disabled", zap.Error(err))
	}

	trayCallbacks := tray.Callbacks{
		OnShow:            showMain,
		OnToggleTimer:     timerPanel.Toggle,
		OnToggleStopwatch: stopwatchPanel.Toggle,
		OnPreferences:     prefsWindow.Show,
		OnQuit:            fyneApp.Quit,
	}
	trayIcons := tray.Icons{
		Idle:    resources.MustIcon(resources.IconIdle),
		Running: resources.MustIcon(resources.IconRunning),
	}
	desktopApp, hasTray := fyneApp.(desktop.App)
	var trayManager *tray.Manager
	if hasTray {
		trayManager = tray.New(desktopApp, trayIcons, trayCallbacks)
		window.SetCloseIntercept(func() {
			mainVisible = false
			window.Hide()
		})
	} else {
		trayManager = tray.New(nil, trayIcons, trayCallbacks)
		window.SetMaster()
	}
	go mirrorTimer(timer.Subscribe(16), trayManager)
	go mirrorStopwatch(watch.Subscribe(16), trayManager)

	window.SetMainMenu(fyne.NewMainMenu(fyne.NewMenu("Tempo",
		fyne.NewMenuItem("Preferences", prefsWindow.Show),
	)))

	guard.OnActivate(func() {
		fyne.Do(showMain)
	})

	fyneApp.Lifecycle().SetOnStopped(func() {
		if input := timerPanel.Input(); input.Total() > 0 {
			settings.Timer = input
		}
		settings.LastTab = tabController.Active()
		persist(settings)
		if watcher != nil {
			_ = watcher.Close()
		}
		notice.Hide()
		timer.Close()
		watch.Close()
		alarm.Stop()
		preview.Stop()
	})

	logger.Info("tempo started",
		zap.String("backend", app.backend),
		zap.Int("notes", store.Len()),
	)
	window.Show()
	fyneApp.Run()
	return nil
}

// mirrorTimer keeps the tray timer line current. Progress events arrive
// once per second, so every one is applied.
func mirrorTimer(events <-chan countdown.Event, manager *tray.Manager) {
	for event := range events {
		status := clock.Duration(event.Remaining)
		if event.State == countdown.StateIdle || event.State == countdown.StateCompleted {
			status = string(event.State)
		}
		running := event.State == countdown.StateRunning
		fyne.Do(func() {
			manager.SetTimerStatus(status, running)
		})
	}
}

// mirrorStopwatch only cares about state changes; progress ticks are ignored.
func mirrorStopwatch(events <-chan stopwatch.Event, manager *tray.Manager) {
	for event := range events {
		if event.Type != stopwatch.EventStateChange {
			continue
		}
		running := event.State == stopwatch.StateRunning
		fyne.Do(func() {
			manager.SetStopwatchRunning(running)
		})
	}
}
