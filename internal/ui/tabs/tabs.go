// Package tabs keeps exactly one of the three panels visible.
package tabs

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"

	"tempo/internal/ui/preferences"
)

// Panels are the tab bodies in display order.
type Panels struct {
	Timer     fyne.CanvasObject
	Stopwatch fyne.CanvasObject
	Calendar  fyne.CanvasObject
}

// Controller wraps the app tabs. Selection always goes through a tab name.
type Controller struct {
	tabs     *container.AppTabs
	items    map[string]*container.TabItem
	onSelect func(name string)
}

// New builds the tabs and shows initial, falling back to the timer tab.
func New(panels Panels, initial string) *Controller {
	items := map[string]*container.TabItem{
		preferences.TabTimer:     container.NewTabItemWithIcon("Timer", theme.HistoryIcon(), panels.Timer),
		preferences.TabStopwatch: container.NewTabItemWithIcon("Stopwatch", theme.MediaRecordIcon(), panels.Stopwatch),
		preferences.TabCalendar:  container.NewTabItemWithIcon("Calendar", theme.GridIcon(), panels.Calendar),
	}
	controller := &Controller{
		tabs: container.NewAppTabs(
			items[preferences.TabTimer],
			items[preferences.TabStopwatch],
			items[preferences.TabCalendar],
		),
		items: items,
	}
	controller.Select(initial)
	controller.tabs.OnSelected = func(item *container.TabItem) {
		if controller.onSelect != nil {
			controller.onSelect(controller.nameOf(item))
		}
	}
	return controller
}

// Content returns the tab container.
func (controller *Controller) Content() fyne.CanvasObject {
	return controller.tabs
}

// OnSelect registers a handler called with the name of each newly shown tab.
func (controller *Controller) OnSelect(handler func(name string)) {
	controller.onSelect = handler
}

// Select shows the named tab. Unknown names select the timer.
func (controller *Controller) Select(name string) {
	item, ok := controller.items[name]
	if !ok {
		item = controller.items[preferences.TabTimer]
	}
	controller.tabs.Select(item)
}

// Active returns the name of the visible tab.
func (controller *Controller) Active() string {
	return controller.nameOf(controller.tabs.Selected())
}

func (controller *Controller) nameOf(item *container.TabItem) string {
	for name, candidate := range controller.items {
		if candidate == item {
			return name
		}
	}
	return preferences.TabTimer
}
