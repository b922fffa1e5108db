// Package calendar renders month grids and tracks the calendar cursor and
// the day selected for note entry.
package calendar

import (
	"fmt"
	"sync"
	"time"

	"tempo/internal/core/model"
)

const (
	// CellCount is the number of day cells in a grid: six weeks of seven days.
	CellCount = 42
	// Columns is the number of weekday columns.
	Columns = 7
)

// Headers are the weekday column titles, Sunday first.
var Headers = [Columns]string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

// NoteIndex answers whether a date key carries notes.
type NoteIndex interface {
	HasNotes(key string) bool
}

// Cell is a single day in the grid. Key is empty for days outside the month.
type Cell struct {
	Day      int
	Key      string
	InMonth  bool
	Today    bool
	HasNotes bool
	Selected bool
}

// Grid is a rendered month.
type Grid struct {
	Cursor  model.Cursor
	Headers [Columns]string
	Cells   [CellCount]Cell
}

// Title returns the month heading, e.g. "October 2026".
func (grid Grid) Title() string {
	return fmt.Sprintf("%s %d", grid.Cursor.Month, grid.Cursor.Year)
}

// Render lays out the month at cursor. Leading cells come from the previous
// month, trailing cells from the next, for exactly CellCount cells.
func Render(cursor model.Cursor, today time.Time, selected string, notes NoteIndex) Grid {
	grid := Grid{Cursor: cursor, Headers: Headers}

	first := time.Date(cursor.Year, cursor.Month, 1, 0, 0, 0, 0, time.UTC)
	offset := int(first.Weekday())
	daysInMonth := DaysIn(cursor.Year, cursor.Month)
	daysInPrev := first.AddDate(0, 0, -1).Day()
	todayKey := KeyOf(today)

	index := 0
	for i := offset - 1; i >= 0; i-- {
		grid.Cells[index] = Cell{Day: daysInPrev - i}
		index++
	}

	for day := 1; day <= daysInMonth; day++ {
		key := Key(cursor.Year, cursor.Month, day)
		cell := Cell{
			Day:      day,
			Key:      key,
			InMonth:  true,
			Today:    key == todayKey,
			Selected: selected != "" && key == selected,
		}
		if notes != nil {
			cell.HasNotes = notes.HasNotes(key)
		}
		grid.Cells[index] = cell
		index++
	}

	for day := 1; index < CellCount; day++ {
		grid.Cells[index] = Cell{Day: day}
		index++
	}
	return grid
}

// DaysIn returns the number of days in a month.
func DaysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// Calendar owns the cursor and the selected day.
type Calendar struct {
	mu       sync.Mutex
	cursor   model.Cursor
	selected string
	now      func() time.Time
	notes    NoteIndex
	onRender func(Grid)
}

// New creates a Calendar positioned at the current month.
func New(notes NoteIndex, now func() time.Time) *Calendar {
	if now == nil {
		now = time.Now
	}
	return &Calendar{
		cursor: model.CursorOf(now()),
		now:    now,
		notes:  notes,
	}
}

// SetOnRender sets the handler invoked with every re-rendered grid.
func (cal *Calendar) SetOnRender(handler func(Grid)) {
	cal.mu.Lock()
	defer cal.mu.Unlock()
	cal.onRender = handler
}

// Cursor returns the displayed month.
func (cal *Calendar) Cursor() model.Cursor {
	cal.mu.Lock()
	defer cal.mu.Unlock()
	return cal.cursor
}

// Selected returns the selected date key, or "" when nothing is selected.
func (cal *Calendar) Selected() string {
	cal.mu.Lock()
	defer cal.mu.Unlock()
	return cal.selected
}

// TargetDate returns the key the next note is attached to: the selected day,
// or today when nothing is selected.
func (cal *Calendar) TargetDate() string {
	cal.mu.Lock()
	defer cal.mu.Unlock()
	if cal.selected != "" {
		return cal.selected
	}
	return KeyOf(cal.now())
}

// Grid renders the current month without notifying the render handler.
func (cal *Calendar) Grid() Grid {
	cal.mu.Lock()
	defer cal.mu.Unlock()
	return cal.renderLocked()
}

// Refresh re-renders, typically after the notes changed.
func (cal *Calendar) Refresh() Grid {
	return cal.update(func() {})
}

// ChangeMonth moves the cursor by delta months, rolling the year over.
func (cal *Calendar) ChangeMonth(delta int) Grid {
	return cal.update(func() {
		moved := time.Date(cal.cursor.Year, cal.cursor.Month+time.Month(delta), 1, 0, 0, 0, 0, time.UTC)
		cal.cursor = model.CursorOf(moved)
	})
}

// GoToToday moves the cursor to the current month.
func (cal *Calendar) GoToToday() Grid {
	return cal.update(func() {
		cal.cursor = model.CursorOf(cal.now())
	})
}

// SelectDate marks key as the only selected day.
func (cal *Calendar) SelectDate(key string) Grid {
	return cal.update(func() {
		cal.selected = key
	})
}

// ClearSelection drops the selected day.
func (cal *Calendar) ClearSelection() Grid {
	return cal.update(func() {
		cal.selected = ""
	})
}

func (cal *Calendar) update(mutate func()) Grid {
	cal.mu.Lock()
	mutate()
	grid := cal.renderLocked()
	handler := cal.onRender
	cal.mu.Unlock()

	if handler != nil {
		handler(grid)
	}
	return grid
}

func (cal *Calendar) renderLocked() Grid {
	return Render(cal.cursor, cal.now(), cal.selected, cal.notes)
}
