package panels

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"go.uber.org/zap"

	"tempo/internal/core/calendar"
	"tempo/internal/core/model"
	"tempo/internal/core/notes"
)

// CalendarPanel is the month grid plus the note editor.
type CalendarPanel struct {
	cal    *calendar.Calendar
	store  *notes.Store
	parent fyne.Window
	logger *zap.Logger

	title   *widget.Label
	days    [calendar.CellCount]*widget.Button
	keys    [calendar.CellCount]string
	target  *widget.Label
	entry   *widget.Entry
	list    *fyne.Container
	content fyne.CanvasObject
}

// NewCalendarPanel creates the panel and subscribes it to cal and store.
func NewCalendarPanel(cal *calendar.Calendar, store *notes.Store, parent fyne.Window, logger *zap.Logger) *CalendarPanel {
	if logger == nil {
		logger = zap.NewNop()
	}
	panel := &CalendarPanel{
		cal:    cal,
		store:  store,
		parent: parent,
		logger: logger,
		title:  widget.NewLabelWithStyle("", fyne.TextAlignCenter, fyne.TextStyle{Bold: true}),
		target: widget.NewLabel(""),
		entry:  widget.NewEntry(),
		list:   container.NewVBox(),
	}

	prev := widget.NewButtonWithIcon("", theme.NavigateBackIcon(), func() { cal.ChangeMonth(-1) })
	next := widget.NewButtonWithIcon("", theme.NavigateNextIcon(), func() { cal.ChangeMonth(1) })
	today := widget.NewButton("Today", func() { cal.GoToToday() })
	navigation := container.NewBorder(nil, nil, prev, container.NewHBox(today, next), panel.title)

	grid := container.NewGridWithColumns(calendar.Columns)
	for _, header := range calendar.Headers {
		grid.Add(widget.NewLabelWithStyle(header, fyne.TextAlignCenter, fyne.TextStyle{Bold: true}))
	}
	for i := range panel.days {
		index := i
		panel.days[i] = widget.NewButton("", func() { panel.selectCell(index) })
		grid.Add(panel.days[i])
	}

	panel.entry.SetPlaceHolder("Add a note")
	panel.entry.OnSubmitted = func(string) { panel.AddNote() }
	add := widget.NewButtonWithIcon("", theme.ContentAddIcon(), panel.AddNote)
	editor := container.NewVBox(panel.target, container.NewBorder(nil, nil, nil, add, panel.entry))

	top := container.NewVBox(navigation, grid, editor)
	panel.content = container.NewBorder(top, nil, nil, nil, container.NewVScroll(panel.list))

	cal.SetOnRender(panel.renderGrid)
	store.OnChange(func() {
		cal.Refresh()
		panel.renderNotes()
	})
	panel.renderGrid(cal.Grid())
	panel.renderNotes()
	return panel
}

// Content returns the tab body.
func (panel *CalendarPanel) Content() fyne.CanvasObject {
	return panel.content
}

// AddNote attaches the entry text to the selected day, or today.
func (panel *CalendarPanel) AddNote() {
	_, err := panel.store.Add(context.Background(), panel.entry.Text, panel.cal.TargetDate())
	if errors.Is(err, notes.ErrEmptyText) {
		return
	}
	panel.entry.SetText("")
	panel.cal.ClearSelection()
	if err != nil {
		panel.showError(err)
	}
}

// DeleteNote removes a note by id.
func (panel *CalendarPanel) DeleteNote(id int64) {
	if _, err := panel.store.Delete(context.Background(), id); err != nil {
		panel.showError(err)
	}
}

// Title returns the month heading currently shown.
func (panel *CalendarPanel) Title() string {
	return panel.title.Text
}

// DayLabel returns the text of grid cell index.
func (panel *CalendarPanel) DayLabel(index int) string {
	return panel.days[index].Text
}

// NoteRows returns the number of rows in the note list.
func (panel *CalendarPanel) NoteRows() int {
	return len(panel.list.Objects)
}

func (panel *CalendarPanel) selectCell(index int) {
	key := panel.keys[index]
	if key == "" {
		return
	}
	if key == panel.cal.Selected() {
		panel.cal.ClearSelection()
		return
	}
	panel.cal.SelectDate(key)
}

func (panel *CalendarPanel) renderGrid(grid calendar.Grid) {
	panel.title.SetText(grid.Title())
	for i, cell := range grid.Cells {
		button := panel.days[i]
		panel.keys[i] = cell.Key
		button.SetText(DayLabel(cell))
		button.Importance = dayImportance(cell)
		setEnabled(button, cell.InMonth)
		button.Refresh()
	}
	panel.target.SetText("Adding to " + panel.cal.TargetDate())
}

func (panel *CalendarPanel) renderNotes() {
	panel.list.RemoveAll()
	for _, note := range panel.store.List() {
		id := note.ID
		remove := widget.NewButtonWithIcon("", theme.DeleteIcon(), func() { panel.DeleteNote(id) })
		remove.Importance = widget.LowImportance
		text := widget.NewLabel(NoteLine(note))
		text.Wrapping = fyne.TextWrapWord
		panel.list.Add(container.NewBorder(nil, nil, nil, remove, text))
	}
	panel.list.Refresh()
}

func (panel *CalendarPanel) showError(err error) {
	panel.logger.Warn("note change not saved", zap.Error(err))
	if panel.parent != nil {
		dialog.ShowError(fmt.Errorf("note was not saved: %w", err), panel.parent)
	}
}

// DayLabel is the button text for a grid cell. Days with notes carry a dot.
func DayLabel(cell calendar.Cell) string {
	label := strconv.Itoa(cell.Day)
	if cell.HasNotes {
		label += " •"
	}
	return label
}

// NoteLine formats one row of the note list.
func NoteLine(note model.Note) string {
	return note.Date + "  " + note.Text
}

func dayImportance(cell calendar.Cell) widget.Importance {
	switch {
	case cell.Selected:
		return widget.WarningImportance
	case cell.Today:
		return widget.HighImportance
	case cell.HasNotes:
		return widget.SuccessImportance
	case cell.InMonth:
		return widget.MediumImportance
	default:
		return widget.LowImportance
	}
}
