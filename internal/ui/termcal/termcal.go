// Package termcal prints a month grid for the terminal.
package termcal

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"tempo/internal/core/calendar"
	"tempo/internal/core/model"
)

const cellWidth = 5

// Markers appended to day numbers. Colour is not always available, so the
// grid stays readable in plain text.
const (
	TodayMarker = "+"
	NotesMarker = "*"
)

// Printer renders grids with a fixed set of styles.
type Printer struct {
	title    lipgloss.Style
	header   lipgloss.Style
	day      lipgloss.Style
	outside  lipgloss.Style
	today    lipgloss.Style
	notes    lipgloss.Style
	selected lipgloss.Style
	legend   lipgloss.Style
}

// New creates a Printer. A nil renderer uses the lipgloss default, which
// detects colour support on stdout.
func New(renderer *lipgloss.Renderer) *Printer {
	if renderer == nil {
		renderer = lipgloss.DefaultRenderer()
	}
	cell := renderer.NewStyle().Width(cellWidth).Align(lipgloss.Right)
	return &Printer{
		title: renderer.NewStyle().
			Bold(true).
			Width(cellWidth * calendar.Columns).
			Align(lipgloss.Center),
		header: cell.Bold(true).
			Foreground(lipgloss.AdaptiveColor{Light: "#333333", Dark: "#FFFFFF"}),
		day: cell,
		outside: cell.
			Foreground(lipgloss.AdaptiveColor{Light: "#AAAAAA", Dark: "#555555"}),
		today: cell.Bold(true).
			Foreground(lipgloss.AdaptiveColor{Light: "#0066CC", Dark: "#5599FF"}),
		notes: cell.
			Foreground(lipgloss.AdaptiveColor{Light: "#008000", Dark: "#55FF55"}),
		selected: cell.Reverse(true),
		legend: renderer.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#666666", Dark: "#888888"}),
	}
}

// Month renders grid as a block of text: title, weekday headers, six weeks
// and a legend.
func (printer *Printer) Month(grid calendar.Grid) string {
	headers := make([]string, 0, calendar.Columns)
	for _, header := range grid.Headers {
		headers = append(headers, printer.header.Render(header))
	}

	lines := []string{
		printer.title.Render(grid.Title()),
		lipgloss.JoinHorizontal(lipgloss.Top, headers...),
	}
	for week := 0; week < calendar.CellCount/calendar.Columns; week++ {
		cells := make([]string, 0, calendar.Columns)
		for _, cell := range grid.Cells[week*calendar.Columns : (week+1)*calendar.Columns] {
			cells = append(cells, printer.cell(cell))
		}
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	lines = append(lines, printer.legend.Render(TodayMarker+" today  "+NotesMarker+" has notes"))
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

// Notes renders a note list, one per line, most recent first.
func (printer *Printer) Notes(notes []model.Note) string {
	if len(notes) == 0 {
		return printer.legend.Render("no notes")
	}
	var builder strings.Builder
	for i, note := range notes {
		if i > 0 {
			builder.WriteByte('\n')
		}
		fmt.Fprintf(&builder, "%d  %s  %s", note.ID, note.Date, note.Text)
	}
	return builder.String()
}

func (printer *Printer) cell(cell calendar.Cell) string {
	if !cell.InMonth {
		return printer.outside.Render(fmt.Sprintf("%2d ", cell.Day))
	}
	marker := " "
	style := printer.day
	switch {
	case cell.HasNotes:
		marker = NotesMarker
		style = printer.notes
	case cell.Today:
		marker = TodayMarker
	}
	if cell.Today {
		style = printer.today
	}
	if cell.Selected {
		style = printer.selected
	}
	return style.Render(fmt.Sprintf("%2d%s", cell.Day, marker))
}
