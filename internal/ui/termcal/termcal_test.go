package termcal

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tempo/internal/core/calendar"
	"tempo/internal/core/model"
)

// A renderer over a buffer has no terminal, so output is plain text.
func plainPrinter() *Printer {
	return New(lipgloss.NewRenderer(&bytes.Buffer{}))
}

type noteDays map[string]bool

func (days noteDays) HasNotes(key string) bool { return days[key] }

func TestMonthLayout(t *testing.T) {
	today := time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)
	notes := noteDays{"2026-10-05": true}
	grid := calendar.Render(model.CursorOf(today), today, "", notes)

	lines := strings.Split(plainPrinter().Month(grid), "\n")
	require.Len(t, lines, 1+1+6+1)

	assert.Equal(t, "October 2026", strings.TrimSpace(lines[0]))
	assert.Equal(t, "  Sun  Mon  Tue  Wed  Thu  Fri  Sat", strings.TrimRight(lines[1], " "))
	assert.Equal(t, "  27   28   29   30    1    2    3", strings.TrimRight(lines[2], " "))
	assert.Contains(t, lines[3], " 5*")
	assert.Contains(t, lines[5], "18+")
	assert.Contains(t, lines[8], "today")
	for _, line := range lines[1:8] {
		assert.LessOrEqual(t, lipgloss.Width(line), cellWidth*calendar.Columns)
	}
}

func TestNotesListing(t *testing.T) {
	printer := plainPrinter()
	assert.Equal(t, "no notes", printer.Notes(nil))
	assert.Equal(t,
		"2  2026-10-18  standup\n1  2026-10-17  dentist",
		printer.Notes([]model.Note{
			{ID: 2, Date: "2026-10-18", Text: "standup"},
			{ID: 1, Date: "2026-10-17", Text: "dentist"},
		}),
	)
}
