package model

import "time"

// Note is a text entry attached to a calendar day.
// ID is the creation time in milliseconds and is unique within a collection.
type Note struct {
	ID   int64  `json:"id"`
	Date string `json:"date"`
	Text string `json:"text"`
}

// Cursor identifies the month shown by the calendar.
type Cursor struct {
	Year  int
	Month time.Month
}

// CursorOf returns the cursor for the month containing t.
func CursorOf(t time.Time) Cursor {
	return Cursor{Year: t.Year(), Month: t.Month()}
}

// Lap is an immutable stopwatch snapshot.
type Lap struct {
	Number  int
	Elapsed int64
}
