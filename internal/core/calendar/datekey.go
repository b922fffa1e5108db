package calendar

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// KeyLayout is the canonical date key layout, zero-padded ISO.
const KeyLayout = "2006-01-02"

// Key returns the date key for a calendar day.
func Key(year int, month time.Month, day int) string {
	return fmt.Sprintf("%04d-%02d-%02d", year, int(month), day)
}

// KeyOf returns the date key of t in its own location.
func KeyOf(t time.Time) string {
	return t.Format(KeyLayout)
}

// NormalizeKey accepts both the canonical key and the older unpadded
// "YYYY-M-D" form and returns the canonical key.
func NormalizeKey(raw string) (string, bool) {
	parts := strings.Split(strings.TrimSpace(raw), "-")
	if len(parts) != 3 {
		return "", false
	}
	values := make([]int, 3)
	for i, part := range parts {
		value, err := strconv.Atoi(part)
		if err != nil || value <= 0 {
			return "", false
		}
		values[i] = value
	}
	year, month, day := values[0], time.Month(values[1]), values[2]
	date := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	if date.Year() != year || date.Month() != month || date.Day() != day {
		return "", false
	}
	return Key(year, month, day), true
}
