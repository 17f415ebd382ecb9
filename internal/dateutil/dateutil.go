// Package dateutil provides date parsing helpers for week start dates.
package dateutil

import (
	"errors"
	"strings"
	"time"
)

// DateLayout is the calendar date format used for input, storage and export.
const DateLayout = "2006-01-02"

// ErrInvalidDateFormat is returned for dates that are neither YYYY-MM-DD nor
// one of the recognized keywords.
var ErrInvalidDateFormat = errors.New("date must be in YYYY-MM-DD format")

// weekdayMap maps weekday names to time.Weekday values.
var weekdayMap = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

// ParseDate parses a date string in YYYY-MM-DD format as local midnight.
// If the string is empty, returns today's date.
func ParseDate(s string) (time.Time, error) {
	if s == "" {
		return TruncateToDay(time.Now()), nil
	}
	t, err := time.ParseInLocation(DateLayout, s, time.Local)
	if err != nil {
		return time.Time{}, ErrInvalidDateFormat
	}
	return t, nil
}

// FormatDate formats t as YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// StartOfWeek returns the Monday of the week containing t.
func StartOfWeek(t time.Time) time.Time {
	t = TruncateToDay(t)
	weekday := int(t.Weekday())
	if weekday == 0 {
		weekday = 7 // Sunday becomes day 7 in ISO week
	}
	return t.AddDate(0, 0, -(weekday - 1))
}

// TruncateToDay returns t with time set to midnight.
func TruncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// ParseWeekStart parses the start date of a planner week. Accepted input:
//   - Empty string or "this-week": Monday of the week containing relativeTo
//   - "today": relativeTo itself
//   - "next-week" / "last-week": Monday of the following / previous week
//   - Weekday names: "monday" through "sunday", the next occurrence on or
//     after relativeTo
//   - Absolute date: "2025-01-13" (YYYY-MM-DD), past dates included
//
// All inputs are case-insensitive.
func ParseWeekStart(s string, relativeTo time.Time) (time.Time, error) {
	today := TruncateToDay(relativeTo)
	input := strings.ToLower(strings.TrimSpace(s))

	switch input {
	case "", "this-week":
		return StartOfWeek(today), nil
	case "today":
		return today, nil
	case "next-week":
		return StartOfWeek(today).AddDate(0, 0, 7), nil
	case "last-week":
		return StartOfWeek(today).AddDate(0, 0, -7), nil
	}

	if target, ok := weekdayMap[input]; ok {
		return upcomingWeekday(today, target), nil
	}

	result, err := time.ParseInLocation(DateLayout, input, relativeTo.Location())
	if err != nil {
		return time.Time{}, ErrInvalidDateFormat
	}
	return result, nil
}

// upcomingWeekday returns the first date on or after today falling on target.
func upcomingWeekday(today time.Time, target time.Weekday) time.Time {
	daysUntil := int(target) - int(today.Weekday())
	if daysUntil < 0 {
		daysUntil += 7
	}
	return today.AddDate(0, 0, daysUntil)
}
