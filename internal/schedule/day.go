package schedule

import (
	"fmt"
	"strings"
	"time"
)

// Day is one of the seven canonical weekday names.
type Day string

const (
	Monday    Day = "Monday"
	Tuesday   Day = "Tuesday"
	Wednesday Day = "Wednesday"
	Thursday  Day = "Thursday"
	Friday    Day = "Friday"
	Saturday  Day = "Saturday"
	Sunday    Day = "Sunday"
)

// Days is the cyclic week ordering, Monday (0) through Sunday (6).
var Days = [7]Day{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

// ParseDay resolves a weekday name case-insensitively.
// Three-letter abbreviations ("mon", "Tue") are accepted.
func ParseDay(s string) (Day, error) {
	input := strings.ToLower(strings.TrimSpace(s))
	if input != "" {
		for _, d := range Days {
			name := strings.ToLower(string(d))
			if input == name || (len(input) == 3 && strings.HasPrefix(name, input)) {
				return d, nil
			}
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidDay, s)
}

// Index returns the position of d in Days, or -1 if d is not canonical.
func (d Day) Index() int {
	for i, day := range Days {
		if day == d {
			return i
		}
	}
	return -1
}

// Valid reports whether d is a canonical weekday name.
func (d Day) Valid() bool {
	return d.Index() >= 0
}

// Short returns the three-letter abbreviation ("Mon").
func (d Day) Short() string {
	if !d.Valid() {
		return ""
	}
	return string(d)[:3]
}

// NextDay returns the day after d, wrapping Sunday to Monday.
// Returns "" for a non-canonical day.
func NextDay(d Day) Day {
	i := d.Index()
	if i < 0 {
		return ""
	}
	return Days[(i+1)%len(Days)]
}

// DayOf returns the weekday name of t.
func DayOf(t time.Time) Day {
	// time.Weekday counts from Sunday
	return Days[(int(t.Weekday())+6)%7]
}
