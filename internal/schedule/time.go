package schedule

import (
	"fmt"
	"time"
)

// MinutesPerDay is the length of one grid day.
const MinutesPerDay = 24 * 60

// ParseClock converts "HH:MM" to minutes since midnight.
func ParseClock(s string) (int, error) {
	if len(s) != 5 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTime, s)
	}
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTime, s)
	}
	return t.Hour()*60 + t.Minute(), nil
}

// MinutesToTime converts minutes since midnight to "HH:MM" format.
func MinutesToTime(m int) string {
	if m < 0 {
		m = 0
	}
	if m >= MinutesPerDay {
		m = MinutesPerDay - 1
	}
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}

// Cell addresses one slot of a week schedule.
type Cell struct {
	Day  Day
	Time string
}

func (c Cell) String() string {
	return string(c.Day) + " " + c.Time
}

// Grid is the ordered list of slot start times of a day at a fixed
// granularity. Index 0 is midnight.
type Grid struct {
	slotMinutes int
	times       []string
	index       map[string]int
}

// NewGrid builds the grid for the given slot length in minutes.
// The length must divide a day evenly.
func NewGrid(slotMinutes int) (Grid, error) {
	if slotMinutes <= 0 || MinutesPerDay%slotMinutes != 0 {
		return Grid{}, fmt.Errorf("%w: got %d", ErrInvalidGranularity, slotMinutes)
	}

	n := MinutesPerDay / slotMinutes
	g := Grid{
		slotMinutes: slotMinutes,
		times:       make([]string, n),
		index:       make(map[string]int, n),
	}
	for i := range n {
		t := MinutesToTime(i * slotMinutes)
		g.times[i] = t
		g.index[t] = i
	}
	return g, nil
}

// MustGrid is like NewGrid but panics on an invalid slot length.
func MustGrid(slotMinutes int) Grid {
	g, err := NewGrid(slotMinutes)
	if err != nil {
		panic(err)
	}
	return g
}

// SlotMinutes returns the duration of one slot.
func (g Grid) SlotMinutes() int {
	return g.slotMinutes
}

// Len returns the number of slots in a day.
func (g Grid) Len() int {
	return len(g.times)
}

// At returns the grid time at position i.
func (g Grid) At(i int) string {
	return g.times[i]
}

// Times returns a copy of the grid times in order.
func (g Grid) Times() []string {
	out := make([]string, len(g.times))
	copy(out, g.times)
	return out
}

// Index returns the position of t in the grid.
func (g Grid) Index(t string) (int, bool) {
	i, ok := g.index[t]
	return i, ok
}

// Contains reports whether t is a grid time.
func (g Grid) Contains(t string) bool {
	_, ok := g.index[t]
	return ok
}

// Following returns the cell right after c, moving to the first slot of the
// next day after the last slot.
func (g Grid) Following(c Cell) Cell {
	i, ok := g.Index(c.Time)
	if !ok {
		return Cell{}
	}
	if i+1 < g.Len() {
		return Cell{Day: c.Day, Time: g.times[i+1]}
	}
	return Cell{Day: NextDay(c.Day), Time: g.times[0]}
}

// checkTime validates that t is a grid time and returns its index.
func (g Grid) checkTime(t string) (int, error) {
	i, ok := g.Index(t)
	if !ok {
		return 0, fmt.Errorf("%w: %q is not on the %d-minute grid", ErrInvalidTime, t, g.slotMinutes)
	}
	return i, nil
}
