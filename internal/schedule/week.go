package schedule

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/javiermolinar/pillars/internal/dateutil"
)

// Week is one page of the planner: a start date and its slot grid.
type Week struct {
	ID        string
	StartDate time.Time
	Schedule  WeekSchedule
}

// NewWeek creates a Week with an empty schedule and a fresh id.
// The start date is kept as given (truncated to the day); it is not moved
// to a Monday.
func NewWeek(start time.Time) Week {
	return Week{
		ID:        uuid.NewString(),
		StartDate: dateutil.TruncateToDay(start),
		Schedule:  WeekSchedule{},
	}
}

// EndDate returns the last date covered by the week.
func (w Week) EndDate() time.Time {
	return w.StartDate.AddDate(0, 0, 6)
}

// Clone returns a deep copy of w.
func (w Week) Clone() Week {
	w.Schedule = w.Schedule.Clone()
	return w
}

// State is the full planner state: every week in the order it was added and
// the week currently shown.
type State struct {
	Weeks            []Week
	CurrentWeekIndex int
}

// NewState returns a state holding a single empty week starting at start.
func NewState(start time.Time) State {
	return AddWeek(State{}, start)
}

// Clone returns a deep copy of s.
func (s State) Clone() State {
	out := State{CurrentWeekIndex: s.CurrentWeekIndex}
	if s.Weeks != nil {
		out.Weeks = make([]Week, len(s.Weeks))
		for i, w := range s.Weeks {
			out.Weeks[i] = w.Clone()
		}
	}
	return out
}

// Current returns the selected week.
func (s State) Current() (Week, bool) {
	if s.CurrentWeekIndex < 0 || s.CurrentWeekIndex >= len(s.Weeks) {
		return Week{}, false
	}
	return s.Weeks[s.CurrentWeekIndex], true
}

// WeekIndex returns the position of the week with the given id, or -1.
func (s State) WeekIndex(id string) int {
	for i, w := range s.Weeks {
		if w.ID == id {
			return i
		}
	}
	return -1
}

// AddWeek appends an empty week starting at start. Weeks are not reordered
// by date and the current week does not change.
func AddWeek(s State, start time.Time) State {
	out := s.Clone()
	out.Weeks = append(out.Weeks, NewWeek(start))
	return out
}

// CheckWeekIndex reports whether index addresses a week of s.
func CheckWeekIndex(s State, index int) error {
	if index < 0 || index >= len(s.Weeks) {
		return fmt.Errorf("%w: %d not in [0, %d)", ErrWeekIndexOutOfRange, index, len(s.Weeks))
	}
	return nil
}

// SetCurrentWeekIndex selects the week at index. An out-of-range index
// leaves s unchanged.
func SetCurrentWeekIndex(s State, index int) State {
	if CheckWeekIndex(s, index) != nil {
		return s
	}
	out := s.Clone()
	out.CurrentWeekIndex = index
	return out
}

// PreviousWeek moves the selection one week back, staying on the first week.
func PreviousWeek(s State) State {
	return SetCurrentWeekIndex(s, s.CurrentWeekIndex-1)
}

// NextWeek moves the selection one week forward, staying on the last week.
func NextWeek(s State) State {
	return SetCurrentWeekIndex(s, s.CurrentWeekIndex+1)
}

// SetWeekStartDate changes the start date of the week with the given id.
func SetWeekStartDate(s State, weekID string, start time.Time) (State, error) {
	i := s.WeekIndex(weekID)
	if i < 0 {
		return s, fmt.Errorf("%w: %s", ErrWeekNotFound, weekID)
	}
	out := s.Clone()
	out.Weeks[i].StartDate = dateutil.TruncateToDay(start)
	return out, nil
}

// ReplaceSchedule swaps in ws as the schedule of the week with the given id.
func ReplaceSchedule(s State, weekID string, ws WeekSchedule) (State, error) {
	i := s.WeekIndex(weekID)
	if i < 0 {
		return s, fmt.Errorf("%w: %s", ErrWeekNotFound, weekID)
	}
	out := s.Clone()
	out.Weeks[i].Schedule = ws.Clone()
	return out, nil
}

// PruneState applies PruneUnknown to every week and returns the total number
// of slots removed.
func PruneState(s State, known func(activityID string) bool) (State, int) {
	out := s.Clone()
	total := 0
	for i, w := range out.Weeks {
		ws, n := PruneUnknown(w.Schedule, known)
		out.Weeks[i].Schedule = ws
		total += n
	}
	return out, total
}

// Validate checks the structural invariants of a loaded state: at least one
// week, a current index in range, unique non-empty week ids and schedules
// keyed by canonical days and grid times.
func (s State) Validate(grid Grid) error {
	if len(s.Weeks) == 0 {
		return ErrNoWeeks
	}
	if err := CheckWeekIndex(s, s.CurrentWeekIndex); err != nil {
		return err
	}
	seen := make(map[string]bool, len(s.Weeks))
	for i, w := range s.Weeks {
		if w.ID == "" {
			return fmt.Errorf("week %d has no id", i)
		}
		if seen[w.ID] {
			return fmt.Errorf("duplicate week id %s", w.ID)
		}
		seen[w.ID] = true
		if err := w.Schedule.Validate(grid); err != nil {
			return fmt.Errorf("week %s: %w", w.ID, err)
		}
	}
	return nil
}
