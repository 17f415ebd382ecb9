// Package schedule implements the weekly slot grid: the per-week schedule
// store, the slot assignment engine, block deletion and week navigation.
//
// Every operation is a pure function. Inputs are never mutated; callers keep
// the returned value as the new state.
package schedule

import (
	"errors"
	"fmt"
	"maps"
)

// Validation errors.
var (
	ErrInvalidDay         = errors.New("day must be a weekday name")
	ErrInvalidTime        = errors.New("time must be a grid time in HH:MM format")
	ErrInvalidGranularity = errors.New("slot minutes must evenly divide a day")
	ErrEmptyActivity      = errors.New("activity id cannot be empty")
)

// State errors.
var (
	ErrNoWeeks             = errors.New("schedule has no weeks")
	ErrWeekIndexOutOfRange = errors.New("week index out of range")
	ErrWeekNotFound        = errors.New("week not found")
	ErrMalformedSchedule   = errors.New("malformed week schedule")
)

// TimeSlot is the content of one grid cell.
type TimeSlot struct {
	ActivityID string // empty when the slot is free
	EndTime    string // "HH:MM", set only on the slot that ends a block
}

// IsEmpty reports whether the slot holds nothing at all.
func (s TimeSlot) IsEmpty() bool {
	return s.ActivityID == "" && s.EndTime == ""
}

// Occupied reports whether an activity is assigned to the slot.
func (s TimeSlot) Occupied() bool {
	return s.ActivityID != ""
}

// WeekSchedule maps day -> grid time -> slot. Both levels are sparse: a
// missing key reads as an empty slot.
type WeekSchedule map[Day]map[string]TimeSlot

// Slot returns the slot at (day, t), or an empty slot if none is stored.
func (ws WeekSchedule) Slot(day Day, t string) TimeSlot {
	return ws[day][t]
}

// WithSlot returns a copy of ws with the (day, t) entry replaced by slot.
// An empty slot removes the entry.
func (ws WeekSchedule) WithSlot(day Day, t string, slot TimeSlot) WeekSchedule {
	out := ws.Clone()
	out.put(day, t, slot)
	return out
}

// EnsureDay creates the inner map for day if it is missing.
// It writes to ws, so it must only be called on a schedule the caller owns.
func (ws WeekSchedule) EnsureDay(day Day) {
	if ws[day] == nil {
		ws[day] = make(map[string]TimeSlot)
	}
}

// put stores slot in place.
func (ws WeekSchedule) put(day Day, t string, slot TimeSlot) {
	if slot.IsEmpty() {
		delete(ws[day], t)
		return
	}
	ws.EnsureDay(day)
	ws[day][t] = slot
}

// Clone returns a deep copy of ws. A nil schedule clones to an empty one.
func (ws WeekSchedule) Clone() WeekSchedule {
	out := make(WeekSchedule, len(ws))
	for day, slots := range ws {
		out[day] = maps.Clone(slots)
		if out[day] == nil {
			out[day] = make(map[string]TimeSlot)
		}
	}
	return out
}

// Occupied returns the number of slots holding an activity.
func (ws WeekSchedule) Occupied() int {
	n := 0
	for _, slots := range ws {
		for _, s := range slots {
			if s.Occupied() {
				n++
			}
		}
	}
	return n
}

// Validate checks that every stored key is a canonical day and grid time.
func (ws WeekSchedule) Validate(grid Grid) error {
	for day, slots := range ws {
		if !day.Valid() {
			return fmt.Errorf("%w: unknown day %q", ErrMalformedSchedule, day)
		}
		for t, s := range slots {
			if !grid.Contains(t) {
				return fmt.Errorf("%w: %s %q is not on the %d-minute grid",
					ErrMalformedSchedule, day, t, grid.SlotMinutes())
			}
			if s.EndTime != "" && !grid.Contains(s.EndTime) {
				return fmt.Errorf("%w: %s %s end marker %q is not on the grid",
					ErrMalformedSchedule, day, t, s.EndTime)
			}
		}
	}
	return nil
}

// PruneUnknown returns a copy of ws without the slots whose activity is not
// known, and the number of slots removed.
func PruneUnknown(ws WeekSchedule, known func(activityID string) bool) (WeekSchedule, int) {
	out := ws.Clone()
	removed := 0
	for _, slots := range out {
		for t, s := range slots {
			if s.Occupied() && !known(s.ActivityID) {
				delete(slots, t)
				removed++
			}
		}
	}
	return out, removed
}

func checkDay(day Day) error {
	if !day.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidDay, day)
	}
	return nil
}
