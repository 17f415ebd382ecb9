// Package summary aggregates how a week's time is spread over pillars and
// activities.
package summary

import (
	"fmt"
	"time"

	"github.com/javiermolinar/pillars/internal/catalog"
	"github.com/javiermolinar/pillars/internal/schedule"
)

// ActivityTotal holds the time booked for one activity.
type ActivityTotal struct {
	Activity catalog.Activity
	Slots    int
	Minutes  int
}

// PillarTotal holds the time booked for one pillar and its activities.
type PillarTotal struct {
	ID         string
	Name       string
	Minutes    int
	Activities []ActivityTotal
}

// WeekSummary holds aggregated week data.
type WeekSummary struct {
	Start            time.Time
	End              time.Time
	Pillars          []PillarTotal // catalog order
	UnlabeledMinutes int           // slots whose activity is no longer in the catalog
	TotalMinutes     int
	DayMinutes       [7]int // Monday (0) through Sunday (6)
}

// SummarizeWeek counts the occupied slots of week, attributing each to its
// activity and pillar. Every pillar and activity of the catalog appears in
// the result, booked or not.
func SummarizeWeek(week schedule.Week, grid schedule.Grid, cat catalog.Catalog) *WeekSummary {
	slotMinutes := grid.SlotMinutes()
	counts := make(map[string]int)
	s := &WeekSummary{
		Start: week.StartDate,
		End:   week.EndDate(),
	}

	for day, slots := range week.Schedule {
		di := day.Index()
		for _, slot := range slots {
			if !slot.Occupied() {
				continue
			}
			if di >= 0 {
				s.DayMinutes[di] += slotMinutes
			}
			s.TotalMinutes += slotMinutes
			if cat.HasActivity(slot.ActivityID) {
				counts[slot.ActivityID]++
			} else {
				s.UnlabeledMinutes += slotMinutes
			}
		}
	}

	for _, p := range cat.Pillars {
		pt := PillarTotal{ID: p.ID, Name: p.Name}
		for _, a := range p.Activities {
			at := ActivityTotal{Activity: a, Slots: counts[a.ID]}
			at.Minutes = at.Slots * slotMinutes
			pt.Minutes += at.Minutes
			pt.Activities = append(pt.Activities, at)
		}
		s.Pillars = append(s.Pillars, pt)
	}
	return s
}

// Percent returns minutes as a percentage of the booked total.
func (s *WeekSummary) Percent(minutes int) int {
	if s.TotalMinutes == 0 {
		return 0
	}
	return (minutes * 100) / s.TotalMinutes
}

// BusiestDay returns the day with the most booked time and its minutes.
// Returns "" when nothing is booked.
func (s *WeekSummary) BusiestDay() (day schedule.Day, minutes int) {
	for i, m := range s.DayMinutes {
		if m > minutes {
			minutes = m
			day = schedule.Days[i]
		}
	}
	return day, minutes
}

// FormatMinutes renders a duration as "1h30m", "2h" or "45m".
func FormatMinutes(m int) string {
	h, rest := m/60, m%60
	switch {
	case h == 0:
		return fmt.Sprintf("%dm", rest)
	case rest == 0:
		return fmt.Sprintf("%dh", h)
	default:
		return fmt.Sprintf("%dh%02dm", h, rest)
	}
}
