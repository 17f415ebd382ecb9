package planner

import (
	"context"
	"time"

	"github.com/javiermolinar/pillars/internal/logger"
	"github.com/javiermolinar/pillars/internal/schedule"
)

// AddWeek appends an empty week starting at start and returns it. The
// selected week does not change.
func (p *Planner) AddWeek(ctx context.Context, start time.Time) (schedule.Week, error) {
	next := schedule.AddWeek(p.state, start)
	if err := p.saveState(ctx, next); err != nil {
		return schedule.Week{}, err
	}
	w := next.Weeks[len(next.Weeks)-1]
	logger.Debug("added week", "week", w.ID, "start", w.StartDate.Format("2006-01-02"))
	return w.Clone(), nil
}

// SelectWeek makes the week at index (0-based) the selected week.
// An out-of-range index returns schedule.ErrWeekIndexOutOfRange and changes
// nothing.
func (p *Planner) SelectWeek(ctx context.Context, index int) error {
	if err := schedule.CheckWeekIndex(p.state, index); err != nil {
		return err
	}
	return p.saveState(ctx, schedule.SetCurrentWeekIndex(p.state, index))
}

// NextWeek selects the following week. It reports false when the last week
// is already selected.
func (p *Planner) NextWeek(ctx context.Context) (bool, error) {
	return p.move(ctx, schedule.NextWeek(p.state))
}

// PreviousWeek selects the preceding week. It reports false when the first
// week is already selected.
func (p *Planner) PreviousWeek(ctx context.Context) (bool, error) {
	return p.move(ctx, schedule.PreviousWeek(p.state))
}

func (p *Planner) move(ctx context.Context, next schedule.State) (bool, error) {
	if next.CurrentWeekIndex == p.state.CurrentWeekIndex {
		return false, nil
	}
	if err := p.saveState(ctx, next); err != nil {
		return false, err
	}
	return true, nil
}

// SetWeekStart changes the start date of the selected week.
func (p *Planner) SetWeekStart(ctx context.Context, start time.Time) error {
	week, _ := p.state.Current()
	next, err := schedule.SetWeekStartDate(p.state, week.ID, start)
	if err != nil {
		return err
	}
	return p.saveState(ctx, next)
}
