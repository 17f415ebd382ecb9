package planner

import (
	"context"
	"fmt"

	"github.com/javiermolinar/pillars/internal/logger"
	"github.com/javiermolinar/pillars/internal/schedule"
)

// CellAction is what a click on a grid cell did.
type CellAction int

const (
	// CellAssigned means the empty cell started a new block.
	CellAssigned CellAction = iota
	// CellCleared means the occupied cell was cleared.
	CellCleared
)

func (a CellAction) String() string {
	switch a {
	case CellAssigned:
		return "assigned"
	case CellCleared:
		return "cleared"
	default:
		return "unknown"
	}
}

// Assign fills the selection from start to end on day of the selected week
// with activityID and returns the cells that were written. Occupied cells
// are left alone. The activity must exist in the catalog.
func (p *Planner) Assign(ctx context.Context, day schedule.Day, start, end, activityID string) ([]schedule.Cell, error) {
	if activityID != "" && !p.catalog.HasActivity(activityID) {
		return nil, fmt.Errorf("%w: %s", ErrUnknownActivity, activityID)
	}

	week, _ := p.state.Current()
	claimed, err := schedule.Claimable(week.Schedule, p.grid, day, start, end)
	if err != nil {
		return nil, err
	}
	ws, err := schedule.Assign(week.Schedule, p.grid, day, start, end, activityID)
	if err != nil {
		return nil, err
	}

	next, err := schedule.ReplaceSchedule(p.state, week.ID, ws)
	if err != nil {
		return nil, err
	}
	if err := p.saveState(ctx, next); err != nil {
		return nil, err
	}

	logger.Debug("assigned block",
		"week", week.ID, "day", day, "start", start, "end", end,
		"activity", activityID, "claimed", len(claimed))
	return claimed, nil
}

// Clear runs block deletion on the cell at (day, t) of the selected week and
// returns the slot that was there.
func (p *Planner) Clear(ctx context.Context, day schedule.Day, t string) (schedule.TimeSlot, error) {
	week, _ := p.state.Current()
	ws, err := schedule.DeleteBlock(week.Schedule, p.grid, day, t)
	if err != nil {
		return schedule.TimeSlot{}, err
	}

	next, err := schedule.ReplaceSchedule(p.state, week.ID, ws)
	if err != nil {
		return schedule.TimeSlot{}, err
	}
	if err := p.saveState(ctx, next); err != nil {
		return schedule.TimeSlot{}, err
	}

	removed := week.Schedule.Slot(day, t)
	logger.Debug("cleared slot", "week", week.ID, "day", day, "time", t, "activity", removed.ActivityID)
	return removed, nil
}

// Click handles a click on the cell at (day, t) of the selected week: an
// occupied cell is cleared, an empty one becomes the start of a block that
// runs to end with activityID.
func (p *Planner) Click(ctx context.Context, day schedule.Day, t, end, activityID string) (CellAction, error) {
	week, _ := p.state.Current()
	if week.Schedule.Slot(day, t).Occupied() {
		_, err := p.Clear(ctx, day, t)
		return CellCleared, err
	}

	if end == "" || activityID == "" {
		return CellAssigned, ErrAssignmentRequired
	}
	_, err := p.Assign(ctx, day, t, end, activityID)
	return CellAssigned, err
}

// Prune removes from every week the slots whose activity is no longer in
// the catalog and returns how many were removed.
func (p *Planner) Prune(ctx context.Context) (int, error) {
	next, removed := schedule.PruneState(p.state, p.catalog.HasActivity)
	if removed == 0 {
		return 0, nil
	}
	if err := p.saveState(ctx, next); err != nil {
		return 0, err
	}
	logger.Info("pruned dangling slots", "removed", removed)
	return removed, nil
}
