package schedule

// Span lists the cells covered by a selection from start through end on day,
// in painting order. When end is not after start the selection runs past
// midnight: it covers the rest of day and then the next day up to and
// including end. start == end therefore spans a full day plus one slot.
func Span(grid Grid, day Day, start, end string) ([]Cell, error) {
	if err := checkDay(day); err != nil {
		return nil, err
	}
	startIdx, err := grid.checkTime(start)
	if err != nil {
		return nil, err
	}
	endIdx, err := grid.checkTime(end)
	if err != nil {
		return nil, err
	}

	var cells []Cell
	if endIdx <= startIdx {
		for i := startIdx; i < grid.Len(); i++ {
			cells = append(cells, Cell{Day: day, Time: grid.At(i)})
		}
		next := NextDay(day)
		for i := 0; i <= endIdx; i++ {
			cells = append(cells, Cell{Day: next, Time: grid.At(i)})
		}
		return cells, nil
	}

	for i := startIdx; i <= endIdx; i++ {
		cells = append(cells, Cell{Day: day, Time: grid.At(i)})
	}
	return cells, nil
}

// Assign paints activityID over the selection described by Span and returns
// the updated schedule. Slots that already hold an activity are skipped, so
// an existing booking always survives. The last cell of the span, the one
// at end, carries end as its block marker; when that cell is occupied no
// marker is written.
//
// ws is not modified. On error ws is returned unchanged.
func Assign(ws WeekSchedule, grid Grid, day Day, start, end, activityID string) (WeekSchedule, error) {
	if activityID == "" {
		return ws, ErrEmptyActivity
	}
	cells, err := Span(grid, day, start, end)
	if err != nil {
		return ws, err
	}

	out := ws.Clone()
	last := len(cells) - 1
	for i, c := range cells {
		if out.Slot(c.Day, c.Time).Occupied() {
			continue
		}
		slot := TimeSlot{ActivityID: activityID}
		if i == last {
			slot.EndTime = end
		}
		out.put(c.Day, c.Time, slot)
	}
	return out, nil
}

// Claimable returns the cells of a selection that Assign would write, that
// is the cells of the span that are currently free.
func Claimable(ws WeekSchedule, grid Grid, day Day, start, end string) ([]Cell, error) {
	cells, err := Span(grid, day, start, end)
	if err != nil {
		return nil, err
	}
	free := cells[:0]
	for _, c := range cells {
		if !ws.Slot(c.Day, c.Time).Occupied() {
			free = append(free, c)
		}
	}
	return free, nil
}
