package schedule

// DeleteBlock clears the slot at (day, t) and returns the updated schedule.
//
// If the slot right after it (the first slot of the next day when t is the
// last slot of the day) carries an end marker equal to t, that marker is
// cleared as well; its activity stays. Nothing else is touched: the other
// slots of a multi-slot block keep their activity and must be cleared one by
// one.
//
// ws is not modified. On error ws is returned unchanged.
func DeleteBlock(ws WeekSchedule, grid Grid, day Day, t string) (WeekSchedule, error) {
	if err := checkDay(day); err != nil {
		return ws, err
	}
	if _, err := grid.checkTime(t); err != nil {
		return ws, err
	}

	out := ws.Clone()
	out.put(day, t, TimeSlot{})

	next := grid.Following(Cell{Day: day, Time: t})
	if s := out.Slot(next.Day, next.Time); s.EndTime == t {
		s.EndTime = ""
		out.put(next.Day, next.Time, s)
	}
	return out, nil
}
