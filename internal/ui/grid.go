package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/javiermolinar/pillars/internal/catalog"
	"github.com/javiermolinar/pillars/internal/schedule"
)

const timeColumnWidth = 6

// gridOpts controls which rows of the week grid are drawn and how wide each
// day column is.
type gridOpts struct {
	ViewStart string // first row, "HH:MM"
	ViewEnd   string // last row, "HH:MM"
	CellWidth int
}

// cellWidthFor fits seven day columns into the terminal width.
func cellWidthFor(width int) int {
	w := (width-timeColumnWidth)/7 - 1
	return min(max(w, 5), 16)
}

// renderGrid draws the week as a table of time rows by day columns. The
// first cell of each block shows the activity name, the rest of the block is
// painted without text. Activities missing from the catalog show as "?".
func renderGrid(w io.Writer, week schedule.Week, grid schedule.Grid, cat catalog.Catalog, opts gridOpts) {
	var b strings.Builder

	b.WriteString(strings.Repeat(" ", timeColumnWidth))
	for i, day := range schedule.Days {
		date := week.StartDate.AddDate(0, 0, i)
		label := fmt.Sprintf("%s %d", day.Short(), date.Day())
		b.WriteString(formatHeader(fmt.Sprintf("%-*s", opts.CellWidth, truncate(label, opts.CellWidth))))
		b.WriteString(" ")
	}
	b.WriteString("\n")

	for i, t := range grid.Times() {
		if t < opts.ViewStart || t > opts.ViewEnd {
			continue
		}
		b.WriteString(formatMuted(fmt.Sprintf("%-*s", timeColumnWidth, t)))
		for _, day := range schedule.Days {
			b.WriteString(renderCell(week.Schedule, grid, cat, day, i, opts.CellWidth))
			b.WriteString(" ")
		}
		b.WriteString("\n")
	}

	fmt.Fprint(w, b.String())
}

func renderCell(ws schedule.WeekSchedule, grid schedule.Grid, cat catalog.Catalog, day schedule.Day, i, width int) string {
	slot := ws.Slot(day, grid.At(i))
	if !slot.Occupied() {
		return formatMuted(fmt.Sprintf("%-*s", width, "·"))
	}

	a, ok := cat.FindActivity(slot.ActivityID)
	if !ok {
		return formatWarn(fmt.Sprintf("%-*s", width, "?"))
	}

	label := a.Name
	if i > 0 {
		prev := ws.Slot(day, grid.At(i-1))
		if prev.ActivityID == slot.ActivityID && prev.EndTime == "" {
			label = ""
		}
	}
	return paint(a, label, width)
}
