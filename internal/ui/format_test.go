package ui

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/javiermolinar/pillars/internal/catalog"
	"github.com/javiermolinar/pillars/internal/schedule"
)

func TestTruncate(t *testing.T) {
	tests := []struct {
		input string
		width int
		want  string
	}{
		{"Lunch", 10, "Lunch"},
		{"Deep work", 9, "Deep work"},
		{"Procrastination", 6, "Procr…"},
		{"Lunch", 0, ""},
	}

	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			if got := truncate(tc.input, tc.width); got != tc.want {
				t.Errorf("truncate(%q, %d) = %q, want %q", tc.input, tc.width, got, tc.want)
			}
		})
	}
}

func TestBar(t *testing.T) {
	DisableColor()

	tests := []struct {
		name           string
		minutes, total int
		want           string
	}{
		{"empty", 0, 0, "[░░░░]"},
		{"half", 60, 120, "[██░░]"},
		{"full", 120, 120, "[████]"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Bar(tc.minutes, tc.total, 4); got != tc.want {
				t.Errorf("Bar(%d, %d) = %q, want %q", tc.minutes, tc.total, got, tc.want)
			}
		})
	}
}

func TestCellWidthFor(t *testing.T) {
	tests := []struct {
		width, want int
	}{
		{80, 9},
		{20, 5},
		{300, 16},
	}

	for _, tc := range tests {
		if got := cellWidthFor(tc.width); got != tc.want {
			t.Errorf("cellWidthFor(%d) = %d, want %d", tc.width, got, tc.want)
		}
	}
}

func TestRenderGrid(t *testing.T) {
	DisableColor()

	g := schedule.MustGrid(60)
	week := schedule.NewWeek(time.Date(2025, 1, 13, 0, 0, 0, 0, time.Local))
	ws, err := schedule.Assign(week.Schedule, g, schedule.Monday, "09:00", "11:00", "7")
	if err != nil {
		t.Fatalf("Assign failed: %v", err)
	}
	week.Schedule = ws.WithSlot(schedule.Tuesday, "09:00", schedule.TimeSlot{ActivityID: "gone"})

	var buf bytes.Buffer
	renderGrid(&buf, week, g, catalog.Default(), gridOpts{ViewStart: "09:00", ViewEnd: "10:00", CellWidth: 10})

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header and 2 rows, got %d:\n%s", len(lines), buf.String())
	}
	if !strings.HasPrefix(strings.TrimSpace(lines[0]), "Mon 13") || !strings.Contains(lines[0], "Sun 19") {
		t.Errorf("unexpected header %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "09:00 ") || !strings.Contains(lines[1], "Deep work") || !strings.Contains(lines[1], "?") {
		t.Errorf("unexpected 09:00 row %q", lines[1])
	}
	if strings.Contains(lines[2], "Deep work") {
		t.Errorf("block continuation should not repeat the label: %q", lines[2])
	}
	if !strings.Contains(lines[2], "·") {
		t.Errorf("expected empty cells in 10:00 row %q", lines[2])
	}
}

func TestPrintWeeks(t *testing.T) {
	DisableColor()

	monday := time.Date(2025, 1, 13, 0, 0, 0, 0, time.Local)
	state := schedule.NewState(monday)
	state = schedule.AddWeek(state, monday.AddDate(0, 0, 7))
	state = schedule.SetCurrentWeekIndex(state, 1)

	var buf bytes.Buffer
	printWeeks(&buf, state)

	want := "   1  Mon Jan 13 - Sun Jan 19, 2025  0 slots\n" +
		"*  2  Mon Jan 20 - Sun Jan 26, 2025  0 slots\n"
	if buf.String() != want {
		t.Errorf("printWeeks() =\n%q\nwant\n%q", buf.String(), want)
	}
}

func TestPrintActivities(t *testing.T) {
	DisableColor()

	var buf bytes.Buffer
	printActivities(&buf, catalog.Default())
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 10 {
		t.Fatalf("expected 10 activities, got %d:\n%s", len(lines), buf.String())
	}
	if !strings.Contains(lines[6], "7    Deep work") || !strings.Contains(lines[6], "Work") {
		t.Errorf("unexpected line for activity 7: %q", lines[6])
	}

	buf.Reset()
	printActivities(&buf, catalog.Catalog{})
	if !strings.Contains(buf.String(), "No activities yet") {
		t.Errorf("unexpected output for empty catalog: %q", buf.String())
	}
}
