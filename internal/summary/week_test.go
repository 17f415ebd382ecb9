package summary

import (
	"testing"
	"time"

	"github.com/javiermolinar/pillars/internal/catalog"
	"github.com/javiermolinar/pillars/internal/schedule"
)

func TestSummarizeWeek(t *testing.T) {
	grid := schedule.MustGrid(30)
	cat := catalog.Default()
	week := schedule.NewWeek(time.Date(2025, 1, 13, 0, 0, 0, 0, time.Local))

	ws := week.Schedule
	var err error
	// 2h of deep work on Monday, 1h30 of lunch on Tuesday, 1h of an unknown activity.
	ws, err = schedule.Assign(ws, grid, schedule.Monday, "09:00", "10:30", "7")
	if err != nil {
		t.Fatalf("Assign failed: %v", err)
	}
	ws, err = schedule.Assign(ws, grid, schedule.Tuesday, "12:00", "13:00", "4")
	if err != nil {
		t.Fatalf("Assign failed: %v", err)
	}
	ws, err = schedule.Assign(ws, grid, schedule.Tuesday, "20:00", "20:30", "deleted")
	if err != nil {
		t.Fatalf("Assign failed: %v", err)
	}
	week.Schedule = ws

	s := SummarizeWeek(week, grid, cat)

	if s.TotalMinutes != 270 {
		t.Errorf("TotalMinutes = %d, want 270", s.TotalMinutes)
	}
	if s.UnlabeledMinutes != 60 {
		t.Errorf("UnlabeledMinutes = %d, want 60", s.UnlabeledMinutes)
	}
	if len(s.Pillars) != 4 {
		t.Fatalf("pillars = %d, want 4", len(s.Pillars))
	}

	work := s.Pillars[2]
	if work.Name != "Work" || work.Minutes != 120 {
		t.Errorf("Work = %q %d, want 120 minutes", work.Name, work.Minutes)
	}
	if deep := work.Activities[1]; deep.Activity.ID != "7" || deep.Slots != 4 || deep.Minutes != 120 {
		t.Errorf("Deep work total = %+v", deep)
	}
	if meals := s.Pillars[1]; meals.Minutes != 90 {
		t.Errorf("Meals minutes = %d, want 90", meals.Minutes)
	}
	if social := s.Pillars[0]; social.Minutes != 0 || len(social.Activities) != 2 {
		t.Errorf("Social = %+v, want listed with zero minutes", social)
	}

	if s.DayMinutes[0] != 120 || s.DayMinutes[1] != 150 {
		t.Errorf("DayMinutes = %v", s.DayMinutes)
	}
	if day, m := s.BusiestDay(); day != schedule.Tuesday || m != 150 {
		t.Errorf("BusiestDay() = %s %d, want Tuesday 150", day, m)
	}
	if p := s.Percent(work.Minutes); p != 44 {
		t.Errorf("Percent(work) = %d, want 44", p)
	}
	if !s.End.Equal(time.Date(2025, 1, 19, 0, 0, 0, 0, time.Local)) {
		t.Errorf("End = %v", s.End)
	}
}

func TestSummarizeWeek_Empty(t *testing.T) {
	week := schedule.NewWeek(time.Now())
	s := SummarizeWeek(week, schedule.MustGrid(60), catalog.Catalog{})

	if s.TotalMinutes != 0 || s.Percent(10) != 0 {
		t.Errorf("empty summary = %+v", s)
	}
	if day, _ := s.BusiestDay(); day != "" {
		t.Errorf("BusiestDay() = %q, want none", day)
	}
}

func TestFormatMinutes(t *testing.T) {
	tests := []struct {
		in   int
		want string
	}{
		{0, "0m"},
		{45, "45m"},
		{60, "1h"},
		{90, "1h30m"},
		{605, "10h05m"},
	}
	for _, tt := range tests {
		if got := FormatMinutes(tt.in); got != tt.want {
			t.Errorf("FormatMinutes(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
