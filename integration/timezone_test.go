package integration

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/javiermolinar/pillars/internal/snapshot"
)

func TestWeekStartKeepsCalendarDate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pillars.db")

	// Late Sunday evening: the week containing it still starts on the
	// Monday before.
	now := time.Date(2025, 1, 19, 23, 45, 0, 0, time.Local)
	t.Logf("Current time: %v (location: %v)", now, now.Location())

	p := openPlanner(t, path, 60, now)
	start := p.CurrentWeek().StartDate
	t.Logf("Week start: %v (location: %v)", start, start.Location())

	if y, m, d := start.Date(); y != 2025 || m != time.January || d != 13 {
		t.Errorf("week starts %04d-%02d-%02d, want 2025-01-13", y, m, d)
	}
	if start.Hour() != 0 || start.Minute() != 0 {
		t.Errorf("week start is not midnight: %v", start)
	}

	reloaded := openPlanner(t, path, 60, now)
	got := reloaded.CurrentWeek().StartDate
	t.Logf("Reloaded week start: %v (location: %v)", got, got.Location())
	if !got.Equal(start) {
		t.Errorf("reloaded start %v, want %v", got, start)
	}
	if got.Weekday() != time.Monday {
		t.Errorf("reloaded start falls on %v", got.Weekday())
	}
}

func TestSnapshotTimestampStartDate(t *testing.T) {
	// Exports from the browser planner carry UTC timestamps.
	const doc = `{
  "pillars": [],
  "weeks": [{"id": "w1", "startDate": "2025-01-13T00:00:00.000Z", "schedule": {}}],
  "currentWeekIndex": 0
}`

	d, err := snapshot.Decode(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	state, err := d.State()
	if err != nil {
		t.Fatalf("State failed: %v", err)
	}

	start := state.Weeks[0].StartDate
	t.Logf("Decoded start: %v (location: %v)", start, start.Location())
	if start.Location() != time.Local || start.Hour() != 0 {
		t.Errorf("start %v is not local midnight", start)
	}
	if start.Weekday() != time.Monday && start.Weekday() != time.Sunday {
		t.Errorf("start %v is far from the exported Monday", start)
	}
}
