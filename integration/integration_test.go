package integration

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/javiermolinar/pillars/internal/catalog"
	"github.com/javiermolinar/pillars/internal/db"
	"github.com/javiermolinar/pillars/internal/planner"
	"github.com/javiermolinar/pillars/internal/schedule"
	"github.com/javiermolinar/pillars/internal/snapshot"
)

// openRepo creates a fresh repository for each test with automatic cleanup.
func openRepo(t *testing.T, path string) *db.SQLite {
	t.Helper()
	repo, err := db.New(path)
	if err != nil {
		t.Fatalf("failed to open repo: %v", err)
	}
	t.Cleanup(func() { _ = repo.Close() })
	return repo
}

// mustParseDate parses a date string or fails the test.
func mustParseDate(t *testing.T, s string) time.Time {
	t.Helper()
	date, err := time.ParseInLocation("2006-01-02", s, time.Local)
	if err != nil {
		t.Fatalf("failed to parse date %q: %v", s, err)
	}
	return date
}

// openPlanner loads a planner on the database at path with the clock
// stopped at now.
func openPlanner(t *testing.T, path string, slotMinutes int, now time.Time) *planner.Planner {
	t.Helper()
	p, err := planner.New(context.Background(), openRepo(t, path), schedule.MustGrid(slotMinutes),
		planner.WithClock(func() time.Time { return now }))
	if err != nil {
		t.Fatalf("failed to open planner: %v", err)
	}
	return p
}

// assign books a block or fails the test.
func assign(t *testing.T, p *planner.Planner, day schedule.Day, start, end, activityID string) []schedule.Cell {
	t.Helper()
	cells, err := p.Assign(context.Background(), day, start, end, activityID)
	if err != nil {
		t.Fatalf("assign %s %s-%s: %v", day, start, end, err)
	}
	return cells
}

func assertSameState(t *testing.T, got, want schedule.State) {
	t.Helper()
	if got.CurrentWeekIndex != want.CurrentWeekIndex {
		t.Errorf("CurrentWeekIndex = %d, want %d", got.CurrentWeekIndex, want.CurrentWeekIndex)
	}
	if len(got.Weeks) != len(want.Weeks) {
		t.Fatalf("got %d weeks, want %d", len(got.Weeks), len(want.Weeks))
	}
	for i, w := range want.Weeks {
		g := got.Weeks[i]
		if g.ID != w.ID || !g.StartDate.Equal(w.StartDate) {
			t.Errorf("week %d = %s %v, want %s %v", i, g.ID, g.StartDate, w.ID, w.StartDate)
		}
		if !reflect.DeepEqual(g.Schedule, w.Schedule) {
			t.Errorf("week %d schedule = %v, want %v", i, g.Schedule, w.Schedule)
		}
	}
}

func TestPlanningWeek(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pillars.db")
	now := mustParseDate(t, "2025-01-15")
	ctx := context.Background()

	p := openPlanner(t, path, 30, now)
	if got := p.CurrentWeek().StartDate; !got.Equal(mustParseDate(t, "2025-01-13")) {
		t.Fatalf("first week starts %v, want Monday 2025-01-13", got)
	}

	assign(t, p, schedule.Monday, "07:00", "07:30", "3")
	assign(t, p, schedule.Monday, "09:00", "12:00", "7")
	assign(t, p, schedule.Monday, "12:30", "13:00", "4")
	// Covers booked slots only: nothing is overwritten.
	cells := assign(t, p, schedule.Monday, "11:00", "12:30", "8")
	if len(cells) != 0 {
		t.Errorf("expected no free cells, got %v", cells)
	}

	// Saturday night out, wrapping into Sunday.
	cells = assign(t, p, schedule.Saturday, "22:00", "01:00", "1")
	if len(cells) != 7 || cells[len(cells)-1] != (schedule.Cell{Day: schedule.Sunday, Time: "01:00"}) {
		t.Errorf("unexpected wrap cells %v", cells)
	}

	s := p.Summary()
	if s.TotalMinutes != (2+7+2+7)*30 {
		t.Errorf("total = %d minutes", s.TotalMinutes)
	}
	if day, _ := s.BusiestDay(); day != schedule.Monday {
		t.Errorf("busiest day = %s, want Monday", day)
	}

	next, err := p.AddWeek(ctx, mustParseDate(t, "2025-01-20"))
	if err != nil {
		t.Fatalf("AddWeek failed: %v", err)
	}
	if moved, err := p.NextWeek(ctx); err != nil || !moved {
		t.Fatalf("NextWeek = %v, %v", moved, err)
	}
	assign(t, p, schedule.Tuesday, "10:00", "10:30", "6")

	// Everything survives a restart.
	again := openPlanner(t, path, 30, now)
	if again.CurrentWeek().ID != next.ID {
		t.Error("selected week not restored")
	}
	state := again.State()
	assertSameState(t, state, p.State())
	if slot := state.Weeks[0].Schedule.Slot(schedule.Sunday, "01:00"); slot.EndTime != "01:00" || slot.ActivityID != "1" {
		t.Errorf("wrapped block end lost: %+v", slot)
	}
}

func TestDeletedActivityLifecycle(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pillars.db")
	now := mustParseDate(t, "2025-01-15")
	ctx := context.Background()

	p := openPlanner(t, path, 60, now)
	assign(t, p, schedule.Thursday, "15:00", "17:00", "9")

	if err := p.DeleteActivity(ctx, "9"); err != nil {
		t.Fatalf("DeleteActivity failed: %v", err)
	}

	// The booking outlives the activity as unlabeled time.
	p = openPlanner(t, path, 60, now)
	if s := p.Summary(); s.UnlabeledMinutes != 180 {
		t.Errorf("unlabeled = %d, want 180", s.UnlabeledMinutes)
	}
	if _, err := p.Assign(ctx, schedule.Friday, "09:00", "10:00", "9"); !errors.Is(err, planner.ErrUnknownActivity) {
		t.Errorf("assigning a deleted activity: error = %v", err)
	}

	removed, err := p.Prune(ctx)
	if err != nil {
		t.Fatalf("Prune failed: %v", err)
	}
	if removed != 3 {
		t.Errorf("pruned %d slots, want 3", removed)
	}

	p = openPlanner(t, path, 60, now)
	if n := p.CurrentWeek().Schedule.Occupied(); n != 0 {
		t.Errorf("%d slots left after prune", n)
	}
}

func TestSnapshotBetweenDatabases(t *testing.T) {
	now := mustParseDate(t, "2025-01-15")
	ctx := context.Background()

	src := openPlanner(t, filepath.Join(t.TempDir(), "src.db"), 60, now)
	pillar, err := src.AddPillar(ctx, "Health")
	if err != nil {
		t.Fatalf("AddPillar failed: %v", err)
	}
	run, err := src.AddActivity(ctx, pillar.ID, "Running", "#2ECC71")
	if err != nil {
		t.Fatalf("AddActivity failed: %v", err)
	}
	assign(t, src, schedule.Sunday, "08:00", "09:00", run.ID)
	if _, err := src.AddWeek(ctx, mustParseDate(t, "2025-01-20")); err != nil {
		t.Fatalf("AddWeek failed: %v", err)
	}

	var buf bytes.Buffer
	if err := snapshot.Encode(&buf, src.Snapshot()); err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	doc, err := snapshot.Decode(&buf)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}

	dstPath := filepath.Join(t.TempDir(), "dst.db")
	dst := openPlanner(t, dstPath, 60, mustParseDate(t, "2025-06-04"))
	if err := dst.Import(ctx, doc); err != nil {
		t.Fatalf("Import failed: %v", err)
	}

	reloaded := openPlanner(t, dstPath, 60, now)
	if !reflect.DeepEqual(reloaded.Catalog(), src.Catalog()) {
		t.Errorf("catalog differs after import:\n got %+v\nwant %+v", reloaded.Catalog(), src.Catalog())
	}
	assertSameState(t, reloaded.State(), src.State())
	if a, ok := reloaded.Catalog().FindActivity(run.ID); !ok || a.Color != "#2ecc71" {
		t.Errorf("imported activity = %+v, %v", a, ok)
	}
}

func TestGridIsFixedPerDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pillars.db")
	now := mustParseDate(t, "2025-01-15")

	openPlanner(t, path, 30, now)

	_, err := planner.New(context.Background(), openRepo(t, path), schedule.MustGrid(60))
	if !errors.Is(err, planner.ErrGridMismatch) {
		t.Errorf("error = %v, want ErrGridMismatch", err)
	}
}

func TestEmptyCatalogIsKept(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pillars.db")
	now := mustParseDate(t, "2025-01-15")
	ctx := context.Background()

	p := openPlanner(t, path, 60, now)
	for _, pl := range catalog.Default().Pillars {
		if err := p.DeletePillar(ctx, pl.ID); err != nil {
			t.Fatalf("DeletePillar(%s) failed: %v", pl.ID, err)
		}
	}

	// A deliberately emptied catalog is not reseeded.
	p = openPlanner(t, path, 60, now)
	if n := len(p.Catalog().Pillars); n != 0 {
		t.Errorf("expected no pillars, got %d", n)
	}
}
