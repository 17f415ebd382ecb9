// Package db provides SQLite storage implementation.
package db

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/javiermolinar/pillars/internal/catalog"
	"github.com/javiermolinar/pillars/internal/dateutil"
	"github.com/javiermolinar/pillars/internal/schedule"
)

const (
	metaCatalogSaved     = "catalog_saved"
	metaCurrentWeekIndex = "current_week_index"
	metaSlotMinutes      = "slot_minutes"
)

// SQLite stores the catalog and the week state in a SQLite database.
// Saves replace the whole stored snapshot inside one transaction.
type SQLite struct {
	db *sql.DB
}

// New creates a new SQLite repository and runs migrations.
func New(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite", path+"?_pragma=foreign_keys(1)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	s := &SQLite{db: db}
	if err := s.migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close releases database resources.
func (s *SQLite) Close() error {
	return s.db.Close()
}

// LoadCatalog returns the stored catalog, or nil if none was ever saved.
func (s *SQLite) LoadCatalog(ctx context.Context) (*catalog.Catalog, error) {
	if _, ok, err := s.meta(ctx, metaCatalogSaved); err != nil || !ok {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `SELECT id, name FROM pillars ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("querying pillars: %w", err)
	}
	defer func() { _ = rows.Close() }()

	cat := &catalog.Catalog{Pillars: []catalog.Pillar{}}
	index := make(map[string]int)
	for rows.Next() {
		var p catalog.Pillar
		if err := rows.Scan(&p.ID, &p.Name); err != nil {
			return nil, fmt.Errorf("scanning pillar: %w", err)
		}
		index[p.ID] = len(cat.Pillars)
		cat.Pillars = append(cat.Pillars, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating pillars: %w", err)
	}

	actRows, err := s.db.QueryContext(ctx, `
		SELECT id, pillar_id, name, color
		FROM activities
		ORDER BY position
	`)
	if err != nil {
		return nil, fmt.Errorf("querying activities: %w", err)
	}
	defer func() { _ = actRows.Close() }()

	for actRows.Next() {
		var a catalog.Activity
		if err := actRows.Scan(&a.ID, &a.PillarID, &a.Name, &a.Color); err != nil {
			return nil, fmt.Errorf("scanning activity: %w", err)
		}
		i, ok := index[a.PillarID]
		if !ok {
			return nil, fmt.Errorf("activity %s references missing pillar %s", a.ID, a.PillarID)
		}
		cat.Pillars[i].Activities = append(cat.Pillars[i].Activities, a)
	}
	if err := actRows.Err(); err != nil {
		return nil, fmt.Errorf("iterating activities: %w", err)
	}

	return cat, nil
}

// SaveCatalog replaces the stored catalog with cat.
func (s *SQLite) SaveCatalog(ctx context.Context, cat catalog.Catalog) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := writeCatalog(ctx, tx, cat); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

func writeCatalog(ctx context.Context, tx *sql.Tx, cat catalog.Catalog) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM activities`); err != nil {
		return fmt.Errorf("clearing activities: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM pillars`); err != nil {
		return fmt.Errorf("clearing pillars: %w", err)
	}

	pillarStmt, err := tx.PrepareContext(ctx, `INSERT INTO pillars (id, name, position) VALUES (?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing statement: %w", err)
	}
	defer func() { _ = pillarStmt.Close() }()

	actStmt, err := tx.PrepareContext(ctx, `
		INSERT INTO activities (id, pillar_id, name, color, position)
		VALUES (?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("preparing statement: %w", err)
	}
	defer func() { _ = actStmt.Close() }()

	pos := 0
	for i, p := range cat.Pillars {
		if _, err := pillarStmt.ExecContext(ctx, p.ID, p.Name, i); err != nil {
			return fmt.Errorf("inserting pillar %s: %w", p.ID, err)
		}
		for _, a := range p.Activities {
			if _, err := actStmt.ExecContext(ctx, a.ID, p.ID, a.Name, a.Color, pos); err != nil {
				return fmt.Errorf("inserting activity %s: %w", a.ID, err)
			}
			pos++
		}
	}

	return setMeta(ctx, tx, metaCatalogSaved, "1")
}

// LoadState returns the stored week state and the slot length it was saved
// with. The state is nil if none was ever saved. Rows that cannot be turned
// back into a state yield an error wrapping schedule.ErrMalformedSchedule.
func (s *SQLite) LoadState(ctx context.Context) (*schedule.State, int, error) {
	rawMinutes, ok, err := s.meta(ctx, metaSlotMinutes)
	if err != nil || !ok {
		return nil, 0, err
	}
	slotMinutes, err := strconv.Atoi(rawMinutes)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: slot minutes %q", schedule.ErrMalformedSchedule, rawMinutes)
	}

	rawIndex, _, err := s.meta(ctx, metaCurrentWeekIndex)
	if err != nil {
		return nil, 0, err
	}
	current, err := strconv.Atoi(rawIndex)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: current week index %q", schedule.ErrMalformedSchedule, rawIndex)
	}

	weeks, err := s.loadWeeks(ctx)
	if err != nil {
		return nil, 0, err
	}

	state := &schedule.State{Weeks: weeks, CurrentWeekIndex: current}
	return state, slotMinutes, nil
}

func (s *SQLite) loadWeeks(ctx context.Context) ([]schedule.Week, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, start_date FROM weeks ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("querying weeks: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var weeks []schedule.Week
	index := make(map[string]int)
	for rows.Next() {
		var (
			w         schedule.Week
			startDate string
		)
		if err := rows.Scan(&w.ID, &startDate); err != nil {
			return nil, fmt.Errorf("scanning week: %w", err)
		}
		w.StartDate, err = parseDate(startDate)
		if err != nil {
			return nil, fmt.Errorf("%w: week %s: %v", schedule.ErrMalformedSchedule, w.ID, err)
		}
		w.Schedule = schedule.WeekSchedule{}
		index[w.ID] = len(weeks)
		weeks = append(weeks, w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating weeks: %w", err)
	}

	slotRows, err := s.db.QueryContext(ctx, `SELECT week_id, day, slot_time, activity_id, end_time FROM slots`)
	if err != nil {
		return nil, fmt.Errorf("querying slots: %w", err)
	}
	defer func() { _ = slotRows.Close() }()

	for slotRows.Next() {
		var (
			weekID, day, slotTime string
			slot                  schedule.TimeSlot
		)
		if err := slotRows.Scan(&weekID, &day, &slotTime, &slot.ActivityID, &slot.EndTime); err != nil {
			return nil, fmt.Errorf("scanning slot: %w", err)
		}
		i, ok := index[weekID]
		if !ok {
			return nil, fmt.Errorf("%w: slot references missing week %s", schedule.ErrMalformedSchedule, weekID)
		}
		ws := weeks[i].Schedule
		d := schedule.Day(day)
		ws.EnsureDay(d)
		ws[d][slotTime] = slot
	}
	if err := slotRows.Err(); err != nil {
		return nil, fmt.Errorf("iterating slots: %w", err)
	}

	return weeks, nil
}

// SaveState replaces the stored weeks and current week index with state,
// recording the slot length the schedules are laid out on.
func (s *SQLite) SaveState(ctx context.Context, state schedule.State, slotMinutes int) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := writeState(ctx, tx, state, slotMinutes); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// SaveSnapshot replaces the stored catalog and state in one transaction:
// either both are written or neither is.
func (s *SQLite) SaveSnapshot(ctx context.Context, cat catalog.Catalog, state schedule.State, slotMinutes int) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := writeCatalog(ctx, tx, cat); err != nil {
		return err
	}
	if err := writeState(ctx, tx, state, slotMinutes); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

func writeState(ctx context.Context, tx *sql.Tx, state schedule.State, slotMinutes int) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM slots`); err != nil {
		return fmt.Errorf("clearing slots: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM weeks`); err != nil {
		return fmt.Errorf("clearing weeks: %w", err)
	}

	weekStmt, err := tx.PrepareContext(ctx, `INSERT INTO weeks (id, start_date, position) VALUES (?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing statement: %w", err)
	}
	defer func() { _ = weekStmt.Close() }()

	slotStmt, err := tx.PrepareContext(ctx, `
		INSERT INTO slots (week_id, day, slot_time, activity_id, end_time)
		VALUES (?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("preparing statement: %w", err)
	}
	defer func() { _ = slotStmt.Close() }()

	for i, w := range state.Weeks {
		if _, err := weekStmt.ExecContext(ctx, w.ID, dateutil.FormatDate(w.StartDate), i); err != nil {
			return fmt.Errorf("inserting week %s: %w", w.ID, err)
		}
		for day, slots := range w.Schedule {
			for t, slot := range slots {
				if slot.IsEmpty() {
					continue
				}
				if _, err := slotStmt.ExecContext(ctx, w.ID, string(day), t, slot.ActivityID, slot.EndTime); err != nil {
					return fmt.Errorf("inserting slot %s %s of week %s: %w", day, t, w.ID, err)
				}
			}
		}
	}

	if err := setMeta(ctx, tx, metaCurrentWeekIndex, strconv.Itoa(state.CurrentWeekIndex)); err != nil {
		return err
	}
	if err := setMeta(ctx, tx, metaSlotMinutes, strconv.Itoa(slotMinutes)); err != nil {
		return err
	}
	return nil
}

// meta reads one value from the meta table.
func (s *SQLite) meta(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM meta WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("querying meta %s: %w", key, err)
	}
	return value, true, nil
}

func setMeta(ctx context.Context, tx *sql.Tx, key, value string) error {
	query := `
		INSERT INTO meta (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`
	if _, err := tx.ExecContext(ctx, query, key, value); err != nil {
		return fmt.Errorf("writing meta %s: %w", key, err)
	}
	return nil
}

// parseDate parses a date string in various formats SQLite might return.
// Date-only values (midnight) are parsed in local timezone to match time.Now() behavior.
func parseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}
	if t, err := dateutil.ParseDate(s); err == nil {
		return t, nil
	}

	// SQLite returns DATE columns as "2006-01-02T00:00:00Z"; the stored value
	// is a local calendar date, so drop the UTC marker.
	if len(s) == 20 && s[10] == 'T' && s[19] == 'Z' {
		if t, err := dateutil.ParseDate(s[:10]); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("unrecognized date format: %s", s)
}
