// Package snapshot reads and writes the whole planner (catalog, weeks and
// the selected week) as a single JSON document.
//
// The layout follows the planner's historical export format:
//
//	{
//	  "pillars": [{"id", "name", "activities": [{"id", "name", "color", "pillarId"}]}],
//	  "weeks": [{"id", "startDate", "schedule": {"Monday": {"09:00": {"activityId", "endTime"}}}}],
//	  "currentWeekIndex": 0
//	}
//
// with two additions, "version" and "slotMinutes". Documents without
// "slotMinutes" are read as hourly grids.
package snapshot

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/javiermolinar/pillars/internal/catalog"
	"github.com/javiermolinar/pillars/internal/dateutil"
	"github.com/javiermolinar/pillars/internal/schedule"
)

// Version is the document version written by Encode.
const Version = 1

// DefaultSlotMinutes is assumed for documents that do not name their grid.
const DefaultSlotMinutes = 60

// ErrInvalidDocument is returned for documents that cannot be turned into a
// consistent catalog and state.
var ErrInvalidDocument = errors.New("invalid snapshot")

// Document is the JSON form of the planner.
type Document struct {
	Version          int      `json:"version"`
	SlotMinutes      int      `json:"slotMinutes"`
	Pillars          []Pillar `json:"pillars"`
	Weeks            []Week   `json:"weeks"`
	CurrentWeekIndex int      `json:"currentWeekIndex"`
}

// Pillar is the JSON form of catalog.Pillar.
type Pillar struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	Activities []Activity `json:"activities"`
}

// Activity is the JSON form of catalog.Activity.
type Activity struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Color    string `json:"color"`
	PillarID string `json:"pillarId"`
}

// Week is the JSON form of schedule.Week.
type Week struct {
	ID        string                     `json:"id"`
	StartDate string                     `json:"startDate"`
	Schedule  map[string]map[string]Slot `json:"schedule"`
}

// Slot is the JSON form of schedule.TimeSlot. Absent values are null.
type Slot struct {
	ActivityID *string `json:"activityId"`
	EndTime    *string `json:"endTime"`
}

// New builds the document for the given catalog, state and grid.
func New(cat catalog.Catalog, state schedule.State, grid schedule.Grid) Document {
	doc := Document{
		Version:          Version,
		SlotMinutes:      grid.SlotMinutes(),
		Pillars:          make([]Pillar, 0, len(cat.Pillars)),
		Weeks:            make([]Week, 0, len(state.Weeks)),
		CurrentWeekIndex: state.CurrentWeekIndex,
	}

	for _, p := range cat.Pillars {
		jp := Pillar{ID: p.ID, Name: p.Name, Activities: make([]Activity, 0, len(p.Activities))}
		for _, a := range p.Activities {
			jp.Activities = append(jp.Activities, Activity{ID: a.ID, Name: a.Name, Color: a.Color, PillarID: a.PillarID})
		}
		doc.Pillars = append(doc.Pillars, jp)
	}

	for _, w := range state.Weeks {
		jw := Week{
			ID:        w.ID,
			StartDate: dateutil.FormatDate(w.StartDate),
			Schedule:  make(map[string]map[string]Slot, len(w.Schedule)),
		}
		for day, slots := range w.Schedule {
			if len(slots) == 0 {
				continue
			}
			js := make(map[string]Slot, len(slots))
			for t, slot := range slots {
				js[t] = Slot{ActivityID: optional(slot.ActivityID), EndTime: optional(slot.EndTime)}
			}
			jw.Schedule[string(day)] = js
		}
		doc.Weeks = append(doc.Weeks, jw)
	}

	return doc
}

// Grid returns the slot grid the document's schedules are laid out on.
func (d Document) Grid() (schedule.Grid, error) {
	minutes := d.SlotMinutes
	if minutes == 0 {
		minutes = DefaultSlotMinutes
	}
	return schedule.NewGrid(minutes)
}

// Catalog converts the document's pillars. Colors are normalized; invalid
// colors are kept as written and reported by Validate.
func (d Document) Catalog() catalog.Catalog {
	cat := catalog.Catalog{Pillars: make([]catalog.Pillar, 0, len(d.Pillars))}
	for _, p := range d.Pillars {
		cp := catalog.Pillar{ID: p.ID, Name: p.Name, Activities: make([]catalog.Activity, 0, len(p.Activities))}
		for _, a := range p.Activities {
			color := a.Color
			if c, err := catalog.NormalizeColor(color); err == nil {
				color = c
			}
			pillarID := a.PillarID
			if pillarID == "" {
				pillarID = p.ID
			}
			cp.Activities = append(cp.Activities, catalog.Activity{ID: a.ID, Name: a.Name, Color: color, PillarID: pillarID})
		}
		cat.Pillars = append(cat.Pillars, cp)
	}
	return cat
}

// State converts the document's weeks. Slots holding neither an activity
// nor an end time are dropped.
func (d Document) State() (schedule.State, error) {
	state := schedule.State{
		Weeks:            make([]schedule.Week, 0, len(d.Weeks)),
		CurrentWeekIndex: d.CurrentWeekIndex,
	}
	for i, w := range d.Weeks {
		start, err := parseStartDate(w.StartDate)
		if err != nil {
			return schedule.State{}, fmt.Errorf("%w: week %d: %v", ErrInvalidDocument, i, err)
		}
		ws := schedule.WeekSchedule{}
		for day, slots := range w.Schedule {
			for t, s := range slots {
				slot := schedule.TimeSlot{ActivityID: value(s.ActivityID), EndTime: value(s.EndTime)}
				if slot.IsEmpty() {
					continue
				}
				ws.EnsureDay(schedule.Day(day))
				ws[schedule.Day(day)][t] = slot
			}
		}
		state.Weeks = append(state.Weeks, schedule.Week{ID: w.ID, StartDate: start, Schedule: ws})
	}
	return state, nil
}

// Validate checks that the document converts into a consistent catalog and
// state on its own grid.
func (d Document) Validate() error {
	if d.Version > Version {
		return fmt.Errorf("%w: version %d is newer than supported version %d", ErrInvalidDocument, d.Version, Version)
	}
	grid, err := d.Grid()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidDocument, err)
	}
	if err := d.Catalog().Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidDocument, err)
	}
	state, err := d.State()
	if err != nil {
		return err
	}
	if err := state.Validate(grid); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidDocument, err)
	}
	return nil
}

// Encode writes doc as indented JSON.
func Encode(w io.Writer, doc Document) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encoding snapshot: %w", err)
	}
	return nil
}

// Decode reads a document and validates it.
func Decode(r io.Reader) (Document, error) {
	var doc Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return Document{}, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	if err := doc.Validate(); err != nil {
		return Document{}, err
	}
	return doc, nil
}

// WriteFile encodes doc to path, creating parent directories.
func WriteFile(path string, doc Document) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating snapshot directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating snapshot file: %w", err)
	}
	if err := Encode(f, doc); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// ReadFile decodes and validates the document stored at path.
func ReadFile(path string) (Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return Document{}, fmt.Errorf("opening snapshot file: %w", err)
	}
	defer func() { _ = f.Close() }()
	return Decode(f)
}

// parseStartDate accepts "YYYY-MM-DD" or a full RFC 3339 timestamp, which
// is read as the local calendar date it falls on.
func parseStartDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, errors.New("missing start date")
	}
	if t, err := dateutil.ParseDate(s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("start date %q: %w", s, dateutil.ErrInvalidDateFormat)
	}
	return dateutil.TruncateToDay(t.In(time.Local)), nil
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func value(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
