// Package planner holds the authoritative planner state and applies every
// user operation to it: catalog edits, slot assignment and deletion, and
// week navigation. Each successful mutation is persisted before it becomes
// visible.
package planner

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/javiermolinar/pillars/internal/catalog"
	"github.com/javiermolinar/pillars/internal/dateutil"
	"github.com/javiermolinar/pillars/internal/logger"
	"github.com/javiermolinar/pillars/internal/schedule"
	"github.com/javiermolinar/pillars/internal/snapshot"
	"github.com/javiermolinar/pillars/internal/summary"
)

// Planner errors.
var (
	ErrUnknownActivity    = errors.New("activity not found in catalog")
	ErrGridMismatch       = errors.New("stored schedule uses a different slot length")
	ErrAssignmentRequired = errors.New("an end time and an activity are required to fill an empty slot")
)

// Repository defines the storage the planner persists to.
type Repository interface {
	// LoadCatalog returns the stored catalog, or nil if none was saved yet.
	LoadCatalog(ctx context.Context) (*catalog.Catalog, error)

	// SaveCatalog replaces the stored catalog.
	SaveCatalog(ctx context.Context, cat catalog.Catalog) error

	// LoadState returns the stored state and the slot length it was saved
	// with, or a nil state if none was saved yet. Unreadable data yields an
	// error wrapping schedule.ErrMalformedSchedule.
	LoadState(ctx context.Context) (*schedule.State, int, error)

	// SaveState replaces the stored state.
	SaveState(ctx context.Context, state schedule.State, slotMinutes int) error

	// SaveSnapshot replaces the stored catalog and state atomically.
	SaveSnapshot(ctx context.Context, cat catalog.Catalog, state schedule.State, slotMinutes int) error

	// Close releases any resources held by the repository.
	Close() error
}

// Planner owns the catalog, the weeks and the selected week.
// It is not safe for concurrent use.
type Planner struct {
	repo    Repository
	grid    schedule.Grid
	catalog catalog.Catalog
	state   schedule.State
	now     func() time.Time
}

// Option configures a Planner.
type Option func(*Planner)

// WithClock sets the clock used to date the first week of a fresh state.
func WithClock(now func() time.Time) Option {
	return func(p *Planner) {
		p.now = now
	}
}

// New loads the planner from repo.
//
// A first run seeds and saves the default catalog and a state holding the
// current week. Stored data that fails validation is replaced in memory by
// the same defaults and a warning is logged; the store is only overwritten
// by the next successful mutation.
func New(ctx context.Context, repo Repository, grid schedule.Grid, opts ...Option) (*Planner, error) {
	p := &Planner{repo: repo, grid: grid, now: time.Now}
	for _, opt := range opts {
		opt(p)
	}

	if err := p.loadCatalog(ctx); err != nil {
		return nil, err
	}
	if err := p.loadState(ctx); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Planner) loadCatalog(ctx context.Context) error {
	cat, err := p.repo.LoadCatalog(ctx)
	if err != nil {
		return fmt.Errorf("loading catalog: %w", err)
	}

	switch {
	case cat == nil:
		p.catalog = catalog.Default()
		if err := p.repo.SaveCatalog(ctx, p.catalog); err != nil {
			return fmt.Errorf("saving default catalog: %w", err)
		}
		logger.Info("seeded default catalog")
	case cat.Validate() != nil:
		logger.Warn("stored catalog is invalid, using defaults", "err", cat.Validate())
		p.catalog = catalog.Default()
	default:
		p.catalog = *cat
	}
	return nil
}

func (p *Planner) loadState(ctx context.Context) error {
	state, slotMinutes, err := p.repo.LoadState(ctx)
	if errors.Is(err, schedule.ErrMalformedSchedule) {
		logger.Warn("stored schedule is unreadable, starting fresh", "err", err)
		p.state = p.freshState()
		return nil
	}
	if err != nil {
		return fmt.Errorf("loading schedule: %w", err)
	}

	if state == nil {
		p.state = p.freshState()
		if err := p.repo.SaveState(ctx, p.state, p.grid.SlotMinutes()); err != nil {
			return fmt.Errorf("saving initial schedule: %w", err)
		}
		return nil
	}

	if slotMinutes != p.grid.SlotMinutes() {
		return fmt.Errorf("%w: stored %d minutes, configured %d", ErrGridMismatch, slotMinutes, p.grid.SlotMinutes())
	}
	if err := state.Validate(p.grid); err != nil {
		logger.Warn("stored schedule is invalid, starting fresh", "err", err)
		p.state = p.freshState()
		return nil
	}
	p.state = *state
	return nil
}

func (p *Planner) freshState() schedule.State {
	return schedule.NewState(dateutil.StartOfWeek(p.now()))
}

// Close closes the underlying repository.
func (p *Planner) Close() error {
	return p.repo.Close()
}

// Grid returns the slot grid the planner works on.
func (p *Planner) Grid() schedule.Grid {
	return p.grid
}

// Catalog returns a copy of the catalog.
func (p *Planner) Catalog() catalog.Catalog {
	return p.catalog.Clone()
}

// State returns a copy of the week state.
func (p *Planner) State() schedule.State {
	return p.state.Clone()
}

// CurrentWeek returns a copy of the selected week.
func (p *Planner) CurrentWeek() schedule.Week {
	w, _ := p.state.Current()
	return w.Clone()
}

// Summary aggregates the time booked in the selected week.
func (p *Planner) Summary() *summary.WeekSummary {
	return summary.SummarizeWeek(p.CurrentWeek(), p.grid, p.catalog)
}

// Snapshot returns the whole planner as an exportable document.
func (p *Planner) Snapshot() snapshot.Document {
	return snapshot.New(p.catalog, p.state, p.grid)
}

// Import replaces the catalog and every week with the content of doc.
// The document must be valid and laid out on the planner's grid; nothing is
// changed otherwise.
func (p *Planner) Import(ctx context.Context, doc snapshot.Document) error {
	if err := doc.Validate(); err != nil {
		return err
	}
	grid, err := doc.Grid()
	if err != nil {
		return err
	}
	if grid.SlotMinutes() != p.grid.SlotMinutes() {
		return fmt.Errorf("%w: document uses %d minutes, configured %d", ErrGridMismatch, grid.SlotMinutes(), p.grid.SlotMinutes())
	}
	state, err := doc.State()
	if err != nil {
		return err
	}

	cat := doc.Catalog()
	if err := p.repo.SaveSnapshot(ctx, cat, state, p.grid.SlotMinutes()); err != nil {
		return fmt.Errorf("saving snapshot: %w", err)
	}
	p.catalog, p.state = cat, state
	logger.Info("imported snapshot", "pillars", len(p.catalog.Pillars), "weeks", len(p.state.Weeks))
	return nil
}

// saveState persists next and makes it current.
func (p *Planner) saveState(ctx context.Context, next schedule.State) error {
	if err := p.repo.SaveState(ctx, next, p.grid.SlotMinutes()); err != nil {
		return fmt.Errorf("saving schedule: %w", err)
	}
	p.state = next
	return nil
}

// saveCatalog persists next and makes it current.
func (p *Planner) saveCatalog(ctx context.Context, next catalog.Catalog) error {
	if err := p.repo.SaveCatalog(ctx, next); err != nil {
		return fmt.Errorf("saving catalog: %w", err)
	}
	p.catalog = next
	return nil
}
