// Package catalog holds the pillars and their activities.
//
// A Catalog is reference data with no notion of time. Mutations are pure:
// each returns a new Catalog and leaves the receiver untouched.
package catalog

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/google/uuid"
)

// Catalog errors.
var (
	ErrEmptyName        = errors.New("name cannot be empty")
	ErrInvalidColor     = errors.New("color must be a hex RGB value like #4ecdc4")
	ErrPillarNotFound   = errors.New("pillar not found")
	ErrActivityNotFound = errors.New("activity not found")
)

// Activity is a named, colored schedulable unit owned by one pillar.
type Activity struct {
	ID       string
	Name     string
	Color    string // "#rrggbb"
	PillarID string
}

// Pillar is a life category grouping related activities.
type Pillar struct {
	ID         string
	Name       string
	Activities []Activity
}

// Catalog is the ordered list of pillars.
type Catalog struct {
	Pillars []Pillar
}

// Clone returns a deep copy of c.
func (c Catalog) Clone() Catalog {
	out := Catalog{}
	if c.Pillars != nil {
		out.Pillars = make([]Pillar, len(c.Pillars))
		for i, p := range c.Pillars {
			p.Activities = slices.Clone(p.Activities)
			out.Pillars[i] = p
		}
	}
	return out
}

// FindActivity scans every pillar, in order, for the activity with the
// given id.
func (c Catalog) FindActivity(id string) (Activity, bool) {
	for _, p := range c.Pillars {
		for _, a := range p.Activities {
			if a.ID == id {
				return a, true
			}
		}
	}
	return Activity{}, false
}

// HasActivity reports whether an activity with the given id exists.
func (c Catalog) HasActivity(id string) bool {
	_, ok := c.FindActivity(id)
	return ok
}

// FindPillar returns the pillar with the given id.
func (c Catalog) FindPillar(id string) (Pillar, bool) {
	if i := c.pillarIndex(id); i >= 0 {
		return c.Pillars[i], true
	}
	return Pillar{}, false
}

// Activities returns every activity in pillar then insertion order.
func (c Catalog) Activities() []Activity {
	var out []Activity
	for _, p := range c.Pillars {
		out = append(out, p.Activities...)
	}
	return out
}

func (c Catalog) pillarIndex(id string) int {
	return slices.IndexFunc(c.Pillars, func(p Pillar) bool { return p.ID == id })
}

func (c Catalog) activityIndex(id string) (pillar, activity int) {
	for i, p := range c.Pillars {
		if j := slices.IndexFunc(p.Activities, func(a Activity) bool { return a.ID == id }); j >= 0 {
			return i, j
		}
	}
	return -1, -1
}

// AddPillar appends a pillar with a fresh id.
func (c Catalog) AddPillar(name string) (Catalog, Pillar, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return c, Pillar{}, ErrEmptyName
	}
	p := Pillar{ID: uuid.NewString(), Name: name}
	out := c.Clone()
	out.Pillars = append(out.Pillars, p)
	return out, p, nil
}

// RenamePillar changes the name of a pillar.
func (c Catalog) RenamePillar(id, name string) (Catalog, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return c, ErrEmptyName
	}
	i := c.pillarIndex(id)
	if i < 0 {
		return c, fmt.Errorf("%w: %s", ErrPillarNotFound, id)
	}
	out := c.Clone()
	out.Pillars[i].Name = name
	return out, nil
}

// DeletePillar removes a pillar together with its activities. Schedule slots
// that reference those activities are left dangling.
func (c Catalog) DeletePillar(id string) (Catalog, error) {
	i := c.pillarIndex(id)
	if i < 0 {
		return c, fmt.Errorf("%w: %s", ErrPillarNotFound, id)
	}
	out := c.Clone()
	out.Pillars = slices.Delete(out.Pillars, i, i+1)
	return out, nil
}

// AddActivity appends an activity with a fresh id to a pillar.
func (c Catalog) AddActivity(pillarID, name, color string) (Catalog, Activity, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return c, Activity{}, ErrEmptyName
	}
	hex, err := NormalizeColor(color)
	if err != nil {
		return c, Activity{}, err
	}
	i := c.pillarIndex(pillarID)
	if i < 0 {
		return c, Activity{}, fmt.Errorf("%w: %s", ErrPillarNotFound, pillarID)
	}

	a := Activity{ID: uuid.NewString(), Name: name, Color: hex, PillarID: pillarID}
	out := c.Clone()
	out.Pillars[i].Activities = append(out.Pillars[i].Activities, a)
	return out, a, nil
}

// UpdateActivity changes the name and/or color of an activity. Empty
// arguments keep the current value. The id and owning pillar never change.
func (c Catalog) UpdateActivity(id, name, color string) (Catalog, Activity, error) {
	pi, ai := c.activityIndex(id)
	if pi < 0 {
		return c, Activity{}, fmt.Errorf("%w: %s", ErrActivityNotFound, id)
	}

	a := c.Pillars[pi].Activities[ai]
	if name = strings.TrimSpace(name); name != "" {
		a.Name = name
	}
	if color != "" {
		hex, err := NormalizeColor(color)
		if err != nil {
			return c, Activity{}, err
		}
		a.Color = hex
	}

	out := c.Clone()
	out.Pillars[pi].Activities[ai] = a
	return out, a, nil
}

// DeleteActivity removes an activity. Schedule slots that reference it are
// left dangling.
func (c Catalog) DeleteActivity(id string) (Catalog, error) {
	pi, ai := c.activityIndex(id)
	if pi < 0 {
		return c, fmt.Errorf("%w: %s", ErrActivityNotFound, id)
	}
	out := c.Clone()
	out.Pillars[pi].Activities = slices.Delete(out.Pillars[pi].Activities, ai, ai+1)
	return out, nil
}

// Validate checks a loaded catalog: non-empty unique ids, non-empty names,
// valid colors and activities pointing back at their pillar.
func (c Catalog) Validate() error {
	seenPillars := map[string]bool{}
	seenActivities := map[string]bool{}
	for _, p := range c.Pillars {
		if p.ID == "" || seenPillars[p.ID] {
			return fmt.Errorf("pillar %q: missing or duplicate id", p.Name)
		}
		seenPillars[p.ID] = true
		if strings.TrimSpace(p.Name) == "" {
			return fmt.Errorf("pillar %s: %w", p.ID, ErrEmptyName)
		}
		for _, a := range p.Activities {
			if a.ID == "" || seenActivities[a.ID] {
				return fmt.Errorf("activity %q: missing or duplicate id", a.Name)
			}
			seenActivities[a.ID] = true
			if strings.TrimSpace(a.Name) == "" {
				return fmt.Errorf("activity %s: %w", a.ID, ErrEmptyName)
			}
			if _, err := NormalizeColor(a.Color); err != nil {
				return fmt.Errorf("activity %s: %w", a.ID, err)
			}
			if a.PillarID != p.ID {
				return fmt.Errorf("activity %s belongs to pillar %s, found under %s", a.ID, a.PillarID, p.ID)
			}
		}
	}
	return nil
}
