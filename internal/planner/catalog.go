package planner

import (
	"context"

	"github.com/javiermolinar/pillars/internal/catalog"
	"github.com/javiermolinar/pillars/internal/logger"
)

// AddPillar creates a pillar with no activities.
func (p *Planner) AddPillar(ctx context.Context, name string) (catalog.Pillar, error) {
	next, pillar, err := p.catalog.AddPillar(name)
	if err != nil {
		return catalog.Pillar{}, err
	}
	if err := p.saveCatalog(ctx, next); err != nil {
		return catalog.Pillar{}, err
	}
	logger.Debug("added pillar", "pillar", pillar.ID, "name", pillar.Name)
	return pillar, nil
}

// RenamePillar changes the name of a pillar.
func (p *Planner) RenamePillar(ctx context.Context, id, name string) error {
	next, err := p.catalog.RenamePillar(id, name)
	if err != nil {
		return err
	}
	return p.saveCatalog(ctx, next)
}

// DeletePillar removes a pillar and its activities. Slots booked with those
// activities are kept and show as unlabeled until pruned.
func (p *Planner) DeletePillar(ctx context.Context, id string) error {
	next, err := p.catalog.DeletePillar(id)
	if err != nil {
		return err
	}
	if err := p.saveCatalog(ctx, next); err != nil {
		return err
	}
	logger.Debug("deleted pillar", "pillar", id)
	return nil
}

// AddActivity creates an activity under a pillar.
func (p *Planner) AddActivity(ctx context.Context, pillarID, name, color string) (catalog.Activity, error) {
	next, a, err := p.catalog.AddActivity(pillarID, name, color)
	if err != nil {
		return catalog.Activity{}, err
	}
	if err := p.saveCatalog(ctx, next); err != nil {
		return catalog.Activity{}, err
	}
	logger.Debug("added activity", "activity", a.ID, "pillar", pillarID, "name", a.Name)
	return a, nil
}

// UpdateActivity changes the name and/or color of an activity. Empty values
// keep the current ones.
func (p *Planner) UpdateActivity(ctx context.Context, id, name, color string) (catalog.Activity, error) {
	next, a, err := p.catalog.UpdateActivity(id, name, color)
	if err != nil {
		return catalog.Activity{}, err
	}
	if err := p.saveCatalog(ctx, next); err != nil {
		return catalog.Activity{}, err
	}
	return a, nil
}

// DeleteActivity removes an activity. Slots booked with it are kept.
func (p *Planner) DeleteActivity(ctx context.Context, id string) error {
	next, err := p.catalog.DeleteActivity(id)
	if err != nil {
		return err
	}
	if err := p.saveCatalog(ctx, next); err != nil {
		return err
	}
	logger.Debug("deleted activity", "activity", id)
	return nil
}
