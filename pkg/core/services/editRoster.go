package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/jakechorley/seat-arranger/pkg/core/model"
	"github.com/jakechorley/seat-arranger/pkg/core/roster"
)

// AddIndividuals appends individuals to the roster and returns the ones added
func (w *Workspace) AddIndividuals(ctx context.Context, individuals []model.Individual) ([]model.Individual, error) {
	var added []model.Individual
	_, err := w.update(ctx, func(snapshot *model.Snapshot) (*model.Snapshot, error) {
		var next *model.Snapshot
		next, added = roster.AddIndividuals(snapshot, individuals...)
		return next, nil
	})
	if err != nil {
		return nil, err
	}

	w.logger.Info("Added individuals", zap.Int("count", len(added)))
	return added, nil
}

// RemoveIndividual deletes an individual and every constraint that references them
func (w *Workspace) RemoveIndividual(ctx context.Context, ref string) (model.Individual, error) {
	return w.editIndividual(ctx, ref, "Removed individual", roster.RemoveIndividual)
}

// ToggleLock flips the locked flag of an individual and returns their new state
func (w *Workspace) ToggleLock(ctx context.Context, ref string) (model.Individual, error) {
	var toggled model.Individual
	_, err := w.update(ctx, func(snapshot *model.Snapshot) (*model.Snapshot, error) {
		individual, err := Resolve(snapshot, ref)
		if err != nil {
			return nil, err
		}
		next, err := roster.ToggleLock(snapshot, individual.ID)
		if err != nil {
			return nil, err
		}
		toggled, _ = next.FindIndividual(individual.ID)
		return next, nil
	})
	if err != nil {
		return model.Individual{}, err
	}

	w.logger.Info("Toggled lock", zap.String("id", toggled.ID), zap.Bool("locked", toggled.Locked))
	return toggled, nil
}

// Assign moves an individual into a group. groupNumber is one-based, as shown to users.
func (w *Workspace) Assign(ctx context.Context, ref string, groupNumber int) (model.Individual, error) {
	var assigned model.Individual
	_, err := w.update(ctx, func(snapshot *model.Snapshot) (*model.Snapshot, error) {
		individual, err := Resolve(snapshot, ref)
		if err != nil {
			return nil, err
		}
		assigned = individual
		return roster.AssignIndividual(snapshot, individual.ID, groupNumber-1)
	})
	if err != nil {
		return model.Individual{}, err
	}

	w.logger.Info("Assigned individual", zap.String("id", assigned.ID), zap.Int("group", groupNumber))
	return assigned, nil
}

// Unassign returns an individual to the unplaced pool
func (w *Workspace) Unassign(ctx context.Context, ref string) (model.Individual, error) {
	return w.editIndividual(ctx, ref, "Unassigned individual", roster.Unassign)
}

// ClearGroups empties every group
func (w *Workspace) ClearGroups(ctx context.Context) error {
	_, err := w.update(ctx, func(snapshot *model.Snapshot) (*model.Snapshot, error) {
		return roster.ClearGroups(snapshot), nil
	})
	if err != nil {
		return err
	}

	w.logger.Info("Cleared groups")
	return nil
}

// UpdateSettings stores new arrangement settings, resizing the groups if needed
func (w *Workspace) UpdateSettings(ctx context.Context, settings model.Settings) (*model.Snapshot, error) {
	next, err := w.update(ctx, func(snapshot *model.Snapshot) (*model.Snapshot, error) {
		return roster.ApplySettings(snapshot, settings)
	})
	if err != nil {
		return nil, err
	}

	w.logger.Info("Updated settings",
		zap.Int("group_count", settings.GroupCount),
		zap.Int("min_per_group", settings.MinPerGroup),
		zap.Int("max_per_group", settings.MaxPerGroup),
		zap.String("gender_policy", string(settings.Policy)))
	return next, nil
}

// PairKind selects the constraint set a pair belongs to
type PairKind string

const (
	PairTogether PairKind = "together"
	PairApart    PairKind = "apart"
)

// AddPair declares a Together or Apart constraint between two individuals
func (w *Workspace) AddPair(ctx context.Context, kind PairKind, refA, refB string) (model.Pair, error) {
	add := roster.AddTogether
	switch kind {
	case PairTogether:
	case PairApart:
		add = roster.AddApart
	default:
		return model.Pair{}, fmt.Errorf("unknown pair kind %q", kind)
	}

	var pair model.Pair
	_, err := w.update(ctx, func(snapshot *model.Snapshot) (*model.Snapshot, error) {
		a, b, err := resolvePair(snapshot, refA, refB)
		if err != nil {
			return nil, err
		}
		pair = model.Pair{AID: a.ID, BID: b.ID}
		return add(snapshot, a.ID, b.ID)
	})
	if err != nil {
		return model.Pair{}, err
	}

	w.logger.Info("Added pair", zap.String("kind", string(kind)), zap.String("a", pair.AID), zap.String("b", pair.BID))
	return pair, nil
}

// RemovePair deletes any constraint between two individuals
func (w *Workspace) RemovePair(ctx context.Context, refA, refB string) error {
	_, err := w.update(ctx, func(snapshot *model.Snapshot) (*model.Snapshot, error) {
		a, b, err := resolvePair(snapshot, refA, refB)
		if err != nil {
			return nil, err
		}
		return roster.RemovePair(snapshot, a.ID, b.ID)
	})
	if err != nil {
		return err
	}

	w.logger.Info("Removed pair", zap.String("a", refA), zap.String("b", refB))
	return nil
}

func (w *Workspace) editIndividual(ctx context.Context, ref, message string, edit func(*model.Snapshot, string) (*model.Snapshot, error)) (model.Individual, error) {
	var target model.Individual
	_, err := w.update(ctx, func(snapshot *model.Snapshot) (*model.Snapshot, error) {
		individual, err := Resolve(snapshot, ref)
		if err != nil {
			return nil, err
		}
		target = individual
		return edit(snapshot, individual.ID)
	})
	if err != nil {
		return model.Individual{}, err
	}

	w.logger.Info(message, zap.String("id", target.ID), zap.String("name", target.Name))
	return target, nil
}

func resolvePair(snapshot *model.Snapshot, refA, refB string) (model.Individual, model.Individual, error) {
	a, err := Resolve(snapshot, refA)
	if err != nil {
		return model.Individual{}, model.Individual{}, err
	}
	b, err := Resolve(snapshot, refB)
	if err != nil {
		return model.Individual{}, model.Individual{}, err
	}
	return a, b, nil
}
