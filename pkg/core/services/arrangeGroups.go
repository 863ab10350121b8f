package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/jakechorley/seat-arranger/pkg/core/allocator"
	"github.com/jakechorley/seat-arranger/pkg/core/model"
)

// ArrangeRequest configures an arrangement run
type ArrangeRequest struct {
	// Seed makes the run reproducible when set
	Seed *uint64

	// DryRun returns the outcome without saving it
	DryRun bool
}

// Arrange runs the allocator over the working snapshot and saves the result unless DryRun is set.
// Soft shortfalls are returned as warnings on the outcome, not as errors.
func (w *Workspace) Arrange(ctx context.Context, req ArrangeRequest) (*allocator.Outcome, error) {
	opts := allocator.Options{Logger: w.logger}
	if req.Seed != nil {
		opts.Shuffler = allocator.NewSeededShuffler(*req.Seed)
		w.logger.Debug("Using seeded shuffler", zap.Uint64("seed", *req.Seed))
	}

	var outcome *allocator.Outcome
	arrange := func(snapshot *model.Snapshot) (*model.Snapshot, error) {
		var err error
		outcome, err = allocator.Arrange(snapshot, opts)
		if err != nil {
			return nil, fmt.Errorf("failed to arrange groups: %w", err)
		}
		return outcome.Snapshot, nil
	}

	if req.DryRun {
		snapshot, err := w.Current(ctx)
		if err != nil {
			return nil, err
		}
		if _, err := arrange(snapshot); err != nil {
			return nil, err
		}
		w.logger.Info("Dry run complete, nothing saved")
		return outcome, nil
	}

	if _, err := w.update(ctx, arrange); err != nil {
		return nil, err
	}
	return outcome, nil
}

// Check validates the working snapshot without changing it
func (w *Workspace) Check(ctx context.Context) ([]allocator.Warning, error) {
	snapshot, err := w.Current(ctx)
	if err != nil {
		return nil, err
	}
	if err := snapshot.Validate(); err != nil {
		return nil, err
	}
	return allocator.Validate(snapshot), nil
}

// PlanSizes previews the group sizes an arrangement of the working snapshot would target
func (w *Workspace) PlanSizes(ctx context.Context) ([]int, error) {
	snapshot, err := w.Current(ctx)
	if err != nil {
		return nil, err
	}

	lockedCounts := make([]int, len(snapshot.Groups))
	for i := range snapshot.Groups {
		lockedCounts[i] = snapshot.Groups[i].LockedCount()
	}
	return allocator.PlanCapacity(lockedCounts, snapshot.MinPerGroup, snapshot.MaxPerGroup, len(snapshot.Roster))
}
