package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/jakechorley/seat-arranger/pkg/core/model"
	"github.com/jakechorley/seat-arranger/pkg/db"
)

var (
	// ErrNoMatch is returned when a reference matches no individual
	ErrNoMatch = errors.New("no individual matches")

	// ErrAmbiguous is returned when a name reference matches more than one individual
	ErrAmbiguous = errors.New("reference is ambiguous")
)

// Workspace runs every use case against the working snapshot held in the auto slot.
// Calls are serialized, so one Workspace may be shared across goroutines.
type Workspace struct {
	mu       sync.Mutex
	store    db.SnapshotStore
	logger   *zap.Logger
	defaults model.Settings
}

// NewWorkspace creates a workspace. defaults seed the snapshot when the auto slot is empty.
func NewWorkspace(store db.SnapshotStore, logger *zap.Logger, defaults model.Settings) *Workspace {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Workspace{
		store:    store,
		logger:   logger,
		defaults: defaults,
	}
}

// Current returns the working snapshot
func (w *Workspace) Current(ctx context.Context) (*model.Snapshot, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.load(ctx)
}

// Replace overwrites the working snapshot after validating it
func (w *Workspace) Replace(ctx context.Context, snapshot *model.Snapshot) error {
	if err := snapshot.Validate(); err != nil {
		return err
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	return w.save(ctx, snapshot)
}

// update loads the working snapshot, applies fn and saves the result. Nothing is saved when
// fn fails.
func (w *Workspace) update(ctx context.Context, fn func(*model.Snapshot) (*model.Snapshot, error)) (*model.Snapshot, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	current, err := w.load(ctx)
	if err != nil {
		return nil, err
	}
	next, err := fn(current)
	if err != nil {
		return nil, err
	}
	if err := w.save(ctx, next); err != nil {
		return nil, err
	}
	return next, nil
}

func (w *Workspace) load(ctx context.Context) (*model.Snapshot, error) {
	snapshot, err := w.store.LoadSnapshot(ctx, db.AutoSlot)
	if errors.Is(err, db.ErrSlotNotFound) {
		w.logger.Debug("No working snapshot found, starting fresh",
			zap.Int("group_count", w.defaults.GroupCount))
		return model.NewSnapshot(w.defaults), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load working snapshot: %w", err)
	}
	return snapshot, nil
}

func (w *Workspace) save(ctx context.Context, snapshot *model.Snapshot) error {
	if err := w.store.SaveSnapshot(ctx, db.AutoSlot, snapshot); err != nil {
		return fmt.Errorf("failed to save working snapshot: %w", err)
	}
	return nil
}

// Resolve finds the individual a reference points at. An exact id wins; otherwise the
// reference must match exactly one name, ignoring case.
func Resolve(snapshot *model.Snapshot, ref string) (model.Individual, error) {
	ref = strings.TrimSpace(ref)
	if individual, ok := snapshot.FindIndividual(ref); ok {
		return individual, nil
	}

	var matches []model.Individual
	for _, individual := range snapshot.Roster {
		if strings.EqualFold(individual.Name, ref) {
			matches = append(matches, individual)
		}
	}

	switch len(matches) {
	case 0:
		return model.Individual{}, fmt.Errorf("%w %q", ErrNoMatch, ref)
	case 1:
		found, _ := snapshot.FindIndividual(matches[0].ID)
		return found, nil
	}

	ids := make([]string, len(matches))
	for i, match := range matches {
		ids[i] = match.ID
	}
	return model.Individual{}, fmt.Errorf("%w: %q matches %s", ErrAmbiguous, ref, strings.Join(ids, ", "))
}
