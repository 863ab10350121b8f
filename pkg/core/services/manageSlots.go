package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/jakechorley/seat-arranger/pkg/core/model"
	"github.com/jakechorley/seat-arranger/pkg/db"
)

// SaveAs copies the working snapshot into a named slot
func (w *Workspace) SaveAs(ctx context.Context, slot string) error {
	if err := rejectAutoSlot(slot); err != nil {
		return err
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	snapshot, err := w.load(ctx)
	if err != nil {
		return err
	}
	if err := w.store.SaveSnapshot(ctx, slot, snapshot); err != nil {
		return fmt.Errorf("failed to save slot %s: %w", slot, err)
	}

	w.logger.Info("Saved slot", zap.String("slot", slot))
	return nil
}

// LoadFrom replaces the working snapshot with the contents of a named slot
func (w *Workspace) LoadFrom(ctx context.Context, slot string) (*model.Snapshot, error) {
	if err := rejectAutoSlot(slot); err != nil {
		return nil, err
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	snapshot, err := w.store.LoadSnapshot(ctx, slot)
	if err != nil {
		return nil, fmt.Errorf("failed to load slot %s: %w", slot, err)
	}
	if err := snapshot.Validate(); err != nil {
		return nil, fmt.Errorf("slot %s holds an invalid snapshot: %w", slot, err)
	}
	if err := w.save(ctx, snapshot); err != nil {
		return nil, err
	}

	w.logger.Info("Loaded slot", zap.String("slot", slot))
	return snapshot, nil
}

// Slots lists the named slots, excluding the working snapshot
func (w *Workspace) Slots(ctx context.Context) ([]db.SlotInfo, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	slots, err := w.store.ListSlots(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list slots: %w", err)
	}

	named := make([]db.SlotInfo, 0, len(slots))
	for _, slot := range slots {
		if slot.Name != db.AutoSlot {
			named = append(named, slot)
		}
	}
	return named, nil
}

// DeleteSlot removes a named slot
func (w *Workspace) DeleteSlot(ctx context.Context, slot string) error {
	if err := rejectAutoSlot(slot); err != nil {
		return err
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.store.DeleteSlot(ctx, slot); err != nil {
		return fmt.Errorf("failed to delete slot %s: %w", slot, err)
	}

	w.logger.Info("Deleted slot", zap.String("slot", slot))
	return nil
}

func rejectAutoSlot(slot string) error {
	if slot == db.AutoSlot {
		return fmt.Errorf("%w: %q is reserved for the working snapshot", db.ErrInvalidSlotName, slot)
	}
	return db.ValidateSlotName(slot)
}
