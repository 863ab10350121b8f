package db

import (
	"context"

	"github.com/jakechorley/seat-arranger/pkg/core/model"
)

// SnapshotStore persists snapshots under named slots.
// The SQLite, PostgreSQL and S3 backends all implement this interface.
type SnapshotStore interface {
	// SaveSnapshot creates or overwrites the slot
	SaveSnapshot(ctx context.Context, slot string, snapshot *model.Snapshot) error

	// LoadSnapshot returns ErrSlotNotFound if the slot was never saved
	LoadSnapshot(ctx context.Context, slot string) (*model.Snapshot, error)

	// ListSlots returns every saved slot ordered by name
	ListSlots(ctx context.Context) ([]SlotInfo, error)

	// DeleteSlot returns ErrSlotNotFound if the slot does not exist
	DeleteSlot(ctx context.Context, slot string) error

	Close() error
}
