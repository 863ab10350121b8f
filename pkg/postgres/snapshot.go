package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jakechorley/seat-arranger/pkg/core/model"
	"github.com/jakechorley/seat-arranger/pkg/db"
)

// SaveSnapshot upserts the slot
func (s *Store) SaveSnapshot(ctx context.Context, slot string, snapshot *model.Snapshot) error {
	if err := db.ValidateSlotName(slot); err != nil {
		return err
	}
	payload, err := db.MarshalSnapshot(snapshot)
	if err != nil {
		return err
	}

	_, err = s.pool.Exec(ctx, `
		INSERT INTO snapshot (slot, payload, saved_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (slot) DO UPDATE SET payload = EXCLUDED.payload, saved_at = EXCLUDED.saved_at
	`, slot, string(payload))
	if err != nil {
		return fmt.Errorf("failed to save snapshot %s: %w", slot, err)
	}
	return nil
}

// LoadSnapshot retrieves the slot's snapshot
func (s *Store) LoadSnapshot(ctx context.Context, slot string) (*model.Snapshot, error) {
	if err := db.ValidateSlotName(slot); err != nil {
		return nil, err
	}

	var payload []byte
	err := s.pool.QueryRow(ctx, `SELECT payload FROM snapshot WHERE slot = $1`, slot).Scan(&payload)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", db.ErrSlotNotFound, slot)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load snapshot %s: %w", slot, err)
	}
	return db.UnmarshalSnapshot(payload)
}

// ListSlots retrieves every slot name with its save time
func (s *Store) ListSlots(ctx context.Context) ([]db.SlotInfo, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT slot, saved_at
		FROM snapshot
		ORDER BY slot
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query slots: %w", err)
	}
	defer rows.Close()

	slots := make([]db.SlotInfo, 0)
	for rows.Next() {
		var info db.SlotInfo
		var savedAt time.Time
		if err := rows.Scan(&info.Name, &savedAt); err != nil {
			return nil, fmt.Errorf("failed to scan slot: %w", err)
		}
		info.SavedAt = savedAt.UTC()
		slots = append(slots, info)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating slots: %w", err)
	}

	return slots, nil
}

// DeleteSlot removes the slot
func (s *Store) DeleteSlot(ctx context.Context, slot string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM snapshot WHERE slot = $1`, slot)
	if err != nil {
		return fmt.Errorf("failed to delete snapshot %s: %w", slot, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s", db.ErrSlotNotFound, slot)
	}
	return nil
}
