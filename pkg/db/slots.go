package db

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jakechorley/seat-arranger/pkg/core/model"
)

// AutoSlot holds the working state every command loads and saves
const AutoSlot = "auto"

// MaxSlotNameLength bounds slot names so they fit every backend's key rules
const MaxSlotNameLength = 64

var (
	ErrSlotNotFound    = errors.New("slot not found")
	ErrInvalidSlotName = errors.New("invalid slot name")
)

// SlotInfo describes a saved slot
type SlotInfo struct {
	Name    string
	SavedAt time.Time
}

// ValidateSlotName rejects names that are empty, too long, or could escape a key prefix
func ValidateSlotName(name string) error {
	switch {
	case strings.TrimSpace(name) == "":
		return fmt.Errorf("%w: name is empty", ErrInvalidSlotName)
	case len(name) > MaxSlotNameLength:
		return fmt.Errorf("%w: %q is longer than %d characters", ErrInvalidSlotName, name, MaxSlotNameLength)
	case strings.ContainsAny(name, `/\`), strings.Contains(name, ".."):
		return fmt.Errorf("%w: %q contains a path separator or '..'", ErrInvalidSlotName, name)
	}
	return nil
}

// MarshalSnapshot encodes a snapshot for storage
func MarshalSnapshot(snapshot *model.Snapshot) ([]byte, error) {
	data, err := json.Marshal(snapshot.Clone())
	if err != nil {
		return nil, fmt.Errorf("failed to encode snapshot: %w", err)
	}
	return data, nil
}

// UnmarshalSnapshot decodes a stored snapshot, normalising missing collections to empty ones
func UnmarshalSnapshot(data []byte) (*model.Snapshot, error) {
	var snapshot model.Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot: %w", err)
	}
	return snapshot.Clone(), nil
}
