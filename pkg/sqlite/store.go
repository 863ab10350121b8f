// Package sqlite stores snapshots in a single SQLite table as JSON blobs
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite" // pure go sqlite driver

	"github.com/jakechorley/seat-arranger/pkg/core/model"
	"github.com/jakechorley/seat-arranger/pkg/db"
)

// DefaultPath is used when no path is configured
const DefaultPath = "seat-arranger.db"

// Store implements db.SnapshotStore on SQLite
type Store struct {
	db  *sql.DB
	mu  sync.Mutex
	now func() time.Time
}

var _ db.SnapshotStore = (*Store)(nil)

// NewStore opens (creating if needed) the database at path and ensures the snapshot table exists
func NewStore(path string) (*Store, error) {
	if path == "" {
		path = DefaultPath
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil && !errors.Is(err, os.ErrExist) {
		return nil, fmt.Errorf("create dirs: %w", err)
	}
	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if _, err := conn.Exec(`CREATE TABLE IF NOT EXISTS snapshot (
		slot TEXT PRIMARY KEY,
		payload BLOB NOT NULL,
		saved_at TEXT NOT NULL
	)`); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("create snapshot table: %w", err)
	}
	return &Store{db: conn, now: time.Now}, nil
}

func (s *Store) SaveSnapshot(ctx context.Context, slot string, snapshot *model.Snapshot) error {
	if err := db.ValidateSlotName(slot); err != nil {
		return err
	}
	payload, err := db.MarshalSnapshot(snapshot)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	savedAt := s.now().UTC().Format(time.RFC3339Nano)
	if _, err := s.db.ExecContext(ctx, `INSERT INTO snapshot(slot, payload, saved_at) VALUES(?,?,?)
		ON CONFLICT(slot) DO UPDATE SET payload=excluded.payload, saved_at=excluded.saved_at`,
		slot, payload, savedAt); err != nil {
		return fmt.Errorf("upsert %s: %w", slot, err)
	}
	return nil
}

func (s *Store) LoadSnapshot(ctx context.Context, slot string) (*model.Snapshot, error) {
	if err := db.ValidateSlotName(slot); err != nil {
		return nil, err
	}

	var payload []byte
	err := s.db.QueryRowContext(ctx, `SELECT payload FROM snapshot WHERE slot = ?`, slot).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", db.ErrSlotNotFound, slot)
	}
	if err != nil {
		return nil, fmt.Errorf("select %s: %w", slot, err)
	}
	return db.UnmarshalSnapshot(payload)
}

func (s *Store) ListSlots(ctx context.Context) ([]db.SlotInfo, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT slot, saved_at FROM snapshot ORDER BY slot`)
	if err != nil {
		return nil, fmt.Errorf("select slots: %w", err)
	}
	defer func() { _ = rows.Close() }()

	slots := make([]db.SlotInfo, 0)
	for rows.Next() {
		var name, savedAt string
		if err := rows.Scan(&name, &savedAt); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		parsed, err := time.Parse(time.RFC3339Nano, savedAt)
		if err != nil {
			return nil, fmt.Errorf("parse saved_at of %s: %w", name, err)
		}
		slots = append(slots, db.SlotInfo{Name: name, SavedAt: parsed})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate slots: %w", err)
	}
	return slots, nil
}

func (s *Store) DeleteSlot(ctx context.Context, slot string) error {
	if err := db.ValidateSlotName(slot); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	result, err := s.db.ExecContext(ctx, `DELETE FROM snapshot WHERE slot = ?`, slot)
	if err != nil {
		return fmt.Errorf("delete %s: %w", slot, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete %s: %w", slot, err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: %s", db.ErrSlotNotFound, slot)
	}
	return nil
}

// Close releases the underlying database handle
func (s *Store) Close() error {
	return s.db.Close()
}
