package postgres

import (
	"context"
	"io/fs"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jakechorley/seat-arranger/pkg/core/model"
	"github.com/jakechorley/seat-arranger/pkg/db"
)

func TestMigrationFiles(t *testing.T) {
	files, err := migrationFiles()
	require.NoError(t, err)
	require.NotEmpty(t, files)
	assert.Equal(t, "001_snapshot.sql", files[0])

	content, err := fs.ReadFile(migrationsFS, "migrations/"+files[0])
	require.NoError(t, err)
	assert.Contains(t, string(content), "CREATE TABLE IF NOT EXISTS snapshot")
}

// TestStore_Integration runs against a real database when SEAT_ARRANGER_TEST_POSTGRES_URL is set
func TestStore_Integration(t *testing.T) {
	connString := os.Getenv("SEAT_ARRANGER_TEST_POSTGRES_URL")
	if connString == "" {
		t.Skip("SEAT_ARRANGER_TEST_POSTGRES_URL not set")
	}

	ctx := context.Background()
	store, err := NewStore(ctx, connString, zap.NewNop())
	require.NoError(t, err)
	defer store.Close()

	snapshot := model.NewSnapshot(model.DefaultSettings())
	snapshot.Roster = append(snapshot.Roster, model.NewIndividual("Kim", model.CategoryFemale))

	slot := "integration-test"
	require.NoError(t, store.SaveSnapshot(ctx, slot, snapshot))
	defer func() { _ = store.DeleteSlot(ctx, slot) }()

	loaded, err := store.LoadSnapshot(ctx, slot)
	require.NoError(t, err)
	assert.Equal(t, snapshot, loaded)

	slots, err := store.ListSlots(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, slots)

	require.NoError(t, store.DeleteSlot(ctx, slot))
	_, err = store.LoadSnapshot(ctx, slot)
	assert.ErrorIs(t, err, db.ErrSlotNotFound)
}
