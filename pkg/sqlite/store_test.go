package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jakechorley/seat-arranger/pkg/core/model"
	"github.com/jakechorley/seat-arranger/pkg/db"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(filepath.Join(t.TempDir(), "nested", "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func testSnapshot() *model.Snapshot {
	snapshot := model.NewSnapshot(model.DefaultSettings())
	kim := model.NewIndividual("Kim", model.CategoryFemale)
	lee := model.NewIndividual("Lee", model.CategoryMale)
	snapshot.Roster = append(snapshot.Roster, kim, lee)
	snapshot.Groups[0].Members = append(snapshot.Groups[0].Members, kim)
	snapshot.TogetherPairs = append(snapshot.TogetherPairs, model.Pair{AID: kim.ID, BID: lee.ID})
	return snapshot
}

func TestStore_SaveLoadRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	snapshot := testSnapshot()

	require.NoError(t, store.SaveSnapshot(ctx, db.AutoSlot, snapshot))

	loaded, err := store.LoadSnapshot(ctx, db.AutoSlot)
	require.NoError(t, err)
	assert.Equal(t, snapshot, loaded)
}

func TestStore_Overwrite(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	first := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	second := first.Add(time.Hour)

	store.now = func() time.Time { return first }
	require.NoError(t, store.SaveSnapshot(ctx, "period-1", testSnapshot()))

	updated := testSnapshot()
	updated.GenderPolicy = model.PolicySeparateByGender
	store.now = func() time.Time { return second }
	require.NoError(t, store.SaveSnapshot(ctx, "period-1", updated))

	loaded, err := store.LoadSnapshot(ctx, "period-1")
	require.NoError(t, err)
	assert.Equal(t, model.PolicySeparateByGender, loaded.GenderPolicy)

	slots, err := store.ListSlots(ctx)
	require.NoError(t, err)
	require.Len(t, slots, 1)
	assert.Equal(t, "period-1", slots[0].Name)
	assert.True(t, second.Equal(slots[0].SavedAt))
}

func TestStore_ListAndDelete(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	for _, slot := range []string{"b", db.AutoSlot, "a"} {
		require.NoError(t, store.SaveSnapshot(ctx, slot, testSnapshot()))
	}

	slots, err := store.ListSlots(ctx)
	require.NoError(t, err)
	names := make([]string, len(slots))
	for i, slot := range slots {
		names[i] = slot.Name
	}
	assert.Equal(t, []string{"a", db.AutoSlot, "b"}, names)

	require.NoError(t, store.DeleteSlot(ctx, "a"))
	assert.ErrorIs(t, store.DeleteSlot(ctx, "a"), db.ErrSlotNotFound)

	_, err = store.LoadSnapshot(ctx, "a")
	assert.ErrorIs(t, err, db.ErrSlotNotFound)
}

func TestStore_EmptyList(t *testing.T) {
	slots, err := newTestStore(t).ListSlots(context.Background())
	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestStore_RejectsInvalidSlot(t *testing.T) {
	store := newTestStore(t)

	err := store.SaveSnapshot(context.Background(), "../escape", testSnapshot())
	assert.ErrorIs(t, err, db.ErrInvalidSlotName)
	assert.ErrorIs(t, store.DeleteSlot(context.Background(), "../escape"), db.ErrInvalidSlotName)
	assert.ErrorIs(t, store.DeleteSlot(context.Background(), ""), db.ErrInvalidSlotName)
}
