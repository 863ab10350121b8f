package services

import (
	"context"
	"sort"

	"github.com/jakechorley/seat-arranger/pkg/core/model"
	"github.com/jakechorley/seat-arranger/pkg/db"
)

// mockStore implements db.SnapshotStore in memory
type mockStore struct {
	slots     map[string]*model.Snapshot
	saves     int
	loadErr   error
	saveErr   error
	listErr   error
	deleteErr error
}

func newMockStore() *mockStore {
	return &mockStore{slots: make(map[string]*model.Snapshot)}
}

func (m *mockStore) SaveSnapshot(ctx context.Context, slot string, snapshot *model.Snapshot) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saves++
	m.slots[slot] = snapshot.Clone()
	return nil
}

func (m *mockStore) LoadSnapshot(ctx context.Context, slot string) (*model.Snapshot, error) {
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	snapshot, ok := m.slots[slot]
	if !ok {
		return nil, db.ErrSlotNotFound
	}
	return snapshot.Clone(), nil
}

func (m *mockStore) ListSlots(ctx context.Context) ([]db.SlotInfo, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	slots := make([]db.SlotInfo, 0, len(m.slots))
	for name := range m.slots {
		slots = append(slots, db.SlotInfo{Name: name})
	}
	sort.Slice(slots, func(i, j int) bool { return slots[i].Name < slots[j].Name })
	return slots, nil
}

func (m *mockStore) DeleteSlot(ctx context.Context, slot string) error {
	if m.deleteErr != nil {
		return m.deleteErr
	}
	if _, ok := m.slots[slot]; !ok {
		return db.ErrSlotNotFound
	}
	delete(m.slots, slot)
	return nil
}

func (m *mockStore) Close() error {
	return nil
}

// mockSheets implements RosterSource and ArrangementPublisher
type mockSheets struct {
	roster    []model.Individual
	loadErr   error
	published []model.Group
	saveErr   error
	gotID     string
	gotRange  string
}

func (m *mockSheets) LoadRoster(spreadsheetID, sheetRange string) ([]model.Individual, error) {
	m.gotID, m.gotRange = spreadsheetID, sheetRange
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	return m.roster, nil
}

func (m *mockSheets) SaveArrangement(spreadsheetID, sheetRange string, groups []model.Group) error {
	m.gotID, m.gotRange = spreadsheetID, sheetRange
	if m.saveErr != nil {
		return m.saveErr
	}
	m.published = groups
	return nil
}
