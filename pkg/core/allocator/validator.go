package allocator

import (
	"github.com/jakechorley/seat-arranger/pkg/core/model"
)

// Validate re-derives the warnings for any snapshot, including one edited by hand.
// Capacity is judged against MinPerGroup and MaxPerGroup, and every roster entry outside
// the groups is reported as unplaced.
func Validate(snapshot *model.Snapshot) []Warning {
	state := NewManualState(snapshot, nil)
	for _, individual := range snapshot.Roster {
		if state.GroupOf(individual.ID) < 0 {
			state.unplaced = append(state.unplaced, individual)
		}
	}
	return state.warnings()
}
