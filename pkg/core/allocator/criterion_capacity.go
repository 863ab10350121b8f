package allocator

import (
	"fmt"

	"github.com/jakechorley/seat-arranger/pkg/core/model"
)

// CapacityRule prevents overfilling of groups.
//
// Validity:
//   - Returns false if the group is already at its limit (the planned target during
//     arrangement, MaxPerGroup for manual moves)
//
// Validation:
//   - Groups below MinPerGroup or above MaxPerGroup are reported
type CapacityRule struct{}

func NewCapacityRule() *CapacityRule {
	return &CapacityRule{}
}

func (r *CapacityRule) Name() string {
	return "Capacity"
}

func (r *CapacityRule) Reason() Reason {
	return ReasonCapacity
}

func (r *CapacityRule) Allows(state *State, groupIdx int, candidate model.Individual, excludeID string) bool {
	size := 0
	for _, member := range state.groups[groupIdx].Members {
		if member.ID == excludeID || member.ID == candidate.ID {
			continue
		}
		size++
	}
	return size < state.limits[groupIdx]
}

func (r *CapacityRule) Validate(state *State) []Warning {
	var warnings []Warning

	for i, group := range state.groups {
		size := len(group.Members)
		if size < state.settings.MinPerGroup {
			warnings = append(warnings, Warning{
				Kind:        WarningUnderMinimum,
				RuleName:    r.Name(),
				GroupIndex:  i,
				GroupName:   group.Name,
				Description: fmt.Sprintf("%s is underfilled: has %d members but minimum is %d", group.Name, size, state.settings.MinPerGroup),
			})
		} else if size > state.settings.MaxPerGroup {
			warnings = append(warnings, Warning{
				Kind:        WarningOverMaximum,
				RuleName:    r.Name(),
				GroupIndex:  i,
				GroupName:   group.Name,
				Description: fmt.Sprintf("%s is overfilled: has %d members but maximum is %d", group.Name, size, state.settings.MaxPerGroup),
			})
		}
	}

	return warnings
}
