package allocator

import (
	"fmt"

	"github.com/jakechorley/seat-arranger/pkg/core/model"
)

// ApartRule keeps Apart pairs out of the same group.
//
// Validity:
//   - Returns false if any remaining member of the group is Apart-paired with the candidate
//
// Validation:
//   - Apart pairs sharing a group are reported
type ApartRule struct{}

func NewApartRule() *ApartRule {
	return &ApartRule{}
}

func (r *ApartRule) Name() string {
	return "Apart"
}

func (r *ApartRule) Reason() Reason {
	return ReasonApart
}

func (r *ApartRule) Allows(state *State, groupIdx int, candidate model.Individual, excludeID string) bool {
	for _, member := range state.groups[groupIdx].Members {
		if member.ID == excludeID || member.ID == candidate.ID {
			continue
		}
		if state.IsApart(member.ID, candidate.ID) {
			return false
		}
	}
	return true
}

func (r *ApartRule) Validate(state *State) []Warning {
	var warnings []Warning

	for _, pair := range state.constraints.Apart {
		groupA := state.GroupOf(pair.AID)
		if groupA < 0 || groupA != state.GroupOf(pair.BID) {
			continue
		}
		group := state.groups[groupA]
		warnings = append(warnings, Warning{
			Kind:          WarningUnsatisfiedApart,
			RuleName:      r.Name(),
			GroupIndex:    groupA,
			GroupName:     group.Name,
			IndividualIDs: []string{pair.AID, pair.BID},
			Description:   fmt.Sprintf("%s and %s should be apart but share %s", state.nameOf(pair.AID), state.nameOf(pair.BID), group.Name),
		})
	}

	return warnings
}
