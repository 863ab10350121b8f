package allocator

import (
	"fmt"

	"github.com/jakechorley/seat-arranger/pkg/core/model"
)

// TogetherRule reports Together pairs that ended up split. Together is a preference,
// so it never vetoes a placement; the placement engine and reconciler pursue it instead.
type TogetherRule struct{}

func NewTogetherRule() *TogetherRule {
	return &TogetherRule{}
}

func (r *TogetherRule) Name() string {
	return "Together"
}

func (r *TogetherRule) Reason() Reason {
	return ReasonNone
}

func (r *TogetherRule) Allows(state *State, groupIdx int, candidate model.Individual, excludeID string) bool {
	return true
}

func (r *TogetherRule) Validate(state *State) []Warning {
	var warnings []Warning

	for _, pair := range state.constraints.Together {
		groupA := state.GroupOf(pair.AID)
		groupB := state.GroupOf(pair.BID)
		if groupA >= 0 && groupA == groupB {
			continue
		}
		warnings = append(warnings, Warning{
			Kind:          WarningUnsatisfiedTogether,
			RuleName:      r.Name(),
			GroupIndex:    -1,
			IndividualIDs: []string{pair.AID, pair.BID},
			Description: fmt.Sprintf("%s (%s) and %s (%s) should be together",
				state.nameOf(pair.AID), state.groupNameOf(groupA),
				state.nameOf(pair.BID), state.groupNameOf(groupB)),
		})
	}

	return warnings
}
