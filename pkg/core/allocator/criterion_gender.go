package allocator

import (
	"fmt"

	"github.com/jakechorley/seat-arranger/pkg/core/model"
)

// GenderPolicyRule enforces the SeparateByGender policy. It allows everything under the
// other policies.
//
// Validity (SeparateByGender only):
//   - Individuals with an unspecified category are never placed automatically
//   - Returns false if the group already holds the other category
//
// Validation:
//   - Groups holding both categories are reported
type GenderPolicyRule struct{}

func NewGenderPolicyRule() *GenderPolicyRule {
	return &GenderPolicyRule{}
}

func (r *GenderPolicyRule) Name() string {
	return "GenderPolicy"
}

func (r *GenderPolicyRule) Reason() Reason {
	return ReasonGender
}

func (r *GenderPolicyRule) Allows(state *State, groupIdx int, candidate model.Individual, excludeID string) bool {
	if state.settings.Policy != model.PolicySeparateByGender {
		return true
	}
	if candidate.Category == model.CategoryUnspecified {
		return false
	}

	hasMale, hasFemale := false, false
	for _, member := range state.groups[groupIdx].Members {
		if member.ID == excludeID || member.ID == candidate.ID {
			continue
		}
		switch member.Category {
		case model.CategoryMale:
			hasMale = true
		case model.CategoryFemale:
			hasFemale = true
		}
	}

	switch {
	case hasMale && hasFemale:
		return false
	case hasMale:
		return candidate.Category == model.CategoryMale
	case hasFemale:
		return candidate.Category == model.CategoryFemale
	}
	return true
}

func (r *GenderPolicyRule) Validate(state *State) []Warning {
	if state.settings.Policy != model.PolicySeparateByGender {
		return nil
	}

	var warnings []Warning
	for i, group := range state.groups {
		males := group.CategoryCount(model.CategoryMale)
		females := group.CategoryCount(model.CategoryFemale)
		if males > 0 && females > 0 {
			warnings = append(warnings, Warning{
				Kind:        WarningMixedGroup,
				RuleName:    r.Name(),
				GroupIndex:  i,
				GroupName:   group.Name,
				Description: fmt.Sprintf("%s mixes %d male and %d female members", group.Name, males, females),
			})
		}
	}
	return warnings
}
