package allocator

import "github.com/jakechorley/seat-arranger/pkg/core/model"

// Reason identifies which placement rule blocked an individual from joining a group
type Reason string

const (
	ReasonNone     Reason = ""
	ReasonCapacity Reason = "capacity"
	ReasonGender   Reason = "gender"
	ReasonApart    Reason = "apart"
)

// WarningKind classifies a soft constraint shortfall
type WarningKind string

const (
	WarningUnsatisfiedTogether WarningKind = "unsatisfied_together"
	WarningUnsatisfiedApart    WarningKind = "unsatisfied_apart"
	WarningUnderMinimum        WarningKind = "under_minimum"
	WarningOverMaximum         WarningKind = "over_maximum"
	WarningMixedGroup          WarningKind = "mixed_group"
	WarningUnplaced            WarningKind = "unplaced"
)

// Warning is a structured annotation describing a soft constraint left unsatisfied.
// GroupIndex is -1 when the warning is not tied to a single group.
type Warning struct {
	Kind          WarningKind
	RuleName      string
	GroupIndex    int
	GroupName     string
	IndividualIDs []string
	Description   string
}

// Rule defines a placement rule applied during arrangement and manual moves
type Rule interface {
	// Name returns a human-readable identifier for this rule
	Name() string

	// Reason is reported when Allows returns false
	Reason() Reason

	// Allows determines if candidate may join the group at groupIdx.
	// excludeID names a current member to disregard, which lets swaps be checked
	// as if the outgoing member had already left. Pass "" for plain insertion.
	// This acts as a veto - if ANY rule returns false, the placement is rejected.
	Allows(state *State, groupIdx int, candidate model.Individual, excludeID string) bool

	// Validate checks the final state against this rule and reports any shortfalls
	Validate(state *State) []Warning
}

// DefaultRules returns the rules every arrangement is checked against
func DefaultRules() []Rule {
	return []Rule{
		NewCapacityRule(),
		NewApartRule(),
		NewGenderPolicyRule(),
		NewTogetherRule(),
	}
}
