package allocator

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jakechorley/seat-arranger/pkg/core/model"
)

func manualState(t *testing.T, policy model.GenderPolicy, apart []model.Pair, groups ...[]string) *State {
	t.Helper()

	roster := []model.Individual{
		male("m1"), male("m2"), male("m3"),
		female("f1"), female("f2"), female("f3"),
		unspecified("u1"),
	}
	snapshot := newTestSnapshot(model.Settings{GroupCount: len(groups), MinPerGroup: 2, MaxPerGroup: 3, Policy: policy}, roster...)
	snapshot.ApartPairs = apart
	for i, ids := range groups {
		placeIn(t, snapshot, i, ids...)
	}
	return NewManualState(snapshot, nil)
}

func TestCheck(t *testing.T) {
	tests := []struct {
		name      string
		policy    model.GenderPolicy
		apart     []model.Pair
		groups    [][]string
		groupIdx  int
		candidate model.Individual
		excludeID string
		expected  Reason
	}{
		{
			name:      "room available",
			policy:    model.PolicyBalanced,
			groups:    [][]string{{"m1"}, {}},
			candidate: female("f1"),
			expected:  ReasonNone,
		},
		{
			name:      "group at max",
			policy:    model.PolicyBalanced,
			groups:    [][]string{{"m1", "m2", "f1"}, {}},
			candidate: female("f2"),
			expected:  ReasonCapacity,
		},
		{
			name:      "swap partner excluded from capacity",
			policy:    model.PolicyBalanced,
			groups:    [][]string{{"m1", "m2", "f1"}, {}},
			candidate: female("f2"),
			excludeID: "f1",
			expected:  ReasonNone,
		},
		{
			name:      "apart member present",
			policy:    model.PolicyFullyRandom,
			apart:     []model.Pair{{AID: "f1", BID: "m1"}},
			groups:    [][]string{{"m1"}, {}},
			candidate: female("f1"),
			expected:  ReasonApart,
		},
		{
			name:      "apart member leaving in a swap",
			policy:    model.PolicyFullyRandom,
			apart:     []model.Pair{{AID: "f1", BID: "m1"}},
			groups:    [][]string{{"m1"}, {}},
			candidate: female("f1"),
			excludeID: "m1",
			expected:  ReasonNone,
		},
		{
			name:      "separate rejects other category",
			policy:    model.PolicySeparateByGender,
			groups:    [][]string{{"m1"}, {}},
			candidate: female("f1"),
			expected:  ReasonGender,
		},
		{
			name:      "separate accepts same category",
			policy:    model.PolicySeparateByGender,
			groups:    [][]string{{"f2"}, {}},
			candidate: female("f1"),
			expected:  ReasonNone,
		},
		{
			name:      "separate rejects unspecified",
			policy:    model.PolicySeparateByGender,
			groups:    [][]string{{}, {}},
			candidate: unspecified("u1"),
			expected:  ReasonGender,
		},
		{
			name:      "separate accepts anyone into empty group",
			policy:    model.PolicySeparateByGender,
			groups:    [][]string{{"u1"}, {}},
			candidate: male("m1"),
			expected:  ReasonNone,
		},
		{
			name:      "balanced ignores categories",
			policy:    model.PolicyBalanced,
			groups:    [][]string{{"m1", "m2"}, {}},
			candidate: unspecified("u1"),
			expected:  ReasonNone,
		},
		{
			name:      "capacity is checked before gender",
			policy:    model.PolicySeparateByGender,
			groups:    [][]string{{"m1", "m2", "m3"}, {}},
			candidate: female("f1"),
			expected:  ReasonCapacity,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			state := manualState(t, tt.policy, tt.apart, tt.groups...)
			assert.Equal(t, tt.expected, state.Check(tt.groupIdx, tt.candidate, tt.excludeID))
		})
	}
}

func TestDefaultRules(t *testing.T) {
	names := make([]string, 0)
	for _, rule := range DefaultRules() {
		names = append(names, rule.Name())
	}
	assert.Equal(t, []string{"Capacity", "Apart", "GenderPolicy", "Together"}, names)
}

type vetoRule struct {
	blocked string
}

func (r *vetoRule) Name() string   { return "Veto" }
func (r *vetoRule) Reason() Reason { return ReasonCapacity }
func (r *vetoRule) Allows(state *State, groupIdx int, candidate model.Individual, excludeID string) bool {
	return candidate.ID != r.blocked
}
func (r *vetoRule) Validate(state *State) []Warning { return nil }

func TestArrange_CustomRuleVeto(t *testing.T) {
	snapshot := newTestSnapshot(model.Settings{GroupCount: 2, MinPerGroup: 2, MaxPerGroup: 3, Policy: model.PolicyFullyRandom},
		male("a"), male("b"), female("c"), female("d"), female("e"))

	opts := seededOptions(5)
	opts.Rules = append(DefaultRules(), &vetoRule{blocked: "e"})

	outcome, err := Arrange(snapshot, opts)

	assert.NoError(t, err)
	assert.Equal(t, -1, outcome.Snapshot.GroupIndexOf("e"))
	if assert.Len(t, outcome.Unplaced, 1) {
		assert.Equal(t, "e", outcome.Unplaced[0].ID)
	}
}
