package allocator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jakechorley/seat-arranger/pkg/core/model"
)

func TestValidate_CleanSnapshot(t *testing.T) {
	snapshot := newTestSnapshot(model.Settings{GroupCount: 2, MinPerGroup: 2, MaxPerGroup: 3, Policy: model.PolicyBalanced},
		male("a"), female("b"), male("c"), female("d"))
	placeIn(t, snapshot, 0, "a", "b")
	placeIn(t, snapshot, 1, "c", "d")
	snapshot.TogetherPairs = []model.Pair{{AID: "a", BID: "b"}}
	snapshot.ApartPairs = []model.Pair{{AID: "a", BID: "c"}}

	assert.Empty(t, Validate(snapshot))
}

func TestValidate_ReportsEveryShortfall(t *testing.T) {
	snapshot := newTestSnapshot(model.Settings{GroupCount: 2, MinPerGroup: 2, MaxPerGroup: 3, Policy: model.PolicySeparateByGender},
		male("a"), female("b"), male("c"), female("d"), unspecified("e"))
	placeIn(t, snapshot, 0, "a", "b", "c")
	placeIn(t, snapshot, 1, "d")
	snapshot.TogetherPairs = []model.Pair{{AID: "a", BID: "d"}}
	snapshot.ApartPairs = []model.Pair{{AID: "a", BID: "c"}}

	warnings := Validate(snapshot)

	together := warningsOfKind(warnings, WarningUnsatisfiedTogether)
	require.Len(t, together, 1)
	assert.Equal(t, -1, together[0].GroupIndex)
	assert.Contains(t, together[0].Description, "Name a (Group 1)")
	assert.Contains(t, together[0].Description, "Name d (Group 2)")

	apart := warningsOfKind(warnings, WarningUnsatisfiedApart)
	require.Len(t, apart, 1)
	assert.Equal(t, 0, apart[0].GroupIndex)
	assert.Equal(t, []string{"a", "c"}, apart[0].IndividualIDs)

	under := warningsOfKind(warnings, WarningUnderMinimum)
	require.Len(t, under, 1)
	assert.Equal(t, "Group 2", under[0].GroupName)

	mixed := warningsOfKind(warnings, WarningMixedGroup)
	require.Len(t, mixed, 1)
	assert.Equal(t, 0, mixed[0].GroupIndex)

	unplaced := warningsOfKind(warnings, WarningUnplaced)
	require.Len(t, unplaced, 1)
	assert.Equal(t, []string{"e"}, unplaced[0].IndividualIDs)
	assert.Contains(t, unplaced[0].Description, "Name e")
}

func TestValidate_OverMaximum(t *testing.T) {
	snapshot := newTestSnapshot(model.Settings{GroupCount: 2, MinPerGroup: 2, MaxPerGroup: 2, Policy: model.PolicyFullyRandom},
		male("a"), female("b"), male("c"), female("d"), male("e"))
	placeIn(t, snapshot, 0, "a", "b", "c")
	placeIn(t, snapshot, 1, "d", "e")

	over := warningsOfKind(Validate(snapshot), WarningOverMaximum)
	require.Len(t, over, 1)
	assert.Equal(t, "Group 1", over[0].GroupName)
}
