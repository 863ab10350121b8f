package allocator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/jakechorley/seat-arranger/pkg/core/model"
)

func newTestState(settings model.Settings, limits []int, constraints model.Constraints, groups ...[]model.Individual) *State {
	modelGroups := make([]model.Group, len(groups))
	for i, members := range groups {
		modelGroups[i] = model.Group{ID: model.GroupLabel(i), Name: model.GroupLabel(i), Members: members}
	}
	return newState(settings, modelGroups, limits, constraints, DefaultRules(), NewSeededShuffler(1), zap.NewNop())
}

func fullyRandomSettings(minPerGroup, maxPerGroup int) model.Settings {
	return model.Settings{GroupCount: 2, MinPerGroup: minPerGroup, MaxPerGroup: maxPerGroup, Policy: model.PolicyFullyRandom}
}

func TestReconcile_TogetherMove(t *testing.T) {
	state := newTestState(fullyRandomSettings(2, 4), []int{3, 3},
		model.Constraints{Together: []model.Pair{{AID: "a", BID: "b"}}},
		[]model.Individual{male("a"), male("c")},
		[]model.Individual{female("b"), female("d")})

	changes := state.Reconcile()

	assert.Equal(t, 1, changes)
	assert.Equal(t, state.GroupOf("a"), state.GroupOf("b"))
	assert.Equal(t, 0, state.Reconcile(), "second run should be a no-op")
}

func TestReconcile_TogetherSwapWhenFull(t *testing.T) {
	state := newTestState(fullyRandomSettings(2, 2), []int{2, 2},
		model.Constraints{Together: []model.Pair{{AID: "a", BID: "b"}}},
		[]model.Individual{male("a"), male("c")},
		[]model.Individual{female("b"), female("d")})

	changes := state.Reconcile()

	assert.Equal(t, 1, changes)
	assert.Equal(t, 1, state.GroupOf("a"))
	assert.Equal(t, 1, state.GroupOf("b"))
	assert.Equal(t, 0, state.GroupOf("d"))
	assert.Equal(t, []int{2, 2}, []int{state.Size(0), state.Size(1)})
	assert.Equal(t, 0, state.Reconcile())
}

func TestReconcile_NeverRelocatesLocked(t *testing.T) {
	state := newTestState(fullyRandomSettings(2, 2), []int{2, 2},
		model.Constraints{Together: []model.Pair{{AID: "a", BID: "b"}}},
		[]model.Individual{locked(male("a")), locked(male("c"))},
		[]model.Individual{locked(female("b")), female("d")})

	changes := state.Reconcile()

	assert.Equal(t, 0, changes)
	assert.Equal(t, 0, state.GroupOf("a"))
	assert.Equal(t, 1, state.GroupOf("b"))
	assert.Equal(t, 0, state.GroupOf("c"))
}

func TestReconcile_ApartMovesSecondListed(t *testing.T) {
	state := newTestState(fullyRandomSettings(1, 3), []int{3, 3},
		model.Constraints{Apart: []model.Pair{{AID: "a", BID: "b"}}},
		[]model.Individual{male("a"), male("b")},
		[]model.Individual{female("c")})

	changes := state.Reconcile()

	assert.Equal(t, 1, changes)
	assert.Equal(t, 0, state.GroupOf("a"))
	assert.Equal(t, 1, state.GroupOf("b"))
}

func TestReconcile_ApartMovesFirstWhenSecondLocked(t *testing.T) {
	state := newTestState(fullyRandomSettings(1, 3), []int{3, 3},
		model.Constraints{Apart: []model.Pair{{AID: "a", BID: "b"}}},
		[]model.Individual{male("a"), locked(male("b"))},
		[]model.Individual{female("c")})

	changes := state.Reconcile()

	assert.Equal(t, 1, changes)
	assert.Equal(t, 1, state.GroupOf("a"))
	assert.Equal(t, 0, state.GroupOf("b"))
}

func TestReconcile_ApartSwapWhenNoSpareCapacity(t *testing.T) {
	state := newTestState(fullyRandomSettings(2, 2), []int{2, 2},
		model.Constraints{Apart: []model.Pair{{AID: "a", BID: "b"}}},
		[]model.Individual{male("a"), male("b")},
		[]model.Individual{female("c"), female("d")})

	changes := state.Reconcile()

	assert.Equal(t, 1, changes)
	assert.NotEqual(t, state.GroupOf("a"), state.GroupOf("b"))
	assert.Equal(t, []int{2, 2}, []int{state.Size(0), state.Size(1)})
}

func TestReconcile_RejectsChangesThatDoNotHelp(t *testing.T) {
	// Moving b next to a would split b from c, so nothing improves
	state := newTestState(fullyRandomSettings(1, 4), []int{4, 4},
		model.Constraints{Together: []model.Pair{{AID: "a", BID: "b"}, {AID: "b", BID: "c"}}},
		[]model.Individual{locked(male("a"))},
		[]model.Individual{female("b"), locked(female("c"))})

	changes := state.Reconcile()

	assert.Equal(t, 0, changes)
	assert.Equal(t, 1, state.GroupOf("b"))
}

func TestReconcile_ConvergesWithinPassLimit(t *testing.T) {
	var together []model.Pair
	var left, right []model.Individual
	for _, n := range []string{"1", "2", "3", "4"} {
		together = append(together, model.Pair{AID: "m" + n, BID: "f" + n})
		left = append(left, male("m"+n))
		right = append(right, female("f"+n))
	}
	state := newTestState(fullyRandomSettings(2, 8), []int{5, 5},
		model.Constraints{Together: together}, left, right)
	before := state.violations()
	assert.Equal(t, 4, before)

	changes := state.Reconcile()

	assert.LessOrEqual(t, changes, before)
	assert.Less(t, state.violations(), before)
	assert.Equal(t, 0, state.Reconcile(), "should settle before the pass limit")
}

func TestRebalance_MovesDonorIntoDeficientGroup(t *testing.T) {
	state := newTestState(fullyRandomSettings(3, 4), []int{4, 4}, model.Constraints{},
		[]model.Individual{male("a"), male("b"), female("c"), female("d")},
		[]model.Individual{male("e"), female("f")})

	moves := state.Rebalance()

	assert.Equal(t, 1, moves)
	assert.Equal(t, 3, state.Size(0))
	assert.Equal(t, 3, state.Size(1))
	assert.Equal(t, 1, state.GroupOf("a"), "first unlocked donor moves")
}

func TestRebalance_PrefersUnplaced(t *testing.T) {
	state := newTestState(fullyRandomSettings(3, 4), []int{4, 4}, model.Constraints{},
		[]model.Individual{male("a"), male("b"), female("c"), female("d")},
		[]model.Individual{male("e"), female("f")})
	state.unplaced = []model.Individual{female("g")}

	moves := state.Rebalance()

	assert.Equal(t, 1, moves)
	assert.Equal(t, 1, state.GroupOf("g"))
	assert.Empty(t, state.unplaced)
	assert.Equal(t, 4, state.Size(0))
}

func TestRebalance_RespectsRules(t *testing.T) {
	settings := fullyRandomSettings(3, 4)
	settings.Policy = model.PolicySeparateByGender
	state := newTestState(settings, []int{4, 4},
		model.Constraints{},
		[]model.Individual{male("a"), male("b"), male("c"), male("d")},
		[]model.Individual{female("e"), female("f")})

	moves := state.Rebalance()

	assert.Equal(t, 0, moves)
	assert.Len(t, warningsOfKind(state.warnings(), WarningUnderMinimum), 1)
}

func TestRebalance_SkipsLockedAndApart(t *testing.T) {
	state := newTestState(fullyRandomSettings(3, 4), []int{4, 4},
		model.Constraints{Apart: []model.Pair{{AID: "b", BID: "e"}}},
		[]model.Individual{locked(male("a")), male("b"), locked(female("c")), female("d")},
		[]model.Individual{male("e"), female("f")})

	moves := state.Rebalance()

	assert.Equal(t, 1, moves)
	assert.Equal(t, 1, state.GroupOf("d"))
	assert.Equal(t, 0, state.GroupOf("b"))
}

func TestFillOpenSeats_AfterReconcileFreesSeat(t *testing.T) {
	state := newTestState(fullyRandomSettings(2, 3), []int{3, 3},
		model.Constraints{
			Together: []model.Pair{{AID: "a", BID: "b"}},
			Apart:    []model.Pair{{AID: "q", BID: "e"}},
		},
		[]model.Individual{male("a"), male("c"), female("d")},
		[]model.Individual{female("b"), male("e")})
	state.unplaced = []model.Individual{female("q")}

	assert.Equal(t, 1, state.Reconcile())
	assert.Equal(t, 1, state.GroupOf("a"))
	assert.Equal(t, 0, state.Rebalance())

	placed := state.FillOpenSeats()

	assert.Equal(t, 1, placed)
	assert.Equal(t, 0, state.GroupOf("q"), "q takes the seat a left behind")
	assert.Empty(t, state.unplaced)
	assert.Empty(t, warningsOfKind(state.warnings(), WarningUnplaced))
}

func TestFillOpenSeats_KeepsBlockedIndividualsUnplaced(t *testing.T) {
	settings := fullyRandomSettings(2, 3)
	settings.Policy = model.PolicySeparateByGender
	state := newTestState(settings, []int{3, 3}, model.Constraints{},
		[]model.Individual{male("a"), male("b")},
		[]model.Individual{female("c"), female("d"), female("e")})
	state.unplaced = []model.Individual{unspecified("u")}

	assert.Equal(t, 0, state.FillOpenSeats())
	assert.Len(t, state.unplaced, 1)
}
