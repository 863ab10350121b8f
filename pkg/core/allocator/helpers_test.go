package allocator

import (
	"fmt"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jakechorley/seat-arranger/pkg/core/model"
)

func male(id string) model.Individual {
	return model.Individual{ID: id, Name: "Name " + id, Category: model.CategoryMale}
}

func female(id string) model.Individual {
	return model.Individual{ID: id, Name: "Name " + id, Category: model.CategoryFemale}
}

func unspecified(id string) model.Individual {
	return model.Individual{ID: id, Name: "Name " + id, Category: model.CategoryUnspecified}
}

func locked(individual model.Individual) model.Individual {
	individual.Locked = true
	return individual
}

// newTestSnapshot builds a snapshot with deterministic group ids and every individual unplaced
func newTestSnapshot(settings model.Settings, roster ...model.Individual) *model.Snapshot {
	snapshot := model.NewSnapshot(settings)
	for i := range snapshot.Groups {
		snapshot.Groups[i].ID = fmt.Sprintf("g%d", i+1)
	}
	snapshot.Roster = append(snapshot.Roster, roster...)
	return snapshot
}

// placeIn puts roster entries into a group, carrying the roster's Locked flag
func placeIn(t *testing.T, snapshot *model.Snapshot, groupIdx int, ids ...string) {
	t.Helper()
	for _, id := range ids {
		idx := snapshot.RosterIndex(id)
		require.GreaterOrEqual(t, idx, 0, "unknown id %s", id)
		snapshot.Groups[groupIdx].Members = append(snapshot.Groups[groupIdx].Members, snapshot.Roster[idx])
	}
}

func memberIDs(group model.Group) []string {
	ids := make([]string, len(group.Members))
	for i, member := range group.Members {
		ids[i] = member.ID
	}
	return ids
}

func warningsOfKind(warnings []Warning, kind WarningKind) []Warning {
	var filtered []Warning
	for _, warning := range warnings {
		if warning.Kind == kind {
			filtered = append(filtered, warning)
		}
	}
	return filtered
}

// assertPartition checks that every roster entry ends up exactly once across groups and unplaced,
// and that no group exceeds MaxPerGroup
func assertPartition(t *testing.T, input *model.Snapshot, outcome *Outcome) {
	t.Helper()

	seen := make(map[string]int)
	for _, group := range outcome.Snapshot.Groups {
		assert.LessOrEqual(t, len(group.Members), input.MaxPerGroup, "%s exceeds max", group.Name)
		for _, member := range group.Members {
			seen[member.ID]++
		}
	}
	for _, individual := range outcome.Unplaced {
		seen[individual.ID]++
	}

	assert.Len(t, seen, len(input.Roster), "every roster entry should be accounted for")
	for _, individual := range input.Roster {
		assert.Equal(t, 1, seen[individual.ID], "%s should appear exactly once", individual.ID)
	}
}

// randomSnapshot generates a valid snapshot with random settings, categories, pre-placed and
// locked members and pairwise constraints
func randomSnapshot(rng *rand.Rand) *model.Snapshot {
	policies := []model.GenderPolicy{model.PolicyBalanced, model.PolicyFullyRandom, model.PolicySeparateByGender}
	minPerGroup := 2 + rng.IntN(4)
	settings := model.Settings{
		GroupCount:  2 + rng.IntN(7),
		MinPerGroup: minPerGroup,
		MaxPerGroup: minPerGroup + rng.IntN(model.MaxGroupSize-minPerGroup+1),
		Policy:      policies[rng.IntN(len(policies))],
	}

	n := rng.IntN(settings.GroupCount*settings.MaxPerGroup + 4)
	roster := make([]model.Individual, n)
	for i := range roster {
		id := fmt.Sprintf("p%d", i)
		switch rng.IntN(5) {
		case 0:
			roster[i] = unspecified(id)
		case 1, 2:
			roster[i] = male(id)
		default:
			roster[i] = female(id)
		}
	}

	snapshot := newTestSnapshot(settings, roster...)
	for i := range snapshot.Roster {
		if rng.IntN(3) != 0 {
			continue
		}
		groupIdx := rng.IntN(settings.GroupCount)
		group := &snapshot.Groups[groupIdx]
		if len(group.Members) >= settings.MaxPerGroup {
			continue
		}
		snapshot.Roster[i].Locked = rng.IntN(2) == 0
		group.Members = append(group.Members, snapshot.Roster[i])
	}

	if n >= 2 {
		used := make(map[[2]string]bool)
		for k := rng.IntN(n); k > 0; k-- {
			a, b := rng.IntN(n), rng.IntN(n)
			if a == b {
				continue
			}
			pair := model.Pair{AID: roster[a].ID, BID: roster[b].ID}
			if used[pair.Key()] {
				continue
			}
			used[pair.Key()] = true
			if rng.IntN(2) == 0 {
				snapshot.TogetherPairs = append(snapshot.TogetherPairs, pair)
			} else {
				snapshot.ApartPairs = append(snapshot.ApartPairs, pair)
			}
		}
	}

	return snapshot
}
