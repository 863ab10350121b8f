// Package roster implements the manual editing commands on a snapshot.
//
// Every command is atomic: it returns a new snapshot and leaves its input untouched, including
// when it fails.
package roster

import (
	"fmt"
	"slices"
	"strings"

	"github.com/jakechorley/seat-arranger/pkg/core/allocator"
	"github.com/jakechorley/seat-arranger/pkg/core/model"
)

// AssignIndividual moves an individual (placed or not) into the group at groupIndex.
//
// The move is checked against the same rules the allocator uses, with MaxPerGroup as the
// capacity ceiling. A rejected move returns a *RejectedError naming the rule that blocked it.
// Assigning an individual to the group it already occupies is a successful no-op.
func AssignIndividual(snapshot *model.Snapshot, id string, groupIndex int) (*model.Snapshot, error) {
	individual, ok := snapshot.FindIndividual(id)
	if !ok {
		return nil, &RejectedError{Reason: ReasonUnknownIndividual, IndividualID: id, GroupIndex: groupIndex}
	}
	if groupIndex < 0 || groupIndex >= len(snapshot.Groups) {
		return nil, &RejectedError{Reason: ReasonUnknownGroup, IndividualID: id, GroupIndex: groupIndex}
	}

	from := snapshot.GroupIndexOf(id)
	if from == groupIndex {
		return snapshot.Clone(), nil
	}

	state := allocator.NewManualState(snapshot, nil)
	if reason := state.Check(groupIndex, individual, ""); reason != allocator.ReasonNone {
		return nil, &RejectedError{Reason: reason, IndividualID: id, GroupIndex: groupIndex}
	}

	out := snapshot.Clone()
	if from >= 0 {
		removeMember(&out.Groups[from], id)
	}
	out.Groups[groupIndex].Members = append(out.Groups[groupIndex].Members, individual)
	return out, nil
}

// Unassign returns a placed individual to the unplaced pool, unlocked
func Unassign(snapshot *model.Snapshot, id string) (*model.Snapshot, error) {
	if _, ok := snapshot.FindIndividual(id); !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownIndividual, id)
	}

	out := snapshot.Clone()
	if from := out.GroupIndexOf(id); from >= 0 {
		removeMember(&out.Groups[from], id)
	}
	setLocked(out, id, false)
	return out, nil
}

// ToggleLock flips the locked flag of an individual, keeping the roster entry and the placed
// copy in sync
func ToggleLock(snapshot *model.Snapshot, id string) (*model.Snapshot, error) {
	individual, ok := snapshot.FindIndividual(id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownIndividual, id)
	}

	out := snapshot.Clone()
	setLocked(out, id, !individual.Locked)
	return out, nil
}

// RemoveIndividual deletes an individual from the roster, from any group and from every
// Together and Apart pair that references them
func RemoveIndividual(snapshot *model.Snapshot, id string) (*model.Snapshot, error) {
	if _, ok := snapshot.FindIndividual(id); !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownIndividual, id)
	}

	out := snapshot.Clone()
	out.Roster = slices.DeleteFunc(out.Roster, func(individual model.Individual) bool {
		return individual.ID == id
	})
	for i := range out.Groups {
		removeMember(&out.Groups[i], id)
	}
	involves := func(pair model.Pair) bool { return pair.Involves(id) }
	out.TogetherPairs = slices.DeleteFunc(out.TogetherPairs, involves)
	out.ApartPairs = slices.DeleteFunc(out.ApartPairs, involves)
	return out, nil
}

// AddIndividuals appends individuals to the roster. Blank names are skipped and missing ids
// are minted. Returns the new snapshot and the individuals actually added.
func AddIndividuals(snapshot *model.Snapshot, individuals ...model.Individual) (*model.Snapshot, []model.Individual) {
	out := snapshot.Clone()
	added := make([]model.Individual, 0, len(individuals))

	for _, individual := range individuals {
		name := strings.TrimSpace(individual.Name)
		if name == "" {
			continue
		}
		created := model.NewIndividual(name, individual.Category)
		if individual.ID != "" && out.RosterIndex(individual.ID) < 0 {
			created.ID = individual.ID
		}
		out.Roster = append(out.Roster, created)
		added = append(added, created)
	}

	return out, added
}

// ClearGroups empties every group and unlocks everyone
func ClearGroups(snapshot *model.Snapshot) *model.Snapshot {
	out := snapshot.Clone()
	for i := range out.Groups {
		out.Groups[i].Members = []model.Individual{}
	}
	for i := range out.Roster {
		out.Roster[i].Locked = false
	}
	return out
}

// ResizeGroups changes the number of groups. New groups are appended empty; removed groups
// return their members to the unplaced pool, unlocked. Labels are renumbered sequentially.
func ResizeGroups(snapshot *model.Snapshot, groupCount int) (*model.Snapshot, error) {
	settings := snapshot.Settings()
	settings.GroupCount = groupCount
	if err := settings.Validate(); err != nil {
		return nil, err
	}

	out := snapshot.Clone()
	resize(out, groupCount)
	return out, nil
}

// ApplySettings validates and stores new arrangement settings, resizing the groups when the
// group count changes
func ApplySettings(snapshot *model.Snapshot, settings model.Settings) (*model.Snapshot, error) {
	if err := settings.Validate(); err != nil {
		return nil, err
	}

	out := snapshot.Clone()
	resize(out, settings.GroupCount)
	out.ApplySettings(settings)
	return out, nil
}

// Unplaced lists the roster entries that are not in any group, in roster order
func Unplaced(snapshot *model.Snapshot) []model.Individual {
	placed := make(map[string]bool)
	for _, group := range snapshot.Groups {
		for _, member := range group.Members {
			placed[member.ID] = true
		}
	}

	unplaced := make([]model.Individual, 0)
	for _, individual := range snapshot.Roster {
		if !placed[individual.ID] {
			unplaced = append(unplaced, individual)
		}
	}
	return unplaced
}

func resize(snapshot *model.Snapshot, groupCount int) {
	if groupCount < len(snapshot.Groups) {
		for _, group := range snapshot.Groups[groupCount:] {
			for _, member := range group.Members {
				setLocked(snapshot, member.ID, false)
			}
		}
		snapshot.Groups = snapshot.Groups[:groupCount]
	}
	for i := len(snapshot.Groups); i < groupCount; i++ {
		snapshot.Groups = append(snapshot.Groups, model.NewGroup(i))
	}
	for i := range snapshot.Groups {
		snapshot.Groups[i].Name = model.GroupLabel(i)
	}
	snapshot.GroupCount = groupCount
}

func removeMember(group *model.Group, id string) {
	group.Members = slices.DeleteFunc(group.Members, func(member model.Individual) bool {
		return member.ID == id
	})
}

func setLocked(snapshot *model.Snapshot, id string, locked bool) {
	if idx := snapshot.RosterIndex(id); idx >= 0 {
		snapshot.Roster[idx].Locked = locked
	}
	if groupIdx := snapshot.GroupIndexOf(id); groupIdx >= 0 {
		group := &snapshot.Groups[groupIdx]
		group.Members[group.IndexOf(id)].Locked = locked
	}
}
