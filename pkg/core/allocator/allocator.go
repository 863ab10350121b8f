package allocator

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/jakechorley/seat-arranger/pkg/core/model"
)

// Arrange runs the arrangement pipeline over a snapshot and returns a new snapshot with rebuilt
// group membership. The input is never modified.
//
// Locked individuals keep their group. Everyone else (unlocked group members and unplaced roster
// entries) forms the pool that is planned, placed, reconciled against the pairwise constraints
// and rebalanced towards the minimum group size. Anyone still unplaced is finally offered every
// seat left open.
//
// Errors:
//   - model.ErrInvalidConfiguration if the settings or snapshot structure are invalid
//   - ErrInsufficientPopulation (as *InsufficientPopulationError) if the population cannot
//     bring every group up to its floor
//
// Soft shortfalls never fail the run; they are reported as Outcome.Warnings.
func Arrange(snapshot *model.Snapshot, opts Options) (*Outcome, error) {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	rules := opts.Rules
	if rules == nil {
		rules = DefaultRules()
	}
	shuffler := opts.Shuffler
	if shuffler == nil {
		shuffler = NewRandomShuffler()
	}

	if err := snapshot.Validate(); err != nil {
		return nil, err
	}
	settings := snapshot.Settings()

	lockedGroups, pool := splitLocked(snapshot)
	lockedCounts := make([]int, len(lockedGroups))
	lockedTotal := 0
	for i, group := range lockedGroups {
		lockedCounts[i] = len(group.Members)
		lockedTotal += len(group.Members)
	}
	total := lockedTotal + len(pool)

	targets, err := PlanCapacity(lockedCounts, settings.MinPerGroup, settings.MaxPerGroup, total)
	if err != nil {
		return nil, fmt.Errorf("failed to plan group sizes: %w", err)
	}

	logger.Debug("Planned group sizes",
		zap.Ints("locked", lockedCounts),
		zap.Ints("targets", targets),
		zap.Int("population", total),
		zap.String("policy", string(settings.Policy)))

	state := newState(settings, lockedGroups, targets, snapshot.Constraints(), rules, shuffler, logger)
	state.trackNames(snapshot.Roster)

	pools := newCategoryPools(pool, shuffler)
	state.unplaced = state.placePools(pools)
	logger.Debug("Placed pool",
		zap.Int("pool", pools.size()),
		zap.Int("unplaced", len(state.unplaced)))

	reconcileChanges := state.Reconcile()
	rebalanceMoves := state.Rebalance()
	rebalanceMoves += state.FillOpenSeats()

	outcome := &Outcome{
		Snapshot:         state.finalize(snapshot),
		Targets:          targets,
		Unplaced:         state.unplaced,
		Warnings:         state.warnings(),
		ReconcileChanges: reconcileChanges,
		RebalanceMoves:   rebalanceMoves,
	}
	outcome.Success = len(outcome.Warnings) == 0

	logger.Info("Arrangement complete",
		zap.Int("placed", total-len(outcome.Unplaced)),
		zap.Int("unplaced", len(outcome.Unplaced)),
		zap.Int("reconcile_changes", reconcileChanges),
		zap.Int("rebalance_moves", rebalanceMoves),
		zap.Int("warnings", len(outcome.Warnings)))

	return outcome, nil
}

// splitLocked returns the groups reduced to their locked members, plus every other individual
// on the roster as an unlocked pool
func splitLocked(snapshot *model.Snapshot) ([]model.Group, []model.Individual) {
	groups := make([]model.Group, len(snapshot.Groups))
	placed := make(map[string]bool)
	var pool []model.Individual

	for i, group := range snapshot.Groups {
		groups[i] = model.Group{ID: group.ID, Name: group.Name, Members: []model.Individual{}}
		for _, member := range group.Members {
			placed[member.ID] = true
			if member.Locked {
				groups[i].Members = append(groups[i].Members, member)
				continue
			}
			pool = append(pool, member)
		}
	}

	for _, individual := range snapshot.Roster {
		if placed[individual.ID] {
			continue
		}
		individual.Locked = false
		pool = append(pool, individual)
	}

	return groups, pool
}

// finalize builds the output snapshot: same roster, settings and constraints, the state's group
// membership under sequential labels, and roster lock flags synced with the placed copies
func (s *State) finalize(input *model.Snapshot) *model.Snapshot {
	out := input.Clone()
	for i := range out.Groups {
		out.Groups[i] = model.Group{
			ID:      s.groups[i].ID,
			Name:    model.GroupLabel(i),
			Members: append([]model.Individual{}, s.groups[i].Members...),
		}
	}
	for i, individual := range out.Roster {
		placedCopy, ok := s.member(individual.ID)
		out.Roster[i].Locked = ok && placedCopy.Locked
	}
	return out
}

// warnings collects every rule's findings plus one warning per unplaced individual
func (s *State) warnings() []Warning {
	var warnings []Warning
	for _, rule := range s.rules {
		warnings = append(warnings, rule.Validate(s)...)
	}
	for _, individual := range s.unplaced {
		warnings = append(warnings, Warning{
			Kind:          WarningUnplaced,
			RuleName:      "Unplaced",
			GroupIndex:    -1,
			IndividualIDs: []string{individual.ID},
			Description:   fmt.Sprintf("%s could not be placed in any group", s.nameOf(individual.ID)),
		})
	}
	return warnings
}
