package allocator

import (
	"go.uber.org/zap"

	"github.com/jakechorley/seat-arranger/pkg/core/model"
)

// MaxReconcilePasses bounds the number of reconciler passes
const MaxReconcilePasses = 20

// Reconcile tries to repair Together and Apart violations left after placement using
// single moves (into a group below its limit) and capacity-neutral swaps.
//
// Locked individuals are never relocated. A change is only kept if it strictly reduces the
// total number of violated constraints, so passes repeat until one makes no change, at most
// MaxReconcilePasses times.
//
// Returns the number of moves and swaps applied.
func (s *State) Reconcile() int {
	total := 0
	for pass := 1; pass <= MaxReconcilePasses; pass++ {
		changes := s.reconcileTogether() + s.reconcileApart()
		s.logger.Debug("Reconcile pass complete", zap.Int("pass", pass), zap.Int("changes", changes))
		total += changes
		if changes == 0 {
			break
		}
	}
	return total
}

// reconcileTogether handles every Together pair split across two groups
func (s *State) reconcileTogether() int {
	changes := 0
	for _, pair := range s.constraints.Together {
		groupA, groupB := s.GroupOf(pair.AID), s.GroupOf(pair.BID)
		if groupA < 0 || groupB < 0 || groupA == groupB {
			continue
		}

		switch {
		case s.tryMove(pair.AID, groupB):
		case s.tryMove(pair.BID, groupA):
		case s.trySwapInto(pair.AID, groupB, pair.BID):
		case s.trySwapInto(pair.BID, groupA, pair.AID):
		default:
			continue
		}
		changes++
	}
	return changes
}

// reconcileApart handles every Apart pair sharing a group. The second-listed member moves
// unless locked, in which case the first-listed one does.
func (s *State) reconcileApart() int {
	changes := 0
	for _, pair := range s.constraints.Apart {
		groupIdx := s.GroupOf(pair.AID)
		if groupIdx < 0 || groupIdx != s.GroupOf(pair.BID) {
			continue
		}

		mover := pair.BID
		if s.isLocked(mover) {
			mover = pair.AID
		}
		if s.isLocked(mover) {
			continue
		}

		if s.relocateAway(mover, groupIdx) {
			changes++
		}
	}
	return changes
}

// relocateAway moves the individual to any other group with spare capacity, falling back to
// a swap with an unlocked member of another group
func (s *State) relocateAway(id string, fromGroup int) bool {
	for groupIdx := range s.groups {
		if groupIdx != fromGroup && s.tryMove(id, groupIdx) {
			return true
		}
	}
	for groupIdx := range s.groups {
		if groupIdx != fromGroup && s.trySwapInto(id, groupIdx, "") {
			return true
		}
	}
	return false
}

// tryMove moves an unlocked individual into the group if the rules allow it and the move
// reduces the number of violations
func (s *State) tryMove(id string, toGroup int) bool {
	individual, ok := s.member(id)
	if !ok || individual.Locked {
		return false
	}
	fromGroup := s.GroupOf(id)
	if fromGroup == toGroup {
		return false
	}
	if s.Size(toGroup) >= s.Limit(toGroup) || s.Size(toGroup) >= s.settings.MaxPerGroup {
		return false
	}
	if !s.CanPlace(toGroup, individual) {
		return false
	}

	before := s.violations()
	s.move(id, toGroup)
	if s.violations() >= before {
		s.move(id, fromGroup)
		return false
	}
	return true
}

// trySwapInto swaps the individual with some unlocked member of the target group.
// keepID names a member of the target group that must stay (the Together partner).
func (s *State) trySwapInto(id string, toGroup int, keepID string) bool {
	individual, ok := s.member(id)
	if !ok || individual.Locked {
		return false
	}
	fromGroup := s.GroupOf(id)
	if fromGroup == toGroup {
		return false
	}

	candidates := make([]model.Individual, len(s.groups[toGroup].Members))
	copy(candidates, s.groups[toGroup].Members)

	for _, other := range candidates {
		if other.Locked || other.ID == keepID {
			continue
		}
		if s.Check(toGroup, individual, other.ID) != ReasonNone {
			continue
		}
		if s.Check(fromGroup, other, id) != ReasonNone {
			continue
		}

		before := s.violations()
		s.swap(id, other.ID)
		if s.violations() < before {
			return true
		}
		s.swap(id, other.ID)
	}
	return false
}

func (s *State) isLocked(id string) bool {
	individual, ok := s.member(id)
	return ok && individual.Locked
}
