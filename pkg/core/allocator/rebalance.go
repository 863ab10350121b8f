package allocator

import (
	"slices"

	"go.uber.org/zap"
)

// MaxRebalanceIterations bounds the minimum-occupancy rebalancer's outer loop
const MaxRebalanceIterations = 200

// Rebalance raises groups below MinPerGroup. Each deficient group first takes an unplaced
// individual it accepts, then an unlocked member of a group above the minimum. Donors must
// pass the gender policy and Apart rules of the receiving group.
//
// Returns the number of individuals moved. Groups that cannot be helped stay below the
// minimum and are reported by validation.
func (s *State) Rebalance() int {
	moves := 0
	changed := true
	for iteration := 0; changed && iteration < MaxRebalanceIterations; iteration++ {
		changed = false
		for groupIdx := range s.groups {
			if s.Size(groupIdx) >= s.settings.MinPerGroup {
				continue
			}
			if s.fillFromUnplaced(groupIdx) || s.fillFromDonor(groupIdx) {
				moves++
				changed = true
			}
		}
	}

	if moves > 0 {
		s.logger.Debug("Rebalanced groups below minimum", zap.Int("moves", moves))
	}
	return moves
}

func (s *State) fillFromUnplaced(groupIdx int) bool {
	for i, candidate := range s.unplaced {
		if s.CanPlace(groupIdx, candidate) {
			s.place(groupIdx, candidate)
			s.unplaced = slices.Delete(s.unplaced, i, i+1)
			return true
		}
	}
	return false
}

func (s *State) fillFromDonor(groupIdx int) bool {
	for donorIdx := range s.groups {
		if donorIdx == groupIdx || s.Size(donorIdx) <= s.settings.MinPerGroup {
			continue
		}
		for _, member := range s.groups[donorIdx].Members {
			if member.Locked || !s.CanPlace(groupIdx, member) {
				continue
			}
			s.move(member.ID, groupIdx)
			return true
		}
	}
	return false
}

// FillOpenSeats offers every unplaced individual to the groups once more, so seats opened by the
// reconciler or the rebalancer are not left empty. Groups with a gap are tried first, then a
// group may stretch one past its target up to MaxPerGroup. Returns the number placed.
func (s *State) FillOpenSeats() int {
	if len(s.unplaced) == 0 {
		return 0
	}

	before := len(s.unplaced)
	s.unplaced = s.fillLargestGap(s.unplaced, nil)
	placed := before - len(s.unplaced)

	if placed > 0 {
		s.logger.Debug("Placed individuals into open seats", zap.Int("placed", placed))
	}
	return placed
}
