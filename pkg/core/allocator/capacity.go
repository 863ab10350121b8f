package allocator

import (
	"fmt"

	"github.com/jakechorley/seat-arranger/pkg/core/model"
)

// PlanCapacity computes the target size of every group.
//
// Each group starts at its floor max(minPerGroup, lockedCounts[i]). The remaining population
// is then dealt one seat at a time, round-robin, to groups still below maxPerGroup.
//
// Guarantees (when no error is returned):
//   - targets[i] is within [max(minPerGroup, lockedCounts[i]), maxPerGroup]
//   - sum(targets) == min(total, len(lockedCounts) * maxPerGroup)
//
// Returns an *InsufficientPopulationError if total cannot cover the floors, and an error
// wrapping model.ErrInvalidConfiguration for inconsistent bounds.
func PlanCapacity(lockedCounts []int, minPerGroup, maxPerGroup, total int) ([]int, error) {
	if minPerGroup > maxPerGroup {
		return nil, fmt.Errorf("%w: minPerGroup %d exceeds maxPerGroup %d", model.ErrInvalidConfiguration, minPerGroup, maxPerGroup)
	}
	if total < 0 {
		return nil, fmt.Errorf("%w: negative population %d", model.ErrInvalidConfiguration, total)
	}

	targets := make([]int, len(lockedCounts))
	floorSum := 0
	for i, locked := range lockedCounts {
		if locked > maxPerGroup {
			return nil, fmt.Errorf("%w: group %d has %d locked members but maxPerGroup is %d", model.ErrInvalidConfiguration, i+1, locked, maxPerGroup)
		}
		targets[i] = max(minPerGroup, locked)
		floorSum += targets[i]
	}

	if floorSum > total {
		return nil, &InsufficientPopulationError{Required: floorSum, Available: total}
	}

	// Deal the remaining seats round-robin so the sum matches exactly
	remaining := total - floorSum
	for remaining > 0 {
		progressed := false
		for i := range targets {
			if remaining == 0 {
				break
			}
			if targets[i] < maxPerGroup {
				targets[i]++
				remaining--
				progressed = true
			}
		}
		// Every group is at maxPerGroup
		if !progressed {
			break
		}
	}

	return targets, nil
}
