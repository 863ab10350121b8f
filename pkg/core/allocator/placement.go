package allocator

import (
	"slices"
	"sort"

	"go.uber.org/zap"

	"github.com/jakechorley/seat-arranger/pkg/core/model"
)

// placementAttemptFactor bounds round-robin placement to population * groups * factor steps
const placementAttemptFactor = 4

// placePools distributes the pools into the groups according to the gender policy.
// Returns every individual that could not be placed; nobody is ever dropped.
func (s *State) placePools(pools *categoryPools) []model.Individual {
	switch s.settings.Policy {
	case model.PolicySeparateByGender:
		return s.placeSeparate(pools)
	case model.PolicyBalanced:
		return s.placeBalanced(pools)
	default:
		return s.placeRandom(pools)
	}
}

// placeBalanced fills each group's male quota, then its female quota, then hands the
// remainder (including unspecified individuals) to the groups with the largest gap
func (s *State) placeBalanced(pools *categoryPools) []model.Individual {
	lockedMale := make([]int, len(s.groups))
	lockedFemale := make([]int, len(s.groups))
	for i := range s.groups {
		lockedMale[i] = s.CategoryCount(i, model.CategoryMale)
		lockedFemale[i] = s.CategoryCount(i, model.CategoryFemale)
	}

	maleGoal := PlanGenderQuota(s.limits, lockedMale, lockedFemale, len(pools.male), len(pools.female))
	femaleGoal := make([]int, len(s.groups))
	for i := range femaleGoal {
		femaleGoal[i] = max(0, s.limits[i]-maleGoal[i])
	}

	s.logger.Debug("Planned gender quotas",
		zap.Ints("male_goal", maleGoal),
		zap.Ints("female_goal", femaleGoal))

	allowed := s.allGroups()
	males := s.fillToGoals(pools.male, allowed, func(groupIdx int) int {
		return maleGoal[groupIdx] - s.CategoryCount(groupIdx, model.CategoryMale)
	})
	females := s.fillToGoals(pools.female, allowed, func(groupIdx int) int {
		return femaleGoal[groupIdx] - s.CategoryCount(groupIdx, model.CategoryFemale)
	})

	left := make([]model.Individual, 0, len(males)+len(females)+len(pools.unspecified))
	left = append(left, males...)
	left = append(left, females...)
	left = append(left, pools.unspecified...)

	return s.fillLargestGap(left, allowed)
}

// placeRandom ignores categories and fills the groups from a single shuffled queue
func (s *State) placeRandom(pools *categoryPools) []model.Individual {
	all := pools.all()
	shuffleIndividuals(all, s.shuffler)
	return s.fillLargestGap(all, s.allGroups())
}

// placeSeparate keeps categories in separate groups.
//
// Groups are classified by their locked members: male-only, female-only, mixed (frozen, as
// the policy cannot be honoured there) or empty. Empty groups go to whichever category still
// needs more seats, largest group first. Unspecified individuals are never placed.
func (s *State) placeSeparate(pools *categoryPools) []model.Individual {
	n := len(s.groups)
	maleOnly := make([]bool, n)
	femaleOnly := make([]bool, n)
	open := make([]bool, n)
	var empty []int

	for i := range s.groups {
		males := s.CategoryCount(i, model.CategoryMale)
		females := s.CategoryCount(i, model.CategoryFemale)
		switch {
		case males > 0 && females > 0:
			s.limits[i] = s.Size(i)
			s.logger.Warn("Group mixes locked categories, freezing it",
				zap.String("group", s.groups[i].Name))
			continue
		case males > 0:
			maleOnly[i] = true
		case females > 0:
			femaleOnly[i] = true
		default:
			empty = append(empty, i)
		}
		open[i] = true
	}

	maleRemain, femaleRemain := len(pools.male), len(pools.female)
	for i := range s.groups {
		if maleOnly[i] {
			maleRemain -= s.Gap(i)
		}
		if femaleOnly[i] {
			femaleRemain -= s.Gap(i)
		}
	}

	// Largest remaining capacity first
	sort.SliceStable(empty, func(a, b int) bool {
		return s.Gap(empty[a]) > s.Gap(empty[b])
	})
	for _, i := range empty {
		if maleRemain > femaleRemain {
			maleOnly[i] = true
			maleRemain -= s.Gap(i)
		} else {
			femaleOnly[i] = true
			femaleRemain -= s.Gap(i)
		}
	}

	s.logger.Debug("Assigned groups to categories",
		zap.Any("male_only", maleOnly),
		zap.Any("female_only", femaleOnly))

	males := s.fillToGoals(pools.male, maleOnly, s.Gap)
	females := s.fillToGoals(pools.female, femaleOnly, s.Gap)

	// Anyone left over may still fit a compatible group outside their assigned set
	left := append(slices.Clone(males), females...)
	left = s.fillLargestGap(left, open)

	return append(left, pools.unspecified...)
}

// fillToGoals places the queue into the allowed groups until each group's need drops to zero.
// A first pass seats individuals next to a Together partner; the second pass is plain
// round-robin over the groups in random order. Returns the individuals left in the queue.
func (s *State) fillToGoals(queue []model.Individual, allowed []bool, need func(groupIdx int) int) []model.Individual {
	queue = slices.Clone(queue)
	order := s.filterGroups(s.shuffledGroupOrder(), allowed)

	// Together partners first
	for _, groupIdx := range order {
		for need(groupIdx) > 0 && len(queue) > 0 {
			idx := slices.IndexFunc(queue, func(candidate model.Individual) bool {
				return s.hasPartnerIn(candidate.ID, groupIdx) && s.CanPlace(groupIdx, candidate)
			})
			if idx < 0 {
				break
			}
			s.place(groupIdx, queue[idx])
			queue = slices.Delete(queue, idx, idx+1)
		}
	}

	// Plain round-robin
	attemptCap := s.attemptCap(len(queue))
	for attempts := 0; len(queue) > 0 && attempts < attemptCap; attempts++ {
		progressed := false
		for _, groupIdx := range order {
			if need(groupIdx) <= 0 || len(queue) == 0 {
				continue
			}
			idx := slices.IndexFunc(queue, func(candidate model.Individual) bool {
				return s.CanPlace(groupIdx, candidate)
			})
			if idx < 0 {
				continue
			}
			s.place(groupIdx, queue[idx])
			queue = slices.Delete(queue, idx, idx+1)
			progressed = true
		}
		if !progressed {
			break
		}
	}

	return queue
}

// fillLargestGap places each individual at the head of the queue into the allowed group with
// the largest remaining gap, after first trying a group holding a Together partner. An
// individual no group accepts is deferred to the end of the queue. Returns the individuals
// that could not be placed.
func (s *State) fillLargestGap(queue []model.Individual, allowed []bool) []model.Individual {
	queue = slices.Clone(queue)
	attemptCap := s.attemptCap(len(queue))
	attempts := 0

	for len(queue) > 0 && attempts < attemptCap {
		progressed := false
		roundCount := len(queue)
		for r := 0; r < roundCount && attempts < attemptCap; r++ {
			attempts++
			candidate := queue[0]
			queue = queue[1:]

			groupIdx := s.togetherTarget(candidate, allowed)
			if groupIdx < 0 {
				groupIdx = s.largestGapGroup(candidate, allowed)
			}
			if groupIdx < 0 {
				queue = append(queue, candidate)
				continue
			}
			s.place(groupIdx, candidate)
			progressed = true
		}
		if !progressed {
			break
		}
	}

	return s.stretchTargets(queue, allowed)
}

// stretchTargets is the last resort for individuals blocked everywhere at the planned targets:
// a group may grow one past its target, up to MaxPerGroup, if every other rule accepts them
func (s *State) stretchTargets(queue []model.Individual, allowed []bool) []model.Individual {
	var left []model.Individual
	for _, candidate := range queue {
		order := s.filterGroups(s.shuffledGroupOrder(), allowed)
		sort.SliceStable(order, func(a, b int) bool {
			return s.Size(order[a]) < s.Size(order[b])
		})

		placed := false
		for _, groupIdx := range order {
			if s.Size(groupIdx) >= s.settings.MaxPerGroup || s.Gap(groupIdx) > 0 {
				continue
			}
			s.limits[groupIdx]++
			if s.CanPlace(groupIdx, candidate) {
				s.place(groupIdx, candidate)
				placed = true
				break
			}
			s.limits[groupIdx]--
		}
		if !placed {
			left = append(left, candidate)
		}
	}

	if len(left) < len(queue) {
		s.logger.Debug("Stretched targets for blocked individuals", zap.Int("placed", len(queue)-len(left)))
	}
	return left
}

// togetherTarget searches the allowed groups in random order for one that already holds a
// Together partner of the candidate and accepts the candidate. Returns -1 if none does.
func (s *State) togetherTarget(candidate model.Individual, allowed []bool) int {
	if len(s.partners[candidate.ID]) == 0 {
		return -1
	}
	for _, groupIdx := range s.filterGroups(s.shuffledGroupOrder(), allowed) {
		if s.hasPartnerIn(candidate.ID, groupIdx) && s.CanPlace(groupIdx, candidate) {
			return groupIdx
		}
	}
	return -1
}

// largestGapGroup returns the allowed group with the most free seats that accepts the
// candidate, breaking ties randomly. Returns -1 if none does.
func (s *State) largestGapGroup(candidate model.Individual, allowed []bool) int {
	order := s.filterGroups(s.shuffledGroupOrder(), allowed)
	sort.SliceStable(order, func(a, b int) bool {
		return s.Gap(order[a]) > s.Gap(order[b])
	})
	for _, groupIdx := range order {
		if s.CanPlace(groupIdx, candidate) {
			return groupIdx
		}
	}
	return -1
}

// hasPartnerIn returns true if the group holds a Together partner of the individual
func (s *State) hasPartnerIn(id string, groupIdx int) bool {
	for _, partner := range s.partners[id] {
		if s.GroupOf(partner) == groupIdx {
			return true
		}
	}
	return false
}

func (s *State) attemptCap(queueLen int) int {
	return max(1, queueLen) * max(1, len(s.groups)) * placementAttemptFactor
}

func (s *State) allGroups() []bool {
	allowed := make([]bool, len(s.groups))
	for i := range allowed {
		allowed[i] = true
	}
	return allowed
}

func (s *State) filterGroups(order []int, allowed []bool) []int {
	filtered := order[:0]
	for _, groupIdx := range order {
		if allowed == nil || allowed[groupIdx] {
			filtered = append(filtered, groupIdx)
		}
	}
	return filtered
}
