package allocator

import (
	"math"
	"sort"
)

// PlanGenderQuota computes how many male members each group should end up with under the
// Balanced policy. The female quota of a group is targets[i] minus its male quota.
//
// Each group's ideal share is targets[i] scaled by the population's male ratio, clamped to
// [lockedMale[i], targets[i]-lockedFemale[i]], then rounded with largest-remainder
// apportionment so the quotas sum to exactly min(total males, sum(targets)), within what the
// clamps allow.
func PlanGenderQuota(targets, lockedMale, lockedFemale []int, poolMale, poolFemale int) []int {
	totalMale, totalFemale, targetSum := poolMale, poolFemale, 0
	for i := range targets {
		totalMale += lockedMale[i]
		totalFemale += lockedFemale[i]
		targetSum += targets[i]
	}

	ratio := 0.0
	if totalMale+totalFemale > 0 {
		ratio = float64(totalMale) / float64(totalMale+totalFemale)
	}

	lower := make([]int, len(targets))
	upper := make([]int, len(targets))
	ideals := make([]float64, len(targets))
	for i, target := range targets {
		lower[i] = min(target, lockedMale[i])
		upper[i] = max(lower[i], target-lockedFemale[i])
		ideals[i] = math.Max(float64(lower[i]), math.Min(float64(upper[i]), float64(target)*ratio))
	}

	return Apportion(lower, ideals, upper, min(totalMale, targetSum))
}

// Apportion rounds real-valued ideals to integers within [lower[i], upper[i]] using the
// largest-remainder (Hamilton) method.
//
// Floors are taken first; the shortfall is then handed out one unit at a time to the groups
// with the largest fractional remainder, skipping groups at their upper bound. If clamping
// pushed the floors above total, units are withdrawn from the smallest remainders first.
// The result sums to total clamped to [sum(lower), sum(upper)].
func Apportion(lower []int, ideals []float64, upper []int, total int) []int {
	out := make([]int, len(ideals))
	sum, lowerSum, upperSum := 0, 0, 0
	for i, ideal := range ideals {
		out[i] = min(upper[i], max(lower[i], int(math.Floor(ideal))))
		sum += out[i]
		lowerSum += lower[i]
		upperSum += upper[i]
	}
	total = min(upperSum, max(lowerSum, total))

	// Order by fractional remainder, largest first; ties keep group order
	order := make([]int, len(ideals))
	for i := range order {
		order[i] = i
	}
	fraction := func(i int) float64 {
		return math.Max(0, math.Min(1, ideals[i]-math.Floor(ideals[i])))
	}
	sort.SliceStable(order, func(a, b int) bool {
		return fraction(order[a]) > fraction(order[b])
	})

	for sum < total {
		progressed := false
		for _, i := range order {
			if sum == total {
				break
			}
			if out[i] < upper[i] {
				out[i]++
				sum++
				progressed = true
			}
		}
		if !progressed {
			break
		}
	}

	for sum > total {
		progressed := false
		for k := len(order) - 1; k >= 0; k-- {
			i := order[k]
			if sum == total {
				break
			}
			if out[i] > lower[i] {
				out[i]--
				sum--
				progressed = true
			}
		}
		if !progressed {
			break
		}
	}

	return out
}
