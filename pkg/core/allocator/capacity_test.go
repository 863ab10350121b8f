package allocator

import (
	"errors"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jakechorley/seat-arranger/pkg/core/model"
)

func TestPlanCapacity(t *testing.T) {
	tests := []struct {
		name     string
		locked   []int
		min, max int
		total    int
		expected []int
	}{
		{
			name:     "deals remainder round robin",
			locked:   []int{0, 0, 0, 0},
			min:      3,
			max:      4,
			total:    14,
			expected: []int{4, 4, 3, 3},
		},
		{
			name:     "exact floor",
			locked:   []int{0, 0, 0, 0},
			min:      3,
			max:      4,
			total:    12,
			expected: []int{3, 3, 3, 3},
		},
		{
			name:     "more than capacity caps at max",
			locked:   []int{0, 0},
			min:      2,
			max:      4,
			total:    11,
			expected: []int{4, 4},
		},
		{
			name:     "locked count above min raises floor",
			locked:   []int{4, 0, 0},
			min:      2,
			max:      4,
			total:    9,
			expected: []int{4, 3, 2},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			targets, err := PlanCapacity(tt.locked, tt.min, tt.max, tt.total)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, targets)
		})
	}
}

func TestPlanCapacity_InsufficientPopulation(t *testing.T) {
	_, err := PlanCapacity([]int{0, 0, 0, 0}, 3, 4, 5)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInsufficientPopulation))

	var insufficient *InsufficientPopulationError
	require.True(t, errors.As(err, &insufficient))
	assert.Equal(t, 12, insufficient.Required)
	assert.Equal(t, 5, insufficient.Available)
}

func TestPlanCapacity_InvalidConfiguration(t *testing.T) {
	tests := []struct {
		name     string
		locked   []int
		min, max int
		total    int
	}{
		{name: "min above max", locked: []int{0, 0}, min: 5, max: 4, total: 10},
		{name: "locked above max", locked: []int{5, 0}, min: 2, max: 4, total: 10},
		{name: "negative total", locked: []int{0, 0}, min: 2, max: 4, total: -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := PlanCapacity(tt.locked, tt.min, tt.max, tt.total)
			assert.ErrorIs(t, err, model.ErrInvalidConfiguration)
		})
	}
}

func TestPlanCapacity_Properties(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 11))

	for i := 0; i < 500; i++ {
		groups := 2 + rng.IntN(7)
		minPerGroup := 2 + rng.IntN(7)
		maxPerGroup := minPerGroup + rng.IntN(9-minPerGroup)
		locked := make([]int, groups)
		floorSum := 0
		for g := range locked {
			locked[g] = rng.IntN(maxPerGroup + 1)
			floorSum += max(minPerGroup, locked[g])
		}
		total := rng.IntN(groups*maxPerGroup + 10)

		targets, err := PlanCapacity(locked, minPerGroup, maxPerGroup, total)
		if floorSum > total {
			assert.ErrorIs(t, err, ErrInsufficientPopulation)
			continue
		}
		require.NoError(t, err)

		sum := 0
		for g, target := range targets {
			assert.GreaterOrEqual(t, target, max(minPerGroup, locked[g]))
			assert.LessOrEqual(t, target, maxPerGroup)
			sum += target
		}
		assert.Equal(t, min(total, groups*maxPerGroup), sum)
	}
}
