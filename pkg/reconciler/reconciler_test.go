package reconciler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReconcile(t *testing.T) {
	for name, tc := range map[string]struct {
		offsets     []int
		outcome     Outcome
		offset      int
		maxDistance int
	}{
		"identical":             {[]int{5, 5, 5}, OutcomeReconciled, 5, 0},
		"jitter rounds down":    {[]int{5, 6, 5}, OutcomeReconciled, 5, 1},
		"jitter rounds up":      {[]int{5, 6, 6}, OutcomeReconciled, 6, 1},
		"half away from zero":   {[]int{5, 6}, OutcomeReconciled, 6, 1},
		"negative half":         {[]int{-5, -6}, OutcomeReconciled, -6, 1},
		"single":                {[]int{-42}, OutcomeReconciled, -42, 0},
		"mismatch":              {[]int{5, 5, 9}, OutcomeMismatch, 0, 4},
		"mismatch by two":       {[]int{0, 2}, OutcomeMismatch, 0, 2},
		"mismatch among jitter": {[]int{1, 0, 1, -1}, OutcomeMismatch, 0, 2},
	} {
		t.Run(name, func(t *testing.T) {
			result, err := Reconcile(tc.offsets)
			require.NoError(t, err)
			assert.Equal(t, tc.outcome, result.Outcome)
			assert.Equal(t, tc.offset, result.Offset)
			assert.Equal(t, tc.maxDistance, result.MaxDistance)
			assert.Equal(t, tc.offsets, result.Offsets)
		})
	}

	t.Run("empty", func(t *testing.T) {
		_, err := Reconcile(nil)
		assert.Error(t, err)
	})
}

func TestMaxDistance(t *testing.T) {
	assert.Equal(t, 0, MaxDistance(nil))
	assert.Equal(t, 0, MaxDistance([]int{3}))
	assert.Equal(t, 10, MaxDistance([]int{-3, 7, 0}))
}
