// Package reconciler merges per-chunk offset estimates into a single one.
package reconciler

import (
	"fmt"
	"math"
)

// Tolerance is the maximal disagreement (in samples) between chunks which
// is still treated as measurement jitter.
const Tolerance = 1

type Outcome int

const (
	OutcomeUndefined = Outcome(iota)
	OutcomeReconciled
	OutcomeMismatch
)

func (o Outcome) String() string {
	switch o {
	case OutcomeUndefined:
		return "undefined"
	case OutcomeReconciled:
		return "reconciled"
	case OutcomeMismatch:
		return "mismatch"
	default:
		return fmt.Sprintf("unknown_outcome_%d", int(o))
	}
}

type Result struct {
	Outcome Outcome

	// Offset is meaningful only if Outcome is OutcomeReconciled.
	Offset int

	// MaxDistance is the largest pairwise difference between the offsets.
	MaxDistance int

	// Offsets are the per-chunk offsets as they were passed in.
	Offsets []int
}

// MaxDistance returns the largest absolute difference over all unordered
// pairs of offsets; zero if there are less than two offsets.
func MaxDistance(offsets []int) int {
	maxDist := 0
	for i := range offsets {
		for j := i + 1; j < len(offsets); j++ {
			dist := offsets[i] - offsets[j]
			if dist < 0 {
				dist = -dist
			}
			if dist > maxDist {
				maxDist = dist
			}
		}
	}
	return maxDist
}

// Reconcile returns:
//   - the common value if all offsets are equal;
//   - the mean rounded half away from zero if they differ by at most Tolerance;
//   - OutcomeMismatch otherwise.
func Reconcile(offsets []int) (Result, error) {
	if len(offsets) == 0 {
		return Result{}, fmt.Errorf("no offsets to reconcile")
	}

	result := Result{
		MaxDistance: MaxDistance(offsets),
		Offsets:     offsets,
	}
	switch {
	case result.MaxDistance == 0:
		result.Outcome = OutcomeReconciled
		result.Offset = offsets[0]
	case result.MaxDistance <= Tolerance:
		sum := 0
		for _, offset := range offsets {
			sum += offset
		}
		result.Outcome = OutcomeReconciled
		result.Offset = int(math.Round(float64(sum) / float64(len(offsets))))
	default:
		result.Outcome = OutcomeMismatch
	}
	return result, nil
}
