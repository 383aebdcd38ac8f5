package correlator

import (
	"context"
	"errors"
)

// ErrEmptyInput is returned when either of the trains is empty.
var ErrEmptyInput = errors.New("correlator: empty input")

// Correlator cross-correlates an observed impulse train with a reference one.
type Correlator interface {
	// CorrelateSame returns the linear convolution of observed with the
	// time-reversed reference, restricted to the central part of length
	// max(len(observed), len(reference)).
	CorrelateSame(
		ctx context.Context,
		observed []int32,
		reference []int32,
	) ([]int64, error)
}

// SameRange returns the index in the full convolution (of length
// observedLen+referenceLen-1) where the "same" part starts, and the length
// of the "same" part.
func SameRange(observedLen, referenceLen int) (int, int) {
	short, long := observedLen, referenceLen
	if short > long {
		short, long = long, short
	}
	return (short - 1) / 2, long
}

// ArgMax returns the index of the first maximal element.
func ArgMax(values []int64) int {
	maxIdx := 0
	for idx, v := range values {
		if v > values[maxIdx] {
			maxIdx = idx
		}
	}
	return maxIdx
}

// BestLag converts the peak of a "same"-mode correlation into a signed
// sample offset; zero means the patterns are aligned at the window start.
//
// For equally long trains the result is the position of an impulse in the
// observed train minus the position of the matching impulse in the
// reference train.
func BestLag(correlation []int64, referenceLen int) int {
	return ArgMax(correlation) - referenceLen/2
}
