// Package direct implements the correlation in the time domain.
//
// Zero-crossing trains are sparse, so only pairs of non-zero elements are
// multiplied; the result is the same as the dense O(N*M) sum.
package direct

import (
	"context"

	"github.com/xaionaro-go/audiosynch/pkg/correlator"
)

// Correlator is the sparse time-domain correlator.Correlator; it holds no state.
type Correlator struct{}

var _ correlator.Correlator = (*Correlator)(nil)

// New returns a new Correlator.
func New() *Correlator {
	return &Correlator{}
}

type impulse struct {
	pos    int
	weight int64
}

func nonZero(values []int32) []impulse {
	var result []impulse
	for idx, v := range values {
		if v != 0 {
			result = append(result, impulse{pos: idx, weight: int64(v)})
		}
	}
	return result
}

func (*Correlator) CorrelateSame(
	ctx context.Context,
	observed []int32,
	reference []int32,
) ([]int64, error) {
	if len(observed) == 0 || len(reference) == 0 {
		return nil, correlator.ErrEmptyInput
	}

	start, length := correlator.SameRange(len(observed), len(reference))
	result := make([]int64, length)
	refImpulses := nonZero(reference)
	for _, obs := range nonZero(observed) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		for _, ref := range refImpulses {
			// observed[i] meets reversed(reference)[k-i] == reference[len-1-k+i]
			k := obs.pos + len(reference) - 1 - ref.pos
			j := k - start
			if j < 0 || j >= length {
				continue
			}
			result[j] += obs.weight * ref.weight
		}
	}
	return result, nil
}
