// Package fft implements the correlation through the frequency domain.
//
// The inputs are integer, so the inverse transform is rounded back to
// integers, which gives bit-exact results for impulse trains.
package fft

import (
	"context"
	"math"

	"github.com/mjibson/go-dsp/fft"
	"github.com/xaionaro-go/audiosynch/pkg/correlator"
)

// Correlator is the FFT-based correlator.Correlator; it holds no state.
type Correlator struct{}

var _ correlator.Correlator = (*Correlator)(nil)

// New returns a new Correlator.
func New() *Correlator {
	return &Correlator{}
}

func (*Correlator) CorrelateSame(
	ctx context.Context,
	observed []int32,
	reference []int32,
) ([]int64, error) {
	if len(observed) == 0 || len(reference) == 0 {
		return nil, correlator.ErrEmptyInput
	}

	// The FFT size is the next power of two of (n1 + n2 - 1)
	// to avoid circular convolution artifacts.
	n1 := len(observed)
	n2 := len(reference)
	n := 1
	for n < n1+n2-1 {
		n <<= 1
	}

	fobs := make([]complex128, n)
	fref := make([]complex128, n)
	for i, v := range observed {
		fobs[i] = complex(float64(v), 0)
	}
	for i, v := range reference {
		fref[n2-1-i] = complex(float64(v), 0)
	}

	ffobs := fft.FFT(fobs)
	ffref := fft.FFT(fref)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	for i := range ffobs {
		ffobs[i] *= ffref[i]
	}
	full := fft.IFFT(ffobs)

	start, length := correlator.SameRange(n1, n2)
	result := make([]int64, length)
	for j := range result {
		result[j] = int64(math.Round(real(full[start+j])))
	}
	return result, nil
}
