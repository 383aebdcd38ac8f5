// Package syncstring implements the compact textual encoding of reference
// zero-crossing positions:
//
//	Fs Nch <N base d_1 ... d_{N-1}>_1 ... <N base d_1 ... d_{N-1}>_Nch
//
// where Fs is the sample rate the reference was encoded at, Nch is the
// number of chunks, N is the amount of zero crossings of a chunk
// (including the base), base is the absolute position of the first zero
// crossing and d_k is the distance (in samples) to the next zero crossing.
package syncstring

import (
	"fmt"

	"github.com/hashicorp/go-multierror"
)

// SyncDescriptor is a decoded sync-string.
type SyncDescriptor struct {
	// SampleRate is the rate the reference was encoded at.
	SampleRate int

	// Chunks are ordered by their position in the sync-string; each
	// chunk corresponds to a search window in the waveform.
	Chunks []ChunkRef
}

// ChunkRef is the expected zero-crossing pattern of a single search window.
type ChunkRef struct {
	// StartOffset is the sample index in the waveform where the search
	// window of this chunk begins; it equals the first zero crossing.
	StartOffset int

	// ZeroCrossings are absolute sample positions in arrival order,
	// ZeroCrossings[0] == StartOffset.
	ZeroCrossings []int
}

// Relative returns the zero-crossing positions relative to the
// beginning of the search window.
func (c ChunkRef) Relative() []int {
	result := make([]int, len(c.ZeroCrossings))
	for idx, pos := range c.ZeroCrossings {
		result[idx] = pos - c.StartOffset
	}
	return result
}

// Validate reports every structural problem of the descriptor at once.
//
// windowLength is the length of the reference impulse train (in samples);
// non-positive value disables the position range check.
func (d *SyncDescriptor) Validate(windowLength int) error {
	var mErr *multierror.Error
	if d.SampleRate <= 0 {
		mErr = multierror.Append(mErr, &FormatError{Token: 0, Reason: fmt.Sprintf("sample rate must be positive, got %d", d.SampleRate)})
	}
	if len(d.Chunks) == 0 {
		mErr = multierror.Append(mErr, &FormatError{Token: 1, Reason: "no chunks"})
	}
	for chunkIdx, chunk := range d.Chunks {
		if len(chunk.ZeroCrossings) == 0 {
			mErr = multierror.Append(mErr, fmt.Errorf("chunk #%d: %w", chunkIdx, &FormatError{Token: -1, Reason: "no zero crossings"}))
			continue
		}
		if chunk.StartOffset < 0 {
			mErr = multierror.Append(mErr, fmt.Errorf("chunk #%d: %w", chunkIdx, &FormatError{Token: -1, Reason: fmt.Sprintf("negative start offset %d", chunk.StartOffset)}))
		}
		prev := chunk.StartOffset
		for posIdx, pos := range chunk.ZeroCrossings {
			if pos < prev {
				mErr = multierror.Append(mErr, fmt.Errorf("chunk #%d: %w", chunkIdx, &FormatError{Token: -1, Reason: fmt.Sprintf("position #%d (%d) is before the previous one (%d)", posIdx, pos, prev)}))
			}
			if windowLength > 0 && pos-chunk.StartOffset >= windowLength {
				mErr = multierror.Append(mErr, fmt.Errorf("chunk #%d: %w", chunkIdx, &FormatError{Token: -1, Reason: fmt.Sprintf("position #%d (%d) is outside of the %d-sample window", posIdx, pos, windowLength)}))
			}
			prev = pos
		}
	}
	return mErr.ErrorOrNil()
}
