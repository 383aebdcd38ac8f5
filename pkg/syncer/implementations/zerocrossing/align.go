package zerocrossing

import (
	"context"
	"fmt"
	"sync"

	"github.com/facebookincubator/go-belt/tool/logger"
	"github.com/hashicorp/go-multierror"
	"github.com/xaionaro-go/audiosynch/pkg/audio"
	"github.com/xaionaro-go/audiosynch/pkg/correlator"
	"github.com/xaionaro-go/audiosynch/pkg/syncstring"
	"github.com/xaionaro-go/audiosynch/pkg/waveform"
	zc "github.com/xaionaro-go/audiosynch/pkg/zerocrossing"
	"github.com/xaionaro-go/observability"
)

// AlignChunk returns the offset (in samples) of the chunk's zero-crossing
// pattern within its search window of the waveform.
func (s *Syncer) AlignChunk(
	ctx context.Context,
	chunk syncstring.ChunkRef,
	w *waveform.Waveform,
	referenceSampleRate audio.SampleRate,
) (int, error) {
	refLen := waveform.SamplesIn(referenceSampleRate, s.Config.SyncDuration)
	if refLen <= 0 {
		return 0, fmt.Errorf("the reference window is empty: %v at %d Hz", s.Config.SyncDuration, referenceSampleRate)
	}
	reference, skipped := zc.Impulses(refLen, chunk.Relative())
	if skipped > 0 {
		return 0, &syncstring.FormatError{
			Token:  -1,
			Reason: fmt.Sprintf("%d zero crossings of the chunk at %d are outside of the %d-sample window", skipped, chunk.StartOffset, refLen),
		}
	}

	segment, err := w.Window(chunk.StartOffset, w.SamplesIn(s.Config.SyncDuration))
	if err != nil {
		return 0, err
	}
	observed := zc.Extract(segment)

	correlation, err := s.Config.Correlator.CorrelateSame(ctx, observed, reference)
	if err != nil {
		return 0, fmt.Errorf("unable to correlate: %w", err)
	}
	offset := correlator.BestLag(correlation, len(reference))
	logger.Tracef(ctx, "chunk at %d: window %d/%d samples, offset %d", chunk.StartOffset, len(segment), len(reference), offset)
	return offset, nil
}

// AlignAll aligns every chunk of the descriptor; the offsets are in the
// order of the chunks.
func (s *Syncer) AlignAll(
	ctx context.Context,
	d *syncstring.SyncDescriptor,
	w *waveform.Waveform,
	referenceSampleRate audio.SampleRate,
) ([]int, error) {
	offsets := make([]int, len(d.Chunks))
	errs := make([]error, len(d.Chunks))

	if s.Config.Parallel {
		var wg sync.WaitGroup
		for idx := range d.Chunks {
			wg.Add(1)
			observability.Go(ctx, func(ctx context.Context) {
				defer wg.Done()
				offsets[idx], errs[idx] = s.AlignChunk(ctx, d.Chunks[idx], w, referenceSampleRate)
			})
		}
		wg.Wait()
	} else {
		for idx, chunk := range d.Chunks {
			offsets[idx], errs[idx] = s.AlignChunk(ctx, chunk, w, referenceSampleRate)
			if errs[idx] != nil {
				break
			}
		}
	}

	var mErr *multierror.Error
	for idx, err := range errs {
		if err != nil {
			mErr = multierror.Append(mErr, fmt.Errorf("chunk #%d: %w", idx, err))
		}
	}
	if err := mErr.ErrorOrNil(); err != nil {
		return nil, err
	}
	return offsets, nil
}
