package zerocrossing

import (
	"context"
	"fmt"

	"github.com/facebookincubator/go-belt/tool/logger"
	"github.com/xaionaro-go/audiosynch/pkg/syncstring"
	"github.com/xaionaro-go/audiosynch/pkg/waveform"
	zc "github.com/xaionaro-go/audiosynch/pkg/zerocrossing"
)

// EvenlySpacedStarts places count windows of windowLen samples evenly
// across a waveform of totalLen samples.
func EvenlySpacedStarts(totalLen, windowLen, count int) []int {
	if count <= 0 {
		return nil
	}
	space := totalLen - windowLen
	if space < 0 {
		space = 0
	}
	starts := make([]int, count)
	for idx := range starts {
		starts[idx] = space * (idx + 1) / (count + 1)
	}
	return starts
}

// Generate builds the descriptor aligning w against itself with zero
// offset: every chunk begins at the first zero crossing at or after the
// requested start.
func (s *Syncer) Generate(
	ctx context.Context,
	w *waveform.Waveform,
	starts []int,
) (*syncstring.SyncDescriptor, error) {
	windowLen := w.SamplesIn(s.Config.SyncDuration)
	d := &syncstring.SyncDescriptor{
		SampleRate: int(w.SampleRate),
		Chunks:     make([]syncstring.ChunkRef, 0, len(starts)),
	}
	for idx, start := range starts {
		searchArea, err := w.Window(start, windowLen)
		if err != nil {
			return nil, fmt.Errorf("chunk #%d: %w", idx, err)
		}
		first := -1
		for i := 0; i+1 < len(searchArea); i++ {
			if zc.IsCrossing(searchArea[i], searchArea[i+1]) {
				first = i
				break
			}
		}
		if first < 0 {
			return nil, fmt.Errorf("chunk #%d: no zero crossings within %d samples since sample %d", idx, len(searchArea), start)
		}

		base := start + first
		segment, err := w.Window(base, windowLen)
		if err != nil {
			return nil, fmt.Errorf("chunk #%d: %w", idx, err)
		}
		if len(segment) < windowLen {
			return nil, fmt.Errorf("chunk #%d: %w: the window at sample %d needs %d samples, but only %d are left", idx, waveform.ErrNotEnoughAudio, base, windowLen, len(segment))
		}
		positions := zc.Positions(segment)
		for k := range positions {
			positions[k] += base
		}
		logger.Debugf(ctx, "chunk #%d: %d zero crossings since sample %d", idx, len(positions), base)
		d.Chunks = append(d.Chunks, syncstring.ChunkRef{
			StartOffset:   base,
			ZeroCrossings: positions,
		})
	}
	return d, nil
}
