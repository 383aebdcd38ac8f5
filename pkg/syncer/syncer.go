package syncer

import (
	"context"

	"github.com/xaionaro-go/audiosynch/pkg/audio"
)

type Result struct {
	// Reconciled is false if the chunks disagree beyond the tolerance;
	// in this case only the per-chunk values are meaningful.
	Reconciled bool

	// SampleOffset is the offset in samples of the analyzed audio.
	SampleOffset int
	Seconds      float64

	// ChunkOffsets are the per-chunk offsets in the sample domain of the
	// sync-string, in the order of the chunks.
	ChunkOffsets []int
	ChunkSeconds []float64

	ReferenceSampleRate audio.SampleRate
	NativeSampleRate    audio.SampleRate
}

type Syncer interface {
	audio.AbstractAnalyzer

	// Synch finds the offset of the recording relative to the
	// zero-crossing pattern described by the (compressed) sync-string.
	//
	// A positive offset means the pattern is found later in the recording
	// than the sync-string expects it.
	Synch(
		ctx context.Context,
		samples []int16,
		syncString []byte,
	) (*Result, error)
}
