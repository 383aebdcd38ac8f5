// Package zerocrossing implements an audio synchronization algorithm
// matching zero crossings of a recording against the reference pattern
// stored in a sync-string.
//
// Every chunk of the sync-string is aligned independently by
// cross-correlating impulse trains of zero crossings; the per-chunk
// offsets are then reconciled into one.
package zerocrossing

import (
	"context"
	"fmt"
	"math"

	"github.com/facebookincubator/go-belt/tool/logger"
	"github.com/xaionaro-go/audiosynch/pkg/audio"
	"github.com/xaionaro-go/audiosynch/pkg/reconciler"
	"github.com/xaionaro-go/audiosynch/pkg/syncer"
	"github.com/xaionaro-go/audiosynch/pkg/syncstring"
	"github.com/xaionaro-go/audiosynch/pkg/waveform"
)

type Syncer struct {
	SampleRate audio.SampleRate
	Config     Config
}

var _ syncer.Syncer = (*Syncer)(nil)

// NewSyncer initializes a new one-shot zero-crossing syncer for mono audio.
func NewSyncer(
	encoding audio.Encoding,
	channels audio.Channel,
	cfg Config,
) (*Syncer, error) {
	if encoding == nil {
		return nil, fmt.Errorf("encoding is mandatory")
	}
	if channels != 1 {
		return nil, fmt.Errorf("only mono audio is supported: got %d channels", channels)
	}
	pcm, ok := encoding.(audio.EncodingPCM)
	if !ok || pcm.SampleRate == 0 {
		return nil, fmt.Errorf("sample rate is mandatory and could not be determined from encoding %T", encoding)
	}

	return &Syncer{
		SampleRate: pcm.SampleRate,
		Config:     cfg.withDefaults(),
	}, nil
}

func (s *Syncer) Close() error {
	return nil
}

func (s *Syncer) Encoding(
	ctx context.Context,
) (audio.Encoding, error) {
	return audio.EncodingPCM{
		PCMFormat:  audio.PCMFormatS16LE,
		SampleRate: s.SampleRate,
	}, nil
}

func (s *Syncer) Channels(
	ctx context.Context,
) (audio.Channel, error) {
	return 1, nil
}

// ReferenceSampleRate returns the rate the positions of the descriptor
// are measured at.
func (s *Syncer) ReferenceSampleRate(
	ctx context.Context,
	d *syncstring.SyncDescriptor,
) audio.SampleRate {
	if s.Config.ReferenceSampleRate == 0 {
		return audio.SampleRate(d.SampleRate)
	}
	if int(s.Config.ReferenceSampleRate) != d.SampleRate {
		logger.Warnf(ctx, "the sync-string declares %d Hz, but %d Hz is enforced", d.SampleRate, s.Config.ReferenceSampleRate)
	}
	return s.Config.ReferenceSampleRate
}

func (s *Syncer) Synch(
	ctx context.Context,
	samples []int16,
	syncString []byte,
) (*syncer.Result, error) {
	d, err := syncstring.Parse(ctx, syncString, s.Config.PlainTextFallback)
	if err != nil {
		return nil, err
	}
	return s.SynchDescriptor(ctx, waveform.New(s.SampleRate, samples), d)
}

// SynchDescriptor is Synch for an already decoded sync-string.
func (s *Syncer) SynchDescriptor(
	ctx context.Context,
	w *waveform.Waveform,
	d *syncstring.SyncDescriptor,
) (*syncer.Result, error) {
	if w.SampleRate == 0 {
		return nil, fmt.Errorf("the waveform has no sample rate")
	}
	refRate := s.ReferenceSampleRate(ctx, d)
	if err := d.Validate(waveform.SamplesIn(refRate, s.Config.SyncDuration)); err != nil {
		return nil, fmt.Errorf("invalid sync descriptor: %w", err)
	}

	offsets, err := s.AlignAll(ctx, d, w, refRate)
	if err != nil {
		return nil, err
	}

	rec, err := reconciler.Reconcile(offsets)
	if err != nil {
		return nil, err
	}

	ratio := float64(w.SampleRate) / float64(refRate)
	result := &syncer.Result{
		ChunkOffsets:        rec.Offsets,
		ChunkSeconds:        make([]float64, len(rec.Offsets)),
		ReferenceSampleRate: refRate,
		NativeSampleRate:    w.SampleRate,
	}
	for idx, offset := range rec.Offsets {
		result.ChunkSeconds[idx] = float64(offset) * ratio / float64(w.SampleRate)
	}

	switch rec.Outcome {
	case reconciler.OutcomeReconciled:
		result.Reconciled = true
		result.SampleOffset = int(math.Round(float64(rec.Offset) * ratio))
		result.Seconds = float64(rec.Offset) * ratio / float64(w.SampleRate)
		logger.Debugf(ctx, "offset: %d samples (%.5f seconds), chunks: %v", result.SampleOffset, result.Seconds, rec.Offsets)
	case reconciler.OutcomeMismatch:
		logger.Warnf(ctx, "mismatch detected: the chunks disagree by %d samples, found offsets %v seconds", rec.MaxDistance, result.ChunkSeconds)
	default:
		return nil, fmt.Errorf("internal error: unexpected reconciliation outcome %v", rec.Outcome)
	}
	return result, nil
}
