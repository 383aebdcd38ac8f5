// Package waveform provides the immutable mono 16-bit waveform the
// alignment works on, and loaders for it.
package waveform

import (
	"errors"
	"fmt"
	"time"

	"github.com/xaionaro-go/audiosynch/pkg/audio"
)

// DefaultSampleRate is the rate headerless (raw) recordings are assumed to have.
const DefaultSampleRate = audio.SampleRate(22050)

var ErrNotEnoughAudio = errors.New("not enough audio")

// Waveform is a mono recording; it must not be modified after construction.
type Waveform struct {
	SampleRate audio.SampleRate
	Samples    []int16
}

func New(sampleRate audio.SampleRate, samples []int16) *Waveform {
	return &Waveform{
		SampleRate: sampleRate,
		Samples:    samples,
	}
}

func (w *Waveform) Len() int {
	return len(w.Samples)
}

func (w *Waveform) Duration() time.Duration {
	if w.SampleRate == 0 {
		return 0
	}
	return time.Duration(len(w.Samples)) * time.Second / time.Duration(w.SampleRate)
}

// SamplesIn returns the amount of samples covering the duration d.
func (w *Waveform) SamplesIn(d time.Duration) int {
	return SamplesIn(w.SampleRate, d)
}

// Window returns samples [start, start+length), truncated to the end of
// the waveform. The result shares memory with the waveform.
func (w *Waveform) Window(start, length int) ([]int16, error) {
	if start < 0 {
		return nil, fmt.Errorf("negative window start %d", start)
	}
	if start >= len(w.Samples) {
		return nil, fmt.Errorf("%w: the window starts at sample %d, but there are only %d samples", ErrNotEnoughAudio, start, len(w.Samples))
	}
	end := start + length
	if end > len(w.Samples) {
		end = len(w.Samples)
	}
	return w.Samples[start:end:end], nil
}

// SamplesIn returns the amount of samples covering the duration d at the
// given sample rate.
func SamplesIn(sampleRate audio.SampleRate, d time.Duration) int {
	return int(d * time.Duration(sampleRate) / time.Second)
}
