package waveform

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/facebookincubator/go-belt/tool/logger"
	"github.com/go-audio/wav"
	"github.com/jfreymuth/oggvorbis"
	"github.com/xaionaro-go/audiosynch/pkg/audio"
	"github.com/xaionaro-go/audiosynch/pkg/audio/pcm"
	"github.com/xaionaro-go/datacounter"
)

type InputFormat int

const (
	InputFormatAuto = InputFormat(iota)
	InputFormatRaw
	InputFormatWAV
	InputFormatOgg
	endOfInputFormat
)

func (f InputFormat) String() string {
	switch f {
	case InputFormatAuto:
		return "auto"
	case InputFormatRaw:
		return "raw"
	case InputFormatWAV:
		return "wav"
	case InputFormatOgg:
		return "ogg"
	default:
		return fmt.Sprintf("unknown_input_format_%d", int(f))
	}
}

// Set implements pflag.Value.
func (f *InputFormat) Set(s string) error {
	s = strings.ToLower(strings.TrimSpace(s))
	for candidate := InputFormatAuto; candidate < endOfInputFormat; candidate++ {
		if candidate.String() == s {
			*f = candidate
			return nil
		}
	}
	return fmt.Errorf("unknown input format '%s'", s)
}

// Type implements pflag.Value.
func (f *InputFormat) Type() string {
	return "input-format"
}

// InputFormatByPath guesses the input format by the file extension;
// anything unknown is treated as raw PCM.
func InputFormatByPath(path string) InputFormat {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".wav", ".wave":
		return InputFormatWAV
	case ".ogg", ".oga":
		return InputFormatOgg
	default:
		return InputFormatRaw
	}
}

// RawParams describes headerless input.
type RawParams struct {
	SampleRate audio.SampleRate
	PCMFormat  audio.PCMFormat
}

func DefaultRawParams() RawParams {
	return RawParams{
		SampleRate: DefaultSampleRate,
		PCMFormat:  audio.PCMFormatS16LE,
	}
}

// LoadFile reads a mono recording; rawParams are used only for raw input.
func LoadFile(
	ctx context.Context,
	path string,
	format InputFormat,
	rawParams RawParams,
) (*Waveform, error) {
	if format == InputFormatAuto {
		format = InputFormatByPath(path)
	}
	logger.Debugf(ctx, "loading '%s' as %s", path, format)

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("unable to open '%s': %w", path, err)
	}
	defer f.Close()

	var w *Waveform
	switch format {
	case InputFormatRaw:
		w, err = ReadRaw(ctx, f, rawParams)
	case InputFormatWAV:
		w, err = ReadWAV(ctx, f)
	case InputFormatOgg:
		w, err = ReadOgg(ctx, f)
	default:
		return nil, fmt.Errorf("unsupported input format: %v", format)
	}
	if err != nil {
		return nil, fmt.Errorf("unable to load '%s': %w", path, err)
	}
	logger.Debugf(ctx, "loaded %d samples (%v) at %d Hz", w.Len(), w.Duration(), w.SampleRate)
	return w, nil
}

// ReadRaw reads headerless mono PCM till EOF.
func ReadRaw(
	ctx context.Context,
	r io.Reader,
	params RawParams,
) (*Waveform, error) {
	if params.SampleRate == 0 {
		return nil, fmt.Errorf("sample rate is mandatory")
	}
	rc := datacounter.NewReaderCounter(r)
	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("unable to read: %w", err)
	}
	logger.Tracef(ctx, "read %d bytes of %s", rc.Count(), params.PCMFormat)

	size := int(params.PCMFormat.Size())
	if size == 0 {
		return nil, fmt.Errorf("unsupported PCM format: %v", params.PCMFormat)
	}
	if tail := len(data) % size; tail != 0 {
		logger.Warnf(ctx, "the input ends with a partial sample, ignoring the last %d bytes", tail)
		data = data[:len(data)-tail]
	}

	samples, err := pcm.ToInt16(params.PCMFormat, data)
	if err != nil {
		return nil, err
	}
	return New(params.SampleRate, samples), nil
}

// ReadWAV reads a mono integer PCM WAV file.
func ReadWAV(
	ctx context.Context,
	r io.ReadSeeker,
) (*Waveform, error) {
	d := wav.NewDecoder(r)
	if !d.IsValidFile() {
		return nil, fmt.Errorf("not a valid WAV file")
	}
	if d.WavAudioFormat != 1 {
		return nil, fmt.Errorf("unsupported WAV audio format %d, only integer PCM is supported", d.WavAudioFormat)
	}
	if d.NumChans != 1 {
		return nil, fmt.Errorf("only mono audio is supported, got %d channels", d.NumChans)
	}

	buf, err := d.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("unable to read PCM data: %w", err)
	}
	logger.Tracef(ctx, "WAV: %d Hz, %d bits, %d samples", d.SampleRate, d.BitDepth, len(buf.Data))

	samples := make([]int16, len(buf.Data))
	switch d.BitDepth {
	case 8:
		for i, v := range buf.Data {
			samples[i] = int16((v - 128) << 8)
		}
	case 16:
		for i, v := range buf.Data {
			samples[i] = int16(v)
		}
	case 24:
		for i, v := range buf.Data {
			samples[i] = int16(v >> 8)
		}
	case 32:
		for i, v := range buf.Data {
			samples[i] = int16(v >> 16)
		}
	default:
		return nil, fmt.Errorf("unsupported bit depth %d", d.BitDepth)
	}
	return New(audio.SampleRate(d.SampleRate), samples), nil
}

// ReadOgg decodes a mono Ogg Vorbis stream.
func ReadOgg(
	ctx context.Context,
	r io.Reader,
) (*Waveform, error) {
	rc := datacounter.NewReaderCounter(r)
	data, format, err := oggvorbis.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("unable to decode the vorbis stream: %w", err)
	}
	logger.Tracef(ctx, "read %d bytes of Ogg Vorbis: %d Hz, %d channels", rc.Count(), format.SampleRate, format.Channels)
	if format.Channels != 1 {
		return nil, fmt.Errorf("only mono audio is supported, got %d channels", format.Channels)
	}

	samples := make([]int16, len(data))
	for i, v := range data {
		samples[i] = pcm.FromFloat64(float64(v))
	}
	return New(audio.SampleRate(format.SampleRate), samples), nil
}
