package waveform

import (
	"bytes"
	"context"
	"encoding/binary"
	"math"
	"os"
	"path/filepath"
	"testing"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xaionaro-go/audiosynch/pkg/audio"
)

func s16le(samples ...int16) []byte {
	result := make([]byte, len(samples)*2)
	for i, v := range samples {
		binary.LittleEndian.PutUint16(result[i*2:], uint16(v))
	}
	return result
}

func writeWAV(t *testing.T, path string, sampleRate, channels int, data []int) {
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	enc := wav.NewEncoder(f, sampleRate, 16, channels, 1)
	require.NoError(t, enc.Write(&goaudio.IntBuffer{
		Format:         &goaudio.Format{NumChannels: channels, SampleRate: sampleRate},
		Data:           data,
		SourceBitDepth: 16,
	}))
	require.NoError(t, enc.Close())
}

func TestReadRaw(t *testing.T) {
	ctx := context.Background()

	t.Run("s16le", func(t *testing.T) {
		w, err := ReadRaw(ctx, bytes.NewReader(s16le(-1, 1, -32768, 32767)), DefaultRawParams())
		require.NoError(t, err)
		assert.Equal(t, DefaultSampleRate, w.SampleRate)
		assert.Equal(t, []int16{-1, 1, -32768, 32767}, w.Samples)
	})

	t.Run("partial trailing sample", func(t *testing.T) {
		data := append(s16le(7, -7), 0x01)
		w, err := ReadRaw(ctx, bytes.NewReader(data), DefaultRawParams())
		require.NoError(t, err)
		assert.Equal(t, []int16{7, -7}, w.Samples)
	})

	t.Run("u8", func(t *testing.T) {
		w, err := ReadRaw(ctx, bytes.NewReader([]byte{0, 128}), RawParams{SampleRate: 8000, PCMFormat: audio.PCMFormatU8})
		require.NoError(t, err)
		assert.Equal(t, audio.SampleRate(8000), w.SampleRate)
		assert.Equal(t, []int16{-32768, 0}, w.Samples)
	})

	t.Run("s32le with a partial trailing sample", func(t *testing.T) {
		data := make([]byte, 10)
		binary.LittleEndian.PutUint32(data[0:], 0x40000000)
		binary.LittleEndian.PutUint32(data[4:], 0x80000000)
		w, err := ReadRaw(ctx, bytes.NewReader(data), RawParams{SampleRate: 16000, PCMFormat: audio.PCMFormatS32LE})
		require.NoError(t, err)
		assert.Equal(t, []int16{16384, -32768}, w.Samples)
	})

	t.Run("f32le is clamped", func(t *testing.T) {
		data := make([]byte, 8)
		binary.LittleEndian.PutUint32(data[0:], math.Float32bits(-0.25))
		binary.LittleEndian.PutUint32(data[4:], math.Float32bits(1.5))
		w, err := ReadRaw(ctx, bytes.NewReader(data), RawParams{SampleRate: 16000, PCMFormat: audio.PCMFormatFloat32LE})
		require.NoError(t, err)
		assert.Equal(t, []int16{-8192, 32767}, w.Samples)
	})

	t.Run("no sample rate", func(t *testing.T) {
		_, err := ReadRaw(ctx, bytes.NewReader(nil), RawParams{PCMFormat: audio.PCMFormatS16LE})
		assert.Error(t, err)
	})

	t.Run("undefined format", func(t *testing.T) {
		_, err := ReadRaw(ctx, bytes.NewReader(nil), RawParams{SampleRate: 1})
		assert.Error(t, err)
	})
}

func TestLoadFile(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	t.Run("raw", func(t *testing.T) {
		path := filepath.Join(dir, "clip.raw")
		require.NoError(t, os.WriteFile(path, s16le(-3, 4, 5), 0640))
		w, err := LoadFile(ctx, path, InputFormatAuto, DefaultRawParams())
		require.NoError(t, err)
		assert.Equal(t, []int16{-3, 4, 5}, w.Samples)
	})

	t.Run("wav", func(t *testing.T) {
		path := filepath.Join(dir, "clip.wav")
		writeWAV(t, path, 44100, 1, []int{-100, 200, -300, 400})
		w, err := LoadFile(ctx, path, InputFormatAuto, DefaultRawParams())
		require.NoError(t, err)
		assert.Equal(t, audio.SampleRate(44100), w.SampleRate)
		assert.Equal(t, []int16{-100, 200, -300, 400}, w.Samples)
	})

	t.Run("stereo wav", func(t *testing.T) {
		path := filepath.Join(dir, "stereo.wav")
		writeWAV(t, path, 22050, 2, []int{1, 2, 3, 4})
		_, err := LoadFile(ctx, path, InputFormatWAV, DefaultRawParams())
		assert.Error(t, err)
	})

	t.Run("not an ogg", func(t *testing.T) {
		path := filepath.Join(dir, "clip.ogg")
		require.NoError(t, os.WriteFile(path, []byte("definitely not vorbis"), 0640))
		_, err := LoadFile(ctx, path, InputFormatAuto, DefaultRawParams())
		assert.Error(t, err)
	})

	t.Run("missing", func(t *testing.T) {
		_, err := LoadFile(ctx, filepath.Join(dir, "missing.raw"), InputFormatAuto, DefaultRawParams())
		assert.ErrorIs(t, err, os.ErrNotExist)
	})
}

func TestInputFormat(t *testing.T) {
	assert.Equal(t, InputFormatWAV, InputFormatByPath("/a/b/C.WAV"))
	assert.Equal(t, InputFormatOgg, InputFormatByPath("x.ogg"))
	assert.Equal(t, InputFormatRaw, InputFormatByPath("x.pcm"))

	var f InputFormat
	require.NoError(t, f.Set("ogg"))
	assert.Equal(t, InputFormatOgg, f)
	assert.Error(t, f.Set("flac"))
}
