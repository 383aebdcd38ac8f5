package main

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xaionaro-go/audiosynch/pkg/syncer"
	"github.com/xaionaro-go/audiosynch/pkg/syncstring"
	"github.com/xaionaro-go/audiosynch/pkg/waveform"
)

func TestPrintResult(t *testing.T) {
	t.Run("reconciled", func(t *testing.T) {
		var stdout, stderr bytes.Buffer
		ok := printResult(&stdout, &stderr, &syncer.Result{
			Reconciled:   true,
			SampleOffset: 441,
			Seconds:      0.02,
		})
		assert.True(t, ok)
		assert.Equal(t, "Offset = 0.02000 seconds\n441\n", stdout.String())
		assert.Empty(t, stderr.String())
	})

	t.Run("mismatch", func(t *testing.T) {
		var stdout, stderr bytes.Buffer
		ok := printResult(&stdout, &stderr, &syncer.Result{
			ChunkOffsets: []int{0, 5, 0},
			ChunkSeconds: []float64{0, 0.25, 0},
		})
		assert.False(t, ok)
		assert.Empty(t, stdout.String())
		assert.Contains(t, stderr.String(), "Mismatch detected!")
		assert.Contains(t, stderr.String(), "Found offsets 0.00000 0.25000 0.00000 seconds")
	})
}

func TestPrintError(t *testing.T) {
	for name, tc := range map[string]struct {
		err      error
		expected string
	}{
		"decode":      {&syncstring.DecodeError{Input: []byte("x"), Err: errors.New("bad")}, "Decoding synchstring"},
		"format":      {fmt.Errorf("wrapped: %w", &syncstring.FormatError{Token: 3, Reason: "bad"}), "Malformed synchstring"},
		"short audio": {fmt.Errorf("chunk #0: %w", waveform.ErrNotEnoughAudio), "Not enough audio"},
	} {
		t.Run(name, func(t *testing.T) {
			var buf bytes.Buffer
			printError(&buf, tc.err)
			assert.Contains(t, buf.String(), tc.expected)
			assert.Contains(t, buf.String(), tc.err.Error())
		})
	}
}

func TestReadFirstLine(t *testing.T) {
	path := filepath.Join(t.TempDir(), "synchstring.txt")
	require.NoError(t, os.WriteFile(path, []byte("eJwz\r\nsecond line\n"), 0640))
	line, err := readFirstLine(path)
	require.NoError(t, err)
	assert.Equal(t, []byte("eJwz"), line)

	require.NoError(t, os.WriteFile(path, []byte("no newline"), 0640))
	line, err = readFirstLine(path)
	require.NoError(t, err)
	assert.Equal(t, []byte("no newline"), line)
}

func TestCorrelatorByName(t *testing.T) {
	for _, name := range []string{"direct", "FFT"} {
		c, err := correlatorByName(name)
		require.NoError(t, err)
		assert.NotNil(t, c)
	}
	_, err := correlatorByName("gcc-phat")
	assert.Error(t, err)
}
