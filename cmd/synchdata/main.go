package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/facebookincubator/go-belt"
	"github.com/facebookincubator/go-belt/tool/logger"
	"github.com/facebookincubator/go-belt/tool/logger/implementation/logrus"
	"github.com/fatih/color"
	"github.com/spf13/pflag"
	"github.com/xaionaro-go/audiosynch/pkg/audio"
	"github.com/xaionaro-go/audiosynch/pkg/correlator"
	"github.com/xaionaro-go/audiosynch/pkg/correlator/implementations/direct"
	"github.com/xaionaro-go/audiosynch/pkg/correlator/implementations/fft"
	"github.com/xaionaro-go/audiosynch/pkg/syncer"
	"github.com/xaionaro-go/audiosynch/pkg/syncer/implementations/zerocrossing"
	"github.com/xaionaro-go/audiosynch/pkg/syncstring"
	"github.com/xaionaro-go/audiosynch/pkg/waveform"
)

const (
	exitCodeOK       = 0
	exitCodeNoResult = 1
	exitCodeUsage    = 2
)

func main() {
	os.Exit(run())
}

func run() int {
	loggerLevel := logger.LevelWarning
	pflag.Var(&loggerLevel, "log-level", "Log level")
	sampleRate := pflag.Uint32("sample-rate", uint32(waveform.DefaultSampleRate), "sample rate of raw input")
	pcmFormat := audio.PCMFormatS16LE
	pflag.Var(&pcmFormat, "pcm-format", "sample format of raw input")
	inputFormat := waveform.InputFormatAuto
	pflag.Var(&inputFormat, "input-format", "input format: auto, raw, wav or ogg")
	syncDuration := pflag.Duration("sync-duration", zerocrossing.DefaultSyncDuration, "length of the correlation window")
	referenceSampleRate := pflag.Uint32("reference-sample-rate", 0, "sample rate of the sync-string positions (0: as declared in the sync-string)")
	correlatorName := pflag.String("correlator", "direct", "correlation implementation: direct or fft")
	parallel := pflag.Bool("parallel", false, "align the chunks concurrently")
	plainFallback := pflag.Bool("plain-fallback", true, "accept a not compressed sync-string")
	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [flags] <mono_audio_at_22050_Hz.raw> <synchstring.txt>\n", os.Args[0])
		pflag.PrintDefaults()
	}
	pflag.Parse()

	if pflag.NArg() != 2 {
		pflag.Usage()
		return exitCodeUsage
	}

	l := logrus.Default().WithLevel(loggerLevel)
	ctx := logger.CtxWithLogger(context.Background(), l)
	logger.Default = func() logger.Logger {
		return l
	}
	defer belt.Flush(ctx)

	corr, err := correlatorByName(*correlatorName)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitCodeUsage
	}

	w, err := waveform.LoadFile(ctx, pflag.Arg(0), inputFormat, waveform.RawParams{
		SampleRate: audio.SampleRate(*sampleRate),
		PCMFormat:  pcmFormat,
	})
	assertNoError(err)

	syncString, err := readFirstLine(pflag.Arg(1))
	assertNoError(err)

	s, err := zerocrossing.NewSyncer(audio.EncodingPCM{
		PCMFormat:  audio.PCMFormatS16LE,
		SampleRate: w.SampleRate,
	}, 1, zerocrossing.Config{
		SyncDuration:        *syncDuration,
		ReferenceSampleRate: audio.SampleRate(*referenceSampleRate),
		Correlator:          corr,
		Parallel:            *parallel,
		PlainTextFallback:   *plainFallback,
	})
	assertNoError(err)
	defer s.Close()

	result, err := s.Synch(ctx, w.Samples, syncString)
	if err != nil {
		printError(os.Stderr, err)
		return exitCodeNoResult
	}
	if !printResult(os.Stdout, os.Stderr, result) {
		return exitCodeNoResult
	}
	return exitCodeOK
}

func correlatorByName(name string) (correlator.Correlator, error) {
	switch strings.ToLower(name) {
	case "direct":
		return direct.New(), nil
	case "fft":
		return fft.New(), nil
	default:
		return nil, fmt.Errorf("unknown correlator '%s'", name)
	}
}

func readFirstLine(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	line, err := bufio.NewReader(f).ReadString('\n')
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("unable to read '%s': %w", path, err)
	}
	return []byte(strings.TrimRight(line, "\r\n")), nil
}

func printError(w io.Writer, err error) {
	red := color.New(color.FgRed, color.Bold)
	var (
		decodeErr *syncstring.DecodeError
		formatErr *syncstring.FormatError
	)
	switch {
	case errors.As(err, &decodeErr):
		red.Fprintf(w, "Error: Decoding synchstring!\n")
	case errors.As(err, &formatErr):
		red.Fprintf(w, "Error: Malformed synchstring!\n")
	case errors.Is(err, waveform.ErrNotEnoughAudio):
		red.Fprintf(w, "Error: Not enough audio!\n")
	}
	fmt.Fprintf(w, "%v\n", err)
}

func printResult(stdout, stderr io.Writer, result *syncer.Result) bool {
	if !result.Reconciled {
		color.New(color.FgYellow, color.Bold).Fprintf(stderr, "Warning: Mismatch detected!\n")
		var b strings.Builder
		for _, seconds := range result.ChunkSeconds {
			fmt.Fprintf(&b, "%.5f ", seconds)
		}
		fmt.Fprintf(stderr, "Found offsets %sseconds\n", b.String())
		return false
	}
	fmt.Fprintf(stdout, "Offset = %.5f seconds\n", result.Seconds)
	fmt.Fprintf(stdout, "%d\n", result.SampleOffset)
	return true
}

func assertNoError(err error) {
	if err != nil {
		panic(err)
	}
}
