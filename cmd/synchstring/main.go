package main

import (
	"context"
	"fmt"
	"os"

	"github.com/facebookincubator/go-belt"
	"github.com/facebookincubator/go-belt/tool/logger"
	"github.com/facebookincubator/go-belt/tool/logger/implementation/logrus"
	"github.com/spf13/pflag"
	"github.com/xaionaro-go/audiosynch/pkg/audio"
	"github.com/xaionaro-go/audiosynch/pkg/syncer/implementations/zerocrossing"
	"github.com/xaionaro-go/audiosynch/pkg/syncstring"
	"github.com/xaionaro-go/audiosynch/pkg/waveform"
)

func main() {
	loggerLevel := logger.LevelWarning
	pflag.Var(&loggerLevel, "log-level", "Log level")
	sampleRate := pflag.Uint32("sample-rate", uint32(waveform.DefaultSampleRate), "sample rate of raw input")
	pcmFormat := audio.PCMFormatS16LE
	pflag.Var(&pcmFormat, "pcm-format", "sample format of raw input")
	inputFormat := waveform.InputFormatAuto
	pflag.Var(&inputFormat, "input-format", "input format: auto, raw, wav or ogg")
	syncDuration := pflag.Duration("sync-duration", zerocrossing.DefaultSyncDuration, "length of a chunk")
	chunks := pflag.Int("chunks", 3, "amount of evenly spaced chunks (ignored if --starts is set)")
	starts := pflag.Float64Slice("starts", nil, "chunk start positions in seconds")
	plain := pflag.Bool("plain", false, "print the sync-string without compression")
	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [flags] <reference_audio>\n", os.Args[0])
		pflag.PrintDefaults()
	}
	pflag.Parse()

	if pflag.NArg() != 1 {
		pflag.Usage()
		os.Exit(2)
	}

	l := logrus.Default().WithLevel(loggerLevel)
	ctx := logger.CtxWithLogger(context.Background(), l)
	logger.Default = func() logger.Logger {
		return l
	}
	defer belt.Flush(ctx)

	w, err := waveform.LoadFile(ctx, pflag.Arg(0), inputFormat, waveform.RawParams{
		SampleRate: audio.SampleRate(*sampleRate),
		PCMFormat:  pcmFormat,
	})
	assertNoError(err)

	s, err := zerocrossing.NewSyncer(audio.EncodingPCM{
		PCMFormat:  audio.PCMFormatS16LE,
		SampleRate: w.SampleRate,
	}, 1, zerocrossing.Config{
		SyncDuration: *syncDuration,
	})
	assertNoError(err)
	defer s.Close()

	var startSamples []int
	if len(*starts) > 0 {
		for _, sec := range *starts {
			startSamples = append(startSamples, int(sec*float64(w.SampleRate)))
		}
	} else {
		startSamples = zerocrossing.EvenlySpacedStarts(w.Len(), w.SamplesIn(*syncDuration), *chunks)
	}
	logger.Debugf(ctx, "chunk starts: %v", startSamples)

	d, err := s.Generate(ctx, w, startSamples)
	assertNoError(err)

	text, err := syncstring.Encode(d)
	assertNoError(err)
	if *plain {
		fmt.Println(text)
		return
	}

	compressed, err := syncstring.Compress(text)
	assertNoError(err)
	fmt.Println(string(compressed))
}

func assertNoError(err error) {
	if err != nil {
		panic(err)
	}
}
