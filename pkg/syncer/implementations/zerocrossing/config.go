package zerocrossing

import (
	"time"

	"github.com/xaionaro-go/audiosynch/pkg/audio"
	"github.com/xaionaro-go/audiosynch/pkg/correlator"
	"github.com/xaionaro-go/audiosynch/pkg/correlator/implementations/direct"
)

const DefaultSyncDuration = time.Second

type Config struct {
	// SyncDuration is the length of the correlation window.
	SyncDuration time.Duration

	// ReferenceSampleRate overrides the sample rate declared in the
	// sync-string; zero means to use the declared one.
	ReferenceSampleRate audio.SampleRate

	Correlator correlator.Correlator

	// Parallel enables aligning the chunks concurrently.
	Parallel bool

	// PlainTextFallback enables accepting not compressed sync-strings.
	PlainTextFallback bool
}

func DefaultConfig() Config {
	return Config{
		SyncDuration:      DefaultSyncDuration,
		Correlator:        direct.New(),
		PlainTextFallback: true,
	}
}

func (cfg Config) withDefaults() Config {
	if cfg.SyncDuration <= 0 {
		cfg.SyncDuration = DefaultSyncDuration
	}
	if cfg.Correlator == nil {
		cfg.Correlator = direct.New()
	}
	return cfg
}
