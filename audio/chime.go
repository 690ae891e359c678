// Package audio synthesizes short cue sounds (spawn, remove, error) for
// the demo applications. Sounds are generated, not sampled: a wave
// oscillator shaped by an attack/release envelope, mixed through a
// shared beep mixer.
package audio

import (
	"math"
	"os"
	"strconv"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// DefaultSampleRate is used when no config overrides it.
const DefaultSampleRate = 44100

// Config holds audio settings with environment overrides.
type Config struct {
	Enabled      bool
	MasterVolume float64 // 0.0 .. 1.0
	SampleRate   int
}

// DefaultConfig returns audio defaults.
func DefaultConfig() *Config {
	return &Config{
		Enabled:      true,
		MasterVolume: 0.7,
		SampleRate:   DefaultSampleRate,
	}
}

// LoadConfig reads configuration from environment variables, falling
// back to defaults. SLOTARENA_AUDIO_ENABLED toggles audio,
// SLOTARENA_MASTER_VOLUME is 0-100.
func LoadConfig() *Config {
	cfg := DefaultConfig()

	if enabled := os.Getenv("SLOTARENA_AUDIO_ENABLED"); enabled != "" {
		if val, err := strconv.ParseBool(enabled); err == nil {
			cfg.Enabled = val
		}
	}
	if volume := os.Getenv("SLOTARENA_MASTER_VOLUME"); volume != "" {
		if val, err := strconv.Atoi(volume); err == nil {
			cfg.MasterVolume = float64(val) / 100.0
			if cfg.MasterVolume < 0 {
				cfg.MasterVolume = 0
			}
			if cfg.MasterVolume > 1 {
				cfg.MasterVolume = 1
			}
		}
	}
	return cfg
}

// A waveFn maps an oscillator phase in [0, 1) to a sample in [-1, 1].
type waveFn func(phase float64) float64

func sineWave(phase float64) float64 { return math.Sin(2 * math.Pi * phase) }
func sawWave(phase float64) float64  { return 2*phase - 1 }

// oscillator streams a wave function for a fixed number of samples.
type oscillator struct {
	wave      waveFn
	step      float64 // phase increment per sample
	phase     float64
	remaining int
}

func newOscillator(freq float64, duration time.Duration, wave waveFn, rate beep.SampleRate) beep.Streamer {
	return &oscillator{
		wave:      wave,
		step:      freq / float64(rate),
		remaining: rate.N(duration),
	}
}

func (o *oscillator) Stream(samples [][2]float64) (int, bool) {
	if o.remaining <= 0 {
		return 0, false
	}
	n := min(len(samples), o.remaining)
	for i := 0; i < n; i++ {
		v := o.wave(o.phase)
		samples[i][0], samples[i][1] = v, v
		o.phase += o.step
		if o.phase >= 1 {
			o.phase -= 1
		}
	}
	o.remaining -= n
	return n, true
}

func (o *oscillator) Err() error { return nil }

// envelope shapes a stream with a linear attack ramp, full sustain, and
// a linear release tail, then ends it after the configured duration.
type envelope struct {
	streamer beep.Streamer
	pos      int
	attack   int
	release  int
	total    int
}

func newEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	return &envelope{
		streamer: s,
		attack:   rate.N(attack),
		release:  rate.N(release),
		total:    rate.N(duration),
	}
}

// gain is the volume factor at the current position. The attack ramp
// wins when attack and release overlap on a very short sound.
func (e *envelope) gain() float64 {
	switch {
	case e.pos < e.attack:
		return float64(e.pos) / float64(e.attack)
	case e.total-e.pos <= e.release:
		return float64(e.total-e.pos) / float64(e.release)
	default:
		return 1
	}
}

func (e *envelope) Stream(samples [][2]float64) (int, bool) {
	if e.pos >= e.total {
		return 0, false
	}
	want := min(len(samples), e.total-e.pos)
	n, _ := e.streamer.Stream(samples[:want])
	for i := 0; i < n; i++ {
		g := e.gain()
		samples[i][0] *= g
		samples[i][1] *= g
		e.pos++
	}
	return n, n > 0
}

func (e *envelope) Err() error { return e.streamer.Err() }

// newVolume scales a streamer. math.Log2(0) is -Inf, so zero volume is
// handled by silencing instead.
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}

// Chime builds a short bell-like cue at the given frequency: a sine
// burst with a fast attack and a long release.
func Chime(cfg *Config, freq float64, duration time.Duration) beep.Streamer {
	rate := beep.SampleRate(cfg.SampleRate)
	osc := newOscillator(freq, duration, sineWave, rate)
	env := newEnvelope(osc, duration, duration/20, duration/2, rate)
	return newVolume(env, cfg.MasterVolume)
}

// Buzz builds a short harsh saw burst, used for error cues.
func Buzz(cfg *Config, duration time.Duration) beep.Streamer {
	rate := beep.SampleRate(cfg.SampleRate)
	osc := newOscillator(100.0, duration, sawWave, rate)
	env := newEnvelope(osc, duration, 0, duration/4, rate)
	return newVolume(env, cfg.MasterVolume*0.5)
}
