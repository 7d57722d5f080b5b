// Package audio plays short synthesized cues for stage outcomes.
package audio

import (
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/vovakirdan/santa-delivery/internal/core"
)

// SampleRate is the rate every cue is synthesized at.
const SampleRate = beep.SampleRate(44100)

// Cues owns the speaker mixer. A Cues that was never initialized, or whose
// speaker failed to open, drops every Play call.
type Cues struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	initialized bool
	muted       bool
	volume      float64
	logger      *log.Logger
}

// NewCues creates a cue player. Volume is a linear factor in [0, 1].
func NewCues(muted bool, volume float64, logger *log.Logger) *Cues {
	if logger == nil {
		logger = log.Default()
	}
	return &Cues{
		mixer:  &beep.Mixer{},
		muted:  muted,
		volume: core.ClampF(volume, 0, 1),
		logger: logger,
	}
}

// Init opens the speaker. Failure leaves the player silent and is
// returned so callers can log it.
func (c *Cues) Init() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.initialized || c.muted {
		return nil
	}
	if err := speaker.Init(SampleRate, SampleRate.N(100*time.Millisecond)); err != nil {
		c.muted = true
		return err
	}
	speaker.Play(c.mixer)
	c.initialized = true
	return nil
}

// Play queues the cue for an event kind. Unknown kinds are ignored.
func (c *Cues) Play(kind string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.initialized || c.muted {
		return
	}
	s := Sequence(kind, SampleRate)
	if s == nil {
		return
	}
	speaker.Lock()
	c.mixer.Add(gain(s, c.volume))
	speaker.Unlock()
	c.logger.Debug("cue", "kind", kind)
}

// Muted reports whether Play is a no-op.
func (c *Cues) Muted() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.muted || !c.initialized
}

// Close silences the mixer.
func (c *Cues) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.initialized {
		return
	}
	speaker.Lock()
	c.mixer.Clear()
	speaker.Unlock()
	c.initialized = false
}

// Note frequencies in Hz.
const (
	noteC5 = 523.25
	noteE5 = 659.25
	noteG5 = 783.99
	noteC6 = 1046.50
	noteA5 = 880.00
)

// Sequence builds the cue for an event kind, or nil for kinds without one.
func Sequence(kind string, rate beep.SampleRate) beep.Streamer {
	switch kind {
	case core.EventFail:
		return beep.Seq(
			note(220, 120*time.Millisecond, WaveSaw, rate),
			note(165, 120*time.Millisecond, WaveSaw, rate),
			note(110, 240*time.Millisecond, WaveSaw, rate),
		)
	case core.EventSuccess:
		return beep.Seq(
			note(noteC5, 90*time.Millisecond, WaveSine, rate),
			note(noteE5, 90*time.Millisecond, WaveSine, rate),
			note(noteG5, 180*time.Millisecond, WaveSine, rate),
		)
	case core.EventIntermediate:
		d := 400 * time.Millisecond
		return beep.Mix(
			gain(Shape(Tone(noteA5, d, WaveSine, rate), d, 2*time.Millisecond, 350*time.Millisecond, rate), 0.7),
			gain(Shape(Tone(2*noteA5, d, WaveSine, rate), d, 2*time.Millisecond, 200*time.Millisecond, rate), 0.3),
		)
	case core.EventAllCleared:
		var notes []beep.Streamer
		for i := 0; i < 2; i++ {
			for _, f := range []float64{noteC5, noteE5, noteG5, noteC6} {
				notes = append(notes, note(f, 80*time.Millisecond, WaveSquare, rate))
			}
		}
		notes = append(notes, note(noteC6, 300*time.Millisecond, WaveSine, rate))
		return gain(beep.Seq(notes...), 0.5)
	default:
		return nil
	}
}
