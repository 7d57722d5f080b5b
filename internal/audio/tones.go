package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// Wave selects the oscillator shape.
type Wave int

const (
	WaveSine Wave = iota
	WaveSquare
	WaveSaw
)

// tone is a fixed-length oscillator.
type tone struct {
	freq     float64
	phase    float64
	length   int
	position int
	wave     Wave
	rate     beep.SampleRate
}

// Tone returns a streamer playing freq Hz for d.
func Tone(freq float64, d time.Duration, wave Wave, rate beep.SampleRate) beep.Streamer {
	return &tone{freq: freq, length: rate.N(d), wave: wave, rate: rate}
}

func (t *tone) Stream(samples [][2]float64) (n int, ok bool) {
	if t.position >= t.length {
		return 0, false
	}
	for i := range samples {
		if t.position >= t.length {
			return i, true
		}

		var v float64
		switch t.wave {
		case WaveSine:
			v = math.Sin(2 * math.Pi * t.phase)
		case WaveSquare:
			v = 1
			if t.phase >= 0.5 {
				v = -1
			}
		case WaveSaw:
			v = 2 * (t.phase - 0.5)
		}
		samples[i][0] = v
		samples[i][1] = v

		t.phase += t.freq / float64(t.rate)
		t.phase -= math.Floor(t.phase)
		t.position++
	}
	return len(samples), true
}

func (t *tone) Err() error { return nil }

// shape applies a linear attack and release to a streamer of known length.
type shape struct {
	s        beep.Streamer
	position int
	attack   int
	release  int
	total    int
}

// Shape wraps s with a linear attack and release envelope over d.
func Shape(s beep.Streamer, d, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	return &shape{s: s, attack: rate.N(attack), release: rate.N(release), total: rate.N(d)}
}

func (e *shape) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.s.Stream(samples)
	releaseAt := e.total - e.release
	for i := 0; i < n; i++ {
		gain := 1.0
		if e.attack > 0 && e.position < e.attack {
			gain = float64(e.position) / float64(e.attack)
		}
		if e.release > 0 && e.position >= releaseAt {
			gain = float64(e.total-e.position) / float64(e.release)
			if gain < 0 {
				gain = 0
			}
		}
		samples[i][0] *= gain
		samples[i][1] *= gain
		e.position++
	}
	return n, ok
}

func (e *shape) Err() error { return e.s.Err() }

// gain scales s by a linear factor. effects.Volume works in log2 steps,
// so a zero factor becomes a silent volume.
func gain(s beep.Streamer, factor float64) beep.Streamer {
	if factor <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(factor)}
}

// note is a shaped tone with short attack and release.
func note(freq float64, d time.Duration, wave Wave, rate beep.SampleRate) beep.Streamer {
	return Shape(Tone(freq, d, wave, rate), d, 5*time.Millisecond, d/2, rate)
}
