package audio

import (
	"math"
	"testing"
	"time"

	"github.com/gopxl/beep"

	"github.com/vovakirdan/santa-delivery/internal/core"
)

// drain streams s to completion and returns the sample count and peak.
func drain(t *testing.T, s beep.Streamer) (int, float64) {
	t.Helper()
	buf := make([][2]float64, 512)
	total, peak := 0, 0.0
	for i := 0; i < 10000; i++ {
		n, ok := s.Stream(buf)
		for _, smp := range buf[:n] {
			peak = math.Max(peak, math.Abs(smp[0]))
		}
		total += n
		if !ok {
			return total, peak
		}
	}
	t.Fatal("streamer never drained")
	return 0, 0
}

func TestSequenceKinds(t *testing.T) {
	rate := beep.SampleRate(8000)
	tests := []struct {
		kind string
		min  time.Duration
	}{
		{core.EventFail, 480 * time.Millisecond},
		{core.EventSuccess, 360 * time.Millisecond},
		{core.EventIntermediate, 400 * time.Millisecond},
		{core.EventAllCleared, 940 * time.Millisecond},
	}

	for _, tt := range tests {
		t.Run(tt.kind, func(t *testing.T) {
			s := Sequence(tt.kind, rate)
			if s == nil {
				t.Fatalf("Sequence(%q) = nil", tt.kind)
			}
			n, peak := drain(t, s)
			if n < rate.N(tt.min) {
				t.Errorf("Sequence(%q) streamed %d samples, expected at least %d", tt.kind, n, rate.N(tt.min))
			}
			if peak == 0 || peak > 1.0001 {
				t.Errorf("Sequence(%q) peak = %v, expected within (0, 1]", tt.kind, peak)
			}
		})
	}
}

func TestSequenceUnknown(t *testing.T) {
	if s := Sequence("bogus", SampleRate); s != nil {
		t.Error("Sequence() for unknown kind should be nil")
	}
}

func TestToneLength(t *testing.T) {
	rate := beep.SampleRate(1000)
	n, _ := drain(t, Tone(100, 250*time.Millisecond, WaveSquare, rate))
	if n != 250 {
		t.Errorf("Tone() streamed %d samples, expected 250", n)
	}
}

func TestShapeStartsSilent(t *testing.T) {
	rate := beep.SampleRate(1000)
	s := Shape(Tone(100, time.Second, WaveSquare, rate), time.Second, 100*time.Millisecond, 100*time.Millisecond, rate)
	buf := make([][2]float64, 1)
	s.Stream(buf)
	if buf[0][0] != 0 {
		t.Errorf("first shaped sample = %v, expected 0", buf[0][0])
	}
}

func TestCuesWithoutInit(t *testing.T) {
	defer func() {
		if r := recover(); r != nil {
			t.Errorf("Cues panicked without initialization: %v", r)
		}
	}()

	c := NewCues(false, 0.8, nil)
	c.Play(core.EventFail)
	c.Play("bogus")
	if !c.Muted() {
		t.Error("uninitialized Cues should report muted")
	}
	c.Close()
}

func TestMutedCuesSkipInit(t *testing.T) {
	c := NewCues(true, 1, nil)
	if err := c.Init(); err != nil {
		t.Errorf("Init() on muted cues = %v, expected nil", err)
	}
	if !c.Muted() {
		t.Error("muted cues should stay muted")
	}
}
