// Package replay records stage attempts as tap timelines and plays them
// back against a fresh runtime.
//
// An attempt is fully determined by its stage, its runtime seed, the
// simulation parameters and the tick indices at which taps were consumed,
// so a replay file only stores those.
package replay

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/vovakirdan/santa-delivery/internal/core"
	"github.com/vovakirdan/santa-delivery/internal/games/santa"
	"github.com/vovakirdan/santa-delivery/internal/stage"
)

// Version is the current replay file format version.
const Version = 1

// Ext is the replay file extension.
const Ext = ".replay"

var (
	// ErrVersion is returned when decoding a replay from a newer format.
	ErrVersion = errors.New("replay: unsupported version")
	// ErrEmpty is returned when decoding an empty buffer.
	ErrEmpty = errors.New("replay: empty data")
)

// Replay is one recorded stage attempt.
type Replay struct {
	Version    int       `msgpack:"v"`
	GameID     string    `msgpack:"game"`
	Stage      int       `msgpack:"stage"`
	Seed       int64     `msgpack:"seed"`
	TickRate   int       `msgpack:"tps"`
	Difficulty string    `msgpack:"difficulty,omitempty"`
	Taps       []uint64  `msgpack:"taps"`
	Outcome    string    `msgpack:"outcome"`
	Ticks      uint64    `msgpack:"ticks"`
	RecordedAt time.Time `msgpack:"at"`
}

// FromEvent builds a replay from a terminal event.
func FromEvent(e core.Event, gameID string, tickRate int, difficulty string) Replay {
	taps := make([]uint64, len(e.Taps))
	copy(taps, e.Taps)
	return Replay{
		Version:    Version,
		GameID:     gameID,
		Stage:      e.Stage,
		Seed:       e.Seed,
		TickRate:   tickRate,
		Difficulty: difficulty,
		Taps:       taps,
		Outcome:    e.Kind,
		Ticks:      e.Ticks,
		RecordedAt: time.Now().UTC(),
	}
}

// Config returns the runtime configuration the attempt was played with.
func (r Replay) Config() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	cfg.TickRate = r.TickRate
	cfg.Seed = r.Seed
	cfg.StartStage = r.Stage
	cfg.Difficulty = r.Difficulty
	return cfg
}

// Encode serializes r with msgpack.
func Encode(r Replay) ([]byte, error) {
	if r.Version == 0 {
		r.Version = Version
	}
	data, err := msgpack.Marshal(&r)
	if err != nil {
		return nil, fmt.Errorf("replay: encode: %w", err)
	}
	return data, nil
}

// Decode parses a msgpack replay.
func Decode(data []byte) (Replay, error) {
	if len(data) == 0 {
		return Replay{}, ErrEmpty
	}
	var r Replay
	if err := msgpack.Unmarshal(data, &r); err != nil {
		return Replay{}, fmt.Errorf("replay: decode: %w", err)
	}
	if r.Version > Version {
		return Replay{}, fmt.Errorf("%w: %d", ErrVersion, r.Version)
	}
	return r, nil
}

// FileName returns the file name Save uses for r.
func FileName(r Replay) string {
	return fmt.Sprintf("%s-stage%02d-%s-%s%s",
		r.RecordedAt.UTC().Format("20060102T150405.000"),
		r.Stage, r.Outcome, r.GameID, Ext)
}

// Save writes r into dir, creating dir if needed, and returns the file path.
func Save(dir string, r Replay) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("replay: cannot create directory: %w", err)
	}
	data, err := Encode(r)
	if err != nil {
		return "", err
	}
	path := filepath.Join(dir, FileName(r))
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("replay: cannot write %s: %w", path, err)
	}
	return path, nil
}

// Load reads a replay file.
func Load(path string) (Replay, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Replay{}, fmt.Errorf("replay: cannot read %s: %w", path, err)
	}
	return Decode(data)
}

// Result is the outcome of playing a replay back.
type Result struct {
	State   santa.State
	Outcome string
	Ticks   uint64
	// Matches reports whether the playback ended the way the recording did.
	Matches bool
}

// Run replays r on def with params p. Taps are fed back at their recorded
// tick indices, and the run stops at the recorded tick count plus one
// second of slack.
func Run(r Replay, def stage.Definition, p santa.Params) Result {
	tickRate := r.TickRate
	if tickRate <= 0 {
		tickRate = 60
	}

	var rt *santa.Runtime
	next := 0
	input := santa.InputFunc(func() bool {
		for next < len(r.Taps) && r.Taps[next] < rt.Ticks() {
			next++
		}
		if next < len(r.Taps) && r.Taps[next] == rt.Ticks() {
			next++
			return true
		}
		return false
	})

	var outcome string
	listener := santa.ListenerFunc(func(o santa.Outcome) {
		outcome = o.Kind.String()
	})

	rt = santa.NewRuntime(def, p, santa.Deps{Input: input, Listener: listener, Seed: r.Seed})
	state := santa.Drive(rt, 1.0/float64(tickRate), r.Ticks+uint64(tickRate))

	return Result{
		State:   state,
		Outcome: outcome,
		Ticks:   rt.Ticks(),
		Matches: outcome == r.Outcome && rt.Ticks() == r.Ticks,
	}
}
