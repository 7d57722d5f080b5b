// Package sink fans game events out to the log, the audio cues, the attempt
// store and the replay directory. Every output is optional and failures are
// logged, never returned, so a broken disk or sound card cannot stop play.
package sink

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/santa-delivery/internal/core"
	"github.com/vovakirdan/santa-delivery/internal/replay"
	"github.com/vovakirdan/santa-delivery/internal/storage"
)

// Player plays an audio cue for an event kind.
type Player interface {
	Play(kind string)
}

// Recorder stores terminal attempts.
type Recorder interface {
	RecordAttempt(a storage.Attempt) (int64, error)
}

// Options configure a Fanout.
type Options struct {
	Logger     *log.Logger
	Cues       Player
	Store      Recorder
	ReplayDir  string // empty disables replay recording
	GameID     string
	TickRate   int
	Difficulty string
}

// Fanout delivers events to every configured output.
type Fanout struct {
	opts  Options
	runID string
	saved []string
}

// New creates a Fanout with a fresh run ID.
func New(opts Options) *Fanout {
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	return &Fanout{opts: opts, runID: uuid.NewString()}
}

// RunID identifies this play session in the attempt store.
func (f *Fanout) RunID() string { return f.runID }

// Saved returns the replay files written so far.
func (f *Fanout) Saved() []string { return f.saved }

// Handle processes the events of one step.
func (f *Fanout) Handle(events []core.Event) {
	for _, e := range events {
		f.handle(e)
	}
}

func (f *Fanout) handle(e core.Event) {
	logger := f.opts.Logger
	logger.Info(e.Kind, "stage", e.Stage, "message", e.Message)

	if f.opts.Cues != nil {
		f.opts.Cues.Play(e.Kind)
	}
	if !e.Terminal() {
		return
	}

	if f.opts.Store != nil {
		_, err := f.opts.Store.RecordAttempt(storage.Attempt{
			RunID:   f.runID,
			GameID:  f.opts.GameID,
			Stage:   e.Stage,
			Outcome: e.Kind,
			Ticks:   e.Ticks,
			Seed:    e.Seed,
		})
		if err != nil {
			logger.Warn("cannot record attempt", "stage", e.Stage, "err", err)
		}
	}

	if f.opts.ReplayDir != "" {
		r := replay.FromEvent(e, f.opts.GameID, f.opts.TickRate, f.opts.Difficulty)
		path, err := replay.Save(f.opts.ReplayDir, r)
		if err != nil {
			logger.Warn("cannot save replay", "stage", e.Stage, "err", err)
			return
		}
		f.saved = append(f.saved, path)
		logger.Debug("replay saved", "path", path)
	}
}
