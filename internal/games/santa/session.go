package santa

import (
	"errors"
	"io"
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/santa-delivery/internal/stage"
)

// ErrNoStage is returned by Retry before any stage has begun.
var ErrNoStage = errors.New("santa: no stage has begun")

// intermediateEvery is the stage interval at which an encouragement
// message is shown once per session.
const intermediateEvery = 3

// SessionOptions configure a Session.
type SessionOptions struct {
	Catalog  *stage.Catalog
	Params   Params
	Seed     int64
	Input    InputSource
	Listener OutcomeListener
	Logger   *log.Logger
}

// Session tracks progression through the catalog for one play session.
// Progress lives in memory only.
type Session struct {
	catalog  *stage.Catalog
	params   Params
	rng      *rand.Rand
	input    InputSource
	listener OutcomeListener
	logger   *log.Logger

	current    int
	shown      map[int]bool
	allCleared bool
}

// NewSession creates a session. Runtimes it creates draw their seeds from
// an RNG seeded with opts.Seed.
func NewSession(opts SessionOptions) *Session {
	if opts.Listener == nil {
		opts.Listener = noListener{}
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	return &Session{
		catalog:  opts.Catalog,
		params:   opts.Params,
		rng:      rand.New(rand.NewSource(opts.Seed)),
		input:    opts.Input,
		listener: opts.Listener,
		logger:   opts.Logger,
		shown:    make(map[int]bool),
	}
}

// Begin creates a ready runtime for stage n. A stage outside the catalog
// returns a *stage.ConfigurationError and leaves the session unchanged.
func (s *Session) Begin(n int) (*Runtime, error) {
	def, err := s.catalog.Get(n)
	if err != nil {
		s.logger.Warn("cannot begin stage", "stage", n, "err", err)
		return nil, err
	}

	s.current = n
	rt := NewRuntime(def, s.params, Deps{
		Input:    s.input,
		Listener: s.listener,
		Logger:   s.logger,
		Seed:     s.rng.Int63(),
	})

	if n%intermediateEvery == 0 && !s.shown[n] {
		s.shown[n] = true
		s.listener.OnOutcome(Outcome{
			Kind:    OutcomeIntermediate,
			Stage:   n,
			Message: PickMessage(OutcomeIntermediate, s.rng),
		})
	}
	return rt, nil
}

// Retry creates a fresh runtime for the current stage.
func (s *Session) Retry() (*Runtime, error) {
	if s.current == 0 {
		return nil, ErrNoStage
	}
	return s.Begin(s.current)
}

// Advance begins the next stage. Past the last stage it emits the
// all-cleared outcome and returns (nil, true, nil).
func (s *Session) Advance() (*Runtime, bool, error) {
	next := s.current + 1
	if next > s.catalog.Len() {
		if !s.allCleared {
			s.allCleared = true
			s.logger.Info("all stages cleared", "stages", s.catalog.Len())
			s.listener.OnOutcome(Outcome{
				Kind:    OutcomeAllCleared,
				Stage:   s.current,
				Message: AllClearedMessage,
			})
		}
		return nil, true, nil
	}

	rt, err := s.Begin(next)
	return rt, false, err
}

// Current returns the current 1-based stage number, or 0 before Begin.
func (s *Session) Current() int { return s.current }

// AllCleared reports whether the session has advanced past the last stage.
func (s *Session) AllCleared() bool { return s.allCleared }

// Catalog returns the session's stage catalog.
func (s *Session) Catalog() *stage.Catalog { return s.catalog }
