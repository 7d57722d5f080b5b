package santa

import (
	"errors"
	"testing"

	"github.com/vovakirdan/santa-delivery/internal/stage"
)

func newTestSession(t *testing.T, rec *outcomeRecorder) *Session {
	t.Helper()
	c, err := stage.Default()
	if err != nil {
		t.Fatal(err)
	}
	return NewSession(SessionOptions{
		Catalog:  c,
		Params:   DefaultParams(),
		Seed:     11,
		Listener: rec,
	})
}

func TestBeginPastLastStageIsConfigurationError(t *testing.T) {
	rec := &outcomeRecorder{}
	s := newTestSession(t, rec)

	if _, err := s.Begin(4); err != nil {
		t.Fatal(err)
	}

	rt, err := s.Begin(16)
	var cfgErr *stage.ConfigurationError
	if rt != nil || !errors.As(err, &cfgErr) || !errors.Is(err, stage.ErrStageNotFound) {
		t.Fatalf("Begin(16) = %v, %v; expected a ConfigurationError", rt, err)
	}
	if s.Current() != 4 {
		t.Errorf("Current() = %d, expected a failed Begin to leave it at 4", s.Current())
	}
	if rec.count(OutcomeAllCleared) != 0 {
		t.Error("Begin must never report all cleared")
	}
}

func TestAdvancePastLastStageIsAllCleared(t *testing.T) {
	rec := &outcomeRecorder{}
	s := newTestSession(t, rec)

	if _, err := s.Begin(15); err != nil {
		t.Fatal(err)
	}

	rt, done, err := s.Advance()
	if rt != nil || !done || err != nil {
		t.Fatalf("Advance() = %v, %v, %v; expected nil, true, nil", rt, done, err)
	}
	if rec.count(OutcomeAllCleared) != 1 {
		t.Errorf("all cleared outcomes = %d, expected 1", rec.count(OutcomeAllCleared))
	}

	_, done, _ = s.Advance()
	if !done || rec.count(OutcomeAllCleared) != 1 {
		t.Error("repeated Advance should stay done without a second notification")
	}
	if !s.AllCleared() {
		t.Error("AllCleared() = false")
	}
}

func TestAdvanceMovesToNextStage(t *testing.T) {
	s := newTestSession(t, &outcomeRecorder{})

	if _, err := s.Begin(1); err != nil {
		t.Fatal(err)
	}
	rt, done, err := s.Advance()
	if err != nil || done {
		t.Fatalf("Advance() = %v, %v", done, err)
	}
	if rt.Stage() != 2 || s.Current() != 2 {
		t.Errorf("advanced to stage %d (current %d), expected 2", rt.Stage(), s.Current())
	}
	if rt.State() != StateReady {
		t.Errorf("new runtime state = %v, expected ready", rt.State())
	}
}

func TestRetryBeforeBegin(t *testing.T) {
	s := newTestSession(t, &outcomeRecorder{})
	if _, err := s.Retry(); !errors.Is(err, ErrNoStage) {
		t.Errorf("Retry() error = %v, expected ErrNoStage", err)
	}
}

func TestIntermediateMessageOncePerStage(t *testing.T) {
	rec := &outcomeRecorder{}
	s := newTestSession(t, rec)

	if _, err := s.Begin(2); err != nil {
		t.Fatal(err)
	}
	if rec.count(OutcomeIntermediate) != 0 {
		t.Fatal("stage 2 should not show an intermediate message")
	}

	if _, _, err := s.Advance(); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Retry(); err != nil {
		t.Fatal(err)
	}
	if rec.count(OutcomeIntermediate) != 1 {
		t.Errorf("intermediate outcomes = %d, expected 1 for stage 3 and its retry", rec.count(OutcomeIntermediate))
	}
	if rec.outcomes[0].Stage != 3 {
		t.Errorf("intermediate stage = %d, expected 3", rec.outcomes[0].Stage)
	}
}

func TestSessionSeedsAreDeterministic(t *testing.T) {
	a := newTestSession(t, &outcomeRecorder{})
	b := newTestSession(t, &outcomeRecorder{})

	ra, _ := a.Begin(5)
	rb, _ := b.Begin(5)
	if ra.Seed() != rb.Seed() {
		t.Errorf("seeds differ for equal session seeds: %d vs %d", ra.Seed(), rb.Seed())
	}

	retry, _ := a.Retry()
	if retry.Seed() == ra.Seed() {
		t.Error("a retry should get a fresh seed")
	}
}
