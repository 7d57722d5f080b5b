package sink

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/vovakirdan/santa-delivery/internal/core"
	"github.com/vovakirdan/santa-delivery/internal/replay"
	"github.com/vovakirdan/santa-delivery/internal/storage"
)

type cueRecorder struct {
	kinds []string
}

func (c *cueRecorder) Play(kind string) { c.kinds = append(c.kinds, kind) }

type failingStore struct {
	calls int
}

func (f *failingStore) RecordAttempt(storage.Attempt) (int64, error) {
	f.calls++
	return 0, errors.New("disk full")
}

func TestHandleFansOutTerminalEvents(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "attempts.db"))
	if err != nil {
		t.Fatalf("storage.Open() error: %v", err)
	}
	defer store.Close()

	cues := &cueRecorder{}
	dir := filepath.Join(t.TempDir(), "replays")
	f := New(Options{Cues: cues, Store: store, ReplayDir: dir, GameID: "santa", TickRate: 60})

	f.Handle([]core.Event{
		{Kind: core.EventFail, Stage: 3, Ticks: 90, Seed: 5, Taps: []uint64{0, 30}},
		{Kind: core.EventIntermediate, Stage: 3, Message: "keep going"},
		{Kind: core.EventSuccess, Stage: 3, Ticks: 120, Seed: 6, Taps: []uint64{2}},
	})

	if len(cues.kinds) != 3 {
		t.Errorf("cues played = %v, expected one per event", cues.kinds)
	}

	stats, err := store.StageStats("santa")
	if err != nil {
		t.Fatalf("StageStats() error: %v", err)
	}
	if len(stats) != 1 || stats[0].Attempts != 2 || stats[0].Fails != 1 || stats[0].Clears != 1 {
		t.Errorf("StageStats() = %+v, expected 2 attempts on stage 3", stats)
	}

	recent, err := store.RecentAttempts("santa", 10)
	if err != nil {
		t.Fatalf("RecentAttempts() error: %v", err)
	}
	for _, a := range recent {
		if a.RunID != f.RunID() {
			t.Errorf("attempt run ID = %q, expected %q", a.RunID, f.RunID())
		}
	}

	saved := f.Saved()
	if len(saved) != 2 {
		t.Fatalf("Saved() = %v, expected 2 replays", saved)
	}
	r, err := replay.Load(saved[0])
	if err != nil {
		t.Fatalf("replay.Load() error: %v", err)
	}
	if r.Outcome != core.EventFail || r.Seed != 5 || len(r.Taps) != 2 || r.TickRate != 60 {
		t.Errorf("saved replay = %+v, expected the fail attempt", r)
	}
}

func TestHandleSurvivesStoreErrors(t *testing.T) {
	store := &failingStore{}
	f := New(Options{Store: store})

	f.Handle([]core.Event{{Kind: core.EventFail, Stage: 1}})

	if store.calls != 1 {
		t.Errorf("RecordAttempt calls = %d, expected 1", store.calls)
	}
	if len(f.Saved()) != 0 {
		t.Error("no replay should be saved without a replay directory")
	}
}

func TestRunIDsDiffer(t *testing.T) {
	if New(Options{}).RunID() == New(Options{}).RunID() {
		t.Error("each Fanout should get its own run ID")
	}
}
