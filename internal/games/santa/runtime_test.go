package santa

import (
	"errors"
	"math"
	"testing"

	"github.com/vovakirdan/santa-delivery/internal/core"
	"github.com/vovakirdan/santa-delivery/internal/stage"
)

// scriptedInput taps on the listed poll numbers (0-based) and counts polls.
type scriptedInput struct {
	taps  map[int]bool
	polls int
}

func tapsAt(polls ...int) *scriptedInput {
	in := &scriptedInput{taps: make(map[int]bool)}
	for _, p := range polls {
		in.taps[p] = true
	}
	return in
}

func (s *scriptedInput) PollTapEdge() bool {
	tapped := s.taps[s.polls]
	s.polls++
	return tapped
}

type outcomeRecorder struct {
	outcomes []Outcome
}

func (r *outcomeRecorder) OnOutcome(o Outcome) {
	r.outcomes = append(r.outcomes, o)
}

func (r *outcomeRecorder) count(kind OutcomeKind) int {
	n := 0
	for _, o := range r.outcomes {
		if o.Kind == kind {
			n++
		}
	}
	return n
}

func mustStage(t *testing.T, n int) stage.Definition {
	t.Helper()
	c, err := stage.Default()
	if err != nil {
		t.Fatalf("stage.Default() error = %v", err)
	}
	def, err := c.Get(n)
	if err != nil {
		t.Fatalf("Get(%d) error = %v", n, err)
	}
	return def
}

// placeOverPlayer moves obstacle i so it overlaps the player's spawn box.
func placeOverPlayer(rt *Runtime, i int) {
	o := rt.loop.obstacles[i]
	o.pos = core.Vec{X: rt.params.Spawn.X - 4, Y: rt.params.Spawn.Y + 4}
	o.origin = o.pos
}

func TestZeroObstacleStageClears(t *testing.T) {
	p := DefaultParams()
	rec := &outcomeRecorder{}
	rt := NewRuntime(stage.NewDefinition(1), p, Deps{Input: tapsAt(0), Listener: rec, Seed: 1})
	rt.Start()

	const dt = 1.0
	travel := p.Spawn.Y - p.Goal.Bottom()
	limit := uint64(math.Ceil(travel / (p.VerticalSpeed * dt)))

	for rt.State() == StateRunning && rt.Ticks() < limit+5 {
		if err := rt.Tick(dt); err != nil {
			t.Fatalf("Tick() error = %v", err)
		}
	}

	if rt.State() != StateCleared {
		t.Fatalf("state = %v, expected cleared", rt.State())
	}
	if rt.Ticks() > limit {
		t.Errorf("cleared after %d ticks, expected at most %d", rt.Ticks(), limit)
	}
	if rec.count(OutcomeSuccess) != 1 || len(rec.outcomes) != 1 {
		t.Errorf("outcomes = %+v, expected exactly one success", rec.outcomes)
	}
	if got := rec.outcomes[0].Taps; len(got) != 1 || got[0] != 0 {
		t.Errorf("recorded taps = %v, expected [0]", got)
	}
}

func TestStationaryOverlapFailsOnFirstTick(t *testing.T) {
	def := stage.NewDefinition(1, stage.ObstacleSpec{Direction: stage.DirLeft, Speed: 50, Pattern: stage.PatternLinear})
	rec := &outcomeRecorder{}
	rt := NewRuntime(def, DefaultParams(), Deps{Listener: rec, Seed: 3})
	placeOverPlayer(rt, 0)
	rt.Start()

	if err := rt.Tick(1.0 / 60); err != nil {
		t.Fatalf("Tick() error = %v", err)
	}

	if rt.State() != StateFailed {
		t.Fatalf("state = %v, expected failed", rt.State())
	}
	if rec.count(OutcomeFail) != 1 {
		t.Errorf("fail outcomes = %d, expected 1", rec.count(OutcomeFail))
	}
	if rec.outcomes[0].Message == "" {
		t.Error("fail outcome should carry a message")
	}
}

func TestObstacleHitTakesPrecedenceOverGoal(t *testing.T) {
	def := stage.NewDefinition(1, stage.ObstacleSpec{Direction: stage.DirLeft, Speed: 50, Pattern: stage.PatternLinear})
	rt := NewRuntime(def, DefaultParams(), Deps{Seed: 3})

	goal := rt.loop.goal.Rect()
	rt.loop.player.pos = core.Vec{X: goal.X + 10, Y: goal.Y + 10}
	o := rt.loop.obstacles[0]
	o.pos = core.Vec{X: goal.X + 5, Y: goal.Y + 15}
	rt.Start()

	if err := rt.Tick(1.0 / 60); err != nil {
		t.Fatalf("Tick() error = %v", err)
	}
	if rt.State() != StateFailed {
		t.Errorf("state = %v, expected failed when goal and obstacle overlap together", rt.State())
	}
}

func TestStopIsIdempotent(t *testing.T) {
	def := stage.NewDefinition(1, stage.ObstacleSpec{Direction: stage.DirLeft, Speed: 50, Pattern: stage.PatternLinear})
	rec := &outcomeRecorder{}
	rt := NewRuntime(def, DefaultParams(), Deps{Listener: rec, Seed: 3})
	placeOverPlayer(rt, 0)
	rt.Start()
	_ = rt.Tick(1.0 / 60)

	rt.Stop()
	rt.Stop()
	for i := 0; i < 10; i++ {
		_ = rt.Tick(1.0 / 60)
	}

	if rt.State() != StateFailed {
		t.Errorf("state = %v, expected failed", rt.State())
	}
	if len(rec.outcomes) != 1 {
		t.Errorf("outcomes = %d, expected exactly 1", len(rec.outcomes))
	}
	if rt.Ticks() != 1 {
		t.Errorf("ticks = %d, expected 1", rt.Ticks())
	}
}

func TestStopWhileRunningEmitsNothing(t *testing.T) {
	rec := &outcomeRecorder{}
	rt := NewRuntime(mustStage(t, 3), DefaultParams(), Deps{Listener: rec, Seed: 9})
	rt.Start()
	_ = rt.Tick(1.0 / 60)

	before := rt.Positions()
	rt.Stop()
	_ = rt.Tick(1.0 / 60)
	rt.Stop()

	if len(rec.outcomes) != 0 {
		t.Errorf("outcomes = %+v, expected none", rec.outcomes)
	}
	if after := rt.Positions(); after.Player != before.Player || after.Obstacles[0] != before.Obstacles[0] {
		t.Error("a stopped runtime should not move")
	}
	if rt.State() != StateRunning || !rt.Stopped() {
		t.Errorf("state = %v stopped = %v", rt.State(), rt.Stopped())
	}
}

func TestTapDrainedWhenNotRunning(t *testing.T) {
	in := tapsAt(0)
	rt := NewRuntime(stage.NewDefinition(1), DefaultParams(), Deps{Input: in, Seed: 1})

	if err := rt.Tick(1.0 / 60); err != nil {
		t.Fatal(err)
	}
	if in.polls != 1 {
		t.Errorf("polls = %d, expected the tap to be drained once", in.polls)
	}

	rt.Start()
	_ = rt.Tick(1.0 / 60)
	if rt.Ascending() {
		t.Error("a tap drained before Start must not start an ascent")
	}
}

func TestInvariantViolationRollsBackTick(t *testing.T) {
	rec := &outcomeRecorder{}
	rt := NewRuntime(mustStage(t, 2), DefaultParams(), Deps{Listener: rec, Seed: 5})
	rt.Start()
	_ = rt.Tick(1.0 / 60)

	before := rt.Positions()
	rt.loop.obstacles[0].speed = math.NaN()

	err := rt.Tick(1.0 / 60)
	if !errors.Is(err, ErrInvariantViolation) {
		t.Fatalf("Tick() error = %v, expected ErrInvariantViolation", err)
	}
	if rt.State() != StateRunning {
		t.Errorf("state = %v, expected running", rt.State())
	}
	if rt.Ticks() != 1 {
		t.Errorf("ticks = %d, expected the aborted tick not to count", rt.Ticks())
	}
	after := rt.Positions()
	for i := range before.Obstacles {
		if after.Obstacles[i] != before.Obstacles[i] {
			t.Errorf("obstacle %d moved in an aborted tick", i)
		}
	}
	if len(rec.outcomes) != 0 {
		t.Error("an invariant violation must not produce an outcome")
	}
}

func TestRuntimeIsDeterministic(t *testing.T) {
	run := func(seed int64) Snapshot {
		rt := NewRuntime(mustStage(t, 12), DefaultParams(), Deps{Input: tapsAt(0, 40), Seed: seed})
		rt.Start()
		for i := 0; i < 90 && rt.State() == StateRunning; i++ {
			_ = rt.Tick(1.0 / 60)
		}
		return rt.Positions()
	}

	a, b := run(42), run(42)
	if a.Player != b.Player {
		t.Errorf("player differs for equal seeds: %v vs %v", a.Player, b.Player)
	}
	for i := range a.Obstacles {
		if a.Obstacles[i] != b.Obstacles[i] {
			t.Errorf("obstacle %d differs for equal seeds", i)
		}
	}

	if c := run(43); c.Obstacles[0] == a.Obstacles[0] {
		t.Error("different seeds should give different layouts")
	}
}

func TestSpawnPositionsRespectMargins(t *testing.T) {
	p := DefaultParams()
	for seed := int64(0); seed < 50; seed++ {
		def := mustStage(t, 15)
		rt := NewRuntime(def, p, Deps{Seed: seed})
		specs := def.Obstacles()

		for i, r := range rt.Positions().Obstacles {
			margin := p.MarginX
			if !specs[i].Direction.Horizontal() {
				margin *= 2
			}
			if r.X < margin || r.Right() > p.Field.W-margin {
				t.Fatalf("seed %d obstacle %d x=%v outside horizontal margins", seed, i, r.X)
			}
			if r.Y < p.MarginTop || r.Y > p.Field.H-p.MarginBottom {
				t.Fatalf("seed %d obstacle %d y=%v outside vertical margins", seed, i, r.Y)
			}
		}
	}
}

type countingRenderer map[EntityKind]int

func (c countingRenderer) Draw(kind EntityKind, _ core.Rect) {
	c[kind]++
}

func TestRenderDrawsEveryEntityOnce(t *testing.T) {
	rt := NewRuntime(mustStage(t, 7), DefaultParams(), Deps{Seed: 1})
	counts := countingRenderer{}
	rt.Render(counts)

	if counts[EntityPlayer] != 1 || counts[EntityGoal] != 1 || counts[EntityObstacle] != 5 {
		t.Errorf("draw counts = %v, expected 1 player, 1 goal, 5 obstacles", counts)
	}
}
