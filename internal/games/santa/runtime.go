package santa

import (
	"io"
	"math"
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/santa-delivery/internal/core"
	"github.com/vovakirdan/santa-delivery/internal/stage"
)

// State is the lifecycle state of a StageRuntime.
type State int

const (
	StateReady State = iota
	StateRunning
	StateFailed
	StateCleared
)

func (s State) String() string {
	switch s {
	case StateReady:
		return "ready"
	case StateRunning:
		return "running"
	case StateFailed:
		return "failed"
	case StateCleared:
		return "cleared"
	default:
		return "unknown"
	}
}

// Terminal reports whether the attempt has ended.
func (s State) Terminal() bool {
	return s == StateFailed || s == StateCleared
}

// Deps are the collaborators injected into a Runtime. Nil members are
// replaced with no-op implementations.
type Deps struct {
	Input    InputSource
	Listener OutcomeListener
	Logger   *log.Logger
	Seed     int64
}

// Snapshot holds the entity boxes of a runtime at one instant.
type Snapshot struct {
	Player    core.Rect
	Goal      core.Rect
	Obstacles []core.Rect
}

// Runtime drives one attempt at one stage.
type Runtime struct {
	def      stage.Definition
	params   Params
	loop     *Loop
	rng      *rand.Rand
	seed     int64
	input    InputSource
	listener OutcomeListener
	logger   *log.Logger

	state   State
	stopped bool
	ticks   uint64
	elapsed float64
	taps    []uint64
}

// NewRuntime builds the entities of def. Obstacle spawn positions come from
// an RNG seeded with deps.Seed, so equal seeds give equal layouts.
func NewRuntime(def stage.Definition, p Params, deps Deps) *Runtime {
	if deps.Input == nil {
		deps.Input = noInput{}
	}
	if deps.Listener == nil {
		deps.Listener = noListener{}
	}
	if deps.Logger == nil {
		deps.Logger = log.New(io.Discard)
	}

	rng := rand.New(rand.NewSource(deps.Seed))
	minSpeed, maxSpeed := p.speedBounds(def.MinSpeed, def.MaxSpeed)

	specs := def.Obstacles()
	obstacles := make([]*Obstacle, len(specs))
	for i, spec := range specs {
		obstacles[i] = newObstacle(spec, spawnPoint(spec, p, rng), p, minSpeed, maxSpeed)
	}

	return &Runtime{
		def:    def,
		params: p,
		loop: &Loop{
			field:     p.Field,
			player:    newPlayer(p),
			obstacles: obstacles,
			goal:      Goal{rect: p.Goal},
			drift:     p.Drift,
			rng:       rng,
		},
		rng:      rng,
		seed:     deps.Seed,
		input:    deps.Input,
		listener: deps.Listener,
		logger:   deps.Logger,
	}
}

// spawnPoint picks an obstacle's top-left corner. Vertically moving blocks
// keep twice the horizontal margin from the side walls.
func spawnPoint(spec stage.ObstacleSpec, p Params, rng *rand.Rand) core.Vec {
	margin := p.MarginX
	if !spec.Direction.Horizontal() {
		margin *= 2
	}
	x := uniform(rng, p.Field.X+margin, p.Field.Right()-margin-p.ObstacleSize.X)
	y := uniform(rng, p.Field.Y+p.MarginTop, p.Field.Bottom()-p.MarginBottom)
	return clampInto(core.Vec{X: x, Y: y}, p.ObstacleSize, p.Field)
}

func uniform(rng *rand.Rand, lo, hi float64) float64 {
	if hi <= lo {
		return lo
	}
	return lo + rng.Float64()*(hi-lo)
}

// Start moves a ready runtime into Running. It is a no-op in any other state.
func (r *Runtime) Start() {
	if r.state != StateReady || r.stopped {
		return
	}
	r.state = StateRunning
	r.logger.Debug("stage started", "stage", r.def.Number, "seed", r.seed, "obstacles", r.def.ObstacleCount())
}

// Tick polls input once and advances the simulation by dt seconds.
// A tap that arrives while the runtime is not running is drained and
// ignored. On ErrInvariantViolation the tick is rolled back and the state is
// left unchanged.
func (r *Runtime) Tick(dt float64) error {
	tapped := r.input.PollTapEdge()

	if r.state != StateRunning || r.stopped {
		return nil
	}
	if !(dt > 0) || math.IsInf(dt, 0) {
		return nil
	}

	report, err := r.loop.Step(dt, tapped)
	if err != nil {
		r.logger.Error("tick aborted", "stage", r.def.Number, "tick", r.ticks, "err", err)
		return err
	}

	if tapped {
		r.taps = append(r.taps, r.ticks)
	}
	r.ticks++
	r.elapsed += dt

	switch {
	case report.Hit >= 0:
		r.logger.Debug("obstacle hit", "stage", r.def.Number, "obstacle", report.Hit, "tick", r.ticks)
		r.finish(StateFailed, OutcomeFail)
	case report.Goal:
		r.finish(StateCleared, OutcomeSuccess)
	}
	return nil
}

func (r *Runtime) finish(s State, kind OutcomeKind) {
	r.state = s
	taps := make([]uint64, len(r.taps))
	copy(taps, r.taps)

	r.listener.OnOutcome(Outcome{
		Kind:    kind,
		Stage:   r.def.Number,
		Message: PickMessage(kind, r.rng),
		Ticks:   r.ticks,
		Seed:    r.seed,
		Taps:    taps,
	})
}

// Stop halts the runtime without emitting an outcome. It is idempotent and
// leaves terminal states untouched.
func (r *Runtime) Stop() {
	if r.stopped {
		return
	}
	r.stopped = true
	r.logger.Debug("stage stopped", "stage", r.def.Number, "state", r.state, "ticks", r.ticks)
}

// Render draws the goal, every obstacle and the player.
func (r *Runtime) Render(dst Renderer) {
	dst.Draw(EntityGoal, r.loop.goal.Rect())
	for _, o := range r.loop.obstacles {
		dst.Draw(EntityObstacle, o.Rect())
	}
	dst.Draw(EntityPlayer, r.loop.player.Rect())
}

// Positions returns the current entity boxes.
func (r *Runtime) Positions() Snapshot {
	s := Snapshot{
		Player:    r.loop.player.Rect(),
		Goal:      r.loop.goal.Rect(),
		Obstacles: make([]core.Rect, len(r.loop.obstacles)),
	}
	for i, o := range r.loop.obstacles {
		s.Obstacles[i] = o.Rect()
	}
	return s
}

// State returns the lifecycle state.
func (r *Runtime) State() State { return r.state }

// Stopped reports whether Stop was called.
func (r *Runtime) Stopped() bool { return r.stopped }

// Stage returns the stage number.
func (r *Runtime) Stage() int { return r.def.Number }

// Ticks returns the number of completed ticks.
func (r *Runtime) Ticks() uint64 { return r.ticks }

// Elapsed returns simulated seconds.
func (r *Runtime) Elapsed() float64 { return r.elapsed }

// Seed returns the seed the runtime was built with.
func (r *Runtime) Seed() int64 { return r.seed }

// Ascending reports whether Santa is currently moving up.
func (r *Runtime) Ascending() bool { return r.loop.player.Ascending() }
