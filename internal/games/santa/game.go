// Package santa implements Santa Delivery: Santa ascends a vertical
// playfield by tapping, dodges moving ice blocks and clears a stage by
// reaching the goal at the top.
//
// The simulation (Runtime, Loop, Session) has no terminal dependency. Game
// adapts it to the registry.Game interface used by the platform backends.
package santa

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/santa-delivery/internal/config"
	"github.com/vovakirdan/santa-delivery/internal/core"
	"github.com/vovakirdan/santa-delivery/internal/registry"
	"github.com/vovakirdan/santa-delivery/internal/stage"
)

// Game IDs.
const (
	GameID        = "santa"
	ClassicGameID = "santa_classic"
)

// noticeSeconds is how long an intermediate message stays on screen.
const noticeSeconds = 2

// AscendForGame returns the ascend policy a game variant plays with.
func AscendForGame(id string) AscendPolicy {
	if id == ClassicGameID {
		return AscendTimed
	}
	return AscendBoundary
}

// tapLatch turns tap actions from input frames into a polled edge.
type tapLatch struct {
	pending bool
}

func (t *tapLatch) PollTapEdge() bool {
	tapped := t.pending
	t.pending = false
	return tapped
}

// Game adapts a Session to registry.Game.
type Game struct {
	id     string
	title  string
	ascend AscendPolicy
	logger *log.Logger

	config  core.RuntimeConfig
	session *Session
	runtime *Runtime
	tap     tapLatch
	events  []core.Event

	banner      *Outcome
	notice      string
	noticeTicks int
	paused      bool
	allCleared  bool
	setupErr    error
}

// New creates the default variant, where an ascent lasts until the top.
func New() *Game {
	return &Game{
		id:     GameID,
		title:  "Santa Delivery",
		ascend: AscendBoundary,
		logger: log.New(io.Discard),
	}
}

// NewClassic creates the variant where each tap ascends for a short time.
func NewClassic() *Game {
	return &Game{
		id:     ClassicGameID,
		title:  "Santa Delivery (classic tap)",
		ascend: AscendTimed,
		logger: log.New(io.Discard),
	}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string { return g.id }

// Title returns the display name for this game.
func (g *Game) Title() string { return g.title }

// SetLogger sets the logger used by the game and its runtimes.
func (g *Game) SetLogger(l *log.Logger) {
	if l != nil {
		g.logger = l
	}
}

// Reset loads configuration and the stage catalog and begins
// cfg.StartStage. Any setup problem leaves the game in an error state that
// renders the problem instead of a stage.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	if g.runtime != nil {
		g.runtime.Stop()
	}
	*g = Game{id: g.id, title: g.title, ascend: g.ascend, logger: g.logger, config: cfg}

	params, catalog, err := Load(cfg, g.ascend)
	if err != nil {
		g.fail(err)
		return
	}

	g.session = NewSession(SessionOptions{
		Catalog:  catalog,
		Params:   params,
		Seed:     cfg.Seed,
		Input:    &g.tap,
		Listener: ListenerFunc(g.onOutcome),
		Logger:   g.logger,
	})

	start := cfg.StartStage
	if start <= 0 {
		start = 1
	}
	rt, err := g.session.Begin(start)
	if err != nil {
		g.fail(err)
		return
	}
	g.start(rt)
}

// Load resolves the game config, difficulty preset and stage catalog named
// by cfg into simulation parameters for the given ascend policy.
func Load(cfg core.RuntimeConfig, ascend AscendPolicy) (Params, *stage.Catalog, error) {
	sc, err := config.LoadSanta(cfg.ConfigPath)
	if err != nil {
		return Params{}, nil, err
	}
	preset, err := config.ParsePreset(cfg.Difficulty)
	if err != nil {
		return Params{}, nil, err
	}
	config.ApplySantaPreset(&sc, preset)
	sc.Ascend.Policy = ascend.String()

	params, err := ParamsFromConfig(sc)
	if err != nil {
		return Params{}, nil, err
	}

	catalog, err := stage.Load(cfg.StagesPath)
	if err != nil {
		return Params{}, nil, err
	}
	return params, catalog, nil
}

func (g *Game) fail(err error) {
	g.setupErr = err
	g.logger.Error("stage setup failed", "game", g.id, "err", err)
}

func (g *Game) start(rt *Runtime) {
	if g.runtime != nil {
		g.runtime.Stop()
	}
	g.tap.pending = false
	g.banner = nil
	g.paused = false
	g.runtime = rt
	rt.Start()
}

func (g *Game) onOutcome(o Outcome) {
	g.events = append(g.events, o.Event())

	switch o.Kind {
	case OutcomeIntermediate:
		g.notice = o.Message
		g.noticeTicks = noticeSeconds * g.tickRate()
	default:
		g.banner = &o
	}
}

func (g *Game) tickRate() int {
	if g.config.TickRate <= 0 {
		return 60
	}
	return g.config.TickRate
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.setupErr != nil || g.allCleared || g.runtime == nil {
		return g.result()
	}

	if in.Has(core.ActionPause) && g.runtime.State() == StateRunning {
		g.paused = !g.paused
	}
	if g.paused {
		return g.result()
	}

	if in.Has(core.ActionRestart) {
		g.retry()
		return g.result()
	}

	switch g.runtime.State() {
	case StateRunning:
		if in.Has(core.ActionJump) {
			g.tap.pending = true
		}
		// Invariant violations are logged by the runtime and the tick is
		// simply dropped.
		_ = g.runtime.Tick(g.config.DeltaTime())
		if g.noticeTicks > 0 {
			g.noticeTicks--
		}
	case StateFailed:
		// Taps still held from the crash must not start the next attempt.
		if in.Has(core.ActionConfirm) {
			g.retry()
		}
	case StateCleared:
		if in.Has(core.ActionConfirm) {
			g.advance()
		}
	}

	return g.result()
}

func (g *Game) retry() {
	rt, err := g.session.Retry()
	if err != nil {
		g.fail(err)
		return
	}
	g.start(rt)
}

func (g *Game) advance() {
	rt, done, err := g.session.Advance()
	switch {
	case err != nil:
		g.fail(err)
	case done:
		g.runtime.Stop()
		g.allCleared = true
	default:
		g.start(rt)
	}
}

func (g *Game) result() core.StepResult {
	res := core.StepResult{State: g.State()}
	if len(g.events) > 0 {
		res.Events = g.events
		g.events = nil
	}
	return res
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	st := core.GameState{Paused: g.paused}
	switch {
	case g.setupErr != nil:
		st.Phase = "error"
		st.Over = true
	case g.allCleared:
		st.Phase = "all_cleared"
		st.Over = true
	case g.runtime != nil:
		st.Phase = g.runtime.State().String()
	}
	if g.session != nil {
		st.Stage = g.session.Current()
	}
	return st
}

// Runtime returns the active stage runtime, or nil.
func (g *Game) Runtime() *Runtime { return g.runtime }

// Err returns the setup error, if any.
func (g *Game) Err() error { return g.setupErr }

func init() {
	registry.Register(GameID, func() registry.Game {
		return New()
	})
	registry.Register(ClassicGameID, func() registry.Game {
		return NewClassic()
	})
}
