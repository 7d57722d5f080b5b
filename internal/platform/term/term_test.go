package term

import (
	"context"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/vovakirdan/santa-delivery/internal/core"
)

type countingGame struct {
	steps chan core.InputFrame
	over  bool
}

func (g *countingGame) ID() string { return "counting" }
func (g *countingGame) Title() string { return "Counting" }
func (g *countingGame) Reset(core.RuntimeConfig) {}
func (g *countingGame) State() core.GameState { return core.GameState{Over: g.over} }
func (g *countingGame) Render(dst *core.Screen) { dst.DrawText(0, 0, "hi") }
func (g *countingGame) Step(in core.InputFrame) core.StepResult {
	select {
	case g.steps <- in:
	default:
	}
	return core.StepResult{State: g.State()}
}

func simScreen(t *testing.T) tcell.SimulationScreen {
	t.Helper()
	s := tcell.NewSimulationScreen("")
	if err := s.Init(); err != nil {
		t.Fatalf("Init() error: %v", err)
	}
	s.SetSize(20, 6)
	t.Cleanup(s.Fini)
	return s
}

func runAsync(ctx context.Context, s tcell.Screen, g *countingGame) chan bool {
	done := make(chan bool, 1)
	go func() {
		done <- RunOn(ctx, s, g, nil, core.RuntimeConfig{TickRate: 200, Seed: 1})
	}()
	return done
}

func waitDone(t *testing.T, done chan bool) bool {
	t.Helper()
	select {
	case back := <-done:
		return back
	case <-time.After(5 * time.Second):
		t.Fatal("RunOn did not return")
		return false
	}
}

func TestRunOnQuitKey(t *testing.T) {
	s := simScreen(t)
	g := &countingGame{steps: make(chan core.InputFrame, 1)}
	done := runAsync(context.Background(), s, g)

	<-g.steps
	s.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)

	if waitDone(t, done) {
		t.Error("q should quit, not go back")
	}
}

func TestRunOnBackWhenOver(t *testing.T) {
	s := simScreen(t)
	g := &countingGame{steps: make(chan core.InputFrame, 1), over: true}
	done := runAsync(context.Background(), s, g)

	<-g.steps
	s.InjectKey(tcell.KeyEnter, 0, tcell.ModNone)

	if !waitDone(t, done) {
		t.Error("enter after the session ended should go back")
	}
}

func TestRunOnContextCancel(t *testing.T) {
	s := simScreen(t)
	g := &countingGame{steps: make(chan core.InputFrame, 1)}
	ctx, cancel := context.WithCancel(context.Background())
	done := runAsync(ctx, s, g)

	<-g.steps
	cancel()
	waitDone(t, done)
}

func TestDraw(t *testing.T) {
	s := simScreen(t)
	buf := core.NewScreen(20, 6)
	buf.SetColored(3, 2, '▲', core.ColorBrightRed)

	Draw(s, buf)

	r, _, style, _ := s.GetContent(3, 2)
	if r != '▲' {
		t.Errorf("GetContent(3, 2) = %q, expected '▲'", r)
	}
	if fg, _, _ := style.Decompose(); fg != tcell.ColorRed {
		t.Errorf("foreground = %v, expected red", fg)
	}
}

func TestMapKey(t *testing.T) {
	tests := []struct {
		ev     *tcell.EventKey
		action core.Action
		quit   bool
	}{
		{tcell.NewEventKey(tcell.KeyRune, ' ', tcell.ModNone), core.ActionJump, false},
		{tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModNone), core.ActionJump, false},
		{tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone), core.ActionConfirm, false},
		{tcell.NewEventKey(tcell.KeyRune, 'r', tcell.ModNone), core.ActionRestart, false},
		{tcell.NewEventKey(tcell.KeyRune, 'p', tcell.ModNone), core.ActionPause, false},
		{tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModCtrl), core.ActionQuit, true},
		{tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone), core.ActionNone, false},
	}

	for _, tt := range tests {
		action, quit := mapKey(tt.ev)
		if action != tt.action || quit != tt.quit {
			t.Errorf("mapKey(%v) = %v, %v, expected %v, %v", tt.ev.Name(), action, quit, tt.action, tt.quit)
		}
	}
}
