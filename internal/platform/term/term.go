// Package term is a raw tcell backend for playing without Bubble Tea. It
// owns the whole terminal and runs the tick loop itself.
package term

import (
	"context"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/vovakirdan/santa-delivery/internal/core"
	"github.com/vovakirdan/santa-delivery/internal/registry"
)

// EventHandler receives the events produced by each step.
type EventHandler interface {
	Handle(events []core.Event)
}

var palette = map[core.Color]tcell.Color{
	core.ColorRed:          tcell.ColorMaroon,
	core.ColorGreen:        tcell.ColorGreen,
	core.ColorYellow:       tcell.ColorOlive,
	core.ColorBlue:         tcell.ColorNavy,
	core.ColorCyan:         tcell.ColorTeal,
	core.ColorWhite:        tcell.ColorSilver,
	core.ColorBrightRed:    tcell.ColorRed,
	core.ColorBrightGreen:  tcell.ColorLime,
	core.ColorBrightYellow: tcell.ColorYellow,
	core.ColorBrightCyan:   tcell.ColorAqua,
	core.ColorBrightWhite:  tcell.ColorWhite,
	core.ColorGray:         tcell.ColorGray,
}

func styleFor(c core.Color) tcell.Style {
	if tc, ok := palette[c]; ok {
		return tcell.StyleDefault.Foreground(tc)
	}
	return tcell.StyleDefault
}

// mapKey translates a tcell key event. The second result is true for quit
// keys.
func mapKey(ev *tcell.EventKey) (core.Action, bool) {
	switch ev.Key() {
	case tcell.KeyCtrlC:
		return core.ActionQuit, true
	case tcell.KeyUp:
		return core.ActionJump, false
	case tcell.KeyEnter:
		return core.ActionConfirm, false
	case tcell.KeyEscape:
		return core.ActionBack, false
	case tcell.KeyRune:
		switch ev.Rune() {
		case ' ', 'w', 'k':
			return core.ActionJump, false
		case 'n':
			return core.ActionConfirm, false
		case 'p':
			return core.ActionPause, false
		case 'r':
			return core.ActionRestart, false
		case 'b':
			return core.ActionBack, false
		case 'q':
			return core.ActionQuit, true
		}
	}
	return core.ActionNone, false
}

// Run opens the terminal and plays game until the player quits, goes back
// or ctx is cancelled. It reports whether the player asked for the menu.
func Run(ctx context.Context, game registry.Game, events EventHandler, cfg core.RuntimeConfig) (bool, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return false, err
	}
	if err := screen.Init(); err != nil {
		return false, err
	}
	defer screen.Fini()

	return RunOn(ctx, screen, game, events, cfg), nil
}

// RunOn plays game on an initialized screen. The caller owns the screen.
func RunOn(ctx context.Context, screen tcell.Screen, game registry.Game, events EventHandler, cfg core.RuntimeConfig) bool {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = 60
	}
	cfg.ScreenW, cfg.ScreenH = screen.Size()
	buf := core.NewScreen(cfg.ScreenW, cfg.ScreenH)

	game.Reset(cfg)
	state := game.State()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	input := make(chan tcell.Event, 64)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case input <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()

	ticker := time.NewTicker(time.Second / time.Duration(cfg.TickRate))
	defer ticker.Stop()

	frame := core.NewInputFrame()
	for {
		select {
		case <-ctx.Done():
			return false

		case ev := <-input:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				action, quit := mapKey(ev)
				if quit {
					return false
				}
				if action == core.ActionBack || (state.Over && action == core.ActionConfirm) {
					return true
				}
				if action != core.ActionNone {
					frame.Set(action)
				}
			case *tcell.EventResize:
				w, h := ev.Size()
				buf.Resize(w, h)
				screen.Sync()
			}

		case <-ticker.C:
			res := game.Step(frame)
			frame.Clear()
			state = res.State
			if events != nil && len(res.Events) > 0 {
				events.Handle(res.Events)
			}
			game.Render(buf)
			Draw(screen, buf)
		}
	}
}

// Draw copies buf onto screen and shows it.
func Draw(screen tcell.Screen, buf *core.Screen) {
	screen.Clear()
	for y := 0; y < buf.Height(); y++ {
		for x := 0; x < buf.Width(); x++ {
			c := buf.GetCell(x, y)
			screen.SetContent(x, y, c.Rune, nil, styleFor(c.Color))
		}
	}
	screen.Show()
}
