package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/santa-delivery/internal/audio"
	"github.com/vovakirdan/santa-delivery/internal/core"
	"github.com/vovakirdan/santa-delivery/internal/games/santa"
	"github.com/vovakirdan/santa-delivery/internal/platform/sink"
	"github.com/vovakirdan/santa-delivery/internal/platform/term"
	"github.com/vovakirdan/santa-delivery/internal/platform/tui"
	"github.com/vovakirdan/santa-delivery/internal/registry"
	"github.com/vovakirdan/santa-delivery/internal/storage"
)

// Rendering backends.
const (
	backendTUI   = "tui"
	backendTcell = "tcell"
)

var (
	flagClassic bool
	flagBackend string
	flagMute    bool
	flagVolume  float64
	flagRecord  string
)

var playCmd = &cobra.Command{
	Use:   "play [stage]",
	Short: "Play from a stage",
	Long: `Start playing from the given stage (default 1).

Controls:
  Space/Up/W  - Tap: fly up
  P           - Pause
  R           - Retry the stage
  Enter/N     - Next stage after a clear, retry after a crash
  Esc/B       - Back to the menu
  Q/Ctrl+C    - Quit
  Ctrl+S      - Save a text screenshot (tui backend)

Variants:
  default    - One tap flies Santa all the way up
  --classic  - Each tap flies for a short burst; keep tapping

Examples:
  santa play
  santa play 7 --difficulty easy
  santa play --classic --backend tcell
  santa play 3 --record ./replays --seed 42`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func init() {
	playCmd.Flags().BoolVar(&flagClassic, "classic", false, "Classic tap: each tap ascends for a short time")
	playCmd.Flags().StringVar(&flagBackend, "backend", backendTUI, "Rendering backend: tui or tcell")
	playCmd.Flags().BoolVar(&flagMute, "mute", false, "Disable audio cues")
	playCmd.Flags().Float64Var(&flagVolume, "volume", 0.6, "Audio cue volume between 0 and 1")
	playCmd.Flags().StringVar(&flagRecord, "record", "", "Directory to save a replay of every attempt")
}

func runPlay(_ *cobra.Command, args []string) error {
	cfg := baseConfig()
	if len(args) == 1 {
		n, err := strconv.Atoi(args[0])
		if err != nil || n < 1 {
			return fmt.Errorf("invalid stage %q", args[0])
		}
		cfg.StartStage = n
	}
	if flagBackend != backendTUI && flagBackend != backendTcell {
		return fmt.Errorf("unknown backend %q (want %s or %s)", flagBackend, backendTUI, backendTcell)
	}

	gameID := santa.GameID
	if flagClassic {
		gameID = santa.ClassicGameID
	}

	logger, closeLog := fileLogger()
	defer closeLog()

	p := openPlatform(logger)
	defer p.Close()

	_, err := p.play(gameID, cfg)
	return err
}

// platform holds the long-lived collaborators shared by every game a
// command starts.
type platform struct {
	logger *log.Logger
	store  *storage.Store
	cues   *audio.Cues
}

// openPlatform opens the attempt log and the speaker. Both are optional:
// failures are logged and play continues without them.
func openPlatform(logger *log.Logger) *platform {
	p := &platform{logger: logger}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("attempt log unavailable", "path", flagDBPath, "err", err)
	} else {
		p.store = store
	}

	p.cues = audio.NewCues(flagMute, flagVolume, logger)
	if err := p.cues.Init(); err != nil {
		logger.Warn("audio unavailable", "err", err)
	}
	return p
}

// Close releases the store and the speaker.
func (p *platform) Close() {
	p.cues.Close()
	if p.store != nil {
		if err := p.store.Close(); err != nil {
			p.logger.Warn("cannot close attempt log", "err", err)
		}
	}
}

// play runs one game session on the selected backend. It reports whether
// the player asked to go back to the menu.
func (p *platform) play(gameID string, cfg core.RuntimeConfig) (bool, error) {
	game, err := registry.Create(gameID, p.logger)
	if err != nil {
		return false, err
	}

	opts := sink.Options{
		Logger:     p.logger,
		Cues:       p.cues,
		ReplayDir:  flagRecord,
		GameID:     gameID,
		TickRate:   cfg.TickRate,
		Difficulty: cfg.Difficulty,
	}
	if p.store != nil {
		opts.Store = p.store
	}
	events := sink.New(opts)
	p.logger.Info("session started", "game", gameID, "run", events.RunID(), "stage", cfg.StartStage, "backend", flagBackend)

	var back bool
	if flagBackend == backendTcell {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		back, err = term.Run(ctx, game, events, cfg)
	} else {
		back, err = tui.Run(game, events, cfg)
	}

	if saved := events.Saved(); len(saved) > 0 {
		p.logger.Info("replays saved", "count", len(saved), "dir", flagRecord)
	}
	return back, err
}
