package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/santa-delivery/internal/core"
	"github.com/vovakirdan/santa-delivery/internal/games/santa"
	"github.com/vovakirdan/santa-delivery/internal/platform/tui"
	"github.com/vovakirdan/santa-delivery/internal/stage"
	"github.com/vovakirdan/santa-delivery/internal/storage"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Open the title menu",
	Long: `Open the interactive title menu.

Pick a variant, choose a starting stage or browse the delivery log.
After a session ends you return to the menu.

Controls:
  Up/Down/j/k   - Navigate
  Left/Right    - Change difficulty
  Enter/Space   - Select
  Q             - Quit

Examples:
  santa menu
  santa menu --fps 30 --mute`,
	RunE: runMenu,
}

func init() {
	menuCmd.Flags().BoolVar(&flagMute, "mute", false, "Disable audio cues")
	menuCmd.Flags().Float64Var(&flagVolume, "volume", 0.6, "Audio cue volume between 0 and 1")
	menuCmd.Flags().StringVar(&flagRecord, "record", "", "Directory to save a replay of every attempt")
}

func runMenu(_ *cobra.Command, _ []string) error {
	logger, closeLog := fileLogger()
	defer closeLog()

	p := openPlatform(logger)
	defer p.Close()

	flagBackend = backendTUI
	cfg := baseConfig()

	for {
		res, err := tui.RunMenu(cfg)
		if err != nil {
			return err
		}
		cfg = res.Config

		gameID := santa.GameID
		switch res.Choice {
		case tui.ChoiceQuit, tui.ChoiceNone:
			return nil

		case tui.ChoiceStats:
			back, err := tui.RunStats(p.store, cfg.ScreenW, cfg.ScreenH)
			if err != nil {
				return err
			}
			if !back {
				return nil
			}
			continue

		case tui.ChoiceSelectStage:
			n, err := pickStage(p, cfg)
			if err != nil {
				return err
			}
			if n == 0 {
				continue
			}
			cfg.StartStage = n

		case tui.ChoiceClassic:
			gameID = santa.ClassicGameID
			cfg.StartStage = 1

		case tui.ChoicePlay:
			cfg.StartStage = 1
		}

		back, err := p.play(gameID, cfg)
		if err != nil {
			return err
		}
		if !back {
			return nil
		}
	}
}

// pickStage shows the stage picker annotated with the attempt log. A
// catalog that fails to load is logged and the menu stays up.
func pickStage(p *platform, cfg core.RuntimeConfig) (int, error) {
	catalog, err := stage.Load(cfg.StagesPath)
	if err != nil {
		p.logger.Error("cannot load stage catalog", "err", err)
		return 0, nil
	}

	var stats []storage.StageStat
	if p.store != nil {
		stats, err = p.store.StageStats(santa.GameID)
		if err != nil {
			p.logger.Warn("cannot read attempt log", "err", err)
		}
	}
	return tui.RunStageSelect(catalog, stats, cfg)
}
