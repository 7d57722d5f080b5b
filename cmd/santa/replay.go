package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/santa-delivery/internal/games/santa"
	"github.com/vovakirdan/santa-delivery/internal/replay"
)

var replayCmd = &cobra.Command{
	Use:   "replay <file>...",
	Short: "Re-simulate recorded attempts",
	Long: `Play recorded attempts back headlessly and check that each one ends the
way it was recorded.

Replays are written by 'santa play --record <dir>'. They are played with the
current --config and --stages, so a changed config shows up as a mismatch.

Examples:
  santa replay ./replays/*.replay
  santa replay run.replay --config ./old-santa.yaml`,
	Args: cobra.MinimumNArgs(1),
	RunE: runReplay,
}

func runReplay(_ *cobra.Command, args []string) error {
	logger := newLogger(os.Stderr)

	mismatches := 0
	for _, path := range args {
		r, err := replay.Load(path)
		if err != nil {
			logger.Error("cannot load replay", "path", path, "err", err)
			mismatches++
			continue
		}

		cfg := r.Config()
		cfg.ConfigPath = flagConfig
		cfg.StagesPath = flagStages
		params, catalog, err := santa.Load(cfg, santa.AscendForGame(r.GameID))
		if err != nil {
			logger.Error("cannot load game", "path", path, "err", err)
			mismatches++
			continue
		}
		def, err := catalog.Get(r.Stage)
		if err != nil {
			logger.Error("replay stage missing from catalog", "path", path, "stage", r.Stage, "err", err)
			mismatches++
			continue
		}

		res := replay.Run(r, def, params)
		status := "ok"
		if !res.Matches {
			status = "MISMATCH"
			mismatches++
		}
		fmt.Printf("%-8s %s: stage %d, recorded %s after %d ticks, replayed %s after %d ticks\n",
			status, path, r.Stage, r.Outcome, r.Ticks, outcomeOf(res), res.Ticks)
	}

	if mismatches > 0 {
		return fmt.Errorf("%d of %d replays did not reproduce", mismatches, len(args))
	}
	return nil
}

func outcomeOf(res replay.Result) string {
	if res.Outcome == "" {
		return "nothing (" + res.State.String() + ")"
	}
	return res.Outcome
}
