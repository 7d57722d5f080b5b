package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/santa-delivery/internal/games/santa"
)

var (
	flagRuns    int
	flagHorizon time.Duration
	flagStage   int
)

var simCmd = &cobra.Command{
	Use:   "sim",
	Short: "Estimate stage difficulty with a bot",
	Long: `Play every stage headlessly with a bot that taps whenever Santa is not
flying, and report how often it crashes.

Run i of every stage uses seed --seed + i, so stages are compared on the same
layout seeds. A stage whose failure rate is below the previous stage's is
flagged.

Examples:
  santa sim
  santa sim --runs 1000 --difficulty hard
  santa sim --stage 5 --classic --seed 7`,
	RunE: runSim,
}

func init() {
	simCmd.Flags().IntVar(&flagRuns, "runs", 200, "Bot runs per stage")
	simCmd.Flags().DurationVar(&flagHorizon, "horizon", 30*time.Second, "Simulated time limit per run")
	simCmd.Flags().IntVar(&flagStage, "stage", 0, "Only estimate this stage (0 = all)")
	simCmd.Flags().BoolVar(&flagClassic, "classic", false, "Use the classic tap variant")
}

func runSim(_ *cobra.Command, _ []string) error {
	logger := newLogger(os.Stderr)

	ascend := santa.AscendBoundary
	if flagClassic {
		ascend = santa.AscendTimed
	}
	cfg := baseConfig()
	params, catalog, err := santa.Load(cfg, ascend)
	if err != nil {
		logger.Error("cannot load game", "err", err)
		return err
	}

	opts := santa.EstimateOptions{
		Runs:     flagRuns,
		Seed:     flagSeed,
		Horizon:  flagHorizon,
		TickRate: cfg.TickRate,
	}
	logger.Info("estimating", "runs", opts.Runs, "seed", opts.Seed, "horizon", opts.Horizon, "ascend", ascend)

	fmt.Printf("  %-5s  %-6s  %-7s  %-8s  %-7s\n", "Stage", "Failed", "Cleared", "TimedOut", "Fail %")
	fmt.Printf("  %-5s  %-6s  %-7s  %-8s  %-7s\n", "-----", "------", "-------", "--------", "------")

	prev := -1.0
	for _, def := range catalog.All() {
		if flagStage > 0 && def.Number != flagStage {
			continue
		}
		res := santa.Estimate(def, params, opts)
		rate := res.FailureRate()

		mark := ""
		if prev >= 0 && rate < prev {
			mark = "  easier than the previous stage"
		}
		fmt.Printf("  %-5d  %-6d  %-7d  %-8d  %-7.1f%s\n",
			res.Stage, res.Failed, res.Cleared, res.TimedOut, rate*100, mark)
		prev = rate
	}
	return nil
}
