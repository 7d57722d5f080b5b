package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/santa-delivery/internal/games/santa"
	"github.com/vovakirdan/santa-delivery/internal/platform/tui"
	"github.com/vovakirdan/santa-delivery/internal/registry"
	"github.com/vovakirdan/santa-delivery/internal/storage"
)

var (
	flagRecent int
	flagBoard  bool
	flagReset  bool
)

var statsCmd = &cobra.Command{
	Use:   "stats [game]",
	Short: "Show attempt statistics per stage",
	Long: `Show how often each stage was failed and cleared, from the attempt log.

The game defaults to the standard variant; use santa_classic for the
classic tap variant.

Examples:
  santa stats
  santa stats santa_classic --recent 20
  santa stats --board`,
	Args: cobra.MaximumNArgs(1),
	RunE: runStats,
}

func init() {
	statsCmd.Flags().IntVar(&flagRecent, "recent", 0, "Also list the N most recent attempts")
	statsCmd.Flags().BoolVar(&flagBoard, "board", false, "Open the interactive delivery log")
	statsCmd.Flags().BoolVar(&flagReset, "reset", false, "Delete all recorded attempts of the game")
}

func runStats(_ *cobra.Command, args []string) error {
	gameID := santa.GameID
	if len(args) == 1 {
		gameID = args[0]
	}
	if !registry.Exists(gameID) {
		return fmt.Errorf("unknown game %q (run 'santa list')", gameID)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	if flagBoard {
		cfg := baseConfig()
		_, err := tui.RunStats(store, cfg.ScreenW, cfg.ScreenH)
		return err
	}

	if flagReset {
		if err := store.ClearAttempts(gameID); err != nil {
			return err
		}
		newLogger(os.Stderr).Info("attempts deleted", "game", gameID)
		return nil
	}

	stats, err := store.StageStats(gameID)
	if err != nil {
		return err
	}

	fmt.Printf("Delivery log - %s\n\n", gameID)
	if len(stats) == 0 {
		fmt.Println("No attempts recorded yet.")
		fmt.Println()
		fmt.Println("Play 'santa play' to fill the log!")
		return nil
	}

	fmt.Printf("  %-5s  %-6s  %-5s  %-6s  %-7s  %s\n", "Stage", "Tries", "Fails", "Clears", "Clear %", "Best ticks")
	fmt.Printf("  %-5s  %-6s  %-5s  %-6s  %-7s  %s\n", "-----", "-----", "-----", "------", "-------", "----------")
	for _, s := range stats {
		best := "-"
		if s.BestTicks > 0 {
			best = fmt.Sprintf("%d", s.BestTicks)
		}
		fmt.Printf("  %-5d  %-6d  %-5d  %-6d  %-7.0f  %s\n",
			s.Stage, s.Attempts, s.Fails, s.Clears, s.ClearRate()*100, best)
	}

	if flagRecent > 0 {
		attempts, err := store.RecentAttempts(gameID, flagRecent)
		if err != nil {
			return err
		}
		fmt.Println()
		fmt.Println("Recent attempts:")
		for _, a := range attempts {
			fmt.Printf("  %s  stage %-2d  %-7s  %6d ticks  seed %d\n",
				a.CreatedAt.Local().Format("2006-01-02 15:04"), a.Stage, a.Outcome, a.Ticks, a.Seed)
		}
	}
	return nil
}
