// santa is a terminal arcade game: tap to fly Santa up the screen, dodge the
// moving ice blocks and reach the tree at the top.
//
// Usage:
//
//	santa                    - Title menu
//	santa play [stage]       - Play from a stage
//	santa stages             - List the stage catalog
//	santa stats [game]       - Attempt statistics per stage
//	santa sim                - Headless difficulty estimate
//	santa replay <file>      - Re-simulate a recorded attempt
//
// Global flags:
//
//	--fps <rate>         - Tick rate (default: 60)
//	--seed <value>       - RNG seed for reproducible layouts
//	--db <path>          - Attempt log (default: ~/.santa/attempts.db)
//	--config <path>      - Game config YAML
//	--stages <path>      - Stage catalog JSON/YAML
//	--difficulty <name>  - easy, normal, hard or fixed
//	--log-level <level>  - debug, info, warn or error
package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/santa-delivery/internal/core"

	// Register the game variants.
	_ "github.com/vovakirdan/santa-delivery/internal/games/santa"
)

var (
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagStages     string
	flagDifficulty string
	flagLogLevel   string
)

// envFlags maps environment variables to the persistent flags they default.
var envFlags = map[string]string{
	"SANTA_FPS":        "fps",
	"SANTA_DB":         "db",
	"SANTA_CONFIG":     "config",
	"SANTA_STAGES":     "stages",
	"SANTA_DIFFICULTY": "difficulty",
	"SANTA_LOG_LEVEL":  "log-level",
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "santa",
	Short: "Santa Delivery - tap to fly, dodge the ice, deliver the presents",
	Long: `Santa Delivery is a one-button arcade game for the terminal.

Tap to make Santa fly up. Moving ice blocks drift across the sky; touch one
and the stage is lost. Reach the tree at the top to clear the stage.
There are 15 stages, each harder than the last.

Running santa without a subcommand opens the title menu.

Examples:
  santa
  santa play 4 --difficulty hard
  santa play --classic --record ./replays
  santa stages --validate
  santa sim --runs 500
  santa replay ./replays/20261218T201500.000-stage04-fail-santa.replay`,
	SilenceUsage:      true,
	PersistentPreRunE: applyEnvironment,
	RunE:              runMenu,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.IntVar(&flagFPS, "fps", 60, "Tick rate (simulation steps per second)")
	pf.Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	pf.StringVar(&flagDBPath, "db", "~/.santa/attempts.db", "Path to the attempt log database")
	pf.StringVar(&flagConfig, "config", "", "Path to a custom game config YAML")
	pf.StringVar(&flagStages, "stages", "", "Path to a custom stage catalog")
	pf.StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	pf.StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(stagesCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(simCmd)
	rootCmd.AddCommand(replayCmd)
}

// applyEnvironment loads .env and fills flags the user did not set from
// SANTA_* variables.
func applyEnvironment(cmd *cobra.Command, _ []string) error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("cannot load .env: %w", err)
	}

	for env, name := range envFlags {
		value, ok := os.LookupEnv(env)
		if !ok {
			continue
		}
		f := cmd.Flags().Lookup(name)
		if f == nil || f.Changed {
			continue
		}
		if err := f.Value.Set(value); err != nil {
			return fmt.Errorf("invalid %s=%q: %w", env, value, err)
		}
	}

	if _, err := log.ParseLevel(flagLogLevel); err != nil {
		return fmt.Errorf("invalid --log-level: %w", err)
	}
	return nil
}

// newLogger creates a logger writing to w at the --log-level level.
func newLogger(w io.Writer) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "santa",
	})
	if level, err := log.ParseLevel(flagLogLevel); err == nil {
		logger.SetLevel(level)
	}
	return logger
}

// fileLogger logs to ~/.santa/santa.log for commands that own the terminal.
// If the file cannot be opened, logs are discarded.
func fileLogger() (*log.Logger, func()) {
	home, err := os.UserHomeDir()
	if err != nil {
		return log.New(io.Discard), func() {}
	}
	dir := filepath.Join(home, ".santa")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return log.New(io.Discard), func() {}
	}
	f, err := os.OpenFile(filepath.Join(dir, "santa.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return log.New(io.Discard), func() {}
	}
	return newLogger(f), func() { f.Close() }
}

// baseConfig builds the runtime config from the global flags and the
// terminal size.
func baseConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	cfg.TickRate = flagFPS
	cfg.Seed = flagSeed
	cfg.ConfigPath = flagConfig
	cfg.StagesPath = flagStages
	cfg.Difficulty = flagDifficulty
	return cfg
}
