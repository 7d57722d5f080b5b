package core

// RuntimeConfig contains configuration passed to games at initialization.
// Games use this to adapt to screen size, for deterministic simulation and
// to locate their data files. It is passed explicitly; there is no
// package-level state for the current stage.
type RuntimeConfig struct {
	ScreenW    int    // Screen width in characters
	ScreenH    int    // Screen height in characters
	TickRate   int    // Simulation ticks per second (default 60)
	Seed       int64  // RNG seed for deterministic gameplay
	StartStage int    // 1-based stage to begin with (0 means 1)
	ConfigPath string // Optional path to a game YAML config
	StagesPath string // Optional path to a stage catalog file
	Difficulty string // Optional difficulty preset name
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:    80,
		ScreenH:    24,
		TickRate:   60,
		Seed:       0, // 0 means use current time in platform layer
		StartStage: 1,
	}
}

// DeltaTime returns the simulated seconds per tick.
func (c RuntimeConfig) DeltaTime() float64 {
	if c.TickRate <= 0 {
		return 1.0 / 60
	}
	return 1.0 / float64(c.TickRate)
}

// GameState represents the current state of a game.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	Stage  int    // Current 1-based stage number (0 if none)
	Phase  string // Game-specific phase name, e.g. "running" or "failed"
	Over   bool   // Whether the session has ended (all stages cleared or unusable)
	Paused bool   // Whether the game is paused
}

// Event kinds emitted in StepResult.Events.
const (
	EventFail         = "fail"
	EventSuccess      = "success"
	EventIntermediate = "intermediate"
	EventAllCleared   = "all_cleared"
)

// Event is a notable outcome produced during a tick. Platforms fan events
// out to logs, audio, the attempt log and replay files.
type Event struct {
	Kind    string
	Stage   int
	Message string
	Ticks   uint64   // Ticks simulated in the attempt, for terminal events
	Seed    int64    // Seed of the attempt's runtime, for terminal events
	Taps    []uint64 // Tick indices at which taps were consumed, for terminal events
}

// Terminal reports whether the event ends a stage attempt.
func (e Event) Terminal() bool {
	return e.Kind == EventFail || e.Kind == EventSuccess
}

// StepResult is returned by Game.Step() after each simulation tick.
// Contains the updated game state and any events that occurred.
type StepResult struct {
	State  GameState
	Events []Event
}
