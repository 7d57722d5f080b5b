// Package config provides YAML-based game configuration loading and
// difficulty presets for Santa Delivery.
package config

import (
	"errors"
	"fmt"
)

// SantaConfig contains all tunable parameters of the stage simulation.
// Distances are logical playfield units, speeds are units per second.
type SantaConfig struct {
	Playfield PlayfieldConfig `yaml:"playfield"`
	Player    PlayerConfig    `yaml:"player"`
	Ascend    AscendConfig    `yaml:"ascend"`
	Obstacles ObstacleConfig  `yaml:"obstacles"`
	Goal      GoalConfig      `yaml:"goal"`
	Speed     SpeedConfig     `yaml:"speed"`
	Drift     DriftConfig     `yaml:"drift"`
}

// PlayfieldConfig defines the logical size of the vertical playfield.
type PlayfieldConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// PlayerConfig defines Santa's box and spawn point (top-left corner).
type PlayerConfig struct {
	Width         float64 `yaml:"width"`
	Height        float64 `yaml:"height"`
	SpawnX        float64 `yaml:"spawn_x"`
	SpawnY        float64 `yaml:"spawn_y"`
	VerticalSpeed float64 `yaml:"vertical_speed"`
}

// AscendConfig selects how long an ascent lasts after a tap.
// Policy "boundary" ascends until the top edge or a collision; "timed"
// stops after DurationMS unless another tap re-arms it.
type AscendConfig struct {
	Policy     string `yaml:"policy"`
	DurationMS int    `yaml:"duration_ms"`
}

// ObstacleConfig defines ice block sizes, pattern geometry and spawn margins.
type ObstacleConfig struct {
	Width        float64 `yaml:"width"`
	Height       float64 `yaml:"height"`
	Radius       float64 `yaml:"radius"`
	AngularScale float64 `yaml:"angular_scale"`
	MarginX      float64 `yaml:"margin_x"`
	MarginTop    float64 `yaml:"margin_top"`
	MarginBottom float64 `yaml:"margin_bottom"`
}

// GoalConfig defines the goal box near the top of the playfield.
type GoalConfig struct {
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// SpeedConfig bounds obstacle speeds. Scale multiplies every catalog speed.
type SpeedConfig struct {
	Min   float64 `yaml:"min"`
	Max   float64 `yaml:"max"`
	Scale float64 `yaml:"scale"`
}

// DriftConfig controls random per-tick speed drift of obstacles.
type DriftConfig struct {
	Enabled     bool    `yaml:"enabled"`
	Probability float64 `yaml:"probability"`
	Factor      float64 `yaml:"factor"`
}

// Ascend policy names.
const (
	AscendBoundary = "boundary"
	AscendTimed    = "timed"
)

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Validate rejects configurations the simulation cannot run with.
func (c SantaConfig) Validate() error {
	positive := []struct {
		name string
		v    float64
	}{
		{"playfield.width", c.Playfield.Width},
		{"playfield.height", c.Playfield.Height},
		{"player.width", c.Player.Width},
		{"player.height", c.Player.Height},
		{"player.vertical_speed", c.Player.VerticalSpeed},
		{"obstacles.width", c.Obstacles.Width},
		{"obstacles.height", c.Obstacles.Height},
		{"goal.width", c.Goal.Width},
		{"goal.height", c.Goal.Height},
		{"speed.min", c.Speed.Min},
		{"speed.max", c.Speed.Max},
		{"speed.scale", c.Speed.Scale},
	}
	for _, p := range positive {
		if !(p.v > 0) {
			return fmt.Errorf("%w: %s must be positive, got %v", ErrInvalidConfig, p.name, p.v)
		}
	}

	if c.Speed.Min > c.Speed.Max {
		return fmt.Errorf("%w: speed.min %v exceeds speed.max %v", ErrInvalidConfig, c.Speed.Min, c.Speed.Max)
	}

	switch c.Ascend.Policy {
	case AscendBoundary:
	case AscendTimed:
		if c.Ascend.DurationMS <= 0 {
			return fmt.Errorf("%w: ascend.duration_ms must be positive for the timed policy", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: unknown ascend.policy %q", ErrInvalidConfig, c.Ascend.Policy)
	}

	if c.Player.Width > c.Playfield.Width || c.Player.Height > c.Playfield.Height {
		return fmt.Errorf("%w: player does not fit the playfield", ErrInvalidConfig)
	}
	if c.Obstacles.Width > c.Playfield.Width || c.Obstacles.Height > c.Playfield.Height {
		return fmt.Errorf("%w: obstacles do not fit the playfield", ErrInvalidConfig)
	}
	if c.Player.SpawnX < 0 || c.Player.SpawnX+c.Player.Width > c.Playfield.Width ||
		c.Player.SpawnY < 0 || c.Player.SpawnY+c.Player.Height > c.Playfield.Height {
		return fmt.Errorf("%w: player spawn lies outside the playfield", ErrInvalidConfig)
	}

	if c.Goal.X < 0 || c.Goal.X+c.Goal.Width > c.Playfield.Width ||
		c.Goal.Y < 0 || c.Goal.Y+c.Goal.Height > c.Playfield.Height {
		return fmt.Errorf("%w: goal lies outside the playfield", ErrInvalidConfig)
	}

	if c.Obstacles.Radius < 0 {
		return fmt.Errorf("%w: obstacles.radius must not be negative, got %v", ErrInvalidConfig, c.Obstacles.Radius)
	}
	if !(c.Obstacles.AngularScale > 0) {
		return fmt.Errorf("%w: obstacles.angular_scale must be positive, got %v", ErrInvalidConfig, c.Obstacles.AngularScale)
	}
	for _, m := range []struct {
		name string
		v    float64
	}{
		{"obstacles.margin_x", c.Obstacles.MarginX},
		{"obstacles.margin_top", c.Obstacles.MarginTop},
		{"obstacles.margin_bottom", c.Obstacles.MarginBottom},
	} {
		if m.v < 0 {
			return fmt.Errorf("%w: %s must not be negative, got %v", ErrInvalidConfig, m.name, m.v)
		}
	}

	if c.Drift.Probability < 0 || c.Drift.Probability > 1 {
		return fmt.Errorf("%w: drift.probability must be in [0, 1]", ErrInvalidConfig)
	}
	if c.Drift.Enabled && !(c.Drift.Factor > 0) {
		return fmt.Errorf("%w: drift.factor must be positive", ErrInvalidConfig)
	}

	return nil
}
