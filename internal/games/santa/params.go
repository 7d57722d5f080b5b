package santa

import (
	"fmt"
	"time"

	"github.com/vovakirdan/santa-delivery/internal/config"
	"github.com/vovakirdan/santa-delivery/internal/core"
)

// AscendPolicy decides when an ascent started by a tap ends.
type AscendPolicy int

const (
	// AscendBoundary keeps ascending until the top edge or a collision.
	AscendBoundary AscendPolicy = iota
	// AscendTimed stops after a fixed duration unless re-armed by a tap.
	AscendTimed
)

func (p AscendPolicy) String() string {
	if p == AscendTimed {
		return config.AscendTimed
	}
	return config.AscendBoundary
}

// ParseAscendPolicy converts a config value into a policy.
func ParseAscendPolicy(s string) (AscendPolicy, error) {
	switch s {
	case config.AscendBoundary, "":
		return AscendBoundary, nil
	case config.AscendTimed:
		return AscendTimed, nil
	default:
		return AscendBoundary, fmt.Errorf("santa: unknown ascend policy %q", s)
	}
}

// DriftPolicy controls random speed drift. When enabled, each tick an
// obstacle's speed is multiplied by Factor with probability Probability.
type DriftPolicy struct {
	Enabled     bool
	Probability float64
	Factor      float64
}

// Params are the resolved simulation parameters for a runtime.
type Params struct {
	Field         core.Rect
	PlayerSize    core.Vec
	Spawn         core.Vec
	VerticalSpeed float64

	Ascend         AscendPolicy
	AscendDuration time.Duration

	ObstacleSize core.Vec
	Radius       float64
	AngularScale float64
	MarginX      float64
	MarginTop    float64
	MarginBottom float64

	Goal core.Rect

	MinSpeed   float64
	MaxSpeed   float64
	SpeedScale float64

	Drift DriftPolicy
}

// ParamsFromConfig validates cfg and resolves it into Params.
func ParamsFromConfig(cfg config.SantaConfig) (Params, error) {
	if err := cfg.Validate(); err != nil {
		return Params{}, err
	}
	ascend, err := ParseAscendPolicy(cfg.Ascend.Policy)
	if err != nil {
		return Params{}, err
	}

	return Params{
		Field:          core.NewRect(0, 0, cfg.Playfield.Width, cfg.Playfield.Height),
		PlayerSize:     core.Vec{X: cfg.Player.Width, Y: cfg.Player.Height},
		Spawn:          core.Vec{X: cfg.Player.SpawnX, Y: cfg.Player.SpawnY},
		VerticalSpeed:  cfg.Player.VerticalSpeed,
		Ascend:         ascend,
		AscendDuration: time.Duration(cfg.Ascend.DurationMS) * time.Millisecond,
		ObstacleSize:   core.Vec{X: cfg.Obstacles.Width, Y: cfg.Obstacles.Height},
		Radius:         cfg.Obstacles.Radius,
		AngularScale:   cfg.Obstacles.AngularScale,
		MarginX:        cfg.Obstacles.MarginX,
		MarginTop:      cfg.Obstacles.MarginTop,
		MarginBottom:   cfg.Obstacles.MarginBottom,
		Goal:           core.NewRect(cfg.Goal.X, cfg.Goal.Y, cfg.Goal.Width, cfg.Goal.Height),
		MinSpeed:       cfg.Speed.Min,
		MaxSpeed:       cfg.Speed.Max,
		SpeedScale:     cfg.Speed.Scale,
		Drift: DriftPolicy{
			Enabled:     cfg.Drift.Enabled,
			Probability: cfg.Drift.Probability,
			Factor:      cfg.Drift.Factor,
		},
	}, nil
}

// DefaultParams returns Params for config.DefaultSantaConfig.
func DefaultParams() Params {
	p, err := ParamsFromConfig(config.DefaultSantaConfig())
	if err != nil {
		panic(fmt.Sprintf("santa: default config is invalid: %v", err))
	}
	return p
}

// speedBounds returns the drift bounds for a stage, preferring the stage's
// own bounds when set.
func (p Params) speedBounds(minOverride, maxOverride float64) (float64, float64) {
	lo, hi := p.MinSpeed, p.MaxSpeed
	if minOverride > 0 {
		lo = minOverride
	}
	if maxOverride > 0 {
		hi = maxOverride
	}
	if lo > hi {
		lo = hi
	}
	return lo, hi
}
