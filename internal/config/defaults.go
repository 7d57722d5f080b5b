package config

import (
	_ "embed"
)

//go:embed defaults/santa.yaml
var defaultSantaYAML []byte

// DefaultSantaConfig returns the hard-coded default configuration. It
// matches defaults/santa.yaml and is used when the embedded file cannot be
// parsed.
func DefaultSantaConfig() SantaConfig {
	return SantaConfig{
		Playfield: PlayfieldConfig{
			Width:  480,
			Height: 800,
		},
		Player: PlayerConfig{
			Width:         40,
			Height:        40,
			SpawnX:        220,
			SpawnY:        730,
			VerticalSpeed: 200,
		},
		Ascend: AscendConfig{
			Policy:     AscendBoundary,
			DurationMS: 300,
		},
		Obstacles: ObstacleConfig{
			Width:        48,
			Height:       32,
			Radius:       60,
			AngularScale: 0.01,
			MarginX:      50,
			MarginTop:    100,
			MarginBottom: 200,
		},
		Goal: GoalConfig{
			X:      208,
			Y:      18,
			Width:  64,
			Height: 64,
		},
		Speed: SpeedConfig{
			Min:   50,
			Max:   600,
			Scale: 1.0,
		},
		Drift: DriftConfig{
			Enabled:     false,
			Probability: 0.01,
			Factor:      1.05,
		},
	}
}
