package config

import "fmt"

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// Presets lists the presets in menu order.
func Presets() []DifficultyPreset {
	return []DifficultyPreset{DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed}
}

// ParsePreset converts a flag value into a preset. The empty string maps to
// normal.
func ParsePreset(s string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(s); p {
	case "":
		return DifficultyNormal, nil
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, nil
	default:
		return "", fmt.Errorf("config: unknown difficulty %q (want easy, normal, hard or fixed)", s)
	}
}

// SpeedScaleForPreset returns the obstacle speed multiplier for a preset.
func SpeedScaleForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.8
	case DifficultyHard:
		return 1.25
	default:
		return 1.0
	}
}

// ApplySantaPreset modifies the config based on a difficulty preset.
// Normal keeps the configured drift setting; easy and fixed disable drift,
// hard enables it.
func ApplySantaPreset(cfg *SantaConfig, preset DifficultyPreset) {
	cfg.Speed.Scale = SpeedScaleForPreset(preset)

	switch preset {
	case DifficultyEasy, DifficultyFixed:
		cfg.Drift.Enabled = false
	case DifficultyHard:
		cfg.Drift.Enabled = true
		if cfg.Drift.Factor <= 0 {
			cfg.Drift.Factor = DefaultSantaConfig().Drift.Factor
		}
		if cfg.Drift.Probability <= 0 {
			cfg.Drift.Probability = DefaultSantaConfig().Drift.Probability
		}
	}
}
