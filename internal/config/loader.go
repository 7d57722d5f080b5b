package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadSanta loads the simulation configuration.
// Search order: customPath -> ~/.santa/configs/santa.yaml -> ./configs/santa.yaml -> embedded default.
// Files are decoded over the defaults, so a file only needs the keys it changes.
func LoadSanta(customPath string) (SantaConfig, error) {
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return SantaConfig{}, fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		cfg, err := ParseSanta(data)
		if err != nil {
			return SantaConfig{}, fmt.Errorf("config: %s: %w", customPath, err)
		}
		return cfg, nil
	}

	if userCfgPath := userConfigPath("santa.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := ParseSanta(data); err == nil {
				return cfg, nil
			}
		}
	}

	if data, err := os.ReadFile(filepath.Join("configs", "santa.yaml")); err == nil {
		if cfg, err := ParseSanta(data); err == nil {
			return cfg, nil
		}
	}

	cfg, err := ParseSanta(defaultSantaYAML)
	if err != nil {
		return DefaultSantaConfig(), nil
	}
	return cfg, nil
}

// ParseSanta decodes YAML over DefaultSantaConfig and validates the result.
func ParseSanta(data []byte) (SantaConfig, error) {
	cfg := DefaultSantaConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return SantaConfig{}, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return SantaConfig{}, err
	}
	return cfg, nil
}

// userConfigPath returns the path to a user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".santa", "configs", filename)
}
