package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadDango loads the dango maze configuration.
// Search order: customPath -> ~/.dango/configs/dango.yaml -> ./configs/dango.yaml -> embedded default
func LoadDango(customPath string) (DangoConfig, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return DangoConfig{}, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := Parse(data)
		if err != nil {
			return DangoConfig{}, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory, then the local configs directory
	for _, path := range []string{userConfigPath("dango.yaml"), filepath.Join("configs", "dango.yaml")} {
		if path == "" {
			continue
		}
		if data, err := os.ReadFile(path); err == nil {
			if cfg, err := Parse(data); err == nil {
				return cfg, nil
			}
		}
	}

	// Use embedded default YAML
	cfg, err := Parse(defaultDangoYAML)
	if err != nil {
		return DefaultDangoConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// Parse decodes YAML on top of the defaults, so a file only needs the keys it
// changes, and validates the result.
func Parse(data []byte) (DangoConfig, error) {
	cfg := DefaultDangoConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return DangoConfig{}, fmt.Errorf("yaml unmarshal: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return DangoConfig{}, err
	}
	return cfg, nil
}

// Marshal encodes the configuration as YAML.
func Marshal(cfg DangoConfig) ([]byte, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("yaml marshal: %w", err)
	}
	return data, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".dango", "configs", filename)
}

// ApplyDangoPreset modifies the config based on a difficulty preset.
// Faster presets shorten the cooldown so the turn window covers the same distance.
func ApplyDangoPreset(cfg *DangoConfig, preset DifficultyPreset) {
	mult := SpeedMultiplierForPreset(preset)
	if mult == 1.0 {
		return
	}
	cfg.Token.Speed *= mult
	cfg.Cooldown = int(float64(cfg.Cooldown) / mult)
}
